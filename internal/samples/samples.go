// Package samples holds small kernels used by the command line tool and
// the golden tests.
package samples

import (
	"sort"

	"github.com/gogpu/kernelwgsl/kernel"
)

var f32 = kernel.NewItem(kernel.Float(kernel.F32))

var kernels = map[string]func() *kernel.Definition{
	"add":    Add,
	"tanh":   Tanh,
	"reduce": Reduce,
}

// Lookup returns a fresh definition of the named kernel.
func Lookup(name string) (*kernel.Definition, bool) {
	build, ok := kernels[name]
	if !ok {
		return nil, false
	}
	return build(), true
}

// Names returns the sample names in sorted order.
func Names() []string {
	names := make([]string, 0, len(kernels))
	for name := range kernels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func storage(vis kernel.Visibility, item kernel.Item) kernel.Binding {
	return kernel.Binding{Visibility: vis, Location: kernel.Storage, Item: item}
}

// Add is out[pos] = a[pos] + b[pos].
func Add() *kernel.Definition {
	pos := kernel.Builtin{Kind: kernel.AbsolutePos}
	a := kernel.Local{ID: 0, Item: f32}
	b := kernel.Local{ID: 1, Item: f32}

	body := kernel.NewScope(0)
	body.Declare(a, b)
	body.Register(
		kernel.Index{Lhs: kernel.GlobalInputArray{ID: 0, Item: f32}, Rhs: pos, Out: a},
		kernel.Index{Lhs: kernel.GlobalInputArray{ID: 1, Item: f32}, Rhs: pos, Out: b},
		kernel.Binary{Op: kernel.OpAdd, Lhs: a, Rhs: b, Out: a},
		kernel.IndexAssign{Lhs: pos, Rhs: a, Out: kernel.GlobalOutputArray{ID: 0, Item: f32}},
	)
	return &kernel.Definition{
		Inputs:   []kernel.Binding{storage(kernel.Read, f32), storage(kernel.Read, f32)},
		Outputs:  []kernel.Binding{storage(kernel.ReadWrite, f32)},
		GroupDim: kernel.Dim3{X: 64, Y: 1, Z: 1},
		Body:     body,
	}
}

// Tanh is out[pos] = tanh(in[pos]) over vec4<f32>.
func Tanh() *kernel.Definition {
	vec4 := f32.Vectorized(4)
	pos := kernel.Builtin{Kind: kernel.AbsolutePos}
	x := kernel.Local{ID: 0, Item: vec4}

	body := kernel.NewScope(0)
	body.Declare(x)
	body.Register(
		kernel.Index{Lhs: kernel.GlobalInputArray{ID: 0, Item: vec4}, Rhs: pos, Out: x},
		kernel.Unary{Op: kernel.OpTanh, Input: x, Out: x},
		kernel.IndexAssign{Lhs: pos, Rhs: x, Out: kernel.GlobalOutputArray{ID: 0, Item: vec4}},
	)
	return &kernel.Definition{
		Inputs:   []kernel.Binding{storage(kernel.Read, vec4)},
		Outputs:  []kernel.Binding{storage(kernel.ReadWrite, vec4)},
		GroupDim: kernel.Dim3{X: 64, Y: 1, Z: 1},
		Body:     body,
	}
}

// Reduce sums each workgroup's slice of the input through shared
// memory and writes one partial sum per workgroup.
func Reduce() *kernel.Definition {
	const size = 64
	u32 := kernel.NewItem(kernel.UInt())
	unit := kernel.Builtin{Kind: kernel.UnitPos}
	pos := kernel.Builtin{Kind: kernel.AbsolutePos}
	group := kernel.Builtin{Kind: kernel.GroupPos}
	shared := kernel.SharedMemory{ID: 0, Item: f32, Length: size}
	x := kernel.Local{ID: 0, Item: f32}
	acc := kernel.Local{ID: 1, Item: f32}
	i := kernel.Local{ID: 2, Item: u32}
	isFirst := kernel.Local{ID: 3, Item: kernel.NewItem(kernel.Bool())}

	body := kernel.NewScope(0)
	sum := body.Child()
	loop := sum.Child()
	loop.Register(
		kernel.Index{Lhs: shared, Rhs: i, Out: x},
		kernel.Binary{Op: kernel.OpAdd, Lhs: acc, Rhs: x, Out: acc},
	)
	sum.Register(
		kernel.Assign{Input: kernel.ConstantScalar{Value: kernel.FloatValue(0, kernel.F32)}, Out: acc},
		kernel.RangeLoop{
			I:     i,
			Start: kernel.ConstantScalar{Value: kernel.UIntValue(0)},
			End:   kernel.ConstantScalar{Value: kernel.UIntValue(size)},
			Scope: loop,
		},
		kernel.IndexAssign{Lhs: group, Rhs: acc, Out: kernel.GlobalOutputArray{ID: 0, Item: f32}},
	)

	body.Declare(x, acc, isFirst)
	body.Register(
		kernel.Index{Lhs: kernel.GlobalInputArray{ID: 0, Item: f32}, Rhs: pos, Out: x},
		kernel.IndexAssign{Lhs: unit, Rhs: x, Out: shared},
		kernel.Synchronization{Kind: kernel.SyncUnits},
		kernel.Binary{Op: kernel.OpEqual, Lhs: unit, Rhs: kernel.ConstantScalar{Value: kernel.UIntValue(0)}, Out: isFirst},
		kernel.If{Cond: isFirst, Scope: sum},
	)
	return &kernel.Definition{
		Inputs:   []kernel.Binding{storage(kernel.Read, f32)},
		Outputs:  []kernel.Binding{storage(kernel.ReadWrite, f32)},
		GroupDim: kernel.Dim3{X: size, Y: 1, Z: 1},
		Body:     body,
	}
}
