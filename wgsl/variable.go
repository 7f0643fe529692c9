package wgsl

import "github.com/gogpu/kernelwgsl/kernel"

// Variable is a name an instruction reads or writes.
type Variable interface {
	// Item returns the value type of the variable. Arrays report their
	// element item.
	Item() Item
	// IsAlwaysScalar reports whether the variable is scalar regardless of
	// its item, which holds for global scalars, literals and builtins.
	IsAlwaysScalar() bool
}

// GlobalInputArray is the input_N_global storage binding.
type GlobalInputArray struct {
	ID   uint32
	Type Item
}

func (v GlobalInputArray) Item() Item         { return v.Type }
func (GlobalInputArray) IsAlwaysScalar() bool { return false }

// GlobalOutputArray is the output_N_global storage binding.
type GlobalOutputArray struct {
	ID   uint32
	Type Item
}

func (v GlobalOutputArray) Item() Item         { return v.Type }
func (GlobalOutputArray) IsAlwaysScalar() bool { return false }

// GlobalScalar is entry ID of the scalars_<elem> named binding. Source is
// the element as declared in the kernel, which names the buffer.
type GlobalScalar struct {
	ID     uint32
	Elem   Elem
	Source kernel.Elem
}

func (v GlobalScalar) Item() Item         { return ScalarOf(v.Elem) }
func (GlobalScalar) IsAlwaysScalar() bool { return true }

// ConstantScalar is a literal of type Elem.
type ConstantScalar struct {
	Value kernel.ConstantValue
	Elem  Elem
}

func (v ConstantScalar) Item() Item         { return ScalarOf(v.Elem) }
func (ConstantScalar) IsAlwaysScalar() bool { return true }

// Local is a function-scope var.
type Local struct {
	ID    uint32
	Type  Item
	Depth uint8
}

func (v Local) Item() Item         { return v.Type }
func (Local) IsAlwaysScalar() bool { return false }

// LocalBinding is a function-scope binding without depth.
type LocalBinding struct {
	ID   uint32
	Type Item
}

func (v LocalBinding) Item() Item         { return v.Type }
func (LocalBinding) IsAlwaysScalar() bool { return false }

// Slice is a view created by a SliceOp instruction.
type Slice struct {
	ID    uint32
	Type  Item
	Depth uint8
}

func (v Slice) Item() Item         { return v.Type }
func (Slice) IsAlwaysScalar() bool { return false }

// SharedMemory is a var<workgroup> array.
type SharedMemory struct {
	ID     uint32
	Type   Item
	Length uint32
}

func (v SharedMemory) Item() Item         { return v.Type }
func (SharedMemory) IsAlwaysScalar() bool { return false }

// ConstantArray is a module-scope const array.
type ConstantArray struct {
	ID     uint32
	Type   Item
	Length uint32
}

func (v ConstantArray) Item() Item         { return v.Type }
func (ConstantArray) IsAlwaysScalar() bool { return false }

// LocalArray is a function-scope array.
type LocalArray struct {
	ID     uint32
	Type   Item
	Depth  uint8
	Length uint32
}

func (v LocalArray) Item() Item         { return v.Type }
func (LocalArray) IsAlwaysScalar() bool { return false }

// Builtin is a value derived from the entry-point builtins.
type Builtin struct {
	Kind BuiltinKind
}

func (Builtin) Item() Item           { return ScalarOf(U32) }
func (Builtin) IsAlwaysScalar() bool { return true }

// BuiltinKind enumerates the builtin values a shader can reference.
type BuiltinKind uint8

const (
	// ID is the flattened global invocation index computed in the prelude.
	ID BuiltinKind = iota
	GlobalInvocationIDX
	GlobalInvocationIDY
	GlobalInvocationIDZ
	LocalInvocationIndex
	LocalInvocationIDX
	LocalInvocationIDY
	LocalInvocationIDZ
	// WorkgroupID is the flattened workgroup index computed in the prelude.
	WorkgroupID
	WorkgroupIDX
	WorkgroupIDY
	WorkgroupIDZ
	// WorkgroupSize is the flattened workgroup size.
	WorkgroupSize
	WorkgroupSizeX
	WorkgroupSizeY
	WorkgroupSizeZ
	// NumWorkgroups is the flattened workgroup count.
	NumWorkgroups
	NumWorkgroupsX
	NumWorkgroupsY
	NumWorkgroupsZ
	SubgroupSize
	Rank
)

var builtinExprs = [...]string{
	ID:                   "id",
	GlobalInvocationIDX:  "global_id.x",
	GlobalInvocationIDY:  "global_id.y",
	GlobalInvocationIDZ:  "global_id.z",
	LocalInvocationIndex: "local_idx",
	LocalInvocationIDX:   "local_invocation_id.x",
	LocalInvocationIDY:   "local_invocation_id.y",
	LocalInvocationIDZ:   "local_invocation_id.z",
	WorkgroupID:          "workgroup_id_no_axis",
	WorkgroupIDX:         "workgroup_id.x",
	WorkgroupIDY:         "workgroup_id.y",
	WorkgroupIDZ:         "workgroup_id.z",
	WorkgroupSize:        "workgroup_size_no_axis",
	WorkgroupSizeX:       "WORKGROUP_SIZE_X",
	WorkgroupSizeY:       "WORKGROUP_SIZE_Y",
	WorkgroupSizeZ:       "WORKGROUP_SIZE_Z",
	NumWorkgroups:        "num_workgroups_no_axis",
	NumWorkgroupsX:       "num_workgroups.x",
	NumWorkgroupsY:       "num_workgroups.y",
	NumWorkgroupsZ:       "num_workgroups.z",
	SubgroupSize:         "subgroup_size",
	Rank:                 "rank",
}

// String returns the WGSL expression of the builtin.
func (k BuiltinKind) String() string {
	if int(k) < len(builtinExprs) {
		return builtinExprs[k]
	}
	return "unknown_builtin"
}
