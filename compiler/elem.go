// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package compiler

import (
	"github.com/gogpu/kernelwgsl/kernel"
	"github.com/gogpu/kernelwgsl/wgsl"
)

// MaxSharedMemorySize is the largest workgroup memory allocation, in
// bytes, a kernel may request. It is reported to callers and not
// enforced here.
const MaxSharedMemorySize = 32768

// SupportedElems returns the element types the target supports natively.
// Every entry maps through CompileElem without error.
func SupportedElems() []kernel.Elem {
	return []kernel.Elem{
		kernel.UInt(),
		kernel.Int(kernel.I32),
		kernel.AtomicInt(kernel.I32),
		kernel.AtomicUInt(),
		kernel.Float(kernel.F32),
		kernel.Bool(),
	}
}

// CompileElem maps a kernel element type to its WGSL element.
func CompileElem(elem kernel.Elem) (wgsl.Elem, error) {
	switch elem.Kind {
	case kernel.ElemFloat:
		if elem.Float == kernel.F32 {
			return wgsl.F32, nil
		}
	case kernel.ElemInt:
		if elem.Int == kernel.I32 {
			return wgsl.I32, nil
		}
	case kernel.ElemAtomicInt:
		if elem.Int == kernel.I32 {
			return wgsl.AtomicI32, nil
		}
	case kernel.ElemUInt:
		return wgsl.U32, nil
	case kernel.ElemAtomicUInt:
		return wgsl.AtomicU32, nil
	case kernel.ElemBool:
		return wgsl.Bool, nil
	}
	return 0, newErrorf(ErrUnsupportedElem, "%s is not supported", elem)
}

// CompileItem maps a kernel item to its WGSL item.
func CompileItem(item kernel.Item) (wgsl.Item, error) {
	elem, err := CompileElem(item.Elem)
	if err != nil {
		return wgsl.Item{}, err
	}
	switch item.Factor() {
	case 1:
		return wgsl.ScalarOf(elem), nil
	case 2:
		return wgsl.Vec2Of(elem), nil
	case 3:
		return wgsl.Vec3Of(elem), nil
	case 4:
		return wgsl.Vec4Of(elem), nil
	default:
		return wgsl.Item{}, newErrorf(ErrUnsupportedVectorization,
			"vectorization factor %d of %s", item.Vectorization, item.Elem)
	}
}

// ElemSize returns the size in bytes of a supported element type.
func ElemSize(elem kernel.Elem) (int, error) {
	e, err := CompileElem(elem)
	if err != nil {
		return 0, err
	}
	return e.Size(), nil
}
