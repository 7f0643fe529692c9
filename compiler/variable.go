// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package compiler

import (
	"github.com/samber/lo"

	"github.com/gogpu/kernelwgsl/kernel"
	"github.com/gogpu/kernelwgsl/wgsl"
)

// compileVariable maps one kernel variable to its WGSL variable. Shared
// memories and local arrays are registered in the side tables the first
// time their id is seen; builtins set their usage flags.
//
//nolint:gocyclo,cyclop // Variable dispatch covers every variant
func (c *Compiler) compileVariable(v kernel.Variable) (wgsl.Variable, error) {
	switch v := v.(type) {
	case kernel.GlobalInputArray:
		item, err := CompileItem(v.Item)
		if err != nil {
			return nil, err
		}
		return wgsl.GlobalInputArray{ID: v.ID, Type: item}, nil

	case kernel.GlobalOutputArray:
		item, err := CompileItem(v.Item)
		if err != nil {
			return nil, err
		}
		return wgsl.GlobalOutputArray{ID: v.ID, Type: item}, nil

	case kernel.GlobalScalar:
		elem, err := CompileElem(v.Elem)
		if err != nil {
			return nil, err
		}
		return wgsl.GlobalScalar{ID: v.ID, Elem: elem, Source: v.Elem}, nil

	case kernel.Local:
		item, err := CompileItem(v.Item)
		if err != nil {
			return nil, err
		}
		return wgsl.Local{ID: v.ID, Type: item, Depth: v.Depth}, nil

	case kernel.Versioned:
		item, err := CompileItem(v.Item)
		if err != nil {
			return nil, err
		}
		return wgsl.Local{ID: v.ID, Type: item, Depth: v.Depth}, nil

	case kernel.LocalBinding:
		item, err := CompileItem(v.Item)
		if err != nil {
			return nil, err
		}
		return wgsl.LocalBinding{ID: v.ID, Type: item}, nil

	case kernel.Slice:
		item, err := CompileItem(v.Item)
		if err != nil {
			return nil, err
		}
		return wgsl.Slice{ID: v.ID, Type: item, Depth: v.Depth}, nil

	case kernel.SharedMemory:
		item, err := CompileItem(v.Item)
		if err != nil {
			return nil, err
		}
		if !lo.ContainsBy(c.sharedMemories, func(s wgsl.SharedMemoryDecl) bool { return s.Index == v.ID }) {
			c.sharedMemories = append(c.sharedMemories, wgsl.SharedMemoryDecl{
				Index:  v.ID,
				Item:   item,
				Length: v.Length,
			})
		}
		return wgsl.SharedMemory{ID: v.ID, Type: item, Length: v.Length}, nil

	case kernel.ConstantArray:
		item, err := CompileItem(v.Item)
		if err != nil {
			return nil, err
		}
		return wgsl.ConstantArray{ID: v.ID, Type: item, Length: v.Length}, nil

	case kernel.LocalArray:
		item, err := CompileItem(v.Item)
		if err != nil {
			return nil, err
		}
		if !lo.ContainsBy(c.localArrays, func(a wgsl.LocalArrayDecl) bool { return a.Index == v.ID }) {
			c.localArrays = append(c.localArrays, wgsl.LocalArrayDecl{
				Index:  v.ID,
				Item:   item,
				Depth:  v.Depth,
				Length: v.Length,
			})
		}
		return wgsl.LocalArray{ID: v.ID, Type: item, Depth: v.Depth, Length: v.Length}, nil

	case kernel.ConstantScalar:
		elem, err := CompileElem(v.Value.Elem())
		if err != nil {
			return nil, err
		}
		return wgsl.ConstantScalar{Value: v.Value, Elem: elem}, nil

	case kernel.Builtin:
		return c.compileBuiltin(v.Kind)

	case kernel.Matrix:
		return nil, newErrorf(ErrUnsupportedFeature, "cooperative matrix %d is not supported", v.ID)

	default:
		return nil, newErrorf(ErrInvalidOperation, "unknown variable %T", v)
	}
}

// compileVariables maps several variables, stopping at the first error.
func (c *Compiler) compileVariables(vars ...kernel.Variable) ([]wgsl.Variable, error) {
	out := make([]wgsl.Variable, len(vars))
	for i, v := range vars {
		compiled, err := c.compileVariable(v)
		if err != nil {
			return nil, err
		}
		out[i] = compiled
	}
	return out, nil
}

// compileBuiltin maps a builtin and records its usage.
func (c *Compiler) compileBuiltin(kind kernel.BuiltinKind) (wgsl.Variable, error) {
	var target wgsl.BuiltinKind
	switch kind {
	case kernel.AbsolutePos:
		c.usage.useAbsolutePos()
		target = wgsl.ID
	case kernel.Rank:
		c.usage.useRank()
		target = wgsl.Rank

	case kernel.UnitPos:
		c.usage.useLocalInvocationIndex()
		target = wgsl.LocalInvocationIndex
	case kernel.UnitPosX:
		c.usage.useLocalInvocationID()
		target = wgsl.LocalInvocationIDX
	case kernel.UnitPosY:
		c.usage.useLocalInvocationID()
		target = wgsl.LocalInvocationIDY
	case kernel.UnitPosZ:
		c.usage.useLocalInvocationID()
		target = wgsl.LocalInvocationIDZ

	case kernel.GroupPos:
		c.usage.useWorkgroupIDNoAxis()
		target = wgsl.WorkgroupID
	case kernel.GroupPosX:
		c.usage.useWorkgroupID()
		target = wgsl.WorkgroupIDX
	case kernel.GroupPosY:
		c.usage.useWorkgroupID()
		target = wgsl.WorkgroupIDY
	case kernel.GroupPosZ:
		c.usage.useWorkgroupID()
		target = wgsl.WorkgroupIDZ

	case kernel.AbsolutePosX:
		c.usage.useGlobalInvocationID()
		target = wgsl.GlobalInvocationIDX
	case kernel.AbsolutePosY:
		c.usage.useGlobalInvocationID()
		target = wgsl.GlobalInvocationIDY
	case kernel.AbsolutePosZ:
		c.usage.useGlobalInvocationID()
		target = wgsl.GlobalInvocationIDZ

	// Per-axis workgroup sizes are module constants and need no builtin.
	case kernel.GroupDim:
		c.usage.useWorkgroupSizeNoAxis()
		target = wgsl.WorkgroupSize
	case kernel.GroupDimX:
		target = wgsl.WorkgroupSizeX
	case kernel.GroupDimY:
		target = wgsl.WorkgroupSizeY
	case kernel.GroupDimZ:
		target = wgsl.WorkgroupSizeZ

	case kernel.GroupCount:
		c.usage.useNumWorkgroupsNoAxis()
		target = wgsl.NumWorkgroups
	case kernel.GroupCountX:
		c.usage.useNumWorkgroups()
		target = wgsl.NumWorkgroupsX
	case kernel.GroupCountY:
		c.usage.useNumWorkgroups()
		target = wgsl.NumWorkgroupsY
	case kernel.GroupCountZ:
		c.usage.useNumWorkgroups()
		target = wgsl.NumWorkgroupsZ

	case kernel.SubgroupDim:
		c.usage.useSubgroupSize()
		target = wgsl.SubgroupSize

	default:
		return nil, newErrorf(ErrInvalidOperation, "unknown builtin %s", kind)
	}
	return wgsl.Builtin{Kind: target}, nil
}
