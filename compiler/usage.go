// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package compiler

import "github.com/gogpu/kernelwgsl/wgsl"

// usage tracks which builtins the kernel references. Flags are only set
// through the named setters; resolve applies the implication rules.
type usage struct {
	absolutePos          bool
	rank                 bool
	stride               bool
	shape                bool
	globalInvocationID   bool
	localInvocationIndex bool
	localInvocationID    bool
	workgroupID          bool
	numWorkgroups        bool
	subgroupSize         bool
	workgroupIDNoAxis    bool
	workgroupSizeNoAxis  bool
	numWorkgroupsNoAxis  bool
}

func (u *usage) useAbsolutePos()          { u.absolutePos = true }
func (u *usage) useRank()                 { u.rank = true }
func (u *usage) useStride()               { u.stride = true }
func (u *usage) useShape()                { u.shape = true }
func (u *usage) useGlobalInvocationID()   { u.globalInvocationID = true }
func (u *usage) useLocalInvocationIndex() { u.localInvocationIndex = true }
func (u *usage) useLocalInvocationID()    { u.localInvocationID = true }
func (u *usage) useWorkgroupID()          { u.workgroupID = true }
func (u *usage) useNumWorkgroups()        { u.numWorkgroups = true }
func (u *usage) useSubgroupSize()         { u.subgroupSize = true }
func (u *usage) useWorkgroupIDNoAxis()    { u.workgroupIDNoAxis = true }
func (u *usage) useWorkgroupSizeNoAxis()  { u.workgroupSizeNoAxis = true }
func (u *usage) useNumWorkgroupsNoAxis()  { u.numWorkgroupsNoAxis = true }

// resolve returns the entry-point builtins and the body flags.
//
// The flattened absolute position is computed from global_invocation_id
// and num_workgroups. The flattened workgroup id needs workgroup_id and
// num_workgroups, and the flattened workgroup count needs num_workgroups.
func (u *usage) resolve(instructions []wgsl.Instruction) (wgsl.Builtins, wgsl.Body) {
	builtins := wgsl.Builtins{
		GlobalInvocationID:   u.globalInvocationID || u.absolutePos,
		LocalInvocationIndex: u.localInvocationIndex,
		LocalInvocationID:    u.localInvocationID,
		WorkgroupID:          u.workgroupID || u.workgroupIDNoAxis,
		NumWorkgroups:        u.absolutePos || u.numWorkgroups || u.numWorkgroupsNoAxis || u.workgroupIDNoAxis,
		SubgroupSize:         u.subgroupSize,
		WorkgroupIDNoAxis:    u.workgroupIDNoAxis,
		NumWorkgroupsNoAxis:  u.numWorkgroupsNoAxis,
		WorkgroupSizeNoAxis:  u.workgroupSizeNoAxis,
	}
	body := wgsl.Body{
		Instructions: instructions,
		ID:           u.absolutePos,
		Rank:         u.rank,
		Stride:       u.stride,
		Shape:        u.shape,
	}
	return builtins, body
}
