// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package compiler

import "github.com/gogpu/kernelwgsl/wgsl"

// extensionSet collects extensions in first-registration order.
type extensionSet struct {
	list []wgsl.Extension
	seen map[wgsl.Extension]struct{}
}

func (s *extensionSet) add(kind wgsl.ExtensionKind, item wgsl.Item) {
	ext := wgsl.Extension{Kind: kind, Item: item}
	if _, ok := s.seen[ext]; ok {
		return
	}
	s.seen[ext] = struct{}{}
	s.list = append(s.list, ext)
}

// RegisterExtensions walks instructions, including nested blocks, and
// returns the polyfills they need. Each extension appears once, in the
// order it was first needed.
//
// Powf needs the primitive for its output element plus the scalar or
// componentwise variant. Erf always needs a polyfill. Tanh needs a
// clamped variant only on darwin, where the native tanh returns NaN for
// large inputs.
func RegisterExtensions(instructions []wgsl.Instruction, platform string) []wgsl.Extension {
	set := &extensionSet{seen: make(map[wgsl.Extension]struct{})}
	set.walk(instructions, platform)
	return set.list
}

func (s *extensionSet) walk(instructions []wgsl.Instruction, platform string) {
	for _, inst := range instructions {
		switch inst := inst.(type) {
		case wgsl.Binary:
			if inst.Op != wgsl.Powf {
				continue
			}
			out := inst.Out.Item()
			s.add(wgsl.ExtPowfPrimitive, out)
			if inst.Rhs.IsAlwaysScalar() || inst.Rhs.Item().IsScalar() {
				s.add(wgsl.ExtPowfScalar, out)
			} else {
				s.add(wgsl.ExtPowf, out)
			}

		case wgsl.Unary:
			switch inst.Op {
			case wgsl.Erf:
				s.add(wgsl.ExtErf, inst.Input.Item())
			case wgsl.Tanh:
				if platform == "darwin" {
					s.add(wgsl.ExtSafeTanh, inst.Input.Item())
				}
			}

		case wgsl.If:
			s.walk(inst.Instructions, platform)
		case wgsl.IfElse:
			s.walk(inst.InstructionsIf, platform)
			s.walk(inst.InstructionsElse, platform)
		case wgsl.Switch:
			s.walk(inst.InstructionsDefault, platform)
			for _, sc := range inst.Cases {
				s.walk(sc.Instructions, platform)
			}
		case wgsl.RangeLoop:
			s.walk(inst.Instructions, platform)
		case wgsl.Loop:
			s.walk(inst.Instructions, platform)
		}
	}
}
