// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package compiler

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/gogpu/kernelwgsl/kernel"
	"github.com/gogpu/kernelwgsl/wgsl"
)

// compileScope lowers a scope: its constant arrays go to the side table,
// each declared variable except slices becomes a DeclareVariable, then
// every operation is lowered in order. A nil scope lowers to an empty
// block. The scope itself is not modified.
func (c *Compiler) compileScope(scope *kernel.Scope) ([]wgsl.Instruction, error) {
	if scope == nil {
		return nil, nil
	}

	for _, ca := range scope.ConstArrays {
		if err := c.registerConstArray(ca); err != nil {
			return nil, fmt.Errorf("scope depth %d: constant array %d: %w", scope.Depth, ca.Var.ID, err)
		}
	}

	instructions := make([]wgsl.Instruction, 0, len(scope.Variables)+len(scope.Operations))
	for _, v := range scope.Variables {
		if _, ok := v.(kernel.Slice); ok {
			continue
		}
		compiled, err := c.compileVariable(v)
		if err != nil {
			return nil, fmt.Errorf("scope depth %d: declare %T: %w", scope.Depth, v, err)
		}
		instructions = append(instructions, wgsl.DeclareVariable{Var: compiled})
	}

	for i, op := range scope.Operations {
		inst, err := c.compileOperation(op)
		if err != nil {
			return nil, fmt.Errorf("scope depth %d: operation %d (%T): %w", scope.Depth, i, op, err)
		}
		instructions = append(instructions, inst)
	}
	return instructions, nil
}

// registerConstArray adds a scope-local constant array to the side
// table. The first declaration of an id wins.
func (c *Compiler) registerConstArray(ca kernel.ConstArray) error {
	if lo.ContainsBy(c.constantArrays, func(a wgsl.ConstantArrayDecl) bool { return a.Index == ca.Var.ID }) {
		return nil
	}
	item, err := CompileItem(ca.Var.Item)
	if err != nil {
		return err
	}
	values, err := c.compileVariables(ca.Values...)
	if err != nil {
		return err
	}
	c.constantArrays = append(c.constantArrays, wgsl.ConstantArrayDecl{
		Index:  ca.Var.ID,
		Item:   item,
		Length: ca.Var.Length,
		Values: values,
	})
	return nil
}
