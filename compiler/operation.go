// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package compiler

import (
	"github.com/gogpu/kernelwgsl/kernel"
	"github.com/gogpu/kernelwgsl/wgsl"
)

var binaryOps = map[kernel.BinaryOp]wgsl.BinaryOp{
	kernel.OpAdd:          wgsl.Add,
	kernel.OpSub:          wgsl.Sub,
	kernel.OpMul:          wgsl.Mul,
	kernel.OpDiv:          wgsl.Div,
	kernel.OpModulo:       wgsl.Modulo,
	kernel.OpRemainder:    wgsl.Remainder,
	kernel.OpPowf:         wgsl.Powf,
	kernel.OpMax:          wgsl.Max,
	kernel.OpMin:          wgsl.Min,
	kernel.OpDot:          wgsl.Dot,
	kernel.OpEqual:        wgsl.Equal,
	kernel.OpNotEqual:     wgsl.NotEqual,
	kernel.OpLower:        wgsl.Lower,
	kernel.OpLowerEqual:   wgsl.LowerEqual,
	kernel.OpGreater:      wgsl.Greater,
	kernel.OpGreaterEqual: wgsl.GreaterEqual,
	kernel.OpAnd:          wgsl.And,
	kernel.OpOr:           wgsl.Or,
	kernel.OpBitwiseAnd:   wgsl.BitwiseAnd,
	kernel.OpBitwiseOr:    wgsl.BitwiseOr,
	kernel.OpBitwiseXor:   wgsl.BitwiseXor,
	kernel.OpShiftLeft:    wgsl.ShiftLeft,
	kernel.OpShiftRight:   wgsl.ShiftRight,
}

var unaryOps = map[kernel.UnaryOp]wgsl.UnaryOp{
	kernel.OpAbs:       wgsl.Abs,
	kernel.OpExp:       wgsl.Exp,
	kernel.OpLog:       wgsl.Log,
	kernel.OpLog1p:     wgsl.Log1p,
	kernel.OpCos:       wgsl.Cos,
	kernel.OpSin:       wgsl.Sin,
	kernel.OpTanh:      wgsl.Tanh,
	kernel.OpSqrt:      wgsl.Sqrt,
	kernel.OpRound:     wgsl.Round,
	kernel.OpFloor:     wgsl.Floor,
	kernel.OpCeil:      wgsl.Ceil,
	kernel.OpErf:       wgsl.Erf,
	kernel.OpRecip:     wgsl.Recip,
	kernel.OpNeg:       wgsl.Negate,
	kernel.OpNot:       wgsl.Not,
	kernel.OpMagnitude: wgsl.Magnitude,
	kernel.OpNormalize: wgsl.Normalize,
}

var atomicOps = map[kernel.AtomicOp]wgsl.AtomicOp{
	kernel.AtomicSwap: wgsl.AtomicExchange,
	kernel.AtomicAdd:  wgsl.AtomicAdd,
	kernel.AtomicSub:  wgsl.AtomicSub,
	kernel.AtomicMax:  wgsl.AtomicMax,
	kernel.AtomicMin:  wgsl.AtomicMin,
	kernel.AtomicAnd:  wgsl.AtomicAnd,
	kernel.AtomicOr:   wgsl.AtomicOr,
	kernel.AtomicXor:  wgsl.AtomicXor,
}

var subgroupOps = map[kernel.SubgroupOp]wgsl.SubgroupOp{
	kernel.SubgroupAll:  wgsl.SubgroupAll,
	kernel.SubgroupAny:  wgsl.SubgroupAny,
	kernel.SubgroupSum:  wgsl.SubgroupAdd,
	kernel.SubgroupProd: wgsl.SubgroupMul,
	kernel.SubgroupMin:  wgsl.SubgroupMin,
	kernel.SubgroupMax:  wgsl.SubgroupMax,
}

// compileOperation lowers one operation to one instruction. Branch and
// loop operations lower their scopes recursively with the same state.
//
//nolint:gocyclo,cyclop,funlen // Operation dispatch covers every variant
func (c *Compiler) compileOperation(op kernel.Operation) (wgsl.Instruction, error) {
	switch op := op.(type) {
	case kernel.Binary:
		target, ok := binaryOps[op.Op]
		if !ok {
			return nil, newErrorf(ErrInvalidOperation, "unknown binary operator %s", op.Op)
		}
		v, err := c.compileVariables(op.Lhs, op.Rhs, op.Out)
		if err != nil {
			return nil, err
		}
		return wgsl.Binary{Op: target, Lhs: v[0], Rhs: v[1], Out: v[2]}, nil

	case kernel.Unary:
		target, ok := unaryOps[op.Op]
		if !ok {
			return nil, newErrorf(ErrInvalidOperation, "unknown unary operator %s", op.Op)
		}
		v, err := c.compileVariables(op.Input, op.Out)
		if err != nil {
			return nil, err
		}
		return wgsl.Unary{Op: target, Input: v[0], Out: v[1]}, nil

	case kernel.Fma:
		v, err := c.compileVariables(op.A, op.B, op.C, op.Out)
		if err != nil {
			return nil, err
		}
		return wgsl.Fma{A: v[0], B: v[1], C: v[2], Out: v[3]}, nil

	case kernel.Clamp:
		v, err := c.compileVariables(op.Input, op.Min, op.Max, op.Out)
		if err != nil {
			return nil, err
		}
		return wgsl.Clamp{Input: v[0], Min: v[1], Max: v[2], Out: v[3]}, nil

	case kernel.Assign:
		v, err := c.compileVariables(op.Input, op.Out)
		if err != nil {
			return nil, err
		}
		return wgsl.Assign{Input: v[0], Out: v[1]}, nil

	case kernel.Bitcast:
		v, err := c.compileVariables(op.Input, op.Out)
		if err != nil {
			return nil, err
		}
		return wgsl.Bitcast{Input: v[0], Out: v[1]}, nil

	case kernel.Index:
		v, err := c.compileVariables(op.Lhs, op.Rhs, op.Out)
		if err != nil {
			return nil, err
		}
		return wgsl.Index{Lhs: v[0], Rhs: v[1], Out: v[2]}, nil

	case kernel.IndexAssign:
		v, err := c.compileVariables(op.Lhs, op.Rhs, op.Out)
		if err != nil {
			return nil, err
		}
		return wgsl.IndexAssign{Lhs: v[0], Rhs: v[1], Out: v[2]}, nil

	case kernel.SliceOp:
		v, err := c.compileVariables(op.Input, op.Start, op.End, op.Out)
		if err != nil {
			return nil, err
		}
		return wgsl.SliceOp{Input: v[0], Start: v[1], End: v[2], Out: v[3]}, nil

	case kernel.InitLine:
		inputs, err := c.compileVariables(op.Inputs...)
		if err != nil {
			return nil, err
		}
		out, err := c.compileVariable(op.Out)
		if err != nil {
			return nil, err
		}
		return wgsl.VecInit{Inputs: inputs, Out: out}, nil

	case kernel.Copy:
		v, err := c.compileVariables(op.Input, op.InIndex, op.Out, op.OutIndex)
		if err != nil {
			return nil, err
		}
		return wgsl.Copy{Input: v[0], InIndex: v[1], Out: v[2], OutIndex: v[3]}, nil

	case kernel.CopyBulk:
		v, err := c.compileVariables(op.Input, op.InIndex, op.Out, op.OutIndex)
		if err != nil {
			return nil, err
		}
		return wgsl.CopyBulk{Input: v[0], InIndex: v[1], Out: v[2], OutIndex: v[3], Len: op.Len}, nil

	case kernel.AtomicLoad:
		v, err := c.compileVariables(op.Input, op.Out)
		if err != nil {
			return nil, err
		}
		return wgsl.AtomicLoad{Input: v[0], Out: v[1]}, nil

	case kernel.AtomicStore:
		v, err := c.compileVariables(op.Input, op.Out)
		if err != nil {
			return nil, err
		}
		return wgsl.AtomicStore{Input: v[0], Out: v[1]}, nil

	case kernel.Atomic:
		target, ok := atomicOps[op.Op]
		if !ok {
			return nil, newErrorf(ErrInvalidOperation, "unknown atomic operator %d", op.Op)
		}
		v, err := c.compileVariables(op.Lhs, op.Rhs, op.Out)
		if err != nil {
			return nil, err
		}
		return wgsl.Atomic{Op: target, Lhs: v[0], Rhs: v[1], Out: v[2]}, nil

	case kernel.AtomicCompareAndSwap:
		v, err := c.compileVariables(op.Input, op.Cmp, op.Val, op.Out)
		if err != nil {
			return nil, err
		}
		return wgsl.AtomicCompareExchangeWeak{Lhs: v[0], Cmp: v[1], Value: v[2], Out: v[3]}, nil

	case kernel.Stride:
		c.usage.useStride()
		position, err := c.metadataPosition(op.Var)
		if err != nil {
			return nil, err
		}
		v, err := c.compileVariables(op.Dim, op.Out)
		if err != nil {
			return nil, err
		}
		return wgsl.Stride{Dim: v[0], Position: position, Out: v[1]}, nil

	case kernel.Shape:
		c.usage.useShape()
		position, err := c.metadataPosition(op.Var)
		if err != nil {
			return nil, err
		}
		v, err := c.compileVariables(op.Dim, op.Out)
		if err != nil {
			return nil, err
		}
		return wgsl.Shape{Dim: v[0], Position: position, Out: v[1]}, nil

	case kernel.Length:
		v, err := c.compileVariables(op.Var, op.Out)
		if err != nil {
			return nil, err
		}
		return wgsl.Length{Var: v[0], Out: v[1]}, nil

	case kernel.If:
		cond, err := c.compileVariable(op.Cond)
		if err != nil {
			return nil, err
		}
		body, err := c.compileScope(op.Scope)
		if err != nil {
			return nil, err
		}
		return wgsl.If{Cond: cond, Instructions: body}, nil

	case kernel.IfElse:
		cond, err := c.compileVariable(op.Cond)
		if err != nil {
			return nil, err
		}
		bodyIf, err := c.compileScope(op.ScopeIf)
		if err != nil {
			return nil, err
		}
		bodyElse, err := c.compileScope(op.ScopeElse)
		if err != nil {
			return nil, err
		}
		return wgsl.IfElse{Cond: cond, InstructionsIf: bodyIf, InstructionsElse: bodyElse}, nil

	case kernel.Select:
		v, err := c.compileVariables(op.Cond, op.Then, op.OrElse, op.Out)
		if err != nil {
			return nil, err
		}
		return wgsl.Select{Cond: v[0], Then: v[1], OrElse: v[2], Out: v[3]}, nil

	case kernel.Switch:
		return c.compileSwitch(op)

	case kernel.Return:
		return wgsl.Return{}, nil

	case kernel.Break:
		return wgsl.Break{}, nil

	case kernel.RangeLoop:
		return c.compileRangeLoop(op)

	case kernel.Loop:
		body, err := c.compileScope(op.Scope)
		if err != nil {
			return nil, err
		}
		return wgsl.Loop{Instructions: body}, nil

	case kernel.Synchronization:
		switch op.Kind {
		case kernel.SyncUnits:
			return wgsl.WorkgroupBarrier{}, nil
		case kernel.SyncStorage:
			return wgsl.StorageBarrier{}, nil
		}
		return nil, newErrorf(ErrInvalidOperation, "unknown synchronization kind %d", op.Kind)

	case kernel.Subgroup:
		c.usage.useSubgroupSize()
		target, ok := subgroupOps[op.Op]
		if !ok {
			return nil, newErrorf(ErrInvalidOperation, "unknown subgroup operator %d", op.Op)
		}
		v, err := c.compileVariables(op.Input, op.Out)
		if err != nil {
			return nil, err
		}
		return wgsl.Subgroup{Op: target, Input: v[0], Out: v[1]}, nil

	case kernel.SubgroupElect:
		c.usage.useSubgroupSize()
		out, err := c.compileVariable(op.Out)
		if err != nil {
			return nil, err
		}
		return wgsl.SubgroupElect{Out: out}, nil

	case kernel.SubgroupBroadcast:
		c.usage.useSubgroupSize()
		v, err := c.compileVariables(op.Value, op.Lane, op.Out)
		if err != nil {
			return nil, err
		}
		return wgsl.SubgroupBroadcast{Value: v[0], Lane: v[1], Out: v[2]}, nil

	case kernel.CoopMma:
		return nil, NewError(ErrUnsupportedFeature, "cooperative matrix multiply-accumulate is not supported")

	default:
		return nil, newErrorf(ErrInvalidOperation, "unknown operation %T", op)
	}
}

// metadataPosition returns the binding position of a global array in
// the metadata buffer: inputs first, then outputs.
func (c *Compiler) metadataPosition(v kernel.Variable) (uint32, error) {
	switch v := v.(type) {
	case kernel.GlobalInputArray:
		return v.ID, nil
	case kernel.GlobalOutputArray:
		return c.numInputs + v.ID, nil
	default:
		return 0, newErrorf(ErrInvalidMetadataTarget, "%T has no shape or stride", v)
	}
}

// compileSwitch lowers a switch, keeping the case order.
func (c *Compiler) compileSwitch(op kernel.Switch) (wgsl.Instruction, error) {
	value, err := c.compileVariable(op.Value)
	if err != nil {
		return nil, err
	}
	defaultBody, err := c.compileScope(op.ScopeDefault)
	if err != nil {
		return nil, err
	}
	cases := make([]wgsl.SwitchCase, 0, len(op.Cases))
	for _, sc := range op.Cases {
		caseValue, err := c.compileVariable(sc.Value)
		if err != nil {
			return nil, err
		}
		body, err := c.compileScope(sc.Scope)
		if err != nil {
			return nil, err
		}
		cases = append(cases, wgsl.SwitchCase{Value: caseValue, Instructions: body})
	}
	return wgsl.Switch{Value: value, InstructionsDefault: defaultBody, Cases: cases}, nil
}

// compileRangeLoop lowers a counted loop. A nil step stays nil.
func (c *Compiler) compileRangeLoop(op kernel.RangeLoop) (wgsl.Instruction, error) {
	v, err := c.compileVariables(op.I, op.Start, op.End)
	if err != nil {
		return nil, err
	}
	var step wgsl.Variable
	if op.Step != nil {
		step, err = c.compileVariable(op.Step)
		if err != nil {
			return nil, err
		}
	}
	body, err := c.compileScope(op.Scope)
	if err != nil {
		return nil, err
	}
	return wgsl.RangeLoop{
		I:            v[0],
		Start:        v[1],
		End:          v[2],
		Step:         step,
		Inclusive:    op.Inclusive,
		Instructions: body,
	}, nil
}
