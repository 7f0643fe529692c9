package wgsl

import (
	"fmt"
	"strings"
)

// writeBlock writes a list of instructions.
func (w *Writer) writeBlock(block []Instruction) error {
	for _, inst := range block {
		if err := w.writeInstruction(inst); err != nil {
			return err
		}
	}
	return nil
}

// writeInstruction writes a single instruction.
//
//nolint:gocyclo,cyclop // Instruction dispatch covers every variant
func (w *Writer) writeInstruction(inst Instruction) error {
	switch i := inst.(type) {
	case DeclareVariable:
		if err := w.writeDeclare(i); err != nil {
			return err
		}

	case Binary:
		w.writeBinary(i)

	case Unary:
		w.writeUnary(i)

	case Fma:
		item := i.Out.Item()
		w.writeLine("%s = fma(%s, %s, %s);", w.name(i.Out),
			w.operand(i.A, item), w.operand(i.B, item), w.operand(i.C, item))

	case Clamp:
		item := i.Out.Item()
		w.writeLine("%s = clamp(%s, %s, %s);", w.name(i.Out),
			w.operand(i.Input, item), w.operand(i.Min, item), w.operand(i.Max, item))

	case Assign:
		w.writeAssign(i)

	case Bitcast:
		w.writeLine("%s = bitcast<%s>(%s);", w.name(i.Out), i.Out.Item(), w.name(i.Input))

	case Index:
		w.writeLine("%s = %s;", w.name(i.Out), w.index(i.Lhs, w.name(i.Rhs)))

	case IndexAssign:
		w.writeLine("%s = %s;", w.index(i.Out, w.name(i.Lhs)), w.name(i.Rhs))

	case SliceOp:
		w.writeSlice(i)

	case VecInit:
		inputs := make([]string, len(i.Inputs))
		for n, in := range i.Inputs {
			inputs[n] = w.name(in)
		}
		w.writeLine("%s = %s(%s);", w.name(i.Out), i.Out.Item(), strings.Join(inputs, ", "))

	case Copy:
		w.writeLine("%s = %s;", w.index(i.Out, w.name(i.OutIndex)), w.index(i.Input, w.name(i.InIndex)))

	case CopyBulk:
		w.writeLine("for (var i: u32 = 0u; i < %du; i++) {", i.Len)
		w.pushIndent()
		w.writeLine("%s = %s;",
			w.index(i.Out, fmt.Sprintf("%s + i", w.name(i.OutIndex))),
			w.index(i.Input, fmt.Sprintf("%s + i", w.name(i.InIndex))))
		w.popIndent()
		w.writeLine("}")

	case AtomicLoad:
		w.writeLine("%s = atomicLoad(&%s);", w.name(i.Out), w.name(i.Input))

	case AtomicStore:
		w.writeLine("atomicStore(&%s, %s);", w.name(i.Out), w.name(i.Input))

	case Atomic:
		w.writeLine("%s = %s(&%s, %s);", w.name(i.Out), atomicFunction(i.Op), w.name(i.Lhs), w.name(i.Rhs))

	case AtomicCompareExchangeWeak:
		w.writeLine("%s = atomicCompareExchangeWeak(&%s, %s, %s).old_value;",
			w.name(i.Out), w.name(i.Lhs), w.name(i.Cmp), w.name(i.Value))

	case Stride:
		w.writeLine("%s = info[(%du * rank_2) + %s + 1u];", w.name(i.Out), i.Position, w.name(i.Dim))

	case Shape:
		w.writeLine("%s = info[(%du * rank_2) + rank + %s + 1u];", w.name(i.Out), i.Position, w.name(i.Dim))

	case Length:
		if err := w.writeLength(i); err != nil {
			return err
		}

	case If:
		w.writeLine("if %s {", w.name(i.Cond))
		if err := w.writeNested(i, i.Instructions); err != nil {
			return err
		}
		w.writeLine("}")

	case IfElse:
		return w.writeIfElse(i)

	case Select:
		item := i.Out.Item()
		w.writeLine("%s = select(%s, %s, %s);", w.name(i.Out),
			w.operand(i.OrElse, item), w.operand(i.Then, item), w.name(i.Cond))

	case Switch:
		return w.writeSwitch(i)

	case Return:
		w.writeLine("return;")

	case Break:
		w.writeLine("break;")

	case RangeLoop:
		return w.writeRangeLoop(i)

	case Loop:
		w.writeLine("loop {")
		if err := w.writeNested(i, i.Instructions); err != nil {
			return err
		}
		w.writeLine("}")

	case WorkgroupBarrier:
		w.writeLine("workgroupBarrier();")

	case StorageBarrier:
		w.writeLine("storageBarrier();")

	case Subgroup:
		w.writeLine("%s = %s(%s);", w.name(i.Out), subgroupFunction(i.Op), w.name(i.Input))

	case SubgroupBroadcast:
		w.writeLine("%s = subgroupBroadcast(%s, %s);", w.name(i.Out), w.name(i.Value), w.name(i.Lane))

	case SubgroupElect:
		w.writeLine("%s = subgroupElect();", w.name(i.Out))

	default:
		return newWriteErrorf(inst, "unsupported instruction")
	}

	return w.takeErr(inst)
}

// writeNested writes the body of owner one indentation level deeper.
func (w *Writer) writeNested(owner Instruction, block []Instruction) error {
	if err := w.takeErr(owner); err != nil {
		return err
	}
	w.pushIndent()
	err := w.writeBlock(block)
	w.popIndent()
	return err
}

// writeDeclare writes a local declaration. Arrays and slices are
// declared elsewhere and produce no output here.
func (w *Writer) writeDeclare(d DeclareVariable) error {
	switch v := d.Var.(type) {
	case Local, LocalBinding:
		w.writeLine("var %s: %s;", w.name(v), v.Item())
	case LocalArray, SharedMemory, ConstantArray, Slice:
	default:
		return newWriteErrorf(d, "cannot declare %T", d.Var)
	}
	return nil
}

// writeBinary writes a two-operand instruction.
func (w *Writer) writeBinary(b Binary) {
	out := w.name(b.Out)
	lhs := w.name(b.Lhs)
	rhs := w.name(b.Rhs)

	if symbol, ok := binarySymbols[b.Op]; ok {
		w.writeLine("%s = %s %s %s;", out, lhs, symbol, rhs)
		return
	}

	item := b.Out.Item()
	switch b.Op {
	case Remainder:
		if item.Elem.IsFloat() {
			w.writeLine("%s = %s - %s * floor(%s / %s);", out, lhs, rhs, lhs, rhs)
		} else {
			w.writeLine("%s = ((%s %% %s) + %s) %% %s;", out, lhs, rhs, rhs, rhs)
		}
	case Powf:
		ext := Extension{Kind: ExtPowf, Item: item}
		if b.Rhs.IsAlwaysScalar() || b.Rhs.Item().IsScalar() {
			ext.Kind = ExtPowfScalar
		}
		w.writeLine("%s = %s(%s, %s);", out, ext.FunctionName(), lhs, rhs)
	case Max:
		w.writeLine("%s = max(%s, %s);", out, w.operand(b.Lhs, item), w.operand(b.Rhs, item))
	case Min:
		w.writeLine("%s = min(%s, %s);", out, w.operand(b.Lhs, item), w.operand(b.Rhs, item))
	case Dot:
		if b.Lhs.Item().IsScalar() {
			w.writeLine("%s = %s * %s;", out, lhs, rhs)
		} else {
			w.writeLine("%s = dot(%s, %s);", out, lhs, rhs)
		}
	}
}

var binarySymbols = map[BinaryOp]string{
	Add:          "+",
	Sub:          "-",
	Mul:          "*",
	Div:          "/",
	Modulo:       "%",
	Equal:        "==",
	NotEqual:     "!=",
	Lower:        "<",
	LowerEqual:   "<=",
	Greater:      ">",
	GreaterEqual: ">=",
	And:          "&&",
	Or:           "||",
	BitwiseAnd:   "&",
	BitwiseOr:    "|",
	BitwiseXor:   "^",
	ShiftLeft:    "<<",
	ShiftRight:   ">>",
}

// writeUnary writes a single-operand instruction.
func (w *Writer) writeUnary(u Unary) {
	out := w.name(u.Out)
	input := w.name(u.Input)
	item := u.Input.Item()

	switch u.Op {
	case Log1p:
		w.writeLine("%s = log(%s + 1.0);", out, input)
	case Recip:
		w.writeLine("%s = 1.0 / %s;", out, input)
	case Negate:
		w.writeLine("%s = -%s;", out, input)
	case Not:
		w.writeLine("%s = !%s;", out, input)
	case Erf:
		w.writeLine("%s = %s(%s);", out, Extension{Kind: ExtErf, Item: item}.FunctionName(), input)
	case Tanh:
		ext := Extension{Kind: ExtSafeTanh, Item: item}
		if w.shader.HasExtension(ext) {
			w.writeLine("%s = %s(%s);", out, ext.FunctionName(), input)
		} else {
			w.writeLine("%s = tanh(%s);", out, input)
		}
	case Magnitude:
		if item.IsScalar() {
			w.writeLine("%s = abs(%s);", out, input)
		} else {
			w.writeLine("%s = length(%s);", out, input)
		}
	case Normalize:
		if item.IsScalar() {
			w.writeLine("%s = sign(%s);", out, input)
		} else {
			w.writeLine("%s = normalize(%s);", out, input)
		}
	default:
		w.writeLine("%s = %s(%s);", out, unaryFunctions[u.Op], input)
	}
}

var unaryFunctions = map[UnaryOp]string{
	Abs:   "abs",
	Exp:   "exp",
	Log:   "log",
	Cos:   "cos",
	Sin:   "sin",
	Sqrt:  "sqrt",
	Round: "round",
	Floor: "floor",
	Ceil:  "ceil",
}

// writeAssign writes an assignment, converting when the element types
// differ.
func (w *Writer) writeAssign(a Assign) {
	out := w.name(a.Out)
	input := w.name(a.Input)
	outItem := a.Out.Item()
	if a.Input.Item().Elem != outItem.Elem {
		w.writeLine("%s = %s(%s);", out, outItem, input)
		return
	}
	w.writeLine("%s = %s;", out, input)
}

// index returns the expression of element idx of v. Slices index their
// base with the slice offset added.
func (w *Writer) index(v Variable, idx string) string {
	name := w.name(v)
	if _, ok := v.(Slice); ok {
		base, known := w.slices[name]
		if !known && w.err == nil {
			w.err = newWriteErrorf(nil, "slice %s used before it is created", name)
		}
		return fmt.Sprintf("%s[%s_offset + %s]", base, name, idx)
	}
	return fmt.Sprintf("%s[%s]", name, idx)
}

// writeSlice binds the offset and length of a slice. Slicing a slice
// composes offsets onto the same base.
func (w *Writer) writeSlice(s SliceOp) {
	name := w.name(s.Out)
	input := w.name(s.Input)
	start := w.name(s.Start)
	end := w.name(s.End)

	base := input
	offset := start
	if _, ok := s.Input.(Slice); ok {
		base = w.slices[input]
		offset = fmt.Sprintf("%s_offset + %s", input, start)
	}
	w.slices[name] = base

	w.writeLine("let %s_offset = %s;", name, offset)
	w.writeLine("let %s_length = %s - %s;", name, end, start)
}

// writeLength writes the element count of an array or slice.
func (w *Writer) writeLength(l Length) error {
	out := w.name(l.Out)
	var length string
	switch v := l.Var.(type) {
	case GlobalInputArray:
		length = w.globalLength(w.shader.Inputs, v.ID, inputName(v.ID))
	case GlobalOutputArray:
		length = w.globalLength(w.shader.Outputs, v.ID, outputName(v.ID))
	case SharedMemory:
		length = fmt.Sprintf("%du", v.Length)
	case ConstantArray:
		length = fmt.Sprintf("%du", v.Length)
	case LocalArray:
		length = fmt.Sprintf("%du", v.Length)
	case Slice:
		length = w.name(v) + "_length"
	default:
		return newWriteErrorf(l, "cannot take the length of %T", l.Var)
	}
	w.writeLine("%s = %s;", out, length)
	return nil
}

// globalLength returns the length of a global array: its static size
// when known, arrayLength otherwise.
func (w *Writer) globalLength(bindings []Binding, id uint32, name string) string {
	if int(id) < len(bindings) && bindings[id].Size != nil {
		return fmt.Sprintf("%du", *bindings[id].Size)
	}
	return fmt.Sprintf("arrayLength(&%s)", name)
}

// writeIfElse writes a two-armed conditional.
func (w *Writer) writeIfElse(i IfElse) error {
	w.writeLine("if %s {", w.name(i.Cond))
	if err := w.writeNested(i, i.InstructionsIf); err != nil {
		return err
	}
	w.writeLine("} else {")
	if err := w.writeNested(i, i.InstructionsElse); err != nil {
		return err
	}
	w.writeLine("}")
	return w.takeErr(i)
}

// writeSwitch writes a switch with its cases in order and the default
// arm last.
func (w *Writer) writeSwitch(s Switch) error {
	w.writeLine("switch %s {", w.name(s.Value))
	w.pushIndent()
	for _, c := range s.Cases {
		w.writeLine("case %s: {", w.name(c.Value))
		if err := w.writeNested(s, c.Instructions); err != nil {
			return err
		}
		w.writeLine("}")
	}
	w.writeLine("default: {")
	if err := w.writeNested(s, s.InstructionsDefault); err != nil {
		return err
	}
	w.writeLine("}")
	w.popIndent()
	w.writeLine("}")
	return w.takeErr(s)
}

// writeRangeLoop writes a counted for loop.
func (w *Writer) writeRangeLoop(r RangeLoop) error {
	i := w.name(r.I)
	cmp := "<"
	if r.Inclusive {
		cmp = "<="
	}
	step := i + "++"
	if r.Step != nil {
		step = fmt.Sprintf("%s += %s", i, w.name(r.Step))
	}

	w.writeLine("for (var %s: %s = %s; %s %s %s; %s) {",
		i, r.I.Item(), w.name(r.Start), i, cmp, w.name(r.End), step)
	if err := w.writeNested(r, r.Instructions); err != nil {
		return err
	}
	w.writeLine("}")
	return w.takeErr(r)
}

// takeErr returns and clears the pending variable error, attributed to inst.
func (w *Writer) takeErr(inst Instruction) error {
	if w.err == nil {
		return nil
	}
	err := w.err
	w.err = nil
	if e, ok := err.(*WriteError); ok && e.Instruction == nil {
		return &WriteError{Message: e.Message, Instruction: inst}
	}
	return err
}

func atomicFunction(op AtomicOp) string {
	switch op {
	case AtomicExchange:
		return "atomicExchange"
	case AtomicAdd:
		return "atomicAdd"
	case AtomicSub:
		return "atomicSub"
	case AtomicMax:
		return "atomicMax"
	case AtomicMin:
		return "atomicMin"
	case AtomicAnd:
		return "atomicAnd"
	case AtomicOr:
		return "atomicOr"
	default:
		return "atomicXor"
	}
}

func subgroupFunction(op SubgroupOp) string {
	switch op {
	case SubgroupAll:
		return "subgroupAll"
	case SubgroupAny:
		return "subgroupAny"
	case SubgroupAdd:
		return "subgroupAdd"
	case SubgroupMul:
		return "subgroupMul"
	case SubgroupMin:
		return "subgroupMin"
	default:
		return "subgroupMax"
	}
}
