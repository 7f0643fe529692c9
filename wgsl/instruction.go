package wgsl

// Instruction is one statement of the entry point.
type Instruction interface {
	instruction()
}

// DeclareVariable declares Var at the current position.
type DeclareVariable struct {
	Var Variable
}

func (DeclareVariable) instruction() {}

// BinaryOp enumerates two-operand operators.
type BinaryOp uint8

const (
	Add BinaryOp = iota
	Sub
	Mul
	Div
	Modulo
	Remainder
	Powf
	Max
	Min
	Dot
	Equal
	NotEqual
	Lower
	LowerEqual
	Greater
	GreaterEqual
	And
	Or
	BitwiseAnd
	BitwiseOr
	BitwiseXor
	ShiftLeft
	ShiftRight
)

// Binary stores Lhs Op Rhs into Out.
type Binary struct {
	Op  BinaryOp
	Lhs Variable
	Rhs Variable
	Out Variable
}

func (Binary) instruction() {}

// UnaryOp enumerates single-operand operators.
type UnaryOp uint8

const (
	Abs UnaryOp = iota
	Exp
	Log
	Log1p
	Cos
	Sin
	Tanh
	Sqrt
	Round
	Floor
	Ceil
	Erf
	Recip
	Negate
	Not
	Magnitude
	Normalize
)

// Unary stores Op(Input) into Out.
type Unary struct {
	Op    UnaryOp
	Input Variable
	Out   Variable
}

func (Unary) instruction() {}

// Fma stores fma(A, B, C) into Out.
type Fma struct {
	A   Variable
	B   Variable
	C   Variable
	Out Variable
}

func (Fma) instruction() {}

// Clamp stores clamp(Input, Min, Max) into Out.
type Clamp struct {
	Input Variable
	Min   Variable
	Max   Variable
	Out   Variable
}

func (Clamp) instruction() {}

// Assign stores Input into Out, converting when the element types differ.
type Assign struct {
	Input Variable
	Out   Variable
}

func (Assign) instruction() {}

// Bitcast stores bitcast<T>(Input) into Out.
type Bitcast struct {
	Input Variable
	Out   Variable
}

func (Bitcast) instruction() {}

// Index stores Lhs[Rhs] into Out.
type Index struct {
	Lhs Variable
	Rhs Variable
	Out Variable
}

func (Index) instruction() {}

// IndexAssign stores Rhs into Out[Lhs].
type IndexAssign struct {
	Lhs Variable
	Rhs Variable
	Out Variable
}

func (IndexAssign) instruction() {}

// SliceOp binds the slice Out to Input[Start:End].
type SliceOp struct {
	Input Variable
	Start Variable
	End   Variable
	Out   Variable
}

func (SliceOp) instruction() {}

// VecInit builds the vector Out from scalar Inputs.
type VecInit struct {
	Inputs []Variable
	Out    Variable
}

func (VecInit) instruction() {}

// Copy stores Input[InIndex] into Out[OutIndex].
type Copy struct {
	Input    Variable
	InIndex  Variable
	Out      Variable
	OutIndex Variable
}

func (Copy) instruction() {}

// CopyBulk copies Len consecutive elements.
type CopyBulk struct {
	Input    Variable
	InIndex  Variable
	Out      Variable
	OutIndex Variable
	Len      uint32
}

func (CopyBulk) instruction() {}

// AtomicLoad stores atomicLoad(&Input) into Out.
type AtomicLoad struct {
	Input Variable
	Out   Variable
}

func (AtomicLoad) instruction() {}

// AtomicStore performs atomicStore(&Out, Input).
type AtomicStore struct {
	Input Variable
	Out   Variable
}

func (AtomicStore) instruction() {}

// AtomicOp enumerates read-modify-write atomic builtins.
type AtomicOp uint8

const (
	AtomicExchange AtomicOp = iota
	AtomicAdd
	AtomicSub
	AtomicMax
	AtomicMin
	AtomicAnd
	AtomicOr
	AtomicXor
)

// Atomic applies Op to &Lhs with Rhs and stores the previous value into Out.
type Atomic struct {
	Op  AtomicOp
	Lhs Variable
	Rhs Variable
	Out Variable
}

func (Atomic) instruction() {}

// AtomicCompareExchangeWeak stores the old value of Lhs into Out after
// replacing it with Value when it equals Cmp.
type AtomicCompareExchangeWeak struct {
	Lhs   Variable
	Cmp   Variable
	Value Variable
	Out   Variable
}

func (AtomicCompareExchangeWeak) instruction() {}

// Stride reads the stride of dimension Dim of the binding at Position.
type Stride struct {
	Dim      Variable
	Position uint32
	Out      Variable
}

func (Stride) instruction() {}

// Shape reads the size of dimension Dim of the binding at Position.
type Shape struct {
	Dim      Variable
	Position uint32
	Out      Variable
}

func (Shape) instruction() {}

// Length stores the element count of Var into Out.
type Length struct {
	Var Variable
	Out Variable
}

func (Length) instruction() {}

// If runs Instructions when Cond holds.
type If struct {
	Cond         Variable
	Instructions []Instruction
}

func (If) instruction() {}

// IfElse runs InstructionsIf when Cond holds and InstructionsElse
// otherwise.
type IfElse struct {
	Cond             Variable
	InstructionsIf   []Instruction
	InstructionsElse []Instruction
}

func (IfElse) instruction() {}

// Select stores select(OrElse, Then, Cond) into Out.
type Select struct {
	Cond   Variable
	Then   Variable
	OrElse Variable
	Out    Variable
}

func (Select) instruction() {}

// SwitchCase is one case arm of a Switch.
type SwitchCase struct {
	Value        Variable
	Instructions []Instruction
}

// Switch dispatches on Value. Cases are written in order.
type Switch struct {
	Value               Variable
	InstructionsDefault []Instruction
	Cases               []SwitchCase
}

func (Switch) instruction() {}

// Return exits the entry point.
type Return struct{}

func (Return) instruction() {}

// Break exits the innermost loop.
type Break struct{}

func (Break) instruction() {}

// RangeLoop is a counted for loop over I. Step is nil for i++.
type RangeLoop struct {
	I            Variable
	Start        Variable
	End          Variable
	Step         Variable
	Inclusive    bool
	Instructions []Instruction
}

func (RangeLoop) instruction() {}

// Loop is an unconditional loop.
type Loop struct {
	Instructions []Instruction
}

func (Loop) instruction() {}

// WorkgroupBarrier is workgroupBarrier().
type WorkgroupBarrier struct{}

func (WorkgroupBarrier) instruction() {}

// StorageBarrier is storageBarrier().
type StorageBarrier struct{}

func (StorageBarrier) instruction() {}

// SubgroupOp enumerates subgroup collectives.
type SubgroupOp uint8

const (
	SubgroupAll SubgroupOp = iota
	SubgroupAny
	SubgroupAdd
	SubgroupMul
	SubgroupMin
	SubgroupMax
)

// Subgroup stores the collective Op over Input into Out.
type Subgroup struct {
	Op    SubgroupOp
	Input Variable
	Out   Variable
}

func (Subgroup) instruction() {}

// SubgroupBroadcast stores Value from lane Lane into Out.
type SubgroupBroadcast struct {
	Value Variable
	Lane  Variable
	Out   Variable
}

func (SubgroupBroadcast) instruction() {}

// SubgroupElect stores subgroupElect() into Out.
type SubgroupElect struct {
	Out Variable
}

func (SubgroupElect) instruction() {}
