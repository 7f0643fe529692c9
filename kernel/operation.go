package kernel

// Operation is one step of a scope. Operations record their operands and
// result as variables; branch and loop operations embed nested scopes.
type Operation interface {
	operation()
}

// =============================================================================
// Operators
// =============================================================================

// BinaryOp enumerates two-operand operators.
type BinaryOp uint8

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpModulo
	OpRemainder
	OpPowf
	OpMax
	OpMin
	OpDot
	OpEqual
	OpNotEqual
	OpLower
	OpLowerEqual
	OpGreater
	OpGreaterEqual
	OpAnd
	OpOr
	OpBitwiseAnd
	OpBitwiseOr
	OpBitwiseXor
	OpShiftLeft
	OpShiftRight
)

var binaryOpNames = [...]string{
	OpAdd:          "Add",
	OpSub:          "Sub",
	OpMul:          "Mul",
	OpDiv:          "Div",
	OpModulo:       "Modulo",
	OpRemainder:    "Remainder",
	OpPowf:         "Powf",
	OpMax:          "Max",
	OpMin:          "Min",
	OpDot:          "Dot",
	OpEqual:        "Equal",
	OpNotEqual:     "NotEqual",
	OpLower:        "Lower",
	OpLowerEqual:   "LowerEqual",
	OpGreater:      "Greater",
	OpGreaterEqual: "GreaterEqual",
	OpAnd:          "And",
	OpOr:           "Or",
	OpBitwiseAnd:   "BitwiseAnd",
	OpBitwiseOr:    "BitwiseOr",
	OpBitwiseXor:   "BitwiseXor",
	OpShiftLeft:    "ShiftLeft",
	OpShiftRight:   "ShiftRight",
}

func (op BinaryOp) String() string {
	if int(op) < len(binaryOpNames) {
		return binaryOpNames[op]
	}
	return "Unknown"
}

// IsComparison reports whether the operator produces a boolean result.
func (op BinaryOp) IsComparison() bool {
	switch op {
	case OpEqual, OpNotEqual, OpLower, OpLowerEqual, OpGreater, OpGreaterEqual:
		return true
	}
	return false
}

// Binary applies Op to Lhs and Rhs and stores the result in Out.
type Binary struct {
	Op  BinaryOp
	Lhs Variable
	Rhs Variable
	Out Variable
}

func (Binary) operation() {}

// UnaryOp enumerates single-operand operators.
type UnaryOp uint8

const (
	OpAbs UnaryOp = iota
	OpExp
	OpLog
	OpLog1p
	OpCos
	OpSin
	OpTanh
	OpSqrt
	OpRound
	OpFloor
	OpCeil
	OpErf
	OpRecip
	OpNeg
	OpNot
	OpMagnitude
	OpNormalize
)

var unaryOpNames = [...]string{
	OpAbs:       "Abs",
	OpExp:       "Exp",
	OpLog:       "Log",
	OpLog1p:     "Log1p",
	OpCos:       "Cos",
	OpSin:       "Sin",
	OpTanh:      "Tanh",
	OpSqrt:      "Sqrt",
	OpRound:     "Round",
	OpFloor:     "Floor",
	OpCeil:      "Ceil",
	OpErf:       "Erf",
	OpRecip:     "Recip",
	OpNeg:       "Neg",
	OpNot:       "Not",
	OpMagnitude: "Magnitude",
	OpNormalize: "Normalize",
}

func (op UnaryOp) String() string {
	if int(op) < len(unaryOpNames) {
		return unaryOpNames[op]
	}
	return "Unknown"
}

// Unary applies Op to Input and stores the result in Out.
type Unary struct {
	Op    UnaryOp
	Input Variable
	Out   Variable
}

func (Unary) operation() {}

// Fma computes A*B + C.
type Fma struct {
	A   Variable
	B   Variable
	C   Variable
	Out Variable
}

func (Fma) operation() {}

// Clamp restricts Input to [Min, Max].
type Clamp struct {
	Input Variable
	Min   Variable
	Max   Variable
	Out   Variable
}

func (Clamp) operation() {}

// Assign copies Input into Out.
type Assign struct {
	Input Variable
	Out   Variable
}

func (Assign) operation() {}

// Bitcast reinterprets the bits of Input as the item of Out.
type Bitcast struct {
	Input Variable
	Out   Variable
}

func (Bitcast) operation() {}

// Index reads Lhs[Rhs] into Out. Unchecked marks accesses the upstream
// passes proved in bounds.
type Index struct {
	Lhs       Variable
	Rhs       Variable
	Out       Variable
	Unchecked bool
}

func (Index) operation() {}

// IndexAssign writes Out[Lhs] = Rhs.
type IndexAssign struct {
	Lhs       Variable
	Rhs       Variable
	Out       Variable
	Unchecked bool
}

func (IndexAssign) operation() {}

// SliceOp makes Out a view of Input[Start:End].
type SliceOp struct {
	Input Variable
	Start Variable
	End   Variable
	Out   Variable
}

func (SliceOp) operation() {}

// InitLine builds a vector from scalar inputs.
type InitLine struct {
	Inputs []Variable
	Out    Variable
}

func (InitLine) operation() {}

// Copy writes Out[OutIndex] = Input[InIndex].
type Copy struct {
	Input    Variable
	InIndex  Variable
	Out      Variable
	OutIndex Variable
}

func (Copy) operation() {}

// CopyBulk copies Len contiguous elements from Input[InIndex:] to
// Out[OutIndex:].
type CopyBulk struct {
	Input    Variable
	InIndex  Variable
	Out      Variable
	OutIndex Variable
	Len      uint32
}

func (CopyBulk) operation() {}

// =============================================================================
// Atomics
// =============================================================================

// AtomicLoad reads the atomic Input into Out.
type AtomicLoad struct {
	Input Variable
	Out   Variable
}

func (AtomicLoad) operation() {}

// AtomicStore writes Input into the atomic Out.
type AtomicStore struct {
	Input Variable
	Out   Variable
}

func (AtomicStore) operation() {}

// AtomicOp enumerates read-modify-write atomic operators.
type AtomicOp uint8

const (
	AtomicSwap AtomicOp = iota
	AtomicAdd
	AtomicSub
	AtomicMax
	AtomicMin
	AtomicAnd
	AtomicOr
	AtomicXor
)

// Atomic applies Op to the atomic Lhs with operand Rhs; Out receives the
// previous value.
type Atomic struct {
	Op  AtomicOp
	Lhs Variable
	Rhs Variable
	Out Variable
}

func (Atomic) operation() {}

// AtomicCompareAndSwap replaces Input with Val when it equals Cmp; Out
// receives the previous value.
type AtomicCompareAndSwap struct {
	Input Variable
	Cmp   Variable
	Val   Variable
	Out   Variable
}

func (AtomicCompareAndSwap) operation() {}

// =============================================================================
// Metadata
// =============================================================================

// Stride reads the stride of dimension Dim of the global array Var.
type Stride struct {
	Dim Variable
	Var Variable
	Out Variable
}

func (Stride) operation() {}

// Shape reads the size of dimension Dim of the global array Var.
type Shape struct {
	Dim Variable
	Var Variable
	Out Variable
}

func (Shape) operation() {}

// Length reads the number of elements of Var.
type Length struct {
	Var Variable
	Out Variable
}

func (Length) operation() {}

// =============================================================================
// Control flow
// =============================================================================

// If executes Scope when Cond is true.
type If struct {
	Cond  Variable
	Scope *Scope
}

func (If) operation() {}

// IfElse executes ScopeIf when Cond is true and ScopeElse otherwise.
type IfElse struct {
	Cond      Variable
	ScopeIf   *Scope
	ScopeElse *Scope
}

func (IfElse) operation() {}

// Select stores Then into Out when Cond is true, OrElse otherwise. It is a
// value-level choice, not a branch.
type Select struct {
	Cond   Variable
	Then   Variable
	OrElse Variable
	Out    Variable
}

func (Select) operation() {}

// SwitchCase is one arm of a Switch.
type SwitchCase struct {
	Value Variable
	Scope *Scope
}

// Switch executes the first case whose value equals Value, or
// ScopeDefault when none matches.
type Switch struct {
	Value        Variable
	ScopeDefault *Scope
	Cases        []SwitchCase
}

func (Switch) operation() {}

// Return exits the kernel.
type Return struct{}

func (Return) operation() {}

// Break exits the innermost loop.
type Break struct{}

func (Break) operation() {}

// RangeLoop iterates I from Start to End. Step is nil for a unit step.
type RangeLoop struct {
	I         Variable
	Start     Variable
	End       Variable
	Step      Variable
	Inclusive bool
	Scope     *Scope
}

func (RangeLoop) operation() {}

// Loop repeats Scope until a Break or Return.
type Loop struct {
	Scope *Scope
}

func (Loop) operation() {}

// =============================================================================
// Synchronization
// =============================================================================

// SyncKind selects what a Synchronization waits for.
type SyncKind uint8

const (
	// SyncUnits waits for every unit of the workgroup.
	SyncUnits SyncKind = iota
	// SyncStorage orders storage memory accesses.
	SyncStorage
)

// Synchronization is a barrier.
type Synchronization struct {
	Kind SyncKind
}

func (Synchronization) operation() {}

// =============================================================================
// Subgroup
// =============================================================================

// SubgroupOp enumerates cross-lane collectives over one input.
type SubgroupOp uint8

const (
	SubgroupAll SubgroupOp = iota
	SubgroupAny
	SubgroupSum
	SubgroupProd
	SubgroupMin
	SubgroupMax
)

// Subgroup applies a collective across the lanes of a subgroup.
type Subgroup struct {
	Op    SubgroupOp
	Input Variable
	Out   Variable
}

func (Subgroup) operation() {}

// SubgroupElect sets Out to true in exactly one active lane.
type SubgroupElect struct {
	Out Variable
}

func (SubgroupElect) operation() {}

// SubgroupBroadcast sets Out to Value as seen by lane Lane.
type SubgroupBroadcast struct {
	Value Variable
	Lane  Variable
	Out   Variable
}

func (SubgroupBroadcast) operation() {}

// =============================================================================
// Cooperative matrix
// =============================================================================

// CoopMmaKind selects a cooperative matrix instruction.
type CoopMmaKind uint8

const (
	CoopFill CoopMmaKind = iota
	CoopLoad
	CoopExecute
	CoopStore
)

// CoopMma is a cooperative matrix-multiply-accumulate instruction.
type CoopMma struct {
	Kind   CoopMmaKind
	Inputs []Variable
	Out    Variable
}

func (CoopMma) operation() {}
