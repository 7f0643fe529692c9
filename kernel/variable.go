package kernel

// Variable is a reference to a value the kernel reads or writes.
// The set of implementations is closed; see the package documentation.
type Variable interface {
	variable()
}

// GlobalInputArray is the ID-th input binding of the kernel.
type GlobalInputArray struct {
	ID   uint32
	Item Item
}

func (GlobalInputArray) variable() {}

// GlobalOutputArray is the ID-th output binding of the kernel.
type GlobalOutputArray struct {
	ID   uint32
	Item Item
}

func (GlobalOutputArray) variable() {}

// GlobalScalar is the ID-th entry of the scalar buffer of type Elem.
type GlobalScalar struct {
	ID   uint32
	Elem Elem
}

func (GlobalScalar) variable() {}

// Local is a mutable register declared at nesting depth Depth.
type Local struct {
	ID    uint32
	Item  Item
	Depth uint8
}

func (Local) variable() {}

// Versioned is an SSA version of a local register. The version only
// matters to upstream passes; it lowers exactly like Local.
type Versioned struct {
	ID      uint32
	Item    Item
	Depth   uint8
	Version uint16
}

func (Versioned) variable() {}

// LocalBinding is an immutable let-binding.
type LocalBinding struct {
	ID   uint32
	Item Item
}

func (LocalBinding) variable() {}

// Slice is an aliasing view into an array. Slices are materialized at
// their point of use and are never declared.
type Slice struct {
	ID    uint32
	Item  Item
	Depth uint8
}

func (Slice) variable() {}

// SharedMemory is workgroup-local memory of Length elements.
type SharedMemory struct {
	ID     uint32
	Item   Item
	Length uint32
}

func (SharedMemory) variable() {}

// ConstantArray is a literal array initialized in a scope.
type ConstantArray struct {
	ID     uint32
	Item   Item
	Length uint32
}

func (ConstantArray) variable() {}

// LocalArray is a per-thread array of Length elements.
type LocalArray struct {
	ID     uint32
	Item   Item
	Depth  uint8
	Length uint32
}

func (LocalArray) variable() {}

// ConstantScalar is a literal value. Its element type comes from the
// literal itself.
type ConstantScalar struct {
	Value ConstantValue
}

func (ConstantScalar) variable() {}

// Matrix is a cooperative-matrix fragment.
type Matrix struct {
	ID    uint32
	Elem  Elem
	Ident MatrixIdent
	M     uint8
	N     uint8
	K     uint8
}

func (Matrix) variable() {}

// MatrixIdent selects the role of a cooperative-matrix fragment.
type MatrixIdent uint8

const (
	MatrixA MatrixIdent = iota
	MatrixB
	MatrixAccumulator
)

// Builtin is a runtime-provided identifier such as the thread position.
type Builtin struct {
	Kind BuiltinKind
}

func (Builtin) variable() {}

// BuiltinKind enumerates the builtin identifiers.
type BuiltinKind uint8

const (
	// AbsolutePos is the flattened global thread position.
	AbsolutePos BuiltinKind = iota
	AbsolutePosX
	AbsolutePosY
	AbsolutePosZ

	// UnitPos is the flattened position of the thread in its workgroup.
	UnitPos
	UnitPosX
	UnitPosY
	UnitPosZ

	// GroupPos is the flattened workgroup position.
	GroupPos
	GroupPosX
	GroupPosY
	GroupPosZ

	// GroupDim is the flattened workgroup size.
	GroupDim
	GroupDimX
	GroupDimY
	GroupDimZ

	// GroupCount is the flattened number of workgroups.
	GroupCount
	GroupCountX
	GroupCountY
	GroupCountZ

	// SubgroupDim is the number of lanes in a subgroup.
	SubgroupDim

	// Rank is the number of dimensions of the kernel's tensors.
	Rank
)

var builtinNames = [...]string{
	AbsolutePos:  "AbsolutePos",
	AbsolutePosX: "AbsolutePosX",
	AbsolutePosY: "AbsolutePosY",
	AbsolutePosZ: "AbsolutePosZ",
	UnitPos:      "UnitPos",
	UnitPosX:     "UnitPosX",
	UnitPosY:     "UnitPosY",
	UnitPosZ:     "UnitPosZ",
	GroupPos:     "GroupPos",
	GroupPosX:    "GroupPosX",
	GroupPosY:    "GroupPosY",
	GroupPosZ:    "GroupPosZ",
	GroupDim:     "GroupDim",
	GroupDimX:    "GroupDimX",
	GroupDimY:    "GroupDimY",
	GroupDimZ:    "GroupDimZ",
	GroupCount:   "GroupCount",
	GroupCountX:  "GroupCountX",
	GroupCountY:  "GroupCountY",
	GroupCountZ:  "GroupCountZ",
	SubgroupDim:  "SubgroupDim",
	Rank:         "Rank",
}

func (k BuiltinKind) String() string {
	if int(k) < len(builtinNames) {
		return builtinNames[k]
	}
	return "Unknown"
}

// ConstantKind is the kind of a literal value.
type ConstantKind uint8

const (
	ConstInt ConstantKind = iota
	ConstFloat
	ConstUInt
	ConstBool
)

// ConstantValue is a literal scalar. Only the field matching Kind is set.
type ConstantValue struct {
	Kind      ConstantKind
	Int       int64
	IntKind   IntKind
	Float     float64
	FloatKind FloatKind
	UInt      uint64
	Bool      bool
}

// IntValue returns a signed integer literal.
func IntValue(v int64, kind IntKind) ConstantValue {
	return ConstantValue{Kind: ConstInt, Int: v, IntKind: kind}
}

// FloatValue returns a floating-point literal.
func FloatValue(v float64, kind FloatKind) ConstantValue {
	return ConstantValue{Kind: ConstFloat, Float: v, FloatKind: kind}
}

// UIntValue returns an unsigned integer literal.
func UIntValue(v uint64) ConstantValue {
	return ConstantValue{Kind: ConstUInt, UInt: v}
}

// BoolValue returns a boolean literal.
func BoolValue(v bool) ConstantValue {
	return ConstantValue{Kind: ConstBool, Bool: v}
}

// Elem returns the element type of the literal.
func (c ConstantValue) Elem() Elem {
	switch c.Kind {
	case ConstInt:
		return Int(c.IntKind)
	case ConstFloat:
		return Float(c.FloatKind)
	case ConstBool:
		return Bool()
	default:
		return UInt()
	}
}
