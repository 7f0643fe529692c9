package kernel

import "fmt"

// ElemKind is the family of an element type.
type ElemKind uint8

const (
	ElemFloat ElemKind = iota
	ElemInt
	ElemUInt
	ElemBool
	ElemAtomicInt
	ElemAtomicUInt
)

// FloatKind is the width of a floating-point element.
type FloatKind uint8

const (
	F16 FloatKind = iota
	BF16
	F32
	F64
)

// IntKind is the width of a signed integer element.
type IntKind uint8

const (
	I32 IntKind = iota
	I64
)

// Elem is an element type. Float is only meaningful for ElemFloat and
// Int only for ElemInt and ElemAtomicInt.
type Elem struct {
	Kind  ElemKind
	Float FloatKind
	Int   IntKind
}

// Float returns a floating-point element of the given kind.
func Float(kind FloatKind) Elem { return Elem{Kind: ElemFloat, Float: kind} }

// Int returns a signed integer element of the given kind.
func Int(kind IntKind) Elem { return Elem{Kind: ElemInt, Int: kind} }

// UInt returns the 32-bit unsigned integer element.
func UInt() Elem { return Elem{Kind: ElemUInt} }

// Bool returns the boolean element.
func Bool() Elem { return Elem{Kind: ElemBool} }

// AtomicInt returns an atomic signed integer element of the given kind.
func AtomicInt(kind IntKind) Elem { return Elem{Kind: ElemAtomicInt, Int: kind} }

// AtomicUInt returns the atomic 32-bit unsigned integer element.
func AtomicUInt() Elem { return Elem{Kind: ElemAtomicUInt} }

// String returns the conventional short name of the element, e.g. "f32".
func (e Elem) String() string {
	switch e.Kind {
	case ElemFloat:
		switch e.Float {
		case F16:
			return "f16"
		case BF16:
			return "bf16"
		case F32:
			return "f32"
		case F64:
			return "f64"
		}
	case ElemInt:
		switch e.Int {
		case I32:
			return "i32"
		case I64:
			return "i64"
		}
	case ElemUInt:
		return "u32"
	case ElemBool:
		return "bool"
	case ElemAtomicInt:
		switch e.Int {
		case I32:
			return "atomic<i32>"
		case I64:
			return "atomic<i64>"
		}
	case ElemAtomicUInt:
		return "atomic<u32>"
	}
	return fmt.Sprintf("elem(%d)", e.Kind)
}

// Item is an element type together with its vectorization factor.
// A zero Vectorization means the item is not vectorized and behaves
// like a factor of 1.
type Item struct {
	Elem          Elem
	Vectorization uint8
}

// NewItem returns a scalar item of elem.
func NewItem(elem Elem) Item {
	return Item{Elem: elem}
}

// Vectorized returns the item with the given vectorization factor.
func (i Item) Vectorized(factor uint8) Item {
	i.Vectorization = factor
	return i
}

// Factor returns the effective vectorization factor (at least 1).
func (i Item) Factor() uint8 {
	if i.Vectorization == 0 {
		return 1
	}
	return i.Vectorization
}

func (i Item) String() string {
	if i.Factor() == 1 {
		return i.Elem.String()
	}
	return fmt.Sprintf("%s x%d", i.Elem, i.Vectorization)
}
