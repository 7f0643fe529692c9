package wgsl

import "fmt"

// Elem is a WGSL scalar element type.
type Elem uint8

const (
	F32 Elem = iota
	I32
	U32
	Bool
	AtomicI32
	AtomicU32
)

// Size returns the size of the element in bytes.
func (e Elem) Size() int {
	return 4
}

// IsFloat reports whether e is a floating-point type.
func (e Elem) IsFloat() bool {
	return e == F32
}

// IsAtomic reports whether e is an atomic type.
func (e Elem) IsAtomic() bool {
	return e == AtomicI32 || e == AtomicU32
}

// String returns the WGSL spelling of the element.
func (e Elem) String() string {
	switch e {
	case F32:
		return "f32"
	case I32:
		return "i32"
	case U32:
		return "u32"
	case Bool:
		return "bool"
	case AtomicI32:
		return "atomic<i32>"
	case AtomicU32:
		return "atomic<u32>"
	default:
		return fmt.Sprintf("elem(%d)", uint8(e))
	}
}

// ident returns a spelling usable inside identifiers.
func (e Elem) ident() string {
	switch e {
	case AtomicI32:
		return "atomic_i32"
	case AtomicU32:
		return "atomic_u32"
	default:
		return e.String()
	}
}

// VectorSize is the number of components of an item.
type VectorSize uint8

const (
	Scalar VectorSize = 1
	Vec2   VectorSize = 2
	Vec3   VectorSize = 3
	Vec4   VectorSize = 4
)

// Item is an element together with its vector size.
type Item struct {
	Elem Elem
	Size VectorSize
}

// ScalarOf returns the scalar item of e.
func ScalarOf(e Elem) Item { return Item{Elem: e, Size: Scalar} }

// Vec2Of returns the two-component vector of e.
func Vec2Of(e Elem) Item { return Item{Elem: e, Size: Vec2} }

// Vec3Of returns the three-component vector of e.
func Vec3Of(e Elem) Item { return Item{Elem: e, Size: Vec3} }

// Vec4Of returns the four-component vector of e.
func Vec4Of(e Elem) Item { return Item{Elem: e, Size: Vec4} }

// VectorizationFactor returns the number of components, 1 for scalars.
func (i Item) VectorizationFactor() int {
	if i.Size == 0 {
		return 1
	}
	return int(i.Size)
}

// IsScalar reports whether the item has a single component.
func (i Item) IsScalar() bool {
	return i.VectorizationFactor() == 1
}

// String returns the WGSL type of the item, e.g. "vec4<f32>".
func (i Item) String() string {
	if i.IsScalar() {
		return i.Elem.String()
	}
	return fmt.Sprintf("vec%d<%s>", i.VectorizationFactor(), i.Elem)
}

// ident returns a spelling of the item usable inside identifiers,
// e.g. "vec4_f32".
func (i Item) ident() string {
	if i.IsScalar() {
		return i.Elem.ident()
	}
	return fmt.Sprintf("vec%d_%s", i.VectorizationFactor(), i.Elem.ident())
}
