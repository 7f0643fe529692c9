package wgsl

import "fmt"

// ExtensionKind enumerates the polyfilled functions a shader may call.
type ExtensionKind uint8

const (
	// ExtPowfPrimitive is the scalar pow that handles negative bases.
	ExtPowfPrimitive ExtensionKind = iota
	// ExtPowfScalar raises each component to a scalar exponent.
	ExtPowfScalar
	// ExtPowf raises each component to the matching exponent component.
	ExtPowf
	// ExtErf is the error function approximation.
	ExtErf
	// ExtSafeTanh is tanh clamped for large inputs.
	ExtSafeTanh
)

func (k ExtensionKind) String() string {
	switch k {
	case ExtPowfPrimitive:
		return "PowfPrimitive"
	case ExtPowfScalar:
		return "PowfScalar"
	case ExtPowf:
		return "Powf"
	case ExtErf:
		return "Erf"
	case ExtSafeTanh:
		return "SafeTanh"
	default:
		return fmt.Sprintf("ExtensionKind(%d)", uint8(k))
	}
}

// Extension is a polyfill specialized for Item. Extensions are comparable
// and a shader holds each at most once.
type Extension struct {
	Kind ExtensionKind
	Item Item
}

// FunctionName returns the WGSL name of the polyfill entry function.
func (e Extension) FunctionName() string {
	switch e.Kind {
	case ExtPowfPrimitive:
		return "powf_primitive_" + e.Item.Elem.ident()
	case ExtPowfScalar:
		return "powf_scalar_" + e.Item.ident()
	case ExtPowf:
		return "powf_" + e.Item.ident()
	case ExtErf:
		return "erf_" + e.Item.ident()
	case ExtSafeTanh:
		return "safe_tanh_" + e.Item.ident()
	default:
		return fmt.Sprintf("extension_%d_%s", uint8(e.Kind), e.Item.ident())
	}
}

func (e Extension) String() string {
	return fmt.Sprintf("%s(%s)", e.Kind, e.Item)
}
