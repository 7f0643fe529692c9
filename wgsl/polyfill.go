package wgsl

import (
	"fmt"
	"strings"
)

// writeExtensions writes the polyfill functions of every registered
// extension. Each function is written once even when several extensions
// depend on it.
func (w *Writer) writeExtensions() error {
	for _, ext := range w.shader.Extensions {
		switch ext.Kind {
		case ExtPowfPrimitive:
			w.writePowfPrimitive(ext.Item.Elem)
		case ExtPowfScalar:
			w.writePowfPrimitive(ext.Item.Elem)
			w.writePowfScalar(ext.Item)
		case ExtPowf:
			w.writePowfPrimitive(ext.Item.Elem)
			w.writePowf(ext.Item)
		case ExtErf:
			w.writeErf(ext.Item)
		case ExtSafeTanh:
			w.writeSafeTanh(ext.Item)
		default:
			return newWriteErrorf(nil, "unsupported extension %s", ext)
		}
	}
	return nil
}

// beginFunction starts a polyfill function and reports whether it still
// needs to be written.
func (w *Writer) beginFunction(name, params, result string) bool {
	if _, done := w.functions[name]; done {
		return false
	}
	w.functions[name] = struct{}{}
	w.writeLine("fn %s(%s) -> %s {", name, params, result)
	w.pushIndent()
	return true
}

func (w *Writer) endFunction() {
	w.popIndent()
	w.writeLine("}")
	w.writeLine("")
}

// componentwise returns item(f(x[0]), f(x[1]), ...) for a vector item.
func componentwise(item Item, f func(i int) string) string {
	parts := make([]string, item.VectorizationFactor())
	for i := range parts {
		parts[i] = f(i)
	}
	return fmt.Sprintf("%s(%s)", item, strings.Join(parts, ", "))
}

// writePowfPrimitive writes the scalar pow handling negative bases with
// integral exponents, which WGSL pow leaves undefined.
func (w *Writer) writePowfPrimitive(elem Elem) {
	name := Extension{Kind: ExtPowfPrimitive, Item: ScalarOf(elem)}.FunctionName()
	if !w.beginFunction(name, fmt.Sprintf("lhs: %s, rhs: %s", elem, elem), elem.String()) {
		return
	}
	w.writeLine("let modulo = rhs %s 2.0;", "%")
	w.writeLine("if rhs == 0.0 {")
	w.writeLine("    return 1.0;")
	w.writeLine("}")
	w.writeLine("if modulo == 0.0 {")
	w.writeLine("    return pow(abs(lhs), rhs);")
	w.writeLine("} else if abs(modulo) == 1.0 && lhs < 0.0 {")
	w.writeLine("    return -1.0 * pow(-1.0 * lhs, rhs);")
	w.writeLine("}")
	w.writeLine("return pow(lhs, rhs);")
	w.endFunction()
}

// writePowfScalar writes pow of each component by a scalar exponent.
func (w *Writer) writePowfScalar(item Item) {
	name := Extension{Kind: ExtPowfScalar, Item: item}.FunctionName()
	primitive := Extension{Kind: ExtPowfPrimitive, Item: item}.FunctionName()
	if !w.beginFunction(name, fmt.Sprintf("lhs: %s, rhs: %s", item, item.Elem), item.String()) {
		return
	}
	if item.IsScalar() {
		w.writeLine("return %s(lhs, rhs);", primitive)
	} else {
		w.writeLine("return %s;", componentwise(item, func(i int) string {
			return fmt.Sprintf("%s(lhs[%d], rhs)", primitive, i)
		}))
	}
	w.endFunction()
}

// writePowf writes pow of each component by the matching exponent.
func (w *Writer) writePowf(item Item) {
	name := Extension{Kind: ExtPowf, Item: item}.FunctionName()
	primitive := Extension{Kind: ExtPowfPrimitive, Item: item}.FunctionName()
	if !w.beginFunction(name, fmt.Sprintf("lhs: %s, rhs: %s", item, item), item.String()) {
		return
	}
	if item.IsScalar() {
		w.writeLine("return %s(lhs, rhs);", primitive)
	} else {
		w.writeLine("return %s;", componentwise(item, func(i int) string {
			return fmt.Sprintf("%s(lhs[%d], rhs[%d])", primitive, i, i)
		}))
	}
	w.endFunction()
}

// writeErf writes the Abramowitz and Stegun approximation of erf
// (formula 7.1.26, maximum error 1.5e-7).
func (w *Writer) writeErf(item Item) {
	elem := item.Elem
	positive := "erf_positive_scalar_" + elem.ident()
	scalar := "erf_scalar_" + elem.ident()

	if w.beginFunction(positive, "x: "+elem.String(), elem.String()) {
		w.writeLine("let p = 0.3275911;")
		w.writeLine("let a1 = 0.254829592;")
		w.writeLine("let a2 = -0.284496736;")
		w.writeLine("let a3 = 1.421413741;")
		w.writeLine("let a4 = -1.453152027;")
		w.writeLine("let a5 = 1.061405429;")
		w.writeLine("let t = 1.0 / (1.0 + p * abs(x));")
		w.writeLine("let tmp = ((((a5 * t + a4) * t) + a3) * t + a2) * t + a1;")
		w.writeLine("return 1.0 - (tmp * t * exp(-x * x));")
		w.endFunction()
	}

	if w.beginFunction(scalar, "x: "+elem.String(), elem.String()) {
		w.writeLine("if x < 0.0 {")
		w.writeLine("    return -1.0 * %s(-1.0 * x);", positive)
		w.writeLine("}")
		w.writeLine("return %s(x);", positive)
		w.endFunction()
	}

	name := Extension{Kind: ExtErf, Item: item}.FunctionName()
	if !w.beginFunction(name, "x: "+item.String(), item.String()) {
		return
	}
	if item.IsScalar() {
		w.writeLine("return %s(x);", scalar)
	} else {
		w.writeLine("return %s;", componentwise(item, func(i int) string {
			return fmt.Sprintf("%s(x[%d])", scalar, i)
		}))
	}
	w.endFunction()
}

// writeSafeTanh writes tanh saturated to 1 for inputs above 43, where
// some drivers return NaN.
func (w *Writer) writeSafeTanh(item Item) {
	elem := item.Elem
	scalar := "safe_tanh_scalar_" + elem.ident()

	if w.beginFunction(scalar, "x: "+elem.String(), elem.String()) {
		w.writeLine("if x > 43.0 {")
		w.writeLine("    return 1.0;")
		w.writeLine("}")
		w.writeLine("return tanh(x);")
		w.endFunction()
	}

	name := Extension{Kind: ExtSafeTanh, Item: item}.FunctionName()
	if !w.beginFunction(name, "x: "+item.String(), item.String()) {
		return
	}
	if item.IsScalar() {
		w.writeLine("return %s(x);", scalar)
	} else {
		w.writeLine("return %s;", componentwise(item, func(i int) string {
			return fmt.Sprintf("%s(x[%d])", scalar, i)
		}))
	}
	w.endFunction()
}
