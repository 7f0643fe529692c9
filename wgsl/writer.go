package wgsl

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gogpu/kernelwgsl/kernel"
)

// Write renders shader as WGSL source.
func Write(shader *ComputeShader) (string, error) {
	if shader == nil {
		return "", &WriteError{Message: "nil shader"}
	}
	w := newWriter(shader)
	if err := w.writeModule(); err != nil {
		return "", err
	}
	return w.String(), nil
}

// Writer generates WGSL source code from a ComputeShader.
type Writer struct {
	shader *ComputeShader

	// Output buffer
	out strings.Builder

	// Current indentation level
	indent int

	// Base expression of each slice, keyed by slice name
	slices map[string]string

	// Polyfill functions already written
	functions map[string]struct{}

	// First variable that failed to format
	err error
}

func newWriter(shader *ComputeShader) *Writer {
	return &Writer{
		shader:    shader,
		slices:    make(map[string]string),
		functions: make(map[string]struct{}),
	}
}

// String returns the generated WGSL source code.
func (w *Writer) String() string {
	return w.out.String()
}

// writeModule generates WGSL code for the entire shader.
func (w *Writer) writeModule() error {
	w.writeHeader()

	if err := w.writeBindings(); err != nil {
		return err
	}
	if err := w.writeSideTables(); err != nil {
		return err
	}
	w.writeWorkgroupSize()

	if err := w.writeExtensions(); err != nil {
		return err
	}
	return w.writeEntryPoint()
}

// writeHeader writes the enable directives.
func (w *Writer) writeHeader() {
	if w.shader.Builtins.SubgroupSize {
		w.writeLine("enable subgroups;")
		w.writeLine("")
	}
}

// =============================================================================
// Module scope
// =============================================================================

// writeBindings writes storage bindings in slot order, then
// workgroup-located bindings.
func (w *Writer) writeBindings() error {
	for _, slot := range w.shader.Slots() {
		w.writeLine("@group(0) @binding(%d) var<storage, %s> %s: %s;",
			slot.Binding, slot.Visibility, slot.Name, arrayType(slot.Item, slot.Size))
	}

	workgroup := func(name string, b Binding) error {
		if b.Location != Workgroup {
			return nil
		}
		if b.Size == nil {
			return newWriteErrorf(nil, "workgroup binding %s must have a static size", name)
		}
		w.writeLine("var<workgroup> %s: %s;", name, arrayType(b.Item, b.Size))
		return nil
	}
	for i, b := range w.shader.Inputs {
		if err := workgroup(inputName(uint32(i)), b); err != nil {
			return err
		}
	}
	for i, b := range w.shader.Outputs {
		if err := workgroup(outputName(uint32(i)), b); err != nil {
			return err
		}
	}
	for _, nb := range w.shader.Named {
		if err := workgroup(nb.Name, nb.Binding); err != nil {
			return err
		}
	}
	w.writeLine("")
	return nil
}

// writeSideTables writes shared memories and constant arrays.
func (w *Writer) writeSideTables() error {
	for _, sm := range w.shader.SharedMemories {
		w.writeLine("var<workgroup> %s: %s;", sharedMemoryName(sm.Index), sizedArrayType(sm.Item, sm.Length))
	}
	if len(w.shader.SharedMemories) > 0 {
		w.writeLine("")
	}

	for _, ca := range w.shader.ConstantArrays {
		values := make([]string, len(ca.Values))
		for i, v := range ca.Values {
			values[i] = w.name(v)
		}
		if w.err != nil {
			return w.err
		}
		ty := sizedArrayType(ca.Item, ca.Length)
		w.writeLine("const %s: %s = %s(%s);", constantArrayName(ca.Index), ty, ty, strings.Join(values, ", "))
	}
	if len(w.shader.ConstantArrays) > 0 {
		w.writeLine("")
	}
	return nil
}

// writeWorkgroupSize writes the per-axis workgroup size constants.
func (w *Writer) writeWorkgroupSize() {
	size := w.shader.WorkgroupSize
	w.writeLine("const WORKGROUP_SIZE_X = %du;", size.X)
	w.writeLine("const WORKGROUP_SIZE_Y = %du;", size.Y)
	w.writeLine("const WORKGROUP_SIZE_Z = %du;", size.Z)
	w.writeLine("")
}

// =============================================================================
// Entry point
// =============================================================================

// entryPointParams returns the builtin parameters of main.
func (w *Writer) entryPointParams() []string {
	b := w.shader.Builtins
	var params []string
	if b.GlobalInvocationID {
		params = append(params, "@builtin(global_invocation_id) global_id: vec3<u32>")
	}
	if b.LocalInvocationIndex {
		params = append(params, "@builtin(local_invocation_index) local_idx: u32")
	}
	if b.LocalInvocationID {
		params = append(params, "@builtin(local_invocation_id) local_invocation_id: vec3<u32>")
	}
	if b.WorkgroupID {
		params = append(params, "@builtin(workgroup_id) workgroup_id: vec3<u32>")
	}
	if b.NumWorkgroups {
		params = append(params, "@builtin(num_workgroups) num_workgroups: vec3<u32>")
	}
	if b.SubgroupSize {
		params = append(params, "@builtin(subgroup_size) subgroup_size: u32")
	}
	return params
}

// writeEntryPoint writes the compute entry point.
func (w *Writer) writeEntryPoint() error {
	size := w.shader.WorkgroupSize
	w.writeLine("@compute")
	w.writeLine("@workgroup_size(%d, %d, %d)", size.X, size.Y, size.Z)

	params := w.entryPointParams()
	if len(params) == 0 {
		w.writeLine("fn main() {")
	} else {
		w.writeLine("fn main(")
		w.pushIndent()
		for i, p := range params {
			if i < len(params)-1 {
				w.writeLine("%s,", p)
			} else {
				w.writeLine("%s", p)
			}
		}
		w.popIndent()
		w.writeLine(") {")
	}

	w.pushIndent()
	w.writePrelude()
	for _, la := range w.shader.LocalArrays {
		w.writeLine("var %s: %s;", localArrayName(la.Depth, la.Index), sizedArrayType(la.Item, la.Length))
	}
	if err := w.writeBlock(w.shader.Body.Instructions); err != nil {
		return err
	}
	w.popIndent()
	w.writeLine("}")
	return nil
}

// writePrelude writes the derived values the body refers to.
func (w *Writer) writePrelude() {
	b := w.shader.Builtins
	body := w.shader.Body

	if body.ID {
		w.writeLine("let id = (global_id.z * num_workgroups.x * WORKGROUP_SIZE_X * num_workgroups.y * WORKGROUP_SIZE_Y) + (global_id.y * num_workgroups.x * WORKGROUP_SIZE_X) + global_id.x;")
	}
	if b.WorkgroupIDNoAxis {
		w.writeLine("let workgroup_id_no_axis = (num_workgroups.y * num_workgroups.x * workgroup_id.z) + (num_workgroups.x * workgroup_id.y) + workgroup_id.x;")
	}
	if b.NumWorkgroupsNoAxis {
		w.writeLine("let num_workgroups_no_axis = num_workgroups.x * num_workgroups.y * num_workgroups.z;")
	}
	if b.WorkgroupSizeNoAxis {
		w.writeLine("let workgroup_size_no_axis = WORKGROUP_SIZE_X * WORKGROUP_SIZE_Y * WORKGROUP_SIZE_Z;")
	}
	if w.shader.NeedsInfo() {
		w.writeLine("let rank: u32 = info[0];")
	}
	if body.Stride || body.Shape {
		w.writeLine("let rank_2: u32 = rank * 2u;")
	}
}

// =============================================================================
// Names and literals
// =============================================================================

func inputName(id uint32) string  { return fmt.Sprintf("input_%d_global", id) }
func outputName(id uint32) string { return fmt.Sprintf("output_%d_global", id) }

func sharedMemoryName(id uint32) string            { return fmt.Sprintf("shared_memory_%d", id) }
func constantArrayName(id uint32) string           { return fmt.Sprintf("arrays_%d", id) }
func localArrayName(depth uint8, id uint32) string { return fmt.Sprintf("a_%d_%d", depth, id) }

// arrayType returns array<item> or array<item, size>.
func arrayType(item Item, size *uint32) string {
	if size == nil {
		return fmt.Sprintf("array<%s>", item)
	}
	return sizedArrayType(item, *size)
}

func sizedArrayType(item Item, length uint32) string {
	return fmt.Sprintf("array<%s, %d>", item, length)
}

// name returns the WGSL expression of v. Unknown variables record an
// error on the writer and format as an empty string.
func (w *Writer) name(v Variable) string {
	switch v := v.(type) {
	case GlobalInputArray:
		return inputName(v.ID)
	case GlobalOutputArray:
		return outputName(v.ID)
	case GlobalScalar:
		return fmt.Sprintf("scalars_%s[%d]", v.Source, v.ID)
	case ConstantScalar:
		if !constantInRange(v) {
			if w.err == nil {
				w.err = newWriteErrorf(nil, "constant %s out of range for %s", constantText(v.Value), v.Elem)
			}
			return ""
		}
		return formatConstant(v)
	case Local:
		return fmt.Sprintf("l_%d_%d", v.Depth, v.ID)
	case LocalBinding:
		return fmt.Sprintf("_%d", v.ID)
	case Slice:
		return fmt.Sprintf("slice_%d_%d", v.Depth, v.ID)
	case SharedMemory:
		return sharedMemoryName(v.ID)
	case ConstantArray:
		return constantArrayName(v.ID)
	case LocalArray:
		return localArrayName(v.Depth, v.ID)
	case Builtin:
		return v.Kind.String()
	default:
		if w.err == nil {
			w.err = newWriteErrorf(nil, "unsupported variable %T", v)
		}
		return ""
	}
}

// operand returns the expression of v, splatted to item when v is scalar
// and item is a vector.
func (w *Writer) operand(v Variable, item Item) string {
	s := w.name(v)
	if v != nil && !item.IsScalar() && v.Item().IsScalar() {
		return fmt.Sprintf("%s(%s)", item, s)
	}
	return s
}

// formatConstant returns the WGSL literal of a constant scalar.
func formatConstant(c ConstantScalar) string {
	switch c.Elem {
	case F32:
		return formatFloat(constantFloat(c.Value))
	case I32, AtomicI32:
		return fmt.Sprintf("i32(%d)", constantInt(c.Value))
	case U32, AtomicU32:
		return fmt.Sprintf("%du", constantUint(c.Value))
	case Bool:
		return strconv.FormatBool(constantBool(c.Value))
	default:
		return fmt.Sprintf("%s(%d)", c.Elem, constantInt(c.Value))
	}
}

// constantInRange reports whether the literal of c fits its target
// element. Integer literals outside the 32-bit range of the target have no
// WGSL spelling.
func constantInRange(c ConstantScalar) bool {
	switch c.Elem {
	case U32, AtomicU32:
		switch c.Value.Kind {
		case kernel.ConstUInt:
			return c.Value.UInt <= math.MaxUint32
		case kernel.ConstInt:
			return c.Value.Int >= 0 && c.Value.Int <= math.MaxUint32
		case kernel.ConstFloat:
			return c.Value.Float >= 0 && c.Value.Float <= math.MaxUint32
		}
	case I32, AtomicI32:
		switch c.Value.Kind {
		case kernel.ConstInt:
			return c.Value.Int >= math.MinInt32 && c.Value.Int <= math.MaxInt32
		case kernel.ConstUInt:
			return c.Value.UInt <= math.MaxInt32
		case kernel.ConstFloat:
			return c.Value.Float >= math.MinInt32 && c.Value.Float <= math.MaxInt32
		}
	}
	return true
}

// formatFloat formats an f32 literal. Non-finite values have no literal
// form and are written as bit patterns.
func formatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "bitcast<f32>(0x7fc00000u)"
	case math.IsInf(v, 1):
		return "bitcast<f32>(0x7f800000u)"
	case math.IsInf(v, -1):
		return "bitcast<f32>(0xff800000u)"
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return "f32(" + s + ")"
}

func constantFloat(c kernel.ConstantValue) float64 {
	switch c.Kind {
	case kernel.ConstFloat:
		return c.Float
	case kernel.ConstInt:
		return float64(c.Int)
	case kernel.ConstUInt:
		return float64(c.UInt)
	case kernel.ConstBool:
		if c.Bool {
			return 1
		}
	}
	return 0
}

func constantInt(c kernel.ConstantValue) int64 {
	switch c.Kind {
	case kernel.ConstInt:
		return c.Int
	case kernel.ConstFloat:
		return int64(c.Float)
	case kernel.ConstUInt:
		return int64(c.UInt)
	case kernel.ConstBool:
		if c.Bool {
			return 1
		}
	}
	return 0
}

func constantUint(c kernel.ConstantValue) uint64 {
	switch c.Kind {
	case kernel.ConstUInt:
		return c.UInt
	case kernel.ConstInt:
		return uint64(c.Int)
	case kernel.ConstFloat:
		return uint64(c.Float)
	case kernel.ConstBool:
		if c.Bool {
			return 1
		}
	}
	return 0
}

// constantText returns the literal as written in the kernel.
func constantText(c kernel.ConstantValue) string {
	switch c.Kind {
	case kernel.ConstInt:
		return strconv.FormatInt(c.Int, 10)
	case kernel.ConstUInt:
		return strconv.FormatUint(c.UInt, 10)
	case kernel.ConstFloat:
		return strconv.FormatFloat(c.Float, 'g', -1, 64)
	default:
		return strconv.FormatBool(c.Bool)
	}
}

func constantBool(c kernel.ConstantValue) bool {
	switch c.Kind {
	case kernel.ConstBool:
		return c.Bool
	case kernel.ConstInt:
		return c.Int != 0
	case kernel.ConstUInt:
		return c.UInt != 0
	case kernel.ConstFloat:
		return c.Float != 0
	}
	return false
}

// =============================================================================
// Output helpers
// =============================================================================

// write writes text to the output. If args are provided, uses fmt.Fprintf.
//
//nolint:goprintffuncname
func (w *Writer) write(format string, args ...any) {
	if len(args) == 0 {
		w.out.WriteString(format)
	} else {
		fmt.Fprintf(&w.out, format, args...)
	}
}

// writeLine writes a line with optional format args and a newline.
//
//nolint:goprintffuncname
func (w *Writer) writeLine(format string, args ...any) {
	if format != "" {
		w.writeIndent()
	}
	w.write(format, args...)
	w.out.WriteByte('\n')
}

// writeIndent writes the current indentation.
func (w *Writer) writeIndent() {
	for i := 0; i < w.indent; i++ {
		w.out.WriteString("    ")
	}
}

// pushIndent increases indentation.
func (w *Writer) pushIndent() {
	w.indent++
}

// popIndent decreases indentation.
func (w *Writer) popIndent() {
	if w.indent > 0 {
		w.indent--
	}
}
