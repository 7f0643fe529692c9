package wgsl

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/kernelwgsl/kernel"
)

// mustContainWGSL asserts the output contains the expected substring.
func mustContainWGSL(t *testing.T, source, expected string) {
	t.Helper()
	if !strings.Contains(source, expected) {
		t.Errorf("Expected output to contain %q, but it was not found.\nOutput:\n%s", expected, source)
	}
}

// mustNotContainWGSL asserts the output does NOT contain the substring.
func mustNotContainWGSL(t *testing.T, source, forbidden string) {
	t.Helper()
	if strings.Contains(source, forbidden) {
		t.Errorf("Expected output NOT to contain %q, but it was found.\nOutput:\n%s", forbidden, source)
	}
}

func writeShader(t *testing.T, shader *ComputeShader) string {
	t.Helper()
	source, err := Write(shader)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	return source
}

func f32Local(depth uint8, id uint32) Local {
	return Local{ID: id, Type: ScalarOf(F32), Depth: depth}
}

func u32Const(v uint64) ConstantScalar {
	return ConstantScalar{Value: kernel.UIntValue(v), Elem: U32}
}

// addShader is out[id] = a[id] + b[id] over f32 arrays.
func addShader() *ComputeShader {
	a, b := f32Local(0, 0), f32Local(0, 1)
	id := Builtin{Kind: ID}
	return &ComputeShader{
		Inputs: []Binding{
			{Visibility: Read, Location: Storage, Item: ScalarOf(F32)},
			{Visibility: Read, Location: Storage, Item: ScalarOf(F32)},
		},
		Outputs: []Binding{
			{Visibility: ReadWrite, Location: Storage, Item: ScalarOf(F32)},
		},
		WorkgroupSize: kernel.Dim3{X: 64, Y: 1, Z: 1},
		Builtins:      Builtins{GlobalInvocationID: true, NumWorkgroups: true},
		Body: Body{
			ID: true,
			Instructions: []Instruction{
				DeclareVariable{Var: a},
				DeclareVariable{Var: b},
				Index{Lhs: GlobalInputArray{ID: 0, Type: ScalarOf(F32)}, Rhs: id, Out: a},
				Index{Lhs: GlobalInputArray{ID: 1, Type: ScalarOf(F32)}, Rhs: id, Out: b},
				Binary{Op: Add, Lhs: a, Rhs: b, Out: a},
				IndexAssign{Lhs: id, Rhs: a, Out: GlobalOutputArray{ID: 0, Type: ScalarOf(F32)}},
			},
		},
	}
}

func TestWrite_AddKernel(t *testing.T) {
	want := `@group(0) @binding(0) var<storage, read> input_0_global: array<f32>;
@group(0) @binding(1) var<storage, read> input_1_global: array<f32>;
@group(0) @binding(2) var<storage, read_write> output_0_global: array<f32>;

const WORKGROUP_SIZE_X = 64u;
const WORKGROUP_SIZE_Y = 1u;
const WORKGROUP_SIZE_Z = 1u;

@compute
@workgroup_size(64, 1, 1)
fn main(
    @builtin(global_invocation_id) global_id: vec3<u32>,
    @builtin(num_workgroups) num_workgroups: vec3<u32>
) {
    let id = (global_id.z * num_workgroups.x * WORKGROUP_SIZE_X * num_workgroups.y * WORKGROUP_SIZE_Y) + (global_id.y * num_workgroups.x * WORKGROUP_SIZE_X) + global_id.x;
    var l_0_0: f32;
    var l_0_1: f32;
    l_0_0 = input_0_global[id];
    l_0_1 = input_1_global[id];
    l_0_0 = l_0_0 + l_0_1;
    output_0_global[id] = l_0_0;
}
`
	got := writeShader(t, addShader())
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Write() mismatch (-want +got):\n%s", diff)
	}
}

func TestWrite_NilShader(t *testing.T) {
	var werr *WriteError
	if _, err := Write(nil); !errors.As(err, &werr) {
		t.Fatalf("Write(nil) error = %v, want *WriteError", err)
	}
}

func TestWrite_NoBuiltins(t *testing.T) {
	shader := &ComputeShader{
		WorkgroupSize: kernel.Dim3{X: 1, Y: 1, Z: 1},
		Body:          Body{Instructions: []Instruction{Return{}}},
	}
	source := writeShader(t, shader)
	mustContainWGSL(t, source, "fn main() {\n    return;\n}\n")
	mustNotContainWGSL(t, source, "@builtin")
	mustNotContainWGSL(t, source, "info")
}

func TestWrite_BindingOrder(t *testing.T) {
	size := uint32(4)
	shader := &ComputeShader{
		Inputs: []Binding{
			{Visibility: Read, Location: Storage, Item: Vec4Of(F32)},
			{Visibility: Read, Location: Workgroup, Item: ScalarOf(F32), Size: &size},
		},
		Outputs: []Binding{
			{Visibility: ReadWrite, Location: Storage, Item: ScalarOf(I32)},
		},
		Named: []NamedBinding{
			{Name: "scalars_u32", Binding: Binding{Visibility: Read, Location: Storage, Item: ScalarOf(U32), Size: &size}},
		},
		WorkgroupSize: kernel.Dim3{X: 8, Y: 8, Z: 1},
		Body:          Body{Rank: true},
	}

	slots := shader.Slots()
	var names []string
	for _, s := range slots {
		names = append(names, s.Name)
	}
	want := []string{"input_0_global", "output_0_global", "info", "scalars_u32"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("Slots() names mismatch (-want +got):\n%s", diff)
	}
	for i, s := range slots {
		if s.Binding != uint32(i) {
			t.Errorf("slot %s binding = %d, want %d", s.Name, s.Binding, i)
		}
	}

	source := writeShader(t, shader)
	mustContainWGSL(t, source, "@group(0) @binding(0) var<storage, read> input_0_global: array<vec4<f32>>;")
	mustContainWGSL(t, source, "@group(0) @binding(1) var<storage, read_write> output_0_global: array<i32>;")
	mustContainWGSL(t, source, "@group(0) @binding(2) var<storage, read> info: array<u32>;")
	mustContainWGSL(t, source, "@group(0) @binding(3) var<storage, read> scalars_u32: array<u32, 4>;")
	mustContainWGSL(t, source, "var<workgroup> input_1_global: array<f32, 4>;")
	mustContainWGSL(t, source, "let rank: u32 = info[0];")
	mustNotContainWGSL(t, source, "rank_2")
}

func TestWrite_WorkgroupBindingNeedsSize(t *testing.T) {
	shader := &ComputeShader{
		Inputs: []Binding{{Visibility: Read, Location: Workgroup, Item: ScalarOf(F32)}},
	}
	if _, err := Write(shader); err == nil {
		t.Fatal("expected error for runtime-sized workgroup binding")
	}
}

func TestWrite_EntryPointParams(t *testing.T) {
	shader := &ComputeShader{
		WorkgroupSize: kernel.Dim3{X: 1, Y: 1, Z: 1},
		Builtins: Builtins{
			GlobalInvocationID:   true,
			LocalInvocationIndex: true,
			LocalInvocationID:    true,
			WorkgroupID:          true,
			NumWorkgroups:        true,
			SubgroupSize:         true,
			WorkgroupIDNoAxis:    true,
			NumWorkgroupsNoAxis:  true,
			WorkgroupSizeNoAxis:  true,
		},
	}
	source := writeShader(t, shader)

	for _, builtin := range []string{
		"global_invocation_id",
		"local_invocation_index",
		"local_invocation_id",
		"workgroup_id",
		"num_workgroups",
		"subgroup_size",
	} {
		if n := strings.Count(source, "@builtin("+builtin+")"); n != 1 {
			t.Errorf("@builtin(%s) appears %d times, want 1", builtin, n)
		}
	}
	if !strings.HasPrefix(source, "enable subgroups;\n") {
		t.Errorf("expected subgroups enable directive first, got:\n%s", source)
	}
	mustContainWGSL(t, source, "@builtin(subgroup_size) subgroup_size: u32\n) {")
	mustContainWGSL(t, source, "let workgroup_id_no_axis = (num_workgroups.y * num_workgroups.x * workgroup_id.z) + (num_workgroups.x * workgroup_id.y) + workgroup_id.x;")
	mustContainWGSL(t, source, "let num_workgroups_no_axis = num_workgroups.x * num_workgroups.y * num_workgroups.z;")
	mustContainWGSL(t, source, "let workgroup_size_no_axis = WORKGROUP_SIZE_X * WORKGROUP_SIZE_Y * WORKGROUP_SIZE_Z;")
}

func TestWrite_SideTables(t *testing.T) {
	one := ConstantScalar{Value: kernel.FloatValue(1, kernel.F32), Elem: F32}
	half := ConstantScalar{Value: kernel.FloatValue(0.5, kernel.F32), Elem: F32}
	shader := &ComputeShader{
		SharedMemories: []SharedMemoryDecl{{Index: 0, Item: Vec4Of(F32), Length: 256}},
		ConstantArrays: []ConstantArrayDecl{{Index: 0, Item: ScalarOf(F32), Length: 2, Values: []Variable{one, half}}},
		LocalArrays:    []LocalArrayDecl{{Index: 3, Item: ScalarOf(U32), Depth: 1, Length: 8}},
		WorkgroupSize:  kernel.Dim3{X: 1, Y: 1, Z: 1},
	}
	source := writeShader(t, shader)
	mustContainWGSL(t, source, "var<workgroup> shared_memory_0: array<vec4<f32>, 256>;")
	mustContainWGSL(t, source, "const arrays_0: array<f32, 2> = array<f32, 2>(f32(1.0), f32(0.5));")
	mustContainWGSL(t, source, "    var a_1_3: array<u32, 8>;")
}

func TestWrite_Constants(t *testing.T) {
	tests := []struct {
		name string
		c    ConstantScalar
		want string
	}{
		{"u32", u32Const(5), "5u"},
		{"i32", ConstantScalar{Value: kernel.IntValue(-3, kernel.I32), Elem: I32}, "i32(-3)"},
		{"f32 integral", ConstantScalar{Value: kernel.FloatValue(2, kernel.F32), Elem: F32}, "f32(2.0)"},
		{"f32 fraction", ConstantScalar{Value: kernel.FloatValue(1.5, kernel.F32), Elem: F32}, "f32(1.5)"},
		{"f32 from int", ConstantScalar{Value: kernel.IntValue(7, kernel.I32), Elem: F32}, "f32(7.0)"},
		{"f32 nan", ConstantScalar{Value: kernel.FloatValue(math.NaN(), kernel.F32), Elem: F32}, "bitcast<f32>(0x7fc00000u)"},
		{"f32 -inf", ConstantScalar{Value: kernel.FloatValue(math.Inf(-1), kernel.F32), Elem: F32}, "bitcast<f32>(0xff800000u)"},
		{"bool", ConstantScalar{Value: kernel.BoolValue(true), Elem: Bool}, "true"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatConstant(tt.c); got != tt.want {
				t.Errorf("formatConstant() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrite_ConstantBounds(t *testing.T) {
	out := Local{ID: 0, Type: ScalarOf(U32)}
	shader := &ComputeShader{Body: Body{Instructions: []Instruction{
		Assign{Input: u32Const(math.MaxUint32), Out: out},
		Assign{Input: ConstantScalar{Value: kernel.IntValue(math.MinInt32, kernel.I32), Elem: I32}, Out: out},
	}}}
	source := writeShader(t, shader)
	mustContainWGSL(t, source, "l_0_0 = 4294967295u;")
	mustContainWGSL(t, source, "l_0_0 = u32(i32(-2147483648));")

	shader.Body.Instructions = []Instruction{Assign{Input: u32Const(math.MaxUint32 + 1), Out: out}}
	_, err := Write(shader)
	var werr *WriteError
	if !errors.As(err, &werr) {
		t.Fatalf("Write() error = %v, want *WriteError", err)
	}
	if !strings.Contains(werr.Message, "4294967296") {
		t.Errorf("error %q does not name the literal", werr.Message)
	}
}

func TestWrite_Instructions(t *testing.T) {
	x, y, z := f32Local(0, 0), f32Local(0, 1), f32Local(0, 2)
	v := Local{ID: 3, Type: Vec4Of(F32), Depth: 0}
	u := Local{ID: 4, Type: ScalarOf(U32), Depth: 0}
	i := Local{ID: 5, Type: ScalarOf(I32), Depth: 0}
	cond := Local{ID: 6, Type: ScalarOf(Bool), Depth: 0}
	out := GlobalOutputArray{ID: 0, Type: ScalarOf(U32)}
	atomic := SharedMemory{ID: 0, Type: ScalarOf(AtomicU32), Length: 1}
	scalar := GlobalScalar{ID: 2, Elem: F32, Source: kernel.Float(kernel.F32)}

	tests := []struct {
		name string
		inst Instruction
		want string
	}{
		{"sub", Binary{Op: Sub, Lhs: x, Rhs: y, Out: z}, "l_0_2 = l_0_0 - l_0_1;"},
		{"modulo", Binary{Op: Modulo, Lhs: u, Rhs: u32Const(3), Out: u}, "l_0_4 = l_0_4 % 3u;"},
		{"float remainder", Binary{Op: Remainder, Lhs: x, Rhs: y, Out: z}, "l_0_2 = l_0_0 - l_0_1 * floor(l_0_0 / l_0_1);"},
		{"int remainder", Binary{Op: Remainder, Lhs: i, Rhs: i, Out: i}, "l_0_5 = ((l_0_5 % l_0_5) + l_0_5) % l_0_5;"},
		{"lower", Binary{Op: Lower, Lhs: x, Rhs: y, Out: cond}, "l_0_6 = l_0_0 < l_0_1;"},
		{"shift", Binary{Op: ShiftLeft, Lhs: u, Rhs: u32Const(1), Out: u}, "l_0_4 = l_0_4 << 1u;"},
		{"max splat", Binary{Op: Max, Lhs: v, Rhs: x, Out: v}, "l_0_3 = max(l_0_3, vec4<f32>(l_0_0));"},
		{"scalar dot", Binary{Op: Dot, Lhs: x, Rhs: y, Out: z}, "l_0_2 = l_0_0 * l_0_1;"},
		{"vector dot", Binary{Op: Dot, Lhs: v, Rhs: v, Out: x}, "l_0_0 = dot(l_0_3, l_0_3);"},
		{"powf scalar", Binary{Op: Powf, Lhs: v, Rhs: scalar, Out: v}, "l_0_3 = powf_scalar_vec4_f32(l_0_3, scalars_f32[2]);"},
		{"powf vector", Binary{Op: Powf, Lhs: v, Rhs: v, Out: v}, "l_0_3 = powf_vec4_f32(l_0_3, l_0_3);"},
		{"exp", Unary{Op: Exp, Input: x, Out: y}, "l_0_1 = exp(l_0_0);"},
		{"log1p", Unary{Op: Log1p, Input: x, Out: y}, "l_0_1 = log(l_0_0 + 1.0);"},
		{"recip", Unary{Op: Recip, Input: x, Out: y}, "l_0_1 = 1.0 / l_0_0;"},
		{"neg", Unary{Op: Negate, Input: x, Out: y}, "l_0_1 = -l_0_0;"},
		{"not", Unary{Op: Not, Input: cond, Out: cond}, "l_0_6 = !l_0_6;"},
		{"erf", Unary{Op: Erf, Input: v, Out: v}, "l_0_3 = erf_vec4_f32(l_0_3);"},
		{"tanh", Unary{Op: Tanh, Input: x, Out: y}, "l_0_1 = tanh(l_0_0);"},
		{"magnitude", Unary{Op: Magnitude, Input: v, Out: x}, "l_0_0 = length(l_0_3);"},
		{"normalize scalar", Unary{Op: Normalize, Input: x, Out: y}, "l_0_1 = sign(l_0_0);"},
		{"fma", Fma{A: x, B: y, C: z, Out: z}, "l_0_2 = fma(l_0_0, l_0_1, l_0_2);"},
		{"clamp", Clamp{Input: v, Min: x, Max: y, Out: v}, "l_0_3 = clamp(l_0_3, vec4<f32>(l_0_0), vec4<f32>(l_0_1));"},
		{"assign", Assign{Input: x, Out: y}, "l_0_1 = l_0_0;"},
		{"assign cast", Assign{Input: u, Out: x}, "l_0_0 = f32(l_0_4);"},
		{"bitcast", Bitcast{Input: x, Out: u}, "l_0_4 = bitcast<u32>(l_0_0);"},
		{"vec init", VecInit{Inputs: []Variable{x, y, z, x}, Out: v}, "l_0_3 = vec4<f32>(l_0_0, l_0_1, l_0_2, l_0_0);"},
		{"copy", Copy{Input: GlobalInputArray{ID: 1, Type: ScalarOf(U32)}, InIndex: u, Out: out, OutIndex: u32Const(0)}, "output_0_global[0u] = input_1_global[l_0_4];"},
		{"atomic load", AtomicLoad{Input: atomic, Out: u}, "l_0_4 = atomicLoad(&shared_memory_0);"},
		{"atomic store", AtomicStore{Input: u, Out: atomic}, "atomicStore(&shared_memory_0, l_0_4);"},
		{"atomic add", Atomic{Op: AtomicAdd, Lhs: atomic, Rhs: u, Out: u}, "l_0_4 = atomicAdd(&shared_memory_0, l_0_4);"},
		{"atomic swap", Atomic{Op: AtomicExchange, Lhs: atomic, Rhs: u, Out: u}, "l_0_4 = atomicExchange(&shared_memory_0, l_0_4);"},
		{"compare exchange", AtomicCompareExchangeWeak{Lhs: atomic, Cmp: u32Const(0), Value: u32Const(1), Out: u}, "l_0_4 = atomicCompareExchangeWeak(&shared_memory_0, 0u, 1u).old_value;"},
		{"stride", Stride{Dim: u32Const(1), Position: 2, Out: u}, "l_0_4 = info[(2u * rank_2) + 1u + 1u];"},
		{"shape", Shape{Dim: u, Position: 0, Out: u}, "l_0_4 = info[(0u * rank_2) + rank + l_0_4 + 1u];"},
		{"length", Length{Var: GlobalInputArray{ID: 0, Type: ScalarOf(F32)}, Out: u}, "l_0_4 = arrayLength(&input_0_global);"},
		{"static length", Length{Var: LocalArray{ID: 1, Type: ScalarOf(F32), Depth: 0, Length: 16}, Out: u}, "l_0_4 = 16u;"},
		{"select", Select{Cond: cond, Then: x, OrElse: y, Out: z}, "l_0_2 = select(l_0_1, l_0_0, l_0_6);"},
		{"workgroup barrier", WorkgroupBarrier{}, "workgroupBarrier();"},
		{"storage barrier", StorageBarrier{}, "storageBarrier();"},
		{"subgroup sum", Subgroup{Op: SubgroupAdd, Input: x, Out: y}, "l_0_1 = subgroupAdd(l_0_0);"},
		{"subgroup broadcast", SubgroupBroadcast{Value: x, Lane: u32Const(0), Out: y}, "l_0_1 = subgroupBroadcast(l_0_0, 0u);"},
		{"subgroup elect", SubgroupElect{Out: cond}, "l_0_6 = subgroupElect();"},
		{"declare binding", DeclareVariable{Var: LocalBinding{ID: 9, Type: ScalarOf(U32)}}, "var _9: u32;"},
		{"builtin", Assign{Input: Builtin{Kind: LocalInvocationIDY}, Out: u}, "l_0_4 = local_invocation_id.y;"},
		{"group size", Assign{Input: Builtin{Kind: WorkgroupSizeX}, Out: u}, "l_0_4 = WORKGROUP_SIZE_X;"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shader := &ComputeShader{
				WorkgroupSize: kernel.Dim3{X: 1, Y: 1, Z: 1},
				Body:          Body{Instructions: []Instruction{tt.inst}},
			}
			mustContainWGSL(t, writeShader(t, shader), tt.want)
		})
	}
}

func TestWrite_SafeTanh(t *testing.T) {
	x, y := f32Local(0, 0), f32Local(0, 1)
	shader := &ComputeShader{
		WorkgroupSize: kernel.Dim3{X: 1, Y: 1, Z: 1},
		Body: Body{Instructions: []Instruction{
			Unary{Op: Tanh, Input: x, Out: y},
		}},
		Extensions: []Extension{{Kind: ExtSafeTanh, Item: ScalarOf(F32)}},
	}
	source := writeShader(t, shader)
	mustContainWGSL(t, source, "l_0_1 = safe_tanh_f32(l_0_0);")
	mustContainWGSL(t, source, "fn safe_tanh_scalar_f32(x: f32) -> f32 {")
	mustContainWGSL(t, source, "fn safe_tanh_f32(x: f32) -> f32 {")
	mustContainWGSL(t, source, "if x > 43.0 {")
}

func TestWrite_ExtensionsWrittenOnce(t *testing.T) {
	shader := &ComputeShader{
		WorkgroupSize: kernel.Dim3{X: 1, Y: 1, Z: 1},
		Extensions: []Extension{
			{Kind: ExtPowfPrimitive, Item: Vec4Of(F32)},
			{Kind: ExtPowfScalar, Item: Vec4Of(F32)},
			{Kind: ExtPowf, Item: Vec4Of(F32)},
			{Kind: ExtPowfPrimitive, Item: ScalarOf(F32)},
			{Kind: ExtErf, Item: ScalarOf(F32)},
			{Kind: ExtErf, Item: Vec2Of(F32)},
		},
	}
	source := writeShader(t, shader)

	for _, fn := range []string{
		"fn powf_primitive_f32(",
		"fn powf_scalar_vec4_f32(",
		"fn powf_vec4_f32(",
		"fn erf_positive_scalar_f32(",
		"fn erf_scalar_f32(",
		"fn erf_f32(",
		"fn erf_vec2_f32(",
	} {
		if n := strings.Count(source, fn); n != 1 {
			t.Errorf("%q appears %d times, want 1", fn, n)
		}
	}
	mustContainWGSL(t, source, "return vec4<f32>(powf_primitive_f32(lhs[0], rhs), powf_primitive_f32(lhs[1], rhs), powf_primitive_f32(lhs[2], rhs), powf_primitive_f32(lhs[3], rhs));")
	mustContainWGSL(t, source, "let p = 0.3275911;")
	mustContainWGSL(t, source, "let modulo = rhs % 2.0;")

	// Polyfills precede the entry point.
	if strings.Index(source, "fn erf_f32(") > strings.Index(source, "fn main(") {
		t.Error("polyfills must be written before main")
	}
}

func TestWrite_ControlFlow(t *testing.T) {
	i := Local{ID: 0, Type: ScalarOf(U32), Depth: 1}
	u := Local{ID: 1, Type: ScalarOf(U32), Depth: 0}
	cond := Local{ID: 2, Type: ScalarOf(Bool), Depth: 0}

	shader := &ComputeShader{
		WorkgroupSize: kernel.Dim3{X: 1, Y: 1, Z: 1},
		Body: Body{Instructions: []Instruction{
			IfElse{
				Cond:             cond,
				InstructionsIf:   []Instruction{Return{}},
				InstructionsElse: []Instruction{Assign{Input: u32Const(1), Out: u}},
			},
			Switch{
				Value: u,
				Cases: []SwitchCase{
					{Value: u32Const(2), Instructions: []Instruction{Assign{Input: u32Const(20), Out: u}}},
					{Value: u32Const(1), Instructions: []Instruction{Assign{Input: u32Const(10), Out: u}}},
				},
				InstructionsDefault: []Instruction{Assign{Input: u32Const(0), Out: u}},
			},
			RangeLoop{I: i, Start: u32Const(0), End: u, Instructions: []Instruction{Break{}}},
			RangeLoop{I: i, Start: u32Const(0), End: u, Step: u32Const(2), Inclusive: true},
			Loop{Instructions: []Instruction{
				If{Cond: cond, Instructions: []Instruction{Break{}}},
			}},
		}},
	}
	source := writeShader(t, shader)

	mustContainWGSL(t, source, "    if l_0_2 {\n        return;\n    } else {\n        l_0_1 = 1u;\n    }\n")
	mustContainWGSL(t, source, "    switch l_0_1 {\n        case 2u: {\n            l_0_1 = 20u;\n        }\n        case 1u: {\n            l_0_1 = 10u;\n        }\n        default: {\n            l_0_1 = 0u;\n        }\n    }\n")
	mustContainWGSL(t, source, "for (var l_1_0: u32 = 0u; l_1_0 < l_0_1; l_1_0++) {\n        break;\n    }")
	mustContainWGSL(t, source, "for (var l_1_0: u32 = 0u; l_1_0 <= l_0_1; l_1_0 += 2u) {")
	mustContainWGSL(t, source, "    loop {\n        if l_0_2 {\n            break;\n        }\n    }\n")
}

func TestWrite_Slices(t *testing.T) {
	input := GlobalInputArray{ID: 0, Type: ScalarOf(F32)}
	s1 := Slice{ID: 1, Type: ScalarOf(F32), Depth: 0}
	s2 := Slice{ID: 2, Type: ScalarOf(F32), Depth: 0}
	x := f32Local(0, 3)
	u := Local{ID: 4, Type: ScalarOf(U32), Depth: 0}

	shader := &ComputeShader{
		WorkgroupSize: kernel.Dim3{X: 1, Y: 1, Z: 1},
		Body: Body{Instructions: []Instruction{
			DeclareVariable{Var: s1},
			SliceOp{Input: input, Start: u32Const(4), End: u32Const(12), Out: s1},
			SliceOp{Input: s1, Start: u32Const(2), End: u32Const(6), Out: s2},
			Index{Lhs: s2, Rhs: u32Const(1), Out: x},
			Length{Var: s2, Out: u},
			CopyBulk{Input: s1, InIndex: u32Const(0), Out: GlobalOutputArray{ID: 0, Type: ScalarOf(F32)}, OutIndex: u, Len: 4},
		}},
	}
	source := writeShader(t, shader)

	mustNotContainWGSL(t, source, "var slice_0_1")
	mustContainWGSL(t, source, "let slice_0_1_offset = 4u;")
	mustContainWGSL(t, source, "let slice_0_1_length = 12u - 4u;")
	mustContainWGSL(t, source, "let slice_0_2_offset = slice_0_1_offset + 2u;")
	mustContainWGSL(t, source, "l_0_3 = input_0_global[slice_0_2_offset + 1u];")
	mustContainWGSL(t, source, "l_0_4 = slice_0_2_length;")
	mustContainWGSL(t, source, "for (var i: u32 = 0u; i < 4u; i++) {\n        output_0_global[l_0_4 + i] = input_0_global[slice_0_1_offset + 0u + i];\n    }")
}

type foreignVariable struct{}

func (foreignVariable) Item() Item           { return ScalarOf(F32) }
func (foreignVariable) IsAlwaysScalar() bool { return false }

type foreignInstruction struct{}

func (foreignInstruction) instruction() {}

func TestWrite_Errors(t *testing.T) {
	tests := []struct {
		name string
		inst Instruction
	}{
		{"foreign variable", Assign{Input: foreignVariable{}, Out: f32Local(0, 0)}},
		{"nested foreign variable", Loop{Instructions: []Instruction{Assign{Input: foreignVariable{}, Out: f32Local(0, 0)}}}},
		{"foreign instruction", foreignInstruction{}},
		{"declare global", DeclareVariable{Var: GlobalInputArray{ID: 0, Type: ScalarOf(F32)}}},
		{"length of scalar", Length{Var: u32Const(1), Out: f32Local(0, 0)}},
		{"unknown slice", Index{Lhs: Slice{ID: 7, Type: ScalarOf(F32)}, Rhs: u32Const(0), Out: f32Local(0, 0)}},
		{"u32 overflow", Assign{Input: u32Const(math.MaxUint32 + 1), Out: f32Local(0, 0)}},
		{"negative u32", Assign{Input: ConstantScalar{Value: kernel.IntValue(-1, kernel.I32), Elem: U32}, Out: f32Local(0, 0)}},
		{"i32 overflow", Assign{Input: ConstantScalar{Value: kernel.IntValue(math.MaxInt32 + 1, kernel.I64), Elem: I32}, Out: f32Local(0, 0)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shader := &ComputeShader{Body: Body{Instructions: []Instruction{tt.inst}}}
			_, err := Write(shader)
			var werr *WriteError
			if !errors.As(err, &werr) {
				t.Fatalf("Write() error = %v, want *WriteError", err)
			}
			if werr.Instruction == nil {
				t.Errorf("error %q not attributed to an instruction", werr)
			}
		})
	}
}
