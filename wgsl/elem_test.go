package wgsl

import "testing"

func TestItemString(t *testing.T) {
	tests := []struct {
		item   Item
		want   string
		ident  string
		factor int
	}{
		{ScalarOf(F32), "f32", "f32", 1},
		{Item{Elem: U32}, "u32", "u32", 1},
		{Vec2Of(I32), "vec2<i32>", "vec2_i32", 2},
		{Vec3Of(Bool), "vec3<bool>", "vec3_bool", 3},
		{Vec4Of(F32), "vec4<f32>", "vec4_f32", 4},
		{ScalarOf(AtomicU32), "atomic<u32>", "atomic_u32", 1},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.item.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
			if got := tt.item.ident(); got != tt.ident {
				t.Errorf("ident() = %q, want %q", got, tt.ident)
			}
			if got := tt.item.VectorizationFactor(); got != tt.factor {
				t.Errorf("VectorizationFactor() = %d, want %d", got, tt.factor)
			}
		})
	}
}

func TestElemSize(t *testing.T) {
	for _, e := range []Elem{F32, I32, U32, Bool, AtomicI32, AtomicU32} {
		if e.Size() != 4 {
			t.Errorf("%s.Size() = %d, want 4", e, e.Size())
		}
	}
}

func TestVariableScalarity(t *testing.T) {
	tests := []struct {
		name   string
		v      Variable
		always bool
		item   Item
	}{
		{"builtin", Builtin{Kind: ID}, true, ScalarOf(U32)},
		{"global scalar", GlobalScalar{ID: 0, Elem: I32}, true, ScalarOf(I32)},
		{"constant", ConstantScalar{Elem: Bool}, true, ScalarOf(Bool)},
		{"scalar local", Local{Type: ScalarOf(F32)}, false, ScalarOf(F32)},
		{"vector input", GlobalInputArray{Type: Vec4Of(F32)}, false, Vec4Of(F32)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.IsAlwaysScalar(); got != tt.always {
				t.Errorf("IsAlwaysScalar() = %v, want %v", got, tt.always)
			}
			if got := tt.v.Item(); got != tt.item {
				t.Errorf("Item() = %v, want %v", got, tt.item)
			}
		})
	}
}

func TestExtensionFunctionName(t *testing.T) {
	tests := []struct {
		ext  Extension
		want string
	}{
		{Extension{Kind: ExtPowfPrimitive, Item: Vec4Of(F32)}, "powf_primitive_f32"},
		{Extension{Kind: ExtPowfScalar, Item: Vec4Of(F32)}, "powf_scalar_vec4_f32"},
		{Extension{Kind: ExtPowf, Item: Vec2Of(F32)}, "powf_vec2_f32"},
		{Extension{Kind: ExtErf, Item: ScalarOf(F32)}, "erf_f32"},
		{Extension{Kind: ExtSafeTanh, Item: Vec3Of(F32)}, "safe_tanh_vec3_f32"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.ext.FunctionName(); got != tt.want {
				t.Errorf("FunctionName() = %q, want %q", got, tt.want)
			}
		})
	}
}
