package kernel

import "testing"

func TestElemString(t *testing.T) {
	tests := []struct {
		elem Elem
		want string
	}{
		{Float(F16), "f16"},
		{Float(BF16), "bf16"},
		{Float(F32), "f32"},
		{Float(F64), "f64"},
		{Int(I32), "i32"},
		{Int(I64), "i64"},
		{UInt(), "u32"},
		{Bool(), "bool"},
	}
	for _, tt := range tests {
		if got := tt.elem.String(); got != tt.want {
			t.Errorf("%+v.String() = %q, want %q", tt.elem, got, tt.want)
		}
	}
}

func TestItemFactor(t *testing.T) {
	item := NewItem(Float(F32))
	if got := item.Factor(); got != 1 {
		t.Errorf("Factor() of unvectorized item = %d, want 1", got)
	}
	if got := item.Vectorized(4).Factor(); got != 4 {
		t.Errorf("Factor() = %d, want 4", got)
	}
	if item.Vectorization != 0 {
		t.Error("Vectorized modified the receiver")
	}
	if got := item.Vectorized(4).String(); got != "f32 x4" {
		t.Errorf("String() = %q, want %q", got, "f32 x4")
	}
}

func TestConstantValueElem(t *testing.T) {
	tests := []struct {
		value ConstantValue
		want  Elem
	}{
		{IntValue(-3, I32), Int(I32)},
		{FloatValue(1.5, F64), Float(F64)},
		{UIntValue(7), UInt()},
		{BoolValue(true), Bool()},
	}
	for _, tt := range tests {
		if got := tt.value.Elem(); got != tt.want {
			t.Errorf("%+v.Elem() = %s, want %s", tt.value, got, tt.want)
		}
	}
}

func TestScope(t *testing.T) {
	root := NewScope(0)
	root.Declare(Local{ID: 0}, Local{ID: 1})
	root.Register(Return{})

	child := root.Child()
	if child.Depth != 1 {
		t.Errorf("child depth = %d, want 1", child.Depth)
	}
	if len(child.Variables) != 0 || len(child.Operations) != 0 {
		t.Error("child scope is not empty")
	}
	if len(root.Variables) != 2 || len(root.Operations) != 1 {
		t.Errorf("root has %d variables and %d operations", len(root.Variables), len(root.Operations))
	}
}

func TestBinaryOpIsComparison(t *testing.T) {
	for _, op := range []BinaryOp{OpEqual, OpNotEqual, OpLower, OpLowerEqual, OpGreater, OpGreaterEqual} {
		if !op.IsComparison() {
			t.Errorf("%s.IsComparison() = false", op)
		}
	}
	for _, op := range []BinaryOp{OpAdd, OpDot, OpAnd, OpShiftLeft} {
		if op.IsComparison() {
			t.Errorf("%s.IsComparison() = true", op)
		}
	}
}

func TestExecutionModeString(t *testing.T) {
	if Checked.String() != "Checked" || Unchecked.String() != "Unchecked" {
		t.Errorf("got %q and %q", Checked, Unchecked)
	}
}
