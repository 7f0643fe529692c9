package samples

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/kernelwgsl/compiler"
	"github.com/gogpu/kernelwgsl/kernel"
)

func TestNames(t *testing.T) {
	want := []string{"add", "reduce", "tanh"}
	if diff := cmp.Diff(want, Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
}

func TestLookup(t *testing.T) {
	a, ok := Lookup("add")
	if !ok {
		t.Fatal(`Lookup("add") failed`)
	}
	b, _ := Lookup("add")
	if a == b || a.Body == b.Body {
		t.Error("Lookup should build a fresh definition each call")
	}
	if _, ok := Lookup("missing"); ok {
		t.Error(`Lookup("missing") succeeded`)
	}
}

func TestSamplesLower(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			def, _ := Lookup(name)
			if _, err := compiler.Compile(def, kernel.Checked, compiler.WithPlatform("linux")); err != nil {
				t.Fatalf("Compile(%s) error: %v", name, err)
			}
		})
	}
}

func TestReduceUsesSharedMemory(t *testing.T) {
	shader, err := compiler.Compile(Reduce(), kernel.Checked)
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}
	if len(shader.SharedMemories) != 1 {
		t.Fatalf("SharedMemories = %d, want 1", len(shader.SharedMemories))
	}
	if got := shader.SharedMemories[0].Length; got != 64 {
		t.Errorf("shared memory length = %d, want 64", got)
	}
	if !shader.Builtins.LocalInvocationIndex || !shader.Builtins.WorkgroupIDNoAxis {
		t.Errorf("Builtins = %+v, want local index and flattened workgroup id", shader.Builtins)
	}
}
