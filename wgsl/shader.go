package wgsl

import "github.com/gogpu/kernelwgsl/kernel"

// Visibility is the access mode of a storage binding.
type Visibility uint8

const (
	Read Visibility = iota
	ReadWrite
)

// String returns the WGSL access mode.
func (v Visibility) String() string {
	if v == ReadWrite {
		return "read_write"
	}
	return "read"
}

// Location is the address space of a binding.
type Location uint8

const (
	// Storage bindings get a @group(0) @binding(n) slot.
	Storage Location = iota
	// Workgroup bindings are declared var<workgroup> and take no slot.
	Workgroup
)

// Binding is a buffer of Item values. Size is nil for runtime-sized
// arrays.
type Binding struct {
	Visibility Visibility
	Location   Location
	Item       Item
	Size       *uint32
}

// NamedBinding is a binding addressed by name.
type NamedBinding struct {
	Name    string
	Binding Binding
}

// SharedMemoryDecl declares a var<workgroup> array.
type SharedMemoryDecl struct {
	Index  uint32
	Item   Item
	Length uint32
}

// ConstantArrayDecl declares a module-scope const array.
type ConstantArrayDecl struct {
	Index  uint32
	Item   Item
	Length uint32
	Values []Variable
}

// LocalArrayDecl declares a function-scope array.
type LocalArrayDecl struct {
	Index  uint32
	Item   Item
	Depth  uint8
	Length uint32
}

// Builtins records which entry-point builtins and derived values the
// shader needs. The writer adds a parameter for each set builtin and a
// prelude binding for each set derived value.
type Builtins struct {
	GlobalInvocationID   bool
	LocalInvocationIndex bool
	LocalInvocationID    bool
	WorkgroupID          bool
	NumWorkgroups        bool
	SubgroupSize         bool

	WorkgroupIDNoAxis   bool
	NumWorkgroupsNoAxis bool
	WorkgroupSizeNoAxis bool
}

// Body is the instruction list of the entry point and the metadata values
// the prelude must compute.
type Body struct {
	Instructions []Instruction
	ID           bool
	Rank         bool
	Stride       bool
	Shape        bool
}

// ComputeShader is a complete WGSL compute module.
type ComputeShader struct {
	Inputs         []Binding
	Outputs        []Binding
	Named          []NamedBinding
	SharedMemories []SharedMemoryDecl
	ConstantArrays []ConstantArrayDecl
	LocalArrays    []LocalArrayDecl
	WorkgroupSize  kernel.Dim3
	Builtins       Builtins
	Body           Body
	Extensions     []Extension
}

// NeedsInfo reports whether the shader reads the metadata buffer.
func (s *ComputeShader) NeedsInfo() bool {
	return s.Body.Rank || s.Body.Stride || s.Body.Shape
}

// BindingSlot is one @group(0) @binding(n) resource of the shader.
type BindingSlot struct {
	Name       string
	Binding    uint32
	Visibility Visibility
	Item       Item
	Size       *uint32
}

// Slots returns the storage bindings of the shader in binding order:
// inputs, outputs, the metadata buffer when used, then named bindings.
func (s *ComputeShader) Slots() []BindingSlot {
	var slots []BindingSlot
	add := func(name string, b Binding) {
		if b.Location != Storage {
			return
		}
		slots = append(slots, BindingSlot{
			Name:       name,
			Binding:    uint32(len(slots)),
			Visibility: b.Visibility,
			Item:       b.Item,
			Size:       b.Size,
		})
	}

	for i, b := range s.Inputs {
		add(inputName(uint32(i)), b)
	}
	for i, b := range s.Outputs {
		add(outputName(uint32(i)), b)
	}
	if s.NeedsInfo() {
		add("info", Binding{Visibility: Read, Location: Storage, Item: ScalarOf(U32)})
	}
	for _, nb := range s.Named {
		add(nb.Name, nb.Binding)
	}
	return slots
}

// HasExtension reports whether ext is registered on the shader.
func (s *ComputeShader) HasExtension(ext Extension) bool {
	for _, e := range s.Extensions {
		if e == ext {
			return true
		}
	}
	return false
}
