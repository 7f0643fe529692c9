package kernel

// Scope is a lexical block.
//
// Variables lists, in order, the variables that must be declared before
// the operations run. The list is computed by upstream scope processing;
// a variable declared in an enclosing scope is visible here and is not
// listed again.
type Scope struct {
	Depth       uint8
	Variables   []Variable
	Operations  []Operation
	ConstArrays []ConstArray
}

// NewScope returns an empty scope at the given depth.
func NewScope(depth uint8) *Scope {
	return &Scope{Depth: depth}
}

// Declare appends variables to the declaration list.
func (s *Scope) Declare(vars ...Variable) {
	s.Variables = append(s.Variables, vars...)
}

// Register appends operations to the scope.
func (s *Scope) Register(ops ...Operation) {
	s.Operations = append(s.Operations, ops...)
}

// Child returns a new scope nested one level deeper than s.
func (s *Scope) Child() *Scope {
	return NewScope(s.Depth + 1)
}

// ConstArray is a literal array initializer local to a scope. Var must be
// a ConstantArray.
type ConstArray struct {
	Var    ConstantArray
	Values []Variable
}

// Visibility is the access mode of a binding.
type Visibility uint8

const (
	Read Visibility = iota
	ReadWrite
)

// Location is the memory a binding lives in.
type Location uint8

const (
	// Storage is device-global storage memory.
	Storage Location = iota
	// Group is workgroup-local memory.
	Group
)

// Binding is a typed handle to device-visible memory. Size is nil for
// runtime-sized arrays.
type Binding struct {
	Visibility Visibility
	Location   Location
	Item       Item
	Size       *uint32
}

// NamedBinding is an extra binding addressed by name, such as the scalar
// buffers.
type NamedBinding struct {
	Name    string
	Binding Binding
}

// Dim3 is a three-dimensional extent. Unused axes are 1.
type Dim3 struct {
	X, Y, Z uint32
}

// Definition is a complete kernel ready to be lowered.
type Definition struct {
	Inputs   []Binding
	Outputs  []Binding
	Named    []NamedBinding
	GroupDim Dim3
	Body     *Scope
}

// ExecutionMode selects how the resulting shader module is created.
// It does not change instruction selection.
type ExecutionMode uint8

const (
	// Checked creates the shader module with validation.
	Checked ExecutionMode = iota
	// Unchecked skips validation.
	Unchecked
)

func (m ExecutionMode) String() string {
	switch m {
	case Checked:
		return "Checked"
	case Unchecked:
		return "Unchecked"
	default:
		return "Unknown"
	}
}
