package wgsl

import "fmt"

// WriteError reports a construct the writer cannot render.
type WriteError struct {
	Message string
	// Instruction is the instruction being written, if any.
	Instruction Instruction
}

// Error implements the error interface.
func (e *WriteError) Error() string {
	if e.Instruction == nil {
		return "wgsl: " + e.Message
	}
	return fmt.Sprintf("wgsl: %T: %s", e.Instruction, e.Message)
}

// newWriteErrorf creates a WriteError with a formatted message.
func newWriteErrorf(inst Instruction, format string, args ...any) *WriteError {
	return &WriteError{
		Message:     fmt.Sprintf(format, args...),
		Instruction: inst,
	}
}
