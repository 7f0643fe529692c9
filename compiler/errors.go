// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package compiler

import (
	"errors"
	"fmt"
)

// ErrorKind categorizes lowering errors.
type ErrorKind uint8

const (
	// ErrUnsupportedElem indicates an element type with no WGSL equivalent
	// (f16, bf16, f64, i64, atomic<i64>).
	ErrUnsupportedElem ErrorKind = iota

	// ErrUnsupportedVectorization indicates a vectorization factor other
	// than 1, 2, 3 or 4.
	ErrUnsupportedVectorization

	// ErrUnsupportedFeature indicates an operation or variable the target
	// cannot express, such as cooperative matrices.
	ErrUnsupportedFeature

	// ErrInvalidMetadataTarget indicates a stride or shape query on a
	// variable that is not a global array.
	ErrInvalidMetadataTarget

	// ErrInvalidOperation indicates a nil or unknown operation or variable.
	ErrInvalidOperation

	// ErrInvalidDefinition indicates a malformed kernel definition.
	ErrInvalidDefinition
)

// String returns a human-readable error kind name.
func (k ErrorKind) String() string {
	switch k {
	case ErrUnsupportedElem:
		return "UnsupportedElem"
	case ErrUnsupportedVectorization:
		return "UnsupportedVectorization"
	case ErrUnsupportedFeature:
		return "UnsupportedFeature"
	case ErrInvalidMetadataTarget:
		return "InvalidMetadataTarget"
	case ErrInvalidOperation:
		return "InvalidOperation"
	case ErrInvalidDefinition:
		return "InvalidDefinition"
	default:
		return "Unknown"
	}
}

// Error represents a lowering error.
type Error struct {
	// Kind categorizes the error.
	Kind ErrorKind

	// Message provides details about the error.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("lower %s: %s", e.Kind, e.Message)
}

// NewError creates a new lowering error.
func NewError(kind ErrorKind, message string) *Error {
	return &Error{
		Kind:    kind,
		Message: message,
	}
}

func newErrorf(kind ErrorKind, format string, args ...any) *Error {
	return NewError(kind, fmt.Sprintf(format, args...))
}

// IsUnsupportedElem returns true if the error is ErrUnsupportedElem.
func (e *Error) IsUnsupportedElem() bool {
	return e.Kind == ErrUnsupportedElem
}

// IsUnsupportedVectorization returns true if the error is
// ErrUnsupportedVectorization.
func (e *Error) IsUnsupportedVectorization() bool {
	return e.Kind == ErrUnsupportedVectorization
}

// IsUnsupportedFeature returns true if the error is ErrUnsupportedFeature.
func (e *Error) IsUnsupportedFeature() bool {
	return e.Kind == ErrUnsupportedFeature
}

// IsInvalidMetadataTarget returns true if the error is
// ErrInvalidMetadataTarget.
func (e *Error) IsInvalidMetadataTarget() bool {
	return e.Kind == ErrInvalidMetadataTarget
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
