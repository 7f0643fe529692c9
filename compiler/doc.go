// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package compiler lowers kernel definitions to WGSL compute shaders.
//
// Lowering is a single pass over the kernel scope tree. Each operation
// becomes one instruction, variables are mapped to their WGSL forms, and
// the pass records which builtins the kernel reads, which workgroup and
// function arrays it declares and which polyfills its math needs. The
// result is a [wgsl.ComputeShader] ready for [wgsl.Write].
//
// Only 32-bit scalar types and vectors of up to four components are
// supported. Cooperative matrices are rejected with ErrUnsupportedFeature.
//
// Example:
//
//	shader, err := compiler.Compile(def, kernel.Checked)
//	if err != nil {
//	    if compiler.IsUnsupportedElem(err) {
//	        // fall back to another backend
//	    }
//	    return err
//	}
package compiler
