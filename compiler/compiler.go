// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package compiler

import (
	"runtime"

	"github.com/gogpu/kernelwgsl/internal/logging"
	"github.com/gogpu/kernelwgsl/kernel"
	"github.com/gogpu/kernelwgsl/wgsl"
)

type options struct {
	platform string
}

// Option configures a Compiler.
type Option func(*options)

// WithPlatform sets the operating system the shader will run on, using
// runtime.GOOS names. Platform-specific polyfills depend on it. The
// default is the host platform.
func WithPlatform(goos string) Option {
	return func(o *options) {
		o.platform = goos
	}
}

// Compiler lowers kernel definitions to WGSL compute shaders.
//
// A Compiler holds per-compilation state and must not be used from
// several goroutines at once. Use one Compiler per goroutine, or the
// package-level Compile.
type Compiler struct {
	opts options

	usage          usage
	numInputs      uint32
	sharedMemories []wgsl.SharedMemoryDecl
	constantArrays []wgsl.ConstantArrayDecl
	localArrays    []wgsl.LocalArrayDecl
}

// NewCompiler creates a Compiler.
func NewCompiler(opts ...Option) *Compiler {
	o := options{platform: runtime.GOOS}
	for _, opt := range opts {
		opt(&o)
	}
	return &Compiler{opts: o}
}

// Compile lowers one kernel definition using a fresh Compiler.
func Compile(def *kernel.Definition, mode kernel.ExecutionMode, opts ...Option) (*wgsl.ComputeShader, error) {
	return NewCompiler(opts...).Compile(def, mode)
}

// Compile lowers def to a compute shader. The execution mode does not
// change the generated shader; it only selects validation at pipeline
// creation. On error no shader is returned. The definition is not
// modified.
func (c *Compiler) Compile(def *kernel.Definition, mode kernel.ExecutionMode) (*wgsl.ComputeShader, error) {
	if def == nil {
		return nil, NewError(ErrInvalidDefinition, "nil kernel definition")
	}
	if def.Body == nil {
		return nil, NewError(ErrInvalidDefinition, "kernel definition has no body")
	}

	c.reset()
	c.numInputs = uint32(len(def.Inputs))

	inputs, err := compileBindings(def.Inputs)
	if err != nil {
		return nil, err
	}
	outputs, err := compileBindings(def.Outputs)
	if err != nil {
		return nil, err
	}
	named := make([]wgsl.NamedBinding, 0, len(def.Named))
	for _, nb := range def.Named {
		b, err := compileBinding(nb.Binding)
		if err != nil {
			return nil, err
		}
		named = append(named, wgsl.NamedBinding{Name: nb.Name, Binding: b})
	}

	instructions, err := c.compileScope(def.Body)
	if err != nil {
		return nil, err
	}

	shader := c.assemble(instructions)
	shader.Inputs = inputs
	shader.Outputs = outputs
	shader.Named = named
	shader.WorkgroupSize = def.GroupDim

	logging.Logger().Debug("kernel lowered",
		"mode", mode.String(),
		"platform", c.opts.platform,
		"inputs", len(inputs),
		"outputs", len(outputs),
		"instructions", len(instructions),
		"extensions", len(shader.Extensions),
	)
	return shader, nil
}

func (c *Compiler) reset() {
	c.usage = usage{}
	c.numInputs = 0
	c.sharedMemories = nil
	c.constantArrays = nil
	c.localArrays = nil
}

// assemble builds the shader from the accumulated side tables, usage
// flags and the lowered body.
func (c *Compiler) assemble(instructions []wgsl.Instruction) *wgsl.ComputeShader {
	builtins, body := c.usage.resolve(instructions)
	return &wgsl.ComputeShader{
		SharedMemories: append([]wgsl.SharedMemoryDecl(nil), c.sharedMemories...),
		ConstantArrays: append([]wgsl.ConstantArrayDecl(nil), c.constantArrays...),
		LocalArrays:    append([]wgsl.LocalArrayDecl(nil), c.localArrays...),
		Builtins:       builtins,
		Body:           body,
		Extensions:     RegisterExtensions(instructions, c.opts.platform),
	}
}

func compileBindings(bindings []kernel.Binding) ([]wgsl.Binding, error) {
	out := make([]wgsl.Binding, 0, len(bindings))
	for _, b := range bindings {
		compiled, err := compileBinding(b)
		if err != nil {
			return nil, err
		}
		out = append(out, compiled)
	}
	return out, nil
}

// compileBinding maps one binding. Group memory becomes workgroup memory.
func compileBinding(b kernel.Binding) (wgsl.Binding, error) {
	item, err := CompileItem(b.Item)
	if err != nil {
		return wgsl.Binding{}, err
	}
	out := wgsl.Binding{
		Visibility: wgsl.Read,
		Location:   wgsl.Storage,
		Item:       item,
	}
	if b.Visibility == kernel.ReadWrite {
		out.Visibility = wgsl.ReadWrite
	}
	if b.Location == kernel.Group {
		out.Location = wgsl.Workgroup
	}
	if b.Size != nil {
		size := *b.Size
		out.Size = &size
	}
	return out, nil
}
