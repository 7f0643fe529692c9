// Package kernelwgsl lowers GPU compute kernels to WGSL.
//
// kernelwgsl takes a kernel definition (bindings, workgroup size and a
// tree of scoped operations) and produces a WGSL compute shader:
//   - compiler lowers the definition to a [wgsl.ComputeShader]
//   - wgsl renders the shader as source text
//   - gpu builds compute pipelines on a gogpu/wgpu HAL device
//
// The package provides a short high-level API over those stages.
//
// Example usage:
//
//	body := kernel.NewScope(0)
//	body.Register(kernel.IndexAssign{Lhs: pos, Rhs: value, Out: out})
//	def := &kernel.Definition{Outputs: outputs, GroupDim: kernel.Dim3{X: 64, Y: 1, Z: 1}, Body: body}
//
//	source, err := kernelwgsl.CompileSource(def, kernel.Checked)
//	if err != nil {
//	    log.Fatal(err)
//	}
package kernelwgsl

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/gogpu/kernelwgsl/compiler"
	"github.com/gogpu/kernelwgsl/gpu"
	"github.com/gogpu/kernelwgsl/internal/logging"
	"github.com/gogpu/kernelwgsl/kernel"
	"github.com/gogpu/kernelwgsl/wgsl"
)

// CompileOptions configures CompileSourceWithOptions.
type CompileOptions struct {
	// Platform is the runtime.GOOS name of the target system. Empty means
	// the host.
	Platform string

	// Validate runs naga over the generated source.
	Validate bool
}

// DefaultOptions returns the options CompileSource uses.
func DefaultOptions() CompileOptions {
	return CompileOptions{
		Platform: runtime.GOOS,
		Validate: false,
	}
}

// Compile lowers a kernel definition to a compute shader.
func Compile(def *kernel.Definition, mode kernel.ExecutionMode, opts ...compiler.Option) (*wgsl.ComputeShader, error) {
	return compiler.Compile(def, mode, opts...)
}

// CompileSource lowers a kernel definition and renders it as WGSL using
// default options.
func CompileSource(def *kernel.Definition, mode kernel.ExecutionMode) (string, error) {
	return CompileSourceWithOptions(def, mode, DefaultOptions())
}

// CompileSourceWithOptions lowers a kernel definition and renders it as
// WGSL.
//
// The pipeline is:
//  1. Lower the definition to a compute shader
//  2. Write WGSL
//  3. Validate with naga (if enabled)
func CompileSourceWithOptions(def *kernel.Definition, mode kernel.ExecutionMode, opts CompileOptions) (string, error) {
	var compilerOpts []compiler.Option
	if opts.Platform != "" {
		compilerOpts = append(compilerOpts, compiler.WithPlatform(opts.Platform))
	}

	shader, err := compiler.Compile(def, mode, compilerOpts...)
	if err != nil {
		return "", err
	}

	source, err := wgsl.Write(shader)
	if err != nil {
		return "", fmt.Errorf("write error: %w", err)
	}

	if opts.Validate {
		if err := gpu.Validate(source); err != nil {
			return "", err
		}
	}
	return source, nil
}

// CompileBatch renders several definitions concurrently. Results keep
// the order of defs. The first failure cancels the remaining work and is
// returned.
func CompileBatch(ctx context.Context, defs []*kernel.Definition, mode kernel.ExecutionMode, opts CompileOptions) ([]string, error) {
	sources := make([]string, len(defs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, def := range defs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			source, err := CompileSourceWithOptions(def, mode, opts)
			if err != nil {
				return fmt.Errorf("kernel %d: %w", i, err)
			}
			sources[i] = source
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sources, nil
}

// Validate parses, lowers and validates WGSL source with naga.
func Validate(source string) error {
	return gpu.Validate(source)
}

// SetLogger configures the logger for kernelwgsl and its packages. Pass
// nil to restore the default silent logger.
//
// Log levels:
//   - [slog.LevelDebug]: lowering and pipeline creation details
//   - [slog.LevelInfo]: GPU device acquisition
//
// Example:
//
//	kernelwgsl.SetLogger(slog.Default())
func SetLogger(l *slog.Logger) {
	logging.SetLogger(l)
}

// Logger returns the current logger.
func Logger() *slog.Logger {
	return logging.Logger()
}
