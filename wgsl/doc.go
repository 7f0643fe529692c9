// Package wgsl provides the compute-shader representation produced by the
// kernel lowering pass, and a writer that renders it as WGSL source.
//
// WGSL is the shader language for WebGPU. The representation is
// intentionally close to the text: a [ComputeShader] lists its bindings,
// workgroup side tables, the entry-point builtins it needs and a tree of
// instructions. Polyfilled math functions are recorded as [Extension]
// values and emitted once each before the entry point.
//
// # Components
//
//   - Elem and Item: scalar and vector types (f32, vec4<u32>, ...)
//   - Variable: every name an instruction may refer to
//   - Instruction: the statement tree of the entry point
//   - ComputeShader: the complete module
//   - Write: the WGSL text writer
//
// # Usage
//
//	shader, err := compiler.Compile(def, kernel.Checked)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	source, err := wgsl.Write(shader)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Metadata buffer
//
// Kernels that query rank, strides or shapes read them from a read-only
// u32 buffer named info, bound after the outputs:
//
//	info[0]                               rank
//	info[pos * rank * 2 + dim + 1]        stride of dim for binding pos
//	info[pos * rank * 2 + rank + dim + 1] shape of dim for binding pos
//
// Binding positions count the inputs first, then the outputs.
package wgsl
