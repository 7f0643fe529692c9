package gpu

import (
	"fmt"

	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/kernelwgsl/internal/logging"
	"github.com/gogpu/kernelwgsl/kernel"
	"github.com/gogpu/kernelwgsl/wgsl"
)

// ResourceDevice is the part of hal.Device pipeline creation uses.
type ResourceDevice interface {
	CreateShaderModule(desc *hal.ShaderModuleDescriptor) (hal.ShaderModule, error)
	DestroyShaderModule(module hal.ShaderModule)
	CreateBindGroupLayout(desc *hal.BindGroupLayoutDescriptor) (hal.BindGroupLayout, error)
	DestroyBindGroupLayout(layout hal.BindGroupLayout)
	CreatePipelineLayout(desc *hal.PipelineLayoutDescriptor) (hal.PipelineLayout, error)
	DestroyPipelineLayout(layout hal.PipelineLayout)
	CreateComputePipeline(desc *hal.ComputePipelineDescriptor) (hal.ComputePipeline, error)
	DestroyComputePipeline(pipeline hal.ComputePipeline)
}

// PipelineOptions configures CreatePipeline.
type PipelineOptions struct {
	// EntryPoint defaults to "main".
	EntryPoint string
	// Label prefixes the labels of every created resource.
	Label string
}

// Pipeline owns the resources of one compute kernel.
//
// A Pipeline is not safe for concurrent use.
type Pipeline struct {
	device ResourceDevice

	module     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.ComputePipeline

	// Source is the WGSL the shader module was created from.
	Source string
}

// CreatePipeline renders shader to WGSL and builds its compute pipeline.
// In Checked mode the source is validated with naga before anything is
// created on the device. If a step fails, the resources already created
// are destroyed.
func CreatePipeline(device ResourceDevice, shader *wgsl.ComputeShader, mode kernel.ExecutionMode, opts PipelineOptions) (*Pipeline, error) {
	if opts.EntryPoint == "" {
		opts.EntryPoint = "main"
	}

	source, err := wgsl.Write(shader)
	if err != nil {
		return nil, fmt.Errorf("gpu: write shader: %w", err)
	}
	if mode == kernel.Checked {
		if err := Validate(source); err != nil {
			return nil, err
		}
	}

	p := &Pipeline{device: device, Source: source}
	if err := p.create(shader, opts); err != nil {
		p.Destroy()
		return nil, err
	}

	logging.Logger().Debug("pipeline created",
		"label", opts.Label,
		"mode", mode.String(),
		"bindings", len(shader.Slots()),
		"shader_bytes", len(source),
	)
	return p, nil
}

func (p *Pipeline) create(shader *wgsl.ComputeShader, opts PipelineOptions) error {
	var err error
	p.module, err = p.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  opts.Label + "_shader",
		Source: hal.ShaderSource{WGSL: p.Source},
	})
	if err != nil {
		return fmt.Errorf("gpu: create shader module: %w", err)
	}

	p.bindLayout, err = p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   opts.Label + "_bind_layout",
		Entries: BindGroupLayoutEntries(shader),
	})
	if err != nil {
		return fmt.Errorf("gpu: create bind group layout: %w", err)
	}

	p.pipeLayout, err = p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label: opts.Label + "_pipe_layout", BindGroupLayouts: []hal.BindGroupLayout{p.bindLayout},
	})
	if err != nil {
		return fmt.Errorf("gpu: create pipeline layout: %w", err)
	}

	p.pipeline, err = p.device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label: opts.Label + "_pipeline", Layout: p.pipeLayout,
		Compute: hal.ComputeState{Module: p.module, EntryPoint: opts.EntryPoint},
	})
	if err != nil {
		return fmt.Errorf("gpu: create compute pipeline: %w", err)
	}
	return nil
}

// ComputePipeline returns the compute pipeline.
func (p *Pipeline) ComputePipeline() hal.ComputePipeline { return p.pipeline }

// BindGroupLayout returns the layout bind groups for this kernel must use.
func (p *Pipeline) BindGroupLayout() hal.BindGroupLayout { return p.bindLayout }

// Destroy releases the pipeline resources in reverse creation order.
// It is safe to call more than once.
func (p *Pipeline) Destroy() {
	if p.pipeline != nil {
		p.device.DestroyComputePipeline(p.pipeline)
		p.pipeline = nil
	}
	if p.pipeLayout != nil {
		p.device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.bindLayout != nil {
		p.device.DestroyBindGroupLayout(p.bindLayout)
		p.bindLayout = nil
	}
	if p.module != nil {
		p.device.DestroyShaderModule(p.module)
		p.module = nil
	}
}
