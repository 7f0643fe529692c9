// Package gpu creates compute pipelines for lowered kernels on a
// gogpu/wgpu HAL device.
//
// The package renders a [wgsl.ComputeShader] to WGSL, optionally checks
// it with naga, and builds the shader module, bind group layout,
// pipeline layout and compute pipeline. The bind group layout follows
// the binding order the WGSL writer assigns.
//
// Example:
//
//	dev, err := gpu.RequestDevice()
//	if err != nil {
//	    return err
//	}
//	defer dev.Destroy()
//
//	pipeline, err := gpu.CreatePipeline(dev.HAL(), shader, kernel.Checked, gpu.PipelineOptions{Label: "add"})
//	if err != nil {
//	    return err
//	}
//	defer pipeline.Destroy()
package gpu
