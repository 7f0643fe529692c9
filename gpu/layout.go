package gpu

import (
	"github.com/gogpu/gputypes"
	"github.com/samber/lo"

	"github.com/gogpu/kernelwgsl/wgsl"
)

// BindGroupLayoutEntries returns the layout entries for the storage
// bindings of shader, in the order the writer numbers them. Read
// bindings are read-only storage buffers.
func BindGroupLayoutEntries(shader *wgsl.ComputeShader) []gputypes.BindGroupLayoutEntry {
	return lo.Map(shader.Slots(), func(s wgsl.BindingSlot, _ int) gputypes.BindGroupLayoutEntry {
		bufferType := gputypes.BufferBindingTypeReadOnlyStorage
		if s.Visibility == wgsl.ReadWrite {
			bufferType = gputypes.BufferBindingTypeStorage
		}
		return gputypes.BindGroupLayoutEntry{
			Binding:    s.Binding,
			Visibility: gputypes.ShaderStageCompute,
			Buffer:     &gputypes.BufferBindingLayout{Type: bufferType},
		}
	})
}
