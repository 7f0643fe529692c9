package gpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/kernelwgsl/internal/logging"
)

var (
	// ErrBackendUnavailable is returned when the Vulkan HAL backend is
	// not compiled in or cannot be loaded.
	ErrBackendUnavailable = errors.New("gpu: vulkan backend not available")

	// ErrNoAdapter is returned when the instance exposes no adapters.
	ErrNoAdapter = errors.New("gpu: no GPU adapters found")
)

// Device is an opened HAL device with the instance that owns it.
type Device struct {
	instance hal.Instance
	device   hal.Device
	queue    hal.Queue

	// AdapterName is the name reported by the selected adapter.
	AdapterName string
}

// RequestDevice opens a compute device on the Vulkan backend. A discrete
// or integrated GPU is preferred; otherwise the first adapter is used.
// Failures are returned as-is and never retried.
func RequestDevice() (*Device, error) {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, ErrBackendUnavailable
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("gpu: create instance: %w", err)
	}

	adapters := instance.EnumerateAdapters(nil)
	i := selectAdapter(len(adapters), func(i int) bool {
		t := adapters[i].Info.DeviceType
		return t == gputypes.DeviceTypeDiscreteGPU || t == gputypes.DeviceTypeIntegratedGPU
	})
	if i < 0 {
		instance.Destroy()
		return nil, ErrNoAdapter
	}
	selected := &adapters[i]

	opened, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("gpu: open device on %q (%v): %w", selected.Info.Name, selected.Info.DeviceType, err)
	}

	logging.Logger().Info("device acquired", "adapter", selected.Info.Name)
	return &Device{
		instance:    instance,
		device:      opened.Device,
		queue:       opened.Queue,
		AdapterName: selected.Info.Name,
	}, nil
}

// selectAdapter returns the index of the first adapter for which isGPU
// holds, else 0, or -1 when there are no adapters.
func selectAdapter(n int, isGPU func(i int) bool) int {
	if n == 0 {
		return -1
	}
	for i := range n {
		if isGPU(i) {
			return i
		}
	}
	return 0
}

// HAL returns the underlying device.
func (d *Device) HAL() hal.Device { return d.device }

// Queue returns the device queue.
func (d *Device) Queue() hal.Queue { return d.queue }

// Destroy releases the device and its instance.
func (d *Device) Destroy() {
	if d.device != nil {
		d.device.Destroy()
		d.device = nil
	}
	if d.instance != nil {
		d.instance.Destroy()
		d.instance = nil
	}
	d.queue = nil
}
