//go:build !(js && wasm)

package wgpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wgpu"
)

// ErrNotWGPUDevice is returned when a device was not created by this platform.
var ErrNotWGPUDevice = errors.New("wgpu: device is not a *wgpu.Device")

// CreateShaderModule creates a shader module from SPIR-V words on a device
// obtained from a wgpu-backed gpuctx.GraphicsContext.
func CreateShaderModule(device gpucontext.Device, label string, spirv []uint32) (*wgpu.ShaderModule, error) {
	d, ok := device.(*wgpu.Device)
	if !ok || d == nil {
		return nil, ErrNotWGPUDevice
	}
	m, err := d.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: label,
		SPIRV: spirv,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create shader module %q: %w", label, err)
	}
	return m, nil
}
