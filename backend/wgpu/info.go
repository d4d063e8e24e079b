package wgpu

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/gputypes"
)

// GPUInfo contains information about the selected GPU.
type GPUInfo struct {
	// Name is the GPU name (e.g., "NVIDIA GeForce RTX 3080").
	Name string
	// Vendor is the GPU vendor.
	Vendor string
	// DeviceType is the type of GPU (discrete, integrated, etc.).
	DeviceType gputypes.DeviceType
	// Backend is the graphics API in use (Vulkan, Metal, DX12, GL).
	Backend gputypes.Backend
	// Driver is the driver name.
	Driver string
	// DriverInfo is the driver version string.
	DriverInfo string
}

// String returns a human-readable description of the GPU.
func (g *GPUInfo) String() string {
	return fmt.Sprintf("%s (%s, %s)", g.Name, g.DeviceType, g.Backend)
}

// newGPUInfo converts adapter metadata.
func newGPUInfo(info gputypes.AdapterInfo) *GPUInfo {
	return &GPUInfo{
		Name:       info.Name,
		Vendor:     info.Vendor,
		DeviceType: info.DeviceType,
		Backend:    info.Backend,
		Driver:     info.Driver,
		DriverInfo: info.DriverInfo,
	}
}

// logGPUInfo logs information about the selected GPU.
func logGPUInfo(log *slog.Logger, info gputypes.AdapterInfo) {
	g := newGPUInfo(info)
	log.Info("wgpu: GPU", "gpu", g.String())
	if g.Driver != "" {
		log.Debug("wgpu: driver", "name", g.Driver, "info", g.DriverInfo)
	}
}

// preferredFormat picks the surface format to present with, favoring the
// non-sRGB 8-bit formats.
func preferredFormat(formats []gputypes.TextureFormat) gputypes.TextureFormat {
	for _, f := range formats {
		if f == gputypes.TextureFormatBGRA8Unorm || f == gputypes.TextureFormatRGBA8Unorm {
			return f
		}
	}
	if len(formats) > 0 {
		return formats[0]
	}
	return gputypes.TextureFormatUndefined
}
