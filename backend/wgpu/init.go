//go:build !(js && wasm)

package wgpu

import (
	"github.com/gogpu/gpuctx"

	// Register Vulkan, Metal, DX12 and GLES HAL backends.
	_ "github.com/gogpu/wgpu/hal/allbackends"
)

// init registers the wgpu platform with default options.
func init() {
	gpuctx.RegisterPlatform(gpuctx.PlatformWGPU, func() gpuctx.Platform {
		return New(Options{})
	})
}
