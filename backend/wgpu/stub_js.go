//go:build js && wasm

package wgpu

import "github.com/gogpu/gpuctx"

// init registers a nil-returning factory in browser builds, where the wgpu
// browser backend is not available yet. gpuctx.PlatformByName returns nil
// and New reports gpuctx.ErrNoPlatform unless another platform is set.
func init() {
	gpuctx.RegisterPlatform(gpuctx.PlatformWGPU, func() gpuctx.Platform {
		return nil
	})
}
