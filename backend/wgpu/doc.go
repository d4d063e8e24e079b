// Package wgpu provides the gpuctx platform backed by gogpu/wgpu, a pure Go
// WebGPU implementation with Vulkan, Metal, DX12 and OpenGL ES backends.
//
// # Registration
//
// Importing the package registers the platform under gpuctx.PlatformWGPU
// together with every HAL backend compiled for the target:
//
//	import _ "github.com/gogpu/gpuctx/backend/wgpu"
//
// In js/wasm builds the package registers a factory returning nil, so
// gpuctx.PlatformByName("wgpu") returns nil instead of failing to link.
//
// # Mapping
//
// gpuctx.PrimaryGPU creates an instance restricted to
// gputypes.BackendsPrimary and gpuctx.PortableGL one restricted to
// gputypes.BackendsGL. Render targets provide native window handles through
//
//	NativeHandles() (display, window uintptr, ok bool)
//
// which dom.Element implements. Targets without a window are rejected unless
// Options.Headless is set, in which case the adapter is selected without a
// compatible surface.
//
// Adapter and device requests run on a separate goroutine so that a
// canceled context returns immediately; a result arriving after
// cancellation is released.
package wgpu
