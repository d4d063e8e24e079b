package gpuctx

import (
	"context"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// Platform is a graphics driver stack able to create instances for each
// BackendKind. The wgpu driver lives in backend/wgpu; backend/scripted
// provides a deterministic driver for tests and dry runs.
type Platform interface {
	// Name returns the platform identifier (e.g., "wgpu").
	Name() string

	// CreateInstance creates an API instance restricted to the backend
	// family of kind.
	CreateInstance(kind BackendKind) (Instance, error)
}

// Instance is the entry point of one backend family.
type Instance interface {
	// CreateSurface binds a drawable surface to target. The target must
	// already be attached to its parent element.
	CreateSurface(target Element) (Surface, error)

	// RequestAdapter asks the platform for an adapter matching opts.
	// A nil Adapter means no compatible adapter exists.
	RequestAdapter(ctx context.Context, opts *AdapterOptions) (Adapter, error)

	// Release releases the instance.
	Release()
}

// Surface is a presentable surface produced by an Instance.
type Surface interface {
	Release()
}

// AdapterOptions controls adapter selection.
type AdapterOptions struct {
	// PowerPreference indicates power consumption preference.
	PowerPreference gputypes.PowerPreference

	// ForceFallbackAdapter requests a software adapter. gpuctx always
	// leaves it false.
	ForceFallbackAdapter bool

	// CompatibleSurface is the surface the adapter must be able to present to.
	CompatibleSurface Surface
}

// Adapter represents one physical or logical GPU and its capabilities.
type Adapter interface {
	// Info returns adapter metadata.
	Info() gputypes.AdapterInfo

	// Limits returns the adapter's maximum resource limits.
	Limits() gputypes.Limits

	// SurfaceFormat returns the preferred texture format for presenting to
	// s, or gputypes.TextureFormatUndefined if unknown.
	SurfaceFormat(s Surface) gputypes.TextureFormat

	// RequestDevice opens a logical device and its command queue.
	RequestDevice(ctx context.Context, desc *DeviceDescriptor) (Device, Queue, error)

	// Release releases the adapter.
	Release()
}

// NativeAdapter is implemented by driver adapters that wrap the adapter of
// another library. GraphicsContext.Adapter returns the wrapped value, so
// consumers can type-assert it to the concrete type (e.g. *wgpu.Adapter).
type NativeAdapter interface {
	NativeAdapter() gpucontext.Adapter
}

// DeviceDescriptor configures device creation.
type DeviceDescriptor struct {
	Label            string
	RequiredFeatures gputypes.Features
	RequiredLimits   gputypes.Limits
	MemoryHints      gputypes.MemoryHints
}

// Device is a logical GPU device.
// Concrete drivers return their own device type (e.g., *wgpu.Device).
type Device interface {
	Release()
}

// Queue is the command submission queue paired with a Device.
type Queue = gpucontext.Queue
