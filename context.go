package gpuctx

import (
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// GraphicsContext is a ready-to-use GPU context: one surface, adapter,
// device and queue, all produced by the same negotiation attempt and tagged
// with the backend that produced them.
//
// A GraphicsContext is never partially constructed. It implements
// gpucontext.DeviceProvider so it can be handed to gogpu libraries directly.
//
// GraphicsContext is safe for concurrent use. Close must be called exactly
// when the caller is done with the device; further calls are no-ops.
type GraphicsContext struct {
	mu sync.RWMutex

	backend  BackendKind
	instance Instance
	surface  Surface
	adapter  Adapter
	device   Device
	queue    Queue
	limits   gputypes.Limits

	parent Element
	target Element

	closed bool
}

// Ensure GraphicsContext implements gpucontext.DeviceProvider.
var _ gpucontext.DeviceProvider = (*GraphicsContext)(nil)

// Backend returns the backend that produced this context.
func (c *GraphicsContext) Backend() BackendKind {
	return c.backend
}

// Surface returns the presentable surface.
func (c *GraphicsContext) Surface() Surface {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.surface
}

// RenderTarget returns the element the surface is bound to.
func (c *GraphicsContext) RenderTarget() Element {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.target
}

// Device returns the logical device. Consumers type-assert to the driver's
// concrete type (e.g., *wgpu.Device).
func (c *GraphicsContext) Device() gpucontext.Device {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.device
}

// Queue returns the command queue paired with the device.
func (c *GraphicsContext) Queue() gpucontext.Queue {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.queue
}

// Adapter returns the selected adapter as the driver library exposes it.
// Driver adapters implementing NativeAdapter are unwrapped; for the wgpu
// platform the result is a *wgpu.Adapter, matching Device and Queue.
func (c *GraphicsContext) Adapter() gpucontext.Adapter {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if na, ok := c.adapter.(NativeAdapter); ok {
		return na.NativeAdapter()
	}
	return c.adapter
}

// DriverAdapter returns the platform adapter the context was negotiated on.
func (c *GraphicsContext) DriverAdapter() Adapter {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.adapter
}

// Limits returns the limits requested for the device.
func (c *GraphicsContext) Limits() gputypes.Limits {
	return c.limits
}

// GPUInfo returns the raw metadata of the selected adapter.
func (c *GraphicsContext) GPUInfo() gputypes.AdapterInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.adapter == nil {
		return gputypes.AdapterInfo{}
	}
	return c.adapter.Info()
}

// SurfaceFormat returns the preferred texture format of the surface on the
// selected adapter.
func (c *GraphicsContext) SurfaceFormat() gputypes.TextureFormat {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.adapter == nil || c.surface == nil {
		return gputypes.TextureFormatUndefined
	}
	return c.adapter.SurfaceFormat(c.surface)
}

// AdapterInfo returns adapter metadata in gpucontext form.
func (c *GraphicsContext) AdapterInfo() gpucontext.AdapterInfo {
	info := c.GPUInfo()
	return gpucontext.AdapterInfo{
		Name: info.Name,
		Type: adapterType(info.DeviceType),
	}
}

// Closed reports whether Close has been called.
func (c *GraphicsContext) Closed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

// Close releases the device, adapter, surface and instance in reverse
// creation order and detaches the render target from its parent.
// It returns the detach error, if any.
func (c *GraphicsContext) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	r := resources{
		instance: c.instance,
		surface:  c.surface,
		adapter:  c.adapter,
		device:   c.device,
	}
	r.release()

	var err error
	if c.parent != nil && c.target != nil {
		err = c.parent.RemoveChild(c.target)
	}

	c.instance = nil
	c.surface = nil
	c.adapter = nil
	c.device = nil
	c.queue = nil
	c.target = nil

	Logger().Debug("gpuctx: context closed", "backend", c.backend)
	return err
}

// adapterType maps gputypes device types onto gpucontext adapter types.
func adapterType(t gputypes.DeviceType) gpucontext.AdapterType {
	switch t {
	case gputypes.DeviceTypeDiscreteGPU:
		return gpucontext.AdapterTypeDiscrete
	case gputypes.DeviceTypeIntegratedGPU:
		return gpucontext.AdapterTypeIntegrated
	case gputypes.DeviceTypeCPU:
		return gpucontext.AdapterTypeSoftware
	default:
		return gpucontext.AdapterTypeUnknown
	}
}
