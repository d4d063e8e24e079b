//go:build !(js && wasm)

package wgpu

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gpuctx"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"
)

// ErrNoWindow is returned by CreateSurface when the render target carries
// no native window and the platform is not headless.
var ErrNoWindow = errors.New("wgpu: render target has no native window")

// Options configures the wgpu platform.
type Options struct {
	// Headless selects adapters without a compatible surface when the render
	// target has no native window.
	Headless bool

	// Debug enables the GPU validation layers.
	Debug bool

	// TraceDriver forwards the gpuctx logger to the whole wgpu stack
	// (core and HAL backends).
	TraceDriver bool
}

// Platform is the gogpu/wgpu implementation of gpuctx.Platform.
type Platform struct {
	opts Options
	log  atomic.Pointer[slog.Logger]
}

// Ensure Platform implements gpuctx.Platform.
var _ gpuctx.Platform = (*Platform)(nil)

var _ gpuctx.NativeAdapter = (*Adapter)(nil)

// New creates a wgpu platform.
func New(opts Options) *Platform {
	p := &Platform{opts: opts}
	p.log.Store(gpuctx.Logger())
	return p
}

// Name returns gpuctx.PlatformWGPU.
func (p *Platform) Name() string { return gpuctx.PlatformWGPU }

// Options returns the platform options.
func (p *Platform) Options() Options { return p.opts }

// SetLogger sets the platform logger. With Options.TraceDriver it is also
// installed as the wgpu stack logger.
func (p *Platform) SetLogger(l *slog.Logger) {
	if l == nil {
		l = gpuctx.Logger()
	}
	p.log.Store(l)
	if p.opts.TraceDriver {
		wgpu.SetLogger(l)
	}
}

func (p *Platform) logger() *slog.Logger { return p.log.Load() }

// CreateInstance creates a wgpu instance restricted to the backend family
// of kind.
func (p *Platform) CreateInstance(kind gpuctx.BackendKind) (gpuctx.Instance, error) {
	backends := kind.Backends()
	if backends == gputypes.BackendsNone {
		return nil, fmt.Errorf("wgpu: no backends for %s", kind)
	}
	desc := &wgpu.InstanceDescriptor{Backends: backends}
	if p.opts.Debug {
		desc.Flags = gputypes.InstanceFlagsDebug
	}
	inst, err := wgpu.CreateInstance(desc)
	if err != nil {
		return nil, fmt.Errorf("wgpu: create instance: %w", err)
	}
	p.logger().Debug("wgpu: instance created", "backend", kind, "backends", backends)
	return &instance{p: p, kind: kind, raw: inst}, nil
}

// nativeWindow is implemented by render targets backed by a native window
// (see dom.Element).
type nativeWindow interface {
	NativeHandles() (display, window uintptr, ok bool)
}

// instance wraps *wgpu.Instance.
type instance struct {
	p    *Platform
	kind gpuctx.BackendKind
	raw  *wgpu.Instance
}

// CreateSurface creates a surface for the native window of target.
func (i *instance) CreateSurface(target gpuctx.Element) (gpuctx.Surface, error) {
	var display, window uintptr
	ok := false
	if nw, isNative := target.(nativeWindow); isNative {
		display, window, ok = nw.NativeHandles()
	}
	if !ok {
		if i.p.opts.Headless {
			return &headlessSurface{}, nil
		}
		return nil, ErrNoWindow
	}

	s, err := i.raw.CreateSurface(display, window)
	if err != nil {
		return nil, err
	}
	return &Surface{raw: s}, nil
}

// RequestAdapter requests an adapter compatible with opts.CompatibleSurface.
// wgpu.ErrNoAdapters maps to a nil adapter.
func (i *instance) RequestAdapter(ctx context.Context, opts *gpuctx.AdapterOptions) (gpuctx.Adapter, error) {
	wopts := &wgpu.RequestAdapterOptions{}
	if opts != nil {
		wopts.PowerPreference = opts.PowerPreference
		wopts.ForceFallbackAdapter = opts.ForceFallbackAdapter
		if s, ok := opts.CompatibleSurface.(*Surface); ok {
			wopts.CompatibleSurface = s.raw
		}
	}

	a, err := await(ctx, func() (*wgpu.Adapter, error) {
		return i.raw.RequestAdapter(wopts)
	}, func(a *wgpu.Adapter) {
		if a != nil {
			a.Release()
		}
	})
	if errors.Is(err, wgpu.ErrNoAdapters) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, nil
	}

	logGPUInfo(i.p.logger(), a.Info())
	return &Adapter{p: i.p, raw: a}, nil
}

// Release releases the instance.
func (i *instance) Release() { i.raw.Release() }

// Surface wraps *wgpu.Surface.
type Surface struct {
	raw *wgpu.Surface
}

// Raw returns the underlying wgpu surface for configuration and presentation.
func (s *Surface) Raw() *wgpu.Surface { return s.raw }

// Release releases the surface.
func (s *Surface) Release() { s.raw.Release() }

// headlessSurface stands in for a surface when the target has no window.
type headlessSurface struct{}

func (*headlessSurface) Release() {}

// Adapter wraps *wgpu.Adapter.
type Adapter struct {
	p   *Platform
	raw *wgpu.Adapter
}

// Raw returns the underlying wgpu adapter.
func (a *Adapter) Raw() *wgpu.Adapter { return a.raw }

// NativeAdapter returns the underlying *wgpu.Adapter.
func (a *Adapter) NativeAdapter() gpucontext.Adapter { return a.raw }

// Info returns adapter metadata.
func (a *Adapter) Info() gputypes.AdapterInfo { return a.raw.Info() }

// Limits returns the adapter limits.
func (a *Adapter) Limits() gputypes.Limits { return a.raw.Limits() }

// GPUInfo returns a summary of the adapter.
func (a *Adapter) GPUInfo() *GPUInfo { return newGPUInfo(a.raw.Info()) }

// SurfaceFormat returns the preferred format for presenting to s.
func (a *Adapter) SurfaceFormat(s gpuctx.Surface) gputypes.TextureFormat {
	ws, ok := s.(*Surface)
	if !ok {
		return gputypes.TextureFormatUndefined
	}
	caps := a.raw.GetSurfaceCapabilities(ws.raw)
	if caps == nil {
		return gputypes.TextureFormatUndefined
	}
	return preferredFormat(caps.Formats)
}

// RequestDevice creates a device and returns it with its queue.
// The returned gpuctx.Device is a *wgpu.Device and the queue a *wgpu.Queue.
func (a *Adapter) RequestDevice(ctx context.Context, desc *gpuctx.DeviceDescriptor) (gpuctx.Device, gpuctx.Queue, error) {
	wdesc := &wgpu.DeviceDescriptor{RequiredLimits: gputypes.DefaultLimits()}
	if desc != nil {
		wdesc.Label = desc.Label
		wdesc.RequiredFeatures = desc.RequiredFeatures
		wdesc.RequiredLimits = desc.RequiredLimits
		// wgpu allocates per device; the hint is informational only.
		a.p.logger().Debug("wgpu: memory hints", "hints", desc.MemoryHints)
	}

	d, err := await(ctx, func() (*wgpu.Device, error) {
		return a.raw.RequestDevice(wdesc)
	}, func(d *wgpu.Device) {
		if d != nil {
			d.Release()
		}
	})
	if err != nil {
		return nil, nil, err
	}
	if d == nil {
		return nil, nil, errors.New("wgpu: no device returned")
	}
	q := d.Queue()
	if q == nil {
		d.Release()
		return nil, nil, errors.New("wgpu: device has no queue")
	}
	return d, q, nil
}

// Release releases the adapter.
func (a *Adapter) Release() { a.raw.Release() }
