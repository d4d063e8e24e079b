package gpuctx

import (
	"context"
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
)

// resources tracks what one attempt has acquired so far.
type resources struct {
	instance Instance
	surface  Surface
	adapter  Adapter
	device   Device
}

// release releases resources in reverse order of creation.
// Note: the queue is released together with its device.
func (r *resources) release() {
	if r.device != nil {
		r.device.Release()
		r.device = nil
	}
	if r.adapter != nil {
		r.adapter.Release()
		r.adapter = nil
	}
	if r.surface != nil {
		r.surface.Release()
		r.surface = nil
	}
	if r.instance != nil {
		r.instance.Release()
		r.instance = nil
	}
}

// createSurface binds a surface for kind to target.
func createSurface(kind BackendKind, inst Instance, target Element) (Surface, error) {
	s, err := inst.CreateSurface(target)
	if err != nil {
		return nil, newNegotiationError(kind, StageSurface, err)
	}
	if s == nil {
		return nil, newNegotiationError(kind, StageSurface, errors.New("platform returned no surface"))
	}
	return s, nil
}

// requestAdapter selects an adapter able to present to surface.
// Software adapters are never accepted.
func requestAdapter(ctx context.Context, kind BackendKind, inst Instance, surface Surface, pref gputypes.PowerPreference) (Adapter, error) {
	a, err := inst.RequestAdapter(ctx, &AdapterOptions{
		PowerPreference:      pref,
		ForceFallbackAdapter: false,
		CompatibleSurface:    surface,
	})
	if err != nil {
		if a != nil {
			a.Release()
		}
		return nil, newNegotiationError(kind, StageAdapter, err)
	}
	if a == nil {
		return nil, newNegotiationError(kind, StageAdapter, nil)
	}

	info := a.Info()
	if info.DeviceType == gputypes.DeviceTypeCPU {
		a.Release()
		return nil, newNegotiationError(kind, StageAdapter,
			fmt.Errorf("software adapter %q rejected", info.Name))
	}

	Logger().Info("gpuctx: adapter selected",
		"backend", kind,
		"name", info.Name,
		"type", info.DeviceType,
		"api", info.Backend,
	)
	return a, nil
}

// requestDevice opens a device on adapter with base clamped to the
// adapter's limits and no optional features.
func requestDevice(ctx context.Context, kind BackendKind, adapter Adapter, base gputypes.Limits, label string) (Device, Queue, gputypes.Limits, error) {
	have := adapter.Limits()
	limits := RequiredLimits(base, have)
	if bad := ExceededLimits(limits, have); len(bad) > 0 {
		return nil, nil, limits, newNegotiationError(kind, StageDevice,
			fmt.Errorf("requested limits exceed adapter: %v", bad))
	}

	Logger().Debug("gpuctx: requesting device",
		"backend", kind,
		"maxTextureDimension2D", limits.MaxTextureDimension2D,
		"maxBufferSize", limits.MaxBufferSize,
	)

	device, queue, err := adapter.RequestDevice(ctx, &DeviceDescriptor{
		Label:            label,
		RequiredFeatures: 0,
		RequiredLimits:   limits,
		MemoryHints:      gputypes.MemoryHintsMemoryUsage,
	})
	if err != nil {
		if device != nil {
			device.Release()
		}
		return nil, nil, limits, newNegotiationError(kind, StageDevice, err)
	}
	if device == nil || queue == nil {
		if device != nil {
			device.Release()
		}
		return nil, nil, limits, newNegotiationError(kind, StageDevice,
			errors.New("platform returned no device or queue"))
	}
	return device, queue, limits, nil
}

// negotiator runs backend attempts against one document and parent.
type negotiator struct {
	opts     options
	platform Platform
	doc      Document
	parent   Element
}

// attempt runs the full sequence for kind on a fresh render target.
// On failure every acquired resource is released and the target is detached
// before returning.
func (n *negotiator) attempt(ctx context.Context, kind BackendKind) (*GraphicsContext, error) {
	log := Logger().With("backend", kind)
	log.Debug("gpuctx: attempt started", "platform", n.platform.Name())

	target, err := n.doc.CreateElement(n.opts.targetTag)
	if err != nil {
		return nil, newNegotiationError(kind, StageRenderTarget, err)
	}
	if target == nil {
		return nil, newNegotiationError(kind, StageRenderTarget, errors.New("document returned no element"))
	}
	if err := n.parent.AppendChild(target); err != nil {
		return nil, newNegotiationError(kind, StageRenderTarget, err)
	}

	var r resources
	fail := func(err error) (*GraphicsContext, error) {
		var nerr *NegotiationError
		if errors.As(err, &nerr) {
			log.Error("gpuctx: negotiation step failed", "stage", nerr.Stage, "err", err)
		}
		r.release()
		if rmErr := n.parent.RemoveChild(target); rmErr != nil {
			log.Error("gpuctx: render target teardown failed", "err", rmErr)
			e := newNegotiationError(kind, StageRenderTarget,
				fmt.Errorf("detach failed render target: %w", rmErr))
			e.terminal = true
			return nil, e
		}
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return fail(err)
	}
	inst, err := n.platform.CreateInstance(kind)
	if err != nil {
		return fail(newNegotiationError(kind, StageInstance, err))
	}
	if inst == nil {
		return fail(newNegotiationError(kind, StageInstance, errors.New("platform returned no instance")))
	}
	r.instance = inst

	// Step 1: Surface
	surface, err := createSurface(kind, inst, target)
	if err != nil {
		return fail(err)
	}
	r.surface = surface

	// Step 2: Adapter
	if err := ctx.Err(); err != nil {
		return fail(err)
	}
	adapter, err := requestAdapter(ctx, kind, inst, surface, n.opts.power)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fail(ctxErr)
		}
		return fail(err)
	}
	r.adapter = adapter

	// Step 3: Device and queue
	if err := ctx.Err(); err != nil {
		return fail(err)
	}
	device, queue, limits, err := requestDevice(ctx, kind, adapter, n.opts.baseLimits, n.opts.label)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fail(ctxErr)
		}
		return fail(err)
	}
	r.device = device

	info := adapter.Info()
	log.Info("gpuctx: backend initialized",
		"adapter", info.Name,
		"driver", info.Driver,
		"api", info.Backend,
	)

	return &GraphicsContext{
		backend:  kind,
		instance: inst,
		surface:  surface,
		adapter:  adapter,
		device:   device,
		queue:    queue,
		limits:   limits,
		parent:   n.parent,
		target:   target,
	}, nil
}
