// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package scripted

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gpuctx"
	"github.com/gogpu/gputypes"
)

// handle is the reference-counted part shared by all scripted resources.
type handle struct {
	p        *Platform
	kind     gpuctx.BackendKind
	id       uint64
	released atomic.Bool
}

func (h *handle) releaseOnce(op string) {
	if h.released.CompareAndSwap(false, true) {
		h.p.release(h.kind, op)
	}
}

// Released reports whether Release has been called.
func (h *handle) Released() bool { return h.released.Load() }

// Backend returns the backend the resource was created for.
func (h *handle) Backend() gpuctx.BackendKind { return h.kind }

// Instance is a scripted gpuctx.Instance.
type Instance handle

// CreateSurface binds a scripted surface to target.
func (i *Instance) CreateSurface(target gpuctx.Element) (gpuctx.Surface, error) {
	if err := i.p.enter(i.kind, gpuctx.StageSurface, OpCreateSurface); err != nil {
		return nil, err
	}
	return &Surface{handle: handle{p: i.p, kind: i.kind, id: i.p.acquire()}, target: target}, nil
}

// RequestAdapter returns the scripted adapter for the instance's backend,
// or nil if a "no adapter" fault is injected.
func (i *Instance) RequestAdapter(ctx context.Context, opts *gpuctx.AdapterOptions) (gpuctx.Adapter, error) {
	p := i.p
	p.mu.Lock()
	if opts != nil {
		p.adapter[i.kind] = *opts
	}
	p.mu.Unlock()

	if err := p.enter(i.kind, gpuctx.StageAdapter, OpRequestAdapter); err != nil {
		return nil, err
	}
	if err := p.wait(ctx, i.kind, gpuctx.StageAdapter); err != nil {
		return nil, err
	}

	p.mu.Lock()
	none := p.faults[stepKey{i.kind, gpuctx.StageAdapter}].none
	info := p.info[i.kind]
	limits, ok := p.limits[i.kind]
	p.mu.Unlock()
	if none {
		return nil, nil
	}
	if !ok {
		limits = gputypes.DefaultLimits()
	}
	id := p.acquire()
	return &Adapter{
		handle: handle{p: p, kind: i.kind, id: id},
		info:   info,
		limits: limits,
		native: &Native{Backend: i.kind, Name: info.Name, ID: id},
	}, nil
}

// Release releases the instance.
func (i *Instance) Release() { (*handle)(i).releaseOnce(OpReleaseInstance) }

// Surface is a scripted gpuctx.Surface.
type Surface struct {
	handle
	target gpuctx.Element
}

// Target returns the render target the surface was created for.
func (s *Surface) Target() gpuctx.Element { return s.target }

// Release releases the surface.
func (s *Surface) Release() { s.releaseOnce(OpReleaseSurface) }

// Native stands in for the driver-level adapter a real platform wraps.
type Native struct {
	Backend gpuctx.BackendKind
	Name    string
	ID      uint64
}

// Adapter is a scripted gpuctx.Adapter.
type Adapter struct {
	handle
	info   gputypes.AdapterInfo
	limits gputypes.Limits
	native *Native
}

// NativeAdapter returns the adapter's *Native handle.
func (a *Adapter) NativeAdapter() gpucontext.Adapter { return a.native }

// Native returns the adapter's driver-level handle.
func (a *Adapter) Native() *Native { return a.native }

// Info returns the adapter metadata.
func (a *Adapter) Info() gputypes.AdapterInfo { return a.info }

// Limits returns the adapter limits.
func (a *Adapter) Limits() gputypes.Limits { return a.limits }

// SurfaceFormat returns the platform's surface format for scripted surfaces.
func (a *Adapter) SurfaceFormat(s gpuctx.Surface) gputypes.TextureFormat {
	if _, ok := s.(*Surface); !ok {
		return gputypes.TextureFormatUndefined
	}
	a.p.mu.Lock()
	defer a.p.mu.Unlock()
	return a.p.format
}

// RequestDevice opens a scripted device. Like a real driver it rejects
// descriptors whose limits exceed the adapter's.
func (a *Adapter) RequestDevice(ctx context.Context, desc *gpuctx.DeviceDescriptor) (gpuctx.Device, gpuctx.Queue, error) {
	p := a.p
	if desc == nil {
		desc = &gpuctx.DeviceDescriptor{RequiredLimits: gputypes.DefaultLimits()}
	}
	p.mu.Lock()
	p.device[a.kind] = *desc
	p.mu.Unlock()

	if err := p.enter(a.kind, gpuctx.StageDevice, OpRequestDevice); err != nil {
		return nil, nil, err
	}
	if err := p.wait(ctx, a.kind, gpuctx.StageDevice); err != nil {
		return nil, nil, err
	}
	if bad := gpuctx.ExceededLimits(desc.RequiredLimits, a.limits); len(bad) > 0 {
		return nil, nil, fmt.Errorf("scripted: limits exceed adapter: %v", bad)
	}

	d := &Device{handle: handle{p: p, kind: a.kind, id: p.acquire()}, label: desc.Label}
	d.queue = &Queue{device: d}
	return d, d.queue, nil
}

// Release releases the adapter.
func (a *Adapter) Release() { a.releaseOnce(OpReleaseAdapter) }

// Device is a scripted gpuctx.Device.
type Device struct {
	handle
	label string
	queue *Queue
}

// Label returns the device label from the descriptor.
func (d *Device) Label() string { return d.label }

// Queue returns the device queue.
func (d *Device) Queue() *Queue { return d.queue }

// Release releases the device and its queue.
func (d *Device) Release() { d.releaseOnce(OpReleaseDevice) }

// Queue is the queue of a scripted device.
type Queue struct {
	device *Device
}

// Device returns the owning device.
func (q *Queue) Device() *Device { return q.device }

// wait blocks on a Hold for the step, if any.
func (p *Platform) wait(ctx context.Context, kind gpuctx.BackendKind, stage gpuctx.Stage) error {
	p.mu.Lock()
	ch := p.holds[stepKey{kind, stage}]
	p.mu.Unlock()
	if ch == nil {
		return nil
	}
	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
