// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package scripted

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/gogpu/gpuctx"
	"github.com/gogpu/gputypes"
)

// Name is the platform name reported by Platform.Name.
const Name = "scripted"

// ErrInjected is the default error returned by an injected fault.
var ErrInjected = errors.New("scripted: injected failure")

// Operation names recorded in Call.Op.
const (
	OpCreateInstance  = "CreateInstance"
	OpCreateSurface   = "CreateSurface"
	OpRequestAdapter  = "RequestAdapter"
	OpRequestDevice   = "RequestDevice"
	OpReleaseInstance = "ReleaseInstance"
	OpReleaseSurface  = "ReleaseSurface"
	OpReleaseAdapter  = "ReleaseAdapter"
	OpReleaseDevice   = "ReleaseDevice"
)

// Call is one recorded driver call.
type Call struct {
	Backend gpuctx.BackendKind
	Op      string
}

// String returns "backend:op".
func (c Call) String() string {
	return c.Backend.String() + ":" + c.Op
}

// fault is an injected failure for one step.
type fault struct {
	err  error
	none bool // return a nil result instead of an error
}

type stepKey struct {
	kind  gpuctx.BackendKind
	stage gpuctx.Stage
}

// Platform is a deterministic gpuctx.Platform.
//
// Platform is safe for concurrent use.
type Platform struct {
	mu sync.Mutex

	faults map[stepKey]fault
	holds  map[stepKey]<-chan struct{}
	info   map[gpuctx.BackendKind]gputypes.AdapterInfo
	limits map[gpuctx.BackendKind]gputypes.Limits
	format gputypes.TextureFormat

	calls   []Call
	live    int
	adapter map[gpuctx.BackendKind]gpuctx.AdapterOptions
	device  map[gpuctx.BackendKind]gpuctx.DeviceDescriptor
	nextID  uint64

	log *slog.Logger
}

// Ensure Platform implements gpuctx.Platform.
var _ gpuctx.Platform = (*Platform)(nil)

var _ gpuctx.NativeAdapter = (*Adapter)(nil)

// New creates a scripted platform on which every step succeeds.
func New() *Platform {
	return &Platform{
		faults:  make(map[stepKey]fault),
		holds:   make(map[stepKey]<-chan struct{}),
		info:    defaultInfo(),
		limits:  make(map[gpuctx.BackendKind]gputypes.Limits),
		format:  gputypes.TextureFormatBGRA8Unorm,
		adapter: make(map[gpuctx.BackendKind]gpuctx.AdapterOptions),
		device:  make(map[gpuctx.BackendKind]gpuctx.DeviceDescriptor),
		log:     gpuctx.Logger(),
	}
}

func defaultInfo() map[gpuctx.BackendKind]gputypes.AdapterInfo {
	return map[gpuctx.BackendKind]gputypes.AdapterInfo{
		gpuctx.PrimaryGPU: {
			Name:       "Scripted Vulkan Adapter",
			Vendor:     "gogpu",
			DeviceType: gputypes.DeviceTypeDiscreteGPU,
			Driver:     "scripted",
			Backend:    gputypes.BackendVulkan,
		},
		gpuctx.PortableGL: {
			Name:       "Scripted GL Adapter",
			Vendor:     "gogpu",
			DeviceType: gputypes.DeviceTypeIntegratedGPU,
			Driver:     "scripted",
			Backend:    gputypes.BackendGL,
		},
	}
}

// Name returns "scripted".
func (p *Platform) Name() string { return Name }

// SetLogger sets the logger used for call tracing.
func (p *Platform) SetLogger(l *slog.Logger) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.log = l
}

// Fail makes the given step fail for kind. A nil err uses ErrInjected,
// except for StageAdapter where nil means "no adapter found".
func (p *Platform) Fail(kind gpuctx.BackendKind, stage gpuctx.Stage, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	f := fault{err: err}
	if err == nil {
		if stage == gpuctx.StageAdapter {
			f.none = true
		} else {
			f.err = ErrInjected
		}
	}
	p.faults[stepKey{kind, stage}] = f
}

// Hold blocks the adapter or device request of kind until release is
// closed or the request context is done.
func (p *Platform) Hold(kind gpuctx.BackendKind, stage gpuctx.Stage, release <-chan struct{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.holds[stepKey{kind, stage}] = release
}

// Reset removes all injected faults and holds.
func (p *Platform) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	clear(p.faults)
	clear(p.holds)
}

// SetAdapterInfo overrides the adapter metadata reported for kind.
func (p *Platform) SetAdapterInfo(kind gpuctx.BackendKind, info gputypes.AdapterInfo) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.info[kind] = info
}

// SetLimits overrides the adapter limits reported for kind.
// The default is gputypes.DefaultLimits.
func (p *Platform) SetLimits(kind gpuctx.BackendKind, l gputypes.Limits) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.limits[kind] = l
}

// Calls returns a copy of the recorded calls in order.
func (p *Platform) Calls() []Call {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Call(nil), p.calls...)
}

// Ops returns the recorded calls as "backend:op" strings.
func (p *Platform) Ops() []string {
	calls := p.Calls()
	ops := make([]string, len(calls))
	for i, c := range calls {
		ops[i] = c.String()
	}
	return ops
}

// Live returns the number of created and not yet released resources.
func (p *Platform) Live() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.live
}

// AdapterOptions returns the options of the last adapter request for kind.
func (p *Platform) AdapterOptions(kind gpuctx.BackendKind) (gpuctx.AdapterOptions, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	o, ok := p.adapter[kind]
	return o, ok
}

// DeviceDescriptor returns the descriptor of the last device request for kind.
func (p *Platform) DeviceDescriptor(kind gpuctx.BackendKind) (gpuctx.DeviceDescriptor, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	d, ok := p.device[kind]
	return d, ok
}

// CreateInstance creates a scripted instance for kind.
func (p *Platform) CreateInstance(kind gpuctx.BackendKind) (gpuctx.Instance, error) {
	if err := p.enter(kind, gpuctx.StageInstance, OpCreateInstance); err != nil {
		return nil, err
	}
	return &Instance{p: p, kind: kind, id: p.acquire()}, nil
}

// record appends a call. Callers hold p.mu.
func (p *Platform) record(kind gpuctx.BackendKind, op string) {
	p.calls = append(p.calls, Call{Backend: kind, Op: op})
	p.log.Debug("scripted: call", "backend", kind, "op", op)
}

// enter records op and returns the injected error for the step, if any.
func (p *Platform) enter(kind gpuctx.BackendKind, stage gpuctx.Stage, op string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record(kind, op)
	if f, ok := p.faults[stepKey{kind, stage}]; ok && f.err != nil {
		return f.err
	}
	return nil
}

func (p *Platform) acquire() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.live++
	p.nextID++
	return p.nextID
}

func (p *Platform) release(kind gpuctx.BackendKind, op string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record(kind, op)
	p.live--
}

// Fault is a parsed "backend:stage" failure description.
type Fault struct {
	Backend gpuctx.BackendKind
	Stage   gpuctx.Stage
}

// String returns "backend:stage".
func (f Fault) String() string {
	return f.Backend.String() + ":" + f.Stage.String()
}

// Apply injects the fault into p.
func (f Fault) Apply(p *Platform) {
	p.Fail(f.Backend, f.Stage, nil)
}

// ParseFault parses "backend:stage", e.g. "primary-gpu:adapter" or "gl:device".
// Valid stages are instance, surface, adapter and device.
func ParseFault(s string) (Fault, error) {
	b, st, ok := strings.Cut(s, ":")
	if !ok {
		return Fault{}, fmt.Errorf("scripted: fault %q: want backend:stage", s)
	}
	kind, err := gpuctx.ParseBackendKind(b)
	if err != nil {
		return Fault{}, fmt.Errorf("scripted: fault %q: %w", s, err)
	}
	var stage gpuctx.Stage
	switch strings.ToLower(strings.TrimSpace(st)) {
	case "instance":
		stage = gpuctx.StageInstance
	case "surface":
		stage = gpuctx.StageSurface
	case "adapter":
		stage = gpuctx.StageAdapter
	case "device":
		stage = gpuctx.StageDevice
	default:
		return Fault{}, fmt.Errorf("scripted: fault %q: unknown stage %q", s, st)
	}
	return Fault{Backend: kind, Stage: stage}, nil
}
