package gpuctx

import (
	"context"
	"errors"
	"fmt"
)

// New acquires a GPU context for a render target created under parent.
//
// Backends are tried strictly in order (by default PrimaryGPU, then
// PortableGL). Each attempt allocates a fresh render target with doc, appends
// it to parent, creates a surface, selects an adapter and requests a device.
// Any failure releases what the attempt acquired and removes its target
// before the next backend is tried. The failure of the last backend is
// returned as a *NegotiationError naming that backend; earlier failures are
// logged and recorded in its Superseded field.
//
// New never returns a partially initialized context: either the context is
// non-nil and fully usable, or the error is non-nil. If ctx is canceled, New
// tears down the current attempt and returns the context error.
func New(ctx context.Context, doc Document, parent Element, opts ...Option) (*GraphicsContext, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}
	if doc == nil || parent == nil {
		return nil, fmt.Errorf("%w: nil document or parent element", ErrInvalidOptions)
	}

	p := o.platform
	if p == nil {
		p = DefaultPlatform()
	}
	if p == nil {
		return nil, ErrNoPlatform
	}
	propagateLogger(p, Logger())

	n := &negotiator{
		opts:     o,
		platform: p,
		doc:      doc,
		parent:   parent,
	}

	var superseded []*NegotiationError
	for i, kind := range o.backends {
		gc, err := n.attempt(ctx, kind)
		if err == nil {
			return gc, nil
		}

		var nerr *NegotiationError
		if !errors.As(err, &nerr) {
			// Caller cancellation.
			return nil, err
		}
		last := i == len(o.backends)-1
		if last || nerr.terminal {
			nerr.Superseded = superseded
			return nil, nerr
		}

		Logger().Warn("gpuctx: backend unavailable, falling back",
			"backend", kind,
			"next", o.backends[i+1],
			"err", nerr,
		)
		superseded = append(superseded, nerr)
	}

	// Unreachable: validate guarantees at least one backend.
	return nil, fmt.Errorf("%w: empty backend list", ErrInvalidOptions)
}
