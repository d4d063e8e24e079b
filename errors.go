package gpuctx

import (
	"errors"
	"fmt"
)

// Negotiation errors. A *NegotiationError matches exactly one of the stage
// sentinels through errors.Is.
var (
	// ErrRenderTarget is returned when the render target element cannot be
	// created, attached, or detached.
	ErrRenderTarget = errors.New("gpuctx: render target allocation failed")

	// ErrSurfaceCreation is returned when the backend refuses to bind a
	// surface to the render target (including an unavailable API instance).
	ErrSurfaceCreation = errors.New("gpuctx: surface creation failed")

	// ErrNoCompatibleAdapter is returned when no adapter able to present to
	// the surface exists.
	ErrNoCompatibleAdapter = errors.New("gpuctx: no compatible adapter found")

	// ErrDeviceRequest is returned when the driver rejects the device descriptor.
	ErrDeviceRequest = errors.New("gpuctx: device request failed")
)

var (
	// ErrNoPlatform is returned by New when no platform is configured or registered.
	ErrNoPlatform = errors.New("gpuctx: no platform available")

	// ErrInvalidOptions is returned by New for an unusable option set.
	ErrInvalidOptions = errors.New("gpuctx: invalid options")
)

// Stage identifies the negotiation step that failed.
type Stage uint8

const (
	// StageRenderTarget covers creating and attaching the render target.
	StageRenderTarget Stage = iota
	// StageInstance covers creating the API instance for the backend.
	StageInstance
	// StageSurface covers binding a surface to the render target.
	StageSurface
	// StageAdapter covers adapter selection.
	StageAdapter
	// StageDevice covers device and queue creation.
	StageDevice
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageRenderTarget:
		return "render-target"
	case StageInstance:
		return "instance"
	case StageSurface:
		return "surface"
	case StageAdapter:
		return "adapter"
	case StageDevice:
		return "device"
	default:
		return fmt.Sprintf("stage(%d)", uint8(s))
	}
}

// sentinel returns the taxonomy error for the stage.
// Instance failures mean the backend cannot bind a surface at all.
func (s Stage) sentinel() error {
	switch s {
	case StageRenderTarget:
		return ErrRenderTarget
	case StageInstance, StageSurface:
		return ErrSurfaceCreation
	case StageAdapter:
		return ErrNoCompatibleAdapter
	default:
		return ErrDeviceRequest
	}
}

func (s Stage) reason() string {
	switch s {
	case StageRenderTarget:
		return "render target allocation failed"
	case StageInstance:
		return "instance creation failed"
	case StageSurface:
		return "surface creation failed"
	case StageAdapter:
		return "no compatible adapter found"
	default:
		return "device request failed"
	}
}

// NegotiationError describes the failure of one backend attempt.
type NegotiationError struct {
	// Backend is the backend the failure occurred under.
	Backend BackendKind

	// Stage is the step that failed.
	Stage Stage

	// Err is the underlying driver or document error, if any.
	Err error

	// Superseded holds the failures of earlier attempts, oldest first.
	// They are not part of Error().
	Superseded []*NegotiationError

	// terminal stops the fallback even if backends remain.
	terminal bool
}

func newNegotiationError(kind BackendKind, stage Stage, err error) *NegotiationError {
	return &NegotiationError{Backend: kind, Stage: stage, Err: err}
}

// Error returns the failure reason of this attempt only.
func (e *NegotiationError) Error() string {
	msg := fmt.Sprintf("gpuctx: %s backend: %s", e.Backend, e.Stage.reason())
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the stage sentinel and the underlying error.
func (e *NegotiationError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Stage.sentinel()}
	}
	return []error{e.Stage.sentinel(), e.Err}
}
