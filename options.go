package gpuctx

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// Option configures New.
//
// Example:
//
//	// Only try the primary GPU API, no GL fallback.
//	gc, err := gpuctx.New(ctx, doc, body, gpuctx.WithBackends(gpuctx.PrimaryGPU))
type Option func(*options)

// options holds the configuration of one New call.
type options struct {
	platform   Platform
	backends   []BackendKind
	power      gputypes.PowerPreference
	baseLimits gputypes.Limits
	label      string
	targetTag  string
}

// defaultOptions returns the default New options.
func defaultOptions() options {
	return options{
		platform:   nil, // resolved through DefaultPlatform
		backends:   DefaultBackendOrder(),
		power:      gputypes.PowerPreferenceNone,
		baseLimits: DownlevelWebGL2Limits(),
		label:      "gpuctx-device",
		targetTag:  "canvas",
	}
}

// WithPlatform sets the driver platform explicitly instead of using
// the registered default.
func WithPlatform(p Platform) Option {
	return func(o *options) {
		o.platform = p
	}
}

// WithBackends sets the backends to try, in order. Passing a single kind
// disables fallback.
func WithBackends(kinds ...BackendKind) Option {
	return func(o *options) {
		o.backends = append([]BackendKind(nil), kinds...)
	}
}

// WithPowerPreference sets the adapter power preference.
// The default is gputypes.PowerPreferenceNone (platform default).
func WithPowerPreference(p gputypes.PowerPreference) Option {
	return func(o *options) {
		o.power = p
	}
}

// WithBaseLimits replaces the baseline limit profile that is raised to the
// adapter's resolution and clamped to the adapter's maximums.
func WithBaseLimits(l gputypes.Limits) Option {
	return func(o *options) {
		o.baseLimits = l
	}
}

// WithLabel sets the debug label of the requested device.
func WithLabel(label string) Option {
	return func(o *options) {
		o.label = label
	}
}

// WithTargetTag sets the element tag used for render targets ("canvas").
func WithTargetTag(tag string) Option {
	return func(o *options) {
		o.targetTag = tag
	}
}

func (o *options) validate() error {
	if len(o.backends) == 0 {
		return fmt.Errorf("%w: empty backend list", ErrInvalidOptions)
	}
	seen := make(map[BackendKind]bool, len(o.backends))
	for _, k := range o.backends {
		if !k.Valid() {
			return fmt.Errorf("%w: unknown backend %s", ErrInvalidOptions, k)
		}
		if seen[k] {
			return fmt.Errorf("%w: backend %s listed twice", ErrInvalidOptions, k)
		}
		seen[k] = true
	}
	if o.targetTag == "" {
		return fmt.Errorf("%w: empty render target tag", ErrInvalidOptions)
	}
	return nil
}
