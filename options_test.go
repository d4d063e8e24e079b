package gpuctx

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestDefaultOptions(t *testing.T) {
	o := defaultOptions()
	if o.platform != nil {
		t.Error("default platform should be nil")
	}
	if len(o.backends) != 2 || o.backends[0] != PrimaryGPU || o.backends[1] != PortableGL {
		t.Errorf("backends = %v, want [primary-gpu portable-gl]", o.backends)
	}
	if o.power != gputypes.PowerPreferenceNone {
		t.Errorf("power = %v, want None", o.power)
	}
	if o.baseLimits != DownlevelWebGL2Limits() {
		t.Error("baseLimits should default to DownlevelWebGL2Limits")
	}
	if o.targetTag != "canvas" {
		t.Errorf("targetTag = %q, want canvas", o.targetTag)
	}
	if err := o.validate(); err != nil {
		t.Errorf("validate() = %v, want nil", err)
	}
}

func TestOptionsApply(t *testing.T) {
	kinds := []BackendKind{PortableGL}
	o := defaultOptions()
	for _, opt := range []Option{
		WithBackends(kinds...),
		WithPowerPreference(gputypes.PowerPreferenceLowPower),
		WithLabel("demo"),
		WithTargetTag("div"),
		WithBaseLimits(gputypes.DefaultLimits()),
	} {
		opt(&o)
	}

	kinds[0] = PrimaryGPU
	if o.backends[0] != PortableGL {
		t.Error("WithBackends should copy its arguments")
	}
	if o.power != gputypes.PowerPreferenceLowPower {
		t.Errorf("power = %v, want LowPower", o.power)
	}
	if o.label != "demo" || o.targetTag != "div" {
		t.Errorf("label, tag = %q, %q", o.label, o.targetTag)
	}
	if o.baseLimits != gputypes.DefaultLimits() {
		t.Error("WithBaseLimits not applied")
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{"empty", WithBackends()},
		{"unknown", WithBackends(BackendKind(5))},
		{"duplicate", WithBackends(PrimaryGPU, PrimaryGPU)},
		{"no tag", WithTargetTag("")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := defaultOptions()
			tt.opt(&o)
			if err := o.validate(); !errors.Is(err, ErrInvalidOptions) {
				t.Errorf("validate() = %v, want ErrInvalidOptions", err)
			}
		})
	}
}
