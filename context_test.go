package gpuctx_test

import (
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gpuctx"
	"github.com/gogpu/gpuctx/backend/scripted"
	"github.com/gogpu/gputypes"
)

func TestGraphicsContextDeviceProvider(t *testing.T) {
	h := newHarness()
	gc, err := h.new(t)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer gc.Close()

	var dp gpucontext.DeviceProvider = gc
	if dp.Device() == nil || dp.Queue() == nil || dp.Adapter() == nil {
		t.Error("DeviceProvider returned nil components")
	}
	if got := dp.SurfaceFormat(); got != gputypes.TextureFormatBGRA8Unorm {
		t.Errorf("SurfaceFormat() = %v, want BGRA8Unorm", got)
	}

	info := dp.AdapterInfo()
	if info.Name != "Scripted Vulkan Adapter" {
		t.Errorf("AdapterInfo().Name = %q", info.Name)
	}
	if info.Type != gpucontext.AdapterTypeDiscrete {
		t.Errorf("AdapterInfo().Type = %v, want discrete", info.Type)
	}
}

// TestAdapterReturnsNativeHandle tests that Adapter unwraps the driver
// adapter, the way *wgpu.Adapter is exposed for the wgpu platform.
func TestAdapterReturnsNativeHandle(t *testing.T) {
	h := newHarness()
	h.p.Fail(gpuctx.PrimaryGPU, gpuctx.StageAdapter, nil)
	gc, err := h.new(t)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer gc.Close()

	native, ok := gc.Adapter().(*scripted.Native)
	if !ok {
		t.Fatalf("Adapter() = %T, want *scripted.Native", gc.Adapter())
	}
	driver := gc.DriverAdapter().(*scripted.Adapter)
	if native != driver.Native() {
		t.Error("Adapter() is not the native handle of the driver adapter")
	}
	if native.Backend != gpuctx.PortableGL || native.Name != "Scripted GL Adapter" {
		t.Errorf("native = %+v, want the portable-gl adapter", *native)
	}
}

func TestAdapterInfoTypes(t *testing.T) {
	tests := []struct {
		dt   gputypes.DeviceType
		want gpucontext.AdapterType
	}{
		{gputypes.DeviceTypeDiscreteGPU, gpucontext.AdapterTypeDiscrete},
		{gputypes.DeviceTypeIntegratedGPU, gpucontext.AdapterTypeIntegrated},
		{gputypes.DeviceTypeVirtualGPU, gpucontext.AdapterTypeUnknown},
		{gputypes.DeviceTypeOther, gpucontext.AdapterTypeUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.dt.String(), func(t *testing.T) {
			h := newHarness()
			h.p.SetAdapterInfo(gpuctx.PrimaryGPU, gputypes.AdapterInfo{Name: "gpu", DeviceType: tt.dt})
			gc, err := h.new(t)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			defer gc.Close()
			if got := gc.AdapterInfo().Type; got != tt.want {
				t.Errorf("AdapterInfo().Type = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestCloseDetachesTarget tests that Close releases everything once.
func TestCloseDetachesTarget(t *testing.T) {
	h := newHarness()
	gc, err := h.new(t)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if gc.Closed() {
		t.Error("Closed() = true before Close")
	}
	if err := gc.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !gc.Closed() {
		t.Error("Closed() = false after Close")
	}
	if n := len(h.body.Children()); n != 0 {
		t.Errorf("body has %d children after Close, want 0", n)
	}
	if h.p.Live() != 0 {
		t.Errorf("Live() = %d after Close, want 0", h.p.Live())
	}
	if gc.Device() != nil || gc.RenderTarget() != nil {
		t.Error("components still set after Close")
	}
	if gc.SurfaceFormat() != gputypes.TextureFormatUndefined {
		t.Error("SurfaceFormat() after Close should be Undefined")
	}
	if gc.Backend() != gpuctx.PrimaryGPU {
		t.Errorf("Backend() after Close = %v, want primary-gpu", gc.Backend())
	}

	calls := len(h.p.Calls())
	if err := gc.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if len(h.p.Calls()) != calls {
		t.Error("second Close() called the driver again")
	}
}
