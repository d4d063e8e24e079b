//go:build !(js && wasm)

package wgpu

import (
	"errors"
	"testing"

	"github.com/gogpu/gpuctx"
	"github.com/gogpu/gpuctx/dom"
	"github.com/gogpu/gputypes"
)

// TestRegistered tests that importing the package registers the platform.
func TestRegistered(t *testing.T) {
	p := gpuctx.PlatformByName(gpuctx.PlatformWGPU)
	if p == nil {
		t.Fatal("PlatformByName(wgpu) = nil")
	}
	if _, ok := p.(*Platform); !ok {
		t.Errorf("PlatformByName(wgpu) = %T, want *Platform", p)
	}
	if got := p.Name(); got != gpuctx.PlatformWGPU {
		t.Errorf("Name() = %q, want %q", got, gpuctx.PlatformWGPU)
	}
}

func TestCreateInstanceInvalidKind(t *testing.T) {
	p := New(Options{})
	if _, err := p.CreateInstance(gpuctx.BackendKind(9)); err == nil {
		t.Error("CreateInstance(invalid) should fail")
	}
}

// TestCreateSurfaceWithoutWindow tests targets that carry no native window.
func TestCreateSurfaceWithoutWindow(t *testing.T) {
	doc := dom.NewDocument()
	canvas, err := doc.CreateElement("canvas")
	if err != nil {
		t.Fatal(err)
	}

	i := &instance{p: New(Options{}), kind: gpuctx.PrimaryGPU}
	if _, err := i.CreateSurface(canvas); !errors.Is(err, ErrNoWindow) {
		t.Errorf("CreateSurface() error = %v, want ErrNoWindow", err)
	}

	i = &instance{p: New(Options{Headless: true}), kind: gpuctx.PrimaryGPU}
	s, err := i.CreateSurface(canvas)
	if err != nil {
		t.Fatalf("headless CreateSurface() error = %v", err)
	}
	if _, ok := s.(*headlessSurface); !ok {
		t.Errorf("headless CreateSurface() = %T, want *headlessSurface", s)
	}
	s.Release()

	a := &Adapter{p: i.p}
	if got := a.SurfaceFormat(s); got != gputypes.TextureFormatUndefined {
		t.Errorf("SurfaceFormat(headless) = %v, want Undefined", got)
	}
}

func TestSetLoggerNil(t *testing.T) {
	p := New(Options{})
	p.SetLogger(nil)
	if p.logger() == nil {
		t.Error("logger() = nil after SetLogger(nil)")
	}
}

func TestCreateShaderModuleForeignDevice(t *testing.T) {
	if _, err := CreateShaderModule(struct{}{}, "x", nil); !errors.Is(err, ErrNotWGPUDevice) {
		t.Errorf("CreateShaderModule() error = %v, want ErrNotWGPUDevice", err)
	}
}
