//go:build !(js && wasm)

package main

import (
	"errors"

	"github.com/gogpu/gpuctx"
	wgpuplatform "github.com/gogpu/gpuctx/backend/wgpu"
	"github.com/gogpu/gpuctx/internal/config"
)

// newWGPUPlatform creates the wgpu platform. Documents created by the
// command live in memory and have no native window, so the platform runs
// headless.
func newWGPUPlatform(cfg config.Config) (gpuctx.Platform, error) {
	return wgpuplatform.New(wgpuplatform.Options{
		Headless:    true,
		Debug:       cfg.Debug,
		TraceDriver: cfg.TraceDriver,
	}), nil
}

// createShaderModule uploads spirv to the device of gc. Devices of other
// platforms are skipped.
func createShaderModule(gc *gpuctx.GraphicsContext, label string, spirv []uint32) error {
	m, err := wgpuplatform.CreateShaderModule(gc.Device(), label, spirv)
	if errors.Is(err, wgpuplatform.ErrNotWGPUDevice) {
		return nil
	}
	if err != nil {
		return err
	}
	m.Release()
	return nil
}
