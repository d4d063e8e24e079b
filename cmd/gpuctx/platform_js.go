//go:build js && wasm

package main

import (
	"errors"

	"github.com/gogpu/gpuctx"
	"github.com/gogpu/gpuctx/internal/config"
)

func newWGPUPlatform(config.Config) (gpuctx.Platform, error) {
	return nil, errors.New("wgpu platform is not available in js/wasm builds")
}

func createShaderModule(*gpuctx.GraphicsContext, string, []uint32) error { return nil }
