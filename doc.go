// Package gpuctx acquires a ready-to-use GPU context for a render target,
// falling back from the primary GPU API to a portable GL-based API.
//
// # Overview
//
// A context is negotiated in three steps, each of which may fail:
//
//  1. Surface: bind a surface to a freshly created render target.
//  2. Adapter: select an adapter able to present to that surface.
//  3. Device: open a device and queue with limits clamped to the adapter.
//
// New runs the sequence for the primary backend (Vulkan, Metal, DX12 or
// browser WebGPU). On any failure it releases everything the attempt
// acquired, removes the render target from the document, and runs the whole
// sequence again for the GL backend on a new render target. The result is
// either a fully usable GraphicsContext or a single *NegotiationError.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/gpuctx"
//	    "github.com/gogpu/gpuctx/dom"
//	    _ "github.com/gogpu/gpuctx/backend/wgpu" // register the wgpu platform
//	)
//
//	doc := dom.NewDocument()
//	gc, err := gpuctx.New(ctx, doc, doc.Body())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer gc.Close()
//
//	fmt.Println(gc.Backend(), gc.AdapterInfo().Name)
//
// # Platforms
//
// Drivers implement Platform and register themselves with RegisterPlatform.
// backend/wgpu wraps gogpu/wgpu; backend/scripted is a deterministic driver
// with failure injection for tests and dry runs.
//
// # Errors
//
// Every negotiation failure is a *NegotiationError tagged with the backend
// and Stage it occurred under. Use errors.Is with ErrSurfaceCreation,
// ErrNoCompatibleAdapter, ErrDeviceRequest or ErrRenderTarget to classify it.
package gpuctx

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"
)
