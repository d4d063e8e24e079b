// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package scripted provides a deterministic gpuctx.Platform.
//
// The scripted platform never touches a GPU. Every negotiation step succeeds
// unless a fault is injected for a backend and stage:
//
//	p := scripted.New()
//	p.Fail(gpuctx.PrimaryGPU, gpuctx.StageAdapter, nil) // no adapter
//	gc, err := gpuctx.New(ctx, doc, body, gpuctx.WithPlatform(p))
//	// gc.Backend() == gpuctx.PortableGL
//
// Every driver call is recorded and every resource is reference counted, so
// tests can assert call order and that failed attempts leaked nothing.
//
// The cmd/gpuctx tool uses this platform for dry runs of the fallback logic.
package scripted
