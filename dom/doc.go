// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package dom provides document implementations for gpuctx render targets.
//
// NewDocument returns an in-memory document tree used for native windows,
// headless runs and tests. Elements keep their children in insertion order
// and can carry the native window handles a driver needs to create a
// surface. In js/wasm builds, Global wraps the browser document through
// syscall/js.
package dom
