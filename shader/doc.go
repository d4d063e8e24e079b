// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package shader loads WGSL shader sources and compiles them to SPIR-V.
//
// Sources are fetched through a Fetcher. Resolver picks a fetcher by URL
// scheme: http and https go to HTTPFetcher, file URLs and plain paths to
// FileFetcher.
//
//	r := shader.NewResolver(nil, ".")
//	src, err := r.Fetch(ctx, "shaders/shader.wgsl")
//	words, err := shader.Compile(src)
package shader
