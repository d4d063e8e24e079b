// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shader

import (
	"encoding/binary"
	"fmt"

	"github.com/gogpu/naga"
)

// Options configures compilation.
type Options struct {
	// Validate runs naga IR validation before code generation.
	Validate bool
	// Debug emits debug names into the SPIR-V module.
	Debug bool
}

// Compile compiles WGSL source to SPIR-V words with validation enabled.
func Compile(source string) ([]uint32, error) {
	return CompileWithOptions(source, Options{Validate: true})
}

// CompileWithOptions compiles WGSL source to SPIR-V words.
func CompileWithOptions(source string, o Options) ([]uint32, error) {
	opts := naga.DefaultOptions()
	opts.Validate = o.Validate
	opts.Debug = o.Debug

	spirvBytes, err := naga.CompileWithOptions(source, opts)
	if err != nil {
		return nil, fmt.Errorf("shader: failed to compile: %w", err)
	}
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("shader: SPIR-V size %d is not a multiple of 4", len(spirvBytes))
	}

	// SPIR-V is little-endian 32-bit words
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(spirvBytes[i*4:])
	}
	return words, nil
}
