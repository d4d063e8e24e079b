// Command gpuctx acquires a GPU context with primary GPU to portable GL
// fallback and reports what was obtained.
//
// Usage:
//
//	gpuctx init [--platform wgpu|scripted] [--backend primary-gpu,portable-gl] [--fail backend:stage] [--shader path|url]
//	gpuctx limits [--base webgl2|downlevel|default] [--adapter default|downlevel]
//	gpuctx version
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
