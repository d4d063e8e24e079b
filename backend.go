package gpuctx

import (
	"fmt"
	"strings"

	"github.com/gogpu/gputypes"
)

// BackendKind identifies a backend family tried by the fallback controller.
type BackendKind uint8

const (
	// PrimaryGPU is the high-performance native GPU API family
	// (Vulkan, Metal, DX12, or browser WebGPU).
	PrimaryGPU BackendKind = iota

	// PortableGL is the portable GL-based API family (OpenGL, OpenGL ES, WebGL2).
	PortableGL
)

// DefaultBackendOrder returns the order in which backends are tried.
func DefaultBackendOrder() []BackendKind {
	return []BackendKind{PrimaryGPU, PortableGL}
}

// String returns the backend name.
func (k BackendKind) String() string {
	switch k {
	case PrimaryGPU:
		return "primary-gpu"
	case PortableGL:
		return "portable-gl"
	default:
		return fmt.Sprintf("backend(%d)", uint8(k))
	}
}

// Backends returns the gputypes backend mask for this family.
func (k BackendKind) Backends() gputypes.Backends {
	switch k {
	case PrimaryGPU:
		return gputypes.BackendsPrimary
	case PortableGL:
		return gputypes.BackendsGL
	default:
		return gputypes.BackendsNone
	}
}

// Valid reports whether k is a known backend kind.
func (k BackendKind) Valid() bool {
	return k == PrimaryGPU || k == PortableGL
}

// ParseBackendKind parses a backend name. Besides the String forms it
// accepts "primary", "webgpu", "gl" and "webgl".
func ParseBackendKind(s string) (BackendKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "primary-gpu", "primary", "webgpu", "gpu":
		return PrimaryGPU, nil
	case "portable-gl", "gl", "webgl", "gles":
		return PortableGL, nil
	default:
		return 0, fmt.Errorf("%w: unknown backend %q", ErrInvalidOptions, s)
	}
}
