package gpuctx

import (
	"github.com/gogpu/gpucontext"
)

// PlatformWGPU is the name of the gogpu/wgpu driver platform.
const PlatformWGPU = "wgpu"

// platforms holds registered driver platforms.
// Priority order for DefaultPlatform (first registered wins).
var platforms = gpucontext.NewRegistry[Platform](
	gpucontext.WithPriority(PlatformWGPU),
)

// RegisterPlatform registers a platform factory with the given name.
// This is typically called from init() functions in driver packages:
//
//	import _ "github.com/gogpu/gpuctx/backend/wgpu"
//
// A factory may return nil when the driver is compiled out for the current
// target. Registering an existing name replaces it.
func RegisterPlatform(name string, factory func() Platform) {
	platforms.Register(name, factory)
}

// UnregisterPlatform removes a platform from the registry.
// This is useful for testing.
func UnregisterPlatform(name string) {
	platforms.Unregister(name)
}

// AvailablePlatforms returns the names of all registered platforms.
func AvailablePlatforms() []string {
	return platforms.Available()
}

// PlatformByName returns a platform instance by name.
// Returns nil if the platform is not registered or compiled out.
func PlatformByName(name string) Platform {
	return platforms.Get(name)
}

// DefaultPlatform returns the highest-priority registered platform,
// or nil if none is usable.
func DefaultPlatform() Platform {
	if p := platforms.Best(); p != nil {
		return p
	}
	// The best entry may be a compiled-out stub; try the others.
	for _, name := range platforms.Available() {
		if p := platforms.Get(name); p != nil {
			return p
		}
	}
	return nil
}
