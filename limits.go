package gpuctx

import "github.com/gogpu/gputypes"

// DownlevelWebGL2Limits returns the most portable limit profile: the
// downlevel limits without storage resources or compute, which every WebGL2
// class device can satisfy.
func DownlevelWebGL2Limits() gputypes.Limits {
	l := gputypes.DownlevelLimits()
	l.MaxUniformBuffersPerShaderStage = 11
	l.MaxStorageBuffersPerShaderStage = 0
	l.MaxStorageTexturesPerShaderStage = 0
	l.MaxDynamicStorageBuffersPerPipelineLayout = 0
	l.MaxStorageBufferBindingSize = 0
	l.MaxVertexBufferArrayStride = 255
	l.MaxComputeWorkgroupStorageSize = 0
	l.MaxComputeInvocationsPerWorkgroup = 0
	l.MaxComputeWorkgroupSizeX = 0
	l.MaxComputeWorkgroupSizeY = 0
	l.MaxComputeWorkgroupSizeZ = 0
	l.MaxComputeWorkgroupsPerDimension = 0
	return l
}

// RequiredLimits computes the limits to request from an adapter.
//
// The texture resolution limits follow the adapter, the rest of base is kept,
// and the result is clamped so no maximum exceeds the adapter's and no
// minimum alignment is below the adapter's.
func RequiredLimits(base, adapter gputypes.Limits) gputypes.Limits {
	l := base
	l.MaxTextureDimension1D = adapter.MaxTextureDimension1D
	l.MaxTextureDimension2D = adapter.MaxTextureDimension2D

	l.MaxTextureDimension3D = min(l.MaxTextureDimension3D, adapter.MaxTextureDimension3D)
	l.MaxTextureArrayLayers = min(l.MaxTextureArrayLayers, adapter.MaxTextureArrayLayers)
	l.MaxBindGroups = min(l.MaxBindGroups, adapter.MaxBindGroups)
	l.MaxBindGroupsPlusVertexBuffers = min(l.MaxBindGroupsPlusVertexBuffers, adapter.MaxBindGroupsPlusVertexBuffers)
	l.MaxBindingsPerBindGroup = min(l.MaxBindingsPerBindGroup, adapter.MaxBindingsPerBindGroup)
	l.MaxDynamicUniformBuffersPerPipelineLayout = min(l.MaxDynamicUniformBuffersPerPipelineLayout, adapter.MaxDynamicUniformBuffersPerPipelineLayout)
	l.MaxDynamicStorageBuffersPerPipelineLayout = min(l.MaxDynamicStorageBuffersPerPipelineLayout, adapter.MaxDynamicStorageBuffersPerPipelineLayout)
	l.MaxSampledTexturesPerShaderStage = min(l.MaxSampledTexturesPerShaderStage, adapter.MaxSampledTexturesPerShaderStage)
	l.MaxSamplersPerShaderStage = min(l.MaxSamplersPerShaderStage, adapter.MaxSamplersPerShaderStage)
	l.MaxStorageBuffersPerShaderStage = min(l.MaxStorageBuffersPerShaderStage, adapter.MaxStorageBuffersPerShaderStage)
	l.MaxStorageTexturesPerShaderStage = min(l.MaxStorageTexturesPerShaderStage, adapter.MaxStorageTexturesPerShaderStage)
	l.MaxUniformBuffersPerShaderStage = min(l.MaxUniformBuffersPerShaderStage, adapter.MaxUniformBuffersPerShaderStage)
	l.MaxUniformBufferBindingSize = min(l.MaxUniformBufferBindingSize, adapter.MaxUniformBufferBindingSize)
	l.MaxStorageBufferBindingSize = min(l.MaxStorageBufferBindingSize, adapter.MaxStorageBufferBindingSize)
	l.MaxVertexBuffers = min(l.MaxVertexBuffers, adapter.MaxVertexBuffers)
	l.MaxBufferSize = min(l.MaxBufferSize, adapter.MaxBufferSize)
	l.MaxVertexAttributes = min(l.MaxVertexAttributes, adapter.MaxVertexAttributes)
	l.MaxVertexBufferArrayStride = min(l.MaxVertexBufferArrayStride, adapter.MaxVertexBufferArrayStride)
	l.MaxInterStageShaderVariables = min(l.MaxInterStageShaderVariables, adapter.MaxInterStageShaderVariables)
	l.MaxColorAttachments = min(l.MaxColorAttachments, adapter.MaxColorAttachments)
	l.MaxColorAttachmentBytesPerSample = min(l.MaxColorAttachmentBytesPerSample, adapter.MaxColorAttachmentBytesPerSample)
	l.MaxComputeWorkgroupStorageSize = min(l.MaxComputeWorkgroupStorageSize, adapter.MaxComputeWorkgroupStorageSize)
	l.MaxComputeInvocationsPerWorkgroup = min(l.MaxComputeInvocationsPerWorkgroup, adapter.MaxComputeInvocationsPerWorkgroup)
	l.MaxComputeWorkgroupSizeX = min(l.MaxComputeWorkgroupSizeX, adapter.MaxComputeWorkgroupSizeX)
	l.MaxComputeWorkgroupSizeY = min(l.MaxComputeWorkgroupSizeY, adapter.MaxComputeWorkgroupSizeY)
	l.MaxComputeWorkgroupSizeZ = min(l.MaxComputeWorkgroupSizeZ, adapter.MaxComputeWorkgroupSizeZ)
	l.MaxComputeWorkgroupsPerDimension = min(l.MaxComputeWorkgroupsPerDimension, adapter.MaxComputeWorkgroupsPerDimension)
	l.MaxPushConstantSize = min(l.MaxPushConstantSize, adapter.MaxPushConstantSize)
	l.MaxNonSamplerBindings = min(l.MaxNonSamplerBindings, adapter.MaxNonSamplerBindings)

	// Alignments: larger is weaker.
	l.MinUniformBufferOffsetAlignment = max(l.MinUniformBufferOffsetAlignment, adapter.MinUniformBufferOffsetAlignment)
	l.MinStorageBufferOffsetAlignment = max(l.MinStorageBufferOffsetAlignment, adapter.MinStorageBufferOffsetAlignment)
	return l
}

// ExceededLimits lists the limit names for which requested asks for more
// than adapter provides. An empty result means the request is satisfiable.
func ExceededLimits(requested, adapter gputypes.Limits) []string {
	var bad []string
	check := func(name string, req, have uint64) {
		if req > have {
			bad = append(bad, name)
		}
	}
	u := func(v uint32) uint64 { return uint64(v) }

	check("MaxTextureDimension1D", u(requested.MaxTextureDimension1D), u(adapter.MaxTextureDimension1D))
	check("MaxTextureDimension2D", u(requested.MaxTextureDimension2D), u(adapter.MaxTextureDimension2D))
	check("MaxTextureDimension3D", u(requested.MaxTextureDimension3D), u(adapter.MaxTextureDimension3D))
	check("MaxTextureArrayLayers", u(requested.MaxTextureArrayLayers), u(adapter.MaxTextureArrayLayers))
	check("MaxBindGroups", u(requested.MaxBindGroups), u(adapter.MaxBindGroups))
	check("MaxBindGroupsPlusVertexBuffers", u(requested.MaxBindGroupsPlusVertexBuffers), u(adapter.MaxBindGroupsPlusVertexBuffers))
	check("MaxBindingsPerBindGroup", u(requested.MaxBindingsPerBindGroup), u(adapter.MaxBindingsPerBindGroup))
	check("MaxDynamicUniformBuffersPerPipelineLayout", u(requested.MaxDynamicUniformBuffersPerPipelineLayout), u(adapter.MaxDynamicUniformBuffersPerPipelineLayout))
	check("MaxDynamicStorageBuffersPerPipelineLayout", u(requested.MaxDynamicStorageBuffersPerPipelineLayout), u(adapter.MaxDynamicStorageBuffersPerPipelineLayout))
	check("MaxSampledTexturesPerShaderStage", u(requested.MaxSampledTexturesPerShaderStage), u(adapter.MaxSampledTexturesPerShaderStage))
	check("MaxSamplersPerShaderStage", u(requested.MaxSamplersPerShaderStage), u(adapter.MaxSamplersPerShaderStage))
	check("MaxStorageBuffersPerShaderStage", u(requested.MaxStorageBuffersPerShaderStage), u(adapter.MaxStorageBuffersPerShaderStage))
	check("MaxStorageTexturesPerShaderStage", u(requested.MaxStorageTexturesPerShaderStage), u(adapter.MaxStorageTexturesPerShaderStage))
	check("MaxUniformBuffersPerShaderStage", u(requested.MaxUniformBuffersPerShaderStage), u(adapter.MaxUniformBuffersPerShaderStage))
	check("MaxUniformBufferBindingSize", requested.MaxUniformBufferBindingSize, adapter.MaxUniformBufferBindingSize)
	check("MaxStorageBufferBindingSize", requested.MaxStorageBufferBindingSize, adapter.MaxStorageBufferBindingSize)
	check("MaxVertexBuffers", u(requested.MaxVertexBuffers), u(adapter.MaxVertexBuffers))
	check("MaxBufferSize", requested.MaxBufferSize, adapter.MaxBufferSize)
	check("MaxVertexAttributes", u(requested.MaxVertexAttributes), u(adapter.MaxVertexAttributes))
	check("MaxVertexBufferArrayStride", u(requested.MaxVertexBufferArrayStride), u(adapter.MaxVertexBufferArrayStride))
	check("MaxInterStageShaderVariables", u(requested.MaxInterStageShaderVariables), u(adapter.MaxInterStageShaderVariables))
	check("MaxColorAttachments", u(requested.MaxColorAttachments), u(adapter.MaxColorAttachments))
	check("MaxColorAttachmentBytesPerSample", u(requested.MaxColorAttachmentBytesPerSample), u(adapter.MaxColorAttachmentBytesPerSample))
	check("MaxComputeWorkgroupStorageSize", u(requested.MaxComputeWorkgroupStorageSize), u(adapter.MaxComputeWorkgroupStorageSize))
	check("MaxComputeInvocationsPerWorkgroup", u(requested.MaxComputeInvocationsPerWorkgroup), u(adapter.MaxComputeInvocationsPerWorkgroup))
	check("MaxComputeWorkgroupSizeX", u(requested.MaxComputeWorkgroupSizeX), u(adapter.MaxComputeWorkgroupSizeX))
	check("MaxComputeWorkgroupSizeY", u(requested.MaxComputeWorkgroupSizeY), u(adapter.MaxComputeWorkgroupSizeY))
	check("MaxComputeWorkgroupSizeZ", u(requested.MaxComputeWorkgroupSizeZ), u(adapter.MaxComputeWorkgroupSizeZ))
	check("MaxComputeWorkgroupsPerDimension", u(requested.MaxComputeWorkgroupsPerDimension), u(adapter.MaxComputeWorkgroupsPerDimension))
	check("MaxPushConstantSize", u(requested.MaxPushConstantSize), u(adapter.MaxPushConstantSize))
	check("MaxNonSamplerBindings", u(requested.MaxNonSamplerBindings), u(adapter.MaxNonSamplerBindings))

	// Alignments are inverted: requesting a smaller alignment asks for more.
	check("MinUniformBufferOffsetAlignment", u(adapter.MinUniformBufferOffsetAlignment), u(requested.MinUniformBufferOffsetAlignment))
	check("MinStorageBufferOffsetAlignment", u(adapter.MinStorageBufferOffsetAlignment), u(requested.MinStorageBufferOffsetAlignment))
	return bad
}
