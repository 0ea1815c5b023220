// Copyright 2025 The Tundraforge Authors
// SPDX-License-Identifier: MIT

package rhi

import (
	"github.com/tundraforge/rhi/internal/vk"
	"github.com/tundraforge/rhi/types"
)

// vkFormat maps a TextureFormat to its VkFormat code. Values come from
// the Vulkan spec's format table; this core only emits the subset it
// actually creates images/views with.
func vkFormat(f types.TextureFormat) vk.Format {
	switch f {
	case types.TextureFormatR8Unorm:
		return 9
	case types.TextureFormatR8Snorm:
		return 10
	case types.TextureFormatR8Uint:
		return 13
	case types.TextureFormatR8Sint:
		return 14
	case types.TextureFormatR16Uint:
		return 74
	case types.TextureFormatR16Sint:
		return 75
	case types.TextureFormatR16Float:
		return 76
	case types.TextureFormatRG8Unorm:
		return 16
	case types.TextureFormatRG8Snorm:
		return 17
	case types.TextureFormatRG8Uint:
		return 20
	case types.TextureFormatRG8Sint:
		return 21
	case types.TextureFormatR32Uint:
		return 98
	case types.TextureFormatR32Sint:
		return 99
	case types.TextureFormatR32Float:
		return 100
	case types.TextureFormatRG16Uint:
		return 81
	case types.TextureFormatRG16Sint:
		return 82
	case types.TextureFormatRG16Float:
		return 83
	case types.TextureFormatRGBA8Unorm:
		return 37
	case types.TextureFormatRGBA8UnormSrgb:
		return 43
	case types.TextureFormatRGBA8Snorm:
		return 38
	case types.TextureFormatRGBA8Uint:
		return 41
	case types.TextureFormatRGBA8Sint:
		return 42
	case types.TextureFormatBGRA8Unorm:
		return 44
	case types.TextureFormatBGRA8UnormSrgb:
		return 50
	case types.TextureFormatRGB9E5Ufloat:
		return 123
	case types.TextureFormatRGB10A2Uint:
		return 68
	case types.TextureFormatRGB10A2Unorm:
		return 64
	case types.TextureFormatRG11B10Ufloat:
		return 122
	case types.TextureFormatRG32Uint:
		return 101
	case types.TextureFormatRG32Sint:
		return 102
	case types.TextureFormatRG32Float:
		return 103
	case types.TextureFormatRGBA16Uint:
		return 95
	case types.TextureFormatRGBA16Sint:
		return 96
	case types.TextureFormatRGBA16Float:
		return 97
	case types.TextureFormatRGBA32Uint:
		return 107
	case types.TextureFormatRGBA32Sint:
		return 108
	case types.TextureFormatRGBA32Float:
		return 109
	case types.TextureFormatStencil8:
		return 127
	case types.TextureFormatDepth16Unorm:
		return 124
	case types.TextureFormatDepth24Plus, types.TextureFormatDepth24PlusStencil8:
		return 129
	case types.TextureFormatDepth32Float:
		return 126
	case types.TextureFormatDepth32FloatStencil8:
		return 130
	default:
		return 0
	}
}

func vkImageAspect(a types.FormatAspect) uint32 {
	switch a {
	case types.FormatAspectDepth:
		return 2
	case types.FormatAspectStencil:
		return 4
	case types.FormatAspectDepthStencil:
		return 2 | 4
	default:
		return 1
	}
}

func vkBufferUsage(u types.BufferUsage) vk.BufferUsageFlags {
	var out vk.BufferUsageFlags
	if u&types.BufferUsageTransferSrc != 0 {
		out |= vk.BufferUsageTransferSrcBit
	}
	if u&types.BufferUsageTransferDst != 0 {
		out |= vk.BufferUsageTransferDstBit
	}
	if u&types.BufferUsageSRV != 0 || u&types.BufferUsageUAV != 0 {
		out |= vk.BufferUsageStorageBufferBit
	}
	if u&types.BufferUsageCBV != 0 {
		out |= vk.BufferUsageUniformBufferBit
	}
	if u&types.BufferUsageIndex != 0 {
		out |= vk.BufferUsageIndexBufferBit
	}
	if u&types.BufferUsageVertex != 0 {
		out |= vk.BufferUsageVertexBufferBit
	}
	if u&types.BufferUsageIndirect != 0 {
		out |= vk.BufferUsageIndirectBufferBit
	}
	return out
}

func vkImageUsage(u types.TextureUsage) vk.ImageUsageFlags {
	var out vk.ImageUsageFlags
	if u&types.TextureUsageColorAttachment != 0 {
		out |= vk.ImageUsageColorAttachmentBit
	}
	if u&types.TextureUsageDepthAttachment != 0 || u&types.TextureUsageStencilAttachment != 0 {
		out |= vk.ImageUsageDepthStencilAttachmentBit
	}
	if u&types.TextureUsageSRV != 0 {
		out |= vk.ImageUsageSampledBit
	}
	if u&types.TextureUsageUAV != 0 {
		out |= vk.ImageUsageStorageBit
	}
	if u&types.TextureUsageTransferSrc != 0 {
		out |= vk.ImageUsageTransferSrcBit
	}
	if u&types.TextureUsageTransferDst != 0 {
		out |= vk.ImageUsageTransferDstBit
	}
	return out
}

func vkFilter(f types.Filter) vk.Filter {
	if f == types.FilterLinear {
		return vk.FilterLinear
	}
	return vk.FilterNearest
}

func vkAddressMode(m types.AddressMode) vk.SamplerAddressMode {
	switch m {
	case types.AddressModeMirrorRepeat:
		return vk.SamplerAddressModeMirroredRepeat
	case types.AddressModeClampToEdge:
		return vk.SamplerAddressModeClampToEdge
	default:
		return vk.SamplerAddressModeRepeat
	}
}

func vkCullMode(c types.CullMode) vk.CullModeFlags {
	switch c {
	case types.CullModeFront:
		return vk.CullModeFront
	case types.CullModeBack:
		return vk.CullModeBack
	default:
		return vk.CullModeNone
	}
}

// vkPipelineStage2 maps a SynchronizationStage to the sync2 stage mask the
// submission scheduler (§4.8) waits/signals the timeline semaphore at.
func vkPipelineStage2(s types.SynchronizationStage) vk.PipelineStageFlags2 {
	switch s {
	case types.StageTopOfPipe:
		return vk.PipelineStageTopOfPipe2
	case types.StageBottomOfPipe:
		return vk.PipelineStageBottomOfPipe2
	case types.StageEarlyFragment:
		return vk.PipelineStageEarlyFragmentTests2
	case types.StageLateFragment:
		return vk.PipelineStageLateFragmentTests2
	case types.StageVertexShader:
		return vk.PipelineStageVertexShader2
	case types.StageFragmentShader:
		return vk.PipelineStageFragmentShader2
	case types.StageComputeShader:
		return vk.PipelineStageComputeShader2
	case types.StageTransfer:
		return vk.PipelineStageTransfer2
	case types.StageAllGraphics:
		return vk.PipelineStageAllGraphics2
	default:
		return vk.PipelineStageTopOfPipe2
	}
}

func vkShaderStage(s types.ShaderStage) vk.ShaderStageFlags {
	switch s {
	case types.ShaderStageFragment:
		return vk.ShaderStageFragmentBit
	case types.ShaderStageCompute:
		return vk.ShaderStageComputeBit
	default:
		return vk.ShaderStageVertexBit
	}
}
