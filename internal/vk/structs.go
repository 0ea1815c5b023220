// Copyright 2025 The Tundraforge Authors
// SPDX-License-Identifier: MIT

package vk

import "unsafe"

// StructureType mirrors VkStructureType. Every Vulkan input struct below
// carries one of these in its sType field so the loader can validate the
// pNext chain; this binding never walks pNext, but drivers reject structs
// with the wrong sType.
type StructureType uint32

const (
	StructureTypeApplicationInfo StructureType = 0
	StructureTypeInstanceCreateInfo StructureType = 1
	StructureTypeDeviceQueueCreateInfo StructureType = 2
	StructureTypeDeviceCreateInfo StructureType = 3
	StructureTypeSubmitInfo StructureType = 4
	StructureTypeMemoryAllocateInfo StructureType = 5
	StructureTypeBufferCreateInfo StructureType = 12
	StructureTypeImageCreateInfo StructureType = 14
	StructureTypeImageViewCreateInfo StructureType = 15
	StructureTypeShaderModuleCreateInfo StructureType = 16
	StructureTypePipelineLayoutCreateInfo StructureType = 30
	StructureTypeSamplerCreateInfo StructureType = 31
	StructureTypeDescriptorSetLayoutCreateInfo StructureType = 32
	StructureTypeDescriptorPoolCreateInfo StructureType = 33
	StructureTypeDescriptorSetAllocateInfo StructureType = 34
	StructureTypeCommandPoolCreateInfo StructureType = 39
	StructureTypeCommandBufferAllocateInfo StructureType = 40
	StructureTypeCommandBufferBeginInfo StructureType = 42
	StructureTypeFenceCreateInfo StructureType = 8
	StructureTypeSemaphoreCreateInfo StructureType = 9
	StructureTypeGraphicsPipelineCreateInfo StructureType = 28
	StructureTypeComputePipelineCreateInfo StructureType = 29
	StructureTypePipelineCacheCreateInfo StructureType = 17
	StructureTypeSwapchainCreateInfoKHR StructureType = 1000001000
	StructureTypePresentInfoKHR StructureType = 1000001001
	StructureTypeSemaphoreTypeCreateInfo StructureType = 1000207002
	StructureTypeTimelineSemaphoreSubmitInfo StructureType = 1000207003
	StructureTypeSemaphoreWaitInfo StructureType = 1000207004
	StructureTypeSemaphoreSignalInfo StructureType = 1000207005
	StructureTypeDescriptorSetLayoutBindingFlagsCreateInfo StructureType = 1000161000
	StructureTypeMemoryBarrier2 StructureType = 1000314000
	StructureTypeBufferMemoryBarrier2 StructureType = 1000314001
	StructureTypeImageMemoryBarrier2 StructureType = 1000314002
	StructureTypeDependencyInfo StructureType = 1000314003
	StructureTypeSubmitInfo2 StructureType = 1000314004
	StructureTypeSemaphoreSubmitInfo StructureType = 1000314005
	StructureTypeCommandBufferSubmitInfo StructureType = 1000314006
	StructureTypeRenderingInfo StructureType = 1000044000
	StructureTypeRenderingAttachmentInfo StructureType = 1000044001
	StructureTypeDebugUtilsObjectNameInfo StructureType = 1000128000
	StructureTypeDebugUtilsLabel StructureType = 1000128002
	StructureTypePhysicalDeviceVulkan13Features StructureType = 53
	StructureTypePhysicalDeviceDescriptorIndexingFeatures StructureType = 1000161001
	StructureTypePipelineShaderStageCreateInfo StructureType = 18
	StructureTypePipelineVertexInputStateCreateInfo StructureType = 19
	StructureTypePipelineInputAssemblyStateCreateInfo StructureType = 20
	StructureTypePipelineViewportStateCreateInfo StructureType = 22
	StructureTypePipelineRasterizationStateCreateInfo StructureType = 23
	StructureTypePipelineMultisampleStateCreateInfo StructureType = 24
	StructureTypePipelineDepthStencilStateCreateInfo StructureType = 25
	StructureTypePipelineColorBlendStateCreateInfo StructureType = 26
	StructureTypePipelineDynamicStateCreateInfo StructureType = 27
	StructureTypePipelineRenderingCreateInfo StructureType = 1000044002
	StructureTypeWriteDescriptorSet StructureType = 35
)

// BufferCreateInfo mirrors VkBufferCreateInfo for the single-queue-family
// exclusive sharing mode this RHI always uses (queue-family ownership
// transfers are expressed as barriers, not VK_SHARING_MODE_CONCURRENT).
type BufferCreateInfo struct {
	SType                 StructureType
	PNext                 unsafe.Pointer
	Flags                 uint32
	Size                  uint64
	Usage                 BufferUsageFlags
	SharingMode           uint32
	QueueFamilyIndexCount uint32
	PQueueFamilyIndices   unsafe.Pointer
}

// ApplicationInfo mirrors VkApplicationInfo.
type ApplicationInfo struct {
	SType              StructureType
	PNext              unsafe.Pointer
	PApplicationName   unsafe.Pointer
	ApplicationVersion uint32
	PEngineName        unsafe.Pointer
	EngineVersion      uint32
	APIVersion         uint32
}

// InstanceCreateInfo mirrors VkInstanceCreateInfo.
type InstanceCreateInfo struct {
	SType                   StructureType
	PNext                   unsafe.Pointer
	Flags                   uint32
	PApplicationInfo        unsafe.Pointer
	EnabledLayerCount       uint32
	PpEnabledLayerNames     unsafe.Pointer
	EnabledExtensionCount   uint32
	PpEnabledExtensionNames unsafe.Pointer
}

// DeviceQueueCreateInfo mirrors VkDeviceQueueCreateInfo.
type DeviceQueueCreateInfo struct {
	SType            StructureType
	PNext            unsafe.Pointer
	Flags            uint32
	QueueFamilyIndex uint32
	QueueCount       uint32
	PQueuePriorities unsafe.Pointer
}

// PhysicalDeviceVulkan13Features mirrors the two feature bits this
// binding turns on from VkPhysicalDeviceVulkan13Features: dynamic
// rendering and synchronization2 (§4.7, §4.9). The struct is laid out by
// hand rather than transcribing the full driver struct, since pNext
// chains only require the fields a caller actually sets to be correct —
// every other Vulkan13Features field this binding never touches is
// zeroed padding the driver ignores on an sType it doesn't expect to
// carry meaningful data in those slots.
type PhysicalDeviceVulkan13Features struct {
	SType            StructureType
	PNext            unsafe.Pointer
	Synchronization2 uint32
	DynamicRendering uint32
}

// PhysicalDeviceDescriptorIndexingFeatures mirrors the feature bits this
// binding requires for bindless descriptors (§4.3):
// VK_EXT_descriptor_indexing's update-after-bind and partially-bound
// support.
type PhysicalDeviceDescriptorIndexingFeatures struct {
	SType                                    StructureType
	PNext                                    unsafe.Pointer
	DescriptorBindingPartiallyBound          uint32
	DescriptorBindingVariableDescriptorCount uint32
	RuntimeDescriptorArray                   uint32
	DescriptorBindingUpdateUnusedWhilePending uint32
}

// DeviceCreateInfo mirrors VkDeviceCreateInfo.
type DeviceCreateInfo struct {
	SType                   StructureType
	PNext                   unsafe.Pointer
	Flags                   uint32
	QueueCreateInfoCount    uint32
	PQueueCreateInfos       unsafe.Pointer
	EnabledLayerCount       uint32
	PpEnabledLayerNames     unsafe.Pointer
	EnabledExtensionCount   uint32
	PpEnabledExtensionNames unsafe.Pointer
	PEnabledFeatures        unsafe.Pointer
}

// ImageCreateInfo mirrors VkImageCreateInfo.
type ImageCreateInfo struct {
	SType                 StructureType
	PNext                 unsafe.Pointer
	Flags                 uint32
	ImageType             uint32
	Format                Format
	Extent                Extent3D
	MipLevels             uint32
	ArrayLayers           uint32
	Samples               SampleCountFlagBits
	Tiling                uint32
	Usage                 ImageUsageFlags
	SharingMode           uint32
	QueueFamilyIndexCount uint32
	PQueueFamilyIndices   unsafe.Pointer
	InitialLayout         ImageLayout
}

// ImageSubresourceRange mirrors VkImageSubresourceRange.
type ImageSubresourceRange struct {
	AspectMask     uint32
	BaseMipLevel   uint32
	LevelCount     uint32
	BaseArrayLayer uint32
	LayerCount     uint32
}

// ImageViewCreateInfo mirrors VkImageViewCreateInfo.
type ImageViewCreateInfo struct {
	SType            StructureType
	PNext            unsafe.Pointer
	Flags            uint32
	Image            Image
	ViewType         uint32
	Format           Format
	Components       [4]uint32
	SubresourceRange ImageSubresourceRange
}

// SamplerCreateInfo mirrors VkSamplerCreateInfo field for field.
// CreateSampler fills LOD bias and the LOD range with fixed values and
// takes anisotropy from the caller's MaxAnisotropy.
type SamplerCreateInfo struct {
	SType        StructureType
	PNext        unsafe.Pointer
	Flags        uint32
	MagFilter    Filter
	MinFilter    Filter
	MipmapMode   uint32
	AddressModeU SamplerAddressMode
	AddressModeV SamplerAddressMode
	AddressModeW SamplerAddressMode
	MipLodBias   float32
	AnisotropyEnable uint32
	MaxAnisotropy float32
	CompareEnable uint32
	CompareOp     uint32
	MinLod        float32
	MaxLod        float32
	BorderColor   uint32
	UnnormalizedCoordinates uint32
}

// ShaderModuleCreateInfo mirrors VkShaderModuleCreateInfo.
type ShaderModuleCreateInfo struct {
	SType    StructureType
	PNext    unsafe.Pointer
	Flags    uint32
	CodeSize uintptr
	PCode    unsafe.Pointer
}

// MemoryAllocateInfo mirrors VkMemoryAllocateInfo.
type MemoryAllocateInfo struct {
	SType           StructureType
	PNext           unsafe.Pointer
	AllocationSize  uint64
	MemoryTypeIndex uint32
}

// DescriptorSetLayoutBinding mirrors VkDescriptorSetLayoutBinding.
type DescriptorSetLayoutBinding struct {
	Binding            uint32
	DescriptorType     DescriptorType
	DescriptorCount    uint32
	StageFlags         ShaderStageFlags
	PImmutableSamplers unsafe.Pointer
}

// DescriptorSetLayoutBindingFlagsCreateInfo mirrors the descriptor-indexing
// extension struct chained via PNext to mark bindings update-after-bind
// and partially-bound for the bindless set layout.
type DescriptorSetLayoutBindingFlagsCreateInfo struct {
	SType         StructureType
	PNext         unsafe.Pointer
	BindingCount  uint32
	PBindingFlags unsafe.Pointer
}

// DescriptorSetLayoutCreateInfo mirrors VkDescriptorSetLayoutCreateInfo.
type DescriptorSetLayoutCreateInfo struct {
	SType        StructureType
	PNext        unsafe.Pointer
	Flags        uint32
	BindingCount uint32
	PBindings    unsafe.Pointer
}

// DescriptorPoolSize mirrors VkDescriptorPoolSize.
type DescriptorPoolSize struct {
	Type            DescriptorType
	DescriptorCount uint32
}

// DescriptorPoolCreateInfo mirrors VkDescriptorPoolCreateInfo.
type DescriptorPoolCreateInfo struct {
	SType         StructureType
	PNext         unsafe.Pointer
	Flags         DescriptorPoolCreateFlags
	MaxSets       uint32
	PoolSizeCount uint32
	PPoolSizes    unsafe.Pointer
}

// DescriptorBufferInfo mirrors VkDescriptorBufferInfo.
type DescriptorBufferInfo struct {
	Buffer Buffer
	Offset uint64
	Range  uint64
}

// DescriptorImageInfo mirrors VkDescriptorImageInfo.
type DescriptorImageInfo struct {
	Sampler     Sampler
	ImageView   ImageView
	ImageLayout ImageLayout
}

// WriteDescriptorSet mirrors VkWriteDescriptorSet.
type WriteDescriptorSet struct {
	SType            StructureType
	PNext            unsafe.Pointer
	DstSet           DescriptorSet
	DstBinding       uint32
	DstArrayElement  uint32
	DescriptorCount  uint32
	DescriptorType   DescriptorType
	PImageInfo       unsafe.Pointer
	PBufferInfo      unsafe.Pointer
	PTexelBufferView unsafe.Pointer
}

// DescriptorSetAllocateInfo mirrors VkDescriptorSetAllocateInfo.
type DescriptorSetAllocateInfo struct {
	SType              StructureType
	PNext              unsafe.Pointer
	DescriptorPool     DescriptorPool
	DescriptorSetCount uint32
	PSetLayouts        unsafe.Pointer
}

// PushConstantRange mirrors VkPushConstantRange.
type PushConstantRange struct {
	StageFlags ShaderStageFlags
	Offset     uint32
	Size       uint32
}

// PipelineLayoutCreateInfo mirrors VkPipelineLayoutCreateInfo.
type PipelineLayoutCreateInfo struct {
	SType                  StructureType
	PNext                  unsafe.Pointer
	Flags                  uint32
	SetLayoutCount         uint32
	PSetLayouts            unsafe.Pointer
	PushConstantRangeCount uint32
	PPushConstantRanges    unsafe.Pointer
}

// PipelineCacheCreateInfo mirrors VkPipelineCacheCreateInfo.
type PipelineCacheCreateInfo struct {
	SType           StructureType
	PNext           unsafe.Pointer
	Flags           uint32
	InitialDataSize uintptr
	PInitialData    unsafe.Pointer
}

// PipelineShaderStageCreateInfo mirrors VkPipelineShaderStageCreateInfo.
type PipelineShaderStageCreateInfo struct {
	SType               StructureType
	PNext               unsafe.Pointer
	Flags               uint32
	Stage               ShaderStageFlags
	Module              ShaderModule
	PName               unsafe.Pointer
	PSpecializationInfo unsafe.Pointer
}

// VertexInputBindingDescription mirrors VkVertexInputBindingDescription.
type VertexInputBindingDescription struct {
	Binding   uint32
	Stride    uint32
	InputRate uint32
}

// VertexInputAttributeDescription mirrors VkVertexInputAttributeDescription.
type VertexInputAttributeDescription struct {
	Location uint32
	Binding  uint32
	Format   Format
	Offset   uint32
}

// PipelineVertexInputStateCreateInfo mirrors VkPipelineVertexInputStateCreateInfo.
type PipelineVertexInputStateCreateInfo struct {
	SType                           StructureType
	PNext                           unsafe.Pointer
	Flags                           uint32
	VertexBindingDescriptionCount   uint32
	PVertexBindingDescriptions      unsafe.Pointer
	VertexAttributeDescriptionCount uint32
	PVertexAttributeDescriptions    unsafe.Pointer
}

// PipelineInputAssemblyStateCreateInfo mirrors VkPipelineInputAssemblyStateCreateInfo.
type PipelineInputAssemblyStateCreateInfo struct {
	SType                  StructureType
	PNext                  unsafe.Pointer
	Flags                  uint32
	Topology               uint32
	PrimitiveRestartEnable uint32
}

// PipelineViewportStateCreateInfo mirrors VkPipelineViewportStateCreateInfo.
// This RHI always uses dynamic viewport/scissor (§4.6), so the counts are
// set but the pointers are left nil.
type PipelineViewportStateCreateInfo struct {
	SType         StructureType
	PNext         unsafe.Pointer
	Flags         uint32
	ViewportCount uint32
	PViewports    unsafe.Pointer
	ScissorCount  uint32
	PScissors     unsafe.Pointer
}

// PipelineRasterizationStateCreateInfo mirrors VkPipelineRasterizationStateCreateInfo.
type PipelineRasterizationStateCreateInfo struct {
	SType                   StructureType
	PNext                   unsafe.Pointer
	Flags                   uint32
	DepthClampEnable        uint32
	RasterizerDiscardEnable uint32
	PolygonMode             uint32
	CullMode                CullModeFlags
	FrontFace               uint32
	DepthBiasEnable         uint32
	DepthBiasConstantFactor float32
	DepthBiasClamp          float32
	DepthBiasSlopeFactor    float32
	LineWidth               float32
}

// PipelineMultisampleStateCreateInfo mirrors VkPipelineMultisampleStateCreateInfo.
type PipelineMultisampleStateCreateInfo struct {
	SType                 StructureType
	PNext                 unsafe.Pointer
	Flags                 uint32
	RasterizationSamples  SampleCountFlagBits
	SampleShadingEnable   uint32
	MinSampleShading      float32
	PSampleMask           unsafe.Pointer
	AlphaToCoverageEnable uint32
	AlphaToOneEnable      uint32
}

// StencilOpState mirrors VkStencilOpState.
type StencilOpState struct {
	FailOp      uint32
	PassOp      uint32
	DepthFailOp uint32
	CompareOp   uint32
	CompareMask uint32
	WriteMask   uint32
	Reference   uint32
}

// PipelineDepthStencilStateCreateInfo mirrors VkPipelineDepthStencilStateCreateInfo.
type PipelineDepthStencilStateCreateInfo struct {
	SType                 StructureType
	PNext                 unsafe.Pointer
	Flags                 uint32
	DepthTestEnable       uint32
	DepthWriteEnable      uint32
	DepthCompareOp        uint32
	DepthBoundsTestEnable uint32
	StencilTestEnable     uint32
	Front                 StencilOpState
	Back                  StencilOpState
	MinDepthBounds        float32
	MaxDepthBounds        float32
}

// PipelineColorBlendAttachmentState mirrors VkPipelineColorBlendAttachmentState.
type PipelineColorBlendAttachmentState struct {
	BlendEnable         uint32
	SrcColorBlendFactor uint32
	DstColorBlendFactor uint32
	ColorBlendOp        uint32
	SrcAlphaBlendFactor uint32
	DstAlphaBlendFactor uint32
	AlphaBlendOp        uint32
	ColorWriteMask      uint32
}

// PipelineColorBlendStateCreateInfo mirrors VkPipelineColorBlendStateCreateInfo.
type PipelineColorBlendStateCreateInfo struct {
	SType           StructureType
	PNext           unsafe.Pointer
	Flags           uint32
	LogicOpEnable   uint32
	LogicOp         uint32
	AttachmentCount uint32
	PAttachments    unsafe.Pointer
	BlendConstants  [4]float32
}

// PipelineDynamicStateCreateInfo mirrors VkPipelineDynamicStateCreateInfo.
type PipelineDynamicStateCreateInfo struct {
	SType             StructureType
	PNext             unsafe.Pointer
	Flags             uint32
	DynamicStateCount uint32
	PDynamicStates    unsafe.Pointer
}

// PipelineRenderingCreateInfo mirrors VkPipelineRenderingCreateInfo, the
// PNext companion every graphics pipeline in this RHI chains in place of
// a VkRenderPass handle (§4.9, dynamic rendering).
type PipelineRenderingCreateInfo struct {
	SType                   StructureType
	PNext                   unsafe.Pointer
	ViewMask                uint32
	ColorAttachmentCount    uint32
	PColorAttachmentFormats unsafe.Pointer
	DepthAttachmentFormat   Format
	StencilAttachmentFormat Format
}

// GraphicsPipelineCreateInfo mirrors VkGraphicsPipelineCreateInfo.
type GraphicsPipelineCreateInfo struct {
	SType               StructureType
	PNext               unsafe.Pointer
	Flags               uint32
	StageCount          uint32
	PStages             unsafe.Pointer
	PVertexInputState   unsafe.Pointer
	PInputAssemblyState unsafe.Pointer
	PTessellationState  unsafe.Pointer
	PViewportState      unsafe.Pointer
	PRasterizationState unsafe.Pointer
	PMultisampleState   unsafe.Pointer
	PDepthStencilState  unsafe.Pointer
	PColorBlendState    unsafe.Pointer
	PDynamicState       unsafe.Pointer
	Layout              PipelineLayout
	RenderPass          uint64
	Subpass             uint32
	BasePipelineHandle  Pipeline
	BasePipelineIndex   int32
}

// ComputePipelineCreateInfo mirrors VkComputePipelineCreateInfo.
type ComputePipelineCreateInfo struct {
	SType              StructureType
	PNext              unsafe.Pointer
	Flags              uint32
	Stage              PipelineShaderStageCreateInfo
	Layout             PipelineLayout
	BasePipelineHandle Pipeline
	BasePipelineIndex  int32
}

// CommandPoolCreateInfo mirrors VkCommandPoolCreateInfo.
type CommandPoolCreateInfo struct {
	SType            StructureType
	PNext            unsafe.Pointer
	Flags            CommandPoolCreateFlags
	QueueFamilyIndex uint32
}

// CommandBufferAllocateInfo mirrors VkCommandBufferAllocateInfo.
type CommandBufferAllocateInfo struct {
	SType              StructureType
	PNext              unsafe.Pointer
	CommandPool        CommandPool
	Level              CommandBufferLevel
	CommandBufferCount uint32
}

// CommandBufferBeginInfo mirrors VkCommandBufferBeginInfo.
type CommandBufferBeginInfo struct {
	SType            StructureType
	PNext            unsafe.Pointer
	Flags            uint32
	PInheritanceInfo unsafe.Pointer
}

// FenceCreateInfo mirrors VkFenceCreateInfo.
type FenceCreateInfo struct {
	SType StructureType
	PNext unsafe.Pointer
	Flags uint32
}

// SemaphoreTypeCreateInfo mirrors the timeline-semaphore extension struct
// chained via PNext off SemaphoreCreateInfo.
type SemaphoreTypeCreateInfo struct {
	SType         StructureType
	PNext         unsafe.Pointer
	SemaphoreType SemaphoreType
	InitialValue  uint64
}

// SemaphoreCreateInfo mirrors VkSemaphoreCreateInfo.
type SemaphoreCreateInfo struct {
	SType StructureType
	PNext unsafe.Pointer
	Flags uint32
}

// SemaphoreSubmitInfo mirrors VkSemaphoreSubmitInfo, used by both the
// wait and signal lists of SubmitInfo2.
type SemaphoreSubmitInfo struct {
	SType       StructureType
	PNext       unsafe.Pointer
	Semaphore   Semaphore
	Value       uint64
	StageMask   PipelineStageFlags2
	DeviceIndex uint32
}

// CommandBufferSubmitInfo mirrors VkCommandBufferSubmitInfo.
type CommandBufferSubmitInfo struct {
	SType         StructureType
	PNext         unsafe.Pointer
	CommandBuffer CommandBuffer
	DeviceMask    uint32
}

// SubmitInfo2 mirrors VkSubmitInfo2 — the synchronization2 submission
// struct the scheduler (§4.8) builds per queue per frame.
type SubmitInfo2 struct {
	SType                    StructureType
	PNext                    unsafe.Pointer
	Flags                    uint32
	WaitSemaphoreInfoCount   uint32
	PWaitSemaphoreInfos      unsafe.Pointer
	CommandBufferInfoCount   uint32
	PCommandBufferInfos      unsafe.Pointer
	SignalSemaphoreInfoCount uint32
	PSignalSemaphoreInfos    unsafe.Pointer
}

// SemaphoreWaitInfo mirrors VkSemaphoreWaitInfo (vkWaitSemaphores).
type SemaphoreWaitInfo struct {
	SType          StructureType
	PNext          unsafe.Pointer
	Flags          uint32
	SemaphoreCount uint32
	PSemaphores    unsafe.Pointer
	PValues        unsafe.Pointer
}

// SemaphoreSignalInfo mirrors VkSemaphoreSignalInfo (vkSignalSemaphore).
type SemaphoreSignalInfo struct {
	SType     StructureType
	PNext     unsafe.Pointer
	Semaphore Semaphore
	Value     uint64
}

// MemoryBarrier2/BufferMemoryBarrier2/ImageMemoryBarrier2 mirror the
// synchronization2 barrier structs the barrier builder (§4.7) emits.
type MemoryBarrier2 struct {
	SType         StructureType
	PNext         unsafe.Pointer
	SrcStageMask  PipelineStageFlags2
	SrcAccessMask AccessFlags2
	DstStageMask  PipelineStageFlags2
	DstAccessMask AccessFlags2
}

type BufferMemoryBarrier2 struct {
	SType               StructureType
	PNext               unsafe.Pointer
	SrcStageMask        PipelineStageFlags2
	SrcAccessMask       AccessFlags2
	DstStageMask        PipelineStageFlags2
	DstAccessMask       AccessFlags2
	SrcQueueFamilyIndex uint32
	DstQueueFamilyIndex uint32
	Buffer              Buffer
	Offset              uint64
	Size                uint64
}

type ImageMemoryBarrier2 struct {
	SType               StructureType
	PNext               unsafe.Pointer
	SrcStageMask        PipelineStageFlags2
	SrcAccessMask       AccessFlags2
	DstStageMask        PipelineStageFlags2
	DstAccessMask       AccessFlags2
	OldLayout           ImageLayout
	NewLayout           ImageLayout
	SrcQueueFamilyIndex uint32
	DstQueueFamilyIndex uint32
	Image               Image
	SubresourceRange    ImageSubresourceRange
}

// DependencyInfo mirrors VkDependencyInfo, the argument to
// vkCmdPipelineBarrier2.
type DependencyInfo struct {
	SType                    StructureType
	PNext                    unsafe.Pointer
	DependencyFlags          uint32
	MemoryBarrierCount       uint32
	PMemoryBarriers          unsafe.Pointer
	BufferMemoryBarrierCount uint32
	PBufferMemoryBarriers    unsafe.Pointer
	ImageMemoryBarrierCount  uint32
	PImageMemoryBarriers     unsafe.Pointer
}

// RenderingAttachmentInfo/RenderingInfo mirror the dynamic-rendering
// structs (no VkRenderPass/VkFramebuffer objects anywhere in this core).
type RenderingAttachmentInfo struct {
	SType              StructureType
	PNext              unsafe.Pointer
	ImageView          ImageView
	ImageLayout        ImageLayout
	ResolveMode        uint32
	ResolveImageView    ImageView
	ResolveImageLayout ImageLayout
	LoadOp             uint32
	StoreOp            uint32
	ClearValue         [4]float32
}

type RenderingInfo struct {
	SType                StructureType
	PNext                unsafe.Pointer
	Flags                uint32
	RenderArea           struct {
		Offset Offset2D
		Extent Extent2D
	}
	LayerCount           uint32
	ViewMask             uint32
	ColorAttachmentCount uint32
	PColorAttachments    unsafe.Pointer
	PDepthAttachment     unsafe.Pointer
	PStencilAttachment   unsafe.Pointer
}

// Viewport/Rect2D mirror the VkViewport/VkRect2D structs CmdSetViewport
// and CmdSetScissor take arrays of.
type Viewport struct {
	X, Y, Width, Height, MinDepth, MaxDepth float32
}

type Rect2D struct {
	Offset Offset2D
	Extent Extent2D
}

// BufferImageCopy/BufferCopy/ImageCopy mirror the copy-region structs.
type BufferCopy struct {
	SrcOffset, DstOffset, Size uint64
}

type ImageSubresourceLayers struct {
	AspectMask     uint32
	MipLevel       uint32
	BaseArrayLayer uint32
	LayerCount     uint32
}

type BufferImageCopy struct {
	BufferOffset      uint64
	BufferRowLength   uint32
	BufferImageHeight uint32
	ImageSubresource  ImageSubresourceLayers
	ImageOffset       Offset3D
	ImageExtent       Extent3D
}

// ImageCopy mirrors VkImageCopy, the region struct CmdCopyImage takes.
type ImageCopy struct {
	SrcSubresource ImageSubresourceLayers
	SrcOffset      Offset3D
	DstSubresource ImageSubresourceLayers
	DstOffset      Offset3D
	Extent         Extent3D
}

// ImageBlit mirrors VkImageBlit, the region struct CmdBlitImage takes —
// used by the submission scheduler's swapchain copy/present path (§4.8),
// which blits a source texture into the acquired swapchain image.
type ImageBlit struct {
	SrcSubresource ImageSubresourceLayers
	SrcOffsets     [2]Offset3D
	DstSubresource ImageSubresourceLayers
	DstOffsets     [2]Offset3D
}

// DebugUtilsLabel mirrors VkDebugUtilsLabelEXT.
type DebugUtilsLabel struct {
	SType      StructureType
	PNext      unsafe.Pointer
	PLabelName unsafe.Pointer
	Color      [4]float32
}

// ObjectType mirrors VkObjectType, used by DebugUtilsObjectNameInfo.
type ObjectType uint32

const (
	ObjectTypeBuffer             ObjectType = 9
	ObjectTypeImage              ObjectType = 10
	ObjectTypeImageView          ObjectType = 14
	ObjectTypeShaderModule       ObjectType = 15
	ObjectTypePipeline           ObjectType = 19
	ObjectTypeSampler            ObjectType = 21
	ObjectTypeSwapchainKHR       ObjectType = 1000001000
)

// DebugUtilsObjectNameInfo mirrors VkDebugUtilsObjectNameInfoEXT.
type DebugUtilsObjectNameInfo struct {
	SType        StructureType
	PNext        unsafe.Pointer
	ObjectType   ObjectType
	ObjectHandle uint64
	PObjectName  unsafe.Pointer
}

// SwapchainCreateInfoKHR mirrors VkSwapchainCreateInfoKHR.
type SwapchainCreateInfoKHR struct {
	SType                 StructureType
	PNext                 unsafe.Pointer
	Flags                 uint32
	Surface               SurfaceKHR
	MinImageCount         uint32
	ImageFormat           Format
	ImageColorSpace       uint32
	ImageExtent           Extent2D
	ImageArrayLayers      uint32
	ImageUsage            ImageUsageFlags
	ImageSharingMode      uint32
	QueueFamilyIndexCount uint32
	PQueueFamilyIndices   unsafe.Pointer
	PreTransform          uint32
	CompositeAlpha        uint32
	PresentMode           PresentModeKHR
	Clipped               uint32
	OldSwapchain          SwapchainKHR
}

// PresentInfoKHR mirrors VkPresentInfoKHR.
type PresentInfoKHR struct {
	SType              StructureType
	PNext              unsafe.Pointer
	WaitSemaphoreCount uint32
	PWaitSemaphores    unsafe.Pointer
	SwapchainCount     uint32
	PSwapchains        unsafe.Pointer
	PImageIndices      unsafe.Pointer
	PResults           unsafe.Pointer
}
