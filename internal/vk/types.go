// Copyright 2025 The Tundraforge Authors
// SPDX-License-Identifier: MIT

// Package vk is a pure-Go Vulkan 1.3 binding used by the rhi package's
// Vulkan backend. It loads the platform Vulkan loader library dynamically
// via goffi and exposes the subset of the API this RHI core needs: no cgo,
// same posture as the teacher binding this package is grounded on.
package vk

// Dispatchable/non-dispatchable handle types. All are opaque 64-bit
// values on every platform goffi targets (ILP32 handles are not
// supported here, matching upstream Vulkan loaders on desktop targets).
type (
	Instance       uint64
	PhysicalDevice uint64
	Device         uint64
	Queue          uint64
	CommandPool    uint64
	CommandBuffer  uint64

	DeviceMemory       uint64
	Buffer             uint64
	BufferView         uint64
	Image              uint64
	ImageView          uint64
	ShaderModule       uint64
	Pipeline           uint64
	PipelineLayout     uint64
	PipelineCache      uint64
	Sampler            uint64
	DescriptorSetLayout uint64
	DescriptorPool     uint64
	DescriptorSet      uint64
	Semaphore          uint64
	Fence              uint64
	SurfaceKHR         uint64
	SwapchainKHR       uint64
)

// Result mirrors VkResult.
type Result int32

const (
	Success        Result = 0
	NotReady       Result = 1
	Timeout        Result = 2
	EventSet       Result = 3
	EventReset     Result = 4
	Incomplete     Result = 5
	SuboptimalKHR  Result = 1000001003

	ErrorOutOfHostMemory    Result = -1
	ErrorOutOfDeviceMemory  Result = -2
	ErrorInitializationFailed Result = -3
	ErrorDeviceLost         Result = -4
	ErrorMemoryMapFailed    Result = -5
	ErrorLayerNotPresent    Result = -6
	ErrorExtensionNotPresent Result = -7
	ErrorFeatureNotPresent  Result = -8
	ErrorIncompatibleDriver Result = -9
	ErrorOutOfPoolMemory    Result = -1000069000
	ErrorOutOfDateKHR       Result = -1000001004
	ErrorSurfaceLostKHR     Result = -1000000000
)

// String renders a best-effort human name, used by the panic/log paths in
// §7 (GPU errors are translated before they become fatal).
func (r Result) String() string {
	switch r {
	case Success:
		return "VK_SUCCESS"
	case NotReady:
		return "VK_NOT_READY"
	case Timeout:
		return "VK_TIMEOUT"
	case SuboptimalKHR:
		return "VK_SUBOPTIMAL_KHR"
	case ErrorOutOfHostMemory:
		return "VK_ERROR_OUT_OF_HOST_MEMORY"
	case ErrorOutOfDeviceMemory:
		return "VK_ERROR_OUT_OF_DEVICE_MEMORY"
	case ErrorDeviceLost:
		return "VK_ERROR_DEVICE_LOST"
	case ErrorOutOfPoolMemory:
		return "VK_ERROR_OUT_OF_POOL_MEMORY"
	case ErrorOutOfDateKHR:
		return "VK_ERROR_OUT_OF_DATE_KHR"
	case ErrorSurfaceLostKHR:
		return "VK_ERROR_SURFACE_LOST_KHR"
	default:
		return "VK_RESULT_UNKNOWN"
	}
}

// Extent2D/3D, Offset2D/3D mirror the Vulkan structs of the same name.
type Extent2D struct{ Width, Height uint32 }
type Extent3D struct{ Width, Height, Depth uint32 }
type Offset2D struct{ X, Y int32 }
type Offset3D struct{ X, Y, Z int32 }

// Format mirrors VkFormat; only the subset this core's convert.go emits.
type Format uint32

// ImageLayout mirrors VkImageLayout.
type ImageLayout uint32

const (
	ImageLayoutUndefined ImageLayout = iota
	ImageLayoutGeneral
	ImageLayoutColorAttachmentOptimal
	ImageLayoutDepthStencilAttachmentOptimal
	ImageLayoutDepthStencilReadOnlyOptimal
	ImageLayoutShaderReadOnlyOptimal
	ImageLayoutTransferSrcOptimal
	ImageLayoutTransferDstOptimal
	ImageLayoutPresentSrcKHR = ImageLayout(1000001002)
)

// PipelineStageFlags2/AccessFlags2 mirror the VK_KHR_synchronization2
// 64-bit stage/access masks the barrier builder (§4.7) computes into.
type PipelineStageFlags2 uint64
type AccessFlags2 uint64

const (
	PipelineStageTopOfPipe2    PipelineStageFlags2 = 1
	PipelineStageBottomOfPipe2 PipelineStageFlags2 = 1 << 13
	PipelineStageDrawIndirect2 PipelineStageFlags2 = 1 << 1
	PipelineStageVertexInput2  PipelineStageFlags2 = 1 << 2
	PipelineStageVertexShader2 PipelineStageFlags2 = 1 << 3
	PipelineStageFragmentShader2 PipelineStageFlags2 = 1 << 7
	PipelineStageEarlyFragmentTests2 PipelineStageFlags2 = 1 << 8
	PipelineStageLateFragmentTests2  PipelineStageFlags2 = 1 << 9
	PipelineStageColorAttachmentOutput2 PipelineStageFlags2 = 1 << 10
	PipelineStageComputeShader2 PipelineStageFlags2 = 1 << 11
	PipelineStageTransfer2      PipelineStageFlags2 = 1 << 12
	PipelineStageAllGraphics2   PipelineStageFlags2 = 1 << 15
	PipelineStageHost2          PipelineStageFlags2 = 1 << 14
)

const (
	AccessNone2                        AccessFlags2 = 0
	AccessIndirectCommandRead2         AccessFlags2 = 1
	AccessIndexRead2                   AccessFlags2 = 1 << 1
	AccessVertexAttributeRead2         AccessFlags2 = 1 << 2
	AccessShaderRead2                  AccessFlags2 = 1 << 5
	AccessShaderWrite2                 AccessFlags2 = 1 << 6
	AccessColorAttachmentRead2         AccessFlags2 = 1 << 7
	AccessColorAttachmentWrite2        AccessFlags2 = 1 << 8
	AccessDepthStencilAttachmentRead2  AccessFlags2 = 1 << 9
	AccessDepthStencilAttachmentWrite2 AccessFlags2 = 1 << 10
	AccessTransferRead2                AccessFlags2 = 1 << 11
	AccessTransferWrite2               AccessFlags2 = 1 << 12
	AccessHostRead2                    AccessFlags2 = 1 << 13
	AccessHostWrite2                   AccessFlags2 = 1 << 14
)

// BufferUsageFlags/ImageUsageFlags mirror the Vulkan bitmasks.
type BufferUsageFlags uint32

const (
	BufferUsageTransferSrcBit   BufferUsageFlags = 1
	BufferUsageTransferDstBit   BufferUsageFlags = 1 << 1
	BufferUsageUniformBufferBit BufferUsageFlags = 1 << 4
	BufferUsageStorageBufferBit BufferUsageFlags = 1 << 5
	BufferUsageIndexBufferBit   BufferUsageFlags = 1 << 6
	BufferUsageVertexBufferBit  BufferUsageFlags = 1 << 7
	BufferUsageIndirectBufferBit BufferUsageFlags = 1 << 8
)

type ImageUsageFlags uint32

const (
	ImageUsageTransferSrcBit     ImageUsageFlags = 1
	ImageUsageTransferDstBit     ImageUsageFlags = 1 << 1
	ImageUsageSampledBit         ImageUsageFlags = 1 << 2
	ImageUsageStorageBit         ImageUsageFlags = 1 << 3
	ImageUsageColorAttachmentBit ImageUsageFlags = 1 << 4
	ImageUsageDepthStencilAttachmentBit ImageUsageFlags = 1 << 5
)

// MemoryPropertyFlags/MemoryHeapFlags mirror the Vulkan bitmasks used by
// the memory allocator (§4 C4).
type MemoryPropertyFlags uint32

const (
	MemoryPropertyDeviceLocalBit  MemoryPropertyFlags = 1
	MemoryPropertyHostVisibleBit  MemoryPropertyFlags = 1 << 1
	MemoryPropertyHostCoherentBit MemoryPropertyFlags = 1 << 2
	MemoryPropertyHostCachedBit   MemoryPropertyFlags = 1 << 3
	MemoryPropertyLazilyAllocatedBit MemoryPropertyFlags = 1 << 4
)

type MemoryHeapFlags uint32

const MemoryHeapDeviceLocalBit MemoryHeapFlags = 1

// MemoryType/MemoryHeap/PhysicalDeviceMemoryProperties mirror the
// corresponding Vulkan query structs.
type MemoryType struct {
	PropertyFlags MemoryPropertyFlags
	HeapIndex     uint32
}

type MemoryHeap struct {
	Size  uint64
	Flags MemoryHeapFlags
}

type PhysicalDeviceMemoryProperties struct {
	MemoryTypeCount uint32
	MemoryTypes     [32]MemoryType
	MemoryHeapCount uint32
	MemoryHeaps     [16]MemoryHeap
}

// MemoryRequirements mirrors VkMemoryRequirements.
type MemoryRequirements struct {
	Size           uint64
	Alignment      uint64
	MemoryTypeBits uint32
}

// PhysicalDeviceProperties carries the fields the pipeline-cache header
// (§6) and queue-family topology selection need.
// The field order follows VkPhysicalDeviceProperties; limits and
// sparseProperties are kept as undecoded trailing bytes.
type PhysicalDeviceProperties struct {
	APIVersion    uint32
	DriverVersion uint32
	VendorID   uint32
	DeviceID   uint32
	DeviceType uint32
	DeviceName [256]byte
	PipelineCacheUUID [16]byte
	_          [532]byte
}

// QueueFlags mirrors VkQueueFlagBits.
type QueueFlags uint32

const (
	QueueGraphicsBit QueueFlags = 1
	QueueComputeBit  QueueFlags = 1 << 1
	QueueTransferBit QueueFlags = 1 << 2
)

// QueueFamilyProperties mirrors VkQueueFamilyProperties.
type QueueFamilyProperties struct {
	QueueFlags      QueueFlags
	QueueCount      uint32
	TimestampValidBits uint32
	MinImageTransferGranularity Extent3D
}

// DescriptorType mirrors VkDescriptorType (only the subset §6 needs).
type DescriptorType uint32

const (
	DescriptorTypeSampler             DescriptorType = 0
	DescriptorTypeSampledImage        DescriptorType = 2
	DescriptorTypeStorageImage        DescriptorType = 3
	DescriptorTypeUniformBuffer       DescriptorType = 6
	DescriptorTypeStorageBuffer       DescriptorType = 7
)

// DescriptorBindingFlags mirrors VK_EXT_descriptor_indexing's per-binding
// flags: the bindless set layout (§6) sets PartiallyBound|UpdateAfterBind.
type DescriptorBindingFlags uint32

const (
	DescriptorBindingUpdateAfterBindBit DescriptorBindingFlags = 1
	DescriptorBindingPartiallyBoundBit  DescriptorBindingFlags = 1 << 2
)

// DescriptorPoolCreateFlags mirrors VkDescriptorPoolCreateFlagBits.
type DescriptorPoolCreateFlags uint32

const (
	DescriptorPoolCreateUpdateAfterBindBit DescriptorPoolCreateFlags = 1 << 1
)

// ShaderStageFlags mirrors VkShaderStageFlagBits.
type ShaderStageFlags uint32

const (
	ShaderStageVertexBit   ShaderStageFlags = 1
	ShaderStageFragmentBit ShaderStageFlags = 1 << 4
	ShaderStageComputeBit  ShaderStageFlags = 1 << 5
	ShaderStageAllBit      ShaderStageFlags = 0x7FFFFFFF
)

// CullModeFlags mirrors VkCullModeFlagBits.
type CullModeFlags uint32

const (
	CullModeNone  CullModeFlags = 0
	CullModeFront CullModeFlags = 1
	CullModeBack  CullModeFlags = 1 << 1
)

// SampleCountFlagBits mirrors VkSampleCountFlagBits.
type SampleCountFlagBits uint32

// CommandPoolCreateFlags mirrors VkCommandPoolCreateFlagBits.
type CommandPoolCreateFlags uint32

const CommandPoolCreateResetCommandBufferBit CommandPoolCreateFlags = 1 << 1

// CommandBufferLevel mirrors VkCommandBufferLevel.
type CommandBufferLevel uint32

const CommandBufferLevelPrimary CommandBufferLevel = 0

// SemaphoreType mirrors VkSemaphoreType; timeline semaphores back the
// submission scheduler's chaining (§4.8).
type SemaphoreType uint32

const (
	SemaphoreTypeBinary   SemaphoreType = 0
	SemaphoreTypeTimeline SemaphoreType = 1
)

// PipelineBindPoint mirrors VkPipelineBindPoint.
type PipelineBindPoint uint32

const (
	PipelineBindPointGraphics PipelineBindPoint = 0
	PipelineBindPointCompute  PipelineBindPoint = 1
)

// IndexType mirrors VkIndexType.
type IndexType uint32

const (
	IndexTypeUint16 IndexType = 0
	IndexTypeUint32 IndexType = 1
)

// Filter/SamplerAddressMode mirror the Vulkan sampler enums.
type Filter uint32
type SamplerAddressMode uint32

const (
	FilterNearest Filter = 0
	FilterLinear  Filter = 1
)

const (
	SamplerAddressModeRepeat       SamplerAddressMode = 0
	SamplerAddressModeMirroredRepeat SamplerAddressMode = 1
	SamplerAddressModeClampToEdge  SamplerAddressMode = 2
)

// PresentModeKHR mirrors VkPresentModeKHR.
type PresentModeKHR uint32

const (
	PresentModeFifoKHR PresentModeKHR = 2
)
