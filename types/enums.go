package types

// QueueType names one of the device's four logical queues (§3
// QueueFamilyTopology).
type QueueType uint8

const (
	QueueGraphics QueueType = iota
	QueueCompute
	QueueTransfer
	QueuePresent

	queueTypeCount = int(QueuePresent) + 1
)

func (q QueueType) String() string {
	switch q {
	case QueueGraphics:
		return "graphics"
	case QueueCompute:
		return "compute"
	case QueueTransfer:
		return "transfer"
	case QueuePresent:
		return "present"
	default:
		return "unknown"
	}
}

// QueueTypeCount is the number of logical queue types.
func QueueTypeCount() int { return queueTypeCount }

// MemoryType selects the intended CPU/GPU access pattern for a resource
// allocation (§4.1 C4 Allocator).
type MemoryType uint8

const (
	MemoryTypeGPU MemoryType = iota
	MemoryTypeUpload
	MemoryTypeReadback
	MemoryTypeDynamic
)

// BufferUsage is a bitmask of intended buffer usages.
type BufferUsage uint32

const (
	BufferUsageTransferSrc BufferUsage = 1 << iota
	BufferUsageTransferDst
	BufferUsageSRV
	BufferUsageUAV
	BufferUsageCBV
	BufferUsageIndex
	BufferUsageVertex
	BufferUsageIndirect
)

// TextureUsage is a bitmask of intended texture usages.
type TextureUsage uint32

const (
	TextureUsageColorAttachment TextureUsage = 1 << iota
	TextureUsageDepthAttachment
	TextureUsageStencilAttachment
	TextureUsageSRV
	TextureUsageUAV
	TextureUsageTransferSrc
	TextureUsageTransferDst
	TextureUsagePresent
)

// AccessFlags describes how a resource is accessed at a point in the
// command stream; the barrier builder (§4.7) keys its translation table on
// these flags.
type AccessFlags uint32

const (
	AccessNone AccessFlags = 0
	AccessIndirectBuffer AccessFlags = 1 << iota
	AccessIndexBuffer
	AccessVertexBuffer
	AccessSRVGraphics
	AccessSRVCompute
	AccessTransferRead
	AccessHostRead
	AccessColorAttachmentRead
	AccessDepthStencilAttachmentRead
	AccessPresent
	AccessUAVGraphics
	AccessUAVCompute
	AccessTransferWrite
	AccessHostWrite
	AccessColorAttachmentWrite
	AccessDepthStencilAttachmentWrite
)

// IsWrite reports whether any write-side flag is set.
func (a AccessFlags) IsWrite() bool {
	const writeMask = AccessUAVGraphics | AccessUAVCompute | AccessTransferWrite |
		AccessHostWrite | AccessColorAttachmentWrite | AccessDepthStencilAttachmentWrite
	return a&writeMask != 0
}

// IsRead reports whether any read-side flag is set.
func (a AccessFlags) IsRead() bool {
	const readMask = AccessIndirectBuffer | AccessIndexBuffer | AccessVertexBuffer |
		AccessSRVGraphics | AccessSRVCompute | AccessTransferRead | AccessHostRead |
		AccessColorAttachmentRead | AccessDepthStencilAttachmentRead | AccessPresent
	return a&readMask != 0
}

// SynchronizationStage is a pipeline stage used to schedule timeline
// semaphore waits/signals and barrier stage masks.
type SynchronizationStage uint8

const (
	StageNone SynchronizationStage = iota
	StageTopOfPipe
	StageBottomOfPipe
	StageEarlyFragment
	StageLateFragment
	StageVertexShader
	StageFragmentShader
	StageComputeShader
	StageTransfer
	StageAllGraphics
)

// ShaderStage identifies a single programmable pipeline stage.
type ShaderStage uint8

const (
	ShaderStageInvalid ShaderStage = iota
	ShaderStageVertex
	ShaderStageFragment
	ShaderStageCompute
)

// SampleCount is the MSAA sample count of a texture/render target.
type SampleCount uint8

const (
	SampleCount1 SampleCount = 1 << iota
	SampleCount2
	SampleCount4
	SampleCount8
)

// TextureDimension is the shape of a texture resource.
type TextureDimension uint8

const (
	TextureDimension1D TextureDimension = iota
	TextureDimension2D
	TextureDimension3D
	TextureDimensionCube
)

// TextureTiling controls whether a texture's memory layout is driver-opaque
// (Optimal) or linearly addressable (Linear, used for staging/readback).
type TextureTiling uint8

const (
	TextureTilingOptimal TextureTiling = iota
	TextureTilingLinear
)
