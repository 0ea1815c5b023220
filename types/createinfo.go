package types

// Extent3D describes a 3D size in texels.
type Extent3D struct {
	Width              uint32
	Height             uint32
	DepthOrArrayLayers uint32
}

// Offset3D describes a 3D texel offset.
type Offset3D struct {
	X, Y, Z int32
}

// Subresource identifies a mip/array-layer range of a texture.
type Subresource struct {
	BaseMipLevel   uint32
	MipLevelCount  uint32
	BaseArrayLayer uint32
	LayerCount     uint32
	Aspect         FormatAspect
}

// BufferCreateInfo is the consumer-facing descriptor for CreateBuffer (§6).
type BufferCreateInfo struct {
	Size       uint64
	Usage      BufferUsage
	MemoryType MemoryType
	Name       string
}

// BufferUpdateRegion describes one upload-buffer write (§6 update_buffer).
type BufferUpdateRegion struct {
	SrcBytes  []byte
	DstOffset uint64
}

// TextureCreateInfo is the consumer-facing descriptor for CreateTexture (§6).
type TextureCreateInfo struct {
	Kind          TextureDimension
	Format        TextureFormat
	Usage         TextureUsage
	Tiling        TextureTiling
	MemoryType    MemoryType
	Size          Extent3D
	MipLevelCount uint32
	SampleCount   SampleCount
	Name          string
}

// TextureViewCreateInfo is the consumer-facing descriptor for
// CreateTextureView (§6).
type TextureViewCreateInfo struct {
	Texture     Handle
	Subresource Subresource
	Format      TextureFormat
	Name        string
}

// SamplerCreateInfo is the consumer-facing descriptor for CreateSampler (§6).
type SamplerCreateInfo struct {
	MinFilter    Filter
	MagFilter    Filter
	MipmapFilter Filter
	AddressModeU AddressMode
	AddressModeV AddressMode
	AddressModeW AddressMode
	MaxAnisotropy float32
	Name         string
}

// Filter is a texture sampling filter mode.
type Filter uint8

const (
	FilterNearest Filter = iota
	FilterLinear
)

// AddressMode is a texture-coordinate wrap mode.
type AddressMode uint8

const (
	AddressModeRepeat AddressMode = iota
	AddressModeMirrorRepeat
	AddressModeClampToEdge
)

// ShaderCreateInfo is the consumer-facing descriptor for CreateShader (§6).
type ShaderCreateInfo struct {
	Stage      ShaderStage
	SPIRVBytes []byte
	Name       string
}

// VertexAttribute describes one vertex-input attribute.
type VertexAttribute struct {
	Format   TextureFormat
	Offset   uint32
	Location uint32
}

// VertexBufferLayout describes one vertex-buffer binding's stride and
// attribute list.
type VertexBufferLayout struct {
	Stride     uint64
	Attributes []VertexAttribute
}

// GraphicsPipelineCreateInfo is the consumer-facing descriptor for
// CreateGraphicsPipeline (§6).
type GraphicsPipelineCreateInfo struct {
	VertexShader   Handle
	FragmentShader Handle
	VertexBuffers  []VertexBufferLayout
	ColorFormats   []TextureFormat
	DepthFormat    TextureFormat
	HasDepth       bool
	CullMode       CullMode
	Name           string
}

// CullMode is a triangle culling mode.
type CullMode uint8

const (
	CullModeNone CullMode = iota
	CullModeFront
	CullModeBack
)

// ComputePipelineCreateInfo is the consumer-facing descriptor for
// CreateComputePipeline (§6).
type ComputePipelineCreateInfo struct {
	Shader Handle
	Name   string
}

// SwapchainCreateInfo is the consumer-facing descriptor for
// CreateSwapchain (§6).
type SwapchainCreateInfo struct {
	WindowHandle uintptr
	Width        uint32
	Height       uint32
	Format       TextureFormat
	Name         string
}
