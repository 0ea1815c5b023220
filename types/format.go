package types

// TextureFormat enumerates the supported pixel formats. The set is the one
// the consuming shader-compiler and mesh-importer modules already agree on
// (§1 external collaborators) and is preserved verbatim rather than pruned
// to whatever this core happens to exercise.
type TextureFormat uint32

const (
	TextureFormatUndefined TextureFormat = iota

	// 8-bit formats
	TextureFormatR8Unorm
	TextureFormatR8Snorm
	TextureFormatR8Uint
	TextureFormatR8Sint

	// 16-bit formats
	TextureFormatR16Uint
	TextureFormatR16Sint
	TextureFormatR16Float
	TextureFormatRG8Unorm
	TextureFormatRG8Snorm
	TextureFormatRG8Uint
	TextureFormatRG8Sint

	// 32-bit formats
	TextureFormatR32Uint
	TextureFormatR32Sint
	TextureFormatR32Float
	TextureFormatRG16Uint
	TextureFormatRG16Sint
	TextureFormatRG16Float
	TextureFormatRGBA8Unorm
	TextureFormatRGBA8UnormSrgb
	TextureFormatRGBA8Snorm
	TextureFormatRGBA8Uint
	TextureFormatRGBA8Sint
	TextureFormatBGRA8Unorm
	TextureFormatBGRA8UnormSrgb

	// Packed formats
	TextureFormatRGB9E5Ufloat
	TextureFormatRGB10A2Uint
	TextureFormatRGB10A2Unorm
	TextureFormatRG11B10Ufloat

	// 64-bit formats
	TextureFormatRG32Uint
	TextureFormatRG32Sint
	TextureFormatRG32Float
	TextureFormatRGBA16Uint
	TextureFormatRGBA16Sint
	TextureFormatRGBA16Float

	// 128-bit formats
	TextureFormatRGBA32Uint
	TextureFormatRGBA32Sint
	TextureFormatRGBA32Float

	// Depth/stencil formats
	TextureFormatStencil8
	TextureFormatDepth16Unorm
	TextureFormatDepth24Plus
	TextureFormatDepth24PlusStencil8
	TextureFormatDepth32Float
	TextureFormatDepth32FloatStencil8

	// BC compressed formats
	TextureFormatBC1RGBAUnorm
	TextureFormatBC1RGBAUnormSrgb
	TextureFormatBC2RGBAUnorm
	TextureFormatBC2RGBAUnormSrgb
	TextureFormatBC3RGBAUnorm
	TextureFormatBC3RGBAUnormSrgb
	TextureFormatBC4RUnorm
	TextureFormatBC4RSnorm
	TextureFormatBC5RGUnorm
	TextureFormatBC5RGSnorm
	TextureFormatBC6HRGBUfloat
	TextureFormatBC6HRGBFloat
	TextureFormatBC7RGBAUnorm
	TextureFormatBC7RGBAUnormSrgb
)

// FormatAspect is the classification the validation layer (§4.10) checks
// a TextureUsage against: a color-attachment usage is only compatible with
// a color-aspect format, a depth/stencil-attachment usage only with a
// depth-and/or-stencil format.
type FormatAspect uint8

const (
	FormatAspectColor FormatAspect = iota
	FormatAspectDepth
	FormatAspectStencil
	FormatAspectDepthStencil
)

// Aspect classifies a format's aspect for attachment-compatibility checks.
func (f TextureFormat) Aspect() FormatAspect {
	switch f {
	case TextureFormatStencil8:
		return FormatAspectStencil
	case TextureFormatDepth16Unorm, TextureFormatDepth24Plus, TextureFormatDepth32Float:
		return FormatAspectDepth
	case TextureFormatDepth24PlusStencil8, TextureFormatDepth32FloatStencil8:
		return FormatAspectDepthStencil
	default:
		return FormatAspectColor
	}
}

// IsDepthOrStencil reports whether the format carries a depth or stencil
// aspect (as opposed to a pure color aspect).
func (f TextureFormat) IsDepthOrStencil() bool {
	a := f.Aspect()
	return a == FormatAspectDepth || a == FormatAspectStencil || a == FormatAspectDepthStencil
}

// BlockSize returns the size in bytes of one texel (uncompressed formats
// only; this core does not target block-compressed render targets).
func (f TextureFormat) BlockSize() uint32 {
	switch f {
	case TextureFormatR8Unorm, TextureFormatR8Snorm, TextureFormatR8Uint, TextureFormatR8Sint, TextureFormatStencil8:
		return 1
	case TextureFormatR16Uint, TextureFormatR16Sint, TextureFormatR16Float,
		TextureFormatRG8Unorm, TextureFormatRG8Snorm, TextureFormatRG8Uint, TextureFormatRG8Sint,
		TextureFormatDepth16Unorm:
		return 2
	case TextureFormatR32Uint, TextureFormatR32Sint, TextureFormatR32Float,
		TextureFormatRG16Uint, TextureFormatRG16Sint, TextureFormatRG16Float,
		TextureFormatRGBA8Unorm, TextureFormatRGBA8UnormSrgb, TextureFormatRGBA8Snorm,
		TextureFormatRGBA8Uint, TextureFormatRGBA8Sint, TextureFormatBGRA8Unorm, TextureFormatBGRA8UnormSrgb,
		TextureFormatRGB9E5Ufloat, TextureFormatRGB10A2Uint, TextureFormatRGB10A2Unorm, TextureFormatRG11B10Ufloat,
		TextureFormatDepth24Plus, TextureFormatDepth24PlusStencil8, TextureFormatDepth32Float:
		return 4
	case TextureFormatRG32Uint, TextureFormatRG32Sint, TextureFormatRG32Float,
		TextureFormatRGBA16Uint, TextureFormatRGBA16Sint, TextureFormatRGBA16Float,
		TextureFormatDepth32FloatStencil8:
		return 8
	case TextureFormatRGBA32Uint, TextureFormatRGBA32Sint, TextureFormatRGBA32Float:
		return 16
	default:
		return 0 // block-compressed; not measured per-texel
	}
}
