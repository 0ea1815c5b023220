// Copyright 2025 The Tundraforge Authors
// SPDX-License-Identifier: MIT

package rhi

import (
	"fmt"
	"math/bits"
	"unsafe"

	"github.com/tundraforge/rhi/internal/vk"
	"github.com/tundraforge/rhi/memory"
	"github.com/tundraforge/rhi/types"
)

type textureResource struct {
	img     vk.Image
	alloc   *memory.Allocation
	format  types.TextureFormat
	extent  types.Extent3D
	mips    uint32
	usage   types.TextureUsage
	name    string
}

func vkImageType(k types.TextureDimension) uint32 {
	switch k {
	case types.TextureDimension1D:
		return 0
	case types.TextureDimension3D:
		return 2
	default:
		return 1
	}
}

func vkImageTiling(t types.TextureTiling) uint32 {
	if t == types.TextureTilingLinear {
		return 1
	}
	return 0
}

func vkSampleCount(s types.SampleCount) vk.SampleCountFlagBits {
	if s == 0 {
		return 1
	}
	return vk.SampleCountFlagBits(s)
}

// computeNumMips returns floor(log2(max(w,h,d)))+1, the full mip chain
// from extent down to a single 1x1x1 texel. A caller that leaves
// MipLevelCount at 0 gets this chain regardless of sample count: MSAA
// textures are never sampled and so never addressed by mip level, but
// computing the chain the same way for both keeps CreateTexture's
// extent-to-mips rule uniform rather than special-cased per usage.
// DepthOrArrayLayers only contributes when kind is 3D, since for every
// other dimension it counts array layers, not depth, and array layers
// don't shrink along the mip chain.
func computeNumMips(kind types.TextureDimension, extent types.Extent3D) uint32 {
	dim := extent.Width
	if extent.Height > dim {
		dim = extent.Height
	}
	if kind == types.TextureDimension3D && extent.DepthOrArrayLayers > dim {
		dim = extent.DepthOrArrayLayers
	}
	if dim == 0 {
		return 1
	}
	return uint32(bits.Len32(dim))
}

// CreateTexture allocates a VkImage plus backing memory and, when the
// requested usage includes SRV/UAV, leaves binding to a texture view:
// unlike buffers, an image cannot be bound directly — every bindless slot
// for a texture belongs to one of its views (§4.3, §6).
func (d *Device) CreateTexture(info types.TextureCreateInfo) (types.Handle, error) {
	if info.Size.Width == 0 || info.Size.Height == 0 {
		return types.Handle(0), fmt.Errorf("rhi: texture extent must be non-zero")
	}
	mips := info.MipLevelCount
	if mips == 0 {
		mips = computeNumMips(info.Kind, info.Size)
	}
	arrayLayers := uint32(1)
	if info.Kind == types.TextureDimensionCube {
		arrayLayers = 6
	}

	ci := vk.ImageCreateInfo{
		SType:         vk.StructureTypeImageCreateInfo,
		ImageType:     vkImageType(info.Kind),
		Format:        vkFormat(info.Format),
		Extent:        vk.Extent3D{Width: info.Size.Width, Height: info.Size.Height, Depth: info.Size.DepthOrArrayLayers},
		MipLevels:     mips,
		ArrayLayers:   arrayLayers,
		Samples:       vkSampleCount(info.SampleCount),
		Tiling:        vkImageTiling(info.Tiling),
		Usage:         vkImageUsage(info.Usage),
		SharingMode:   0,
		InitialLayout: vk.ImageLayoutUndefined,
	}

	var img vk.Image
	if res := d.commands.CreateImage(d.handle, unsafe.Pointer(&ci), &img); res != vk.Success {
		return types.Handle(0), fmt.Errorf("%w: vkCreateImage returned %s", ErrOutOfMemory, res)
	}

	var reqs vk.MemoryRequirements
	d.commands.GetImageMemoryRequirements(d.handle, img, &reqs)

	alloc, err := d.allocator.Alloc(reqs, info.MemoryType)
	if err != nil {
		d.commands.DestroyImage(d.handle, img)
		return types.Handle(0), fmt.Errorf("rhi: allocating texture memory: %w", err)
	}

	if res := d.commands.BindImageMemory(d.handle, img, alloc.Memory, alloc.Offset); res != vk.Success {
		d.allocator.Free(alloc)
		d.commands.DestroyImage(d.handle, img)
		return types.Handle(0), fmt.Errorf("%w: vkBindImageMemory returned %s", ErrOutOfMemory, res)
	}

	res := textureResource{img: img, alloc: alloc, format: info.Format, extent: info.Size, mips: mips, usage: info.Usage, name: info.Name}
	h := d.textures.Add(res)

	d.tracker.AddResource(h, func() {
		d.commands.DestroyImage(d.handle, img)
		d.allocator.Free(alloc)
	})

	d.setDebugName(vk.ObjectTypeImage, uint64(img), info.Name)
	Logger().Debug("texture created", "handle", h, "extent", info.Size, "name", info.Name)
	return h, nil
}

// DestroyTexture drops the device's reference to h (§4.2 deferred
// destruction). Any views of h must be destroyed independently: a view
// holds its own reference on the underlying image, released from
// DestroyTextureView.
func (d *Device) DestroyTexture(h types.Handle) error {
	if !d.textures.IsValid(h) {
		return ErrInvalidHandle
	}
	d.textures.Destroy(h)
	d.tracker.RemoveReference(h)
	return nil
}
