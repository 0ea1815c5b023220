// Copyright 2025 The Tundraforge Authors
// SPDX-License-Identifier: MIT

package rhi

import (
	"fmt"
	"unsafe"

	"github.com/tundraforge/rhi/handle"
	"github.com/tundraforge/rhi/internal/vk"
	"github.com/tundraforge/rhi/types"
)

type textureViewResource struct {
	view    vk.ImageView
	texture types.Handle
	binding types.BindableHandle
	name    string
}

// CreateTextureView creates a VkImageView over an existing texture,
// reserves bindless SRV/UAV slots according to the texture's usage, and
// holds a reference on the texture's tracker entry for as long as the
// view lives (destroying the texture handle alone does not tear down its
// image while a view still references it).
func (d *Device) CreateTextureView(info types.TextureViewCreateInfo) (types.Handle, error) {
	tex, err := handle.With(d.textures, info.Texture, func(t *textureResource) textureResource { return *t })
	if err != nil {
		return types.Handle(0), fmt.Errorf("rhi: texture view source: %w", err)
	}

	format := info.Format
	if format == types.TextureFormatUndefined {
		format = tex.format
	}

	ci := vk.ImageViewCreateInfo{
		SType:    vk.StructureTypeImageViewCreateInfo,
		Image:    tex.img,
		ViewType: 1,
		Format:   vkFormat(format),
		SubresourceRange: vk.ImageSubresourceRange{
			AspectMask:     vkImageAspect(info.Subresource.Aspect),
			BaseMipLevel:   info.Subresource.BaseMipLevel,
			LevelCount:     subresourceLevelCount(info.Subresource, tex.mips),
			BaseArrayLayer: info.Subresource.BaseArrayLayer,
			LayerCount:     subresourceLayerCount(info.Subresource),
		},
	}

	var view vk.ImageView
	if res := d.commands.CreateImageView(d.handle, unsafe.Pointer(&ci), &view); res != vk.Success {
		return types.Handle(0), fmt.Errorf("%w: vkCreateImageView returned %s", ErrOutOfMemory, res)
	}

	wantSRV := tex.usage&types.TextureUsageSRV != 0
	wantUAV := tex.usage&types.TextureUsageUAV != 0
	binding, err := d.bindless.AllocateTexture(wantSRV, wantUAV)
	if err != nil {
		d.commands.DestroyImageView(d.handle, view)
		return types.Handle(0), fmt.Errorf("rhi: allocating bindless slot: %w", err)
	}

	d.tracker.AddReference(info.Texture)

	res := textureViewResource{view: view, texture: info.Texture, binding: binding, name: info.Name}
	h := d.textureViews.Add(res)

	d.tracker.AddResource(h, func() {
		d.bindless.FreeTexture(binding)
		d.commands.DestroyImageView(d.handle, view)
		d.tracker.RemoveReference(info.Texture)
	})

	d.writeTextureDescriptor(view, binding)

	d.setDebugName(vk.ObjectTypeImageView, uint64(view), info.Name)
	Logger().Debug("texture view created", "handle", h, "texture", info.Texture, "name", info.Name)
	return h, nil
}

// writeTextureDescriptor publishes a view's SRV/UAV bindless slots into
// the shared descriptor set. A sampled-image binding always uses the
// shader-read-only layout; a storage-image binding always uses general,
// matching the layouts the barrier builder transitions to before a
// shader actually touches the image (§4.7).
func (d *Device) writeTextureDescriptor(view vk.ImageView, binding types.BindableHandle) {
	var writes []vk.WriteDescriptorSet
	var images []vk.DescriptorImageInfo

	if binding.SRVSlot != types.SlotSentinel {
		images = append(images, vk.DescriptorImageInfo{ImageView: view, ImageLayout: vk.ImageLayoutShaderReadOnlyOptimal})
	}
	if binding.UAVSlot != types.SlotSentinel {
		images = append(images, vk.DescriptorImageInfo{ImageView: view, ImageLayout: vk.ImageLayoutGeneral})
	}
	if len(images) == 0 {
		return
	}

	idx := 0
	if binding.SRVSlot != types.SlotSentinel {
		writes = append(writes, vk.WriteDescriptorSet{
			SType: vk.StructureTypeWriteDescriptorSet, DstSet: d.descs.set,
			DstBinding: bindlessSampledImageBinding, DstArrayElement: binding.SRVSlot,
			DescriptorCount: 1, DescriptorType: vk.DescriptorTypeSampledImage,
			PImageInfo: unsafe.Pointer(&images[idx]),
		})
		idx++
	}
	if binding.UAVSlot != types.SlotSentinel {
		writes = append(writes, vk.WriteDescriptorSet{
			SType: vk.StructureTypeWriteDescriptorSet, DstSet: d.descs.set,
			DstBinding: bindlessStorageImageBinding, DstArrayElement: binding.UAVSlot,
			DescriptorCount: 1, DescriptorType: vk.DescriptorTypeStorageImage,
			PImageInfo: unsafe.Pointer(&images[idx]),
		})
	}
	d.commands.UpdateDescriptorSets(d.handle, uint32(len(writes)), unsafe.Pointer(&writes[0]), 0, nil)
}

// DestroyTextureView drops the device's reference to h.
func (d *Device) DestroyTextureView(h types.Handle) error {
	if !d.textureViews.IsValid(h) {
		return ErrInvalidHandle
	}
	d.textureViews.Destroy(h)
	d.tracker.RemoveReference(h)
	return nil
}

func subresourceLevelCount(s types.Subresource, mips uint32) uint32 {
	if s.MipLevelCount == 0 {
		return mips - s.BaseMipLevel
	}
	return s.MipLevelCount
}

func subresourceLayerCount(s types.Subresource) uint32 {
	if s.LayerCount == 0 {
		return 1
	}
	return s.LayerCount
}
