// Copyright 2025 The Tundraforge Authors
// SPDX-License-Identifier: MIT

package rhi

import (
	"fmt"
	"unsafe"

	"github.com/tundraforge/rhi/internal/vk"
	"github.com/tundraforge/rhi/types"
)

type samplerResource struct {
	sampler vk.Sampler
	binding types.BindableHandle
	name    string
}

// CreateSampler creates a VkSampler and reserves its bindless sampler
// slot.
func (d *Device) CreateSampler(info types.SamplerCreateInfo) (types.Handle, error) {
	anisotropyEnable := uint32(0)
	maxAnisotropy := info.MaxAnisotropy
	if maxAnisotropy > 1.0 {
		anisotropyEnable = 1
	} else {
		maxAnisotropy = 1.0
	}

	ci := vk.SamplerCreateInfo{
		SType:            vk.StructureTypeSamplerCreateInfo,
		MagFilter:        vkFilter(info.MagFilter),
		MinFilter:        vkFilter(info.MinFilter),
		MipmapMode:       vkMipmapMode(info.MipmapFilter),
		AddressModeU:     vkAddressMode(info.AddressModeU),
		AddressModeV:     vkAddressMode(info.AddressModeV),
		AddressModeW:     vkAddressMode(info.AddressModeW),
		AnisotropyEnable: anisotropyEnable,
		MaxAnisotropy:    maxAnisotropy,
		CompareEnable:    0,
		MinLod:           0,
		MaxLod:           1000,
	}

	var sampler vk.Sampler
	if res := d.commands.CreateSampler(d.handle, unsafe.Pointer(&ci), &sampler); res != vk.Success {
		return types.Handle(0), fmt.Errorf("%w: vkCreateSampler returned %s", ErrOutOfMemory, res)
	}

	binding, err := d.bindless.AllocateSampler()
	if err != nil {
		d.commands.DestroySampler(d.handle, sampler)
		return types.Handle(0), fmt.Errorf("rhi: allocating bindless slot: %w", err)
	}

	res := samplerResource{sampler: sampler, binding: binding, name: info.Name}
	h := d.samplers.Add(res)

	d.tracker.AddResource(h, func() {
		d.bindless.FreeSampler(binding)
		d.commands.DestroySampler(d.handle, sampler)
	})

	imgInfo := vk.DescriptorImageInfo{Sampler: sampler}
	write := vk.WriteDescriptorSet{
		SType:           vk.StructureTypeWriteDescriptorSet,
		DstSet:          d.descs.set,
		DstBinding:      bindlessSamplerBinding,
		DstArrayElement: binding.SRVSlot,
		DescriptorCount: 1,
		DescriptorType:  vk.DescriptorTypeSampler,
		PImageInfo:      unsafe.Pointer(&imgInfo),
	}
	d.commands.UpdateDescriptorSets(d.handle, 1, unsafe.Pointer(&write), 0, nil)

	d.setDebugName(vk.ObjectTypeSampler, uint64(sampler), info.Name)
	Logger().Debug("sampler created", "handle", h, "name", info.Name)
	return h, nil
}

// DestroySampler drops the device's reference to h.
func (d *Device) DestroySampler(h types.Handle) error {
	if !d.samplers.IsValid(h) {
		return ErrInvalidHandle
	}
	d.samplers.Destroy(h)
	d.tracker.RemoveReference(h)
	return nil
}

func vkMipmapMode(f types.Filter) uint32 {
	if f == types.FilterLinear {
		return 1
	}
	return 0
}
