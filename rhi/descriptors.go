// Copyright 2025 The Tundraforge Authors
// SPDX-License-Identifier: MIT

package rhi

import (
	"fmt"
	"unsafe"

	"github.com/tundraforge/rhi/internal/vk"
)

// bindlessSetBindings is the fixed four-binding layout every pipeline in
// this RHI shares: one unbounded array per bindless descriptor kind
// (§4.3). Shaders index into these with the slot values handed out by the
// bindless manager, delivered through push constants rather than
// per-draw descriptor-set rebinding.
const (
	bindlessBufferBinding       = 0
	bindlessSampledImageBinding = 1
	bindlessStorageImageBinding = 2
	bindlessSamplerBinding      = 3
)

// pushConstantBytes bounds the push-constant block every pipeline layout
// declares: enough room for a handful of bindless slot indices and small
// per-draw scalars (§6).
const pushConstantBytes = 128

// bindlessLayout owns the single descriptor set layout, pool, set, and
// pipeline layout shared by every pipeline this device creates.
type bindlessLayout struct {
	setLayout vk.DescriptorSetLayout
	pool      vk.DescriptorPool
	set       vk.DescriptorSet
	layout    vk.PipelineLayout
}

func createBindlessLayout(commands *vk.Commands, device vk.Device, maxPerKind uint32) (*bindlessLayout, error) {
	bindings := [4]vk.DescriptorSetLayoutBinding{
		{Binding: bindlessBufferBinding, DescriptorType: vk.DescriptorTypeStorageBuffer, DescriptorCount: maxPerKind, StageFlags: vk.ShaderStageAllBit},
		{Binding: bindlessSampledImageBinding, DescriptorType: vk.DescriptorTypeSampledImage, DescriptorCount: maxPerKind, StageFlags: vk.ShaderStageAllBit},
		{Binding: bindlessStorageImageBinding, DescriptorType: vk.DescriptorTypeStorageImage, DescriptorCount: maxPerKind, StageFlags: vk.ShaderStageAllBit},
		{Binding: bindlessSamplerBinding, DescriptorType: vk.DescriptorTypeSampler, DescriptorCount: maxPerKind, StageFlags: vk.ShaderStageAllBit},
	}

	const updateAfterBindPartiallyBound = uint32(vk.DescriptorBindingUpdateAfterBindBit | vk.DescriptorBindingPartiallyBoundBit)
	bindingFlags := [4]uint32{updateAfterBindPartiallyBound, updateAfterBindPartiallyBound, updateAfterBindPartiallyBound, updateAfterBindPartiallyBound}
	flagsInfo := vk.DescriptorSetLayoutBindingFlagsCreateInfo{
		SType:         vk.StructureTypeDescriptorSetLayoutBindingFlagsCreateInfo,
		BindingCount:  4,
		PBindingFlags: unsafe.Pointer(&bindingFlags[0]),
	}

	setLayoutInfo := vk.DescriptorSetLayoutCreateInfo{
		SType:        vk.StructureTypeDescriptorSetLayoutCreateInfo,
		PNext:        unsafe.Pointer(&flagsInfo),
		Flags:        0x2, // VK_DESCRIPTOR_SET_LAYOUT_CREATE_UPDATE_AFTER_BIND_POOL_BIT
		BindingCount: 4,
		PBindings:    unsafe.Pointer(&bindings[0]),
	}

	var setLayout vk.DescriptorSetLayout
	if res := commands.CreateDescriptorSetLayout(device, unsafe.Pointer(&setLayoutInfo), &setLayout); res != vk.Success {
		return nil, fmt.Errorf("rhi: vkCreateDescriptorSetLayout returned %s", res)
	}

	poolSizes := [4]vk.DescriptorPoolSize{
		{Type: vk.DescriptorTypeStorageBuffer, DescriptorCount: maxPerKind},
		{Type: vk.DescriptorTypeSampledImage, DescriptorCount: maxPerKind},
		{Type: vk.DescriptorTypeStorageImage, DescriptorCount: maxPerKind},
		{Type: vk.DescriptorTypeSampler, DescriptorCount: maxPerKind},
	}
	poolInfo := vk.DescriptorPoolCreateInfo{
		SType:         vk.StructureTypeDescriptorPoolCreateInfo,
		Flags:         vk.DescriptorPoolCreateUpdateAfterBindBit,
		MaxSets:       1,
		PoolSizeCount: 4,
		PPoolSizes:    unsafe.Pointer(&poolSizes[0]),
	}
	var pool vk.DescriptorPool
	if res := commands.CreateDescriptorPool(device, unsafe.Pointer(&poolInfo), &pool); res != vk.Success {
		commands.DestroyDescriptorSetLayout(device, setLayout)
		return nil, fmt.Errorf("rhi: vkCreateDescriptorPool returned %s", res)
	}

	allocInfo := vk.DescriptorSetAllocateInfo{
		SType:              vk.StructureTypeDescriptorSetAllocateInfo,
		DescriptorPool:     pool,
		DescriptorSetCount: 1,
		PSetLayouts:        unsafe.Pointer(&setLayout),
	}
	var set vk.DescriptorSet
	if res := commands.AllocateDescriptorSets(device, unsafe.Pointer(&allocInfo), unsafe.Pointer(&set)); res != vk.Success {
		commands.DestroyDescriptorPool(device, pool)
		commands.DestroyDescriptorSetLayout(device, setLayout)
		return nil, fmt.Errorf("rhi: vkAllocateDescriptorSets returned %s", res)
	}

	pushRange := vk.PushConstantRange{StageFlags: vk.ShaderStageAllBit, Offset: 0, Size: pushConstantBytes}
	layoutInfo := vk.PipelineLayoutCreateInfo{
		SType:                  vk.StructureTypePipelineLayoutCreateInfo,
		SetLayoutCount:         1,
		PSetLayouts:            unsafe.Pointer(&setLayout),
		PushConstantRangeCount: 1,
		PPushConstantRanges:    unsafe.Pointer(&pushRange),
	}
	var layout vk.PipelineLayout
	if res := commands.CreatePipelineLayout(device, unsafe.Pointer(&layoutInfo), &layout); res != vk.Success {
		commands.DestroyDescriptorPool(device, pool)
		commands.DestroyDescriptorSetLayout(device, setLayout)
		return nil, fmt.Errorf("rhi: vkCreatePipelineLayout returned %s", res)
	}

	return &bindlessLayout{setLayout: setLayout, pool: pool, set: set, layout: layout}, nil
}

func (b *bindlessLayout) destroy(commands *vk.Commands, device vk.Device) {
	commands.DestroyPipelineLayout(device, b.layout)
	commands.DestroyDescriptorPool(device, b.pool)
	commands.DestroyDescriptorSetLayout(device, b.setLayout)
}
