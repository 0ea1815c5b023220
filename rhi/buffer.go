// Copyright 2025 The Tundraforge Authors
// SPDX-License-Identifier: MIT

package rhi

import (
	"fmt"
	"unsafe"

	"github.com/tundraforge/rhi/handle"
	"github.com/tundraforge/rhi/internal/vk"
	"github.com/tundraforge/rhi/memory"
	"github.com/tundraforge/rhi/types"
)

// bufferResource is the payload stored in the device's buffer handle
// table: everything CreateBuffer needs to remember to satisfy a later
// UpdateBuffer, bindless descriptor write, or Destroy.
type bufferResource struct {
	buf     vk.Buffer
	alloc   *memory.Allocation
	size    uint64
	usage   types.BufferUsage
	binding types.BindableHandle
	name    string
}

// CreateBuffer allocates a VkBuffer plus backing memory, binds them
// together, and — when the requested usage includes SRV/UAV — reserves a
// bindless descriptor slot. The returned handle is registered with the
// device's resource tracker at refcount 1; Destroy drops that reference.
func (d *Device) CreateBuffer(info types.BufferCreateInfo) (types.Handle, error) {
	if info.Size == 0 {
		return types.Handle(0), fmt.Errorf("rhi: buffer size must be non-zero")
	}

	ci := vk.BufferCreateInfo{
		SType: vk.StructureTypeBufferCreateInfo,
		Size:  info.Size,
		Usage: vkBufferUsage(info.Usage),
	}

	var buf vk.Buffer
	if res := d.commands.CreateBuffer(d.handle, unsafe.Pointer(&ci), &buf); res != vk.Success {
		return types.Handle(0), fmt.Errorf("%w: vkCreateBuffer returned %s", ErrOutOfMemory, res)
	}

	var reqs vk.MemoryRequirements
	d.commands.GetBufferMemoryRequirements(d.handle, buf, &reqs)

	alloc, err := d.allocator.Alloc(reqs, info.MemoryType)
	if err != nil {
		d.commands.DestroyBuffer(d.handle, buf)
		return types.Handle(0), fmt.Errorf("rhi: allocating buffer memory: %w", err)
	}

	if res := d.commands.BindBufferMemory(d.handle, buf, alloc.Memory, alloc.Offset); res != vk.Success {
		d.allocator.Free(alloc)
		d.commands.DestroyBuffer(d.handle, buf)
		return types.Handle(0), fmt.Errorf("%w: vkBindBufferMemory returned %s", ErrOutOfMemory, res)
	}

	var binding types.BindableHandle
	if info.Usage&(types.BufferUsageSRV|types.BufferUsageUAV) != 0 {
		binding, err = d.bindless.AllocateBuffer()
		if err != nil {
			d.allocator.Free(alloc)
			d.commands.DestroyBuffer(d.handle, buf)
			return types.Handle(0), fmt.Errorf("rhi: allocating bindless slot: %w", err)
		}
	} else {
		binding = types.BindableHandle{SRVSlot: types.SlotSentinel, UAVSlot: types.SlotSentinel}
	}

	res := bufferResource{buf: buf, alloc: alloc, size: info.Size, usage: info.Usage, binding: binding, name: info.Name}
	h := d.buffers.Add(res)

	d.tracker.AddResource(h, func() {
		if binding.SRVSlot != types.SlotSentinel {
			d.bindless.FreeBuffer(binding)
		}
		d.commands.DestroyBuffer(d.handle, buf)
		d.allocator.Free(alloc)
	})

	if info.Usage&(types.BufferUsageSRV|types.BufferUsageUAV) != 0 {
		d.writeBufferDescriptor(&res)
	}

	d.setDebugName(vk.ObjectTypeBuffer, uint64(buf), info.Name)
	Logger().Debug("buffer created", "handle", h, "size", info.Size, "name", info.Name)
	return h, nil
}

// DestroyBuffer drops the device's reference to h. The underlying VkBuffer
// and its memory are only torn down once every in-flight command buffer
// that referenced it has retired (§4.2).
func (d *Device) DestroyBuffer(h types.Handle) error {
	if !d.buffers.IsValid(h) {
		return ErrInvalidHandle
	}
	d.buffers.Destroy(h)
	d.tracker.RemoveReference(h)
	return nil
}

// UpdateBuffer writes region.SrcBytes into an upload/dynamic buffer's
// mapped memory at region.DstOffset. The buffer must have been created
// with a host-visible MemoryType (Upload or Dynamic); device-local
// buffers must instead be updated through a transfer-queue copy recorded
// by an encoder.
func (d *Device) UpdateBuffer(h types.Handle, region types.BufferUpdateRegion) error {
	updateErr, lookupErr := handle.With(d.buffers, h, func(res *bufferResource) error {
		if region.DstOffset+uint64(len(region.SrcBytes)) > res.size {
			return fmt.Errorf("rhi: update region [%d,%d) exceeds buffer size %d", region.DstOffset, region.DstOffset+uint64(len(region.SrcBytes)), res.size)
		}

		var mapped unsafe.Pointer
		if r := d.commands.MapMemory(d.handle, res.alloc.Memory, res.alloc.Offset+region.DstOffset, uint64(len(region.SrcBytes)), &mapped); r != vk.Success {
			return fmt.Errorf("%w: vkMapMemory returned %s", ErrOutOfMemory, r)
		}
		defer d.commands.UnmapMemory(d.handle, res.alloc.Memory)

		dst := unsafe.Slice((*byte)(mapped), len(region.SrcBytes))
		copy(dst, region.SrcBytes)
		return nil
	})
	if lookupErr != nil {
		return lookupErr
	}
	return updateErr
}

// writeBufferDescriptor publishes a freshly created buffer's storage-
// buffer binding into the shared bindless descriptor set at the slot the
// bindless manager just reserved for it.
func (d *Device) writeBufferDescriptor(res *bufferResource) {
	bufInfo := vk.DescriptorBufferInfo{Buffer: res.buf, Offset: 0, Range: res.size}
	write := vk.WriteDescriptorSet{
		SType:           vk.StructureTypeWriteDescriptorSet,
		DstSet:          d.descs.set,
		DstBinding:      bindlessBufferBinding,
		DstArrayElement: res.binding.SRVSlot,
		DescriptorCount: 1,
		DescriptorType:  vk.DescriptorTypeStorageBuffer,
		PBufferInfo:     unsafe.Pointer(&bufInfo),
	}
	d.commands.UpdateDescriptorSets(d.handle, 1, unsafe.Pointer(&write), 0, nil)
}
