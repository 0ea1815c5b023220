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

// accessInfo is one row of the (AccessFlags -> sync2 stage/access/layout)
// translation table the barrier builder (§4.7) looks every access up in.
type accessInfo struct {
	stage  vk.PipelineStageFlags2
	access vk.AccessFlags2
	layout vk.ImageLayout
}

// accessTable maps every single-bit AccessFlags value this core emits to
// its synchronization2 equivalent. Composite access sets (e.g. a resource
// read by both the vertex and fragment stage in the same pass) OR the
// rows together; ImageLayoutUndefined rows are buffer-only accesses and
// never contribute a layout.
var accessTable = map[types.AccessFlags]accessInfo{
	types.AccessIndirectBuffer: {vk.PipelineStageDrawIndirect2, vk.AccessIndirectCommandRead2, vk.ImageLayoutUndefined},
	types.AccessIndexBuffer:    {vk.PipelineStageVertexInput2, vk.AccessIndexRead2, vk.ImageLayoutUndefined},
	types.AccessVertexBuffer:   {vk.PipelineStageVertexInput2, vk.AccessVertexAttributeRead2, vk.ImageLayoutUndefined},
	types.AccessSRVGraphics:    {vk.PipelineStageVertexShader2 | vk.PipelineStageFragmentShader2, vk.AccessShaderRead2, vk.ImageLayoutShaderReadOnlyOptimal},
	types.AccessSRVCompute:     {vk.PipelineStageComputeShader2, vk.AccessShaderRead2, vk.ImageLayoutShaderReadOnlyOptimal},
	types.AccessTransferRead:   {vk.PipelineStageTransfer2, vk.AccessTransferRead2, vk.ImageLayoutTransferSrcOptimal},
	types.AccessHostRead:       {vk.PipelineStageHost2, vk.AccessHostRead2, vk.ImageLayoutGeneral},
	types.AccessColorAttachmentRead:         {vk.PipelineStageColorAttachmentOutput2, vk.AccessColorAttachmentRead2, vk.ImageLayoutColorAttachmentOptimal},
	types.AccessDepthStencilAttachmentRead:  {vk.PipelineStageEarlyFragmentTests2 | vk.PipelineStageLateFragmentTests2, vk.AccessDepthStencilAttachmentRead2, vk.ImageLayoutDepthStencilReadOnlyOptimal},
	types.AccessPresent:                     {vk.PipelineStageBottomOfPipe2, vk.AccessNone2, vk.ImageLayoutPresentSrcKHR},
	types.AccessUAVGraphics:                 {vk.PipelineStageVertexShader2 | vk.PipelineStageFragmentShader2, vk.AccessShaderWrite2, vk.ImageLayoutGeneral},
	types.AccessUAVCompute:                  {vk.PipelineStageComputeShader2, vk.AccessShaderWrite2, vk.ImageLayoutGeneral},
	types.AccessTransferWrite:                {vk.PipelineStageTransfer2, vk.AccessTransferWrite2, vk.ImageLayoutTransferDstOptimal},
	types.AccessHostWrite:                    {vk.PipelineStageHost2, vk.AccessHostWrite2, vk.ImageLayoutGeneral},
	types.AccessColorAttachmentWrite:         {vk.PipelineStageColorAttachmentOutput2, vk.AccessColorAttachmentWrite2, vk.ImageLayoutColorAttachmentOptimal},
	types.AccessDepthStencilAttachmentWrite:  {vk.PipelineStageEarlyFragmentTests2 | vk.PipelineStageLateFragmentTests2, vk.AccessDepthStencilAttachmentWrite2, vk.ImageLayoutDepthStencilAttachmentOptimal},
}

// resolveAccess ORs together every single-bit row set in flags, returning
// the union stage/access mask and the image layout of the single bit that
// won (the last dominant write/read bit found, scanned low to high —
// callers combining multiple image-aspect accesses in one barrier should
// not mix incompatible layouts in the same AccessFlags value).
func resolveAccess(flags types.AccessFlags) accessInfo {
	var out accessInfo
	for bit := types.AccessFlags(1); bit != 0; bit <<= 1 {
		info, ok := accessTable[bit]
		if !ok || flags&bit == 0 {
			continue
		}
		out.stage |= info.stage
		out.access |= info.access
		if info.layout != vk.ImageLayoutUndefined {
			out.layout = info.layout
		}
	}
	return out
}

// BufferBarrier describes a buffer's access transition across a command
// boundary; the frame graph (§4.9.5) and manual encoder.Barrier both
// build these.
//
// SrcQueueFamily and DstQueueFamily are nil for an ordinary same-queue
// barrier. A queue-family ownership transfer sets both on a matching
// release/acquire pair: Release marks the half recorded on the source
// queue (its own access is real, the far side is none because the
// acquiring queue establishes its own dependency once the scheduler's
// timeline semaphore admits it to proceed); the acquire half (Release
// false) is the mirror, recorded on the destination queue.
type BufferBarrier struct {
	Buffer vk.Buffer
	Offset uint64
	Size   uint64
	Prev   types.AccessFlags
	Next   types.AccessFlags

	SrcQueueFamily *uint32
	DstQueueFamily *uint32
	Release        bool
}

// ImageBarrier describes an image's access and layout transition. See
// BufferBarrier's doc comment for SrcQueueFamily/DstQueueFamily/Release.
type ImageBarrier struct {
	Image      vk.Image
	Aspect     types.FormatAspect
	MipCount   uint32
	ArrayCount uint32
	Prev       types.AccessFlags
	Next       types.AccessFlags

	SrcQueueFamily *uint32
	DstQueueFamily *uint32
	Release        bool
}

// buildDependencyInfo translates a batch of barriers into a single
// VkDependencyInfo, using sync2 throughout (no render-pass objects and no
// old-style VkImageMemoryBarrier anywhere in this core).
func buildDependencyInfo(buffers []BufferBarrier, images []ImageBarrier) (vk.DependencyInfo, []vk.BufferMemoryBarrier2, []vk.ImageMemoryBarrier2) {
	bufBarriers := make([]vk.BufferMemoryBarrier2, len(buffers))
	for i, b := range buffers {
		prev := resolveAccess(b.Prev)
		next := resolveAccess(b.Next)
		srcStage, srcAccess := prev.stage, prev.access
		dstStage, dstAccess := next.stage, next.access
		srcFamily, dstFamily := vkQueueFamilyIgnored, vkQueueFamilyIgnored
		if b.SrcQueueFamily != nil && b.DstQueueFamily != nil {
			srcFamily, dstFamily = *b.SrcQueueFamily, *b.DstQueueFamily
			if b.Release {
				dstStage, dstAccess = 0, 0
			} else {
				srcStage, srcAccess = 0, 0
			}
		}
		bufBarriers[i] = vk.BufferMemoryBarrier2{
			SType:               vk.StructureTypeBufferMemoryBarrier2,
			SrcStageMask:        srcStage,
			SrcAccessMask:       srcAccess,
			DstStageMask:        dstStage,
			DstAccessMask:       dstAccess,
			SrcQueueFamilyIndex: srcFamily,
			DstQueueFamilyIndex: dstFamily,
			Buffer:              b.Buffer,
			Offset:              b.Offset,
			Size:                b.Size,
		}
	}

	imgBarriers := make([]vk.ImageMemoryBarrier2, len(images))
	for i, im := range images {
		prev := resolveAccess(im.Prev)
		next := resolveAccess(im.Next)
		oldLayout := prev.layout
		if im.Prev == types.AccessNone {
			oldLayout = vk.ImageLayoutUndefined
		}
		srcStage, srcAccess := prev.stage, prev.access
		dstStage, dstAccess := next.stage, next.access
		srcFamily, dstFamily := vkQueueFamilyIgnored, vkQueueFamilyIgnored
		if im.SrcQueueFamily != nil && im.DstQueueFamily != nil {
			srcFamily, dstFamily = *im.SrcQueueFamily, *im.DstQueueFamily
			if im.Release {
				dstStage, dstAccess = 0, 0
			} else {
				srcStage, srcAccess = 0, 0
			}
		}
		imgBarriers[i] = vk.ImageMemoryBarrier2{
			SType:               vk.StructureTypeImageMemoryBarrier2,
			SrcStageMask:        srcStage,
			SrcAccessMask:       srcAccess,
			DstStageMask:        dstStage,
			DstAccessMask:       dstAccess,
			OldLayout:           oldLayout,
			NewLayout:           next.layout,
			SrcQueueFamilyIndex: srcFamily,
			DstQueueFamilyIndex: dstFamily,
			Image:               im.Image,
			SubresourceRange: vk.ImageSubresourceRange{
				AspectMask:     vkImageAspect(im.Aspect),
				BaseMipLevel:   0,
				LevelCount:     im.MipCount,
				BaseArrayLayer: 0,
				LayerCount:     im.ArrayCount,
			},
		}
	}

	info := vk.DependencyInfo{
		SType:                    vk.StructureTypeDependencyInfo,
		BufferMemoryBarrierCount: uint32(len(bufBarriers)),
		ImageMemoryBarrierCount:  uint32(len(imgBarriers)),
	}
	if len(bufBarriers) > 0 {
		info.PBufferMemoryBarriers = unsafe.Pointer(&bufBarriers[0])
	}
	if len(imgBarriers) > 0 {
		info.PImageMemoryBarriers = unsafe.Pointer(&imgBarriers[0])
	}
	return info, bufBarriers, imgBarriers
}

// buildGlobalDependencyInfo translates a resource-less global barrier
// (encoder.GlobalBarrier) into a single-element VkMemoryBarrier2
// dependency info.
func buildGlobalDependencyInfo(prev, next types.AccessFlags) (vk.DependencyInfo, []vk.MemoryBarrier2) {
	prevInfo := resolveAccess(prev)
	nextInfo := resolveAccess(next)
	barriers := []vk.MemoryBarrier2{{
		SType:         vk.StructureTypeMemoryBarrier2,
		SrcStageMask:  prevInfo.stage,
		SrcAccessMask: prevInfo.access,
		DstStageMask:  nextInfo.stage,
		DstAccessMask: nextInfo.access,
	}}
	info := vk.DependencyInfo{
		SType:              vk.StructureTypeDependencyInfo,
		MemoryBarrierCount: 1,
		PMemoryBarriers:    unsafe.Pointer(&barriers[0]),
	}
	return info, barriers
}

// TextureBarrier resolves h against d's texture table and appends a
// single image barrier transitioning its whole subresource range from
// prev to next. This is the handle-only barrier entry point packages
// outside rhi use (the frame graph's barrier-placement step, §4.9.5) —
// they never see a vk.Image, only the resource handles §6 already
// hands them.
func (e *Encoder) TextureBarrier(d *Device, h types.Handle, prev, next types.AccessFlags) error {
	tex, err := handle.With(d.textures, h, func(r *textureResource) textureResource { return *r })
	if err != nil {
		return fmt.Errorf("rhi: texture barrier: %w", err)
	}
	e.TextureBarriers([]ImageBarrier{{
		Image:      tex.img,
		Aspect:     tex.format.Aspect(),
		MipCount:   tex.mips,
		ArrayCount: 1,
		Prev:       prev,
		Next:       next,
	}})
	return nil
}

// BufferBarrier resolves h against d's buffer table and appends a single
// whole-buffer barrier transitioning it from prev to next.
func (e *Encoder) BufferBarrier(d *Device, h types.Handle, prev, next types.AccessFlags) error {
	buf, err := handle.With(d.buffers, h, func(r *bufferResource) bufferResource { return *r })
	if err != nil {
		return fmt.Errorf("rhi: buffer barrier: %w", err)
	}
	e.BufferBarriers([]BufferBarrier{{
		Buffer: buf.buf,
		Offset: 0,
		Size:   buf.size,
		Prev:   prev,
		Next:   next,
	}})
	return nil
}

// TextureBarrierRelease appends the release half of a queue-family
// ownership transfer (§4.9.5) for texture h, recorded on the queue that
// currently owns it: the only side with a real stage/access mask is the
// source (prev); the acquiring queue's TextureBarrierAcquire call
// establishes the destination side once the scheduler's timeline
// semaphore admits it to proceed. srcFamily/dstFamily come from
// Device.QueueFamilyIndex for the releasing and acquiring queues.
func (e *Encoder) TextureBarrierRelease(d *Device, h types.Handle, prev, next types.AccessFlags, srcFamily, dstFamily uint32) error {
	return e.textureQueueTransfer(d, h, prev, next, srcFamily, dstFamily, true)
}

// TextureBarrierAcquire appends the acquire half of a queue-family
// ownership transfer for texture h, recorded on the queue taking
// ownership. The layout does not change again here — it was already
// transitioned to next by the matching TextureBarrierRelease — only the
// destination queue's access/stage becomes real.
func (e *Encoder) TextureBarrierAcquire(d *Device, h types.Handle, next types.AccessFlags, srcFamily, dstFamily uint32) error {
	return e.textureQueueTransfer(d, h, next, next, srcFamily, dstFamily, false)
}

func (e *Encoder) textureQueueTransfer(d *Device, h types.Handle, prev, next types.AccessFlags, srcFamily, dstFamily uint32, release bool) error {
	tex, err := handle.With(d.textures, h, func(r *textureResource) textureResource { return *r })
	if err != nil {
		return fmt.Errorf("rhi: texture queue transfer: %w", err)
	}
	e.TextureBarriers([]ImageBarrier{{
		Image:          tex.img,
		Aspect:         tex.format.Aspect(),
		MipCount:       tex.mips,
		ArrayCount:     1,
		Prev:           prev,
		Next:           next,
		SrcQueueFamily: &srcFamily,
		DstQueueFamily: &dstFamily,
		Release:        release,
	}})
	return nil
}

// BufferBarrierRelease appends the release half of a queue-family
// ownership transfer for buffer h. See TextureBarrierRelease.
func (e *Encoder) BufferBarrierRelease(d *Device, h types.Handle, prev, next types.AccessFlags, srcFamily, dstFamily uint32) error {
	return e.bufferQueueTransfer(d, h, prev, next, srcFamily, dstFamily, true)
}

// BufferBarrierAcquire appends the acquire half of a queue-family
// ownership transfer for buffer h. See TextureBarrierAcquire.
func (e *Encoder) BufferBarrierAcquire(d *Device, h types.Handle, next types.AccessFlags, srcFamily, dstFamily uint32) error {
	return e.bufferQueueTransfer(d, h, next, next, srcFamily, dstFamily, false)
}

func (e *Encoder) bufferQueueTransfer(d *Device, h types.Handle, prev, next types.AccessFlags, srcFamily, dstFamily uint32, release bool) error {
	buf, err := handle.With(d.buffers, h, func(r *bufferResource) bufferResource { return *r })
	if err != nil {
		return fmt.Errorf("rhi: buffer queue transfer: %w", err)
	}
	e.BufferBarriers([]BufferBarrier{{
		Buffer:         buf.buf,
		Offset:         0,
		Size:           buf.size,
		Prev:           prev,
		Next:           next,
		SrcQueueFamily: &srcFamily,
		DstQueueFamily: &dstFamily,
		Release:        release,
	}})
	return nil
}

// vkQueueFamilyIgnored mirrors VK_QUEUE_FAMILY_IGNORED, the sentinel an
// ordinary same-queue barrier uses in both queue-family-index fields.
// Queue-family ownership transfers (§4.9.5) instead carry real indices
// via ImageBarrier/BufferBarrier's SrcQueueFamily/DstQueueFamily.
const vkQueueFamilyIgnored = ^uint32(0)
