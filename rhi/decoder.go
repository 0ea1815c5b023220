// Copyright 2025 The Tundraforge Authors
// SPDX-License-Identifier: MIT

package rhi

import (
	"fmt"
	"unsafe"

	"github.com/tundraforge/rhi/handle"
	"github.com/tundraforge/rhi/internal/vk"
	"github.com/tundraforge/rhi/tracker"
	"github.com/tundraforge/rhi/types"
)

// decodeCache holds per-command-buffer state the decoder uses to elide
// redundant rebinds (§4.6): the currently bound graphics/compute
// pipeline and the currently bound index buffer.
type decodeCache struct {
	graphicsPipeline types.Handle
	computePipeline  types.Handle
	indexBuffer      types.Handle
	indexOffset      uint64
}

// decode replays stream against cb, issuing the equivalent driver calls
// and stamping refs.AddReference for every resource touched — the
// invariant that no GPU call takes a resource the current thread's
// reference set doesn't keep alive (§4.6).
//
// At the start of the command buffer the decoder binds the single
// bindless descriptor set for both the graphics and the compute bind
// points, so every pipeline can assume it is already bound.
func (d *Device) decode(cb vk.CommandBuffer, stream *commandStream, refs *tracker.ReferenceSet) error {
	cache := decodeCache{}

	for _, node := range stream.nodes {
		switch node.kind {
		case cmdBeginCommandBuffer:
			beginInfo := vk.CommandBufferBeginInfo{SType: vk.StructureTypeCommandBufferBeginInfo}
			if res := d.commands.BeginCommandBuffer(cb, unsafe.Pointer(&beginInfo)); res != vk.Success {
				return fmt.Errorf("rhi: vkBeginCommandBuffer returned %s", res)
			}
			set := d.descs.set
			d.commands.CmdBindDescriptorSets(cb, uint32(vk.PipelineBindPointGraphics), d.descs.layout, 0, 1, unsafe.Pointer(&set), 0, nil)
			d.commands.CmdBindDescriptorSets(cb, uint32(vk.PipelineBindPointCompute), d.descs.layout, 0, 1, unsafe.Pointer(&set), 0, nil)

		case cmdEndCommandBuffer:
			if res := d.commands.EndCommandBuffer(cb); res != vk.Success {
				return fmt.Errorf("rhi: vkEndCommandBuffer returned %s", res)
			}

		case cmdBeginRegion:
			p := node.payload.(cmdBeginRegionPayload)
			if d.config.EnableDebugUtils {
				name := cString(p.Name)
				label := vk.DebugUtilsLabel{SType: vk.StructureTypeDebugUtilsLabel, PLabelName: name, Color: p.Color}
				d.commands.CmdBeginDebugUtilsLabel(cb, unsafe.Pointer(&label))
			}

		case cmdEndRegion:
			if d.config.EnableDebugUtils {
				d.commands.CmdEndDebugUtilsLabel(cb)
			}

		case cmdBeginRendering:
			p := node.payload.(cmdBeginRenderingPayload)
			if err := d.decodeBeginRendering(cb, p.Info, refs); err != nil {
				return err
			}

		case cmdEndRendering:
			d.commands.CmdEndRendering(cb)

		case cmdPushConstants:
			p := node.payload.(cmdPushConstantsPayload)
			d.commands.CmdPushConstants(cb, d.descs.layout, uint32(vk.ShaderStageAllBit), 0, p.Size, unsafe.Pointer(&p.Data[0]))

		case cmdBindGraphicsPipeline:
			p := node.payload.(cmdBindPipelinePayload)
			if cache.graphicsPipeline == p.Pipeline {
				continue
			}
			pipe, err := handle.With(d.graphicsPipes, p.Pipeline, func(r *graphicsPipelineResource) vk.Pipeline { return r.pipeline })
			if err != nil {
				return fmt.Errorf("rhi: bind graphics pipeline: %w", err)
			}
			refs.AddReference(d.tracker, p.Pipeline)
			d.commands.CmdBindPipeline(cb, uint32(vk.PipelineBindPointGraphics), pipe)
			cache.graphicsPipeline = p.Pipeline

		case cmdBindComputePipeline:
			p := node.payload.(cmdBindPipelinePayload)
			if cache.computePipeline == p.Pipeline {
				continue
			}
			pipe, err := handle.With(d.computePipes, p.Pipeline, func(r *computePipelineResource) vk.Pipeline { return r.pipeline })
			if err != nil {
				return fmt.Errorf("rhi: bind compute pipeline: %w", err)
			}
			refs.AddReference(d.tracker, p.Pipeline)
			d.commands.CmdBindPipeline(cb, uint32(vk.PipelineBindPointCompute), pipe)
			cache.computePipeline = p.Pipeline

		case cmdSetViewport:
			p := node.payload.(cmdSetViewportPayload)
			vp := vk.Viewport{X: p.X, Y: p.Y, Width: p.Width, Height: p.Height, MinDepth: p.MinDepth, MaxDepth: p.MaxDepth}
			d.commands.CmdSetViewport(cb, 0, 1, unsafe.Pointer(&vp))

		case cmdSetScissor:
			p := node.payload.(cmdSetScissorPayload)
			r := vk.Rect2D{Offset: vk.Offset2D{X: p.X, Y: p.Y}, Extent: vk.Extent2D{Width: p.Width, Height: p.Height}}
			d.commands.CmdSetScissor(cb, 0, 1, unsafe.Pointer(&r))

		case cmdSetCullMode:
			// Cull mode is baked into the bound pipeline's fixed-function
			// state (no VK_DYNAMIC_STATE_CULL_MODE dependency taken here);
			// nothing to issue at decode time.

		case cmdBindIndexBuffer:
			p := node.payload.(cmdBindIndexBufferPayload)
			if cache.indexBuffer == p.Buffer && cache.indexOffset == p.Offset {
				continue
			}
			buf, err := handle.With(d.buffers, p.Buffer, func(r *bufferResource) vk.Buffer { return r.buf })
			if err != nil {
				return fmt.Errorf("rhi: bind index buffer: %w", err)
			}
			refs.AddReference(d.tracker, p.Buffer)
			indexType := uint32(vk.IndexTypeUint16)
			if p.Is32Bit {
				indexType = uint32(vk.IndexTypeUint32)
			}
			d.commands.CmdBindIndexBuffer(cb, buf, p.Offset, indexType)
			cache.indexBuffer = p.Buffer
			cache.indexOffset = p.Offset

		case cmdDraw:
			p := node.payload.(cmdDrawPayload)
			d.commands.CmdDraw(cb, p.VertexCount, p.InstanceCount, p.FirstVertex, p.FirstInstance)

		case cmdDrawIndexed:
			p := node.payload.(cmdDrawIndexedPayload)
			d.commands.CmdDrawIndexed(cb, p.IndexCount, p.InstanceCount, p.FirstIndex, p.VertexOffset, p.FirstInstance)

		case cmdDrawIndirect:
			p := node.payload.(cmdDrawIndirectPayload)
			buf, err := handle.With(d.buffers, p.Buffer, func(r *bufferResource) vk.Buffer { return r.buf })
			if err != nil {
				return fmt.Errorf("rhi: draw indirect: %w", err)
			}
			refs.AddReference(d.tracker, p.Buffer)
			if p.Indexed {
				d.commands.CmdDrawIndexedIndirect(cb, buf, p.Offset, p.DrawCount, p.Stride)
			} else {
				d.commands.CmdDrawIndirect(cb, buf, p.Offset, p.DrawCount, p.Stride)
			}

		case cmdDrawIndirectCount:
			p := node.payload.(cmdDrawIndirectPayload)
			buf, err := handle.With(d.buffers, p.Buffer, func(r *bufferResource) vk.Buffer { return r.buf })
			if err != nil {
				return fmt.Errorf("rhi: draw indirect count: %w", err)
			}
			countBuf, err := handle.With(d.buffers, p.CountBuffer, func(r *bufferResource) vk.Buffer { return r.buf })
			if err != nil {
				return fmt.Errorf("rhi: draw indirect count buffer: %w", err)
			}
			refs.AddReference(d.tracker, p.Buffer)
			refs.AddReference(d.tracker, p.CountBuffer)
			if p.Indexed {
				d.commands.CmdDrawIndexedIndirectCount(cb, buf, p.Offset, countBuf, p.CountOffset, p.DrawCount, p.Stride)
			} else {
				d.commands.CmdDrawIndirectCount(cb, buf, p.Offset, countBuf, p.CountOffset, p.DrawCount, p.Stride)
			}

		case cmdDispatch:
			p := node.payload.(cmdDispatchPayload)
			d.commands.CmdDispatch(cb, p.GroupCountX, p.GroupCountY, p.GroupCountZ)

		case cmdDispatchIndirect:
			p := node.payload.(cmdDispatchIndirectPayload)
			buf, err := handle.With(d.buffers, p.Buffer, func(r *bufferResource) vk.Buffer { return r.buf })
			if err != nil {
				return fmt.Errorf("rhi: dispatch indirect: %w", err)
			}
			refs.AddReference(d.tracker, p.Buffer)
			d.commands.CmdDispatchIndirect(cb, buf, p.Offset)

		case cmdCopyBuffer:
			p := node.payload.(cmdCopyBufferPayload)
			if err := d.decodeCopyBuffer(cb, p, refs); err != nil {
				return err
			}

		case cmdCopyTexture:
			p := node.payload.(cmdCopyTexturePayload)
			if err := d.decodeCopyTexture(cb, p, refs); err != nil {
				return err
			}

		case cmdCopyBufferToTexture:
			p := node.payload.(cmdBufferTextureCopyPayload)
			if err := d.decodeCopyBufferToTexture(cb, p, refs); err != nil {
				return err
			}

		case cmdCopyTextureToBuffer:
			p := node.payload.(cmdBufferTextureCopyPayload)
			if err := d.decodeCopyTextureToBuffer(cb, p, refs); err != nil {
				return err
			}

		case cmdGlobalBarrier:
			p := node.payload.(cmdGlobalBarrierPayload)
			dep, _ := buildGlobalDependencyInfo(p.Prev, p.Next)
			d.commands.CmdPipelineBarrier2(cb, unsafe.Pointer(&dep))

		case cmdTextureBarriers:
			p := node.payload.(cmdTextureBarriersPayload)
			dep, _, _ := buildDependencyInfo(nil, p.Barriers)
			d.commands.CmdPipelineBarrier2(cb, unsafe.Pointer(&dep))

		case cmdBufferBarriers:
			p := node.payload.(cmdBufferBarriersPayload)
			dep, _, _ := buildDependencyInfo(p.Barriers, nil)
			d.commands.CmdPipelineBarrier2(cb, unsafe.Pointer(&dep))

		default:
			return fmt.Errorf("rhi: decoder: unknown command kind %d", node.kind)
		}
	}
	return nil
}

func (d *Device) decodeBeginRendering(cb vk.CommandBuffer, info RenderingInfo, refs *tracker.ReferenceSet) error {
	colors := make([]vk.RenderingAttachmentInfo, len(info.ColorAttachments))
	for i, a := range info.ColorAttachments {
		view, err := handle.With(d.textureViews, a.View, func(r *textureViewResource) vk.ImageView { return r.view })
		if err != nil {
			return fmt.Errorf("rhi: begin rendering color attachment: %w", err)
		}
		refs.AddReference(d.tracker, a.View)
		colors[i] = vk.RenderingAttachmentInfo{
			SType:       vk.StructureTypeRenderingAttachmentInfo,
			ImageView:   view,
			ImageLayout: vk.ImageLayoutColorAttachmentOptimal,
			LoadOp:      uint32(a.LoadOp),
			StoreOp:     uint32(a.StoreOp),
			ClearValue:  a.ClearColor,
		}
	}

	ri := vk.RenderingInfo{
		SType:  vk.StructureTypeRenderingInfo,
		LayerCount: 1,
		RenderArea: struct {
			Offset vk.Offset2D
			Extent vk.Extent2D
		}{Extent: vk.Extent2D{Width: info.Extent.Width, Height: info.Extent.Height}},
	}
	if len(colors) > 0 {
		ri.ColorAttachmentCount = uint32(len(colors))
		ri.PColorAttachments = unsafe.Pointer(&colors[0])
	}

	var depth vk.RenderingAttachmentInfo
	if info.DepthStencil != nil {
		view, err := handle.With(d.textureViews, info.DepthStencil.View, func(r *textureViewResource) vk.ImageView { return r.view })
		if err != nil {
			return fmt.Errorf("rhi: begin rendering depth attachment: %w", err)
		}
		refs.AddReference(d.tracker, info.DepthStencil.View)
		depth = vk.RenderingAttachmentInfo{
			SType:       vk.StructureTypeRenderingAttachmentInfo,
			ImageView:   view,
			ImageLayout: vk.ImageLayoutDepthStencilAttachmentOptimal,
			LoadOp:      uint32(info.DepthStencil.DepthLoadOp),
			StoreOp:     uint32(info.DepthStencil.DepthStoreOp),
			ClearValue:  [4]float32{info.DepthStencil.ClearDepth, float32(info.DepthStencil.ClearStencil), 0, 0},
		}
		ri.PDepthAttachment = unsafe.Pointer(&depth)
	}

	d.commands.CmdBeginRendering(cb, unsafe.Pointer(&ri))
	return nil
}

func (d *Device) decodeCopyBuffer(cb vk.CommandBuffer, p cmdCopyBufferPayload, refs *tracker.ReferenceSet) error {
	src, err := handle.With(d.buffers, p.Src, func(r *bufferResource) vk.Buffer { return r.buf })
	if err != nil {
		return fmt.Errorf("rhi: copy buffer src: %w", err)
	}
	dst, err := handle.With(d.buffers, p.Dst, func(r *bufferResource) vk.Buffer { return r.buf })
	if err != nil {
		return fmt.Errorf("rhi: copy buffer dst: %w", err)
	}
	refs.AddReference(d.tracker, p.Src)
	refs.AddReference(d.tracker, p.Dst)
	region := vk.BufferCopy{SrcOffset: p.SrcOffset, DstOffset: p.DstOffset, Size: p.Size}
	d.commands.CmdCopyBuffer(cb, src, dst, 1, unsafe.Pointer(&region))
	return nil
}

func (d *Device) decodeCopyTexture(cb vk.CommandBuffer, p cmdCopyTexturePayload, refs *tracker.ReferenceSet) error {
	src, err := handle.With(d.textures, p.Src, func(r *textureResource) vk.Image { return r.img })
	if err != nil {
		return fmt.Errorf("rhi: copy texture src: %w", err)
	}
	dst, err := handle.With(d.textures, p.Dst, func(r *textureResource) vk.Image { return r.img })
	if err != nil {
		return fmt.Errorf("rhi: copy texture dst: %w", err)
	}
	refs.AddReference(d.tracker, p.Src)
	refs.AddReference(d.tracker, p.Dst)
	region := vk.ImageCopy{
		SrcSubresource: subresourceLayers(p.SrcSubresource),
		SrcOffset:      p.SrcOffset,
		DstSubresource: subresourceLayers(p.DstSubresource),
		DstOffset:      p.DstOffset,
		Extent:         p.Extent,
	}
	d.commands.CmdCopyImage(cb, src, uint32(vk.ImageLayoutTransferSrcOptimal), dst, uint32(vk.ImageLayoutTransferDstOptimal), 1, unsafe.Pointer(&region))
	return nil
}

func (d *Device) decodeCopyBufferToTexture(cb vk.CommandBuffer, p cmdBufferTextureCopyPayload, refs *tracker.ReferenceSet) error {
	buf, err := handle.With(d.buffers, p.Buffer, func(r *bufferResource) vk.Buffer { return r.buf })
	if err != nil {
		return fmt.Errorf("rhi: copy buffer to texture src: %w", err)
	}
	tex, err := handle.With(d.textures, p.Texture, func(r *textureResource) vk.Image { return r.img })
	if err != nil {
		return fmt.Errorf("rhi: copy buffer to texture dst: %w", err)
	}
	refs.AddReference(d.tracker, p.Buffer)
	refs.AddReference(d.tracker, p.Texture)
	region := vk.BufferImageCopy{
		BufferOffset:     p.BufferOffset,
		ImageSubresource: subresourceLayers(p.Subresource),
		ImageOffset:      p.Offset,
		ImageExtent:      p.Extent,
	}
	d.commands.CmdCopyBufferToImage(cb, buf, tex, uint32(vk.ImageLayoutTransferDstOptimal), 1, unsafe.Pointer(&region))
	return nil
}

func (d *Device) decodeCopyTextureToBuffer(cb vk.CommandBuffer, p cmdBufferTextureCopyPayload, refs *tracker.ReferenceSet) error {
	tex, err := handle.With(d.textures, p.Texture, func(r *textureResource) vk.Image { return r.img })
	if err != nil {
		return fmt.Errorf("rhi: copy texture to buffer src: %w", err)
	}
	buf, err := handle.With(d.buffers, p.Buffer, func(r *bufferResource) vk.Buffer { return r.buf })
	if err != nil {
		return fmt.Errorf("rhi: copy texture to buffer dst: %w", err)
	}
	refs.AddReference(d.tracker, p.Texture)
	refs.AddReference(d.tracker, p.Buffer)
	region := vk.BufferImageCopy{
		BufferOffset:     p.BufferOffset,
		ImageSubresource: subresourceLayers(p.Subresource),
		ImageOffset:      p.Offset,
		ImageExtent:      p.Extent,
	}
	d.commands.CmdCopyImageToBuffer(cb, tex, uint32(vk.ImageLayoutTransferSrcOptimal), buf, 1, unsafe.Pointer(&region))
	return nil
}

func subresourceLayers(s types.Subresource) vk.ImageSubresourceLayers {
	layerCount := s.LayerCount
	if layerCount == 0 {
		layerCount = 1
	}
	return vk.ImageSubresourceLayers{
		AspectMask:     vkImageAspect(s.Aspect),
		MipLevel:       s.BaseMipLevel,
		BaseArrayLayer: s.BaseArrayLayer,
		LayerCount:     layerCount,
	}
}
