// Copyright 2025 The Tundraforge Authors
// SPDX-License-Identifier: MIT

package rhi

import "github.com/tundraforge/rhi/types"

// LoadOp selects what a rendering attachment does with its previous
// contents at the start of a render pass.
type LoadOp uint8

const (
	LoadOpLoad LoadOp = iota
	LoadOpClear
	LoadOpDontCare
)

// StoreOp selects what a rendering attachment does with its contents at
// the end of a render pass.
type StoreOp uint8

const (
	StoreOpStore StoreOp = iota
	StoreOpDontCare
)

// ColorAttachment describes one color target of a BeginRendering call.
type ColorAttachment struct {
	View       types.Handle
	Resolve    types.Handle // null if no MSAA resolve is requested
	LoadOp     LoadOp
	StoreOp    StoreOp
	ClearColor [4]float32
}

// DepthStencilAttachment describes the depth/stencil target of a
// BeginRendering call.
type DepthStencilAttachment struct {
	View         types.Handle
	DepthLoadOp  LoadOp
	DepthStoreOp StoreOp
	ClearDepth   float32
	ClearStencil uint32
}

// RenderingInfo is the argument to BeginRendering: the dynamic-rendering
// equivalent of a VkRenderPass/VkFramebuffer pair (§4.6).
type RenderingInfo struct {
	Extent          types.Extent3D
	ColorAttachments []ColorAttachment
	DepthStencil     *DepthStencilAttachment
}

type cmdBeginRegionPayload struct {
	Name  string
	Color [4]float32
}

func (cmdBeginRegionPayload) isCmdPayload() {}

type cmdBeginRenderingPayload struct {
	Info RenderingInfo
}

func (cmdBeginRenderingPayload) isCmdPayload() {}

type cmdPushConstantsPayload struct {
	Data [pushConstantBytes]byte
	Size uint32
}

func (cmdPushConstantsPayload) isCmdPayload() {}

type cmdBindPipelinePayload struct {
	Pipeline types.Handle
}

func (cmdBindPipelinePayload) isCmdPayload() {}

type cmdSetViewportPayload struct {
	X, Y, Width, Height, MinDepth, MaxDepth float32
}

func (cmdSetViewportPayload) isCmdPayload() {}

type cmdSetScissorPayload struct {
	X, Y          int32
	Width, Height uint32
}

func (cmdSetScissorPayload) isCmdPayload() {}

type cmdSetCullModePayload struct {
	Mode types.CullMode
}

func (cmdSetCullModePayload) isCmdPayload() {}

type cmdBindIndexBufferPayload struct {
	Buffer  types.Handle
	Offset  uint64
	Is32Bit bool
}

func (cmdBindIndexBufferPayload) isCmdPayload() {}

type cmdDrawPayload struct {
	VertexCount, InstanceCount, FirstVertex, FirstInstance uint32
}

func (cmdDrawPayload) isCmdPayload() {}

type cmdDrawIndexedPayload struct {
	IndexCount, InstanceCount, FirstIndex uint32
	VertexOffset                         int32
	FirstInstance                        uint32
}

func (cmdDrawIndexedPayload) isCmdPayload() {}

type cmdDrawIndirectPayload struct {
	Buffer      types.Handle
	Offset      uint64
	DrawCount   uint32
	Stride      uint32
	Indexed     bool
	HasCount    bool
	CountBuffer types.Handle
	CountOffset uint64
}

func (cmdDrawIndirectPayload) isCmdPayload() {}

type cmdDispatchPayload struct {
	GroupCountX, GroupCountY, GroupCountZ uint32
}

func (cmdDispatchPayload) isCmdPayload() {}

type cmdDispatchIndirectPayload struct {
	Buffer types.Handle
	Offset uint64
}

func (cmdDispatchIndirectPayload) isCmdPayload() {}

type cmdCopyBufferPayload struct {
	Src, Dst                   types.Handle
	SrcOffset, DstOffset, Size uint64
}

func (cmdCopyBufferPayload) isCmdPayload() {}

type cmdCopyTexturePayload struct {
	Src, Dst                 types.Handle
	SrcSubresource           types.Subresource
	DstSubresource           types.Subresource
	SrcOffset, DstOffset     types.Offset3D
	Extent                   types.Extent3D
}

func (cmdCopyTexturePayload) isCmdPayload() {}

type cmdBufferTextureCopyPayload struct {
	Buffer       types.Handle
	Texture      types.Handle
	BufferOffset uint64
	Subresource  types.Subresource
	Offset       types.Offset3D
	Extent       types.Extent3D
}

func (cmdBufferTextureCopyPayload) isCmdPayload() {}

type cmdGlobalBarrierPayload struct {
	Prev, Next types.AccessFlags
}

func (cmdGlobalBarrierPayload) isCmdPayload() {}

type cmdTextureBarriersPayload struct {
	Barriers []ImageBarrier
}

func (cmdTextureBarriersPayload) isCmdPayload() {}

type cmdBufferBarriersPayload struct {
	Barriers []BufferBarrier
}

func (cmdBufferBarriersPayload) isCmdPayload() {}

// Encoder is a write-only command builder: every method appends one node
// to its arena and performs no validation and no GPU call (§4.4).
// Validation against GPU-free invariants happens separately, see
// validation.go; the decoder is what actually issues driver calls.
type Encoder struct {
	stream *commandStream
	queue  types.QueueType
}

func newEncoder(stream *commandStream, queue types.QueueType) *Encoder {
	return &Encoder{stream: stream, queue: queue}
}

// NewEncoder allocates a fresh command-stream arena (sized by
// Config.CommandArenaBytes) and returns an Encoder recording against it
// for queue. Callers that build their own submission lists directly —
// rather than through a higher-level recorder — use this entry point;
// the frame graph's execution step (§4.9.6) is one such caller.
func (d *Device) NewEncoder(queue types.QueueType) *Encoder {
	return newEncoder(newCommandStream(d.config.CommandArenaBytes), queue)
}

// QueueType reports which logical queue this encoder's commands will be
// submitted on.
func (e *Encoder) QueueType() types.QueueType { return e.queue }

func (e *Encoder) Begin() { e.stream.append(cmdBeginCommandBuffer, nil) }
func (e *Encoder) End()   { e.stream.append(cmdEndCommandBuffer, nil) }

// BeginRegion opens a debug label region; a no-op on the decode side
// unless Config.EnableDebugUtils is set.
func (e *Encoder) BeginRegion(name string, color [4]float32) {
	e.stream.append(cmdBeginRegion, cmdBeginRegionPayload{Name: name, Color: color})
}

func (e *Encoder) EndRegion() { e.stream.append(cmdEndRegion, nil) }

func (e *Encoder) BeginRendering(info RenderingInfo) {
	e.stream.append(cmdBeginRendering, cmdBeginRenderingPayload{Info: info})
}

func (e *Encoder) EndRendering() { e.stream.append(cmdEndRendering, nil) }

// PushConstants copies data into the shared push-constant block. data
// must fit within pushConstantBytes.
func (e *Encoder) PushConstants(data []byte) {
	var payload cmdPushConstantsPayload
	copy(payload.Data[:], data)
	payload.Size = uint32(len(data))
	e.stream.append(cmdPushConstants, payload)
}

func (e *Encoder) BindGraphicsPipeline(h types.Handle) {
	e.stream.append(cmdBindGraphicsPipeline, cmdBindPipelinePayload{Pipeline: h})
}

func (e *Encoder) BindComputePipeline(h types.Handle) {
	e.stream.append(cmdBindComputePipeline, cmdBindPipelinePayload{Pipeline: h})
}

func (e *Encoder) SetViewport(x, y, width, height, minDepth, maxDepth float32) {
	e.stream.append(cmdSetViewport, cmdSetViewportPayload{X: x, Y: y, Width: width, Height: height, MinDepth: minDepth, MaxDepth: maxDepth})
}

func (e *Encoder) SetScissor(x, y int32, width, height uint32) {
	e.stream.append(cmdSetScissor, cmdSetScissorPayload{X: x, Y: y, Width: width, Height: height})
}

func (e *Encoder) SetCullMode(mode types.CullMode) {
	e.stream.append(cmdSetCullMode, cmdSetCullModePayload{Mode: mode})
}

func (e *Encoder) BindIndexBuffer(h types.Handle, offset uint64, is32Bit bool) {
	e.stream.append(cmdBindIndexBuffer, cmdBindIndexBufferPayload{Buffer: h, Offset: offset, Is32Bit: is32Bit})
}

func (e *Encoder) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	e.stream.append(cmdDraw, cmdDrawPayload{VertexCount: vertexCount, InstanceCount: instanceCount, FirstVertex: firstVertex, FirstInstance: firstInstance})
}

func (e *Encoder) DrawIndexed(indexCount, instanceCount, firstIndex uint32, vertexOffset int32, firstInstance uint32) {
	e.stream.append(cmdDrawIndexed, cmdDrawIndexedPayload{
		IndexCount: indexCount, InstanceCount: instanceCount, FirstIndex: firstIndex,
		VertexOffset: vertexOffset, FirstInstance: firstInstance,
	})
}

// DrawIndirect and DrawIndexedIndirect record a single indirect draw read
// from buffer. indexed selects which of the two underlying driver calls
// the decoder issues (§4.4's "draw ... indirect/indirect-count" only
// specifies one indirect family in the abstract command model; this RHI
// distinguishes the indexed and non-indexed driver entry points with an
// explicit flag rather than overloading draw state).
func (e *Encoder) DrawIndirect(buffer types.Handle, offset uint64, drawCount, stride uint32) {
	e.stream.append(cmdDrawIndirect, cmdDrawIndirectPayload{Buffer: buffer, Offset: offset, DrawCount: drawCount, Stride: stride})
}

func (e *Encoder) DrawIndexedIndirect(buffer types.Handle, offset uint64, drawCount, stride uint32) {
	e.stream.append(cmdDrawIndirect, cmdDrawIndirectPayload{Buffer: buffer, Offset: offset, DrawCount: drawCount, Stride: stride, Indexed: true})
}

func (e *Encoder) DrawIndirectCount(buffer types.Handle, offset uint64, countBuffer types.Handle, countOffset uint64, maxDrawCount, stride uint32) {
	e.stream.append(cmdDrawIndirectCount, cmdDrawIndirectPayload{
		Buffer: buffer, Offset: offset, DrawCount: maxDrawCount, Stride: stride,
		HasCount: true, CountBuffer: countBuffer, CountOffset: countOffset,
	})
}

func (e *Encoder) DrawIndexedIndirectCount(buffer types.Handle, offset uint64, countBuffer types.Handle, countOffset uint64, maxDrawCount, stride uint32) {
	e.stream.append(cmdDrawIndirectCount, cmdDrawIndirectPayload{
		Buffer: buffer, Offset: offset, DrawCount: maxDrawCount, Stride: stride, Indexed: true,
		HasCount: true, CountBuffer: countBuffer, CountOffset: countOffset,
	})
}

func (e *Encoder) Dispatch(groupCountX, groupCountY, groupCountZ uint32) {
	e.stream.append(cmdDispatch, cmdDispatchPayload{GroupCountX: groupCountX, GroupCountY: groupCountY, GroupCountZ: groupCountZ})
}

func (e *Encoder) DispatchIndirect(buffer types.Handle, offset uint64) {
	e.stream.append(cmdDispatchIndirect, cmdDispatchIndirectPayload{Buffer: buffer, Offset: offset})
}

func (e *Encoder) CopyBuffer(src, dst types.Handle, srcOffset, dstOffset, size uint64) {
	e.stream.append(cmdCopyBuffer, cmdCopyBufferPayload{Src: src, Dst: dst, SrcOffset: srcOffset, DstOffset: dstOffset, Size: size})
}

func (e *Encoder) CopyTexture(src, dst types.Handle, srcSub, dstSub types.Subresource, srcOffset, dstOffset types.Offset3D, extent types.Extent3D) {
	e.stream.append(cmdCopyTexture, cmdCopyTexturePayload{
		Src: src, Dst: dst, SrcSubresource: srcSub, DstSubresource: dstSub,
		SrcOffset: srcOffset, DstOffset: dstOffset, Extent: extent,
	})
}

// CopyBufferToTexture and CopyTextureToBuffer are kept as two distinct
// command kinds rather than one direction-flagged copy, so the decoder
// dispatch and the reference set it stamps never need to branch on a
// runtime direction flag.
func (e *Encoder) CopyBufferToTexture(buffer, texture types.Handle, bufferOffset uint64, sub types.Subresource, offset types.Offset3D, extent types.Extent3D) {
	e.stream.append(cmdCopyBufferToTexture, cmdBufferTextureCopyPayload{
		Buffer: buffer, Texture: texture, BufferOffset: bufferOffset, Subresource: sub, Offset: offset, Extent: extent,
	})
}

func (e *Encoder) CopyTextureToBuffer(texture, buffer types.Handle, bufferOffset uint64, sub types.Subresource, offset types.Offset3D, extent types.Extent3D) {
	e.stream.append(cmdCopyTextureToBuffer, cmdBufferTextureCopyPayload{
		Buffer: buffer, Texture: texture, BufferOffset: bufferOffset, Subresource: sub, Offset: offset, Extent: extent,
	})
}

// GlobalBarrier issues a memory barrier with no resource scope.
func (e *Encoder) GlobalBarrier(prev, next types.AccessFlags) {
	e.stream.append(cmdGlobalBarrier, cmdGlobalBarrierPayload{Prev: prev, Next: next})
}

func (e *Encoder) TextureBarriers(barriers []ImageBarrier) {
	e.stream.append(cmdTextureBarriers, cmdTextureBarriersPayload{Barriers: barriers})
}

func (e *Encoder) BufferBarriers(barriers []BufferBarrier) {
	e.stream.append(cmdBufferBarriers, cmdBufferBarriersPayload{Barriers: barriers})
}

// Len reports how many commands have been recorded so far.
func (e *Encoder) Len() int { return e.stream.len() }
