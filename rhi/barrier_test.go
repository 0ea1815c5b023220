// Copyright 2025 The Tundraforge Authors
// SPDX-License-Identifier: MIT

package rhi

import (
	"testing"
	"unsafe"

	"github.com/tundraforge/rhi/internal/vk"
	"github.com/tundraforge/rhi/types"
)

// TestImageBarrierLayoutTransition covers the barrier-on-layout-change
// case: a texture read as a shader resource after being written as a
// color attachment must carry the old layout it was actually in, not
// VK_IMAGE_LAYOUT_UNDEFINED, and must land in the new layout the next
// access requires.
func TestImageBarrierLayoutTransition(t *testing.T) {
	_, _, images := buildDependencyInfo(nil, []ImageBarrier{{
		Image: vk.Image(1), Aspect: types.FormatAspectColor, MipCount: 1, ArrayCount: 1,
		Prev: types.AccessColorAttachmentWrite,
		Next: types.AccessSRVGraphics,
	}})
	if len(images) != 1 {
		t.Fatalf("got %d image barriers, want 1", len(images))
	}
	b := images[0]
	if b.OldLayout != vk.ImageLayoutColorAttachmentOptimal {
		t.Errorf("OldLayout = %v, want ColorAttachmentOptimal", b.OldLayout)
	}
	if b.NewLayout != vk.ImageLayoutShaderReadOnlyOptimal {
		t.Errorf("NewLayout = %v, want ShaderReadOnlyOptimal", b.NewLayout)
	}
	if b.SrcAccessMask == 0 || b.DstAccessMask == 0 {
		t.Errorf("expected non-zero access masks on both sides of a same-queue transition, got src=%x dst=%x", b.SrcAccessMask, b.DstAccessMask)
	}
}

// TestImageBarrierFromUndefined covers a texture's first use: Prev ==
// AccessNone must produce VK_IMAGE_LAYOUT_UNDEFINED regardless of what
// resolveAccess's table would otherwise say for the zero value.
func TestImageBarrierFromUndefined(t *testing.T) {
	_, _, images := buildDependencyInfo(nil, []ImageBarrier{{
		Image: vk.Image(1), Aspect: types.FormatAspectColor, MipCount: 1, ArrayCount: 1,
		Prev: types.AccessNone,
		Next: types.AccessColorAttachmentWrite,
	}})
	if images[0].OldLayout != vk.ImageLayoutUndefined {
		t.Errorf("OldLayout = %v, want Undefined", images[0].OldLayout)
	}
}

// TestQueueOwnershipTransferRelease covers the release half of a
// cross-queue ownership transfer (§4.9.5): the source side carries the
// real access the releasing queue used, the destination side is zeroed
// because the acquiring queue establishes its own dependency once the
// scheduler's timeline semaphore admits it, and both queue family
// indices are the real ones rather than VK_QUEUE_FAMILY_IGNORED.
func TestQueueOwnershipTransferRelease(t *testing.T) {
	src, dst := uint32(0), uint32(2)
	_, _, images := buildDependencyInfo(nil, []ImageBarrier{{
		Image: vk.Image(1), Aspect: types.FormatAspectColor, MipCount: 1, ArrayCount: 1,
		Prev: types.AccessColorAttachmentWrite, Next: types.AccessUAVCompute,
		SrcQueueFamily: &src, DstQueueFamily: &dst, Release: true,
	}})
	b := images[0]
	if b.SrcQueueFamilyIndex != src || b.DstQueueFamilyIndex != dst {
		t.Fatalf("queue family indices = (%d,%d), want (%d,%d)", b.SrcQueueFamilyIndex, b.DstQueueFamilyIndex, src, dst)
	}
	if b.SrcAccessMask == 0 {
		t.Errorf("release half: SrcAccessMask must carry the releasing queue's real access, got 0")
	}
	if b.DstAccessMask != 0 || b.DstStageMask != 0 {
		t.Errorf("release half: dst side must be zeroed, got access=%x stage=%x", b.DstAccessMask, b.DstStageMask)
	}
	if b.OldLayout != vk.ImageLayoutColorAttachmentOptimal || b.NewLayout != vk.ImageLayoutGeneral {
		t.Errorf("release half must still carry the layout transition, got old=%v new=%v", b.OldLayout, b.NewLayout)
	}
}

// TestQueueOwnershipTransferAcquire covers the mirrored acquire half: the
// source side is zeroed and the destination side carries the access the
// consuming pass actually needs.
func TestQueueOwnershipTransferAcquire(t *testing.T) {
	src, dst := uint32(0), uint32(2)
	_, _, images := buildDependencyInfo(nil, []ImageBarrier{{
		Image: vk.Image(1), Aspect: types.FormatAspectColor, MipCount: 1, ArrayCount: 1,
		Prev: types.AccessSRVCompute, Next: types.AccessSRVCompute,
		SrcQueueFamily: &src, DstQueueFamily: &dst, Release: false,
	}})
	b := images[0]
	if b.SrcAccessMask != 0 || b.SrcStageMask != 0 {
		t.Errorf("acquire half: src side must be zeroed, got access=%x stage=%x", b.SrcAccessMask, b.SrcStageMask)
	}
	if b.DstAccessMask == 0 {
		t.Errorf("acquire half: DstAccessMask must carry the acquiring queue's real access, got 0")
	}
}

// TestBufferBarrierSameQueueIgnoresFamily covers the ordinary, same-queue
// path: with no SrcQueueFamily/DstQueueFamily set, both family indices
// must be VK_QUEUE_FAMILY_IGNORED and both sides of the access mask real.
func TestBufferBarrierSameQueueIgnoresFamily(t *testing.T) {
	buffers, _, _ := buildDependencyInfo([]BufferBarrier{{
		Buffer: vk.Buffer(7), Size: 256,
		Prev: types.AccessTransferWrite, Next: types.AccessVertexBuffer,
	}}, nil)
	b := buffers[0]
	if b.SrcQueueFamilyIndex != vkQueueFamilyIgnored || b.DstQueueFamilyIndex != vkQueueFamilyIgnored {
		t.Errorf("same-queue barrier must use VK_QUEUE_FAMILY_IGNORED on both sides, got (%d,%d)", b.SrcQueueFamilyIndex, b.DstQueueFamilyIndex)
	}
	if b.SrcAccessMask == 0 || b.DstAccessMask == 0 {
		t.Errorf("same-queue barrier must carry real access on both sides, got src=%x dst=%x", b.SrcAccessMask, b.DstAccessMask)
	}
}

// TestBuildDependencyInfoPointers covers the unsafe.Pointer wiring
// the CmdPipelineBarrier2 callers in decoder.go and scheduler.go rely on: a DependencyInfo
// with zero buffer/image barriers must leave the corresponding pointer
// fields nil rather than pointing at an empty slice's backing array
// (which Go does not guarantee is safe to dereference as a C array
// head).
func TestBuildDependencyInfoPointers(t *testing.T) {
	info, _, _ := buildDependencyInfo(nil, nil)
	if info.PBufferMemoryBarriers != nil || info.PImageMemoryBarriers != nil {
		t.Errorf("empty barrier batch must leave both barrier pointers nil, got buf=%v img=%v", info.PBufferMemoryBarriers, info.PImageMemoryBarriers)
	}
	if info.BufferMemoryBarrierCount != 0 || info.ImageMemoryBarrierCount != 0 {
		t.Errorf("empty barrier batch must report zero counts")
	}

	src, dst := uint32(1), uint32(3)
	info2, _, images := buildDependencyInfo(nil, []ImageBarrier{{
		Image: vk.Image(1), Aspect: types.FormatAspectColor, MipCount: 1, ArrayCount: 1,
		Prev: types.AccessNone, Next: types.AccessTransferWrite,
		SrcQueueFamily: &src, DstQueueFamily: &dst, Release: true,
	}})
	if info2.PImageMemoryBarriers != unsafe.Pointer(&images[0]) {
		t.Errorf("DependencyInfo.PImageMemoryBarriers must point at the returned slice's backing array")
	}
}
