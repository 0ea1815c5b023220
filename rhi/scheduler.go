// Copyright 2025 The Tundraforge Authors
// SPDX-License-Identifier: MIT

package rhi

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/tundraforge/rhi/handle"
	"github.com/tundraforge/rhi/internal/vk"
	"github.com/tundraforge/rhi/tracker"
	"github.com/tundraforge/rhi/types"
)

// SubmitInfo is one entry of a Submit call's ordered submission list
// (§4.8): every encoder in Encoders is decoded into its own command
// buffer, and all of them go out together in a single vkQueueSubmit2 call
// chained into the frame's timeline semaphore.
type SubmitInfo struct {
	Encoders []*Encoder
	Stage    types.SynchronizationStage
	Queue    types.QueueType
}

// PresentInfo requests that Texture (at PreviousAccess) be blitted into
// the next acquired image of Swapchain and presented at the end of the
// frame (§4.8 step 4).
type PresentInfo struct {
	Swapchain      types.Handle
	Texture        types.Handle
	PreviousAccess types.AccessFlags
}

// frameSyncSet holds the binary semaphores a frame slot's present path
// needs: one per-swapchain image-available semaphore (grown lazily, since
// a frame may present more than one swapchain) and one semaphore the
// scheduler's present submission signals and QueuePresentKHR waits on.
type frameSyncSet struct {
	present        vk.Semaphore
	imageAvailable []vk.Semaphore
}

func newFrameSyncSet(commands *vk.Commands, device vk.Device) (*frameSyncSet, error) {
	ci := vk.SemaphoreCreateInfo{SType: vk.StructureTypeSemaphoreCreateInfo}
	var present vk.Semaphore
	if res := commands.CreateSemaphore(device, unsafe.Pointer(&ci), &present); res != vk.Success {
		return nil, fmt.Errorf("rhi: vkCreateSemaphore (present) returned %s", res)
	}
	return &frameSyncSet{present: present}, nil
}

func (s *frameSyncSet) imageAvailableAt(commands *vk.Commands, device vk.Device, i int) (vk.Semaphore, error) {
	for len(s.imageAvailable) <= i {
		ci := vk.SemaphoreCreateInfo{SType: vk.StructureTypeSemaphoreCreateInfo}
		var sem vk.Semaphore
		if res := commands.CreateSemaphore(device, unsafe.Pointer(&ci), &sem); res != vk.Success {
			return 0, fmt.Errorf("rhi: vkCreateSemaphore (image available) returned %s", res)
		}
		s.imageAvailable = append(s.imageAvailable, sem)
	}
	return s.imageAvailable[i], nil
}

func (s *frameSyncSet) destroy(commands *vk.Commands, device vk.Device) {
	commands.DestroySemaphore(device, s.present)
	for _, sem := range s.imageAvailable {
		commands.DestroySemaphore(device, sem)
	}
}

// scheduler is the submission scheduler (§4.8): it owns the serialization
// lock ("two calls to submit() from different threads are serialized by an
// internal lock") and the per-frame-slot present semaphores layered on top
// of the pool manager's frame slots and the device's single timeline
// semaphore.
type scheduler struct {
	mu    sync.Mutex
	frame []*frameSyncSet
}

func newScheduler(commands *vk.Commands, device vk.Device, framesInFlight uint32) (*scheduler, error) {
	s := &scheduler{frame: make([]*frameSyncSet, framesInFlight)}
	for i := range s.frame {
		fs, err := newFrameSyncSet(commands, device)
		if err != nil {
			s.destroy(commands, device)
			return nil, err
		}
		s.frame[i] = fs
	}
	return s, nil
}

func (s *scheduler) destroy(commands *vk.Commands, device vk.Device) {
	for _, fs := range s.frame {
		if fs != nil {
			fs.destroy(commands, device)
		}
	}
}

// Submit runs the submission scheduler's algorithm (§4.8) for one frame:
// wait for a free pool slot, decode every submission's encoders, chain
// them through the device's timeline semaphore in listed order, encode and
// submit the swapchain copy/present path if presents is non-empty, and
// submit a fence-bearing tail so the frame slot only becomes reusable once
// every submission (including the present blit) has retired.
//
// recorder is the caller's RegisterRecorder id: Submit draws command
// buffers from that recorder's per-queue pools. Two concurrent calls to
// Submit are serialized by an internal lock, matching §4.8's scheduler
// properties — callers do not need their own mutex to submit from
// multiple goroutines.
func (d *Device) Submit(recorder uint32, submits []SubmitInfo, presents []PresentInfo) error {
	d.scheduler.mu.Lock()
	defer d.scheduler.mu.Unlock()

	if err := d.pools.waitForFreePool(d.tracker); err != nil {
		return err
	}

	value := d.timelineValue.Load()

	for i, s := range submits {
		var cmdBufs []vk.CommandBufferSubmitInfo
		for _, enc := range s.Encoders {
			cb, err := d.pools.getCommandBundle(s.Queue, recorder)
			if err != nil {
				return err
			}
			refs := d.pools.referenceSet(s.Queue, recorder)
			if err := d.decode(cb, enc.stream, refs); err != nil {
				return err
			}
			cmdBufs = append(cmdBufs, vk.CommandBufferSubmitInfo{
				SType:         vk.StructureTypeCommandBufferSubmitInfo,
				CommandBuffer: cb,
			})
		}

		var waits []vk.SemaphoreSubmitInfo
		if i > 0 {
			waits = append(waits, vk.SemaphoreSubmitInfo{
				SType:     vk.StructureTypeSemaphoreSubmitInfo,
				Semaphore: d.timeline,
				Value:     value,
				StageMask: vkPipelineStage2(s.Stage),
			})
		}
		signals := []vk.SemaphoreSubmitInfo{{
			SType:     vk.StructureTypeSemaphoreSubmitInfo,
			Semaphore: d.timeline,
			Value:     value + 1,
			StageMask: vkPipelineStage2(s.Stage),
		}}

		if err := d.submitOne(s.Queue, cmdBufs, waits, signals, 0); err != nil {
			return err
		}
		value++
	}

	if len(presents) > 0 {
		newValue, err := d.encodeAndSubmitPresents(recorder, presents, value)
		if err != nil {
			return err
		}
		value = newValue
	}

	// Tail submission (§4.8 step 5): no commands, waits on the frame's
	// final timeline value, signals the frame fence so
	// waitForFreePool's next call only unblocks once every submission
	// above — including the present blit — has retired on the GPU.
	tailWait := []vk.SemaphoreSubmitInfo{{
		SType:     vk.StructureTypeSemaphoreSubmitInfo,
		Semaphore: d.timeline,
		Value:     value,
		StageMask: vk.PipelineStageBottomOfPipe2,
	}}
	if err := d.submitOne(types.QueueGraphics, nil, tailWait, nil, d.pools.fence()); err != nil {
		return err
	}

	d.timelineValue.Store(value)
	d.pools.endFrame()
	return nil
}

// submitOne issues a single vkQueueSubmit2 call.
func (d *Device) submitOne(queue types.QueueType, cmdBufs []vk.CommandBufferSubmitInfo, waits, signals []vk.SemaphoreSubmitInfo, fence vk.Fence) error {
	info := vk.SubmitInfo2{SType: vk.StructureTypeSubmitInfo2}
	if len(waits) > 0 {
		info.WaitSemaphoreInfoCount = uint32(len(waits))
		info.PWaitSemaphoreInfos = unsafe.Pointer(&waits[0])
	}
	if len(cmdBufs) > 0 {
		info.CommandBufferInfoCount = uint32(len(cmdBufs))
		info.PCommandBufferInfos = unsafe.Pointer(&cmdBufs[0])
	}
	if len(signals) > 0 {
		info.SignalSemaphoreInfoCount = uint32(len(signals))
		info.PSignalSemaphoreInfos = unsafe.Pointer(&signals[0])
	}
	if res := d.commands.QueueSubmit2(d.queues.queue[queue], 1, unsafe.Pointer(&info), fence); res != vk.Success {
		return fmt.Errorf("rhi: vkQueueSubmit2 returned %s", res)
	}
	return nil
}

// encodeAndSubmitPresents implements §4.8 step 4: acquire an image per
// swapchain, encode the transition/blit/transition sequence on a
// present-queue command buffer, submit it waiting on the timeline's
// current value and signaling the next value plus the frame's present
// semaphore, then call vkQueuePresentKHR waiting on that present semaphore
// and every image-available semaphore acquired this frame.
func (d *Device) encodeAndSubmitPresents(recorder uint32, presents []PresentInfo, value uint64) (uint64, error) {
	fsync := d.scheduler.frame[d.pools.currentSlot()]

	imageIndices := make([]uint32, len(presents))
	imageAvailable := make([]vk.Semaphore, len(presents))
	swapchains := make([]vk.SwapchainKHR, len(presents))

	for i, p := range presents {
		sc, err := handle.With(d.swapchains, p.Swapchain, func(r *swapchainResource) swapchainResource { return *r })
		if err != nil {
			return value, fmt.Errorf("rhi: present swapchain: %w", err)
		}
		sem, err := fsync.imageAvailableAt(d.commands, d.handle, i)
		if err != nil {
			return value, err
		}
		var index uint32
		res := d.commands.AcquireNextImageKHR(d.handle, sc.swapchain, ^uint64(0), sem, 0, &index)
		if res != vk.Success && res != vk.SuboptimalKHR {
			return value, fmt.Errorf("rhi: vkAcquireNextImageKHR returned %s", res)
		}
		imageIndices[i] = index
		imageAvailable[i] = sem
		swapchains[i] = sc.swapchain

		cb, err := d.pools.getCommandBundle(types.QueuePresent, recorder)
		if err != nil {
			return value, err
		}
		refs := d.pools.referenceSet(types.QueuePresent, recorder)
		if err := d.encodePresentBlit(cb, sc, sc.images[index], p, refs); err != nil {
			return value, err
		}
	}

	waits := []vk.SemaphoreSubmitInfo{{
		SType:     vk.StructureTypeSemaphoreSubmitInfo,
		Semaphore: d.timeline,
		Value:     value,
		StageMask: vk.PipelineStageTransfer2,
	}}
	signals := []vk.SemaphoreSubmitInfo{
		{SType: vk.StructureTypeSemaphoreSubmitInfo, Semaphore: d.timeline, Value: value + 1, StageMask: vk.PipelineStageTransfer2},
		{SType: vk.StructureTypeSemaphoreSubmitInfo, Semaphore: fsync.present, Value: 0, StageMask: vk.PipelineStageTransfer2},
	}

	// Every present-queue command buffer recorded above shares one
	// submission: the presents all belong to the same frame and the same
	// queue, so they chain into a single vkQueueSubmit2 call.
	presentBufs, err := d.presentQueueUsedBuffers(recorder)
	if err != nil {
		return value, err
	}
	if err := d.submitOne(types.QueuePresent, presentBufs, waits, signals, 0); err != nil {
		return value, err
	}
	value++

	waitHandles := append([]vk.Semaphore{fsync.present}, imageAvailable...)

	presentInfo := vk.PresentInfoKHR{
		SType:              vk.StructureTypePresentInfoKHR,
		WaitSemaphoreCount: uint32(len(waitHandles)),
		PWaitSemaphores:    unsafe.Pointer(&waitHandles[0]),
		SwapchainCount:     uint32(len(swapchains)),
		PSwapchains:        unsafe.Pointer(&swapchains[0]),
		PImageIndices:      unsafe.Pointer(&imageIndices[0]),
	}
	res := d.commands.QueuePresentKHR(d.queues.queue[types.QueuePresent], unsafe.Pointer(&presentInfo))
	if res != vk.Success && res != vk.SuboptimalKHR {
		return value, fmt.Errorf("rhi: vkQueuePresentKHR returned %s", res)
	}

	return value, nil
}

// presentQueueUsedBuffers returns the command buffers getCommandBundle
// handed out on the present queue for recorder during the current frame
// slot, in allocation order — the set encodeAndSubmitPresents just filled.
func (d *Device) presentQueueUsedBuffers(recorder uint32) ([]vk.CommandBufferSubmitInfo, error) {
	used := d.pools.usedBuffers(types.QueuePresent, recorder)
	if len(used) == 0 {
		return nil, fmt.Errorf("rhi: present submission has no recorded command buffers")
	}
	out := make([]vk.CommandBufferSubmitInfo, len(used))
	for i, cb := range used {
		out[i] = vk.CommandBufferSubmitInfo{SType: vk.StructureTypeCommandBufferSubmitInfo, CommandBuffer: cb}
	}
	return out, nil
}

// encodePresentBlit records the transition/blit/transition sequence
// (§4.8 step 4) that copies texture into the swapchain image swapImage:
// swapchain image UNDEFINED -> TRANSFER_DST, source texture
// previousAccess -> TRANSFER_SRC (skipped if already there), a linear
// blit, then swapchain image TRANSFER_DST -> PRESENT_SRC.
func (d *Device) encodePresentBlit(cb vk.CommandBuffer, sc swapchainResource, swapImage vk.Image, p PresentInfo, refs *tracker.ReferenceSet) error {
	beginInfo := vk.CommandBufferBeginInfo{SType: vk.StructureTypeCommandBufferBeginInfo}
	if res := d.commands.BeginCommandBuffer(cb, unsafe.Pointer(&beginInfo)); res != vk.Success {
		return fmt.Errorf("rhi: vkBeginCommandBuffer (present) returned %s", res)
	}

	tex, err := handle.With(d.textures, p.Texture, func(r *textureResource) textureResource { return *r })
	if err != nil {
		return fmt.Errorf("rhi: present source texture: %w", err)
	}
	refs.AddReference(d.tracker, p.Texture)

	var toTransferBarriers []ImageBarrier
	toTransferBarriers = append(toTransferBarriers, ImageBarrier{
		Image: swapImage, Aspect: types.FormatAspectColor, MipCount: 1, ArrayCount: 1,
		Prev: types.AccessNone, Next: types.AccessTransferWrite,
	})
	if p.PreviousAccess != types.AccessTransferRead {
		toTransferBarriers = append(toTransferBarriers, ImageBarrier{
			Image: tex.img, Aspect: types.FormatAspectColor, MipCount: tex.mips, ArrayCount: 1,
			Prev: p.PreviousAccess, Next: types.AccessTransferRead,
		})
	}
	dep, _, _ := buildDependencyInfo(nil, toTransferBarriers)
	d.commands.CmdPipelineBarrier2(cb, unsafe.Pointer(&dep))

	srcLayer := vk.ImageSubresourceLayers{AspectMask: vkImageAspect(types.FormatAspectColor), LayerCount: 1}
	region := vk.ImageBlit{
		SrcSubresource: srcLayer,
		SrcOffsets:     [2]vk.Offset3D{{}, {X: int32(tex.extent.Width), Y: int32(tex.extent.Height), Z: 1}},
		DstSubresource: srcLayer,
		DstOffsets:     [2]vk.Offset3D{{}, {X: int32(sc.extent.Width), Y: int32(sc.extent.Height), Z: 1}},
	}
	d.commands.CmdBlitImage(cb, tex.img, uint32(vk.ImageLayoutTransferSrcOptimal), swapImage, uint32(vk.ImageLayoutTransferDstOptimal), 1, uint32(vk.FilterLinear), unsafe.Pointer(&region))

	presentBarrier := []ImageBarrier{{
		Image: swapImage, Aspect: types.FormatAspectColor, MipCount: 1, ArrayCount: 1,
		Prev: types.AccessTransferWrite, Next: types.AccessPresent,
	}}
	dep2, _, _ := buildDependencyInfo(nil, presentBarrier)
	d.commands.CmdPipelineBarrier2(cb, unsafe.Pointer(&dep2))

	if res := d.commands.EndCommandBuffer(cb); res != vk.Success {
		return fmt.Errorf("rhi: vkEndCommandBuffer (present) returned %s", res)
	}
	return nil
}
