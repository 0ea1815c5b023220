// Copyright 2025 The Tundraforge Authors
// SPDX-License-Identifier: MIT

package rhi

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/tundraforge/rhi/internal/vk"
	"github.com/tundraforge/rhi/tracker"
	"github.com/tundraforge/rhi/types"
)

// threadPoolKey identifies one (queue, recorder) pair within a frame
// slot. A recorder registers itself with an explicit id rather than
// keying on a runtime goroutine id (the Go runtime does not expose one
// usable for this); see Device.RegisterRecorder.
type threadPoolKey struct {
	queue  types.QueueType
	thread uint32
}

// threadPool is the per-queue, per-thread command pool state described
// in §4.5: a pool plus two deques of command buffers (free vs. used) and
// a reference set that drains alongside the pool's reset.
type threadPool struct {
	pool vk.CommandPool
	free []vk.CommandBuffer
	used []vk.CommandBuffer
	refs *tracker.ReferenceSet
}

// frameSlot is one of Config.FramesInFlight rotating frame records: a
// fence the scheduler signals on the frame's last submit, and every
// thread pool touched while recording that frame.
type frameSlot struct {
	fence vk.Fence
	pools map[threadPoolKey]*threadPool
}

// poolManager is the command-pool manager (§4.5): it owns one frameSlot
// per frame-in-flight and lazily creates a command pool for every
// (frame slot, queue, recorder) combination on first use.
type poolManager struct {
	mu       sync.Mutex
	device   *Device
	slots    []frameSlot
	current  uint32
}

func newPoolManager(d *Device, framesInFlight uint32) (*poolManager, error) {
	pm := &poolManager{device: d, slots: make([]frameSlot, framesInFlight)}
	for i := range pm.slots {
		ci := vk.FenceCreateInfo{SType: vk.StructureTypeFenceCreateInfo, Flags: 1 /* VK_FENCE_CREATE_SIGNALED_BIT */}
		var fence vk.Fence
		if res := d.commands.CreateFence(d.handle, unsafe.Pointer(&ci), &fence); res != vk.Success {
			return nil, fmt.Errorf("rhi: vkCreateFence returned %s", res)
		}
		pm.slots[i] = frameSlot{fence: fence, pools: make(map[threadPoolKey]*threadPool)}
	}
	return pm, nil
}

// destroy waits for every frame slot's fence, drains each thread pool's
// reference set through the tracker (§4.5's shutdown invariant: every
// reference set must be drained before its pool is destroyed), then
// tears down the pools and fences.
func (pm *poolManager) destroy() {
	for i := range pm.slots {
		fence := pm.slots[i].fence
		pm.device.commands.WaitForFences(pm.device.handle, 1, unsafe.Pointer(&fence), 1, ^uint64(0))
		for _, tp := range pm.slots[i].pools {
			pm.device.tracker.RemoveReferences(tp.refs)
			pm.device.commands.DestroyCommandPool(pm.device.handle, tp.pool)
		}
		pm.device.commands.DestroyFence(pm.device.handle, fence)
	}
}

// getCommandBundle returns a primary command buffer for (queue, thread)
// in the current frame slot, creating the pool on first use and pulling
// from the free deque before allocating a new buffer (§4.5).
func (pm *poolManager) getCommandBundle(queue types.QueueType, thread uint32) (vk.CommandBuffer, error) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	slot := &pm.slots[pm.current]
	key := threadPoolKey{queue: queue, thread: thread}
	tp, ok := slot.pools[key]
	if !ok {
		ci := vk.CommandPoolCreateInfo{
			SType:            vk.StructureTypeCommandPoolCreateInfo,
			Flags:            vk.CommandPoolCreateResetCommandBufferBit,
			QueueFamilyIndex: pm.device.QueueFamilyIndex(queue),
		}
		var pool vk.CommandPool
		if res := pm.device.commands.CreateCommandPool(pm.device.handle, unsafe.Pointer(&ci), &pool); res != vk.Success {
			return vk.CommandBuffer(0), fmt.Errorf("rhi: vkCreateCommandPool returned %s", res)
		}
		tp = &threadPool{pool: pool, refs: tracker.NewReferenceSet()}
		slot.pools[key] = tp
	}

	if n := len(tp.free); n > 0 {
		cb := tp.free[n-1]
		tp.free = tp.free[:n-1]
		tp.used = append(tp.used, cb)
		return cb, nil
	}

	allocInfo := vk.CommandBufferAllocateInfo{
		SType:              vk.StructureTypeCommandBufferAllocateInfo,
		CommandPool:        tp.pool,
		Level:              vk.CommandBufferLevelPrimary,
		CommandBufferCount: 1,
	}
	var cb vk.CommandBuffer
	if res := pm.device.commands.AllocateCommandBuffers(pm.device.handle, unsafe.Pointer(&allocInfo), unsafe.Pointer(&cb)); res != vk.Success {
		return vk.CommandBuffer(0), fmt.Errorf("rhi: vkAllocateCommandBuffers returned %s", res)
	}
	tp.used = append(tp.used, cb)
	return cb, nil
}

// referenceSet returns the per-(queue,thread) reference set for the
// current frame slot. The set is created by getCommandBundle's pool
// lazy-init path; referenceSet itself creates nothing and returns nil if
// that pair has not been touched yet this frame.
func (pm *poolManager) referenceSet(queue types.QueueType, thread uint32) *tracker.ReferenceSet {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	slot := &pm.slots[pm.current]
	key := threadPoolKey{queue: queue, thread: thread}
	tp, ok := slot.pools[key]
	if !ok {
		return nil
	}
	return tp.refs
}

// fence returns the fence to be signaled on the current frame's last
// submit.
func (pm *poolManager) fence() vk.Fence {
	return pm.slots[pm.current].fence
}

// waitForFreePool waits on the current frame slot's fence, resets every
// pool touched last time this slot was used, moves used buffers back to
// free, and drains each pool's reference set through the tracker — the
// sole mechanism by which resources become destroyable (§4.5).
func (pm *poolManager) waitForFreePool(tr *tracker.Tracker) error {
	fence := pm.fence()
	if res := pm.device.commands.WaitForFences(pm.device.handle, 1, unsafe.Pointer(&fence), 1, ^uint64(0)); res != vk.Success {
		return fmt.Errorf("rhi: vkWaitForFences returned %s", res)
	}
	if res := pm.device.commands.ResetFences(pm.device.handle, 1, unsafe.Pointer(&fence)); res != vk.Success {
		return fmt.Errorf("rhi: vkResetFences returned %s", res)
	}

	pm.mu.Lock()
	defer pm.mu.Unlock()

	slot := &pm.slots[pm.current]
	for _, tp := range slot.pools {
		if res := pm.device.commands.ResetCommandPool(pm.device.handle, tp.pool, 0); res != vk.Success {
			return fmt.Errorf("rhi: vkResetCommandPool returned %s", res)
		}
		tp.free = append(tp.free, tp.used...)
		tp.used = tp.used[:0]
		tr.RemoveReferences(tp.refs)
	}
	return nil
}

// currentSlot reports the frame slot index currently in use.
func (pm *poolManager) currentSlot() uint32 {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	return pm.current
}

// usedBuffers returns the command buffers currently allocated to (queue,
// thread) in this frame slot, in the order getCommandBundle handed them
// out — the set the submission scheduler's present path needs to resubmit
// without threading them through an extra return value.
func (pm *poolManager) usedBuffers(queue types.QueueType, thread uint32) []vk.CommandBuffer {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	slot := &pm.slots[pm.current]
	tp, ok := slot.pools[threadPoolKey{queue: queue, thread: thread}]
	if !ok {
		return nil
	}
	return tp.used
}

// endFrame advances to the next frame slot modulo FramesInFlight.
func (pm *poolManager) endFrame() {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.current = (pm.current + 1) % uint32(len(pm.slots))
}
