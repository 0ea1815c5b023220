// Copyright 2025 The Tundraforge Authors
// SPDX-License-Identifier: MIT

package memory

import (
	"github.com/tundraforge/rhi/internal/vk"
	"github.com/tundraforge/rhi/types"
)

// knownFlags are the memory property bits this allocator understands.
// A type carrying anything else (a vendor-specific protected/coherent
// variant) is excluded rather than risk misinterpreting it.
const knownFlags = vk.MemoryPropertyDeviceLocalBit |
	vk.MemoryPropertyHostVisibleBit |
	vk.MemoryPropertyHostCoherentBit |
	vk.MemoryPropertyHostCachedBit |
	vk.MemoryPropertyLazilyAllocatedBit

// Selector picks the Vulkan memory type index backing each of the four
// spec-level MemoryType categories, given a device's reported heaps.
type Selector struct {
	props      vk.PhysicalDeviceMemoryProperties
	validTypes uint32
}

func NewSelector(props vk.PhysicalDeviceMemoryProperties) *Selector {
	var valid uint32
	for i := uint32(0); i < props.MemoryTypeCount; i++ {
		if props.MemoryTypes[i].PropertyFlags&^knownFlags == 0 {
			valid |= 1 << i
		}
	}
	return &Selector{props: props, validTypes: valid}
}

// requiredAndPreferred maps a spec MemoryType to the Vulkan property
// flags a candidate memory type must (required) or should (preferred)
// carry.
func requiredAndPreferred(kind types.MemoryType) (required, preferred vk.MemoryPropertyFlags) {
	switch kind {
	case types.MemoryTypeGPU:
		preferred = vk.MemoryPropertyDeviceLocalBit
	case types.MemoryTypeUpload:
		required = vk.MemoryPropertyHostVisibleBit
		preferred = vk.MemoryPropertyHostCoherentBit
	case types.MemoryTypeReadback:
		required = vk.MemoryPropertyHostVisibleBit
		preferred = vk.MemoryPropertyHostCachedBit
	case types.MemoryTypeDynamic:
		required = vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCoherentBit
	}
	return required, preferred
}

// Select finds the best memory type index satisfying typeBits (from
// VkMemoryRequirements) for the given spec-level memory category.
func (s *Selector) Select(typeBits uint32, kind types.MemoryType) (uint32, bool) {
	required, preferred := requiredAndPreferred(kind)

	if idx, ok := s.find(typeBits, required|preferred); ok {
		return idx, true
	}
	return s.find(typeBits, required)
}

func (s *Selector) find(typeBits uint32, flags vk.MemoryPropertyFlags) (uint32, bool) {
	for i := uint32(0); i < s.props.MemoryTypeCount; i++ {
		mask := uint32(1) << i
		if typeBits&mask == 0 || s.validTypes&mask == 0 {
			continue
		}
		if s.props.MemoryTypes[i].PropertyFlags&flags == flags {
			return i, true
		}
	}
	return 0, false
}

func (s *Selector) IsDeviceLocal(index uint32) bool {
	return index < s.props.MemoryTypeCount &&
		s.props.MemoryTypes[index].PropertyFlags&vk.MemoryPropertyDeviceLocalBit != 0
}

func (s *Selector) IsHostVisible(index uint32) bool {
	return index < s.props.MemoryTypeCount &&
		s.props.MemoryTypes[index].PropertyFlags&vk.MemoryPropertyHostVisibleBit != 0
}

func (s *Selector) HeapSize(heapIndex uint32) uint64 {
	if heapIndex >= s.props.MemoryHeapCount {
		return 0
	}
	return s.props.MemoryHeaps[heapIndex].Size
}
