// Copyright 2025 The Tundraforge Authors
// SPDX-License-Identifier: MIT

// Package memory implements the GPU memory allocator (C4): device memory
// type selection plus buddy suballocation pooled per memory type, with a
// dedicated-allocation fallback for large resources.
package memory

import (
	"errors"
	"fmt"
	"sync"
	"unsafe"

	"github.com/tundraforge/rhi/internal/vk"
	"github.com/tundraforge/rhi/types"
)

// Config tunes the pooling strategy. The zero value is invalid; use
// DefaultConfig.
type Config struct {
	// BlockSize is the size of each VkDeviceMemory block requested from
	// the driver to back a pool. Must be a power of two.
	BlockSize uint64

	// MinAllocationSize is the smallest suballocation the buddy will
	// hand out; also the alignment floor applied to every request.
	MinAllocationSize uint64

	// DedicatedThreshold: requests at or above this size bypass pooling
	// and get their own VkDeviceMemory.
	DedicatedThreshold uint64

	// MaxBlocksPerType caps how many BlockSize allocations a single
	// memory type's pool may hold before falling back to dedicated.
	MaxBlocksPerType int
}

func DefaultConfig() Config {
	return Config{
		BlockSize:          64 << 20,
		MinAllocationSize:  256,
		DedicatedThreshold: 32 << 20,
		MaxBlocksPerType:   8,
	}
}

// Allocation is a suballocated or dedicated region of device memory.
type Allocation struct {
	Memory     vk.DeviceMemory
	Offset     uint64
	Size       uint64
	TypeIndex  uint32
	dedicated  bool
	region     *Region
}

func (a *Allocation) IsDedicated() bool { return a.dedicated }

var (
	ErrNoMemoryType       = errors.New("memory: no memory type satisfies the request")
	ErrAllocationFailed   = errors.New("memory: vkAllocateMemory failed")
	ErrUnknownAllocation  = errors.New("memory: allocation not recognized by this allocator")
)

type pool struct {
	typeIndex uint32
	blocks    []*block
}

type block struct {
	memory vk.DeviceMemory
	buddy  *Buddy
}

// Allocator is the device-wide GPU memory allocator. Safe for concurrent
// use; every resource create path in the rhi package routes through it.
type Allocator struct {
	mu       sync.Mutex
	device   vk.Device
	commands *vk.Commands
	config   Config
	selector *Selector

	pools     map[uint32]*pool
	dedicated map[vk.DeviceMemory]*Allocation

	stats GlobalStats
}

// GlobalStats summarizes allocator-wide occupancy across all pools and
// dedicated allocations.
type GlobalStats struct {
	RequestedFromDriver uint64
	InUse               uint64
	PooledAllocations   uint64
	DedicatedAllocations uint64
}

func NewAllocator(device vk.Device, commands *vk.Commands, props vk.PhysicalDeviceMemoryProperties, config Config) (*Allocator, error) {
	if !isPow2(config.BlockSize) || !isPow2(config.MinAllocationSize) || config.MinAllocationSize > config.BlockSize {
		return nil, fmt.Errorf("memory: invalid config: %+v", config)
	}
	return &Allocator{
		device:    device,
		commands:  commands,
		config:    config,
		selector:  NewSelector(props),
		pools:     make(map[uint32]*pool),
		dedicated: make(map[vk.DeviceMemory]*Allocation),
	}, nil
}

// Alloc satisfies a memory requirement for a buffer or image already
// created (but not yet bound): reqs comes from vkGetBufferMemoryRequirements
// or vkGetImageMemoryRequirements, kind is the spec-level memory category
// driving the property-flag preference.
func (a *Allocator) Alloc(reqs vk.MemoryRequirements, kind types.MemoryType) (*Allocation, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	typeIndex, ok := a.selector.Select(reqs.MemoryTypeBits, kind)
	if !ok {
		return nil, ErrNoMemoryType
	}

	align := reqs.Alignment
	if align < a.config.MinAllocationSize {
		align = a.config.MinAllocationSize
	}
	size := reqs.Size
	if rem := size % align; rem != 0 {
		size += align - rem
	}

	if size >= a.config.DedicatedThreshold {
		return a.allocDedicated(size, typeIndex)
	}
	return a.allocPooled(size, typeIndex)
}

func (a *Allocator) allocDedicated(size uint64, typeIndex uint32) (*Allocation, error) {
	mem, err := a.raw(size, typeIndex)
	if err != nil {
		return nil, err
	}
	alloc := &Allocation{Memory: mem, Size: size, TypeIndex: typeIndex, dedicated: true}
	a.dedicated[mem] = alloc
	a.stats.RequestedFromDriver += size
	a.stats.InUse += size
	a.stats.DedicatedAllocations++
	return alloc, nil
}

func (a *Allocator) allocPooled(size uint64, typeIndex uint32) (*Allocation, error) {
	p, ok := a.pools[typeIndex]
	if !ok {
		p = &pool{typeIndex: typeIndex}
		a.pools[typeIndex] = p
	}

	for _, blk := range p.blocks {
		if !blk.buddy.CanFit(size) {
			continue
		}
		region, err := blk.buddy.Alloc(size)
		if err != nil {
			continue
		}
		a.stats.InUse += region.Size
		a.stats.PooledAllocations++
		return &Allocation{Memory: blk.memory, Offset: region.Offset, Size: region.Size, TypeIndex: typeIndex, region: &region}, nil
	}

	if len(p.blocks) >= a.config.MaxBlocksPerType {
		return a.allocDedicated(size, typeIndex)
	}

	mem, err := a.raw(a.config.BlockSize, typeIndex)
	if err != nil {
		return nil, err
	}
	buddy, err := NewBuddy(a.config.BlockSize, a.config.MinAllocationSize)
	if err != nil {
		a.free(mem)
		return nil, err
	}
	blk := &block{memory: mem, buddy: buddy}
	p.blocks = append(p.blocks, blk)
	a.stats.RequestedFromDriver += a.config.BlockSize

	region, err := buddy.Alloc(size)
	if err != nil {
		return nil, err
	}
	a.stats.InUse += region.Size
	a.stats.PooledAllocations++
	return &Allocation{Memory: mem, Offset: region.Offset, Size: region.Size, TypeIndex: typeIndex, region: &region}, nil
}

// Free releases an allocation back to its pool, or to the driver if it
// was dedicated.
func (a *Allocator) Free(alloc *Allocation) error {
	if alloc == nil {
		return ErrUnknownAllocation
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if alloc.dedicated {
		if _, ok := a.dedicated[alloc.Memory]; !ok {
			return ErrUnknownAllocation
		}
		a.free(alloc.Memory)
		delete(a.dedicated, alloc.Memory)
		a.stats.RequestedFromDriver -= alloc.Size
		a.stats.InUse -= alloc.Size
		a.stats.DedicatedAllocations--
		return nil
	}

	if alloc.region == nil {
		return ErrUnknownAllocation
	}
	p, ok := a.pools[alloc.TypeIndex]
	if !ok {
		return ErrUnknownAllocation
	}
	for _, blk := range p.blocks {
		if blk.memory != alloc.Memory {
			continue
		}
		if err := blk.buddy.Free(*alloc.region); err != nil {
			return err
		}
		a.stats.InUse -= alloc.region.Size
		a.stats.PooledAllocations--
		return nil
	}
	return ErrUnknownAllocation
}

// Destroy releases every block this allocator holds. Call before
// destroying the device.
func (a *Allocator) Destroy() {
	a.mu.Lock()
	defer a.mu.Unlock()

	for mem := range a.dedicated {
		a.free(mem)
	}
	a.dedicated = make(map[vk.DeviceMemory]*Allocation)

	for _, p := range a.pools {
		for _, blk := range p.blocks {
			a.free(blk.memory)
		}
	}
	a.pools = make(map[uint32]*pool)
	a.stats = GlobalStats{}
}

func (a *Allocator) Stats() GlobalStats {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stats
}

func (a *Allocator) Selector() *Selector { return a.selector }

func (a *Allocator) raw(size uint64, typeIndex uint32) (vk.DeviceMemory, error) {
	info := vk.MemoryAllocateInfo{
		SType:           vk.StructureTypeMemoryAllocateInfo,
		AllocationSize:  size,
		MemoryTypeIndex: typeIndex,
	}
	var mem vk.DeviceMemory
	if res := a.commands.AllocateMemory(a.device, unsafe.Pointer(&info), &mem); res != vk.Success {
		return 0, fmt.Errorf("%w: %s", ErrAllocationFailed, res)
	}
	return mem, nil
}

func (a *Allocator) free(mem vk.DeviceMemory) {
	a.commands.FreeMemory(a.device, mem)
}
