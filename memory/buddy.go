// Copyright 2025 The Tundraforge Authors
// SPDX-License-Identifier: MIT

package memory

import (
	"errors"
	"math/bits"

	"golang.org/x/exp/constraints"
)

// Buddy suballocates a single fixed-size VkDeviceMemory block (the memory
// allocator's C4 pooling layer) by repeatedly halving it into power-of-2
// regions. Allocating splits down from the smallest free block that fits;
// freeing walks back up, merging a block with its buddy whenever both
// halves are free. Both operations are O(maxOrder), i.e. O(log(blockSize)).
type Buddy struct {
	blockSize uint64
	minSize   uint64
	maxOrder  int

	// free[order] is the set of free block offsets of size minSize<<order.
	free []map[uint64]struct{}

	// split tracks parent blocks that have been divided, keyed by
	// (order<<48)|offset, so a merge can tell whether a sibling's parent
	// is still considered "whole".
	split map[uint64]struct{}

	// live maps an allocated offset to its order, for Free's validation.
	live map[uint64]int

	// largestFree is the highest order currently holding a free block, or
	// -1 when the block is fully allocated. allocator.go's pool keeps one
	// Buddy per VkDeviceMemory block and has to pick which block (if any)
	// can satisfy a request before paying for a real Alloc attempt; this
	// field is what CanFit answers that from, instead of the pool trying
	// every block in turn and reading the error back.
	largestFree int

	stats Stats
}

// Stats reports a Buddy's current and lifetime occupancy.
type Stats struct {
	BlockSize       uint64
	InUse           uint64
	Peak            uint64
	LiveCount       uint64
	TotalAlloc      uint64
	TotalFree       uint64
	SplitCount      uint64
	MergeCount      uint64
	LargestFreeSize uint64
}

// Region is a suballocation returned by Alloc and consumed by Free.
type Region struct {
	Offset uint64
	Size   uint64
	order  int
}

var (
	ErrOutOfMemory    = errors.New("memory: buddy has no free block of the requested size")
	ErrRequestTooLarge = errors.New("memory: requested size exceeds the block")
	ErrBadConfig      = errors.New("memory: block size and minimum size must both be powers of two")
	ErrNotAllocated   = errors.New("memory: region was not allocated by this buddy, or already freed")
)

// NewBuddy creates an allocator managing blockSize bytes, handing out
// regions no smaller than minSize. Both must be powers of two.
func NewBuddy(blockSize, minSize uint64) (*Buddy, error) {
	if blockSize == 0 || !isPow2(blockSize) || minSize == 0 || !isPow2(minSize) || minSize > blockSize {
		return nil, ErrBadConfig
	}

	maxOrder := log2Floor(blockSize / minSize)
	b := &Buddy{
		blockSize:   blockSize,
		minSize:     minSize,
		maxOrder:    maxOrder,
		free:        make([]map[uint64]struct{}, maxOrder+1),
		split:       make(map[uint64]struct{}),
		live:        make(map[uint64]int),
		largestFree: maxOrder,
		stats:       Stats{BlockSize: blockSize, LargestFreeSize: blockSize},
	}
	for i := range b.free {
		b.free[i] = make(map[uint64]struct{})
	}
	b.free[maxOrder][0] = struct{}{}
	return b, nil
}

// Alloc reserves a region of at least size bytes, rounded up to a power
// of two no smaller than minSize.
func (b *Buddy) Alloc(size uint64) (Region, error) {
	if size == 0 || size > b.blockSize {
		return Region{}, ErrRequestTooLarge
	}

	want := nextPow2(size)
	if want < b.minSize {
		want = b.minSize
	}
	order := log2Floor(want / b.minSize)
	if order > b.maxOrder {
		return Region{}, ErrRequestTooLarge
	}

	offset, ok := b.takeOrSplit(order)
	if !ok {
		return Region{}, ErrOutOfMemory
	}

	b.live[offset] = order
	b.stats.InUse += want
	b.stats.LiveCount++
	b.stats.TotalAlloc += want
	if b.stats.InUse > b.stats.Peak {
		b.stats.Peak = b.stats.InUse
	}
	return Region{Offset: offset, Size: want, order: order}, nil
}

// Free releases a region previously returned by Alloc, merging it with
// its buddy when possible.
func (b *Buddy) Free(r Region) error {
	order, ok := b.live[r.Offset]
	if !ok || order != r.order {
		return ErrNotAllocated
	}
	delete(b.live, r.Offset)

	size := b.minSize << order
	b.stats.InUse -= size
	b.stats.LiveCount--
	b.stats.TotalFree += size

	b.releaseAndMerge(r.Offset, order)
	return nil
}

// CanFit reports whether this block currently has a free region large
// enough to satisfy size, without attempting (and rolling back) a real
// Alloc. allocator.go's pool calls this once per block to find a
// candidate before committing to one.
func (b *Buddy) CanFit(size uint64) bool {
	if size == 0 || size > b.blockSize || b.largestFree < 0 {
		return false
	}
	want := nextPow2(size)
	if want < b.minSize {
		want = b.minSize
	}
	order := log2Floor(want / b.minSize)
	return order <= b.maxOrder && order <= b.largestFree
}

func (b *Buddy) Stats() Stats {
	s := b.stats
	if b.largestFree >= 0 {
		s.LargestFreeSize = b.minSize << uint(b.largestFree)
	} else {
		s.LargestFreeSize = 0
	}
	return s
}

// refreshLargestFree recomputes largestFree after a mutation to the free
// lists. Called with the pre-mutation value still in largestFree, it only
// ever needs to scan downward: takeOrSplit can only shrink it, and
// releaseAndMerge updates it directly on the way back up.
func (b *Buddy) refreshLargestFree() {
	for o := b.largestFree; o >= 0; o-- {
		if len(b.free[o]) > 0 {
			b.largestFree = o
			return
		}
	}
	b.largestFree = -1
}

// takeOrSplit pops a free block at order, splitting a larger block down
// if none is free at the exact order requested.
func (b *Buddy) takeOrSplit(order int) (uint64, bool) {
	if len(b.free[order]) > 0 {
		for offset := range b.free[order] {
			delete(b.free[order], offset)
			b.refreshLargestFree()
			return offset, true
		}
	}

	donor := -1
	for o := order + 1; o <= b.maxOrder; o++ {
		if len(b.free[o]) > 0 {
			donor = o
			break
		}
	}
	if donor == -1 {
		return 0, false
	}

	var offset uint64
	for o := range b.free[donor] {
		offset = o
		delete(b.free[donor], o)
		break
	}

	for o := donor; o > order; o-- {
		half := (b.minSize << o) >> 1
		b.split[(uint64(o)<<48)|offset] = struct{}{}
		b.stats.SplitCount++
		b.free[o-1][offset+half] = struct{}{}
	}
	b.refreshLargestFree()
	return offset, true
}

// releaseAndMerge returns a block to its free list, coalescing upward
// while its buddy at each level is also free.
func (b *Buddy) releaseAndMerge(offset uint64, order int) {
	for order <= b.maxOrder {
		if order == b.maxOrder {
			b.free[order][offset] = struct{}{}
			if order > b.largestFree {
				b.largestFree = order
			}
			return
		}

		size := b.minSize << order
		var buddy uint64
		if offset&size == 0 {
			buddy = offset + size
		} else {
			buddy = offset - size
		}

		if _, free := b.free[order][buddy]; !free {
			b.free[order][offset] = struct{}{}
			if order > b.largestFree {
				b.largestFree = order
			}
			return
		}

		delete(b.free[order], buddy)
		b.stats.MergeCount++

		parentOffset := offset &^ size
		delete(b.split, (uint64(order+1)<<48)|parentOffset)

		offset = parentOffset
		order++
	}
}

// isPow2 and nextPow2 are generic over any unsigned integer so the same
// rounding logic could serve descriptor counts (uint32) as well as the
// byte sizes (uint64) used here, without duplicating it per width.
func isPow2[T constraints.Unsigned](n T) bool { return n > 0 && n&(n-1) == 0 }

func nextPow2[T constraints.Unsigned](n T) T {
	if n == 0 {
		return 1
	}
	if isPow2(n) {
		return n
	}
	return T(1) << (64 - bits.LeadingZeros64(uint64(n)))
}

func log2Floor(n uint64) int {
	if n == 0 {
		return 0
	}
	return 63 - bits.LeadingZeros64(n)
}
