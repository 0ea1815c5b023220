package memory

import (
	"errors"
	"testing"
)

func TestNewBuddy(t *testing.T) {
	tests := []struct {
		name      string
		blockSize uint64
		minSize   uint64
		wantErr   bool
	}{
		{name: "valid 1MB with 256B min", blockSize: 1 << 20, minSize: 256},
		{name: "valid 64MB with 4KB min", blockSize: 64 << 20, minSize: 4096},
		{name: "valid equal sizes", blockSize: 4096, minSize: 4096},
		{name: "invalid zero block", blockSize: 0, minSize: 256, wantErr: true},
		{name: "invalid zero min", blockSize: 1 << 20, minSize: 0, wantErr: true},
		{name: "invalid non-power-of-2 block", blockSize: 1000, minSize: 256, wantErr: true},
		{name: "invalid non-power-of-2 min", blockSize: 1 << 20, minSize: 300, wantErr: true},
		{name: "invalid min greater than block", blockSize: 256, minSize: 4096, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBuddy(tt.blockSize, tt.minSize)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewBuddy() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestBuddyAllocFitsRequestedOrder(t *testing.T) {
	b, err := NewBuddy(1<<20, 256)
	if err != nil {
		t.Fatal(err)
	}
	r, err := b.Alloc(1000)
	if err != nil {
		t.Fatal(err)
	}
	if r.Size != 1024 {
		t.Fatalf("expected rounded size 1024, got %d", r.Size)
	}
}

func TestBuddyExhaustion(t *testing.T) {
	b, err := NewBuddy(1024, 256)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 4; i++ {
		if _, err := b.Alloc(256); err != nil {
			t.Fatalf("alloc %d: %v", i, err)
		}
	}
	if _, err := b.Alloc(256); !errors.Is(err, ErrOutOfMemory) {
		t.Fatalf("expected ErrOutOfMemory, got %v", err)
	}
}

func TestBuddyFreeMergesBuddies(t *testing.T) {
	b, err := NewBuddy(1024, 256)
	if err != nil {
		t.Fatal(err)
	}
	regions := make([]Region, 4)
	for i := range regions {
		r, err := b.Alloc(256)
		if err != nil {
			t.Fatalf("alloc %d: %v", i, err)
		}
		regions[i] = r
	}
	for _, r := range regions {
		if err := b.Free(r); err != nil {
			t.Fatalf("free %+v: %v", r, err)
		}
	}

	// Fully merged back into one free block at max order: a single
	// full-size allocation should now succeed.
	whole, err := b.Alloc(1024)
	if err != nil {
		t.Fatalf("alloc after full merge: %v", err)
	}
	if whole.Size != 1024 {
		t.Fatalf("expected merged block of 1024, got %d", whole.Size)
	}
}

func TestBuddyDoubleFreeRejected(t *testing.T) {
	b, err := NewBuddy(1024, 256)
	if err != nil {
		t.Fatal(err)
	}
	r, err := b.Alloc(256)
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Free(r); err != nil {
		t.Fatal(err)
	}
	if err := b.Free(r); !errors.Is(err, ErrNotAllocated) {
		t.Fatalf("expected ErrNotAllocated on double free, got %v", err)
	}
}

func TestBuddyCanFitTracksLargestFree(t *testing.T) {
	b, err := NewBuddy(1024, 256)
	if err != nil {
		t.Fatal(err)
	}
	if !b.CanFit(1024) {
		t.Fatalf("fresh block should fit its own full size")
	}
	if b.CanFit(2048) {
		t.Fatalf("a request larger than the block must never fit")
	}

	big, err := b.Alloc(768) // rounds up to 1024, consumes the whole block
	if err != nil {
		t.Fatal(err)
	}
	if b.CanFit(256) {
		t.Fatalf("block is fully allocated, nothing should fit")
	}

	if err := b.Free(big); err != nil {
		t.Fatal(err)
	}
	if !b.CanFit(1024) {
		t.Fatalf("freeing the only allocation should merge back to the full block")
	}
}

func TestBuddyStatsTrackPeakAndLive(t *testing.T) {
	b, err := NewBuddy(1<<12, 256)
	if err != nil {
		t.Fatal(err)
	}
	a, _ := b.Alloc(256)
	_, _ = b.Alloc(256)
	if got := b.Stats().LiveCount; got != 2 {
		t.Fatalf("expected 2 live allocations, got %d", got)
	}
	if err := b.Free(a); err != nil {
		t.Fatal(err)
	}
	if got := b.Stats().LiveCount; got != 1 {
		t.Fatalf("expected 1 live allocation after free, got %d", got)
	}
	if b.Stats().Peak < 512 {
		t.Fatalf("expected peak to record the high-water mark, got %d", b.Stats().Peak)
	}
}
