package bindless

import (
	"testing"

	"github.com/tundraforge/rhi/types"
)

func TestAllocateFreeWithinBound(t *testing.T) {
	m := NewManager(0)
	seen := make(map[uint32]bool)

	for i := 0; i < 100; i++ {
		slot, err := m.Allocate(KindBuffer)
		if err != nil {
			t.Fatalf("allocate %d: %v", i, err)
		}
		if slot >= MaxDescriptorCount {
			t.Fatalf("slot %d exceeds MaxDescriptorCount", slot)
		}
		seen[slot] = true
	}
	if len(seen) != 100 {
		t.Fatalf("expected 100 distinct slots, got %d", len(seen))
	}
}

func TestFreedSlotsAreReused(t *testing.T) {
	m := NewManager(4)

	a, _ := m.Allocate(KindSampler)
	b, _ := m.Allocate(KindSampler)
	m.Free(KindSampler, a)
	m.Free(KindSampler, b)

	c, err := m.Allocate(KindSampler)
	if err != nil {
		t.Fatalf("allocate after free: %v", err)
	}
	if c != a && c != b {
		t.Fatalf("expected a freed slot to be reused, got fresh slot %d", c)
	}
}

func TestExhaustionBeyondMax(t *testing.T) {
	m := NewManager(2)
	if _, err := m.Allocate(KindStorageImage); err != nil {
		t.Fatalf("first allocate: %v", err)
	}
	if _, err := m.Allocate(KindStorageImage); err != nil {
		t.Fatalf("second allocate: %v", err)
	}
	if _, err := m.Allocate(KindStorageImage); err != ErrSlotsExhausted {
		t.Fatalf("expected ErrSlotsExhausted, got %v", err)
	}
}

func TestDescriptorRecyclingPeakBound(t *testing.T) {
	// Mirrors scenario 2 (§8): create+destroy 100_000 buffers sequentially;
	// expect the peak bump index to never exceed the table cap.
	const cap = 65535
	m := NewManager(cap)

	var peak uint32
	for i := 0; i < 100_000; i++ {
		b, err := m.AllocateBuffer()
		if err != nil {
			t.Fatalf("allocate %d: %v", i, err)
		}
		if b.SRVSlot > peak {
			peak = b.SRVSlot
		}
		m.FreeBuffer(b)
	}
	if peak >= cap {
		t.Fatalf("peak slot %d must stay below cap %d", peak, cap)
	}
}

func TestTextureIndependentSlots(t *testing.T) {
	m := NewManager(0)

	both, err := m.AllocateTexture(true, true)
	if err != nil {
		t.Fatalf("allocate both: %v", err)
	}
	if both.SRVSlot == types.SlotSentinel || both.UAVSlot == types.SlotSentinel {
		t.Fatalf("expected both slots populated")
	}

	srvOnly, err := m.AllocateTexture(true, false)
	if err != nil {
		t.Fatalf("allocate srv-only: %v", err)
	}
	if srvOnly.SRVSlot == types.SlotSentinel {
		t.Fatalf("expected srv slot populated")
	}
	if srvOnly.UAVSlot != types.SlotSentinel {
		t.Fatalf("expected uav slot to be sentinel")
	}

	m.FreeTexture(both)
	m.FreeTexture(srvOnly)
}
