// Package bindless implements the bindless descriptor-slot manager (§3,
// §4.3): four parallel bump-allocator-plus-free-stack tables, one per
// descriptor kind, handing out dense slot indices that shaders index into
// via the push-constant layout (§6). Writing the actual VkWriteDescriptorSet
// update is the caller's job (it needs the GPU-API handle being bound);
// this package only owns slot lifetime.
package bindless

import (
	"errors"
	"sync"

	"github.com/tundraforge/rhi/types"
)

// Kind names one of the four descriptor-kind tables.
type Kind uint8

const (
	KindBuffer Kind = iota
	KindSampledImage
	KindStorageImage
	KindSampler

	kindCount = int(KindSampler) + 1
)

func (k Kind) String() string {
	switch k {
	case KindBuffer:
		return "buffer"
	case KindSampledImage:
		return "sampled_image"
	case KindStorageImage:
		return "storage_image"
	case KindSampler:
		return "sampler"
	default:
		return "unknown"
	}
}

// MaxDescriptorCount bounds every slot table (§4.3 invariant).
const MaxDescriptorCount = 65535

// ErrSlotsExhausted is returned when a kind's table has allocated its
// maximum number of slots (the Manager's maxPerKind) and none have been
// freed.
var ErrSlotsExhausted = errors.New("bindless: descriptor slot table exhausted")

// slotTable is a bump allocator with a LIFO free stack for one descriptor
// kind. One mutex per kind (§5 shared-resource policy).
type slotTable struct {
	mu        sync.Mutex
	firstFree uint32
	freeStack []uint32
	max       uint32
}

func newSlotTable(max uint32) *slotTable {
	return &slotTable{max: max}
}

func (s *slotTable) allocate() (uint32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n := len(s.freeStack); n > 0 {
		idx := s.freeStack[n-1]
		s.freeStack = s.freeStack[:n-1]
		return idx, nil
	}
	if s.firstFree >= s.max {
		return 0, ErrSlotsExhausted
	}
	idx := s.firstFree
	s.firstFree++
	return idx, nil
}

// free returns a slot to the table. Slot reuse after this call is
// immediate; correctness relies on the resource tracker holding the
// resource alive until no in-flight command buffer still references the
// slot (§4.3).
func (s *slotTable) free(idx uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.freeStack = append(s.freeStack, idx)
}

func (s *slotTable) peak() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.firstFree
}

// Manager owns the four per-kind slot tables.
type Manager struct {
	tables [kindCount]*slotTable
}

// NewManager creates a Manager whose tables each cap out at maxPerKind
// (defaults to MaxDescriptorCount when 0).
func NewManager(maxPerKind uint32) *Manager {
	if maxPerKind == 0 {
		maxPerKind = MaxDescriptorCount
	}
	m := &Manager{}
	for i := range m.tables {
		m.tables[i] = newSlotTable(maxPerKind)
	}
	return m
}

func (m *Manager) table(k Kind) *slotTable { return m.tables[k] }

// Allocate acquires one slot of kind k.
func (m *Manager) Allocate(k Kind) (uint32, error) {
	return m.table(k).allocate()
}

// Free releases slot back to kind k's table.
func (m *Manager) Free(k Kind, slot uint32) {
	m.table(k).free(slot)
}

// PeakSlot returns the given kind's bump-allocator high-water mark: the
// number of distinct slots the table has ever handed out, which is one
// past the highest slot index (0 when nothing has been allocated).
func (m *Manager) PeakSlot(k Kind) uint32 {
	return m.table(k).peak()
}

// AllocateBuffer acquires a single slot used for both the SRV and UAV
// flavour of a storage buffer (§4.3: "the API exposes the storage-buffer
// type either way").
func (m *Manager) AllocateBuffer() (types.BindableHandle, error) {
	slot, err := m.Allocate(KindBuffer)
	if err != nil {
		return types.BindableHandle{}, err
	}
	return types.BindableHandle{SRVSlot: slot, UAVSlot: slot}, nil
}

// FreeBuffer releases a buffer's slot.
func (m *Manager) FreeBuffer(b types.BindableHandle) {
	if b.SRVSlot != types.SlotSentinel {
		m.Free(KindBuffer, b.SRVSlot)
	}
}

// AllocateSampler acquires a single slot mirrored into both SRV and UAV
// fields (§4.3).
func (m *Manager) AllocateSampler() (types.BindableHandle, error) {
	slot, err := m.Allocate(KindSampler)
	if err != nil {
		return types.BindableHandle{}, err
	}
	return types.BindableHandle{SRVSlot: slot, UAVSlot: slot}, nil
}

// FreeSampler releases a sampler's slot.
func (m *Manager) FreeSampler(b types.BindableHandle) {
	if b.SRVSlot != types.SlotSentinel {
		m.Free(KindSampler, b.SRVSlot)
	}
}

// AllocateTexture acquires independent SRV (sampled-image table) and UAV
// (storage-image table) slots according to the requested usage flags.
// Either slot is left as types.SlotSentinel when the corresponding usage
// bit is absent.
func (m *Manager) AllocateTexture(wantSRV, wantUAV bool) (types.BindableHandle, error) {
	b := types.BindableHandle{SRVSlot: types.SlotSentinel, UAVSlot: types.SlotSentinel}
	if wantSRV {
		slot, err := m.Allocate(KindSampledImage)
		if err != nil {
			return types.BindableHandle{}, err
		}
		b.SRVSlot = slot
	}
	if wantUAV {
		slot, err := m.Allocate(KindStorageImage)
		if err != nil {
			if b.SRVSlot != types.SlotSentinel {
				m.Free(KindSampledImage, b.SRVSlot)
			}
			return types.BindableHandle{}, err
		}
		b.UAVSlot = slot
	}
	return b, nil
}

// FreeTexture releases whichever of a texture's slots are present.
func (m *Manager) FreeTexture(b types.BindableHandle) {
	if b.SRVSlot != types.SlotSentinel {
		m.Free(KindSampledImage, b.SRVSlot)
	}
	if b.UAVSlot != types.SlotSentinel {
		m.Free(KindStorageImage, b.UAVSlot)
	}
}
