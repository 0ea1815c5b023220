package memory

import (
	"testing"

	"github.com/tundraforge/rhi/internal/vk"
	"github.com/tundraforge/rhi/types"
)

func fakeProps() vk.PhysicalDeviceMemoryProperties {
	var props vk.PhysicalDeviceMemoryProperties
	props.MemoryTypeCount = 3
	props.MemoryTypes[0] = vk.MemoryType{PropertyFlags: vk.MemoryPropertyDeviceLocalBit, HeapIndex: 0}
	props.MemoryTypes[1] = vk.MemoryType{PropertyFlags: vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCoherentBit, HeapIndex: 1}
	props.MemoryTypes[2] = vk.MemoryType{PropertyFlags: vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCachedBit, HeapIndex: 1}
	props.MemoryHeapCount = 2
	props.MemoryHeaps[0] = vk.MemoryHeap{Size: 4 << 30}
	props.MemoryHeaps[1] = vk.MemoryHeap{Size: 8 << 30}
	return props
}

func TestNewSelectorAcceptsAllKnownTypes(t *testing.T) {
	s := NewSelector(fakeProps())
	if s.validTypes != 0b111 {
		t.Fatalf("validTypes = %b, want %b", s.validTypes, 0b111)
	}
}

func TestSelectGPUPrefersDeviceLocal(t *testing.T) {
	s := NewSelector(fakeProps())
	idx, ok := s.Select(0b111, types.MemoryTypeGPU)
	if !ok || idx != 0 {
		t.Fatalf("Select(GPU) = (%d, %v), want (0, true)", idx, ok)
	}
}

func TestSelectUploadPrefersCoherent(t *testing.T) {
	s := NewSelector(fakeProps())
	idx, ok := s.Select(0b111, types.MemoryTypeUpload)
	if !ok || idx != 1 {
		t.Fatalf("Select(Upload) = (%d, %v), want (1, true)", idx, ok)
	}
}

func TestSelectReadbackPrefersCached(t *testing.T) {
	s := NewSelector(fakeProps())
	idx, ok := s.Select(0b111, types.MemoryTypeReadback)
	if !ok || idx != 2 {
		t.Fatalf("Select(Readback) = (%d, %v), want (2, true)", idx, ok)
	}
}

func TestSelectRespectsTypeBitsMask(t *testing.T) {
	s := NewSelector(fakeProps())
	// Only type index 2 allowed, even though GPU would otherwise pick 0.
	idx, ok := s.Select(0b100, types.MemoryTypeGPU)
	if !ok || idx != 2 {
		t.Fatalf("Select with restricted mask = (%d, %v), want (2, true)", idx, ok)
	}
}

func TestSelectNoSuitableType(t *testing.T) {
	s := NewSelector(fakeProps())
	if _, ok := s.Select(0, types.MemoryTypeGPU); ok {
		t.Fatalf("expected no suitable type for an empty type-bits mask")
	}
}

func TestIsDeviceLocalAndHostVisible(t *testing.T) {
	s := NewSelector(fakeProps())
	if !s.IsDeviceLocal(0) {
		t.Fatalf("expected type 0 to be device local")
	}
	if s.IsDeviceLocal(1) {
		t.Fatalf("expected type 1 to not be device local")
	}
	if !s.IsHostVisible(1) {
		t.Fatalf("expected type 1 to be host visible")
	}
}
