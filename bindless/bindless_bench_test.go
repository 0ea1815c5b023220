package bindless

import "testing"

// BenchmarkAllocateFreeBuffer measures the hot path exercised by every
// buffer create/destroy: one bump-or-pop allocate, one free-stack push.
func BenchmarkAllocateFreeBuffer(b *testing.B) {
	b.ReportAllocs()
	m := NewManager(0)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf, err := m.AllocateBuffer()
		if err != nil {
			b.Fatal(err)
		}
		m.FreeBuffer(buf)
	}
}

// BenchmarkAllocateTextureBothSlots measures the two-table path used by
// textures that need both an SRV and a UAV slot.
func BenchmarkAllocateTextureBothSlots(b *testing.B) {
	b.ReportAllocs()
	m := NewManager(0)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tex, err := m.AllocateTexture(true, true)
		if err != nil {
			b.Fatal(err)
		}
		m.FreeTexture(tex)
	}
}
