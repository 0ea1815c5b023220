package handle

import (
	"testing"

	"github.com/tundraforge/rhi/types"
)

func TestAddThenValid(t *testing.T) {
	tbl := New[int](types.HandleTypeBuffer)
	h := tbl.Add(42)
	if !tbl.IsValid(h) {
		t.Fatalf("expected handle to be valid after Add")
	}
}

func TestDestroyInvalidates(t *testing.T) {
	tbl := New[int](types.HandleTypeBuffer)
	h := tbl.Add(42)
	if !tbl.Destroy(h) {
		t.Fatalf("expected Destroy to report the handle was live")
	}
	if tbl.IsValid(h) {
		t.Fatalf("expected handle to be invalid after Destroy")
	}
}

func TestOtherHandlesSurviveDestroy(t *testing.T) {
	tbl := New[int](types.HandleTypeBuffer)
	a := tbl.Add(1)
	b := tbl.Add(2)
	c := tbl.Add(3)

	tbl.Destroy(b)

	if !tbl.IsValid(a) || !tbl.IsValid(c) {
		t.Fatalf("destroying one handle must not affect others")
	}
	if tbl.IsValid(b) {
		t.Fatalf("b should be invalid")
	}
}

func TestNoReuseBelowMinFree(t *testing.T) {
	tbl := New[int](types.HandleTypeBuffer)
	seen := make(map[uint64]bool)

	for i := 0; i < MinFree-1; i++ {
		h := tbl.Add(i)
		tbl.Destroy(h)
		if seen[h.Index()] {
			t.Fatalf("index %d reused before reaching MinFree destroys", h.Index())
		}
		seen[h.Index()] = true
	}
}

func TestReuseAndGenerationBumpAboveMinFree(t *testing.T) {
	tbl := New[int](types.HandleTypeBuffer)

	// Push MinFree handles into the free list.
	handles := make([]types.Handle, 0, MinFree)
	for i := 0; i < MinFree; i++ {
		h := tbl.Add(i)
		handles = append(handles, h)
	}
	for _, h := range handles {
		tbl.Destroy(h)
	}

	// Now inserts should recycle slot 0 (FIFO) with a strictly larger generation.
	next := tbl.Add(999)
	if next.Index() != handles[0].Index() {
		t.Fatalf("expected FIFO reuse of slot %d, got %d", handles[0].Index(), next.Index())
	}
	if next.Generation() <= handles[0].Generation() {
		t.Fatalf("expected generation to strictly increase: old=%d new=%d",
			handles[0].Generation(), next.Generation())
	}
}

func TestDestroyUnknownHandleIsNoop(t *testing.T) {
	tbl := New[int](types.HandleTypeBuffer)
	if tbl.Destroy(types.NullHandle) {
		t.Fatalf("destroying the null handle must report false")
	}
	h := tbl.Add(1)
	tbl.Destroy(h)
	if tbl.Destroy(h) {
		t.Fatalf("double-destroy must report false")
	}
}

func TestWithAndWithMut(t *testing.T) {
	tbl := New[int](types.HandleTypeBuffer)
	h := tbl.Add(10)

	got, err := With(tbl, h, func(v *int) int { return *v })
	if err != nil || got != 10 {
		t.Fatalf("With: got %d, err %v", got, err)
	}

	_, err = WithMut(tbl, h, func(v *int) struct{} { *v = 20; return struct{}{} })
	if err != nil {
		t.Fatalf("WithMut: %v", err)
	}

	got, _ = With(tbl, h, func(v *int) int { return *v })
	if got != 20 {
		t.Fatalf("expected mutation to stick, got %d", got)
	}
}

func TestWithNullHandle(t *testing.T) {
	tbl := New[int](types.HandleTypeBuffer)
	_, err := With(tbl, types.NullHandle, func(v *int) int { return *v })
	if err != ErrNullHandle {
		t.Fatalf("expected ErrNullHandle, got %v", err)
	}
}

func TestWithInvalidHandle(t *testing.T) {
	tbl := New[int](types.HandleTypeBuffer)
	h := tbl.Add(1)
	tbl.Destroy(h)
	_, err := With(tbl, h, func(v *int) int { return *v })
	if err != ErrInvalidHandle {
		t.Fatalf("expected ErrInvalidHandle, got %v", err)
	}
}

func TestWrongTypeIsInvalid(t *testing.T) {
	tbl := New[int](types.HandleTypeBuffer)
	h := tbl.Add(1)
	wrongKind := types.NewHandle(types.HandleTypeTexture, h.Index(), h.Generation())
	if tbl.IsValid(wrongKind) {
		t.Fatalf("a handle minted for a different kind must not validate")
	}
}
