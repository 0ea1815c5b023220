// Package handle implements the generational handle table (§3, §4.1):
// insertion-order slots mapping a types.Handle to an optional payload, with
// FIFO-delayed generation reuse and at-most-once destruction.
package handle

import (
	"sync"

	"github.com/tundraforge/rhi/types"
)

// MinFree is the minimum free-list fill before Add recycles a slot instead
// of appending a new one. Delaying reuse this way keeps stale handles
// detectably wrong for longer, which is worth the extra slot growth for
// debuggability (§4.1).
const MinFree = 1024

type slot[V any] struct {
	generation uint32
	payload    *V
}

// Table is a thread-safe handle table for payloads of type V, all tagged
// with the same types.HandleType.
type Table[V any] struct {
	mu       sync.RWMutex
	kind     types.HandleType
	slots    []slot[V]
	freeList []uint64
}

// New creates an empty table whose handles are tagged with kind.
func New[V any](kind types.HandleType) *Table[V] {
	return &Table[V]{kind: kind}
}

// Add inserts payload, returning its handle. A free slot is reused once the
// free list has accumulated at least MinFree entries; otherwise a new slot
// is appended, so generation reuse is always possible but never immediate.
func (t *Table[V]) Add(payload V) types.Handle {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.freeList) >= MinFree {
		idx := t.freeList[0]
		t.freeList = t.freeList[1:]
		s := &t.slots[idx]
		v := payload
		s.payload = &v
		return types.NewHandle(t.kind, idx, s.generation)
	}

	idx := uint64(len(t.slots))
	v := payload
	t.slots = append(t.slots, slot[V]{generation: 0, payload: &v})
	return types.NewHandle(t.kind, idx, 0)
}

// Destroy invalidates h. It reports whether h was live at the time of the
// call. The slot's generation is bumped unconditionally; the slot returns
// to the free list unless the new generation has reached saturation
// (MaxGeneration-1), in which case it is retired and never reused.
func (t *Table[V]) Destroy(h types.Handle) bool {
	if h.Type() != t.kind || h.IsNull() {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	idx := h.Index()
	if idx >= uint64(len(t.slots)) {
		return false
	}
	s := &t.slots[idx]
	if s.payload == nil || s.generation != h.Generation() {
		return false
	}

	s.payload = nil
	s.generation++
	if s.generation < types.MaxGeneration-1 {
		t.freeList = append(t.freeList, idx)
	}
	return true
}

// IsValid reports whether h currently names a live payload.
func (t *Table[V]) IsValid(h types.Handle) bool {
	if h.Type() != t.kind || h.IsNull() {
		return false
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	idx := h.Index()
	if idx >= uint64(len(t.slots)) {
		return false
	}
	s := &t.slots[idx]
	return s.payload != nil && s.generation == h.Generation()
}

// lookup resolves h under the caller's held lock, returning the payload
// pointer or a sentinel error (ErrNullHandle/ErrInvalidHandle).
func (t *Table[V]) lookup(h types.Handle) (*V, error) {
	if h.IsNull() {
		return nil, ErrNullHandle
	}
	if h.Type() != t.kind {
		return nil, ErrInvalidHandle
	}
	idx := h.Index()
	if idx >= uint64(len(t.slots)) {
		return nil, ErrInvalidHandle
	}
	s := &t.slots[idx]
	if s.payload == nil || s.generation != h.Generation() {
		return nil, ErrInvalidHandle
	}
	return s.payload, nil
}

// With calls fn with a read-only reference to h's payload, returning
// ErrNullHandle/ErrInvalidHandle if h is not live. fn must not retain the
// reference past the call: it is only valid while the table's lock is held.
func With[V any, R any](t *Table[V], h types.Handle, fn func(*V) R) (R, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var zero R
	p, err := t.lookup(h)
	if err != nil {
		return zero, err
	}
	return fn(p), nil
}

// WithMut calls fn with a mutable reference to h's payload, holding the
// table's write lock for the duration of the call.
func WithMut[V any, R any](t *Table[V], h types.Handle, fn func(*V) R) (R, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var zero R
	p, err := t.lookup(h)
	if err != nil {
		return zero, err
	}
	return fn(p), nil
}

// Len returns the number of slots ever allocated (live + free + retired).
func (t *Table[V]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.slots)
}

// FreeListLen returns the number of slots currently recyclable. Exposed
// for tests asserting the MinFree recycling threshold.
func (t *Table[V]) FreeListLen() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.freeList)
}
