// Package tracker implements the resource tracker (§3, §4.2): atomic
// ref-counted deferred destruction keyed on a resource handle, so that a
// destroy_* call returns synchronously while the actual teardown waits
// until the last in-flight command-buffer reference is released.
package tracker

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/tundraforge/rhi/types"
)

// entry pairs a destructor with an atomic reference count. Reaching zero
// is terminal: the destructor runs exactly once and the entry is erased.
type entry struct {
	destructor func()
	refcount   atomic.Int32
}

// Tracker is the resource tracker shared by a Device. It is safe for
// concurrent use from any number of recording and decoding goroutines.
type Tracker struct {
	mu      sync.RWMutex
	entries map[types.Handle]*entry
}

// New creates an empty tracker.
func New() *Tracker {
	return &Tracker{entries: make(map[types.Handle]*entry)}
}

// AddResource registers id with an initial refcount of 1 and the closure
// that tears it down once the refcount reaches zero. destructor is called
// at most once, and only after the last reference is removed.
func (t *Tracker) AddResource(id types.Handle, destructor func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	e := &entry{destructor: destructor}
	e.refcount.Store(1)
	t.entries[id] = e
}

// AddReference increments id's refcount with a plain atomic add and no
// lock held across it: the surrounding command-buffer lifecycle (pool
// manager fence wait, §4.5) provides the happens-before guarantee that
// destruction waits for.
//
// AddReference panics if id has no registered entry — referencing a
// resource whose destructor has already run is a caller contract
// violation (§4.2).
func (t *Tracker) AddReference(id types.Handle) {
	t.mu.RLock()
	e, ok := t.entries[id]
	t.mu.RUnlock()
	if !ok {
		panic(fmt.Sprintf("tracker: add_reference on unregistered resource %s", id))
	}
	e.refcount.Add(1)
}

// RemoveReference decrements id's refcount. When the count transitions to
// zero, the destructor runs and the entry is erased. RemoveReference
// panics if id has no registered entry.
func (t *Tracker) RemoveReference(id types.Handle) {
	t.mu.RLock()
	e, ok := t.entries[id]
	t.mu.RUnlock()
	if !ok {
		panic(fmt.Sprintf("tracker: remove_reference on unregistered resource %s", id))
	}

	if e.refcount.Add(-1) != 0 {
		return
	}

	t.mu.Lock()
	// Re-check under the write lock. No other goroutine can observe this
	// same zero transition (the atomic decrement above reaches zero only
	// once), but the entry could have been re-added under a recycled
	// handle generation by the time we get the lock, so only erase the
	// instance we actually drained.
	if cur, ok := t.entries[id]; ok && cur == e {
		delete(t.entries, id)
	}
	t.mu.Unlock()

	e.destructor()
}

// RemoveReferences removes one reference for every unique id in set, then
// clears set. This is the sole mechanism by which the command-pool
// manager's per-frame resource references are released (§4.5).
func (t *Tracker) RemoveReferences(set *ReferenceSet) {
	for id := range set.ids {
		t.RemoveReference(id)
	}
	set.ids = make(map[types.Handle]struct{})
}

// Len returns the number of live tracked resources.
func (t *Tracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// ReferenceSet tracks which resources a single recording thread has
// already referenced during the current frame, ensuring at most one
// refcount increment per resource per recording (§3, §4.2). It is not
// safe for concurrent use — callers own one ReferenceSet per recording
// thread.
type ReferenceSet struct {
	ids map[types.Handle]struct{}
}

// NewReferenceSet creates an empty reference set.
func NewReferenceSet() *ReferenceSet {
	return &ReferenceSet{ids: make(map[types.Handle]struct{})}
}

// AddReference increments the tracker's global refcount for id on the
// first call for this id in the set's lifetime; subsequent calls for the
// same id are no-ops.
func (s *ReferenceSet) AddReference(t *Tracker, id types.Handle) {
	if _, seen := s.ids[id]; seen {
		return
	}
	s.ids[id] = struct{}{}
	t.AddReference(id)
}

// Len returns the number of distinct resources referenced so far.
func (s *ReferenceSet) Len() int { return len(s.ids) }
