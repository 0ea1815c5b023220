package tracker

import (
	"testing"

	"github.com/tundraforge/rhi/types"
)

func TestDestructorRunsExactlyOnceAtZero(t *testing.T) {
	tr := New()
	id := types.NewHandle(types.HandleTypeBuffer, 1, 0)

	calls := 0
	tr.AddResource(id, func() { calls++ })
	tr.AddReference(id)
	tr.AddReference(id)

	tr.RemoveReference(id)
	if calls != 0 {
		t.Fatalf("destructor must not run before refcount reaches zero")
	}
	tr.RemoveReference(id)
	tr.RemoveReference(id) // drains the initial refcount of 1 from AddResource
	if calls != 1 {
		t.Fatalf("expected destructor to run exactly once, ran %d times", calls)
	}
	// The entry is erased at zero, so a further remove panics instead of
	// reaching the destructor again.
	func() {
		defer func() { _ = recover() }()
		tr.RemoveReference(id)
	}()
	if calls != 1 {
		t.Fatalf("got called again, total %d times", calls)
	}
}

func TestRemoveReferenceOnMissingIDPanics(t *testing.T) {
	tr := New()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on removing a reference to a missing id")
		}
	}()
	tr.RemoveReference(types.NewHandle(types.HandleTypeBuffer, 42, 0))
}

func TestAddReferenceOnMissingIDPanics(t *testing.T) {
	tr := New()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on add_reference to a missing id")
		}
	}()
	tr.AddReference(types.NewHandle(types.HandleTypeBuffer, 42, 0))
}

func TestReferenceSetIsIdempotent(t *testing.T) {
	tr := New()
	id := types.NewHandle(types.HandleTypeBuffer, 1, 0)
	tr.AddResource(id, func() {})

	set := NewReferenceSet()
	for i := 0; i < 5; i++ {
		set.AddReference(tr, id)
	}
	if set.Len() != 1 {
		t.Fatalf("expected one distinct id in the set, got %d", set.Len())
	}

	// Refcount started at 1 (AddResource); the set should have added exactly one more.
	destroyed := false
	tr2 := New()
	tr2.AddResource(id, func() { destroyed = true })
	set2 := NewReferenceSet()
	set2.AddReference(tr2, id)
	set2.AddReference(tr2, id)
	tr2.RemoveReference(id) // drains the initial refcount of 1
	if destroyed {
		t.Fatalf("destructor ran too early: set's single increment should still hold a reference")
	}
	tr2.RemoveReferences(set2)
	if !destroyed {
		t.Fatalf("expected destructor to run after draining the set's one reference")
	}
}

func TestRemoveReferencesDecrementsOncePerUniqueID(t *testing.T) {
	tr := New()
	idA := types.NewHandle(types.HandleTypeBuffer, 1, 0)
	idB := types.NewHandle(types.HandleTypeBuffer, 2, 0)

	destroyedA, destroyedB := false, false
	tr.AddResource(idA, func() { destroyedA = true })
	tr.AddResource(idB, func() { destroyedB = true })

	set := NewReferenceSet()
	set.AddReference(tr, idA)
	set.AddReference(tr, idA) // no-op, already seen
	set.AddReference(tr, idB)

	tr.RemoveReference(idA) // drains the initial refcount of 1
	tr.RemoveReference(idB)
	tr.RemoveReferences(set)

	if !destroyedA || !destroyedB {
		t.Fatalf("expected both resources destroyed: a=%v b=%v", destroyedA, destroyedB)
	}
	if set.Len() != 0 {
		t.Fatalf("expected RemoveReferences to clear the set")
	}
}
