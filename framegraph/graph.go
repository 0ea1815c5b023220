// Copyright 2025 The Tundraforge Authors
// SPDX-License-Identifier: MIT

// Package framegraph builds, culls, and executes a per-frame DAG of
// passes over virtual resources (§4.9). A Graph is built fresh every
// frame: add passes via AddPass, then call Execute to cull dead work,
// realize the surviving virtual resources against real buffers and
// textures, place barriers, and submit.
package framegraph

import (
	"github.com/tundraforge/rhi/rhi"
	"github.com/tundraforge/rhi/types"
)

type resourceKind uint8

const (
	resourceTexture resourceKind = iota
	resourceBuffer
)

// resourceChain is the single physical resource behind every generation
// (resourceVersion) a create/read/write chain produces. Realization
// (§4.9.4) fills in physical once the graph decides the chain survives;
// imported chains have it from the start and are never created or
// destroyed by the graph.
type resourceChain struct {
	kind     resourceKind
	name     string
	imported bool

	textureInfo types.TextureCreateInfo
	bufferInfo  types.BufferCreateInfo

	physical types.Handle
	current  types.AccessFlags // barrier-walk state (§4.9.5), valid only during Execute

	// ownerQueue/ownerPass/ownerAccess/hasOwner record the queue and
	// pass that last touched this chain, as planTransfers walks the
	// surviving passes in order; a touch from a different queue than
	// ownerQueue is a queue-family ownership transfer (§4.9.5), and
	// these fields identify its release half.
	ownerQueue  types.QueueType
	ownerPass   nodeID
	ownerAccess types.AccessFlags
	hasOwner    bool
}

// resourceVersion is one node in a resource's read/write chain: "reads
// don't version" (§4.9.1), so every read call returns the handle it was
// given, while write returns a new version carrying the access it was
// produced with and the pass that produced it.
type resourceVersion struct {
	chain       *resourceChain
	writerPass  nodeID
	hasWriter   bool
	writeAccess types.AccessFlags
}

// TextureHandle is an opaque node-id for a virtual texture (§4.9.1); it
// is only ever meaningful within the Graph that produced it.
type TextureHandle struct{ v *resourceVersion }

// BufferHandle is an opaque node-id for a virtual buffer.
type BufferHandle struct{ v *resourceVersion }

// IsValid reports whether h was ever produced by a Builder call (the
// zero TextureHandle/BufferHandle is never valid).
func (h TextureHandle) IsValid() bool { return h.v != nil }
func (h BufferHandle) IsValid() bool  { return h.v != nil }

// RecordFn is the function a pass's setup closure returns: Execute calls
// it once per surviving pass with an encoder already positioned on the
// pass's queue and a Registry resolving this pass's virtual handles to
// real ones (§4.9.6).
type RecordFn func(enc *rhi.Encoder, reg *Registry)

type readRef struct {
	v      *resourceVersion
	access types.AccessFlags
}

type writeRef struct {
	chain  *resourceChain
	access types.AccessFlags
}

// passEntry holds one AddPass call's bookkeeping: the resources it
// touches, whether it is side-effecting, and the closure Execute will
// call if it survives culling.
type passEntry struct {
	name       string
	queue      types.QueueType
	sideEffect bool
	record     RecordFn

	reads   []readRef
	writes  []writeRef
	creates []*resourceChain

	edgeFrom map[nodeID]bool // producer passes this pass already has an edge from
}

// PassHandle identifies a pass AddPass created. Graphs are single-frame
// and single-producer, so callers rarely need to keep it around; it
// exists for symmetry with TextureHandle/BufferHandle.
type PassHandle struct{ id nodeID }

// Graph is one frame's pass DAG over virtual resources (§4.9). Build it
// fresh every frame: a Graph is not reusable across frames since its
// resourceChains pin physical resources for exactly one Execute call.
type Graph struct {
	device   *rhi.Device
	recorder uint32

	passes []*passEntry
	dep    *dependencyGraph
}

// New creates an empty Graph. recorder is the RegisterRecorder id
// Execute's command encoders and Device.Submit call will draw pools
// from.
func New(device *rhi.Device, recorder uint32) *Graph {
	return &Graph{device: device, recorder: recorder, dep: newDependencyGraph()}
}

// AddPass runs setup against a fresh Builder scoped to the new pass,
// records the RecordFn it returns, and returns a handle to the pass
// (§4.9.1's add_pass(name, queue_type, setup_fn)). setup may call
// Builder.SideEffect to mark the pass uncullable regardless of whether
// anything downstream reads its outputs.
func (g *Graph) AddPass(name string, queue types.QueueType, setup func(*Builder) RecordFn) PassHandle {
	id := g.dep.addNode()
	g.passes = append(g.passes, &passEntry{name: name, queue: queue, edgeFrom: make(map[nodeID]bool)})

	b := &Builder{g: g, pass: id}
	record := setup(b)
	g.passes[id].record = record

	return PassHandle{id: id}
}

// addDependency records that this pass consumes (by read or write) a
// version some earlier pass produced, adding one producer->consumer edge
// the first time this exact pair is seen. A chain's initial version has
// the creating pass as its writer; an imported version has no writer and
// contributes no edge, and neither does a version the consuming pass
// produced itself.
func (g *Graph) addDependency(consumer nodeID, v *resourceVersion) {
	if !v.hasWriter || v.writerPass == consumer {
		return
	}
	entry := g.passes[consumer]
	if entry.edgeFrom[v.writerPass] {
		return
	}
	entry.edgeFrom[v.writerPass] = true
	g.dep.addEdge(v.writerPass, consumer)
}
