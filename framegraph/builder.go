// Copyright 2025 The Tundraforge Authors
// SPDX-License-Identifier: MIT

package framegraph

import "github.com/tundraforge/rhi/types"

// Builder is the object a pass's setup_fn uses to declare the resources
// it creates, reads, and writes (§4.9.1). A Builder is only valid for
// the duration of the AddPass call that created it.
type Builder struct {
	g    *Graph
	pass nodeID
}

// CreateTexture declares a new virtual texture this pass produces,
// realized against info when (and only when) the pass survives culling.
func (b *Builder) CreateTexture(name string, info types.TextureCreateInfo) TextureHandle {
	chain := &resourceChain{kind: resourceTexture, name: name, textureInfo: info}
	b.g.passes[b.pass].creates = append(b.g.passes[b.pass].creates, chain)
	return TextureHandle{v: &resourceVersion{chain: chain, writerPass: b.pass, hasWriter: true}}
}

// CreateBuffer declares a new virtual buffer this pass produces.
func (b *Builder) CreateBuffer(name string, info types.BufferCreateInfo) BufferHandle {
	chain := &resourceChain{kind: resourceBuffer, name: name, bufferInfo: info}
	b.g.passes[b.pass].creates = append(b.g.passes[b.pass].creates, chain)
	return BufferHandle{v: &resourceVersion{chain: chain, writerPass: b.pass, hasWriter: true}}
}

// ImportTexture wraps a texture the caller already owns (e.g. a
// swapchain image) as a virtual resource the graph can schedule
// barriers and read/write edges against without ever creating or
// destroying it.
func (b *Builder) ImportTexture(name string, physical types.Handle) TextureHandle {
	chain := &resourceChain{kind: resourceTexture, name: name, imported: true, physical: physical}
	return TextureHandle{v: &resourceVersion{chain: chain}}
}

// ImportBuffer wraps a buffer the caller already owns.
func (b *Builder) ImportBuffer(name string, physical types.Handle) BufferHandle {
	chain := &resourceChain{kind: resourceBuffer, name: name, imported: true, physical: physical}
	return BufferHandle{v: &resourceVersion{chain: chain}}
}

// ReadTexture declares that this pass reads h with usage access. Reads
// don't version (§4.9.1): the returned handle names the same node as h.
func (b *Builder) ReadTexture(h TextureHandle, access types.AccessFlags) TextureHandle {
	b.g.passes[b.pass].reads = append(b.g.passes[b.pass].reads, readRef{v: h.v, access: access})
	b.g.addDependency(b.pass, h.v)
	return h
}

// ReadBuffer declares that this pass reads h with usage access.
func (b *Builder) ReadBuffer(h BufferHandle, access types.AccessFlags) BufferHandle {
	b.g.passes[b.pass].reads = append(b.g.passes[b.pass].reads, readRef{v: h.v, access: access})
	b.g.addDependency(b.pass, h.v)
	return h
}

// WriteTexture declares that this pass writes h with usage access and
// returns the next generation node: this pass becomes that node's
// writer (§4.9.1), so later readers of the returned handle depend on
// this pass rather than on whatever produced h.
func (b *Builder) WriteTexture(h TextureHandle, access types.AccessFlags) TextureHandle {
	b.g.addDependency(b.pass, h.v)
	b.g.passes[b.pass].writes = append(b.g.passes[b.pass].writes, writeRef{chain: h.v.chain, access: access})
	return TextureHandle{v: &resourceVersion{chain: h.v.chain, writerPass: b.pass, hasWriter: true, writeAccess: access}}
}

// WriteBuffer declares that this pass writes h with usage access and
// returns the next generation node.
func (b *Builder) WriteBuffer(h BufferHandle, access types.AccessFlags) BufferHandle {
	b.g.addDependency(b.pass, h.v)
	b.g.passes[b.pass].writes = append(b.g.passes[b.pass].writes, writeRef{chain: h.v.chain, access: access})
	return BufferHandle{v: &resourceVersion{chain: h.v.chain, writerPass: b.pass, hasWriter: true, writeAccess: access}}
}

// SideEffect marks the current pass uncullable (§4.9.1): it survives
// even if nothing downstream reads anything it produces, for passes
// whose effect is external to the graph (presenting, writing to an
// imported resource, issuing a GPU query).
func (b *Builder) SideEffect() {
	b.g.dep.markUncullable(b.pass)
	b.g.passes[b.pass].sideEffect = true
}
