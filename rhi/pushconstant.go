// Copyright 2025 The Tundraforge Authors
// SPDX-License-Identifier: MIT

package rhi

import (
	"encoding/binary"
	"math"
)

// PushConstants packs values into the shared push-constant block every
// pipeline layout declares (pushConstantBytes, descriptors.go). A draw
// reads back whatever bindless slot indices and small per-draw scalars
// it needs at the byte offsets the caller chose when it packed them —
// the block itself carries no layout description, matching the bindless
// descriptor-set bindings' "slot values delivered through push constants
// rather than per-draw descriptor-set rebinding" (§4.3).
type PushConstants struct {
	values [pushConstantBytes / 4]uint32
	n      int
}

// Reset empties the block for reuse across draws without reallocating.
func (p *PushConstants) Reset() { p.n = 0 }

// Push appends one uint32 — typically a bindless slot index — and
// returns the byte offset it was written at.
func (p *PushConstants) Push(v uint32) uint32 {
	off := uint32(p.n * 4)
	p.values[p.n] = v
	p.n++
	return off
}

// PushFloat32 is Push reinterpreting v's bits, for scalars a shader reads
// back as a float rather than a uint.
func (p *PushConstants) PushFloat32(v float32) uint32 {
	return p.Push(math.Float32bits(v))
}

// Bytes returns the packed block's little-endian byte representation,
// ready for Encoder.PushConstants.
func (p *PushConstants) Bytes() []byte {
	buf := make([]byte, p.n*4)
	for i := 0; i < p.n; i++ {
		binary.LittleEndian.PutUint32(buf[i*4:], p.values[i])
	}
	return buf
}

// DrawParams is the canonical push-constant layout from §6: every draw's
// per-instance parameters live at BufferOffset in the bindless buffer
// BufferIndex names, and this pair is all the shader needs to find them.
type DrawParams struct {
	BufferIndex  uint32
	BufferOffset uint32
}

// Bytes packs d per §6's {buffer_index, buffer_offset} push-constant
// layout.
func (d DrawParams) Bytes() []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint32(buf[0:4], d.BufferIndex)
	binary.LittleEndian.PutUint32(buf[4:8], d.BufferOffset)
	return buf
}
