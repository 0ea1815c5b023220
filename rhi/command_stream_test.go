// Copyright 2025 The Tundraforge Authors
// SPDX-License-Identifier: MIT

package rhi

import (
	"testing"

	"github.com/tundraforge/rhi/types"
)

// TestCommandStreamRoundTrip records a representative sequence of
// encoder calls and reads the stream back node-by-node, the way
// Device.decode replays it against a command buffer — minus the
// driver calls, since decode needs a live VkCommandBuffer. This is the
// structural half of §4.4/§4.6's encode-then-decode contract: every
// node decode switches on must come back out with exactly the kind and
// payload fields its encoder call was given.
func TestCommandStreamRoundTrip(t *testing.T) {
	stream := newCommandStream(4096)
	e := newEncoder(stream, types.QueueGraphics)

	e.Begin()
	e.BeginRegion("shadow-pass", [4]float32{1, 0, 0, 1})
	e.BindGraphicsPipeline(types.Handle(11))
	e.SetViewport(0, 0, 640, 480, 0, 1)
	e.SetScissor(0, 0, 640, 480)
	e.BindIndexBuffer(types.Handle(22), 16, true)
	e.DrawIndexed(36, 1, 0, 0, 0)
	e.EndRegion()
	e.End()

	want := []cmdKind{
		cmdBeginCommandBuffer,
		cmdBeginRegion,
		cmdBindGraphicsPipeline,
		cmdSetViewport,
		cmdSetScissor,
		cmdBindIndexBuffer,
		cmdDrawIndexed,
		cmdEndRegion,
		cmdEndCommandBuffer,
	}
	if stream.len() != len(want) {
		t.Fatalf("recorded %d nodes, want %d", stream.len(), len(want))
	}
	for i, k := range want {
		if stream.nodes[i].kind != k {
			t.Errorf("node %d: kind = %v, want %v", i, stream.nodes[i].kind, k)
		}
	}

	region := stream.nodes[1].payload.(cmdBeginRegionPayload)
	if region.Name != "shadow-pass" || region.Color != [4]float32{1, 0, 0, 1} {
		t.Errorf("BeginRegion payload = %+v, want name=shadow-pass color=(1,0,0,1)", region)
	}

	bind := stream.nodes[2].payload.(cmdBindPipelinePayload)
	if bind.Pipeline != types.Handle(11) {
		t.Errorf("BindGraphicsPipeline payload = %+v, want Pipeline=11", bind)
	}

	idx := stream.nodes[5].payload.(cmdBindIndexBufferPayload)
	if idx.Buffer != types.Handle(22) || idx.Offset != 16 || !idx.Is32Bit {
		t.Errorf("BindIndexBuffer payload = %+v, want Buffer=22 Offset=16 Is32Bit=true", idx)
	}

	draw := stream.nodes[6].payload.(cmdDrawIndexedPayload)
	if draw.IndexCount != 36 || draw.InstanceCount != 1 {
		t.Errorf("DrawIndexed payload = %+v, want IndexCount=36 InstanceCount=1", draw)
	}
}

// TestCommandStreamPushConstantsTruncation covers PushConstants copying
// only Size bytes into the fixed-width payload array — a caller handing
// it fewer bytes than the array's capacity must not see garbage past
// what it actually wrote.
func TestCommandStreamPushConstantsTruncation(t *testing.T) {
	stream := newCommandStream(1024)
	e := newEncoder(stream, types.QueueGraphics)

	data := []byte{1, 2, 3, 4}
	e.PushConstants(data)

	p := stream.nodes[0].payload.(cmdPushConstantsPayload)
	if p.Size != uint32(len(data)) {
		t.Fatalf("Size = %d, want %d", p.Size, len(data))
	}
	for i, b := range data {
		if p.Data[i] != b {
			t.Errorf("Data[%d] = %d, want %d", i, p.Data[i], b)
		}
	}
}

// TestCommandStreamReset covers the arena reuse reset() relies on: after
// reset, len() reports zero and previously recorded payload references
// are cleared so they are not kept alive by the backing array.
func TestCommandStreamReset(t *testing.T) {
	stream := newCommandStream(1024)
	e := newEncoder(stream, types.QueueGraphics)
	e.Begin()
	e.Draw(3, 1, 0, 0)
	e.End()
	if stream.len() != 3 {
		t.Fatalf("len() = %d, want 3", stream.len())
	}

	stream.reset()
	if stream.len() != 0 {
		t.Fatalf("len() after reset = %d, want 0", stream.len())
	}
	if cap(stream.nodes) == 0 {
		t.Errorf("reset must retain the arena's backing capacity")
	}
}

// TestEncoderLenTracksRecordedNodes covers Encoder.Len, the number of
// commands recorded into the encoder so far.
func TestEncoderLenTracksRecordedNodes(t *testing.T) {
	e := newEncoder(newCommandStream(1024), types.QueueCompute)
	if e.Len() != 0 {
		t.Fatalf("fresh encoder Len() = %d, want 0", e.Len())
	}
	e.Begin()
	e.Dispatch(1, 1, 1)
	e.End()
	if e.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", e.Len())
	}
}
