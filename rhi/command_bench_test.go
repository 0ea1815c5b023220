// Copyright 2025 The Tundraforge Authors
// SPDX-License-Identifier: MIT

package rhi

import (
	"testing"

	"github.com/tundraforge/rhi/types"
)

// BenchmarkEncoderDrawCalls measures the append hot path a pass's
// RecordFn runs once per draw call: every frame graph execution records
// one of these per mesh, so its cost sets a floor on frame time at high
// draw-call counts.
func BenchmarkEncoderDrawCalls(b *testing.B) {
	stream := newCommandStream(uint64(b.N) * approxCmdNodeBytes)
	e := newEncoder(stream, types.QueueGraphics)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.Draw(3, 1, 0, 0)
	}
}

// BenchmarkEncoderMixedPass measures a representative pass recording a
// pipeline bind, viewport/scissor, and an indexed draw per iteration —
// closer to a real draw pass's per-object cost than a bare Draw call.
func BenchmarkEncoderMixedPass(b *testing.B) {
	stream := newCommandStream(uint64(b.N) * approxCmdNodeBytes * 5)
	e := newEncoder(stream, types.QueueGraphics)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.BindGraphicsPipeline(types.Handle(1))
		e.SetViewport(0, 0, 1920, 1080, 0, 1)
		e.SetScissor(0, 0, 1920, 1080)
		e.DrawIndexed(36, 1, 0, 0, 0)
	}
}

// BenchmarkCommandStreamReset measures reset()'s per-node clear loop,
// together with re-recording 4096 draws into the retained capacity on
// each iteration.
func BenchmarkCommandStreamReset(b *testing.B) {
	stream := newCommandStream(8 << 20)
	e := newEncoder(stream, types.QueueGraphics)
	for i := 0; i < 4096; i++ {
		e.Draw(3, 1, 0, 0)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		stream.reset()
		for j := 0; j < 4096; j++ {
			e.Draw(3, 1, 0, 0)
		}
	}
}
