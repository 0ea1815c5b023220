// Copyright 2025 The Tundraforge Authors
// SPDX-License-Identifier: MIT

package framegraph

import (
	"testing"

	"github.com/tundraforge/rhi/types"
)

// buildABCD wires up passes A->B->C with C optionally side-effecting,
// plus a pass D that creates a texture nobody reads and never
// side-effects, matching scenario 3.
func buildABCD(t *testing.T, cSideEffect bool) (g *Graph, survive []bool) {
	t.Helper()
	g = New(nil, 0)

	info := types.TextureCreateInfo{
		Kind: types.TextureDimension2D, Format: types.TextureFormatRGBA8Unorm,
		Usage: types.TextureUsageColorAttachment | types.TextureUsageSRV,
		Size:  types.Extent3D{Width: 16, Height: 16, DepthOrArrayLayers: 1}, MipLevelCount: 1,
	}

	var afterA, afterB TextureHandle
	g.AddPass("A", types.QueueGraphics, func(b *Builder) RecordFn {
		afterA = b.CreateTexture("tex", info)
		return nil
	})
	g.AddPass("B", types.QueueGraphics, func(b *Builder) RecordFn {
		afterB = b.WriteTexture(afterA, types.AccessColorAttachmentWrite)
		return nil
	})
	g.AddPass("C", types.QueueGraphics, func(b *Builder) RecordFn {
		b.ReadTexture(afterB, types.AccessSRVGraphics)
		if cSideEffect {
			b.SideEffect()
		}
		return nil
	})
	g.AddPass("D", types.QueueGraphics, func(b *Builder) RecordFn {
		b.CreateTexture("dead", info)
		return nil
	})

	return g, g.dep.cull()
}

func TestCullingCorrectness(t *testing.T) {
	_, survive := buildABCD(t, true)
	want := []bool{true, true, true, false} // A, B, C, D
	for i, w := range want {
		if survive[i] != w {
			t.Errorf("pass %d: survive=%v, want %v", i, survive[i], w)
		}
	}
}

func TestCullingWithoutSideEffectCullsEverything(t *testing.T) {
	_, survive := buildABCD(t, false)
	for i, ok := range survive {
		if ok {
			t.Errorf("pass %d: survive=true, want false (no side-effecting pass retains anything)", i)
		}
	}
}

func TestSideEffectPassAlwaysSurvives(t *testing.T) {
	g := New(nil, 0)
	info := types.BufferCreateInfo{Size: 256, Usage: types.BufferUsageUAV}
	g.AddPass("isolated", types.QueueCompute, func(b *Builder) RecordFn {
		b.CreateBuffer("scratch", info)
		b.SideEffect()
		return nil
	})

	survive := g.dep.cull()
	if len(survive) != 1 || !survive[0] {
		t.Fatalf("side-effecting pass with no readers must survive, got %v", survive)
	}
}
