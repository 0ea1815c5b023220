// Copyright 2025 The Tundraforge Authors
// SPDX-License-Identifier: MIT

package framegraph

import (
	"github.com/tundraforge/rhi/rhi"
	"github.com/tundraforge/rhi/types"
)

// Registry resolves a Graph's virtual handles to the physical resources
// Execute realized them against (§4.9.6's record_fn(encoder, registry)
// parameter). A Registry returned to a pass's RecordFn is only valid for
// the duration of that Execute call.
type Registry struct{}

// Texture resolves h to the real resource handle Device.CreateTexture
// returned (or the handle ImportTexture was given).
func (r *Registry) Texture(h TextureHandle) types.Handle { return h.v.chain.physical }

// Buffer resolves h to the real resource handle Device.CreateBuffer
// returned (or the handle ImportBuffer was given).
func (r *Registry) Buffer(h BufferHandle) types.Handle { return h.v.chain.physical }

// Execute runs the graph to completion (§4.9.3-§4.9.6): cull dead
// passes, realize the surviving virtual resources, plan every
// queue-family ownership transfer a cross-queue read/write forces, then
// walk surviving passes in the order they were added (a valid
// topological order, since a pass can only read or write a handle an
// earlier AddPass call already produced), recording each pass's own
// acquire half of any transfer, its same-queue barriers, its RecordFn,
// and finally the release half of any transfer it owns, all into its own
// encoder — then submit every surviving pass's encoder in one
// Device.Submit call alongside presents.
//
// Every resource this graph created (as opposed to imported) is
// destroyed before Execute returns; Device's deferred-destruction
// tracker (§4.2) defers the actual driver teardown until the GPU is
// done with this frame, so destroying immediately after submission is
// safe.
func (g *Graph) Execute(presents []rhi.PresentInfo) error {
	survive := g.dep.cull()

	created, err := g.realize(survive)
	if err != nil {
		return err
	}

	releases, acquires := g.planTransfers(survive)

	var reg Registry
	submits := make([]rhi.SubmitInfo, 0, len(g.passes))

	for i, p := range g.passes {
		if !survive[i] {
			continue
		}
		id := nodeID(i)

		enc := g.device.NewEncoder(p.queue)
		enc.Begin()

		if err := g.acquireTransfers(enc, acquires[id]); err != nil {
			g.destroyRealized(created)
			return err
		}

		if err := g.placeBarriers(enc, p); err != nil {
			g.destroyRealized(created)
			return err
		}

		if p.record != nil {
			p.record(enc, &reg)
		}

		if err := g.releaseTransfers(enc, releases[id]); err != nil {
			g.destroyRealized(created)
			return err
		}

		enc.End()
		submits = append(submits, rhi.SubmitInfo{
			Encoders: []*rhi.Encoder{enc},
			Queue:    p.queue,
			Stage:    types.StageBottomOfPipe,
		})
	}

	if err := g.device.Submit(g.recorder, submits, presents); err != nil {
		g.destroyRealized(created)
		return err
	}

	g.destroyRealized(created)
	return nil
}
