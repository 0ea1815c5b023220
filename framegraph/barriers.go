// Copyright 2025 The Tundraforge Authors
// SPDX-License-Identifier: MIT

package framegraph

import (
	"fmt"

	"github.com/tundraforge/rhi/rhi"
	"github.com/tundraforge/rhi/types"
)

// placeBarriers runs the same-queue half of §4.9.5 for one pass: for
// each resource the pass reads or writes, compare the resource's current
// tracked access against what this pass needs and emit a barrier if they
// differ, then update the tracked access. All reads are processed before
// all writes (consume inputs, then produce outputs), each group in the
// order the pass's Builder calls declared them. Cross-queue transitions are handled
// separately, before this runs, by Graph.acquireTransfers — a resource
// this pass just acquired from another queue already has chain.current
// set to the access it needs, so transition is a no-op for it here.
func (g *Graph) placeBarriers(enc *rhi.Encoder, p *passEntry) error {
	for _, r := range p.reads {
		if err := g.transition(enc, r.v.chain, r.access); err != nil {
			return err
		}
	}
	for _, w := range p.writes {
		if err := g.transition(enc, w.chain, w.access); err != nil {
			return err
		}
	}
	return nil
}

func (g *Graph) transition(enc *rhi.Encoder, chain *resourceChain, required types.AccessFlags) error {
	if chain.current == required {
		return nil
	}

	var err error
	switch chain.kind {
	case resourceTexture:
		err = enc.TextureBarrier(g.device, chain.physical, chain.current, required)
	case resourceBuffer:
		err = enc.BufferBarrier(g.device, chain.physical, chain.current, required)
	}
	if err != nil {
		return fmt.Errorf("framegraph: barrier for %q: %w", chain.name, err)
	}

	chain.current = required
	return nil
}
