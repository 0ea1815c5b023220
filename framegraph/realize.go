// Copyright 2025 The Tundraforge Authors
// SPDX-License-Identifier: MIT

package framegraph

import (
	"fmt"

	"github.com/tundraforge/rhi/rhi"
	"golang.org/x/sync/errgroup"
)

// realize allocates a physical resource for every chain a surviving
// pass creates (§4.9.4). Imported chains already carry their physical
// handle and are skipped. Every chain is independent of every other at
// this point (none has been read or written yet), so the creates run
// concurrently through an errgroup rather than one at a time; the
// handle tables behind Device.CreateTexture/CreateBuffer are already
// safe for concurrent use (§4.1). On any failure, everything realized
// so far is torn down before returning the error, so a failed Execute
// never leaks a partially-realized frame.
//
// This realization is deliberately simple: one physical resource per
// chain, allocated for the whole frame and freed at the end of Execute,
// rather than an aliasing pool that reuses memory between chains whose
// lifetimes don't overlap; no aliasing pool is implemented.
func (g *Graph) realize(survive []bool) ([]*resourceChain, error) {
	var pending []*resourceChain
	for i, p := range g.passes {
		if !survive[i] {
			continue
		}
		for _, chain := range p.creates {
			if !chain.imported {
				pending = append(pending, chain)
			}
		}
	}

	var eg errgroup.Group
	for _, chain := range pending {
		chain := chain
		eg.Go(func() error {
			var err error
			switch chain.kind {
			case resourceTexture:
				chain.physical, err = g.device.CreateTexture(chain.textureInfo)
			case resourceBuffer:
				chain.physical, err = g.device.CreateBuffer(chain.bufferInfo)
			}
			if err != nil {
				return fmt.Errorf("framegraph: realize %q: %w", chain.name, err)
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		// Some chains in pending may have realized successfully before
		// a sibling failed; a chain's physical handle is only valid
		// once its own CreateTexture/CreateBuffer call returned nil, so
		// destroyRealized is handed every pending chain and skips
		// whichever ones never got that far.
		g.destroyRealized(pending)
		return nil, err
	}

	return pending, nil
}

func (g *Graph) destroyRealized(chains []*resourceChain) {
	for _, chain := range chains {
		if chain.physical.IsNull() {
			continue
		}
		var err error
		switch chain.kind {
		case resourceTexture:
			err = g.device.DestroyTexture(chain.physical)
		case resourceBuffer:
			err = g.device.DestroyBuffer(chain.physical)
		}
		if err != nil {
			rhi.Logger().Debug("framegraph: destroying realized resource failed", "name", chain.name, "error", err)
		}
	}
}
