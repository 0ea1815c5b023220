// Copyright 2025 The Tundraforge Authors
// SPDX-License-Identifier: MIT

package framegraph

import (
	"fmt"

	"github.com/tundraforge/rhi/rhi"
	"github.com/tundraforge/rhi/types"
)

// queueTransfer is one half of a queue-family ownership transfer (§4.9.5):
// prev is the access the resource was last used with on the releasing
// queue, next is the access the acquiring pass needs it in.
type queueTransfer struct {
	chain     *resourceChain
	prev      types.AccessFlags
	next      types.AccessFlags
	srcFamily uint32
	dstFamily uint32
}

// planTransfers walks every surviving pass in execution order and
// records, per resource chain, which queue last touched it. Two
// consecutive touches on different queues are a queue-family ownership
// transfer: the release half is attached to the earlier (owning) pass
// and the acquire half to the later one, keyed by pass so Execute can
// append them to the right encoder without reopening an already-ended
// one.
func (g *Graph) planTransfers(survive []bool) (releases, acquires map[nodeID][]queueTransfer) {
	releases = make(map[nodeID][]queueTransfer)
	acquires = make(map[nodeID][]queueTransfer)

	touch := func(pass nodeID, queue types.QueueType, chain *resourceChain, access types.AccessFlags) {
		if chain.hasOwner && chain.ownerQueue != queue {
			srcFamily := g.device.QueueFamilyIndex(chain.ownerQueue)
			dstFamily := g.device.QueueFamilyIndex(queue)
			t := queueTransfer{
				chain:     chain,
				prev:      chain.ownerAccess,
				next:      access,
				srcFamily: srcFamily,
				dstFamily: dstFamily,
			}
			releases[chain.ownerPass] = append(releases[chain.ownerPass], t)
			acquires[pass] = append(acquires[pass], t)
		}
		chain.ownerQueue = queue
		chain.ownerPass = pass
		chain.ownerAccess = access
		chain.hasOwner = true
	}

	for i, p := range g.passes {
		if !survive[i] {
			continue
		}
		for _, r := range p.reads {
			touch(nodeID(i), p.queue, r.v.chain, r.access)
		}
		for _, w := range p.writes {
			touch(nodeID(i), p.queue, w.chain, w.access)
		}
	}
	return releases, acquires
}

// releaseTransfers appends the release half of every queue transfer list
// to enc (the owning pass's encoder), called after that pass records its
// own work so the release is the last thing it does with the resource.
func (g *Graph) releaseTransfers(enc *rhi.Encoder, list []queueTransfer) error {
	for _, t := range list {
		if err := g.doTransfer(enc, t, true); err != nil {
			return err
		}
	}
	return nil
}

// acquireTransfers appends the acquire half of every queue transfer list
// to enc (the consuming pass's encoder), called before that pass's own
// barriers and recording so the resource is already owned by the time it
// touches it. It also updates each chain's tracked access so
// placeBarriers's same-queue transition check sees the acquire already
// brought it current and does not double-barrier.
func (g *Graph) acquireTransfers(enc *rhi.Encoder, list []queueTransfer) error {
	for _, t := range list {
		if err := g.doTransfer(enc, t, false); err != nil {
			return err
		}
		t.chain.current = t.next
	}
	return nil
}

func (g *Graph) doTransfer(enc *rhi.Encoder, t queueTransfer, release bool) error {
	var err error
	switch t.chain.kind {
	case resourceTexture:
		if release {
			err = enc.TextureBarrierRelease(g.device, t.chain.physical, t.prev, t.next, t.srcFamily, t.dstFamily)
		} else {
			err = enc.TextureBarrierAcquire(g.device, t.chain.physical, t.next, t.srcFamily, t.dstFamily)
		}
	case resourceBuffer:
		if release {
			err = enc.BufferBarrierRelease(g.device, t.chain.physical, t.prev, t.next, t.srcFamily, t.dstFamily)
		} else {
			err = enc.BufferBarrierAcquire(g.device, t.chain.physical, t.next, t.srcFamily, t.dstFamily)
		}
	}
	if err != nil {
		return fmt.Errorf("framegraph: queue transfer for %q: %w", t.chain.name, err)
	}
	return nil
}
