// Copyright 2025 The Tundraforge Authors
// SPDX-License-Identifier: MIT

package framegraph

// nodeID indexes into a dependencyGraph's node slice. The frame graph
// uses one dependencyGraph per frame, with one node per pass (§4.9.3):
// an edge from producer to consumer is added whenever a pass reads or
// writes a resource version a previous pass produced.
type nodeID int

// dependencyGraph is a plain directed graph over small dense integer ids
// plus the stack-based culling walk from §4.9.3: push every zero-out-
// degree, non-uncullable node, then repeatedly pop one and decrement the
// out-degree ("ref count") of everything with an edge into it, pushing
// anything that newly reaches zero.
type dependencyGraph struct {
	uncullable []bool
	outgoing   [][]nodeID
	incoming   [][]nodeID
}

func newDependencyGraph() *dependencyGraph {
	return &dependencyGraph{}
}

// addNode appends a fresh node and returns its id. Nodes are always
// added in id order (0, 1, 2, ...), matching one node per pass in the
// order passes were added.
func (g *dependencyGraph) addNode() nodeID {
	id := nodeID(len(g.outgoing))
	g.uncullable = append(g.uncullable, false)
	g.outgoing = append(g.outgoing, nil)
	g.incoming = append(g.incoming, nil)
	return id
}

func (g *dependencyGraph) markUncullable(n nodeID) {
	g.uncullable[n] = true
}

func (g *dependencyGraph) addEdge(from, to nodeID) {
	g.outgoing[from] = append(g.outgoing[from], to)
	g.incoming[to] = append(g.incoming[to], from)
}

// cull runs §4.9.3's algorithm and returns, for every node in id order,
// whether it survives.
func (g *dependencyGraph) cull() []bool {
	n := len(g.outgoing)
	refCount := make([]int, n)
	survive := make([]bool, n)
	for i := 0; i < n; i++ {
		refCount[i] = len(g.outgoing[i])
		survive[i] = true
	}

	var stack []nodeID
	for i := 0; i < n; i++ {
		if refCount[i] == 0 && !g.uncullable[i] {
			stack = append(stack, nodeID(i))
		}
	}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		survive[top] = false

		for _, from := range g.incoming[top] {
			refCount[from]--
			if refCount[from] == 0 && !g.uncullable[from] {
				stack = append(stack, from)
			}
		}
	}

	return survive
}
