package floweditor

import "fmt"

// Canvas layout applied by ChainToGraph when a chain carries no
// stored positions: nodes stack vertically below one another.
const (
	layoutX       = 250.0
	layoutTop     = 100.0
	layoutYStride = 150.0
)

// GraphToChain linearizes a graph into the engine-executable chain:
// starting at the unique input node it follows the single outgoing
// edge of each node, emitting nodes in traversal order with their
// nextNodeId linkage. Agent nodes are emitted in path order,
// preserving the user's sequential pipeline.
//
// The graph is expected to have passed Validate first. If it has not,
// GraphToChain refuses to produce a malformed chain and returns an
// error wrapping ErrNoInputNode, ErrMultipleInputNodes, or
// ErrNotLinear. Nodes disconnected from the path (validation
// warnings) are not part of the chain.
func GraphToChain(g *Graph) (Chain, error) {
	inputs := g.NodesOfType(NodeInput)
	switch {
	case len(inputs) == 0:
		return nil, ErrNoInputNode
	case len(inputs) > 1:
		return nil, ErrMultipleInputNodes
	}

	chain := make(Chain, 0, len(g.Nodes()))
	visited := make(map[string]bool)

	cur := inputs[0]
	for {
		if visited[cur.ID] {
			return nil, &ConversionError{NodeID: cur.ID, Err: fmt.Errorf("%w: cycle", ErrNotLinear)}
		}
		visited[cur.ID] = true

		out := g.OutgoingEdges(cur.ID)
		if len(out) > 1 {
			return nil, &ConversionError{NodeID: cur.ID, Err: fmt.Errorf("%w: node branches", ErrNotLinear)}
		}

		cn := ChainNode{Node: *cur.Clone()}
		if len(out) == 1 {
			next := out[0].Target
			cn.NextNodeID = &next
		}
		chain = append(chain, cn)

		if len(out) == 0 {
			break
		}
		next := g.Node(out[0].Target)
		if next == nil {
			return nil, &ConversionError{NodeID: cur.ID, Err: fmt.Errorf("%w: edge target missing", ErrBrokenChain)}
		}
		cur = next
	}

	if cur.Type != NodeOutput {
		return nil, &ConversionError{NodeID: cur.ID, Err: fmt.Errorf("%w: path does not end at an output node", ErrNotLinear)}
	}
	return chain, nil
}

// ChainToGraph is the inverse mapping: it copies node payloads
// through unchanged aside from stripping nextNodeId, and synthesizes
// one edge per consecutive pair. When no node in the chain carries a
// stored position, a deterministic vertical layout is assigned so the
// canvas renders without a separate layout pass.
//
// Returns an error wrapping ErrEmptyChain or ErrBrokenChain for
// malformed chains (duplicate IDs, linkage not matching node order,
// non-nil nextNodeId on the terminal node).
func ChainToGraph(chain Chain) (*Graph, error) {
	if len(chain) == 0 {
		return nil, ErrEmptyChain
	}

	g := NewGraph()
	hasPositions := false
	for i := range chain {
		n := chain[i].Node.Clone()
		if !g.insert(n) {
			return nil, &ConversionError{NodeID: n.ID, Err: fmt.Errorf("%w: duplicate node ID", ErrBrokenChain)}
		}
		if n.Position != (Position{}) {
			hasPositions = true
		}
	}

	for i := range chain {
		next := chain[i].NextNodeID
		if i == len(chain)-1 {
			if next != nil {
				return nil, &ConversionError{NodeID: chain[i].ID, Err: fmt.Errorf("%w: terminal node has a nextNodeId", ErrBrokenChain)}
			}
			continue
		}
		if next == nil || *next != chain[i+1].ID {
			return nil, &ConversionError{NodeID: chain[i].ID, Err: fmt.Errorf("%w: nextNodeId does not match chain order", ErrBrokenChain)}
		}
		g.AddEdge(chain[i].ID, chain[i+1].ID)
	}

	if !hasPositions {
		for i, n := range g.Nodes() {
			n.Position = Position{X: layoutX, Y: layoutTop + layoutYStride*float64(i)}
		}
	}
	return g, nil
}
