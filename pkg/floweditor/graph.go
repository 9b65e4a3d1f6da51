package floweditor

import (
	"github.com/google/uuid"
)

// Graph is the editable node-and-edge representation of a flow as
// shown on the canvas. It preserves node insertion order, which is
// what keeps chain round-trips stable.
//
// Graph is NOT safe for concurrent mutation. The editor mutates it
// from a single goroutine; use Snapshot to hand immutable copies to
// an undo history or to other goroutines.
type Graph struct {
	nodes []*Node
	edges []Edge
	index map[string]int // node ID -> position in nodes
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{index: make(map[string]int)}
}

// AddNode creates a node of the given type with a fresh unique ID and
// appends it to the graph. The returned node is owned by the graph;
// callers configure it in place (set Name, Agent config, etc.).
//
// Panics if nodeType is not one of the three known kinds. IDs are
// generated with UUIDs and are never reused, so no sequence of
// operations can produce a collision.
func (g *Graph) AddNode(nodeType NodeType, name string) *Node {
	switch nodeType {
	case NodeInput, NodeAgent, NodeOutput:
	default:
		panic("floweditor: unknown node type: " + string(nodeType))
	}

	n := &Node{
		ID:   uuid.NewString(),
		Type: nodeType,
		Name: name,
	}
	switch nodeType {
	case NodeInput:
		n.Input = &InputConfig{}
	case NodeAgent:
		n.Agent = &AgentConfig{}
	case NodeOutput:
		n.Output = &OutputConfig{Format: FormatMarkdown}
	}

	g.index[n.ID] = len(g.nodes)
	g.nodes = append(g.nodes, n)
	return n
}

// insert adds a node that already carries an ID, preserving it.
// Used by ChainToGraph; returns false on an ID collision.
func (g *Graph) insert(n *Node) bool {
	if n.ID == "" {
		return false
	}
	if _, exists := g.index[n.ID]; exists {
		return false
	}
	g.index[n.ID] = len(g.nodes)
	g.nodes = append(g.nodes, n)
	return true
}

// RemoveNode deletes the node and every edge incident to it.
// Returns false if no node with that ID exists. The ID is not reused.
func (g *Graph) RemoveNode(id string) bool {
	pos, ok := g.index[id]
	if !ok {
		return false
	}

	g.nodes = append(g.nodes[:pos], g.nodes[pos+1:]...)
	delete(g.index, id)
	for i := pos; i < len(g.nodes); i++ {
		g.index[g.nodes[i].ID] = i
	}

	kept := g.edges[:0]
	for _, e := range g.edges {
		if e.Source != id && e.Target != id {
			kept = append(kept, e)
		}
	}
	g.edges = kept
	return true
}

// AddEdge connects source to target. Returns false if either endpoint
// does not exist or an identical edge is already present.
func (g *Graph) AddEdge(source, target string) bool {
	if _, ok := g.index[source]; !ok {
		return false
	}
	if _, ok := g.index[target]; !ok {
		return false
	}
	for _, e := range g.edges {
		if e.Source == source && e.Target == target {
			return false
		}
	}
	g.edges = append(g.edges, Edge{Source: source, Target: target})
	return true
}

// RemoveEdge deletes the edge from source to target.
// Returns false if no such edge exists.
func (g *Graph) RemoveEdge(source, target string) bool {
	for i, e := range g.edges {
		if e.Source == source && e.Target == target {
			g.edges = append(g.edges[:i], g.edges[i+1:]...)
			return true
		}
	}
	return false
}

// MoveNode updates a node's canvas position. Position is purely
// presentational, so moving a node never affects validity.
// Returns false if no node with that ID exists.
func (g *Graph) MoveNode(id string, pos Position) bool {
	i, ok := g.index[id]
	if !ok {
		return false
	}
	g.nodes[i].Position = pos
	return true
}

// Node returns the node with the given ID, or nil.
func (g *Graph) Node(id string) *Node {
	if i, ok := g.index[id]; ok {
		return g.nodes[i]
	}
	return nil
}

// Nodes returns the graph's nodes in insertion order.
// The slice is shared; callers must not modify it.
func (g *Graph) Nodes() []*Node {
	return g.nodes
}

// Edges returns the graph's edges. The slice is shared; callers must
// not modify it.
func (g *Graph) Edges() []Edge {
	return g.edges
}

// OutgoingEdges returns the edges whose source is the given node.
func (g *Graph) OutgoingEdges(id string) []Edge {
	var out []Edge
	for _, e := range g.edges {
		if e.Source == id {
			out = append(out, e)
		}
	}
	return out
}

// NodesOfType returns the nodes of the given type in insertion order.
func (g *Graph) NodesOfType(t NodeType) []*Node {
	var out []*Node
	for _, n := range g.nodes {
		if n.Type == t {
			out = append(out, n)
		}
	}
	return out
}

// Snapshot returns a deep copy of the graph. The copy shares nothing
// with the original, making it safe to store in an undo history and
// safe to read from other goroutines.
func (g *Graph) Snapshot() *Graph {
	c := NewGraph()
	for _, n := range g.nodes {
		c.insert(n.Clone())
	}
	c.edges = append([]Edge(nil), g.edges...)
	return c
}
