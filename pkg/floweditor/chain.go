package floweditor

// ChainNode is one element of an execution chain: the node payload
// plus the single `nextNodeId` link the execution engine follows.
// A nil NextNodeID marks the terminal node.
type ChainNode struct {
	Node
	NextNodeID *string `json:"nextNodeId"`
}

// Chain is the linear, engine-executable representation of a flow: a
// singly linked list of nodes whose head is the input node and whose
// terminal node has a nil NextNodeID. This is exactly the `nodes`
// payload persisted by the flow API.
type Chain []ChainNode

// Head returns the first node of the chain, or nil if empty.
func (c Chain) Head() *ChainNode {
	if len(c) == 0 {
		return nil
	}
	return &c[0]
}

// NodeIDs returns the node IDs in chain order.
func (c Chain) NodeIDs() []string {
	ids := make([]string, len(c))
	for i := range c {
		ids[i] = c[i].ID
	}
	return ids
}
