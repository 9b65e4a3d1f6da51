package floweditor

import (
	"fmt"

	"github.com/randalmurphal/floweditor/pkg/floweditor/template"
)

// Finding is one validator observation, naming the offending node
// where one exists.
type Finding struct {
	// NodeID is the node the finding refers to, empty for graph-level
	// findings (missing input node, etc.).
	NodeID string `json:"nodeId,omitempty"`
	// Message is the human-readable description shown in the editor.
	Message string `json:"message"`
}

// Result is the outcome of validating a graph. Errors block save;
// warnings are informational only.
type Result struct {
	Errors   []Finding `json:"errors"`
	Warnings []Finding `json:"warnings"`
}

// HasErrors reports whether the graph may not be saved.
func (r Result) HasErrors() bool { return len(r.Errors) > 0 }

// HasWarnings reports whether the graph has non-blocking findings.
func (r Result) HasWarnings() bool { return len(r.Warnings) > 0 }

func (r *Result) errorf(nodeID, format string, args ...any) {
	r.Errors = append(r.Errors, Finding{NodeID: nodeID, Message: fmt.Sprintf(format, args...)})
}

func (r *Result) warnf(nodeID, format string, args ...any) {
	r.Warnings = append(r.Warnings, Finding{NodeID: nodeID, Message: fmt.Sprintf(format, args...)})
}

// label is the name the validator uses to refer to a node in
// messages: the display name when set, otherwise the ID.
func label(n *Node) string {
	if n.Name != "" {
		return n.Name
	}
	return n.ID
}

// Validate checks the structural rules the execution engine requires:
// exactly one input and one output node, a strictly linear path from
// input to output, and configured agent nodes. It is pure and
// idempotent — the editor calls it after every mutation and again
// immediately before save.
//
// Errors block save; warnings (empty agent prompt, prompts
// referencing undefined variables, disconnected extra nodes on an
// otherwise valid graph) do not.
func Validate(g *Graph) Result {
	var res Result

	inputs := g.NodesOfType(NodeInput)
	outputs := g.NodesOfType(NodeOutput)

	switch {
	case len(inputs) == 0:
		res.errorf("", "missing input node: the flow needs exactly one input node")
	case len(inputs) > 1:
		for _, n := range inputs[1:] {
			res.errorf(n.ID, "multiple input nodes: %q is an extra input node", label(n))
		}
	}

	switch {
	case len(outputs) == 0:
		res.errorf("", "missing output node: the flow needs exactly one output node")
	case len(outputs) > 1:
		for _, n := range outputs[1:] {
			res.errorf(n.ID, "multiple output nodes: %q is an extra output node", label(n))
		}
	}

	// Variables agent prompts may reference: the input node's field
	// names, plus "input" which the engine binds to the previous
	// node's output.
	known := map[string]bool{"input": true}
	for _, in := range inputs {
		if in.Input == nil {
			continue
		}
		for _, f := range in.Input.Fields {
			known[f.Name] = true
		}
	}

	// Per-node structural and configuration rules.
	for _, n := range g.Nodes() {
		out := g.OutgoingEdges(n.ID)
		if n.Type == NodeOutput {
			if len(out) > 0 {
				res.errorf(n.ID, "output node %q must not have outgoing connections", label(n))
			}
		} else {
			switch {
			case len(out) == 0:
				res.errorf(n.ID, "node %q has no outgoing connection", label(n))
			case len(out) > 1:
				res.errorf(n.ID, "node %q branches, which is not supported", label(n))
			}
		}

		if n.Type == NodeAgent && n.Agent != nil {
			if n.Agent.AgentID == "" {
				res.errorf(n.ID, "agent node %q has no agent selected", label(n))
			}
			if n.Agent.Prompt == "" {
				res.warnf(n.ID, "agent node %q has an empty prompt", label(n))
			} else {
				for _, v := range template.Vars(n.Agent.Prompt) {
					if !known[v] {
						res.warnf(n.ID, "agent node %q references undefined variable %q in its prompt", label(n), v)
					}
				}
			}
		}
	}

	// Path traversal from the input node. Only meaningful when the
	// input node is unique; with zero or multiple inputs the errors
	// above already describe the problem.
	if len(inputs) == 1 {
		res.checkPath(g, inputs[0])
	}

	return res
}

// checkPath walks from the input node following single outgoing edges
// and reports cycles, paths that end before the output node, and
// nodes the path never reaches. Unreached nodes are an error when the
// path itself is broken; when the path is a valid input-to-output
// chain they are only a warning — extra content the user has not
// deleted yet.
func (res *Result) checkPath(g *Graph, input *Node) {
	visited := make(map[string]bool)
	pathValid := true

	cur := input
	for {
		if visited[cur.ID] {
			res.errorf(cur.ID, "cycle detected: node %q is visited twice", label(cur))
			pathValid = false
			break
		}
		visited[cur.ID] = true

		out := g.OutgoingEdges(cur.ID)
		if len(out) != 1 {
			// Zero edges terminate the walk; branches were already
			// reported and make the path ambiguous, so stop here too.
			break
		}
		next := g.Node(out[0].Target)
		if next == nil {
			break
		}
		cur = next
	}

	if cur.Type != NodeOutput {
		res.errorf(cur.ID, "path from the input node ends at %q before reaching the output node", label(cur))
		pathValid = false
	}

	for _, n := range g.Nodes() {
		if visited[n.ID] {
			continue
		}
		if pathValid {
			res.warnf(n.ID, "node %q is not connected to the flow", label(n))
		} else {
			res.errorf(n.ID, "node %q is unreachable from the input node", label(n))
		}
	}
}
