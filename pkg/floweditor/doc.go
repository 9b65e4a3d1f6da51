/*
Package floweditor provides the data model and algorithms behind the
flow editor canvas: the editable node-and-edge graph, the converter
between that graph and the linear execution chain the engine consumes,
and the structural validator that gates save.

# Overview

A flow is edited as a Graph of typed nodes (input, agent, output)
connected by edges. The execution engine does not consume graphs: it
consumes a Chain, a singly linked list in which each node carries a
nextNodeId. GraphToChain and ChainToGraph map between the two, and
Validate reports the structural errors and warnings the editor shows.

# Basic Usage

Build a graph, validate it, and convert it for saving:

	g := floweditor.NewGraph()

	in := g.AddNode(floweditor.NodeInput, "Input")
	in.Input.Fields = []floweditor.InputField{
	    {Name: "url", Label: "URL", Type: floweditor.FieldText, Required: true},
	}

	agent := g.AddNode(floweditor.NodeAgent, "Summarize")
	agent.Agent.AgentID = "a1"
	agent.Agent.Prompt = "Summarize {{input}}"

	out := g.AddNode(floweditor.NodeOutput, "Output")
	out.Output.Format = floweditor.FormatMarkdown

	g.AddEdge(in.ID, agent.ID)
	g.AddEdge(agent.ID, out.ID)

	if res := floweditor.Validate(g); res.HasErrors() {
	    // block save, show res.Errors
	}

	chain, err := floweditor.GraphToChain(g)

# Round Trip

For any well-formed chain c, GraphToChain(ChainToGraph(c)) reproduces
c exactly: same payloads, same order, same linkage. Converting a
validated graph to a chain and back yields an isomorphic graph;
absolute canvas coordinates can differ only when the source carried
none (ChainToGraph then assigns a vertical layout).

# Errors And Warnings

Validate returns findings, not Go errors: Result.Errors block save,
Result.Warnings (empty agent prompt, disconnected extra nodes) do
not. GraphToChain is defensive — invoked on a graph that was never
validated it returns an error wrapping ErrNotLinear rather than
producing a malformed chain.

# Thread Safety

Graph is NOT safe for concurrent mutation; the editor owns it on a
single goroutine. Snapshot returns a deep copy safe to share, which
is also the intended representation for caller-owned undo history.

# Subpackages

  - execution: run records (FlowExecution, NodeExecution, logs)
  - monitor: polling execution monitor with backoff and caching
  - client: HTTP client for the flow API
  - template: {{var}} prompt placeholder expansion
  - config: settings loading (YAML/JSON)
  - observability: logging, metrics, and tracing helpers
*/
package floweditor
