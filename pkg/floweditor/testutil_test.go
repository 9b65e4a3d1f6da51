package floweditor

// Test helpers shared across graph, validator, and converter tests.

// buildLinearGraph returns the canonical valid flow — input → agent →
// output — along with its three nodes in order.
func buildLinearGraph() (*Graph, *Node, *Node, *Node) {
	g := NewGraph()

	in := g.AddNode(NodeInput, "Input")
	in.Input.Fields = []InputField{
		{Name: "url", Label: "URL", Type: FieldText, Required: true},
	}

	agent := g.AddNode(NodeAgent, "Summarize")
	agent.Agent.AgentID = "a1"
	agent.Agent.Prompt = "Summarize {{input}}"

	out := g.AddNode(NodeOutput, "Output")
	out.Output.Format = FormatMarkdown

	g.AddEdge(in.ID, agent.ID)
	g.AddEdge(agent.ID, out.ID)
	return g, in, agent, out
}

// buildPipelineGraph returns input → agent × n → output with every
// agent configured.
func buildPipelineGraph(agents int) *Graph {
	g := NewGraph()
	prev := g.AddNode(NodeInput, "Input")
	for i := 0; i < agents; i++ {
		a := g.AddNode(NodeAgent, "Agent")
		a.Agent.AgentID = "a1"
		a.Agent.Prompt = "do the work"
		g.AddEdge(prev.ID, a.ID)
		prev = a
	}
	out := g.AddNode(NodeOutput, "Output")
	g.AddEdge(prev.ID, out.ID)
	return g
}

// chainWithPositions returns a well-formed three-node chain whose
// nodes all carry stored canvas positions.
func chainWithPositions() Chain {
	next := func(id string) *string { return &id }
	return Chain{
		{
			Node: Node{
				ID: "n1", Type: NodeInput, Name: "Input",
				Position: Position{X: 100, Y: 50},
				Input: &InputConfig{Fields: []InputField{
					{Name: "topic", Label: "Topic", Type: FieldText, Required: true},
				}},
			},
			NextNodeID: next("n2"),
		},
		{
			Node: Node{
				ID: "n2", Type: NodeAgent, Name: "Research",
				Position: Position{X: 100, Y: 220},
				Agent:    &AgentConfig{AgentID: "a7", Prompt: "Research {{topic}}"},
			},
			NextNodeID: next("n3"),
		},
		{
			Node: Node{
				ID: "n3", Type: NodeOutput, Name: "Output",
				Position: Position{X: 100, Y: 390},
				Output:   &OutputConfig{Format: FormatJSON, IncludeMetadata: true},
			},
		},
	}
}

// findingMessages flattens findings to their messages for assertions.
func findingMessages(fs []Finding) []string {
	msgs := make([]string, len(fs))
	for i, f := range fs {
		msgs[i] = f.Message
	}
	return msgs
}
