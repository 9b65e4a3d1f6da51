package floweditor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestValidate_ValidLinearGraph verifies the canonical flow passes
// with no findings at all.
func TestValidate_ValidLinearGraph(t *testing.T) {
	g, _, _, _ := buildLinearGraph()

	res := Validate(g)
	assert.False(t, res.HasErrors())
	assert.False(t, res.HasWarnings())
	assert.Empty(t, res.Errors)
	assert.Empty(t, res.Warnings)
}

// TestValidate_ValidPipeline verifies a longer agent pipeline with
// configured agents is clean.
func TestValidate_ValidPipeline(t *testing.T) {
	res := Validate(buildPipelineGraph(4))
	assert.False(t, res.HasErrors())
	assert.False(t, res.HasWarnings())
}

// TestValidate_MissingInputNode verifies rule 1, zero side.
func TestValidate_MissingInputNode(t *testing.T) {
	g := NewGraph()
	a := g.AddNode(NodeAgent, "Agent")
	a.Agent.AgentID = "a1"
	a.Agent.Prompt = "p"
	out := g.AddNode(NodeOutput, "Output")
	g.AddEdge(a.ID, out.ID)

	res := Validate(g)
	assert.True(t, res.HasErrors())
	assert.Contains(t, findingMessages(res.Errors)[0], "missing input node")
}

// TestValidate_MultipleInputNodes verifies rule 1, surplus side: two
// input nodes always produce an error mentioning "input".
func TestValidate_MultipleInputNodes(t *testing.T) {
	g, in, _, _ := buildLinearGraph()
	extra := g.AddNode(NodeInput, "Second Input")
	g.AddEdge(extra.ID, in.ID)

	res := Validate(g)
	require.True(t, res.HasErrors())

	found := false
	for _, msg := range findingMessages(res.Errors) {
		if strings.Contains(msg, "input") {
			found = true
		}
	}
	assert.True(t, found, "expected an error mentioning input, got %v", res.Errors)
}

// TestValidate_MissingOutputNode verifies rule 2, zero side.
func TestValidate_MissingOutputNode(t *testing.T) {
	g := NewGraph()
	in := g.AddNode(NodeInput, "Input")
	a := g.AddNode(NodeAgent, "Agent")
	a.Agent.AgentID = "a1"
	a.Agent.Prompt = "p"
	g.AddEdge(in.ID, a.ID)

	res := Validate(g)
	assert.True(t, res.HasErrors())
	assert.Contains(t, findingMessages(res.Errors), "missing output node: the flow needs exactly one output node")
}

// TestValidate_MultipleOutputNodes verifies rule 2, surplus side.
func TestValidate_MultipleOutputNodes(t *testing.T) {
	g, _, _, _ := buildLinearGraph()
	g.AddNode(NodeOutput, "Extra Output")

	res := Validate(g)
	assert.True(t, res.HasErrors())

	found := false
	for _, f := range res.Errors {
		if strings.Contains(f.Message, "multiple output nodes") {
			found = true
		}
	}
	assert.True(t, found)
}

// TestValidate_NoOutgoingConnection is the classic broken-pipeline
// scenario: removing the agent→output edge blocks save with an error
// naming the agent node.
func TestValidate_NoOutgoingConnection(t *testing.T) {
	g, _, agent, out := buildLinearGraph()
	require.True(t, g.RemoveEdge(agent.ID, out.ID))

	res := Validate(g)
	require.True(t, res.HasErrors())

	found := false
	for _, f := range res.Errors {
		if f.NodeID == agent.ID && strings.Contains(f.Message, "no outgoing connection") {
			found = true
		}
	}
	assert.True(t, found, "expected a no-outgoing error naming the agent node, got %v", res.Errors)
}

// TestValidate_BranchingNode verifies rule 3: a node with two
// outgoing edges yields an error naming that node.
func TestValidate_BranchingNode(t *testing.T) {
	g, in, agent, out := buildLinearGraph()
	second := g.AddNode(NodeAgent, "Second")
	second.Agent.AgentID = "a2"
	second.Agent.Prompt = "p"
	g.AddEdge(in.ID, second.ID) // input now branches
	g.AddEdge(second.ID, out.ID)
	_ = agent

	res := Validate(g)
	require.True(t, res.HasErrors())

	found := false
	for _, f := range res.Errors {
		if f.NodeID == in.ID && strings.Contains(f.Message, "branches") {
			found = true
		}
	}
	assert.True(t, found, "expected a branch error naming the input node, got %v", res.Errors)
}

// TestValidate_OutputWithOutgoingEdge verifies rule 4.
func TestValidate_OutputWithOutgoingEdge(t *testing.T) {
	g, _, agent, out := buildLinearGraph()
	g.AddEdge(out.ID, agent.ID)

	res := Validate(g)
	require.True(t, res.HasErrors())

	found := false
	for _, f := range res.Errors {
		if f.NodeID == out.ID && strings.Contains(f.Message, "must not have outgoing") {
			found = true
		}
	}
	assert.True(t, found)
}

// TestValidate_Cycle verifies rule 5's cycle detection names the
// revisited node.
func TestValidate_Cycle(t *testing.T) {
	g := NewGraph()
	in := g.AddNode(NodeInput, "Input")
	a := g.AddNode(NodeAgent, "A")
	a.Agent.AgentID = "a1"
	a.Agent.Prompt = "p"
	b := g.AddNode(NodeAgent, "B")
	b.Agent.AgentID = "a2"
	b.Agent.Prompt = "p"
	g.AddNode(NodeOutput, "Output")

	g.AddEdge(in.ID, a.ID)
	g.AddEdge(a.ID, b.ID)
	g.AddEdge(b.ID, a.ID) // cycle a -> b -> a

	res := Validate(g)
	require.True(t, res.HasErrors())

	found := false
	for _, f := range res.Errors {
		if strings.Contains(f.Message, "cycle") {
			found = true
		}
	}
	assert.True(t, found, "expected a cycle error, got %v", res.Errors)
}

// TestValidate_AgentWithoutAgentID verifies rule 6.
func TestValidate_AgentWithoutAgentID(t *testing.T) {
	g, _, agent, _ := buildLinearGraph()
	agent.Agent.AgentID = ""

	res := Validate(g)
	require.True(t, res.HasErrors())

	found := false
	for _, f := range res.Errors {
		if f.NodeID == agent.ID && strings.Contains(f.Message, "no agent selected") {
			found = true
		}
	}
	assert.True(t, found)
}

// TestValidate_EmptyPrompt_IsWarning verifies rule 7: an empty prompt
// may legitimately rely on injected input, so it never blocks save.
func TestValidate_EmptyPrompt_IsWarning(t *testing.T) {
	g, _, agent, _ := buildLinearGraph()
	agent.Agent.Prompt = ""

	res := Validate(g)
	assert.False(t, res.HasErrors())
	require.True(t, res.HasWarnings())
	assert.Equal(t, agent.ID, res.Warnings[0].NodeID)
	assert.Contains(t, res.Warnings[0].Message, "empty prompt")
}

// TestValidate_UndefinedPromptVariable_IsWarning verifies a prompt
// placeholder with no matching input field is flagged without
// blocking save. The implicit "input" variable and declared input
// fields never warn.
func TestValidate_UndefinedPromptVariable_IsWarning(t *testing.T) {
	g, _, agent, _ := buildLinearGraph()
	agent.Agent.Prompt = "Summarize {{input}} from {{url}} as {{style}}"

	res := Validate(g)
	assert.False(t, res.HasErrors())
	require.Len(t, res.Warnings, 1, "only the unknown placeholder should warn: %v", res.Warnings)
	assert.Equal(t, agent.ID, res.Warnings[0].NodeID)
	assert.Contains(t, res.Warnings[0].Message, `"style"`)
}

// TestValidate_Orphan_IsWarning verifies rule 8: a disconnected but
// otherwise well-formed node on a valid path is only a warning.
func TestValidate_Orphan_IsWarning(t *testing.T) {
	g, _, _, out := buildLinearGraph()

	orphan := g.AddNode(NodeAgent, "Orphan")
	orphan.Agent.AgentID = "a9"
	orphan.Agent.Prompt = "p"
	// Give the orphan its one outgoing edge so rule 3 is satisfied.
	g.AddEdge(orphan.ID, out.ID)

	res := Validate(g)
	assert.False(t, res.HasErrors(), "orphan alongside a valid path must not block save: %v", res.Errors)
	require.True(t, res.HasWarnings())
	assert.Equal(t, orphan.ID, res.Warnings[0].NodeID)
	assert.Contains(t, res.Warnings[0].Message, "not connected")
}

// TestValidate_Orphan_BecomesErrorOnBrokenPath verifies rule 8's flip
// side: when the main path is broken, unreached nodes are errors.
func TestValidate_Orphan_BecomesErrorOnBrokenPath(t *testing.T) {
	g, in, agent, out := buildLinearGraph()
	require.True(t, g.RemoveEdge(in.ID, agent.ID)) // path now ends at the input

	res := Validate(g)
	require.True(t, res.HasErrors())

	unreachable := 0
	for _, f := range res.Errors {
		if strings.Contains(f.Message, "unreachable") {
			unreachable++
		}
	}
	assert.Equal(t, 2, unreachable, "agent and output should both be unreachable, got %v", res.Errors)
	_ = out
}

// TestValidate_Idempotent verifies re-running the validator on an
// unchanged graph yields identical results.
func TestValidate_Idempotent(t *testing.T) {
	graphs := map[string]*Graph{
		"valid":  buildPipelineGraph(2),
		"broken": NewGraph(),
	}
	g, _, agent, out := buildLinearGraph()
	g.RemoveEdge(agent.ID, out.ID)
	graphs["no-outgoing"] = g

	for name, g := range graphs {
		t.Run(name, func(t *testing.T) {
			first := Validate(g)
			second := Validate(g)
			assert.Equal(t, first, second)
		})
	}
}
