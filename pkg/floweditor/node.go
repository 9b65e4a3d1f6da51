package floweditor

// NodeType identifies the kind of a flow node.
// The set is closed: every switch over NodeType in this package
// (converter, validator) matches all three kinds exhaustively.
type NodeType string

const (
	// NodeInput declares the flow's external parameters. Exactly one
	// per flow; it is always the head of the execution chain.
	NodeInput NodeType = "input"

	// NodeAgent invokes an AI agent with a prompt template.
	NodeAgent NodeType = "agent"

	// NodeOutput declares the delivery format. Exactly one per flow;
	// it is always the tail of the execution chain.
	NodeOutput NodeType = "output"
)

// FieldType is the widget type of an input-node field.
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldTextarea FieldType = "textarea"
	FieldDropdown FieldType = "dropdown"
	FieldCheckbox FieldType = "checkbox"
	FieldNumber   FieldType = "number"
)

// OutputFormat is the delivery format of an output node.
type OutputFormat string

const (
	FormatMarkdown OutputFormat = "markdown"
	FormatJSON     OutputFormat = "json"
	FormatText     OutputFormat = "text"
	FormatHTML     OutputFormat = "html"
)

// Position is a node's 2-D canvas position. It is purely
// presentational and never affects validation or execution.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// InputField is one typed parameter declared by an input node.
type InputField struct {
	// Name is the key under which the value appears in the flow input.
	Name string `json:"name"`
	// Label is the human-readable form label.
	Label string `json:"label"`
	// Type selects the form widget.
	Type FieldType `json:"type"`
	// Required marks the field as mandatory at trigger time.
	Required bool `json:"required"`
	// Options lists the choices for dropdown fields.
	Options []string `json:"options,omitempty"`
}

// InputConfig is the payload of an input node: the ordered list of
// fields the flow accepts from its trigger.
type InputConfig struct {
	Fields []InputField `json:"fields"`
}

// AgentConfig is the payload of an agent node.
type AgentConfig struct {
	// AgentID references the agent to invoke. Empty is a validation error.
	AgentID string `json:"agentId"`
	// Prompt is the prompt template. It may contain {{input}}-style
	// placeholders substituted from upstream output at execution time.
	Prompt string `json:"prompt"`
	// SkillIDs optionally restricts the skills available to the agent.
	SkillIDs []string `json:"skillIds,omitempty"`
	// Model optionally overrides the agent's default model.
	Model string `json:"model,omitempty"`
	// TimeoutMS bounds the node's execution time in milliseconds.
	TimeoutMS int `json:"timeout,omitempty"`
	// RetryOnError enables automatic retries on execution failure.
	RetryOnError bool `json:"retryOnError,omitempty"`
	// MaxRetries caps retries when RetryOnError is set.
	MaxRetries int `json:"maxRetries,omitempty"`
}

// OutputConfig is the payload of an output node.
type OutputConfig struct {
	Format           OutputFormat `json:"format"`
	SaveToFile       bool         `json:"saveToFile,omitempty"`
	IncludeMetadata  bool         `json:"includeMetadata,omitempty"`
	IncludeTimestamp bool         `json:"includeTimestamp,omitempty"`
}

// Node is one node of the editable flow graph: a tagged union over
// NodeType. Exactly one of Input, Agent, Output is non-nil, matching
// Type. Position is presentational only.
type Node struct {
	ID          string   `json:"nodeId"`
	Type        NodeType `json:"type"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Position    Position `json:"position"`

	Input  *InputConfig  `json:"input,omitempty"`
	Agent  *AgentConfig  `json:"agent,omitempty"`
	Output *OutputConfig `json:"output,omitempty"`
}

// Clone returns a deep copy of the node.
func (n *Node) Clone() *Node {
	c := *n
	if n.Input != nil {
		in := *n.Input
		in.Fields = make([]InputField, len(n.Input.Fields))
		for i, f := range n.Input.Fields {
			in.Fields[i] = f
			if f.Options != nil {
				in.Fields[i].Options = append([]string(nil), f.Options...)
			}
		}
		c.Input = &in
	}
	if n.Agent != nil {
		ag := *n.Agent
		if n.Agent.SkillIDs != nil {
			ag.SkillIDs = append([]string(nil), n.Agent.SkillIDs...)
		}
		c.Agent = &ag
	}
	if n.Output != nil {
		out := *n.Output
		c.Output = &out
	}
	return &c
}

// Edge is a directed connection between two nodes: data flows from
// Source to Target. Edges have no identity beyond their endpoints;
// the handle fields carry the canvas port identifiers when present.
type Edge struct {
	Source       string `json:"source"`
	Target       string `json:"target"`
	SourceHandle string `json:"sourceHandle,omitempty"`
	TargetHandle string `json:"targetHandle,omitempty"`
}
