/*
Package template provides {{var}} placeholder expansion for agent
prompt templates.

# Overview

Agent prompts reference flow input with {{input}}-style placeholders
that the execution engine substitutes at run time. The editor needs
the same expansion for prompt previews and webhook payload echoes,
and needs to list which placeholders a prompt references.

# Basic Usage

	result := template.Expand("Summarize {{input}}", map[string]any{
	    "input": "the article text",
	})
	// result: "Summarize the article text"

	names := template.Vars("Compare {{a}} with {{b}} and {{a}}")
	// names: ["a", "b"]

# Missing Variables

By default, missing placeholders are kept as-is (the engine may fill
them later). Configure with options:

	exp := template.NewExpander(template.WithMissingAction(template.MissingError))
	_, err := exp.Expand("Hello {{missing}}", nil)
	// err: "undefined variable: missing"

# Thread Safety

Expander is safe for concurrent use after construction.
Package-level functions use a shared default expander.
*/
package template
