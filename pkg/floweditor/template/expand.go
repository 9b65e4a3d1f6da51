package template

import (
	"fmt"
	"regexp"
	"strings"
)

// placeholderPattern matches {{varname}} with optional surrounding
// whitespace inside the braces, e.g. {{input}} or {{ input }}.
// Variable names contain alphanumerics and underscore.
var placeholderPattern = regexp.MustCompile(`\{\{\s*([a-zA-Z_][a-zA-Z0-9_]*)\s*\}\}`)

// Expander expands {{var}} placeholders in prompt templates.
//
// Create with NewExpander() and configure with Option functions.
// Expander is safe for concurrent use after construction.
type Expander struct {
	missingAction MissingAction
}

// NewExpander creates a new Expander with the given options.
//
// Default configuration:
//   - MissingAction: MissingKeep (keep placeholders as-is)
func NewExpander(opts ...Option) *Expander {
	e := &Expander{missingAction: MissingKeep}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Expand replaces {{var}} placeholders in s using the provided vars.
//
// Errors are only returned when MissingAction is MissingError and a
// placeholder has no matching variable.
//
// Example:
//
//	exp := NewExpander()
//	result, err := exp.Expand("Summarize {{input}}", map[string]any{"input": text})
func (e *Expander) Expand(s string, vars map[string]any) (string, error) {
	if s == "" {
		return "", nil
	}

	var missing []string
	result := placeholderPattern.ReplaceAllStringFunc(s, func(match string) string {
		name := strings.TrimSpace(match[2 : len(match)-2])
		if val, ok := vars[name]; ok {
			return fmt.Sprintf("%v", val)
		}
		switch e.missingAction {
		case MissingEmpty:
			return ""
		case MissingError:
			missing = append(missing, name)
			return match
		default: // MissingKeep
			return match
		}
	})

	if len(missing) > 0 {
		return result, &UndefinedVariableError{Names: missing}
	}
	return result, nil
}

// MustExpand expands placeholders in s and panics on error.
// Safe to use with MissingKeep/MissingEmpty, which never error.
func (e *Expander) MustExpand(s string, vars map[string]any) string {
	result, err := e.Expand(s, vars)
	if err != nil {
		panic(fmt.Sprintf("template: %v", err))
	}
	return result
}

// Vars returns the placeholder names referenced in s, in order of
// first appearance without duplicates. The editor uses this to hint
// which input fields a prompt consumes.
func Vars(s string) []string {
	var names []string
	seen := make(map[string]bool)
	for _, m := range placeholderPattern.FindAllStringSubmatch(s, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}

// UndefinedVariableError reports placeholders with no matching variable.
type UndefinedVariableError struct {
	// Names are the undefined placeholder names.
	Names []string
}

// Error implements the error interface.
func (e *UndefinedVariableError) Error() string {
	if len(e.Names) == 1 {
		return fmt.Sprintf("undefined variable: %s", e.Names[0])
	}
	return fmt.Sprintf("undefined variables: %s", strings.Join(e.Names, ", "))
}

// defaultExpander backs the package-level functions.
var defaultExpander = NewExpander()

// Expand replaces {{var}} placeholders using the default expander
// (missing placeholders are kept as-is).
func Expand(s string, vars map[string]any) string {
	result, _ := defaultExpander.Expand(s, vars)
	return result
}
