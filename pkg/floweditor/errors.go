package floweditor

import (
	"errors"
	"fmt"
)

// Sentinel errors for chain conversion.
var (
	// ErrNoInputNode indicates the graph has no input node to start from.
	ErrNoInputNode = errors.New("graph has no input node")

	// ErrMultipleInputNodes indicates the graph has more than one input node.
	ErrMultipleInputNodes = errors.New("graph has multiple input nodes")

	// ErrNotLinear indicates the graph is not a simple input-to-output
	// path (a branch, cycle, or dead end). Callers are expected to run
	// Validate before converting; this error is the defensive refusal
	// when they did not.
	ErrNotLinear = errors.New("graph is not a linear path")

	// ErrEmptyChain indicates a chain with no nodes.
	ErrEmptyChain = errors.New("chain is empty")

	// ErrBrokenChain indicates a chain whose nextNodeId linkage does
	// not match its node order, or references an unknown node.
	ErrBrokenChain = errors.New("chain linkage is broken")
)

// ConversionError wraps a conversion failure with the node where the
// structure broke down.
type ConversionError struct {
	// NodeID is the node at which conversion failed, if known.
	NodeID string
	// Err is the underlying sentinel error.
	Err error
}

// Error implements the error interface.
func (e *ConversionError) Error() string {
	if e.NodeID == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("node %s: %v", e.NodeID, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *ConversionError) Unwrap() error {
	return e.Err
}
