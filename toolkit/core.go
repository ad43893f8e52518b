// Package toolkit exposes a set of callable operations to a language model as a
// single hierarchical tool.
//
// A Toolkit holds Parents; a Parent groups related Children; a Child is one
// operation with typed arguments. The model invokes any number of children in
// one call and receives one aggregated response that also serves as the
// invocation record shown to the user.
package toolkit

import (
	"context"
	"encoding/json"
)

// Parent is a named group of related children.
type Parent interface {
	// GetName returns the unique name of the group inside a toolkit.
	GetName() string

	// GetDescription describes the group to the model.
	GetDescription() string

	// GetChildren returns the children keyed by name.
	GetChildren() map[string]Child

	// HandleChildren runs the requested children in order. Child failures are
	// reported inside the returned ParentResponse; they never abort the batch.
	HandleChildren(ctx context.Context, childRequests []ToolKitChild) ParentResponse
}

// Child is a single callable operation.
type Child interface {
	GetName() string
	GetDescription() string

	// GetInputSchema returns the JSON schema of the arguments.
	GetInputSchema() interface{}

	// Handle decodes args and runs the operation. Errors are ToolKitError values.
	Handle(ctx context.Context, args json.RawMessage) (interface{}, error)
}
