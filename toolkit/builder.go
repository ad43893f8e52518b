package toolkit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
)

// HandlerFunc runs an operation with decoded arguments of type T.
type HandlerFunc[T any] func(ctx context.Context, args T) (interface{}, error)

type child[T any] struct {
	name        string
	description string
	schema      interface{}
	handler     HandlerFunc[T]
}

// NewChild builds a Child whose input schema is reflected from T.
//
//	flights := toolkit.NewChild("search_flights", "Search flights between two airports.", handleFlights)
func NewChild[T any](name, description string, handler HandlerFunc[T]) Child {
	return &child[T]{
		name:        name,
		description: description,
		schema:      GenerateSchema[T](),
		handler:     handler,
	}
}

func (c *child[T]) GetName() string             { return c.name }
func (c *child[T]) GetDescription() string      { return c.description }
func (c *child[T]) GetInputSchema() interface{} { return c.schema }

func (c *child[T]) Handle(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var decoded T
	if len(args) > 0 {
		if err := json.Unmarshal(args, &decoded); err != nil {
			return nil, NewError("invalid_arguments", fmt.Sprintf("%s: %v", c.name, err))
		}
	}

	result, err := c.handler(ctx, decoded)
	if err != nil {
		var tkErr ToolKitError
		if errors.As(err, &tkErr) {
			return nil, tkErr
		}
		return nil, NewError("handler_execution_error", fmt.Sprintf("%s: %v", c.name, err))
	}
	return result, nil
}

type parent struct {
	name        string
	description string
	children    map[string]Child
	logger      *slog.Logger
}

// NewParent groups children under name. Nil children are skipped and a later
// child replaces an earlier one with the same name. Those registration mistakes
// are reported on slog.Default; once the parent joins a toolkit it logs through
// the toolkit's logger.
func NewParent(name, description string, children ...Child) Parent {
	byName := make(map[string]Child, len(children))
	for _, c := range children {
		if c == nil {
			slog.Warn("nil child passed to toolkit.NewParent", "parent", name)
			continue
		}
		if _, exists := byName[c.GetName()]; exists {
			slog.Warn("duplicate child name, overwriting", "parent", name, "child", c.GetName())
		}
		byName[c.GetName()] = c
	}
	return &parent{name: name, description: description, children: byName, logger: slog.Default()}
}

func (p *parent) setLogger(logger *slog.Logger) { p.logger = logger }

func (p *parent) GetName() string               { return p.name }
func (p *parent) GetDescription() string        { return p.description }
func (p *parent) GetChildren() map[string]Child { return p.children }

func (p *parent) HandleChildren(ctx context.Context, childRequests []ToolKitChild) ParentResponse {
	resp := ParentResponse{Name: p.name}
	for _, req := range childRequests {
		c, ok := p.children[req.Name]
		if !ok {
			resp.AddResponse(ChildResponse{
				Name:     req.Name,
				Args:     req.Args,
				Response: NewError("child_not_found", fmt.Sprintf("child tool '%s' not found in '%s'", req.Name, p.name)),
			})
			continue
		}

		result, err := c.Handle(ctx, req.Args)
		if err != nil {
			p.logger.Warn("tool failed", "parent", p.name, "child", req.Name, "error", err)
			resp.AddResponse(ChildResponse{Name: req.Name, Args: req.Args, Response: err})
			continue
		}
		resp.AddResponse(ChildResponse{Name: req.Name, Args: req.Args, Response: result})
	}
	return resp
}
