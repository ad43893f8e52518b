package toolkit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/samber/lo"
)

// Toolkit is a registry of Parents exposed to the model as one tool.
type Toolkit struct {
	parents map[string]Parent
	name    string
	logger  *slog.Logger
}

// loggerSetter is implemented by parents built with NewParent.
type loggerSetter interface {
	setLogger(logger *slog.Logger)
}

// New registers parents under a toolkit name and logs to slog.Default.
func New(name string, parents ...Parent) *Toolkit {
	return NewWithLogger(nil, name, parents...)
}

// NewWithLogger is New with an explicit logger, shared with every parent built
// by NewParent. Nil parents are skipped and a later parent replaces an earlier
// one with the same name.
func NewWithLogger(logger *slog.Logger, name string, parents ...Parent) *Toolkit {
	if logger == nil {
		logger = slog.Default()
	}
	parentMap := make(map[string]Parent, len(parents))
	for _, p := range parents {
		if p == nil {
			logger.Warn("nil parent passed to toolkit.New, skipping", "toolkit", name)
			continue
		}
		if _, exists := parentMap[p.GetName()]; exists {
			logger.Warn("duplicate parent name, overwriting", "toolkit", name, "parent", p.GetName())
		}
		if ls, ok := p.(loggerSetter); ok {
			ls.setLogger(logger)
		}
		parentMap[p.GetName()] = p
	}

	return &Toolkit{
		parents: parentMap,
		name:    name,
		logger:  logger,
	}
}

// GetToolkitName returns the toolkit name, used as the tool name.
func (t *Toolkit) GetToolkitName() string {
	return t.name
}

// GetToolkitSchema returns the request schema for provider. Only "anthropic"
// is known; anything else falls back to it.
func (t *Toolkit) GetToolkitSchema(provider string) interface{} {
	if provider != "anthropic" {
		t.logger.Warn("unsupported schema provider, using anthropic", "provider", provider)
	}
	return GetToolKitSchemaForAnthropic()
}

// GetToolkitDescription renders the parents and children, with their input
// schemas, in the XML-like layout used as the tool description. Output is
// sorted by name so the description is stable between calls.
func (t *Toolkit) GetToolkitDescription() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "In this environment, you have access to the following <toolkit name=\"%s\">:\n", t.name)
	sb.WriteString("A <toolkit> is a collection of <parents>, a <parent> is a collection of <childs>.\n")
	sb.WriteString("Below is the list of available <parents> and their <childs>:\n")

	for _, pname := range sortedKeys(t.parents) {
		parent := t.parents[pname]
		fmt.Fprintf(&sb, "<parent name=\"%s\" description=\"%s\">\n", parent.GetName(), parent.GetDescription())

		children := parent.GetChildren()
		for _, cname := range sortedKeys(children) {
			child := children[cname]
			schemaStr := "schema_error"
			if schemaBytes, err := json.Marshal(child.GetInputSchema()); err == nil {
				schemaStr = string(schemaBytes)
			} else {
				t.logger.Error("failed to marshal child schema", "parent", pname, "child", cname, "error", err)
			}
			fmt.Fprintf(&sb, "<child name=\"%s\" description=\"%s\"><input_schema>%s</input_schema></child>\n", child.GetName(), child.GetDescription(), schemaStr)
		}
		sb.WriteString("</parent>\n")
	}
	sb.WriteString("**NOTE**: A child tool cannot be invoked directly, it must be invoked through its parent.\n")
	sb.WriteString("</toolkit>")

	return sb.String()
}

// HandleToolKit decodes a toolkit call and runs every requested child.
//
// A malformed payload returns a parse-error response together with the error.
// Unknown parents or children and failing handlers are reported inside the
// response and do not produce an error.
func (t *Toolkit) HandleToolKit(ctx context.Context, input json.RawMessage) (ToolKitResponse, error) {
	var req ToolKit
	if err := json.Unmarshal(input, &req); err != nil {
		t.logger.Error("failed to parse toolkit input", "toolkit", t.name, "error", err)
		return ToolKitResponse{
			Name: "toolkit_request_parse_error",
			Responses: []ParentResponse{
				{
					Name: "_parse_error",
					ChildsResponses: []ChildResponse{
						{Name: "_input_error", Response: NewError("invalid_input_json", err.Error())},
					},
				},
			},
		}, fmt.Errorf("error unmarshaling toolkit JSON input: %w", err)
	}

	return t.process(ctx, req)
}

func (t *Toolkit) process(ctx context.Context, req ToolKit) (ToolKitResponse, error) {
	resp := ToolKitResponse{Name: t.name}
	if len(req.ToolKitParents) == 0 {
		return resp, NewError("no_toolkit_parents", "no toolkit parents specified in the request")
	}

	for _, parentReq := range req.ToolKitParents {
		parent, ok := t.parents[parentReq.Name]
		if !ok {
			t.logger.Warn("requested parent not found", "toolkit", t.name, "parent", parentReq.Name)
			resp.AddResponse(ParentResponse{
				Name: parentReq.Name,
				ChildsResponses: []ChildResponse{
					{Name: "_parent_error", Response: NewError("parent_not_found", fmt.Sprintf("parent toolkit '%s' not registered", parentReq.Name))},
				},
			})
			continue
		}
		resp.AddResponse(parent.HandleChildren(ctx, parentReq.ToolKitChilds))
	}

	return resp, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := lo.Keys(m)
	sort.Strings(keys)
	return keys
}
