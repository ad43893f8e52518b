package toolkit

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// --- Requests ---

// ToolKit is the argument object the model sends when it calls the toolkit.
type ToolKit struct {
	Name           string          `json:"name" jsonschema:"required,description=The name of the toolkit."`
	ToolKitParents []ToolKitParent `json:"parents" jsonschema:"required,description=The tool groups to run in this call."`
}

// ToolKitParent selects one group and the children to run inside it.
type ToolKitParent struct {
	Name          string         `json:"name" jsonschema:"required,description=The name of the tool group."`
	ToolKitChilds []ToolKitChild `json:"childs" jsonschema:"required,description=The tools to run within this group, in order."`
}

// ToolKitChild names one child and carries its raw JSON arguments.
type ToolKitChild struct {
	Name string          `json:"name" jsonschema:"required,description=The name of the tool to run."`
	Args json.RawMessage `json:"args" jsonschema:"required,description=The arguments for the tool, as a JSON object."`
}

// --- Responses ---

// ToolKitResponse mirrors the request hierarchy with one entry per executed child.
type ToolKitResponse struct {
	Name      string           `json:"name"`
	Responses []ParentResponse `json:"responses,omitempty"`
}

// ParentResponse holds the child responses of one group in request order.
type ParentResponse struct {
	Name            string          `json:"name"`
	ChildsResponses []ChildResponse `json:"childsResponses,omitempty"`
}

// ChildResponse is the result of one child: its output, or a ToolKitError.
type ChildResponse struct {
	Name     string          `json:"name"`
	Args     json.RawMessage `json:"args,omitempty"`
	Response interface{}     `json:"response,omitempty"`
}

// Failed reports whether the child ended in an error.
func (cr ChildResponse) Failed() bool {
	_, ok := cr.Response.(ToolKitError)
	return ok
}

// AddResponse appends a group response.
func (tr *ToolKitResponse) AddResponse(pr ParentResponse) {
	tr.Responses = append(tr.Responses, pr)
}

// AddResponse appends a child response.
func (pr *ParentResponse) AddResponse(cr ChildResponse) {
	pr.ChildsResponses = append(pr.ChildsResponses, cr)
}

// Record is a flattened view of one child call: "<parent>.<child>", its
// arguments and its result.
type Record struct {
	Tool   string          `json:"tool"`
	Args   json.RawMessage `json:"args,omitempty"`
	Result interface{}     `json:"result"`
	Failed bool            `json:"failed,omitempty"`
}

// Records flattens the response into call records in execution order.
func (tr ToolKitResponse) Records() []Record {
	var records []Record
	for _, pr := range tr.Responses {
		for _, cr := range pr.ChildsResponses {
			records = append(records, Record{
				Tool:   pr.Name + "." + cr.Name,
				Args:   cr.Args,
				Result: cr.Response,
				Failed: cr.Failed(),
			})
		}
	}
	return records
}

// --- Errors ---

// ToolKitError is a machine-readable code plus a message, embedded in responses
// in place of a result.
//
// Codes in use: invalid_input_json, no_toolkit_parents, parent_not_found,
// child_not_found, invalid_arguments, handler_execution_error.
type ToolKitError struct {
	Code    string `json:"Code"`
	Message string `json:"Message"`
}

func (e ToolKitError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewError creates a ToolKitError.
func NewError(code, message string) error {
	return ToolKitError{Code: code, Message: message}
}

// --- Schemas ---

// GenerateSchema reflects a self-contained JSON schema for T, honouring
// `jsonschema:"required,description=..."` tags.
func GenerateSchema[T any]() interface{} {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties:  true,
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}
	var v T
	return reflector.Reflect(&v)
}

// GetToolKitSchemaForAnthropic returns the input schema of the toolkit tool as
// registered with Claude.
func GetToolKitSchemaForAnthropic() interface{} {
	return GenerateSchema[ToolKit]()
}
