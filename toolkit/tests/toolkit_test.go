package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/invopop/jsonschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hamzaessahbaoui/travel-planner/toolkit"
)

func newTestParent(t *testing.T, name string, children ...toolkit.Child) toolkit.Parent {
	t.Helper()
	return toolkit.NewParent(name, "desc_"+name, children...)
}

func TestNew(t *testing.T) {
	p1 := newTestParent(t, "flights", newCityChild(t, "search", "f", false))
	p2 := newTestParent(t, "hotels", newCityChild(t, "search", "h", false))

	tests := []struct {
		name        string
		parents     []toolkit.Parent
		expectNames []string
	}{
		{name: "no parents", parents: nil, expectNames: nil},
		{name: "two parents", parents: []toolkit.Parent{p1, p2}, expectNames: []string{"flights", "hotels"}},
		{name: "nil parent ignored", parents: []toolkit.Parent{p1, nil, p2}, expectNames: []string{"flights", "hotels"}},
		{name: "duplicate overwrites", parents: []toolkit.Parent{p1, p2, p1}, expectNames: []string{"flights", "hotels"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tk := toolkit.New("travel_toolkit", tc.parents...)
			require.NotNil(t, tk)
			assert.Equal(t, "travel_toolkit", tk.GetToolkitName())

			desc := tk.GetToolkitDescription()
			assert.Equal(t, len(tc.expectNames), strings.Count(desc, "<parent name="))
			for _, name := range tc.expectNames {
				assert.Contains(t, desc, fmt.Sprintf(`<parent name="%s"`, name))
			}
		})
	}
}

func TestHandleToolKit_Success(t *testing.T) {
	tk := toolkit.New("travel_toolkit",
		newTestParent(t, "lookup",
			newCityChild(t, "weather", "w", false),
			newCityChild(t, "currency", "c", false),
		),
		newTestParent(t, "facts", newCityChild(t, "language", "l", false)),
	)

	input := `{
		"name": "travel_toolkit",
		"parents": [
			{"name": "lookup", "childs": [
				{"name": "currency", "args": {"city": "Tokyo"}},
				{"name": "weather", "args": {"city": "Tokyo"}}
			]},
			{"name": "facts", "childs": [
				{"name": "language", "args": {"city": "Tokyo"}}
			]}
		]
	}`

	resp, err := tk.HandleToolKit(context.Background(), json.RawMessage(input))
	require.NoError(t, err)
	assert.Equal(t, "travel_toolkit", resp.Name)
	require.Len(t, resp.Responses, 2)

	lookup := resp.Responses[0]
	require.Len(t, lookup.ChildsResponses, 2)
	assert.Equal(t, "currency", lookup.ChildsResponses[0].Name)
	assert.Equal(t, cityResp{Summary: "c:Tokyo"}, lookup.ChildsResponses[0].Response)
	assert.Equal(t, "weather", lookup.ChildsResponses[1].Name)

	records := resp.Records()
	require.Len(t, records, 3)
	assert.Equal(t, "lookup.currency", records[0].Tool)
	assert.Equal(t, "lookup.weather", records[1].Tool)
	assert.Equal(t, "facts.language", records[2].Tool)
	assert.Equal(t, cityResp{Summary: "l:Tokyo"}, records[2].Result)
	assert.JSONEq(t, `{"city": "Tokyo"}`, string(records[2].Args))
	assert.False(t, records[2].Failed)
}

func TestHandleToolKit_ParseError(t *testing.T) {
	tk := toolkit.New("travel_toolkit")

	resp, err := tk.HandleToolKit(context.Background(), json.RawMessage(`{"invalid_json...`))
	require.Error(t, err)
	assert.Equal(t, "toolkit_request_parse_error", resp.Name)
	require.Len(t, resp.Responses, 1)
	require.Len(t, resp.Responses[0].ChildsResponses, 1)

	cr := resp.Responses[0].ChildsResponses[0]
	assert.Equal(t, "_input_error", cr.Name)
	tkErr, ok := cr.Response.(toolkit.ToolKitError)
	require.True(t, ok)
	assert.Equal(t, "invalid_input_json", tkErr.Code)
}

func TestHandleToolKit_NoParents(t *testing.T) {
	tk := toolkit.New("travel_toolkit")

	_, err := tk.HandleToolKit(context.Background(), json.RawMessage(`{"name":"travel_toolkit","parents":[]}`))
	require.Error(t, err)
	assert.Equal(t, "no_toolkit_parents", err.(toolkit.ToolKitError).Code)
}

func TestHandleToolKit_ReportsFailuresInline(t *testing.T) {
	tk := toolkit.New("travel_toolkit",
		newTestParent(t, "lookup",
			newCityChild(t, "weather", "w", false),
			newCityChild(t, "broken", "", true),
		),
	)

	tests := []struct {
		name       string
		input      string
		wantParent string
		wantChild  string
		wantCode   string
	}{
		{
			name:       "parent not found",
			input:      `{"name":"t","parents":[{"name":"nope","childs":[]}]}`,
			wantParent: "nope",
			wantChild:  "_parent_error",
			wantCode:   "parent_not_found",
		},
		{
			name:       "child not found",
			input:      `{"name":"t","parents":[{"name":"lookup","childs":[{"name":"nope","args":{}}]}]}`,
			wantParent: "lookup",
			wantChild:  "nope",
			wantCode:   "child_not_found",
		},
		{
			name:       "handler error",
			input:      `{"name":"t","parents":[{"name":"lookup","childs":[{"name":"broken","args":{"city":"x"}}]}]}`,
			wantParent: "lookup",
			wantChild:  "broken",
			wantCode:   "handler_execution_error",
		},
		{
			name:       "argument type mismatch",
			input:      `{"name":"t","parents":[{"name":"lookup","childs":[{"name":"weather","args":{"city":1}}]}]}`,
			wantParent: "lookup",
			wantChild:  "weather",
			wantCode:   "invalid_arguments",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := tk.HandleToolKit(context.Background(), json.RawMessage(tc.input))
			require.NoError(t, err)
			require.Len(t, resp.Responses, 1)

			pr := resp.Responses[0]
			assert.Equal(t, tc.wantParent, pr.Name)
			require.Len(t, pr.ChildsResponses, 1)
			cr := pr.ChildsResponses[0]
			assert.Equal(t, tc.wantChild, cr.Name)
			tkErr, ok := cr.Response.(toolkit.ToolKitError)
			require.True(t, ok, "expected ToolKitError, got %T", cr.Response)
			assert.Equal(t, tc.wantCode, tkErr.Code)

			records := resp.Records()
			require.Len(t, records, 1)
			assert.True(t, records[0].Failed)
		})
	}
}

func TestGetToolkitDescription_SortedAndComplete(t *testing.T) {
	tk := toolkit.New("tk_full",
		newTestParent(t, "zeta", newCityChild(t, "b", "", false), newCityChild(t, "a", "", false)),
		newTestParent(t, "alpha"),
	)

	desc := tk.GetToolkitDescription()

	for _, want := range []string{
		`<toolkit name="tk_full">`,
		`<parent name="alpha" description="desc_alpha">`,
		`<parent name="zeta" description="desc_zeta">`,
		`<child name="a" description="desc_a">`,
		`"properties":{"city":`,
		`</toolkit>`,
	} {
		assert.Contains(t, desc, want)
	}

	assert.Less(t, strings.Index(desc, `name="alpha"`), strings.Index(desc, `name="zeta"`))
	assert.Less(t, strings.Index(desc, `<child name="a"`), strings.Index(desc, `<child name="b"`))
	assert.Equal(t, desc, tk.GetToolkitDescription(), "description must be stable")
}

func TestGetToolkitSchema(t *testing.T) {
	tk := toolkit.New("test_schema")

	schema := tk.GetToolkitSchema("anthropic")
	schemaPtr, ok := schema.(*jsonschema.Schema)
	require.True(t, ok, "schema should be a *jsonschema.Schema")
	assert.Equal(t, "object", schemaPtr.Type)
	assert.NotNil(t, schemaPtr.Properties)

	assert.Equal(t, schema, tk.GetToolkitSchema("unknown_provider"))
}

func TestNewWithLogger_RoutesRuntimeLogs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	tk := toolkit.NewWithLogger(logger, "travel_toolkit",
		newTestParent(t, "lookup", newCityChild(t, "broken", "", true)),
	)

	_, err := tk.HandleToolKit(context.Background(), json.RawMessage(
		`{"name":"travel_toolkit","parents":[{"name":"lookup","childs":[{"name":"broken","args":{"city":"Oslo"}}]},{"name":"nope","childs":[]}]}`,
	))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"msg":"tool failed"`)
	assert.Contains(t, out, `"msg":"requested parent not found"`)
}
