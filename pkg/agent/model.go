package agent

import (
	"context"
	"encoding/json"
)

// Role identifies who wrote a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry of the chat history supplied by the caller.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ToolSpec describes the single tool offered to the model.
type ToolSpec struct {
	Name        string
	Description string
	Schema      interface{}
}

// ToolCall is a tool invocation requested by the model.
type ToolCall struct {
	ID    string
	Name  string
	Input json.RawMessage
}

// ToolResult answers one ToolCall.
type ToolResult struct {
	CallID  string
	Content string
	IsError bool
}

// Turn is one step of the conversation. User turns carry Text or Results;
// assistant turns carry Text and Calls.
type Turn struct {
	Role    Role
	Text    string
	Calls   []ToolCall
	Results []ToolResult
}

// Reply is what the model produced for one request.
type Reply struct {
	Text     string
	Thinking string
	Calls    []ToolCall
}

// Model is the language-model capability: given the tool and the conversation
// so far it returns the next assistant turn.
type Model interface {
	Complete(ctx context.Context, tool ToolSpec, turns []Turn) (Reply, error)
}
