// Package agent runs the conversation between the traveler, the language
// model and the travel tools. The model sees every operation through a single
// toolkit tool; each tool call is streamed back as an invocation event and the
// final reply as a message event.
package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/samber/lo"

	"github.com/hamzaessahbaoui/travel-planner/pkg/planner"
	"github.com/hamzaessahbaoui/travel-planner/pkg/tools/response"
	"github.com/hamzaessahbaoui/travel-planner/pkg/travel"
	"github.com/hamzaessahbaoui/travel-planner/toolkit"
)

// DefaultMaxTurns bounds the model round trips for one request.
const DefaultMaxTurns = 15

// TurnLimitMessage is sent when the model never produced a final reply.
const TurnLimitMessage = "Sorry, I couldn't finish planning your trip. Please try again with the origin, destination, dates and number of travelers."

// Event types.
const (
	EventToolInvocation = "tool_invocation"
	EventMessage        = "message"
)

// Event is one item of the response stream.
type Event struct {
	Type   string `json:"type"`
	Tool   string `json:"tool,omitempty"`
	Args   any    `json:"args,omitempty"`
	Result any    `json:"result,omitempty"`
	Failed bool   `json:"failed,omitempty"`
	Text   string `json:"text,omitempty"`
}

// Emitter delivers events to the caller. A returned error stops the run.
type Emitter func(Event) error

// Dispatcher drives the model and the tools. It holds no per-conversation
// state, so one Dispatcher serves concurrent requests.
type Dispatcher struct {
	model    Model
	services Services
	maxTurns int
	logger   *slog.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithMaxTurns overrides DefaultMaxTurns.
func WithMaxTurns(n int) Option {
	return func(d *Dispatcher) {
		if n > 0 {
			d.maxTurns = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// New creates a Dispatcher.
func New(model Model, services Services, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		model:    model,
		services: services,
		maxTurns: DefaultMaxTurns,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.services.Reporter == nil {
		d.services.Reporter = response.New(d.logger)
	}
	return d
}

// Run answers the last user message of history. Tool invocations are emitted
// as they complete, followed by exactly one message event.
func (d *Dispatcher) Run(ctx context.Context, history []Message, emit Emitter) error {
	turns, err := toTurns(history)
	if err != nil {
		return err
	}

	// The first emit failure ends the run; later events are dropped.
	var emitErr error
	send := func(e Event) {
		if emitErr != nil {
			return
		}
		emitErr = emit(e)
	}

	tk := NewToolkit(d.services, func(inv travel.Invocation) {
		send(Event{Type: EventToolInvocation, Tool: inv.Tool, Args: inv.Args, Result: inv.Result})
	}, d.logger)
	tool := ToolSpec{
		Name:        tk.GetToolkitName(),
		Description: tk.GetToolkitDescription(),
		Schema:      tk.GetToolkitSchema("anthropic"),
	}

	for turn := 1; turn <= d.maxTurns; turn++ {
		d.logger.Debug("calling model", "turn", turn)
		reply, err := d.model.Complete(ctx, tool, turns)
		if err != nil {
			return fmt.Errorf("model turn %d: %w", turn, err)
		}
		turns = append(turns, Turn{Role: RoleAssistant, Text: reply.Text, Calls: reply.Calls})

		if len(reply.Calls) == 0 {
			send(Event{Type: EventMessage, Text: reply.Text})
			return emitErr
		}

		results := make([]ToolResult, 0, len(reply.Calls))
		var final string
		for _, call := range reply.Calls {
			res, answer := d.invoke(ctx, tk, call, send)
			results = append(results, res)
			final = lo.CoalesceOrEmpty(answer, final)
		}
		if emitErr != nil {
			return emitErr
		}
		if final != "" {
			send(Event{Type: EventMessage, Text: final})
			return emitErr
		}
		turns = append(turns, Turn{Role: RoleUser, Results: results})
	}

	d.logger.Warn("turn limit reached without a final reply", "max_turns", d.maxTurns)
	send(Event{Type: EventMessage, Text: TurnLimitMessage})
	return emitErr
}

// invoke runs one tool call. It returns the result for the model and, when the
// call delivered a final reply through model_response, that reply.
func (d *Dispatcher) invoke(ctx context.Context, tk *toolkit.Toolkit, call ToolCall, send func(Event)) (ToolResult, string) {
	if call.Name != tk.GetToolkitName() {
		d.logger.Warn("model called an unknown tool", "tool", call.Name)
		return ToolResult{CallID: call.ID, Content: fmt.Sprintf("unknown tool %q, use %q", call.Name, tk.GetToolkitName()), IsError: true}, ""
	}

	resp, err := tk.HandleToolKit(ctx, call.Input)
	payload, marshalErr := json.Marshal(resp)
	if marshalErr != nil {
		d.logger.Error("failed to marshal toolkit response", "error", marshalErr)
		return ToolResult{CallID: call.ID, Content: fmt.Sprintf("error marshaling result: %v", marshalErr), IsError: true}, ""
	}
	if err != nil {
		d.logger.Warn("toolkit call rejected", "error", err)
		return ToolResult{CallID: call.ID, Content: string(payload), IsError: true}, ""
	}

	var final string
	for _, rec := range resp.Records() {
		parent, child, _ := strings.Cut(rec.Tool, ".")
		if parent == ResponseParent {
			if child == ToolResponse && !rec.Failed {
				var args response.ModelResponseArgs
				if json.Unmarshal(rec.Args, &args) == nil {
					final = args.Response
				}
			}
			continue
		}
		send(Event{Type: EventToolInvocation, Tool: child, Args: rec.Args, Result: rec.Result, Failed: rec.Failed})
	}
	return ToolResult{CallID: call.ID, Content: string(payload)}, final
}

func toTurns(history []Message) ([]Turn, error) {
	turns := make([]Turn, 0, len(history))
	for _, m := range history {
		if strings.TrimSpace(m.Content) == "" {
			continue
		}
		switch m.Role {
		case RoleUser, RoleAssistant:
			turns = append(turns, Turn{Role: m.Role, Text: m.Content})
		default:
			return nil, travel.Invalid("messages", "unknown role %q", m.Role)
		}
	}
	if len(turns) == 0 || turns[len(turns)-1].Role != RoleUser {
		return nil, travel.Invalid("messages", "must end with a user message")
	}
	return turns, nil
}

// IsClientError reports whether err was caused by the request itself.
func IsClientError(err error) bool {
	var verr *travel.ValidationError
	return errors.As(err, &verr)
}

var _ Orchestrator = (*planner.Planner)(nil)
