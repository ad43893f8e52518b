// Package response holds the tools the assistant uses to think out loud and to
// hand its final reply back to the traveler.
package response

import (
	"context"
	"log/slog"
	"strings"

	"github.com/hamzaessahbaoui/travel-planner/pkg/travel"
)

// Reporter logs model notes and replies.
type Reporter struct {
	logger *slog.Logger
}

// New creates a Reporter.
func New(logger *slog.Logger) *Reporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reporter{logger: logger}
}

// LogThinking records the model's planning notes. Empty notes are accepted.
func (r *Reporter) LogThinking(ctx context.Context, args ModelThinkingArgs) (Ack, error) {
	if strings.TrimSpace(args.Thinking) == "" {
		r.logger.WarnContext(ctx, "model thinking was empty")
		return Ack{Success: true}, nil
	}
	r.logger.DebugContext(ctx, "model thinking", "thinking", args.Thinking)
	return Ack{Success: true}, nil
}

// LogResponse records the final reply. An empty reply is rejected so the model
// tries again instead of ending the conversation silently.
func (r *Reporter) LogResponse(ctx context.Context, args ModelResponseArgs) (Ack, error) {
	if strings.TrimSpace(args.Response) == "" {
		return Ack{}, travel.Invalid("response", "must not be empty")
	}
	r.logger.InfoContext(ctx, "model response", "length", len(args.Response))
	return Ack{Success: true}, nil
}
