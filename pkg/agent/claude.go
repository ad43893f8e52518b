package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/hamzaessahbaoui/travel-planner/pkg/travel"
)

// DefaultModel is used when no model name is configured.
const DefaultModel = anthropic.ModelClaude3_7Sonnet20250219

const systemPrompt = `You are a travel planning assistant. Today is %s.
Collect the origin, destination, start date, end date and number of travelers from the conversation.
Ask for anything that is missing instead of guessing. Dates use the YYYY-MM-DD format and a trip lasts at most 10 days.
When everything is known, call create_travel_plan once; use the individual search tools only for narrower questions.
You always think first with model_thinking, and you give your final answer to the traveler with model_response.`

// ClaudeConfig configures the Claude model.
type ClaudeConfig struct {
	APIKey      string
	Model       string
	MaxTokens   int64
	Temperature float64
	BaseURL     string
}

// Claude implements Model on the Anthropic Messages API.
type Claude struct {
	client *anthropic.Client
	cfg    ClaudeConfig
	logger *slog.Logger
	now    func() time.Time
}

// NewClaude creates a Claude model. The API key is required.
func NewClaude(cfg ClaudeConfig, logger *slog.Logger) (*Claude, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, &travel.ConfigurationError{Key: "ANTHROPIC_API_KEY"}
	}
	if cfg.Model == "" {
		cfg.Model = string(DefaultModel)
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 4096
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = 0.5
	}
	if logger == nil {
		logger = slog.Default()
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &Claude{
		client: anthropic.NewClient(opts...),
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}, nil
}

// Complete sends the conversation to Claude and decodes the reply.
func (c *Claude) Complete(ctx context.Context, tool ToolSpec, turns []Turn) (Reply, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.F(anthropic.Model(c.cfg.Model)),
		MaxTokens: anthropic.Int(c.cfg.MaxTokens),
		System: anthropic.F([]anthropic.TextBlockParam{
			anthropic.NewTextBlock(fmt.Sprintf(systemPrompt, c.now().Format(travel.DateLayout))),
		}),
		Messages: anthropic.F(toParams(turns)),
		Tools: anthropic.F([]anthropic.ToolUnionUnionParam{
			anthropic.ToolParam{
				Name:        anthropic.F(tool.Name),
				Description: anthropic.F(tool.Description),
				InputSchema: anthropic.F(tool.Schema),
			},
		}),
		Temperature: anthropic.Float(c.cfg.Temperature),
		ToolChoice: anthropic.F[anthropic.ToolChoiceUnionParam](anthropic.ToolChoiceAutoParam{
			Type: anthropic.F(anthropic.ToolChoiceAutoTypeAuto),
		}),
	}

	resp, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return Reply{}, fmt.Errorf("claude: %w", err)
	}
	c.logger.Debug("claude usage", "input_tokens", resp.Usage.InputTokens, "output_tokens", resp.Usage.OutputTokens)

	var reply Reply
	var text []string
	for _, block := range resp.Content {
		switch b := block.AsUnion().(type) {
		case anthropic.TextBlock:
			text = append(text, b.Text)
		case anthropic.ThinkingBlock:
			reply.Thinking = b.Thinking
		case anthropic.ToolUseBlock:
			reply.Calls = append(reply.Calls, ToolCall{ID: b.ID, Name: b.Name, Input: b.Input})
		default:
			c.logger.Warn("unexpected content block", "type", fmt.Sprintf("%T", b))
		}
	}
	reply.Text = strings.Join(text, "\n")
	return reply, nil
}

func toParams(turns []Turn) []anthropic.MessageParam {
	messages := make([]anthropic.MessageParam, 0, len(turns))
	for _, t := range turns {
		var blocks []anthropic.ContentBlockParamUnion
		if t.Text != "" {
			blocks = append(blocks, anthropic.NewTextBlock(t.Text))
		}
		for _, call := range t.Calls {
			blocks = append(blocks, anthropic.NewToolUseBlockParam(call.ID, call.Name, call.Input))
		}
		for _, res := range t.Results {
			blocks = append(blocks, anthropic.NewToolResultBlock(res.CallID, res.Content, res.IsError))
		}
		if len(blocks) == 0 {
			continue
		}
		role := anthropic.MessageParamRoleUser
		if t.Role == RoleAssistant {
			role = anthropic.MessageParamRoleAssistant
		}
		messages = append(messages, anthropic.MessageParam{
			Role:    anthropic.F(role),
			Content: anthropic.F(blocks),
		})
	}
	return messages
}
