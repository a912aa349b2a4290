package gateway

import (
	"context"
	"errors"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const anthropicMaxTokens = 2048

// AnthropicProvider implements the text capabilities using the Anthropic
// SDK. Like OpenAI, conversation handles replay history per turn.
type AnthropicProvider struct {
	client *anthropic.Client
	model  string
}

var _ Provider = (*AnthropicProvider)(nil)

// NewAnthropicProvider creates a new Anthropic provider.
func NewAnthropicProvider(cfg AnthropicConfig) (*AnthropicProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("anthropic API key is required")
	}

	client := anthropic.NewClient(option.WithAPIKey(cfg.APIKey))

	model := cfg.Model
	if model == "" {
		model = "claude-haiku-4-5-20251001"
	}

	return &AnthropicProvider{client: &client, model: model}, nil
}

func (p *AnthropicProvider) Name() string {
	return "anthropic"
}

func (p *AnthropicProvider) GenerateText(ctx context.Context, req TextRequest) (*TextResponse, error) {
	messages := []anthropic.MessageParam{
		{
			Role:    anthropic.MessageParamRoleUser,
			Content: []anthropic.ContentBlockParamUnion{anthropic.NewTextBlock(req.Prompt)},
		},
	}

	text, err := p.complete(ctx, req.System, messages, req.Temperature, req.MaxTokens)
	if err != nil {
		return nil, err
	}
	return &TextResponse{Text: text, Model: p.model}, nil
}

func (p *AnthropicProvider) NewChat(_ context.Context, cfg ChatConfig) (Chat, error) {
	return &anthropicChat{
		provider:    p,
		system:      cfg.System,
		temperature: cfg.Temperature,
	}, nil
}

// anthropicChat is a history-replay conversation handle.
type anthropicChat struct {
	provider    *AnthropicProvider
	system      string
	history     []anthropic.MessageParam
	temperature float64
}

func (c *anthropicChat) Send(ctx context.Context, text string) (*ChatReply, error) {
	attempt := append(c.history, anthropic.MessageParam{
		Role:    anthropic.MessageParamRoleUser,
		Content: []anthropic.ContentBlockParamUnion{anthropic.NewTextBlock(text)},
	})

	reply, err := c.provider.complete(ctx, c.system, attempt, c.temperature, 0)
	if err != nil {
		return nil, err
	}

	c.history = append(attempt, anthropic.MessageParam{
		Role:    anthropic.MessageParamRoleAssistant,
		Content: []anthropic.ContentBlockParamUnion{anthropic.NewTextBlock(reply)},
	})

	return &ChatReply{Text: reply}, nil
}

func (p *AnthropicProvider) complete(ctx context.Context, system string, messages []anthropic.MessageParam, temperature float64, maxTokens int) (string, error) {
	if maxTokens <= 0 {
		maxTokens = anthropicMaxTokens
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: int64(maxTokens),
		Messages:  messages,
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}
	if temperature > 0 {
		params.Temperature = anthropic.Float(temperature)
	}

	msg, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return "", mapAnthropicError(err)
	}

	for _, block := range msg.Content {
		if block.Type == "text" && block.Text != "" {
			return block.Text, nil
		}
	}
	return "", &ErrEmptyResponse{Capability: "text generation"}
}

func mapAnthropicError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return &ErrUnavailable{Err: err}
}
