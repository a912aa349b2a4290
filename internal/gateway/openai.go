package gateway

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider implements the text capabilities using the OpenAI SDK.
// Conversation handles replay their history on every turn since the API
// holds no server-side chat state.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

var _ Provider = (*OpenAIProvider)(nil)

// NewOpenAIProvider creates a new OpenAI provider.
func NewOpenAIProvider(cfg OpenAIConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai API key is required")
	}

	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}, nil
}

func (p *OpenAIProvider) Name() string {
	return "openai"
}

func (p *OpenAIProvider) GenerateText(ctx context.Context, req TextRequest) (*TextResponse, error) {
	var messages []openai.ChatCompletionMessage
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Prompt,
	})

	text, err := p.complete(ctx, messages, req.Temperature, req.MaxTokens)
	if err != nil {
		return nil, err
	}
	return &TextResponse{Text: text, Model: p.model}, nil
}

func (p *OpenAIProvider) NewChat(_ context.Context, cfg ChatConfig) (Chat, error) {
	var history []openai.ChatCompletionMessage
	if cfg.System != "" {
		history = append(history, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: cfg.System,
		})
	}
	return &openaiChat{provider: p, history: history, temperature: cfg.Temperature}, nil
}

// openaiChat is a history-replay conversation handle.
type openaiChat struct {
	provider    *OpenAIProvider
	history     []openai.ChatCompletionMessage
	temperature float64
}

func (c *openaiChat) Send(ctx context.Context, text string) (*ChatReply, error) {
	attempt := append(c.history, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: text,
	})

	reply, err := c.provider.complete(ctx, attempt, c.temperature, 0)
	if err != nil {
		return nil, err
	}

	// Only commit the turn once it succeeded, so a failed send can be
	// retried by the user without duplicating history.
	c.history = append(attempt, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleAssistant,
		Content: reply,
	})

	return &ChatReply{Text: reply}, nil
}

func (p *OpenAIProvider) complete(ctx context.Context, messages []openai.ChatCompletionMessage, temperature float64, maxTokens int) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:    p.model,
		Messages: messages,
	}
	if temperature > 0 {
		req.Temperature = float32(temperature)
	}
	if maxTokens > 0 {
		req.MaxCompletionTokens = maxTokens
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", mapOpenAIError(err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", &ErrEmptyResponse{Capability: "text generation"}
	}
	return resp.Choices[0].Message.Content, nil
}

func mapOpenAIError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return &ErrUnavailable{Err: err}
}
