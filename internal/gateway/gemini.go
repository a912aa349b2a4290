package gateway

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// GeminiProvider implements Provider using the Google Gemini SDK. It also
// exposes the underlying client for the multimodal capabilities only
// Gemini serves.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

var _ Provider = (*GeminiProvider)(nil)

// NewGeminiProvider creates a new Gemini provider.
func NewGeminiProvider(ctx context.Context, cfg GeminiConfig) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}

	model := cfg.TextModel
	if model == "" {
		model = ModelFlash
	}

	return &GeminiProvider{client: client, model: model}, nil
}

// Client returns the underlying SDK client.
func (p *GeminiProvider) Client() *genai.Client {
	return p.client
}

func (p *GeminiProvider) Name() string {
	return "gemini"
}

func (p *GeminiProvider) GenerateText(ctx context.Context, req TextRequest) (*TextResponse, error) {
	config := &genai.GenerateContentConfig{}
	if req.MaxTokens > 0 {
		config.MaxOutputTokens = int32(req.MaxTokens)
	}
	if req.Temperature > 0 {
		temp := float32(req.Temperature)
		config.Temperature = &temp
	}
	if req.System != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.System}},
		}
	}

	contents := []*genai.Content{
		genai.NewContentFromText(req.Prompt, genai.RoleUser),
	}

	result, err := p.client.Models.GenerateContent(ctx, p.model, contents, config)
	if err != nil {
		return nil, mapGeminiError(err)
	}

	text := result.Text()
	if text == "" {
		return nil, &ErrEmptyResponse{Capability: "text generation"}
	}

	return &TextResponse{Text: text, Model: p.model}, nil
}

func (p *GeminiProvider) NewChat(ctx context.Context, cfg ChatConfig) (Chat, error) {
	model := cfg.Model
	if model == "" {
		model = p.model
	}

	config := &genai.GenerateContentConfig{}
	if cfg.Temperature > 0 {
		temp := float32(cfg.Temperature)
		config.Temperature = &temp
	}
	if cfg.System != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: cfg.System}},
		}
	}
	if cfg.WithSearch {
		config.Tools = []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
		}
	}

	chat, err := p.client.Chats.Create(ctx, model, config, nil)
	if err != nil {
		return nil, mapGeminiError(err)
	}

	return &geminiChat{chat: chat}, nil
}

// geminiChat wraps the SDK chat handle, which keeps conversation history
// on its side.
type geminiChat struct {
	chat *genai.Chat
}

func (c *geminiChat) Send(ctx context.Context, text string) (*ChatReply, error) {
	result, err := c.chat.SendMessage(ctx, genai.Part{Text: text})
	if err != nil {
		return nil, mapGeminiError(err)
	}

	reply := &ChatReply{Text: result.Text()}
	if reply.Text == "" {
		return nil, &ErrEmptyResponse{Capability: "chat"}
	}

	// Grounding metadata rides on the first candidate when web search
	// contributed to the answer.
	if len(result.Candidates) > 0 {
		reply.Citations = extractCitations(result.Candidates[0])
	}

	return reply, nil
}

func extractCitations(cand *genai.Candidate) []Citation {
	if cand == nil || cand.GroundingMetadata == nil {
		return nil
	}
	var out []Citation
	for _, chunk := range cand.GroundingMetadata.GroundingChunks {
		if chunk == nil || chunk.Web == nil {
			continue
		}
		out = append(out, Citation{
			Title: chunk.Web.Title,
			URI:   chunk.Web.URI,
		})
	}
	return out
}

func mapGeminiError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return &ErrUnavailable{Err: err}
}
