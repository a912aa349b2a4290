package gateway

import "context"

// Provider is the text-capability abstraction behind the gateway. The
// tutor chat, translation and lesson generation run against any provider;
// the multimodal operations (vision, speech, image, video, live audio)
// are served by the Gemini client directly.
type Provider interface {
	// GenerateText sends a single-turn prompt and returns plain text.
	GenerateText(ctx context.Context, req TextRequest) (*TextResponse, error)

	// NewChat opens a stateful conversation handle. The handle is bound
	// to its config; persona or language changes require a new handle.
	NewChat(ctx context.Context, cfg ChatConfig) (Chat, error)

	// Name returns the provider identifier for event logging.
	Name() string
}

// Chat is an opaque conversation handle. History cannot be retargeted in
// place — discard the handle and create a new one when the persona or
// target language changes.
type Chat interface {
	// Send appends a user turn and returns the model's reply.
	Send(ctx context.Context, text string) (*ChatReply, error)
}

// TextRequest describes a single-turn text generation.
type TextRequest struct {
	// System sets the model's role and constraints. Optional.
	System string

	// Prompt is the user content.
	Prompt string

	// Temperature controls randomness. Zero means provider default.
	Temperature float64

	// MaxTokens caps the response length. Zero means provider default.
	MaxTokens int
}

// TextResponse holds a text generation result.
type TextResponse struct {
	Text  string
	Model string
}

// ChatConfig parameterizes a conversation handle.
type ChatConfig struct {
	// Model overrides the provider's default text model. Optional.
	Model string

	// System is the persona-and-language-scoped system instruction.
	System string

	// Temperature controls randomness. Zero means provider default.
	Temperature float64

	// WithSearch enables web-search grounding. Only the Gemini provider
	// honors it; others run the conversation ungrounded.
	WithSearch bool
}

// Citation is a web source extracted from a grounded reply.
type Citation struct {
	Title string
	URI   string
}

// ChatReply is one model turn, with grounding citations when web search
// contributed to the answer.
type ChatReply struct {
	Text      string
	Citations []Citation
}
