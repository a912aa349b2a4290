package gateway

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"

	"github.com/careerco/companion/internal/learn"
)

// AnalyzeVision explains an image or document in the target language and
// returns markdown. Single-shot, no retained state.
func (g *Gateway) AnalyzeVision(ctx context.Context, data []byte, mimeType string, persona learn.Persona, language string) (string, error) {
	if err := g.requireGemini("vision analysis"); err != nil {
		return "", err
	}

	start := time.Now()
	temp := float32(0.4)
	config := &genai.GenerateContentConfig{
		Temperature: &temp,
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: visionSystemPrompt(persona, language)}},
		},
	}

	contents := []*genai.Content{{
		Role: genai.RoleUser,
		Parts: []*genai.Part{
			{InlineData: &genai.Blob{MIMEType: mimeType, Data: data}},
			{Text: fmt.Sprintf("Explain this document/image in %s.", language)},
		},
	}}

	result, err := g.genai.Models.GenerateContent(ctx, ModelVision, contents, config)
	if err != nil {
		err = mapGeminiError(err)
		g.record(ctx, "vision", ModelVision, start, err, len(data), 0)
		return "", err
	}

	text := result.Text()
	g.record(ctx, "vision", ModelVision, start, nil, len(data), len(text))
	if text == "" {
		return "", &ErrEmptyResponse{Capability: "vision analysis"}
	}
	return text, nil
}

// AudioChat answers a spoken question: the model identifies the language
// in the audio, replies briefly in the same language, and the reply is
// voiced through text-to-speech. The returned audio is nil when speech
// synthesis fails; the text still stands.
func (g *Gateway) AudioChat(ctx context.Context, audio []byte, mimeType string, persona learn.Persona) (string, []byte, error) {
	if err := g.requireGemini("audio chat"); err != nil {
		return "", nil, err
	}

	start := time.Now()
	contents := []*genai.Content{{
		Role: genai.RoleUser,
		Parts: []*genai.Part{
			{InlineData: &genai.Blob{MIMEType: mimeType, Data: audio}},
			{Text: audioChatPrompt(persona)},
		},
	}}

	result, err := g.genai.Models.GenerateContent(ctx, ModelFlash, contents, nil)
	if err != nil {
		err = mapGeminiError(err)
		g.record(ctx, "audio-chat", ModelFlash, start, err, len(audio), 0)
		return "", nil, err
	}

	text := result.Text()
	if text == "" {
		text = "Sorry, I couldn't hear you clearly."
	}
	g.record(ctx, "audio-chat", ModelFlash, start, nil, len(audio), len(text))

	speech := g.Speech(ctx, text, "the identified language")
	return text, speech, nil
}
