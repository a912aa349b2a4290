package gateway

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"google.golang.org/genai"
)

// speechMaxChars bounds the synthesized prefix; longer text is truncated.
const speechMaxChars = 400

// speechVoice is the prebuilt voice used for all synthesis.
const speechVoice = "Kore"

// Speech synthesizes text to a raw decodable audio byte buffer (24kHz
// PCM16). Returns nil on any failure — the caller treats missing audio
// as a disabled action, never an error. Markdown punctuation is stripped
// and the text truncated before synthesis.
func (g *Gateway) Speech(ctx context.Context, text, language string) []byte {
	if g.genai == nil {
		return nil
	}

	clean := SanitizeSpeechText(text)
	if clean == "" {
		return nil
	}

	start := time.Now()
	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: speechVoice},
			},
		},
	}

	prompt := fmt.Sprintf("Speak efficiently and clearly in the detected language: %s", clean)
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	result, err := g.genai.Models.GenerateContent(ctx, ModelTTS, contents, config)
	if err != nil {
		g.record(ctx, "tts", ModelTTS, start, mapGeminiError(err), len(clean), 0)
		g.log.Warn("speech synthesis failed", "language", language, "err", err)
		return nil
	}

	audio := extractInlineData(result)
	g.record(ctx, "tts", ModelTTS, start, nil, len(clean), len(audio))
	if len(audio) == 0 {
		return nil
	}
	return audio
}

// SanitizeSpeechText strips markdown symbols that read poorly aloud and
// truncates to the synthesis bound.
func SanitizeSpeechText(text string) string {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case '*', '#', '_', '`':
			return -1
		}
		return r
	}, text)
	clean = strings.TrimSpace(clean)

	if len(clean) > speechMaxChars {
		cut := speechMaxChars
		for cut > 0 && !utf8.RuneStart(clean[cut]) {
			cut--
		}
		clean = clean[:cut]
	}
	return clean
}

// extractInlineData returns the first inline binary part of a response.
func extractInlineData(result *genai.GenerateContentResponse) []byte {
	for _, cand := range result.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return part.InlineData.Data
			}
		}
	}
	return nil
}
