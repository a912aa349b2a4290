package gateway

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"google.golang.org/genai"
)

// videoPollInterval is the fixed polling cadence for long-running video
// generation operations.
const videoPollInterval = 5 * time.Second

// GenerateImage renders a text prompt into an image and returns it as a
// data URI.
func (g *Gateway) GenerateImage(ctx context.Context, prompt string) (string, error) {
	if err := g.requireGemini("image generation"); err != nil {
		return "", err
	}

	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}
	config := &genai.GenerateContentConfig{
		ImageConfig: &genai.ImageConfig{AspectRatio: "1:1"},
	}

	return g.imageContent(ctx, "image", contents, config, len(prompt))
}

// EditImage applies a text instruction to a source image and returns the
// edited result as a data URI.
func (g *Gateway) EditImage(ctx context.Context, image []byte, prompt string) (string, error) {
	if err := g.requireGemini("image editing"); err != nil {
		return "", err
	}

	contents := []*genai.Content{{
		Role: genai.RoleUser,
		Parts: []*genai.Part{
			{InlineData: &genai.Blob{MIMEType: "image/png", Data: image}},
			{Text: prompt},
		},
	}}

	return g.imageContent(ctx, "image-edit", contents, nil, len(image)+len(prompt))
}

func (g *Gateway) imageContent(ctx context.Context, purpose string, contents []*genai.Content, config *genai.GenerateContentConfig, inChars int) (string, error) {
	start := time.Now()

	result, err := g.genai.Models.GenerateContent(ctx, ModelImage, contents, config)
	if err != nil {
		err = mapGeminiError(err)
		g.record(ctx, purpose, ModelImage, start, err, inChars, 0)
		return "", err
	}

	for _, cand := range result.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				uri := fmt.Sprintf("data:%s;base64,%s",
					part.InlineData.MIMEType,
					base64.StdEncoding.EncodeToString(part.InlineData.Data))
				g.record(ctx, purpose, ModelImage, start, nil, inChars, len(uri))
				return uri, nil
			}
		}
	}

	err = &ErrEmptyResponse{Capability: "image generation"}
	g.record(ctx, purpose, ModelImage, start, err, inChars, 0)
	return "", err
}

// GenerateVideo starts a long-running video generation and polls on a
// fixed interval until the operation completes. The playback URI is
// returned with the access credential appended so it can be fetched
// directly.
func (g *Gateway) GenerateVideo(ctx context.Context, prompt string) (string, error) {
	if err := g.requireGemini("video generation"); err != nil {
		return "", err
	}

	start := time.Now()
	config := &genai.GenerateVideosConfig{
		NumberOfVideos: 1,
		Resolution:     "720p",
		AspectRatio:    "16:9",
	}

	op, err := g.genai.Models.GenerateVideos(ctx, ModelVideo, prompt, nil, config)
	if err != nil {
		err = mapGeminiError(err)
		g.record(ctx, "video", ModelVideo, start, err, len(prompt), 0)
		return "", err
	}

	for !op.Done {
		select {
		case <-ctx.Done():
			g.record(ctx, "video", ModelVideo, start, ctx.Err(), len(prompt), 0)
			return "", ctx.Err()
		case <-time.After(videoPollInterval):
		}

		op, err = g.genai.Operations.GetVideosOperation(ctx, op, nil)
		if err != nil {
			err = mapGeminiError(err)
			g.record(ctx, "video", ModelVideo, start, err, len(prompt), 0)
			return "", err
		}
	}

	uri := videoURI(op)
	if uri == "" {
		err = &ErrEmptyResponse{Capability: "video generation"}
		g.record(ctx, "video", ModelVideo, start, err, len(prompt), 0)
		return "", err
	}

	playback := fmt.Sprintf("%s&key=%s", uri, g.cfg.Gemini.APIKey)
	g.record(ctx, "video", ModelVideo, start, nil, len(prompt), len(playback))
	return playback, nil
}

func videoURI(op *genai.GenerateVideosOperation) string {
	if op.Response == nil || len(op.Response.GeneratedVideos) == 0 {
		return ""
	}
	video := op.Response.GeneratedVideos[0].Video
	if video == nil {
		return ""
	}
	return video.URI
}
