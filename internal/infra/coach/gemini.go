package coach

import (
	"context"
	"errors"

	"google.golang.org/genai"

	"lakshya-career-assistant/internal/domain/ports/adapter"
)

var _ Provider = (*GeminiCoach)(nil)

// GeminiCoach generates replies through the official Gemini SDK.
type GeminiCoach struct {
	client *genai.Client
	model  string
}

func NewGeminiCoach(ctx context.Context, apiKey, baseURL, model string) (*GeminiCoach, error) {
	if apiKey == "" {
		return nil, errors.New("gemini: empty api key")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{
			BaseURL: baseURL,
		},
	})
	if err != nil {
		return nil, err
	}
	return &GeminiCoach{client: c, model: model}, nil
}

func (g *GeminiCoach) Respond(ctx context.Context, message string) (string, error) {
	chat, err := g.client.Chats.Create(
		ctx,
		g.model,
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemPrompt}}},
		},
		nil,
	)
	if err != nil {
		return "", err
	}
	resp, err := chat.SendMessage(ctx, genai.Part{Text: message})
	if err != nil {
		return "", err
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil ||
		len(resp.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("gemini: empty candidate")
	}
	out := cleanReply(resp.Candidates[0].Content.Parts[0].Text)
	if out == "" {
		return "", errors.New("gemini: empty reply")
	}
	return out, nil
}

func (g *GeminiCoach) Status(ctx context.Context) adapter.ModelInfo {
	return adapter.ModelInfo{Status: "online", Model: g.model, Message: "AI Career Coach is ready! 🤖"}
}
