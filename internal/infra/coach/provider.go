// Package coach holds the server-side intelligence providers behind the
// ai-chat endpoint: a local Ollama model, Gemini, any OpenAI-compatible
// API, and the keyword fallback used when nothing else is reachable.
package coach

import (
	"context"

	"lakshya-career-assistant/internal/domain/ports/adapter"
)

// Provider generates one career-coach reply for one user message.
type Provider interface {
	Respond(ctx context.Context, message string) (string, error)
	// Status reports whether the backing model is reachable.
	Status(ctx context.Context) adapter.ModelInfo
}

// systemPrompt frames every provider-bound request. Kept close to the
// persona the product ships with.
const systemPrompt = `You are ARIA, an expert AI Career Coach for the LakshyaAI platform.

EXPERTISE: Career guidance, resume optimization, job matching, skill development, interview prep, salary negotiation.

PERSONALITY: Professional, friendly, encouraging, actionable advice.

RESPONSE STYLE:
- Keep responses 2-4 sentences for chat flow
- Use 1-2 relevant emojis maximum
- Be specific and actionable`
