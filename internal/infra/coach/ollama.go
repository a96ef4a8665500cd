package coach

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"lakshya-career-assistant/internal/domain"
	"lakshya-career-assistant/internal/domain/ports/adapter"
)

var _ Provider = (*OllamaCoach)(nil)

// OllamaCoach generates replies from a locally running Ollama model.
type OllamaCoach struct {
	base   string // e.g. http://localhost:11434
	model  string
	client *http.Client
}

func NewOllamaCoach(baseURL, model string) *OllamaCoach {
	if model == "" {
		model = "llama3.2:3b"
	}
	return &OllamaCoach{
		base:   strings.TrimRight(baseURL, "/"),
		model:  model,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (o *OllamaCoach) Respond(ctx context.Context, message string) (string, error) {
	if !o.available(ctx) {
		return "", domain.ErrCoachUnavailable
	}

	prompt := fmt.Sprintf("%s\n\nUSER MESSAGE: %s\n\nCAREER COACH RESPONSE:", systemPrompt, message)
	body, _ := json.Marshal(map[string]any{
		"model":  o.model,
		"prompt": prompt,
		"stream": false,
		"options": map[string]any{
			"temperature": 0.7,
			"top_p":       0.9,
			"stop":        []string{"USER:", "Human:", "You:"},
		},
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.base+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ollama generate: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama http %d", resp.StatusCode)
	}

	var payload struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode ollama response: %w", err)
	}
	out := cleanReply(payload.Response)
	if out == "" {
		return "", domain.ErrCoachUnavailable
	}
	return out, nil
}

func (o *OllamaCoach) Status(ctx context.Context) adapter.ModelInfo {
	if o.available(ctx) {
		return adapter.ModelInfo{Status: "online", Model: o.model, Message: "AI Career Coach is ready! 🤖"}
	}
	return adapter.ModelInfo{Status: "offline", Message: "Start Ollama with: ollama serve"}
}

// available probes the tags endpoint with a short deadline so a down
// backend fails fast instead of eating the whole request budget.
func (o *OllamaCoach) available(ctx context.Context) bool {
	probeCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(probeCtx, http.MethodGet, o.base+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := o.client.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// cleanReply strips role prefixes models sometimes echo and makes sure
// the reply ends like a sentence.
func cleanReply(s string) string {
	s = strings.TrimSpace(s)
	for _, prefix := range []string{"CAREER COACH RESPONSE:", "ARIA:", "AI:", "Response:", "Career Coach:"} {
		if strings.HasPrefix(s, prefix) {
			s = strings.TrimSpace(strings.TrimPrefix(s, prefix))
		}
	}
	if s != "" && !strings.HasSuffix(s, ".") && !strings.HasSuffix(s, "!") && !strings.HasSuffix(s, "?") {
		s += "."
	}
	return s
}
