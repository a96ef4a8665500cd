// Package api is the HTTP client for the LakshyaAI backend endpoints the
// assistant talks to: POST /api/ai-chat and POST /api/job-search.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"lakshya-career-assistant/internal/domain/ports/adapter"
)

// Compile-time assurance the client satisfies both ports
var (
	_ adapter.CoachAPI     = (*Client)(nil)
	_ adapter.JobSearchAPI = (*Client)(nil)
)

type Client struct {
	base   string
	client *http.Client
	log    *zerolog.Logger
}

// NewClient builds a backend client. The timeout applies per request and
// is deliberately explicit rather than relying on transport defaults.
func NewClient(baseURL string, timeout time.Duration, logger *zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		base:   baseURL,
		client: &http.Client{Timeout: timeout},
		log:    logger,
	}
}

// Send posts one user message to the coach endpoint.
//
// The backend rides its fallback text on a non-2xx status, so the body is
// decoded before the status is judged: a well-formed envelope is returned
// to the caller whatever the status code, and only transport or decode
// failures surface as errors.
func (c *Client) Send(ctx context.Context, message string) (adapter.CoachReply, error) {
	body, _ := json.Marshal(map[string]string{"message": message})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/api/ai-chat", bytes.NewReader(body))
	if err != nil {
		return adapter.CoachReply{}, fmt.Errorf("build ai-chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return adapter.CoachReply{}, fmt.Errorf("ai-chat call: %w", err)
	}
	defer resp.Body.Close()

	var reply adapter.CoachReply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return adapter.CoachReply{}, fmt.Errorf("ai-chat http %d: decode: %w", resp.StatusCode, err)
	}
	c.log.Debug().Int("status", resp.StatusCode).Bool("success", reply.Success).Msg("ai-chat reply")
	return reply, nil
}

// Search posts a free-form search-parameter object to the job-search
// endpoint. A non-2xx response is an error the caller must surface.
func (c *Client) Search(ctx context.Context, params map[string]any) (adapter.SearchResult, error) {
	if params == nil {
		params = map[string]any{}
	}
	body, err := json.Marshal(params)
	if err != nil {
		return adapter.SearchResult{}, fmt.Errorf("encode search params: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/api/job-search", bytes.NewReader(body))
	if err != nil {
		return adapter.SearchResult{}, fmt.Errorf("build job-search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return adapter.SearchResult{}, fmt.Errorf("job-search call: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return adapter.SearchResult{}, fmt.Errorf("job-search http %d", resp.StatusCode)
	}

	var result adapter.SearchResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return adapter.SearchResult{}, fmt.Errorf("decode job-search response: %w", err)
	}
	c.log.Debug().Int("count", result.Count).Msg("job-search result")
	return result, nil
}
