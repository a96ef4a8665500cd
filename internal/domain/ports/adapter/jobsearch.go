package adapter

import (
	"context"

	"lakshya-career-assistant/internal/domain/model"
)

// SearchResult is the response envelope of POST /api/job-search.
type SearchResult struct {
	Success     bool        `json:"success"`
	Jobs        []model.Job `json:"jobs"`
	Count       int         `json:"count"`
	CurrentPage int         `json:"current_page"`
	TotalPages  int         `json:"total_pages"`
	Message     string      `json:"message,omitempty"`
	Error       string      `json:"error,omitempty"`
}

// JobSearchAPI is the client port for the job-search endpoint. The request
// body is a free-form parameter object passed through to the server.
type JobSearchAPI interface {
	Search(ctx context.Context, params map[string]any) (SearchResult, error)
}
