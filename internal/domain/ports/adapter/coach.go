package adapter

import "context"

// ModelInfo mirrors the model_info block of the ai-chat envelope.
type ModelInfo struct {
	Status  string `json:"status"` // "online" | "offline"
	Model   string `json:"model,omitempty"`
	Message string `json:"message,omitempty"`
}

// CoachReply is the response envelope of POST /api/ai-chat.
// Success=false carries an optional server-chosen Fallback string that
// the session surfaces as a degraded AI turn.
type CoachReply struct {
	Success   bool      `json:"success"`
	Response  string    `json:"response,omitempty"`
	Fallback  string    `json:"fallback,omitempty"`
	Error     string    `json:"error,omitempty"`
	Timestamp float64   `json:"timestamp,omitempty"`
	User      string    `json:"user,omitempty"`
	ModelInfo ModelInfo `json:"model_info,omitempty"`
}

// CoachAPI is the client port for the remote career-coach endpoint.
// Transport and decode failures are returned as errors; application-level
// failure travels inside the reply (Success=false).
type CoachAPI interface {
	Send(ctx context.Context, message string) (CoachReply, error)
}
