package model

import (
	"time"
)

// Role identifies the author of a transcript turn.
type Role string

const (
	RoleUser   Role = "user"
	RoleAI     Role = "ai"
	RoleSystem Role = "system"
)

// Language is one of the presentation locales the assistant supports.
// It affects presentation strings only, never persisted message content.
type Language string

const (
	LangEnglish  Language = "en"
	LangHindi    Language = "hi"
	LangHinglish Language = "hinglish"
	LangSpanish  Language = "es"
	LangFrench   Language = "fr"
)

// NormalizeLanguage maps any code onto a supported language, defaulting to English.
func NormalizeLanguage(code string) Language {
	switch Language(code) {
	case LangHindi, LangHinglish, LangSpanish, LangFrench:
		return Language(code)
	default:
		return LangEnglish
	}
}

// Turn is one message unit within a transcript.
type Turn struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// SessionState is the per-identity chat envelope that gets persisted.
// Transcript order is chronological and append-only; the whole sequence
// is reset only by an explicit user-confirmed clear.
type SessionState struct {
	Identity   string   `json:"identity"`
	Transcript []Turn   `json:"transcript"`
	Language   Language `json:"language"`
	// Pending marks an in-flight coach request (typing indicator).
	// Not persisted: a restored session is never mid-request.
	Pending bool `json:"-"`
}

// NewSessionState returns an empty session for the given identity.
func NewSessionState(identity string) *SessionState {
	return &SessionState{
		Identity:   identity,
		Transcript: make([]Turn, 0, 8),
		Language:   LangEnglish,
	}
}

// Append adds a turn at the end of the transcript.
func (s *SessionState) Append(t Turn) {
	s.Transcript = append(s.Transcript, t)
}

// LastTurn returns the most recent turn, or false for an empty transcript.
func (s *SessionState) LastTurn() (Turn, bool) {
	if len(s.Transcript) == 0 {
		return Turn{}, false
	}
	return s.Transcript[len(s.Transcript)-1], true
}

// ExportEnvelope is the downloadable transcript artifact shape.
type ExportEnvelope struct {
	User       string   `json:"user"`
	ExportedAt string   `json:"timestamp"`
	Messages   []Turn   `json:"messages"`
	Language   Language `json:"language"`
}
