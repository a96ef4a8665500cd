package view

import "lakshya-career-assistant/internal/domain/model"

// ChatView is the rendering surface for a chat session. The session
// computes state transitions first and applies them here second, so the
// view never drives business logic.
type ChatView interface {
	// AppendTurn renders one new transcript turn at the end of the view.
	AppendTurn(t model.Turn)
	// SetTyping shows or hides the "coach is typing" indicator.
	SetTyping(active bool)
	// ShowError renders a non-blocking inline error notice.
	ShowError(msg string)
}

// SavedView is the rendering surface for saved-job indicators.
type SavedView interface {
	// SetIndicator flips one job's save indicator between saved and unsaved.
	SetIndicator(jobID string, saved bool)
	// SetSavedCount updates the page-level saved-items counter.
	SetSavedCount(n int)
}

// Confirmer asks the user to approve a destructive action. The only
// blocking prompt in the system is the confirm-before-clear dialog.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a plain function to the Confirmer interface.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }
