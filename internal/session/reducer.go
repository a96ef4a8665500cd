package session

import (
	"strings"

	"lakshya-career-assistant/internal/domain/model"
)

// Event is one input to the session state machine.
type Event interface{ isEvent() }

// UserMessage is a send action carrying the already-built user turn.
// Blank or whitespace-only text is rejected with no state change.
type UserMessage struct{ Turn model.Turn }

// CoachTurn is an arrived AI turn: a real response or a degraded fallback.
type CoachTurn struct {
	Turn     model.Turn
	Degraded bool
}

// SystemNotice is an informational system turn (upload ack and the like).
type SystemNotice struct{ Turn model.Turn }

// LanguageSet switches the presentation language and carries the system
// turn announcing the change, already localized into the new language.
type LanguageSet struct {
	Language model.Language
	Notice   model.Turn
}

// TranscriptCleared resets the transcript to empty.
type TranscriptCleared struct{}

func (UserMessage) isEvent()       {}
func (CoachTurn) isEvent()         {}
func (SystemNotice) isEvent()      {}
func (LanguageSet) isEvent()       {}
func (TranscriptCleared) isEvent() {}

// Effect is a side effect the controller applies after a transition.
// Render effects always precede the persist effect so that a crash
// between the two loses at most the newest turn.
type Effect interface{ isEffect() }

// RenderTurn appends one turn to the view.
type RenderTurn struct{ Turn model.Turn }

// SetTyping toggles the typing indicator.
type SetTyping struct{ Active bool }

// PersistState re-serializes the whole session envelope to storage.
type PersistState struct{}

func (RenderTurn) isEffect()   {}
func (SetTyping) isEffect()    {}
func (PersistState) isEffect() {}

// Reduce is the pure transition function: old state + event -> new state +
// ordered effects. It never touches storage, network, or the view.
func Reduce(s model.SessionState, ev Event) (model.SessionState, []Effect) {
	switch e := ev.(type) {
	case UserMessage:
		if strings.TrimSpace(e.Turn.Text) == "" {
			return s, nil
		}
		ns := appendTurn(s, e.Turn)
		ns.Pending = true
		return ns, []Effect{RenderTurn{e.Turn}, SetTyping{true}, PersistState{}}

	case CoachTurn:
		ns := appendTurn(s, e.Turn)
		ns.Pending = false
		return ns, []Effect{SetTyping{false}, RenderTurn{e.Turn}, PersistState{}}

	case SystemNotice:
		ns := appendTurn(s, e.Turn)
		return ns, []Effect{RenderTurn{e.Turn}, PersistState{}}

	case LanguageSet:
		ns := appendTurn(s, e.Notice)
		ns.Language = e.Language
		return ns, []Effect{RenderTurn{e.Notice}, PersistState{}}

	case TranscriptCleared:
		ns := s
		ns.Transcript = make([]model.Turn, 0, 8)
		ns.Pending = false
		return ns, []Effect{SetTyping{false}, PersistState{}}

	default:
		return s, nil
	}
}

// appendTurn copies the transcript before appending so callers can hold
// on to the old state safely.
func appendTurn(s model.SessionState, t model.Turn) model.SessionState {
	ns := s
	ns.Transcript = make([]model.Turn, 0, len(s.Transcript)+1)
	ns.Transcript = append(ns.Transcript, s.Transcript...)
	ns.Transcript = append(ns.Transcript, t)
	return ns
}
