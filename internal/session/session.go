// Package session implements the conversational state machine behind the
// career-coach chat: an append-only transcript persisted per logical user,
// rendered incrementally into a view, and driven by a request/response
// cycle against the remote coach endpoint with a degraded-mode fallback.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"lakshya-career-assistant/internal/domain"
	"lakshya-career-assistant/internal/domain/model"
	"lakshya-career-assistant/internal/domain/ports/adapter"
	"lakshya-career-assistant/internal/domain/ports/repository"
	"lakshya-career-assistant/internal/domain/ports/view"
	"lakshya-career-assistant/internal/infra/logging"
	"lakshya-career-assistant/internal/infra/metrics"
)

// Translator resolves presentation strings for a language. Satisfied by
// the i18n bundle.
type Translator interface {
	T(lang model.Language, key string, args ...interface{}) string
}

// Artifact is a downloadable export of the transcript.
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Options carries the injectable knobs a test or embedder may override.
type Options struct {
	Now         func() time.Time
	NewID       func() string
	UploadDelay time.Duration  // simulated attachment-processing delay
	Language    model.Language // initial language for fresh sessions
}

// Session is the controller for one logical user's chat. All state
// transitions go through the pure reducer; the controller owns the ports
// and applies the resulting effects, render before persist.
type Session struct {
	identity string
	store    repository.KeyValueStore
	coach    adapter.CoachAPI
	analysis adapter.AnalysisProvider
	view     view.ChatView
	confirm  view.Confirmer
	tr       Translator
	log      *zerolog.Logger

	now         func() time.Time
	newID       func() string
	uploadDelay time.Duration

	mu      sync.Mutex
	cond    *sync.Cond
	state   model.SessionState
	issued  uint64 // send tickets handed out
	applied uint64 // coach replies applied, strictly in ticket order
}

func New(
	identity string,
	store repository.KeyValueStore,
	coach adapter.CoachAPI,
	analysis adapter.AnalysisProvider,
	chatView view.ChatView,
	confirm view.Confirmer,
	tr Translator,
	logger *zerolog.Logger,
	opts Options,
) *Session {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	if opts.UploadDelay <= 0 {
		opts.UploadDelay = 2 * time.Second
	}
	if opts.Language == "" {
		opts.Language = model.LangEnglish
	}
	s := &Session{
		identity:    identity,
		store:       store,
		coach:       coach,
		analysis:    analysis,
		view:        chatView,
		confirm:     confirm,
		tr:          tr,
		log:         logger,
		now:         opts.Now,
		newID:       opts.NewID,
		uploadDelay: opts.UploadDelay,
	}
	s.cond = sync.NewCond(&s.mu)
	s.state = *model.NewSessionState(identity)
	s.state.Language = opts.Language
	return s
}

// StorageKey is the per-identity key the session envelope lives under.
func (s *Session) StorageKey() string {
	return "chat_history_" + s.identity
}

// State returns a copy of the current session state.
func (s *Session) State() model.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := s.state
	cp.Transcript = append([]model.Turn(nil), s.state.Transcript...)
	return cp
}

// Init restores the persisted transcript, renders it, and greets a fresh
// session with a welcome turn. Malformed or absent stored content starts
// an empty session; it never fails the caller.
func (s *Session) Init(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	restored := s.load(ctx)
	for _, t := range restored.Transcript {
		s.view.AppendTurn(t)
	}
	lang := s.state.Language
	if restored.Language != "" {
		lang = model.NormalizeLanguage(string(restored.Language))
	}
	s.state = restored
	s.state.Language = lang

	if len(s.state.Transcript) == 0 {
		s.renderWelcome()
	}
	s.persist(ctx)
}

// Send runs one full send cycle: optimistic local echo of the user turn,
// the remote call, then the AI turn (real or degraded). A blank message
// is rejected with no state change. Network and application failures are
// converted to a degraded turn and never escalate past the session.
func (s *Session) Send(ctx context.Context, text string) error {
	defer logging.TraceDuration(s.log, "Session.Send")()

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return domain.ErrEmptyMessage
	}

	s.mu.Lock()
	s.apply(ctx, UserMessage{s.newTurn(model.RoleUser, trimmed)})
	ticket := s.issued
	s.issued++
	s.mu.Unlock()

	start := s.now()
	reply, err := s.coach.Send(ctx, trimmed)

	s.mu.Lock()
	defer s.mu.Unlock()
	// Replies are applied strictly in issuance order even if calls
	// somehow overlap.
	for ticket != s.applied {
		s.cond.Wait()
	}
	s.applied++
	s.cond.Broadcast()

	turnText, degraded := s.coachText(reply, err)
	s.apply(ctx, CoachTurn{Turn: s.newTurn(model.RoleAI, turnText), Degraded: degraded})
	metrics.ObserveChatSend(degraded, s.now().Sub(start))
	if err != nil {
		s.log.Warn().Err(err).Msg("coach call degraded")
	}
	return nil
}

// coachText picks the AI turn content for a completed cycle: the real
// response on success, the server-supplied fallback on application-level
// failure, and the localized generic retry for everything else.
func (s *Session) coachText(reply adapter.CoachReply, err error) (string, bool) {
	if err == nil && reply.Success && reply.Response != "" {
		return reply.Response, false
	}
	if err == nil && reply.Fallback != "" {
		return reply.Fallback, true
	}
	return s.tr.T(s.state.Language, "degraded_retry"), true
}

// ChangeLanguage switches presentation language and announces the change
// with a system turn localized into the newly selected language.
// Unrecognized codes fall back to English.
func (s *Session) ChangeLanguage(ctx context.Context, code string) {
	lang := model.NormalizeLanguage(code)
	s.mu.Lock()
	defer s.mu.Unlock()
	notice := s.newTurn(model.RoleSystem, s.tr.T(lang, "language_changed"))
	s.apply(ctx, LanguageSet{Language: lang, Notice: notice})
}

// Export serializes the transcript into a downloadable JSON artifact.
// Pure read: no state mutation.
func (s *Session) Export() (Artifact, error) {
	s.mu.Lock()
	env := model.ExportEnvelope{
		User:       s.identity,
		ExportedAt: s.now().Format(time.RFC3339),
		Messages:   append([]model.Turn(nil), s.state.Transcript...),
		Language:   s.state.Language,
	}
	s.mu.Unlock()

	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return Artifact{}, fmt.Errorf("encode export: %w", err)
	}
	return Artifact{
		Filename:    fmt.Sprintf("chat_history_%s_%s.json", s.identity, s.now().Format("2006-01-02")),
		ContentType: "application/json",
		Data:        data,
	}, nil
}

// Clear wipes the transcript after explicit user confirmation, persists
// the empty state, and renders a fresh welcome turn.
func (s *Session) Clear(ctx context.Context) error {
	s.mu.Lock()
	prompt := s.tr.T(s.state.Language, "clear_confirm")
	s.mu.Unlock()
	if !s.confirm.Confirm(prompt) {
		return domain.ErrNotConfirmed
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(ctx, TranscriptCleared{})
	s.renderWelcome()
	return nil
}

// HandleAttachment acknowledges an uploaded file with a system turn and,
// after the simulated processing delay, appends one canned analysis turn.
// No real document analysis happens here; see adapter.AnalysisProvider.
func (s *Session) HandleAttachment(ctx context.Context, filename string) error {
	s.mu.Lock()
	notice := s.newTurn(model.RoleSystem, s.tr.T(s.state.Language, "upload_received", filename))
	s.apply(ctx, SystemNotice{notice})
	s.mu.Unlock()

	select {
	case <-time.After(s.uploadDelay):
	case <-ctx.Done():
		return ctx.Err()
	}

	summary, err := s.analysis.Analyze(ctx, filename)
	degraded := false
	if err != nil || summary == "" {
		s.mu.Lock()
		summary = s.tr.T(s.state.Language, "degraded_retry")
		s.mu.Unlock()
		degraded = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(ctx, CoachTurn{Turn: s.newTurn(model.RoleAI, summary), Degraded: degraded})
	return nil
}

// apply runs the reducer and executes the resulting effects in order.
// Caller must hold s.mu.
func (s *Session) apply(ctx context.Context, ev Event) {
	ns, effects := Reduce(s.state, ev)
	s.state = ns
	for _, ef := range effects {
		switch e := ef.(type) {
		case RenderTurn:
			s.view.AppendTurn(e.Turn)
		case SetTyping:
			if e.Active {
				s.view.SetTyping(true)
			} else {
				// Last-response-wins: keep the indicator up while any
				// other request is still in flight.
				s.view.SetTyping(s.applied != s.issued)
			}
		case PersistState:
			s.persist(ctx)
		}
	}
}

// persist re-serializes the whole envelope. Render effects have already
// run by the time this executes, so a failure here loses at most the
// newest turn. Storage errors surface as an inline notice, never a fault.
func (s *Session) persist(ctx context.Context) {
	data, err := json.Marshal(s.state)
	if err != nil {
		s.log.Error().Err(err).Msg("encode session state")
		return
	}
	if err := s.store.Set(ctx, s.StorageKey(), data); err != nil {
		s.log.Error().Err(err).Str("key", s.StorageKey()).Msg("persist session state")
		s.view.ShowError(s.tr.T(s.state.Language, "persist_failed"))
	}
}

// load reads the persisted envelope, degrading malformed content to an
// empty session.
func (s *Session) load(ctx context.Context) model.SessionState {
	fresh := *model.NewSessionState(s.identity)
	fresh.Language = s.state.Language

	data, err := s.store.Get(ctx, s.StorageKey())
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.log.Warn().Err(err).Msg("read session state")
		}
		return fresh
	}
	var restored model.SessionState
	if err := json.Unmarshal(data, &restored); err != nil {
		s.log.Warn().Err(err).Msg("malformed session state, starting empty")
		return fresh
	}
	restored.Identity = s.identity
	if restored.Transcript == nil {
		restored.Transcript = make([]model.Turn, 0, 8)
	}
	return restored
}

// renderWelcome paints the greeting turn. Presentation only: the welcome
// is never part of the persisted transcript. Caller must hold s.mu.
func (s *Session) renderWelcome() {
	s.view.AppendTurn(s.newTurn(model.RoleAI, s.tr.T(s.state.Language, "welcome")))
}

func (s *Session) newTurn(role model.Role, text string) model.Turn {
	return model.Turn{
		ID:        s.newID(),
		Role:      role,
		Text:      text,
		Timestamp: s.now(),
	}
}
