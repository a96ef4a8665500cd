// Package notify runs the periodic career-update check. The current
// source is a placeholder feed; the worker exists so the wiring is in
// place once a real update source lands.
package notify

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"lakshya-career-assistant/internal/domain/model"
	"lakshya-career-assistant/internal/domain/ports/view"
)

// UpdateSource produces pending career updates for the user. Returning
// an empty slice means nothing to announce this pass.
type UpdateSource interface {
	PendingUpdates(ctx context.Context) ([]string, error)
}

// Worker polls the update source and surfaces each update as a system
// turn in the chat view.
type Worker struct {
	interval time.Duration
	source   UpdateSource
	chat     view.ChatView
	now      func() time.Time
	newID    func() string
	log      *zerolog.Logger
}

func NewWorker(interval time.Duration, source UpdateSource, chat view.ChatView, newID func() string, logger *zerolog.Logger) *Worker {
	compLog := logger.With().Str("component", "NotifyWorker").Logger()
	return &Worker{
		interval: interval,
		source:   source,
		chat:     chat,
		now:      time.Now,
		newID:    newID,
		log:      &compLog,
	}
}

func (w *Worker) Run(ctx context.Context) error {
	w.log.Info().Dur("interval", w.interval).Msg("starting notify worker")
	w.runCheck(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("stopping notify worker")
			return ctx.Err()
		case <-ticker.C:
			w.runCheck(ctx)
		}
	}
}

func (w *Worker) runCheck(ctx context.Context) {
	updates, err := w.source.PendingUpdates(ctx)
	if err != nil {
		w.log.Error().Err(err).Msg("update check failed")
		return
	}
	for _, u := range updates {
		w.chat.AppendTurn(model.Turn{
			ID:        w.newID(),
			Role:      model.RoleSystem,
			Text:      u,
			Timestamp: w.now(),
		})
	}
	if len(updates) > 0 {
		w.log.Info().Int("count", len(updates)).Msg("career updates announced")
	}
}

// StaticSource announces each configured message exactly once. It stands
// in until a real feed (new job matches, application status) exists.
type StaticSource struct {
	pending []string
}

func NewStaticSource(messages ...string) *StaticSource {
	return &StaticSource{pending: append([]string(nil), messages...)}
}

func (s *StaticSource) PendingUpdates(ctx context.Context) ([]string, error) {
	out := s.pending
	s.pending = nil
	return out, nil
}
