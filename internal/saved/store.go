// Package saved maintains the persisted set of jobs the user has marked
// as saved and keeps every on-page save indicator in sync with it.
package saved

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"lakshya-career-assistant/internal/domain"
	"lakshya-career-assistant/internal/domain/model"
	"lakshya-career-assistant/internal/domain/ports/repository"
	"lakshya-career-assistant/internal/domain/ports/view"
	"lakshya-career-assistant/internal/infra/metrics"
)

// StorageKey is where the saved set lives. Storage is the durable copy;
// the in-memory set is a cache rebuilt from it on every sync pass.
const StorageKey = "lakshya_saved_jobs"

// Semantic action identifiers handled by the registry. Listings dispatch
// these instead of wiring handlers to presentation class names.
const (
	ActionSave  = "save"
	ActionApply = "apply"
)

// ActionHandler reacts to one user action on a job listing.
type ActionHandler func(ctx context.Context, jobID string)

// Store is the saved-items controller. Leaf component: it touches only
// its own storage key and its view, never the network or chat state.
type Store struct {
	store repository.KeyValueStore
	view  view.SavedView
	log   *zerolog.Logger
	now   func() time.Time

	mu         sync.Mutex
	indicators map[string]struct{}
	actions    map[string]ActionHandler
}

func NewStore(kv repository.KeyValueStore, savedView view.SavedView, logger *zerolog.Logger) *Store {
	return &Store{
		store:      kv,
		view:       savedView,
		log:        logger,
		now:        time.Now,
		indicators: make(map[string]struct{}),
		actions:    make(map[string]ActionHandler),
	}
}

// Init runs one sync pass and binds the default save action, so listings
// rendered later are handled without re-registration.
func (s *Store) Init(ctx context.Context) {
	s.Bind(ActionSave, func(ctx context.Context, jobID string) {
		if _, err := s.Toggle(ctx, jobID); err != nil {
			s.log.Warn().Err(err).Str("job_id", jobID).Msg("toggle save")
		}
	})
	s.Sync(ctx)
}

// Bind maps a semantic action identifier to a handler.
func (s *Store) Bind(action string, h ActionHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.actions[action] = h
}

// Dispatch routes one user action to its bound handler. Unknown actions
// are logged and dropped, mirroring a click that matched nothing.
func (s *Store) Dispatch(ctx context.Context, action, jobID string) {
	s.mu.Lock()
	h, ok := s.actions[action]
	s.mu.Unlock()
	if !ok {
		s.log.Debug().Str("action", action).Msg("unbound action ignored")
		return
	}
	h(ctx, jobID)
}

// Track registers job identifiers whose indicators exist on the page.
// Sync passes only touch tracked indicators.
func (s *Store) Track(ctx context.Context, jobIDs ...string) {
	s.mu.Lock()
	for _, id := range jobIDs {
		s.indicators[id] = struct{}{}
	}
	s.mu.Unlock()
	s.Sync(ctx)
}

// Toggle flips membership of jobID in the persisted set: inserts a fresh
// record when absent (returns true), removes it when present (returns
// false). The whole set is re-persisted, then every indicator resynced.
func (s *Store) Toggle(ctx context.Context, jobID string) (bool, error) {
	if jobID == "" {
		return false, domain.ErrInvalidArgument
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	set := s.load(ctx)
	var saved bool
	if set.Contains(jobID) {
		set = set.Without(jobID)
		saved = false
	} else {
		set = append(set, model.SavedJob{JobID: jobID, SavedAt: s.now()})
		saved = true
	}

	if err := s.persist(ctx, set); err != nil {
		return false, err
	}
	s.syncLocked(set)
	metrics.ObserveSavedToggle(saved, len(set))
	return saved, nil
}

// Sync rebuilds the in-memory set from storage and updates every tracked
// indicator plus the saved-count display. Idempotent: repeated calls with
// unchanged storage produce no net view change.
func (s *Store) Sync(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.syncLocked(s.load(ctx))
}

// IsSaved reports current membership straight from storage.
func (s *Store) IsSaved(ctx context.Context, jobID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx).Contains(jobID)
}

// List returns the persisted records, storage order preserved.
func (s *Store) List(ctx context.Context) model.SavedSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *Store) syncLocked(set model.SavedSet) {
	for id := range s.indicators {
		s.view.SetIndicator(id, set.Contains(id))
	}
	s.view.SetSavedCount(len(set))
}

// load reads the persisted set; absent or malformed content degrades to
// the empty set, never an error.
func (s *Store) load(ctx context.Context) model.SavedSet {
	data, err := s.store.Get(ctx, StorageKey)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.log.Warn().Err(err).Msg("read saved set")
		}
		return model.SavedSet{}
	}
	var set model.SavedSet
	if err := json.Unmarshal(data, &set); err != nil {
		s.log.Warn().Err(err).Msg("malformed saved set, treating as empty")
		return model.SavedSet{}
	}
	return set
}

func (s *Store) persist(ctx context.Context, set model.SavedSet) error {
	data, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("encode saved set: %w", err)
	}
	if err := s.store.Set(ctx, StorageKey, data); err != nil {
		return fmt.Errorf("persist saved set: %w", err)
	}
	return nil
}
