// Package engine keeps the canonical in-memory squad list in sync with the
// backend. Every change notification on either table triggers a full
// fetch-and-merge; there is no incremental patching.
package engine

import (
	"context"
	"sync"

	"squadfinder_backend/db"
	"squadfinder_backend/models"
	"squadfinder_backend/view"

	"go.uber.org/zap"
)

// ChangeSource is the subscription half of the engine's inputs, satisfied by
// db.ChangeListener.
type ChangeSource interface {
	Events() <-chan db.ChangeEvent
	Close() error
}

// Engine holds the last successfully merged squad list. It starts in the
// loading state and becomes ready after the first successful Load.
type Engine struct {
	store   db.Store
	changes ChangeSource
	log     *zap.Logger

	mu     sync.RWMutex
	squads []models.Squad
	ready  bool
	alive  bool
}

func New(store db.Store, changes ChangeSource, log *zap.Logger) *Engine {
	return &Engine{
		store:   store,
		changes: changes,
		log:     log,
		alive:   true,
	}
}

// Load fetches all squads and their members, merges them into domain objects
// and replaces the snapshot wholesale. A Load completing after Close is
// discarded.
func (e *Engine) Load(ctx context.Context) error {
	rows, err := e.store.SelectSquads(ctx)
	if err != nil {
		return err
	}

	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}

	grouped, err := e.store.SelectMembersBySquadIDs(ctx, ids)
	if err != nil {
		return err
	}

	squads := make([]models.Squad, 0, len(rows))
	for _, r := range rows {
		s := models.ToDomain(r)
		if members, ok := grouped[s.ID]; ok {
			s.Members = members
		}
		squads = append(squads, s)
	}
	view.SortSquads(squads)

	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.alive {
		return nil
	}
	e.squads = squads
	e.ready = true
	return nil
}

// Run consumes change notifications until the context is canceled or the
// subscription is closed. Any event on either table triggers one Load.
func (e *Engine) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-e.changes.Events():
			if !ok {
				return
			}
			if err := e.Load(ctx); err != nil {
				e.log.Error("reload after change notification failed",
					zap.String("table", ev.Table),
					zap.String("op", ev.Op),
					zap.Error(err))
			}
		}
	}
}

// Snapshot returns a copy of the current list and whether the first load has
// completed.
func (e *Engine) Snapshot() ([]models.Squad, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]models.Squad, len(e.squads))
	copy(out, e.squads)
	return out, e.ready
}

// Get looks up a squad by id in the current snapshot.
func (e *Engine) Get(id string) (models.Squad, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	for _, s := range e.squads {
		if s.ID == id {
			return s, true
		}
	}
	return models.Squad{}, false
}

// Close releases the change subscription and guarantees no further Load
// commits the snapshot.
func (e *Engine) Close() error {
	e.mu.Lock()
	e.alive = false
	e.mu.Unlock()
	return e.changes.Close()
}
