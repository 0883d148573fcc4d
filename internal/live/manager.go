// Package live keeps tracker sessions in memory between requests and wires
// them to persistence, pub/sub and the event stream.
package live

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/courtside/internal/metrics"
	"github.com/mauv0809/courtside/internal/pubsub"
	"github.com/mauv0809/courtside/internal/tracker"
	"github.com/mauv0809/courtside/internal/volleyball"
)

// NewManager creates an empty session manager.
func NewManager(store Store, pubsubClient pubsub.PubSubClient, metrics metrics.Metrics, broadcaster Broadcaster) *Manager {
	return &Manager{
		sessions:    make(map[string]*Session),
		store:       store,
		pubsub:      pubsubClient,
		metrics:     metrics,
		broadcaster: broadcaster,
		now:         time.Now,
	}
}

// Open loads a game's records and starts a tracker session over them.
func (m *Manager) Open(ctx context.Context, gameSlug string) (*Session, error) {
	game, err := m.store.GetGame(gameSlug)
	if err != nil {
		return nil, err
	}
	tr, err := tracker.New(game.Records)
	if err != nil {
		return nil, fmt.Errorf("failed to build tracker for %s: %w", gameSlug, err)
	}

	s := &Session{
		ID:      uuid.NewString(),
		Game:    game.Game,
		Tracker: tr,
	}
	s.touch(m.now())

	m.mu.Lock()
	m.sessions[s.ID] = s
	n := len(m.sessions)
	m.mu.Unlock()

	m.metrics.SetOpenSessions(n)
	log.Info("Opened tracker session", "session", s.ID, "game", gameSlug, "players", len(game.Records))
	return s, nil
}

// Get returns an open session and marks it as used.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	s.touch(m.now())
	return s, nil
}

// Discard drops a session. Unsaved edits are lost.
func (m *Manager) Discard(id string) bool {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	n := len(m.sessions)
	m.mu.Unlock()
	if !ok {
		return false
	}

	m.metrics.SetOpenSessions(n)
	m.closeStream(id)
	if s.Tracker.Dirty() {
		log.Warn("Discarded tracker session with unsaved edits", "session", id, "game", s.Game.Slug)
	} else {
		log.Info("Discarded tracker session", "session", id)
	}
	return true
}

// Sweep evicts sessions idle for longer than maxIdle and returns how many.
func (m *Manager) Sweep(maxIdle time.Duration) int {
	cutoff := m.now().Add(-maxIdle)

	m.mu.Lock()
	var evicted []*Session
	for id, s := range m.sessions {
		if s.LastUsed().Before(cutoff) {
			evicted = append(evicted, s)
			delete(m.sessions, id)
		}
	}
	n := len(m.sessions)
	m.mu.Unlock()

	if len(evicted) > 0 {
		m.metrics.SetOpenSessions(n)
		for _, s := range evicted {
			m.closeStream(s.ID)
			log.Info("Evicted idle tracker session", "session", s.ID, "game", s.Game.Slug, "unsaved", s.Tracker.Dirty())
		}
	}
	return len(evicted)
}

// RunSweeper calls Sweep every interval until ctx is done. It does not run
// with a non-positive interval or idle timeout.
func (m *Manager) RunSweeper(ctx context.Context, interval, maxIdle time.Duration) {
	if interval <= 0 || maxIdle <= 0 {
		log.Error("Session sweeper disabled", "interval", interval, "maxIdle", maxIdle)
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.Sweep(maxIdle); n > 0 {
				log.Debug("Sweep finished", "evicted", n)
			}
		}
	}
}

// Len returns the number of open sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// SelectSlot selects a court slot, or clears the selection when slot is nil.
func (m *Manager) SelectSlot(id string, slot *int) (tracker.View, error) {
	return m.mutate(id, func(tr *tracker.Tracker) error {
		if slot == nil {
			tr.ClearSlot()
			return nil
		}
		return tr.SelectSlot(*slot)
	})
}

// SelectBench selects a bench player, or clears the selection for "".
func (m *Manager) SelectBench(id, playerID string) (tracker.View, error) {
	return m.mutate(id, func(tr *tracker.Tracker) error {
		if playerID == "" {
			tr.ClearBenchSelection()
			return nil
		}
		tr.SelectBenchPlayer(playerID)
		return nil
	})
}

// Increment adds one to a counter of the selected occupant.
func (m *Manager) Increment(id string, key volleyball.StatKey) (tracker.View, error) {
	return m.mutate(id, func(tr *tracker.Tracker) error {
		changed, err := tr.IncrementStat(key)
		if changed {
			m.metrics.IncStatChanges(metrics.DirectionIncrement)
		}
		return err
	})
}

// Decrement removes one from a counter of the selected occupant.
func (m *Manager) Decrement(id string, key volleyball.StatKey) (tracker.View, error) {
	return m.mutate(id, func(tr *tracker.Tracker) error {
		changed, err := tr.DecrementStat(key)
		if changed {
			m.metrics.IncStatChanges(metrics.DirectionDecrement)
		}
		return err
	})
}

// Substitute swaps the selected bench player into the selected slot.
func (m *Manager) Substitute(id string) (tracker.View, error) {
	return m.mutate(id, func(tr *tracker.Tracker) error {
		if tr.Substitute() {
			m.metrics.IncSubstitutions()
		}
		return nil
	})
}

func (m *Manager) mutate(id string, fn func(*tracker.Tracker) error) (tracker.View, error) {
	s, err := m.Get(id)
	if err != nil {
		return tracker.View{}, err
	}
	if err := fn(s.Tracker); err != nil {
		return tracker.View{}, err
	}
	view := s.Tracker.View()
	m.broadcast(s.ID, view)
	return view, nil
}

func (m *Manager) broadcast(id string, view tracker.View) {
	if m.broadcaster != nil {
		m.broadcaster.Broadcast(id, view)
	}
}

func (m *Manager) closeStream(id string) {
	if m.broadcaster != nil {
		m.broadcaster.Close(id)
	}
}

// Save persists every record of a dirty session and announces it. A clean
// session is left untouched. On failure the session stays dirty.
func (m *Manager) Save(ctx context.Context, id string, dryRun bool) (SaveResult, error) {
	s, err := m.Get(id)
	if err != nil {
		return SaveResult{}, err
	}

	state := s.Tracker.SaveState()
	if !state.Dirty {
		log.Debug("Nothing to save", "session", id)
		return SaveResult{View: s.Tracker.View()}, nil
	}

	start := m.now()
	if err := m.store.SaveStatistics(s.Game.ID, state.Records); err != nil {
		m.metrics.IncStatisticsSaveFailed()
		log.Error("Failed to save statistics", "error", err, "session", id, "game", s.Game.Slug)
		return SaveResult{}, fmt.Errorf("failed to save statistics for %s: %w", s.Game.Slug, err)
	}
	m.metrics.ObserveSaveDuration(time.Since(start).Seconds())
	m.metrics.IncStatisticsSaved()

	if !s.Tracker.MarkSaved(state.Revision) {
		log.Info("Edits arrived during save, session stays dirty", "session", id)
	}

	event := pubsub.StatisticsSaved{
		GameID:   s.Game.ID,
		GameSlug: s.Game.Slug,
		TeamSlug: s.Game.TeamSlug,
		Title:    s.Game.Title,
		Records:  state.Records,
		SavedAt:  m.now().UTC(),
	}
	if dryRun {
		log.Info("[Dry Run] Would have published event", "event", pubsub.EventStatisticsSaved, "game", s.Game.Slug)
	} else if err := m.pubsub.SendMessage(ctx, pubsub.EventStatisticsSaved, event); err != nil {
		log.Error("Failed to publish statistics saved event", "error", err, "game", s.Game.Slug)
	}

	view := s.Tracker.View()
	m.broadcast(s.ID, view)
	log.Info("Saved statistics", "session", id, "game", s.Game.Slug, "records", len(state.Records))
	return SaveResult{Saved: true, View: view}, nil
}
