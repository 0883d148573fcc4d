package live

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mauv0809/courtside/internal/metrics"
	"github.com/mauv0809/courtside/internal/pubsub"
	"github.com/mauv0809/courtside/internal/team"
	"github.com/mauv0809/courtside/internal/tracker"
	"github.com/mauv0809/courtside/internal/volleyball"
)

// ErrSessionNotFound is returned for unknown or evicted session ids.
var ErrSessionNotFound = errors.New("tracker session not found")

// Store is the part of the team store a live session needs.
type Store interface {
	GetGame(gameSlug string) (*team.GameWithRecords, error)
	SaveStatistics(gameID string, records []volleyball.Record) error
}

// Broadcaster pushes tracker views to connected clients. Close disconnects
// every client of a session that is gone.
type Broadcaster interface {
	Broadcast(sessionID string, view tracker.View)
	Close(sessionID string)
}

// Session is one open tracker for one game.
type Session struct {
	ID      string
	Game    team.Game
	Tracker *tracker.Tracker

	lastUsed atomic.Int64
}

func (s *Session) touch(now time.Time) {
	s.lastUsed.Store(now.UnixNano())
}

// LastUsed returns when the session was last read or changed.
func (s *Session) LastUsed() time.Time {
	return time.Unix(0, s.lastUsed.Load())
}

// Manager holds the open tracker sessions in memory.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	store       Store
	pubsub      pubsub.PubSubClient
	metrics     metrics.Metrics
	broadcaster Broadcaster
	now         func() time.Time
}

// SaveResult reports what Save did.
type SaveResult struct {
	Saved bool         `json:"saved"`
	View  tracker.View `json:"view"`
}
