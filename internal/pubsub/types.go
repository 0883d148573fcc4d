package pubsub

import (
	"time"

	"cloud.google.com/go/pubsub"
	"github.com/mauv0809/courtside/internal/volleyball"
)

type client struct {
	client   *pubsub.Client
	teardown func()
}

// EventType represents the type of event/message sent via pubsub.
// Each event type is published to the topic of the same name.
type EventType string

const (
	EventStatisticsSaved EventType = "statistics-saved"
	EventGameScored      EventType = "game-scored"
)

// StatisticsSaved is published after a tracker's statistics were persisted.
type StatisticsSaved struct {
	GameID   string              `msgpack:"gameId"`
	GameSlug string              `msgpack:"gameSlug"`
	TeamSlug string              `msgpack:"teamSlug"`
	Title    string              `msgpack:"title"`
	Records  []volleyball.Record `msgpack:"records"`
	SavedAt  time.Time           `msgpack:"savedAt"`
}

// GameScored is published when the final score of a game is entered.
type GameScored struct {
	GameSlug      string    `msgpack:"gameSlug"`
	TeamSlug      string    `msgpack:"teamSlug"`
	Title         string    `msgpack:"title"`
	Date          time.Time `msgpack:"date"`
	TeamScore     int       `msgpack:"teamScore"`
	OpponentScore int       `msgpack:"opponentScore"`
}
