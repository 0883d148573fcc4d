package notifier

import (
	"time"

	"github.com/mauv0809/courtside/internal/analytics"
)

// Notifier defines a high-level interface for sending notifications about business events.
type Notifier interface {
	// For games whose final score was entered
	SendGameResult(result GameResult, dryRun bool) error
	// For saved tracker sessions
	SendStatisticsSummary(summary StatisticsSummary, dryRun bool) error

	// For formatting responses for slash commands
	FormatLeaderboardResponse(teamSlug string, entries []analytics.LeaderboardEntry) (any, error)
}

// GameResult is the final score of a game.
type GameResult struct {
	TeamSlug      string
	Title         string
	Date          time.Time
	TeamScore     int
	OpponentScore int
}

// Won reports whether the team won the game.
func (r GameResult) Won() bool {
	return r.TeamScore > r.OpponentScore
}

// StatisticsSummary describes a freshly saved box score.
type StatisticsSummary struct {
	TeamSlug string
	Title    string
	Totals   analytics.TotalStatistics
	Top      []analytics.LeaderboardEntry
}
