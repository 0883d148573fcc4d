package team

import (
	"time"

	"github.com/mauv0809/courtside/internal/volleyball"
)

// TeamStore defines the interface for interacting with team data.
type TeamStore interface {
	CreateUser(name, email string) (*User, error)
	GetUserByToken(token string) (*User, error)
	GetTeamRoles(userID string) (map[string]Role, error)

	CreateTeam(name, description string) (*Team, error)
	ListTeamsForUser(userID string) ([]Team, error)

	ListMembers(teamSlug string) ([]Member, error)
	AddMember(teamSlug string, member NewMember) (*Member, error)
	RemoveMember(teamSlug, memberID string) error

	CreateGame(teamSlug, title string, date time.Time) (*Game, error)
	ListGames(teamSlug string) ([]Game, error)
	GetGame(gameSlug string) (*GameWithRecords, error)
	SetScore(gameSlug string, teamScore, opponentScore int) (*Game, error)
	SaveStatistics(gameID string, records []volleyball.Record) error

	ScoredGames(teamSlug string, filter DateFilter) ([]GameWithRecords, error)
	SumStatistics(teamSlug string, filter DateFilter) (volleyball.Counters, error)
	LeaderboardSums(teamSlug string, filter DateFilter) ([]LeaderboardRow, error)
}
