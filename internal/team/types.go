package team

import (
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/mauv0809/courtside/internal/volleyball"
)

// ErrNotFound is returned when a looked-up entity does not exist.
var ErrNotFound = errors.New("not found")

// store handles all database operations for teams, games and statistics.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Role is a member's permission level within one team.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleMember Role = "MEMBER"
)

// User is an account that can sign in with an API token.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	APIToken string `json:"-"`
}

// Team is a squad with its own games and members.
type Team struct {
	ID          string `json:"id"`
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Member is a person on a team roster.
type Member struct {
	ID        string  `json:"id"`
	UserID    *string `json:"userId,omitempty"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	NickName  *string `json:"nickName,omitempty"`
	Role      Role    `json:"role"`
}

// NewMember is the input for AddMember.
type NewMember struct {
	UserID    *string `json:"userId,omitempty"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	NickName  *string `json:"nickName,omitempty"`
	Role      Role    `json:"role"`
}

// Game is a single match played by a team. Scores are nil until entered.
type Game struct {
	ID            string    `json:"id"`
	Slug          string    `json:"slug"`
	TeamID        string    `json:"teamId"`
	TeamSlug      string    `json:"teamSlug"`
	Title         string    `json:"title"`
	Date          time.Time `json:"date"`
	TeamScore     *int      `json:"teamScore"`
	OpponentScore *int      `json:"opponentScore"`
}

// Scored reports whether both scores have been entered.
func (g Game) Scored() bool {
	return g.TeamScore != nil && g.OpponentScore != nil
}

// GameWithRecords is a game together with every player's box score.
type GameWithRecords struct {
	Game
	Records []volleyball.Record `json:"statistics"`
}

// DateFilter restricts queries to games between From and To, inclusive.
// The zero value means no restriction.
type DateFilter struct {
	From time.Time
	To   time.Time
}

// Active reports whether both bounds are set.
func (f DateFilter) Active() bool {
	return !f.From.IsZero() && !f.To.IsZero()
}

// LeaderboardRow holds summed counters for one member.
type LeaderboardRow struct {
	MemberID  string
	FirstName string
	LastName  string
	NickName  *string
	volleyball.Counters
}

// unfilteredGameLimit caps the games returned when no date filter is set.
const unfilteredGameLimit = 30
