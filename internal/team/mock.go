package team

import (
	"sync"
	"time"

	"github.com/mauv0809/courtside/internal/volleyball"
)

// MockStore is a mock implementation of the TeamStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	CreateUserFunc       func(name, email string) (*User, error)
	GetUserByTokenFunc   func(token string) (*User, error)
	GetTeamRolesFunc     func(userID string) (map[string]Role, error)
	CreateTeamFunc       func(name, description string) (*Team, error)
	ListTeamsForUserFunc func(userID string) ([]Team, error)
	ListMembersFunc      func(teamSlug string) ([]Member, error)
	AddMemberFunc        func(teamSlug string, member NewMember) (*Member, error)
	RemoveMemberFunc     func(teamSlug, memberID string) error
	CreateGameFunc       func(teamSlug, title string, date time.Time) (*Game, error)
	ListGamesFunc        func(teamSlug string) ([]Game, error)
	GetGameFunc          func(gameSlug string) (*GameWithRecords, error)
	SetScoreFunc         func(gameSlug string, teamScore, opponentScore int) (*Game, error)
	SaveStatisticsFunc   func(gameID string, records []volleyball.Record) error
	ScoredGamesFunc      func(teamSlug string, filter DateFilter) ([]GameWithRecords, error)
	SumStatisticsFunc    func(teamSlug string, filter DateFilter) (volleyball.Counters, error)
	LeaderboardSumsFunc  func(teamSlug string, filter DateFilter) ([]LeaderboardRow, error)

	// Call records
	SaveStatisticsCalls []struct {
		GameID  string
		Records []volleyball.Record
	}
	SetScoreCalls []struct {
		GameSlug      string
		TeamScore     int
		OpponentScore int
	}
	RemoveMemberCalls [][2]string
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveStatisticsCalls = nil
	m.SetScoreCalls = nil
	m.RemoveMemberCalls = nil
}

func (m *MockStore) CreateUser(name, email string) (*User, error) {
	if m.CreateUserFunc != nil {
		return m.CreateUserFunc(name, email)
	}
	return &User{Name: name, Email: email}, nil
}

func (m *MockStore) GetUserByToken(token string) (*User, error) {
	if m.GetUserByTokenFunc != nil {
		return m.GetUserByTokenFunc(token)
	}
	return nil, ErrNotFound
}

func (m *MockStore) GetTeamRoles(userID string) (map[string]Role, error) {
	if m.GetTeamRolesFunc != nil {
		return m.GetTeamRolesFunc(userID)
	}
	return map[string]Role{}, nil
}

func (m *MockStore) CreateTeam(name, description string) (*Team, error) {
	if m.CreateTeamFunc != nil {
		return m.CreateTeamFunc(name, description)
	}
	return &Team{Name: name, Description: description}, nil
}

func (m *MockStore) ListTeamsForUser(userID string) ([]Team, error) {
	if m.ListTeamsForUserFunc != nil {
		return m.ListTeamsForUserFunc(userID)
	}
	return []Team{}, nil
}

func (m *MockStore) ListMembers(teamSlug string) ([]Member, error) {
	if m.ListMembersFunc != nil {
		return m.ListMembersFunc(teamSlug)
	}
	return []Member{}, nil
}

func (m *MockStore) AddMember(teamSlug string, member NewMember) (*Member, error) {
	if m.AddMemberFunc != nil {
		return m.AddMemberFunc(teamSlug, member)
	}
	return &Member{FirstName: member.FirstName, LastName: member.LastName, Role: member.Role}, nil
}

func (m *MockStore) RemoveMember(teamSlug, memberID string) error {
	m.mu.Lock()
	m.RemoveMemberCalls = append(m.RemoveMemberCalls, [2]string{teamSlug, memberID})
	m.mu.Unlock()
	if m.RemoveMemberFunc != nil {
		return m.RemoveMemberFunc(teamSlug, memberID)
	}
	return nil
}

func (m *MockStore) CreateGame(teamSlug, title string, date time.Time) (*Game, error) {
	if m.CreateGameFunc != nil {
		return m.CreateGameFunc(teamSlug, title, date)
	}
	return &Game{Title: title, Date: date}, nil
}

func (m *MockStore) ListGames(teamSlug string) ([]Game, error) {
	if m.ListGamesFunc != nil {
		return m.ListGamesFunc(teamSlug)
	}
	return []Game{}, nil
}

func (m *MockStore) GetGame(gameSlug string) (*GameWithRecords, error) {
	if m.GetGameFunc != nil {
		return m.GetGameFunc(gameSlug)
	}
	return nil, ErrNotFound
}

func (m *MockStore) SetScore(gameSlug string, teamScore, opponentScore int) (*Game, error) {
	m.mu.Lock()
	m.SetScoreCalls = append(m.SetScoreCalls, struct {
		GameSlug      string
		TeamScore     int
		OpponentScore int
	}{gameSlug, teamScore, opponentScore})
	m.mu.Unlock()
	if m.SetScoreFunc != nil {
		return m.SetScoreFunc(gameSlug, teamScore, opponentScore)
	}
	return &Game{Slug: gameSlug, TeamScore: &teamScore, OpponentScore: &opponentScore}, nil
}

func (m *MockStore) SaveStatistics(gameID string, records []volleyball.Record) error {
	m.mu.Lock()
	m.SaveStatisticsCalls = append(m.SaveStatisticsCalls, struct {
		GameID  string
		Records []volleyball.Record
	}{gameID, records})
	m.mu.Unlock()
	if m.SaveStatisticsFunc != nil {
		return m.SaveStatisticsFunc(gameID, records)
	}
	return nil
}

func (m *MockStore) ScoredGames(teamSlug string, filter DateFilter) ([]GameWithRecords, error) {
	if m.ScoredGamesFunc != nil {
		return m.ScoredGamesFunc(teamSlug, filter)
	}
	return nil, nil
}

func (m *MockStore) SumStatistics(teamSlug string, filter DateFilter) (volleyball.Counters, error) {
	if m.SumStatisticsFunc != nil {
		return m.SumStatisticsFunc(teamSlug, filter)
	}
	return volleyball.Counters{}, nil
}

func (m *MockStore) LeaderboardSums(teamSlug string, filter DateFilter) ([]LeaderboardRow, error) {
	if m.LeaderboardSumsFunc != nil {
		return m.LeaderboardSumsFunc(teamSlug, filter)
	}
	return nil, nil
}
