package team_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/mauv0809/courtside/internal/database"
	"github.com/mauv0809/courtside/internal/team"
	"github.com/mauv0809/courtside/internal/volleyball"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (team.TeamStore, *sql.DB, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	store := team.New(db)
	teardown := func() {
		dbTeardown()
		db.Close()
	}
	return store, db, teardown
}

func seedTeam(t *testing.T, store team.TeamStore) (*team.Team, *team.User, []*team.Member) {
	t.Helper()

	user, err := store.CreateUser("Coach", "coach@example.com")
	require.NoError(t, err)
	tm, err := store.CreateTeam("Sharks Volley", "")
	require.NoError(t, err)

	nick := "Ace"
	admin, err := store.AddMember(tm.Slug, team.NewMember{UserID: &user.ID, FirstName: "Ada", LastName: "Lovelace", NickName: &nick, Role: team.RoleAdmin})
	require.NoError(t, err)
	player, err := store.AddMember(tm.Slug, team.NewMember{FirstName: "Bob", LastName: "Builder"})
	require.NoError(t, err)
	return tm, user, []*team.Member{admin, player}
}

func TestUsersAndRoles(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	tm, user, _ := seedTeam(t, store)
	assert.Equal(t, "sharks-volley", tm.Slug)

	got, err := store.GetUserByToken(user.APIToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = store.GetUserByToken("nope")
	assert.ErrorIs(t, err, team.ErrNotFound)

	roles, err := store.GetTeamRoles(user.ID)
	require.NoError(t, err)
	assert.Equal(t, map[string]team.Role{"sharks-volley": team.RoleAdmin}, roles)

	teams, err := store.ListTeamsForUser(user.ID)
	require.NoError(t, err)
	require.Len(t, teams, 1)
	assert.Equal(t, tm.ID, teams[0].ID)
}

func TestMembers(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	tm, _, members := seedTeam(t, store)

	list, err := store.ListMembers(tm.Slug)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Builder", list[0].LastName)
	assert.Equal(t, team.RoleMember, list[0].Role)
	require.NotNil(t, list[1].NickName)
	assert.Equal(t, "Ace", *list[1].NickName)

	require.NoError(t, store.RemoveMember(tm.Slug, members[1].ID))
	list, err = store.ListMembers(tm.Slug)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	assert.ErrorIs(t, store.RemoveMember(tm.Slug, members[1].ID), team.ErrNotFound)

	_, err = store.AddMember("unknown", team.NewMember{FirstName: "X", LastName: "Y"})
	assert.ErrorIs(t, err, team.ErrNotFound)
}

func TestCreateGameSeedsStatistics(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	tm, _, _ := seedTeam(t, store)
	date := time.Date(2024, 3, 10, 18, 0, 0, 0, time.UTC)

	game, err := store.CreateGame(tm.Slug, "Home vs Eagles", date)
	require.NoError(t, err)
	assert.Contains(t, game.Slug, "home-vs-eagles-2024-03-10")
	assert.False(t, game.Scored())

	full, err := store.GetGame(game.Slug)
	require.NoError(t, err)
	assert.Equal(t, date, full.Date)
	require.Len(t, full.Records, 2)
	assert.Equal(t, "Bob Builder", full.Records[0].Name)
	assert.Equal(t, volleyball.Counters{}, full.Records[0].Counters)

	_, err = store.GetGame("missing")
	assert.ErrorIs(t, err, team.ErrNotFound)

	games, err := store.ListGames(tm.Slug)
	require.NoError(t, err)
	assert.Len(t, games, 1)
}

func TestSaveStatistics(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	tm, _, _ := seedTeam(t, store)
	game, err := store.CreateGame(tm.Slug, "Away", time.Now())
	require.NoError(t, err)
	full, err := store.GetGame(game.Slug)
	require.NoError(t, err)

	records := full.Records
	records[0].Kills = 4
	records[0].SetsPlayed = 3
	records[1].Digs = 7
	require.NoError(t, store.SaveStatistics(game.ID, records))

	full, err = store.GetGame(game.Slug)
	require.NoError(t, err)
	assert.Equal(t, 4, full.Records[0].Kills)
	assert.Equal(t, 3, full.Records[0].SetsPlayed)
	assert.Equal(t, 7, full.Records[1].Digs)

	bogus := []volleyball.Record{{ID: "not-a-record"}}
	assert.ErrorIs(t, store.SaveStatistics(game.ID, bogus), team.ErrNotFound)
}

func TestScoredGamesAndSums(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	tm, _, _ := seedTeam(t, store)
	day := func(d int) time.Time { return time.Date(2024, 1, d, 12, 0, 0, 0, time.UTC) }

	late, err := store.CreateGame(tm.Slug, "Late", day(20))
	require.NoError(t, err)
	early, err := store.CreateGame(tm.Slug, "Early", day(5))
	require.NoError(t, err)
	_, err = store.CreateGame(tm.Slug, "Unscored", day(10))
	require.NoError(t, err)

	_, err = store.SetScore(late.Slug, 3, 1)
	require.NoError(t, err)
	scored, err := store.SetScore(early.Slug, 0, 3)
	require.NoError(t, err)
	assert.True(t, scored.Scored())

	_, err = store.SetScore("missing", 1, 1)
	assert.ErrorIs(t, err, team.ErrNotFound)

	full, err := store.GetGame(early.Slug)
	require.NoError(t, err)
	full.Records[0].Kills = 2
	full.Records[1].Kills = 5
	full.Records[1].ServeAces = 1
	require.NoError(t, store.SaveStatistics(early.ID, full.Records))

	games, err := store.ScoredGames(tm.Slug, team.DateFilter{})
	require.NoError(t, err)
	require.Len(t, games, 2)
	assert.Equal(t, early.ID, games[0].ID)
	assert.Equal(t, late.ID, games[1].ID)
	assert.Len(t, games[0].Records, 2)

	filtered, err := store.ScoredGames(tm.Slug, team.DateFilter{From: day(15), To: day(25)})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, late.ID, filtered[0].ID)

	sum, err := store.SumStatistics(tm.Slug, team.DateFilter{})
	require.NoError(t, err)
	assert.Equal(t, 7, sum.Kills)
	assert.Equal(t, 1, sum.ServeAces)

	empty, err := store.SumStatistics(tm.Slug, team.DateFilter{From: day(15), To: day(25)})
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Kills)

	rows, err := store.LeaderboardSums(tm.Slug, team.DateFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	total := 0
	for _, r := range rows {
		total += r.Kills
	}
	assert.Equal(t, 7, total)
}
func TestGameCarriesTeamSlug(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	tm, _, _ := seedTeam(t, store)
	game, err := store.CreateGame(tm.Slug, "Cup", time.Now())
	require.NoError(t, err)
	assert.Equal(t, tm.Slug, game.TeamSlug)

	full, err := store.GetGame(game.Slug)
	require.NoError(t, err)
	assert.Equal(t, tm.Slug, full.TeamSlug)
}
