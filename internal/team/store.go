package team

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/mauv0809/courtside/internal/volleyball"
)

// New creates a new TeamStore.
func New(db *sql.DB) TeamStore {
	return &store{
		db: db,
	}
}

func (s *store) CreateUser(name, email string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := &User{
		ID:       uuid.NewString(),
		Name:     name,
		Email:    email,
		APIToken: uuid.NewString(),
	}
	_, err := s.db.Exec("INSERT INTO users (id, name, email, api_token) VALUES (?, ?, ?, ?)", user.ID, user.Name, user.Email, user.APIToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	log.Info("Created user", "userID", user.ID, "email", email)
	return user, nil
}

// GetUserByToken resolves an API token to its user.
func (s *store) GetUserByToken(token string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var user User
	err := s.db.QueryRow("SELECT id, name, email, api_token FROM users WHERE api_token = ?", token).
		Scan(&user.ID, &user.Name, &user.Email, &user.APIToken)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &user, nil
}

// GetTeamRoles returns the user's role in each team they actively belong to,
// keyed by team slug.
func (s *store) GetTeamRoles(userID string) (map[string]Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT t.slug, tm.role
		FROM team_members tm
		JOIN members m ON m.id = tm.member_id
		JOIN teams t ON t.id = tm.team_id
		WHERE m.user_id = ? AND tm.removed_at IS NULL
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	roles := make(map[string]Role)
	for rows.Next() {
		var teamSlug string
		var role Role
		if err := rows.Scan(&teamSlug, &role); err != nil {
			return nil, err
		}
		// An admin membership wins over a plain one.
		if roles[teamSlug] != RoleAdmin {
			roles[teamSlug] = role
		}
	}
	return roles, rows.Err()
}

func (s *store) CreateTeam(name, description string) (*Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := &Team{
		ID:          uuid.NewString(),
		Slug:        slug.Make(name),
		Name:        name,
		Description: description,
	}
	_, err := s.db.Exec("INSERT INTO teams (id, slug, name, description) VALUES (?, ?, ?, ?)", t.ID, t.Slug, t.Name, t.Description)
	if err != nil {
		return nil, fmt.Errorf("failed to create team %q: %w", name, err)
	}
	log.Info("Created team", "teamID", t.ID, "slug", t.Slug)
	return t, nil
}

// ListTeamsForUser returns every team in which the user has an active membership.
func (s *store) ListTeamsForUser(userID string) ([]Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT DISTINCT t.id, t.slug, t.name, t.description
		FROM teams t
		JOIN team_members tm ON tm.team_id = t.id
		JOIN members m ON m.id = tm.member_id
		WHERE m.user_id = ? AND tm.removed_at IS NULL
		ORDER BY t.name
	`, userID)
	if err != nil {
		log.Error("Failed to query teams for user", "error", err, "userID", userID)
		return nil, err
	}
	defer rows.Close()

	teams := []Team{}
	for rows.Next() {
		var t Team
		if err := rows.Scan(&t.ID, &t.Slug, &t.Name, &t.Description); err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

// ListMembers returns the active members of a team.
func (s *store) ListMembers(teamSlug string) ([]Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT m.id, m.user_id, m.first_name, m.last_name, m.nick_name, tm.role
		FROM members m
		JOIN team_members tm ON tm.member_id = m.id
		JOIN teams t ON t.id = tm.team_id
		WHERE t.slug = ? AND tm.removed_at IS NULL
		ORDER BY m.last_name, m.first_name
	`, teamSlug)
	if err != nil {
		log.Error("Failed to query members", "error", err, "team", teamSlug)
		return nil, err
	}
	defer rows.Close()

	members := []Member{}
	for rows.Next() {
		var m Member
		var userID, nickName sql.NullString
		if err := rows.Scan(&m.ID, &userID, &m.FirstName, &m.LastName, &nickName, &m.Role); err != nil {
			log.Error("Failed to scan member row", "error", err)
			continue
		}
		m.UserID = nullableString(userID)
		m.NickName = nullableString(nickName)
		members = append(members, m)
	}
	return members, rows.Err()
}

func (s *store) AddMember(teamSlug string, nm NewMember) (*Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if nm.Role == "" {
		nm.Role = RoleMember
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	teamID, err := teamIDBySlug(tx, teamSlug)
	if err != nil {
		return nil, err
	}

	m := &Member{
		ID:        uuid.NewString(),
		UserID:    nm.UserID,
		FirstName: nm.FirstName,
		LastName:  nm.LastName,
		NickName:  nm.NickName,
		Role:      nm.Role,
	}
	if _, err := tx.Exec("INSERT INTO members (id, user_id, first_name, last_name, nick_name) VALUES (?, ?, ?, ?, ?)",
		m.ID, m.UserID, m.FirstName, m.LastName, m.NickName); err != nil {
		return nil, fmt.Errorf("failed to insert member: %w", err)
	}
	if _, err := tx.Exec("INSERT INTO team_members (team_id, member_id, role) VALUES (?, ?, ?)", teamID, m.ID, m.Role); err != nil {
		return nil, fmt.Errorf("failed to add member to team: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	log.Info("Added member to team", "team", teamSlug, "memberID", m.ID)
	return m, nil
}

// RemoveMember marks a membership as removed. Past statistics are kept.
func (s *store) RemoveMember(teamSlug, memberID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`
		UPDATE team_members SET removed_at = ?
		WHERE member_id = ? AND removed_at IS NULL
		AND team_id = (SELECT id FROM teams WHERE slug = ?)
	`, time.Now().Unix(), memberID, teamSlug)
	if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	log.Info("Removed member from team", "team", teamSlug, "memberID", memberID)
	return nil
}

// CreateGame inserts a game and an empty statistics row for every active member.
func (s *store) CreateGame(teamSlug, title string, date time.Time) (*Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	teamID, err := teamIDBySlug(tx, teamSlug)
	if err != nil {
		return nil, err
	}

	g := &Game{
		ID:       uuid.NewString(),
		TeamID:   teamID,
		TeamSlug: teamSlug,
		Title:    title,
		Date:     date.UTC(),
	}
	g.Slug = slug.Make(fmt.Sprintf("%s %s %s", title, date.Format("2006-01-02"), g.ID[:8]))

	if _, err := tx.Exec("INSERT INTO games (id, slug, team_id, title, date) VALUES (?, ?, ?, ?, ?)",
		g.ID, g.Slug, g.TeamID, g.Title, g.Date.Unix()); err != nil {
		return nil, fmt.Errorf("failed to insert game: %w", err)
	}
	res, err := tx.Exec(`
		INSERT INTO statistics (id, game_id, member_id)
		SELECT lower(hex(randomblob(16))), ?, member_id
		FROM team_members WHERE team_id = ? AND removed_at IS NULL
	`, g.ID, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to create statistics rows: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	rows, _ := res.RowsAffected()
	log.Info("Created game", "team", teamSlug, "game", g.Slug, "players", rows)
	return g, nil
}

func (s *store) ListGames(teamSlug string) ([]Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT g.id, g.slug, g.team_id, g.title, g.date, g.team_score, g.opponent_score, t.slug
		FROM games g JOIN teams t ON t.id = g.team_id
		WHERE t.slug = ?
		ORDER BY g.date DESC
	`, teamSlug)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	games := []Game{}
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			log.Error("Failed to scan game row", "error", err)
			continue
		}
		games = append(games, *g)
	}
	return games, rows.Err()
}

// GetGame returns a game with each player's statistics and display name.
func (s *store) GetGame(gameSlug string) (*GameWithRecords, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, err := scanGame(s.db.QueryRow(gameBySlug, gameSlug))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	records, err := s.loadRecords(g.ID)
	if err != nil {
		return nil, err
	}
	return &GameWithRecords{Game: *g, Records: records}, nil
}

func (s *store) SetScore(gameSlug string, teamScore, opponentScore int) (*Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("UPDATE games SET team_score = ?, opponent_score = ? WHERE slug = ?", teamScore, opponentScore, gameSlug)
	if err != nil {
		return nil, fmt.Errorf("failed to set score: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}

	return scanGame(s.db.QueryRow(gameBySlug, gameSlug))
}

// SaveStatistics overwrites the counters of every record in one transaction.
// A record that does not belong to the game aborts the save.
func (s *store) SaveStatistics(gameID string, records []volleyball.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("UPDATE statistics SET " + counterAssignments() + " WHERE id = ? AND game_id = ?")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, rec := range records {
		args := append(counterValues(rec.Counters), rec.ID, gameID)
		res, err := stmt.Exec(args...)
		if err != nil {
			return fmt.Errorf("failed to save statistics %s: %w", rec.ID, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("statistics %s in game %s: %w", rec.ID, gameID, ErrNotFound)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	log.Info("Saved statistics", "gameID", gameID, "records", len(records))
	return nil
}

// ScoredGames returns games with both scores entered, oldest first, each with
// its records. Without a date filter only the first 30 are returned.
func (s *store) ScoredGames(teamSlug string, filter DateFilter) ([]GameWithRecords, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	where, args := scoredGamesWhere(teamSlug, filter)
	query := `
		SELECT g.id, g.slug, g.team_id, g.title, g.date, g.team_score, g.opponent_score, t.slug
		FROM games g JOIN teams t ON t.id = g.team_id
		` + where + `
		ORDER BY g.date ASC`
	if !filter.Active() {
		query += fmt.Sprintf(" LIMIT %d", unfilteredGameLimit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	var games []Game
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		games = append(games, *g)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]GameWithRecords, 0, len(games))
	for _, g := range games {
		records, err := s.loadRecords(g.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, GameWithRecords{Game: g, Records: records})
	}
	return out, nil
}

// SumStatistics sums every counter over the team's scored games.
func (s *store) SumStatistics(teamSlug string, filter DateFilter) (volleyball.Counters, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	where, args := scoredGamesWhere(teamSlug, filter)
	var sum volleyball.Counters
	err := s.db.QueryRow(`
		SELECT `+counterSums("s")+`
		FROM statistics s
		JOIN games g ON g.id = s.game_id
		JOIN teams t ON t.id = g.team_id
		`+where, args...).Scan(counterTargets(&sum)...)
	if err != nil {
		return volleyball.Counters{}, fmt.Errorf("failed to sum statistics: %w", err)
	}
	return sum, nil
}

// LeaderboardSums sums counters per member over the team's scored games.
func (s *store) LeaderboardSums(teamSlug string, filter DateFilter) ([]LeaderboardRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	where, args := scoredGamesWhere(teamSlug, filter)
	rows, err := s.db.Query(`
		SELECT m.id, m.first_name, m.last_name, m.nick_name, `+counterSums("s")+`
		FROM statistics s
		JOIN games g ON g.id = s.game_id
		JOIN teams t ON t.id = g.team_id
		JOIN members m ON m.id = s.member_id
		`+where+`
		GROUP BY m.id, m.first_name, m.last_name, m.nick_name`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LeaderboardRow
	for rows.Next() {
		var r LeaderboardRow
		var nickName sql.NullString
		dest := append([]any{&r.MemberID, &r.FirstName, &r.LastName, &nickName}, counterTargets(&r.Counters)...)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		r.NickName = nullableString(nickName)
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *store) loadRecords(gameID string) ([]volleyball.Record, error) {
	rows, err := s.db.Query(`
		SELECT s.id, s.member_id, m.first_name, m.last_name, `+counterSelect("s")+`
		FROM statistics s
		JOIN members m ON m.id = s.member_id
		WHERE s.game_id = ?
		ORDER BY m.last_name, m.first_name
	`, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to query statistics: %w", err)
	}
	defer rows.Close()

	records := []volleyball.Record{}
	for rows.Next() {
		var rec volleyball.Record
		var first, last string
		dest := append([]any{&rec.ID, &rec.MemberID, &first, &last}, counterTargets(&rec.Counters)...)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		rec.Name = strings.TrimSpace(first + " " + last)
		records = append(records, rec)
	}
	return records, rows.Err()
}

func scoredGamesWhere(teamSlug string, filter DateFilter) (string, []any) {
	where := "WHERE t.slug = ? AND g.team_score IS NOT NULL AND g.opponent_score IS NOT NULL"
	args := []any{teamSlug}
	if filter.Active() {
		where += " AND g.date BETWEEN ? AND ?"
		args = append(args, filter.From.Unix(), filter.To.Unix())
	}
	return where, args
}

const gameBySlug = `
	SELECT g.id, g.slug, g.team_id, g.title, g.date, g.team_score, g.opponent_score, t.slug
	FROM games g JOIN teams t ON t.id = g.team_id
	WHERE g.slug = ?`

// scanGame is a helper function to scan a single game row.
func scanGame(scanner interface{ Scan(...any) error }) (*Game, error) {
	var g Game
	var date int64
	var teamScore, opponentScore sql.NullInt64
	if err := scanner.Scan(&g.ID, &g.Slug, &g.TeamID, &g.Title, &date, &teamScore, &opponentScore, &g.TeamSlug); err != nil {
		return nil, err
	}
	g.Date = time.Unix(date, 0).UTC()
	g.TeamScore = nullableInt(teamScore)
	g.OpponentScore = nullableInt(opponentScore)
	return &g, nil
}

func teamIDBySlug(tx *sql.Tx, teamSlug string) (string, error) {
	var id string
	err := tx.QueryRow("SELECT id FROM teams WHERE slug = ?", teamSlug).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("team %q: %w", teamSlug, ErrNotFound)
	}
	return id, err
}

func nullableString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}

func nullableInt(ni sql.NullInt64) *int {
	if !ni.Valid {
		return nil
	}
	v := int(ni.Int64)
	return &v
}
