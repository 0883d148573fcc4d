// Package analytics computes the team overview figures from stored games.
package analytics

import (
	"math"
	"sort"

	"github.com/mauv0809/courtside/internal/team"
	"github.com/mauv0809/courtside/internal/volleyball"
)

// ComputeGamesOverview counts wins and losses. A game missing either score is
// left out of both counts but still counts towards the total.
func ComputeGamesOverview(games []team.Game) GamesOverview {
	var o GamesOverview
	for _, g := range games {
		if !g.Scored() {
			continue
		}
		if *g.TeamScore > *g.OpponentScore {
			o.Wins++
		} else {
			o.Loses++
		}
	}
	o.TotalGames = len(games)
	if o.TotalGames > 0 {
		o.WinPercentage = math.Ceil(float64(o.Wins)/float64(o.TotalGames)*10000) / 100
	}
	return o
}

// ComputeTotalStatistics derives the team totals from summed counters.
func ComputeTotalStatistics(sum volleyball.Counters) TotalStatistics {
	return TotalStatistics{
		Kills:             sum.Kills,
		AttackErrors:      sum.AttackErrors,
		AttackAttempts:    sum.AttackAttempts,
		AttackEfficiency:  volleyball.Ratio(sum.Kills-sum.AttackErrors, sum.AttackAttempts),
		Digs:              sum.Digs,
		Blocks:            sum.Blocks(),
		ReceivePercentage: volleyball.Ratio(3*sum.ReceivePerfect+2*sum.ReceivePositive+sum.ReceiveNegative, sum.ReceiveAttempts),
		Aces:              sum.ServeAces,
		ServeErrors:       sum.ServeErrors,
		ServeAttempts:     sum.ServeAttempts,
		ServeEfficiency:   volleyball.Ratio(sum.ServeAces-sum.ServeErrors, sum.ServeAttempts),
	}
}

// Score weighs a player's contributions into a single leaderboard value.
func Score(c volleyball.Counters) float64 {
	return float64(c.Kills)*1.5 +
		float64(c.ServeAces)*1.2 +
		float64(c.Blocks()) +
		float64(c.Digs)*0.75 +
		float64(c.SetAssists)*0.75
}

// DisplayName prefers the nickname over the full name.
func DisplayName(firstName, lastName string, nickName *string) string {
	if nickName != nil && *nickName != "" {
		return *nickName
	}
	return firstName + " " + lastName
}

// ComputeLeaderboard ranks members by score and keeps the best n.
func ComputeLeaderboard(rows []team.LeaderboardRow, n int) []LeaderboardEntry {
	entries := make([]LeaderboardEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, LeaderboardEntry{
			PlayerID:   r.MemberID,
			Name:       DisplayName(r.FirstName, r.LastName, r.NickName),
			Kills:      r.Kills,
			Blocks:     r.Blocks(),
			ServeAces:  r.ServeAces,
			Digs:       r.Digs,
			SetAssists: r.SetAssists,
			Score:      Score(r.Counters),
		})
	}
	return rank(entries, n)
}

// RankRecords ranks the players of a single game and keeps the best n.
// Players without any scoring contribution are left out.
func RankRecords(records []volleyball.Record, n int) []LeaderboardEntry {
	entries := make([]LeaderboardEntry, 0, len(records))
	for _, rec := range records {
		score := Score(rec.Counters)
		if score == 0 {
			continue
		}
		entries = append(entries, LeaderboardEntry{
			PlayerID:   rec.MemberID,
			Name:       rec.Name,
			Kills:      rec.Kills,
			Blocks:     rec.Blocks(),
			ServeAces:  rec.ServeAces,
			Digs:       rec.Digs,
			SetAssists: rec.SetAssists,
			Score:      score,
		})
	}
	return rank(entries, n)
}

func rank(entries []LeaderboardEntry, n int) []LeaderboardEntry {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	if n >= 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// ComputeCharts builds the per-game chart series.
func ComputeCharts(games []team.GameWithRecords) Charts {
	charts := Charts{
		Scores: make([]ScorePoint, 0, len(games)),
		Errors: make([]ErrorPoint, 0, len(games)),
		Attack: make([]AttackPoint, 0, len(games)),
	}
	for _, g := range games {
		var sum volleyball.Counters
		for _, rec := range g.Records {
			sum = sum.Add(rec.Counters)
		}
		date := g.Date.Format(DateLayout)

		charts.Scores = append(charts.Scores, ScorePoint{Date: date, Scores: sum.Points(), Errors: sum.Errors()})
		charts.Errors = append(charts.Errors, ErrorPoint{Date: date, Attack: sum.AttackErrors, Receive: sum.ReceiveError})
		charts.Attack = append(charts.Attack, AttackPoint{Date: date, Attempts: sum.AttackAttempts, Errors: sum.AttackErrors})
		charts.TotalScores += sum.Points()
		charts.TotalErrors += sum.Errors()
	}
	return charts
}

// ComputeOverview composes every overview figure. With no games the result
// is marked empty and carries no figures.
func ComputeOverview(games []team.GameWithRecords, sum volleyball.Counters, rows []team.LeaderboardRow) Overview {
	if len(games) == 0 {
		return Overview{Empty: true, Leaderboard: []LeaderboardEntry{}}
	}
	plain := make([]team.Game, len(games))
	for i, g := range games {
		plain[i] = g.Game
	}
	return Overview{
		Games:       ComputeGamesOverview(plain),
		Totals:      ComputeTotalStatistics(sum),
		Charts:      ComputeCharts(games),
		Leaderboard: ComputeLeaderboard(rows, LeaderboardSize),
	}
}

// Load reads everything the overview needs from the store and computes it.
func Load(store team.TeamStore, teamSlug string, filter team.DateFilter) (Overview, error) {
	games, err := store.ScoredGames(teamSlug, filter)
	if err != nil {
		return Overview{}, err
	}
	sum, err := store.SumStatistics(teamSlug, filter)
	if err != nil {
		return Overview{}, err
	}
	rows, err := store.LeaderboardSums(teamSlug, filter)
	if err != nil {
		return Overview{}, err
	}
	return ComputeOverview(games, sum, rows), nil
}
