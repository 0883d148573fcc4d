package team

import (
	"strings"

	"github.com/mauv0809/courtside/internal/volleyball"
)

// counterColumns maps each stat key to its statistics column, in table order.
var counterColumns = []struct {
	key    volleyball.StatKey
	column string
}{
	{volleyball.Kills, "kills"},
	{volleyball.AttackErrors, "attack_errors"},
	{volleyball.AttackAttempts, "attack_attempts"},
	{volleyball.ServeAces, "serve_aces"},
	{volleyball.ServeErrors, "serve_errors"},
	{volleyball.ServeAttempts, "serve_attempts"},
	{volleyball.ReceivePerfect, "receive_perfect"},
	{volleyball.ReceivePositive, "receive_positive"},
	{volleyball.ReceiveNegative, "receive_negative"},
	{volleyball.ReceiveError, "receive_error"},
	{volleyball.ReceiveAttempts, "receive_attempts"},
	{volleyball.SetAssists, "set_assists"},
	{volleyball.SetErrors, "set_errors"},
	{volleyball.Digs, "digs"},
	{volleyball.DigErrors, "dig_errors"},
	{volleyball.BlockSingle, "block_single"},
	{volleyball.BlockMultiple, "block_multiple"},
	{volleyball.BlockErrors, "block_errors"},
	{volleyball.SetsPlayed, "sets_played"},
}

// counterSelect renders "s.kills, s.attack_errors, ...".
func counterSelect(alias string) string {
	cols := make([]string, len(counterColumns))
	for i, c := range counterColumns {
		cols[i] = alias + "." + c.column
	}
	return strings.Join(cols, ", ")
}

// counterSums renders "COALESCE(SUM(s.kills), 0), ...".
func counterSums(alias string) string {
	cols := make([]string, len(counterColumns))
	for i, c := range counterColumns {
		cols[i] = "COALESCE(SUM(" + alias + "." + c.column + "), 0)"
	}
	return strings.Join(cols, ", ")
}

// counterAssignments renders "kills = ?, attack_errors = ?, ...".
func counterAssignments() string {
	cols := make([]string, len(counterColumns))
	for i, c := range counterColumns {
		cols[i] = c.column + " = ?"
	}
	return strings.Join(cols, ", ")
}

// counterTargets returns scan destinations for every counter column.
func counterTargets(c *volleyball.Counters) []any {
	targets := make([]any, len(counterColumns))
	for i, col := range counterColumns {
		targets[i] = c.Field(col.key)
	}
	return targets
}

// counterValues returns the counter values in column order.
func counterValues(c volleyball.Counters) []any {
	values := make([]any, len(counterColumns))
	for i, col := range counterColumns {
		values[i] = *c.Field(col.key)
	}
	return values
}
