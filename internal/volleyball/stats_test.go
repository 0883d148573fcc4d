package volleyball

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatKey(t *testing.T) {
	for _, key := range Keys() {
		parsed, err := ParseStatKey(string(key))
		require.NoError(t, err)
		assert.Equal(t, key, parsed)
	}

	_, err := ParseStatKey("homeRuns")
	assert.ErrorIs(t, err, ErrUnknownStatKey)
}

func TestDefaultStatsAreCounters(t *testing.T) {
	for _, stat := range DefaultStats {
		_, err := ParseStatKey(string(stat.Key))
		assert.NoError(t, err, stat.Key)
	}
}

func TestCountersSetFloorsAtZero(t *testing.T) {
	var c Counters
	require.NoError(t, c.Set(Digs, -3))
	v, err := c.Get(Digs)
	require.NoError(t, err)
	assert.Equal(t, 0, v)

	assert.ErrorIs(t, c.Set("nope", 1), ErrUnknownStatKey)
}

func TestCountersAdd(t *testing.T) {
	a := Counters{Kills: 3, Digs: 1, BlockSingle: 2}
	b := Counters{Kills: 2, Digs: 4, BlockMultiple: 1}

	sum := a.Add(b)
	assert.Equal(t, 5, sum.Kills)
	assert.Equal(t, 5, sum.Digs)
	assert.Equal(t, 3, sum.Blocks())
	assert.Equal(t, 3, a.Kills, "receiver must not be modified")
}

func TestDerive(t *testing.T) {
	c := Counters{
		Kills: 18, AttackErrors: 4, AttackAttempts: 45,
		ServeAces: 4, ServeErrors: 3, ServeAttempts: 30,
		ReceivePerfect: 14, ReceivePositive: 20, ReceiveNegative: 6, ReceiveAttempts: 42,
		BlockSingle: 6, BlockMultiple: 2, SetsPlayed: 5,
	}

	d := c.Derive()
	assert.Equal(t, 0.31, d.AttackEfficiency)
	assert.Equal(t, 3.6, d.KillsPerSet)
	assert.Equal(t, 0.03, d.ServeEfficiency)
	assert.Equal(t, 90.0, d.ServePercentage)
	assert.Equal(t, 2.10, d.ReceiveRating)
	assert.Equal(t, 1.6, d.BlocksPerSet)
}

func TestDeriveZeroDenominators(t *testing.T) {
	d := Counters{Kills: 2}.Derive()
	assert.Equal(t, Derived{}, d)
}

func TestPointsAndErrors(t *testing.T) {
	c := Counters{
		Kills: 2, BlockSingle: 1, BlockMultiple: 1, ServeAces: 1,
		AttackErrors: 1, ServeErrors: 1, ReceiveError: 1, SetErrors: 1, DigErrors: 1, BlockErrors: 1,
	}
	assert.Equal(t, 5, c.Points())
	assert.Equal(t, 6, c.Errors())
}
