package pubsub

import (
	"testing"
	"time"

	"github.com/mauv0809/courtside/internal/volleyball"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatisticsSavedCodec(t *testing.T) {
	in := StatisticsSaved{
		GameID:   "g1",
		GameSlug: "home-vs-eagles",
		TeamSlug: "sharks",
		Records: []volleyball.Record{
			{ID: "r1", Name: "Ada Lovelace", Counters: volleyball.Counters{Kills: 7, Digs: 2}},
		},
		SavedAt: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	data, err := Encode(in)
	require.NoError(t, err)

	var out StatisticsSaved
	require.NoError(t, Decode(data, &out))
	assert.Equal(t, in.GameSlug, out.GameSlug)
	require.Len(t, out.Records, 1)
	assert.Equal(t, 7, out.Records[0].Kills)
	assert.True(t, in.SavedAt.Equal(out.SavedAt))
}

func TestDecodeRejectsGarbage(t *testing.T) {
	var out GameScored
	assert.Error(t, Decode([]byte{0xc1}, &out))
}

func TestMockDecodes(t *testing.T) {
	m := NewMock("TEST")
	data, err := Encode(GameScored{GameSlug: "g", TeamScore: 3, OpponentScore: 1})
	require.NoError(t, err)

	var out GameScored
	require.NoError(t, m.ProcessMessage(data, &out))
	assert.Equal(t, 3, out.TeamScore)
	assert.Len(t, m.ProcessMessageCalls, 1)
}
