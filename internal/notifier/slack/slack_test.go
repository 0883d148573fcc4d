package slack

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mauv0809/courtside/internal/analytics"
	"github.com/mauv0809/courtside/internal/metrics"
	"github.com/mauv0809/courtside/internal/notifier"
	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSlackAPI is a mock implementation of the parts of the slack.Client that we use.
type mockSlackAPI struct {
	postMessageContextFunc func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

func (m *mockSlackAPI) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	if m.postMessageContextFunc != nil {
		return m.postMessageContextFunc(ctx, channelID, options...)
	}
	return "C12345", "123456789.12345", nil
}

func TestSendMessage_DryRun(t *testing.T) {
	metrics := metrics.NewMock()
	// Pass nil for the api, as it shouldn't be called in dry-run mode.
	notifier := NewNotifierWithAPI(nil, "C123", metrics)

	_, _, err := notifier.sendMessage(slackapi.NewBlockMessage(), true)
	require.NoError(t, err)
	assert.Equal(t, 0, metrics.SlackNotifSent())
}

func TestSendMessage_Success(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			assert.Equal(t, "C123", channelID)
			return "C123", "ts123", nil
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	message := slackapi.NewBlockMessage(slackapi.NewSectionBlock(plainText("hello"), nil, nil))
	_, _, err := notifier.sendMessage(message, false)

	require.NoError(t, err)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called")
	assert.Equal(t, 1, metrics.SlackNotifSent())
	assert.Equal(t, 0, metrics.SlackNotifFailed())
}

func TestSendMessage_Failure(t *testing.T) {
	expectedErr := errors.New("slack API is down")
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			return "", "", expectedErr
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	_, _, err := notifier.sendMessage(slackapi.NewBlockMessage(), false)

	require.Error(t, err)
	assert.ErrorIs(t, err, expectedErr)
	assert.Equal(t, 0, metrics.SlackNotifSent())
	assert.Equal(t, 1, metrics.SlackNotifFailed())
}

func TestSendGameResult_CallsSender(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			return "C123", "ts123", nil
		},
	}
	n := NewNotifierWithAPI(api, "C123", metrics.NewMock())

	err := n.SendGameResult(notifier.GameResult{Title: "Cup final", Date: time.Now(), TeamScore: 3, OpponentScore: 2}, false)
	require.NoError(t, err)
	assert.True(t, postMessageCalled)
}

func TestFormatGameResult(t *testing.T) {
	client := &Notifier{channelID: "C123"}
	result := notifier.GameResult{
		TeamSlug:      "sharks",
		Title:         "Home vs Eagles",
		Date:          time.Date(2025, 3, 8, 18, 0, 0, 0, time.UTC),
		TeamScore:     1,
		OpponentScore: 3,
	}
	msg := client.formatGameResult(result)
	require.Len(t, msg.Blocks.BlockSet, 4)

	header, ok := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
	require.True(t, ok)
	assert.Equal(t, "🏐 Game finished 🏐", header.Text.Text)

	details, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Equal(t, "Home vs Eagles on Saturday 08 Mar", details.Text.Text)

	score, ok := msg.Blocks.BlockSet[2].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Equal(t, "Final score: 1 - 3", score.Text.Text)

	result.TeamScore = 3
	result.OpponentScore = 0
	won := client.formatGameResult(result)
	assert.Equal(t, "🏆 Victory! 🏆", won.Blocks.BlockSet[0].(*slackapi.HeaderBlock).Text.Text)
}

func TestFormatStatisticsSummary(t *testing.T) {
	client := &Notifier{channelID: "C123"}
	summary := notifier.StatisticsSummary{
		Title:  "Cup",
		Totals: analytics.TotalStatistics{Kills: 12, AttackEfficiency: 0.25},
		Top: []analytics.LeaderboardEntry{
			{Name: "Hammer", Score: 12.5},
			{Name: "Ada Lovelace", Score: 7},
		},
	}
	msg := client.formatStatisticsSummary(summary)
	require.Len(t, msg.Blocks.BlockSet, 3)

	totals, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	require.True(t, ok)
	require.Len(t, totals.Fields, 3)
	assert.Contains(t, totals.Fields[0].Text, "Kills: 12")
	assert.Contains(t, totals.Fields[0].Text, "Eff: 0.25")

	top := msg.Blocks.BlockSet[2].(*slackapi.SectionBlock)
	assert.Equal(t, "Top performers:\n1. Hammer (12.50)\n2. Ada Lovelace (7.00)", top.Text.Text)

	summary.Top = nil
	assert.Len(t, client.formatStatisticsSummary(summary).Blocks.BlockSet, 2)
}

func TestFormatLeaderboard(t *testing.T) {
	client := &Notifier{channelID: "C123"}

	empty := client.formatLeaderboard("sharks", nil)
	require.Len(t, empty.Blocks.BlockSet, 2)
	assert.Equal(t, "No stats available yet. Go play some games!", empty.Blocks.BlockSet[1].(*slackapi.SectionBlock).Text.Text)

	entries := []analytics.LeaderboardEntry{
		{Name: "Hammer", Score: 16, Kills: 10, Blocks: 1},
		{Name: "Ada Lovelace", Score: 3, Kills: 2},
	}
	msg := client.formatLeaderboard("sharks", entries)
	require.Len(t, msg.Blocks.BlockSet, 3)
	first := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock).Text.Text
	assert.Contains(t, first, "1. 🥇 Hammer")
	assert.Contains(t, first, "Score: 16.00 | Kills: 10")

	resp, err := client.FormatLeaderboardResponse("sharks", entries)
	require.NoError(t, err)
	_, ok := resp.(slackapi.Message)
	assert.True(t, ok)
}
