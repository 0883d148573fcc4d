package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/courtside/internal/analytics"
	"github.com/mauv0809/courtside/internal/metrics"
	"github.com/mauv0809/courtside/internal/notifier"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

func (s *Notifier) SendGameResult(result notifier.GameResult, dryRun bool) error {
	_, _, err := s.sendMessage(s.formatGameResult(result), dryRun)
	return err
}

func (s *Notifier) SendStatisticsSummary(summary notifier.StatisticsSummary, dryRun bool) error {
	_, _, err := s.sendMessage(s.formatStatisticsSummary(summary), dryRun)
	return err
}

// FormatLeaderboardResponse formats a leaderboard message for a slash command response.
func (s *Notifier) FormatLeaderboardResponse(teamSlug string, entries []analytics.LeaderboardEntry) (any, error) {
	return s.formatLeaderboard(teamSlug, entries), nil
}

func plainText(text string) *slack.TextBlockObject {
	return slack.NewTextBlockObject("plain_text", text, true, false)
}

// formatGameResult creates the Slack message for a finished game using Block Kit.
func (s *Notifier) formatGameResult(result notifier.GameResult) slack.Message {
	blocks := make([]slack.Block, 0)

	header := "🏐 Game finished 🏐"
	if result.Won() {
		header = "🏆 Victory! 🏆"
	}
	blocks = append(blocks, slack.NewHeaderBlock(plainText(header)))

	details := fmt.Sprintf("%s on %s", result.Title, result.Date.Format("Monday 02 Jan"))
	blocks = append(blocks, slack.NewSectionBlock(plainText(details), nil, nil))

	score := fmt.Sprintf("Final score: %d - %d", result.TeamScore, result.OpponentScore)
	blocks = append(blocks, slack.NewSectionBlock(plainText(score), nil, nil))

	blocks = append(blocks, slack.NewContextBlock("", plainText("Team: "+result.TeamSlug)))
	return slack.NewBlockMessage(blocks...)
}

// formatStatisticsSummary creates the Slack message for a saved box score.
func (s *Notifier) formatStatisticsSummary(summary notifier.StatisticsSummary) slack.Message {
	blocks := make([]slack.Block, 0)
	blocks = append(blocks, slack.NewHeaderBlock(plainText("📊 Statistics saved: "+summary.Title)))

	t := summary.Totals
	fields := []*slack.TextBlockObject{
		plainText(fmt.Sprintf("Attack\nKills: %d | Errors: %d | Eff: %.2f", t.Kills, t.AttackErrors, t.AttackEfficiency)),
		plainText(fmt.Sprintf("Serve\nAces: %d | Errors: %d | Eff: %.2f", t.Aces, t.ServeErrors, t.ServeEfficiency)),
		plainText(fmt.Sprintf("Defence\nDigs: %d | Blocks: %d", t.Digs, t.Blocks)),
	}
	blocks = append(blocks, slack.NewSectionBlock(plainText("Team totals"), fields, nil))

	if len(summary.Top) > 0 {
		lines := make([]string, 0, len(summary.Top))
		for i, e := range summary.Top {
			lines = append(lines, fmt.Sprintf("%d. %s (%.2f)", i+1, e.Name, e.Score))
		}
		blocks = append(blocks, slack.NewSectionBlock(plainText("Top performers:\n"+strings.Join(lines, "\n")), nil, nil))
	}
	return slack.NewBlockMessage(blocks...)
}

// formatLeaderboard creates a Slack message to display the player leaderboard.
func (s *Notifier) formatLeaderboard(teamSlug string, entries []analytics.LeaderboardEntry) slack.Message {
	blocks := make([]slack.Block, 0)
	blocks = append(blocks, slack.NewHeaderBlock(plainText("🏆 Leaderboard: "+teamSlug+" 🏆")))

	if len(entries) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(plainText("No stats available yet. Go play some games!"), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	for i, e := range entries {
		rank := i + 1
		var medal string
		switch rank {
		case 1:
			medal = "🥇"
		case 2:
			medal = "🥈"
		case 3:
			medal = "🥉"
		}

		text := fmt.Sprintf("%d. %s %s\n> Score: %.2f | Kills: %d | Aces: %d | Blocks: %d | Digs: %d | Sets: %d",
			rank,
			medal,
			e.Name,
			e.Score,
			e.Kills,
			e.ServeAces,
			e.Blocks,
			e.Digs,
			e.SetAssists,
		)
		blocks = append(blocks, slack.NewSectionBlock(plainText(text), nil, nil))
	}
	return slack.NewBlockMessage(blocks...)
}
