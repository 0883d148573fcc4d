package processor

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/courtside/internal/analytics"
	"github.com/mauv0809/courtside/internal/metrics"
	"github.com/mauv0809/courtside/internal/notifier"
	"github.com/mauv0809/courtside/internal/pubsub"
	"github.com/mauv0809/courtside/internal/volleyball"
)

// New creates a new Processor.
func New(store Store, notifier Notifier, metrics metrics.Metrics) *Processor {
	return &Processor{
		store:    store,
		notifier: notifier,
		metrics:  metrics,
		now:      time.Now,
	}
}

// HandleStatisticsSaved posts a summary of a saved box score with its top performers.
func (p *Processor) HandleStatisticsSaved(event pubsub.StatisticsSaved, dryRun bool) error {
	log.Info("Processing statistics saved event", "game", event.GameSlug, "records", len(event.Records))
	p.record(pubsub.EventStatisticsSaved, dryRun)

	var sum volleyball.Counters
	for _, rec := range event.Records {
		sum = sum.Add(rec.Counters)
	}
	summary := notifier.StatisticsSummary{
		TeamSlug: event.TeamSlug,
		Title:    event.Title,
		Totals:   analytics.ComputeTotalStatistics(sum),
		Top:      analytics.RankRecords(event.Records, topPerformers),
	}
	if err := p.notifier.SendStatisticsSummary(summary, dryRun); err != nil {
		return fmt.Errorf("failed to send statistics summary for %s: %w", event.GameSlug, err)
	}
	return nil
}

// HandleGameScored announces a final score. Scores entered for games played
// long ago are recorded without a notification.
func (p *Processor) HandleGameScored(event pubsub.GameScored, dryRun bool) error {
	log.Info("Processing game scored event", "game", event.GameSlug, "score", fmt.Sprintf("%d-%d", event.TeamScore, event.OpponentScore))
	p.record(pubsub.EventGameScored, dryRun)

	if age := p.now().Sub(event.Date); age > staleResultAge {
		log.Info("Skipping result notification for historic game", "game", event.GameSlug, "age", age)
		return nil
	}

	result := notifier.GameResult{
		TeamSlug:      event.TeamSlug,
		Title:         event.Title,
		Date:          event.Date,
		TeamScore:     event.TeamScore,
		OpponentScore: event.OpponentScore,
	}
	if err := p.notifier.SendGameResult(result, dryRun); err != nil {
		return fmt.Errorf("failed to send game result for %s: %w", event.GameSlug, err)
	}
	return nil
}

func (p *Processor) record(event pubsub.EventType, dryRun bool) {
	p.metrics.IncEventsProcessed(string(event))
	if dryRun {
		log.Debug("[Dry Run] Would have recorded usage", "event", event)
		return
	}
	p.store.Increment(string(event))
}
