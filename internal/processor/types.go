package processor

import (
	"time"

	"github.com/mauv0809/courtside/internal/metrics"
)

// Processor reacts to domain events delivered over pub/sub.
type Processor struct {
	store    Store
	notifier Notifier
	metrics  metrics.Metrics
	now      func() time.Time
}

// topPerformers is the number of players named in a statistics summary.
const topPerformers = 3

// staleResultAge is how old a game may be before its result is no longer announced.
const staleResultAge = 7 * 24 * time.Hour
