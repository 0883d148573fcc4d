package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
type Service struct {
	StatChanges         *prometheus.CounterVec
	Substitutions       prometheus.Counter
	OpenSessions        prometheus.Gauge
	StatisticsSaved     prometheus.Counter
	StatisticsSaveFails prometheus.Counter
	SaveDuration        prometheus.Histogram
	EventsProcessed     *prometheus.CounterVec
	SlackNotifSent      prometheus.Counter
	SlackNotifFailed    prometheus.Counter
	StartupTimeSeconds  prometheus.Gauge
}

// Directions of a stat change.
const (
	DirectionIncrement = "increment"
	DirectionDecrement = "decrement"
)
