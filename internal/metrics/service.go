package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		StatChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "courtside_stat_changes_total",
			Help: "The total number of tracker stat changes applied.",
		}, []string{"direction"}),
		Substitutions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtside_substitutions_total",
			Help: "The total number of substitutions performed.",
		}),
		OpenSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "courtside_tracker_sessions_open",
			Help: "The number of live tracker sessions currently held in memory.",
		}),
		StatisticsSaved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtside_statistics_saved_total",
			Help: "The total number of successful statistics saves.",
		}),
		StatisticsSaveFails: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtside_statistics_save_failed_total",
			Help: "The total number of statistics saves that failed.",
		}),
		SaveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "courtside_statistics_save_duration_seconds",
			Help:    "The duration of persisting a tracker's statistics.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		EventsProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "courtside_events_processed_total",
			Help: "The total number of pub/sub events processed.",
		}, []string{"event"}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtside_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtside_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "courtside_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.StatChanges,
		s.Substitutions,
		s.OpenSessions,
		s.StatisticsSaved,
		s.StatisticsSaveFails,
		s.SaveDuration,
		s.EventsProcessed,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncStatChanges(direction string) {
	s.StatChanges.WithLabelValues(direction).Inc()
}

func (s *Service) IncSubstitutions() {
	s.Substitutions.Inc()
}

func (s *Service) SetOpenSessions(n int) {
	s.OpenSessions.Set(float64(n))
}

func (s *Service) IncStatisticsSaved() {
	s.StatisticsSaved.Inc()
}

func (s *Service) IncStatisticsSaveFailed() {
	s.StatisticsSaveFails.Inc()
}

func (s *Service) ObserveSaveDuration(duration float64) {
	s.SaveDuration.Observe(duration)
}

func (s *Service) IncEventsProcessed(event string) {
	s.EventsProcessed.WithLabelValues(event).Inc()
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
