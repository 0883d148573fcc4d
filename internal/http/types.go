package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mauv0809/courtside/internal/config"
	"github.com/mauv0809/courtside/internal/live"
	"github.com/mauv0809/courtside/internal/metrics"
	"github.com/mauv0809/courtside/internal/notifier"
	"github.com/mauv0809/courtside/internal/processor"
	"github.com/mauv0809/courtside/internal/pubsub"
	"github.com/mauv0809/courtside/internal/team"
)

type Server struct {
	Store          team.TeamStore
	Sessions       *live.Manager
	Events         *Events
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Usage          metrics.UsageStore
	Cfg            config.Config
	Notifier       notifier.Notifier
	Processor      *processor.Processor
	Router         chi.Router
	pubsub         pubsub.PubSubClient
}
