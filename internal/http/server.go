package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mauv0809/courtside/internal/auth"
	"github.com/mauv0809/courtside/internal/config"
	"github.com/mauv0809/courtside/internal/http/handlers"
	"github.com/mauv0809/courtside/internal/live"
	"github.com/mauv0809/courtside/internal/metrics"
	"github.com/mauv0809/courtside/internal/notifier"
	"github.com/mauv0809/courtside/internal/processor"
	"github.com/mauv0809/courtside/internal/pubsub"
	"github.com/mauv0809/courtside/internal/team"
)

func NewServer(store team.TeamStore, sessions *live.Manager, events *Events, metricsSvc metrics.Metrics, metricsHandler http.Handler, usage metrics.UsageStore, cfg config.Config, notifier notifier.Notifier, processor *processor.Processor, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Store:          store,
		Sessions:       sessions,
		Events:         events,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Usage:          usage,
		Cfg:            cfg,
		Notifier:       notifier,
		Processor:      processor,
		Router:         chi.NewRouter(),
		pubsub:         pubsub,
	}

	server.routes()
	return server
}

func teamParam(r *http.Request) string {
	return chi.URLParam(r, "team")
}

func (s *Server) routes() {
	r := s.Router
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(paramsMiddleware)

	r.Handle("/metrics", s.MetricsHandler)
	r.Get("/health", handlers.HealthCheckHandler())

	// Pub/Sub push subscriptions.
	r.Post("/pubsub/statistics-saved", handlers.StatisticsSavedHandler(s.Processor, s.pubsub))
	r.Post("/pubsub/game-scored", handlers.GameScoredHandler(s.Processor, s.pubsub))

	r.Method(http.MethodPost, "/slack/command/leaderboard",
		Chain(handlers.LeaderboardCommandHandler(s.Store, s.Notifier), slackVerificationMiddleware(s.Cfg.Slack.SigningSecret)))

	// EventSource cannot send headers; the session id itself is the capability.
	r.Get("/events/tracker/{id}", handlers.TrackerEventsHandler(s.Sessions, s.Events))

	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(s.Store))
		r.Use(auth.RequireSession)

		r.Get("/teams", handlers.ListTeamsHandler(s.Store))
		r.Get("/usage", handlers.UsageHandler(s.Usage))

		r.Route("/teams/{team}", func(r chi.Router) {
			r.Use(auth.RequireTeam(team.RoleMember, teamParam))

			r.Group(func(r chi.Router) {
				r.Use(auth.RequireTeam(team.RoleAdmin, teamParam))
				r.Get("/members", handlers.ListMembersHandler(s.Store))
				r.Post("/members", handlers.AddMemberHandler(s.Store))
				r.Delete("/members/{member}", handlers.RemoveMemberHandler(s.Store))
			})

			r.Get("/games", handlers.ListGamesHandler(s.Store))
			r.Post("/games", handlers.CreateGameHandler(s.Store))
			r.Put("/games/{game}/score", handlers.SetScoreHandler(s.Store, s.pubsub))
			r.Get("/overview", handlers.OverviewHandler(s.Store))
			r.Get("/leaderboard", handlers.LeaderboardHandler(s.Store))
		})

		r.Get("/games/{game}/statistics", handlers.GetStatisticsHandler(s.Store))
		r.Put("/games/{game}/statistics", handlers.SaveStatisticsHandler(s.Store))
		r.Post("/games/{game}/tracker", handlers.OpenTrackerHandler(s.Store, s.Sessions))

		r.Route("/tracker/{id}", func(r chi.Router) {
			r.Get("/", handlers.GetTrackerHandler(s.Sessions))
			r.Delete("/", handlers.DiscardTrackerHandler(s.Sessions))
			r.Post("/slot", handlers.SelectSlotHandler(s.Sessions))
			r.Post("/bench", handlers.SelectBenchHandler(s.Sessions))
			r.Post("/increment", handlers.IncrementHandler(s.Sessions))
			r.Post("/decrement", handlers.DecrementHandler(s.Sessions))
			r.Post("/substitute", handlers.SubstituteHandler(s.Sessions))
			r.Post("/save", handlers.SaveTrackerHandler(s.Sessions))
		})
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
