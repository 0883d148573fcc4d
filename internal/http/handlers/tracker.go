package handlers

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/mauv0809/courtside/internal/live"
	"github.com/mauv0809/courtside/internal/team"
	"github.com/mauv0809/courtside/internal/tracker"
	"github.com/mauv0809/courtside/internal/volleyball"
)

type openTrackerResponse struct {
	ID    string            `json:"id"`
	Game  team.Game         `json:"game"`
	Stats []volleyball.Stat `json:"stats"`
	View  tracker.View      `json:"view"`
}

// OpenTrackerHandler starts a live tracker session for a game.
func OpenTrackerHandler(store team.TeamStore, sessions *live.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		game, ok := loadGame(w, r, store)
		if !ok {
			return
		}
		s, err := sessions.Open(r.Context(), game.Slug)
		if err != nil {
			respondError(w, err, "Game not found")
			return
		}
		respondJSON(w, http.StatusCreated, openTrackerResponse{
			ID:    s.ID,
			Game:  s.Game,
			Stats: volleyball.DefaultStats,
			View:  s.Tracker.View(),
		})
	}
}

// session resolves the tracker session in the path and checks team access.
func session(w http.ResponseWriter, r *http.Request, sessions *live.Manager) (*live.Session, bool) {
	s, err := sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err, "Tracker session not found")
		return nil, false
	}
	if !allowTeam(w, r, s.Game.TeamSlug) {
		return nil, false
	}
	return s, true
}

func GetTrackerHandler(sessions *live.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := session(w, r, sessions)
		if !ok {
			return
		}
		respondJSON(w, http.StatusOK, s.Tracker.View())
	}
}

// DiscardTrackerHandler closes a session without saving. Its event stream
// subscribers are disconnected.
func DiscardTrackerHandler(sessions *live.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := session(w, r, sessions)
		if !ok {
			return
		}
		sessions.Discard(s.ID)
		w.WriteHeader(http.StatusNoContent)
	}
}

type slotRequest struct {
	Index *int `json:"index"`
}

func SelectSlotHandler(sessions *live.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := session(w, r, sessions)
		if !ok {
			return
		}
		var req slotRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		respondView(w, sessions.SelectSlot)(s.ID, req.Index)
	}
}

type benchRequest struct {
	ID string `json:"id"`
}

func SelectBenchHandler(sessions *live.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := session(w, r, sessions)
		if !ok {
			return
		}
		var req benchRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		respondView(w, sessions.SelectBench)(s.ID, req.ID)
	}
}

type statRequest struct {
	Stat string `json:"stat"`
}

func IncrementHandler(sessions *live.Manager) http.HandlerFunc {
	return statHandler(sessions, sessions.Increment)
}

func DecrementHandler(sessions *live.Manager) http.HandlerFunc {
	return statHandler(sessions, sessions.Decrement)
}

func statHandler(sessions *live.Manager, apply func(string, volleyball.StatKey) (tracker.View, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := session(w, r, sessions)
		if !ok {
			return
		}
		var req statRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		key, err := volleyball.ParseStatKey(req.Stat)
		if err != nil {
			respondError(w, err, "")
			return
		}
		respondView(w, apply)(s.ID, key)
	}
}

func SubstituteHandler(sessions *live.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := session(w, r, sessions)
		if !ok {
			return
		}
		view, err := sessions.Substitute(s.ID)
		if err != nil {
			respondError(w, err, "Tracker session not found")
			return
		}
		respondJSON(w, http.StatusOK, view)
	}
}

// SaveTrackerHandler persists a session's statistics. A failed save keeps the
// session dirty so the client can retry.
func SaveTrackerHandler(sessions *live.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := session(w, r, sessions)
		if !ok {
			return
		}
		res, err := sessions.Save(r.Context(), s.ID, IsDryRunFromContext(r))
		if err != nil {
			log.Error("Tracker save failed", "error", err, "session", s.ID)
			http.Error(w, "Failed to save statistics", http.StatusInternalServerError)
			return
		}
		respondJSON(w, http.StatusOK, res)
	}
}

// TrackerEventsHandler streams view updates of an open session.
func TrackerEventsHandler(sessions *live.Manager, events http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := sessions.Get(chi.URLParam(r, "id")); err != nil {
			respondError(w, err, "Tracker session not found")
			return
		}
		events.ServeHTTP(w, r)
	}
}

// respondView adapts a session operation into a JSON response.
func respondView[T any](w http.ResponseWriter, apply func(string, T) (tracker.View, error)) func(string, T) {
	return func(id string, arg T) {
		view, err := apply(id, arg)
		if err != nil {
			respondError(w, err, "Tracker session not found")
			return
		}
		respondJSON(w, http.StatusOK, view)
	}
}
