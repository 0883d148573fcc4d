package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/mauv0809/courtside/internal/analytics"
	"github.com/mauv0809/courtside/internal/auth"
	"github.com/mauv0809/courtside/internal/pubsub"
	"github.com/mauv0809/courtside/internal/team"
)

// ListTeamsHandler lists the teams of the signed-in user.
func ListTeamsHandler(store team.TeamStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, _ := auth.FromContext(r.Context())
		teams, err := store.ListTeamsForUser(s.User.ID)
		if err != nil {
			respondError(w, err, "")
			return
		}
		respondJSON(w, http.StatusOK, teams)
	}
}

func ListMembersHandler(store team.TeamStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		members, err := store.ListMembers(chi.URLParam(r, "team"))
		if err != nil {
			respondError(w, err, "Team not found")
			return
		}
		respondJSON(w, http.StatusOK, members)
	}
}

func AddMemberHandler(store team.TeamStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var nm team.NewMember
		if !decodeJSON(w, r, &nm) {
			return
		}
		nm.FirstName = strings.TrimSpace(nm.FirstName)
		nm.LastName = strings.TrimSpace(nm.LastName)
		if nm.FirstName == "" || nm.LastName == "" {
			http.Error(w, "First and last name are required", http.StatusBadRequest)
			return
		}
		if nm.Role != "" && nm.Role != team.RoleAdmin && nm.Role != team.RoleMember {
			http.Error(w, "Invalid role", http.StatusBadRequest)
			return
		}

		member, err := store.AddMember(chi.URLParam(r, "team"), nm)
		if err != nil {
			respondError(w, err, "Team not found")
			return
		}
		respondJSON(w, http.StatusCreated, member)
	}
}

func RemoveMemberHandler(store team.TeamStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.RemoveMember(chi.URLParam(r, "team"), chi.URLParam(r, "member")); err != nil {
			respondError(w, err, "Member not found")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func ListGamesHandler(store team.TeamStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		games, err := store.ListGames(chi.URLParam(r, "team"))
		if err != nil {
			respondError(w, err, "Team not found")
			return
		}
		respondJSON(w, http.StatusOK, games)
	}
}

type createGameRequest struct {
	Title string `json:"title"`
	Date  string `json:"date"`
}

func CreateGameHandler(store team.TeamStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createGameRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		req.Title = strings.TrimSpace(req.Title)
		if req.Title == "" {
			http.Error(w, "Title is required", http.StatusBadRequest)
			return
		}
		date, err := parseGameDate(req.Date)
		if err != nil {
			http.Error(w, "Invalid date", http.StatusBadRequest)
			return
		}

		game, err := store.CreateGame(chi.URLParam(r, "team"), req.Title, date)
		if err != nil {
			respondError(w, err, "Team not found")
			return
		}
		respondJSON(w, http.StatusCreated, game)
	}
}

// parseGameDate accepts RFC 3339 timestamps and plain dates.
func parseGameDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse(analytics.DateLayout, raw)
}

type scoreRequest struct {
	TeamScore     *int `json:"teamScore"`
	OpponentScore *int `json:"opponentScore"`
}

// SetScoreHandler records the final score and announces it.
func SetScoreHandler(store team.TeamStore, pubsubClient pubsub.PubSubClient) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req scoreRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if req.TeamScore == nil || req.OpponentScore == nil || *req.TeamScore < 0 || *req.OpponentScore < 0 {
			http.Error(w, "Both scores are required and must not be negative", http.StatusBadRequest)
			return
		}

		teamSlug := chi.URLParam(r, "team")
		gameSlug := chi.URLParam(r, "game")
		existing, err := store.GetGame(gameSlug)
		if err != nil || existing.TeamSlug != teamSlug {
			respondError(w, orNotFound(err), "Game not found")
			return
		}

		game, err := store.SetScore(gameSlug, *req.TeamScore, *req.OpponentScore)
		if err != nil {
			respondError(w, err, "Game not found")
			return
		}

		event := pubsub.GameScored{
			GameSlug:      game.Slug,
			TeamSlug:      teamSlug,
			Title:         game.Title,
			Date:          game.Date,
			TeamScore:     *req.TeamScore,
			OpponentScore: *req.OpponentScore,
		}
		if IsDryRunFromContext(r) {
			log.Info("[Dry Run] Would have published event", "event", pubsub.EventGameScored, "game", game.Slug)
		} else if err := pubsubClient.SendMessage(r.Context(), pubsub.EventGameScored, event); err != nil {
			log.Error("Failed to publish game scored event", "error", err, "game", game.Slug)
		}
		respondJSON(w, http.StatusOK, game)
	}
}

func orNotFound(err error) error {
	if err == nil {
		return team.ErrNotFound
	}
	return err
}

// OverviewHandler computes the team overview, optionally between ?from and ?to.
func OverviewHandler(store team.TeamStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := parseDateFilter(r)
		if err != nil {
			http.Error(w, "Invalid date filter, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		overview, err := analytics.Load(store, chi.URLParam(r, "team"), filter)
		if err != nil {
			respondError(w, err, "Team not found")
			return
		}
		respondJSON(w, http.StatusOK, overview)
	}
}

// parseDateFilter reads ?from and ?to. The filter applies only when both are
// given; ?to covers its whole day.
func parseDateFilter(r *http.Request) (team.DateFilter, error) {
	from, to := r.URL.Query().Get("from"), r.URL.Query().Get("to")
	if from == "" || to == "" {
		return team.DateFilter{}, nil
	}
	f, err := time.Parse(analytics.DateLayout, from)
	if err != nil {
		return team.DateFilter{}, err
	}
	t, err := time.Parse(analytics.DateLayout, to)
	if err != nil {
		return team.DateFilter{}, err
	}
	return team.DateFilter{From: f, To: t.Add(24*time.Hour - time.Second)}, nil
}

func LeaderboardHandler(store team.TeamStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := store.LeaderboardSums(chi.URLParam(r, "team"), team.DateFilter{})
		if err != nil {
			respondError(w, err, "Team not found")
			return
		}
		respondJSON(w, http.StatusOK, analytics.ComputeLeaderboard(rows, analytics.LeaderboardSize))
	}
}
