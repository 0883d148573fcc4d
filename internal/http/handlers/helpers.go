package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/courtside/internal/auth"
	"github.com/mauv0809/courtside/internal/live"
	"github.com/mauv0809/courtside/internal/team"
	"github.com/mauv0809/courtside/internal/tracker"
	"github.com/mauv0809/courtside/internal/volleyball"
)

// ContextKey is a custom type to avoid key collisions in context.
type ContextKey string

const (
	DryRunKey ContextKey = "dryRun"
)

// IsDryRunFromContext is a helper to safely retrieve the dry_run flag from the request context.
func IsDryRunFromContext(r *http.Request) bool {
	dryRun, ok := r.Context().Value(DryRunKey).(bool)
	return ok && dryRun
}

// respondJSON writes v as the JSON response body.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}

// decodeJSON reads the request body into v and answers 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		log.Debug("Invalid request body", "error", err)
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return false
	}
	return true
}

// respondError maps domain errors onto HTTP status codes.
func respondError(w http.ResponseWriter, err error, notFound string) {
	switch {
	case errors.Is(err, team.ErrNotFound), errors.Is(err, live.ErrSessionNotFound):
		http.Error(w, notFound, http.StatusNotFound)
	case errors.Is(err, volleyball.ErrUnknownStatKey), errors.Is(err, tracker.ErrInvalidSlot):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.Error("Request failed", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// allowTeam answers 403 unless the session may act on the team.
func allowTeam(w http.ResponseWriter, r *http.Request, teamSlug string) bool {
	s, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return false
	}
	if !s.Allows(teamSlug, team.RoleMember) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return false
	}
	return true
}
