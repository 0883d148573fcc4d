// Package auth resolves API tokens into request sessions and gates team access.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/courtside/internal/team"
)

type contextKey string

const sessionKey contextKey = "session"

// Session is the signed-in user and their role in each team.
type Session struct {
	User  team.User
	Roles map[string]team.Role
}

// Role returns the user's role in a team, if they belong to it.
func (s *Session) Role(teamSlug string) (team.Role, bool) {
	role, ok := s.Roles[teamSlug]
	return role, ok
}

// Allows reports whether the user may act on a team with the given role.
// RoleMember accepts any membership, RoleAdmin only admins.
func (s *Session) Allows(teamSlug string, required team.Role) bool {
	role, ok := s.Role(teamSlug)
	if !ok {
		return false
	}
	return required != team.RoleAdmin || role == team.RoleAdmin
}

// WithSession stores a session on the context.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// FromContext returns the session stored on the context, if any.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionKey).(*Session)
	return s, ok && s != nil
}

// Middleware attaches a session for a valid bearer token. Requests without a
// token pass through anonymously; an unknown token is rejected.
func Middleware(store team.TeamStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := store.GetUserByToken(token)
			if errors.Is(err, team.ErrNotFound) {
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}
			if err != nil {
				log.Error("Failed to resolve token", "error", err)
				http.Error(w, "Failed to resolve session", http.StatusInternalServerError)
				return
			}

			roles, err := store.GetTeamRoles(user.ID)
			if err != nil {
				log.Error("Failed to load team roles", "error", err, "userID", user.ID)
				http.Error(w, "Failed to resolve session", http.StatusInternalServerError)
				return
			}
			log.Debug("Resolved session", "userID", user.ID, "teams", len(roles))

			ctx := WithSession(r.Context(), &Session{User: *user, Roles: roles})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSession rejects anonymous requests with 401.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := FromContext(r.Context()); !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireTeam rejects requests whose session lacks the required role in the
// team named by teamSlug. Anonymous requests get 401, others 403.
func RequireTeam(required team.Role, teamSlug func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, ok := FromContext(r.Context())
			if !ok {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			slug := teamSlug(r)
			if !s.Allows(slug, required) {
				log.Warn("Forbidden team access", "userID", s.User.ID, "team", slug, "required", required)
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) < 7 || !strings.EqualFold(h[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(h[7:])
}
