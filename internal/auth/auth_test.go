package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mauv0809/courtside/internal/team"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore() *team.MockStore {
	store := team.NewMock()
	store.GetUserByTokenFunc = func(token string) (*team.User, error) {
		switch token {
		case "good":
			return &team.User{ID: "u1", Name: "Coach"}, nil
		case "broken":
			return nil, errors.New("db down")
		}
		return nil, team.ErrNotFound
	}
	store.GetTeamRolesFunc = func(userID string) (map[string]team.Role, error) {
		return map[string]team.Role{"sharks": team.RoleAdmin, "eagles": team.RoleMember}, nil
	}
	return store
}

func serve(h http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestMiddleware(t *testing.T) {
	var got *Session
	h := Middleware(newStore())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = FromContext(r.Context())
	}))

	t.Run("valid token", func(t *testing.T) {
		got = nil
		rr := serve(h, "good")
		assert.Equal(t, http.StatusOK, rr.Code)
		require.NotNil(t, got)
		assert.Equal(t, "u1", got.User.ID)
		role, ok := got.Role("sharks")
		assert.True(t, ok)
		assert.Equal(t, team.RoleAdmin, role)
	})

	t.Run("anonymous", func(t *testing.T) {
		got = nil
		rr := serve(h, "")
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Nil(t, got)
	})

	t.Run("unknown token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, serve(h, "bad").Code)
	})

	t.Run("store failure", func(t *testing.T) {
		assert.Equal(t, http.StatusInternalServerError, serve(h, "broken").Code)
	})
}

func TestRequireSession(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	h := Middleware(newStore())(RequireSession(ok))

	assert.Equal(t, http.StatusUnauthorized, serve(h, "").Code)
	assert.Equal(t, http.StatusOK, serve(h, "good").Code)
}

func TestRequireTeam(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	slugOf := func(slug string) func(*http.Request) string {
		return func(*http.Request) string { return slug }
	}

	tests := []struct {
		name     string
		slug     string
		required team.Role
		token    string
		want     int
	}{
		{"anonymous", "sharks", team.RoleMember, "", http.StatusUnauthorized},
		{"member of team", "eagles", team.RoleMember, "good", http.StatusOK},
		{"admin required but member", "eagles", team.RoleAdmin, "good", http.StatusForbidden},
		{"admin", "sharks", team.RoleAdmin, "good", http.StatusOK},
		{"not in team", "owls", team.RoleMember, "good", http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := Middleware(newStore())(RequireTeam(tt.required, slugOf(tt.slug))(ok))
			assert.Equal(t, tt.want, serve(h, tt.token).Code)
		})
	}
}
