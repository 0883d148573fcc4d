package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mauv0809/courtside/internal/team"
	"github.com/mauv0809/courtside/internal/volleyball"
)

type statisticsRow struct {
	volleyball.Record
	Derived volleyball.Derived `json:"derived"`
}

type statisticsResponse struct {
	team.Game
	Statistics []statisticsRow `json:"statistics"`
}

func newStatisticsResponse(g *team.GameWithRecords) statisticsResponse {
	rows := make([]statisticsRow, len(g.Records))
	for i, rec := range g.Records {
		rows[i] = statisticsRow{Record: rec, Derived: rec.Derive()}
	}
	return statisticsResponse{Game: g.Game, Statistics: rows}
}

// loadGame fetches the game named in the path and checks team access.
func loadGame(w http.ResponseWriter, r *http.Request, store team.TeamStore) (*team.GameWithRecords, bool) {
	game, err := store.GetGame(chi.URLParam(r, "game"))
	if err != nil {
		respondError(w, err, "Game not found")
		return nil, false
	}
	if !allowTeam(w, r, game.TeamSlug) {
		return nil, false
	}
	return game, true
}

// GetStatisticsHandler returns the box score of a game with derived figures.
func GetStatisticsHandler(store team.TeamStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		game, ok := loadGame(w, r, store)
		if !ok {
			return
		}
		respondJSON(w, http.StatusOK, newStatisticsResponse(game))
	}
}

type saveStatisticsRequest struct {
	Statistics []volleyball.Record `json:"statistics"`
}

// SaveStatisticsHandler stores an edited box score table.
func SaveStatisticsHandler(store team.TeamStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		game, ok := loadGame(w, r, store)
		if !ok {
			return
		}
		var req saveStatisticsRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if err := validateRecords(req.Statistics); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if err := store.SaveStatistics(game.ID, req.Statistics); err != nil {
			if errors.Is(err, team.ErrNotFound) {
				http.Error(w, "Statistics row does not belong to this game", http.StatusBadRequest)
				return
			}
			respondError(w, err, "Game not found")
			return
		}

		updated, err := store.GetGame(game.Slug)
		if err != nil {
			respondError(w, err, "Game not found")
			return
		}
		respondJSON(w, http.StatusOK, newStatisticsResponse(updated))
	}
}

func validateRecords(records []volleyball.Record) error {
	for _, rec := range records {
		if rec.ID == "" {
			return errors.New("statistics row without id")
		}
		for _, key := range volleyball.Keys() {
			if v, _ := rec.Get(key); v < 0 {
				return fmt.Errorf("%s of %s must not be negative", key, rec.ID)
			}
		}
	}
	return nil
}
