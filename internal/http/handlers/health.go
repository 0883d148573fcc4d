package handlers

import (
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/courtside/internal/metrics"
)

func HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

// UsageHandler reports the persisted usage counters.
func UsageHandler(usage metrics.UsageStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counters, err := usage.GetAll()
		if err != nil {
			log.Error("Failed to read usage counters", "error", err)
			http.Error(w, "Failed to read usage counters", http.StatusInternalServerError)
			return
		}
		respondJSON(w, http.StatusOK, counters)
	}
}
