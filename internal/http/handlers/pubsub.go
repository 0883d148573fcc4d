package handlers

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/courtside/internal/processor"
	"github.com/mauv0809/courtside/internal/pubsub"
)

// decodePush unwraps a Pub/Sub push request into v. It answers the request
// itself and returns false on failure.
func decodePush(w http.ResponseWriter, r *http.Request, pubsubClient pubsub.PubSubClient, v any) bool {
	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		log.Error("Failed to read request body", "error", err)
		http.Error(w, "Failed to read request body", http.StatusInternalServerError)
		return false
	}
	log.Debug("Received push message", "path", r.URL.Path, "body", string(bodyBytes))

	var pubsubMsg struct {
		Subscription string `json:"subscription"`
		Message      struct {
			Data string `json:"data"`
		} `json:"message"`
	}

	if err := json.Unmarshal(bodyBytes, &pubsubMsg); err != nil {
		log.Error("Failed to unmarshal wrapper JSON", "error", err)
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return false
	}

	rawData, err := base64.StdEncoding.DecodeString(pubsubMsg.Message.Data)
	if err != nil {
		log.Error("Failed to decode base64 data", "error", err)
		http.Error(w, "Invalid base64 data", http.StatusBadRequest)
		return false
	}
	if err := pubsubClient.ProcessMessage(rawData, v); err != nil {
		log.Error("Failed to decode message payload", "error", err, "subscription", pubsubMsg.Subscription)
		http.Error(w, "Invalid message payload", http.StatusBadRequest)
		return false
	}
	return true
}

func StatisticsSavedHandler(processor *processor.Processor, pubsubClient pubsub.PubSubClient) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var event pubsub.StatisticsSaved
		if !decodePush(w, r, pubsubClient, &event) {
			return
		}
		if err := processor.HandleStatisticsSaved(event, IsDryRunFromContext(r)); err != nil {
			log.Error("Failed to process statistics saved event", "error", err)
			http.Error(w, "Failed to process event", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}

func GameScoredHandler(processor *processor.Processor, pubsubClient pubsub.PubSubClient) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var event pubsub.GameScored
		if !decodePush(w, r, pubsubClient, &event) {
			return
		}
		if err := processor.HandleGameScored(event, IsDryRunFromContext(r)); err != nil {
			log.Error("Failed to process game scored event", "error", err)
			http.Error(w, "Failed to process event", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}
