package http

import (
	"encoding/json"
	"net/http"

	"github.com/alexandrevicenzi/go-sse"
	"github.com/charmbracelet/log"
	"github.com/mauv0809/courtside/internal/tracker"
)

// Events streams tracker views to browsers over server-sent events. Each
// tracker session has its own channel.
type Events struct {
	server *sse.Server
}

// NewEvents creates the event stream server.
func NewEvents() *Events {
	return &Events{
		server: sse.NewServer(&sse.Options{
			Headers: map[string]string{
				"Access-Control-Allow-Origin": "*",
			},
			Logger: log.Default().StandardLog(),
		}),
	}
}

// Channel is the stream name of a tracker session.
func Channel(sessionID string) string {
	return "/events/tracker/" + sessionID
}

// Broadcast sends the view to every subscriber of the session.
func (e *Events) Broadcast(sessionID string, view tracker.View) {
	channel := Channel(sessionID)
	if !e.server.HasChannel(channel) {
		return
	}
	data, err := json.Marshal(view)
	if err != nil {
		log.Error("Failed to marshal tracker view", "error", err, "session", sessionID)
		return
	}
	e.server.SendMessage(channel, sse.SimpleMessage(string(data)))
}

// Close disconnects all subscribers of the session.
func (e *Events) Close(sessionID string) {
	e.server.CloseChannel(Channel(sessionID))
}

// ServeHTTP subscribes the client to the channel named by the request path.
func (e *Events) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	e.server.ServeHTTP(w, r)
}

// Shutdown disconnects every client.
func (e *Events) Shutdown() {
	e.server.Shutdown()
}
