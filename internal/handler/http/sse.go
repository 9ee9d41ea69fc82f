package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sabigold/presence-backend-go/internal/pkg/sse"
)

// SSEHandler streams store-change hints to the dashboard and kiosk.
type SSEHandler interface {
	Stream(w http.ResponseWriter, r *http.Request)
}

type sseHandlerImpl struct {
	hub *sse.Hub
}

func NewSSEHandler(hub *sse.Hub) SSEHandler {
	return &sseHandlerImpl{hub: hub}
}

var validTopics = map[string]bool{
	sse.TopicAttendance:    true,
	sse.TopicLeaveRequests: true,
	sse.TopicNotifications: true,
}

// Stream subscribes the caller to one topic. Events are re-query hints;
// the client reloads the relevant listing when one arrives.
func (h *sseHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	topic := r.URL.Query().Get("topic")
	if !validTopics[topic] {
		http.Error(w, "Unknown topic", http.StatusBadRequest)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.hub.Subscribe(topic)
	defer cleanup()

	fmt.Fprintf(w, "event: connected\ndata: {\"topic\":%q}\n\n", topic)
	flusher.Flush()

	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Topic, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
