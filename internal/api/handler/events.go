package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/plinkolabs/plinko/internal/events"
)

const (
	// Time between keepalive comments on the event stream
	pingPeriod = 30 * time.Second
)

// EventsHandler streams ledger events over SSE
type EventsHandler struct {
	bus *events.Bus
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(bus *events.Bus) *EventsHandler {
	return &EventsHandler{bus: bus}
}

// Stream handles GET /api/v1/events
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering

	backlog, ch, cancel := h.bus.Subscribe()
	defer cancel()

	// Replay the retained history so a late subscriber catches up
	for _, evt := range backlog {
		if err := writeEvent(w, evt); err != nil {
			return
		}
	}
	flusher.Flush()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case evt, ok := <-ch:
			if !ok {
				return
			}
			if err := writeEvent(w, evt); err != nil {
				return
			}
			flusher.Flush()

		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": keepalive\n\n"); err != nil {
				return
			}
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}

func writeEvent(w http.ResponseWriter, evt any) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: ledger\ndata: %s\n\n", data)
	return err
}
