package telemetry

import (
	"Sitewise/internal/repo"
	"encoding/json"
	"log"
	"net/http"
	"time"
)

type Handler struct {
	Repo repo.Repository
}

type EventBatch struct {
	Events []ClientEvent `json:"events"`
}

type ClientEvent struct {
	Name       string          `json:"name"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}

const maxBatchSize = 100

// Ingest accepts a batch of client events and stores them. Events with no
// timestamp get stamped on arrival.
func (h *Handler) Ingest(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(int)
	if !ok || userID == 0 {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var batch EventBatch
	if err := json.NewDecoder(r.Body).Decode(&batch); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if len(batch.Events) == 0 || len(batch.Events) > maxBatchSize {
		http.Error(w, "Batch must contain 1-100 events", http.StatusBadRequest)
		return
	}

	events := make([]repo.Event, 0, len(batch.Events))
	for _, e := range batch.Events {
		if e.Name == "" {
			continue
		}
		if e.OccurredAt.IsZero() {
			e.OccurredAt = time.Now()
		}
		events = append(events, repo.Event{Name: e.Name, Payload: string(e.Payload), OccurredAt: e.OccurredAt})
	}
	if len(events) == 0 {
		http.Error(w, "No valid events", http.StatusBadRequest)
		return
	}

	if err := h.Repo.InsertEvents(r.Context(), userID, events); err != nil {
		log.Printf("InsertEvents Error: %v", err)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusAccepted)
}
