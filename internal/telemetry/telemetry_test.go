package telemetry

import (
	"Sitewise/internal/repo"
	"bytes"
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	repo.Repository

	userID int
	events []repo.Event
}

func (f *fakeRepo) InsertEvents(ctx context.Context, userID int, events []repo.Event) error {
	f.userID = userID
	f.events = append(f.events, events...)
	return nil
}

func ingest(t *testing.T, fr *fakeRepo, body string) *httptest.ResponseRecorder {
	t.Helper()
	h := &Handler{Repo: fr}
	req := httptest.NewRequest("POST", "/telemetry/events", bytes.NewBufferString(body))
	req = req.WithContext(context.WithValue(req.Context(), "userID", 3))
	w := httptest.NewRecorder()
	h.Ingest(w, req)
	return w
}

func TestIngest(t *testing.T) {
	fr := &fakeRepo{}
	w := ingest(t, fr, `{"events":[
		{"name":"wizard_opened"},
		{"name":"wizard_completed","payload":{"zone":"SED"},"occurred_at":"2026-08-30T10:00:00Z"}
	]}`)
	require.Equal(t, 202, w.Code)
	require.Len(t, fr.events, 2)
	assert.Equal(t, 3, fr.userID)
	assert.Equal(t, "wizard_opened", fr.events[0].Name)
	assert.False(t, fr.events[0].OccurredAt.IsZero())
	assert.Contains(t, fr.events[1].Payload, "SED")
}

func TestIngestSkipsUnnamedEvents(t *testing.T) {
	fr := &fakeRepo{}
	w := ingest(t, fr, `{"events":[{"name":""},{"name":"tab_changed"}]}`)
	require.Equal(t, 202, w.Code)
	require.Len(t, fr.events, 1)
	assert.Equal(t, "tab_changed", fr.events[0].Name)
}

func TestIngestEmptyBatch(t *testing.T) {
	w := ingest(t, &fakeRepo{}, `{"events":[]}`)
	assert.Equal(t, 400, w.Code)
}
