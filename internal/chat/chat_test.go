package chat

import (
	"Sitewise/internal/assistant"
	"Sitewise/internal/repo"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	repo.Repository

	sessions map[int][]repo.Message
	nextID   int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{sessions: make(map[int][]repo.Message), nextID: 1}
}

func (f *fakeRepo) CreateSession(ctx context.Context, userID int, title string) (int, error) {
	id := f.nextID
	f.nextID++
	f.sessions[id] = nil
	return id, nil
}

func (f *fakeRepo) ListSessions(ctx context.Context, userID int) ([]repo.Session, error) {
	var out []repo.Session
	for id := range f.sessions {
		out = append(out, repo.Session{ID: id, Title: "t", CreatedAt: time.Now()})
	}
	return out, nil
}

func (f *fakeRepo) AppendMessage(ctx context.Context, sessionID int, role, content, citations string) (int, error) {
	m := repo.Message{ID: len(f.sessions[sessionID]) + 1, SessionID: sessionID, Role: role, Content: content, Citations: citations}
	f.sessions[sessionID] = append(f.sessions[sessionID], m)
	return m.ID, nil
}

func (f *fakeRepo) GetTranscript(ctx context.Context, sessionID, userID int) ([]repo.Message, error) {
	return f.sessions[sessionID], nil
}

type fakeAssistant struct {
	lastReq assistant.ChatRequest
	resp    assistant.ChatResponse
}

func (f *fakeAssistant) Send(ctx context.Context, req assistant.ChatRequest) (assistant.ChatResponse, error) {
	f.lastReq = req
	return f.resp, nil
}

func asUser(userID int, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), "userID", userID)))
	})
}

func newTestServer(h *Handler) *httptest.Server {
	r := mux.NewRouter()
	r.HandleFunc("/chat/sessions", h.CreateSession).Methods("POST")
	r.HandleFunc("/chat/sessions", h.ListSessions).Methods("GET")
	r.HandleFunc("/chat/sessions/{id:[0-9]+}", h.GetTranscript).Methods("GET")
	r.HandleFunc("/chat/sessions/{id:[0-9]+}/messages", h.Send).Methods("POST")
	return httptest.NewServer(asUser(7, r))
}

func TestSendStoresBothSidesOfTranscript(t *testing.T) {
	fr := newFakeRepo()
	fa := &fakeAssistant{resp: assistant.ChatResponse{
		Success:   true,
		Reply:     "Use H1.2 treated timber for enclosed framing.",
		Citations: []assistant.Citation{{Code: "NZS3602-1"}},
	}}
	srv := newTestServer(&Handler{Repo: fr, Assistant: fa})
	defer srv.Close()

	res, err := http.Post(srv.URL+"/chat/sessions", "application/json", bytes.NewBufferString(`{"title":"timber"}`))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, res.StatusCode)
	var created CreateSessionResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&created))

	body := bytes.NewBufferString(`{"content":"What timber treatment do I need?"}`)
	res, err = http.Post(srv.URL+"/chat/sessions/1/messages", "application/json", body)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var sent SendResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&sent))
	assert.Contains(t, sent.Reply, "H1.2")
	require.Len(t, sent.Citations, 1)

	msgs := fr.sessions[created.ID]
	require.Len(t, msgs, 2)
	assert.Equal(t, "user", msgs[0].Role)
	assert.Equal(t, "assistant", msgs[1].Role)
	assert.Contains(t, msgs[1].Citations, "NZS3602-1")

	// The forwarded request carries the user turn.
	require.Len(t, fa.lastReq.Messages, 1)
	assert.Equal(t, "What timber treatment do I need?", fa.lastReq.Messages[0].Content)
}

func TestSendForwardsHistory(t *testing.T) {
	fr := newFakeRepo()
	fr.sessions[1] = []repo.Message{
		{Role: "user", Content: "first question"},
		{Role: "assistant", Content: "first answer"},
	}
	fr.nextID = 2
	fa := &fakeAssistant{resp: assistant.ChatResponse{Success: true, Reply: "ok"}}
	srv := newTestServer(&Handler{Repo: fr, Assistant: fa})
	defer srv.Close()

	res, err := http.Post(srv.URL+"/chat/sessions/1/messages", "application/json",
		bytes.NewBufferString(`{"content":"follow-up"}`))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.StatusCode)

	require.Len(t, fa.lastReq.Messages, 3)
	assert.Equal(t, "first question", fa.lastReq.Messages[0].Content)
	assert.Equal(t, "follow-up", fa.lastReq.Messages[2].Content)
}

func TestSendRejectsEmptyContent(t *testing.T) {
	srv := newTestServer(&Handler{Repo: newFakeRepo(), Assistant: &fakeAssistant{}})
	defer srv.Close()

	res, err := http.Post(srv.URL+"/chat/sessions/1/messages", "application/json",
		bytes.NewBufferString(`{"content":""}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}
