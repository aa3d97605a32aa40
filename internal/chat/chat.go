package chat

import (
	"Sitewise/internal/assistant"
	"Sitewise/internal/repo"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// Assistant is the slice of the remote chat API the handlers need.
type Assistant interface {
	Send(ctx context.Context, req assistant.ChatRequest) (assistant.ChatResponse, error)
}

type Handler struct {
	Repo      repo.Repository
	Assistant Assistant
}

type CreateSessionRequest struct {
	Title string `json:"title"`
}

type CreateSessionResponse struct {
	ID int `json:"id"`
}

type SendRequest struct {
	Content string `json:"content"`
}

type SendResponse struct {
	Reply     string               `json:"reply"`
	Citations []assistant.Citation `json:"citations,omitempty"`
}

func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(int)
	if !ok || userID == 0 {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if req.Title == "" {
		req.Title = "New conversation"
	}

	id, err := h.Repo.CreateSession(r.Context(), userID, req.Title)
	if err != nil {
		log.Printf("CreateSession Error: %v", err)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(CreateSessionResponse{ID: id})
}

func (h *Handler) ListSessions(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(int)
	if !ok || userID == 0 {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	sessions, err := h.Repo.ListSessions(r.Context(), userID)
	if err != nil {
		log.Printf("ListSessions Error: %v", err)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	if sessions == nil {
		sessions = []repo.Session{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sessions)
}

func (h *Handler) GetTranscript(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(int)
	if !ok || userID == 0 {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	sessionID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid session id", http.StatusBadRequest)
		return
	}

	msgs, err := h.Repo.GetTranscript(r.Context(), sessionID, userID)
	if err != nil {
		log.Printf("GetTranscript Error: %v", err)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	if msgs == nil {
		msgs = []repo.Message{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(msgs)
}

// Send appends the user message to the transcript, forwards the whole
// conversation to the assistant and stores the reply before returning it.
func (h *Handler) Send(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(int)
	if !ok || userID == 0 {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	sessionID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid session id", http.StatusBadRequest)
		return
	}

	var req SendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Content == "" {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	history, err := h.Repo.GetTranscript(r.Context(), sessionID, userID)
	if err != nil {
		log.Printf("GetTranscript Error: %v", err)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}

	if _, err := h.Repo.AppendMessage(r.Context(), sessionID, "user", req.Content, ""); err != nil {
		log.Printf("AppendMessage Error: %v", err)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}

	chatReq := assistant.ChatRequest{SessionID: strconv.Itoa(sessionID)}
	for _, m := range history {
		chatReq.Messages = append(chatReq.Messages, assistant.Message{Role: m.Role, Content: m.Content})
	}
	chatReq.Messages = append(chatReq.Messages, assistant.Message{Role: "user", Content: req.Content})

	resp, err := h.Assistant.Send(r.Context(), chatReq)
	if err != nil {
		log.Printf("Assistant Error: %v", err)
		http.Error(w, "Assistant unavailable", http.StatusBadGateway)
		return
	}

	citations := ""
	if len(resp.Citations) > 0 {
		b, _ := json.Marshal(resp.Citations)
		citations = string(b)
	}
	if _, err := h.Repo.AppendMessage(r.Context(), sessionID, "assistant", resp.Reply, citations); err != nil {
		log.Printf("AppendMessage Error: %v", err)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SendResponse{Reply: resp.Reply, Citations: resp.Citations})
}
