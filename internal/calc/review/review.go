package review

import (
	"Sitewise/internal/repo"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	windzone "Sitewise/internal/calc/windzone"
)

type Handler struct {
	Repo repo.Repository
}

type CreateRequest struct {
	Label string         `json:"label"`
	Site  windzone.Input `json:"site"`
}

type CreateResponse struct {
	TicketID int           `json:"ticket_id"`
	Zone     windzone.Zone `json:"zone"`
}

// Create files an engineer-review ticket for a site. The site is
// re-classified server side; only SED sites are eligible.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(int)
	if !ok || userID == 0 {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if req.Label == "" {
		http.Error(w, "Site label required", http.StatusBadRequest)
		return
	}

	res := windzone.Classify(req.Site)
	if !res.RequiresEngineer {
		http.Error(w, "Engineer review applies to SED sites only", http.StatusBadRequest)
		return
	}

	site := fmt.Sprintf("%s (region=%s terrain=%s topo=%s shelter=%s lee=%t)",
		req.Label, req.Site.Region, req.Site.Terrain, req.Site.Topography, req.Site.Shelter, req.Site.LeeZone)
	id, err := h.Repo.CreateReviewTicket(r.Context(), userID, site, string(res.Zone))
	if err != nil {
		log.Printf("CreateReviewTicket Error: %v", err)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(CreateResponse{TicketID: id, Zone: res.Zone})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(int)
	if !ok || userID == 0 {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	tickets, err := h.Repo.ListReviewTickets(r.Context(), userID)
	if err != nil {
		log.Printf("ListReviewTickets Error: %v", err)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	if tickets == nil {
		tickets = []repo.ReviewTicket{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(tickets)
}
