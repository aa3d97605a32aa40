package report

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	windzone "Sitewise/internal/calc/windzone"
	"github.com/phpdave11/gofpdf"
)

type Input struct {
	Project string         `json:"project"`
	Author  string         `json:"author"`
	Title   string         `json:"title"`
	Site    windzone.Input `json:"site"`
	Notes   string         `json:"notes"`
}

type Handler struct{}

// Generate renders a wind zone assessment as PDF. SED classifications get
// a prominent warning block since the prescriptive result is not usable
// on its own.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if input.Title == "" {
		input.Title = "Wind Zone Assessment"
	}

	res := windzone.Classify(input.Site)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, input.Title)
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Project: %s", input.Project))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Author: %s", input.Author))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", time.Now().Format("2006-01-02")))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Site")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Wind region: %s", input.Site.Region))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Terrain roughness: %s", input.Site.Terrain))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Topography: %s", input.Site.Topography))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Shelter: %s", input.Site.Shelter))
	pdf.Ln(6)
	lee := "no"
	if input.Site.LeeZone {
		lee = "yes"
	}
	pdf.Cell(0, 6, fmt.Sprintf("Lee zone: %s", lee))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, fmt.Sprintf("Wind zone: %s", res.Zone))
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, res.Notes, "", "L", false)
	pdf.Ln(4)

	if res.RequiresEngineer {
		pdf.SetTextColor(180, 0, 0)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.MultiCell(0, 6, "Specific engineering design required. This site exceeds the scope of the prescriptive wind zone tables; a qualified structural engineer must design the structure.", "", "L", false)
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(4)
	}

	if input.Notes != "" {
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, input.Notes, "", "L", false)
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"wind-zone-assessment.pdf\"")
	if err := pdf.Output(w); err != nil {
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
}
