package importer

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	windzone "Sitewise/internal/calc/windzone"
	"github.com/xuri/excelize/v2"
)

type Handler struct{}

type SiteRow struct {
	Label  string          `json:"label"`
	Result windzone.Result `json:"result"`
}

type SiteImportResult struct {
	Count   int       `json:"count"`
	Skipped int       `json:"skipped"`
	Sites   []SiteRow `json:"sites"`
}

// Sites classifies one site per workbook row. Rows that cannot be parsed
// are skipped and counted rather than failing the whole import.
func (h *Handler) Sites(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	f, err := excelize.OpenReader(file)
	if err != nil {
		http.Error(w, "Invalid file", http.StatusBadRequest)
		return
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil || len(rows) < 2 {
		http.Error(w, "Empty sheet", http.StatusBadRequest)
		return
	}

	out := SiteImportResult{Sites: []SiteRow{}}
	for i := 1; i < len(rows); i++ {
		label, input, err := parseSiteRow(rows[i])
		if err != nil {
			out.Skipped++
			continue
		}
		out.Sites = append(out.Sites, SiteRow{Label: label, Result: windzone.Classify(input)})
	}
	out.Count = len(out.Sites)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

func parseSiteRow(row []string) (string, windzone.Input, error) {
	// expected: label, region, terrain, topography, shelter, lee_zone(optional)
	if len(row) < 5 {
		return "", windzone.Input{}, fmt.Errorf("bad row")
	}
	label := strings.TrimSpace(row[0])
	region := strings.TrimSpace(row[1])
	terrain := strings.ToLower(strings.TrimSpace(row[2]))
	topo := strings.ToLower(strings.TrimSpace(row[3]))
	shelter := strings.ToLower(strings.TrimSpace(row[4]))
	if label == "" || region == "" || terrain == "" || topo == "" || shelter == "" {
		return "", windzone.Input{}, fmt.Errorf("bad row")
	}

	lee := false
	if len(row) > 5 {
		switch strings.ToLower(strings.TrimSpace(row[5])) {
		case "yes", "y", "true", "1":
			lee = true
		}
	}

	return label, windzone.Input{
		Region:     windzone.Region(strings.ToUpper(region)),
		Terrain:    windzone.Terrain(terrain),
		Topography: windzone.Topography(topo),
		Shelter:    windzone.Shelter(shelter),
		LeeZone:    lee,
	}, nil
}
