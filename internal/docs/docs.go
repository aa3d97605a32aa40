package docs

import (
	"encoding/json"
	"io/fs"
	"net/http"
	"os"
	"strings"
)

// Citation codes used by the assistant map onto documents served under
// /docs/. Unknown codes resolve to the document index.
var citationPaths = map[string]string{
	"NZS3604":   "nzs3604/index.html",
	"NZS3604-5": "nzs3604/section-5-bracing.html",
	"NZS3604-8": "nzs3604/section-8-walls.html",
	"NZS3602-1": "nzs3602/section-1-timber-treatment.html",
	"B1":        "building-code/b1-structure.html",
	"E2":        "building-code/e2-external-moisture.html",
}

type Handler struct {
	Root string
}

type Doc struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

type ResolveResponse struct {
	Code string `json:"code"`
	URL  string `json:"url"`
}

func (h *Handler) root() string {
	if h.Root == "" {
		return "./docs"
	}
	return h.Root
}

// Resolve maps a citation code from an assistant reply to the URL of the
// served document.
func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	code := strings.TrimSpace(r.URL.Query().Get("code"))
	if code == "" {
		http.Error(w, "code parameter required", http.StatusBadRequest)
		return
	}

	path, ok := citationPaths[code]
	if !ok {
		// Section suffixes fall back to the parent document.
		if i := strings.Index(code, "-"); i > 0 {
			path, ok = citationPaths[code[:i]]
		}
	}
	if !ok {
		path = "index.html"
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ResolveResponse{Code: code, URL: "/docs/" + path})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var docs []Doc
	fs.WalkDir(os.DirFS(h.root()), ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		docs = append(docs, Doc{Name: d.Name(), Path: path})
		return nil
	})
	if docs == nil {
		docs = []Doc{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(docs)
}
