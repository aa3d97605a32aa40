package docs

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolve(t *testing.T, code string) ResolveResponse {
	t.Helper()
	h := &Handler{}
	w := httptest.NewRecorder()
	h.Resolve(w, httptest.NewRequest("GET", "/docs/resolve?code="+code, nil))
	require.Equal(t, 200, w.Code)
	var resp ResolveResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestResolveKnownCitation(t *testing.T) {
	resp := resolve(t, "NZS3604-5")
	assert.Equal(t, "/docs/nzs3604/section-5-bracing.html", resp.URL)
}

func TestResolveSectionFallsBackToParent(t *testing.T) {
	resp := resolve(t, "NZS3604-99")
	assert.Equal(t, "/docs/nzs3604/index.html", resp.URL)
}

func TestResolveUnknownCitation(t *testing.T) {
	resp := resolve(t, "ASNZS1170")
	assert.Equal(t, "/docs/index.html", resp.URL)
}

func TestResolveMissingCode(t *testing.T) {
	h := &Handler{}
	w := httptest.NewRecorder()
	h.Resolve(w, httptest.NewRequest("GET", "/docs/resolve", nil))
	assert.Equal(t, 400, w.Code)
}
