package review

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

	created []repo.ReviewTicket
}

func (f *fakeRepo) CreateReviewTicket(ctx context.Context, userID int, site, zone string) (int, error) {
	f.created = append(f.created, repo.ReviewTicket{ID: len(f.created) + 1, UserID: userID, Site: site, Zone: zone, Status: "pending"})
	return len(f.created), nil
}

func (f *fakeRepo) ListReviewTickets(ctx context.Context, userID int) ([]repo.ReviewTicket, error) {
	return f.created, nil
}

func post(t *testing.T, fr *fakeRepo, body string) *httptest.ResponseRecorder {
	t.Helper()
	h := &Handler{Repo: fr}
	req := httptest.NewRequest("POST", "/tools/windzone/review", bytes.NewBufferString(body))
	req = req.WithContext(context.WithValue(req.Context(), "userID", 5))
	w := httptest.NewRecorder()
	h.Create(w, req)
	return w
}

func TestCreateForSEDSite(t *testing.T) {
	fr := &fakeRepo{}
	w := post(t, fr, `{"label":"Lot 4","site":{"region":"A","terrain":"urban","topography":"steep","shelter":"exposed"}}`)
	require.Equal(t, 201, w.Code)
	require.Len(t, fr.created, 1)
	assert.Equal(t, 5, fr.created[0].UserID)
	assert.Equal(t, "SED", fr.created[0].Zone)
	assert.Contains(t, fr.created[0].Site, "Lot 4")
}

func TestCreateRejectsNonSEDSite(t *testing.T) {
	fr := &fakeRepo{}
	w := post(t, fr, `{"label":"Lot 4","site":{"region":"A","terrain":"urban","topography":"flat","shelter":"sheltered"}}`)
	assert.Equal(t, 400, w.Code)
	assert.Empty(t, fr.created)
}

func TestCreateRequiresLabel(t *testing.T) {
	w := post(t, &fakeRepo{}, `{"site":{"region":"Z","topography":"steep"}}`)
	assert.Equal(t, 400, w.Code)
}
