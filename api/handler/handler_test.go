package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/leadgen/export"
	"github.com/use-agent/leadgen/models"
	"github.com/use-agent/leadgen/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeScraper returns canned leads without a browser.
type fakeScraper struct {
	leads []models.Lead
	err   error
}

func (f *fakeScraper) ScrapeBusinesses(_ context.Context, _, _ string, _ int) ([]models.Lead, error) {
	return f.leads, f.err
}

func (f *fakeScraper) GetBusinessDetails(_ context.Context, _ string) (map[string]string, error) {
	return map[string]string{"hours": "Mon-Fri 9-5"}, f.err
}

// fakeEnricher stamps a fixed email on every lead with a website.
type fakeEnricher struct {
	err error
}

func (f *fakeEnricher) EnrichLeads(_ context.Context, leads []models.Lead, _ string) ([]models.Lead, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.Lead, len(leads))
	copy(out, leads)
	for i := range out {
		if out[i].Website != "" {
			out[i].Email = "found@" + out[i].Website
		}
	}
	return out, nil
}

// doJSON mounts h at route (a gin pattern, e.g. "/leads/:id") and performs
// one JSON request against path.
func doJSON(t *testing.T, h gin.HandlerFunc, method, route, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	r := gin.New()
	switch method {
	case http.MethodPost:
		r.POST(route, h)
	case http.MethodGet:
		r.GET(route, h)
	case http.MethodDelete:
		r.DELETE(route, h)
	}

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestScrape(t *testing.T) {
	st := store.New()
	sc := &fakeScraper{leads: []models.Lead{{Name: "Joe's Diner"}, {Name: "Cafe Blue"}}}

	w := doJSON(t, Scrape(sc, st), http.MethodPost, "/scrape", "/scrape", models.ScrapeRequest{
		Query:    "diners",
		Location: "New York, NY",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp models.ScrapeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.TotalFound != 2 || resp.Status != "success" {
		t.Errorf("resp = %+v", resp)
	}
	if _, ok := st.Get(resp.ScrapeID); !ok {
		t.Error("batch was not stored under the returned scrape_id")
	}
}

func TestScrape_MissingFields(t *testing.T) {
	w := doJSON(t, Scrape(&fakeScraper{}, store.New()), http.MethodPost, "/scrape", "/scrape",
		map[string]string{"query": "diners"}) // no location

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestScrape_ZeroMaxResults(t *testing.T) {
	// An explicit 0 is invalid input, not a request for the default.
	w := doJSON(t, Scrape(&fakeScraper{}, store.New()), http.MethodPost, "/scrape", "/scrape",
		map[string]any{"query": "diners", "location": "NYC", "max_results": 0})

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestScrape_ScraperError(t *testing.T) {
	sc := &fakeScraper{err: errors.New("browser exploded")}
	w := doJSON(t, Scrape(sc, store.New()), http.MethodPost, "/scrape", "/scrape", models.ScrapeRequest{
		Query:    "diners",
		Location: "NYC",
	})

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}

func TestEnrich(t *testing.T) {
	st := store.New()
	id := st.Put([]models.Lead{
		{Name: "Joe's Diner", Website: "joesdiner.org"},
		{Name: "No Website Bar"},
	})

	w := doJSON(t, Enrich(&fakeEnricher{}, st), http.MethodPost, "/enrich", "/enrich", models.EnrichmentRequest{
		ScrapeID:     id,
		HunterAPIKey: "test-key",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp models.EnrichmentResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.EnrichmentCount != 1 {
		t.Errorf("EnrichmentCount = %d, want 1", resp.EnrichmentCount)
	}

	// Storage must hold the enriched batch.
	stored, _ := st.Get(id)
	if stored[0].Email == "" {
		t.Error("stored batch was not updated with enriched leads")
	}
}

// vanishingStore drops its batch between read and write, as a concurrent
// DELETE /leads/{id} would.
type vanishingStore struct {
	*store.Store
}

func (s *vanishingStore) Get(id string) ([]models.Lead, bool) {
	leads, ok := s.Store.Get(id)
	s.Store.Delete(id)
	return leads, ok
}

func TestEnrich_BatchDeletedMidFlight(t *testing.T) {
	st := store.New()
	id := st.Put([]models.Lead{{Name: "Joe's Diner", Website: "joesdiner.org"}})

	w := doJSON(t, Enrich(&fakeEnricher{}, &vanishingStore{Store: st}), http.MethodPost, "/enrich", "/enrich",
		models.EnrichmentRequest{ScrapeID: id, HunterAPIKey: "test-key"})

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
	if _, ok := st.Get(id); ok {
		t.Error("deleted batch reappeared after enrichment")
	}
}

func TestEnrich_UnknownScrapeID(t *testing.T) {
	w := doJSON(t, Enrich(&fakeEnricher{}, store.New()), http.MethodPost, "/enrich", "/enrich", models.EnrichmentRequest{
		ScrapeID:     "missing",
		HunterAPIKey: "test-key",
	})

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestExport_CSV(t *testing.T) {
	st := store.New()
	id := st.Put([]models.Lead{{Name: "Joe's Diner", Email: "x@y.org"}})

	ex, err := export.NewManager(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	w := doJSON(t, Export(ex, st), http.MethodPost, "/export", "/export", models.ExportRequest{
		ScrapeID: id,
		Format:   "csv",
		Filename: "out.csv",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp models.ExportResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.FilePath == "" || resp.Summary == nil {
		t.Errorf("resp = %+v, want file path and summary", resp)
	}
	if resp.Summary.LeadsWithEmail != 1 {
		t.Errorf("summary email count = %d, want 1", resp.Summary.LeadsWithEmail)
	}
}

func TestExport_SheetsRequiresURL(t *testing.T) {
	st := store.New()
	id := st.Put(nil)
	ex, _ := export.NewManager(t.TempDir())

	w := doJSON(t, Export(ex, st), http.MethodPost, "/export", "/export", models.ExportRequest{
		ScrapeID: id,
		Format:   "sheets",
	})

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestExport_BadFormat(t *testing.T) {
	ex, _ := export.NewManager(t.TempDir())
	w := doJSON(t, Export(ex, store.New()), http.MethodPost, "/export", "/export", map[string]string{
		"scrape_id": "x",
		"format":    "xlsx",
	})

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestGetLeads(t *testing.T) {
	st := store.New()
	id := st.Put([]models.Lead{{Name: "Joe's Diner"}})

	w := doJSON(t, GetLeads(st), http.MethodGet, "/leads/:id", "/leads/"+id, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp models.LeadsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Total != 1 || resp.ScrapeID != id {
		t.Errorf("resp = %+v", resp)
	}
}

func TestGetLeads_NotFound(t *testing.T) {
	w := doJSON(t, GetLeads(store.New()), http.MethodGet, "/leads/:id", "/leads/missing", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestDeleteLeads(t *testing.T) {
	st := store.New()
	id := st.Put([]models.Lead{{Name: "Joe's Diner"}})

	w := doJSON(t, DeleteLeads(st), http.MethodDelete, "/leads/:id", "/leads/"+id, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if _, ok := st.Get(id); ok {
		t.Error("batch still present after delete")
	}

	w = doJSON(t, DeleteLeads(st), http.MethodDelete, "/leads/:id", "/leads/"+id, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", w.Code)
	}
}

func TestHealth(t *testing.T) {
	w := doJSON(t, Health(time.Now().Add(-3*time.Second)), http.MethodGet, "/health", "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp models.HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "healthy" || resp.Service != "leadgen" {
		t.Errorf("resp = %+v", resp)
	}
}

func TestPlaceDetails(t *testing.T) {
	w := doJSON(t, PlaceDetails(&fakeScraper{}), http.MethodGet, "/places/:place_id", "/places/Joes-Diner", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}
