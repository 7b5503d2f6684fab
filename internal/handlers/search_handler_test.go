package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tamirciBul/internal/finder"
	"tamirciBul/internal/models"
)

type testLogger struct{}

func (testLogger) Infof(format string, args ...interface{})  {}
func (testLogger) Errorf(format string, args ...interface{}) {}

type stubDirectory struct {
	page models.ResultPage
	err  error
}

func (s *stubDirectory) Search(ctx context.Context, q models.SearchQuery) (models.ResultPage, error) {
	if s.err != nil {
		return models.ResultPage{}, s.err
	}
	return s.page, nil
}

func newTestFinder(dir finder.Directory) *finder.Orchestrator {
	return finder.New(dir, nil, testLogger{}, finder.Config{
		DefaultCenter:   models.GeoPoint{Latitude: 41.0082, Longitude: 28.9784},
		DefaultRadiusKm: 25,
		PageSize:        20,
	})
}

func record(id, name string) models.ServiceRecord {
	return models.ServiceRecord{ID: id, Category: models.CategoryPlumbing, DisplayName: name}
}

func TestUpdateFiltersReturnsSnapshot(t *testing.T) {
	dir := &stubDirectory{page: models.ResultPage{
		Items:       []models.ServiceRecord{record("1", "Usta Tesisat"), record("2", "Kadikoy Su")},
		CurrentPage: 1,
		LastPage:    1,
		Total:       2,
	}}
	h := &SearchHandler{Finder: newTestFinder(dir)}

	body := strings.NewReader(`{"category":"plumbing","radius_km":25}`)
	req := httptest.NewRequest(http.MethodPost, "/search/filters", body)
	rr := httptest.NewRecorder()
	h.UpdateFilters(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body %s", rr.Code, http.StatusOK, rr.Body.String())
	}
	var resp searchResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Items) != 2 || resp.Total != 2 {
		t.Fatalf("unexpected snapshot: %+v", resp)
	}
	if resp.HasMore {
		t.Fatalf("single page must report has_more=false")
	}
	if resp.Filters.Category != models.CategoryPlumbing {
		t.Fatalf("filters not echoed: %+v", resp.Filters)
	}
}

func TestUpdateFiltersRejectsBadCategory(t *testing.T) {
	h := &SearchHandler{Finder: newTestFinder(&stubDirectory{})}

	body := strings.NewReader(`{"category":"carpets","radius_km":5}`)
	req := httptest.NewRequest(http.MethodPost, "/search/filters", body)
	rr := httptest.NewRecorder()
	h.UpdateFilters(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestUpdateFiltersFetchFailureIsBadGateway(t *testing.T) {
	h := &SearchHandler{Finder: newTestFinder(&stubDirectory{err: models.ErrFetchFailed})}

	body := strings.NewReader(`{"category":"plumbing","radius_km":5}`)
	req := httptest.NewRequest(http.MethodPost, "/search/filters", body)
	rr := httptest.NewRecorder()
	h.UpdateFilters(rr, req)

	if rr.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadGateway)
	}
}

func TestUpdateLocationInvalidCoordinate(t *testing.T) {
	h := &SearchHandler{Finder: newTestFinder(&stubDirectory{})}

	body := strings.NewReader(`{"latitude":200,"longitude":29}`)
	req := httptest.NewRequest(http.MethodPost, "/location", body)
	rr := httptest.NewRecorder()
	h.UpdateLocation(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestGetResultsEmptyStart(t *testing.T) {
	h := &SearchHandler{Finder: newTestFinder(&stubDirectory{})}

	req := httptest.NewRequest(http.MethodGet, "/search", nil)
	rr := httptest.NewRecorder()
	h.GetResults(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	var resp searchResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Items) != 0 || resp.Loading {
		t.Fatalf("fresh finder must be idle and empty: %+v", resp)
	}
}
