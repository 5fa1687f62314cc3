package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/leesummerdesigns/swissconnection/internal/models"
)

type stubDiscovery struct {
	results []models.ProviderSearchResult
	query   models.SearchQuery
	err     error
}

func (s *stubDiscovery) Search(
	_ context.Context,
	query models.SearchQuery,
) ([]models.ProviderSearchResult, error) {
	s.query = query
	if s.err != nil {
		return nil, s.err
	}
	return s.results, nil
}

func newSearchApp(discovery *stubDiscovery) *fiber.App {
	app := fiber.New()
	app.Get("/api/search", NewSearchHandler(discovery).SearchProviders)
	return app
}

func TestSearchProvidersPassesFilters(t *testing.T) {
	discovery := &stubDiscovery{
		results: []models.ProviderSearchResult{{
			ID:          "7",
			Name:        "Olena",
			City:        "Zürich",
			Services:    []models.ServiceRef{{Name: "Haircuts"}},
			Rating:      4.5,
			ReviewCount: 2,
			Photos:      []string{},
		}},
	}
	app := newSearchApp(discovery)

	req := httptest.NewRequest(http.MethodGet,
		"/api/search?service=haircuts&location=Z%C3%BCrich&sort=rating&min_rating=4&radius=10&lat=47.3769&lng=8.5417", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	query := discovery.query
	if query.Service != "haircuts" || query.Location != "Zürich" || query.Sort != "rating" {
		t.Fatalf("unexpected query: %+v", query)
	}
	if query.MinRating == nil || *query.MinRating != 4 {
		t.Fatalf("expected min rating 4, got %+v", query.MinRating)
	}
	if query.RadiusKm == nil || *query.RadiusKm != 10 {
		t.Fatalf("expected radius 10, got %+v", query.RadiusKm)
	}
	if query.Lat == nil || *query.Lat != 47.3769 || query.Lng == nil || *query.Lng != 8.5417 {
		t.Fatalf("expected caller center passed through, got lat=%v lng=%v", query.Lat, query.Lng)
	}

	var body struct {
		Providers []models.ProviderSearchResult `json:"providers"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(body.Providers) != 1 || body.Providers[0].ID != "7" {
		t.Fatalf("unexpected providers response: %+v", body.Providers)
	}
}

func TestSearchProvidersDropsUnparseableFilters(t *testing.T) {
	discovery := &stubDiscovery{}
	app := newSearchApp(discovery)

	req := httptest.NewRequest(http.MethodGet,
		"/api/search?min_rating=banana&radius=wide&lat=47.0", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 despite bad filters, got %d", resp.StatusCode)
	}
	if discovery.query.MinRating != nil || discovery.query.RadiusKm != nil {
		t.Fatalf("expected unparseable filters dropped, got %+v", discovery.query)
	}
	// A lone lat without lng must not become a center.
	if discovery.query.Lat != nil {
		t.Fatalf("expected lat ignored without lng, got %v", discovery.query.Lat)
	}
}

func TestSearchProvidersFailsOpenOnStoreError(t *testing.T) {
	discovery := &stubDiscovery{err: errors.New("connection refused")}
	app := newSearchApp(discovery)

	req := httptest.NewRequest(http.MethodGet, "/api/search", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}

	var body struct {
		Providers []models.ProviderSearchResult `json:"providers"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if body.Providers == nil || len(body.Providers) != 0 {
		t.Fatalf("expected an empty provider list in the error body, got %+v", body.Providers)
	}
}

func TestSearchProvidersEmptyMatchIsSuccess(t *testing.T) {
	app := newSearchApp(&stubDiscovery{results: []models.ProviderSearchResult{}})

	req := httptest.NewRequest(http.MethodGet, "/api/search?service=unicorn-grooming", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for zero matches, got %d", resp.StatusCode)
	}
}
