package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/leesummerdesigns/swissconnection/internal/models"
	"github.com/leesummerdesigns/swissconnection/internal/services"
)

type stubReviewService struct {
	review     *models.Review
	reviews    []models.ReviewWithReviewer
	canReview  bool
	err        error
	providerID int64
	rating     int
	text       string
}

func (s *stubReviewService) CreateReview(
	_ context.Context,
	_ int64,
	providerID int64,
	rating int,
	text string,
) (*models.Review, error) {
	s.providerID = providerID
	s.rating = rating
	s.text = text
	if s.err != nil {
		return nil, s.err
	}
	return s.review, nil
}

func (s *stubReviewService) CanReview(_ context.Context, _ int64, _ int64) (bool, error) {
	return s.canReview, s.err
}

func (s *stubReviewService) ListForProvider(
	_ context.Context,
	_ int64,
) ([]models.ReviewWithReviewer, error) {
	return s.reviews, s.err
}

func newReviewApp(service *stubReviewService) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", "1")
		c.Locals("role", "user")
		return c.Next()
	})
	handler := NewReviewHandler(service)
	app.Post("/api/v1/providers/:id/reviews", handler.CreateReview)
	app.Get("/api/v1/providers/:id/reviews/eligibility", handler.CanReview)
	app.Get("/api/providers/:id/reviews", handler.ListReviews)
	return app
}

func TestCreateReviewReturnsCreated(t *testing.T) {
	service := &stubReviewService{
		review: &models.Review{ID: 9, ReviewerID: 1, ProviderID: 2, Rating: 5, Text: "Excellent service"},
	}
	app := newReviewApp(service)

	payload := `{"rating": 5, "text": "Excellent service"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/providers/2/reviews", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if service.providerID != 2 || service.rating != 5 {
		t.Fatalf("unexpected service call: provider=%d rating=%d", service.providerID, service.rating)
	}
}

func TestCreateReviewWithoutExchangeIsForbidden(t *testing.T) {
	service := &stubReviewService{err: services.ErrNotMessaged}
	app := newReviewApp(service)

	payload := `{"rating": 4, "text": "Great work around the house"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/providers/2/reviews", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
}

func TestCanReviewReportsEligibility(t *testing.T) {
	app := newReviewApp(&stubReviewService{canReview: true})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/providers/2/reviews/eligibility", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		CanReview bool `json:"can_review"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !body.CanReview {
		t.Fatal("expected can_review true")
	}
}

func TestListReviewsDefaultsToEmptyList(t *testing.T) {
	app := newReviewApp(&stubReviewService{})

	req := httptest.NewRequest(http.MethodGet, "/api/providers/2/reviews", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Reviews []models.ReviewWithReviewer `json:"reviews"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if body.Reviews == nil {
		t.Fatal("expected reviews to be an empty list, not null")
	}
}
