package handlers

import (
	"context"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/leesummerdesigns/swissconnection/internal/models"
	"github.com/leesummerdesigns/swissconnection/internal/services"
)

type reviewApplicationService interface {
	CreateReview(ctx context.Context, reviewerID, providerID int64, rating int, text string) (*models.Review, error)
	CanReview(ctx context.Context, reviewerID, providerID int64) (bool, error)
	ListForProvider(ctx context.Context, providerID int64) ([]models.ReviewWithReviewer, error)
}

type ReviewHandler struct {
	service reviewApplicationService
}

func NewReviewHandler(service reviewApplicationService) *ReviewHandler {
	return &ReviewHandler{service: service}
}

type createReviewRequest struct {
	Rating int    `json:"rating"`
	Text   string `json:"text"`
}

func (h *ReviewHandler) CreateReview(c *fiber.Ctx) error {
	reviewerID, err := parseAuthUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	providerID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || providerID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid provider id"})
	}

	var req createReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	review, err := h.service.CreateReview(c.Context(), reviewerID, providerID, req.Rating, req.Text)
	if err != nil {
		return mapReviewError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"review": review})
}

func (h *ReviewHandler) ListReviews(c *fiber.Ctx) error {
	providerID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || providerID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid provider id"})
	}

	reviews, err := h.service.ListForProvider(c.Context(), providerID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to fetch reviews"})
	}
	if reviews == nil {
		reviews = []models.ReviewWithReviewer{}
	}
	return c.JSON(fiber.Map{"reviews": reviews})
}

// CanReview tells the client whether the review form should be offered.
func (h *ReviewHandler) CanReview(c *fiber.Ctx) error {
	reviewerID, err := parseAuthUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	providerID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || providerID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid provider id"})
	}

	canReview, err := h.service.CanReview(c.Context(), reviewerID, providerID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to check review eligibility"})
	}

	return c.JSON(fiber.Map{"can_review": canReview})
}

func mapReviewError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrNotMessaged):
		return c.Status(fiber.StatusForbidden).
			JSON(fiber.Map{"error": "Reviews require a prior message exchange with the provider"})
	case errors.Is(err, services.ErrProviderNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Provider not found"})
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	default:
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to create review"})
	}
}
