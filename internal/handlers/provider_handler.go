package handlers

import (
	"context"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/leesummerdesigns/swissconnection/internal/models"
	"github.com/leesummerdesigns/swissconnection/internal/repository"
	"github.com/leesummerdesigns/swissconnection/internal/services"
)

type providerApplicationService interface {
	CreateProfile(ctx context.Context, userID int64, input services.CreateProfileInput) (*services.CreatedProfile, error)
	GetDetail(ctx context.Context, userID int64) (*models.ProviderDetail, error)
}

type ProviderHandler struct {
	service  providerApplicationService
	userRepo *repository.UserRepository
}

func NewProviderHandler(
	service providerApplicationService,
	userRepo *repository.UserRepository,
) *ProviderHandler {
	return &ProviderHandler{
		service:  service,
		userRepo: userRepo,
	}
}

type offeringRequest struct {
	ServiceID   *int64   `json:"service_id"`
	CustomName  string   `json:"custom_name"`
	Description *string  `json:"description"`
	PriceType   string   `json:"price_type"`
	Price       *float64 `json:"price"`
}

type createProfileRequest struct {
	Photos    []string          `json:"photos"`
	Offerings []offeringRequest `json:"offerings"`
}

// CreateProfile publishes the authenticated user as a provider.
func (h *ProviderHandler) CreateProfile(c *fiber.Ctx) error {
	userID, err := parseAuthUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req createProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	offerings := make([]models.OfferingInput, 0, len(req.Offerings))
	for _, offering := range req.Offerings {
		label, err := buildOfferingLabel(offering)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).
				JSON(fiber.Map{"error": "Each offering needs either a service id or a custom name"})
		}
		offerings = append(offerings, models.OfferingInput{
			Label:       label,
			Description: offering.Description,
			PriceType:   offering.PriceType,
			Price:       offering.Price,
		})
	}

	created, err := h.service.CreateProfile(c.Context(), userID, services.CreateProfileInput{
		Photos:    req.Photos,
		Offerings: offerings,
	})
	if err != nil {
		return mapProviderError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"profile":   created.Profile,
		"offerings": created.Offerings,
	})
}

// GetProvider is the public provider detail page.
func (h *ProviderHandler) GetProvider(c *fiber.Ctx) error {
	providerID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || providerID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid provider id"})
	}

	detail, err := h.service.GetDetail(c.Context(), providerID)
	if err != nil {
		return mapProviderError(c, err)
	}

	return c.JSON(fiber.Map{"provider": detail})
}

type updateProfileRequest struct {
	Name       *string   `json:"name"`
	Bio        *string   `json:"bio"`
	AvatarURL  *string   `json:"avatar_url"`
	PostalCode *string   `json:"postal_code"`
	City       *string   `json:"city"`
	Canton     *string   `json:"canton"`
	Latitude   *float64  `json:"latitude"`
	Longitude  *float64  `json:"longitude"`
	Languages  *[]string `json:"languages"`
}

// UpdateProfile partially updates the authenticated user's account fields;
// absent fields keep their stored values.
func (h *ProviderHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, err := parseAuthUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Latitude != nil && (*req.Latitude < -90 || *req.Latitude > 90) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid latitude"})
	}
	if req.Longitude != nil && (*req.Longitude < -180 || *req.Longitude > 180) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid longitude"})
	}

	user, err := h.userRepo.UpdateProfile(c.Context(), userID, repository.UpdateUserProfileInput{
		Name:       req.Name,
		Bio:        req.Bio,
		AvatarURL:  req.AvatarURL,
		PostalCode: req.PostalCode,
		City:       req.City,
		Canton:     req.Canton,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		Languages:  req.Languages,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to update profile"})
	}

	return c.JSON(fiber.Map{"user": user})
}

func buildOfferingLabel(req offeringRequest) (models.OfferingLabel, error) {
	hasService := req.ServiceID != nil && *req.ServiceID > 0
	hasCustom := req.CustomName != ""

	switch {
	case hasService && hasCustom:
		return models.OfferingLabel{}, errAmbiguousLabel
	case hasService:
		return models.PredefinedLabel(*req.ServiceID), nil
	case hasCustom:
		return models.CustomLabel(req.CustomName), nil
	default:
		return models.OfferingLabel{}, errAmbiguousLabel
	}
}

var errAmbiguousLabel = errors.New("offering label must be a service id or a custom name")

func mapProviderError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Provider profile already exists"})
	case errors.Is(err, services.ErrUnknownService):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown service"})
	case errors.Is(err, services.ErrDuplicateOffering):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Duplicate offering"})
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	case errors.Is(err, services.ErrProviderNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Provider not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to process provider request"})
	}
}
