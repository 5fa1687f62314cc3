package handlers

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/leesummerdesigns/swissconnection/internal/models"
)

type providerSearcher interface {
	Search(ctx context.Context, query models.SearchQuery) ([]models.ProviderSearchResult, error)
}

type SearchHandler struct {
	discovery providerSearcher
}

func NewSearchHandler(discovery providerSearcher) *SearchHandler {
	return &SearchHandler{discovery: discovery}
}

// SearchProviders is the public discovery endpoint. Filter parameters that do
// not parse are dropped rather than rejected, and a store failure still
// answers with an empty provider list so the search page keeps rendering.
func (h *SearchHandler) SearchProviders(c *fiber.Ctx) error {
	query := models.SearchQuery{
		Service:   c.Query("service"),
		Location:  c.Query("location"),
		Sort:      c.Query("sort"),
		MinRating: parseOptionalInt(c.Query("min_rating")),
		RadiusKm:  parseOptionalFloat(c.Query("radius")),
		Limit:     parsePositiveInt(c.Query("limit"), 0),
	}

	lat := parseOptionalFloat(c.Query("lat"))
	lng := parseOptionalFloat(c.Query("lng"))
	if lat != nil && lng != nil {
		query.Lat = lat
		query.Lng = lng
	}

	providers, err := h.discovery.Search(c.Context(), query)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":     "Failed to search providers",
			"providers": []models.ProviderSearchResult{},
		})
	}

	return c.JSON(fiber.Map{"providers": providers})
}

func parseOptionalInt(raw string) *int {
	if raw == "" {
		return nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &value
}

func parseOptionalFloat(raw string) *float64 {
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &value
}

func parsePositiveInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
