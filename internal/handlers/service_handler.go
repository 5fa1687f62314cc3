package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/leesummerdesigns/swissconnection/internal/models"
)

type serviceCatalog interface {
	List(ctx context.Context) ([]models.Service, error)
}

type ServiceHandler struct {
	catalog serviceCatalog
}

func NewServiceHandler(catalog serviceCatalog) *ServiceHandler {
	return &ServiceHandler{catalog: catalog}
}

func (h *ServiceHandler) ListServices(c *fiber.Ctx) error {
	services, err := h.catalog.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to fetch services"})
	}
	if services == nil {
		services = []models.Service{}
	}
	return c.JSON(fiber.Map{"services": services})
}
