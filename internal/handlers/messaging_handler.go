package handlers

import (
	"context"
	"errors"
	"strconv"
	"strings"

	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/leesummerdesigns/swissconnection/internal/models"
	"github.com/leesummerdesigns/swissconnection/internal/services"
	msgws "github.com/leesummerdesigns/swissconnection/internal/websocket"
	"github.com/leesummerdesigns/swissconnection/pkg/utils"
)

type messagingApplicationService interface {
	ListThreads(ctx context.Context, actorID int64) ([]models.ThreadSummary, error)
	StartThread(ctx context.Context, actorID int64, providerID int64) (*models.Thread, error)
	ListMessages(ctx context.Context, actorID int64, threadID int64, page int, limit int) ([]models.Message, int, error)
	SendMessage(ctx context.Context, actorID int64, threadID int64, content string) (*services.MessageDelivery, error)
}

type MessagingHandler struct {
	service   messagingApplicationService
	hub       *msgws.Hub
	jwtSecret string
}

func NewMessagingHandler(
	service messagingApplicationService,
	hub *msgws.Hub,
	jwtSecret string,
) *MessagingHandler {
	return &MessagingHandler{
		service:   service,
		hub:       hub,
		jwtSecret: jwtSecret,
	}
}

type startThreadRequest struct {
	ProviderID int64 `json:"provider_id"`
}

type sendMessageRequest struct {
	Content string `json:"content"`
}

func (h *MessagingHandler) ListThreads(c *fiber.Ctx) error {
	userID, err := parseAuthUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	threads, err := h.service.ListThreads(c.Context(), userID)
	if err != nil {
		return mapMessagingError(c, err)
	}
	if threads == nil {
		threads = []models.ThreadSummary{}
	}
	return c.JSON(fiber.Map{"threads": threads})
}

func (h *MessagingHandler) StartThread(c *fiber.Ctx) error {
	userID, err := parseAuthUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req startThreadRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	thread, err := h.service.StartThread(c.Context(), userID, req.ProviderID)
	if err != nil {
		return mapMessagingError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"thread": thread})
}

func (h *MessagingHandler) GetMessages(c *fiber.Ctx) error {
	userID, err := parseAuthUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	threadID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || threadID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid thread id"})
	}

	page := parsePositiveInt(c.Query("page"), 1)
	limit := parsePositiveInt(c.Query("limit"), defaultPageLimit)
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	messages, total, err := h.service.ListMessages(c.Context(), userID, threadID, page, limit)
	if err != nil {
		return mapMessagingError(c, err)
	}

	return c.JSON(fiber.Map{
		"messages":   messages,
		"pagination": buildPaginationMeta(page, limit, total),
	})
}

func (h *MessagingHandler) SendMessage(c *fiber.Ctx) error {
	userID, err := parseAuthUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	threadID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || threadID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid thread id"})
	}

	var req sendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	delivery, err := h.service.SendMessage(c.Context(), userID, threadID, req.Content)
	if err != nil {
		return mapMessagingError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": delivery.Message})
}

func (h *MessagingHandler) WebSocketAuth(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return c.Status(fiber.StatusUpgradeRequired).JSON(fiber.Map{"error": "WebSocket upgrade required"})
	}

	claims, err := h.parseWSClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
	}

	c.Locals("user_id", claims.UserID)
	c.Locals("role", claims.Role)
	return c.Next()
}

func (h *MessagingHandler) HandleWebSocket(conn *websocket.Conn) {
	userID, _ := conn.Locals("user_id").(string)
	client := msgws.NewClient(h.hub, conn, userID)

	h.hub.Register(client)
	go client.WritePump()
	client.ReadPump(h.service)
}

func (h *MessagingHandler) parseWSClaims(c *fiber.Ctx) (*utils.Claims, error) {
	tokenString := strings.TrimSpace(c.Query("token"))
	if tokenString == "" {
		authHeader := strings.TrimSpace(c.Get("Authorization"))
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}
	}

	if tokenString == "" {
		return nil, errors.New("missing token")
	}

	return utils.ValidateToken(tokenString, h.jwtSecret)
}

func mapMessagingError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	case errors.Is(err, services.ErrProviderNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Provider not found"})
	case errors.Is(err, pgx.ErrNoRows):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Thread not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to process messaging request"})
	}
}
