package order

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/agriverse/storefront-gateway/internal/auth"
	"github.com/agriverse/storefront-gateway/internal/httpx"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/orders", h.listOrders)
	app.Post("/api/v1/orders/:id<[0-9]+>/cancel", h.cancelOrder)
}

func (h *Handler) listOrders(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return auth.Unauthorized(c)
	}

	orders, err := h.service.Orders(c.Context(), userID, auth.BearerFromCtx(c))
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(orders)
}

func (h *Handler) cancelOrder(c *fiber.Ctx) error {
	orderID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid order id"})
	}
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return auth.Unauthorized(c)
	}

	orders, err := h.service.Cancel(c.Context(), userID, auth.BearerFromCtx(c), orderID)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(orders)
}

func (h *Handler) serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
	case errors.Is(err, ErrNotCancellable):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "order can no longer be cancelled"})
	case errors.Is(err, httpx.ErrUnauthorized):
		return auth.Unauthorized(c)
	case errors.Is(err, httpx.ErrTransport):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"message": "marketplace service unavailable"})
	}
	var se *httpx.StatusError
	if errors.As(err, &se) {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": se.Message})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
}
