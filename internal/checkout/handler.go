package checkout

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/agriverse/storefront-gateway/internal/auth"
	"github.com/agriverse/storefront-gateway/internal/httpx"
)

type Handler struct {
	orch *Orchestrator
}

func NewHandler(orch *Orchestrator) *Handler {
	return &Handler{orch: orch}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/checkout", h.startCheckout)
	app.Post("/api/v1/checkout/:id/confirm", h.confirmCheckout)
	app.Get("/api/v1/checkout/:id", h.getCheckout)
}

type startRequest struct {
	ShippingAddress string `json:"shippingAddress"`
}

type confirmRequest struct {
	GatewayOrderID   string `json:"gatewayOrderId"`
	GatewayPaymentID string `json:"gatewayPaymentId"`
	Signature        string `json:"signature"`
}

func (h *Handler) startCheckout(c *fiber.Ctx) error {
	payload := new(startRequest)
	if len(c.Body()) > 0 {
		if err := c.BodyParser(payload); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		}
	}
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return auth.Unauthorized(c)
	}

	attempt, err := h.orch.Start(c.Context(), userID, auth.BearerFromCtx(c),
		payload.ShippingAddress, c.Get("Idempotency-Key"))
	if err != nil {
		return h.checkoutError(c, attempt, err)
	}
	return c.Status(fiber.StatusCreated).JSON(attempt.View())
}

func (h *Handler) confirmCheckout(c *fiber.Ctx) error {
	payload := new(confirmRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.GatewayPaymentID == "" || payload.Signature == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "missing gateway identifiers"})
	}
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return auth.Unauthorized(c)
	}

	attempt, err := h.orch.Confirm(c.Context(), c.Params("id"), userID, auth.BearerFromCtx(c),
		payload.GatewayPaymentID, payload.Signature)
	if err != nil {
		return h.checkoutError(c, attempt, err)
	}
	return c.JSON(attempt.View())
}

func (h *Handler) getCheckout(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return auth.Unauthorized(c)
	}

	attempt, err := h.orch.Get(c.Params("id"), userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "checkout not found"})
	}
	return c.JSON(attempt.View())
}

func (h *Handler) checkoutError(c *fiber.Ctx, attempt *Attempt, err error) error {
	switch {
	case errors.Is(err, ErrEmptyCart):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "cart is empty"})
	case errors.Is(err, ErrDuplicateCheckout):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "checkout already submitted"})
	case errors.Is(err, ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "checkout not found"})
	case errors.Is(err, ErrAlreadySettled):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "checkout already settled"})
	case errors.Is(err, ErrBadSignature):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid gateway signature"})
	case errors.Is(err, httpx.ErrUnauthorized):
		return auth.Unauthorized(c)
	}
	body := fiber.Map{"message": messageFor(err)}
	if attempt != nil {
		body["checkoutId"] = attempt.ID
		body["status"] = attempt.CurrentStatus()
	}
	return c.Status(fiber.StatusBadGateway).JSON(body)
}
