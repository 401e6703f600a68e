package catalog

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/agriverse/storefront-gateway/internal/httpx"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/products", h.listProducts)
	app.Get("/api/v1/categories", h.listCategories)
}

func (h *Handler) listProducts(c *fiber.Ctx) error {
	var categoryID int64
	if v := c.Query("category"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid category"})
		}
		categoryID = id
	}

	products, err := h.service.Products(c.Context(), c.Query("search"), categoryID)
	if err != nil {
		return upstreamError(c, err)
	}
	return c.JSON(products)
}

func (h *Handler) listCategories(c *fiber.Ctx) error {
	categories, err := h.service.Categories(c.Context())
	if err != nil {
		return upstreamError(c, err)
	}
	return c.JSON(categories)
}

func upstreamError(c *fiber.Ctx, err error) error {
	var se *httpx.StatusError
	if errors.As(err, &se) {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": se.Message})
	}
	if errors.Is(err, httpx.ErrTransport) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"message": "marketplace service unavailable"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
}
