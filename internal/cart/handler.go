package cart

import (
	"context"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/agriverse/storefront-gateway/internal/auth"
	"github.com/agriverse/storefront-gateway/internal/catalog"
)

// ProductGetter resolves the product being added so its name and price can
// be snapshotted into the line.
type ProductGetter interface {
	GetProduct(ctx context.Context, id int64) (catalog.Product, error)
}

type Handler struct {
	service *Service
	catalog ProductGetter
}

func NewHandler(s *Service, catalog ProductGetter) *Handler {
	return &Handler{service: s, catalog: catalog}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/cart", h.getCart)
	app.Post("/api/v1/cart/items", h.addItem)
	app.Delete("/api/v1/cart/items/:productId<[0-9]+>", h.removeItem)
	app.Delete("/api/v1/cart", h.clearCart)
}

type addItemRequest struct {
	ProductID int64 `json:"productId"`
}

type cartResponse struct {
	Items     []Line  `json:"items"`
	ItemCount int     `json:"itemCount"`
	Total     float64 `json:"total"`
}

func toResponse(lines []Line) cartResponse {
	store := NewStore(lines)
	return cartResponse{Items: lines, ItemCount: store.ItemCount(), Total: store.Total()}
}

func (h *Handler) addItem(c *fiber.Ctx) error {
	payload := new(addItemRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.ProductID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid productId"})
	}
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return auth.Unauthorized(c)
	}

	product, err := h.catalog.GetProduct(c.Context(), payload.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		}
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": err.Error()})
	}
	// the add control is disabled for sold-out products; keep parity here
	if product.Stock == 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "product is out of stock"})
	}

	lines, err := h.service.Add(c.Context(), userID, product)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(toResponse(lines))
}

func (h *Handler) removeItem(c *fiber.Ctx) error {
	productID, err := strconv.ParseInt(c.Params("productId"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid productId"})
	}
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return auth.Unauthorized(c)
	}

	lines, err := h.service.Remove(c.Context(), userID, productID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(toResponse(lines))
}

func (h *Handler) getCart(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return auth.Unauthorized(c)
	}

	store, err := h.service.Get(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(toResponse(store.Lines()))
}

func (h *Handler) clearCart(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return auth.Unauthorized(c)
	}

	if err := h.service.Clear(c.Context(), userID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
