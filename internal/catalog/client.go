package catalog

import (
	"context"

	"github.com/agriverse/storefront-gateway/internal/httpx"
)

// Client fetches the public product and category lists from the marketplace
// service. The two endpoints are independent and unordered.
type Client struct {
	http *httpx.Client
}

func NewClient(http *httpx.Client) *Client {
	return &Client{http: http}
}

func (c *Client) Products(ctx context.Context) ([]Product, error) {
	var out []Product
	if err := c.http.Get(ctx, "/api/products", "", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var out []Category
	if err := c.http.Get(ctx, "/api/categories", "", &out); err != nil {
		return nil, err
	}
	return out, nil
}
