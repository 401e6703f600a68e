package order

import (
	"context"
	"fmt"

	"github.com/agriverse/storefront-gateway/internal/httpx"
)

// Client talks to the marketplace order endpoints. Every call forwards the
// caller's bearer credential; the gateway has no standing of its own.
type Client struct {
	http *httpx.Client
}

func NewClient(http *httpx.Client) *Client {
	return &Client{http: http}
}

type createRequest struct {
	Order Order  `json:"order"`
	Items []Item `json:"items"`
}

func (c *Client) Create(ctx context.Context, bearer string, ord Order) (Order, error) {
	var created Order
	req := createRequest{Order: ord, Items: ord.Items}
	if err := c.http.Post(ctx, "/api/orders", bearer, req, &created); err != nil {
		return Order{}, err
	}
	return created, nil
}

func (c *Client) ListMine(ctx context.Context, bearer string) ([]Order, error) {
	var out []Order
	if err := c.http.Get(ctx, "/api/orders/my", bearer, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Cancel(ctx context.Context, bearer string, orderID int64) error {
	return c.http.Put(ctx, fmt.Sprintf("/api/orders/%d/cancel", orderID), bearer, nil, nil)
}

type statusUpdate struct {
	Status        Status        `json:"status"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
}

// UpdateStatus is the reconcile step after a captured payment.
func (c *Client) UpdateStatus(ctx context.Context, bearer string, orderID int64, status Status, payment PaymentStatus) error {
	return c.http.Put(ctx, fmt.Sprintf("/api/orders/%d/status", orderID), bearer,
		statusUpdate{Status: status, PaymentStatus: payment}, nil)
}
