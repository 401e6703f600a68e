package payment

import (
	"context"

	"github.com/agriverse/storefront-gateway/internal/httpx"
)

// Client drives the marketplace payment endpoints, which in turn own the
// real gateway credentials. Initiate returns the gateway order the widget
// needs; Capture confirms a widget success callback server-side.
type Client struct {
	http *httpx.Client
}

func NewClient(http *httpx.Client) *Client {
	return &Client{http: http}
}

type initiateRequest struct {
	OrderID int64   `json:"orderId"`
	Amount  float64 `json:"amount"`
}

func (c *Client) Initiate(ctx context.Context, bearer string, orderID int64, amount float64) (Intent, error) {
	var intent Intent
	if err := c.http.Post(ctx, "/api/payments/initiate", bearer,
		initiateRequest{OrderID: orderID, Amount: amount}, &intent); err != nil {
		return Intent{}, err
	}
	intent.OrderID = orderID
	return intent, nil
}

func (c *Client) Capture(ctx context.Context, bearer string, capture Capture) error {
	return c.http.Post(ctx, "/api/payments/capture", bearer, capture, nil)
}
