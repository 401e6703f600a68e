package payment

import (
	"context"
	"fmt"

	"github.com/agriverse/storefront-gateway/internal/httpx"
)

// Gateway answers "was this gateway order actually paid?". The
// reconciliation sweep uses it as the source of truth when the widget never
// called back.
type Gateway interface {
	PaymentStatus(ctx context.Context, gatewayOrderID string) (paid bool, paymentID string, err error)
}

// HTTPGateway queries the gateway's order-status endpoint directly.
type HTTPGateway struct {
	http *httpx.Client
}

func NewHTTPGateway(http *httpx.Client) *HTTPGateway {
	return &HTTPGateway{http: http}
}

type gatewayOrderStatus struct {
	Status    string `json:"status"`
	PaymentID string `json:"paymentId"`
}

func (g *HTTPGateway) PaymentStatus(ctx context.Context, gatewayOrderID string) (bool, string, error) {
	var out gatewayOrderStatus
	if err := g.http.Get(ctx, fmt.Sprintf("/v1/orders/%s", gatewayOrderID), "", &out); err != nil {
		return false, "", err
	}
	return out.Status == "paid", out.PaymentID, nil
}
