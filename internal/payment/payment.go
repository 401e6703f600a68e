package payment

// Intent is the gateway-side order created when payment is initiated.
// Amount is in minor currency units as the gateway requires.
type Intent struct {
	GatewayOrderID string `json:"gatewayOrderId"`
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	OrderID        int64  `json:"orderId"`
}

// Capture carries the identifiers the widget hands back on success plus the
// order it settles. Produced only after the gateway reports payment.
type Capture struct {
	GatewayOrderID   string  `json:"gatewayOrderId"`
	GatewayPaymentID string  `json:"gatewayPaymentId"`
	Signature        string  `json:"signature"`
	OrderID          int64   `json:"orderId"`
	UserID           int     `json:"userId"`
	Amount           float64 `json:"amount"`
}
