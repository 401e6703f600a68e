package payment

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MockGateway stands in for the external gateway in tests and local runs.
// Payments are flipped to paid by hand, the way a user would complete the
// widget.
type MockGateway struct {
	mu   sync.RWMutex
	paid map[string]string // gateway order id -> payment id
}

func NewMockGateway() *MockGateway {
	return &MockGateway{paid: make(map[string]string)}
}

// CompletePayment marks a gateway order paid and returns the payment id the
// widget would hand to the success callback.
func (g *MockGateway) CompletePayment(gatewayOrderID string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	paymentID := "pay_" + uuid.NewString()
	g.paid[gatewayOrderID] = paymentID
	return paymentID
}

func (g *MockGateway) PaymentStatus(ctx context.Context, gatewayOrderID string) (bool, string, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	paymentID, ok := g.paid[gatewayOrderID]
	return ok, paymentID, nil
}
