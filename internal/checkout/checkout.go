package checkout

import (
	"sync"
	"time"

	"github.com/agriverse/storefront-gateway/internal/payment"
)

type Status string

const (
	StatusCreated          Status = "CREATED"
	StatusPaymentInitiated Status = "PAYMENT_INITIATED"
	StatusAwaitingGateway  Status = "AWAITING_GATEWAY"
	StatusCaptured         Status = "CAPTURED"
	StatusConfirmed        Status = "CONFIRMED"
	StatusFailed           Status = "FAILED"
)

// Attempt is one run of the checkout sequence. Once it parks in
// AWAITING_GATEWAY it is settled exactly once, either by the widget's
// success callback or by the reconciliation sweep.
type Attempt struct {
	ID        string
	UserID    int
	OrderID   int64
	Intent    payment.Intent
	StartedAt time.Time

	// bearer is the credential captured at start, reused if the sweep has
	// to finish the sequence without the user present.
	bearer string

	mu       sync.Mutex
	status   Status
	message  string
	resolved bool
}

// View is the JSON shape handlers return for an attempt.
type View struct {
	CheckoutID string         `json:"checkoutId"`
	OrderID    int64          `json:"orderId,omitempty"`
	Status     Status         `json:"status"`
	Message    string         `json:"message,omitempty"`
	Payment    payment.Intent `json:"payment"`
}

func (a *Attempt) View() View {
	a.mu.Lock()
	defer a.mu.Unlock()
	return View{
		CheckoutID: a.ID,
		OrderID:    a.OrderID,
		Status:     a.status,
		Message:    a.message,
		Payment:    a.Intent,
	}
}

func (a *Attempt) CurrentStatus() Status {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.status
}

func (a *Attempt) setStatus(s Status) {
	a.mu.Lock()
	a.status = s
	a.mu.Unlock()
}

func (a *Attempt) fail(message string) {
	a.mu.Lock()
	a.status = StatusFailed
	a.message = message
	a.mu.Unlock()
}

// resolveOnce claims the single settlement slot. The widget callback and the
// reconciliation sweep race for it; exactly one wins.
func (a *Attempt) resolveOnce() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.resolved || a.status != StatusAwaitingGateway {
		return false
	}
	a.resolved = true
	return true
}
