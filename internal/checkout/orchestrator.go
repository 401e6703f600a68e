package checkout

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/agriverse/storefront-gateway/internal/cart"
	"github.com/agriverse/storefront-gateway/internal/httpx"
	"github.com/agriverse/storefront-gateway/internal/order"
	"github.com/agriverse/storefront-gateway/internal/payment"
)

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrDuplicateCheckout = errors.New("duplicate checkout request")
	ErrNotFound          = errors.New("checkout not found")
	ErrAlreadySettled    = errors.New("checkout already settled")
	ErrBadSignature      = errors.New("invalid gateway signature")
)

// OrderBackend is the slice of the marketplace order client the
// orchestrator drives.
type OrderBackend interface {
	Create(ctx context.Context, bearer string, ord order.Order) (order.Order, error)
	UpdateStatus(ctx context.Context, bearer string, orderID int64, status order.Status, pay order.PaymentStatus) error
}

// PaymentBackend initiates and captures payments upstream.
type PaymentBackend interface {
	Initiate(ctx context.Context, bearer string, orderID int64, amount float64) (payment.Intent, error)
	Capture(ctx context.Context, bearer string, capture payment.Capture) error
}

// Orchestrator sequences a cart into a paid, confirmed order. Steps run
// strictly in order with no automatic retries; any failure settles the
// attempt as FAILED with one user-visible message. A failed checkout is not
// resumed; starting over creates a brand-new order upstream.
type Orchestrator struct {
	carts      *cart.Service
	orderView  *order.Service
	orders     OrderBackend
	payments   PaymentBackend
	registry   *Registry
	idem       IdempotencyStore
	gatewayKey string
}

func NewOrchestrator(
	carts *cart.Service,
	orderView *order.Service,
	orders OrderBackend,
	payments PaymentBackend,
	registry *Registry,
	idem IdempotencyStore,
	gatewayKey string,
) *Orchestrator {
	return &Orchestrator{
		carts:      carts,
		orderView:  orderView,
		orders:     orders,
		payments:   payments,
		registry:   registry,
		idem:       idem,
		gatewayKey: gatewayKey,
	}
}

// Start runs steps one and two: create the order, initiate the payment,
// then park the attempt until the gateway widget reports back. An empty
// cart aborts before any network call. On a create failure the cart is left
// exactly as it was.
func (o *Orchestrator) Start(ctx context.Context, userID int, bearer, shippingAddress, idemKey string) (*Attempt, error) {
	store, err := o.carts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if store.Empty() {
		return nil, ErrEmptyCart
	}

	if idemKey != "" && o.idem != nil {
		fresh, err := o.idem.SetOnce(ctx, idemKey)
		if err != nil {
			return nil, err
		}
		if !fresh {
			return nil, ErrDuplicateCheckout
		}
	}

	if shippingAddress == "" {
		shippingAddress = "Address not provided"
	}

	lines := store.Lines()
	items := make([]order.Item, 0, len(lines))
	for _, l := range lines {
		items = append(items, order.Item{ProductID: l.ProductID, Quantity: l.Quantity, Price: l.UnitPrice})
	}

	created, err := o.orders.Create(ctx, bearer, order.Order{
		UserID:          userID,
		Items:           items,
		TotalPrice:      store.Total(),
		ShippingAddress: shippingAddress,
		Status:          order.StatusPending,
		PaymentStatus:   order.PaymentPending,
		CreatedAt:       time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return nil, err
	}

	a := &Attempt{
		ID:        uuid.NewString(),
		UserID:    userID,
		OrderID:   created.ID,
		StartedAt: time.Now(),
		bearer:    bearer,
		status:    StatusCreated,
	}
	o.registry.Put(a)

	intent, err := o.payments.Initiate(ctx, bearer, created.ID, created.TotalPrice)
	if err != nil {
		// the order stays PENDING/PENDING upstream; nothing undoes it here
		a.fail(messageFor(err))
		return a, err
	}
	a.Intent = intent
	a.setStatus(StatusPaymentInitiated)
	a.setStatus(StatusAwaitingGateway)

	return a, nil
}

// Confirm is the widget's success callback: verify the signature, capture
// the payment and reconcile the order to CONFIRMED/PAID. Only then is the
// cart cleared and the order view refreshed.
func (o *Orchestrator) Confirm(ctx context.Context, attemptID string, userID int, bearer, gatewayPaymentID, signature string) (*Attempt, error) {
	a := o.registry.Get(attemptID)
	if a == nil || a.UserID != userID {
		return nil, ErrNotFound
	}
	if !a.resolveOnce() {
		return a, ErrAlreadySettled
	}

	if !payment.VerifySignature(a.Intent.GatewayOrderID, gatewayPaymentID, signature, o.gatewayKey) {
		a.fail("invalid gateway signature")
		return a, ErrBadSignature
	}

	return a, o.settle(ctx, a, bearer, gatewayPaymentID, signature)
}

// SettleStuck finishes an attempt the widget abandoned. The gateway is the
// source of truth: paid means the sequence completes with a signature
// minted from the shared key secret, unpaid means the attempt fails.
func (o *Orchestrator) SettleStuck(ctx context.Context, a *Attempt, gw payment.Gateway) error {
	paid, gatewayPaymentID, err := gw.PaymentStatus(ctx, a.Intent.GatewayOrderID)
	if err != nil {
		return err
	}
	if !a.resolveOnce() {
		return nil
	}
	if !paid {
		a.fail("payment abandoned at gateway")
		return nil
	}
	signature := payment.Sign(a.Intent.GatewayOrderID, gatewayPaymentID, o.gatewayKey)
	return o.settle(ctx, a, a.bearer, gatewayPaymentID, signature)
}

// Stuck exposes parked attempts to the reconciliation sweep.
func (o *Orchestrator) Stuck(olderThan time.Duration) []*Attempt {
	return o.registry.Stuck(olderThan)
}

func (o *Orchestrator) Get(attemptID string, userID int) (*Attempt, error) {
	a := o.registry.Get(attemptID)
	if a == nil || a.UserID != userID {
		return nil, ErrNotFound
	}
	return a, nil
}

// settle runs steps four and five plus the success postconditions.
func (o *Orchestrator) settle(ctx context.Context, a *Attempt, bearer, gatewayPaymentID, signature string) error {
	capture := payment.Capture{
		GatewayOrderID:   a.Intent.GatewayOrderID,
		GatewayPaymentID: gatewayPaymentID,
		Signature:        signature,
		OrderID:          a.OrderID,
		UserID:           a.UserID,
		Amount:           float64(a.Intent.Amount) / 100,
	}
	if err := o.payments.Capture(ctx, bearer, capture); err != nil {
		a.fail(messageFor(err))
		return err
	}
	a.setStatus(StatusCaptured)

	// payment is captured at this point; a failure below still fails the
	// attempt even though money moved (no compensation exists upstream)
	if err := o.orders.UpdateStatus(ctx, bearer, a.OrderID, order.StatusConfirmed, order.PaymentPaid); err != nil {
		a.fail(messageFor(err))
		return err
	}

	if err := o.carts.Clear(ctx, a.UserID); err != nil {
		log.Printf("checkout %s: could not clear cart for user %d: %v", a.ID, a.UserID, err)
	}
	o.orderView.Invalidate(a.UserID)
	if _, err := o.orderView.Refresh(ctx, a.UserID, bearer); err != nil {
		log.Printf("checkout %s: order view refresh failed: %v", a.ID, err)
	}

	a.setStatus(StatusConfirmed)
	return nil
}

// messageFor collapses any step failure into the one transient message the
// user sees. Backend `message` fields pass through verbatim.
func messageFor(err error) string {
	if err == nil {
		return ""
	}
	var se *httpx.StatusError
	if errors.As(err, &se) {
		return se.Message
	}
	if errors.Is(err, httpx.ErrTransport) {
		return "could not reach the marketplace service"
	}
	return err.Error()
}
