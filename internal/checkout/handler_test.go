package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"github.com/agriverse/storefront-gateway/internal/payment"
)

func makeApp(orch *Orchestrator) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if v := c.Get("X-User-ID"); v != "" {
			if id, err := strconv.Atoi(v); err == nil {
				claims := jwt.MapClaims{"user_id": id}
				c.Locals("user", &jwt.Token{Claims: claims})
			}
		}
		return c.Next()
	})
	NewHandler(orch).RegisterProtectedRoutes(app)
	return app
}

func TestCheckoutRoutes(t *testing.T) {
	f := newFixture()
	app := makeApp(f.orch)

	// unauthenticated requests never reach the orchestrator
	req := httptest.NewRequest("POST", "/api/v1/checkout", nil)
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.StatusCode)
	}

	// checking out an empty cart is a client error
	req = httptest.NewRequest("POST", "/api/v1/checkout", nil)
	req.Header.Set("X-User-ID", "42")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for empty cart, got %d", res.StatusCode)
	}
	var errBody map[string]any
	json.NewDecoder(res.Body).Decode(&errBody)
	if errBody["message"] != "cart is empty" {
		t.Fatalf("expected empty-cart message, got %v", errBody["message"])
	}

	f.fillCart(t, 42)

	req = httptest.NewRequest("POST", "/api/v1/checkout",
		strings.NewReader(`{"shippingAddress":"Village road 5"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "42")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", res.StatusCode)
	}
	var view View
	json.NewDecoder(res.Body).Decode(&view)
	if view.Status != StatusAwaitingGateway {
		t.Fatalf("expected AWAITING_GATEWAY, got %s", view.Status)
	}
	if view.CheckoutID == "" || view.Payment.GatewayOrderID == "" {
		t.Fatalf("expected checkout id and gateway order id in the view, got %+v", view)
	}

	// another user cannot read this attempt
	req = httptest.NewRequest("GET", "/api/v1/checkout/"+view.CheckoutID, nil)
	req.Header.Set("X-User-ID", "7")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 for foreign attempt, got %d", res.StatusCode)
	}

	// widget success callback
	sig := payment.Sign(view.Payment.GatewayOrderID, "gw_pay_1", testGatewayKey)
	body := fmt.Sprintf(`{"gatewayOrderId":%q,"gatewayPaymentId":"gw_pay_1","signature":%q}`,
		view.Payment.GatewayOrderID, sig)
	req = httptest.NewRequest("POST", "/api/v1/checkout/"+view.CheckoutID+"/confirm",
		strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "42")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 confirming, got %d", res.StatusCode)
	}
	json.NewDecoder(res.Body).Decode(&view)
	if view.Status != StatusConfirmed {
		t.Fatalf("expected CONFIRMED, got %s", view.Status)
	}

	// confirming again is a conflict
	req = httptest.NewRequest("POST", "/api/v1/checkout/"+view.CheckoutID+"/confirm",
		strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "42")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusConflict {
		t.Fatalf("expected 409 for a second confirm, got %d", res.StatusCode)
	}

	// status stays readable afterwards
	req = httptest.NewRequest("GET", "/api/v1/checkout/"+view.CheckoutID, nil)
	req.Header.Set("X-User-ID", "42")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 reading status, got %d", res.StatusCode)
	}
}

func TestConfirm_MissingGatewayFields(t *testing.T) {
	f := newFixture()
	f.fillCart(t, 42)
	app := makeApp(f.orch)

	attempt, err := f.orch.Start(context.Background(), 42, "tok", "", "")
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest("POST", "/api/v1/checkout/"+attempt.ID+"/confirm",
		strings.NewReader(`{"gatewayOrderId":"gw_order_1"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "42")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for missing gateway identifiers, got %d", res.StatusCode)
	}
}

func TestConfirm_ForgedSignature(t *testing.T) {
	f := newFixture()
	f.fillCart(t, 42)
	app := makeApp(f.orch)

	attempt, err := f.orch.Start(context.Background(), 42, "tok", "", "")
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest("POST", "/api/v1/checkout/"+attempt.ID+"/confirm",
		strings.NewReader(`{"gatewayPaymentId":"gw_pay_1","signature":"forged"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "42")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for forged signature, got %d", res.StatusCode)
	}
	var body map[string]any
	json.NewDecoder(res.Body).Decode(&body)
	if body["message"] != "invalid gateway signature" {
		t.Fatalf("unexpected message %v", body["message"])
	}
}

func TestStartCheckout_IdempotencyHeader(t *testing.T) {
	f := newFixture()
	f.fillCart(t, 42)
	app := makeApp(f.orch)

	for i, want := range []int{fiber.StatusCreated, fiber.StatusConflict} {
		req := httptest.NewRequest("POST", "/api/v1/checkout", nil)
		req.Header.Set("X-User-ID", "42")
		req.Header.Set("Idempotency-Key", "order-once")
		res, _ := app.Test(req)
		if res.StatusCode != want {
			t.Fatalf("request %d: expected %d, got %d", i, want, res.StatusCode)
		}
	}
}
