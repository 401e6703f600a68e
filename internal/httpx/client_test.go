package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClient_GetDecodesJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Errorf("expected bearer forwarded, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":7,"name":"Seeds Pack"}`))
	}))
	defer srv.Close()

	c := New("test", srv.URL, time.Second)
	var out struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}
	if err := c.Get(context.Background(), "/api/products/7", "tok-1", &out); err != nil {
		t.Fatal(err)
	}
	if out.ID != 7 || out.Name != "Seeds Pack" {
		t.Fatalf("unexpected decode result: %+v", out)
	}
}

func TestClient_SurfacesMessageField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"Payment amount mismatch"}`))
	}))
	defer srv.Close()

	c := New("test", srv.URL, time.Second)
	err := c.Post(context.Background(), "/api/payments/initiate", "", map[string]any{}, nil)
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if se.Status != http.StatusBadRequest || se.Message != "Payment amount mismatch" {
		t.Fatalf("unexpected status error: %+v", se)
	}
}

func TestClient_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := New("test", srv.URL, time.Second)
	err := c.Get(context.Background(), "/api/orders/my", "expired", nil)
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestClient_TransportError(t *testing.T) {
	// point at a closed server
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := New("test", srv.URL, time.Second)
	err := c.Get(context.Background(), "/api/products", "", nil)
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
}

func TestClient_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": "not-a-number"`))
	}))
	defer srv.Close()

	c := New("test", srv.URL, time.Second)
	var out struct {
		ID int `json:"id"`
	}
	err := c.Get(context.Background(), "/api/products/1", "", &out)
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}
