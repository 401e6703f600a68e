package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var (
	// ErrUnauthorized means the upstream rejected the forwarded credential.
	// Callers convert it to a 401 with a sign-in redirect.
	ErrUnauthorized = errors.New("upstream rejected credential")

	// ErrTransport wraps failures where no HTTP response arrived at all.
	ErrTransport = errors.New("upstream unreachable")

	// ErrMalformed wraps a 2xx response whose body did not decode into the
	// expected record. Treated as its own failure kind, never half-parsed.
	ErrMalformed = errors.New("malformed upstream payload")
)

// StatusError is a non-2xx upstream reply. Message carries the backend's
// `message` field verbatim when one was present.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned %d: %s", e.Status, e.Message)
}

// Client is a JSON-over-HTTP client for one upstream service. All requests
// run through a circuit breaker so a dead upstream fails fast instead of
// holding request goroutines for the full timeout.
type Client struct {
	base    string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[*http.Response]
}

func New(name, base string, timeout time.Duration) *Client {
	return &Client{
		base: base,
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		breaker: gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
			Name: name,
		}),
	}
}

func (c *Client) Get(ctx context.Context, path, bearer string, out any) error {
	return c.do(ctx, http.MethodGet, path, bearer, nil, out)
}

func (c *Client) Post(ctx context.Context, path, bearer string, in, out any) error {
	return c.do(ctx, http.MethodPost, path, bearer, in, out)
}

func (c *Client) Put(ctx context.Context, path, bearer string, in, out any) error {
	return c.do(ctx, http.MethodPut, path, bearer, in, out)
}

func (c *Client) do(ctx context.Context, method, path, bearer string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.breaker.Execute(func() (*http.Response, error) {
		return c.http.Do(req)
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Status: resp.StatusCode, Message: errorMessage(resp)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return nil
}

// errorMessage pulls the `message` field from an error body so it can be
// surfaced to the user verbatim, falling back to the HTTP status text.
func errorMessage(resp *http.Response) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return http.StatusText(resp.StatusCode)
}
