package config

import (
	"os"
	"time"
)

// Config carries everything the gateway reads from the environment.
// Upstream services are addressed by base URL only; their routes are fixed.
type Config struct {
	Addr      string
	JWTSecret string

	// MarketplaceURL is the order/catalog/payment backend.
	MarketplaceURL string

	// Payment gateway settings. The key secret verifies the
	// "orderId|paymentId" signature the widget sends back.
	GatewayURL       string
	GatewayKeySecret string

	// RedisAddr enables the Redis cart repository and idempotency keys
	// when non-empty; empty keeps everything in process memory.
	RedisAddr string

	RequestTimeout time.Duration
	CatalogTTL     time.Duration

	// AbandonAfter is how long a checkout may sit waiting for the payment
	// widget before the reconciliation sweep settles it. ReconcileInterval
	// of zero disables the sweep entirely (wait forever).
	AbandonAfter      time.Duration
	ReconcileInterval time.Duration

	ShutdownTimeout time.Duration
}

func Load() Config {
	return Config{
		Addr:              getEnv("GATEWAY_ADDR", ":8080"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		MarketplaceURL:    getEnv("MARKETPLACE_URL", "http://localhost:8082"),
		GatewayURL:        os.Getenv("PAYMENT_GATEWAY_URL"),
		GatewayKeySecret:  os.Getenv("PAYMENT_GATEWAY_KEY_SECRET"),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		RequestTimeout:    getDuration("REQUEST_TIMEOUT", 30*time.Second),
		CatalogTTL:        getDuration("CATALOG_TTL", 5*time.Minute),
		AbandonAfter:      getDuration("CHECKOUT_ABANDON_AFTER", 10*time.Minute),
		ReconcileInterval: getDuration("RECONCILE_INTERVAL", time.Minute),
		ShutdownTimeout:   getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
