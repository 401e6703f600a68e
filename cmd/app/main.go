package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/agriverse/storefront-gateway/internal/auth"
	"github.com/agriverse/storefront-gateway/internal/cart"
	"github.com/agriverse/storefront-gateway/internal/catalog"
	"github.com/agriverse/storefront-gateway/internal/checkout"
	"github.com/agriverse/storefront-gateway/internal/config"
	"github.com/agriverse/storefront-gateway/internal/httpx"
	"github.com/agriverse/storefront-gateway/internal/order"
	"github.com/agriverse/storefront-gateway/internal/payment"
	"github.com/agriverse/storefront-gateway/internal/worker"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	app := fiber.New()
	setupCORS(app)
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	marketplace := httpx.New("marketplace", cfg.MarketplaceURL, cfg.RequestTimeout)

	catalogService := catalog.NewService(catalog.NewClient(marketplace), cfg.CatalogTTL)
	catalog.NewHandler(catalogService).RegisterPublicRoutes(app)

	cartRepo, idem := stateStores(cfg)

	// everything below requires a signed-in user
	app.Use(auth.Middleware(cfg.JWTSecret))

	carts := cart.NewService(cartRepo)
	cart.NewHandler(carts, catalogService).RegisterProtectedRoutes(app)

	orderClient := order.NewClient(marketplace)
	orderView := order.NewService(orderClient)
	order.NewHandler(orderView).RegisterProtectedRoutes(app)

	orch := checkout.NewOrchestrator(carts, orderView, orderClient,
		payment.NewClient(marketplace), checkout.NewRegistry(), idem, cfg.GatewayKeySecret)
	checkout.NewHandler(orch).RegisterProtectedRoutes(app)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.ReconcileInterval > 0 {
		go worker.NewReconciliationWorker(orch, gatewayFor(cfg), cfg.ReconcileInterval, cfg.AbandonAfter).Run(ctx)
	}

	go func() {
		if err := app.Listen(cfg.Addr); err != nil {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")
	if err := app.ShutdownWithTimeout(cfg.ShutdownTimeout); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

// stateStores picks where carts and idempotency keys live. With REDIS_ADDR
// set they survive restarts and are shared across instances; without it a
// single process keeps them in memory.
func stateStores(cfg config.Config) (cart.Repository, checkout.IdempotencyStore) {
	if cfg.RedisAddr == "" {
		return cart.NewInMemoryRepository(), checkout.NewInMemoryIdempotencyStore()
	}
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	return cart.NewRedisRepository(rdb, 7*24*time.Hour),
		checkout.NewRedisIdempotencyStore(rdb, 24*time.Hour)
}

// gatewayFor returns the payment gateway the reconciliation sweep asks for
// the truth. Without PAYMENT_GATEWAY_URL the mock keeps local runs working.
func gatewayFor(cfg config.Config) payment.Gateway {
	if cfg.GatewayURL == "" {
		return payment.NewMockGateway()
	}
	return payment.NewHTTPGateway(httpx.New("payment-gateway", cfg.GatewayURL, cfg.RequestTimeout))
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, Idempotency-Key",
	}))
}
