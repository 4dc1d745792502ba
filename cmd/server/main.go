package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"storefront-be/internal/auth"
	"storefront-be/internal/cart"
	"storefront-be/internal/checkout"
	"storefront-be/internal/config"
	"storefront-be/internal/customer"
	"storefront-be/internal/db"
	"storefront-be/internal/handler"
	"storefront-be/internal/logger"
	"storefront-be/internal/middleware"
	"storefront-be/internal/order"
	"storefront-be/internal/payment"
	"storefront-be/internal/pricing"
	"storefront-be/internal/product"
	"storefront-be/internal/user"

	"go.uber.org/zap"
)

const (
	limiterSweepInterval = time.Minute
	shutdownTimeout      = 10 * time.Second
)

var (
	initDBFunc      = db.InitDB
	startServerFunc = startServer
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := initDBFunc(cfg)
	defer database.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	router, err := newServer(ctx, cfg, database)
	if err != nil {
		return err
	}

	logger.L().Info("server starting", zap.String("port", cfg.AppPort), zap.String("env", cfg.AppEnv))
	return startServerFunc(":"+cfg.AppPort, router)
}

// newServer wires repositories, services and handlers into the HTTP router.
// The limiter sweeper runs until ctx is cancelled.
func newServer(ctx context.Context, cfg *config.Config, database *sql.DB) (http.Handler, error) {
	policy, err := cfg.PricingPolicy()
	if err != nil {
		return nil, fmt.Errorf("pricing policy: %w", err)
	}
	engine := pricing.NewEngine(policy)

	issuer, err := auth.NewIssuer(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		return nil, fmt.Errorf("token issuer: %w", err)
	}

	productRepo := product.NewRepository(database)
	cartRepo := cart.NewRepository(database)
	customerRepo := customer.NewRepository(database)
	paymentRepo := payment.NewRepository(database)
	orderRepo := order.NewRepository(database, cartRepo, customerRepo, paymentRepo)
	userRepo := user.NewRepository(database)

	cartSvc := cart.NewService(cartRepo, productRepo, engine)
	customerSvc := customer.NewService(customerRepo)
	orderSvc := order.NewService(orderRepo, paymentRepo)
	checkoutSvc := checkout.NewService(cartRepo, productRepo, orderRepo, engine)
	userSvc := user.NewService(userRepo, issuer)

	limiter := middleware.NewRateLimiter(cfg.InternalSecretKey)
	go limiter.Cleanup(ctx, limiterSweepInterval)

	return handler.NewRouter(
		handler.Handlers{
			Checkout: handler.NewCheckoutHandler(checkoutSvc),
			Cart:     handler.NewCartHandler(cartSvc),
			Orders:   handler.NewOrderHandler(orderSvc),
			Account:  handler.NewAccountHandler(customerSvc),
			Auth:     handler.NewAuthHandler(userSvc, customerSvc, cfg.AppEnv == "production"),
		},
		handler.RouterConfig{
			Tokens:        issuer,
			Limiter:       limiter,
			AllowedOrigin: cfg.CORSAllowedOrigin,
			DB:            database,
		},
	), nil
}

// startServer serves until SIGINT/SIGTERM, then drains in-flight requests.
func startServer(addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.L().Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
