package handler

import (
	"context"
	"net/http"
	"time"

	"storefront-be/internal/logger"
	"storefront-be/internal/middleware"
	"storefront-be/internal/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handlers struct {
	Checkout *CheckoutHandler
	Cart     *CartHandler
	Orders   *OrderHandler
	Account  *AccountHandler
	Auth     *AuthHandler
}

type RouterConfig struct {
	Tokens        middleware.TokenParser
	Limiter       *middleware.RateLimiter
	AllowedOrigin string
	DB            Pinger
}

func NewRouter(h Handlers, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(logger.RequestIDMiddleware)
	r.Use(logger.LoggingMiddleware)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(middleware.CORS(cfg.AllowedOrigin))

	r.Get("/health", health(cfg.DB))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.Tokens))
		r.Use(cfg.Limiter.Middleware)

		r.Post("/auth/register", h.Auth.Register)
		r.Post("/auth/login", h.Auth.Login)
		r.Post("/auth/logout", h.Auth.Logout)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)

			r.Post("/checkout", h.Checkout.PlaceOrder)

			r.Get("/cart", h.Cart.Get)
			r.Delete("/cart", h.Cart.Clear)
			r.Post("/cart/items", h.Cart.AddItem)
			r.Put("/cart/items/{productID}", h.Cart.UpdateQuantity)
			r.Delete("/cart/items/{productID}", h.Cart.RemoveItem)

			r.Get("/orders", h.Orders.List)
			r.Get("/orders/{orderID}", h.Orders.Detail)

			r.Get("/auth/me", h.Auth.Me)
			r.Get("/account/shipping-details", h.Account.ShippingDetails)
			r.Get("/account/dashboard", h.Orders.Dashboard)
		})
	})

	return r
}

func health(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			utils.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
