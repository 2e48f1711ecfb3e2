package handlers

import (
	"net/http"

	"photo-storefront/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

// RouterConfig holds what NewRouter wires together
type RouterConfig struct {
	Storefront     *StorefrontHandler
	Store          sessions.Store
	Logger         *zap.Logger
	MetricsHandler http.Handler
	StaticDir      string
}

// NewRouter builds the chi router with the storefront routes
func NewRouter(cfg RouterConfig) http.Handler {
	csrfMiddleware := middleware.NewCSRFMiddleware(cfg.Store, cfg.Logger)
	sessionMiddleware := middleware.NewSessionMiddleware(cfg.Store, cfg.Logger)

	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.LoggingMiddleware(cfg.Logger))
	r.Use(middleware.ErrorHandlingMiddleware(cfg.Logger))
	r.Use(middleware.SecureHeaders)

	r.NotFound(middleware.NotFoundHandler().ServeHTTP)
	r.MethodNotAllowed(middleware.MethodNotAllowedHandler().ServeHTTP)

	// Static files
	if cfg.StaticDir != "" {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir))))
	}

	r.Get("/healthz", cfg.Storefront.Health)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	r.Group(func(r chi.Router) {
		r.Use(sessionMiddleware.ClearInvalidSession)
		r.Use(csrfMiddleware.EnsureCSRFToken)
		r.Use(csrfMiddleware.CSRFProtection)

		r.Get("/", cfg.Storefront.Page)
		r.Get("/panel", cfg.Storefront.Panel)
		r.Get("/api/state", cfg.Storefront.State)

		r.Post("/tabs/{tab}", cfg.Storefront.SwitchTab)

		r.Route("/cart", func(r chi.Router) {
			r.Post("/add", cfg.Storefront.AddToCart)
			r.Post("/remove/{id}", cfg.Storefront.RemoveFromCart)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Post("/", cfg.Storefront.EnterCheckout)
			r.Post("/cancel", cfg.Storefront.CancelCheckout)
			r.Post("/email", cfg.Storefront.UpdateEmail)
			r.Post("/complete", cfg.Storefront.CompleteOrder)
		})
	})

	return r
}
