package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"photo-storefront/internal/config"
	"photo-storefront/internal/handlers"
	"photo-storefront/internal/metrics"
	"photo-storefront/internal/services"

	"github.com/gorilla/sessions"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the storefront web server",
		Long: `Starts the storefront on the configured host and port.

Completed orders are published to NATS when NATS_URL is set and logged
otherwise.`,
		Example: `  # Start server on the configured port (default 8080)
  storefront serve

  # Start server on a custom port
  storefront serve --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			defer logger.Sync()

			if port != "" {
				cfg.Server.Port = port
			}
			return serve(cmd.Context(), cfg, logger)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides PORT)")

	return cmd
}

func serve(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	catalog, err := services.LoadCatalog(cfg.Catalog.Path)
	if err != nil {
		return err
	}
	logger.Info("Catalog loaded", zap.Int("photos", catalog.Len()))

	assets := services.NewLocalAssetResolver(cfg.Assets.StaticDir, cfg.Assets.BaseURL)
	if missing, err := assets.MissingAssets(ctx, catalog); err != nil {
		logger.Warn("Could not check photo files", zap.Error(err))
	} else if len(missing) > 0 {
		logger.Warn("Photo files missing", zap.Strings("paths", missing))
	}

	payments, err := services.NewPaymentGateway(cfg.Payment.Provider, logger)
	if err != nil {
		return err
	}

	var notifier services.Notifier = services.NewLogNotifier(logger)
	if cfg.Notify.NATSURL != "" {
		natsNotifier, err := services.ConnectNATSNotifier(cfg.Notify.NATSURL, cfg.Notify.Subject, logger)
		if err != nil {
			return err
		}
		defer natsNotifier.Close()
		notifier = natsNotifier
		logger.Info("Publishing order confirmations to NATS", zap.String("subject", cfg.Notify.Subject))
	}

	m := metrics.NewDefault()
	service := services.NewStorefrontService(catalog, assets, payments, notifier, m, logger, cfg.Catalog.Currency)

	// MaxAge 0: the cart lives as long as the browser session
	store := sessions.NewCookieStore([]byte(cfg.Session.Secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   0,
		HttpOnly: true,
		Secure:   cfg.Session.Secure,
		SameSite: http.SameSiteLaxMode,
	}

	router := handlers.NewRouter(handlers.RouterConfig{
		Storefront:     handlers.NewStorefrontHandler(service, store, logger),
		Store:          store,
		Logger:         logger,
		MetricsHandler: m.Handler(),
		StaticDir:      cfg.Assets.StaticDir,
	})

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Storefront available", zap.String("addr", server.Addr), zap.String("env", cfg.Server.Env))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown failed", zap.Error(err))
			return err
		}
		logger.Info("Server stopped")
		return nil
	case err := <-serverErr:
		return err
	}
}
