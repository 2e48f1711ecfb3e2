package main

import (
	"photo-storefront/internal/config"
	"photo-storefront/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "storefront",
		Short: "Photo storefront with cart and simulated checkout",
		Long: `Storefront serves a small photo catalog. Visitors browse watermarked
previews, collect photos in a cart and pay through a simulated checkout
that unlocks the original images.

Configuration is read from the environment and from .env.local / .env.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newCatalogCmd())

	return cmd
}

// setup loads the configuration and builds the logger shared by the commands
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	logger, err := logging.New(cfg.Log.Level, cfg.IsDevelopment())
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}
