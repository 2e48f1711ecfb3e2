package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"photo-storefront/internal/models"
	"photo-storefront/internal/services"

	"github.com/spf13/cobra"
)

func newCatalogCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Print the photo catalog",
		Long: `Loads the catalog the server would sell from and prints it.

Without --file the CATALOG_PATH setting is used, falling back to the
built-in catalog.`,
		Example: `  # Show the built-in catalog
  storefront catalog

  # Validate a catalog file before deploying it
  storefront catalog --file ./catalog.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := setup()
			if err != nil {
				return err
			}
			if path == "" {
				path = cfg.Catalog.Path
			}

			catalog, err := services.LoadCatalog(path)
			if err != nil {
				return err
			}
			return printCatalog(cmd.OutOrStdout(), catalog, cfg.Catalog.Currency)
		},
	}

	cmd.Flags().StringVarP(&path, "file", "f", "", "Catalog YAML file")

	return cmd
}

func printCatalog(w io.Writer, catalog *services.Catalog, currency string) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tPREVIEW\tORIGINAL")
	for _, photo := range catalog.All() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			photo.ID,
			photo.Name,
			models.FormatPrice(currency, photo.PriceCents),
			photo.ThumbnailPath,
			photo.OriginalPath,
		)
	}
	return tw.Flush()
}
