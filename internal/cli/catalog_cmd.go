package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Ehphp/RequestEstimator-sub000/internal/catalog"
	"github.com/Ehphp/RequestEstimator-sub000/internal/cli/formatter"
)

func newCatalogCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the estimation catalog",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show activities, drivers, risks and presets",
			RunE: func(cmd *cobra.Command, args []string) error {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCatalog(a.Catalog))
				return nil
			},
		},
		&cobra.Command{
			Use:   "export",
			Short: "Print the catalog as YAML, a starting point for --catalog",
			RunE: func(cmd *cobra.Command, args []string) error {
				data, err := catalog.Marshal(a.Catalog)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			},
		},
	)

	return cmd
}
