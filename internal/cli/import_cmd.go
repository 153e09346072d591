package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Ehphp/RequestEstimator-sub000/internal/cli/formatter"
)

func newImportCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import requirements and estimates from a JSON file",
		Long: "Import a requirement hierarchy in one transaction. Rows reference their\n" +
			"parent by parent_ref; nothing is stored when any row is invalid.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.Imports.ImportFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatImportResult(res))
			return nil
		},
	}
}
