package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Ehphp/RequestEstimator-sub000/internal/app"
	"github.com/Ehphp/RequestEstimator-sub000/internal/cli/formatter"
	"github.com/Ehphp/RequestEstimator-sub000/internal/domain"
	"github.com/Ehphp/RequestEstimator-sub000/internal/repository"
)

func newEstimateCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "estimate",
		Aliases: []string{"est"},
		Short:   "Create and inspect estimates",
	}

	cmd.AddCommand(
		newEstimateCreateCmd(a),
		newEstimateShowCmd(a),
		newEstimateHistoryCmd(a),
	)

	return cmd
}

func newEstimateCreateCmd(a *App) *cobra.Command {
	var scenario, preset string
	var activities, risks []string
	var drivers domain.DriverSelection
	var dryRun, interactive bool

	cmd := &cobra.Command{
		Use:   "create <ref>",
		Short: "Estimate a requirement",
		Long: "Estimate a requirement from catalog activities, driver options and risks.\n" +
			"Driver dimensions left unset are taken from the requirement's previous\n" +
			"estimate, then from --preset, then from the catalog baseline.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			r, err := a.Requirements.Resolve(ctx, args[0])
			if err != nil {
				return err
			}

			if interactive {
				if !a.interactive() {
					return fmt.Errorf("--interactive needs a terminal")
				}
				suggested, sources, err := a.Estimates.SuggestDrivers(ctx, r.ID, preset)
				if err != nil {
					return err
				}
				if sources == nil {
					sources = make(map[domain.DriverDimension]domain.DefaultSource)
				}
				for _, dim := range domain.DriverDimensions {
					if opt := drivers.Option(dim); opt != "" {
						suggested = suggested.With(dim, opt)
						sources[dim] = domain.DefaultSource{}
					}
				}
				values := newEstimateFormValues(suggested, activities, risks)
				if err := estimateForm(a.Catalog, values, sources).Run(); err != nil {
					return err
				}
				activities, risks = values.activities, values.risks
				drivers = values.selection()
			}

			res, err := a.Estimates.Create(ctx, app.EstimateRequest{
				RequirementID: r.ID,
				Scenario:      scenario,
				ActivityCodes: activities,
				Drivers:       drivers,
				RiskIDs:       risks,
				Preset:        preset,
				DryRun:        dryRun,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.FormatEstimate(res.Estimate, a.Catalog))
			for _, w := range res.Warnings {
				fmt.Fprintln(out, formatter.StyleYellow.Render("! ")+w)
			}
			if res.Stored {
				fmt.Fprintf(out, "Saved estimate %s for %s\n", formatter.TruncID(res.Estimate.ID), formatter.SeqLabel(r.Seq))
			} else {
				fmt.Fprintln(out, formatter.Dim("Dry run: estimate not saved."))
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&scenario, "scenario", "", "Scenario name (default base)")
	f.StringSliceVar(&activities, "activity", nil, "Activity code (repeatable or comma-separated)")
	f.StringVar(&drivers.Complexity, "complexity", "", "Complexity option")
	f.StringVar(&drivers.Environments, "environments", "", "Environments option")
	f.StringVar(&drivers.Reuse, "reuse", "", "Reuse option")
	f.StringVar(&drivers.Stakeholders, "stakeholders", "", "Stakeholders option")
	f.StringSliceVar(&risks, "risk", nil, "Risk id (repeatable or comma-separated)")
	f.StringVar(&preset, "preset", "", "Driver preset for unset dimensions")
	f.BoolVar(&dryRun, "dry-run", false, "Calculate without saving")
	f.BoolVarP(&interactive, "interactive", "i", false, "Pick activities, drivers and risks in a form")

	return cmd
}

func newEstimateShowCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <ref>",
		Short: "Show the latest estimate of a requirement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			r, err := a.Requirements.Resolve(ctx, args[0])
			if err != nil {
				return err
			}
			est, err := a.Estimates.Latest(ctx, r.ID)
			if errors.Is(err, repository.ErrNotFound) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s has no estimate yet.\n", formatter.SeqLabel(r.Seq), r.Title)
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatEstimate(est, a.Catalog))
			return nil
		},
	}
}

func newEstimateHistoryCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "history <ref>",
		Short: "List every estimate of a requirement, oldest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			r, err := a.Requirements.Resolve(ctx, args[0])
			if err != nil {
				return err
			}
			history, err := a.Estimates.History(ctx, r.ID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatEstimateHistory(r, history))
			return nil
		},
	}
}
