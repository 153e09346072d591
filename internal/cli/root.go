package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Ehphp/RequestEstimator-sub000/internal/config"
	"github.com/Ehphp/RequestEstimator-sub000/internal/domain"
	"github.com/Ehphp/RequestEstimator-sub000/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Requirements service.RequirementService
	Estimates    service.EstimateService
	Dashboard    service.DashboardService
	Imports      service.ImportService

	Catalog *domain.Catalog
	Config  *config.Config

	// Viper, when set, is loaded from the root flags before any command
	// runs; Wire then builds the services from the resolved Config.
	Viper *viper.Viper
	Wire  func(app *App) error

	IsInteractive func() bool
	Now           func() time.Time
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "estimator" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "estimator",
		Short:         "Requirement estimation and delivery projection",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.String(config.KeyConfig, "", "Config file (default ./.estimator.yaml or $HOME/.estimator.yaml)")
	pf.String(config.KeyDB, config.DefaultDBPath(), "SQLite database path")
	pf.String(config.KeyCatalog, "", "Catalog YAML file (default: built-in catalog)")
	pf.Int(config.KeyDevelopers, 1, "Developers working in parallel")
	pf.Bool(config.KeyExcludeWeekends, true, "Skip Saturdays and Sundays when projecting")
	pf.String(config.KeyPolicy, string(domain.PolicyNeutral), "Scheduling policy: neutral or priority_first")
	pf.StringSlice(config.KeyHolidays, nil, "Non-working dates (YYYY-MM-DD, repeatable)")
	pf.String(config.KeySort, string(domain.SortCreatedAsc), "Sibling order: created_asc, created_desc, priority, title, estimate_asc, estimate_desc")
	pf.BoolP(config.KeyVerbose, "v", false, "Log use cases to stderr")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if app.Viper == nil {
			return nil
		}
		if err := config.BindFlags(app.Viper, root.PersistentFlags()); err != nil {
			return err
		}
		cfg, err := config.Load(app.Viper)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		app.Config = cfg
		if app.Wire != nil {
			return app.Wire(app)
		}
		return nil
	}

	root.AddCommand(
		newRequirementCmd(app),
		newEstimateCmd(app),
		newDashboardCmd(app),
		newCatalogCmd(app),
		newImportCmd(app),
	)

	return root
}

func (a *App) settings() *config.Config {
	if a.Config != nil {
		return a.Config
	}
	return &config.Config{
		Developers:      1,
		ExcludeWeekends: true,
		Policy:          string(domain.PolicyNeutral),
		SortKey:         string(domain.SortCreatedAsc),
	}
}
