package main

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/Ehphp/RequestEstimator-sub000/internal/catalog"
	"github.com/Ehphp/RequestEstimator-sub000/internal/cli"
	"github.com/Ehphp/RequestEstimator-sub000/internal/config"
	"github.com/Ehphp/RequestEstimator-sub000/internal/db"
	"github.com/Ehphp/RequestEstimator-sub000/internal/repository"
	"github.com/Ehphp/RequestEstimator-sub000/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var database *sql.DB
	defer func() {
		if database != nil {
			database.Close()
		}
	}()

	app := &cli.App{
		Viper: config.New(),
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
	}

	// Wire runs after the root flags and config file are resolved.
	app.Wire = func(app *cli.App) error {
		cfg := app.Config

		cat, err := catalog.Load(cfg.CatalogPath)
		if err != nil {
			return fmt.Errorf("loading catalog: %w", err)
		}

		database, err = db.OpenDB(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}

		var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
		if cfg.Verbose {
			observer = service.NewLogUseCaseObserver(os.Stderr)
		}

		reqRepo := repository.NewSQLiteRequirementRepo(database)
		estRepo := repository.NewSQLiteEstimateRepo(database)
		uow := db.NewSQLiteUnitOfWork(database)

		app.Catalog = cat
		app.Requirements = service.NewRequirementService(reqRepo, uow, observer)
		app.Estimates = service.NewEstimateService(cat, reqRepo, estRepo, observer)
		app.Dashboard = service.NewDashboardService(reqRepo, estRepo, observer)
		app.Imports = service.NewImportService(cat, uow, observer)
		return nil
	}

	return cli.NewRootCmd(app).Execute()
}
