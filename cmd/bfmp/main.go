package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/bfmp/internal/cli"
	"github.com/alexanderramin/bfmp/internal/config"
	"github.com/alexanderramin/bfmp/internal/db"
	"github.com/alexanderramin/bfmp/internal/form"
	"github.com/alexanderramin/bfmp/internal/logging"
	"github.com/alexanderramin/bfmp/internal/report"
	"github.com/alexanderramin/bfmp/internal/repository"
	"github.com/alexanderramin/bfmp/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logging.Init(logging.Options{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.Source,
		File:      cfg.Logging.File,
	})
	defer logging.Close()

	schema := form.PlanSchema()
	observer := service.NewLogUseCaseObserver(nil)

	// The ledger is optional; without it generations are simply not recorded.
	var (
		renders repository.RenderRepo
		uow     db.UnitOfWork
	)
	if cfg.History.Enabled {
		database, err := db.OpenDB(cfg.History.Path)
		if err != nil {
			return fmt.Errorf("opening render history: %w", err)
		}
		defer database.Close()
		renders = repository.NewSQLiteRenderRepo(database)
		uow = db.NewSQLiteUnitOfWork(database)
	}

	app := &cli.App{
		Schema: schema,
		Config: cfg,
		Plans: service.NewPlanService(schema, renders, service.PlanOptions{
			Report: report.Options{
				DateLayout:   cfg.Report.DateLayout,
				Organisation: cfg.Report.Organisation,
			},
			ImageTimeout: cfg.Print.ImageTimeout(),
		}, observer),
	}
	if renders != nil {
		app.History = service.NewHistoryService(renders, uow, observer)
	}

	// Detect interactive terminal for forms, prompts and the viewer.
	app.IsInteractive = func() bool {
		in := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		out := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
		return in && out
	}

	return cli.NewRootCmd(app).Execute()
}
