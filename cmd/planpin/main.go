package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/planpin/internal/api"
	"github.com/alexanderramin/planpin/internal/cli"
	"github.com/alexanderramin/planpin/internal/config"
	"github.com/alexanderramin/planpin/internal/db"
	"github.com/alexanderramin/planpin/internal/pins"
	"github.com/alexanderramin/planpin/internal/repository"
	"github.com/alexanderramin/planpin/internal/service"
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

	// Open the device database (settings only; plans and pins live on the server)
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	settings := repository.NewSQLiteSettingsRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	// Call logging goes to stderr so it never mixes with command output.
	var callObserver api.CallObserver = api.NoopObserver{}
	var useCaseObservers []service.UseCaseObserver
	var pinObserver pins.Observer = pins.NoopObserver{}
	if cfg.LogCalls {
		callObserver = api.NewLogObserver(os.Stderr)
		useCaseObservers = append(useCaseObservers, service.NewLogUseCaseObserver(os.Stderr))
		pinObserver = pins.NewLogObserver(os.Stderr)
	}
	client := api.NewClient(cfg.API(), callObserver)

	app := &cli.App{
		Auth:    service.NewAuthService(client, settings, uow, useCaseObservers...),
		Plans:   service.NewPlanService(client, settings, pinObserver, useCaseObservers...),
		Tasks:   service.NewTaskService(client, settings, useCaseObservers...),
		Notices: cfg.Notice,
	}

	// Detect interactive terminal for prompts and the plan viewer.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// Execute root command
	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
