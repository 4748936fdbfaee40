package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alexanderramin/crmsheet/internal/cli"
	"github.com/alexanderramin/crmsheet/internal/config"
	"github.com/alexanderramin/crmsheet/internal/db"
	"github.com/alexanderramin/crmsheet/internal/repository"
	"github.com/alexanderramin/crmsheet/internal/service"
	"github.com/alexanderramin/crmsheet/internal/sheets"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		return err
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	// Wire record store: local SQLite or a remote spreadsheet
	var (
		store repository.Store
		tx    repository.Transactor
	)
	switch cfg.Backend {
	case config.BackendSheets:
		client := sheets.NewClient(sheets.ClientConfig{
			BaseURL:       cfg.Sheets.BaseURL,
			SpreadsheetID: cfg.Sheets.SpreadsheetID,
			AccessToken:   cfg.Sheets.AccessToken,
			MaxRetries:    cfg.Sheets.MaxRetries,
			RetryWaitMin:  cfg.Sheets.RetryWaitMin,
			RetryWaitMax:  cfg.Sheets.RetryWaitMax,
			Timeout:       cfg.Sheets.RequestTimeout,
			Logger:        logger,
		})
		store = sheets.NewStore(client, cfg.Sheets.Names, cfg.CacheTTL)
		tx = sheets.Transactor{Store: store}
	default:
		database, err := db.OpenDB(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()
		store = repository.NewSQLiteStore(database)
		tx = repository.NewSQLiteTransactor(db.NewSQLiteUnitOfWork(database))
	}

	// Wire services
	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if cfg.LogUseCases {
		observer = service.NewLogUseCaseObserver(os.Stderr, level)
	}
	opts := []service.Option{service.WithAuthor(cfg.Author), service.WithObserver(observer)}

	app := &cli.App{
		Companies:  service.NewCompanyService(store, tx, opts...),
		Contacts:   service.NewContactService(store, tx, opts...),
		Activities: service.NewActivityService(store, tx, opts...),
		History:    service.NewHistoryService(store, opts...),
		Timeline:   service.NewTimelineService(store),
		Tags:       service.NewTagService(store, tx, opts...),
		Agenda:     service.NewAgendaService(store.Activities, opts...),
		Profile:    service.NewProfileService(store.Profiles, opts...),
		Remote:     cfg.Backend == config.BackendSheets,
	}

	// Prompts and spinners only on an interactive terminal.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
