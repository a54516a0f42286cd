package main

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/alexanderramin/soapnote/internal/cli"
	"github.com/alexanderramin/soapnote/internal/config"
	"github.com/alexanderramin/soapnote/internal/db"
	"github.com/alexanderramin/soapnote/internal/logging"
	"github.com/alexanderramin/soapnote/internal/repository"
	"github.com/alexanderramin/soapnote/internal/service"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
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
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
	}

	app.Setup = func(flags cli.RootFlags) error {
		cfg, err := config.Load(flags.Config)
		if err != nil {
			return err
		}
		if flags.Modules != "" {
			cfg.Modules = flags.Modules
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
		if err != nil {
			return fmt.Errorf("building logger: %w", err)
		}
		if cfg.File != "" {
			logger.Debug("config loaded", zap.String("file", cfg.File))
		}

		loaded, err := service.LoadCatalog(cfg.Modules, logger)
		if err != nil {
			return err
		}

		database, err = db.OpenDB(cfg.DB)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}

		observer := service.NewZapUseCaseObserver(logger)
		catalogSvc, err := service.NewCatalogService(loaded, observer)
		if err != nil {
			return err
		}

		// Wire repositories
		blockRepo := repository.NewSQLiteBlockRepo(database)
		logRepo := repository.NewSQLiteGenerationLogRepo(database)
		uow := db.NewSQLiteUnitOfWork(database)

		app.Catalog = catalogSvc
		app.Notes = service.NewNoteService(catalogSvc, blockRepo, logRepo, uow, observer)
		app.Search = service.NewSearchService(catalogSvc, observer)
		app.Logger = logger
		app.Note = cfg.Note
		app.SuggestLimit = cfg.SuggestLimit
		return nil
	}

	return cli.NewRootCmd(app).Execute()
}
