package app

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/hance08/ledger/internal/config"
	"github.com/hance08/ledger/internal/events"
	"github.com/hance08/ledger/internal/events/kafka"
	"github.com/hance08/ledger/internal/ledger"
	"github.com/hance08/ledger/internal/service"
	"github.com/hance08/ledger/internal/store"
	"github.com/hance08/ledger/internal/store/memory"
	"github.com/hance08/ledger/internal/store/postgres"
	"github.com/hance08/ledger/internal/store/sqlite"
)

type App struct {
	Service   *service.Service
	Store     store.Store
	Publisher events.Publisher
	Config    *config.Config
	Logger    *slog.Logger
}

// NewApp opens the configured store and event publisher and wires the
// service on top. The returned cleanup closes both.
func NewApp(ctx context.Context, cfg *config.Config, migrationFS fs.FS, logger *slog.Logger) (*App, func(), error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	dbStore, err := openStore(ctx, cfg, migrationFS)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	var publisher events.Publisher = events.Nop{}
	if cfg.Events.Enabled {
		publisher, err = kafka.NewPublisher(cfg.Events.Brokers, cfg.Events.Topic)
		if err != nil {
			_ = dbStore.Close()
			return nil, nil, fmt.Errorf("failed to initialize event publisher: %w", err)
		}
	}

	svc := service.NewService(dbStore, service.Config{
		DefaultCurrency: cfg.DefaultCurrency(),
		ListLimit:       cfg.Defaults.ListLimit,
	}, ledger.WithPublisher(publisher), ledger.WithLogger(logger))

	cleanup := func() {
		if err := publisher.Close(); err != nil {
			logger.Error("failed to close event publisher", "error", err)
		}
		if err := dbStore.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}

	return &App{
		Service:   svc,
		Store:     dbStore,
		Publisher: publisher,
		Config:    cfg,
		Logger:    logger,
	}, cleanup, nil
}

func openStore(ctx context.Context, cfg *config.Config, migrationFS fs.FS) (store.Store, error) {
	db := cfg.Database

	switch db.Driver {
	case config.DriverPostgres:
		return postgres.NewStore(ctx, db.URL, migrationFS, postgres.Options{
			LockTimeout: db.LockTimeout,
			MaxConns:    int32(db.MaxConns),
		})
	case config.DriverMemory:
		return memory.NewStore(db.LockTimeout), nil
	default:
		path, err := cfg.DatabasePath()
		if err != nil {
			return nil, err
		}
		return sqlite.NewStore(path, migrationFS, sqlite.Options{
			BusyTimeout: db.LockTimeout,
			MaxConns:    db.MaxConns,
		})
	}
}
