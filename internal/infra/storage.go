package infra

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/yery-max/Proyecto-final/internal/config"
	"github.com/yery-max/Proyecto-final/internal/repository"
)

// StorageOptions select and locate the state repository.
type StorageOptions struct {
	Driver     string // one of config.DriverJSON, DriverSQLite, DriverMemory
	DataDir    string
	SQLitePath string
}

// StorageOptionsFrom extracts the storage settings of cfg.
func StorageOptionsFrom(cfg *config.Config) StorageOptions {
	return StorageOptions{Driver: cfg.StorageDriver, DataDir: cfg.DataDir, SQLitePath: cfg.SQLitePath}
}

type pinger interface {
	Ping(ctx context.Context) error
}

// OpenStateRepository builds the repository for opts.Driver. The returned
// healthCheck pings the backend for /health and is nil when there is nothing to check.
func OpenStateRepository(opts StorageOptions) (repository.StateRepository, func(ctx context.Context) error, error) {
	var repo repository.StateRepository
	switch opts.Driver {
	case config.DriverJSON, "":
		js, err := repository.NewJSONStore(opts.DataDir)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("driver", config.DriverJSON).Str("dir", js.Dir()).Msg("storage opened")
		repo = js
	case config.DriverSQLite:
		db, err := NewDatabase(opts.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite %s: %w", opts.SQLitePath, err)
		}
		ss, err := repository.NewSQLiteStore(db)
		if err != nil {
			if sqlDB, derr := db.DB(); derr == nil {
				_ = sqlDB.Close()
			}
			return nil, nil, err
		}
		log.Info().Str("driver", config.DriverSQLite).Str("path", opts.SQLitePath).Msg("storage opened")
		repo = ss
	case config.DriverMemory:
		return repository.NewMemoryStore(), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", opts.Driver)
	}
	if p, ok := repo.(pinger); ok {
		return repo, p.Ping, nil
	}
	return repo, nil, nil
}
