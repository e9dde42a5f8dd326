package infra

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase opens (or creates) the SQLite snapshot database at path through
// GORM and applies the connection pragmas the engine relies on.
// The engine is the only writer, so the pool is pinned to one connection.
func NewDatabase(path string) (*gorm.DB, error) {
	if path == "" {
		path = "data/inventario.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create database dir: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("sqlite pragmas: %w", err)
	}
	return db, nil
}

// applyPragmas is idempotent; every statement may run on an existing file.
func applyPragmas(db *gorm.DB) error {
	pragmas := []struct{ descr, sql string }{
		{"write-ahead log", `PRAGMA journal_mode=WAL`},
		{"full fsync on commit", `PRAGMA synchronous=FULL`},
		{"wait for locks", `PRAGMA busy_timeout=5000`},
	}
	for _, p := range pragmas {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("%s: %w", p.descr, err)
		}
	}
	return nil
}
