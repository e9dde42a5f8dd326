package infra

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yery-max/Proyecto-final/internal/config"
	"github.com/yery-max/Proyecto-final/internal/repository"
)

func TestOpenStateRepository(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	t.Run("json", func(t *testing.T) {
		repo, healthCheck, err := OpenStateRepository(StorageOptions{Driver: config.DriverJSON, DataDir: filepath.Join(dir, "data")})
		require.NoError(t, err)
		defer repo.Close()
		assert.IsType(t, &repository.JSONStore{}, repo)
		require.NotNil(t, healthCheck)
		assert.NoError(t, healthCheck(ctx))
	})

	t.Run("sqlite", func(t *testing.T) {
		repo, healthCheck, err := OpenStateRepository(StorageOptions{Driver: config.DriverSQLite, SQLitePath: filepath.Join(dir, "db", "inv.db")})
		require.NoError(t, err)
		defer repo.Close()
		assert.IsType(t, &repository.SQLiteStore{}, repo)
		require.NotNil(t, healthCheck)
		assert.NoError(t, healthCheck(ctx))
	})

	t.Run("memory", func(t *testing.T) {
		repo, healthCheck, err := OpenStateRepository(StorageOptions{Driver: config.DriverMemory})
		require.NoError(t, err)
		assert.IsType(t, &repository.MemoryStore{}, repo)
		assert.Nil(t, healthCheck)
	})

	t.Run("unknown", func(t *testing.T) {
		_, _, err := OpenStateRepository(StorageOptions{Driver: "postgres"})
		assert.Error(t, err)
	})
}

func TestStorageOptionsFrom(t *testing.T) {
	opts := StorageOptionsFrom(&config.Config{StorageDriver: "sqlite", DataDir: "d", SQLitePath: "d/x.db"})
	assert.Equal(t, StorageOptions{Driver: "sqlite", DataDir: "d", SQLitePath: "d/x.db"}, opts)
}
