package repository

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yery-max/Proyecto-final/internal/model"
)

func sampleDocs() Documents {
	ts := time.Date(2024, 3, 1, 10, 15, 0, 0, time.FixedZone("ART", -3*3600))
	return Documents{
		Products: []model.Product{
			{ID: "p1", SKU: "TEC-001", Name: "Teclado Mecanico", Price: decimal.RequireFromString("89.99"), Stock: 15, Branch: "Centro"},
			{ID: "p2", SKU: "TEC-001", Name: "Teclado Mecanico", Price: decimal.RequireFromString("89.99"), Stock: 8, Branch: "Norte"},
		},
		Branches: model.Branches{"Centro": {}, "Norte": {}},
		Sales: []model.Sale{{
			ID:        "VTA-ABC123",
			Timestamp: ts,
			Items:     []model.SaleItem{model.NewSaleItem("TEC-001", "Teclado Mecanico", 2, decimal.RequireFromString("89.99"))},
			Branch:    "Centro",
			Total:     decimal.RequireFromString("179.98"),
		}},
	}
}

// encodeAll is the byte-level view used to compare round trips.
func encodeAll(t *testing.T, docs Documents) map[string]string {
	t.Helper()
	out := map[string]string{}
	for _, b := range buckets {
		data, err := encodeBucket(docs, b)
		require.NoError(t, err)
		out[b] = string(data)
	}
	return out
}

// ── JSONStore ─────────────────────────────────────────────────────────────────

func TestJSONStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := NewJSONStore(t.TempDir())
	require.NoError(t, err)

	docs := sampleDocs()
	require.NoError(t, s.Save(ctx, docs))

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, encodeAll(t, docs), encodeAll(t, loaded))

	// Save after Load reproduces the same bytes on disk, document by document.
	before := map[string]string{}
	for _, b := range buckets {
		data, err := os.ReadFile(s.Path(b))
		require.NoError(t, err)
		before[b] = string(data)
	}
	require.NoError(t, s.Save(ctx, loaded))
	for _, b := range buckets {
		data, err := os.ReadFile(s.Path(b))
		require.NoError(t, err)
		assert.Equal(t, before[b], string(data), b)
	}
}

func TestSave_CancelledContextIsPersistenceError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	js, err := NewJSONStore(t.TempDir())
	require.NoError(t, err)
	for name, repo := range map[string]StateRepository{"json": js, "memory": NewMemoryStore()} {
		err := repo.Save(ctx, sampleDocs())
		assert.ErrorIs(t, err, ErrPersistence, name)
		assert.ErrorIs(t, err, context.Canceled, name)

		_, err = repo.Load(ctx)
		assert.ErrorIs(t, err, ErrPersistence, name)
	}
}

func TestJSONStore_FileNamesAndFormat(t *testing.T) {
	dir := t.TempDir()
	s, err := NewJSONStore(dir)
	require.NoError(t, err)
	require.NoError(t, s.Save(context.Background(), sampleDocs()))

	for _, name := range []string{ProductsFile, BranchesFile, SalesFile} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
	raw, err := os.ReadFile(filepath.Join(dir, BranchesFile))
	require.NoError(t, err)
	assert.JSONEq(t, `{"Centro":{},"Norte":{}}`, string(raw))

	var products []map[string]any
	raw, err = os.ReadFile(filepath.Join(dir, ProductsFile))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &products))
	assert.Equal(t, 89.99, products[0]["price"])

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 3, "no temp files left behind")
}

func TestJSONStore_MissingAndMalformed(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := NewJSONStore(dir)
	require.NoError(t, err)

	docs, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, docs.Products)
	assert.Nil(t, docs.Branches)
	assert.Nil(t, docs.Sales)

	require.NoError(t, s.Save(ctx, sampleDocs()))
	require.NoError(t, os.WriteFile(filepath.Join(dir, SalesFile), []byte("{not json"), 0o644))

	docs, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, docs.Sales)
	assert.Len(t, docs.Products, 2, "other documents load independently")
	assert.Len(t, docs.Branches, 2)
}

func TestJSONStore_SaveFailureKeepsPreviousDocuments(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := NewJSONStore(dir)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, sampleDocs()))

	// A directory where the sales file should go makes the final rename fail.
	require.NoError(t, os.Remove(filepath.Join(dir, SalesFile)))
	require.NoError(t, os.Mkdir(filepath.Join(dir, SalesFile), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, SalesFile, "keep"), []byte("x"), 0o644))

	err = s.Save(ctx, Documents{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPersistence)
	var pe *PersistenceError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "save", pe.Op)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp-", "temp files are cleaned up")
	}
}

func TestJSONStore_Ping(t *testing.T) {
	dir := t.TempDir()
	s, err := NewJSONStore(filepath.Join(dir, "data"))
	require.NoError(t, err)
	assert.NoError(t, s.Ping(context.Background()))

	require.NoError(t, os.RemoveAll(filepath.Join(dir, "data")))
	assert.Error(t, s.Ping(context.Background()))
}

// ── MemoryStore ───────────────────────────────────────────────────────────────

func TestMemoryStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	docs := sampleDocs()
	require.NoError(t, s.Save(ctx, docs))
	assert.Equal(t, 1, s.Saves())

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, encodeAll(t, docs), encodeAll(t, loaded))

	s.SetRaw(BucketProducts, []byte("[{"))
	s.SetRaw(BucketSales, nil)
	loaded, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, loaded.Products)
	assert.Nil(t, loaded.Sales)
	assert.Len(t, loaded.Branches, 2)
}

func TestEncodeBucket_NilIsEmpty(t *testing.T) {
	enc := encodeAll(t, Documents{})
	assert.Equal(t, "[]", enc[BucketProducts])
	assert.Equal(t, "{}", enc[BucketBranches])
	assert.Equal(t, "[]", enc[BucketSales])
}
