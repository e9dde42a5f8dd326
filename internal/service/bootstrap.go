package service

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/yery-max/Proyecto-final/internal/model"
	"github.com/yery-max/Proyecto-final/internal/store"
)

// CatalogBootstrapper seeds an empty catalog from the initial CSV file when
// it exists, and from a small sample dataset otherwise.
type CatalogBootstrapper struct {
	CatalogPath string
}

func NewCatalogBootstrapper(catalogPath string) *CatalogBootstrapper {
	return &CatalogBootstrapper{CatalogPath: catalogPath}
}

func (b *CatalogBootstrapper) Bootstrap(_ context.Context, tx *store.Tx) error {
	if b.CatalogPath != "" {
		created, updated, err := b.importCatalog(tx)
		switch {
		case err == nil && created+updated == 0:
			log.Warn().Str("file", b.CatalogPath).Msg("bootstrap: initial catalog has no rows, using sample data")
		case err == nil:
			log.Info().Str("file", b.CatalogPath).Int("created", created).Int("updated", updated).Msg("bootstrap: initial catalog imported")
			return nil
		case errors.Is(err, fs.ErrNotExist):
			log.Info().Str("file", b.CatalogPath).Msg("bootstrap: no initial catalog, using sample data")
		default:
			log.Warn().Err(err).Str("file", b.CatalogPath).Msg("bootstrap: initial catalog unusable, using sample data")
			tx.ResetCatalog()
		}
	}
	return seedSampleData(tx)
}

func (b *CatalogBootstrapper) importCatalog(tx *store.Tx) (int, int, error) {
	f, err := os.Open(b.CatalogPath)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()
	rows, err := ParseCSV(f)
	if err != nil {
		return 0, 0, err
	}
	return applyImport(tx, rows)
}

func seedSampleData(tx *store.Tx) error {
	for _, name := range []string{"Centro", "Norte", "Sur"} {
		tx.RegisterBranch(name)
	}
	samples := []model.Product{
		{SKU: "TEC-001", Name: "Teclado Mecanico", Price: decimal.RequireFromString("89.99"), Stock: 15, Branch: "Centro"},
		{SKU: "MOU-001", Name: "Mouse Gamer RGB", Price: decimal.RequireFromString("45.50"), Stock: 35, Branch: "Centro"},
		{SKU: "TEC-001", Name: "Teclado Mecanico", Price: decimal.RequireFromString("89.99"), Stock: 8, Branch: "Norte"},
	}
	for _, p := range samples {
		if _, err := addProductTx(tx, p); err != nil {
			return err
		}
	}
	return nil
}
