// cmd/cargacsv/main.go: importa un CSV de productos en el almacenamiento configurado.
// Uso: go run ./cmd/cargacsv -file productos.csv
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/yery-max/Proyecto-final/internal/config"
	"github.com/yery-max/Proyecto-final/internal/infra"
	"github.com/yery-max/Proyecto-final/internal/model"
	"github.com/yery-max/Proyecto-final/internal/service"
	"github.com/yery-max/Proyecto-final/internal/store"
)

func main() {
	file := flag.String("file", "", "CSV con columnas sku,nombre,precio,stock,sucursal")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if *file == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if cfg.StorageDriver == config.DriverMemory {
		log.Fatal().Msg("cargacsv needs a durable storage driver (json or sqlite)")
	}

	repo, _, err := infra.OpenStateRepository(infra.StorageOptionsFrom(cfg))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open storage")
	}
	st := store.New(repo, store.Options{
		Config:    model.Config{LowStockThreshold: cfg.LowStockThreshold},
		Bootstrap: service.NewCatalogBootstrapper(cfg.InitialCatalog),
	})

	ctx := context.Background()
	if err := st.Load(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to load state")
	}

	f, err := os.Open(*file)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("cannot open csv")
	}
	defer f.Close()

	resp, err := service.NewImportService(st, nil).ImportCSV(ctx, f)
	if err != nil {
		_ = repo.Close()
		log.Fatal().Err(err).Msg("import failed, nothing was saved")
	}
	if err := repo.Close(); err != nil {
		log.Error().Err(err).Msg("close storage")
	}
	fmt.Printf("✅ %s\n", resp.Message)
}
