package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/yery-max/Proyecto-final/internal/config"
	"github.com/yery-max/Proyecto-final/internal/infra"
	"github.com/yery-max/Proyecto-final/internal/model"
	"github.com/yery-max/Proyecto-final/internal/router"
	"github.com/yery-max/Proyecto-final/internal/service"
	"github.com/yery-max/Proyecto-final/internal/store"
	"github.com/yery-max/Proyecto-final/internal/worker"
)

const receiptQueueSize = 256

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	setupLogger(cfg)

	metrics := infra.NewMetrics()

	repo, healthCheck, err := infra.OpenStateRepository(infra.StorageOptionsFrom(cfg))
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StorageDriver).Msg("failed to open storage")
	}

	st := store.New(repo, store.Options{
		Config:    model.Config{LowStockThreshold: cfg.LowStockThreshold},
		Bootstrap: service.NewCatalogBootstrapper(cfg.InitialCatalog),
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := st.Load(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to load state")
	}

	// Receipts are rendered off the request path by the worker pool.
	dispatcher := worker.NewDispatcher(receiptQueueSize, metrics)
	var receipts service.ReceiptEnqueuer
	if cfg.AutoReceipt {
		receipts = dispatcher
	}
	svcs := service.NewServices(st, metrics, cfg.ReportsPath, service.SaleOptions{
		ReloadOnFailure: cfg.ReloadOnFailedSale,
		Receipts:        receipts,
	})
	worker.StartWorkerPool(ctx, dispatcher, svcs.Reports, cfg.ReceiptWorkers)

	closeRequested := make(chan struct{}, 1)
	var requestShutdown func()
	if cfg.ClosingShutdown {
		requestShutdown = func() {
			select {
			case closeRequested <- struct{}{}:
			default:
			}
		}
	}
	cronDone := worker.StartClosingCron(ctx, worker.ClosingCronConfig{
		Hour:     cfg.ClosingHour,
		Minute:   cfg.ClosingMinute,
		Interval: cfg.ClosingInterval(),
		Reporter: svcs.Reports,
		Shutdown: requestShutdown,
	})

	r := router.New(cfg, svcs, metrics, healthCheck)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Msgf("inventory backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Graceful shutdown on SIGINT / SIGTERM or after the daily close
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	closedByCron := false
	select {
	case <-quit:
	case <-closeRequested:
		closedByCron = true
	}

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}

	if n := dispatcher.Pending(); n > 0 {
		log.Warn().Int("pending", n).Msg("receipt jobs dropped at shutdown, render them from /v1/reportes/ventas/:id/recibo")
	}
	cancel()
	dispatcher.Wait()
	<-cronDone

	if cfg.ClosingReportOnExit && !closedByCron {
		if _, err := svcs.Reports.DailyClosing(shutdownCtx, svcs.Reports.Today()); err != nil {
			log.Error().Err(err).Msg("closing report on exit failed")
		}
	}
	if err := st.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("final save failed")
	}
	log.Info().Msg("server exited")
}

// setupLogger: pretty console in development, JSON in production.
func setupLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = time.RFC3339
	if cfg.IsProduction() {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
		return
	}
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}
