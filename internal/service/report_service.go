package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/yery-max/Proyecto-final/internal/infra"
	"github.com/yery-max/Proyecto-final/internal/model"
	"github.com/yery-max/Proyecto-final/internal/store"
)

// ReportService renders PDF reports from snapshots of the store. The
// snapshot is taken under the read lock; rendering happens outside it.
type ReportService interface {
	InventoryReport(ctx context.Context, branch string) (string, error)
	SaleReceipt(ctx context.Context, saleID string) (string, error)
	DailyClosing(ctx context.Context, day time.Time) (string, error)
	// Today is the store clock, the default date of a closing report.
	Today() time.Time
}

type reportService struct {
	store   *store.Store
	dir     string
	metrics *infra.Metrics
}

func NewReportService(st *store.Store, reportsPath string, metrics *infra.Metrics) ReportService {
	return &reportService{store: st, dir: reportsPath, metrics: metrics}
}

func (s *reportService) InventoryReport(_ context.Context, branch string) (string, error) {
	var products []model.Product
	err := s.store.View(func(v store.View) error {
		if branch != "" && !v.HasBranch(branch) {
			return fmt.Errorf("%w: sucursal %s", model.ErrNotFound, branch)
		}
		products = v.Products(branch)
		return nil
	})
	if err != nil {
		return "", err
	}
	path, err := infra.GenerateInventoryPDF(products, branch, s.store.Now(), s.dir)
	if err != nil {
		return "", err
	}
	log.Info().Str("path", path).Str("branch", infra.InventoryBranchLabel(branch)).Msg("inventory report generated")
	return path, nil
}

func (s *reportService) SaleReceipt(_ context.Context, saleID string) (string, error) {
	var (
		sale model.Sale
		ok   bool
	)
	_ = s.store.View(func(v store.View) error {
		sale, ok = v.Sale(saleID)
		return nil
	})
	if !ok {
		return "", fmt.Errorf("%w: venta %s", model.ErrNotFound, saleID)
	}
	return infra.GenerateReceiptPDF(sale, s.dir)
}

func (s *reportService) Today() time.Time { return s.store.Now() }

// DailyClosing renders the closing report of day's calendar date.
func (s *reportService) DailyClosing(_ context.Context, day time.Time) (string, error) {
	var sales []model.Sale
	_ = s.store.View(func(v store.View) error {
		sales = v.SalesOn(day)
		return nil
	})
	path, err := infra.GenerateClosingPDF(day, sales, s.store.Now(), s.dir)
	if err != nil {
		return "", err
	}
	s.metrics.IncClosing()
	log.Info().Str("path", path).Int("sales", len(sales)).Msg("daily closing generated")
	return path, nil
}
