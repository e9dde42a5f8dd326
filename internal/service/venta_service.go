package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/yery-max/Proyecto-final/internal/dto"
	"github.com/yery-max/Proyecto-final/internal/infra"
	"github.com/yery-max/Proyecto-final/internal/model"
	"github.com/yery-max/Proyecto-final/internal/store"
)

// ReceiptEnqueuer hands a committed sale to the async receipt renderer.
type ReceiptEnqueuer interface {
	EnqueueReceipt(saleID string) error
}

type SaleService interface {
	RegisterSale(ctx context.Context, req dto.RegisterSaleRequest) (*dto.RegisterSaleResponse, error)
}

// SaleOptions tune RegisterSale.
type SaleOptions struct {
	// ReloadOnFailure reloads the whole state from storage after a sale is
	// rejected for a missing product or insufficient stock.
	ReloadOnFailure bool
	// Receipts, when set, gets every committed sale id.
	Receipts ReceiptEnqueuer
}

type saleService struct {
	store   *store.Store
	metrics *infra.Metrics
	opts    SaleOptions
}

func NewSaleService(st *store.Store, metrics *infra.Metrics, opts SaleOptions) SaleService {
	return &saleService{store: st, metrics: metrics, opts: opts}
}

// ── RegisterSale ──────────────────────────────────────────────────────────────
// Two phases inside one store transaction:
//   1. Resolve every line in the branch and check stock against the summed
//      demand per product. Any failure rejects the sale untouched.
//   2. Decrement stock line by line, collect low-stock products, append the sale.
// The caller's total is stored as given.

func (s *saleService) RegisterSale(ctx context.Context, req dto.RegisterSaleRequest) (resp *dto.RegisterSaleResponse, err error) {
	started := time.Now()
	defer func() { observe(s.metrics, "register_sale", started, err) }()

	if err := validateSaleRequest(req); err != nil {
		return nil, err
	}

	var (
		sale     model.Sale
		lowStock []dto.ProductResponse
		units    int
	)
	err = s.store.Update(ctx, func(tx *store.Tx) error {
		demand := make(map[string]int, len(req.Items))
		for _, line := range req.Items {
			p, ok := tx.FindProduct(line.SKU, req.Branch)
			if !ok {
				return notFound(line.SKU, req.Branch)
			}
			demand[line.SKU] += line.Quantity
			if p.Stock < demand[line.SKU] {
				return fmt.Errorf("%w: %s en %s (disponible %d, solicitado %d)",
					model.ErrInsufficientStock, line.SKU, req.Branch, p.Stock, demand[line.SKU])
			}
		}

		cfg := tx.Config()
		items := make([]model.SaleItem, 0, len(req.Items))
		for _, line := range req.Items {
			p, _ := tx.FindProduct(line.SKU, req.Branch)
			p.Stock -= line.Quantity
			units += line.Quantity
			items = append(items, model.NewSaleItem(p.SKU, p.Name, line.Quantity, p.Price))
			if cfg.IsLowStock(p.Stock) {
				lowStock = append(lowStock, dto.NewProductResponse(*p, cfg))
			}
		}

		sale = tx.AppendSale(model.Sale{
			Items:  items,
			Branch: req.Branch,
			Total:  req.Total,
		})
		return nil
	})
	if err != nil {
		s.afterRejection(ctx, req, err)
		return nil, err
	}

	if computed := sale.ItemsTotal(); !computed.Equal(sale.Total) {
		log.Warn().
			Str("sale_id", sale.ID).
			Str("total", sale.Total.String()).
			Str("items_total", computed.String()).
			Msg("sale total does not match the sum of its items, stored as given")
	}
	s.metrics.AddSoldUnits(units)
	log.Info().Str("sale_id", sale.ID).Str("branch", sale.Branch).Int("items", len(sale.Items)).Msg("sale registered")

	if s.opts.Receipts != nil {
		if err := s.opts.Receipts.EnqueueReceipt(sale.ID); err != nil {
			log.Warn().Err(err).Str("sale_id", sale.ID).Msg("could not enqueue receipt")
		}
	}

	if lowStock == nil {
		lowStock = []dto.ProductResponse{}
	}
	return &dto.RegisterSaleResponse{
		SaleID:   sale.ID,
		Sale:     dto.NewSaleResponse(sale),
		LowStock: lowStock,
	}, nil
}

func (s *saleService) afterRejection(ctx context.Context, req dto.RegisterSaleRequest, err error) {
	log.Warn().Err(err).Str("branch", req.Branch).Int("lines", len(req.Items)).Msg("sale rejected")
	if !s.opts.ReloadOnFailure {
		return
	}
	if !errors.Is(err, model.ErrNotFound) && !errors.Is(err, model.ErrInsufficientStock) {
		return
	}
	if rerr := s.store.Reload(ctx); rerr != nil {
		log.Error().Err(rerr).Msg("reload after rejected sale failed")
	}
}

func validateSaleRequest(req dto.RegisterSaleRequest) error {
	switch {
	case req.Branch == "":
		return model.NewValidationError("branch", "required")
	case len(req.Items) == 0:
		return model.NewValidationError("items", "required")
	case req.Total.IsNegative():
		return model.NewValidationError("total", "min")
	}
	for i, line := range req.Items {
		if line.SKU == "" {
			return model.NewValidationError(fmt.Sprintf("items[%d].sku", i), "required")
		}
		if line.Quantity <= 0 {
			return model.NewValidationError(fmt.Sprintf("items[%d].quantity", i), "min")
		}
	}
	return nil
}
