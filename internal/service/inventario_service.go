package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/yery-max/Proyecto-final/internal/dto"
	"github.com/yery-max/Proyecto-final/internal/infra"
	"github.com/yery-max/Proyecto-final/internal/model"
	"github.com/yery-max/Proyecto-final/internal/store"
)

const resetMessage = "Sistema reinicializado."

type InventoryService interface {
	TransferStock(ctx context.Context, req dto.TransferRequest) (string, error)
	Reset(ctx context.Context) (string, error)
	LowStock(ctx context.Context, branch string) []model.Product
}

type inventoryService struct {
	store   *store.Store
	metrics *infra.Metrics
}

func NewInventoryService(st *store.Store, metrics *infra.Metrics) InventoryService {
	return &inventoryService{store: st, metrics: metrics}
}

// TransferStock moves stock between two branches of the same SKU. When the
// destination has no record yet, the origin product is cloned there with a
// fresh id and stock equal to the moved quantity.
func (s *inventoryService) TransferStock(ctx context.Context, req dto.TransferRequest) (msg string, err error) {
	started := time.Now()
	defer func() { observe(s.metrics, "transfer_stock", started, err) }()

	if err := validateTransfer(req); err != nil {
		return "", err
	}

	err = s.store.Update(ctx, func(tx *store.Tx) error {
		origin, ok := tx.FindProduct(req.SKU, req.Origin)
		if !ok {
			return fmt.Errorf("%w: producto %s en %s", model.ErrNotFound, req.SKU, req.Origin)
		}
		if origin.Stock < req.Quantity {
			return fmt.Errorf("%w: stock insuficiente en %s (disponible %d, solicitado %d)",
				model.ErrInsufficientStock, req.Origin, origin.Stock, req.Quantity)
		}
		origin.Stock -= req.Quantity
		template := *origin

		if dest, ok := tx.FindProduct(req.SKU, req.Destination); ok {
			dest.Stock += req.Quantity
			return nil
		}
		template.Branch = req.Destination
		template.Stock = req.Quantity
		_, err := addProductTx(tx, template)
		return err
	})
	if err != nil {
		return "", err
	}

	log.Info().
		Str("sku", req.SKU).
		Int("quantity", req.Quantity).
		Str("origin", req.Origin).
		Str("destination", req.Destination).
		Msg("stock transferred")
	return fmt.Sprintf("Transferencia de %d u. de %s de %s a %s exitosa.", req.Quantity, req.SKU, req.Origin, req.Destination), nil
}

// Reset wipes products, sales and branches. Config is kept.
func (s *inventoryService) Reset(ctx context.Context) (msg string, err error) {
	started := time.Now()
	defer func() { observe(s.metrics, "reset", started, err) }()

	err = s.store.Update(ctx, func(tx *store.Tx) error {
		tx.Reset()
		return nil
	})
	if err != nil {
		return "", err
	}
	log.Warn().Msg("system reset: all products, sales and branches removed")
	return resetMessage, nil
}

// LowStock lists products at or below the configured threshold.
func (s *inventoryService) LowStock(_ context.Context, branch string) []model.Product {
	var out []model.Product
	_ = s.store.View(func(v store.View) error {
		cfg := v.Config()
		for _, p := range v.Products(branch) {
			if cfg.IsLowStock(p.Stock) {
				out = append(out, p)
			}
		}
		return nil
	})
	return out
}

func validateTransfer(req dto.TransferRequest) error {
	fields := map[string]string{}
	if req.SKU == "" {
		fields["sku"] = "required"
	}
	if req.Quantity <= 0 {
		fields["quantity"] = "min"
	}
	if req.Origin == "" {
		fields["origin"] = "required"
	}
	if req.Destination == "" {
		fields["destination"] = "required"
	} else if req.Destination == req.Origin {
		fields["destination"] = "nefield"
	}
	if len(fields) > 0 {
		return &model.ValidationError{Fields: fields}
	}
	return nil
}
