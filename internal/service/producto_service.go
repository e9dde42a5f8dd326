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

type ProductService interface {
	AddProduct(ctx context.Context, req dto.AddProductRequest) (model.Product, error)
	EditProduct(ctx context.Context, sku, branch string, patch model.ProductPatch) (model.Product, error)
	DeleteProduct(ctx context.Context, sku, branch string) error
	FindProduct(ctx context.Context, sku, branch string) (model.Product, error)
}

type productService struct {
	store   *store.Store
	metrics *infra.Metrics
}

func NewProductService(st *store.Store, metrics *infra.Metrics) ProductService {
	return &productService{store: st, metrics: metrics}
}

// addProductTx is the single creation path for products: AddProduct and
// BulkImport both go through it, so both register the product's branch.
func addProductTx(tx *store.Tx, p model.Product) (model.Product, error) {
	created, err := tx.InsertProduct(p)
	if err != nil {
		return model.Product{}, err
	}
	tx.RegisterBranch(created.Branch)
	return created, nil
}

func (s *productService) AddProduct(ctx context.Context, req dto.AddProductRequest) (created model.Product, err error) {
	started := time.Now()
	defer func() { observe(s.metrics, "add_product", started, err) }()

	err = s.store.Update(ctx, func(tx *store.Tx) error {
		p, err := addProductTx(tx, model.Product{
			SKU:    req.SKU,
			Name:   req.Name,
			Price:  req.Price,
			Stock:  req.Stock,
			Branch: req.Branch,
		})
		created = p
		return err
	})
	if err != nil {
		return model.Product{}, err
	}
	log.Info().Str("sku", created.SKU).Str("branch", created.Branch).Msg("product added")
	return created, nil
}

func (s *productService) EditProduct(ctx context.Context, sku, branch string, patch model.ProductPatch) (edited model.Product, err error) {
	started := time.Now()
	defer func() { observe(s.metrics, "edit_product", started, err) }()

	err = s.store.Update(ctx, func(tx *store.Tx) error {
		p, ok := tx.FindProduct(sku, branch)
		if !ok {
			return notFound(sku, branch)
		}
		next := *p
		patch.Apply(&next)
		if err := next.Validate(); err != nil {
			return err
		}
		*p = next
		edited = next
		return nil
	})
	if err != nil {
		return model.Product{}, err
	}
	return edited, nil
}

func (s *productService) DeleteProduct(ctx context.Context, sku, branch string) (err error) {
	started := time.Now()
	defer func() { observe(s.metrics, "delete_product", started, err) }()

	return s.store.Update(ctx, func(tx *store.Tx) error {
		if _, ok := tx.RemoveProduct(sku, branch); !ok {
			return notFound(sku, branch)
		}
		return nil
	})
}

func (s *productService) FindProduct(_ context.Context, sku, branch string) (model.Product, error) {
	var (
		p  model.Product
		ok bool
	)
	_ = s.store.View(func(v store.View) error {
		p, ok = v.FindProduct(sku, branch)
		return nil
	})
	if !ok {
		return model.Product{}, notFound(sku, branch)
	}
	return p, nil
}

func notFound(sku, branch string) error {
	return fmt.Errorf("%w: producto %s en %s", model.ErrNotFound, sku, branch)
}
