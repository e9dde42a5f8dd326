package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yery-max/Proyecto-final/internal/dto"
	"github.com/yery-max/Proyecto-final/internal/model"
	"github.com/yery-max/Proyecto-final/internal/store"
)

// QueryService is the read-only side of the engine. Nothing here mutates the store.
type QueryService interface {
	ListProducts(ctx context.Context, branch string) []model.Product
	ListBranches(ctx context.Context) []dto.BranchResponse
	GetSale(ctx context.Context, id string) (model.Sale, error)
	SalesOn(ctx context.Context, day time.Time) dto.DailySalesResponse
	TodaySales(ctx context.Context) dto.DailySalesResponse
	Summary(ctx context.Context, branch string) dto.SummaryResponse
	Config() model.Config
}

type queryService struct {
	store *store.Store
}

func NewQueryService(st *store.Store) QueryService {
	return &queryService{store: st}
}

func (s *queryService) ListProducts(_ context.Context, branch string) []model.Product {
	var out []model.Product
	_ = s.store.View(func(v store.View) error {
		out = v.Products(branch)
		return nil
	})
	return out
}

// ListBranches returns the registry sorted by name with the product count of each branch.
func (s *queryService) ListBranches(_ context.Context) []dto.BranchResponse {
	var out []dto.BranchResponse
	_ = s.store.View(func(v store.View) error {
		counts := map[string]int{}
		for _, p := range v.Products("") {
			counts[p.Branch]++
		}
		names := v.Branches()
		out = make([]dto.BranchResponse, 0, len(names))
		for _, name := range names {
			out = append(out, dto.BranchResponse{Name: name, Products: counts[name]})
		}
		return nil
	})
	return out
}

func (s *queryService) GetSale(_ context.Context, id string) (model.Sale, error) {
	var (
		sale model.Sale
		ok   bool
	)
	_ = s.store.View(func(v store.View) error {
		sale, ok = v.Sale(id)
		return nil
	})
	if !ok {
		return model.Sale{}, fmt.Errorf("%w: venta %s", model.ErrNotFound, id)
	}
	return sale, nil
}

func (s *queryService) SalesOn(_ context.Context, day time.Time) dto.DailySalesResponse {
	var sales []model.Sale
	_ = s.store.View(func(v store.View) error {
		sales = v.SalesOn(day)
		return nil
	})
	return dailySales(day, sales)
}

func (s *queryService) TodaySales(ctx context.Context) dto.DailySalesResponse {
	return s.SalesOn(ctx, s.store.Now())
}

// Summary aggregates the dashboard figures, all branches when branch is empty.
func (s *queryService) Summary(_ context.Context, branch string) dto.SummaryResponse {
	resp := dto.SummaryResponse{Branch: branch}
	_ = s.store.View(func(v store.View) error {
		cfg := v.Config()
		resp.Threshold = cfg.LowStockThreshold
		skus := map[string]struct{}{}
		for _, p := range v.Products(branch) {
			skus[p.SKU] = struct{}{}
			resp.TotalUnits += p.Stock
			if cfg.IsLowStock(p.Stock) {
				resp.LowStockCount++
			}
		}
		resp.DistinctSKUs = len(skus)
		return nil
	})
	return resp
}

func (s *queryService) Config() model.Config { return s.store.Config() }

func dailySales(day time.Time, sales []model.Sale) dto.DailySalesResponse {
	resp := dto.DailySalesResponse{
		Date:  day.Format("2006-01-02"),
		Count: len(sales),
		Total: decimal.Zero,
		Sales: make([]dto.SaleResponse, 0, len(sales)),
	}
	for _, sale := range sales {
		resp.Total = resp.Total.Add(sale.Total)
		resp.Sales = append(resp.Sales, dto.NewSaleResponse(sale))
	}
	return resp
}
