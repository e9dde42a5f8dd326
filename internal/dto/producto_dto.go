package dto

import (
	"github.com/shopspring/decimal"

	"github.com/yery-max/Proyecto-final/internal/model"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AddProductRequest struct {
	SKU    string          `json:"sku"    validate:"required,max=64"`
	Name   string          `json:"name"   validate:"required,max=120"`
	Price  decimal.Decimal `json:"price"  validate:"min=0"`
	Stock  int             `json:"stock"  validate:"min=0"`
	Branch string          `json:"branch" validate:"required,max=80"`
}

// EditProductRequest is a partial update: omitted fields keep their value.
type EditProductRequest struct {
	Name  *string          `json:"name"  validate:"omitempty,min=1,max=120"`
	Price *decimal.Decimal `json:"price"`
	Stock *int             `json:"stock" validate:"omitempty,min=0"`
}

// Patch converts the request into the model patch.
func (r EditProductRequest) Patch() model.ProductPatch {
	return model.ProductPatch{Name: r.Name, Price: r.Price, Stock: r.Stock}
}

// ─── Filter ──────────────────────────────────────────────────────────────────

type ProductFilter struct {
	Branch string `form:"sucursal"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductResponse struct {
	ID       string          `json:"id"`
	SKU      string          `json:"sku"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Stock    int             `json:"stock"`
	Branch   string          `json:"branch"`
	LowStock bool            `json:"low_stock"`
}

type ProductListResponse struct {
	Data   []ProductResponse `json:"data"`
	Total  int               `json:"total"`
	Branch string            `json:"branch,omitempty"`
}

// NewProductResponse maps a product, flagging it against cfg's threshold.
func NewProductResponse(p model.Product, cfg model.Config) ProductResponse {
	return ProductResponse{
		ID:       p.ID,
		SKU:      p.SKU,
		Name:     p.Name,
		Price:    p.Price,
		Stock:    p.Stock,
		Branch:   p.Branch,
		LowStock: cfg.IsLowStock(p.Stock),
	}
}

// NewProductResponses maps a product slice.
func NewProductResponses(products []model.Product, cfg model.Config) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, NewProductResponse(p, cfg))
	}
	return out
}
