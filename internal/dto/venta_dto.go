package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/yery-max/Proyecto-final/internal/model"
)

// ─── Filter ──────────────────────────────────────────────────────────────────

// SaleFilter is bound from the query string of GET /v1/ventas.
type SaleFilter struct {
	Date string `form:"fecha"` // YYYY-MM-DD; empty = today
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type SaleLineRequest struct {
	SKU      string `json:"sku"      validate:"required"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

// RegisterSaleRequest carries the cart. Total is computed by the caller and
// stored as given.
type RegisterSaleRequest struct {
	Items  []SaleLineRequest `json:"items"  validate:"required,min=1,dive"`
	Branch string            `json:"branch" validate:"required"`
	Total  decimal.Decimal   `json:"total"  validate:"min=0"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SaleItemResponse struct {
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type SaleResponse struct {
	ID        string             `json:"id"`
	Timestamp string             `json:"timestamp"`
	Branch    string             `json:"branch"`
	Items     []SaleItemResponse `json:"items"`
	Total     decimal.Decimal    `json:"total"`
}

// RegisterSaleResponse is the result of a successful sale. LowStock holds one
// entry per processed line whose product ended at or below the threshold.
type RegisterSaleResponse struct {
	SaleID   string            `json:"sale_id"`
	Sale     SaleResponse      `json:"sale"`
	LowStock []ProductResponse `json:"low_stock"`
}

// DailySalesResponse aggregates the sales of one calendar date.
type DailySalesResponse struct {
	Date  string          `json:"date"`
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
	Sales []SaleResponse  `json:"sales"`
}

func NewSaleResponse(s model.Sale) SaleResponse {
	items := make([]SaleItemResponse, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, SaleItemResponse{
			SKU:       it.SKU,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal,
		})
	}
	return SaleResponse{
		ID:        s.ID,
		Timestamp: s.Timestamp.Format(time.RFC3339),
		Branch:    s.Branch,
		Items:     items,
		Total:     s.Total,
	}
}
