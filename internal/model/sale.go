package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItem is one line of a registered sale. Subtotal is always
// Quantity * UnitPrice; use NewSaleItem to build one.
type SaleItem struct {
	SKU       string          `json:"sku"        validate:"required"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"   validate:"gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price" validate:"min=0"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// NewSaleItem builds a line item and computes its subtotal.
func NewSaleItem(sku, name string, quantity int, unitPrice decimal.Decimal) SaleItem {
	return SaleItem{
		SKU:       sku,
		Name:      name,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Subtotal:  unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
	}
}

// Validate checks the field invariants of a line item.
func (i SaleItem) Validate() error { return AsValidationError(validate.Struct(i)) }

// Sale is an append-only record of a completed sale.
// Total is supplied by the caller and is not recomputed from Items.
type Sale struct {
	ID        string          `json:"id"`
	Timestamp time.Time       `json:"timestamp"`
	Items     []SaleItem      `json:"items"`
	Branch    string          `json:"branch"`
	Total     decimal.Decimal `json:"total"`
}

// ItemsTotal sums the subtotals of every line item.
func (s Sale) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range s.Items {
		total = total.Add(it.Subtotal)
	}
	return total
}

// OnDate reports whether the sale timestamp falls on the calendar date of day
// in day's location.
func (s Sale) OnDate(day time.Time) bool {
	ts := s.Timestamp.In(day.Location())
	y1, m1, d1 := ts.Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// Clone returns a copy of the sale that does not share its item slice.
func (s Sale) Clone() Sale {
	out := s
	out.Items = append([]SaleItem(nil), s.Items...)
	return out
}
