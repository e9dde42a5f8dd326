package model

import (
	"github.com/shopspring/decimal"
)

// Product is the stock of one SKU at one branch.
// Business identity is the (SKU, Branch) pair; ID is a surrogate assigned at
// creation and never reused.
type Product struct {
	ID     string          `json:"id"`
	SKU    string          `json:"sku"    validate:"required"`
	Name   string          `json:"name"   validate:"required"`
	Price  decimal.Decimal `json:"price"  validate:"min=0"`
	Stock  int             `json:"stock"  validate:"min=0"`
	Branch string          `json:"branch" validate:"required"`
}

// Validate checks the field invariants of a product record.
func (p Product) Validate() error { return AsValidationError(validate.Struct(p)) }

// ProductPatch carries the editable fields of a product. Nil fields are left unchanged.
type ProductPatch struct {
	Name  *string
	Price *decimal.Decimal
	Stock *int
}

// Apply merges the non-nil patch fields into p.
func (pp ProductPatch) Apply(p *Product) {
	if pp.Name != nil {
		p.Name = *pp.Name
	}
	if pp.Price != nil {
		p.Price = *pp.Price
	}
	if pp.Stock != nil {
		p.Stock = *pp.Stock
	}
}

// IsEmpty reports whether the patch changes nothing.
func (pp ProductPatch) IsEmpty() bool {
	return pp.Name == nil && pp.Price == nil && pp.Stock == nil
}
