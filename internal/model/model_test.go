package model

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProduct() Product {
	return Product{SKU: "X-1", Name: "Widget", Price: decimal.RequireFromString("10.00"), Stock: 5, Branch: "A"}
}

func TestProduct_Validate(t *testing.T) {
	require.NoError(t, validProduct().Validate())

	p := validProduct()
	p.Stock = -1
	p.Price = decimal.RequireFromString("-0.01")
	err := p.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "min", ve.Fields["stock"])
	assert.Equal(t, "min", ve.Fields["price"])
}

func TestProduct_ValidateRequiresKeyFields(t *testing.T) {
	err := Product{Price: decimal.Zero}.Validate()
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields, "sku")
	assert.Contains(t, ve.Fields, "name")
	assert.Contains(t, ve.Fields, "branch")
}

func TestProduct_JSONFieldNames(t *testing.T) {
	p := validProduct()
	p.ID = "abc"
	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"abc","sku":"X-1","name":"Widget","price":10,"stock":5,"branch":"A"}`, string(data))
}

func TestProductPatch_Apply(t *testing.T) {
	p := validProduct()
	name := "Gadget"
	stock := 9
	patch := ProductPatch{Name: &name, Stock: &stock}
	assert.False(t, patch.IsEmpty())
	patch.Apply(&p)

	assert.Equal(t, "Gadget", p.Name)
	assert.Equal(t, 9, p.Stock)
	assert.Equal(t, "10", p.Price.String(), "unset fields stay unchanged")
	assert.True(t, ProductPatch{}.IsEmpty())
}

func TestNewSaleItem_Subtotal(t *testing.T) {
	it := NewSaleItem("X-1", "Widget", 3, decimal.RequireFromString("10.50"))
	assert.Equal(t, "31.5", it.Subtotal.String())
	require.NoError(t, it.Validate())

	it.Quantity = 0
	assert.ErrorIs(t, it.Validate(), ErrValidation)
}

func TestSale_ItemsTotalAndClone(t *testing.T) {
	s := Sale{Items: []SaleItem{
		NewSaleItem("A", "a", 2, decimal.NewFromInt(5)),
		NewSaleItem("B", "b", 1, decimal.RequireFromString("0.99")),
	}}
	assert.Equal(t, "10.99", s.ItemsTotal().String())

	c := s.Clone()
	c.Items[0].Quantity = 99
	assert.Equal(t, 2, s.Items[0].Quantity)
}

func TestSale_OnDate(t *testing.T) {
	loc := time.FixedZone("ART", -3*3600)
	s := Sale{Timestamp: time.Date(2024, 5, 10, 1, 30, 0, 0, time.UTC)} // 22:30 on the 9th in ART

	assert.True(t, s.OnDate(time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)))
	assert.False(t, s.OnDate(time.Date(2024, 5, 10, 12, 0, 0, 0, loc)))
	assert.True(t, s.OnDate(time.Date(2024, 5, 9, 0, 0, 0, 0, loc)))
}

func TestBranches(t *testing.T) {
	b := Branches{"Sur": {}, "Centro": {}, "Norte": {}}
	assert.Equal(t, []string{"Centro", "Norte", "Sur"}, b.Names())
	assert.True(t, b.Has("Sur"))
	assert.False(t, b.Has("Oeste"))

	c := b.Clone()
	c["Oeste"] = Branch{}
	assert.False(t, b.Has("Oeste"))

	data, err := json.Marshal(Branches{"Centro": {}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"Centro":{}}`, string(data))
}

func TestConfig_IsLowStock(t *testing.T) {
	cfg := Config{LowStockThreshold: 2}
	assert.True(t, cfg.IsLowStock(2))
	assert.True(t, cfg.IsLowStock(0))
	assert.False(t, cfg.IsLowStock(3))
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{"stock": "min", "price": "numeric"}}
	assert.Equal(t, "datos invalidos (price: numeric, stock: min)", err.Error())
	assert.ErrorIs(t, NewValidationError("sku", "required"), ErrValidation)
}
