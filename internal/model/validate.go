package model

import (
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

// NewValidator returns a validator that treats decimal.Decimal as a numeric
// type, so tags like min=0 and gt=0 work on money fields.
func NewValidator() *validator.Validate { return newValidator() }

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

func init() {
	// Documents keep prices as plain JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}
