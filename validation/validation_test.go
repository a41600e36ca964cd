package validation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestValidators(t *testing.T) {
	v := Violations{}
	Required("name", "  ", v)
	PositiveInt("quantity", 0, v)
	NonNegativeInt("stock", -1, v)
	PositiveDecimal("amount", decimal.Zero, v)
	NonNegativeDecimal("price", decimal.NewFromInt(-5), v)
	RangeDecimal("initial_payment", decimal.NewFromInt(90), decimal.Zero, decimal.NewFromInt(80), v)

	assert.False(t, v.Empty())
	assert.Equal(t, Violations{
		"name":            "required",
		"quantity":        "must_be_positive",
		"stock":           "must_not_be_negative",
		"amount":          "must_be_positive",
		"price":           "must_not_be_negative",
		"initial_payment": "out_of_range",
	}, v)
}

func TestValidatorsAcceptGoodInput(t *testing.T) {
	v := Violations{}
	Required("name", "Router-X", v)
	PositiveInt("quantity", 2, v)
	NonNegativeInt("stock", 0, v)
	PositiveDecimal("amount", decimal.RequireFromString("0.01"), v)
	NonNegativeDecimal("price", decimal.Zero, v)
	RangeDecimal("initial_payment", decimal.NewFromInt(80), decimal.Zero, decimal.NewFromInt(80), v)

	assert.True(t, v.Empty())
}

func TestViolationsString(t *testing.T) {
	v := Violations{"stock": "must_not_be_negative", "name": "required"}
	assert.Equal(t, []string{"name", "stock"}, v.Fields())
	assert.Equal(t, "name=required, stock=must_not_be_negative", v.String())
}

func TestMaxScale(t *testing.T) {
	v := Violations{}
	MaxScale("initial_payment", decimal.RequireFromString("0.004"), 2, v)
	MaxScale("amount", decimal.RequireFromString("12.50"), 2, v)
	MaxScale("price", decimal.RequireFromString("3.500"), 2, v)
	assert.Equal(t, Violations{"initial_payment": "too_many_decimals"}, v)

	v = Violations{"amount": "must_be_positive"}
	MaxScale("amount", decimal.RequireFromString("-0.001"), 2, v)
	assert.Equal(t, "must_be_positive", v["amount"])
}
