package services

import (
	"github.com/shopspring/decimal"

	"github.com/diewo77/fibertelecom/internal/models"
	"github.com/diewo77/fibertelecom/validation"
)

// Epsilon is the balance below which a sale counts as settled.
var Epsilon = decimal.RequireFromString("0.1")

// MoneyScale is the number of decimals the ledger stores for amounts.
const MoneyScale = 2

// UnitPrice picks the product's price for tier.
func UnitPrice(p *models.Product, tier models.PriceTier) (decimal.Decimal, error) {
	switch tier {
	case models.TierNormal:
		return p.NormalPrice, nil
	case models.TierSpecial:
		return p.SpecialPrice, nil
	}
	return decimal.Zero, &ValidationError{Err: ErrInvalidTier, Violations: validation.Violations{"tier": "unknown"}}
}

// Total is unitPrice × quantity. Stock bounds are checked by the caller.
func Total(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}
