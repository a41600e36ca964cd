package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceTier selects which of a product's two prices a sale uses.
type PriceTier string

const (
	TierNormal  PriceTier = "normal"
	TierSpecial PriceTier = "special"
)

// Valid reports whether t is a known tier.
func (t PriceTier) Valid() bool {
	return t == TierNormal || t == TierSpecial
}

// Sale records one product sold to one customer, possibly on credit.
//
// CustomerID and ProductName are snapshots taken at sale time, not live
// foreign keys: renaming or deleting the product or customer later does not
// touch the sale. The outstanding balance is never stored; see Balance.
type Sale struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	CustomerID  string `gorm:"size:64;index;not null" json:"customer_id"`
	ProductName string `gorm:"size:255;not null" json:"product_name"`
	Quantity    int    `gorm:"not null" json:"quantity"`

	Tier           PriceTier       `gorm:"size:16;not null;default:'normal'" json:"tier"`
	UnitPrice      decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"unit_price"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"total_amount"`
	InitialPayment decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"initial_payment"`
	Method         PaymentMethod   `gorm:"size:20;not null" json:"method"`
	Date           time.Time       `gorm:"index;not null" json:"date"`
	CreatedAt      time.Time       `json:"created_at"`

	Installments []InstallmentPayment `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE" json:"installments,omitempty"`
}

// InstallmentTotal sums the installments loaded on the sale.
func (s *Sale) InstallmentTotal() decimal.Decimal {
	total := decimal.Zero
	for _, p := range s.Installments {
		total = total.Add(p.Amount)
	}
	return total
}

// Paid is the initial payment plus every loaded installment.
func (s *Sale) Paid() decimal.Decimal {
	return s.InitialPayment.Add(s.InstallmentTotal())
}

// Balance is total minus everything paid so far. It is negative only when
// stored data is corrupt; callers decide how to surface that.
func (s *Sale) Balance() decimal.Decimal {
	return s.TotalAmount.Sub(s.Paid())
}
