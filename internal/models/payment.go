package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is how money was received.
type PaymentMethod string

const (
	MethodCash     PaymentMethod = "cash"
	MethodTransfer PaymentMethod = "transfer"
	MethodDeposit  PaymentMethod = "deposit"
	MethodCredit   PaymentMethod = "credit"
)

// PaymentMethods lists the methods accepted on a sale, in display order.
var PaymentMethods = []PaymentMethod{MethodCash, MethodTransfer, MethodDeposit, MethodCredit}

// Valid reports whether m is accepted on a sale.
func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCash, MethodTransfer, MethodDeposit, MethodCredit:
		return true
	}
	return false
}

// ValidForCollection reports whether m can settle debt. Credit cannot: it is
// what creates the debt in the first place.
func (m PaymentMethod) ValidForCollection() bool {
	return m.Valid() && m != MethodCredit
}

// InstallmentPayment is a payment applied against one sale after it was made.
// It is owned by the sale and deleted with it.
type InstallmentPayment struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	SaleID    uint            `gorm:"index;not null" json:"sale_id"`
	Amount    decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	Method    PaymentMethod   `gorm:"size:20;not null" json:"method"`
	Date      time.Time       `gorm:"not null" json:"date"`
	CreatedAt time.Time       `json:"created_at"`
}
