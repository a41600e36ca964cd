package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is an operating cost. It has no relationships.
type Expense struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Concept   string          `gorm:"size:255;not null" json:"concept"`
	Amount    decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	Date      time.Time       `gorm:"index;not null" json:"date"`
	CreatedAt time.Time       `json:"created_at"`
}
