package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry, identified by its name.
type Product struct {
	Name string `gorm:"primaryKey;size:255" json:"name"`

	// Stock is the quantity on hand; sales decrement it, reversals restore it.
	Stock int `gorm:"not null;default:0" json:"stock"`
	// ReorderLevel is informational only: it never blocks a sale.
	ReorderLevel int `gorm:"not null;default:0" json:"reorder_level"`

	NormalPrice  decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"normal_price"`
	SpecialPrice decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"special_price"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NeedsReorder reports whether stock has fallen to the reorder level.
func (p *Product) NeedsReorder() bool {
	return p.Stock <= p.ReorderLevel
}

// InStock reports whether at least one unit can be sold.
func (p *Product) InStock() bool {
	return p.Stock > 0
}
