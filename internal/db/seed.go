package db

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/diewo77/fibertelecom/internal/models"
)

// Seed inserts a small demo catalog. Existing products are left untouched,
// so running it twice is harmless.
func Seed(db *gorm.DB) error {
	catalog := []models.Product{
		{Name: "Router-X", Stock: 10, ReorderLevel: 2, NormalPrice: decimal.NewFromInt(50), SpecialPrice: decimal.NewFromInt(40)},
		{Name: "ONU GPON", Stock: 25, ReorderLevel: 5, NormalPrice: decimal.NewFromInt(35), SpecialPrice: decimal.NewFromInt(30)},
		{Name: "Drop cable 100m", Stock: 40, ReorderLevel: 10, NormalPrice: decimal.RequireFromString("22.50"), SpecialPrice: decimal.NewFromInt(20)},
		{Name: "Fiber patch cord", Stock: 100, ReorderLevel: 20, NormalPrice: decimal.NewFromInt(4), SpecialPrice: decimal.RequireFromString("3.50")},
	}
	return db.Transaction(func(tx *gorm.DB) error {
		for _, p := range catalog {
			var existing models.Product
			err := tx.Where("name = ?", p.Name).First(&existing).Error
			if err == nil {
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			if err := tx.Create(&p).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
