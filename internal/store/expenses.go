package store

import (
	"github.com/shopspring/decimal"

	"github.com/diewo77/fibertelecom/internal/models"
)

func (s *Store) InsertExpense(e *models.Expense) error {
	return s.db.Create(e).Error
}

// ListExpenses returns expenses newest first.
func (s *Store) ListExpenses() ([]models.Expense, error) {
	var out []models.Expense
	if err := s.db.Order("date desc, id desc").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) SumExpenses() (decimal.Decimal, error) {
	return sum(s.db.Model(&models.Expense{}), "amount")
}
