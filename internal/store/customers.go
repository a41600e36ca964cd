package store

import (
	"github.com/diewo77/fibertelecom/internal/models"
	"gorm.io/gorm/clause"
)

// UpsertCustomer inserts c or renames the customer with the same id.
func (s *Store) UpsertCustomer(c *models.Customer) error {
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "updated_at"}),
	}).Create(c).Error
}

// DeleteCustomer removes the customer row only; its sales remain.
func (s *Store) DeleteCustomer(id string) error {
	res := s.db.Where("id = ?", id).Delete(&models.Customer{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) GetCustomer(id string) (*models.Customer, error) {
	var c models.Customer
	if err := s.db.Where("id = ?", id).First(&c).Error; err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (s *Store) ListCustomers() ([]models.Customer, error) {
	var out []models.Customer
	if err := s.db.Order("name asc, id asc").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
