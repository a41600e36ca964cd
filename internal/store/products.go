package store

import (
	"github.com/diewo77/fibertelecom/internal/models"
	"gorm.io/gorm/clause"
)

// ProductFilter narrows ListProducts.
type ProductFilter struct {
	InStock  bool // stock > 0
	LowStock bool // stock <= reorder level
}

// UpsertProduct inserts p or overwrites the product with the same name.
func (s *Store) UpsertProduct(p *models.Product) error {
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"stock", "reorder_level", "normal_price", "special_price", "updated_at"}),
	}).Create(p).Error
}

// DeleteProduct removes the product. Sales that reference it are unaffected.
func (s *Store) DeleteProduct(name string) error {
	res := s.db.Where("name = ?", name).Delete(&models.Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) GetProduct(name string) (*models.Product, error) {
	var p models.Product
	if err := s.db.Where("name = ?", name).First(&p).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

// GetProductForUpdate reads the product and locks its row until the
// surrounding transaction ends.
func (s *Store) GetProductForUpdate(name string) (*models.Product, error) {
	var p models.Product
	if err := s.forUpdate().Where("name = ?", name).First(&p).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

// ListProducts returns products ordered by name.
func (s *Store) ListProducts(f ProductFilter) ([]models.Product, error) {
	q := s.db.Model(&models.Product{})
	if f.InStock {
		q = q.Where("stock > 0")
	}
	if f.LowStock {
		q = q.Where("stock <= reorder_level")
	}
	var out []models.Product
	if err := q.Order("name asc").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// DecrementStock takes qty units off the product only if that many are on
// hand. It reports false when the guard fails, leaving stock unchanged.
func (s *Store) DecrementStock(name string, qty int) (bool, error) {
	res := s.db.Exec("UPDATE products SET stock = stock - ? WHERE name = ? AND stock >= ?", qty, name, qty)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// IncrementStock puts qty units back. It reports false if the product no
// longer exists.
func (s *Store) IncrementStock(name string, qty int) (bool, error) {
	res := s.db.Exec("UPDATE products SET stock = stock + ? WHERE name = ?", qty, name)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
