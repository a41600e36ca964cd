package store

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/diewo77/fibertelecom/internal/models"
)

// SaleRow is a sale joined with its customer's current name. The name is
// empty when the customer has since been deleted.
type SaleRow struct {
	models.Sale
	CustomerName string `json:"customer_name"`
}

func (s *Store) InsertSale(sale *models.Sale) error {
	return s.db.Omit("Installments").Create(sale).Error
}

func installmentsByID(db *gorm.DB) *gorm.DB {
	return db.Order("installment_payments.id asc")
}

func (s *Store) GetSale(id uint) (*models.Sale, error) {
	var sale models.Sale
	if err := s.db.Preload("Installments", installmentsByID).First(&sale, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &sale, nil
}

// GetSaleForUpdate loads the sale and its installments with the sale row locked.
func (s *Store) GetSaleForUpdate(id uint) (*models.Sale, error) {
	var sale models.Sale
	if err := s.forUpdate().Preload("Installments", installmentsByID).First(&sale, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &sale, nil
}

// DeleteSale removes the sale and all of its installments.
func (s *Store) DeleteSale(id uint) error {
	if err := s.db.Where("sale_id = ?", id).Delete(&models.InstallmentPayment{}).Error; err != nil {
		return err
	}
	res := s.db.Delete(&models.Sale{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListSales returns every sale, newest first, with installments loaded.
func (s *Store) ListSales() ([]SaleRow, error) {
	var rows []SaleRow
	err := s.db.Model(&models.Sale{}).
		Select("sales.*, COALESCE(customers.name, '') AS customer_name").
		Joins("LEFT JOIN customers ON customers.id = sales.customer_id").
		Order("sales.date desc, sales.id desc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if err := s.attachInstallments(rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Store) attachInstallments(rows []SaleRow) error {
	if len(rows) == 0 {
		return nil
	}
	ids := make([]uint, len(rows))
	for i := range rows {
		ids[i] = rows[i].ID
	}
	var inst []models.InstallmentPayment
	if err := s.db.Where("sale_id IN ?", ids).Order("id asc").Find(&inst).Error; err != nil {
		return err
	}
	bySale := make(map[uint][]models.InstallmentPayment, len(rows))
	for _, p := range inst {
		bySale[p.SaleID] = append(bySale[p.SaleID], p)
	}
	for i := range rows {
		rows[i].Installments = bySale[rows[i].ID]
	}
	return nil
}

// ListCustomerSales returns the customer's sales oldest first, ties broken
// by id, with installments loaded.
func (s *Store) ListCustomerSales(customerID string) ([]models.Sale, error) {
	return s.customerSales(s.db, customerID)
}

// ListCustomerSalesForUpdate is ListCustomerSales with the sale rows locked,
// for use inside a transaction that will add installments.
func (s *Store) ListCustomerSalesForUpdate(customerID string) ([]models.Sale, error) {
	return s.customerSales(s.forUpdate(), customerID)
}

func (s *Store) customerSales(q *gorm.DB, customerID string) ([]models.Sale, error) {
	var sales []models.Sale
	err := q.Preload("Installments", installmentsByID).
		Where("customer_id = ?", customerID).
		Order("date asc, id asc").
		Find(&sales).Error
	if err != nil {
		return nil, err
	}
	return sales, nil
}

// SalesWithInstallments loads every sale with its installments, for
// aggregate balances.
func (s *Store) SalesWithInstallments() ([]models.Sale, error) {
	var sales []models.Sale
	if err := s.db.Preload("Installments").Order("id asc").Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

func (s *Store) InsertInstallment(p *models.InstallmentPayment) error {
	return s.db.Create(p).Error
}

// SumInitialPayments totals the down payments of all sales.
func (s *Store) SumInitialPayments() (decimal.Decimal, error) {
	return sum(s.db.Model(&models.Sale{}), "initial_payment")
}

// SumInstallments totals every installment payment.
func (s *Store) SumInstallments() (decimal.Decimal, error) {
	return sum(s.db.Model(&models.InstallmentPayment{}), "amount")
}

// SumSaleTotals totals the invoiced amount of all sales.
func (s *Store) SumSaleTotals() (decimal.Decimal, error) {
	return sum(s.db.Model(&models.Sale{}), "total_amount")
}
