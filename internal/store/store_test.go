package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/diewo77/fibertelecom/internal/models"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))
	return New(db)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(d int) time.Time { return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC) }

func TestUpsertProductReplaces(t *testing.T) {
	s := setupTestStore(t)
	require.NoError(t, s.UpsertProduct(&models.Product{Name: "Router-X", Stock: 10, ReorderLevel: 2, NormalPrice: dec("50"), SpecialPrice: dec("40")}))
	require.NoError(t, s.UpsertProduct(&models.Product{Name: "Router-X", Stock: 4, ReorderLevel: 1, NormalPrice: dec("55"), SpecialPrice: dec("45")}))

	p, err := s.GetProduct("Router-X")
	require.NoError(t, err)
	assert.Equal(t, 4, p.Stock)
	assert.True(t, p.NormalPrice.Equal(dec("55")))

	all, err := s.ListProducts(ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestDeleteProduct(t *testing.T) {
	s := setupTestStore(t)
	require.NoError(t, s.UpsertProduct(&models.Product{Name: "ONU", Stock: 1, NormalPrice: dec("1"), SpecialPrice: dec("1")}))
	require.NoError(t, s.DeleteProduct("ONU"))
	assert.ErrorIs(t, s.DeleteProduct("ONU"), ErrNotFound)

	_, err := s.GetProduct("ONU")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListProductsFilters(t *testing.T) {
	s := setupTestStore(t)
	for _, p := range []models.Product{
		{Name: "A", Stock: 0, ReorderLevel: 1},
		{Name: "B", Stock: 5, ReorderLevel: 5},
		{Name: "C", Stock: 9, ReorderLevel: 2},
	} {
		p.NormalPrice, p.SpecialPrice = dec("1"), dec("1")
		require.NoError(t, s.UpsertProduct(&p))
	}

	inStock, err := s.ListProducts(ProductFilter{InStock: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "C"}, names(inStock))

	low, err := s.ListProducts(ProductFilter{LowStock: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, names(low))
}

func names(ps []models.Product) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Name
	}
	return out
}

func TestDecrementStockGuard(t *testing.T) {
	s := setupTestStore(t)
	require.NoError(t, s.UpsertProduct(&models.Product{Name: "Router-X", Stock: 3, NormalPrice: dec("1"), SpecialPrice: dec("1")}))

	ok, err := s.DecrementStock("Router-X", 4)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = s.DecrementStock("Router-X", 3)
	require.NoError(t, err)
	assert.True(t, ok)

	p, _ := s.GetProduct("Router-X")
	assert.Equal(t, 0, p.Stock)

	ok, err = s.IncrementStock("Router-X", 2)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.IncrementStock("missing", 2)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTransactionRollsBack(t *testing.T) {
	s := setupTestStore(t)
	boom := errors.New("boom")
	err := s.Transaction(context.Background(), func(tx *Store) error {
		if err := tx.UpsertCustomer(&models.Customer{ID: "V-1", Name: "Ana"}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = s.GetCustomer("V-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSalesListingAndDelete(t *testing.T) {
	s := setupTestStore(t)
	require.NoError(t, s.UpsertCustomer(&models.Customer{ID: "V-1", Name: "Ana"}))

	older := &models.Sale{CustomerID: "V-1", ProductName: "Router-X", Quantity: 1, Tier: models.TierNormal,
		UnitPrice: dec("50"), TotalAmount: dec("50"), InitialPayment: dec("0"), Method: models.MethodCredit, Date: day(1)}
	newer := &models.Sale{CustomerID: "V-2", ProductName: "ONU", Quantity: 2, Tier: models.TierSpecial,
		UnitPrice: dec("30"), TotalAmount: dec("60"), InitialPayment: dec("10"), Method: models.MethodCash, Date: day(5)}
	require.NoError(t, s.InsertSale(older))
	require.NoError(t, s.InsertSale(newer))
	require.NoError(t, s.InsertInstallment(&models.InstallmentPayment{SaleID: older.ID, Amount: dec("20"), Method: models.MethodCash, Date: day(2)}))

	rows, err := s.ListSales()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, newer.ID, rows[0].ID)
	assert.Equal(t, "", rows[0].CustomerName, "unknown customer renders empty")
	assert.Equal(t, "Ana", rows[1].CustomerName)
	assert.True(t, rows[1].Balance().Equal(dec("30")))

	sale, err := s.GetSale(older.ID)
	require.NoError(t, err)
	require.Len(t, sale.Installments, 1)

	require.NoError(t, s.DeleteSale(older.ID))
	assert.ErrorIs(t, s.DeleteSale(older.ID), ErrNotFound)

	var left int64
	s.DB().Model(&models.InstallmentPayment{}).Count(&left)
	assert.Zero(t, left)
}

func TestListCustomerSalesOrder(t *testing.T) {
	s := setupTestStore(t)
	mk := func(d int) *models.Sale {
		sale := &models.Sale{CustomerID: "V-1", ProductName: "P", Quantity: 1, Tier: models.TierNormal,
			UnitPrice: dec("10"), TotalAmount: dec("10"), InitialPayment: dec("0"), Method: models.MethodCredit, Date: day(d)}
		require.NoError(t, s.InsertSale(sale))
		return sale
	}
	c := mk(9)
	a := mk(1)
	b := mk(1)

	sales, err := s.ListCustomerSales("V-1")
	require.NoError(t, err)
	got := []uint{sales[0].ID, sales[1].ID, sales[2].ID}
	assert.Equal(t, []uint{a.ID, b.ID, c.ID}, got)
}

func TestSums(t *testing.T) {
	s := setupTestStore(t)
	sale := &models.Sale{CustomerID: "V-1", ProductName: "P", Quantity: 1, Tier: models.TierNormal,
		UnitPrice: dec("0.30"), TotalAmount: dec("0.30"), InitialPayment: dec("0.10"), Method: models.MethodCash, Date: day(1)}
	require.NoError(t, s.InsertSale(sale))
	require.NoError(t, s.InsertInstallment(&models.InstallmentPayment{SaleID: sale.ID, Amount: dec("0.20"), Method: models.MethodCash, Date: day(1)}))
	require.NoError(t, s.InsertExpense(&models.Expense{Concept: "Fuel", Amount: dec("12.35"), Date: day(1)}))

	initial, err := s.SumInitialPayments()
	require.NoError(t, err)
	inst, err := s.SumInstallments()
	require.NoError(t, err)
	assert.True(t, initial.Add(inst).Equal(dec("0.30")), "got %s", initial.Add(inst))

	exp, err := s.SumExpenses()
	require.NoError(t, err)
	assert.True(t, exp.Equal(dec("12.35")))

	totals, err := s.SumSaleTotals()
	require.NoError(t, err)
	assert.True(t, totals.Equal(dec("0.3")))
}
