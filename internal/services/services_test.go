package services

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/diewo77/fibertelecom/internal/clock"
	"github.com/diewo77/fibertelecom/internal/models"
)

var testNow = time.Date(2026, 3, 10, 15, 4, 5, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func setupServices(t *testing.T) (*Services, *clock.MockClock) {
	t.Helper()
	clk := clock.NewMockClock(testNow)
	return New(setupTestDB(t), clk, zap.NewNop()), clk
}

// seedRouter stocks Router-X and registers customer V-1.
func seedRouter(t *testing.T, svc *Services, stock int) {
	t.Helper()
	require.NoError(t, svc.Store.UpsertProduct(&models.Product{
		Name: "Router-X", Stock: stock, ReorderLevel: 2,
		NormalPrice: dec("50"), SpecialPrice: dec("40"),
	}))
	require.NoError(t, svc.Store.UpsertCustomer(&models.Customer{ID: "V-1", Name: "Ana Rivas"}))
}

func stockOf(t *testing.T, svc *Services, name string) int {
	t.Helper()
	p, err := svc.Store.GetProduct(name)
	require.NoError(t, err)
	return p.Stock
}

var errInjected = errors.New("boom")

// failNthCreate makes the nth insert of a T fail with errInjected.
func failNthCreate[T any](t *testing.T, db *gorm.DB, nth int) {
	t.Helper()
	seen := 0
	err := db.Callback().Create().Before("gorm:create").Register("test:fail_nth_create", func(tx *gorm.DB) {
		if _, ok := tx.Statement.Dest.(*T); !ok {
			return
		}
		seen++
		if seen == nth {
			_ = tx.AddError(errInjected)
		}
	})
	require.NoError(t, err)
}
