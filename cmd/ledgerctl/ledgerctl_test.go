package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/diewo77/fibertelecom/internal/clock"
	"github.com/diewo77/fibertelecom/internal/config"
	"github.com/diewo77/fibertelecom/internal/models"
	"github.com/diewo77/fibertelecom/internal/services"
)

func testOptions(t *testing.T, out *bytes.Buffer) (options, *gorm.DB) {
	t.Helper()
	dbi, err := gorm.Open(sqlite.Open("file:cli_"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, dbi.AutoMigrate(models.All()...))

	cfg := &config.Config{
		Database: config.DatabaseConfig{Driver: config.DriverSQLite, Path: ":memory:"},
		Auth:     config.AuthConfig{User: "admin", Password: "x"},
		Business: config.BusinessConfig{Name: "FIBERTELECOM", Location: "San Cristóbal"},
	}
	return options{
		out:    out,
		config: func() *config.Config { return cfg },
		open:   func(config.DatabaseConfig, *zap.Logger) (*gorm.DB, error) { return dbi, nil },
		clock:  clock.NewMockClock(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)),
	}, dbi
}

func run(t *testing.T, opts options, args ...string) error {
	t.Helper()
	cmd := newRootCmd(opts)
	cmd.SetArgs(args)
	return cmd.Execute()
}

func seedDebt(t *testing.T, dbi *gorm.DB, clk clock.Clock) {
	t.Helper()
	svc := services.New(dbi, clk, zap.NewNop())
	require.NoError(t, svc.Store.UpsertProduct(&models.Product{Name: "Router-X", Stock: 3, ReorderLevel: 2,
		NormalPrice: decimal.NewFromInt(50), SpecialPrice: decimal.NewFromInt(40)}))
	require.NoError(t, svc.Store.UpsertCustomer(&models.Customer{ID: "V-1", Name: "Ana Rivas"}))
	_, err := svc.Sales.CreateSale(t.Context(), services.SaleInput{
		CustomerID: "V-1", ProductName: "Router-X", Quantity: 1,
		InitialPayment: decimal.NewFromInt(20), Method: models.MethodCash,
	})
	require.NoError(t, err)
}

func TestSummary(t *testing.T) {
	var out bytes.Buffer
	opts, dbi := testOptions(t, &out)
	seedDebt(t, dbi, opts.clock)

	require.NoError(t, run(t, opts, "summary"))
	s := out.String()
	assert.Contains(t, s, "Collected")
	assert.Contains(t, s, "20.00")
	assert.Contains(t, s, "30.00")

	out.Reset()
	require.NoError(t, run(t, opts, "summary", "--json"))
	assert.Contains(t, out.String(), `"total_debt": "30"`)
}

func TestDebtorsAndLowStock(t *testing.T) {
	var out bytes.Buffer
	opts, dbi := testOptions(t, &out)
	seedDebt(t, dbi, opts.clock)

	require.NoError(t, run(t, opts, "debtors"))
	assert.Contains(t, out.String(), "Ana Rivas (V-1)")
	assert.Contains(t, out.String(), "1 debtors")

	out.Reset()
	require.NoError(t, run(t, opts, "low-stock"))
	assert.Contains(t, out.String(), "Router-X")
}

func TestReceiptExport(t *testing.T) {
	var out bytes.Buffer
	opts, dbi := testOptions(t, &out)
	seedDebt(t, dbi, opts.clock)

	path := filepath.Join(t.TempDir(), "r.pdf")
	require.NoError(t, run(t, opts, "receipt", "1", "-o", path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF-"))

	assert.ErrorIs(t, run(t, opts, "receipt", "abc"), errInvalidSaleID)
	assert.ErrorIs(t, run(t, opts, "receipt", "42"), services.ErrSaleNotFound)
}

func TestMigrateAndSeed(t *testing.T) {
	var out bytes.Buffer
	opts, dbi := testOptions(t, &out)

	require.NoError(t, run(t, opts, "migrate"))
	assert.Contains(t, out.String(), "Migrations completed")
	require.NoError(t, run(t, opts, "seed"))
	require.NoError(t, run(t, opts, "seed"))

	var n int64
	dbi.Model(&models.Product{}).Where("name = ?", "Router-X").Count(&n)
	assert.EqualValues(t, 1, n)
}
