package receipt

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPDF(t *testing.T) {
	data, err := PDF(Business{Name: "FIBERTELECOM", Location: "San Cristóbal, Buen Pastor"}, Snapshot{
		SaleID:       7,
		Date:         time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		CustomerID:   "V-12345678",
		CustomerName: "José Pérez",
		ProductName:  "Router-X",
		Quantity:     2,
		UnitPrice:    decimal.NewFromInt(40),
		Total:        decimal.NewFromInt(80),
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "receipt_42.pdf", Filename(42))
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "$22.50", money(decimal.RequireFromString("22.5")))
}
