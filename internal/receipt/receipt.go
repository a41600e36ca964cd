// Package receipt renders a finalized sale as a printable PDF.
package receipt

import (
	"bytes"
	"fmt"
	"time"

	"github.com/phpdave11/gofpdf"
	"github.com/shopspring/decimal"
)

// Snapshot is everything printed on a receipt, captured from the sale,
// its customer and its product at the time of printing.
type Snapshot struct {
	SaleID       uint            `json:"sale_id"`
	Date         time.Time       `json:"date"`
	CustomerID   string          `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	ProductName  string          `json:"product_name"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Total        decimal.Decimal `json:"total"`
}

// Business is the header block of every receipt.
type Business struct {
	Name     string
	Location string
}

// Filename is the download name for the receipt of sale id.
func Filename(id uint) string {
	return fmt.Sprintf("receipt_%d.pdf", id)
}

// PDF lays out the receipt on an A5 portrait page.
func PDF(b Business, s Snapshot) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(12, 12, 12)
	pdf.SetAutoPageBreak(true, 12)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 8, tr(b.Name), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 5, tr(b.Location), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 7, fmt.Sprintf("Sale receipt #%d", s.SaleID), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, "Date: "+s.Date.Format("2006-01-02"), "", 1, "L", false, 0, "")
	customer := s.CustomerName
	if customer == "" {
		customer = s.CustomerID
	}
	pdf.CellFormat(0, 5, tr("Customer: "+customer), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	widths := []float64{58, 16, 25, 25}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range []string{"Product", "Qty", "Unit price", "Subtotal"} {
		align := "R"
		if i == 0 {
			align = "L"
		}
		pdf.CellFormat(widths[i], 7, h, "1", 0, align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(widths[0], 7, tr(s.ProductName), "1", 0, "L", false, 0, "")
	pdf.CellFormat(widths[1], 7, fmt.Sprintf("%d", s.Quantity), "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[2], 7, money(s.UnitPrice), "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[3], 7, money(s.Total), "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(widths[0]+widths[1]+widths[2], 8, "TOTAL", "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[3], 8, money(s.Total), "1", 1, "R", false, 0, "")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(0, 5, "Thank you for your purchase.", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render receipt %d: %w", s.SaleID, err)
	}
	return buf.Bytes(), nil
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
