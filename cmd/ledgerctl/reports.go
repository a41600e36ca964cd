package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/diewo77/fibertelecom/internal/receipt"
)

func (e *env) newTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(e.out)
	t.SetStyle(table.StyleLight)
	t.Style().Format.Footer = text.FormatDefault
	return t
}

func (e *env) printJSON(v any) error {
	enc := json.NewEncoder(e.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

var errInvalidSaleID = errors.New("invalid sale id")

func money(d decimal.Decimal) string { return d.StringFixed(2) }

var rightAligned = []table.ColumnConfig{
	{Number: 2, Align: text.AlignRight, AlignFooter: text.AlignRight},
	{Number: 3, Align: text.AlignRight, AlignFooter: text.AlignRight},
	{Number: 4, Align: text.AlignRight, AlignFooter: text.AlignRight},
}

func newSummaryCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show collected, expenses, debt and net totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := e.svc.Reporting.Dashboard(cmd.Context())
			if err != nil {
				return err
			}
			if e.jsonOutput {
				return e.printJSON(d)
			}
			t := e.newTable()
			t.AppendHeader(table.Row{"Figure", "Amount"})
			t.AppendRows([]table.Row{
				{"Total sales", money(d.TotalSales)},
				{"Collected", money(d.TotalCollected)},
				{"Expenses", money(d.TotalExpenses)},
				{"Outstanding debt", money(d.TotalDebt)},
			})
			t.AppendFooter(table.Row{"Net", money(d.Net)})
			t.SetColumnConfigs([]table.ColumnConfig{{Number: 2, Align: text.AlignRight, AlignFooter: text.AlignRight}})
			t.Render()
			return nil
		},
	}
}

func newDebtorsCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "debtors",
		Short: "List customers with pending balances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			debtors, err := e.svc.Reporting.ConsolidatedDebtByCustomer(cmd.Context())
			if err != nil {
				return err
			}
			if e.jsonOutput {
				return e.printJSON(debtors)
			}
			t := e.newTable()
			t.AppendHeader(table.Row{"Customer", "Sales", "Paid", "Pending"})
			pending := decimal.Zero
			for _, d := range debtors {
				name := d.CustomerName
				if name == "" {
					name = d.CustomerID
				} else {
					name += " (" + d.CustomerID + ")"
				}
				t.AppendRow(table.Row{name, money(d.TotalSales), money(d.TotalPaid), money(d.Pending)})
				pending = pending.Add(d.Pending)
			}
			t.AppendFooter(table.Row{fmt.Sprintf("%d debtors", len(debtors)), "", "", money(pending)})
			t.SetColumnConfigs(rightAligned)
			t.Render()
			return nil
		},
	}
}

func newLowStockCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "low-stock",
		Short: "List products at or below their reorder level",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			products, err := e.svc.Catalog.ListLowStock(cmd.Context())
			if err != nil {
				return err
			}
			if e.jsonOutput {
				return e.printJSON(products)
			}
			t := e.newTable()
			t.AppendHeader(table.Row{"Product", "Stock", "Reorder level"})
			for _, p := range products {
				t.AppendRow(table.Row{p.Name, p.Stock, p.ReorderLevel})
			}
			t.Render()
			return nil
		},
	}
}

func newReceiptCmd(e *env) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "receipt <sale-id>",
		Short: "Write the PDF receipt of a sale",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil || id == 0 {
				return fmt.Errorf("%w: %q", errInvalidSaleID, args[0])
			}
			snap, err := e.svc.Sales.Receipt(cmd.Context(), uint(id))
			if err != nil {
				return err
			}
			data, err := receipt.PDF(receipt.Business{Name: e.cfg.Business.Name, Location: e.cfg.Business.Location}, *snap)
			if err != nil {
				return err
			}
			if output == "" {
				output = receipt.Filename(uint(id))
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(e.out, "Receipt for sale #%d written to %s\n", id, output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default receipt_<id>.pdf)")
	return cmd
}
