package services

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/diewo77/fibertelecom/internal/store"
)

// DebtorSummary is one customer's consolidated position across all sales.
type DebtorSummary struct {
	CustomerID   string          `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	TotalSales   decimal.Decimal `json:"total_sales"`
	TotalPaid    decimal.Decimal `json:"total_paid"`
	Pending      decimal.Decimal `json:"pending"`
}

// Dashboard holds the headline figures.
type Dashboard struct {
	TotalSales     decimal.Decimal `json:"total_sales"`
	TotalCollected decimal.Decimal `json:"total_collected"`
	TotalExpenses  decimal.Decimal `json:"total_expenses"`
	TotalDebt      decimal.Decimal `json:"total_debt"`
	// Net is cash collected minus expenses.
	Net decimal.Decimal `json:"net"`
}

// Reporting answers read-only aggregate queries.
type Reporting struct {
	store  *store.Store
	engine *SaleEngine
}

func NewReporting(st *store.Store, engine *SaleEngine) *Reporting {
	return &Reporting{store: st, engine: engine}
}

// TotalCollected is every initial payment plus every installment.
func (r *Reporting) TotalCollected(ctx context.Context) (decimal.Decimal, error) {
	st := r.store.WithContext(ctx)
	initial, err := st.SumInitialPayments()
	if err != nil {
		return decimal.Zero, storageErr("sum initial payments", err)
	}
	inst, err := st.SumInstallments()
	if err != nil {
		return decimal.Zero, storageErr("sum installments", err)
	}
	return initial.Add(inst), nil
}

func (r *Reporting) TotalExpenses(ctx context.Context) (decimal.Decimal, error) {
	total, err := r.store.WithContext(ctx).SumExpenses()
	if err != nil {
		return decimal.Zero, storageErr("sum expenses", err)
	}
	return total, nil
}

// TotalSales is the invoiced amount of every sale.
func (r *Reporting) TotalSales(ctx context.Context) (decimal.Decimal, error) {
	total, err := r.store.WithContext(ctx).SumSaleTotals()
	if err != nil {
		return decimal.Zero, storageErr("sum sales", err)
	}
	return total, nil
}

// TotalDebt sums the balance of every sale.
func (r *Reporting) TotalDebt(ctx context.Context) (decimal.Decimal, error) {
	sales, err := r.store.WithContext(ctx).SalesWithInstallments()
	if err != nil {
		return decimal.Zero, storageErr("load sales", err)
	}
	total := decimal.Zero
	for i := range sales {
		b, err := r.engine.ComputeBalance(&sales[i])
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(b)
	}
	return total, nil
}

// ConsolidatedDebtByCustomer groups sales per customer and keeps those still
// owing more than Epsilon, largest debt first.
func (r *Reporting) ConsolidatedDebtByCustomer(ctx context.Context) ([]DebtorSummary, error) {
	st := r.store.WithContext(ctx)
	sales, err := st.SalesWithInstallments()
	if err != nil {
		return nil, storageErr("load sales", err)
	}
	customers, err := st.ListCustomers()
	if err != nil {
		return nil, storageErr("list customers", err)
	}
	names := make(map[string]string, len(customers))
	for _, c := range customers {
		names[c.ID] = c.Name
	}

	byCustomer := map[string]*DebtorSummary{}
	for i := range sales {
		s := &sales[i]
		if _, err := r.engine.ComputeBalance(s); err != nil {
			return nil, err
		}
		d, ok := byCustomer[s.CustomerID]
		if !ok {
			d = &DebtorSummary{CustomerID: s.CustomerID, CustomerName: names[s.CustomerID]}
			byCustomer[s.CustomerID] = d
		}
		d.TotalSales = d.TotalSales.Add(s.TotalAmount)
		d.TotalPaid = d.TotalPaid.Add(s.Paid())
	}

	out := make([]DebtorSummary, 0, len(byCustomer))
	for _, d := range byCustomer {
		d.Pending = d.TotalSales.Sub(d.TotalPaid)
		if d.Pending.GreaterThan(Epsilon) {
			out = append(out, *d)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Pending.Cmp(out[j].Pending); c != 0 {
			return c > 0
		}
		return out[i].CustomerID < out[j].CustomerID
	})
	return out, nil
}

// Dashboard gathers the headline totals.
func (r *Reporting) Dashboard(ctx context.Context) (*Dashboard, error) {
	var d Dashboard
	var err error
	if d.TotalSales, err = r.TotalSales(ctx); err != nil {
		return nil, err
	}
	if d.TotalCollected, err = r.TotalCollected(ctx); err != nil {
		return nil, err
	}
	if d.TotalExpenses, err = r.TotalExpenses(ctx); err != nil {
		return nil, err
	}
	if d.TotalDebt, err = r.TotalDebt(ctx); err != nil {
		return nil, err
	}
	d.Net = d.TotalCollected.Sub(d.TotalExpenses)
	return &d, nil
}
