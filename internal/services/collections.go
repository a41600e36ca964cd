package services

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/diewo77/fibertelecom/internal/clock"
	"github.com/diewo77/fibertelecom/internal/models"
	"github.com/diewo77/fibertelecom/internal/store"
	"github.com/diewo77/fibertelecom/validation"
)

// Outstanding is one unpaid sale as seen by the allocator.
type Outstanding struct {
	SaleID  uint
	Date    time.Time
	Balance decimal.Decimal
}

// Allocation is the share of a lump payment applied to one sale.
type Allocation struct {
	SaleID        uint            `json:"sale_id"`
	Applied       decimal.Decimal `json:"applied"`
	BalanceBefore decimal.Decimal `json:"balance_before"`
	BalanceAfter  decimal.Decimal `json:"balance_after"`
}

// Allocate spreads amount over debts oldest first (date, then sale id).
// Each sale receives at most its balance. It returns the allocations made
// and whatever could not be applied.
func Allocate(amount decimal.Decimal, debts []Outstanding) ([]Allocation, decimal.Decimal) {
	ordered := slices.Clone(debts)
	slices.SortStableFunc(ordered, func(a, b Outstanding) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return cmp.Compare(a.SaleID, b.SaleID)
	})

	var out []Allocation
	remaining := amount
	for _, d := range ordered {
		if !remaining.IsPositive() {
			break
		}
		applied := decimal.Min(remaining, d.Balance)
		if !applied.IsPositive() {
			continue
		}
		out = append(out, Allocation{
			SaleID:        d.SaleID,
			Applied:       applied,
			BalanceBefore: d.Balance,
			BalanceAfter:  d.Balance.Sub(applied),
		})
		remaining = remaining.Sub(applied)
	}
	return out, remaining
}

type CollectionInput struct {
	CustomerID string               `json:"customer_id"`
	Amount     decimal.Decimal      `json:"amount"`
	Method     models.PaymentMethod `json:"method"`
	Date       time.Time            `json:"date"`
}

// CollectionResult lists the installments created by one lump payment.
type CollectionResult struct {
	CustomerID   string                      `json:"customer_id"`
	Amount       decimal.Decimal             `json:"amount"`
	Allocations  []Allocation                `json:"allocations"`
	Installments []models.InstallmentPayment `json:"installments"`
	// DebtAfter is the customer's outstanding total once the payment is applied.
	DebtAfter decimal.Decimal `json:"debt_after"`
}

// Collector applies lump collection payments.
type Collector struct {
	store  *store.Store
	engine *SaleEngine
	clock  clock.Clock
	log    *zap.Logger
}

func NewCollector(st *store.Store, engine *SaleEngine, clk clock.Clock, log *zap.Logger) *Collector {
	return &Collector{store: st, engine: engine, clock: clk, log: log}
}

// Apply allocates in.Amount across the customer's sales with a balance
// above Epsilon and records one installment per sale touched. A payment
// larger than the customer's outstanding total is rejected whole.
func (c *Collector) Apply(ctx context.Context, in CollectionInput) (*CollectionResult, error) {
	in.CustomerID = strings.TrimSpace(in.CustomerID)
	v := validation.Violations{}
	validation.Required("customer_id", in.CustomerID, v)
	validation.PositiveDecimal("amount", in.Amount, v)
	validation.MaxScale("amount", in.Amount, MoneyScale, v)
	if !in.Method.ValidForCollection() {
		v["method"] = "not_accepted"
	}
	if err := invalid(v, ErrInvalidCustomer); err != nil {
		return nil, err
	}
	date := clock.Today(c.clock)
	if !in.Date.IsZero() {
		date = clock.Date(in.Date)
	}

	res := &CollectionResult{CustomerID: in.CustomerID, Amount: in.Amount}
	err := c.store.Transaction(ctx, func(tx *store.Store) error {
		sales, err := tx.ListCustomerSalesForUpdate(in.CustomerID)
		if err != nil {
			return storageErr("load customer sales", err)
		}

		var debts []Outstanding
		owed := decimal.Zero
		for i := range sales {
			b, err := c.engine.ComputeBalance(&sales[i])
			if err != nil {
				return err
			}
			if b.GreaterThan(Epsilon) {
				debts = append(debts, Outstanding{SaleID: sales[i].ID, Date: sales[i].Date, Balance: b})
				owed = owed.Add(b)
			}
		}
		if len(debts) == 0 {
			return fmt.Errorf("%w: %s", ErrNoOutstandingDebt, in.CustomerID)
		}
		if in.Amount.GreaterThan(owed) {
			return fmt.Errorf("%w: payment %s exceeds outstanding %s", ErrOverpaymentRejected, in.Amount, owed)
		}

		allocs, remaining := Allocate(in.Amount, debts)
		if !remaining.IsZero() {
			return fmt.Errorf("%w: %s left unallocated", ErrDataIntegrity, remaining)
		}
		for _, a := range allocs {
			if a.BalanceAfter.IsNegative() {
				return fmt.Errorf("%w: sale %d would be overpaid", ErrDataIntegrity, a.SaleID)
			}
			p := models.InstallmentPayment{SaleID: a.SaleID, Amount: a.Applied, Method: in.Method, Date: date}
			if err := tx.InsertInstallment(&p); err != nil {
				return storageErr("insert installment", err)
			}
			res.Installments = append(res.Installments, p)
		}
		res.Allocations = allocs
		res.DebtAfter = owed.Sub(in.Amount)
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.log.Info("collection applied",
		zap.String("customer_id", in.CustomerID),
		zap.String("amount", in.Amount.String()),
		zap.Int("sales_touched", len(res.Allocations)),
		zap.String("debt_after", res.DebtAfter.String()),
	)
	return res, nil
}
