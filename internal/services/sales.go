package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/diewo77/fibertelecom/internal/clock"
	"github.com/diewo77/fibertelecom/internal/models"
	"github.com/diewo77/fibertelecom/internal/receipt"
	"github.com/diewo77/fibertelecom/internal/store"
	"github.com/diewo77/fibertelecom/validation"
)

type SaleInput struct {
	CustomerID     string               `json:"customer_id"`
	ProductName    string               `json:"product_name"`
	Quantity       int                  `json:"quantity"`
	Tier           models.PriceTier     `json:"tier"`
	InitialPayment decimal.Decimal      `json:"initial_payment"`
	Method         models.PaymentMethod `json:"method"`
	// Date defaults to today when zero.
	Date time.Time `json:"date"`
}

// SaleView is a sale with its derived balance, as shown in history.
type SaleView struct {
	models.Sale
	CustomerName string          `json:"customer_name"`
	Balance      decimal.Decimal `json:"balance"`
}

// ReverseResult describes a reversed sale.
type ReverseResult struct {
	Sale                models.Sale `json:"sale"`
	InstallmentsRemoved int         `json:"installments_removed"`
	// StockRestored is false when the product had been deleted since the sale.
	StockRestored bool `json:"stock_restored"`
}

// SaleEngine creates, balances and reverses sales.
type SaleEngine struct {
	store *store.Store
	clock clock.Clock
	log   *zap.Logger
}

func NewSaleEngine(st *store.Store, clk clock.Clock, log *zap.Logger) *SaleEngine {
	return &SaleEngine{store: st, clock: clk, log: log}
}

func (e *SaleEngine) dateOrToday(d time.Time) time.Time {
	if d.IsZero() {
		return clock.Today(e.clock)
	}
	return clock.Date(d)
}

func validateSale(in *SaleInput) error {
	in.CustomerID = strings.TrimSpace(in.CustomerID)
	in.ProductName = strings.TrimSpace(in.ProductName)
	if in.Tier == "" {
		in.Tier = models.TierNormal
	}
	v := validation.Violations{}
	validation.Required("customer_id", in.CustomerID, v)
	validation.Required("product_name", in.ProductName, v)
	validation.PositiveInt("quantity", in.Quantity, v)
	validation.NonNegativeDecimal("initial_payment", in.InitialPayment, v)
	validation.MaxScale("initial_payment", in.InitialPayment, MoneyScale, v)
	if !in.Tier.Valid() {
		v["tier"] = "unknown"
	}
	if !in.Method.Valid() {
		v["method"] = "unknown"
	}
	return invalid(v, ErrInvalidCustomer)
}

// CreateSale prices the sale, takes the quantity out of stock and records
// the sale, all in one transaction.
func (e *SaleEngine) CreateSale(ctx context.Context, in SaleInput) (*models.Sale, error) {
	if err := validateSale(&in); err != nil {
		return nil, err
	}

	var sale *models.Sale
	err := e.store.Transaction(ctx, func(tx *store.Store) error {
		if _, err := tx.GetCustomer(in.CustomerID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("%w: %s", ErrCustomerNotFound, in.CustomerID)
			}
			return storageErr("load customer", err)
		}
		p, err := tx.GetProductForUpdate(in.ProductName)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("%w: %s", ErrProductNotFound, in.ProductName)
			}
			return storageErr("load product", err)
		}
		if in.Quantity > p.Stock {
			return fmt.Errorf("%w: %d requested, %d on hand", ErrInsufficientStock, in.Quantity, p.Stock)
		}

		unit, err := UnitPrice(p, in.Tier)
		if err != nil {
			return err
		}
		total := Total(unit, in.Quantity)
		if in.InitialPayment.GreaterThan(total) {
			return &ValidationError{Err: ErrInvalidPayment, Violations: validation.Violations{"initial_payment": "exceeds_total"}}
		}

		ok, err := tx.DecrementStock(p.Name, in.Quantity)
		if err != nil {
			return storageErr("decrement stock", err)
		}
		if !ok {
			return fmt.Errorf("%w: %s", ErrInsufficientStock, p.Name)
		}

		sale = &models.Sale{
			CustomerID:     in.CustomerID,
			ProductName:    p.Name,
			Quantity:       in.Quantity,
			Tier:           in.Tier,
			UnitPrice:      unit,
			TotalAmount:    total,
			InitialPayment: in.InitialPayment,
			Method:         in.Method,
			Date:           e.dateOrToday(in.Date),
		}
		if err := tx.InsertSale(sale); err != nil {
			return storageErr("insert sale", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.log.Info("sale created",
		zap.Uint("sale_id", sale.ID),
		zap.String("customer_id", sale.CustomerID),
		zap.String("product", sale.ProductName),
		zap.Int("quantity", sale.Quantity),
		zap.String("total", sale.TotalAmount.String()),
		zap.String("initial_payment", sale.InitialPayment.String()),
	)
	return sale, nil
}

// ComputeBalance derives the outstanding balance of sale from its loaded
// installments. A negative result means the ledger is corrupt and is
// reported as ErrDataIntegrity rather than clamped.
func (e *SaleEngine) ComputeBalance(sale *models.Sale) (decimal.Decimal, error) {
	b := sale.Balance()
	if b.IsNegative() {
		e.log.Error("negative sale balance",
			zap.Uint("sale_id", sale.ID),
			zap.String("total", sale.TotalAmount.String()),
			zap.String("paid", sale.Paid().String()),
		)
		return decimal.Zero, fmt.Errorf("%w: sale %d balance %s", ErrDataIntegrity, sale.ID, b)
	}
	return b, nil
}

// Balance loads sale id and returns its outstanding balance.
func (e *SaleEngine) Balance(ctx context.Context, id uint) (decimal.Decimal, error) {
	sale, err := e.store.WithContext(ctx).GetSale(id)
	if err != nil {
		return decimal.Zero, e.saleLookupErr(id, err)
	}
	return e.ComputeBalance(sale)
}

func (e *SaleEngine) saleLookupErr(id uint, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w: %d", ErrSaleNotFound, id)
	}
	return storageErr("load sale", err)
}

// ReverseSale deletes the sale with its installments and returns the
// quantity to stock. A product deleted since the sale is skipped with a warning.
func (e *SaleEngine) ReverseSale(ctx context.Context, id uint) (*ReverseResult, error) {
	var res ReverseResult
	err := e.store.Transaction(ctx, func(tx *store.Store) error {
		sale, err := tx.GetSaleForUpdate(id)
		if err != nil {
			return e.saleLookupErr(id, err)
		}
		if err := tx.DeleteSale(id); err != nil {
			return storageErr("delete sale", err)
		}
		restored, err := tx.IncrementStock(sale.ProductName, sale.Quantity)
		if err != nil {
			return storageErr("restore stock", err)
		}
		res = ReverseResult{Sale: *sale, InstallmentsRemoved: len(sale.Installments), StockRestored: restored}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !res.StockRestored {
		e.log.Warn("reversed sale references a deleted product; stock not restored",
			zap.Uint("sale_id", id), zap.String("product", res.Sale.ProductName))
	}
	e.log.Info("sale reversed",
		zap.Uint("sale_id", id),
		zap.Int("quantity", res.Sale.Quantity),
		zap.Int("installments_removed", res.InstallmentsRemoved),
	)
	return &res, nil
}

// ListSales returns the sale history, newest first.
func (e *SaleEngine) ListSales(ctx context.Context) ([]SaleView, error) {
	rows, err := e.store.WithContext(ctx).ListSales()
	if err != nil {
		return nil, storageErr("list sales", err)
	}
	out := make([]SaleView, 0, len(rows))
	for _, r := range rows {
		b, err := e.ComputeBalance(&r.Sale)
		if err != nil {
			return nil, err
		}
		out = append(out, SaleView{Sale: r.Sale, CustomerName: r.CustomerName, Balance: b})
	}
	return out, nil
}

// ListCustomerSales returns the customer's sales oldest first with balances.
func (e *SaleEngine) ListCustomerSales(ctx context.Context, customerID string) ([]SaleView, error) {
	st := e.store.WithContext(ctx)
	var name string
	if c, err := st.GetCustomer(customerID); err == nil {
		name = c.Name
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, storageErr("load customer", err)
	}
	sales, err := st.ListCustomerSales(customerID)
	if err != nil {
		return nil, storageErr("list customer sales", err)
	}
	out := make([]SaleView, 0, len(sales))
	for _, s := range sales {
		b, err := e.ComputeBalance(&s)
		if err != nil {
			return nil, err
		}
		out = append(out, SaleView{Sale: s, CustomerName: name, Balance: b})
	}
	return out, nil
}

// Receipt collects the snapshot printed on the receipt of sale id.
func (e *SaleEngine) Receipt(ctx context.Context, id uint) (*receipt.Snapshot, error) {
	st := e.store.WithContext(ctx)
	sale, err := st.GetSale(id)
	if err != nil {
		return nil, e.saleLookupErr(id, err)
	}
	snap := &receipt.Snapshot{
		SaleID:      sale.ID,
		Date:        sale.Date,
		CustomerID:  sale.CustomerID,
		ProductName: sale.ProductName,
		Quantity:    sale.Quantity,
		UnitPrice:   sale.UnitPrice,
		Total:       sale.TotalAmount,
	}
	c, err := st.GetCustomer(sale.CustomerID)
	switch {
	case err == nil:
		snap.CustomerName = c.Name
	case !errors.Is(err, store.ErrNotFound):
		return nil, storageErr("load customer", err)
	}
	return snap, nil
}
