package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/diewo77/fibertelecom/internal/models"
	"github.com/diewo77/fibertelecom/internal/store"
	"github.com/diewo77/fibertelecom/validation"
)

type ProductInput struct {
	Name         string          `json:"name"`
	Stock        int             `json:"stock"`
	ReorderLevel int             `json:"reorder_level"`
	NormalPrice  decimal.Decimal `json:"normal_price"`
	SpecialPrice decimal.Decimal `json:"special_price"`
}

// Catalog manages inventory entries.
type Catalog struct {
	store *store.Store
	log   *zap.Logger
}

func NewCatalog(st *store.Store, log *zap.Logger) *Catalog {
	return &Catalog{store: st, log: log}
}

// UpsertProduct creates the product or replaces the one with the same name.
func (c *Catalog) UpsertProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	in.Name = strings.TrimSpace(in.Name)
	v := validation.Violations{}
	validation.Required("name", in.Name, v)
	validation.NonNegativeInt("stock", in.Stock, v)
	validation.NonNegativeInt("reorder_level", in.ReorderLevel, v)
	validation.NonNegativeDecimal("normal_price", in.NormalPrice, v)
	validation.NonNegativeDecimal("special_price", in.SpecialPrice, v)
	validation.MaxScale("normal_price", in.NormalPrice, MoneyScale, v)
	validation.MaxScale("special_price", in.SpecialPrice, MoneyScale, v)
	if err := invalid(v, ErrInvalidProduct); err != nil {
		return nil, err
	}

	p := &models.Product{
		Name:         in.Name,
		Stock:        in.Stock,
		ReorderLevel: in.ReorderLevel,
		NormalPrice:  in.NormalPrice,
		SpecialPrice: in.SpecialPrice,
	}
	err := c.store.Transaction(ctx, func(tx *store.Store) error {
		return tx.UpsertProduct(p)
	})
	if err != nil {
		return nil, storageErr("upsert product", err)
	}
	c.log.Info("product saved", zap.String("product", p.Name), zap.Int("stock", p.Stock))
	return p, nil
}

func (c *Catalog) DeleteProduct(ctx context.Context, name string) error {
	err := c.store.Transaction(ctx, func(tx *store.Store) error {
		return tx.DeleteProduct(name)
	})
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrProductNotFound, name)
	}
	if err != nil {
		return storageErr("delete product", err)
	}
	c.log.Info("product deleted", zap.String("product", name))
	return nil
}

func (c *Catalog) ListProducts(ctx context.Context) ([]models.Product, error) {
	return c.list(ctx, store.ProductFilter{})
}

// ListSellable returns products with at least one unit on hand.
func (c *Catalog) ListSellable(ctx context.Context) ([]models.Product, error) {
	return c.list(ctx, store.ProductFilter{InStock: true})
}

// ListLowStock returns products at or below their reorder level.
func (c *Catalog) ListLowStock(ctx context.Context) ([]models.Product, error) {
	return c.list(ctx, store.ProductFilter{LowStock: true})
}

func (c *Catalog) list(ctx context.Context, f store.ProductFilter) ([]models.Product, error) {
	out, err := c.store.WithContext(ctx).ListProducts(f)
	if err != nil {
		return nil, storageErr("list products", err)
	}
	return out, nil
}
