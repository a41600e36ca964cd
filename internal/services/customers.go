package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/diewo77/fibertelecom/internal/models"
	"github.com/diewo77/fibertelecom/internal/store"
	"github.com/diewo77/fibertelecom/validation"
)

type CustomerInput struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Customers struct {
	store *store.Store
	log   *zap.Logger
}

func NewCustomers(st *store.Store, log *zap.Logger) *Customers {
	return &Customers{store: st, log: log}
}

// Upsert creates the customer or renames the existing one with the same id.
func (c *Customers) Upsert(ctx context.Context, in CustomerInput) (*models.Customer, error) {
	in.ID = strings.TrimSpace(in.ID)
	in.Name = strings.TrimSpace(in.Name)
	v := validation.Violations{}
	validation.Required("id", in.ID, v)
	validation.Required("name", in.Name, v)
	if err := invalid(v, ErrInvalidCustomer); err != nil {
		return nil, err
	}

	cust := &models.Customer{ID: in.ID, Name: in.Name}
	if err := c.store.WithContext(ctx).UpsertCustomer(cust); err != nil {
		return nil, storageErr("upsert customer", err)
	}
	c.log.Info("customer saved", zap.String("customer_id", cust.ID))
	return cust, nil
}

// Delete removes the customer. Their sales stay in the ledger.
func (c *Customers) Delete(ctx context.Context, id string) error {
	err := c.store.WithContext(ctx).DeleteCustomer(id)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrCustomerNotFound, id)
	}
	if err != nil {
		return storageErr("delete customer", err)
	}
	c.log.Info("customer deleted", zap.String("customer_id", id))
	return nil
}

func (c *Customers) Get(ctx context.Context, id string) (*models.Customer, error) {
	cust, err := c.store.WithContext(ctx).GetCustomer(id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrCustomerNotFound, id)
	}
	if err != nil {
		return nil, storageErr("load customer", err)
	}
	return cust, nil
}

func (c *Customers) List(ctx context.Context) ([]models.Customer, error) {
	out, err := c.store.WithContext(ctx).ListCustomers()
	if err != nil {
		return nil, storageErr("list customers", err)
	}
	return out, nil
}
