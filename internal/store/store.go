// Package store persists the ledger: catalog, customers, sales with their
// installments, and expenses. Every multi-record change runs inside
// Transaction so a failure leaves no partial state behind.
package store

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned when a lookup by key matches nothing.
var ErrNotFound = errors.New("record not found")

// Store is the gorm-backed ledger. The zero value is not usable; call New.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store { return &Store{db: db} }

// DB exposes the underlying handle, mostly for tests and migrations.
func (s *Store) DB() *gorm.DB { return s.db }

// WithContext returns a Store whose queries carry ctx.
func (s *Store) WithContext(ctx context.Context) *Store {
	return &Store{db: s.db.WithContext(ctx)}
}

// Transaction runs fn against a Store bound to one database transaction.
// Returning an error from fn rolls everything back.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// forUpdate adds a row lock on dialects that support one. sqlite ignores it
// and relies on its database-level write lock instead.
func (s *Store) forUpdate() *gorm.DB {
	return s.db.Clauses(clause.Locking{Strength: "UPDATE"})
}

// sum adds up a decimal column without going through SQL SUM, which would
// hand back a float on sqlite.
func sum(q *gorm.DB, column string) (decimal.Decimal, error) {
	var values []decimal.Decimal
	if err := q.Pluck(column, &values).Error; err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total, nil
}
