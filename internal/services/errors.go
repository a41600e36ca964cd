package services

import (
	"errors"
	"fmt"

	"github.com/diewo77/fibertelecom/validation"
)

// Validation failures. They are always returned inside a *ValidationError.
var (
	ErrInvalidTier     = errors.New("invalid_tier")
	ErrInvalidAmount   = errors.New("invalid_amount")
	ErrInvalidPayment  = errors.New("invalid_payment")
	ErrInvalidQuantity = errors.New("invalid_quantity")
	ErrInvalidMethod   = errors.New("invalid_method")
	ErrInvalidProduct  = errors.New("invalid_product")
	ErrInvalidCustomer = errors.New("invalid_customer")
	ErrInvalidExpense  = errors.New("invalid_expense")
)

var (
	ErrInsufficientStock   = errors.New("insufficient_stock")
	ErrOverpaymentRejected = errors.New("overpayment_rejected")
	ErrNoOutstandingDebt   = errors.New("no_outstanding_debt")
	ErrDataIntegrity       = errors.New("data_integrity_fault")
	ErrStorage             = errors.New("storage_failure")

	ErrProductNotFound  = errors.New("product_not_found")
	ErrCustomerNotFound = errors.New("customer_not_found")
	ErrSaleNotFound     = errors.New("sale_not_found")
)

// ValidationError reports caller input rejected before any mutation.
// Err is the sentinel for the first offending field.
type ValidationError struct {
	Err        error
	Violations validation.Violations
}

func (e *ValidationError) Error() string {
	if e.Violations.Empty() {
		return e.Err.Error()
	}
	return e.Err.Error() + ": " + e.Violations.String()
}

func (e *ValidationError) Unwrap() error { return e.Err }

// fieldErrors maps well-known fields to their sentinel.
var fieldErrors = map[string]error{
	"tier":            ErrInvalidTier,
	"quantity":        ErrInvalidQuantity,
	"initial_payment": ErrInvalidPayment,
	"method":          ErrInvalidMethod,
	"amount":          ErrInvalidAmount,
	"customer_id":     ErrInvalidCustomer,
	"product_name":    ErrInvalidProduct,
}

// invalid turns v into a *ValidationError, or returns nil when v is empty.
// Fields without a dedicated sentinel report fallback.
func invalid(v validation.Violations, fallback error) error {
	if v.Empty() {
		return nil
	}
	for _, f := range v.Fields() {
		if err, ok := fieldErrors[f]; ok {
			return &ValidationError{Err: err, Violations: v}
		}
	}
	return &ValidationError{Err: fallback, Violations: v}
}

// IsValidation reports whether err is a rejected-input error.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsStorageFailure reports whether err came from the store rather than
// from a business rule. Such operations can be retried by the caller.
func IsStorageFailure(err error) bool {
	return errors.Is(err, ErrStorage)
}

func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}
