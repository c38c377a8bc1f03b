// Package invoices implements the dashboard invoice forms: create, update,
// delete and the cached listing.
package invoices

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jeremyjsx/dashboard/internal/database"
)

const (
	StatusPending = "pending"
	StatusPaid    = "paid"
)

// ListingPath is the dashboard route invalidated after every write.
const ListingPath = "/dashboard/invoices"

type Invoice struct {
	ID         uuid.UUID     `db:"id" json:"id"`
	CustomerID string        `db:"customer_id" json:"customer_id"`
	Amount     int64         `db:"amount" json:"amount"`
	Status     string        `db:"status" json:"status"`
	Date       database.Date `db:"date" json:"date"`
}

// Row is an invoice joined with its customer for the listing table.
type Row struct {
	Invoice
	CustomerName  string `db:"customer_name" json:"customer_name"`
	CustomerEmail string `db:"customer_email" json:"customer_email"`
}

var (
	ErrNotFound   = errors.New("invoice not found")
	ErrValidation = errors.New("validation failed")
	ErrDatabase   = errors.New("database error")
)

// Failure carries the form message and per-field errors back to the caller.
type Failure struct {
	Kind    error
	Message string
	Fields  map[string][]string
	Err     error
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%v: %v", f.Kind, f.Err)
	}
	return f.Kind.Error()
}

func (f *Failure) Unwrap() []error {
	if f.Err == nil {
		return []error{f.Kind}
	}
	return []error{f.Kind, f.Err}
}
