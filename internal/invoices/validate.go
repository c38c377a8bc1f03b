package invoices

import (
	"math"
	"strconv"
	"strings"
)

const (
	FieldCustomerID = "customerId"
	FieldAmount     = "amount"
	FieldStatus     = "status"
)

// Input is a validated invoice form. Amount is in cents.
type Input struct {
	CustomerID string
	Amount     int64
	Status     string
}

// Validate checks an invoice form and converts the dollar amount to cents.
// It returns nil errors on success.
func Validate(values map[string]string) (Input, map[string][]string) {
	errs := make(map[string][]string)

	customerID := strings.TrimSpace(values[FieldCustomerID])
	if customerID == "" {
		errs[FieldCustomerID] = append(errs[FieldCustomerID], "Please select a customer.")
	}

	cents, ok := parseCents(values[FieldAmount])
	if !ok {
		errs[FieldAmount] = append(errs[FieldAmount], "Please enter an amount greater than $0.")
	}

	status := strings.TrimSpace(values[FieldStatus])
	if status != StatusPending && status != StatusPaid {
		errs[FieldStatus] = append(errs[FieldStatus], "Please select an invoice status.")
	}

	if len(errs) > 0 {
		return Input{}, errs
	}
	return Input{CustomerID: customerID, Amount: cents, Status: status}, nil
}

// maxCents is the first cent value that no longer fits an int64 column.
const maxCents = float64(math.MaxInt64)

// parseCents converts a dollar amount to whole cents. It fails unless the
// rounded result is at least one cent and fits in an int64.
func parseCents(raw string) (int64, bool) {
	amount, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, false
	}
	cents := math.Round(amount * 100)
	if cents < 1 || cents >= maxCents {
		return 0, false
	}
	return int64(cents), true
}
