package invoices

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeremyjsx/dashboard/internal/cache"
	"github.com/jeremyjsx/dashboard/internal/database/dbtest"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		values     map[string]string
		wantFields []string
		wantCents  int64
	}{
		{
			name:      "valid",
			values:    map[string]string{FieldCustomerID: "c1", FieldAmount: "12.34", FieldStatus: StatusPaid},
			wantCents: 1234,
		},
		{
			name:      "rounds to cents",
			values:    map[string]string{FieldCustomerID: "c1", FieldAmount: "19.99", FieldStatus: StatusPending},
			wantCents: 1999,
		},
		{
			name:       "empty form",
			values:     map[string]string{},
			wantFields: []string{FieldCustomerID, FieldAmount, FieldStatus},
		},
		{
			name:       "zero amount",
			values:     map[string]string{FieldCustomerID: "c1", FieldAmount: "0", FieldStatus: StatusPaid},
			wantFields: []string{FieldAmount},
		},
		{
			name:       "not a number",
			values:     map[string]string{FieldCustomerID: "c1", FieldAmount: "ten", FieldStatus: StatusPaid},
			wantFields: []string{FieldAmount},
		},
		{
			name:       "negative",
			values:     map[string]string{FieldCustomerID: "c1", FieldAmount: "-5", FieldStatus: StatusPaid},
			wantFields: []string{FieldAmount},
		},
		{
			name:       "rounds to zero cents",
			values:     map[string]string{FieldCustomerID: "c1", FieldAmount: "0.004", FieldStatus: StatusPaid},
			wantFields: []string{FieldAmount},
		},
		{
			name:       "overflows cents",
			values:     map[string]string{FieldCustomerID: "c1", FieldAmount: "1e300", FieldStatus: StatusPaid},
			wantFields: []string{FieldAmount},
		},
		{
			name:       "cents at int64 limit",
			values:     map[string]string{FieldCustomerID: "c1", FieldAmount: "92233720368547758.08", FieldStatus: StatusPaid},
			wantFields: []string{FieldAmount},
		},
		{
			name:       "nan",
			values:     map[string]string{FieldCustomerID: "c1", FieldAmount: "NaN", FieldStatus: StatusPaid},
			wantFields: []string{FieldAmount},
		},
		{
			name:       "infinite",
			values:     map[string]string{FieldCustomerID: "c1", FieldAmount: "Inf", FieldStatus: StatusPaid},
			wantFields: []string{FieldAmount},
		},
		{
			name:      "large amount",
			values:    map[string]string{FieldCustomerID: "c1", FieldAmount: "1000000000000", FieldStatus: StatusPaid},
			wantCents: 100000000000000,
		},
		{
			name:      "one cent",
			values:    map[string]string{FieldCustomerID: "c1", FieldAmount: "0.01", FieldStatus: StatusPaid},
			wantCents: 1,
		},
		{
			name:       "unknown status",
			values:     map[string]string{FieldCustomerID: "c1", FieldAmount: "5", FieldStatus: "overdue"},
			wantFields: []string{FieldStatus},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, errs := Validate(tt.values)
			if len(tt.wantFields) == 0 {
				require.Nil(t, errs)
				assert.Equal(t, tt.wantCents, in.Amount)
				return
			}
			require.Len(t, errs, len(tt.wantFields))
			for _, f := range tt.wantFields {
				assert.NotEmpty(t, errs[f], f)
			}
		})
	}
}

func newService(t *testing.T) (*Service, *cache.Registry, func(where string, args ...any) int) {
	t.Helper()
	db := dbtest.Open(t)
	dbtest.SeedCustomer(t, db, "c1", "Delba de Oliveira")
	dbtest.SeedCustomer(t, db, "c2", "Lee Robinson")
	logger := slog.New(slog.DiscardHandler)
	registry := cache.NewRegistry(logger)
	svc := NewService(NewRepository(db), registry, logger, time.Hour)
	return svc, registry, func(where string, args ...any) int {
		return dbtest.Count(t, db, "invoices", where, args...)
	}
}

func TestService_CreateUpdateDelete(t *testing.T) {
	svc, _, count := newService(t)
	ctx := context.Background()

	inv, err := svc.Create(ctx, map[string]string{FieldCustomerID: "c1", FieldAmount: "99.5", FieldStatus: StatusPending})
	require.NoError(t, err)
	assert.EqualValues(t, 9950, inv.Amount)
	assert.Equal(t, 1, count("id = ? AND amount = ?", inv.ID, 9950))

	err = svc.Update(ctx, inv.ID, map[string]string{FieldCustomerID: "c2", FieldAmount: "10", FieldStatus: StatusPaid})
	require.NoError(t, err)
	assert.Equal(t, 1, count("customer_id = ? AND status = ? AND amount = ?", "c2", StatusPaid, 1000))

	require.NoError(t, svc.Delete(ctx, inv.ID))
	assert.Zero(t, count(""))
	assert.ErrorIs(t, svc.Delete(ctx, inv.ID), ErrNotFound)
	assert.ErrorIs(t, svc.Update(ctx, uuid.New(), map[string]string{FieldCustomerID: "c2", FieldAmount: "1", FieldStatus: StatusPaid}), ErrNotFound)
}

func TestService_ValidationFailures(t *testing.T) {
	svc, _, count := newService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, map[string]string{FieldAmount: "-1"})
	var f *Failure
	require.ErrorAs(t, err, &f)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "Missing Fields. Failed to Create Invoice.", f.Message)
	assert.Contains(t, f.Fields, FieldCustomerID)
	assert.Zero(t, count(""))

	_, err = svc.Create(ctx, map[string]string{FieldCustomerID: "c1", FieldAmount: "1e300", FieldStatus: StatusPaid})
	require.ErrorAs(t, err, &f)
	assert.Contains(t, f.Fields, FieldAmount)
	assert.Zero(t, count(""))

	err = svc.Update(ctx, uuid.New(), map[string]string{})
	require.ErrorAs(t, err, &f)
	assert.Equal(t, "Missing Fields. Failed to Update Invoice.", f.Message)
}

func TestService_ListIsCachedAndInvalidatedByWrites(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	rows, err := svc.List(ctx, "", 1)
	require.NoError(t, err)
	assert.Empty(t, rows)

	_, err = svc.Create(ctx, map[string]string{FieldCustomerID: "c1", FieldAmount: "20", FieldStatus: StatusPaid})
	require.NoError(t, err)
	_, err = svc.Create(ctx, map[string]string{FieldCustomerID: "c2", FieldAmount: "30", FieldStatus: StatusPending})
	require.NoError(t, err)

	rows, err = svc.List(ctx, "", 1)
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	rows, err = svc.List(ctx, "lee", 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Lee Robinson", rows[0].CustomerName)
	assert.Equal(t, "c2", rows[0].CustomerID)
}

func TestService_ListServesCacheUntilInvalidated(t *testing.T) {
	svc, registry, _ := newService(t)
	ctx := context.Background()

	_, err := svc.List(ctx, "", 1)
	require.NoError(t, err)

	// written behind the service's back
	_, err = svc.repo.Insert(ctx, Input{CustomerID: "c1", Amount: 100, Status: StatusPaid})
	require.NoError(t, err)

	rows, err := svc.List(ctx, "", 1)
	require.NoError(t, err)
	assert.Empty(t, rows)

	registry.Invalidate(ctx, ListingPath)
	rows, err = svc.List(ctx, "", 1)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestService_SearchesBypassCache(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	for _, q := range []string{"lee", "rabbit", "delba", "2024"} {
		_, err := svc.List(ctx, q, 1)
		require.NoError(t, err)
	}
	assert.Zero(t, svc.listing.Len())

	_, err := svc.repo.Insert(ctx, Input{CustomerID: "c2", Amount: 100, Status: StatusPaid})
	require.NoError(t, err)

	rows, err := svc.List(ctx, "lee", 1)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	_, err = svc.List(ctx, "", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, svc.listing.Len())
}
