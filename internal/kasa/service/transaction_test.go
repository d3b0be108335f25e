package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tallyworks/kasa/internal/kasa/domain"
	"github.com/tallyworks/kasa/internal/kasa/service"
	"github.com/tallyworks/kasa/internal/kasa/store"
)

func TestTransactionRecord(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	transactions := &service.TransactionService{Store: st}

	company := newTestCompany(t, st, "Bakery", "user-owner")
	addMember(t, st, company, "user-staff", domain.RoleUser)

	recorded, err := transactions.Record(ctx, company.ID, "user-staff", service.RecordTransactionInput{
		Type:        "expense",
		Amount:      "42.50",
		Description: "  flour delivery  ",
		Date:        "2026-08-15",
	})
	require.NoError(t, err)
	require.Equal(t, int64(4250), recorded.Amount.Cents)
	require.Equal(t, "flour delivery", recorded.Description)
	require.Equal(t, "user-staff", recorded.CreatedBy)
	require.Equal(t, domain.NewDate(2026, time.August, 15), recorded.TransactionDate)
	require.Empty(t, recorded.CategoryID)
}

func TestTransactionRecordValidation(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	transactions := &service.TransactionService{Store: st}
	categories := &service.CategoryService{Store: st}

	company := newTestCompany(t, st, "Bakery", "user-owner")
	other := newTestCompany(t, st, "Laundry", "user-other")

	incomeCategory, err := categories.Create(ctx, company.ID, "user-owner", "Catering", "income", "")
	require.NoError(t, err)
	foreignCategory, err := categories.Create(ctx, other.ID, "user-other", "Detergent", "expense", "")
	require.NoError(t, err)

	cases := []struct {
		name string
		in   service.RecordTransactionInput
	}{
		{"unknown type", service.RecordTransactionInput{Type: "transfer", Amount: "10.00", Date: "2026-08-01"}},
		{"zero amount", service.RecordTransactionInput{Type: "income", Amount: "0", Date: "2026-08-01"}},
		{"negative amount", service.RecordTransactionInput{Type: "income", Amount: "-5.00", Date: "2026-08-01"}},
		{"garbled amount", service.RecordTransactionInput{Type: "income", Amount: "ten", Date: "2026-08-01"}},
		{"bad date", service.RecordTransactionInput{Type: "income", Amount: "10.00", Date: "15/08/2026"}},
		{"type mismatch", service.RecordTransactionInput{Type: "expense", Amount: "10.00", Date: "2026-08-01", CategoryID: incomeCategory.ID}},
		{"foreign category", service.RecordTransactionInput{Type: "expense", Amount: "10.00", Date: "2026-08-01", CategoryID: foreignCategory.ID}},
		{"unknown category", service.RecordTransactionInput{Type: "income", Amount: "10.00", Date: "2026-08-01", CategoryID: "no-such-id"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := transactions.Record(ctx, company.ID, "user-owner", tc.in)
			require.ErrorIs(t, err, service.ErrInvalid)
		})
	}

	_, err = transactions.Record(ctx, company.ID, "user-stranger", service.RecordTransactionInput{
		Type: "income", Amount: "10.00", Date: "2026-08-01",
	})
	require.ErrorIs(t, err, service.ErrForbidden)
}

func TestTransactionList(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	transactions := &service.TransactionService{Store: st}
	categories := &service.CategoryService{Store: st}

	company := newTestCompany(t, st, "Bakery", "user-owner")
	category, err := categories.Create(ctx, company.ID, "user-owner", "Catering", "income", "")
	require.NoError(t, err)

	record := func(typ, amount, description, date, categoryID string) {
		t.Helper()
		_, err := transactions.Record(ctx, company.ID, "user-owner", service.RecordTransactionInput{
			Type: typ, Amount: amount, Description: description, Date: date, CategoryID: categoryID,
		})
		require.NoError(t, err)
	}
	record("income", "100.00", "wedding order", "2026-08-10", category.ID)
	record("expense", "20.00", "flour", "2026-08-12", "")
	record("income", "30.00", "walk-ins", "2026-08-20", "")

	// Newest date first.
	all, err := transactions.List(ctx, company.ID, "user-owner", store.TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, domain.NewDate(2026, time.August, 20), all[0].TransactionDate)
	require.Equal(t, domain.NewDate(2026, time.August, 10), all[2].TransactionDate)

	// Date range.
	ranged, err := transactions.List(ctx, company.ID, "user-owner", store.TransactionFilter{
		From: domain.NewDate(2026, time.August, 11),
		To:   domain.NewDate(2026, time.August, 15),
	})
	require.NoError(t, err)
	require.Len(t, ranged, 1)
	require.Equal(t, "flour", ranged[0].Description)

	// Type filter.
	incomes, err := transactions.List(ctx, company.ID, "user-owner", store.TransactionFilter{Type: domain.TypeIncome})
	require.NoError(t, err)
	require.Len(t, incomes, 2)

	// Category filter.
	catered, err := transactions.List(ctx, company.ID, "user-owner", store.TransactionFilter{CategoryID: category.ID})
	require.NoError(t, err)
	require.Len(t, catered, 1)

	// Description search.
	found, err := transactions.List(ctx, company.ID, "user-owner", store.TransactionFilter{Search: "wedding"})
	require.NoError(t, err)
	require.Len(t, found, 1)
}

func TestTransactionDelete(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	transactions := &service.TransactionService{Store: st}

	company := newTestCompany(t, st, "Bakery", "user-owner")
	addMember(t, st, company, "user-admin", domain.RoleAdmin)
	addMember(t, st, company, "user-staff-a", domain.RoleUser)
	addMember(t, st, company, "user-staff-b", domain.RoleUser)

	record := func(creator string) domain.Transaction {
		t.Helper()
		tr, err := transactions.Record(ctx, company.ID, creator, service.RecordTransactionInput{
			Type: "expense", Amount: "5.00", Date: "2026-08-01",
		})
		require.NoError(t, err)
		return tr
	}

	// A member cannot delete someone else's entry.
	entry := record("user-staff-a")
	err := transactions.Delete(ctx, company.ID, "user-staff-b", entry.ID)
	require.ErrorIs(t, err, service.ErrForbidden)

	// The creator can.
	require.NoError(t, transactions.Delete(ctx, company.ID, "user-staff-a", entry.ID))

	// An admin can delete anyone's entry.
	entry = record("user-staff-a")
	require.NoError(t, transactions.Delete(ctx, company.ID, "user-admin", entry.ID))

	// Entries of other companies read as missing.
	other := newTestCompany(t, st, "Laundry", "user-other")
	entry = record("user-staff-a")
	err = transactions.Delete(ctx, other.ID, "user-other", entry.ID)
	require.ErrorIs(t, err, service.ErrNotFound)

	err = transactions.Delete(ctx, company.ID, "user-owner", "no-such-id")
	require.ErrorIs(t, err, service.ErrNotFound)
}
