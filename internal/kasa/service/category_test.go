package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tallyworks/kasa/internal/kasa/domain"
	"github.com/tallyworks/kasa/internal/kasa/service"
)

func TestCategoryCreate(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	categories := &service.CategoryService{Store: st}

	company := newTestCompany(t, st, "Bakery", "user-owner")
	addMember(t, st, company, "user-staff", domain.RoleUser)

	// Any member may create; colour defaults when blank.
	created, err := categories.Create(ctx, company.ID, "user-staff", "Catering", "income", "")
	require.NoError(t, err)
	require.Equal(t, domain.TypeIncome, created.Type)
	require.NotEmpty(t, created.Color)

	_, err = categories.Create(ctx, company.ID, "user-stranger", "Catering", "income", "")
	require.ErrorIs(t, err, service.ErrForbidden)

	_, err = categories.Create(ctx, company.ID, "user-staff", "", "income", "")
	require.ErrorIs(t, err, service.ErrInvalid)

	_, err = categories.Create(ctx, company.ID, "user-staff", "Misc", "transfer", "")
	require.ErrorIs(t, err, service.ErrInvalid)
}

func TestCategoryUpdate(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	categories := &service.CategoryService{Store: st}

	company := newTestCompany(t, st, "Bakery", "user-owner")
	other := newTestCompany(t, st, "Laundry", "user-other")

	created, err := categories.Create(ctx, company.ID, "user-owner", "Catering", "income", "#111111")
	require.NoError(t, err)

	updated, err := categories.Update(ctx, company.ID, "user-owner", created.ID, "Events", "#222222")
	require.NoError(t, err)
	require.Equal(t, "Events", updated.Name)
	require.Equal(t, "#222222", updated.Color)
	require.Equal(t, domain.TypeIncome, updated.Type)

	// Another company's member cannot see the category at all.
	_, err = categories.Update(ctx, other.ID, "user-other", created.ID, "Hijack", "")
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestCategoryDeleteKeepsTransactions(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	categories := &service.CategoryService{Store: st}
	transactions := &service.TransactionService{Store: st}

	company := newTestCompany(t, st, "Bakery", "user-owner")
	created, err := categories.Create(ctx, company.ID, "user-owner", "Catering", "income", "")
	require.NoError(t, err)

	recorded, err := transactions.Record(ctx, company.ID, "user-owner", service.RecordTransactionInput{
		Type:       "income",
		Amount:     "150.00",
		CategoryID: created.ID,
		Date:       "2026-08-01",
	})
	require.NoError(t, err)

	require.NoError(t, categories.Delete(ctx, company.ID, "user-owner", created.ID))

	// The ledger row survives with its category reference cleared.
	got, err := st.Transactions().GetTransactionByID(ctx, recorded.ID)
	require.NoError(t, err)
	require.Empty(t, got.CategoryID)
	require.Equal(t, int64(15000), got.Amount.Cents)
}
