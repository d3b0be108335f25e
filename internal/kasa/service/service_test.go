package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tallyworks/kasa/internal/kasa/domain"
	"github.com/tallyworks/kasa/internal/kasa/service"
	"github.com/tallyworks/kasa/internal/kasa/store"
	"github.com/tallyworks/kasa/internal/kasa/store/drivers/sqlite"
)

// newTestStore spins up an in-memory sqlite store with the schema applied.
func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })
	return st
}

// newTestCompany creates a company owned by ownerID and returns it.
func newTestCompany(t *testing.T, st store.Store, name, ownerID string) domain.Company {
	t.Helper()

	companies := &service.CompanyService{Store: st}
	company, err := companies.Create(context.Background(), name, ownerID)
	require.NoError(t, err)
	return company
}

// addMember joins userID to the company with the given role, bypassing the
// invite flow so tests can build rosters directly.
func addMember(t *testing.T, st store.Store, company domain.Company, userID string, role domain.Role) {
	t.Helper()

	ctx := context.Background()
	invites := &service.InviteService{Store: st}
	memberships := &service.MembershipService{Store: st}

	code, _, err := invites.Issue(ctx, company.ID, company.OwnerID)
	require.NoError(t, err)
	_, err = invites.Redeem(ctx, code, userID)
	require.NoError(t, err)

	if role != domain.RoleUser {
		_, err = memberships.SetRole(ctx, company.ID, company.OwnerID, userID, role)
		require.NoError(t, err)
	}
}
