package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tallyworks/kasa/internal/kasa/domain"
	"github.com/tallyworks/kasa/internal/kasa/service"
)

func TestMembershipList(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	memberships := &service.MembershipService{Store: st}

	company := newTestCompany(t, st, "Bakery", "user-owner")
	addMember(t, st, company, "user-admin", domain.RoleAdmin)
	addMember(t, st, company, "user-staff", domain.RoleUser)

	members, err := memberships.List(ctx, company.ID, "user-staff")
	require.NoError(t, err)
	require.Len(t, members, 3)
	require.Equal(t, "user-owner", members[0].UserID)
	require.Equal(t, domain.RoleOwner, members[0].Role)

	_, err = memberships.List(ctx, company.ID, "user-stranger")
	require.ErrorIs(t, err, service.ErrForbidden)
}

func TestMembershipSetRole(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	memberships := &service.MembershipService{Store: st}

	company := newTestCompany(t, st, "Bakery", "user-owner")
	addMember(t, st, company, "user-admin", domain.RoleAdmin)
	addMember(t, st, company, "user-staff", domain.RoleUser)

	// Only the owner changes roles; admins do not.
	_, err := memberships.SetRole(ctx, company.ID, "user-admin", "user-staff", domain.RoleAdmin)
	require.ErrorIs(t, err, service.ErrForbidden)

	// Owner is not an assignable role.
	_, err = memberships.SetRole(ctx, company.ID, "user-owner", "user-staff", domain.RoleOwner)
	require.ErrorIs(t, err, service.ErrInvalid)

	// The owner's own membership cannot be targeted.
	_, err = memberships.SetRole(ctx, company.ID, "user-owner", "user-owner", domain.RoleAdmin)
	require.ErrorIs(t, err, service.ErrForbidden)

	// Unknown targets are not-found, not forbidden.
	_, err = memberships.SetRole(ctx, company.ID, "user-owner", "user-nobody", domain.RoleAdmin)
	require.ErrorIs(t, err, service.ErrNotFound)

	// Promotion and demotion by the owner both work.
	updated, err := memberships.SetRole(ctx, company.ID, "user-owner", "user-staff", domain.RoleAdmin)
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdmin, updated.Role)

	updated, err = memberships.SetRole(ctx, company.ID, "user-owner", "user-admin", domain.RoleUser)
	require.NoError(t, err)
	require.Equal(t, domain.RoleUser, updated.Role)
}

func TestMembershipRemove(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	memberships := &service.MembershipService{Store: st}

	company := newTestCompany(t, st, "Bakery", "user-owner")
	addMember(t, st, company, "user-admin-a", domain.RoleAdmin)
	addMember(t, st, company, "user-admin-b", domain.RoleAdmin)
	addMember(t, st, company, "user-staff", domain.RoleUser)

	// Regular members cannot remove others.
	err := memberships.Remove(ctx, company.ID, "user-staff", "user-admin-a")
	require.ErrorIs(t, err, service.ErrForbidden)

	// Nobody removes the owner.
	err = memberships.Remove(ctx, company.ID, "user-admin-a", "user-owner")
	require.ErrorIs(t, err, service.ErrForbidden)
	err = memberships.Remove(ctx, company.ID, "user-owner", "user-owner")
	require.ErrorIs(t, err, service.ErrForbidden)

	// Admins cannot remove their peers.
	err = memberships.Remove(ctx, company.ID, "user-admin-a", "user-admin-b")
	require.ErrorIs(t, err, service.ErrForbidden)

	// An admin removes a regular member.
	err = memberships.Remove(ctx, company.ID, "user-admin-a", "user-staff")
	require.NoError(t, err)
	_, err = st.Memberships().GetMembership(ctx, company.ID, "user-staff")
	require.Error(t, err)

	// The owner removes an admin.
	err = memberships.Remove(ctx, company.ID, "user-owner", "user-admin-b")
	require.NoError(t, err)

	// A member may leave on their own.
	err = memberships.Remove(ctx, company.ID, "user-admin-a", "user-admin-a")
	require.NoError(t, err)
}
