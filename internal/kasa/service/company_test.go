package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tallyworks/kasa/internal/kasa/domain"
	"github.com/tallyworks/kasa/internal/kasa/service"
)

func TestCompanyCreate(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	companies := &service.CompanyService{Store: st}

	company, err := companies.Create(ctx, "  Corner Cafe  ", "user-owner")
	require.NoError(t, err)
	require.Equal(t, "Corner Cafe", company.Name)
	require.Equal(t, "user-owner", company.OwnerID)
	require.NotEmpty(t, company.ID)

	// Owner membership is written in the same transaction.
	membership, err := st.Memberships().GetMembership(ctx, company.ID, "user-owner")
	require.NoError(t, err)
	require.Equal(t, domain.RoleOwner, membership.Role)

	// Default categories cover both entry types.
	categories, err := st.Categories().ListCategoriesForCompany(ctx, company.ID)
	require.NoError(t, err)
	require.NotEmpty(t, categories)
	var income, expense int
	for _, c := range categories {
		switch c.Type {
		case domain.TypeIncome:
			income++
		case domain.TypeExpense:
			expense++
		}
	}
	require.Positive(t, income)
	require.Positive(t, expense)

	// The workspace starts with an active invite code.
	require.Len(t, company.InviteCode, 6)
	require.NotNil(t, company.InviteCodeExpiresAt)
	require.True(t, company.HasActiveInviteCode(time.Now().UTC()))
}

func TestCompanyCreateRejectsBlankName(t *testing.T) {
	st := newTestStore(t)
	companies := &service.CompanyService{Store: st}

	_, err := companies.Create(context.Background(), "   ", "user-owner")
	require.ErrorIs(t, err, service.ErrInvalid)
}

func TestCompanyResolveForUser(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	companies := &service.CompanyService{Store: st}

	company := newTestCompany(t, st, "Bakery", "user-owner")
	addMember(t, st, company, "user-staff", domain.RoleUser)

	got, membership, err := companies.ResolveForUser(ctx, company.ID, "user-staff")
	require.NoError(t, err)
	require.Equal(t, company.ID, got.ID)
	require.Equal(t, domain.RoleUser, membership.Role)

	// Outsiders get the same error whether or not the company exists.
	_, _, err = companies.ResolveForUser(ctx, company.ID, "user-stranger")
	require.ErrorIs(t, err, service.ErrForbidden)
	_, _, err = companies.ResolveForUser(ctx, "no-such-company", "user-stranger")
	require.ErrorIs(t, err, service.ErrForbidden)
}

func TestCompanyListForUser(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	companies := &service.CompanyService{Store: st}

	first := newTestCompany(t, st, "Bakery", "user-a")
	second := newTestCompany(t, st, "Laundry", "user-b")
	addMember(t, st, second, "user-a", domain.RoleAdmin)

	list, err := companies.ListForUser(ctx, "user-a")
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, first.ID, list[0].Company.ID)
	require.Equal(t, domain.RoleOwner, list[0].Role)
	require.Equal(t, second.ID, list[1].Company.ID)
	require.Equal(t, domain.RoleAdmin, list[1].Role)

	list, err = companies.ListForUser(ctx, "user-nobody")
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestCompanyRename(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	companies := &service.CompanyService{Store: st}

	company := newTestCompany(t, st, "Bakery", "user-owner")
	addMember(t, st, company, "user-staff", domain.RoleUser)

	_, err := companies.Rename(ctx, company.ID, "user-staff", "Patisserie")
	require.ErrorIs(t, err, service.ErrForbidden)

	renamed, err := companies.Rename(ctx, company.ID, "user-owner", "Patisserie")
	require.NoError(t, err)
	require.Equal(t, "Patisserie", renamed.Name)
}
