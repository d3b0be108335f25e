package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/tallyworks/kasa/internal/kasa/domain"
	"github.com/tallyworks/kasa/internal/kasa/store"
	"github.com/tallyworks/kasa/pkg/idx"
	"github.com/tallyworks/kasa/pkg/slogx"
)

const maxCompanyNameLength = 120

// categorySeed describes one of the categories every new company starts with.
type categorySeed struct {
	name  string
	typ   domain.EntryType
	color string
}

var defaultCategorySeeds = []categorySeed{
	{name: "Sales", typ: domain.TypeIncome, color: "#22c55e"},
	{name: "Services", typ: domain.TypeIncome, color: "#14b8a6"},
	{name: "Other Income", typ: domain.TypeIncome, color: "#a3e635"},
	{name: "Rent", typ: domain.TypeExpense, color: "#ef4444"},
	{name: "Salaries", typ: domain.TypeExpense, color: "#f97316"},
	{name: "Supplies", typ: domain.TypeExpense, color: "#eab308"},
	{name: "Utilities", typ: domain.TypeExpense, color: "#8b5cf6"},
	{name: "Other Expenses", typ: domain.TypeExpense, color: "#64748b"},
}

// CompanyService creates and resolves company workspaces.
type CompanyService struct {
	Store store.Store
}

// Create sets up a new company owned by ownerID. Everything the workspace
// needs on day one is written in one transaction: the company row, the
// owner membership, the default category set, and an initial invite code.
func (s *CompanyService) Create(
	ctx context.Context,
	name string,
	ownerID string,
) (domain.Company, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate the name.
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Company{}, fmt.Errorf("%w: company name is required", ErrInvalid)
	}
	if len(name) > maxCompanyNameLength {
		return domain.Company{}, fmt.Errorf("%w: company name is too long", ErrInvalid)
	}

	now := time.Now().UTC()
	company := domain.Company{
		ID:        idx.New().String(),
		Name:      name,
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// 2. Create company, owner membership, default categories and the
	// initial invite code atomically. A failure at any step leaves no
	// half-created workspace behind.
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Companies().CreateCompany(ctx, company); err != nil {
			return err
		}

		membership := domain.Membership{
			ID:        idx.New().String(),
			CompanyID: company.ID,
			UserID:    ownerID,
			Role:      domain.RoleOwner,
			JoinedAt:  now,
		}
		if err := tx.Memberships().CreateMembership(ctx, membership); err != nil {
			return err
		}

		for _, seed := range defaultCategorySeeds {
			category := domain.Category{
				ID:        idx.New().String(),
				CompanyID: company.ID,
				Name:      seed.name,
				Type:      seed.typ,
				Color:     seed.color,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := tx.Categories().CreateCategory(ctx, category); err != nil {
				return err
			}
		}

		code, err := placeUniqueCode(ctx, tx, company.ID, now, now.Add(InviteCodeTTL))
		if err != nil {
			return err
		}
		company.InviteCode = code
		expiresAt := now.Add(InviteCodeTTL)
		company.InviteCodeExpiresAt = &expiresAt
		return nil
	})
	if err != nil {
		log.Error("failed to create company", slog.Any("error", err))
		return domain.Company{}, err
	}

	log.Info("company created",
		slog.String("company_id", company.ID),
		slog.String("owner_id", ownerID),
	)
	return company, nil
}

// ResolveForUser returns the company together with the caller's membership
// in it. Non-members get the same error whether or not the company exists.
func (s *CompanyService) ResolveForUser(
	ctx context.Context,
	companyID string,
	userID string,
) (domain.Company, domain.Membership, error) {
	membership, err := requireMembership(ctx, s.Store, companyID, userID)
	if err != nil {
		return domain.Company{}, domain.Membership{}, err
	}

	company, err := s.Store.Companies().GetCompanyByID(ctx, companyID)
	if err != nil {
		return domain.Company{}, domain.Membership{}, err
	}
	return company, membership, nil
}

// ListForUser returns every company the user belongs to, oldest first,
// each paired with the user's role in it.
func (s *CompanyService) ListForUser(
	ctx context.Context,
	userID string,
) ([]domain.UserCompany, error) {
	return s.Store.Memberships().ListCompaniesForUser(ctx, userID)
}

// Rename updates the company name. Only owners and admins may rename.
func (s *CompanyService) Rename(
	ctx context.Context,
	companyID string,
	actingUserID string,
	name string,
) (domain.Company, error) {
	acting, err := requireMembership(ctx, s.Store, companyID, actingUserID)
	if err != nil {
		return domain.Company{}, err
	}
	if !acting.Role.CanManageTeam() {
		return domain.Company{}, fmt.Errorf("%w: renaming a company requires admin or owner", ErrForbidden)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Company{}, fmt.Errorf("%w: company name is required", ErrInvalid)
	}
	if len(name) > maxCompanyNameLength {
		return domain.Company{}, fmt.Errorf("%w: company name is too long", ErrInvalid)
	}

	if err := s.Store.Companies().UpdateCompanyName(ctx, companyID, name); err != nil {
		return domain.Company{}, err
	}
	return s.Store.Companies().GetCompanyByID(ctx, companyID)
}
