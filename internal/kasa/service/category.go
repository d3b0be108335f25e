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

const (
	maxCategoryNameLength = 80
	defaultCategoryColor  = "#6366f1"
)

// CategoryService manages a company's income and expense categories. Every
// operation is scoped to members of the company; no role distinction is
// made beyond membership.
type CategoryService struct {
	Store store.Store
}

// Create adds a category of the given type. Color falls back to a default
// when blank. The type is fixed at creation and never changes.
func (s *CategoryService) Create(
	ctx context.Context,
	companyID string,
	actingUserID string,
	name string,
	typ string,
	color string,
) (domain.Category, error) {
	log := slogx.FromContext(ctx)

	// 1. Authorize.
	if _, err := requireMembership(ctx, s.Store, companyID, actingUserID); err != nil {
		return domain.Category{}, err
	}

	// 2. Validate inputs.
	entryType, err := domain.ParseEntryType(typ)
	if err != nil {
		return domain.Category{}, fmt.Errorf("%w: %s", ErrInvalid, err)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Category{}, fmt.Errorf("%w: category name is required", ErrInvalid)
	}
	if len(name) > maxCategoryNameLength {
		return domain.Category{}, fmt.Errorf("%w: category name is too long", ErrInvalid)
	}
	color = strings.TrimSpace(color)
	if color == "" {
		color = defaultCategoryColor
	}

	// 3. Insert.
	now := time.Now().UTC()
	category := domain.Category{
		ID:        idx.New().String(),
		CompanyID: companyID,
		Name:      name,
		Type:      entryType,
		Color:     color,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Store.Categories().CreateCategory(ctx, category); err != nil {
		log.Error("failed to create category", slog.Any("error", err))
		return domain.Category{}, err
	}

	log.Debug("category created",
		slog.String("company_id", companyID),
		slog.String("category_id", category.ID),
	)
	return category, nil
}

// List returns the company's categories ordered by type then name.
func (s *CategoryService) List(
	ctx context.Context,
	companyID string,
	actingUserID string,
) ([]domain.Category, error) {
	if _, err := requireMembership(ctx, s.Store, companyID, actingUserID); err != nil {
		return nil, err
	}
	return s.Store.Categories().ListCategoriesForCompany(ctx, companyID)
}

// Update renames and recolors a category. Its type stays fixed.
func (s *CategoryService) Update(
	ctx context.Context,
	companyID string,
	actingUserID string,
	categoryID string,
	name string,
	color string,
) (domain.Category, error) {
	if _, err := requireMembership(ctx, s.Store, companyID, actingUserID); err != nil {
		return domain.Category{}, err
	}

	category, err := s.resolveCategory(ctx, companyID, categoryID)
	if err != nil {
		return domain.Category{}, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Category{}, fmt.Errorf("%w: category name is required", ErrInvalid)
	}
	if len(name) > maxCategoryNameLength {
		return domain.Category{}, fmt.Errorf("%w: category name is too long", ErrInvalid)
	}
	color = strings.TrimSpace(color)
	if color == "" {
		color = category.Color
	}

	if err := s.Store.Categories().UpdateCategory(ctx, category.ID, name, color); err != nil {
		return domain.Category{}, err
	}
	category.Name = name
	category.Color = color
	return category, nil
}

// Delete removes a category. Transactions that referenced it survive with
// their category cleared.
func (s *CategoryService) Delete(
	ctx context.Context,
	companyID string,
	actingUserID string,
	categoryID string,
) error {
	log := slogx.FromContext(ctx)

	if _, err := requireMembership(ctx, s.Store, companyID, actingUserID); err != nil {
		return err
	}

	category, err := s.resolveCategory(ctx, companyID, categoryID)
	if err != nil {
		return err
	}

	if err := s.Store.Categories().DeleteCategory(ctx, category.ID); err != nil {
		return err
	}

	log.Info("category deleted",
		slog.String("company_id", companyID),
		slog.String("category_id", categoryID),
	)
	return nil
}

// resolveCategory loads the category and verifies it belongs to the
// company. Categories of other companies are indistinguishable from
// missing ones.
func (s *CategoryService) resolveCategory(
	ctx context.Context,
	companyID string,
	categoryID string,
) (domain.Category, error) {
	category, err := s.Store.Categories().GetCategoryByID(ctx, categoryID)
	if err != nil || category.CompanyID != companyID {
		return domain.Category{}, fmt.Errorf("%w: category does not exist", ErrNotFound)
	}
	return category, nil
}
