package sqlite

import (
	"context"
	"time"

	"github.com/tallyworks/kasa/internal/kasa/domain"
)

type categoriesRepo struct {
	q querier
}

const categoryColumns = `id, company_id, name, type, color, created_at, updated_at`

func scanCategory(row interface{ Scan(...any) error }) (domain.Category, error) {
	var (
		c   domain.Category
		typ string
	)
	err := row.Scan(&c.ID, &c.CompanyID, &c.Name, &typ, &c.Color, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return domain.Category{}, err
	}
	c.Type = domain.EntryType(typ)
	return c, nil
}

func (r *categoriesRepo) CreateCategory(ctx context.Context, c domain.Category) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO categories (id, company_id, name, type, color, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.CompanyID, c.Name, c.Type.String(), c.Color, c.CreatedAt, c.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *categoriesRepo) GetCategoryByID(ctx context.Context, id string) (domain.Category, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE id = ?`, id)

	c, err := scanCategory(row)
	if err != nil {
		return domain.Category{}, mapNotFound(err)
	}
	return c, nil
}

func (r *categoriesRepo) ListCategoriesForCompany(
	ctx context.Context,
	companyID string,
) ([]domain.Category, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE company_id = ? ORDER BY type, name`,
		companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *categoriesRepo) UpdateCategory(ctx context.Context, categoryID, name, color string) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE categories SET name = ?, color = ?, updated_at = ? WHERE id = ?`,
		name, color, time.Now().UTC(), categoryID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *categoriesRepo) DeleteCategory(ctx context.Context, categoryID string) error {
	// ON DELETE SET NULL keeps referencing transactions, uncategorised
	res, err := r.q.ExecContext(ctx,
		`DELETE FROM categories WHERE id = ?`, categoryID)
	if err != nil {
		return err
	}
	return requireRow(res)
}
