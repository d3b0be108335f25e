package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/tallyworks/kasa/internal/kasa/domain"
	"github.com/tallyworks/kasa/internal/kasa/store"
)

type companiesRepo struct {
	q querier
}

const companyColumns = `id, name, owner_id, invite_code, invite_code_expires_at, created_at, updated_at`

func scanCompany(row interface{ Scan(...any) error }) (domain.Company, error) {
	var (
		c         domain.Company
		code      sql.NullString
		expiresAt sql.NullTime
	)
	err := row.Scan(&c.ID, &c.Name, &c.OwnerID, &code, &expiresAt, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return domain.Company{}, err
	}
	c.InviteCode = mapNullString(code)
	c.InviteCodeExpiresAt = mapNullTimePtr(expiresAt)
	return c, nil
}

func (r *companiesRepo) CreateCompany(ctx context.Context, c domain.Company) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO companies (id, name, owner_id, invite_code, invite_code_expires_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.OwnerID,
		mapStringNull(c.InviteCode), mapOptionalTime(c.InviteCodeExpiresAt),
		c.CreatedAt, c.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *companiesRepo) GetCompanyByID(ctx context.Context, id string) (domain.Company, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+companyColumns+` FROM companies WHERE id = ?`, id)

	c, err := scanCompany(row)
	if err != nil {
		return domain.Company{}, mapNotFound(err)
	}
	return c, nil
}

func (r *companiesRepo) GetCompanyByInviteCode(
	ctx context.Context,
	code string,
	now time.Time,
) (domain.Company, error) {
	// Expired codes linger on company rows until regenerated, so multiple
	// companies can hold the same 6-digit value. Active codes are unique
	// (issuance retries on collision); prefer the active holder and fall
	// back to the most recently expired one so callers can report expiry.
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+companyColumns+` FROM companies WHERE invite_code = ?`, code)
	if err != nil {
		return domain.Company{}, err
	}
	defer rows.Close()

	var best domain.Company
	found := false
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return domain.Company{}, err
		}
		if c.HasActiveInviteCode(now) {
			return c, rows.Err()
		}
		if !found || laterExpiry(c, best) {
			best = c
			found = true
		}
	}
	if err := rows.Err(); err != nil {
		return domain.Company{}, err
	}
	if !found {
		return domain.Company{}, store.ErrNotFound
	}
	return best, nil
}

func laterExpiry(a, b domain.Company) bool {
	if a.InviteCodeExpiresAt == nil {
		return false
	}
	if b.InviteCodeExpiresAt == nil {
		return true
	}
	return a.InviteCodeExpiresAt.After(*b.InviteCodeExpiresAt)
}

func (r *companiesRepo) ActiveInviteCodeExists(
	ctx context.Context,
	code string,
	now time.Time,
) (bool, error) {
	c, err := r.GetCompanyByInviteCode(ctx, code, now)
	if err != nil {
		if err == store.ErrNotFound {
			return false, nil
		}
		return false, err
	}
	return c.HasActiveInviteCode(now), nil
}

func (r *companiesRepo) UpdateInviteCode(
	ctx context.Context,
	companyID, code string,
	expiresAt time.Time,
) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE companies
		SET invite_code = ?, invite_code_expires_at = ?, updated_at = ?
		WHERE id = ?`,
		code, expiresAt, time.Now().UTC(), companyID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *companiesRepo) UpdateCompanyName(ctx context.Context, companyID, name string) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE companies SET name = ?, updated_at = ? WHERE id = ?`,
		name, time.Now().UTC(), companyID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// requireRow maps "no rows updated/deleted" to ErrNotFound.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
