package sqlite

import (
	"context"
	"database/sql"

	"github.com/tallyworks/kasa/internal/kasa/domain"
	"github.com/tallyworks/kasa/internal/kasa/store"
)

type membershipsRepo struct {
	q querier
}

const membershipColumns = `id, company_id, user_id, role, invited_by, joined_at`

func scanMembership(row interface{ Scan(...any) error }) (domain.Membership, error) {
	var (
		m         domain.Membership
		role      string
		invitedBy sql.NullString
	)
	err := row.Scan(&m.ID, &m.CompanyID, &m.UserID, &role, &invitedBy, &m.JoinedAt)
	if err != nil {
		return domain.Membership{}, err
	}
	m.Role = domain.Role(role)
	m.InvitedBy = mapNullString(invitedBy)
	return m, nil
}

func (r *membershipsRepo) CreateMembership(ctx context.Context, m domain.Membership) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO company_members (id, company_id, user_id, role, invited_by, joined_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		m.ID, m.CompanyID, m.UserID, m.Role.String(), mapStringNull(m.InvitedBy), m.JoinedAt,
	)
	return mapConstraint(err)
}

func (r *membershipsRepo) GetMembershipByID(ctx context.Context, id string) (domain.Membership, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+membershipColumns+` FROM company_members WHERE id = ?`, id)

	m, err := scanMembership(row)
	if err != nil {
		return domain.Membership{}, mapNotFound(err)
	}
	return m, nil
}

func (r *membershipsRepo) GetMembership(
	ctx context.Context,
	companyID, userID string,
) (domain.Membership, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+membershipColumns+` FROM company_members WHERE company_id = ? AND user_id = ?`,
		companyID, userID)

	m, err := scanMembership(row)
	if err != nil {
		return domain.Membership{}, mapNotFound(err)
	}
	return m, nil
}

func (r *membershipsRepo) ListCompaniesForUser(
	ctx context.Context,
	userID string,
) ([]domain.UserCompany, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT c.id, c.name, c.owner_id, c.invite_code, c.invite_code_expires_at,
		       c.created_at, c.updated_at, m.role
		FROM company_members m
		JOIN companies c ON c.id = m.company_id
		WHERE m.user_id = ?
		ORDER BY m.joined_at ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.UserCompany
	for rows.Next() {
		var (
			c         domain.Company
			code      sql.NullString
			expiresAt sql.NullTime
			role      string
		)
		err := rows.Scan(&c.ID, &c.Name, &c.OwnerID, &code, &expiresAt,
			&c.CreatedAt, &c.UpdatedAt, &role)
		if err != nil {
			return nil, err
		}
		c.InviteCode = mapNullString(code)
		c.InviteCodeExpiresAt = mapNullTimePtr(expiresAt)
		out = append(out, domain.UserCompany{Company: c, Role: domain.Role(role)})
	}
	return out, rows.Err()
}

func (r *membershipsRepo) ListMembersOfCompany(
	ctx context.Context,
	companyID string,
) ([]domain.Membership, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+membershipColumns+` FROM company_members WHERE company_id = ? ORDER BY joined_at ASC`,
		companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Membership
	for rows.Next() {
		m, err := scanMembership(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *membershipsRepo) UpdateMembershipRole(
	ctx context.Context,
	membershipID string,
	role domain.Role,
) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE company_members SET role = ? WHERE id = ?`, role.String(), membershipID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *membershipsRepo) DeleteMembership(ctx context.Context, membershipID string) error {
	res, err := r.q.ExecContext(ctx,
		`DELETE FROM company_members WHERE id = ?`, membershipID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

var _ store.Memberships = (*membershipsRepo)(nil)
