package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/tallyworks/kasa/internal/kasa/domain"
	"github.com/tallyworks/kasa/internal/kasa/store"
)

type transactionsRepo struct {
	q querier
}

const transactionColumns = `id, company_id, created_by, type, amount_cents, description, category_id, transaction_date, created_at`

func scanTransaction(row interface{ Scan(...any) error }) (domain.Transaction, error) {
	var (
		t          domain.Transaction
		typ        string
		cents      int64
		desc       sql.NullString
		categoryID sql.NullString
		date       string
	)
	err := row.Scan(&t.ID, &t.CompanyID, &t.CreatedBy, &typ, &cents,
		&desc, &categoryID, &date, &t.CreatedAt)
	if err != nil {
		return domain.Transaction{}, err
	}
	t.Type = domain.EntryType(typ)
	t.Amount = domain.Money{Cents: cents}
	t.Description = mapNullString(desc)
	t.CategoryID = mapNullString(categoryID)
	t.TransactionDate, err = domain.ParseDate(date)
	if err != nil {
		return domain.Transaction{}, err
	}
	return t, nil
}

func (r *transactionsRepo) CreateTransaction(ctx context.Context, t domain.Transaction) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO transactions (id, company_id, created_by, type, amount_cents,
		                          description, category_id, transaction_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.CompanyID, t.CreatedBy, t.Type.String(), t.Amount.Cents,
		mapStringNull(t.Description), mapStringNull(t.CategoryID),
		t.TransactionDate.String(), t.CreatedAt,
	)
	return mapConstraint(err)
}

func (r *transactionsRepo) GetTransactionByID(ctx context.Context, id string) (domain.Transaction, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE id = ?`, id)

	t, err := scanTransaction(row)
	if err != nil {
		return domain.Transaction{}, mapNotFound(err)
	}
	return t, nil
}

func (r *transactionsRepo) DeleteTransaction(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *transactionsRepo) ListTransactions(
	ctx context.Context,
	companyID string,
	f store.TransactionFilter,
) ([]domain.Transaction, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + transactionColumns + ` FROM transactions WHERE company_id = ?`)
	args := []any{companyID}

	// transaction_date is YYYY-MM-DD text, so lexical comparison is
	// chronological comparison
	if !f.From.IsZero() {
		sb.WriteString(` AND transaction_date >= ?`)
		args = append(args, f.From.String())
	}
	if !f.To.IsZero() {
		sb.WriteString(` AND transaction_date <= ?`)
		args = append(args, f.To.String())
	}
	if f.Type != "" {
		sb.WriteString(` AND type = ?`)
		args = append(args, f.Type.String())
	}
	if f.CategoryID != "" {
		sb.WriteString(` AND category_id = ?`)
		args = append(args, f.CategoryID)
	}
	if f.Search != "" {
		sb.WriteString(` AND description LIKE '%' || ? || '%'`)
		args = append(args, f.Search)
	}
	sb.WriteString(` ORDER BY transaction_date DESC, created_at DESC`)

	rows, err := r.q.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
