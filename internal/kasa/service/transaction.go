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

const maxDescriptionLength = 500

// RecordTransactionInput carries the wire-level fields for a new ledger
// entry. Amount and date arrive as strings and are parsed here so the
// handler stays thin.
type RecordTransactionInput struct {
	Type        string
	Amount      string
	Description string
	CategoryID  string
	Date        string
}

// TransactionService appends to and prunes a company's ledger. Entries are
// immutable; the only mutation is deletion.
type TransactionService struct {
	Store store.Store
}

// Record validates and appends a ledger entry. Any member may record. A
// referenced category must belong to the same company and carry the same
// type as the entry.
func (s *TransactionService) Record(
	ctx context.Context,
	companyID string,
	actingUserID string,
	in RecordTransactionInput,
) (domain.Transaction, error) {
	log := slogx.FromContext(ctx)

	// 1. Authorize.
	if _, err := requireMembership(ctx, s.Store, companyID, actingUserID); err != nil {
		return domain.Transaction{}, err
	}

	// 2. Validate inputs.
	entryType, err := domain.ParseEntryType(in.Type)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("%w: %s", ErrInvalid, err)
	}
	amount, err := domain.ParseAmount(in.Amount)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("%w: %s", ErrInvalid, err)
	}
	date, err := domain.ParseDate(in.Date)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("%w: transaction date must be YYYY-MM-DD", ErrInvalid)
	}
	description := strings.TrimSpace(in.Description)
	if len(description) > maxDescriptionLength {
		return domain.Transaction{}, fmt.Errorf("%w: description is too long", ErrInvalid)
	}

	// 3. A category reference must resolve within the company and agree
	// on type. An expense cannot be filed under an income category.
	if in.CategoryID != "" {
		category, err := s.Store.Categories().GetCategoryByID(ctx, in.CategoryID)
		if err != nil || category.CompanyID != companyID {
			return domain.Transaction{}, fmt.Errorf("%w: category does not exist", ErrInvalid)
		}
		if category.Type != entryType {
			return domain.Transaction{}, fmt.Errorf("%w: category type does not match transaction type", ErrInvalid)
		}
	}

	// 4. Append.
	transaction := domain.Transaction{
		ID:              idx.New().String(),
		CompanyID:       companyID,
		CreatedBy:       actingUserID,
		Type:            entryType,
		Amount:          amount,
		Description:     description,
		CategoryID:      in.CategoryID,
		TransactionDate: date,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.Store.Transactions().CreateTransaction(ctx, transaction); err != nil {
		log.Error("failed to record transaction", slog.Any("error", err))
		return domain.Transaction{}, err
	}

	log.Debug("transaction recorded",
		slog.String("company_id", companyID),
		slog.String("transaction_id", transaction.ID),
		slog.String("type", entryType.String()),
	)
	return transaction, nil
}

// List returns the company's ledger entries matching the filter, newest
// first.
func (s *TransactionService) List(
	ctx context.Context,
	companyID string,
	actingUserID string,
	filter store.TransactionFilter,
) ([]domain.Transaction, error) {
	if _, err := requireMembership(ctx, s.Store, companyID, actingUserID); err != nil {
		return nil, err
	}
	return s.Store.Transactions().ListTransactions(ctx, companyID, filter)
}

// Delete removes a ledger entry. The entry's creator may always delete it;
// otherwise deleting takes an admin or the owner.
func (s *TransactionService) Delete(
	ctx context.Context,
	companyID string,
	actingUserID string,
	transactionID string,
) error {
	log := slogx.FromContext(ctx)

	// 1. Authorize membership.
	acting, err := requireMembership(ctx, s.Store, companyID, actingUserID)
	if err != nil {
		return err
	}

	// 2. Resolve the entry within the company.
	transaction, err := s.Store.Transactions().GetTransactionByID(ctx, transactionID)
	if err != nil || transaction.CompanyID != companyID {
		return fmt.Errorf("%w: transaction does not exist", ErrNotFound)
	}

	// 3. Creator-or-manager rule.
	if transaction.CreatedBy != actingUserID && !acting.Role.CanManageTeam() {
		return fmt.Errorf("%w: only the creator or an admin may delete a transaction", ErrForbidden)
	}

	// 4. Apply.
	if err := s.Store.Transactions().DeleteTransaction(ctx, transaction.ID); err != nil {
		return err
	}

	log.Info("transaction deleted",
		slog.String("company_id", companyID),
		slog.String("transaction_id", transactionID),
		slog.String("acting_user_id", actingUserID),
	)
	return nil
}
