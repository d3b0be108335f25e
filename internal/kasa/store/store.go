package store

import (
	"context"
	"errors"
	"time"

	"github.com/tallyworks/kasa/internal/kasa/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite,
// postgres) implement this. It exposes sub-repositories to keep concerns
// tidy and testable.
type Store interface {
	Companies() Companies
	Memberships() Memberships
	Categories() Categories
	Transactions() Transactions

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// Use it for multi-step operations that must be atomic (e.g., company
	// creation plus owner membership plus category seeding).
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources (optional for sqlite).
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Companies interface {
	// CreateCompany inserts a new company (id is provided by app via ULID).
	CreateCompany(ctx context.Context, c domain.Company) error

	// GetCompanyByID returns a company by id.
	GetCompanyByID(ctx context.Context, id string) (domain.Company, error)

	// GetCompanyByInviteCode returns the company holding the given code,
	// preferring one whose code is still active at now. Expired holders are
	// still returned so callers can distinguish "expired" from "no match".
	GetCompanyByInviteCode(ctx context.Context, code string, now time.Time) (domain.Company, error)

	// ActiveInviteCodeExists reports whether any company holds the code
	// with an expiry after now. Used to keep active codes globally unique.
	ActiveInviteCodeExists(ctx context.Context, code string, now time.Time) (bool, error)

	// UpdateInviteCode replaces the company's code pair and bumps updated_at.
	// The previous code becomes invalid immediately.
	UpdateInviteCode(ctx context.Context, companyID, code string, expiresAt time.Time) error

	// UpdateCompanyName mutates the name and bumps updated_at.
	UpdateCompanyName(ctx context.Context, companyID, name string) error
}

type Memberships interface {
	// CreateMembership inserts a new membership. The schema enforces
	// UNIQUE(company_id, user_id); violations surface as ErrAlreadyExists.
	CreateMembership(ctx context.Context, m domain.Membership) error

	// GetMembershipByID returns a membership by id.
	GetMembershipByID(ctx context.Context, id string) (domain.Membership, error)

	// GetMembership returns the membership for a (company, user) pair.
	GetMembership(ctx context.Context, companyID, userID string) (domain.Membership, error)

	// ListCompaniesForUser returns every company the user belongs to with
	// the role held there, ordered by join date.
	ListCompaniesForUser(ctx context.Context, userID string) ([]domain.UserCompany, error)

	// ListMembersOfCompany returns all memberships of a company ordered by
	// join date ascending (owner first by construction).
	ListMembersOfCompany(ctx context.Context, companyID string) ([]domain.Membership, error)

	// UpdateMembershipRole sets the role on a membership row.
	UpdateMembershipRole(ctx context.Context, membershipID string, role domain.Role) error

	// DeleteMembership removes a membership row.
	DeleteMembership(ctx context.Context, membershipID string) error
}

type Categories interface {
	// CreateCategory inserts a new category.
	CreateCategory(ctx context.Context, c domain.Category) error

	// GetCategoryByID returns a category by id.
	GetCategoryByID(ctx context.Context, id string) (domain.Category, error)

	// ListCategoriesForCompany returns the company's categories ordered by
	// type then name.
	ListCategoriesForCompany(ctx context.Context, companyID string) ([]domain.Category, error)

	// UpdateCategory mutates name and color and bumps updated_at.
	UpdateCategory(ctx context.Context, categoryID, name, color string) error

	// DeleteCategory removes a category. Transactions referencing it keep
	// their rows with category_id nulled (ON DELETE SET NULL).
	DeleteCategory(ctx context.Context, categoryID string) error
}

// TransactionFilter narrows ListTransactions. Zero values mean "no filter".
type TransactionFilter struct {
	From       domain.Date
	To         domain.Date
	Type       domain.EntryType
	CategoryID string
	Search     string // substring match on description
}

type Transactions interface {
	// CreateTransaction appends a ledger row.
	CreateTransaction(ctx context.Context, t domain.Transaction) error

	// GetTransactionByID returns a transaction by id.
	GetTransactionByID(ctx context.Context, id string) (domain.Transaction, error)

	// DeleteTransaction removes a ledger row.
	DeleteTransaction(ctx context.Context, id string) error

	// ListTransactions returns the company's transactions matching the
	// filter, ordered by transaction_date DESC then created_at DESC.
	ListTransactions(ctx context.Context, companyID string, f TransactionFilter) ([]domain.Transaction, error)
}
