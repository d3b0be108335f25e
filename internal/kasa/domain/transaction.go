package domain

import "time"

// Transaction is a single monetary event in a company's ledger. Rows are
// immutable after creation; corrections are delete-and-recreate.
type Transaction struct {
	ID              string
	CompanyID       string
	CreatedBy       string
	Type            EntryType
	Amount          Money
	Description     string // optional
	CategoryID      string // optional; empty when uncategorised
	TransactionDate Date
	CreatedAt       time.Time
}
