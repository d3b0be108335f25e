package domain

import (
	"fmt"
	"time"
)

// EntryType classifies both categories and transactions.
type EntryType string

const (
	TypeIncome  EntryType = "income"
	TypeExpense EntryType = "expense"
)

// ParseEntryType validates a type string coming off the wire.
func ParseEntryType(s string) (EntryType, error) {
	switch EntryType(s) {
	case TypeIncome, TypeExpense:
		return EntryType(s), nil
	}
	return "", fmt.Errorf("unknown entry type %q", s)
}

func (t EntryType) String() string { return string(t) }

// Category is a per-company labelled bucket. A transaction may reference a
// category of the same type.
type Category struct {
	ID        string
	CompanyID string
	Name      string
	Type      EntryType
	Color     string // hex color used by the chart layer
	CreatedAt time.Time
	UpdatedAt time.Time
}
