package domain

import "time"

// Company is a tenant workspace. Categories, transactions and memberships
// all hang off a company id. The invite code pair lives inline on the row:
// at most one code is active per company and regenerating replaces it.
type Company struct {
	ID                  string
	Name                string
	OwnerID             string // immutable after creation
	InviteCode          string // empty when no code has been issued
	InviteCodeExpiresAt *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// HasActiveInviteCode reports whether the stored code is usable at t.
func (c Company) HasActiveInviteCode(t time.Time) bool {
	return c.InviteCode != "" && c.InviteCodeExpiresAt != nil && c.InviteCodeExpiresAt.After(t)
}
