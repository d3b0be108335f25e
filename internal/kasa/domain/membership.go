package domain

import "time"

// Membership grants a user a role within a company. A user holds at most
// one membership per company, and exactly one membership per company has
// RoleOwner (matching Company.OwnerID).
type Membership struct {
	ID        string
	CompanyID string
	UserID    string
	Role      Role
	InvitedBy string // empty for the owner and self-service joins
	JoinedAt  time.Time
}

// UserCompany pairs a company with the caller's role in it. Used by the
// workspace switcher to list where a user may go.
type UserCompany struct {
	Company Company
	Role    Role
}
