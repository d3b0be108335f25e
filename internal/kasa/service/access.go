package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/tallyworks/kasa/internal/kasa/domain"
	"github.com/tallyworks/kasa/internal/kasa/store"
)

// ErrNotMember is returned whenever a caller touches a company they do not
// belong to. Deliberately a ForbiddenError rather than NotFound for the
// membership row: the row-level rule is "no access", and we never confirm
// or deny a company's existence to outsiders.
var ErrNotMember = fmt.Errorf("%w: not a member of this company", ErrForbidden)

// requireMembership authorizes a company-scoped operation. Every read or
// write that carries a companyId goes through here; UI gating is not
// relied upon.
func requireMembership(
	ctx context.Context,
	st store.Store,
	companyID, userID string,
) (domain.Membership, error) {
	m, err := st.Memberships().GetMembership(ctx, companyID, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Membership{}, ErrNotMember
		}
		return domain.Membership{}, err
	}
	return m, nil
}
