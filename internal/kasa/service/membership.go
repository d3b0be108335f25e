package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tallyworks/kasa/internal/kasa/domain"
	"github.com/tallyworks/kasa/internal/kasa/store"
	"github.com/tallyworks/kasa/pkg/slogx"
)

// MembershipService manages the team roster of a company. The owner role
// is immovable: it is never assigned, never revoked, and its holder can
// never be removed through this service.
type MembershipService struct {
	Store store.Store
}

// List returns all members of the company, oldest first. Any member may
// see the roster.
func (s *MembershipService) List(
	ctx context.Context,
	companyID string,
	actingUserID string,
) ([]domain.Membership, error) {
	if _, err := requireMembership(ctx, s.Store, companyID, actingUserID); err != nil {
		return nil, err
	}
	return s.Store.Memberships().ListMembersOfCompany(ctx, companyID)
}

// SetRole changes a member's role between admin and user. Only the owner
// may change roles, the owner's own membership cannot be targeted, and the
// owner role cannot be granted.
func (s *MembershipService) SetRole(
	ctx context.Context,
	companyID string,
	actingUserID string,
	targetUserID string,
	role domain.Role,
) (domain.Membership, error) {
	log := slogx.FromContext(ctx)

	// 1. Authorize: only the owner reassigns roles.
	acting, err := requireMembership(ctx, s.Store, companyID, actingUserID)
	if err != nil {
		return domain.Membership{}, err
	}
	if acting.Role != domain.RoleOwner {
		return domain.Membership{}, fmt.Errorf("%w: changing roles requires the owner", ErrForbidden)
	}

	// 2. Owner is not an assignable role.
	if role == domain.RoleOwner {
		return domain.Membership{}, fmt.Errorf("%w: the owner role cannot be assigned", ErrInvalid)
	}

	// 3. Resolve the target inside the company.
	target, err := s.Store.Memberships().GetMembership(ctx, companyID, targetUserID)
	if err != nil {
		return domain.Membership{}, fmt.Errorf("%w: user is not a member of this company", ErrNotFound)
	}
	if target.Role == domain.RoleOwner {
		return domain.Membership{}, fmt.Errorf("%w: the owner's role cannot be changed", ErrForbidden)
	}

	// 4. Apply.
	if err := s.Store.Memberships().UpdateMembershipRole(ctx, target.ID, role); err != nil {
		return domain.Membership{}, err
	}
	target.Role = role

	log.Info("member role changed",
		slog.String("company_id", companyID),
		slog.String("target_user_id", targetUserID),
		slog.String("role", role.String()),
	)
	return target, nil
}

// Remove takes a member off the roster. Owners and admins may remove, but
// the owner can never be removed and admins cannot remove other admins.
// Members may also remove themselves (leave), except the owner.
func (s *MembershipService) Remove(
	ctx context.Context,
	companyID string,
	actingUserID string,
	targetUserID string,
) error {
	log := slogx.FromContext(ctx)

	// 1. Both parties must be members.
	acting, err := requireMembership(ctx, s.Store, companyID, actingUserID)
	if err != nil {
		return err
	}
	target, err := s.Store.Memberships().GetMembership(ctx, companyID, targetUserID)
	if err != nil {
		return fmt.Errorf("%w: user is not a member of this company", ErrNotFound)
	}

	// 2. The owner never leaves through this path.
	if target.Role == domain.RoleOwner {
		return fmt.Errorf("%w: the owner cannot be removed", ErrForbidden)
	}

	// 3. Self-removal is allowed for non-owners; removing others takes a
	// manager, and admins cannot remove their peers.
	if actingUserID != targetUserID {
		if !acting.Role.CanManageTeam() {
			return fmt.Errorf("%w: removing members requires admin or owner", ErrForbidden)
		}
		if acting.Role == domain.RoleAdmin && target.Role == domain.RoleAdmin {
			return fmt.Errorf("%w: admins cannot remove other admins", ErrForbidden)
		}
	}

	// 4. Apply.
	if err := s.Store.Memberships().DeleteMembership(ctx, target.ID); err != nil {
		return err
	}

	log.Info("member removed",
		slog.String("company_id", companyID),
		slog.String("target_user_id", targetUserID),
		slog.String("acting_user_id", actingUserID),
	)
	return nil
}
