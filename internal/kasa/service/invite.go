package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/tallyworks/kasa/internal/kasa/domain"
	"github.com/tallyworks/kasa/internal/kasa/store"
	"github.com/tallyworks/kasa/pkg/idx"
	"github.com/tallyworks/kasa/pkg/slogx"
)

// InviteCodeTTL is how long an issued code stays redeemable.
const InviteCodeTTL = 30 * time.Minute

// codeIssueAttempts bounds the collision-retry loop. With six digits and
// a handful of active codes at any time, a second attempt is already rare.
const codeIssueAttempts = 10

var (
	ErrCodeNotFound  = fmt.Errorf("%w: invite code does not match any company", ErrNotFound)
	ErrCodeExpired   = fmt.Errorf("%w: invite code has expired", ErrExpired)
	ErrCodeMalformed = fmt.Errorf("%w: invite code must be 6 digits", ErrInvalid)
	ErrAlreadyMember = fmt.Errorf("%w: already a member of this company", ErrConflict)
)

// InviteService owns the invite-code lifecycle: NoCode -> Active ->
// Expired -> Active (regenerated). The code pair lives on the company row,
// so issuing is a single-row transactional update and the previous code
// dies the moment a new one is written.
type InviteService struct {
	Store store.Store
}

// Issue generates a fresh 6-digit code for the company, valid for
// InviteCodeTTL. Only owners and admins may issue. Any previously active
// code becomes invalid immediately.
func (s *InviteService) Issue(
	ctx context.Context,
	companyID string,
	actingUserID string,
) (code string, expiresAt time.Time, err error) {
	log := slogx.FromContext(ctx)

	// 1. Authorize: actor must manage the team.
	acting, err := requireMembership(ctx, s.Store, companyID, actingUserID)
	if err != nil {
		return "", time.Time{}, err
	}
	if !acting.Role.CanManageTeam() {
		log.Warn("invite code issue refused",
			slog.String("company_id", companyID),
			slog.String("acting_role", acting.Role.String()),
		)
		return "", time.Time{}, fmt.Errorf("%w: issuing invite codes requires admin or owner", ErrForbidden)
	}

	// 2. Generate and write inside one transaction so two concurrent
	// issuers cannot leave a stale code observable.
	now := time.Now().UTC()
	expiresAt = now.Add(InviteCodeTTL)
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		code, err = placeUniqueCode(ctx, tx, companyID, now, expiresAt)
		return err
	})
	if err != nil {
		return "", time.Time{}, err
	}

	log.Debug("invite code issued",
		slog.String("company_id", companyID),
		slog.Time("expires_at", expiresAt),
	)
	return code, expiresAt, nil
}

// Redeem admits the user into the company holding the code. A matching
// but expired code reports expiry; an unknown code reports not-found; the
// UI collapses both into "invalid or expired code" but logs and tests can
// tell them apart.
func (s *InviteService) Redeem(
	ctx context.Context,
	code string,
	userID string,
) (domain.Membership, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate shape before touching the store.
	if !validCodeFormat(code) {
		return domain.Membership{}, ErrCodeMalformed
	}

	// 2. Find the company holding the code.
	now := time.Now().UTC()
	company, err := s.Store.Companies().GetCompanyByInviteCode(ctx, code, now)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("invite redemption attempted with unknown code")
			return domain.Membership{}, ErrCodeNotFound
		}
		log.Error("failed to look up invite code", slog.Any("error", err))
		return domain.Membership{}, err
	}

	// 3. A match that is past its expiry is a distinct failure.
	if !company.HasActiveInviteCode(now) {
		log.Warn("invite redemption attempted with expired code",
			slog.String("company_id", company.ID),
		)
		return domain.Membership{}, ErrCodeExpired
	}

	// 4. Create the membership. The UNIQUE(company_id, user_id) constraint
	// closes the race between two concurrent redemptions: exactly one
	// insert wins, the other surfaces as a conflict.
	membership := domain.Membership{
		ID:        idx.New().String(),
		CompanyID: company.ID,
		UserID:    userID,
		Role:      domain.RoleUser,
		JoinedAt:  now,
	}
	if err := s.Store.Memberships().CreateMembership(ctx, membership); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			log.Warn("invite redemption attempted by existing member",
				slog.String("company_id", company.ID),
				slog.String("user_id", userID),
			)
			return domain.Membership{}, ErrAlreadyMember
		}
		log.Error("failed to create membership", slog.Any("error", err))
		return domain.Membership{}, err
	}

	log.Info("user joined company via invite code",
		slog.String("company_id", company.ID),
		slog.String("user_id", userID),
		slog.String("membership_id", membership.ID),
	)
	return membership, nil
}

// placeUniqueCode writes a fresh code onto the company row, retrying while
// the generated value collides with another currently-active code. Expired
// codes on other companies do not count as collisions.
func placeUniqueCode(
	ctx context.Context,
	tx store.Tx,
	companyID string,
	now, expiresAt time.Time,
) (string, error) {
	for range codeIssueAttempts {
		code, err := generateInviteCode()
		if err != nil {
			return "", err
		}

		taken, err := tx.Companies().ActiveInviteCodeExists(ctx, code, now)
		if err != nil {
			return "", err
		}
		if taken {
			continue
		}

		if err := tx.Companies().UpdateInviteCode(ctx, companyID, code, expiresAt); err != nil {
			return "", err
		}
		return code, nil
	}
	return "", errors.New("could not place a unique invite code")
}

// generateInviteCode returns a uniformly random zero-padded 6-digit string.
func generateInviteCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func validCodeFormat(code string) bool {
	if len(code) != 6 {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
