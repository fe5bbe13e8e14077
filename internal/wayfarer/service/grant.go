package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/wayfarerhq/wayfarer/internal/wayfarer/domain"
	"github.com/wayfarerhq/wayfarer/internal/wayfarer/store"
	"github.com/wayfarerhq/wayfarer/pkg/idx"
	"github.com/wayfarerhq/wayfarer/pkg/slogx"
)

var (
	ErrGrantExists   = errors.New("grant already exists for this user and trip")
	ErrGrantNotFound = errors.New("grant not found")
	ErrUserNotFound  = errors.New("user not found")
	ErrInvalidRole   = errors.New("invalid role")
	ErrAdminGrantee  = errors.New("admins do not hold grants")
)

// GrantService is the admin-facing side of the access grant table. The
// middleware reads the same table through the store directly; all mutation
// goes through here (or through invitation redemption).
type GrantService struct {
	Store store.Store
}

// Grant creates a single access grant. It is strict: a second grant for the
// same (user, trip) pair is a conflict, never a silent update. Redemption
// uses the separate upsert path instead.
func (s *GrantService) Grant(
	ctx context.Context,
	userID, tripID string,
	role domain.Role,
	grantedBy string,
) (domain.TripGrant, error) {
	log := slogx.FromContext(ctx)

	if !role.Valid() {
		return domain.TripGrant{}, ErrInvalidRole
	}

	// The user must exist; a grant for an unknown user id is an admin typo,
	// not a conflict.
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TripGrant{}, ErrUserNotFound
		}
		return domain.TripGrant{}, err
	}

	// Admin access derives from the admin flag alone; they never hold rows
	// in the grant table.
	if user.IsAdmin {
		return domain.TripGrant{}, ErrAdminGrantee
	}

	grant := domain.TripGrant{
		ID:        idx.New().String(),
		UserID:    userID,
		TripID:    tripID,
		Role:      role,
		GrantedBy: grantedBy,
		GrantedAt: time.Now().UTC(),
	}

	if err := s.Store.Grants().CreateGrant(ctx, grant); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			log.Warn("duplicate grant attempt",
				slog.String("user_id", userID),
				slog.String("trip_id", tripID),
			)
			return domain.TripGrant{}, ErrGrantExists
		}
		log.Error("failed to create grant", slog.Any("error", err))
		return domain.TripGrant{}, err
	}

	log.Info("grant created",
		slog.String("grant_id", grant.ID),
		slog.String("user_id", userID),
		slog.String("trip_id", tripID),
		slog.String("role", string(role)),
		slog.String("granted_by", grantedBy),
	)
	return grant, nil
}

// UpdateRole changes the role on an existing grant and returns the updated
// row.
func (s *GrantService) UpdateRole(ctx context.Context, grantID string, role domain.Role) (domain.TripGrant, error) {
	log := slogx.FromContext(ctx)

	if !role.Valid() {
		return domain.TripGrant{}, ErrInvalidRole
	}

	if err := s.Store.Grants().UpdateGrantRole(ctx, grantID, role); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TripGrant{}, ErrGrantNotFound
		}
		log.Error("failed to update grant role", slog.String("grant_id", grantID), slog.Any("error", err))
		return domain.TripGrant{}, err
	}

	grant, err := s.Store.Grants().GetGrantByID(ctx, grantID)
	if err != nil {
		return domain.TripGrant{}, err
	}

	log.Info("grant role updated",
		slog.String("grant_id", grantID),
		slog.String("role", string(role)),
	)
	return grant, nil
}

// Revoke removes a grant. The next access check for that pair denies.
func (s *GrantService) Revoke(ctx context.Context, grantID string) error {
	log := slogx.FromContext(ctx)

	if err := s.Store.Grants().DeleteGrant(ctx, grantID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrGrantNotFound
		}
		log.Error("failed to revoke grant", slog.String("grant_id", grantID), slog.Any("error", err))
		return err
	}

	log.Info("grant revoked", slog.String("grant_id", grantID))
	return nil
}

// ListMembers returns each grant on a trip joined with the member's user
// record, for admin listings.
func (s *GrantService) ListMembers(ctx context.Context, tripID string) ([]domain.TripMember, error) {
	return s.Store.Grants().ListMembersForTrip(ctx, tripID)
}
