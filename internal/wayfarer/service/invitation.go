package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/wayfarerhq/wayfarer/internal/wayfarer/domain"
	"github.com/wayfarerhq/wayfarer/internal/wayfarer/store"
	"github.com/wayfarerhq/wayfarer/pkg/cryptox"
	"github.com/wayfarerhq/wayfarer/pkg/idx"
	"github.com/wayfarerhq/wayfarer/pkg/slogx"
)

var (
	ErrInvitationNotFound    = errors.New("invitation not found")
	ErrInvitationExpired     = errors.New("invitation has expired")
	ErrInvitationAlreadyUsed = errors.New("invitation has already been used")
	ErrEmailAlreadyTaken     = errors.New("email already registered")
)

// Validation reasons reported on the public validation read. Unlike trip
// access checks these are deliberately distinguishable, to tell an invitee
// why their code no longer works.
const (
	ReasonNotFound    = "not_found"
	ReasonAlreadyUsed = "already_used"
	ReasonExpired     = "expired"
)

// InvitationValidation is the outcome of a validation read. Role and TripIDs
// are populated only when Valid.
type InvitationValidation struct {
	Valid   bool
	Reason  string
	Role    domain.Role
	TripIDs []string
}

// InvitationService owns the invitation lifecycle: issue, validate, redeem,
// revoke. Redemption is the single place where concurrent callers can race;
// the conditional used-marker update resolves it to exactly one winner.
type InvitationService struct {
	Store store.Store
}

// CreateInvitation issues a new single-use invitation covering one or more
// trips at the given role. The invitation row and its trip links commit
// together. The returned string is the raw code, shown exactly once; only
// its fingerprint is stored.
//
// A negative ttl produces an already-expired invitation on purpose. It is
// never clamped.
func (s *InvitationService) CreateInvitation(
	ctx context.Context,
	createdBy string,
	role domain.Role,
	tripIDs []string,
	email *string,
	ttl time.Duration,
) (string, domain.Invitation, error) {
	log := slogx.FromContext(ctx)

	if !role.Valid() {
		return "", domain.Invitation{}, ErrInvalidRole
	}
	if len(tripIDs) == 0 {
		return "", domain.Invitation{}, ErrInvalidRequest
	}

	code, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		log.Error("failed to generate invitation code", slog.Any("error", err))
		return "", domain.Invitation{}, err
	}

	now := time.Now().UTC()
	inv := domain.Invitation{
		ID:        idx.New().String(),
		CodeHash:  cryptox.FingerprintToken(code),
		CreatedBy: createdBy,
		Email:     email,
		Role:      role,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Invitations().CreateInvitation(ctx, inv); err != nil {
			return err
		}
		for _, tripID := range tripIDs {
			if err := tx.Invitations().AddTripLink(ctx, inv.ID, tripID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Error("failed to create invitation", slog.Any("error", err))
		return "", domain.Invitation{}, err
	}

	log.Info("invitation created",
		slog.String("invitation_id", inv.ID),
		slog.String("created_by", createdBy),
		slog.String("role", string(role)),
		slog.Int("trip_count", len(tripIDs)),
		slog.Time("expires_at", inv.ExpiresAt),
	)
	return code, inv, nil
}

// ValidateInvitation reports whether a code is redeemable. The reasons are
// evaluated in a fixed order and the first match wins: not_found, then
// already_used, then expired. An invitation that is both used and expired
// reports already_used because consumption is the more informative terminal
// fact.
func (s *InvitationService) ValidateInvitation(ctx context.Context, code string) (InvitationValidation, error) {
	log := slogx.FromContext(ctx)

	inv, err := s.Store.Invitations().GetInvitationByCodeHash(ctx, cryptox.FingerprintToken(code))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return InvitationValidation{Reason: ReasonNotFound}, nil
		}
		log.Error("failed to fetch invitation", slog.Any("error", err))
		return InvitationValidation{}, err
	}

	if inv.Redeemed() {
		return InvitationValidation{Reason: ReasonAlreadyUsed}, nil
	}
	if inv.ExpiredAt(time.Now().UTC()) {
		return InvitationValidation{Reason: ReasonExpired}, nil
	}

	tripIDs, err := s.Store.Invitations().ListTripIDs(ctx, inv.ID)
	if err != nil {
		log.Error("failed to list invitation trips", slog.Any("error", err))
		return InvitationValidation{}, err
	}

	return InvitationValidation{Valid: true, Role: inv.Role, TripIDs: tripIDs}, nil
}

// RedeemInvitation consumes the code for an existing user and fans it out
// into one grant per linked trip. The used-marker transition and every grant
// upsert commit together or not at all.
func (s *InvitationService) RedeemInvitation(ctx context.Context, code, userID string) ([]domain.TripGrant, error) {
	log := slogx.FromContext(ctx)

	var grants []domain.TripGrant
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		grants, err = redeemInTx(ctx, tx, code, userID)
		return err
	})
	if err != nil {
		if isInvitationError(err) {
			log.Warn("invitation redemption rejected", slog.String("reason", err.Error()))
		} else {
			log.Error("failed to redeem invitation", slog.Any("error", err))
		}
		return nil, err
	}

	log.Info("invitation redeemed",
		slog.String("user_id", userID),
		slog.Int("grant_count", len(grants)),
	)
	return grants, nil
}

// RegisterAndRedeem creates a user account and redeems the invitation in the
// same transaction, for invitees who do not have an account yet. If any step
// fails neither the user nor any grant persists.
func (s *InvitationService) RegisterAndRedeem(
	ctx context.Context,
	code, email, name, password string,
) (domain.User, []domain.TripGrant, error) {
	log := slogx.FromContext(ctx)

	if code == "" || email == "" || name == "" || password == "" {
		return domain.User{}, nil, ErrInvalidRequest
	}

	passHash, err := cryptox.HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return domain.User{}, nil, err
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		Name:         name,
		PasswordHash: passHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	var grants []domain.TripGrant
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, user); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrEmailAlreadyTaken
			}
			return err
		}
		var err error
		grants, err = redeemInTx(ctx, tx, code, user.ID)
		return err
	})
	if err != nil {
		if isInvitationError(err) || errors.Is(err, ErrEmailAlreadyTaken) {
			log.Warn("registration via invitation rejected", slog.String("reason", err.Error()))
		} else {
			log.Error("failed to register via invitation", slog.Any("error", err))
		}
		return domain.User{}, nil, err
	}

	log.Info("user registered via invitation",
		slog.String("user_id", user.ID),
		slog.Int("grant_count", len(grants)),
	)
	return user, grants, nil
}

// RevokeInvitation consumes an invitation without granting anything: the
// used marker is set with the acting admin recorded as the consumer, so the
// code can never be redeemed afterwards.
func (s *InvitationService) RevokeInvitation(ctx context.Context, invitationID, actorID string) error {
	log := slogx.FromContext(ctx)

	if _, err := s.Store.Invitations().GetInvitationByID(ctx, invitationID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvitationNotFound
		}
		return err
	}

	if err := s.Store.Invitations().MarkInvitationUsed(ctx, invitationID, actorID, time.Now().UTC()); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// The row exists but used_at was already set.
			return ErrInvitationAlreadyUsed
		}
		log.Error("failed to revoke invitation", slog.String("invitation_id", invitationID), slog.Any("error", err))
		return err
	}

	log.Info("invitation revoked",
		slog.String("invitation_id", invitationID),
		slog.String("revoked_by", actorID),
	)
	return nil
}

// ListInvitations returns every invitation, newest first (admin listing).
func (s *InvitationService) ListInvitations(ctx context.Context) ([]domain.Invitation, error) {
	return s.Store.Invitations().ListInvitations(ctx)
}

// redeemInTx re-runs the validation checks inside the caller's transaction
// and performs the redemption. The conditional update in MarkInvitationUsed
// is the compare-and-set: when two callers race on one code, exactly one
// sees the row transition and the loser returns ErrInvitationAlreadyUsed
// having mutated nothing.
func redeemInTx(ctx context.Context, tx store.Tx, code, userID string) ([]domain.TripGrant, error) {
	inv, err := tx.Invitations().GetInvitationByCodeHash(ctx, cryptox.FingerprintToken(code))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvitationNotFound
		}
		return nil, err
	}

	now := time.Now().UTC()
	if inv.Redeemed() {
		return nil, ErrInvitationAlreadyUsed
	}
	if inv.ExpiredAt(now) {
		return nil, ErrInvitationExpired
	}

	user, err := tx.Users().GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := tx.Invitations().MarkInvitationUsed(ctx, inv.ID, userID, now); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvitationAlreadyUsed
		}
		return nil, err
	}

	// Admins never hold rows in the grant table; their access derives from
	// the admin flag. The code is still consumed.
	if user.IsAdmin {
		return nil, nil
	}

	tripIDs, err := tx.Invitations().ListTripIDs(ctx, inv.ID)
	if err != nil {
		return nil, err
	}

	grants := make([]domain.TripGrant, 0, len(tripIDs))
	for _, tripID := range tripIDs {
		grant := domain.TripGrant{
			ID:        idx.New().String(),
			UserID:    userID,
			TripID:    tripID,
			Role:      inv.Role,
			GrantedBy: inv.CreatedBy,
			GrantedAt: now,
		}
		if err := tx.Grants().UpsertGrant(ctx, grant); err != nil {
			return nil, err
		}
		grants = append(grants, grant)
	}
	return grants, nil
}

func isInvitationError(err error) bool {
	return errors.Is(err, ErrInvitationNotFound) ||
		errors.Is(err, ErrInvitationExpired) ||
		errors.Is(err, ErrInvitationAlreadyUsed)
}
