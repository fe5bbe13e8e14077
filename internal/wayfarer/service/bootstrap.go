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
	ErrBootstrapAlready      = errors.New("system already bootstrapped")
	ErrBootstrapUnauthorized = errors.New("unauthorized bootstrap attempt")
)

// BootstrapService creates the initial admin account on a fresh deployment.
// It is gated twice: the user table must be empty and the caller must present
// the pre-configured bootstrap token.
type BootstrapService struct {
	Store store.Store
	Token string
}

func (s *BootstrapService) IsBootstrapped(ctx context.Context) (bool, error) {
	empty, err := s.Store.Users().IsEmpty(ctx)
	if err != nil {
		return false, err
	}
	return !empty, nil
}

// Bootstrap creates the first admin user. Later invitations and grants all
// trace back to this account via created_by / granted_by.
func (s *BootstrapService) Bootstrap(
	ctx context.Context,
	token string,
	email, name, password string,
) (domain.User, error) {
	log := slogx.FromContext(ctx)

	if bootstrapped, err := s.IsBootstrapped(ctx); err != nil {
		return domain.User{}, err
	} else if bootstrapped {
		log.Warn("attempted bootstrap on already-bootstrapped system")
		return domain.User{}, ErrBootstrapAlready
	}

	if s.Token == "" || !cryptox.ConstantTimeEquals(token, s.Token) {
		log.Warn("unauthorized bootstrap attempt")
		return domain.User{}, ErrBootstrapUnauthorized
	}

	passHash, err := cryptox.HashPassword(password)
	if err != nil {
		log.Error("failed to hash admin password", slog.Any("error", err))
		return domain.User{}, err
	}

	now := time.Now().UTC()
	admin := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		Name:         name,
		PasswordHash: passHash,
		IsAdmin:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		// Re-check inside the transaction so two concurrent bootstrap calls
		// cannot both create an admin.
		empty, err := tx.Users().IsEmpty(ctx)
		if err != nil {
			return err
		}
		if !empty {
			return ErrBootstrapAlready
		}
		return tx.Users().CreateUser(ctx, admin)
	})
	if err != nil {
		if !errors.Is(err, ErrBootstrapAlready) {
			log.Error("failed to create admin user", slog.Any("error", err))
		}
		return domain.User{}, err
	}

	log.Info("successfully bootstrapped system", slog.String("admin_user_id", admin.ID))
	return admin, nil
}
