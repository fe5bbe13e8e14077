package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/wayfarerhq/wayfarer/internal/wayfarer/domain"
	"github.com/wayfarerhq/wayfarer/internal/wayfarer/store"
	"github.com/wayfarerhq/wayfarer/pkg/cryptox"
	"github.com/wayfarerhq/wayfarer/pkg/jwtx"
	"github.com/wayfarerhq/wayfarer/pkg/slogx"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// AuthService exchanges email/password credentials for signed access tokens.
// Token verification lives in pkg/jwtx; this service only issues.
type AuthService struct {
	Store     store.Store
	Signer    jwtx.Signer
	Issuer    string
	AccessTTL time.Duration
}

// Login verifies the credentials and returns a signed access token plus the
// authenticated user. The error is always ErrInvalidCredentials for a bad
// email or password so callers cannot probe which one was wrong.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, domain.User, error) {
	log := slogx.FromContext(ctx)

	if email == "" || password == "" {
		return "", domain.User{}, ErrInvalidCredentials
	}

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("login attempt for unknown email")
			return "", domain.User{}, ErrInvalidCredentials
		}
		log.Error("failed to fetch user for login", slog.Any("error", err))
		return "", domain.User{}, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		log.Warn("login attempt with wrong password", slog.String("user_id", user.ID))
		return "", domain.User{}, ErrInvalidCredentials
	}

	ttl := s.AccessTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultAccessTokenTTL
	}

	claims := jwtx.NewIdentityClaims(user.ID, user.Email, user.Name, user.IsAdmin, ttl, s.Issuer, time.Now().UTC())
	token, err := s.Signer.Sign(claims)
	if err != nil {
		log.Error("failed to sign access token", slog.Any("error", err))
		return "", domain.User{}, err
	}

	log.Info("user logged in",
		slog.String("user_id", user.ID),
		slog.Bool("admin", user.IsAdmin),
	)

	return token, user, nil
}
