package jwtx

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestValidateExpiry(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()

	t.Run("valid token passes", func(t *testing.T) {
		c := NewIdentityClaims("u", "", "", false, time.Hour, "iss", now)
		require.NoError(t, c.ValidateExpiry())
	})

	t.Run("expired token fails", func(t *testing.T) {
		c := NewIdentityClaims("u", "", "", false, -time.Minute, "iss", now.Add(-time.Hour))
		require.ErrorIs(t, c.ValidateExpiry(), ErrExpired)
	})

	t.Run("not-yet-valid token fails", func(t *testing.T) {
		c := NewIdentityClaims("u", "", "", false, time.Hour, "iss", now)
		c.NotBefore = jwt.NewNumericDate(now.Add(10 * time.Minute))
		require.ErrorIs(t, c.ValidateExpiry(), ErrNotYetValid)
	})

	t.Run("leeway tolerates small skew", func(t *testing.T) {
		c := NewIdentityClaims("u", "", "", false, -10*time.Second, "iss", now)
		require.ErrorIs(t, c.ValidateExpiry(), ErrExpired)
		require.NoError(t, c.ValidateExpiryWithLeeway(time.Minute))
	})
}

func TestValidateIssuer(t *testing.T) {
	t.Parallel()

	c := NewIdentityClaims("u", "", "", false, time.Hour, "wayfarer", time.Now().UTC())

	require.NoError(t, c.ValidateIssuer(""))
	require.NoError(t, c.ValidateIssuer("wayfarer"))
	require.ErrorIs(t, c.ValidateIssuer("intruder"), ErrIssuer)
}

func TestNewJTIIsUnique(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{})
	for range 100 {
		jti := NewJTI()
		_, dup := seen[jti]
		require.False(t, dup)
		seen[jti] = struct{}{}
	}
}
