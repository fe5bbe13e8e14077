package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBootstrap(t *testing.T) {
	ctx := context.Background()

	t.Run("creates first admin", func(t *testing.T) {
		st := newTestStore(t)
		svc := &BootstrapService{Store: st, Token: "secret-token"}

		bootstrapped, err := svc.IsBootstrapped(ctx)
		require.NoError(t, err)
		require.False(t, bootstrapped)

		admin, err := svc.Bootstrap(ctx, "secret-token", "root@example.com", "Root", "long-enough-password")
		require.NoError(t, err)
		require.True(t, admin.IsAdmin)

		stored, err := st.Users().GetUserByEmail(ctx, "root@example.com")
		require.NoError(t, err)
		require.True(t, stored.IsAdmin)

		bootstrapped, err = svc.IsBootstrapped(ctx)
		require.NoError(t, err)
		require.True(t, bootstrapped)
	})

	t.Run("rejects wrong token", func(t *testing.T) {
		st := newTestStore(t)
		svc := &BootstrapService{Store: st, Token: "secret-token"}

		_, err := svc.Bootstrap(ctx, "wrong", "root@example.com", "Root", "long-enough-password")
		require.ErrorIs(t, err, ErrBootstrapUnauthorized)
	})

	t.Run("rejects empty configured token", func(t *testing.T) {
		st := newTestStore(t)
		svc := &BootstrapService{Store: st, Token: ""}

		_, err := svc.Bootstrap(ctx, "", "root@example.com", "Root", "long-enough-password")
		require.ErrorIs(t, err, ErrBootstrapUnauthorized)
	})

	t.Run("rejects second bootstrap", func(t *testing.T) {
		st := newTestStore(t)
		svc := &BootstrapService{Store: st, Token: "secret-token"}

		_, err := svc.Bootstrap(ctx, "secret-token", "root@example.com", "Root", "long-enough-password")
		require.NoError(t, err)

		_, err = svc.Bootstrap(ctx, "secret-token", "other@example.com", "Other", "long-enough-password")
		require.ErrorIs(t, err, ErrBootstrapAlready)
	})

	t.Run("any existing user closes bootstrap", func(t *testing.T) {
		st := newTestStore(t)
		seedUser(t, st, "someone@example.com", false)
		svc := &BootstrapService{Store: st, Token: "secret-token"}

		_, err := svc.Bootstrap(ctx, "secret-token", "root@example.com", "Root", "long-enough-password")
		require.ErrorIs(t, err, ErrBootstrapAlready)
	})
}
