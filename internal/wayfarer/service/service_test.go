package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/wayfarerhq/wayfarer/internal/wayfarer/domain"
	"github.com/wayfarerhq/wayfarer/internal/wayfarer/store"
	"github.com/wayfarerhq/wayfarer/internal/wayfarer/store/drivers/sqlite"
	"github.com/wayfarerhq/wayfarer/pkg/cryptox"
	"github.com/wayfarerhq/wayfarer/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "wayfarer-test-*")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

// newTestStore opens a sqlite store on a per-test temp file with migrations
// applied. A file DSN is used instead of :memory: because the sql pool can
// open more than one connection and each in-memory connection would see its
// own empty database.
func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func seedUser(t *testing.T, st store.Store, email string, admin bool) domain.User {
	t.Helper()

	now := time.Now().UTC()
	u := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		Name:         email,
		PasswordHash: "unused",
		IsAdmin:      admin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, st.Users().CreateUser(context.Background(), u))
	return u
}

func seedTrip(t *testing.T, st store.Store, createdBy string) domain.Trip {
	t.Helper()

	now := time.Now().UTC()
	trip := domain.Trip{
		ID:        idx.New().String(),
		Name:      "trip",
		CreatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, st.Trips().CreateTrip(context.Background(), trip))
	return trip
}
