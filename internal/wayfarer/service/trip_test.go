package service

import (
	"context"
	"testing"

	"github.com/wayfarerhq/wayfarer/internal/wayfarer/domain"
	"github.com/wayfarerhq/wayfarer/internal/wayfarer/store"
	"github.com/stretchr/testify/require"
)

func TestCreateTrip(t *testing.T) {
	ctx := context.Background()

	t.Run("non-admin creator receives editor grant", func(t *testing.T) {
		st := newTestStore(t)
		svc := &TripService{Store: st}
		user := seedUser(t, st, "user@example.com", false)

		trip, err := svc.CreateTrip(ctx, user.ID, false, "Iceland", "ring road")
		require.NoError(t, err)
		require.Equal(t, user.ID, trip.CreatedBy)

		g, err := st.Grants().GetGrantForUserTrip(ctx, user.ID, trip.ID)
		require.NoError(t, err)
		require.Equal(t, domain.RoleEditor, g.Role)
		require.Equal(t, user.ID, g.GrantedBy)
	})

	t.Run("admin creator gets no grant row", func(t *testing.T) {
		st := newTestStore(t)
		svc := &TripService{Store: st}
		admin := seedUser(t, st, "admin@example.com", true)

		trip, err := svc.CreateTrip(ctx, admin.ID, true, "Japan", "")
		require.NoError(t, err)

		_, err = st.Grants().GetGrantForUserTrip(ctx, admin.ID, trip.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		st := newTestStore(t)
		svc := &TripService{Store: st}
		user := seedUser(t, st, "user@example.com", false)

		_, err := svc.CreateTrip(ctx, user.ID, false, "", "")
		require.ErrorIs(t, err, ErrInvalidRequest)
	})
}

func TestListTrips(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &TripService{Store: st}

	admin := seedUser(t, st, "admin@example.com", true)
	alice := seedUser(t, st, "alice@example.com", false)
	bob := seedUser(t, st, "bob@example.com", false)

	aliceTrip, err := svc.CreateTrip(ctx, alice.ID, false, "Alice's trip", "")
	require.NoError(t, err)
	_, err = svc.CreateTrip(ctx, bob.ID, false, "Bob's trip", "")
	require.NoError(t, err)

	t.Run("non-admin sees only granted trips", func(t *testing.T) {
		trips, err := svc.ListTrips(ctx, alice.ID, false)
		require.NoError(t, err)
		require.Len(t, trips, 1)
		require.Equal(t, aliceTrip.ID, trips[0].ID)
	})

	t.Run("admin sees everything without grant rows", func(t *testing.T) {
		trips, err := svc.ListTrips(ctx, admin.ID, true)
		require.NoError(t, err)
		require.Len(t, trips, 2)
	})
}

func TestUpdateAndDeleteTrip(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &TripService{Store: st}

	user := seedUser(t, st, "user@example.com", false)
	trip, err := svc.CreateTrip(ctx, user.ID, false, "Before", "old")
	require.NoError(t, err)

	t.Run("update mutates name and description", func(t *testing.T) {
		got, err := svc.UpdateTrip(ctx, trip.ID, "After", "new")
		require.NoError(t, err)
		require.Equal(t, "After", got.Name)
		require.Equal(t, "new", got.Description)
	})

	t.Run("update of unknown trip", func(t *testing.T) {
		_, err := svc.UpdateTrip(ctx, "01ZZZZZZZZZZZZZZZZZZZZZZZZ", "x", "")
		require.ErrorIs(t, err, ErrTripNotFound)
	})

	t.Run("delete cascades to grants", func(t *testing.T) {
		require.NoError(t, svc.DeleteTrip(ctx, trip.ID))

		_, err := svc.GetTrip(ctx, trip.ID)
		require.ErrorIs(t, err, ErrTripNotFound)

		_, err = st.Grants().GetGrantForUserTrip(ctx, user.ID, trip.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("delete of unknown trip", func(t *testing.T) {
		require.ErrorIs(t, svc.DeleteTrip(ctx, trip.ID), ErrTripNotFound)
	})
}
