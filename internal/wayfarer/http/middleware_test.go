package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/wayfarerhq/wayfarer/internal/wayfarer/domain"
	"github.com/wayfarerhq/wayfarer/internal/wayfarer/store"
	"github.com/wayfarerhq/wayfarer/internal/wayfarer/store/drivers/sqlite"
	"github.com/wayfarerhq/wayfarer/pkg/httpx"
	"github.com/wayfarerhq/wayfarer/pkg/idx"
	"github.com/stretchr/testify/require"
)

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

func seedGrant(t *testing.T, st store.Store, user domain.User, trip domain.Trip, role domain.Role) domain.TripGrant {
	t.Helper()

	g := domain.TripGrant{
		ID:        idx.New().String(),
		UserID:    user.ID,
		TripID:    trip.ID,
		Role:      role,
		GrantedBy: user.ID,
		GrantedAt: time.Now().UTC(),
	}
	require.NoError(t, st.Grants().CreateGrant(context.Background(), g))
	return g
}

// doTripRequest sends a request through RequireTripRole with the given
// identity and returns the recorder. The wrapped handler answers 200 "ok".
func doTripRequest(t *testing.T, st store.Store, min domain.Role, id httpx.Identity, tripID string) *httptest.ResponseRecorder {
	t.Helper()

	handler := RequireTripRole(st, min, PathTripID)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
		}),
	)

	mux := http.NewServeMux()
	mux.Handle("GET /v1/trips/{id}", handler)

	req := httptest.NewRequest(http.MethodGet, "/v1/trips/"+tripID, nil)
	req = req.WithContext(httpx.ContextWithIdentity(req.Context(), id))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func identityFor(u domain.User) httpx.Identity {
	return httpx.Identity{ID: u.ID, Email: u.Email, Name: u.Name, Admin: u.IsAdmin}
}

func decodeErrorKind(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Error
}

func TestRequireTripRoleAdminBypass(t *testing.T) {
	st := newTestStore(t)
	admin := seedUser(t, st, "admin@example.com", true)
	trip := seedTrip(t, st, admin.ID)

	t.Run("existing trip without any grant row", func(t *testing.T) {
		rec := doTripRequest(t, st, domain.RoleEditor, identityFor(admin), trip.ID)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("nonexistent trip", func(t *testing.T) {
		// The bypass happens before any lookup, so a missing trip falls
		// through to the handler rather than denying.
		rec := doTripRequest(t, st, domain.RoleEditor, identityFor(admin), idx.New().String())
		require.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRequireTripRoleDeniesWithoutGrant(t *testing.T) {
	st := newTestStore(t)
	admin := seedUser(t, st, "admin@example.com", true)
	user := seedUser(t, st, "user@example.com", false)
	trip := seedTrip(t, st, admin.ID)

	existing := doTripRequest(t, st, domain.RoleViewer, identityFor(user), trip.ID)
	missing := doTripRequest(t, st, domain.RoleViewer, identityFor(user), idx.New().String())

	require.Equal(t, http.StatusForbidden, existing.Code)
	require.Equal(t, http.StatusForbidden, missing.Code)

	// The two denials must be byte-identical so a caller cannot probe for
	// trip existence.
	require.Equal(t, existing.Body.String(), missing.Body.String())
	require.Equal(t, "forbidden", decodeErrorKind(t, existing))
}

func TestRequireTripRoleHierarchy(t *testing.T) {
	st := newTestStore(t)
	admin := seedUser(t, st, "admin@example.com", true)
	viewer := seedUser(t, st, "viewer@example.com", false)
	editor := seedUser(t, st, "editor@example.com", false)
	trip := seedTrip(t, st, admin.ID)
	seedGrant(t, st, viewer, trip, domain.RoleViewer)
	seedGrant(t, st, editor, trip, domain.RoleEditor)

	t.Run("viewer grant passes viewer check", func(t *testing.T) {
		rec := doTripRequest(t, st, domain.RoleViewer, identityFor(viewer), trip.ID)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("viewer grant fails editor check", func(t *testing.T) {
		rec := doTripRequest(t, st, domain.RoleEditor, identityFor(viewer), trip.ID)
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("editor grant passes both checks", func(t *testing.T) {
		require.Equal(t, http.StatusOK, doTripRequest(t, st, domain.RoleViewer, identityFor(editor), trip.ID).Code)
		require.Equal(t, http.StatusOK, doTripRequest(t, st, domain.RoleEditor, identityFor(editor), trip.ID).Code)
	})
}

func TestRequireTripRoleMalformedID(t *testing.T) {
	st := newTestStore(t)
	user := seedUser(t, st, "user@example.com", false)

	rec := doTripRequest(t, st, domain.RoleViewer, identityFor(user), "not-a-ulid")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "validation_error", decodeErrorKind(t, rec))
}

func TestRequireTripRoleCorruptedRoleDenies(t *testing.T) {
	st := newTestStore(t)
	admin := seedUser(t, st, "admin@example.com", true)
	user := seedUser(t, st, "user@example.com", false)
	trip := seedTrip(t, st, admin.ID)

	// Write a grant whose role is not part of the hierarchy, as if the
	// column was corrupted or written by a newer release.
	g := domain.TripGrant{
		ID:        idx.New().String(),
		UserID:    user.ID,
		TripID:    trip.ID,
		Role:      domain.Role("owner"),
		GrantedBy: admin.ID,
		GrantedAt: time.Now().UTC(),
	}
	require.NoError(t, st.Grants().CreateGrant(context.Background(), g))

	rec := doTripRequest(t, st, domain.RoleViewer, identityFor(user), trip.ID)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireTripRoleRevocationIsImmediate(t *testing.T) {
	st := newTestStore(t)
	admin := seedUser(t, st, "admin@example.com", true)
	user := seedUser(t, st, "user@example.com", false)
	trip := seedTrip(t, st, admin.ID)
	g := seedGrant(t, st, user, trip, domain.RoleEditor)

	require.Equal(t, http.StatusOK, doTripRequest(t, st, domain.RoleEditor, identityFor(user), trip.ID).Code)

	require.NoError(t, st.Grants().DeleteGrant(context.Background(), g.ID))

	require.Equal(t, http.StatusForbidden, doTripRequest(t, st, domain.RoleEditor, identityFor(user), trip.ID).Code)
}

func TestRequireTripRoleMissingIdentity(t *testing.T) {
	st := newTestStore(t)

	handler := RequireTripRole(st, domain.RoleViewer, PathTripID)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler must not run without an identity")
		}),
	)

	req := httptest.NewRequest(http.MethodGet, "/v1/trips/"+idx.New().String(), nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
