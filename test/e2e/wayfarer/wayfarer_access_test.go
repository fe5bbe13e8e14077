package wayfarer_test

import (
	"testing"

	"github.com/wayfarerhq/wayfarer/pkg/waysdk"
	"github.com/stretchr/testify/require"
)

// TestAccessDenialIsOpaque verifies that a caller without a grant receives
// the same forbidden answer whether or not the trip exists.
func TestAccessDenialIsOpaque(t *testing.T) {
	client, admin := setupBootstrappedService(t)

	secret, err := admin.CreateTrip(t.Context(), waysdk.TripRequest{Name: "Secret Trip"})
	require.NoError(t, err)

	decoyTrip, err := admin.CreateTrip(t.Context(), waysdk.TripRequest{Name: "Decoy"})
	require.NoError(t, err)

	outsider := inviteAndRegister(t, client, admin, "viewer", []string{decoyTrip.ID}, "outsider@example.com", "Outsider123!")

	// Existing trip the outsider has no grant for.
	_, errExisting := outsider.GetTrip(t.Context(), secret.ID)
	assertForbidden(t, errExisting, "ungranted existing trip")

	// A well-formed id that matches nothing.
	_, errMissing := outsider.GetTrip(t.Context(), "01HZZZZZZZZZZZZZZZZZZZZZZZ")
	assertForbidden(t, errMissing, "nonexistent trip")

	// Same kind, same message: no existence oracle.
	apiExisting := errExisting.(*waysdk.APIError)
	apiMissing := errMissing.(*waysdk.APIError)
	require.Equal(t, apiExisting.StatusCode, apiMissing.StatusCode)
	require.Equal(t, apiExisting.Kind, apiMissing.Kind)
	require.Equal(t, apiExisting.Message, apiMissing.Message)

	t.Logf("Denials are indistinguishable")
}

// TestAdminBypassesGrants verifies the admin flag grants full access without
// any grant rows.
func TestAdminBypassesGrants(t *testing.T) {
	client, admin := setupBootstrappedService(t)

	// A non-admin creates a trip; they get an editor grant, the admin gets
	// nothing.
	creator := inviteAndRegister(t, client, admin,
		"viewer", []string{mustCreateTrip(t, admin, "Seed").ID},
		"creator@example.com", "Creator123!")

	trip, err := creator.CreateTrip(t.Context(), waysdk.TripRequest{Name: "Creator Trip"})
	require.NoError(t, err)

	// Admin can read and write it regardless.
	_, err = admin.GetTrip(t.Context(), trip.ID)
	require.NoError(t, err)

	_, err = admin.UpdateTrip(t.Context(), trip.ID, waysdk.TripRequest{Name: "Renamed By Admin"})
	require.NoError(t, err)

	// The only member is the creator; the admin holds no grant row.
	members, err := admin.ListMembers(t.Context(), trip.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	require.Equal(t, "editor", members[0].Role)

	t.Logf("Admin bypass confirmed without grant rows")
}

// TestGrantManagement exercises the admin grant surface: create, update role,
// revoke, and the effect on the member's access.
func TestGrantManagement(t *testing.T) {
	client, admin := setupBootstrappedService(t)

	trip := mustCreateTrip(t, admin, "Managed Trip")
	other := mustCreateTrip(t, admin, "Other Trip")

	member := inviteAndRegister(t, client, admin, "viewer", []string{other.ID}, "managed@example.com", "Managed123!")
	memberID := member.User().ID

	// Grant viewer on the managed trip.
	grant, err := admin.Grant(t.Context(), trip.ID, waysdk.GrantRequest{UserID: memberID, Role: "viewer"})
	require.NoError(t, err)
	require.Equal(t, "viewer", grant.Role)

	// Duplicate grant conflicts.
	_, err = admin.Grant(t.Context(), trip.ID, waysdk.GrantRequest{UserID: memberID, Role: "editor"})
	require.Error(t, err)
	require.True(t, waysdk.IsKind(err, waysdk.ErrorKindConflict), "got: %v", err)

	_, err = member.GetTrip(t.Context(), trip.ID)
	require.NoError(t, err)
	_, err = member.UpdateTrip(t.Context(), trip.ID, waysdk.TripRequest{Name: "nope"})
	assertForbidden(t, err, "viewer cannot edit")

	// Upgrade to editor.
	updated, err := admin.UpdateGrantRole(t.Context(), grant.ID, "editor")
	require.NoError(t, err)
	require.Equal(t, "editor", updated.Role)

	_, err = member.UpdateTrip(t.Context(), trip.ID, waysdk.TripRequest{Name: "Managed Trip v2"})
	require.NoError(t, err)

	// Revoke; denial is immediate on the next request.
	require.NoError(t, admin.RevokeGrant(t.Context(), grant.ID))

	_, err = member.GetTrip(t.Context(), trip.ID)
	assertForbidden(t, err, "revoked member")

	t.Logf("Grant lifecycle behaved as expected")
}

// TestNonAdminCannotManageGrants verifies grant and invitation management is
// admin only, even for editors of the trip.
func TestNonAdminCannotManageGrants(t *testing.T) {
	client, admin := setupBootstrappedService(t)

	trip := mustCreateTrip(t, admin, "Locked Down")
	editor := inviteAndRegister(t, client, admin, "editor", []string{trip.ID}, "editor@example.com", "Editor123!")

	_, err := editor.ListMembers(t.Context(), trip.ID)
	assertForbidden(t, err, "editor listing members")

	_, err = editor.Grant(t.Context(), trip.ID, waysdk.GrantRequest{UserID: editor.User().ID, Role: "viewer"})
	assertForbidden(t, err, "editor creating grants")

	_, err = editor.CreateInvitation(t.Context(), "viewer", []string{trip.ID}, "", 0)
	assertForbidden(t, err, "editor creating invitations")

	_, err = editor.ListInvitations(t.Context())
	assertForbidden(t, err, "editor listing invitations")
}

func mustCreateTrip(t *testing.T, session *waysdk.Session, name string) waysdk.Trip {
	t.Helper()

	trip, err := session.CreateTrip(t.Context(), waysdk.TripRequest{Name: name})
	require.NoError(t, err)
	return trip
}
