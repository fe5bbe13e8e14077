package wayfarer_test

import (
	"testing"

	"github.com/wayfarerhq/wayfarer/pkg/waysdk"
	"github.com/stretchr/testify/require"
)

// TestBootstrapAndLogin tests the initial setup flow:
// 1. Bootstrap the service with the configured token
// 2. Login with the new admin credentials
// 3. Verify a second bootstrap is rejected
func TestBootstrapAndLogin(t *testing.T) {
	baseURL, cleanup := setupWayfarerContainer(t)
	defer cleanup()

	client := waysdk.NewClient(baseURL)

	admin := bootstrapService(t, client)
	t.Logf("Bootstrap successful, admin user ID: %s", admin.ID)

	session := adminLogin(t, client)
	require.Equal(t, admin.ID, session.User().ID)
	t.Logf("Admin login successful")

	// A second bootstrap must fail now that a user exists.
	_, err := client.Bootstrap(t.Context(), waysdk.BootstrapRequest{
		Token:    bootstrapToken,
		Email:    "second@example.com",
		Name:     "Second",
		Password: "Second123!",
	})
	require.Error(t, err, "Second bootstrap should be rejected")
	require.True(t, waysdk.IsKind(err, waysdk.ErrorKindConflict), "got: %v", err)
	t.Logf("Second bootstrap correctly rejected")
}

// TestBootstrapRequiresToken verifies the bootstrap token is enforced.
func TestBootstrapRequiresToken(t *testing.T) {
	baseURL, cleanup := setupWayfarerContainer(t)
	defer cleanup()

	client := waysdk.NewClient(baseURL)

	_, err := client.Bootstrap(t.Context(), waysdk.BootstrapRequest{
		Token:    "wrong-token",
		Email:    adminEmail,
		Name:     adminName,
		Password: adminPassword,
	})
	require.Error(t, err, "Bootstrap with wrong token should fail")
	assertForbidden(t, err, "wrong bootstrap token")

	// The failed attempt must not have consumed the bootstrap window.
	bootstrapService(t, client)
	t.Logf("Bootstrap still possible after rejected attempt")
}

// TestLoginInvalidCredentials verifies credential failures are opaque.
func TestLoginInvalidCredentials(t *testing.T) {
	baseURL, cleanup := setupWayfarerContainer(t)
	defer cleanup()

	client := waysdk.NewClient(baseURL)
	bootstrapService(t, client)

	_, err := client.Login(t.Context(), adminEmail, "wrong-password")
	require.Error(t, err)
	require.True(t, waysdk.IsKind(err, waysdk.ErrorKindUnauthenticated), "got: %v", err)

	_, err = client.Login(t.Context(), "nobody@example.com", adminPassword)
	require.Error(t, err)
	require.True(t, waysdk.IsKind(err, waysdk.ErrorKindUnauthenticated), "got: %v", err)
}
