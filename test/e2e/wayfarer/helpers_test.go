package wayfarer_test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/wayfarerhq/wayfarer/pkg/waysdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Common constants and helper functions for wayfarer end-to-end tests.
 * This includes container setup, service operations, and assertions.
 */

const (
	testImageName = "wayfarer-test:latest"

	bootstrapToken = "test-bootstrap-token-12345"
	adminEmail     = "admin@example.com"
	adminName      = "Administrator"
	adminPassword  = "Admin123!"
)

// TestMain manages the test lifecycle, builds the Docker image once before
// all tests and cleans it up after all tests complete.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building Wayfarer Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up Wayfarer Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

// buildDockerImage builds the test Docker image if it doesn't exist.
func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/wayfarer/Dockerfile",
		"../../../")
	cmd.Dir = "."
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

// cleanupDockerImage removes the test Docker image.
func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // Ignore errors - image might not exist
}

// setupWayfarerContainer starts the service in a container with relaxed rate
// limits and returns the base URL. Most tests use this; rate limit tests use
// setupWayfarerContainerWithDefaultRateLimits.
func setupWayfarerContainer(t *testing.T) (string, func()) {
	t.Helper()

	env := map[string]string{
		"BOOTSTRAP_TOKEN":        bootstrapToken,
		"WAYFARER_DATABASE_FILE": "/wayfarer.db",
		"WAYFARER_PEPPER_FILE":   "/pepper",
		"WAYFARER_ISSUER":        "wayfarer",
		"ENV":                    "test",
		"LOG_LEVEL":              "info",
		"LOG_FORMAT":             "json",
		// Increase rate limits for E2E tests to prevent test failures.
		// Tests often make many rapid requests which would otherwise hit
		// the strict production limits.
		"RATELIMIT_STRICT_REQUESTS":   "1000",
		"RATELIMIT_STRICT_WINDOW_SEC": "60",
		"RATELIMIT_STRICT_BURST":      "1000",
		"RATELIMIT_MODERATE_REQUESTS": "1000",
		"RATELIMIT_MODERATE_BURST":    "1000",
	}
	return startContainer(t, env)
}

// setupWayfarerContainerWithDefaultRateLimits starts the service with
// production rate limits, specifically for testing that limiting works.
func setupWayfarerContainerWithDefaultRateLimits(t *testing.T) (string, func()) {
	t.Helper()

	env := map[string]string{
		"BOOTSTRAP_TOKEN":        bootstrapToken,
		"WAYFARER_DATABASE_FILE": "/wayfarer.db",
		"WAYFARER_PEPPER_FILE":   "/pepper",
		"WAYFARER_ISSUER":        "wayfarer",
		"ENV":                    "test",
		"LOG_LEVEL":              "info",
		"LOG_FORMAT":             "json",
		// NOTE: No rate limit overrides - production defaults apply.
	}
	return startContainer(t, env)
}

func startContainer(t *testing.T, env map[string]string) (string, func()) {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env:          env,
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	baseURL := fmt.Sprintf("http://%s:%s", host, mappedPort.Port())

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return baseURL, cleanup
}

// bootstrapService creates the first admin and returns the created user.
func bootstrapService(t *testing.T, client *waysdk.Client) waysdk.User {
	t.Helper()

	resp, err := client.Bootstrap(t.Context(), waysdk.BootstrapRequest{
		Token:    bootstrapToken,
		Email:    adminEmail,
		Name:     adminName,
		Password: adminPassword,
	})
	require.NoError(t, err, "Bootstrap should succeed")
	require.NotEmpty(t, resp.User.ID, "Admin user ID should not be empty")
	require.True(t, resp.User.IsAdmin, "Bootstrap user should be admin")

	return resp.User
}

// adminLogin logs in as the bootstrapped admin.
func adminLogin(t *testing.T, client *waysdk.Client) *waysdk.Session {
	t.Helper()

	session, err := client.Login(t.Context(), adminEmail, adminPassword)
	require.NoError(t, err, "Admin login should succeed")
	require.NotEmpty(t, session.AccessToken())

	return session
}

// setupBootstrappedService starts a container, bootstraps it and returns the
// client plus an admin session.
func setupBootstrappedService(t *testing.T) (*waysdk.Client, *waysdk.Session) {
	t.Helper()

	baseURL, cleanup := setupWayfarerContainer(t)
	t.Cleanup(cleanup)

	client := waysdk.NewClient(baseURL)
	bootstrapService(t, client)
	return client, adminLogin(t, client)
}

// inviteAndRegister issues an invitation for the given trips and redeems it
// anonymously, returning a session for the new account.
func inviteAndRegister(t *testing.T, client *waysdk.Client, admin *waysdk.Session, role string, tripIDs []string, email, password string) *waysdk.Session {
	t.Helper()

	inv, err := admin.CreateInvitation(t.Context(), role, tripIDs, "", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, inv.Code, "Invitation code should be returned")

	redeemed, err := client.RedeemInvitation(t.Context(), waysdk.RedeemInvitationRequest{
		Code:     inv.Code,
		Email:    email,
		Name:     email,
		Password: password,
	})
	require.NoError(t, err)
	require.Len(t, redeemed.Grants, len(tripIDs), "One grant per invited trip")

	session, err := client.Login(t.Context(), email, password)
	require.NoError(t, err)
	return session
}

// assertForbidden checks that an error is an APIError with the forbidden kind.
func assertForbidden(t *testing.T, err error, context string) {
	t.Helper()
	require.Error(t, err, context)
	require.True(t, waysdk.IsKind(err, waysdk.ErrorKindForbidden),
		"%s - expected forbidden, got: %v", context, err)
}
