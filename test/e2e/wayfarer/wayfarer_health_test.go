package wayfarer_test

import (
	"testing"

	"github.com/wayfarerhq/wayfarer/pkg/waysdk"
	"github.com/stretchr/testify/require"
)

// TestLivezEndpoint verifies the liveness check endpoint works before bootstrap.
func TestLivezEndpoint(t *testing.T) {
	baseURL, cleanup := setupWayfarerContainer(t)
	defer cleanup()

	client := waysdk.NewClient(baseURL)

	health, err := client.GetLiveness(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", health.Status)
	require.NotEmpty(t, health.Uptime)

	t.Logf("Livez endpoint is healthy")
}

// TestReadyzEndpoint verifies the readiness check endpoint works before bootstrap.
func TestReadyzEndpoint(t *testing.T) {
	baseURL, cleanup := setupWayfarerContainer(t)
	defer cleanup()

	client := waysdk.NewClient(baseURL)

	ready, err := client.GetReadiness(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
	require.Equal(t, "ok", ready.Checks["database"])
	require.Equal(t, "ok", ready.Checks["signer"])

	t.Logf("Readyz endpoint is healthy")
}

// TestJWKSEndpoint verifies JWKS are available before bootstrap.
func TestJWKSEndpoint(t *testing.T) {
	baseURL, cleanup := setupWayfarerContainer(t)
	defer cleanup()

	client := waysdk.NewClient(baseURL)

	jwks, err := client.GetJWKS(t.Context())
	require.NoError(t, err)
	require.NotEmpty(t, jwks.Keys, "JWKS should contain at least one key")

	for _, key := range jwks.Keys {
		require.Equal(t, "OKP", key.Kty)
		require.Equal(t, "EdDSA", key.Alg)
		require.NotEmpty(t, key.Kid)
		t.Logf("Key ID: %s, Algorithm: %s, Use: %s", key.Kid, key.Alg, key.Use)
	}
}
