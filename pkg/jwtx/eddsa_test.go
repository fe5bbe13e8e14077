package jwtx

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testKeyPEM(t *testing.T) []byte {
	t.Helper()

	_, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	der, err := x509.MarshalPKCS8PrivateKey(priv)
	require.NoError(t, err)

	return pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})
}

func TestEdDSASignVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	signer, err := NewSignerEdDSA("test-key-001", testKeyPEM(t))
	require.NoError(t, err)
	require.NoError(t, signer.Validate())
	require.Equal(t, "EdDSA", signer.Alg())

	keys := NewKeySet()
	require.NoError(t, keys.AddSigner(signer))
	require.True(t, keys.IsReady())

	claims := NewIdentityClaims(
		"user-1", "ada@example.com", "Ada", false,
		time.Hour, "wayfarer", time.Now().UTC(),
	)
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	verifier := NewVerifierEdDSA(keys, "wayfarer")
	got, err := verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", got.Subject)
	require.Equal(t, "ada@example.com", got.Email)
	require.False(t, got.Admin)
}

func TestVerifyRejectsForeignKey(t *testing.T) {
	t.Parallel()

	signer, err := NewSignerEdDSA("key-a", testKeyPEM(t))
	require.NoError(t, err)

	other, err := NewSignerEdDSA("key-a", testKeyPEM(t))
	require.NoError(t, err)

	// KeySet only knows the other key under the same kid.
	keys := NewKeySet()
	require.NoError(t, keys.AddSigner(other))

	token, err := signer.Sign(NewIdentityClaims(
		"user-1", "", "", false, time.Hour, "wayfarer", time.Now().UTC(),
	))
	require.NoError(t, err)

	_, err = NewVerifierEdDSA(keys, "wayfarer").Verify(token)
	require.Error(t, err)
}

func TestVerifyRejectsUnknownKID(t *testing.T) {
	t.Parallel()

	signer, err := NewSignerEdDSA("unknown-kid", testKeyPEM(t))
	require.NoError(t, err)

	token, err := signer.Sign(NewIdentityClaims(
		"user-1", "", "", false, time.Hour, "wayfarer", time.Now().UTC(),
	))
	require.NoError(t, err)

	_, err = NewVerifierEdDSA(NewKeySet(), "wayfarer").Verify(token)
	require.Error(t, err)
}

func TestVerifyRejectsWrongIssuer(t *testing.T) {
	t.Parallel()

	signer, err := NewSignerEdDSA("key-1", testKeyPEM(t))
	require.NoError(t, err)

	keys := NewKeySet()
	require.NoError(t, keys.AddSigner(signer))

	token, err := signer.Sign(NewIdentityClaims(
		"user-1", "", "", false, time.Hour, "someone-else", time.Now().UTC(),
	))
	require.NoError(t, err)

	_, err = NewVerifierEdDSA(keys, "wayfarer").Verify(token)
	require.ErrorIs(t, err, ErrIssuer)
}

func TestNewSignerRejectsBadPEM(t *testing.T) {
	t.Parallel()

	_, err := NewSignerEdDSA("kid", []byte("not pem at all"))
	require.Error(t, err)

	_, err = NewSignerEdDSA("kid", pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: []byte{1, 2, 3},
	}))
	require.Error(t, err)
}
