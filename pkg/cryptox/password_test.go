package cryptox

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	SetPepperPath(filepath.Join(t.TempDir(), "pepper"))

	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.Contains(t, hash, "$argon2id$v=19$")

	require.NoError(t, VerifyPassword("correct horse battery staple", hash))
	require.Error(t, VerifyPassword("wrong password", hash))
}

func TestVerifyPasswordRejectsMalformedHashes(t *testing.T) {
	SetPepperPath(filepath.Join(t.TempDir(), "pepper"))

	for _, encoded := range []string{
		"",
		"$argon2id$v=19$m=19456,t=2,p=1$salt",  // too few parts
		"$bcrypt$v=19$m=19456,t=2,p=1$aa$bb",   // wrong algorithm
		"$argon2id$v=18$m=19456,t=2,p=1$aa$bb", // wrong version
		"$argon2id$v=19$m=19456,t=2,p=1$!!$bb", // bad base64 salt
	} {
		require.Error(t, VerifyPassword("anything", encoded), "hash %q", encoded)
	}
}

func TestHashesAreSalted(t *testing.T) {
	SetPepperPath(filepath.Join(t.TempDir(), "pepper"))

	h1, err := HashPassword("same password")
	require.NoError(t, err)
	h2, err := HashPassword("same password")
	require.NoError(t, err)

	require.NotEqual(t, h1, h2)
	require.NoError(t, VerifyPassword("same password", h1))
	require.NoError(t, VerifyPassword("same password", h2))
}
