package app

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/wayfarerhq/wayfarer/pkg/idx"
	"github.com/wayfarerhq/wayfarer/pkg/jwtx"
)

// InitSigningKeys loads the Ed25519 signing key and builds the shared KeySet
// and verifier from it.
//
// When SigningKeyFile is set the key is read from disk and tokens survive
// restarts. When it is empty an ephemeral key is generated on startup and
// every previously issued token becomes invalid.
func InitSigningKeys(cfg Config, logger *slog.Logger) (jwtx.Signer, *jwtx.KeySet, jwtx.Verifier, error) {
	var pemKey []byte

	if cfg.SigningKeyFile != "" {
		raw, err := os.ReadFile(cfg.SigningKeyFile)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to read signing key file: %w", err)
		}
		pemKey = raw
		logger.Info("signing key loaded from file", "path", cfg.SigningKeyFile)
	} else {
		raw, err := jwtx.GenerateEd25519PEM()
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to generate signing key: %w", err)
		}
		pemKey = raw
		logger.Warn("ephemeral signing key generated - all existing tokens are now invalid")
	}

	signer, err := jwtx.NewSignerEdDSA(idx.New().String(), pemKey)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load signing key: %w", err)
	}

	keys := jwtx.NewKeySet()
	if err := keys.AddSigner(signer); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to build key set: %w", err)
	}

	verifier := jwtx.NewVerifierEdDSA(keys, cfg.Issuer)

	logger.Info("signing keys ready", "kid", signer.KID(), "alg", signer.Alg(), "issuer", cfg.Issuer)
	return signer, keys, verifier, nil
}
