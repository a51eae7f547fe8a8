package auth

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"

	"github.com/golang-jwt/jwt/v5"

	"github.com/wys-platform/project-service/config"
)

var ErrNoPublicKey = errors.New("AUTH_PUBLIC_KEY or AUTH_PUBLIC_KEY_PATH is required")

// LoadPublicKey reads the RSA key used to verify access tokens. An inline PEM
// wins over a path.
func LoadPublicKey(cfg config.AuthConfig) (*rsa.PublicKey, error) {
	pem := []byte(cfg.PublicKeyPEM)
	if len(pem) == 0 {
		if cfg.PublicKeyPath == "" {
			return nil, ErrNoPublicKey
		}
		data, err := os.ReadFile(cfg.PublicKeyPath)
		if err != nil {
			return nil, fmt.Errorf("reading public key: %w", err)
		}
		pem = data
	}

	key, err := jwt.ParseRSAPublicKeyFromPEM(pem)
	if err != nil {
		return nil, fmt.Errorf("parsing public key: %w", err)
	}
	return key, nil
}
