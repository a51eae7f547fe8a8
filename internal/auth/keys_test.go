package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wys-platform/project-service/config"
)

func publicPEM(t *testing.T) (string, *rsa.PrivateKey) {
	t.Helper()
	k, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	der, err := x509.MarshalPKIXPublicKey(&k.PublicKey)
	require.NoError(t, err)
	return string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})), k
}

func TestLoadPublicKey_Inline(t *testing.T) {
	p, k := publicPEM(t)

	key, err := LoadPublicKey(config.AuthConfig{PublicKeyPEM: p, PublicKeyPath: "/does/not/exist"})
	require.NoError(t, err)
	assert.True(t, k.PublicKey.Equal(key))
}

func TestLoadPublicKey_FromFile(t *testing.T) {
	p, k := publicPEM(t)
	path := filepath.Join(t.TempDir(), "jwt.pub")
	require.NoError(t, os.WriteFile(path, []byte(p), 0o600))

	key, err := LoadPublicKey(config.AuthConfig{PublicKeyPath: path})
	require.NoError(t, err)
	assert.True(t, k.PublicKey.Equal(key))
}

func TestLoadPublicKey_Errors(t *testing.T) {
	_, err := LoadPublicKey(config.AuthConfig{})
	assert.ErrorIs(t, err, ErrNoPublicKey)

	_, err = LoadPublicKey(config.AuthConfig{PublicKeyPEM: "not a key"})
	assert.Error(t, err)

	_, err = LoadPublicKey(config.AuthConfig{PublicKeyPath: filepath.Join(t.TempDir(), "missing.pem")})
	assert.Error(t, err)
}
