package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRevokeCommand(t *testing.T) {
	mr := miniredis.RunT(t)
	t.Setenv("REDIS_ADDR", mr.Addr())

	out, err := run(t, "revoke", "tok-9", "--ttl", "2h")
	require.NoError(t, err)
	assert.Contains(t, out, "revoked tok-9")
	assert.True(t, mr.Exists("revoked:tok-9"))
	assert.Equal(t, 2*time.Hour, mr.TTL("revoked:tok-9"))
}

func TestRevokeCommand_NeedsRedis(t *testing.T) {
	t.Setenv("REDIS_ADDR", "")

	_, err := run(t, "revoke", "tok-9")
	assert.Error(t, err)
}

func TestRevokeCommand_NeedsArgument(t *testing.T) {
	_, err := run(t, "revoke")
	assert.Error(t, err)
}

func TestInvalidConfigFailsBeforeRunning(t *testing.T) {
	t.Setenv("M2_PORT", "0")

	_, err := run(t, "migrate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "M2_PORT")
}
