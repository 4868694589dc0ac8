package etcd //nolint:testpackage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParseConfig(t *testing.T) {
	t.Parallel()

	cfg, err := ParseConfig([]byte(`
endpoints:
  - http://127.0.0.1:2379
  - http://127.0.0.1:2380
dial_timeout: 3s
username: root
password: secret
max_txn_ops: 64
`))
	require.NoError(t, err)

	assert.Equal(t, []string{"http://127.0.0.1:2379", "http://127.0.0.1:2380"}, cfg.Endpoints)
	assert.Equal(t, 3*time.Second, cfg.DialTimeout)
	assert.Equal(t, "root", cfg.Username)
	assert.Equal(t, "secret", cfg.Password)
	assert.Equal(t, 64, cfg.MaxTxnOps)
}

func TestParseConfig_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		data     string
		expected error
	}{
		{"no endpoints", "dial_timeout: 1s\n", ErrNoEndpoints},
		{"negative max txn ops", "endpoints: [a]\nmax_txn_ops: -1\n", ErrInvalidMaxTxnOps},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseConfig([]byte(tt.data))
			require.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestParseConfig_Malformed(t *testing.T) {
	t.Parallel()

	_, err := ParseConfig([]byte("endpoints: [unclosed"))
	require.ErrorContains(t, err, "failed to decode etcd config")
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "etcd.yaml")
	require.NoError(t, os.WriteFile(path, []byte("endpoints: [localhost:2379]\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"localhost:2379"}, cfg.Endpoints)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestConfig_ClientConfig(t *testing.T) {
	t.Parallel()

	logger := zap.NewNop()

	cfg := Config{Endpoints: []string{"a"}, Username: "u", Password: "p"} //nolint:exhaustruct
	clientCfg := cfg.clientConfig(logger)

	assert.Equal(t, []string{"a"}, clientCfg.Endpoints)
	assert.Equal(t, DefaultDialTimeout, clientCfg.DialTimeout)
	assert.Equal(t, "u", clientCfg.Username)
	assert.Equal(t, "p", clientCfg.Password)
	assert.Same(t, logger, clientCfg.Logger)

	cfg.DialTimeout = time.Second
	assert.Equal(t, time.Second, cfg.clientConfig(logger).DialTimeout)
}

func TestConfig_ResolveOptions(t *testing.T) {
	t.Parallel()

	assert.Equal(t, DefaultMaxTxnOps, Config{}.resolveOptions(nil).maxTxnOps) //nolint:exhaustruct

	cfg := Config{MaxTxnOps: 32} //nolint:exhaustruct
	assert.Equal(t, 32, cfg.resolveOptions(nil).maxTxnOps)
	assert.Equal(t, 8, cfg.resolveOptions([]Option{WithMaxTxnOps(8)}).maxTxnOps)
}

func TestDial_InvalidConfig(t *testing.T) {
	t.Parallel()

	_, err := Dial(Config{}) //nolint:exhaustruct
	require.ErrorIs(t, err, ErrNoEndpoints)
}
