package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"endpoint_addr_http":             "www.example:9000",
		"database_dsn":                   "marketplace.db",
		"redis_url":                      "redis://cache:6379/0",
		"otp_backend":                    "redis",
		"secret_key":                     "my_secret_key",
		"access_token_validity_duration": "1h",
		"otp_validity_duration":          "3m",
		"admin_access_code":              "CODE",
	})

	t.Run("loads from json", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", pathFlag}

		cfg := &Config{}
		parseJson(cfg)

		assert.Equal(t, "www.example:9000", cfg.EndpointAddrHTTP)
		assert.Equal(t, "marketplace.db", cfg.DatabaseDSN)
		assert.Equal(t, "redis://cache:6379/0", cfg.RedisURL)
		assert.Equal(t, "redis", cfg.OtpBackend)
		assert.Equal(t, "my_secret_key", cfg.SecretKey)
		assert.Equal(t, 1*time.Hour, cfg.AccessTokenValidityDuration)
		assert.Equal(t, 3*time.Minute, cfg.OtpValidityDuration)
		assert.Equal(t, "CODE", cfg.AdminAccessCode)
	})

	t.Run("no CONFIG and no flags → no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{
			EndpointAddrHTTP:            "defaults:1234",
			DatabaseDSN:                 "marketplace.db",
			RedisURL:                    "redis://other:6379/0",
			OtpBackend:                  OtpBackendPostgres,
			SecretKey:                   "key",
			AccessTokenValidityDuration: 2 * time.Minute,
			OtpValidityDuration:         3 * time.Minute,
			AdminAccessCode:             "KEEP",
		}
		parseJson(cfg)

		assert.Equal(t, "defaults:1234", cfg.EndpointAddrHTTP)
		assert.Equal(t, "marketplace.db", cfg.DatabaseDSN)
		assert.Equal(t, "redis://other:6379/0", cfg.RedisURL)
		assert.Equal(t, OtpBackendPostgres, cfg.OtpBackend)
		assert.Equal(t, "key", cfg.SecretKey)
		assert.Equal(t, 2*time.Minute, cfg.AccessTokenValidityDuration)
		assert.Equal(t, 3*time.Minute, cfg.OtpValidityDuration)
		assert.Equal(t, "KEEP", cfg.AdminAccessCode)
	})

	t.Run("invalid JSON → panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		os.Args = []string{"testbin", "-config", bad}

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg) })
	})
}
