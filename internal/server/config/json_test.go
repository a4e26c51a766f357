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

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func TestLoadJSON_AllKeys(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"endpoint_addr_http":      "www.example:9000",
		"database_dsn":            "postgres://db",
		"secret_key":              "my_secret_key",
		"token_validity_duration": "7d",
		"environment":             "production",
		"allowed_origins":         []string{"https://blogify.example"},
		"max_upload_size":         1024,
		"s3_root_user":            "user",
		"s3_root_password":        "password",
		"s3_bucket":               "bucket",
		"s3_region":               "region",
		"s3_base_endpoint":        "base_endpoint",
		"log_format":              "console",
	})

	cfg := &Config{}
	require.NoError(t, LoadJSON(path, cfg))

	assert.Equal(t, "www.example:9000", cfg.EndpointAddrHTTP)
	assert.Equal(t, "postgres://db", cfg.DatabaseDSN)
	assert.Equal(t, "my_secret_key", cfg.SecretKey)
	assert.Equal(t, 7*24*time.Hour, cfg.TokenValidityDuration)
	assert.Equal(t, EnvProduction, cfg.Environment)
	assert.Equal(t, []string{"https://blogify.example"}, cfg.AllowedOrigins)
	assert.Equal(t, int64(1024), cfg.MaxUploadSize)
	assert.Equal(t, "user", cfg.S3RootUser)
	assert.Equal(t, "password", cfg.S3RootPassword)
	assert.Equal(t, "bucket", cfg.S3Bucket)
	assert.Equal(t, "region", cfg.S3Region)
	assert.Equal(t, "base_endpoint", cfg.S3BaseEndpoint)
	assert.Equal(t, "console", cfg.LogFormat)
}

func TestLoadJSON_PartialKeepsCurrentValues(t *testing.T) {
	path := writeTempJSON(t, map[string]any{"secret_key": "from-file"})

	cfg := &Config{}
	cfg.LoadDefaults()
	require.NoError(t, LoadJSON(path, cfg))

	assert.Equal(t, "from-file", cfg.SecretKey)
	assert.Equal(t, ":8000", cfg.EndpointAddrHTTP)
	assert.Equal(t, 7*24*time.Hour, cfg.TokenValidityDuration)
	assert.Equal(t, "covers", cfg.S3Bucket)
}

func TestLoadJSON_Errors(t *testing.T) {
	dir := t.TempDir()

	err := LoadJSON(filepath.Join(dir, "missing.json"), &Config{})
	require.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))
	require.Error(t, LoadJSON(bad, &Config{}))

	badDuration := filepath.Join(dir, "dur.json")
	require.NoError(t, os.WriteFile(badDuration, []byte(`{"token_validity_duration":"soon"}`), 0o600))
	require.Error(t, LoadJSON(badDuration, &Config{}))
}
