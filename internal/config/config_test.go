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

func validConfig() *StructuredConfig {
	cfg := defaults()
	cfg.Auth.TokenSignKey = "test-sign-key"
	return cfg
}

func TestValidate_Defaults(t *testing.T) {
	// Defaults alone lack a sign key and must be rejected.
	assert.ErrorIs(t, defaults().validate(), ErrInvalidAuthConfigs)

	require.NoError(t, validConfig().validate())
}

func TestValidate_RejectsBadStorage(t *testing.T) {
	cfg := validConfig()
	cfg.Storage.DB.Driver = "oracle"
	assert.ErrorIs(t, cfg.validate(), ErrInvalidStorageConfigs)

	cfg = validConfig()
	cfg.Storage.DB.DSN = ""
	assert.ErrorIs(t, cfg.validate(), ErrInvalidStorageConfigs)
}

func TestValidate_RejectsBadServer(t *testing.T) {
	cfg := validConfig()
	cfg.Server.HTTPAddress = ""
	assert.ErrorIs(t, cfg.validate(), ErrInvalidServerConfigs)

	cfg = validConfig()
	cfg.Server.RequestTimeout = 0
	assert.ErrorIs(t, cfg.validate(), ErrInvalidServerConfigs)
}

func TestBuilder_MergePriority(t *testing.T) {
	b := newConfigBuilder()

	high := &StructuredConfig{Storage: Storage{DB: DBConfig{Driver: "postgres", DSN: "postgres://one"}}}
	low := &StructuredConfig{
		Storage: Storage{DB: DBConfig{Driver: "sqlite", DSN: "low.db"}},
		Server:  Server{HTTPAddress: "localhost:1234", RequestTimeout: time.Second},
		Auth:    Auth{TokenSignKey: "key", TokenIssuer: "iss", TokenDuration: time.Minute},
	}
	b.configs = append(b.configs, high, low)

	cfg, err := b.build()
	require.NoError(t, err)

	// The earlier layer wins where it sets a value...
	assert.Equal(t, "postgres", cfg.Storage.DB.Driver)
	assert.Equal(t, "postgres://one", cfg.Storage.DB.DSN)
	// ...and later layers fill the gaps.
	assert.Equal(t, "localhost:1234", cfg.Server.HTTPAddress)
	assert.Equal(t, time.Minute, cfg.Auth.TokenDuration)
}

func TestParseEnv(t *testing.T) {
	t.Setenv("STORAGE_DB_DRIVER", "postgres")
	t.Setenv("STORAGE_DB_DSN", "postgres://env")
	t.Setenv("AUTH_TOKEN_SIGN_KEY", "env-key")
	t.Setenv("VAULT_AUTO_SEAL_TIMEOUT", "5m")

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, "postgres", cfg.Storage.DB.Driver)
	assert.Equal(t, "postgres://env", cfg.Storage.DB.DSN)
	assert.Equal(t, "env-key", cfg.Auth.TokenSignKey)
	assert.Equal(t, 5*time.Minute, cfg.Vault.AutoSealTimeout)
}

func TestParseJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{
		"storage": {"db": {"driver": "sqlite", "dsn": "from-json.db"}},
		"server": {"http_address": "localhost:9000", "request_timeout": "45s"},
		"auth": {"token_sign_key": "json-key", "token_issuer": "json-iss", "token_duration": "10m"},
		"vault": {"auto_seal_timeout": "1h"}
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "from-json.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "localhost:9000", cfg.Server.HTTPAddress)
	assert.Equal(t, 45*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, 10*time.Minute, cfg.Auth.TokenDuration)
	assert.Equal(t, time.Hour, cfg.Vault.AutoSealTimeout)
}

func TestParseJSON_MissingFile(t *testing.T) {
	_, err := parseJSON("/does/not/exist.json")
	assert.Error(t, err)
}

func TestDuration_UnmarshalJSON(t *testing.T) {
	var d Duration
	require.NoError(t, json.Unmarshal([]byte(`"90s"`), &d))
	assert.Equal(t, Duration(90*time.Second), d)

	require.NoError(t, json.Unmarshal([]byte(`1000000000`), &d))
	assert.Equal(t, Duration(time.Second), d)

	assert.Error(t, json.Unmarshal([]byte(`"not-a-duration"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`true`), &d))
}
