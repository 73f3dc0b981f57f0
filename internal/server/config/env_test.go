package config

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_Overlays(t *testing.T) {
	t.Setenv("PORT", "4100")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("API_KEY", "env-key")
	t.Setenv("AUTH_MODE", "apikey")
	t.Setenv("CATALOG_BACKEND", "document")
	t.Setenv("TOKEN_VALIDITY", "45m")
	t.Setenv("SEED_CATALOG", "true")
	t.Setenv("REGISTER_CONFLICT_STATUS", "409")
	t.Setenv("S3_BUCKET", "dog-images")

	cfg := validConfig()
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, ":4100", cfg.ListenAddr)
	assert.Equal(t, "env-secret", cfg.SecretKey)
	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, AuthModeAPIKey, cfg.AuthMode)
	assert.Equal(t, BackendDocument, cfg.CatalogBackend)
	assert.Equal(t, 45*time.Minute, cfg.TokenValidity)
	assert.True(t, cfg.SeedCatalog)
	assert.Equal(t, http.StatusConflict, cfg.RegisterConflictStatus)
	assert.True(t, cfg.S3Enabled())

	assert.Equal(t, 10, cfg.BcryptCost, "unset variables keep previous values")
	assert.Equal(t, "us-east-1", cfg.S3Region)
}

func TestParseEnv_ListenAddrBeatsPort(t *testing.T) {
	t.Setenv("PORT", "4100")
	t.Setenv("LISTEN_ADDR", "127.0.0.1:4200")

	cfg := validConfig()
	require.NoError(t, parseEnv(cfg))
	assert.Equal(t, "127.0.0.1:4200", cfg.ListenAddr)
}

func TestParseEnv_ReadError(t *testing.T) {
	orig := readEnv
	t.Cleanup(func() { readEnv = orig })
	readEnv = func(any) error { return errors.New("bad env") }

	require.EqualError(t, parseEnv(validConfig()), "bad env")
}
