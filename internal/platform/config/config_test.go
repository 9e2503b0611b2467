package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv はテスト中に参照される環境変数を空にします。
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"APP_PORT", "CORS_ALLOWED_ORIGINS", "JWT_SECRET", "JWT_EXPIRATION",
		"STOCK_CACHE_TTL", "STOCK_CACHE_NAMESPACE", "STOCK_LOCK_TTL", "STOCK_LOCK_PREFIX", "LOG_LEVEL",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Empty(t, cfg.Server.CORSOrigins)
	assert.Equal(t, "s3cret", cfg.JWT.Secret)
	assert.Equal(t, time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, 5*time.Minute, cfg.Stock.CacheTTL)
	assert.Equal(t, "stock", cfg.Stock.CacheNamespace)
	assert.Equal(t, 10*time.Second, cfg.Stock.LockTTL)
	assert.Equal(t, "stocklock", cfg.Stock.LockPrefix)
	assert.Equal(t, slog.LevelInfo, cfg.Log.Level)
}

func TestLoad_FromEnvFile(t *testing.T) {
	clearEnv(t)
	// godotenvは既存の環境変数を上書きしないため、未設定状態にしておく
	for _, k := range []string{"APP_PORT", "JWT_SECRET", "JWT_EXPIRATION", "LOG_LEVEL", "CORS_ALLOWED_ORIGINS"} {
		require.NoError(t, os.Unsetenv(k))
	}

	path := filepath.Join(t.TempDir(), ".env")
	content := "APP_PORT=9090\nJWT_SECRET=from-file\nJWT_EXPIRATION=30m\nLOG_LEVEL=debug\n" +
		"CORS_ALLOWED_ORIGINS=http://a.example, http://b.example ,\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "from-file", cfg.JWT.Secret)
	assert.Equal(t, 30*time.Minute, cfg.JWT.Expiration)
	assert.Equal(t, slog.LevelDebug, cfg.Log.Level)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.Server.CORSOrigins)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing jwt secret", map[string]string{}},
		{"bad jwt expiration", map[string]string{"JWT_SECRET": "x", "JWT_EXPIRATION": "soon"}},
		{"negative jwt expiration", map[string]string{"JWT_SECRET": "x", "JWT_EXPIRATION": "-1h"}},
		{"bad cache ttl", map[string]string{"JWT_SECRET": "x", "STOCK_CACHE_TTL": "5 minutes"}},
		{"zero lock ttl", map[string]string{"JWT_SECRET": "x", "STOCK_LOCK_TTL": "0s"}},
		{"bad log level", map[string]string{"JWT_SECRET": "x", "LOG_LEVEL": "verbose"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

func TestValidate_Nil(t *testing.T) {
	var c *Config
	assert.Error(t, c.Validate())
}
