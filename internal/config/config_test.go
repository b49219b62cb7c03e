package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
}

func TestLoadDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load("testdata/missing.env")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, StoreMongoDB, cfg.Store.Driver)
	assert.Equal(t, "dairy", cfg.MongoDB.DBName)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Empty(t, cfg.Snapshot.CronSchedule)
	assert.False(t, cfg.Sheets.Enabled())
}

func TestLoadOverrides(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("APP_PORT", "5000")
	t.Setenv("STORE_DRIVER", "Memory")
	t.Setenv("TOKEN_TTL", "1h")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173, https://farm.example")
	t.Setenv("SNAPSHOT_CRON", "0 20 * * *")
	t.Setenv("TIMEZONE", "UTC")

	cfg, err := Load("testdata/missing.env")
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, StoreMemory, cfg.Store.Driver)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, []string{"http://localhost:5173", "https://farm.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "0 20 * * *", cfg.Snapshot.CronSchedule)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("TOKEN_TTL", "a week")

	_, err := Load("testdata/missing.env")
	assert.ErrorContains(t, err, "invalid TOKEN_TTL")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:   ServerConfig{Port: "8080"},
			Store:    StoreConfig{Driver: StoreMongoDB},
			MongoDB:  MongoDBConfig{URI: "mongodb://localhost", DBName: "dairy"},
			Auth:     AuthConfig{JWTSecret: "secret", TokenTTL: time.Hour, BcryptCost: 10},
			Snapshot: SnapshotConfig{Timezone: "UTC"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"missing secret", func(c *Config) { c.Auth.JWTSecret = "" }, "JWT_SECRET must be provided"},
		{"missing uri", func(c *Config) { c.MongoDB.URI = "" }, "MONGODB_URI must be provided"},
		{"memory needs no uri", func(c *Config) { c.Store.Driver = StoreMemory; c.MongoDB.URI = "" }, ""},
		{"unknown driver", func(c *Config) { c.Store.Driver = "postgres" }, "STORE_DRIVER"},
		{"admin email only", func(c *Config) { c.Admin.Email = "admin@x.com" }, "ADMIN_EMAIL and ADMIN_PASSWORD"},
		{"bad cost", func(c *Config) { c.Auth.BcryptCost = 2 }, "BCRYPT_COST"},
		{"bad timezone", func(c *Config) { c.Snapshot.CronSchedule = "@daily"; c.Snapshot.Timezone = "Mars/Base" }, "invalid TIMEZONE"},
		{"sheet id only", func(c *Config) { c.Sheets.SpreadsheetID = "abc" }, "GOOGLE_SHEETS_CREDENTIALS_PATH"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}
