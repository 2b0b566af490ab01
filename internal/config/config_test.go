package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_MODE", "dev")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("TIMEZONE", "Asia/Bangkok")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsDev())
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "rentdesk.db", cfg.Database.Path)
	assert.Equal(t, "Asia/Bangkok", cfg.Location().String())
	assert.Equal(t, time.Minute, cfg.Reports.CacheTTL)
	assert.Equal(t, int64(500), cfg.Reports.CacheSize)
	assert.True(t, cfg.Cron.Enabled)
	assert.Equal(t, "0 5 0 * * *", cfg.Cron.PaymentSweep)
	assert.Equal(t, 10*time.Second, cfg.Notify.Timeout)
	assert.Equal(t, "*", cfg.GetAllowedOrigins())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_MODE", "prod")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("PROD_JWT_SECRET", "prod-secret")
	t.Setenv("REPORT_CACHE_TTL_SECONDS", "0")
	t.Setenv("REPORT_CACHE_SIZE", "-4")
	t.Setenv("CRON_ENABLED", "false")
	t.Setenv("NOTIFY_WEBHOOK_URL", "https://hooks.example.com/x")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProd())
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, "prod-secret", cfg.JWT.Secret)
	assert.Equal(t, time.Duration(0), cfg.Reports.CacheTTL)
	assert.Equal(t, int64(500), cfg.Reports.CacheSize)
	assert.False(t, cfg.Cron.Enabled)
	assert.Equal(t, "https://hooks.example.com/x", cfg.Notify.WebhookURL)
}

func TestLoad_Rejects(t *testing.T) {
	t.Setenv("APP_MODE", "staging")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("APP_MODE", "dev")
	t.Setenv("DB_DRIVER", "oracle")
	_, err = Load()
	assert.Error(t, err)

	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("TIMEZONE", "Mars/Olympus")
	_, err = Load()
	assert.Error(t, err)
}

func TestBuildDSNs(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: "3306", User: "u", Password: "p", DBName: "rent"}
	assert.Contains(t, buildMySQLDSN(d), "u:p@tcp(db:3306)/rent")
	assert.Contains(t, buildPostgresDSN(d), "dbname=rent")

	_, err := buildDialector(DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
}
