package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_DRIVER", "DATABASE_URL", "DB_PORT", "DEV", "RATE_LIMIT_RPS", "REDIS_URL"} {
		t.Setenv(k, "")
	}
	cfg := Load()

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.True(t, cfg.App.Dev)
	assert.Equal(t, 5.0, cfg.RateLimit.RPS)
	assert.Empty(t, cfg.Redis.URL)
	assert.False(t, cfg.Database.IsSQLite())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("DB_PORT", "not-a-number")
	t.Setenv("DEV", "no")
	t.Setenv("RATE_LIMIT_RPS", "0.5")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.True(t, cfg.Database.IsSQLite())
	assert.Equal(t, 5432, cfg.Database.Port, "invalid int falls back to default")
	assert.False(t, cfg.App.Dev)
	assert.Equal(t, 0.5, cfg.RateLimit.RPS)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5433, User: "u", Password: "p", DBName: "n", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=n sslmode=disable", d.DSN())

	d.URL = "postgres://x:y@h:1/z"
	assert.Equal(t, d.URL, d.DSN())
}
