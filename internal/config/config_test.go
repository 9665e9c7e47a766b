package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("SEED_DATA", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.True(t, cfg.SeedData)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "en", cfg.I18n.DefaultLocale)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("DB_SQLITE_PATH", "/tmp/reviews.db")
	t.Setenv("SEED_DATA", "false")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.example, http://b.example,")
	t.Setenv("RATE_LIMIT_RPS", "2.5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.False(t, cfg.SeedData)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.CORS.AllowedOrigins)
	assert.InDelta(t, 2.5, cfg.RateLimit.RequestsPerSecond, 0.0001)
	assert.Equal(t, "file:/tmp/reviews.db?_foreign_keys=on&_busy_timeout=5000", cfg.Database.DSN())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "unknown driver", mutate: func(c *Config) { c.Database.Driver = "mysql" }, wantErr: true},
		{
			name: "production without password",
			mutate: func(c *Config) {
				c.Environment = "production"
				c.Database.Password = ""
			},
			wantErr: true,
		},
		{
			name: "production sqlite needs no password",
			mutate: func(c *Config) {
				c.Environment = "production"
				c.Database.Driver = DriverSQLite
			},
		},
		{name: "zero burst", mutate: func(c *Config) { c.RateLimit.Burst = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Environment: "development",
				Database:    DatabaseConfig{Driver: DriverPostgres},
				RateLimit:   RateLimitConfig{RequestsPerSecond: 1, Burst: 1},
			}
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPostgresDSN(t *testing.T) {
	d := DatabaseConfig{
		Driver:   DriverPostgres,
		Host:     "db",
		Port:     "5432",
		User:     "books",
		Password: "secret",
		Database: "book_reviews",
		SSLMode:  "disable",
	}

	assert.Equal(t, "host=db port=5432 user=books password=secret dbname=book_reviews sslmode=disable", d.DSN())
}
