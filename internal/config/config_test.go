package config

import (
	"io/fs"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_NAME", "volunteers")
	t.Setenv("JWT_SECRET_KEY", "secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "5432", cfg.DB.Port)
	assert.Equal(t, "disable", cfg.DB.SSLMode)
	assert.Equal(t, int64(24), cfg.JWTExpirationHours)
	assert.Equal(t, 5, cfg.DB.ConnectRetries)
	assert.Equal(t, 10.0, cfg.RateLimitRPS)
	assert.False(t, cfg.IsDevelopment())
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("APP_ENV", "development")
	t.Setenv("JWT_EXPIRATION_HOURS", "2")
	t.Setenv("RATE_LIMIT_RPS", "0.5")
	t.Setenv("INITIAL_ADMIN_EMAIL", "root@example.com")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, int64(2), cfg.JWTExpirationHours)
	assert.Equal(t, 0.5, cfg.RateLimitRPS)
	assert.Equal(t, "root@example.com", cfg.InitialAdminEmail)
}

func TestLoadRequiresSecret(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("JWT_SECRET_KEY", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsBadExpiration(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("JWT_EXPIRATION_HOURS", "0")

	_, err := Load()
	assert.Error(t, err)
}

func TestDBConfigURLs(t *testing.T) {
	cfg := DBConfig{Host: "db", Port: "5432", User: "app", Password: "p@ss word", Name: "volunteers", SSLMode: "require"}

	assert.Equal(t, "host=db port=5432 user=app password=p@ss word dbname=volunteers sslmode=require", cfg.DSN())

	u, err := url.Parse(cfg.MigrateURL())
	require.NoError(t, err)
	assert.Equal(t, "pgx5", u.Scheme)
	assert.Equal(t, "db:5432", u.Host)
	assert.Equal(t, "/volunteers", u.Path)
	pw, _ := u.User.Password()
	assert.Equal(t, "p@ss word", pw)
	assert.Equal(t, "require", u.Query().Get("sslmode"))
}

func TestEmbeddedMigrations(t *testing.T) {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Contains(t, names, "000001_init.up.sql")
	assert.Contains(t, names, "000001_init.down.sql")

	up, err := fs.ReadFile(migrationsFS, "migrations/000001_init.up.sql")
	require.NoError(t, err)
	for _, table := range []string{"users", "volunteer_profiles", "surveys"} {
		assert.True(t, strings.Contains(string(up), "CREATE TABLE IF NOT EXISTS "+table+" ("), table)
	}
}
