package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir()) // no stray .env
	for _, k := range []string{"PORT", "DB_DRIVER", "DB_PATH", "ADMIN_USER", "ADMIN_PASSWORD", "ADMIN_PASSWORD_HASH", "MIGRATIONS", "DEV"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "fiber_telecom.db", cfg.Database.Path)
	assert.Equal(t, "file:fiber_telecom.db?_foreign_keys=on&_busy_timeout=5000", cfg.Database.DSN())
	assert.Equal(t, "admin", cfg.Auth.User)
	assert.True(t, cfg.App.Dev)
	assert.False(t, cfg.App.Migrations)
	require.NoError(t, cfg.Validate())
}

func TestLoadPostgres(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_NAME", "shop")
	t.Setenv("MIGRATIONS", "YES")

	cfg := Load()
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Contains(t, cfg.Database.DSN(), "host=db port=6543")
	assert.Contains(t, cfg.Database.URL(), "@db:6543/shop")
	assert.True(t, cfg.App.Migrations)
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DB_DRIVER", "oracle")
	cfg := Load()
	assert.Error(t, cfg.Validate())

	cfg.Database.Driver = DriverSQLite
	cfg.Auth.Password = ""
	cfg.Auth.PasswordHash = ""
	assert.Error(t, cfg.Validate())
}

func TestSQLiteDSNPassthrough(t *testing.T) {
	assert.Equal(t, "file::memory:?cache=shared", SQLiteDSN("file::memory:?cache=shared"))
}
