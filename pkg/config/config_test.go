package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/storeroom-api/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, int64(10), cfg.Inventory.LowStockThreshold)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", "/tmp/test.db")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("LOW_STOCK_THRESHOLD", "25")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, "/tmp/test.db", cfg.DB.SQLitePath)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, int64(25), cfg.Inventory.LowStockThreshold)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	t.Run("DATABASE_URL tiene prioridad", func(t *testing.T) {
		c := config.DBConfig{
			DatabaseURL: "postgresql://u:p@host:5432/db?sslmode=require",
			Host:        "ignorado",
		}
		assert.Equal(t, c.DatabaseURL, c.ConnectionString())
	})

	t.Run("DSN codifica credenciales", func(t *testing.T) {
		c := config.DBConfig{
			Host: "localhost", Port: 5432,
			User: "store", Password: "p@ss/word",
			DBName: "storeroom", SSLMode: "disable",
		}
		dsn := c.DSN()
		assert.Contains(t, dsn, "p%40ss%2Fword", "la contraseña va URL-encoded")
		assert.Contains(t, dsn, "sslmode=disable")
	})
}
