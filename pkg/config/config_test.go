package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuskioscos/tuskioscos-api/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "tuskioscos-api", cfg.App.Name)
	assert.Equal(t, config.StoragePostgres, cfg.DB.Driver)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Equal(t, int32(10), cfg.DB.MaxConns)
	assert.True(t, cfg.DB.PreferIPv4)
	assert.Equal(t, 0, cfg.JWT.Expiration, "por defecto los tokens no vencen")
	assert.Equal(t, 5000, cfg.HTTP.Port)
	assert.Equal(t, "http://localhost:3000", cfg.HTTP.CORSOrigin)
	assert.False(t, cfg.HTTP.CookieSecure)
	assert.Equal(t, 20, cfg.HTTP.LoginRateLimit)
	assert.Equal(t, config.DuplicateReject, cfg.Cierres.DuplicatePolicy)
}

func TestLoad_EnvSobrescribe(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("APP_ENV", "production")
	t.Setenv("HTTP_PORT", "8081")
	t.Setenv("JWT_EXPIRATION_MINUTES", "120")
	t.Setenv("STORAGE_DRIVER", "MEMORY")
	t.Setenv("CIERRE_DUPLICATE_POLICY", "overwrite")
	t.Setenv("DB_AUTO_MIGRATE", "false")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.App.Env)
	assert.Equal(t, 8081, cfg.HTTP.Port)
	assert.Equal(t, 120, cfg.JWT.Expiration)
	assert.Equal(t, config.StorageMemory, cfg.DB.Driver)
	assert.Equal(t, config.DuplicateOverwrite, cfg.Cierres.DuplicatePolicy)
	assert.False(t, cfg.DB.AutoMigrate)
	assert.True(t, cfg.HTTP.CookieSecure, "en producción la cookie es Secure por defecto")
}

func TestLoad_PortComoFallback(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("PORT", "7000")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0:7000", cfg.HTTP.Addr())
}

func TestLoad_SinSecret_Falla(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_PoliticaDesconocida_Falla(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("CIERRE_DUPLICATE_POLICY", "merge")

	_, err := config.Load()
	assert.ErrorContains(t, err, "CIERRE_DUPLICATE_POLICY")
}

func TestLoad_DriverDesconocido_Falla(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("STORAGE_DRIVER", "sqlite")

	_, err := config.Load()
	assert.ErrorContains(t, err, "STORAGE_DRIVER")
}

func TestDBConfig_DSN_EscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:w/rd", DBName: "tuskioscos", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aw%2Frd@db:5432/tuskioscos?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://u:p@h:1/d"
	assert.Equal(t, "postgres://u:p@h:1/d", c.ConnectionString())
}
