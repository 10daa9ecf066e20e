package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Mayorista-api/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Store.Backend)
	assert.Equal(t, "default", cfg.Store.SnapshotKey)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Empty(t, cfg.Export.S3Bucket)
	assert.Equal(t, 25, cfg.DB.MaxConns)
	assert.Equal(t, 2, cfg.DB.MinConns)
	assert.Equal(t, time.Hour, cfg.DB.MaxConnLifetime)
	assert.False(t, cfg.DB.ForceIPv4)
}

func TestLoad_DesdeEntorno(t *testing.T) {
	t.Setenv("STORE_BACKEND", "Postgres")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("EXPORT_S3_BUCKET", "auditoria")
	t.Setenv("SUPERADMIN_EMAIL", "root@mayorista.test")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Store.Backend)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, "auditoria", cfg.Export.S3Bucket)
	assert.Equal(t, "root@mayorista.test", cfg.SuperAdmin.Email)
}

func TestLoad_PoolDesdeEntorno(t *testing.T) {
	t.Setenv("DB_MAX_CONNS", "8")
	t.Setenv("DB_MIN_CONNS", "1")
	t.Setenv("DB_MAX_CONN_LIFETIME", "15m")
	t.Setenv("DB_MAX_CONN_IDLE_TIME", "90")
	t.Setenv("DB_FORCE_IPV4", "true")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.DB.MaxConns)
	assert.Equal(t, 1, cfg.DB.MinConns)
	assert.Equal(t, 15*time.Minute, cfg.DB.MaxConnLifetime)
	assert.Equal(t, 90*time.Second, cfg.DB.MaxConnIdleTime)
	assert.True(t, cfg.DB.ForceIPv4)
}

func TestLoad_PoolMinimoMayorQueMaximo(t *testing.T) {
	t.Setenv("DB_MAX_CONNS", "2")
	t.Setenv("DB_MIN_CONNS", "5")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_BackendInvalido(t *testing.T) {
	t.Setenv("STORE_BACKEND", "mongo")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapaContraseña(t *testing.T) {
	db := config.DBConfig{Host: "localhost", Port: 5432, User: "app", Password: "p@ss/word", DBName: "mayorista", SSLMode: "disable"}
	assert.Contains(t, db.DSN(), "p%40ss%2Fword")
	assert.Equal(t, db.DSN(), db.ConnectionString())
}
