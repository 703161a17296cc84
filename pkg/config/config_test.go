package config_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/core-stock/pkg/config"
)

func TestFromViper_ValoresPorDefecto(t *testing.T) {
	cfg, err := config.FromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, config.StorageMemory, cfg.Storage.Driver)
	assert.Equal(t, uint64(42), cfg.Storage.Seed)
	assert.NotEmpty(t, cfg.JWT.Secret, "development usa un secreto fijo")
	assert.True(t, decimal.NewFromFloat(0.5).Equal(cfg.Reorder.SafetyFactor))
	assert.Equal(t, 14, cfg.Reorder.ExtraCoverDays)
	assert.Equal(t, 120, cfg.Reorder.HistoryDays)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestFromViper_Sobrescrituras(t *testing.T) {
	v := viper.New()
	v.Set("STORAGE_DRIVER", "Postgres")
	v.Set("HTTP_PORT", "9090")
	v.Set("REORDER_SAFETY_FACTOR", "0.75")
	v.Set("REORDER_EXTRA_COVER_DAYS", 21)
	v.Set("DB_PASSWORD", "p@ss:word")
	v.Set("DB_AUTO_MIGRATE", "true")
	v.Set("DB_MAX_CONNS", "4")

	cfg, err := config.FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, config.StoragePostgres, cfg.Storage.Driver)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Equal(t, 4, cfg.DB.MaxConns)
	assert.True(t, decimal.RequireFromString("0.75").Equal(cfg.Reorder.SafetyFactor))
	assert.Equal(t, 21, cfg.Reorder.ExtraCoverDays)
	assert.Contains(t, cfg.DB.ConnectionString(), "p%40ss%3Aword", "la contraseña va codificada")
}

func TestFromViper_Errores(t *testing.T) {
	v := viper.New()
	v.Set("STORAGE_DRIVER", "mongo")
	_, err := config.FromViper(v)
	assert.Error(t, err)

	v = viper.New()
	v.Set("APP_ENV", "production")
	_, err = config.FromViper(v)
	assert.Error(t, err, "sin JWT_SECRET fuera de development")

	v = viper.New()
	v.Set("REORDER_SAFETY_FACTOR", "medio")
	_, err = config.FromViper(v)
	assert.Error(t, err)
}

func TestDBConfig_DatabaseURLTienePrioridad(t *testing.T) {
	c := config.DBConfig{DatabaseURL: "postgres://x@y/z", Host: "h", Port: 1}
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
