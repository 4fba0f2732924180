package config

import (
	"testing"

	"transfer-storefront/internal/common/enum"
	database "transfer-storefront/internal/pkg/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func TestLoadDefaults(t *testing.T) {
	var cfg Config
	require.NoError(t, load(&cfg, lookupFrom(map[string]string{"JWT_SECRET": "secret"})))

	assert.Equal(t, enum.DEVELOPMENT, cfg.AppEnv)
	assert.Equal(t, 8080, cfg.AppPort)
	assert.Equal(t, database.POSTGRES, cfg.DBDriver)
	assert.True(t, cfg.DBCache)
	assert.Equal(t, 120, cfg.StockWindowMinutes)
	assert.Equal(t, 30, cfg.StockCooldownMinutes)
	assert.Equal(t, 60, cfg.StockRefillPercent)
	assert.Equal(t, 4, cfg.TickerIntervalSeconds)
	assert.Equal(t, []string{"*"}, cfg.Origins())

	max, err := cfg.MaxAmount()
	require.NoError(t, err)
	assert.Equal(t, "5000", max.String())
}

func TestLoadOverrides(t *testing.T) {
	var cfg Config
	err := load(&cfg, lookupFrom(map[string]string{
		"JWT_SECRET":   "secret",
		"APP_ENV":      "local",
		"APP_PORT":     "9000",
		"DB_DRIVER":    "memory",
		"DB_CACHE":     "false",
		"CORS_ORIGINS": "http://a.test, http://b.test,",
	}))
	require.NoError(t, err)

	assert.Equal(t, enum.LOCAL, cfg.AppEnv)
	assert.Equal(t, 9000, cfg.AppPort)
	assert.Equal(t, database.MEMORY, cfg.DBDriver)
	assert.False(t, cfg.DBCache)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Origins())
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]string
	}{
		{"missing required", map[string]string{}},
		{"bad int", map[string]string{"JWT_SECRET": "s", "APP_PORT": "eighty"}},
		{"bad bool", map[string]string{"JWT_SECRET": "s", "DB_CACHE": "maybe"}},
		{"bad enum", map[string]string{"JWT_SECRET": "s", "APP_ENV": "prod"}},
		{"bad driver", map[string]string{"JWT_SECRET": "s", "DB_DRIVER": "sqlite"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg Config
			assert.Error(t, load(&cfg, lookupFrom(tt.values)))
		})
	}
}
