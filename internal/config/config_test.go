package config

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SHEETS_SPREADSHEET_ID", "sheet-1")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, SourceDriverSheets, cfg.SourceDriver)
	assert.Equal(t, CacheDriverMemory, cfg.CacheDriver)
	assert.Equal(t, "Contracts!A1:P", cfg.ContractsRange)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.Equal(t, int32(0), cfg.CurrencyPlaces)
	assert.Equal(t, 3, cfg.PredictionLookbackMonths)
	assert.True(t, cfg.SimulationGrowthRate.IsZero())
	assert.Equal(t, "@every 15m", cfg.RefreshCron)
	assert.Empty(t, cfg.JWTSecret)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SOURCE_DRIVER", "postgres")
	t.Setenv("CACHE_DRIVER", "redis")
	t.Setenv("CURRENCY_PLACES", "2")
	t.Setenv("SIMULATION_GROWTH_RATE", "2.5")
	t.Setenv("SHEETS_TIMEOUT", "5s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, SourceDriverPostgres, cfg.SourceDriver)
	assert.Equal(t, CacheDriverRedis, cfg.CacheDriver)
	assert.Equal(t, int32(2), cfg.CurrencyPlaces)
	assert.Equal(t, "2.5", cfg.SimulationGrowthRate.String())
	assert.Equal(t, 5*time.Second, cfg.SheetsTimeout)
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]map[string]string{
		"no spreadsheet": {"SOURCE_DRIVER": "sheets", "SHEETS_SPREADSHEET_ID": ""},
		"unknown source": {"SOURCE_DRIVER": "excel"},
		"unknown cache":  {"SHEETS_SPREADSHEET_ID": "x", "CACHE_DRIVER": "memcached"},
		"places":         {"SHEETS_SPREADSHEET_ID": "x", "CURRENCY_PLACES": "9"},
		"lookback":       {"SHEETS_SPREADSHEET_ID": "x", "PREDICTION_LOOKBACK_MONTHS": "0"},
		"bad number":     {"SHEETS_SPREADSHEET_ID": "x", "CURRENCY_PLACES": "two"},
	}

	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestNewLogger(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, NewLogger("debug").GetLevel())
	assert.Equal(t, logrus.InfoLevel, NewLogger("nonsense").GetLevel())
}
