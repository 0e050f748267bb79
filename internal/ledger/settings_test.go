package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSimulationSettings(t *testing.T) {
	rows := [][]interface{}{
		{"item", "ratio", "minimum", "notes"},
		{"rent", "10", "5,000", "office"},
		{"ads", "１５％", "１,２００,０００"},
		{"", "20", "100"},
		{"rent", "99", "1"},
		{"refunds", "-5", "0"},
		{"royalty", "150", nil},
		{"misc", "n/a", "abc"},
	}

	settings := NormalizeSimulationSettings(rows)
	require.Len(t, settings, 4)

	assert.Equal(t, "rent", settings[0].ItemName)
	assert.True(t, settings[0].SalesRatio.Equal(decimal.NewFromInt(10)))
	assert.True(t, settings[0].MinimumAmount.Equal(decimal.NewFromInt(5000)))
	assert.Equal(t, "office", settings[0].Notes)

	assert.Equal(t, "ads", settings[1].ItemName)
	assert.True(t, settings[1].SalesRatio.Equal(decimal.NewFromInt(15)))
	assert.True(t, settings[1].MinimumAmount.Equal(decimal.NewFromInt(1200000)))

	assert.Equal(t, "royalty", settings[2].ItemName)
	assert.True(t, settings[2].SalesRatio.Equal(decimal.NewFromInt(100)), "ratio clamped to 100")
	assert.True(t, settings[2].MinimumAmount.IsZero())

	assert.Equal(t, "misc", settings[3].ItemName)
	assert.True(t, settings[3].SalesRatio.IsZero())
	assert.True(t, settings[3].MinimumAmount.IsZero())
}

func TestNormalizeSimulationSettingsEmpty(t *testing.T) {
	assert.Empty(t, NormalizeSimulationSettings(nil))
	assert.Empty(t, NormalizeSimulationSettings([][]interface{}{{"item"}}))
}
