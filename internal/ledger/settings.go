package ledger

import (
	"github.com/alligatorO15/fin-reports/internal/models"
	"github.com/shopspring/decimal"
)

const (
	colSettingItem = iota
	colSettingRatio
	colSettingMinimum
	colSettingNotes
)

var maxRatio = decimal.NewFromInt(100)

// NormalizeSimulationSettings разбирает лист настроек симуляции.
// Числа могут прийти текстом с разделителями тысяч ("1,200,000") или знаком процента.
func NormalizeSimulationSettings(rows [][]interface{}) []models.SimulationSetting {
	if len(rows) <= 1 {
		return []models.SimulationSetting{}
	}

	settings := make([]models.SimulationSetting, 0, len(rows)-1)
	seen := make(map[string]struct{})

	for _, row := range rows[1:] {
		name := cellString(row, colSettingItem)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}

		ratio, _ := cellDecimal(row, colSettingRatio)
		minimum, _ := cellDecimal(row, colSettingMinimum)
		if ratio.IsNegative() || minimum.IsNegative() {
			continue
		}
		if ratio.GreaterThan(maxRatio) {
			ratio = maxRatio
		}

		seen[name] = struct{}{}
		settings = append(settings, models.SimulationSetting{
			ItemName:      name,
			SalesRatio:    ratio,
			MinimumAmount: minimum,
			Notes:         cellString(row, colSettingNotes),
		})
	}

	return settings
}
