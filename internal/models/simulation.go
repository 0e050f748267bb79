package models

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// SimulationSetting статья расходов для симуляции: процент от выручки с нижней границей
type SimulationSetting struct {
	ItemName      string          `json:"item_name"`
	SalesRatio    decimal.Decimal `json:"sales_ratio"`    // процент от выручки 0-100
	MinimumAmount decimal.Decimal `json:"minimum_amount"` // фиксированный минимум, применяется даже при нулевой выручке
	Notes         string          `json:"notes"`
}

// ExpenseFor = max(revenue × ratio / 100, minimum), округление до places знаков
func (s SimulationSetting) ExpenseFor(revenue decimal.Decimal, places int32) decimal.Decimal {
	amount := revenue.Mul(s.SalesRatio).Div(hundred).Round(places)
	if amount.LessThan(s.MinimumAmount) {
		return s.MinimumAmount
	}
	return amount
}
