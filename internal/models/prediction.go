package models

import (
	"github.com/shopspring/decimal"
)

type PredictionMode string

const (
	PredictionModeActual     PredictionMode = "actual"     // среднее по последним месяцам
	PredictionModeSimulation PredictionMode = "simulation" // выручка с ростом + расходы по настройкам
)

const (
	MinPredictionMonths = 1
	MaxPredictionMonths = 24
)

func (m PredictionMode) IsValid() bool {
	return m == PredictionModeActual || m == PredictionModeSimulation
}

type PredictionRequest struct {
	Year            int
	Month           int
	Months          int
	Mode            PredictionMode
	CashAtBeginning *decimal.Decimal // nil - берем остаток на конец базового месяца
	GrowthRate      *decimal.Decimal // % роста выручки в месяц, только для simulation
	LookbackMonths  int              // сколько месяцев усреднять, только для actual
}

type PredictionAssumptions struct {
	LookbackMonths   int              `json:"lookback_months,omitempty"`
	GrowthRate       *decimal.Decimal `json:"growth_rate,omitempty"`
	BaseRevenue      *decimal.Decimal `json:"base_revenue,omitempty"`
	InitialCashKnown bool             `json:"initial_cash_known"` // false если остаток посчитан от нуля на начало года
}

// PredictedPeriod один прогнозный месяц
type PredictedPeriod struct {
	Year                int             `json:"year"`
	Month               int             `json:"month"`
	CashAtBeginning     decimal.Decimal `json:"cash_at_beginning"`
	PredictedInflow     decimal.Decimal `json:"predicted_inflow"`
	PredictedOutflow    decimal.Decimal `json:"predicted_outflow"`
	PredictedEndingCash decimal.Decimal `json:"predicted_ending_cash"`
}

type FuturePrediction struct {
	Mode        PredictionMode        `json:"mode"`
	BaseYear    int                   `json:"base_year"`
	BaseMonth   int                   `json:"base_month"`
	InitialCash decimal.Decimal       `json:"initial_cash"`
	Assumptions PredictionAssumptions `json:"assumptions"`
	Periods     []PredictedPeriod     `json:"periods"`
}
