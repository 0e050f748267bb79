package report

import (
	"github.com/alligatorO15/fin-reports/internal/models"
	"github.com/shopspring/decimal"
)

var minGrowthRate = decimal.NewFromInt(-100)

// predictionStrategy прогноз притока и оттока на шаг step (1 - следующий месяц после базового)
type predictionStrategy interface {
	project(step int) (inflow, outflow decimal.Decimal)
	assumptions() models.PredictionAssumptions
}

// actualTrendStrategy плоское среднее за последние месяцы, без регрессии
type actualTrendStrategy struct {
	inflow   decimal.Decimal
	outflow  decimal.Decimal
	lookback int
}

func (s *actualTrendStrategy) project(int) (decimal.Decimal, decimal.Decimal) {
	return s.inflow, s.outflow
}

func (s *actualTrendStrategy) assumptions() models.PredictionAssumptions {
	return models.PredictionAssumptions{LookbackMonths: s.lookback}
}

// simulationStrategy выручка базового месяца с ростом, расходы по настройкам симуляции
type simulationStrategy struct {
	engine      *Engine
	baseRevenue decimal.Decimal
	growthRate  decimal.Decimal
}

func (s *simulationStrategy) revenueAt(step int) decimal.Decimal {
	factor := decimal.NewFromInt(1).Add(s.growthRate.Div(hundred))
	revenue := s.baseRevenue
	for i := 0; i < step; i++ {
		revenue = revenue.Mul(factor)
	}
	return revenue.Round(s.engine.places)
}

func (s *simulationStrategy) project(step int) (decimal.Decimal, decimal.Decimal) {
	revenue := s.revenueAt(step)
	_, outflow := s.engine.expenseLines(revenue)
	return revenue, outflow
}

func (s *simulationStrategy) assumptions() models.PredictionAssumptions {
	growth := s.growthRate
	base := s.baseRevenue
	return models.PredictionAssumptions{GrowthRate: &growth, BaseRevenue: &base}
}

var hundred = decimal.NewFromInt(100)

// ValidatePredictionRequest проверка параметров, не требующая данных:
// months, затем mode, year, month и параметры выбранного режима
func ValidatePredictionRequest(req models.PredictionRequest) error {
	if req.Months < models.MinPredictionMonths || req.Months > models.MaxPredictionMonths {
		return models.NewValidationError("months", "must be between %d and %d, got %d",
			models.MinPredictionMonths, models.MaxPredictionMonths, req.Months)
	}
	if !req.Mode.IsValid() {
		return models.NewValidationError("mode", "must be %q or %q, got %q",
			models.PredictionModeActual, models.PredictionModeSimulation, req.Mode)
	}
	if err := ValidateYear(req.Year); err != nil {
		return err
	}
	if err := ValidateMonth(req.Month); err != nil {
		return err
	}

	switch req.Mode {
	case models.PredictionModeActual:
		if lookback := lookbackMonths(req); lookback < 1 || lookback > models.MaxPredictionMonths {
			return models.NewValidationError("lookback_months", "must be between 1 and %d, got %d",
				models.MaxPredictionMonths, lookback)
		}
	case models.PredictionModeSimulation:
		if growth := growthRate(req); growth.LessThanOrEqual(minGrowthRate) {
			return models.NewValidationError("growth_rate", "must be greater than -100, got %s", growth)
		}
	}
	return nil
}

// lookbackMonths 0 означает значение по умолчанию
func lookbackMonths(req models.PredictionRequest) int {
	if req.LookbackMonths == 0 {
		return DefaultLookbackMonths
	}
	return req.LookbackMonths
}

func growthRate(req models.PredictionRequest) decimal.Decimal {
	if req.GrowthRate == nil {
		return decimal.Zero
	}
	return *req.GrowthRate
}

// PredictFutureCashFlow прогноз на req.Months месяцев после (Year, Month).
// Параметры проверяются до любых расчетов. Месяцы считаются строго по порядку:
// остаток на начало месяца i+1 = прогнозный остаток на конец месяца i.
func (e *Engine) PredictFutureCashFlow(req models.PredictionRequest) (*models.FuturePrediction, error) {
	if err := ValidatePredictionRequest(req); err != nil {
		return nil, err
	}

	strategy := e.newStrategy(req)

	prediction := &models.FuturePrediction{
		Mode:        req.Mode,
		BaseYear:    req.Year,
		BaseMonth:   req.Month,
		Assumptions: strategy.assumptions(),
		Periods:     make([]models.PredictedPeriod, 0, req.Months),
	}

	if req.CashAtBeginning != nil {
		prediction.InitialCash = *req.CashAtBeginning
		prediction.Assumptions.InitialCashKnown = true
	} else {
		prediction.InitialCash = e.endingCash(req.Year, req.Month)
	}

	begin := prediction.InitialCash
	for step := 1; step <= req.Months; step++ {
		year, month := addMonths(req.Year, req.Month, step)
		inflow, outflow := strategy.project(step)
		end := begin.Add(inflow).Sub(outflow)
		prediction.Periods = append(prediction.Periods, models.PredictedPeriod{
			Year:                year,
			Month:               month,
			CashAtBeginning:     begin,
			PredictedInflow:     inflow,
			PredictedOutflow:    outflow,
			PredictedEndingCash: end,
		})
		begin = end
	}

	return prediction, nil
}

// newStrategy выбирается один раз на входе; запрос уже проверен
func (e *Engine) newStrategy(req models.PredictionRequest) predictionStrategy {
	if req.Mode == models.PredictionModeSimulation {
		baseRevenue, _ := e.accruedRevenue(req.Year, req.Month)
		return &simulationStrategy{engine: e, baseRevenue: baseRevenue, growthRate: growthRate(req)}
	}
	return e.actualTrend(req.Year, req.Month, lookbackMonths(req))
}

// actualTrend среднее притока и оттока за lookback месяцев, заканчивая базовым
func (e *Engine) actualTrend(year, month, lookback int) *actualTrendStrategy {
	inflow, outflow := decimal.Zero, decimal.Zero
	for i := 0; i < lookback; i++ {
		y, m := addMonths(year, month, -i)
		in, out := e.monthlyCashTotals(y, m)
		inflow = inflow.Add(in)
		outflow = outflow.Add(out)
	}
	n := decimal.NewFromInt(int64(lookback))
	return &actualTrendStrategy{
		inflow:   inflow.Div(n).Round(e.places),
		outflow:  outflow.Div(n).Round(e.places),
		lookback: lookback,
	}
}
