// Package report считает отчеты по нормализованным договорам:
// прибыли и убытки (по дате договора), движение денег (по дате оплаты),
// график платежей и прогноз остатка.
//
// Все расчеты синхронные и детерминированные: текущая дата передается
// параметром, общего изменяемого состояния нет.
package report

import (
	"time"

	"github.com/alligatorO15/fin-reports/internal/models"
)

const (
	MinYear = 1970
	MaxYear = 2100

	// по умолчанию суммы округляются до целых (иены)
	DefaultCurrencyPlaces int32 = 0

	DefaultLookbackMonths = 3
)

// Engine снимок записей, по которому строятся все отчеты одного запроса
type Engine struct {
	contracts []models.ContractRecord
	settings  []models.SimulationSetting
	places    int32
}

type Option func(*Engine)

// WithCurrencyPlaces количество знаков после запятой у минимальной денежной единицы
func WithCurrencyPlaces(places int32) Option {
	return func(e *Engine) {
		if places >= 0 {
			e.places = places
		}
	}
}

func NewEngine(contracts []models.ContractRecord, settings []models.SimulationSetting, opts ...Option) *Engine {
	e := &Engine{
		contracts: contracts,
		settings:  settings,
		places:    DefaultCurrencyPlaces,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Contracts() []models.ContractRecord {
	return e.contracts
}

func (e *Engine) Settings() []models.SimulationSetting {
	return e.settings
}

func ValidateYear(year int) error {
	if year < MinYear || year > MaxYear {
		return models.NewValidationError("year", "must be between %d and %d, got %d", MinYear, MaxYear, year)
	}
	return nil
}

func ValidateMonth(month int) error {
	if month < 1 || month > 12 {
		return models.NewValidationError("month", "must be between 1 and 12, got %d", month)
	}
	return nil
}

func validatePeriod(year int, month *int) error {
	if err := ValidateYear(year); err != nil {
		return err
	}
	if month != nil {
		return ValidateMonth(*month)
	}
	return nil
}

func monthStart(year, month int) time.Time {
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
}

// monthEnd последний день месяца (включительно)
func monthEnd(year, month int) time.Time {
	return monthStart(year, month).AddDate(0, 1, -1)
}

func daysInMonth(year, month int) int {
	return monthEnd(year, month).Day()
}

func inMonth(t *time.Time, year, month int) bool {
	return t != nil && t.Year() == year && int(t.Month()) == month
}

// addMonths сдвигает (year, month) на n месяцев
func addMonths(year, month, n int) (int, int) {
	t := monthStart(year, month).AddDate(0, n, 0)
	return t.Year(), int(t.Month())
}

func monthsOf(month *int) []int {
	if month != nil {
		return []int{*month}
	}
	return []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
}
