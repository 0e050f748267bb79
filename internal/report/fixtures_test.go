package report

import (
	"time"

	"github.com/alligatorO15/fin-reports/internal/models"
	"github.com/shopspring/decimal"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func amount(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func intPtr(v int) *int {
	return &v
}

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func paid(id int, value int64, contract, actual *time.Time) models.ContractRecord {
	return models.ContractRecord{
		ID:                id,
		CompanyName:       "company",
		ContractDate:      contract,
		Amount:            amount(value),
		PaymentDueDate:    actual,
		PaymentActualDate: actual,
		Status:            models.PaymentStatusPaid,
	}
}

func unpaid(id int, value int64, contract, due *time.Time) models.ContractRecord {
	return models.ContractRecord{
		ID:             id,
		CompanyName:    "company",
		ContractDate:   contract,
		Amount:         amount(value),
		PaymentDueDate: due,
		Status:         models.PaymentStatusUnpaid,
	}
}

func rent(ratio, minimum int64) models.SimulationSetting {
	return models.SimulationSetting{
		ItemName:      "rent",
		SalesRatio:    amount(ratio),
		MinimumAmount: amount(minimum),
	}
}

// sampleEngine: июнь 2025 с оплаченными, неоплаченными и записями без дат
func sampleEngine() *Engine {
	contracts := []models.ContractRecord{
		paid(1, 100000, date(2025, 6, 15), date(2025, 6, 20)),
		paid(2, 50000, date(2025, 5, 10), date(2025, 6, 1)),
		paid(3, 30000, date(2025, 6, 2), date(2025, 7, 3)),
		unpaid(4, 20000, date(2025, 6, 5), date(2025, 6, 30)),
		unpaid(5, 10000, date(2025, 6, 6), nil),
		paid(6, 7777, date(2025, 4, 1), date(2025, 4, 30)),
	}
	settings := []models.SimulationSetting{
		rent(10, 5000),
		{ItemName: "ads", SalesRatio: amount(5), MinimumAmount: amount(0)},
	}
	return NewEngine(contracts, settings)
}
