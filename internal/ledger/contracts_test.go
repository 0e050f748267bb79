package ledger

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/alligatorO15/fin-reports/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var header = []interface{}{"id", "company", "category", "contract_date", "amount"}

func contractRow(cells ...interface{}) []interface{} {
	row := make([]interface{}, 16)
	copy(row, cells)
	return row
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNormalizeContractsSkipsHeaderAndNonDataRows(t *testing.T) {
	rows := [][]interface{}{
		header,
		{"abc", "", "", ""},
		contractRow("1", "Acme", "magazine", "2025-06-15", "100,000"),
		contractRow("", "Blank id"),
		contractRow("2", ""),
		contractRow("-3", "Negative id"),
		contractRow("4.5", "Fractional id"),
	}

	records := NormalizeContracts(rows, day(2025, 6, 30))

	require.Len(t, records, 1)
	assert.Equal(t, 1, records[0].ID)
	assert.Equal(t, "Acme", records[0].CompanyName)
	assert.Equal(t, models.ServiceCategoryMagazineListing, records[0].ServiceCategory)
	assert.True(t, records[0].Amount.Equal(decimal.NewFromInt(100000)))
	require.NotNil(t, records[0].ContractDate)
	assert.Equal(t, day(2025, 6, 15), *records[0].ContractDate)
}

func TestNormalizeContractsEmptyInput(t *testing.T) {
	assert.Empty(t, NormalizeContracts(nil, time.Now()))
	assert.Empty(t, NormalizeContracts([][]interface{}{header}, time.Now()))
}

func TestNormalizeContractsBestEffortFields(t *testing.T) {
	rows := [][]interface{}{
		header,
		contractRow(float64(7), "Beta", "unknown thing", "not a date", "lots", nil,
			nil, nil, nil, nil, "2025-01-10", nil, "paid", "x", "No.12", "  note  "),
	}

	records := NormalizeContracts(rows, day(2025, 1, 15))

	require.Len(t, records, 1)
	r := records[0]
	assert.Equal(t, 7, r.ID)
	assert.Equal(t, models.ServiceCategoryUnknown, r.ServiceCategory)
	assert.Nil(t, r.ContractDate)
	assert.True(t, r.Amount.IsZero())
	assert.Nil(t, r.DelayDays)
	assert.Equal(t, "No.12", r.Issue)
	assert.Equal(t, "note", r.Notes)
	// статус "paid" из таблицы не используется: даты оплаты нет, срок прошел
	assert.Equal(t, models.PaymentStatusOverdue, r.Status)
}

func TestNormalizeContractsDerivesStatusAndDelay(t *testing.T) {
	rows := [][]interface{}{
		header,
		contractRow("1", "Paid late", "partner", "2025-01-01", 5000, "bank",
			nil, nil, nil, nil, "2025/1/10", "2025/1/14"),
		contractRow("2", "Paid early", "certification", "2025-01-01", 5000, "bank",
			nil, nil, nil, nil, "2025-01-10", "2025-01-05"),
		contractRow("3", "Not due yet", "site build", "2025-01-01", 5000, "bank",
			nil, nil, nil, nil, "2025-02-10", nil, nil, "3"),
	}

	records := NormalizeContracts(rows, day(2025, 1, 20))
	require.Len(t, records, 3)

	assert.Equal(t, models.PaymentStatusPaid, records[0].Status)
	require.NotNil(t, records[0].DelayDays)
	assert.Equal(t, 4, *records[0].DelayDays)

	assert.Equal(t, models.PaymentStatusPaid, records[1].Status)
	require.NotNil(t, records[1].DelayDays)
	assert.Equal(t, 0, *records[1].DelayDays)

	assert.Equal(t, models.PaymentStatusUnpaid, records[2].Status)
	assert.Equal(t, models.ServiceCategorySiteBuild, records[2].ServiceCategory)
	require.NotNil(t, records[2].DelayDays)
	assert.Equal(t, 3, *records[2].DelayDays)
}

func TestNormalizeContractsRejectsInvariantViolations(t *testing.T) {
	rows := [][]interface{}{
		header,
		contractRow("1", "Negative", "", "2025-01-01", "-100"),
		contractRow("2", "Paid before contract", "", "2025-03-01", 100, "",
			nil, nil, nil, nil, "2025-03-31", "2025-02-01"),
		contractRow("3", "Good", "", "2025-03-01", 100),
		contractRow("3", "Duplicate id", "", "2025-03-01", 999),
	}

	records := NormalizeContracts(rows, day(2025, 3, 1))

	require.Len(t, records, 1)
	assert.Equal(t, "Good", records[0].CompanyName)
}

func TestNormalizeContractsKeepsPaymentWithoutContractDate(t *testing.T) {
	rows := [][]interface{}{
		header,
		contractRow("7", "Acme", "", nil, 100, "",
			nil, nil, nil, nil, "2025-03-31", "2025-02-01"),
	}

	records := NormalizeContracts(rows, day(2025, 3, 1))

	require.Len(t, records, 1)
	assert.Nil(t, records[0].ContractDate)
	require.NotNil(t, records[0].PaymentActualDate)
	assert.Equal(t, models.PaymentStatusPaid, records[0].Status)
}

func TestCellDateFormats(t *testing.T) {
	cases := map[string]interface{}{
		"iso":        "2025-06-15",
		"slash":      "2025/6/15",
		"dotted":     "2025.06.15",
		"japanese":   "2025年6月15日",
		"full width": "２０２５/０６/１５",
		"serial":     float64(45823),
		"json":       json.Number("45823"),
		"rfc3339":    "2025-06-15T10:30:00+09:00",
		"time":       time.Date(2025, 6, 15, 23, 0, 0, 0, time.UTC),
	}
	for name, value := range cases {
		t.Run(name, func(t *testing.T) {
			got := cellDate([]interface{}{value}, 0)
			require.NotNil(t, got)
			assert.Equal(t, day(2025, 6, 15), *got)
		})
	}

	assert.Nil(t, cellDate([]interface{}{"soon"}, 0))
	assert.Nil(t, cellDate([]interface{}{float64(-1)}, 0))
	assert.Nil(t, cellDate([]interface{}{}, 3))
}

func TestCellDecimalNormalizesLocaleText(t *testing.T) {
	cases := map[string]string{
		"1,234,567": "1234567",
		"¥1,200":    "1200",
		"１２,３４５":    "12345",
		"15%":       "15",
		" 3.5 ":     "3.5",
		"1,000円":    "1000",
		"+42":       "42",
		"-1,000":    "-1000",
	}
	for in, want := range cases {
		got, ok := cellDecimal([]interface{}{in}, 0)
		require.True(t, ok, in)
		assert.True(t, got.Equal(decimal.RequireFromString(want)), "%s -> %s", in, got)
	}

	_, ok := cellDecimal([]interface{}{"n/a"}, 0)
	assert.False(t, ok)
	_, ok = cellDecimal([]interface{}{""}, 0)
	assert.False(t, ok)
}
