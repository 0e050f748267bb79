package report

import (
	"testing"
	"time"

	"github.com/alligatorO15/fin-reports/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildScheduleOverdue(t *testing.T) {
	records := []models.ContractRecord{unpaid(7, 30000, date(2024, 12, 1), date(2025, 1, 10))}
	asOf := time.Date(2025, 1, 15, 18, 30, 0, 0, time.UTC)

	entries := BuildSchedule(records, asOf)

	require.Len(t, entries, 1)
	assert.True(t, entries[0].Overdue)
	assert.Equal(t, 5, entries[0].DaysOverdue)
	assert.Equal(t, models.PaymentStatusOverdue, records[0].DeriveStatus(asOf))
}

func TestBuildScheduleDueTodayIsNotOverdue(t *testing.T) {
	records := []models.ContractRecord{unpaid(1, 100, nil, date(2025, 1, 15))}

	entries := BuildSchedule(records, time.Date(2025, 1, 15, 23, 59, 0, 0, time.UTC))

	require.Len(t, entries, 1)
	assert.False(t, entries[0].Overdue)
	assert.Zero(t, entries[0].DaysOverdue)
}

func TestBuildScheduleOrderAndFilter(t *testing.T) {
	records := []models.ContractRecord{
		unpaid(9, 100, nil, date(2025, 3, 1)),
		paid(2, 100, nil, date(2025, 1, 1)),
		unpaid(5, 100, nil, date(2025, 2, 1)),
		unpaid(3, 100, nil, date(2025, 3, 1)),
		unpaid(4, 100, nil, nil),
	}

	entries := BuildSchedule(records, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	ids := make([]int, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []int{5, 3, 9}, ids)
}

func TestBuildScheduleEmpty(t *testing.T) {
	entries := BuildSchedule(nil, time.Now())
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestSummarizeSchedule(t *testing.T) {
	records := []models.ContractRecord{
		unpaid(1, 1000, nil, date(2025, 1, 1)),
		unpaid(2, 2000, nil, date(2025, 2, 1)),
		unpaid(3, 4000, nil, date(2025, 3, 1)),
	}

	summary := SummarizeSchedule(BuildSchedule(records, time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)))

	assert.True(t, summary.TotalDue.Equal(amount(7000)))
	assert.True(t, summary.TotalOverdue.Equal(amount(3000)))
	assert.Equal(t, 2, summary.OverdueCount)
}

func TestPaymentScheduleDependsOnAsOf(t *testing.T) {
	e := sampleEngine()

	before := e.PaymentSchedule(time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC))
	after := e.PaymentSchedule(time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC))

	require.Len(t, before, 1)
	require.Len(t, after, 1)
	assert.False(t, before[0].Overdue)
	assert.True(t, after[0].Overdue)
	assert.Equal(t, 1, after[0].DaysOverdue)
}
