package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alligatorO15/fin-reports/internal/models"
	"github.com/alligatorO15/fin-reports/internal/sheets"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReportService(t *testing.T, src sheets.RowSource) ReportService {
	t.Helper()
	svc, err := NewReportService(src, testConfig(), testLogger(), WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, err)
	return svc
}

func TestReportServiceProfitAndLoss(t *testing.T) {
	svc := newTestReportService(t, newFakeSource())

	pl, err := svc.ProfitAndLoss(context.Background(), 2025, 6)
	require.NoError(t, err)

	assert.True(t, pl.Revenue.Equal(decimal.NewFromInt(120000)), pl.Revenue.String())
	assert.True(t, pl.TotalExpenses.Equal(decimal.NewFromInt(12000)))
	assert.True(t, pl.NetProfit.Equal(decimal.NewFromInt(108000)))
	assert.Equal(t, 2, pl.ContractCount)
}

func TestReportServiceValidatesBeforeLoading(t *testing.T) {
	src := newFakeSource()
	svc := newTestReportService(t, src)
	ctx := context.Background()

	_, err := svc.ProfitAndLoss(ctx, 2025, 13)
	assert.True(t, errors.Is(err, models.ErrValidation))

	_, err = svc.CashFlow(ctx, 1800, nil, nil)
	assert.True(t, errors.Is(err, models.ErrValidation))

	_, err = svc.Predict(ctx, models.PredictionRequest{Year: 2025, Month: 6, Months: 25, Mode: models.PredictionModeActual})
	var vErr *models.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "months", vErr.Param)

	growth := decimal.NewFromInt(-150)
	_, err = svc.Predict(ctx, models.PredictionRequest{Year: 2025, Month: 6, Months: 3, Mode: models.PredictionModeSimulation, GrowthRate: &growth})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "growth_rate", vErr.Param)

	_, err = svc.Predict(ctx, models.PredictionRequest{Year: 2025, Month: 6, Months: 3, Mode: models.PredictionModeActual, LookbackMonths: 99})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "lookback_months", vErr.Param)

	assert.Zero(t, src.callCount())
}

func TestReportServicePropagatesUpstreamErrors(t *testing.T) {
	src := newFakeSource()
	src.err = &sheets.UpstreamError{Range: sheets.NamedRange{Sheet: "Contracts", Cells: "A1:P"}, Status: 503}
	svc := newTestReportService(t, src)

	_, err := svc.CashFlow(context.Background(), 2025, nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, sheets.ErrUpstream))
	assert.False(t, errors.Is(err, models.ErrValidation))
}

func TestReportServicePaymentScheduleUsesClock(t *testing.T) {
	svc := newTestReportService(t, newFakeSource())

	schedule, err := svc.PaymentSchedule(context.Background())
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 7, 5, 0, 0, 0, 0, time.UTC), schedule.AsOf)
	require.Len(t, schedule.Entries, 1)
	assert.Equal(t, 2, schedule.Entries[0].ID)
	assert.True(t, schedule.Entries[0].Overdue)
	assert.Equal(t, 5, schedule.Entries[0].DaysOverdue)
	assert.Equal(t, 1, schedule.Summary.OverdueCount)
}

func TestReportServiceCashFlowDetails(t *testing.T) {
	svc := newTestReportService(t, newFakeSource())
	begin := decimal.NewFromInt(1000)

	details, err := svc.CashFlowDetails(context.Background(), 2025, 6, &begin)
	require.NoError(t, err)

	// приток 100000, отток аренда 12000
	assert.True(t, details.Statement.CashAtEnd.Equal(decimal.NewFromInt(89000)), details.Statement.CashAtEnd.String())
	assert.Len(t, details.Daily, 30)
	assert.Len(t, details.Schedule, 1)
}

func TestReportServicePredictUsesConfiguredGrowth(t *testing.T) {
	svc := newTestReportService(t, newFakeSource())

	prediction, err := svc.Predict(context.Background(), models.PredictionRequest{
		Year: 2025, Month: 6, Months: 2, Mode: models.PredictionModeSimulation,
	})
	require.NoError(t, err)

	require.NotNil(t, prediction.Assumptions.GrowthRate)
	assert.True(t, prediction.Assumptions.GrowthRate.Equal(decimal.NewFromInt(10)))
	assert.True(t, prediction.Periods[0].PredictedInflow.Equal(decimal.NewFromInt(132000)))
	assert.Equal(t, 7, prediction.Periods[0].Month)
}

func TestReportServicePredictUsesConfiguredLookback(t *testing.T) {
	svc := newTestReportService(t, newFakeSource())

	prediction, err := svc.Predict(context.Background(), models.PredictionRequest{
		Year: 2025, Month: 6, Months: 1, Mode: models.PredictionModeActual,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, prediction.Assumptions.LookbackMonths)
}

func TestReportServiceNow(t *testing.T) {
	svc := newTestReportService(t, newFakeSource())
	assert.Equal(t, fixedNow, svc.Now())
}

func TestNewReportServiceRejectsBadRange(t *testing.T) {
	cfg := testConfig()
	cfg.ContractsRange = "Contracts"
	_, err := NewReportService(newFakeSource(), cfg, testLogger())
	assert.Error(t, err)
}
