package report

import (
	"time"

	"github.com/alligatorO15/fin-reports/internal/models"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// CashFlowDetails месячный отчет вместе с графиком платежей, неделями и днями.
// Части не зависят друг от друга и читают один и тот же набор записей, поэтому
// считаются параллельно.
func (e *Engine) CashFlowDetails(year, month int, cashAtBeginning *decimal.Decimal, asOf time.Time) (*models.CashFlowDetails, error) {
	if err := ValidateYear(year); err != nil {
		return nil, err
	}
	if err := ValidateMonth(month); err != nil {
		return nil, err
	}

	details := &models.CashFlowDetails{}
	var g errgroup.Group

	g.Go(func() error {
		statement, err := e.CashFlowStatement(year, &month, cashAtBeginning)
		if err != nil {
			return err
		}
		details.Statement = statement
		return nil
	})

	g.Go(func() error {
		details.Schedule = e.PaymentSchedule(asOf)
		details.ScheduleSummary = SummarizeSchedule(details.Schedule)
		return nil
	})

	g.Go(func() error {
		weekly, err := e.WeeklySummary(year, month)
		if err != nil {
			return err
		}
		details.Weekly = weekly
		return nil
	})

	g.Go(func() error {
		daily, err := e.DailyCashFlow(year, month, cashAtBeginning)
		if err != nil {
			return err
		}
		details.Daily = daily
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return details, nil
}
