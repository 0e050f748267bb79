package report

import (
	"sort"
	"time"

	"github.com/alligatorO15/fin-reports/internal/models"
	"github.com/shopspring/decimal"
)

// BuildSchedule неоплаченные записи со сроком, по возрастанию срока, при равенстве по id.
// Просрочка считается на asOf при каждом вызове.
func BuildSchedule(records []models.ContractRecord, asOf time.Time) []models.PaymentScheduleEntry {
	today := models.TruncateDay(asOf)
	entries := make([]models.PaymentScheduleEntry, 0)

	for i := range records {
		r := &records[i]
		if r.IsPaid() || r.PaymentDueDate == nil {
			continue
		}
		entry := models.PaymentScheduleEntry{
			ID:              r.ID,
			CompanyName:     r.CompanyName,
			ServiceCategory: r.ServiceCategory,
			Amount:          r.Amount,
			DueDate:         *r.PaymentDueDate,
			Issue:           r.Issue,
		}
		if r.IsOverdue(asOf) {
			entry.Overdue = true
			entry.DaysOverdue = int(today.Sub(*r.PaymentDueDate).Hours() / 24)
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].DueDate.Equal(entries[j].DueDate) {
			return entries[i].DueDate.Before(entries[j].DueDate)
		}
		return entries[i].ID < entries[j].ID
	})

	return entries
}

func SummarizeSchedule(entries []models.PaymentScheduleEntry) models.ScheduleSummary {
	summary := models.ScheduleSummary{TotalDue: decimal.Zero, TotalOverdue: decimal.Zero}
	for _, e := range entries {
		summary.TotalDue = summary.TotalDue.Add(e.Amount)
		if e.Overdue {
			summary.TotalOverdue = summary.TotalOverdue.Add(e.Amount)
			summary.OverdueCount++
		}
	}
	return summary
}

func (e *Engine) PaymentSchedule(asOf time.Time) []models.PaymentScheduleEntry {
	return BuildSchedule(e.contracts, asOf)
}

// WeeklySummary недели месяца; расходы месяца ложатся на последнюю неделю (последний день месяца)
func (e *Engine) WeeklySummary(year, month int) ([]models.PeriodBucket, error) {
	idx, err := IndexByPeriod(e.contracts, year, &month)
	if err != nil {
		return nil, err
	}
	_, outflow := e.monthlyCashTotals(year, month)
	idx.Weekly[len(idx.Weekly)-1].Outflow = outflow
	return idx.Weekly, nil
}

// DailyCashFlow движение по дням с нарастающим остатком.
// Сумма Inflow по дням равна TotalInflow месячного отчета, сумма Outflow - TotalOutflow.
func (e *Engine) DailyCashFlow(year, month int, cashAtBeginning *decimal.Decimal) ([]models.DailyCashFlow, error) {
	idx, err := IndexByPeriod(e.contracts, year, &month)
	if err != nil {
		return nil, err
	}
	_, outflow := e.monthlyCashTotals(year, month)
	begin, _ := openingBalance(cashAtBeginning)

	days := make([]models.DailyCashFlow, 0, len(idx.Daily))
	last := len(idx.Daily) - 1
	for i, b := range idx.Daily {
		out := decimal.Zero
		if i == last {
			out = outflow
		}
		net := b.Inflow.Sub(out)
		end := begin.Add(net)
		days = append(days, models.DailyCashFlow{
			Date:            b.Start,
			Inflow:          b.Inflow,
			Scheduled:       b.Scheduled,
			Outflow:         out,
			Net:             net,
			CashAtBeginning: begin,
			CashAtEnd:       end,
		})
		begin = end
	}
	return days, nil
}
