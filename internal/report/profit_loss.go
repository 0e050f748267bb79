package report

import (
	"github.com/alligatorO15/fin-reports/internal/models"
	"github.com/shopspring/decimal"
)

// ProfitAndLoss отчет за месяц. Выручка - договоры с датой договора в месяце
// (метод начисления, дата оплаты не важна). Каждая статья расходов =
// max(выручка × процент / 100, минимум), поэтому при нулевой выручке
// статьи все равно равны своим минимумам.
func (e *Engine) ProfitAndLoss(year, month int) (*models.ProfitAndLossStatement, error) {
	if err := ValidateYear(year); err != nil {
		return nil, err
	}
	if err := ValidateMonth(month); err != nil {
		return nil, err
	}
	statement := e.monthlyProfitAndLoss(year, month)
	return &statement, nil
}

// AnnualProfitAndLoss сумма двенадцати месячных отчетов, минимумы применяются помесячно
func (e *Engine) AnnualProfitAndLoss(year int) (*models.ProfitAndLossStatement, error) {
	if err := ValidateYear(year); err != nil {
		return nil, err
	}

	annual := &models.ProfitAndLossStatement{
		Year:         year,
		ExpenseLines: make([]models.ExpenseLine, len(e.settings)),
	}
	for i, s := range e.settings {
		annual.ExpenseLines[i] = models.ExpenseLine{
			Name:    s.ItemName,
			Ratio:   s.SalesRatio,
			Minimum: s.MinimumAmount,
			Amount:  decimal.Zero,
		}
	}

	for m := 1; m <= 12; m++ {
		monthly := e.monthlyProfitAndLoss(year, m)
		annual.Revenue = annual.Revenue.Add(monthly.Revenue)
		annual.ContractCount += monthly.ContractCount
		for i, line := range monthly.ExpenseLines {
			annual.ExpenseLines[i].Amount = annual.ExpenseLines[i].Amount.Add(line.Amount)
		}
	}

	for _, line := range annual.ExpenseLines {
		annual.TotalExpenses = annual.TotalExpenses.Add(line.Amount)
	}
	annual.NetProfit = annual.Revenue.Sub(annual.TotalExpenses)

	return annual, nil
}

func (e *Engine) monthlyProfitAndLoss(year, month int) models.ProfitAndLossStatement {
	revenue, count := e.accruedRevenue(year, month)
	lines, total := e.expenseLines(revenue)

	m := month
	return models.ProfitAndLossStatement{
		Year:          year,
		Month:         &m,
		Revenue:       revenue,
		ExpenseLines:  lines,
		TotalExpenses: total,
		NetProfit:     revenue.Sub(total),
		ContractCount: count,
	}
}

func (e *Engine) accruedRevenue(year, month int) (decimal.Decimal, int) {
	revenue := decimal.Zero
	count := 0
	for i := range e.contracts {
		c := &e.contracts[i]
		if !inMonth(c.ContractDate, year, month) {
			continue
		}
		revenue = revenue.Add(c.Amount)
		count++
	}
	return revenue, count
}

// expenseLines считает статьи для произвольной выручки: и фактической, и прогнозной
func (e *Engine) expenseLines(revenue decimal.Decimal) ([]models.ExpenseLine, decimal.Decimal) {
	lines := make([]models.ExpenseLine, 0, len(e.settings))
	total := decimal.Zero
	for _, s := range e.settings {
		amount := s.ExpenseFor(revenue, e.places)
		lines = append(lines, models.ExpenseLine{
			Name:    s.ItemName,
			Ratio:   s.SalesRatio,
			Minimum: s.MinimumAmount,
			Amount:  amount,
		})
		total = total.Add(amount)
	}
	return lines, total
}
