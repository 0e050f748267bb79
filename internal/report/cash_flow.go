package report

import (
	"github.com/alligatorO15/fin-reports/internal/models"
	"github.com/shopspring/decimal"
)

// CashFlowStatement отчет о движении денег за месяц или год (month == nil).
//
// Приток - суммы с фактической датой оплаты в периоде. Отток - расходы из
// отчета о прибылях и убытках за тот же период: отдельной даты оплаты
// расходов в исходных данных нет, считаем что оплачены в месяце начисления.
//
// Без cashAtBeginning остаток на начало берется нулевым и это видно в
// BeginningAssumed. Годовой отчет идет по месяцам: начало месяца = конец предыдущего.
func (e *Engine) CashFlowStatement(year int, month *int, cashAtBeginning *decimal.Decimal) (*models.CashFlowStatement, error) {
	if err := validatePeriod(year, month); err != nil {
		return nil, err
	}

	begin, assumed := openingBalance(cashAtBeginning)

	if month != nil {
		statement := e.monthlyCashFlow(year, *month, begin, assumed)
		return &statement, nil
	}

	annual := &models.CashFlowStatement{
		Year:             year,
		CashAtBeginning:  begin,
		BeginningAssumed: assumed,
		Months:           e.cashFlowChain(year, 12, begin, assumed),
	}
	for _, m := range annual.Months {
		annual.TotalInflow = annual.TotalInflow.Add(m.TotalInflow)
		annual.TotalOutflow = annual.TotalOutflow.Add(m.TotalOutflow)
	}
	annual.NetCashFlow = annual.TotalInflow.Sub(annual.TotalOutflow)
	annual.CashAtEnd = annual.Months[len(annual.Months)-1].CashAtEnd

	return annual, nil
}

func openingBalance(cashAtBeginning *decimal.Decimal) (decimal.Decimal, bool) {
	if cashAtBeginning == nil {
		return decimal.Zero, true
	}
	return *cashAtBeginning, false
}

// cashFlowChain месяцы с января по lastMonth, остаток переносится слева направо
func (e *Engine) cashFlowChain(year, lastMonth int, begin decimal.Decimal, assumed bool) []models.CashFlowStatement {
	chain := make([]models.CashFlowStatement, 0, lastMonth)
	for m := 1; m <= lastMonth; m++ {
		statement := e.monthlyCashFlow(year, m, begin, assumed && m == 1)
		chain = append(chain, statement)
		begin = statement.CashAtEnd
	}
	return chain
}

func (e *Engine) monthlyCashFlow(year, month int, begin decimal.Decimal, assumed bool) models.CashFlowStatement {
	inflow, outflow := e.monthlyCashTotals(year, month)
	m := month
	return models.CashFlowStatement{
		Year:             year,
		Month:            &m,
		CashAtBeginning:  begin,
		BeginningAssumed: assumed,
		TotalInflow:      inflow,
		TotalOutflow:     outflow,
		NetCashFlow:      inflow.Sub(outflow),
		CashAtEnd:        begin.Add(inflow).Sub(outflow),
	}
}

// monthlyCashTotals приток и отток месяца без учета остатка
func (e *Engine) monthlyCashTotals(year, month int) (decimal.Decimal, decimal.Decimal) {
	inflow := decimal.Zero
	for i := range e.contracts {
		c := &e.contracts[i]
		if inMonth(c.PaymentActualDate, year, month) {
			inflow = inflow.Add(c.Amount)
		}
	}
	revenue, _ := e.accruedRevenue(year, month)
	_, outflow := e.expenseLines(revenue)
	return inflow, outflow
}

// endingCash остаток на конец месяца, если на 1 января было 0
func (e *Engine) endingCash(year, month int) decimal.Decimal {
	chain := e.cashFlowChain(year, month, decimal.Zero, true)
	return chain[len(chain)-1].CashAtEnd
}
