package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PeriodBucket агрегат по одному дню, неделе месяца или месяцу
type PeriodBucket struct {
	Key       string          `json:"key"`       // "2025-06-15", "2025-06-W2", "2025-06"
	Start     time.Time       `json:"start"`     // первый день корзины
	End       time.Time       `json:"end"`       // последний день корзины (включительно)
	Inflow    decimal.Decimal `json:"inflow"`    // фактически поступившие деньги
	Scheduled decimal.Decimal `json:"scheduled"` // неоплаченные суммы со сроком в этой корзине
	Outflow   decimal.Decimal `json:"outflow"`
	Count     int             `json:"count"` // сколько записей попало в корзину
}

// ExpenseLine строка расходов в отчете о прибылях и убытках
type ExpenseLine struct {
	Name    string          `json:"name"`
	Ratio   decimal.Decimal `json:"ratio"`
	Minimum decimal.Decimal `json:"minimum"`
	Amount  decimal.Decimal `json:"amount"`
}

// ProfitAndLossStatement отчет о прибылях и убытках (метод начисления)
type ProfitAndLossStatement struct {
	Year          int             `json:"year"`
	Month         *int            `json:"month,omitempty"` // nil - годовой отчет
	Revenue       decimal.Decimal `json:"revenue"`
	ExpenseLines  []ExpenseLine   `json:"expense_lines"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	NetProfit     decimal.Decimal `json:"net_profit"` // Revenue - TotalExpenses
	ContractCount int             `json:"contract_count"`
}

// CashFlowStatement отчет о движении денежных средств (кассовый метод)
type CashFlowStatement struct {
	Year             int                 `json:"year"`
	Month            *int                `json:"month,omitempty"`
	CashAtBeginning  decimal.Decimal     `json:"cash_at_beginning"`
	BeginningAssumed bool                `json:"beginning_assumed"` // остаток не передан, взят 0
	TotalInflow      decimal.Decimal     `json:"total_inflow"`
	TotalOutflow     decimal.Decimal     `json:"total_outflow"`
	NetCashFlow      decimal.Decimal     `json:"net_cash_flow"`
	CashAtEnd        decimal.Decimal     `json:"cash_at_end"`      // CashAtBeginning + TotalInflow - TotalOutflow
	Months           []CashFlowStatement `json:"months,omitempty"` // только для годового отчета
}

// DailyCashFlow движение денег за один день с нарастающим остатком
type DailyCashFlow struct {
	Date            time.Time       `json:"date"`
	Inflow          decimal.Decimal `json:"inflow"`
	Scheduled       decimal.Decimal `json:"scheduled"`
	Outflow         decimal.Decimal `json:"outflow"`
	Net             decimal.Decimal `json:"net"`
	CashAtBeginning decimal.Decimal `json:"cash_at_beginning"`
	CashAtEnd       decimal.Decimal `json:"cash_at_end"`
}

// PaymentScheduleEntry неоплаченный платеж со сроком
type PaymentScheduleEntry struct {
	ID              int             `json:"id"`
	CompanyName     string          `json:"company_name"`
	ServiceCategory ServiceCategory `json:"service_category"`
	Amount          decimal.Decimal `json:"amount"`
	DueDate         time.Time       `json:"due_date"`
	Overdue         bool            `json:"overdue"`
	DaysOverdue     int             `json:"days_overdue"`
	Issue           string          `json:"issue"`
}

type ScheduleSummary struct {
	TotalDue     decimal.Decimal `json:"total_due"`
	TotalOverdue decimal.Decimal `json:"total_overdue"`
	OverdueCount int             `json:"overdue_count"`
}

// CashFlowDetails полный ответ для дашборда: отчет + график платежей + недели + дни
type CashFlowDetails struct {
	Statement       *CashFlowStatement     `json:"statement"`
	Schedule        []PaymentScheduleEntry `json:"schedule"`
	ScheduleSummary ScheduleSummary        `json:"schedule_summary"`
	Weekly          []PeriodBucket         `json:"weekly"`
	Daily           []DailyCashFlow        `json:"daily"`
}

// PaymentScheduleReport график платежей на дату AsOf
type PaymentScheduleReport struct {
	AsOf    time.Time              `json:"as_of"`
	Entries []PaymentScheduleEntry `json:"entries"`
	Summary ScheduleSummary        `json:"summary"`
}
