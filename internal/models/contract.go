package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ServiceCategory string

const (
	ServiceCategoryUnknown         ServiceCategory = ""
	ServiceCategoryMagazineListing ServiceCategory = "magazine_listing" // размещение в журнале
	ServiceCategoryPartnerProgram  ServiceCategory = "partner_program"
	ServiceCategoryCertification   ServiceCategory = "certification"
	ServiceCategorySiteBuild       ServiceCategory = "site_build"
	ServiceCategoryPortfolioBuild  ServiceCategory = "portfolio_build"
)

type PaymentStatus string

const (
	PaymentStatusUnpaid  PaymentStatus = "unpaid"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusOverdue PaymentStatus = "overdue"
)

// ContractRecord одна строка договора/счета из исходной таблицы.
// Движок записи не меняет, только строит по ним отчеты.
type ContractRecord struct {
	ID              int             `json:"id"`
	CompanyName     string          `json:"company_name"`
	ServiceCategory ServiceCategory `json:"service_category"`
	ContractDate    *time.Time      `json:"contract_date,omitempty"` // дата договора, по ней считается выручка (метод начисления)
	Amount          decimal.Decimal `json:"amount"`
	PaymentMethod   string          `json:"payment_method"`

	// даты документооборота
	ContractSentDate        *time.Time `json:"contract_sent_date,omitempty"`
	ContractReceivedDate    *time.Time `json:"contract_received_date,omitempty"`
	ApplicationSentDate     *time.Time `json:"application_sent_date,omitempty"`
	ApplicationReceivedDate *time.Time `json:"application_received_date,omitempty"`

	PaymentDueDate    *time.Time    `json:"payment_due_date,omitempty"`
	PaymentActualDate *time.Time    `json:"payment_actual_date,omitempty"` // nil пока не оплачено
	Status            PaymentStatus `json:"status"`                        // вычисляется, из таблицы не берется
	DelayDays         *int          `json:"delay_days,omitempty"`
	Issue             string        `json:"issue"` // номер выпуска журнала
	Notes             string        `json:"notes"`
}

func (r *ContractRecord) IsPaid() bool {
	return r.PaymentActualDate != nil
}

// EffectiveDate дата для раскладки по периодам: факт оплаты если оплачено, иначе срок оплаты
func (r *ContractRecord) EffectiveDate() *time.Time {
	if r.PaymentActualDate != nil {
		return r.PaymentActualDate
	}
	return r.PaymentDueDate
}

// IsOverdue зависит от asOf, поэтому не кэшируется в записи
func (r *ContractRecord) IsOverdue(asOf time.Time) bool {
	if r.IsPaid() || r.PaymentDueDate == nil {
		return false
	}
	return r.PaymentDueDate.Before(TruncateDay(asOf))
}

// DeriveStatus вычисляет статус оплаты на дату asOf
func (r *ContractRecord) DeriveStatus(asOf time.Time) PaymentStatus {
	switch {
	case r.IsPaid():
		return PaymentStatusPaid
	case r.IsOverdue(asOf):
		return PaymentStatusOverdue
	default:
		return PaymentStatusUnpaid
	}
}

// TruncateDay приводит время к полуночи UTC того же календарного дня
func TruncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
