// Package ledger переводит сырые строки таблицы в проверенные записи.
// Разбор построчный и "по возможности": битая строка пропускается или
// получает значения по умолчанию, но никогда не ломает остальной набор.
package ledger

import (
	"strings"
	"time"

	"github.com/alligatorO15/fin-reports/internal/models"
)

// колонки листа с договорами
const (
	colID = iota
	colCompany
	colCategory
	colContractDate
	colAmount
	colPaymentMethod
	colContractSent
	colContractReceived
	colApplicationSent
	colApplicationReceived
	colDueDate
	colActualDate
	colStatus // статус в таблице игнорируется, считаем сами
	colDelayDays
	colIssue
	colNotes
)

var categoryAliases = map[string]models.ServiceCategory{
	"magazine_listing": models.ServiceCategoryMagazineListing,
	"magazine":         models.ServiceCategoryMagazineListing,
	"雑誌掲載":             models.ServiceCategoryMagazineListing,
	"partner_program":  models.ServiceCategoryPartnerProgram,
	"partner":          models.ServiceCategoryPartnerProgram,
	"パートナー":            models.ServiceCategoryPartnerProgram,
	"certification":    models.ServiceCategoryCertification,
	"認定":               models.ServiceCategoryCertification,
	"site_build":       models.ServiceCategorySiteBuild,
	"website":          models.ServiceCategorySiteBuild,
	"サイト制作":            models.ServiceCategorySiteBuild,
	"portfolio_build":  models.ServiceCategoryPortfolioBuild,
	"portfolio":        models.ServiceCategoryPortfolioBuild,
	"ポートフォリオ制作":        models.ServiceCategoryPortfolioBuild,
}

// ParseServiceCategory неизвестное значение дает ServiceCategoryUnknown, строку это не отбрасывает
func ParseServiceCategory(s string) models.ServiceCategory {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)
	if c, ok := categoryAliases[key]; ok {
		return c
	}
	return models.ServiceCategoryUnknown
}

// NormalizeContracts разбирает лист договоров. Первая строка - заголовок.
// Строка пропускается если id не положительное целое, нет компании,
// id повторяется или запись нарушает инварианты (сумма < 0, оплата раньше договора).
func NormalizeContracts(rows [][]interface{}, asOf time.Time) []models.ContractRecord {
	if len(rows) <= 1 {
		return []models.ContractRecord{}
	}

	records := make([]models.ContractRecord, 0, len(rows)-1)
	seen := make(map[int]struct{}, len(rows)-1)

	for _, row := range rows[1:] {
		record, ok := normalizeContractRow(row, asOf)
		if !ok {
			continue
		}
		if _, dup := seen[record.ID]; dup {
			continue
		}
		seen[record.ID] = struct{}{}
		records = append(records, record)
	}

	return records
}

func normalizeContractRow(row []interface{}, asOf time.Time) (models.ContractRecord, bool) {
	id, ok := cellPositiveInt(row, colID)
	if !ok {
		return models.ContractRecord{}, false
	}
	company := cellString(row, colCompany)
	if company == "" {
		return models.ContractRecord{}, false
	}

	record := models.ContractRecord{
		ID:                      id,
		CompanyName:             company,
		ServiceCategory:         ParseServiceCategory(cellString(row, colCategory)),
		ContractDate:            cellDate(row, colContractDate),
		PaymentMethod:           cellString(row, colPaymentMethod),
		ContractSentDate:        cellDate(row, colContractSent),
		ContractReceivedDate:    cellDate(row, colContractReceived),
		ApplicationSentDate:     cellDate(row, colApplicationSent),
		ApplicationReceivedDate: cellDate(row, colApplicationReceived),
		PaymentDueDate:          cellDate(row, colDueDate),
		PaymentActualDate:       cellDate(row, colActualDate),
		Issue:                   cellString(row, colIssue),
		Notes:                   cellString(row, colNotes),
	}

	// нечитаемая сумма -> 0, отрицательная -> строка битая
	if amount, ok := cellDecimal(row, colAmount); ok {
		if amount.IsNegative() {
			return models.ContractRecord{}, false
		}
		record.Amount = amount
	}

	if record.ContractDate != nil && record.PaymentActualDate != nil &&
		record.PaymentActualDate.Before(*record.ContractDate) {
		return models.ContractRecord{}, false
	}

	record.DelayDays = delayDays(row, record.PaymentDueDate, record.PaymentActualDate)
	record.Status = record.DeriveStatus(asOf)

	return record, true
}

// delayDays: max(0, факт - срок) если есть обе даты, иначе значение из колонки
func delayDays(row []interface{}, due, actual *time.Time) *int {
	if due != nil && actual != nil {
		days := int(actual.Sub(*due).Hours() / 24)
		if days < 0 {
			days = 0
		}
		return &days
	}
	days, ok := cellInt(row, colDelayDays)
	if !ok {
		return nil
	}
	if days < 0 {
		days = 0
	}
	return &days
}
