package report

import (
	"fmt"

	"github.com/alligatorO15/fin-reports/internal/models"
	"github.com/shopspring/decimal"
)

const daysPerWeek = 7

// PeriodIndex корзины по дням, неделям месяца и месяцам.
// Дни плотные: в окне есть каждый календарный день, даже без движений.
type PeriodIndex struct {
	Daily   []models.PeriodBucket `json:"daily"`
	Weekly  []models.PeriodBucket `json:"weekly"`
	Monthly []models.PeriodBucket `json:"monthly"`
}

// weekOfMonth неделя считается от 1-го числа: 1-7, 8-14, ... 29-31
func weekOfMonth(day int) int {
	return (day-1)/daysPerWeek + 1
}

// IndexByPeriod раскладывает записи по эффективной дате (факт оплаты или срок).
// Оплаченные идут в Inflow, неоплаченные в Scheduled. Запись без эффективной
// даты не попадает ни в одну корзину.
func IndexByPeriod(records []models.ContractRecord, year int, month *int) (*PeriodIndex, error) {
	if err := validatePeriod(year, month); err != nil {
		return nil, err
	}

	months := monthsOf(month)
	idx := &PeriodIndex{}

	// позиции первой недели и первого дня каждого месяца в общих срезах
	weekOffset := make(map[int]int, len(months))
	dayOffset := make(map[int]int, len(months))
	monthOffset := make(map[int]int, len(months))

	for _, m := range months {
		start := monthStart(year, m)
		end := monthEnd(year, m)
		days := end.Day()

		monthOffset[m] = len(idx.Monthly)
		idx.Monthly = append(idx.Monthly, models.PeriodBucket{
			Key:       start.Format("2006-01"),
			Start:     start,
			End:       end,
			Inflow:    decimal.Zero,
			Scheduled: decimal.Zero,
			Outflow:   decimal.Zero,
		})

		weekOffset[m] = len(idx.Weekly)
		for w := 1; w <= weekOfMonth(days); w++ {
			wStart := start.AddDate(0, 0, (w-1)*daysPerWeek)
			wEnd := wStart.AddDate(0, 0, daysPerWeek-1)
			if wEnd.After(end) {
				wEnd = end
			}
			idx.Weekly = append(idx.Weekly, models.PeriodBucket{
				Key:       fmt.Sprintf("%s-W%d", start.Format("2006-01"), w),
				Start:     wStart,
				End:       wEnd,
				Inflow:    decimal.Zero,
				Scheduled: decimal.Zero,
				Outflow:   decimal.Zero,
			})
		}

		dayOffset[m] = len(idx.Daily)
		for d := 0; d < days; d++ {
			date := start.AddDate(0, 0, d)
			idx.Daily = append(idx.Daily, models.PeriodBucket{
				Key:       date.Format("2006-01-02"),
				Start:     date,
				End:       date,
				Inflow:    decimal.Zero,
				Scheduled: decimal.Zero,
				Outflow:   decimal.Zero,
			})
		}
	}

	for i := range records {
		r := &records[i]
		eff := r.EffectiveDate()
		if eff == nil || eff.Year() != year {
			continue
		}
		m := int(eff.Month())
		base, ok := dayOffset[m]
		if !ok {
			continue
		}

		buckets := []*models.PeriodBucket{
			&idx.Daily[base+eff.Day()-1],
			&idx.Weekly[weekOffset[m]+weekOfMonth(eff.Day())-1],
			&idx.Monthly[monthOffset[m]],
		}
		for _, b := range buckets {
			if r.IsPaid() {
				b.Inflow = b.Inflow.Add(r.Amount)
			} else {
				b.Scheduled = b.Scheduled.Add(r.Amount)
			}
			b.Count++
		}
	}

	return idx, nil
}
