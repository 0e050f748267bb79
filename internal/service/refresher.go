package service

import (
	"context"
	"time"

	"github.com/alligatorO15/fin-reports/internal/sheets"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Refresher по расписанию перечитывает диапазоны в кэш и пишет в лог
// количество просроченных платежей
type Refresher struct {
	cache   RowCache
	reports ReportService
	ranges  []sheets.NamedRange
	timeout time.Duration
	log     *logrus.Logger
	cron    *cron.Cron
}

func NewRefresher(cache RowCache, reports ReportService, ranges []sheets.NamedRange, log *logrus.Logger) *Refresher {
	return &Refresher{
		cache:   cache,
		reports: reports,
		ranges:  ranges,
		timeout: time.Minute,
		log:     log,
	}
}

// Refresh cache может быть nil (CACHE_DRIVER=none), тогда только пересчет графика
func (r *Refresher) Refresh(ctx context.Context) error {
	if r.cache != nil {
		if err := r.cache.Warm(ctx, r.ranges...); err != nil {
			return err
		}
	}

	schedule, err := r.reports.PaymentSchedule(ctx)
	if err != nil {
		return err
	}

	r.log.WithFields(logrus.Fields{
		"as_of":         schedule.AsOf.Format("2006-01-02"),
		"unpaid":        len(schedule.Entries),
		"overdue":       schedule.Summary.OverdueCount,
		"total_overdue": schedule.Summary.TotalOverdue.String(),
	}).Info("данные обновлены")
	return nil
}

// Start запускает cron; расписание в формате robfig/cron ("@every 15m", "0 */1 * * *")
func (r *Refresher) Start(schedule string) error {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()
		if err := r.Refresh(ctx); err != nil {
			r.log.WithError(err).Error("ошибка обновления данных по расписанию")
		}
	})
	if err != nil {
		return err
	}
	r.cron = c
	c.Start()
	r.log.WithField("schedule", schedule).Info("обновление по расписанию запущено")
	return nil
}

// Stop дожидается завершения текущего запуска
func (r *Refresher) Stop() {
	if r.cron == nil {
		return
	}
	<-r.cron.Stop().Done()
}
