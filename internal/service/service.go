package service

import (
	"github.com/alligatorO15/fin-reports/internal/config"
	"github.com/alligatorO15/fin-reports/internal/repository"
	"github.com/alligatorO15/fin-reports/internal/sheets"
	"github.com/sirupsen/logrus"
)

type Services struct {
	Auth      AuthService
	Reports   ReportService
	Import    ImportService // nil, если строки берутся не из postgres
	Refresher *Refresher
}

// NewServices repos == nil для SOURCE_DRIVER=sheets, cache == nil для CACHE_DRIVER=none
func NewServices(repos *repository.Repositories, source sheets.RowSource, cache RowCache, cfg *config.Config, log *logrus.Logger, opts ...ReportOption) (*Services, error) {
	reports, err := NewReportService(source, cfg, log, opts...)
	if err != nil {
		return nil, err
	}

	ranges, err := configuredRanges(cfg)
	if err != nil {
		return nil, err
	}

	services := &Services{
		Auth:      NewAuthService(cfg.JWTSecret),
		Reports:   reports,
		Refresher: NewRefresher(cache, reports, ranges, log),
	}
	if repos != nil {
		services.Import = NewImportService(repos.TxManager, repos.SheetRows, cache, ranges, log)
	}
	return services, nil
}

func configuredRanges(cfg *config.Config) ([]sheets.NamedRange, error) {
	ranges := make([]sheets.NamedRange, 0, 2)
	for _, s := range []string{cfg.ContractsRange, cfg.SettingsRange} {
		rng, err := sheets.ParseNamedRange(s)
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, rng)
	}
	return ranges, nil
}
