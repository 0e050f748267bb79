package service

import (
	"context"
	"time"

	"github.com/alligatorO15/fin-reports/internal/config"
	"github.com/alligatorO15/fin-reports/internal/ledger"
	"github.com/alligatorO15/fin-reports/internal/models"
	"github.com/alligatorO15/fin-reports/internal/report"
	"github.com/alligatorO15/fin-reports/internal/sheets"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// ReportService каждый вызов читает свежий снимок строк (через кэш источника)
// и строит отчет по нему
type ReportService interface {
	ProfitAndLoss(ctx context.Context, year, month int) (*models.ProfitAndLossStatement, error)
	AnnualProfitAndLoss(ctx context.Context, year int) (*models.ProfitAndLossStatement, error)
	CashFlow(ctx context.Context, year int, month *int, cashAtBeginning *decimal.Decimal) (*models.CashFlowStatement, error)
	CashFlowDetails(ctx context.Context, year, month int, cashAtBeginning *decimal.Decimal) (*models.CashFlowDetails, error)
	PaymentSchedule(ctx context.Context) (*models.PaymentScheduleReport, error)
	Predict(ctx context.Context, req models.PredictionRequest) (*models.FuturePrediction, error)
	// Now текущее время сервиса, от него берется год по умолчанию и дата просрочки
	Now() time.Time
}

type ReportOption func(*reportService)

// WithClock подменяет часы сервиса
func WithClock(now func() time.Time) ReportOption {
	return func(s *reportService) {
		s.now = now
	}
}

type reportService struct {
	source         sheets.RowSource
	contractsRange sheets.NamedRange
	settingsRange  sheets.NamedRange
	places         int32
	lookback       int
	growthRate     decimal.Decimal
	log            *logrus.Logger
	now            func() time.Time
}

func NewReportService(source sheets.RowSource, cfg *config.Config, log *logrus.Logger, opts ...ReportOption) (ReportService, error) {
	contracts, err := sheets.ParseNamedRange(cfg.ContractsRange)
	if err != nil {
		return nil, err
	}
	settings, err := sheets.ParseNamedRange(cfg.SettingsRange)
	if err != nil {
		return nil, err
	}

	s := &reportService{
		source:         source,
		contractsRange: contracts,
		settingsRange:  settings,
		places:         cfg.CurrencyPlaces,
		lookback:       cfg.PredictionLookbackMonths,
		growthRate:     cfg.SimulationGrowthRate,
		log:            log,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *reportService) Now() time.Time {
	return s.now()
}

// loadEngine грузит оба диапазона параллельно и нормализует строки
func (s *reportService) loadEngine(ctx context.Context) (*report.Engine, error) {
	var contractRows, settingRows [][]interface{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := s.source.Rows(gctx, s.contractsRange)
		contractRows = rows
		return err
	})
	g.Go(func() error {
		rows, err := s.source.Rows(gctx, s.settingsRange)
		settingRows = rows
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	contracts := ledger.NormalizeContracts(contractRows, s.now())
	settings := ledger.NormalizeSimulationSettings(settingRows)

	s.log.WithFields(logrus.Fields{
		"contract_rows": len(contractRows),
		"contracts":     len(contracts),
		"setting_rows":  len(settingRows),
		"settings":      len(settings),
	}).Debug("данные для отчета загружены")

	return report.NewEngine(contracts, settings, report.WithCurrencyPlaces(s.places)), nil
}

func (s *reportService) ProfitAndLoss(ctx context.Context, year, month int) (*models.ProfitAndLossStatement, error) {
	if err := validateYearMonth(year, &month); err != nil {
		return nil, err
	}
	engine, err := s.loadEngine(ctx)
	if err != nil {
		return nil, err
	}
	return engine.ProfitAndLoss(year, month)
}

func (s *reportService) AnnualProfitAndLoss(ctx context.Context, year int) (*models.ProfitAndLossStatement, error) {
	if err := validateYearMonth(year, nil); err != nil {
		return nil, err
	}
	engine, err := s.loadEngine(ctx)
	if err != nil {
		return nil, err
	}
	return engine.AnnualProfitAndLoss(year)
}

func (s *reportService) CashFlow(ctx context.Context, year int, month *int, cashAtBeginning *decimal.Decimal) (*models.CashFlowStatement, error) {
	if err := validateYearMonth(year, month); err != nil {
		return nil, err
	}
	engine, err := s.loadEngine(ctx)
	if err != nil {
		return nil, err
	}
	return engine.CashFlowStatement(year, month, cashAtBeginning)
}

func (s *reportService) CashFlowDetails(ctx context.Context, year, month int, cashAtBeginning *decimal.Decimal) (*models.CashFlowDetails, error) {
	if err := validateYearMonth(year, &month); err != nil {
		return nil, err
	}
	engine, err := s.loadEngine(ctx)
	if err != nil {
		return nil, err
	}
	return engine.CashFlowDetails(year, month, cashAtBeginning, s.now())
}

func (s *reportService) PaymentSchedule(ctx context.Context) (*models.PaymentScheduleReport, error) {
	engine, err := s.loadEngine(ctx)
	if err != nil {
		return nil, err
	}
	asOf := s.now()
	entries := engine.PaymentSchedule(asOf)
	return &models.PaymentScheduleReport{
		AsOf:    models.TruncateDay(asOf),
		Entries: entries,
		Summary: report.SummarizeSchedule(entries),
	}, nil
}

// Predict незаданные lookback и рост берутся из конфигурации
func (s *reportService) Predict(ctx context.Context, req models.PredictionRequest) (*models.FuturePrediction, error) {
	if req.Mode == models.PredictionModeActual && req.LookbackMonths == 0 {
		req.LookbackMonths = s.lookback
	}
	if req.Mode == models.PredictionModeSimulation && req.GrowthRate == nil {
		growth := s.growthRate
		req.GrowthRate = &growth
	}
	if err := report.ValidatePredictionRequest(req); err != nil {
		return nil, err
	}

	engine, err := s.loadEngine(ctx)
	if err != nil {
		return nil, err
	}
	return engine.PredictFutureCashFlow(req)
}

func validateYearMonth(year int, month *int) error {
	if err := report.ValidateYear(year); err != nil {
		return err
	}
	if month != nil {
		return report.ValidateMonth(*month)
	}
	return nil
}
