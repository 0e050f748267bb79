package service

import (
	"context"
	"fmt"

	"github.com/alligatorO15/fin-reports/internal/models"
	"github.com/alligatorO15/fin-reports/internal/repository"
	"github.com/alligatorO15/fin-reports/internal/sheets"
	"github.com/sirupsen/logrus"
)

// ImportService загружает строки диапазона в postgres (SOURCE_DRIVER=postgres)
type ImportService interface {
	ImportRange(ctx context.Context, rangeName string, rows [][]interface{}) (*models.SheetImport, error)
	LastImport(ctx context.Context, rangeName string) (*models.SheetImport, error)
}

// RowCache кэш строк поверх источника
type RowCache interface {
	Invalidate(ctx context.Context, rng sheets.NamedRange) error
	Warm(ctx context.Context, ranges ...sheets.NamedRange) error
}

type importService struct {
	txManager repository.TxManager
	rows      repository.SheetRowRepository
	cache     RowCache
	allowed   map[string]sheets.NamedRange
	log       *logrus.Logger
}

func NewImportService(txManager repository.TxManager, rows repository.SheetRowRepository, cache RowCache, ranges []sheets.NamedRange, log *logrus.Logger) ImportService {
	allowed := make(map[string]sheets.NamedRange, len(ranges))
	for _, r := range ranges {
		allowed[r.String()] = r
	}
	return &importService{
		txManager: txManager,
		rows:      rows,
		cache:     cache,
		allowed:   allowed,
		log:       log,
	}
}

// resolve принимаются только диапазоны из конфигурации
func (s *importService) resolve(rangeName string) (sheets.NamedRange, error) {
	rng, err := sheets.ParseNamedRange(rangeName)
	if err != nil {
		return sheets.NamedRange{}, models.NewValidationError("range", "%v", err)
	}
	if _, ok := s.allowed[rng.String()]; !ok {
		return sheets.NamedRange{}, models.NewValidationError("range", "unknown range %q", rng.String())
	}
	return rng, nil
}

func (s *importService) ImportRange(ctx context.Context, rangeName string, rows [][]interface{}) (*models.SheetImport, error) {
	rng, err := s.resolve(rangeName)
	if err != nil {
		return nil, err
	}

	var imp *models.SheetImport
	err = s.txManager.WithLockedTx(ctx, rng.String(), func(ctx context.Context) error {
		var err error
		imp, err = s.rows.Replace(ctx, rng, rows)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("импорт %s: %w", rng, err)
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, rng); err != nil {
			s.log.WithError(err).WithField("range", rng.String()).Warn("не удалось сбросить кэш после импорта")
		}
	}

	s.log.WithFields(logrus.Fields{
		"range":     imp.Range,
		"rows":      imp.RowCount,
		"import_id": imp.ID.String(),
	}).Info("диапазон импортирован")

	return imp, nil
}

func (s *importService) LastImport(ctx context.Context, rangeName string) (*models.SheetImport, error) {
	rng, err := s.resolve(rangeName)
	if err != nil {
		return nil, err
	}
	return s.rows.LastImport(ctx, rng)
}
