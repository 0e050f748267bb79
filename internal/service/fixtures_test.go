package service

import (
	"context"
	"sync"
	"time"

	"github.com/alligatorO15/fin-reports/internal/config"
	"github.com/alligatorO15/fin-reports/internal/models"
	"github.com/alligatorO15/fin-reports/internal/sheets"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var fixedNow = time.Date(2025, 7, 5, 10, 0, 0, 0, time.UTC)

func testConfig() *config.Config {
	return &config.Config{
		ContractsRange:           "Contracts!A1:P",
		SettingsRange:            "Simulation!A1:D",
		CurrencyPlaces:           0,
		PredictionLookbackMonths: 3,
		SimulationGrowthRate:     decimal.NewFromInt(10),
	}
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func contractRow(cells ...interface{}) []interface{} {
	row := make([]interface{}, 16)
	copy(row, cells)
	return row
}

// fakeSource строки по имени диапазона, считает обращения
type fakeSource struct {
	mu    sync.Mutex
	data  map[string][][]interface{}
	err   error
	calls int
}

func newFakeSource() *fakeSource {
	return &fakeSource{data: map[string][][]interface{}{
		"Contracts!A1:P": {
			{"id", "company", "category", "contract_date", "amount"},
			contractRow("1", "Acme", "magazine", "2025-06-15", "100000", "bank", nil, nil, nil, nil, "2025-06-30", "2025-06-20"),
			contractRow("2", "Beta", "partner", "2025-06-05", "20000", "bank", nil, nil, nil, nil, "2025-06-30"),
			contractRow("bad", "Broken"),
		},
		"Simulation!A1:D": {
			{"item", "ratio", "minimum", "notes"},
			{"rent", "10", "5000", ""},
		},
	}}
}

func (s *fakeSource) Rows(_ context.Context, rng sheets.NamedRange) ([][]interface{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.data[rng.String()], nil
}

func (s *fakeSource) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// fakeTxManager без БД: просто вызывает fn
type fakeTxManager struct {
	calls  int
	locked []string
}

func (m *fakeTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

func (m *fakeTxManager) WithLockedTx(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	m.locked = append(m.locked, key)
	return m.WithTx(ctx, fn)
}

type fakeSheetRows struct {
	replaced map[string][][]interface{}
	err      error
}

func (r *fakeSheetRows) Rows(_ context.Context, rng sheets.NamedRange) ([][]interface{}, error) {
	return r.replaced[rng.String()], nil
}

func (r *fakeSheetRows) Replace(_ context.Context, rng sheets.NamedRange, rows [][]interface{}) (*models.SheetImport, error) {
	if r.err != nil {
		return nil, r.err
	}
	if r.replaced == nil {
		r.replaced = make(map[string][][]interface{})
	}
	r.replaced[rng.String()] = rows
	return &models.SheetImport{ID: uuid.New(), Range: rng.String(), RowCount: len(rows), ImportedAt: fixedNow}, nil
}

func (r *fakeSheetRows) LastImport(_ context.Context, rng sheets.NamedRange) (*models.SheetImport, error) {
	rows, ok := r.replaced[rng.String()]
	if !ok {
		return nil, nil
	}
	return &models.SheetImport{Range: rng.String(), RowCount: len(rows)}, nil
}

type fakeRowCache struct {
	invalidated []string
	warmed      int
}

func (c *fakeRowCache) Invalidate(_ context.Context, rng sheets.NamedRange) error {
	c.invalidated = append(c.invalidated, rng.String())
	return nil
}

func (c *fakeRowCache) Warm(_ context.Context, ranges ...sheets.NamedRange) error {
	c.warmed += len(ranges)
	return nil
}
