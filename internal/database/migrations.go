package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

func RunMigrations(ctx context.Context, pool *pgxpool.Pool, log *logrus.Logger) error {
	log.Info("применяем миграции")

	migrations := []string{
		migrationCreateSheetImports,
		migrationCreateSheetRows,
		migrationCreateIndexes,
	}

	for i, migration := range migrations {
		if _, err := pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	log.WithField("count", len(migrations)).Info("миграции применены")
	return nil
}

const migrationCreateSheetImports = `
CREATE TABLE IF NOT EXISTS sheet_imports (
    id UUID PRIMARY KEY,
    range_name VARCHAR(255) NOT NULL,
    row_count INTEGER NOT NULL DEFAULT 0,
    imported_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// строки хранятся как есть (JSON-массив ячеек), разбор делает ledger
const migrationCreateSheetRows = `
CREATE TABLE IF NOT EXISTS sheet_rows (
    range_name VARCHAR(255) NOT NULL,
    row_index INTEGER NOT NULL,
    cells JSONB NOT NULL DEFAULT '[]'::jsonb,
    import_id UUID NOT NULL REFERENCES sheet_imports(id) ON DELETE CASCADE DEFERRABLE INITIALLY DEFERRED,
    PRIMARY KEY (range_name, row_index)
);
`

const migrationCreateIndexes = `
CREATE INDEX IF NOT EXISTS idx_sheet_imports_range ON sheet_imports(range_name, imported_at DESC);
CREATE INDEX IF NOT EXISTS idx_sheet_rows_import_id ON sheet_rows(import_id);
`
