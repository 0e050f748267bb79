package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alligatorO15/fin-reports/internal/models"
	"github.com/alligatorO15/fin-reports/internal/sheets"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SheetRowRepository хранит строки диапазонов таблицы, загруженные через API.
// Реализует sheets.RowSource, поэтому отчеты могут строиться без доступа к таблице.
type SheetRowRepository interface {
	Rows(ctx context.Context, rng sheets.NamedRange) ([][]interface{}, error)
	Replace(ctx context.Context, rng sheets.NamedRange, rows [][]interface{}) (*models.SheetImport, error)
	LastImport(ctx context.Context, rng sheets.NamedRange) (*models.SheetImport, error)
}

type sheetRowRepository struct {
	pool *pgxpool.Pool
}

func NewSheetRowRepository(pool *pgxpool.Pool) SheetRowRepository {
	return &sheetRowRepository{pool: pool}
}

func (r *sheetRowRepository) db(ctx context.Context) DBTX {
	return GetTxOrPool(ctx, r.pool)
}

func (r *sheetRowRepository) Rows(ctx context.Context, rng sheets.NamedRange) ([][]interface{}, error) {
	query := `
		SELECT cells
		FROM sheet_rows
		WHERE range_name = $1
		ORDER BY row_index
	`

	rows, err := r.db(ctx).Query(ctx, query, rng.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([][]interface{}, 0)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		cells, err := decodeCells(raw)
		if err != nil {
			return nil, fmt.Errorf("строка диапазона %s: %w", rng, err)
		}
		result = append(result, cells)
	}
	return result, rows.Err()
}

// Replace заменяет все строки диапазона и пишет запись о загрузке.
// Вызывать внутри TxManager.WithLockedTx с ключом диапазона.
func (r *sheetRowRepository) Replace(ctx context.Context, rng sheets.NamedRange, rows [][]interface{}) (*models.SheetImport, error) {
	imp := &models.SheetImport{
		ID:         uuid.New(),
		Range:      rng.String(),
		RowCount:   len(rows),
		ImportedAt: time.Now(),
	}

	if _, err := r.db(ctx).Exec(ctx, `DELETE FROM sheet_rows WHERE range_name = $1`, imp.Range); err != nil {
		return nil, err
	}

	copyRows := make([][]interface{}, 0, len(rows))
	for i, cells := range rows {
		raw, err := encodeCells(cells)
		if err != nil {
			return nil, fmt.Errorf("строка %d: %w", i+1, err)
		}
		copyRows = append(copyRows, []interface{}{imp.Range, i, raw, imp.ID})
	}

	if len(copyRows) > 0 {
		_, err := r.db(ctx).CopyFrom(ctx,
			pgx.Identifier{"sheet_rows"},
			[]string{"range_name", "row_index", "cells", "import_id"},
			pgx.CopyFromRows(copyRows),
		)
		if err != nil {
			return nil, err
		}
	}

	query := `
		INSERT INTO sheet_imports (id, range_name, row_count, imported_at)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := r.db(ctx).Exec(ctx, query, imp.ID, imp.Range, imp.RowCount, imp.ImportedAt); err != nil {
		return nil, err
	}

	return imp, nil
}

func (r *sheetRowRepository) LastImport(ctx context.Context, rng sheets.NamedRange) (*models.SheetImport, error) {
	query := `
		SELECT id, range_name, row_count, imported_at
		FROM sheet_imports
		WHERE range_name = $1
		ORDER BY imported_at DESC
		LIMIT 1
	`

	var imp models.SheetImport
	err := r.db(ctx).QueryRow(ctx, query, rng.String()).Scan(
		&imp.ID, &imp.Range, &imp.RowCount, &imp.ImportedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &imp, nil
}

// encodeCells ячейки строки в текст для колонки JSONB; пустая строка хранится как []
func encodeCells(cells []interface{}) (string, error) {
	if cells == nil {
		cells = []interface{}{}
	}
	raw, err := json.Marshal(cells)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// decodeCells числа остаются json.Number, как в ответе HTTP-источника
func decodeCells(raw []byte) ([]interface{}, error) {
	var cells []interface{}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&cells); err != nil {
		return nil, err
	}
	if cells == nil {
		cells = []interface{}{}
	}
	return cells, nil
}
