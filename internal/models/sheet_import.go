package models

import (
	"time"

	"github.com/google/uuid"
)

// SheetImport одна загрузка строк диапазона в БД
type SheetImport struct {
	ID         uuid.UUID `json:"id"`
	Range      string    `json:"range"`
	RowCount   int       `json:"row_count"`
	ImportedAt time.Time `json:"imported_at"`
}
