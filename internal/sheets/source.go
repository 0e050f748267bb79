// Package sheets загружает сырые строки таблиц (договоры, настройки симуляции)
// из внешнего источника и кэширует их.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrUpstream источник данных недоступен или ответил ошибкой
var ErrUpstream = errors.New("upstream source error")

// RowSource отдает строки диапазона как есть, без разбора
type RowSource interface {
	Rows(ctx context.Context, rng NamedRange) ([][]interface{}, error)
}

// NamedRange диапазон вида "Contracts!A1:P"
type NamedRange struct {
	Sheet string
	Cells string
}

func ParseNamedRange(s string) (NamedRange, error) {
	s = strings.TrimSpace(s)
	sheet, cells, ok := strings.Cut(s, "!")
	sheet = strings.Trim(strings.TrimSpace(sheet), "'")
	if !ok || sheet == "" || strings.TrimSpace(cells) == "" {
		return NamedRange{}, fmt.Errorf("некорректный диапазон %q, ожидается Лист!A1:P", s)
	}
	return NamedRange{Sheet: sheet, Cells: strings.TrimSpace(cells)}, nil
}

func (r NamedRange) String() string {
	return r.Sheet + "!" + r.Cells
}

// UpstreamError оборачивает ответ источника с кодом статуса
type UpstreamError struct {
	Range  NamedRange
	Status int
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("источник %s: статус %d", e.Range, e.Status)
	}
	return fmt.Sprintf("источник %s: %v", e.Range, e.Err)
}

func (e *UpstreamError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrUpstream}
	}
	return []error{ErrUpstream, e.Err}
}
