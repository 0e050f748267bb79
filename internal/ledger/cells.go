package ledger

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/width"
)

// серийные даты таблиц считаются от 30.12.1899
var serialEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// 9999-12-31 в серийном формате
const maxSerialDay = 2958465

var dateLayouts = []string{
	"2006-01-02",
	"2006-1-2",
	"2006/01/02",
	"2006/1/2",
	"2006.01.02",
	"2006.1.2",
	"2006年1月2日",
	"2006-01-02 15:04:05",
	"2006/1/2 15:04:05",
	"2006/1/2 15:04",
	time.RFC3339,
}

// cell безопасно достает значение ячейки, короткие строки дополняются пустыми ячейками
func cell(row []interface{}, idx int) interface{} {
	if idx < 0 || idx >= len(row) {
		return nil
	}
	return row[idx]
}

func cellString(row []interface{}, idx int) string {
	switch v := cell(row, idx).(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	case time.Time:
		return v.Format("2006-01-02")
	default:
		return ""
	}
}

// normalizeNumber убирает разделители тысяч, валюту, проценты и приводит полноширинные цифры к ASCII
func normalizeNumber(s string) string {
	s = width.Narrow.String(strings.TrimSpace(s))
	return strings.Map(func(r rune) rune {
		switch r {
		case ',', ' ', '\u00a0', '%', '¥', '$', '€', '円', '+':
			return -1
		}
		return r
	}, s)
}

// cellDecimal разбирает число; ok=false если ячейка пустая или не число
func cellDecimal(row []interface{}, idx int) (decimal.Decimal, bool) {
	switch v := cell(row, idx).(type) {
	case nil:
		return decimal.Zero, false
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat(v), true
	case int:
		return decimal.NewFromInt(int64(v)), true
	case int64:
		return decimal.NewFromInt(v), true
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		return d, err == nil
	case string:
		s := normalizeNumber(v)
		if s == "" {
			return decimal.Zero, false
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	default:
		return decimal.Zero, false
	}
}

// cellPositiveInt для идентификаторов: только целое число больше нуля
func cellPositiveInt(row []interface{}, idx int) (int, bool) {
	d, ok := cellDecimal(row, idx)
	if !ok || !d.IsInteger() || !d.IsPositive() {
		return 0, false
	}
	if d.GreaterThan(decimal.NewFromInt(math.MaxInt32)) {
		return 0, false
	}
	return int(d.IntPart()), true
}

func cellInt(row []interface{}, idx int) (int, bool) {
	d, ok := cellDecimal(row, idx)
	if !ok {
		return 0, false
	}
	if d.Abs().GreaterThan(decimal.NewFromInt(math.MaxInt32)) {
		return 0, false
	}
	return int(d.Round(0).IntPart()), true
}

// cellDate возвращает nil если дату разобрать не удалось
func cellDate(row []interface{}, idx int) *time.Time {
	var t time.Time
	switch v := cell(row, idx).(type) {
	case time.Time:
		if v.IsZero() {
			return nil
		}
		t = v
	case float64:
		parsed, ok := serialDate(v)
		if !ok {
			return nil
		}
		t = parsed
	case int:
		parsed, ok := serialDate(float64(v))
		if !ok {
			return nil
		}
		t = parsed
	case int64:
		parsed, ok := serialDate(float64(v))
		if !ok {
			return nil
		}
		t = parsed
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return nil
		}
		parsed, ok := serialDate(f)
		if !ok {
			return nil
		}
		t = parsed
	case string:
		parsed, ok := parseDateString(v)
		if !ok {
			return nil
		}
		t = parsed
	default:
		return nil
	}
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &day
}

func serialDate(v float64) (time.Time, bool) {
	if math.IsNaN(v) || v < 1 || v > maxSerialDay {
		return time.Time{}, false
	}
	return serialEpoch.AddDate(0, 0, int(math.Floor(v))), true
}

func parseDateString(s string) (time.Time, bool) {
	s = width.Narrow.String(strings.TrimSpace(s))
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
