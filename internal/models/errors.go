package models

import (
	"errors"
	"fmt"
)

// ErrValidation ошибка входных параметров: год, месяц, горизонт, режим
var ErrValidation = errors.New("validation failed")

// ValidationError указывает какой параметр запроса неверен
type ValidationError struct {
	Param   string
	Message string
}

func NewValidationError(param, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Param: param, Message: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Param, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
