package common

import (
	"errors"
	"fmt"
)

// Stage sentinels. Every pipeline failure wraps exactly one of these so
// callers can classify it with errors.Is and render a user-facing message.
var (
	ErrAcquisition       = errors.New("acquisition failed")
	ErrExtraction        = errors.New("extraction failed")
	ErrFilterService     = errors.New("relevance filter service failed")
	ErrExtractionSchema  = errors.New("defect extraction schema mismatch")
	ErrExtractionService = errors.New("defect extraction service failed")
	ErrAssembly          = errors.New("report assembly failed")
	ErrInvalidInput      = errors.New("invalid input")
)

// AppError ties a stage sentinel to a message and the underlying cause.
type AppError struct {
	Kind    error
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes both the sentinel and the cause to errors.Is/As.
func (e *AppError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}

func NewAppError(kind error, message string, cause error) *AppError {
	return &AppError{Kind: kind, Message: message, Cause: cause}
}

// UserMessage renders a short message suitable for the end user. Stage
// details stay in the logs.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrAcquisition):
		return "Не удалось получить PDF по ссылке или из вложения."
	case errors.Is(err, ErrExtraction):
		return "Не удалось прочитать этот PDF."
	case errors.Is(err, ErrFilterService):
		return "Сервис семантического анализа недоступен, попробуйте позже."
	case errors.Is(err, ErrExtractionSchema):
		return "Сервис анализа вернул некорректный результат."
	case errors.Is(err, ErrExtractionService):
		return "Сервис анализа недоступен, попробуйте позже."
	case errors.Is(err, ErrAssembly):
		return "Не удалось сформировать файл отчета."
	default:
		return "Непредвиденная ошибка при обработке документа."
	}
}
