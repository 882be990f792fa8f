package domain

import "errors"

// ErrInvalidState — запись состояния ротации не соответствует схеме.
var ErrInvalidState = errors.New("invalid rotation state")

// SchemaError — ошибка схемы записи с указанием поля.
type SchemaError struct {
	Field   string // поле записи, вызвавшее ошибку
	Message string // описание ошибки
	Err     error  // базовая ошибка
}

// Error реализует интерфейс error.
func (e *SchemaError) Error() string {
	if e.Field != "" {
		return "invalid rotation state: " + e.Field + " " + e.Message
	}
	return "invalid rotation state: " + e.Message
}

// Unwrap возвращает базовую ошибку.
func (e *SchemaError) Unwrap() error {
	return e.Err
}

// Is позволяет проверять любую SchemaError через errors.Is(err, ErrInvalidState).
func (e *SchemaError) Is(target error) bool {
	return target == ErrInvalidState
}

// NewSchemaError создаёт ошибку схемы для поля.
func NewSchemaError(field, message string) *SchemaError {
	return &SchemaError{
		Field:   field,
		Message: message,
		Err:     ErrInvalidState,
	}
}
