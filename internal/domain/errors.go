package domain

import (
	"errors"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrInvalidQuantity    = errors.New("cantidad inválida")
	ErrStockLimit         = errors.New("el stock superaría el máximo permitido")
)

// ValidationError agrupa los mensajes de validación por campo. errors.Is(err, ErrInvalidInput) es true.
type ValidationError struct {
	Details []string
}

// NewValidationError construye el error con los mensajes indicados.
func NewValidationError(details ...string) *ValidationError {
	return &ValidationError{Details: details}
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 0 {
		return ErrInvalidInput.Error()
	}
	return strings.Join(e.Details, ", ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }
