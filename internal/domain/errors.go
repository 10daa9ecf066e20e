package domain

import (
	"errors"
	"fmt"
)

// Tipos de error del dominio (sin dependencias externas).
// Se comparan con errors.Is; el mensaje concreto viaja en *Error.
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrInvalidTransition = errors.New("transición de estado inválida")
	ErrValidation        = errors.New("entrada inválida")
	ErrConflict          = errors.New("conflicto con el estado actual")
)

// Error lleva el tipo (Kind) y un mensaje legible que la capa de presentación muestra tal cual.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.Error()
	}
	return e.Message
}

// Unwrap permite errors.Is(err, domain.ErrNotFound), etc.
func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NotFound id referenciado inexistente.
func NotFound(format string, args ...any) error { return newError(ErrNotFound, format, args...) }

// Unauthorized el rol o alcance del actor no permite la operación.
func Unauthorized(format string, args ...any) error {
	return newError(ErrUnauthorized, format, args...)
}

// InvalidTransition cambio de estado que viola el orden o una precondición de fase.
func InvalidTransition(format string, args ...any) error {
	return newError(ErrInvalidTransition, format, args...)
}

// Validation entrada mal formada, independiente de la autorización.
func Validation(format string, args ...any) error { return newError(ErrValidation, format, args...) }

// Conflict violación de unicidad o de versión.
func Conflict(format string, args ...any) error { return newError(ErrConflict, format, args...) }

// KindOf devuelve el tipo de error de dominio o nil si err no es de dominio.
func KindOf(err error) error {
	for _, kind := range []error{ErrNotFound, ErrUnauthorized, ErrInvalidTransition, ErrValidation, ErrConflict} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
