package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrMissingParameter   = errors.New("parámetro requerido ausente")
	ErrInternalStorage    = errors.New("error interno de almacenamiento")
	ErrDuplicateRequest   = errors.New("solicitud duplicada en curso")

	ErrInvalidTransactionType = errors.New("tipo de transacción inválido")
	ErrClientNotFound         = errors.New("cliente no encontrado")
	ErrGoodNotFound           = errors.New("bien no encontrado")
	ErrTransactionNotFound    = errors.New("transacción no encontrada")

	// ErrUpdateReversed: la actualización revirtió el stock original y no pudo reaplicar los nuevos ítems.
	ErrUpdateReversed = errors.New("actualización revertida sin reaplicar; requiere conciliación manual")
)

// InsufficientStockError detalla el faltante de un bien concreto. errors.Is(err, ErrInsufficientStock) es true.
type InsufficientStockError struct {
	GoodID    int64
	GoodName  string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %q (id %d): disponible %d, solicitado %d",
		e.GoodName, e.GoodID, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// GoodNotFoundError identifica la referencia que no resolvió (id o nombre).
type GoodNotFoundError struct {
	Ref string
}

func (e *GoodNotFoundError) Error() string {
	return fmt.Sprintf("bien no encontrado: %s", e.Ref)
}

func (e *GoodNotFoundError) Unwrap() error { return ErrGoodNotFound }

// UpdateReversedError se devuelve cuando una actualización dejó el stock revertido sin reaplicar.
// Coincide tanto con ErrUpdateReversed como con la causa original vía errors.Is.
type UpdateReversedError struct {
	TransactionID string
	Cause         error
}

func (e *UpdateReversedError) Error() string {
	return fmt.Sprintf("transacción %s: %s: %v", e.TransactionID, ErrUpdateReversed.Error(), e.Cause)
}

func (e *UpdateReversedError) Unwrap() []error { return []error{ErrUpdateReversed, e.Cause} }

// IsClientError indica si el error proviene de la entrada del cliente (HTTP 400).
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidTransactionType) ||
		errors.Is(err, ErrInsufficientStock) ||
		errors.Is(err, ErrMissingParameter) ||
		errors.Is(err, ErrInvalidInput)
}

// IsNotFound indica si el error corresponde a un recurso inexistente (HTTP 404).
func IsNotFound(err error) bool {
	return errors.Is(err, ErrClientNotFound) ||
		errors.Is(err, ErrGoodNotFound) ||
		errors.Is(err, ErrTransactionNotFound) ||
		errors.Is(err, ErrNotFound)
}
