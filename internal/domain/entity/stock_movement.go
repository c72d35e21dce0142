package entity

import "time"

// MovementReason origen de un movimiento de stock.
type MovementReason string

const (
	MovementApply   MovementReason = "apply"   // efecto de una transacción creada o actualizada
	MovementReverse MovementReason = "reverse" // reversión por actualización o eliminación
)

// StockMovement registro inmutable de un ajuste de stock hecho por el motor.
// TransactionID no es una referencia viva: la transacción puede haberse eliminado.
type StockMovement struct {
	ID            string
	GoodID        int64
	TransactionID string
	Reason        MovementReason
	Delta         int // positivo entrada, negativo salida
	StockAfter    int
	CreatedAt     time.Time
}
