package repository

import (
	"context"

	"github.com/jhoicas/trade-ledger-api/internal/domain/entity"
)

// StockMovementRepository historial de ajustes de stock. Solo se inserta; nunca se modifica.
type StockMovementRepository interface {
	Create(ctx context.Context, m *entity.StockMovement) error
	// ListByGood devuelve los movimientos de un bien, más recientes primero.
	ListByGood(ctx context.Context, goodID int64, limit, offset int) ([]*entity.StockMovement, error)
	// ListByTransaction devuelve los movimientos de una transacción en orden de registro.
	ListByTransaction(ctx context.Context, transactionID string) ([]*entity.StockMovement, error)
}
