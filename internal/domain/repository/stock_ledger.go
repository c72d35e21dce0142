package repository

import "context"

// StockLedger es el único punto de escritura del stock de un bien.
// AdjustStock suma delta (positivo o negativo) de forma atómica y devuelve el stock resultante.
// Devuelve domain.ErrGoodNotFound si el id no existe. No decide el signo: eso lo hace el motor.
type StockLedger interface {
	AdjustStock(ctx context.Context, goodID int64, delta int) (int, error)
}
