package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/trade-ledger-api/internal/domain"
	"github.com/jhoicas/trade-ledger-api/internal/domain/repository"
)

var _ repository.StockLedger = (*StockLedger)(nil)

// StockLedger único punto de escritura de goods.stock. Incremento atómico en una sola sentencia.
type StockLedger struct {
	q Querier
}

// NewStockLedger construye el adaptador. Pasar pool o tx (Querier).
func NewStockLedger(q Querier) *StockLedger {
	return &StockLedger{q: q}
}

// AdjustStock suma delta al stock. El CHECK (stock >= 0) de la tabla es la última barrera.
func (l *StockLedger) AdjustStock(ctx context.Context, goodID int64, delta int) (int, error) {
	query := `UPDATE goods SET stock = stock + $2, updated_at = now() WHERE id = $1 RETURNING stock`
	var stock int
	err := l.q.QueryRow(ctx, query, goodID, delta).Scan(&stock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("%w: %d", domain.ErrGoodNotFound, goodID)
		}
		if isCheckViolation(err) {
			return 0, &domain.InsufficientStockError{GoodID: goodID, Requested: -delta}
		}
		if isNumericOutOfRange(err) {
			return 0, fmt.Errorf("%w: stock de %d fuera de rango", domain.ErrInvalidInput, goodID)
		}
		return 0, fmt.Errorf("adjust stock: %w", err)
	}
	return stock, nil
}
