package trade

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/trade-ledger-api/internal/domain/entity"
	"github.com/jhoicas/trade-ledger-api/internal/domain/repository"
)

// movementLedger envuelve el StockLedger y registra cada ajuste como StockMovement
// dentro de la misma unidad de trabajo.
type movementLedger struct {
	ledger    repository.StockLedger
	movements repository.StockMovementRepository
	txID      string
	reason    entity.MovementReason
	at        time.Time
}

func (e *Engine) ledger(r Repos, txID string, reason entity.MovementReason) *movementLedger {
	return &movementLedger{ledger: r.Ledger, movements: r.Movements, txID: txID, reason: reason, at: e.now()}
}

func (l *movementLedger) AdjustStock(ctx context.Context, goodID int64, delta int) (int, error) {
	after, err := l.ledger.AdjustStock(ctx, goodID, delta)
	if err != nil {
		return 0, err
	}
	if l.movements == nil {
		return after, nil
	}
	m := &entity.StockMovement{
		ID:            uuid.NewString(),
		GoodID:        goodID,
		TransactionID: l.txID,
		Reason:        l.reason,
		Delta:         delta,
		StockAfter:    after,
		CreatedAt:     l.at,
	}
	if err := l.movements.Create(ctx, m); err != nil {
		return 0, fmt.Errorf("registrar movimiento de %d: %w", goodID, err)
	}
	return after, nil
}
