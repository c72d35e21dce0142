package memory

import (
	"context"

	"github.com/jhoicas/trade-ledger-api/internal/domain/entity"
	"github.com/jhoicas/trade-ledger-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepository)(nil)

// StockMovementRepository historial de movimientos en memoria, en orden de inserción.
type StockMovementRepository struct {
	v *view
}

func (r *StockMovementRepository) Create(_ context.Context, m *entity.StockMovement) error {
	defer r.v.write()()
	r.v.s.state.movements = append(r.v.s.state.movements, *m)
	return nil
}

func (r *StockMovementRepository) ListByGood(_ context.Context, goodID int64, limit, offset int) ([]*entity.StockMovement, error) {
	defer r.v.read()()
	all := r.v.s.state.movements
	var out []*entity.StockMovement
	for i := len(all) - 1; i >= 0; i-- {
		if all[i].GoodID == goodID {
			m := all[i]
			out = append(out, &m)
		}
	}
	return page(out, limit, offset), nil
}

func (r *StockMovementRepository) ListByTransaction(_ context.Context, transactionID string) ([]*entity.StockMovement, error) {
	defer r.v.read()()
	var out []*entity.StockMovement
	for _, m := range r.v.s.state.movements {
		if m.TransactionID == transactionID {
			m := m
			out = append(out, &m)
		}
	}
	return out, nil
}
