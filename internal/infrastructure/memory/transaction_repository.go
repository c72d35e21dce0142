package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/trade-ledger-api/internal/domain"
	"github.com/jhoicas/trade-ledger-api/internal/domain/entity"
	"github.com/jhoicas/trade-ledger-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepository)(nil)

// TransactionRepository implementación en memoria del ledger de transacciones.
type TransactionRepository struct {
	v *view
}

func (r *TransactionRepository) Create(_ context.Context, tx *entity.Transaction) error {
	defer r.v.write()()
	if _, ok := r.v.s.state.transactions[tx.ID]; ok {
		return fmt.Errorf("%w: transacción %s", domain.ErrDuplicate, tx.ID)
	}
	r.v.s.state.transactions[tx.ID] = cloneTx(*tx)
	return nil
}

func (r *TransactionRepository) GetByID(_ context.Context, id string) (*entity.Transaction, error) {
	defer r.v.read()()
	tx, ok := r.v.s.state.transactions[id]
	if !ok {
		return nil, nil
	}
	c := cloneTx(tx)
	return &c, nil
}

func (r *TransactionRepository) GetForUpdate(ctx context.Context, id string) (*entity.Transaction, error) {
	return r.GetByID(ctx, id)
}

func (r *TransactionRepository) Replace(_ context.Context, tx *entity.Transaction) error {
	defer r.v.write()()
	if _, ok := r.v.s.state.transactions[tx.ID]; !ok {
		return fmt.Errorf("%w: transacción %s", domain.ErrNotFound, tx.ID)
	}
	r.v.s.state.transactions[tx.ID] = cloneTx(*tx)
	return nil
}

func (r *TransactionRepository) Delete(_ context.Context, id string) error {
	defer r.v.write()()
	if _, ok := r.v.s.state.transactions[id]; !ok {
		return fmt.Errorf("%w: transacción %s", domain.ErrNotFound, id)
	}
	delete(r.v.s.state.transactions, id)
	return nil
}

// List devuelve las transacciones que cumplen el filtro, más recientes primero.
func (r *TransactionRepository) List(_ context.Context, f repository.TransactionFilter) ([]*entity.Transaction, error) {
	defer r.v.read()()
	clients := make(map[entity.ClientRef]bool, len(f.Clients))
	for _, c := range f.Clients {
		clients[c] = true
	}
	rows := make([]*entity.Transaction, 0)
	for _, tx := range r.v.s.state.transactions {
		if len(clients) > 0 && !clients[tx.Client] {
			continue
		}
		if f.From != nil && tx.Timestamp.Before(*f.From) {
			continue
		}
		if f.To != nil && tx.Timestamp.After(*f.To) {
			continue
		}
		if f.Type != "" && tx.Type != f.Type {
			continue
		}
		c := cloneTx(tx)
		rows = append(rows, &c)
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].Timestamp.Equal(rows[j].Timestamp) {
			return rows[i].Timestamp.After(rows[j].Timestamp)
		}
		return rows[i].ID < rows[j].ID
	})
	return page(rows, f.Limit, f.Offset), nil
}

func cloneTx(tx entity.Transaction) entity.Transaction {
	tx.Items = append([]entity.TransactionItem(nil), tx.Items...)
	return tx
}
