// Package memory implementa los puertos de persistencia en memoria (desarrollo y tests).
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/trade-ledger-api/internal/application/trade"
	"github.com/jhoicas/trade-ledger-api/internal/domain/entity"
)

var _ trade.TxRunner = (*Store)(nil)

// Store almacén en memoria. Las escrituras de una unidad de trabajo se simulan con snapshot + rollback.
type Store struct {
	mu    sync.RWMutex
	state state
	now   func() time.Time
}

type state struct {
	goods        map[int64]entity.Good
	acquirers    map[string]entity.Acquirer
	suppliers    map[string]entity.Supplier
	transactions map[string]entity.Transaction
	movements    []entity.StockMovement
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		state: state{
			goods:        make(map[int64]entity.Good),
			acquirers:    make(map[string]entity.Acquirer),
			suppliers:    make(map[string]entity.Supplier),
			transactions: make(map[string]entity.Transaction),
		},
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Repos repositorios fuera de transacción; cada llamada toma el lock por separado.
func (s *Store) Repos() trade.Repos {
	return s.repos(&view{s: s})
}

// Run ejecuta fn con el almacén bloqueado. Si fn falla se restaura el estado previo.
func (s *Store) Run(_ context.Context, fn func(r trade.Repos) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.state.clone()
	if err := fn(s.repos(&view{s: s, inTx: true})); err != nil {
		s.state = snap
		return err
	}
	return nil
}

func (s *Store) repos(v *view) trade.Repos {
	return trade.Repos{
		Goods:        &GoodRepository{v: v},
		Ledger:       &StockLedger{v: v},
		Transactions: &TransactionRepository{v: v},
		Acquirers:    &AcquirerRepository{v: v},
		Suppliers:    &SupplierRepository{v: v},
		Movements:    &StockMovementRepository{v: v},
	}
}

// view decide si cada operación debe tomar el lock o si ya lo tiene la unidad de trabajo.
type view struct {
	s    *Store
	inTx bool
}

func (v *view) read() func() {
	if v.inTx {
		return func() {}
	}
	v.s.mu.RLock()
	return v.s.mu.RUnlock
}

func (v *view) write() func() {
	if v.inTx {
		return func() {}
	}
	v.s.mu.Lock()
	return v.s.mu.Unlock
}

func (st state) clone() state {
	c := state{
		goods:        make(map[int64]entity.Good, len(st.goods)),
		acquirers:    make(map[string]entity.Acquirer, len(st.acquirers)),
		suppliers:    make(map[string]entity.Supplier, len(st.suppliers)),
		transactions: make(map[string]entity.Transaction, len(st.transactions)),
		movements:    append([]entity.StockMovement(nil), st.movements...),
	}
	for k, v := range st.goods {
		c.goods[k] = v
	}
	for k, v := range st.acquirers {
		c.acquirers[k] = v
	}
	for k, v := range st.suppliers {
		c.suppliers[k] = v
	}
	for k, v := range st.transactions {
		c.transactions[k] = cloneTx(v)
	}
	return c
}

func page[T any](rows []T, limit, offset int) []T {
	if offset >= len(rows) {
		return []T{}
	}
	rows = rows[offset:]
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows
}
