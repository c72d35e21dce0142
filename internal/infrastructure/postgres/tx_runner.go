package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/trade-ledger-api/internal/application/trade"
)

// Ensure TxRunner implements trade.TxRunner.
var _ trade.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repos trade.Repos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// NewRepos arma el conjunto de repositorios sobre un pool o una tx.
func NewRepos(q Querier) trade.Repos {
	return trade.Repos{
		Goods:        NewGoodRepository(q),
		Ledger:       NewStockLedger(q),
		Transactions: NewTransactionRepository(q),
		Acquirers:    NewAcquirerRepository(q),
		Suppliers:    NewSupplierRepository(q),
		Movements:    NewStockMovementRepository(q),
	}
}
