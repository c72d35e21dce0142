package trade

import (
	"context"
	"fmt"

	"github.com/jhoicas/trade-ledger-api/internal/domain"
	"github.com/jhoicas/trade-ledger-api/internal/domain/entity"
)

// CreateOnce crea la transacción una sola vez por clave de idempotencia.
// Si la clave ya se completó devuelve la transacción original con replayed=true;
// si sigue en curso devuelve ErrDuplicateRequest. Sin clave (o sin store) equivale a Create.
func (e *Engine) CreateOnce(ctx context.Context, key string, in TransactionInput) (tx *entity.Transaction, replayed bool, err error) {
	if key == "" || e.idem == nil {
		tx, err = e.Create(ctx, in)
		return tx, false, err
	}

	existingID, reserved, err := e.idem.Reserve(ctx, key)
	if err != nil {
		return nil, false, fmt.Errorf("%w: reservar clave de idempotencia: %v", domain.ErrInternalStorage, err)
	}
	if !reserved {
		if existingID == "" {
			return nil, false, fmt.Errorf("%w: clave %q", domain.ErrDuplicateRequest, key)
		}
		tx, err = e.load(ctx, existingID)
		if err != nil {
			return nil, false, err
		}
		return tx, true, nil
	}

	tx, err = e.Create(ctx, in)
	if err != nil {
		if rerr := e.idem.Release(ctx, key); rerr != nil {
			e.log.Warn().Err(rerr).Str("idempotency_key", key).Msg("no se pudo liberar la clave de idempotencia")
		}
		return nil, false, err
	}
	if cerr := e.idem.Complete(ctx, key, tx.ID); cerr != nil {
		e.log.Warn().Err(cerr).Str("idempotency_key", key).Str("transaction_id", tx.ID).
			Msg("no se pudo completar la clave de idempotencia")
	}
	return tx, false, nil
}

func (e *Engine) load(ctx context.Context, id string) (*entity.Transaction, error) {
	var tx *entity.Transaction
	err := e.runner.Run(ctx, func(r Repos) error {
		got, err := r.Transactions.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("obtener transacción: %w", err)
		}
		tx = got
		return nil
	})
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrTransactionNotFound, id)
	}
	return tx, nil
}
