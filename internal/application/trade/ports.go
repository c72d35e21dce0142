package trade

import (
	"context"

	"github.com/jhoicas/trade-ledger-api/internal/domain/repository"
)

// Repos repositorios atados a una misma unidad de trabajo.
type Repos struct {
	Goods        repository.GoodRepository
	Ledger       repository.StockLedger
	Transactions repository.TransactionRepository
	Acquirers    repository.AcquirerRepository
	Suppliers    repository.SupplierRepository
	Movements    repository.StockMovementRepository
}

// TxRunner ejecuta una función dentro de una transacción de almacenamiento, pasando repositorios atados a esa tx.
// Si fn devuelve error no queda ningún efecto; si devuelve nil todo se confirma junto.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}

// IdempotencyStore reserva claves de idempotencia para POST /api/transactions.
type IdempotencyStore interface {
	// Reserve intenta tomar la clave. Si ya existía devuelve reserved=false y, si la
	// solicitud original terminó, el id de la transacción creada.
	Reserve(ctx context.Context, key string) (existingTxID string, reserved bool, err error)
	// Complete asocia la clave con la transacción creada.
	Complete(ctx context.Context, key, txID string) error
	// Release libera la clave tras un fallo para permitir reintentos.
	Release(ctx context.Context, key string) error
}
