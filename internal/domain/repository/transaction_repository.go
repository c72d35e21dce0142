package repository

import (
	"context"
	"time"

	"github.com/jhoicas/trade-ledger-api/internal/domain/entity"
)

// TransactionFilter filtros del ledger. Campos nil/vacíos no filtran.
type TransactionFilter struct {
	Clients []entity.ClientRef
	From    *time.Time // inclusivo
	To      *time.Time // inclusivo
	Type    entity.TransactionType
	Limit   int // 0 = sin límite
	Offset  int
}

// TransactionRepository define el puerto de persistencia del ledger de transacciones.
type TransactionRepository interface {
	Create(ctx context.Context, tx *entity.Transaction) error
	GetByID(ctx context.Context, id string) (*entity.Transaction, error)
	// GetForUpdate obtiene la transacción bloqueando su fila.
	GetForUpdate(ctx context.Context, id string) (*entity.Transaction, error)
	// Replace sobrescribe la transacción completa (tipo, cliente, ítems, total, fecha).
	Replace(ctx context.Context, tx *entity.Transaction) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter TransactionFilter) ([]*entity.Transaction, error)
}
