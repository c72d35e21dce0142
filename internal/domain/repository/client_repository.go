package repository

import (
	"context"

	"github.com/jhoicas/trade-ledger-api/internal/domain/entity"
)

// AcquirerRepository define el puerto de persistencia para compradores.
type AcquirerRepository interface {
	Create(ctx context.Context, a *entity.Acquirer) error
	GetByID(ctx context.Context, id string) (*entity.Acquirer, error)
	GetByName(ctx context.Context, name string) (*entity.Acquirer, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Acquirer, error)
	Delete(ctx context.Context, id string) error
}

// SupplierRepository define el puerto de persistencia para proveedores.
type SupplierRepository interface {
	Create(ctx context.Context, s *entity.Supplier) error
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
	GetByName(ctx context.Context, name string) (*entity.Supplier, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Supplier, error)
	Delete(ctx context.Context, id string) error
}
