package repository

import (
	"context"

	"github.com/jhoicas/trade-ledger-api/internal/domain/entity"
)

// GoodFilter filtros para listar bienes.
type GoodFilter struct {
	Name     string // coincidencia parcial, sin distinguir mayúsculas
	Material entity.Material
	Limit    int
	Offset   int
}

// GoodRepository define el puerto de persistencia para Good (DIP).
// No expone escritura de Stock: eso es exclusivo de StockLedger.
type GoodRepository interface {
	Create(ctx context.Context, good *entity.Good) error
	GetByID(ctx context.Context, id int64) (*entity.Good, error)
	GetByName(ctx context.Context, name string) (*entity.Good, error)
	// GetForUpdate bloquea las filas de los bienes (SELECT FOR UPDATE) en orden de id.
	// Los ids inexistentes simplemente no aparecen en el mapa.
	GetForUpdate(ctx context.Context, ids []int64) (map[int64]*entity.Good, error)
	List(ctx context.Context, filter GoodFilter) ([]*entity.Good, error)
	// Update modifica nombre, material, peso y valor. Nunca el stock.
	Update(ctx context.Context, good *entity.Good) error
	Delete(ctx context.Context, id int64) error
}
