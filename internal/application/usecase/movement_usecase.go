package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/trade-ledger-api/internal/application/dto"
	"github.com/jhoicas/trade-ledger-api/internal/domain"
	"github.com/jhoicas/trade-ledger-api/internal/domain/entity"
	"github.com/jhoicas/trade-ledger-api/internal/domain/repository"
)

// StockMovementUseCase consulta el historial de ajustes de stock.
type StockMovementUseCase struct {
	movements    repository.StockMovementRepository
	goods        repository.GoodRepository
	transactions repository.TransactionRepository
}

// NewStockMovementUseCase construye el caso de uso.
func NewStockMovementUseCase(movements repository.StockMovementRepository, goods repository.GoodRepository, transactions repository.TransactionRepository) *StockMovementUseCase {
	return &StockMovementUseCase{movements: movements, goods: goods, transactions: transactions}
}

// ListByGood historial de un bien. Un bien eliminado conserva su historial;
// ErrGoodNotFound solo si no existe y no tiene movimientos.
func (uc *StockMovementUseCase) ListByGood(ctx context.Context, goodID int64, page dto.PageRequest) (*dto.StockMovementListResponse, error) {
	page.DefaultPage()
	list, err := uc.movements.ListByGood(ctx, goodID, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("%w: movimientos del bien %d: %v", domain.ErrInternalStorage, goodID, err)
	}
	if len(list) == 0 && page.Offset == 0 {
		good, err := uc.goods.GetByID(ctx, goodID)
		if err != nil {
			return nil, fmt.Errorf("%w: obtener bien: %v", domain.ErrInternalStorage, err)
		}
		if good == nil {
			return nil, fmt.Errorf("%w: %d", domain.ErrGoodNotFound, goodID)
		}
	}
	return &dto.StockMovementListResponse{
		Items: movementResponses(list),
		Page:  &dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// ListByTransaction movimientos generados por una transacción, incluida una ya eliminada.
func (uc *StockMovementUseCase) ListByTransaction(ctx context.Context, transactionID string) (*dto.StockMovementListResponse, error) {
	list, err := uc.movements.ListByTransaction(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("%w: movimientos de la transacción %s: %v", domain.ErrInternalStorage, transactionID, err)
	}
	if len(list) == 0 {
		tx, err := uc.transactions.GetByID(ctx, transactionID)
		if err != nil {
			return nil, fmt.Errorf("%w: obtener transacción: %v", domain.ErrInternalStorage, err)
		}
		if tx == nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrTransactionNotFound, transactionID)
		}
	}
	return &dto.StockMovementListResponse{Items: movementResponses(list)}, nil
}

func movementResponses(list []*entity.StockMovement) []dto.StockMovementResponse {
	out := make([]dto.StockMovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.StockMovementResponse{
			ID:            m.ID,
			GoodID:        m.GoodID,
			TransactionID: m.TransactionID,
			Reason:        string(m.Reason),
			Delta:         m.Delta,
			StockAfter:    m.StockAfter,
			CreatedAt:     m.CreatedAt,
		})
	}
	return out
}
