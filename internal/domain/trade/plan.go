package trade

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/jhoicas/trade-ledger-api/internal/domain"
	"github.com/jhoicas/trade-ledger-api/internal/domain/entity"
)

// StockChange variación pendiente del stock de un bien.
type StockChange struct {
	GoodID int64
	Delta  int
}

// Plan conjunto de cambios de stock ya validados, ordenados por GoodID.
// Construirlo no toca estado mutable; solo Apply lo hace.
type Plan struct {
	Changes []StockChange
}

// Empty indica que no hay nada que aplicar.
func (p Plan) Empty() bool { return len(p.Changes) == 0 }

// Line línea de un pedido ya resuelta contra su bien.
type Line struct {
	Good     *entity.Good
	Quantity int
}

// Adjuster es el subconjunto del StockLedger que necesita Apply.
type Adjuster interface {
	AdjustStock(ctx context.Context, goodID int64, delta int) (int, error)
}

// PlanCreation valida todas las líneas y devuelve el plan de stock junto con las líneas
// con el precio capturado. Si alguna línea falla no se devuelve plan.
func PlanCreation(t entity.TransactionType, lines []Line) (Plan, []entity.TransactionItem, error) {
	if len(lines) == 0 {
		return Plan{}, nil, domain.ErrMissingParameter
	}
	goods := make(map[int64]*entity.Good, len(lines))
	deltas := make(map[int64]int, len(lines))
	items := make([]entity.TransactionItem, 0, len(lines))
	for _, l := range lines {
		if l.Good == nil {
			return Plan{}, nil, domain.ErrGoodNotFound
		}
		if l.Quantity < 1 || l.Quantity > entity.MaxStock {
			return Plan{}, nil, fmt.Errorf("%w: cantidad %d para %q", domain.ErrInvalidInput, l.Quantity, l.Good.Name)
		}
		goods[l.Good.ID] = l.Good
		deltas[l.Good.ID] += t.Delta(l.Quantity)
		items = append(items, entity.TransactionItem{
			GoodID:             l.Good.ID,
			Quantity:           l.Quantity,
			PriceAtTransaction: l.Good.Value,
		})
	}
	plan := newPlan(deltas)
	if err := plan.check(goods); err != nil {
		return Plan{}, nil, err
	}
	return plan, items, nil
}

// PlanReversal calcula la inversa de los efectos de tx. Los bienes que ya no existen
// (ausentes en goods) se omiten y se devuelven en skipped.
func PlanReversal(tx *entity.Transaction, goods map[int64]*entity.Good) (Plan, []int64, error) {
	deltas := make(map[int64]int, len(tx.Items))
	var skipped []int64
	for _, it := range tx.Items {
		if goods[it.GoodID] == nil {
			skipped = append(skipped, it.GoodID)
			continue
		}
		deltas[it.GoodID] -= tx.Type.Delta(it.Quantity)
	}
	plan := newPlan(deltas)
	if err := plan.check(goods); err != nil {
		return Plan{}, skipped, err
	}
	return plan, skipped, nil
}

// Apply ejecuta el plan contra el ledger en orden de GoodID.
func (p Plan) Apply(ctx context.Context, ledger Adjuster) error {
	for _, c := range p.Changes {
		if c.Delta == 0 {
			continue
		}
		if _, err := ledger.AdjustStock(ctx, c.GoodID, c.Delta); err != nil {
			return fmt.Errorf("ajustar stock de %d: %w", c.GoodID, err)
		}
	}
	return nil
}

func newPlan(deltas map[int64]int) Plan {
	changes := make([]StockChange, 0, len(deltas))
	for id, d := range deltas {
		changes = append(changes, StockChange{GoodID: id, Delta: d})
	}
	sort.Slice(changes, func(i, j int) bool { return changes[i].GoodID < changes[j].GoodID })
	return Plan{Changes: changes}
}

// check garantiza 0 <= stock <= entity.MaxStock tras aplicar cada cambio.
func (p Plan) check(goods map[int64]*entity.Good) error {
	for _, c := range p.Changes {
		g := goods[c.GoodID]
		if g == nil {
			return &domain.GoodNotFoundError{Ref: strconv.FormatInt(c.GoodID, 10)}
		}
		if g.Stock+c.Delta < 0 {
			return &domain.InsufficientStockError{
				GoodID:    g.ID,
				GoodName:  g.Name,
				Available: g.Stock,
				Requested: -c.Delta,
			}
		}
		if g.Stock+c.Delta > entity.MaxStock {
			return fmt.Errorf("%w: el stock de %q superaría %d", domain.ErrInvalidInput, g.Name, entity.MaxStock)
		}
	}
	return nil
}
