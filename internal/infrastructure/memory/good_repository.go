package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jhoicas/trade-ledger-api/internal/domain"
	"github.com/jhoicas/trade-ledger-api/internal/domain/entity"
	"github.com/jhoicas/trade-ledger-api/internal/domain/repository"
)

var (
	_ repository.GoodRepository = (*GoodRepository)(nil)
	_ repository.StockLedger    = (*StockLedger)(nil)
)

// GoodRepository implementación en memoria de repository.GoodRepository.
type GoodRepository struct {
	v *view
}

func (r *GoodRepository) Create(_ context.Context, g *entity.Good) error {
	defer r.v.write()()
	st := &r.v.s.state
	if _, ok := st.goods[g.ID]; ok {
		return fmt.Errorf("%w: bien con id %d", domain.ErrDuplicate, g.ID)
	}
	if findGood(st, g.Name) != nil {
		return fmt.Errorf("%w: bien con nombre %q", domain.ErrDuplicate, g.Name)
	}
	now := r.v.s.now()
	g.CreatedAt, g.UpdatedAt = now, now
	st.goods[g.ID] = *g
	return nil
}

func (r *GoodRepository) GetByID(_ context.Context, id int64) (*entity.Good, error) {
	defer r.v.read()()
	g, ok := r.v.s.state.goods[id]
	if !ok {
		return nil, nil
	}
	return &g, nil
}

func (r *GoodRepository) GetByName(_ context.Context, name string) (*entity.Good, error) {
	defer r.v.read()()
	return findGood(&r.v.s.state, name), nil
}

// GetForUpdate dentro de una unidad de trabajo el almacén entero ya está bloqueado.
func (r *GoodRepository) GetForUpdate(_ context.Context, ids []int64) (map[int64]*entity.Good, error) {
	defer r.v.read()()
	out := make(map[int64]*entity.Good, len(ids))
	for _, id := range ids {
		if g, ok := r.v.s.state.goods[id]; ok {
			out[id] = &g
		}
	}
	return out, nil
}

func (r *GoodRepository) List(_ context.Context, f repository.GoodFilter) ([]*entity.Good, error) {
	defer r.v.read()()
	name := strings.ToLower(strings.TrimSpace(f.Name))
	rows := make([]*entity.Good, 0, len(r.v.s.state.goods))
	for _, g := range r.v.s.state.goods {
		if name != "" && !strings.Contains(strings.ToLower(g.Name), name) {
			continue
		}
		if f.Material != "" && g.Material != f.Material {
			continue
		}
		g := g
		rows = append(rows, &g)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
	return page(rows, f.Limit, f.Offset), nil
}

func (r *GoodRepository) Update(_ context.Context, g *entity.Good) error {
	defer r.v.write()()
	st := &r.v.s.state
	cur, ok := st.goods[g.ID]
	if !ok {
		return fmt.Errorf("%w: bien %d", domain.ErrNotFound, g.ID)
	}
	if other := findGood(st, g.Name); other != nil && other.ID != g.ID {
		return fmt.Errorf("%w: bien con nombre %q", domain.ErrDuplicate, g.Name)
	}
	cur.Name, cur.Material, cur.Weight, cur.Value = g.Name, g.Material, g.Weight, g.Value
	cur.UpdatedAt = r.v.s.now()
	st.goods[g.ID] = cur
	*g = cur
	return nil
}

func (r *GoodRepository) Delete(_ context.Context, id int64) error {
	defer r.v.write()()
	if _, ok := r.v.s.state.goods[id]; !ok {
		return fmt.Errorf("%w: bien %d", domain.ErrNotFound, id)
	}
	delete(r.v.s.state.goods, id)
	return nil
}

func findGood(st *state, name string) *entity.Good {
	for _, g := range st.goods {
		if g.Name == name {
			g := g
			return &g
		}
	}
	return nil
}

// StockLedger implementación en memoria de repository.StockLedger.
type StockLedger struct {
	v *view
}

// AdjustStock suma delta al stock del bien. Nunca deja stock negativo.
func (l *StockLedger) AdjustStock(_ context.Context, goodID int64, delta int) (int, error) {
	defer l.v.write()()
	g, ok := l.v.s.state.goods[goodID]
	if !ok {
		return 0, fmt.Errorf("%w: %d", domain.ErrGoodNotFound, goodID)
	}
	if g.Stock+delta < 0 {
		return 0, &domain.InsufficientStockError{GoodID: g.ID, GoodName: g.Name, Available: g.Stock, Requested: -delta}
	}
	g.Stock += delta
	g.UpdatedAt = l.v.s.now()
	l.v.s.state.goods[goodID] = g
	return g.Stock, nil
}
