package postgres

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/trade-ledger-api/internal/domain"
	"github.com/jhoicas/trade-ledger-api/internal/domain/entity"
	"github.com/jhoicas/trade-ledger-api/internal/domain/repository"
)

var _ repository.GoodRepository = (*GoodRepo)(nil)

const goodColumns = `id, name, material, weight, value, stock, created_at, updated_at`

// GoodRepo implementación de GoodRepository sobre PostgreSQL (usable con pool o tx).
type GoodRepo struct {
	q Querier
}

// NewGoodRepository construye el adaptador. Pasar pool o tx (Querier).
func NewGoodRepository(q Querier) *GoodRepo {
	return &GoodRepo{q: q}
}

// Create persiste un nuevo bien con su stock inicial.
func (r *GoodRepo) Create(ctx context.Context, g *entity.Good) error {
	query := `
		INSERT INTO goods (id, name, material, weight, value, stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now(), now())
		RETURNING created_at, updated_at`
	err := r.q.QueryRow(ctx, query, g.ID, g.Name, string(g.Material), g.Weight, g.Value, g.Stock).
		Scan(&g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: bien %d / %q", domain.ErrDuplicate, g.ID, g.Name)
		}
		if isCheckViolation(err) {
			return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		return fmt.Errorf("insert good: %w", err)
	}
	return nil
}

// GetByID obtiene un bien por ID.
func (r *GoodRepo) GetByID(ctx context.Context, id int64) (*entity.Good, error) {
	query := `SELECT ` + goodColumns + ` FROM goods WHERE id = $1`
	return r.getOne(ctx, query, id)
}

// GetByName obtiene un bien por nombre exacto.
func (r *GoodRepo) GetByName(ctx context.Context, name string) (*entity.Good, error) {
	query := `SELECT ` + goodColumns + ` FROM goods WHERE name = $1`
	return r.getOne(ctx, query, name)
}

// GetForUpdate bloquea las filas de los bienes (SELECT FOR UPDATE) en orden ascendente de id.
func (r *GoodRepo) GetForUpdate(ctx context.Context, ids []int64) (map[int64]*entity.Good, error) {
	ids = uniqueSorted(ids)
	out := make(map[int64]*entity.Good, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	query := `SELECT ` + goodColumns + ` FROM goods WHERE id = ANY($1) ORDER BY id FOR UPDATE`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("lock goods: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		g, err := scanGood(rows)
		if err != nil {
			return nil, fmt.Errorf("scan good: %w", err)
		}
		out[g.ID] = g
	}
	return out, rows.Err()
}

// List lista bienes filtrando por nombre (parcial, sin mayúsculas) y material.
func (r *GoodRepo) List(ctx context.Context, f repository.GoodFilter) ([]*entity.Good, error) {
	var (
		where []string
		args  []any
	)
	if f.Name != "" {
		args = append(args, "%"+strings.TrimSpace(f.Name)+"%")
		where = append(where, "name ILIKE $"+strconv.Itoa(len(args)))
	}
	if f.Material != "" {
		args = append(args, string(f.Material))
		where = append(where, "material = $"+strconv.Itoa(len(args)))
	}
	query := `SELECT ` + goodColumns + ` FROM goods`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id" + pageClause(f.Limit, f.Offset, &args)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list goods: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Good, 0)
	for rows.Next() {
		g, err := scanGood(rows)
		if err != nil {
			return nil, fmt.Errorf("scan good: %w", err)
		}
		list = append(list, g)
	}
	return list, rows.Err()
}

// Update modifica nombre, material, peso y valor. El stock no se toca.
func (r *GoodRepo) Update(ctx context.Context, g *entity.Good) error {
	query := `
		UPDATE goods SET name = $2, material = $3, weight = $4, value = $5, updated_at = now()
		WHERE id = $1
		RETURNING stock, created_at, updated_at`
	err := r.q.QueryRow(ctx, query, g.ID, g.Name, string(g.Material), g.Weight, g.Value).
		Scan(&g.Stock, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: bien %d", domain.ErrNotFound, g.ID)
		}
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: bien con nombre %q", domain.ErrDuplicate, g.Name)
		}
		return fmt.Errorf("update good: %w", err)
	}
	return nil
}

// Delete elimina un bien por ID.
func (r *GoodRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM goods WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete good: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: bien %d", domain.ErrNotFound, id)
	}
	return nil
}

func (r *GoodRepo) getOne(ctx context.Context, query string, arg any) (*entity.Good, error) {
	g, err := scanGood(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get good: %w", err)
	}
	return g, nil
}

func scanGood(row pgx.Row) (*entity.Good, error) {
	var (
		g        entity.Good
		material string
	)
	if err := row.Scan(&g.ID, &g.Name, &material, &g.Weight, &g.Value, &g.Stock, &g.CreatedAt, &g.UpdatedAt); err != nil {
		return nil, err
	}
	g.Material = entity.Material(material)
	return &g, nil
}

func uniqueSorted(ids []int64) []int64 {
	out := append([]int64(nil), ids...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	n := 0
	for i, id := range out {
		if i == 0 || id != out[n-1] {
			out[n] = id
			n++
		}
	}
	return out[:n]
}

// pageClause agrega LIMIT/OFFSET parametrizados. limit <= 0 no limita.
func pageClause(limit, offset int, args *[]any) string {
	var clause string
	if limit > 0 {
		*args = append(*args, limit)
		clause += " LIMIT $" + strconv.Itoa(len(*args))
	}
	if offset > 0 {
		*args = append(*args, offset)
		clause += " OFFSET $" + strconv.Itoa(len(*args))
	}
	return clause
}
