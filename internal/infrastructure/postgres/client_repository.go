package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/trade-ledger-api/internal/domain"
	"github.com/jhoicas/trade-ledger-api/internal/domain/entity"
	"github.com/jhoicas/trade-ledger-api/internal/domain/repository"
)

var (
	_ repository.AcquirerRepository = (*AcquirerRepo)(nil)
	_ repository.SupplierRepository = (*SupplierRepo)(nil)
)

// clientRow columnas comunes de acquirers y suppliers.
type clientRow struct {
	ID        string
	Name      string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// clientTable acceso genérico a una de las dos tablas de contrapartes.
type clientTable struct {
	q     Querier
	table string
}

func (t clientTable) create(ctx context.Context, c *clientRow) error {
	query := `INSERT INTO ` + t.table + ` (id, name, notes, created_at, updated_at)
		VALUES ($1, $2, $3, now(), now()) RETURNING created_at, updated_at`
	if err := t.q.QueryRow(ctx, query, c.ID, c.Name, c.Notes).Scan(&c.CreatedAt, &c.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s %q", domain.ErrDuplicate, t.table, c.Name)
		}
		return fmt.Errorf("insert %s: %w", t.table, err)
	}
	return nil
}

func (t clientTable) getOne(ctx context.Context, column string, arg any) (*clientRow, error) {
	query := `SELECT id, name, notes, created_at, updated_at FROM ` + t.table + ` WHERE ` + column + ` = $1`
	var c clientRow
	err := t.q.QueryRow(ctx, query, arg).Scan(&c.ID, &c.Name, &c.Notes, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s: %w", t.table, err)
	}
	return &c, nil
}

func (t clientTable) getByID(ctx context.Context, id string) (*clientRow, error) {
	// Un id que no es uuid no puede existir; se evita el error de cast de Postgres.
	if !isUUID(id) {
		return nil, nil
	}
	return t.getOne(ctx, "id", id)
}

func (t clientTable) list(ctx context.Context, limit, offset int) ([]clientRow, error) {
	var args []any
	query := `SELECT id, name, notes, created_at, updated_at FROM ` + t.table + ` ORDER BY name` +
		pageClause(limit, offset, &args)
	rows, err := t.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", t.table, err)
	}
	defer rows.Close()
	list := make([]clientRow, 0)
	for rows.Next() {
		var c clientRow
		if err := rows.Scan(&c.ID, &c.Name, &c.Notes, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan %s: %w", t.table, err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (t clientTable) delete(ctx context.Context, id string) error {
	if !isUUID(id) {
		return fmt.Errorf("%w: %s %s", domain.ErrNotFound, t.table, id)
	}
	tag, err := t.q.Exec(ctx, `DELETE FROM `+t.table+` WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", t.table, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s %s", domain.ErrNotFound, t.table, id)
	}
	return nil
}

// AcquirerRepo implementación de AcquirerRepository (usable con pool o tx).
type AcquirerRepo struct {
	t clientTable
}

// NewAcquirerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAcquirerRepository(q Querier) *AcquirerRepo {
	return &AcquirerRepo{t: clientTable{q: q, table: "acquirers"}}
}

func (r *AcquirerRepo) Create(ctx context.Context, a *entity.Acquirer) error {
	row := clientRow{ID: a.ID, Name: a.Name, Notes: a.Notes}
	if err := r.t.create(ctx, &row); err != nil {
		return err
	}
	a.CreatedAt, a.UpdatedAt = row.CreatedAt, row.UpdatedAt
	return nil
}

func (r *AcquirerRepo) GetByID(ctx context.Context, id string) (*entity.Acquirer, error) {
	c, err := r.t.getByID(ctx, id)
	return toAcquirer(c), err
}

func (r *AcquirerRepo) GetByName(ctx context.Context, name string) (*entity.Acquirer, error) {
	c, err := r.t.getOne(ctx, "name", name)
	return toAcquirer(c), err
}

func (r *AcquirerRepo) List(ctx context.Context, limit, offset int) ([]*entity.Acquirer, error) {
	rows, err := r.t.list(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Acquirer, 0, len(rows))
	for i := range rows {
		out = append(out, toAcquirer(&rows[i]))
	}
	return out, nil
}

func (r *AcquirerRepo) Delete(ctx context.Context, id string) error { return r.t.delete(ctx, id) }

// SupplierRepo implementación de SupplierRepository (usable con pool o tx).
type SupplierRepo struct {
	t clientTable
}

// NewSupplierRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{t: clientTable{q: q, table: "suppliers"}}
}

func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	row := clientRow{ID: s.ID, Name: s.Name, Notes: s.Notes}
	if err := r.t.create(ctx, &row); err != nil {
		return err
	}
	s.CreatedAt, s.UpdatedAt = row.CreatedAt, row.UpdatedAt
	return nil
}

func (r *SupplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	c, err := r.t.getByID(ctx, id)
	return toSupplier(c), err
}

func (r *SupplierRepo) GetByName(ctx context.Context, name string) (*entity.Supplier, error) {
	c, err := r.t.getOne(ctx, "name", name)
	return toSupplier(c), err
}

func (r *SupplierRepo) List(ctx context.Context, limit, offset int) ([]*entity.Supplier, error) {
	rows, err := r.t.list(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Supplier, 0, len(rows))
	for i := range rows {
		out = append(out, toSupplier(&rows[i]))
	}
	return out, nil
}

func (r *SupplierRepo) Delete(ctx context.Context, id string) error { return r.t.delete(ctx, id) }

func toAcquirer(c *clientRow) *entity.Acquirer {
	if c == nil {
		return nil
	}
	return &entity.Acquirer{ID: c.ID, Name: c.Name, Notes: c.Notes, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}
}

func toSupplier(c *clientRow) *entity.Supplier {
	if c == nil {
		return nil
	}
	return &entity.Supplier{ID: c.ID, Name: c.Name, Notes: c.Notes, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}
}
