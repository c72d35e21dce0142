package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/trade-ledger-api/internal/domain"
	"github.com/jhoicas/trade-ledger-api/internal/domain/entity"
	"github.com/jhoicas/trade-ledger-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

const transactionColumns = `id, type, client_kind, client_id, status, occurred_at, total_amount, created_at, updated_at`

// TransactionRepo implementación del ledger de transacciones (cabecera + transaction_items).
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// Create persiste la cabecera y sus líneas. Debe ejecutarse dentro de una tx para ser atómico.
func (r *TransactionRepo) Create(ctx context.Context, tx *entity.Transaction) error {
	query := `
		INSERT INTO transactions (id, type, client_kind, client_id, status, occurred_at, total_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		tx.ID, string(tx.Type), string(tx.Client.Kind()), tx.Client.ID(), string(tx.Status),
		tx.Timestamp, tx.TotalAmount, tx.CreatedAt, tx.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: transacción %s", domain.ErrDuplicate, tx.ID)
		}
		return fmt.Errorf("insert transaction: %w", err)
	}
	return r.insertItems(ctx, tx)
}

// GetByID obtiene una transacción con sus líneas.
func (r *TransactionRepo) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	return r.getOne(ctx, id, "")
}

// GetForUpdate obtiene la transacción bloqueando su fila.
func (r *TransactionRepo) GetForUpdate(ctx context.Context, id string) (*entity.Transaction, error) {
	return r.getOne(ctx, id, " FOR UPDATE")
}

// Replace sobrescribe cabecera y líneas.
func (r *TransactionRepo) Replace(ctx context.Context, tx *entity.Transaction) error {
	query := `
		UPDATE transactions
		SET type = $2, client_kind = $3, client_id = $4, status = $5, occurred_at = $6, total_amount = $7, updated_at = $8
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		tx.ID, string(tx.Type), string(tx.Client.Kind()), tx.Client.ID(), string(tx.Status),
		tx.Timestamp, tx.TotalAmount, tx.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: transacción %s", domain.ErrNotFound, tx.ID)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM transaction_items WHERE transaction_id = $1`, tx.ID); err != nil {
		return fmt.Errorf("delete transaction items: %w", err)
	}
	return r.insertItems(ctx, tx)
}

// Delete elimina la transacción; las líneas caen por ON DELETE CASCADE.
func (r *TransactionRepo) Delete(ctx context.Context, id string) error {
	if !isUUID(id) {
		return fmt.Errorf("%w: transacción %s", domain.ErrNotFound, id)
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: transacción %s", domain.ErrNotFound, id)
	}
	return nil
}

// List devuelve las transacciones que cumplen el filtro, más recientes primero.
func (r *TransactionRepo) List(ctx context.Context, f repository.TransactionFilter) ([]*entity.Transaction, error) {
	var (
		where []string
		args  []any
	)
	if len(f.Clients) > 0 {
		var ors []string
		for _, c := range f.Clients {
			args = append(args, string(c.Kind()), c.ID())
			ors = append(ors, fmt.Sprintf("(client_kind = $%d AND client_id = $%d)", len(args)-1, len(args)))
		}
		where = append(where, "("+strings.Join(ors, " OR ")+")")
	}
	if f.From != nil {
		args = append(args, *f.From)
		where = append(where, "occurred_at >= $"+strconv.Itoa(len(args)))
	}
	if f.To != nil {
		args = append(args, *f.To)
		where = append(where, "occurred_at <= $"+strconv.Itoa(len(args)))
	}
	if f.Type != "" {
		args = append(args, string(f.Type))
		where = append(where, "type = $"+strconv.Itoa(len(args)))
	}
	query := `SELECT ` + transactionColumns + ` FROM transactions`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY occurred_at DESC, id" + pageClause(f.Limit, f.Offset, &args)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	list := make([]*entity.Transaction, 0)
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, tx)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	if err := r.loadItems(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *TransactionRepo) getOne(ctx context.Context, id, lock string) (*entity.Transaction, error) {
	if !isUUID(id) {
		return nil, nil
	}
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1` + lock
	tx, err := scanTransaction(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	if err := r.loadItems(ctx, []*entity.Transaction{tx}); err != nil {
		return nil, err
	}
	return tx, nil
}

// insertItems inserta las líneas en un solo batch.
func (r *TransactionRepo) insertItems(ctx context.Context, tx *entity.Transaction) error {
	batch := &pgx.Batch{}
	for i, it := range tx.Items {
		batch.Queue(`
			INSERT INTO transaction_items (transaction_id, line_no, good_id, quantity, price_at_transaction)
			VALUES ($1, $2, $3, $4, $5)`,
			tx.ID, i+1, it.GoodID, it.Quantity, it.PriceAtTransaction)
	}
	br := r.q.SendBatch(ctx, batch)
	defer br.Close()
	for range tx.Items {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("insert transaction item: %w", err)
		}
	}
	return nil
}

func (r *TransactionRepo) loadItems(ctx context.Context, list []*entity.Transaction) error {
	if len(list) == 0 {
		return nil
	}
	byID := make(map[string]*entity.Transaction, len(list))
	ids := make([]string, 0, len(list))
	for _, tx := range list {
		byID[tx.ID] = tx
		ids = append(ids, tx.ID)
	}
	rows, err := r.q.Query(ctx, `
		SELECT transaction_id, good_id, quantity, price_at_transaction
		FROM transaction_items WHERE transaction_id = ANY($1::uuid[])
		ORDER BY transaction_id, line_no`, ids)
	if err != nil {
		return fmt.Errorf("get transaction items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			txID string
			it   entity.TransactionItem
		)
		if err := rows.Scan(&txID, &it.GoodID, &it.Quantity, &it.PriceAtTransaction); err != nil {
			return fmt.Errorf("scan transaction item: %w", err)
		}
		if tx := byID[txID]; tx != nil {
			tx.Items = append(tx.Items, it)
		}
	}
	return rows.Err()
}

func scanTransaction(row pgx.Row) (*entity.Transaction, error) {
	var (
		tx                     entity.Transaction
		typ, kind, cid, status string
	)
	if err := row.Scan(&tx.ID, &typ, &kind, &cid, &status, &tx.Timestamp, &tx.TotalAmount, &tx.CreatedAt, &tx.UpdatedAt); err != nil {
		return nil, err
	}
	ref, err := entity.ParseClientRef(kind, cid)
	if err != nil {
		return nil, err
	}
	tx.Type = entity.TransactionType(typ)
	tx.Client = ref
	tx.Status = entity.TransactionStatus(status)
	tx.Timestamp = tx.Timestamp.UTC()
	return &tx, nil
}
