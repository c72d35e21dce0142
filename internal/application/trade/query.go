package trade

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/trade-ledger-api/internal/domain"
	"github.com/jhoicas/trade-ledger-api/internal/domain/entity"
	"github.com/jhoicas/trade-ledger-api/internal/domain/repository"
)

const dateOnly = "2006-01-02"

// ItemView línea con el bien poblado. Good es nil si el bien ya no existe; el snapshot se conserva.
type ItemView struct {
	entity.TransactionItem
	Good *entity.Good
}

// TransactionView transacción con cliente y bienes poblados para lectura.
type TransactionView struct {
	Transaction *entity.Transaction
	ClientName  string // vacío si el cliente ya no existe
	Items       []ItemView
}

// QueryService consultas de solo lectura sobre el ledger.
type QueryService struct {
	transactions repository.TransactionRepository
	goods        repository.GoodRepository
	resolver     *ClientResolver
}

// NewQueryService construye el servicio de consultas.
func NewQueryService(transactions repository.TransactionRepository, goods repository.GoodRepository, resolver *ClientResolver) *QueryService {
	return &QueryService{transactions: transactions, goods: goods, resolver: resolver}
}

// FindByClientName devuelve las transacciones de cualquier comprador o proveedor con ese nombre.
func (q *QueryService) FindByClientName(ctx context.Context, name string) ([]TransactionView, error) {
	refs, err := q.resolver.ResolveAny(ctx, name)
	if err != nil {
		return nil, err
	}
	list, err := q.transactions.List(ctx, repository.TransactionFilter{Clients: refs})
	if err != nil {
		return nil, fmt.Errorf("%w: listar transacciones: %v", domain.ErrInternalStorage, err)
	}
	return q.views(ctx, list)
}

// FindByDateRange devuelve las transacciones con fecha en [start, end], ambos inclusivos.
// Acepta RFC 3339 o YYYY-MM-DD; un end de solo fecha cubre el día completo. rawType es opcional.
func (q *QueryService) FindByDateRange(ctx context.Context, start, end, rawType string) ([]TransactionView, error) {
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	if start == "" || end == "" {
		return nil, fmt.Errorf("%w: start y end", domain.ErrMissingParameter)
	}
	from, _, err := parseInstant(start)
	if err != nil {
		return nil, err
	}
	to, isDate, err := parseInstant(end)
	if err != nil {
		return nil, err
	}
	if isDate {
		to = to.Add(24*time.Hour - time.Nanosecond)
	}
	if to.Before(from) {
		return nil, fmt.Errorf("%w: end anterior a start", domain.ErrInvalidInput)
	}

	filter := repository.TransactionFilter{From: &from, To: &to}
	if rawType = strings.TrimSpace(rawType); rawType != "" {
		t, ok := entity.ParseTransactionType(rawType)
		if !ok {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidTransactionType, rawType)
		}
		filter.Type = t
	}
	list, err := q.transactions.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: listar transacciones: %v", domain.ErrInternalStorage, err)
	}
	return q.views(ctx, list)
}

// GetByID devuelve una transacción o ErrTransactionNotFound.
func (q *QueryService) GetByID(ctx context.Context, id string) (*TransactionView, error) {
	tx, err := q.transactions.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: obtener transacción: %v", domain.ErrInternalStorage, err)
	}
	if tx == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrTransactionNotFound, id)
	}
	views, err := q.views(ctx, []*entity.Transaction{tx})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// List lista paginada, más recientes primero.
func (q *QueryService) List(ctx context.Context, limit, offset int) ([]TransactionView, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	list, err := q.transactions.List(ctx, repository.TransactionFilter{Limit: limit, Offset: offset})
	if err != nil {
		return nil, fmt.Errorf("%w: listar transacciones: %v", domain.ErrInternalStorage, err)
	}
	return q.views(ctx, list)
}

func (q *QueryService) views(ctx context.Context, list []*entity.Transaction) ([]TransactionView, error) {
	goods := make(map[int64]*entity.Good)
	clients := make(map[entity.ClientRef]string)
	out := make([]TransactionView, 0, len(list))
	for _, tx := range list {
		name, ok := clients[tx.Client]
		if !ok {
			var err error
			if name, err = q.resolver.Describe(ctx, tx.Client); err != nil {
				return nil, fmt.Errorf("%w: obtener cliente: %v", domain.ErrInternalStorage, err)
			}
			clients[tx.Client] = name
		}
		v := TransactionView{Transaction: tx, ClientName: name, Items: make([]ItemView, 0, len(tx.Items))}
		for _, it := range tx.Items {
			g, ok := goods[it.GoodID]
			if !ok {
				var err error
				if g, err = q.goods.GetByID(ctx, it.GoodID); err != nil {
					return nil, fmt.Errorf("%w: obtener bien: %v", domain.ErrInternalStorage, err)
				}
				goods[it.GoodID] = g
			}
			v.Items = append(v.Items, ItemView{TransactionItem: it, Good: g})
		}
		out = append(out, v)
	}
	return out, nil
}

func parseInstant(s string) (t time.Time, dateOnlyValue bool, err error) {
	if t, err = time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), false, nil
	}
	if t, err = time.Parse(dateOnly, s); err == nil {
		return t, true, nil
	}
	return time.Time{}, false, fmt.Errorf("%w: fecha %q (use RFC 3339 o YYYY-MM-DD)", domain.ErrInvalidInput, s)
}
