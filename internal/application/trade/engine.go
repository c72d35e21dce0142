package trade

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/trade-ledger-api/internal/domain"
	"github.com/jhoicas/trade-ledger-api/internal/domain/entity"
	domaintrade "github.com/jhoicas/trade-ledger-api/internal/domain/trade"
)

// UpdateFailurePolicy qué hacer cuando los nuevos ítems de una actualización no validan
// después de haber revertido los efectos originales.
type UpdateFailurePolicy string

const (
	// PolicyKeepReversed confirma la reversión, marca la transacción como revertida y devuelve *UpdateReversedError.
	PolicyKeepReversed UpdateFailurePolicy = "keep_reversed"
	// PolicyRollback deshace toda la unidad de trabajo; el almacén queda como antes de la llamada.
	PolicyRollback UpdateFailurePolicy = "rollback"
)

// ParseUpdateFailurePolicy valida el valor de configuración. Vacío equivale a keep_reversed.
func ParseUpdateFailurePolicy(s string) (UpdateFailurePolicy, error) {
	switch UpdateFailurePolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyKeepReversed:
		return PolicyKeepReversed, nil
	case PolicyRollback:
		return PolicyRollback, nil
	}
	return "", fmt.Errorf("política de actualización desconocida: %q", s)
}

// ItemInput línea pedida. El bien se referencia por id o, si GoodID es 0, por nombre.
type ItemInput struct {
	GoodID   int64
	GoodName string
	Quantity int
}

func (in ItemInput) ref() string {
	if in.GoodID > 0 {
		return strconv.FormatInt(in.GoodID, 10)
	}
	return in.GoodName
}

// TransactionInput intención de compra o venta, usada tanto al crear como al actualizar.
type TransactionInput struct {
	Type       string
	ClientName string
	Items      []ItemInput
	Timestamp  *time.Time // nil = ahora (al crear) o sin cambios (al actualizar)
}

// EngineConfig opciones del motor.
type EngineConfig struct {
	UpdateFailurePolicy UpdateFailurePolicy
	Idempotency         IdempotencyStore // opcional
}

// Engine motor de transacciones: traduce intenciones en mutaciones de stock consistentes con el ledger.
type Engine struct {
	runner TxRunner
	policy UpdateFailurePolicy
	idem   IdempotencyStore
	log    zerolog.Logger
	now    func() time.Time
}

// NewEngine construye el motor.
func NewEngine(runner TxRunner, cfg EngineConfig, log zerolog.Logger) *Engine {
	policy := cfg.UpdateFailurePolicy
	if policy == "" {
		policy = PolicyKeepReversed
	}
	return &Engine{
		runner: runner,
		policy: policy,
		idem:   cfg.Idempotency,
		log:    log.With().Str("component", "trade_engine").Logger(),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Create valida la intención completa, aplica los cambios de stock y persiste la transacción.
// Si cualquier línea falla no se muta nada.
func (e *Engine) Create(ctx context.Context, in TransactionInput) (*entity.Transaction, error) {
	var created *entity.Transaction
	err := e.runner.Run(ctx, func(r Repos) error {
		t, ref, err := NewClientResolver(r.Acquirers, r.Suppliers).Resolve(ctx, in.Type, in.ClientName)
		if err != nil {
			return err
		}
		if err := validateItems(in.Items); err != nil {
			return err
		}
		ids, err := resolveGoodIDs(ctx, r, in.Items)
		if err != nil {
			return err
		}
		goods, err := r.Goods.GetForUpdate(ctx, knownIDs(ids))
		if err != nil {
			return fmt.Errorf("bloquear bienes: %w", err)
		}
		plan, items, err := planLines(t, in.Items, ids, goods)
		if err != nil {
			return err
		}
		id := uuid.NewString()
		if err := plan.Apply(ctx, e.ledger(r, id, entity.MovementApply)); err != nil {
			return err
		}

		ts := e.timestamp(in.Timestamp)
		tx := &entity.Transaction{
			ID:          id,
			Type:        t,
			Timestamp:   ts,
			Client:      ref,
			Items:       items,
			TotalAmount: domaintrade.Total(items),
			Status:      entity.StatusActive,
			CreatedAt:   ts,
			UpdatedAt:   ts,
		}
		if err := r.Transactions.Create(ctx, tx); err != nil {
			return fmt.Errorf("persistir transacción: %w", err)
		}
		created = tx
		return nil
	})
	if err != nil {
		return nil, err
	}
	e.log.Info().Str("transaction_id", created.ID).Str("type", string(created.Type)).
		Str("client", created.Client.String()).Str("total", created.TotalAmount.String()).
		Msg("transacción creada")
	return created, nil
}

// Update revierte los efectos de la transacción y aplica la nueva intención como reemplazo completo.
// Si los nuevos ítems no validan tras la reversión, decide la UpdateFailurePolicy configurada.
func (e *Engine) Update(ctx context.Context, id string, in TransactionInput) (*entity.Transaction, error) {
	var (
		updated  *entity.Transaction
		reversed *domain.UpdateReversedError
	)
	err := e.runner.Run(ctx, func(r Repos) error {
		existing, err := r.Transactions.GetForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("obtener transacción: %w", err)
		}
		if existing == nil {
			return fmt.Errorf("%w: %s", domain.ErrTransactionNotFound, id)
		}
		t, ref, err := NewClientResolver(r.Acquirers, r.Suppliers).Resolve(ctx, in.Type, in.ClientName)
		if err != nil {
			return err
		}
		if err := validateItems(in.Items); err != nil {
			return err
		}
		ids, err := resolveGoodIDs(ctx, r, in.Items)
		if err != nil {
			return err
		}
		// Un único bloqueo ascendente sobre la unión de bienes viejos y nuevos.
		if _, err := r.Goods.GetForUpdate(ctx, append(existing.GoodIDs(), knownIDs(ids)...)); err != nil {
			return fmt.Errorf("bloquear bienes: %w", err)
		}

		if existing.Applied() {
			if err := e.reverse(ctx, r, existing); err != nil {
				return err
			}
		}

		goods, err := r.Goods.GetForUpdate(ctx, knownIDs(ids))
		if err != nil {
			return fmt.Errorf("releer bienes: %w", err)
		}
		plan, items, err := planLines(t, in.Items, ids, goods)
		if err != nil {
			if e.policy == PolicyRollback {
				return err
			}
			existing.Status = entity.StatusReversed
			existing.UpdatedAt = e.now()
			if rerr := r.Transactions.Replace(ctx, existing); rerr != nil {
				return fmt.Errorf("marcar transacción revertida: %w", rerr)
			}
			reversed = &domain.UpdateReversedError{TransactionID: existing.ID, Cause: err}
			return nil
		}
		if err := plan.Apply(ctx, e.ledger(r, existing.ID, entity.MovementApply)); err != nil {
			return err
		}

		existing.Type = t
		existing.Client = ref
		existing.Items = items
		existing.TotalAmount = domaintrade.Total(items)
		existing.Status = entity.StatusActive
		if in.Timestamp != nil {
			existing.Timestamp = in.Timestamp.UTC()
		}
		existing.UpdatedAt = e.now()
		if err := r.Transactions.Replace(ctx, existing); err != nil {
			return fmt.Errorf("reemplazar transacción: %w", err)
		}
		updated = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	if reversed != nil {
		e.log.Error().Err(reversed.Cause).Str("transaction_id", id).
			Msg("actualización revertida sin reaplicar; requiere conciliación")
		return nil, reversed
	}
	e.log.Info().Str("transaction_id", id).Str("type", string(updated.Type)).
		Str("total", updated.TotalAmount.String()).Msg("transacción actualizada")
	return updated, nil
}

// Delete revierte los efectos de la transacción y elimina el registro.
// Los bienes que ya no existen se omiten y se registran en el log.
func (e *Engine) Delete(ctx context.Context, id string) error {
	err := e.runner.Run(ctx, func(r Repos) error {
		existing, err := r.Transactions.GetForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("obtener transacción: %w", err)
		}
		if existing == nil {
			return fmt.Errorf("%w: %s", domain.ErrTransactionNotFound, id)
		}
		if existing.Applied() {
			if err := e.reverse(ctx, r, existing); err != nil {
				return err
			}
		}
		if err := r.Transactions.Delete(ctx, id); err != nil {
			return fmt.Errorf("eliminar transacción: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	e.log.Info().Str("transaction_id", id).Msg("transacción eliminada")
	return nil
}

// reverse aplica la inversa de los efectos de tx. Falla sin mutar si alguna reversión dejaría stock negativo.
func (e *Engine) reverse(ctx context.Context, r Repos, tx *entity.Transaction) error {
	goods, err := r.Goods.GetForUpdate(ctx, tx.GoodIDs())
	if err != nil {
		return fmt.Errorf("bloquear bienes: %w", err)
	}
	plan, skipped, err := domaintrade.PlanReversal(tx, goods)
	if err != nil {
		return fmt.Errorf("revertir transacción %s: %w", tx.ID, err)
	}
	for _, gid := range skipped {
		e.log.Warn().Str("transaction_id", tx.ID).Int64("good_id", gid).
			Msg("bien inexistente; se omite su reversión de stock")
	}
	return plan.Apply(ctx, e.ledger(r, tx.ID, entity.MovementReverse))
}

func (e *Engine) timestamp(ts *time.Time) time.Time {
	if ts != nil {
		return ts.UTC()
	}
	return e.now()
}

func validateItems(items []ItemInput) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: items", domain.ErrMissingParameter)
	}
	for i, it := range items {
		if it.GoodID <= 0 && strings.TrimSpace(it.GoodName) == "" {
			return fmt.Errorf("%w: item %d sin referencia a bien", domain.ErrMissingParameter, i)
		}
		if it.Quantity < 1 || it.Quantity > entity.MaxStock {
			return fmt.Errorf("%w: item %d con cantidad %d", domain.ErrInvalidInput, i, it.Quantity)
		}
	}
	return nil
}

// resolveGoodIDs traduce cada referencia por nombre a su id; un nombre desconocido queda en 0.
// La existencia se decide en planLines, igual para referencias por id y por nombre.
func resolveGoodIDs(ctx context.Context, r Repos, items []ItemInput) ([]int64, error) {
	ids := make([]int64, len(items))
	for i, it := range items {
		if it.GoodID > 0 {
			ids[i] = it.GoodID
			continue
		}
		g, err := r.Goods.GetByName(ctx, strings.TrimSpace(it.GoodName))
		if err != nil {
			return nil, fmt.Errorf("buscar bien %q: %w", it.GoodName, err)
		}
		if g != nil {
			ids[i] = g.ID
		}
	}
	return ids, nil
}

func knownIDs(ids []int64) []int64 {
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id > 0 {
			out = append(out, id)
		}
	}
	return out
}

func planLines(t entity.TransactionType, items []ItemInput, ids []int64, goods map[int64]*entity.Good) (domaintrade.Plan, []entity.TransactionItem, error) {
	lines := make([]domaintrade.Line, len(items))
	for i, it := range items {
		g := goods[ids[i]]
		if g == nil {
			return domaintrade.Plan{}, nil, &domain.GoodNotFoundError{Ref: it.ref()}
		}
		lines[i] = domaintrade.Line{Good: g, Quantity: it.Quantity}
	}
	return domaintrade.PlanCreation(t, lines)
}
