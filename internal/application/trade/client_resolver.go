package trade

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/trade-ledger-api/internal/domain"
	"github.com/jhoicas/trade-ledger-api/internal/domain/entity"
	"github.com/jhoicas/trade-ledger-api/internal/domain/repository"
)

// ClientResolver traduce (tipo, nombre) a una referencia de cliente. No tiene efectos.
type ClientResolver struct {
	acquirers repository.AcquirerRepository
	suppliers repository.SupplierRepository
}

// NewClientResolver construye el resolver.
func NewClientResolver(acquirers repository.AcquirerRepository, suppliers repository.SupplierRepository) *ClientResolver {
	return &ClientResolver{acquirers: acquirers, suppliers: suppliers}
}

// Resolve busca el cliente en la colección que corresponde al tipo: purchase -> acquirers, sale -> suppliers.
// El tipo se valida antes de cualquier búsqueda.
func (r *ClientResolver) Resolve(ctx context.Context, rawType, name string) (entity.TransactionType, entity.ClientRef, error) {
	t, ok := entity.ParseTransactionType(rawType)
	if !ok {
		return "", entity.ClientRef{}, fmt.Errorf("%w: %q", domain.ErrInvalidTransactionType, rawType)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", entity.ClientRef{}, fmt.Errorf("%w: nombre del cliente", domain.ErrMissingParameter)
	}
	ref, err := r.lookup(ctx, t.ClientKind(), name)
	if err != nil {
		return "", entity.ClientRef{}, err
	}
	if ref.IsZero() {
		return "", entity.ClientRef{}, fmt.Errorf("%w: %s %q", domain.ErrClientNotFound, t.ClientKind(), name)
	}
	return t, ref, nil
}

// ResolveAny busca el nombre en ambas colecciones. Devuelve ErrClientNotFound si no aparece en ninguna.
func (r *ClientResolver) ResolveAny(ctx context.Context, name string) ([]entity.ClientRef, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: nombre del cliente", domain.ErrMissingParameter)
	}
	var refs []entity.ClientRef
	for _, kind := range []entity.ClientKind{entity.ClientKindAcquirer, entity.ClientKindSupplier} {
		ref, err := r.lookup(ctx, kind, name)
		if err != nil {
			return nil, err
		}
		if !ref.IsZero() {
			refs = append(refs, ref)
		}
	}
	if len(refs) == 0 {
		return nil, fmt.Errorf("%w: %q", domain.ErrClientNotFound, name)
	}
	return refs, nil
}

// Describe devuelve el nombre del cliente referenciado, o vacío si ya no existe.
func (r *ClientResolver) Describe(ctx context.Context, ref entity.ClientRef) (string, error) {
	switch ref.Kind() {
	case entity.ClientKindAcquirer:
		a, err := r.acquirers.GetByID(ctx, ref.ID())
		if err != nil || a == nil {
			return "", err
		}
		return a.Name, nil
	case entity.ClientKindSupplier:
		s, err := r.suppliers.GetByID(ctx, ref.ID())
		if err != nil || s == nil {
			return "", err
		}
		return s.Name, nil
	}
	return "", nil
}

func (r *ClientResolver) lookup(ctx context.Context, kind entity.ClientKind, name string) (entity.ClientRef, error) {
	switch kind {
	case entity.ClientKindAcquirer:
		a, err := r.acquirers.GetByName(ctx, name)
		if err != nil {
			return entity.ClientRef{}, fmt.Errorf("buscar comprador: %w", err)
		}
		if a != nil {
			return entity.AcquirerRef(a.ID), nil
		}
	case entity.ClientKindSupplier:
		s, err := r.suppliers.GetByName(ctx, name)
		if err != nil {
			return entity.ClientRef{}, fmt.Errorf("buscar proveedor: %w", err)
		}
		if s != nil {
			return entity.SupplierRef(s.ID), nil
		}
	}
	return entity.ClientRef{}, nil
}
