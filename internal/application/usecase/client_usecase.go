package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/trade-ledger-api/internal/application/dto"
	"github.com/jhoicas/trade-ledger-api/internal/domain"
	"github.com/jhoicas/trade-ledger-api/internal/domain/entity"
	"github.com/jhoicas/trade-ledger-api/internal/domain/repository"
)

// ClientUseCase CRUD de compradores y proveedores.
type ClientUseCase struct {
	acquirers repository.AcquirerRepository
	suppliers repository.SupplierRepository
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(acquirers repository.AcquirerRepository, suppliers repository.SupplierRepository) *ClientUseCase {
	return &ClientUseCase{acquirers: acquirers, suppliers: suppliers}
}

// Create registra un cliente del tipo indicado.
func (uc *ClientUseCase) Create(ctx context.Context, kind entity.ClientKind, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	id := uuid.New().String()
	switch kind {
	case entity.ClientKindAcquirer:
		a := &entity.Acquirer{ID: id, Name: in.Name, Notes: in.Notes}
		if err := uc.acquirers.Create(ctx, a); err != nil {
			return nil, err
		}
		return acquirerResponse(a), nil
	case entity.ClientKindSupplier:
		s := &entity.Supplier{ID: id, Name: in.Name, Notes: in.Notes}
		if err := uc.suppliers.Create(ctx, s); err != nil {
			return nil, err
		}
		return supplierResponse(s), nil
	}
	return nil, fmt.Errorf("%w: tipo de cliente %q", domain.ErrInvalidInput, kind)
}

// GetByID obtiene un cliente. domain.ErrClientNotFound si no existe.
func (uc *ClientUseCase) GetByID(ctx context.Context, kind entity.ClientKind, id string) (*dto.ClientResponse, error) {
	switch kind {
	case entity.ClientKindAcquirer:
		a, err := uc.acquirers.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if a != nil {
			return acquirerResponse(a), nil
		}
	case entity.ClientKindSupplier:
		s, err := uc.suppliers.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if s != nil {
			return supplierResponse(s), nil
		}
	}
	return nil, fmt.Errorf("%w: %s %s", domain.ErrClientNotFound, kind, id)
}

// List lista los clientes del tipo indicado ordenados por nombre.
func (uc *ClientUseCase) List(ctx context.Context, kind entity.ClientKind, page dto.PageRequest) (*dto.ClientListResponse, error) {
	page.DefaultPage()
	items := make([]dto.ClientResponse, 0)
	switch kind {
	case entity.ClientKindAcquirer:
		list, err := uc.acquirers.List(ctx, page.Limit, page.Offset)
		if err != nil {
			return nil, err
		}
		for _, a := range list {
			items = append(items, *acquirerResponse(a))
		}
	case entity.ClientKindSupplier:
		list, err := uc.suppliers.List(ctx, page.Limit, page.Offset)
		if err != nil {
			return nil, err
		}
		for _, s := range list {
			items = append(items, *supplierResponse(s))
		}
	default:
		return nil, fmt.Errorf("%w: tipo de cliente %q", domain.ErrInvalidInput, kind)
	}
	return &dto.ClientListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

// Delete elimina un cliente. Sus transacciones quedan con la referencia huérfana.
func (uc *ClientUseCase) Delete(ctx context.Context, kind entity.ClientKind, id string) error {
	var err error
	switch kind {
	case entity.ClientKindAcquirer:
		err = uc.acquirers.Delete(ctx, id)
	case entity.ClientKindSupplier:
		err = uc.suppliers.Delete(ctx, id)
	default:
		return fmt.Errorf("%w: tipo de cliente %q", domain.ErrInvalidInput, kind)
	}
	if err != nil && domain.IsNotFound(err) {
		return fmt.Errorf("%w: %s %s", domain.ErrClientNotFound, kind, id)
	}
	return err
}

func acquirerResponse(a *entity.Acquirer) *dto.ClientResponse {
	return &dto.ClientResponse{ID: a.ID, Kind: string(entity.ClientKindAcquirer), Name: a.Name, Notes: a.Notes, CreatedAt: a.CreatedAt}
}

func supplierResponse(s *entity.Supplier) *dto.ClientResponse {
	return &dto.ClientResponse{ID: s.ID, Kind: string(entity.ClientKindSupplier), Name: s.Name, Notes: s.Notes, CreatedAt: s.CreatedAt}
}
