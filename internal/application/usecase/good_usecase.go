package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/trade-ledger-api/internal/application/dto"
	"github.com/jhoicas/trade-ledger-api/internal/application/trade"
	"github.com/jhoicas/trade-ledger-api/internal/domain"
	"github.com/jhoicas/trade-ledger-api/internal/domain/entity"
	"github.com/jhoicas/trade-ledger-api/internal/domain/repository"
)

// GoodUseCase casos de uso CRUD para bienes. El stock solo se fija al crear; después lo mueve el motor.
type GoodUseCase struct {
	repo repository.GoodRepository
}

// NewGoodUseCase construye el caso de uso.
func NewGoodUseCase(repo repository.GoodRepository) *GoodUseCase {
	return &GoodUseCase{repo: repo}
}

// Create crea un nuevo bien con su stock inicial.
func (uc *GoodUseCase) Create(ctx context.Context, in dto.CreateGoodRequest) (*dto.GoodResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	good := &entity.Good{
		ID:       in.ID,
		Name:     in.Name,
		Material: entity.Material(in.Material),
		Weight:   in.Weight,
		Value:    in.Value,
		Stock:    in.Stock,
	}
	if err := uc.repo.Create(ctx, good); err != nil {
		return nil, err
	}
	return trade.GoodToResponse(good), nil
}

// GetByID obtiene un bien por ID. domain.ErrGoodNotFound si no existe.
func (uc *GoodUseCase) GetByID(ctx context.Context, id int64) (*dto.GoodResponse, error) {
	good, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if good == nil {
		return nil, fmt.Errorf("%w: %d", domain.ErrGoodNotFound, id)
	}
	return trade.GoodToResponse(good), nil
}

// Update actualiza nombre, material, peso o valor. Cambiar el valor no altera transacciones pasadas.
func (uc *GoodUseCase) Update(ctx context.Context, id int64, in dto.UpdateGoodRequest) (*dto.GoodResponse, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	good, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if good == nil {
		return nil, fmt.Errorf("%w: %d", domain.ErrGoodNotFound, id)
	}
	if in.Name != nil {
		good.Name = strings.TrimSpace(*in.Name)
	}
	if in.Material != nil {
		good.Material = entity.Material(*in.Material)
	}
	if in.Weight != nil {
		good.Weight = *in.Weight
	}
	if in.Value != nil {
		good.Value = *in.Value
	}
	if err := uc.repo.Update(ctx, good); err != nil {
		return nil, err
	}
	return trade.GoodToResponse(good), nil
}

// List lista bienes con filtros opcionales por nombre y material.
func (uc *GoodUseCase) List(ctx context.Context, name, material string, page dto.PageRequest) (*dto.GoodListResponse, error) {
	page.DefaultPage()
	if material != "" && !entity.Material(material).Valid() {
		return nil, fmt.Errorf("%w: material %q", domain.ErrInvalidInput, material)
	}
	list, err := uc.repo.List(ctx, repository.GoodFilter{
		Name:     name,
		Material: entity.Material(material),
		Limit:    page.Limit,
		Offset:   page.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.GoodResponse, 0, len(list))
	for _, g := range list {
		items = append(items, *trade.GoodToResponse(g))
	}
	return &dto.GoodListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete elimina un bien. Las transacciones que lo referencian conservan su snapshot.
func (uc *GoodUseCase) Delete(ctx context.Context, id int64) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		if domain.IsNotFound(err) {
			return fmt.Errorf("%w: %d", domain.ErrGoodNotFound, id)
		}
		return err
	}
	return nil
}
