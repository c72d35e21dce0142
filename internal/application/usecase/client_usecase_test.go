package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/trade-ledger-api/internal/application/dto"
	"github.com/jhoicas/trade-ledger-api/internal/application/usecase"
	"github.com/jhoicas/trade-ledger-api/internal/domain"
	"github.com/jhoicas/trade-ledger-api/internal/domain/entity"
	"github.com/jhoicas/trade-ledger-api/internal/infrastructure/memory"
)

func TestClientUseCase(t *testing.T) {
	ctx := context.Background()
	r := memory.NewStore().Repos()
	uc := usecase.NewClientUseCase(r.Acquirers, r.Suppliers)

	geralt, err := uc.Create(ctx, entity.ClientKindAcquirer, dto.CreateClientRequest{Name: "Geralt", Notes: "Rivia"})
	require.NoError(t, err)
	assert.Equal(t, "acquirer", geralt.Kind)
	assert.NotEmpty(t, geralt.ID)

	// El mismo nombre puede existir en la otra categoría.
	_, err = uc.Create(ctx, entity.ClientKindSupplier, dto.CreateClientRequest{Name: "Geralt"})
	require.NoError(t, err)

	_, err = uc.Create(ctx, entity.ClientKindAcquirer, dto.CreateClientRequest{Name: "Geralt"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(ctx, entity.ClientKindAcquirer, dto.CreateClientRequest{Name: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := uc.GetByID(ctx, entity.ClientKindAcquirer, geralt.ID)
	require.NoError(t, err)
	assert.Equal(t, "Geralt", got.Name)

	_, err = uc.GetByID(ctx, entity.ClientKindSupplier, geralt.ID)
	assert.ErrorIs(t, err, domain.ErrClientNotFound)

	list, err := uc.List(ctx, entity.ClientKindSupplier, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)

	require.NoError(t, uc.Delete(ctx, entity.ClientKindAcquirer, geralt.ID))
	assert.ErrorIs(t, uc.Delete(ctx, entity.ClientKindAcquirer, geralt.ID), domain.ErrClientNotFound)
}
