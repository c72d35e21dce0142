package trade_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/trade-ledger-api/internal/application/trade"
	"github.com/jhoicas/trade-ledger-api/internal/domain"
	"github.com/jhoicas/trade-ledger-api/internal/domain/entity"
)

func TestClientResolver_Resolve(t *testing.T) {
	ctx := context.Background()
	r := newFixture(t, trade.EngineConfig{}).store.Repos()
	resolver := trade.NewClientResolver(r.Acquirers, r.Suppliers)

	typ, ref, err := resolver.Resolve(ctx, "purchase", "Geralt")
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionPurchase, typ)
	assert.Equal(t, entity.ClientKindAcquirer, ref.Kind())

	typ, ref, err = resolver.Resolve(ctx, "sale", " Zoltan ")
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionSale, typ)
	assert.Equal(t, entity.ClientKindSupplier, ref.Kind())

	name, err := resolver.Describe(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, "Zoltan", name)

	_, _, err = resolver.Resolve(ctx, "sale", "Geralt")
	assert.ErrorIs(t, err, domain.ErrClientNotFound)

	// El tipo se valida antes que el nombre.
	_, _, err = resolver.Resolve(ctx, "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidTransactionType)
}
