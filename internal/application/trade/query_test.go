package trade_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/trade-ledger-api/internal/application/trade"
	"github.com/jhoicas/trade-ledger-api/internal/domain"
	"github.com/jhoicas/trade-ledger-api/internal/domain/entity"
)

func (f *fixture) queries() *trade.QueryService {
	r := f.store.Repos()
	return trade.NewQueryService(r.Transactions, r.Goods, trade.NewClientResolver(r.Acquirers, r.Suppliers))
}

func at(t *testing.T, f *fixture, in trade.TransactionInput, ts time.Time) *entity.Transaction {
	t.Helper()
	in.Timestamp = &ts
	tx, err := f.engine.Create(context.Background(), in)
	require.NoError(t, err)
	return tx
}

func TestQuery_FindByClientName(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, trade.EngineConfig{})
	day := time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC)
	p := at(t, f, purchase("Geralt", byID(swordID, 2)), day)
	at(t, f, sale("Zoltan", byID(bowID, 1)), day)

	views, err := f.queries().FindByClientName(ctx, "Geralt")
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, p.ID, views[0].Transaction.ID)
	assert.Equal(t, "Geralt", views[0].ClientName)
	require.Len(t, views[0].Items, 1)
	require.NotNil(t, views[0].Items[0].Good)
	assert.Equal(t, "Silver Sword", views[0].Items[0].Good.Name)

	_, err = f.queries().FindByClientName(ctx, "")
	assert.ErrorIs(t, err, domain.ErrMissingParameter)

	_, err = f.queries().FindByClientName(ctx, "Yennefer")
	assert.ErrorIs(t, err, domain.ErrClientNotFound)
}

// Un mismo nombre puede existir como comprador y como proveedor.
func TestQuery_FindByClientNameSpansBothCategories(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, trade.EngineConfig{})
	require.NoError(t, f.store.Repos().Acquirers.Create(ctx, &entity.Acquirer{ID: uuid.NewString(), Name: "Zoltan"}))
	at(t, f, purchase("Zoltan", byID(swordID, 1)), time.Now())
	at(t, f, sale("Zoltan", byID(swordID, 1)), time.Now())

	views, err := f.queries().FindByClientName(ctx, "Zoltan")
	require.NoError(t, err)
	assert.Len(t, views, 2)
}

func TestQuery_FindByClientNameWithoutTransactions(t *testing.T) {
	f := newFixture(t, trade.EngineConfig{})
	views, err := f.queries().FindByClientName(context.Background(), "Geralt")
	require.NoError(t, err)
	assert.NotNil(t, views)
	assert.Empty(t, views)
}

func TestQuery_FindByDateRange(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, trade.EngineConfig{})
	at(t, f, purchase("Geralt", byID(swordID, 1)), time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC))
	late := at(t, f, sale("Zoltan", byID(swordID, 1)), time.Date(2025, 2, 3, 23, 59, 0, 0, time.UTC))
	at(t, f, purchase("Geralt", byID(swordID, 1)), time.Date(2025, 2, 4, 0, 0, 1, 0, time.UTC))

	views, err := f.queries().FindByDateRange(ctx, "2025-02-01", "2025-02-03", "")
	require.NoError(t, err)
	assert.Len(t, views, 2, "un end de solo fecha cubre el día completo")

	views, err = f.queries().FindByDateRange(ctx, "2025-02-01T00:00:00Z", "2025-02-03T23:59:00Z", "sale")
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, late.ID, views[0].Transaction.ID)

	views, err = f.queries().FindByDateRange(ctx, "2030-01-01", "2030-01-02", "")
	require.NoError(t, err)
	assert.NotNil(t, views)
	assert.Empty(t, views)
}

func TestQuery_FindByDateRangeErrors(t *testing.T) {
	q := newFixture(t, trade.EngineConfig{}).queries()
	ctx := context.Background()

	_, err := q.FindByDateRange(ctx, "", "2025-01-01", "")
	assert.ErrorIs(t, err, domain.ErrMissingParameter)
	_, err = q.FindByDateRange(ctx, "2025-01-01", "", "")
	assert.ErrorIs(t, err, domain.ErrMissingParameter)
	_, err = q.FindByDateRange(ctx, "yesterday", "2025-01-01", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = q.FindByDateRange(ctx, "2025-01-02", "2025-01-01", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = q.FindByDateRange(ctx, "2025-01-01", "2025-01-02", "loan")
	assert.ErrorIs(t, err, domain.ErrInvalidTransactionType)
}

func TestQuery_GetByIDKeepsSnapshotOfDeletedGood(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, trade.EngineConfig{})
	tx := at(t, f, purchase("Geralt", byID(bowID, 2)), time.Now())
	require.NoError(t, f.store.Repos().Goods.Delete(ctx, bowID))

	v, err := f.queries().GetByID(ctx, tx.ID)
	require.NoError(t, err)
	require.Len(t, v.Items, 1)
	assert.Nil(t, v.Items[0].Good)
	assert.Equal(t, 2, v.Items[0].Quantity)
	assert.Equal(t, "40", v.Items[0].PriceAtTransaction.String())

	_, err = f.queries().GetByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrTransactionNotFound)
}

func TestQuery_List(t *testing.T) {
	f := newFixture(t, trade.EngineConfig{})
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		at(t, f, sale("Zoltan", byID(bowID, 1)), base.Add(time.Duration(i)*time.Hour))
	}
	views, err := f.queries().List(context.Background(), 2, 0)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.True(t, views[0].Transaction.Timestamp.After(views[1].Transaction.Timestamp))
}
