package trade_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/trade-ledger-api/internal/application/trade"
	"github.com/jhoicas/trade-ledger-api/internal/domain"
	"github.com/jhoicas/trade-ledger-api/internal/domain/entity"
	"github.com/jhoicas/trade-ledger-api/internal/domain/repository"
	"github.com/jhoicas/trade-ledger-api/internal/infrastructure/memory"
)

const (
	swordID int64 = 1
	bowID   int64 = 2
)

type fixture struct {
	store  *memory.Store
	engine *trade.Engine
}

func newFixture(t *testing.T, cfg trade.EngineConfig) *fixture {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()
	r := s.Repos()
	require.NoError(t, r.Goods.Create(ctx, &entity.Good{ID: swordID, Name: "Silver Sword", Material: entity.MaterialSilver, Weight: 3.5, Value: decimal.NewFromInt(250), Stock: 10}))
	require.NoError(t, r.Goods.Create(ctx, &entity.Good{ID: bowID, Name: "Oak Bow", Material: entity.MaterialWood, Weight: 1.2, Value: decimal.NewFromInt(40), Stock: 4}))
	require.NoError(t, r.Acquirers.Create(ctx, &entity.Acquirer{ID: uuid.NewString(), Name: "Geralt"}))
	require.NoError(t, r.Suppliers.Create(ctx, &entity.Supplier{ID: uuid.NewString(), Name: "Zoltan"}))
	return &fixture{store: s, engine: trade.NewEngine(s, cfg, zerolog.Nop())}
}

func (f *fixture) stock(t *testing.T, id int64) int {
	t.Helper()
	g, err := f.store.Repos().Goods.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, g)
	return g.Stock
}

func (f *fixture) count(t *testing.T) int {
	t.Helper()
	list, err := f.store.Repos().Transactions.List(context.Background(), repository.TransactionFilter{})
	require.NoError(t, err)
	return len(list)
}

func purchase(client string, items ...trade.ItemInput) trade.TransactionInput {
	return trade.TransactionInput{Type: "purchase", ClientName: client, Items: items}
}

func sale(client string, items ...trade.ItemInput) trade.TransactionInput {
	return trade.TransactionInput{Type: "sale", ClientName: client, Items: items}
}

func byID(id int64, q int) trade.ItemInput { return trade.ItemInput{GoodID: id, Quantity: q} }

func TestEngine_PurchaseThenDeleteRestoresStock(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, trade.EngineConfig{})

	tx, err := f.engine.Create(ctx, purchase("Geralt", byID(swordID, 2)))
	require.NoError(t, err)
	assert.Equal(t, 8, f.stock(t, swordID))
	assert.Equal(t, entity.TransactionPurchase, tx.Type)
	assert.Equal(t, entity.ClientKindAcquirer, tx.Client.Kind())
	assert.True(t, tx.TotalAmount.Equal(decimal.NewFromInt(500)))
	assert.True(t, tx.Items[0].PriceAtTransaction.Equal(decimal.NewFromInt(250)))
	assert.Equal(t, entity.StatusActive, tx.Status)

	require.NoError(t, f.engine.Delete(ctx, tx.ID))
	assert.Equal(t, 10, f.stock(t, swordID))
	assert.Equal(t, 0, f.count(t))
}

func TestEngine_PurchaseBeyondStockFails(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, trade.EngineConfig{})
	_, err := f.engine.Create(ctx, purchase("Geralt", byID(swordID, 7)))
	require.NoError(t, err)
	require.Equal(t, 3, f.stock(t, swordID))

	_, err = f.engine.Create(ctx, purchase("Geralt", byID(swordID, 5)))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var detail *domain.InsufficientStockError
	require.True(t, errors.As(err, &detail))
	assert.Equal(t, swordID, detail.GoodID)
	assert.Equal(t, 3, detail.Available)
	assert.Equal(t, 5, detail.Requested)

	assert.Equal(t, 3, f.stock(t, swordID))
	assert.Equal(t, 1, f.count(t))
}

func TestEngine_SaleIncreasesStock(t *testing.T) {
	f := newFixture(t, trade.EngineConfig{})
	tx, err := f.engine.Create(context.Background(), sale("Zoltan", byID(swordID, 5)))
	require.NoError(t, err)
	assert.Equal(t, 15, f.stock(t, swordID))
	assert.Equal(t, entity.ClientKindSupplier, tx.Client.Kind())
	assert.True(t, tx.TotalAmount.Equal(decimal.NewFromInt(1250)))
}

func TestEngine_CreateIsAllOrNothing(t *testing.T) {
	f := newFixture(t, trade.EngineConfig{})
	_, err := f.engine.Create(context.Background(), purchase("Geralt", byID(swordID, 2), byID(bowID, 5)))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 10, f.stock(t, swordID))
	assert.Equal(t, 4, f.stock(t, bowID))
	assert.Equal(t, 0, f.count(t))
}

func TestEngine_CreateValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, trade.EngineConfig{})

	tests := []struct {
		name string
		in   trade.TransactionInput
		want error
	}{
		{"tipo vacío", trade.TransactionInput{ClientName: "Geralt", Items: []trade.ItemInput{byID(swordID, 1)}}, domain.ErrInvalidTransactionType},
		{"tipo desconocido", trade.TransactionInput{Type: "barter", ClientName: "Geralt", Items: []trade.ItemInput{byID(swordID, 1)}}, domain.ErrInvalidTransactionType},
		{"comprador inexistente", purchase("Dandelion", byID(swordID, 1)), domain.ErrClientNotFound},
		{"proveedor usado como comprador", purchase("Zoltan", byID(swordID, 1)), domain.ErrClientNotFound},
		{"sin nombre de cliente", purchase("", byID(swordID, 1)), domain.ErrMissingParameter},
		{"sin ítems", purchase("Geralt"), domain.ErrMissingParameter},
		{"cantidad cero", purchase("Geralt", byID(swordID, 0)), domain.ErrInvalidInput},
		{"cantidad fuera de rango", sale("Zoltan", byID(swordID, entity.MaxStock+1)), domain.ErrInvalidInput},
		{"stock resultante fuera de rango", sale("Zoltan", byID(swordID, entity.MaxStock)), domain.ErrInvalidInput},
		{"bien inexistente por id", purchase("Geralt", byID(42, 1)), domain.ErrGoodNotFound},
		{"bien inexistente por nombre", purchase("Geralt", trade.ItemInput{GoodName: "Mithril Mail", Quantity: 1}), domain.ErrGoodNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.engine.Create(ctx, tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Equal(t, 10, f.stock(t, swordID))
	assert.Equal(t, 0, f.count(t))
}

func TestEngine_GoodNotFoundCarriesReference(t *testing.T) {
	f := newFixture(t, trade.EngineConfig{})
	_, err := f.engine.Create(context.Background(), purchase("Geralt", trade.ItemInput{GoodName: "Mithril Mail", Quantity: 1}))
	var nf *domain.GoodNotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "Mithril Mail", nf.Ref)
}

func TestEngine_ItemsByName(t *testing.T) {
	f := newFixture(t, trade.EngineConfig{})
	tx, err := f.engine.Create(context.Background(), purchase("Geralt", trade.ItemInput{GoodName: "Oak Bow", Quantity: 3}))
	require.NoError(t, err)
	assert.Equal(t, bowID, tx.Items[0].GoodID)
	assert.Equal(t, 1, f.stock(t, bowID))
}

func TestEngine_TimestampDefaultsToNow(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, trade.EngineConfig{})

	before := time.Now().UTC().Add(-time.Second)
	tx, err := f.engine.Create(ctx, sale("Zoltan", byID(bowID, 1)))
	require.NoError(t, err)
	assert.True(t, tx.Timestamp.After(before))

	at := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	in := sale("Zoltan", byID(bowID, 1))
	in.Timestamp = &at
	tx, err = f.engine.Create(ctx, in)
	require.NoError(t, err)
	assert.True(t, tx.Timestamp.Equal(at))
}

func TestEngine_PriceSnapshotIsImmutable(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, trade.EngineConfig{})
	tx, err := f.engine.Create(ctx, purchase("Geralt", byID(swordID, 2)))
	require.NoError(t, err)

	goods := f.store.Repos().Goods
	g, _ := goods.GetByID(ctx, swordID)
	g.Value = decimal.NewFromInt(999)
	require.NoError(t, goods.Update(ctx, g))

	stored, err := f.store.Repos().Transactions.GetByID(ctx, tx.ID)
	require.NoError(t, err)
	assert.True(t, stored.Items[0].PriceAtTransaction.Equal(decimal.NewFromInt(250)))
	assert.True(t, stored.TotalAmount.Equal(decimal.NewFromInt(500)))
}

func TestEngine_UpdatePurchaseToSaleOfAnotherGood(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, trade.EngineConfig{})
	tx, err := f.engine.Create(ctx, purchase("Geralt", byID(swordID, 2)))
	require.NoError(t, err)
	require.Equal(t, 8, f.stock(t, swordID))

	updated, err := f.engine.Update(ctx, tx.ID, sale("Zoltan", byID(bowID, 4)))
	require.NoError(t, err)
	assert.Equal(t, 10, f.stock(t, swordID))
	assert.Equal(t, 8, f.stock(t, bowID))
	assert.Equal(t, tx.ID, updated.ID)
	assert.Equal(t, entity.TransactionSale, updated.Type)
	assert.Equal(t, entity.ClientKindSupplier, updated.Client.Kind())
	assert.True(t, updated.TotalAmount.Equal(decimal.NewFromInt(160)))
	assert.Equal(t, 1, f.count(t))
}

func TestEngine_RecordsStockMovements(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, trade.EngineConfig{UpdateFailurePolicy: trade.PolicyRollback})
	tx, err := f.engine.Create(ctx, purchase("Geralt", byID(swordID, 2)))
	require.NoError(t, err)
	_, err = f.engine.Update(ctx, tx.ID, sale("Zoltan", byID(bowID, 4)))
	require.NoError(t, err)

	// Una actualización fallida con rollback no deja movimientos.
	_, err = f.engine.Update(ctx, tx.ID, purchase("Geralt", byID(bowID, 50)))
	require.Error(t, err)

	moves, err := f.store.Repos().Movements.ListByTransaction(ctx, tx.ID)
	require.NoError(t, err)
	require.Len(t, moves, 3)
	assert.Equal(t, entity.MovementApply, moves[0].Reason)
	assert.Equal(t, swordID, moves[0].GoodID)
	assert.Equal(t, -2, moves[0].Delta)
	assert.Equal(t, 8, moves[0].StockAfter)
	assert.Equal(t, entity.MovementReverse, moves[1].Reason)
	assert.Equal(t, 2, moves[1].Delta)
	assert.Equal(t, 10, moves[1].StockAfter)
	assert.Equal(t, entity.MovementApply, moves[2].Reason)
	assert.Equal(t, bowID, moves[2].GoodID)
	assert.Equal(t, 8, moves[2].StockAfter)

	_, err = f.engine.Create(ctx, purchase("Geralt", byID(swordID, 50)))
	require.Error(t, err)
	swordMoves, err := f.store.Repos().Movements.ListByGood(ctx, swordID, 0, 0)
	require.NoError(t, err)
	assert.Len(t, swordMoves, 2, "una creación fallida no registra movimientos")
}

// Los ítems nuevos se validan contra el stock ya revertido.
func TestEngine_UpdateValidatesAgainstReversedStock(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, trade.EngineConfig{})
	tx, err := f.engine.Create(ctx, purchase("Geralt", byID(swordID, 8)))
	require.NoError(t, err)
	require.Equal(t, 2, f.stock(t, swordID))

	_, err = f.engine.Update(ctx, tx.ID, purchase("Geralt", byID(swordID, 10)))
	require.NoError(t, err)
	assert.Equal(t, 0, f.stock(t, swordID))
}

func TestEngine_UpdateErrorsBeforeAnyMutation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, trade.EngineConfig{})
	tx, err := f.engine.Create(ctx, purchase("Geralt", byID(swordID, 2)))
	require.NoError(t, err)

	_, err = f.engine.Update(ctx, "missing", purchase("Geralt", byID(swordID, 1)))
	assert.ErrorIs(t, err, domain.ErrTransactionNotFound)

	_, err = f.engine.Update(ctx, tx.ID, trade.TransactionInput{Type: "gift", ClientName: "Geralt", Items: []trade.ItemInput{byID(swordID, 1)}})
	assert.ErrorIs(t, err, domain.ErrInvalidTransactionType)

	_, err = f.engine.Update(ctx, tx.ID, sale("Geralt", byID(swordID, 1)))
	assert.ErrorIs(t, err, domain.ErrClientNotFound)

	assert.Equal(t, 8, f.stock(t, swordID))
}

func TestEngine_UpdateFailureKeepsReversal(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, trade.EngineConfig{UpdateFailurePolicy: trade.PolicyKeepReversed})
	tx, err := f.engine.Create(ctx, purchase("Geralt", byID(swordID, 2)))
	require.NoError(t, err)

	_, err = f.engine.Update(ctx, tx.ID, purchase("Geralt", byID(swordID, 20)))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpdateReversed)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	var re *domain.UpdateReversedError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, tx.ID, re.TransactionID)

	assert.Equal(t, 10, f.stock(t, swordID), "la reversión queda confirmada")
	stored, err := f.store.Repos().Transactions.GetByID(ctx, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusReversed, stored.Status)
	assert.Equal(t, 2, stored.Items[0].Quantity, "el registro no se reemplaza")

	// Una transacción revertida no se revierte dos veces.
	require.NoError(t, f.engine.Delete(ctx, tx.ID))
	assert.Equal(t, 10, f.stock(t, swordID))
}

// Un bien inexistente se detecta al validar tras la reversión, se referencie por id o por nombre.
func TestEngine_UpdateWithMissingGoodKeepsReversal(t *testing.T) {
	tests := []struct {
		name string
		item trade.ItemInput
		ref  string
	}{
		{"por id", byID(999, 1), "999"},
		{"por nombre", trade.ItemInput{GoodName: "Mithril Mail", Quantity: 1}, "Mithril Mail"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			f := newFixture(t, trade.EngineConfig{UpdateFailurePolicy: trade.PolicyKeepReversed})
			tx, err := f.engine.Create(ctx, purchase("Geralt", byID(swordID, 2)))
			require.NoError(t, err)

			_, err = f.engine.Update(ctx, tx.ID, purchase("Geralt", tt.item))
			assert.ErrorIs(t, err, domain.ErrUpdateReversed)
			var nf *domain.GoodNotFoundError
			require.True(t, errors.As(err, &nf))
			assert.Equal(t, tt.ref, nf.Ref)

			assert.Equal(t, 10, f.stock(t, swordID))
			stored, err := f.store.Repos().Transactions.GetByID(ctx, tx.ID)
			require.NoError(t, err)
			assert.Equal(t, entity.StatusReversed, stored.Status)
		})
	}
}

func TestEngine_UpdateWithMissingGoodRollsBack(t *testing.T) {
	for _, item := range []trade.ItemInput{byID(999, 1), {GoodName: "Mithril Mail", Quantity: 1}} {
		ctx := context.Background()
		f := newFixture(t, trade.EngineConfig{UpdateFailurePolicy: trade.PolicyRollback})
		tx, err := f.engine.Create(ctx, purchase("Geralt", byID(swordID, 2)))
		require.NoError(t, err)

		_, err = f.engine.Update(ctx, tx.ID, purchase("Geralt", item))
		assert.ErrorIs(t, err, domain.ErrGoodNotFound)
		assert.NotErrorIs(t, err, domain.ErrUpdateReversed)
		assert.Equal(t, 8, f.stock(t, swordID))
	}
}

func TestEngine_ReversedTransactionCanBeUpdatedAgain(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, trade.EngineConfig{})
	tx, err := f.engine.Create(ctx, purchase("Geralt", byID(swordID, 2)))
	require.NoError(t, err)
	_, err = f.engine.Update(ctx, tx.ID, purchase("Geralt", byID(swordID, 20)))
	require.ErrorIs(t, err, domain.ErrUpdateReversed)

	updated, err := f.engine.Update(ctx, tx.ID, purchase("Geralt", byID(swordID, 3)))
	require.NoError(t, err)
	assert.Equal(t, entity.StatusActive, updated.Status)
	assert.Equal(t, 7, f.stock(t, swordID))
}

func TestEngine_UpdateFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, trade.EngineConfig{UpdateFailurePolicy: trade.PolicyRollback})
	tx, err := f.engine.Create(ctx, purchase("Geralt", byID(swordID, 2)))
	require.NoError(t, err)

	_, err = f.engine.Update(ctx, tx.ID, purchase("Geralt", byID(swordID, 20)))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.NotErrorIs(t, err, domain.ErrUpdateReversed)

	assert.Equal(t, 8, f.stock(t, swordID))
	stored, err := f.store.Repos().Transactions.GetByID(ctx, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusActive, stored.Status)
}

func TestEngine_DeleteSkipsMissingGoods(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, trade.EngineConfig{})
	tx, err := f.engine.Create(ctx, purchase("Geralt", byID(swordID, 2), byID(bowID, 1)))
	require.NoError(t, err)
	require.NoError(t, f.store.Repos().Goods.Delete(ctx, bowID))

	require.NoError(t, f.engine.Delete(ctx, tx.ID))
	assert.Equal(t, 10, f.stock(t, swordID))
	assert.Equal(t, 0, f.count(t))
}

func TestEngine_DeleteSaleWhoseStockWasConsumed(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, trade.EngineConfig{})
	s, err := f.engine.Create(ctx, sale("Zoltan", byID(swordID, 5)))
	require.NoError(t, err)
	_, err = f.engine.Create(ctx, purchase("Geralt", byID(swordID, 15)))
	require.NoError(t, err)

	err = f.engine.Delete(ctx, s.ID)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 0, f.stock(t, swordID))
	assert.Equal(t, 2, f.count(t))
}

func TestEngine_DeleteMissing(t *testing.T) {
	f := newFixture(t, trade.EngineConfig{})
	assert.ErrorIs(t, f.engine.Delete(context.Background(), "nope"), domain.ErrTransactionNotFound)
}

// stock = inicial − Σ compras + Σ ventas sobre las transacciones vigentes.
func TestEngine_StockConservation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, trade.EngineConfig{})

	t1, err := f.engine.Create(ctx, purchase("Geralt", byID(swordID, 3), byID(bowID, 1)))
	require.NoError(t, err)
	_, err = f.engine.Create(ctx, sale("Zoltan", byID(swordID, 6)))
	require.NoError(t, err)
	t3, err := f.engine.Create(ctx, purchase("Geralt", byID(swordID, 4), byID(swordID, 1)))
	require.NoError(t, err)
	_, err = f.engine.Update(ctx, t1.ID, sale("Zoltan", byID(bowID, 2)))
	require.NoError(t, err)
	require.NoError(t, f.engine.Delete(ctx, t3.ID))
	_, err = f.engine.Create(ctx, purchase("Geralt", byID(bowID, 50)))
	require.Error(t, err)

	expected := map[int64]int{swordID: 10, bowID: 4}
	list, err := f.store.Repos().Transactions.List(ctx, repository.TransactionFilter{})
	require.NoError(t, err)
	for _, tx := range list {
		for _, it := range tx.Items {
			expected[it.GoodID] += tx.Type.Delta(it.Quantity)
		}
	}
	assert.Equal(t, expected[swordID], f.stock(t, swordID))
	assert.Equal(t, expected[bowID], f.stock(t, bowID))
	assert.Equal(t, 16, f.stock(t, swordID))
	assert.Equal(t, 6, f.stock(t, bowID))
}

func TestEngine_CreateOnce(t *testing.T) {
	ctx := context.Background()
	idem := memory.NewIdempotencyStore(time.Minute)
	f := newFixture(t, trade.EngineConfig{Idempotency: idem})

	first, replayed, err := f.engine.CreateOnce(ctx, "key-1", purchase("Geralt", byID(swordID, 2)))
	require.NoError(t, err)
	assert.False(t, replayed)

	again, replayed, err := f.engine.CreateOnce(ctx, "key-1", purchase("Geralt", byID(swordID, 2)))
	require.NoError(t, err)
	assert.True(t, replayed)
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, 8, f.stock(t, swordID), "la repetición no vuelve a mover stock")

	_, reserved, err := idem.Reserve(ctx, "key-2")
	require.NoError(t, err)
	require.True(t, reserved)
	_, _, err = f.engine.CreateOnce(ctx, "key-2", purchase("Geralt", byID(swordID, 1)))
	assert.ErrorIs(t, err, domain.ErrDuplicateRequest)

	_, _, err = f.engine.CreateOnce(ctx, "key-3", purchase("Geralt", byID(swordID, 100)))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	_, _, err = f.engine.CreateOnce(ctx, "key-3", purchase("Geralt", byID(swordID, 1)))
	require.NoError(t, err, "un fallo libera la clave")
	assert.Equal(t, 7, f.stock(t, swordID))
}

func TestParseUpdateFailurePolicy(t *testing.T) {
	p, err := trade.ParseUpdateFailurePolicy("")
	require.NoError(t, err)
	assert.Equal(t, trade.PolicyKeepReversed, p)

	p, err = trade.ParseUpdateFailurePolicy("ROLLBACK")
	require.NoError(t, err)
	assert.Equal(t, trade.PolicyRollback, p)

	_, err = trade.ParseUpdateFailurePolicy("ignore")
	assert.Error(t, err)
}
