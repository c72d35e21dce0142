package trade

import (
	"context"

	"github.com/jhoicas/trade-ledger-api/internal/application/dto"
	"github.com/jhoicas/trade-ledger-api/internal/domain/entity"
	domaintrade "github.com/jhoicas/trade-ledger-api/internal/domain/trade"
)

// InputFromRequest adapta el cuerpo HTTP a la intención que recibe el motor.
func InputFromRequest(in dto.TransactionRequest) TransactionInput {
	items := make([]ItemInput, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, ItemInput{GoodID: it.GoodID, GoodName: it.GoodName, Quantity: it.Quantity})
	}
	return TransactionInput{
		Type:       in.Type,
		ClientName: in.ClientName,
		Items:      items,
		Timestamp:  in.Timestamp,
	}
}

// CreateFromRequest crea (de forma idempotente si hay clave) desde el request HTTP.
func (e *Engine) CreateFromRequest(ctx context.Context, key string, in dto.TransactionRequest) (*entity.Transaction, bool, error) {
	return e.CreateOnce(ctx, key, InputFromRequest(in))
}

// UpdateFromRequest actualiza desde el request HTTP.
func (e *Engine) UpdateFromRequest(ctx context.Context, id string, in dto.TransactionRequest) (*entity.Transaction, error) {
	return e.Update(ctx, id, InputFromRequest(in))
}

// ToResponse convierte una vista en la salida HTTP.
func ToResponse(v TransactionView) dto.TransactionResponse {
	tx := v.Transaction
	items := make([]dto.TransactionItemResponse, 0, len(v.Items))
	for _, it := range v.Items {
		items = append(items, dto.TransactionItemResponse{
			GoodID:             it.GoodID,
			Quantity:           it.Quantity,
			PriceAtTransaction: it.PriceAtTransaction,
			Subtotal:           domaintrade.LineTotal(it.Quantity, it.PriceAtTransaction),
			Good:               GoodToResponse(it.Good),
		})
	}
	return dto.TransactionResponse{
		ID:        tx.ID,
		Type:      string(tx.Type),
		Status:    string(tx.Status),
		Timestamp: tx.Timestamp,
		Client: dto.TransactionClientResponse{
			Kind: string(tx.Client.Kind()),
			ID:   tx.Client.ID(),
			Name: v.ClientName,
		},
		Items:       items,
		TotalAmount: tx.TotalAmount,
		CreatedAt:   tx.CreatedAt,
		UpdatedAt:   tx.UpdatedAt,
	}
}

// ToResponses convierte una lista de vistas.
func ToResponses(views []TransactionView) []dto.TransactionResponse {
	out := make([]dto.TransactionResponse, 0, len(views))
	for _, v := range views {
		out = append(out, ToResponse(v))
	}
	return out
}

// GoodToResponse salida de un bien; nil si el bien ya no existe.
func GoodToResponse(g *entity.Good) *dto.GoodResponse {
	if g == nil {
		return nil
	}
	return &dto.GoodResponse{
		ID:        g.ID,
		Name:      g.Name,
		Material:  string(g.Material),
		Weight:    g.Weight,
		Value:     g.Value,
		Stock:     g.Stock,
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
}
