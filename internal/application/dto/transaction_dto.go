package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionItemRequest línea pedida. El bien se referencia por good_id o por good_name.
type TransactionItemRequest struct {
	GoodID   int64  `json:"good_id"`
	GoodName string `json:"good_name"`
	Quantity int    `json:"quantity"`
}

// TransactionRequest cuerpo de POST y PUT /api/transactions.
// Tipo, cliente e ítems los valida el motor para devolver sus errores tipados.
type TransactionRequest struct {
	Type       string                   `json:"type"`
	ClientName string                   `json:"client_name"`
	Items      []TransactionItemRequest `json:"items"`
	Timestamp  *time.Time               `json:"timestamp,omitempty"`
}

// TransactionItemResponse línea con el snapshot de precio y, si existe, el bien actual.
type TransactionItemResponse struct {
	GoodID             int64           `json:"good_id"`
	Quantity           int             `json:"quantity"`
	PriceAtTransaction decimal.Decimal `json:"price_at_transaction"`
	Subtotal           decimal.Decimal `json:"subtotal"`
	Good               *GoodResponse   `json:"good,omitempty"`
}

// TransactionClientResponse contraparte de la transacción.
type TransactionClientResponse struct {
	Kind string `json:"kind"`
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// TransactionResponse salida de una transacción.
type TransactionResponse struct {
	ID          string                    `json:"id"`
	Type        string                    `json:"type"`
	Status      string                    `json:"status"`
	Timestamp   time.Time                 `json:"timestamp"`
	Client      TransactionClientResponse `json:"client"`
	Items       []TransactionItemResponse `json:"items"`
	TotalAmount decimal.Decimal           `json:"total_amount"`
	CreatedAt   time.Time                 `json:"created_at"`
	UpdatedAt   time.Time                 `json:"updated_at"`
}

// TransactionListResponse lista de transacciones.
type TransactionListResponse struct {
	Items []TransactionResponse `json:"items"`
	Page  *PageResponse         `json:"page,omitempty"`
}
