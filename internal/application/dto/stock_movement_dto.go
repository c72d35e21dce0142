package dto

import "time"

// StockMovementResponse un ajuste de stock registrado por el motor.
type StockMovementResponse struct {
	ID            string    `json:"id"`
	GoodID        int64     `json:"good_id"`
	TransactionID string    `json:"transaction_id"`
	Reason        string    `json:"reason"`
	Delta         int       `json:"delta"`
	StockAfter    int       `json:"stock_after"`
	CreatedAt     time.Time `json:"created_at"`
}

// StockMovementListResponse lista de movimientos.
type StockMovementListResponse struct {
	Items []StockMovementResponse `json:"items"`
	Page  *PageResponse           `json:"page,omitempty"`
}
