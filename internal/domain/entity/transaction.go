package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType tipo de transacción.
type TransactionType string

const (
	TransactionPurchase TransactionType = "purchase" // compra de un adquiriente: resta stock
	TransactionSale     TransactionType = "sale"     // venta de un proveedor: suma stock
)

// ParseTransactionType valida el tipo recibido. ok=false si está vacío o no es reconocido.
func ParseTransactionType(s string) (TransactionType, bool) {
	switch TransactionType(s) {
	case TransactionPurchase, TransactionSale:
		return TransactionType(s), true
	}
	return "", false
}

// ClientKind colección de contrapartes que corresponde al tipo.
func (t TransactionType) ClientKind() ClientKind {
	if t == TransactionPurchase {
		return ClientKindAcquirer
	}
	return ClientKindSupplier
}

// Delta variación de stock que aplica una línea de cantidad q de este tipo.
func (t TransactionType) Delta(q int) int {
	if t == TransactionPurchase {
		return -q
	}
	return q
}

// TransactionStatus estado de conciliación de una transacción.
type TransactionStatus string

const (
	// StatusActive: los efectos de stock de la transacción están aplicados.
	StatusActive TransactionStatus = "active"
	// StatusReversed: una actualización fallida revirtió sus efectos y no los reaplicó.
	// La transacción no aporta stock hasta que se actualice con éxito o se elimine.
	StatusReversed TransactionStatus = "reversed"
)

// TransactionItem línea embebida de una transacción. PriceAtTransaction es inmutable una vez persistida.
type TransactionItem struct {
	GoodID             int64
	Quantity           int
	PriceAtTransaction decimal.Decimal
}

// Transaction registro de una compra o venta con sus líneas y total derivado.
type Transaction struct {
	ID          string
	Type        TransactionType
	Timestamp   time.Time
	Client      ClientRef
	Items       []TransactionItem
	TotalAmount decimal.Decimal // Σ Quantity × PriceAtTransaction
	Status      TransactionStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Applied indica si los efectos de stock de la transacción están vigentes.
func (t *Transaction) Applied() bool { return t.Status != StatusReversed }

// GoodIDs ids de bienes referenciados, sin repetir, en orden de aparición.
func (t *Transaction) GoodIDs() []int64 {
	seen := make(map[int64]bool, len(t.Items))
	ids := make([]int64, 0, len(t.Items))
	for _, it := range t.Items {
		if !seen[it.GoodID] {
			seen[it.GoodID] = true
			ids = append(ids, it.GoodID)
		}
	}
	return ids
}
