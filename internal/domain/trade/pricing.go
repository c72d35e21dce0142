package trade

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/trade-ledger-api/internal/domain/entity"
)

// LineTotal = Cantidad × PrecioEnTransacción.
func LineTotal(quantity int, price decimal.Decimal) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity)))
}

// Total suma las líneas de una transacción. Es la única fuente de TotalAmount.
func Total(items []entity.TransactionItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(LineTotal(it.Quantity, it.PriceAtTransaction))
	}
	return total
}
