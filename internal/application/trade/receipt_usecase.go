package trade

import (
	"context"
	"fmt"
)

// ReceiptGenerator genera la representación PDF de una transacción.
type ReceiptGenerator interface {
	GenerateReceiptPDF(ctx context.Context, view *TransactionView) ([]byte, error)
}

// ReceiptUseCase arma el comprobante PDF de una transacción.
type ReceiptUseCase struct {
	queries   *QueryService
	generator ReceiptGenerator
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(queries *QueryService, generator ReceiptGenerator) *ReceiptUseCase {
	return &ReceiptUseCase{queries: queries, generator: generator}
}

// DownloadReceipt devuelve los bytes del PDF y el nombre de archivo sugerido.
// domain.ErrTransactionNotFound si la transacción no existe.
func (uc *ReceiptUseCase) DownloadReceipt(ctx context.Context, id string) (pdfBytes []byte, filename string, err error) {
	view, err := uc.queries.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err = uc.generator.GenerateReceiptPDF(ctx, view)
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("comprobante_%s_%s.pdf", view.Transaction.Type, view.Transaction.ID), nil
}
