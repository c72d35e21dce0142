package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/trade-ledger-api/internal/application/dto"
	"github.com/jhoicas/trade-ledger-api/internal/application/trade"
)

// HeaderIdempotencyKey cabecera opcional de POST /api/transactions.
const HeaderIdempotencyKey = "Idempotency-Key"

// TransactionHandler expone el motor de transacciones y sus consultas.
type TransactionHandler struct {
	engine   *trade.Engine
	queries  *trade.QueryService
	receipts *trade.ReceiptUseCase
}

// NewTransactionHandler construye el handler.
func NewTransactionHandler(engine *trade.Engine, queries *trade.QueryService, receipts *trade.ReceiptUseCase) *TransactionHandler {
	return &TransactionHandler{engine: engine, queries: queries, receipts: receipts}
}

// Create godoc
// @Summary      Registrar transacción (compra o venta)
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string                  false  "Clave de idempotencia"
// @Param        body             body    dto.TransactionRequest  true   "Tipo, cliente e ítems"
// @Success      201   {object}  dto.TransactionResponse
// @Success      200   {object}  dto.TransactionResponse  "Repetición de una clave ya completada"
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transactions [post]
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	var in dto.TransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	tx, replayed, err := h.engine.CreateFromRequest(c.UserContext(), c.Get(HeaderIdempotencyKey), in)
	if err != nil {
		return writeError(c, err)
	}
	view, err := h.queries.GetByID(c.UserContext(), tx.ID)
	if err != nil {
		return writeError(c, err)
	}
	status := fiber.StatusCreated
	if replayed {
		c.Set("Idempotent-Replayed", "true")
		status = fiber.StatusOK
	}
	return c.Status(status).JSON(trade.ToResponse(*view))
}

// List godoc
// @Summary      Listar transacciones (más recientes primero)
// @Tags         transactions
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(50)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.TransactionListResponse
// @Router       /api/transactions [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	views, err := h.queries.List(c.UserContext(), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.TransactionListResponse{
		Items: trade.ToResponses(views),
		Page:  &dto.PageResponse{Limit: limit, Offset: offset},
	})
}

// ByClient godoc
// @Summary      Transacciones de un comprador o proveedor por nombre
// @Tags         transactions
// @Produce      json
// @Param        name  query  string  true  "Nombre exacto del cliente"
// @Success      200   {object}  dto.TransactionListResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/transactions/by-client [get]
func (h *TransactionHandler) ByClient(c *fiber.Ctx) error {
	views, err := h.queries.FindByClientName(c.UserContext(), c.Query("name"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.TransactionListResponse{Items: trade.ToResponses(views)})
}

// ByDate godoc
// @Summary      Transacciones en un rango de fechas
// @Tags         transactions
// @Produce      json
// @Param        start  query  string  true   "Inicio (RFC3339 o YYYY-MM-DD)"
// @Param        end    query  string  true   "Fin (RFC3339 o YYYY-MM-DD, inclusivo)"
// @Param        type   query  string  false  "purchase | sale"
// @Success      200    {object}  dto.TransactionListResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/transactions/by-date [get]
func (h *TransactionHandler) ByDate(c *fiber.Ctx) error {
	views, err := h.queries.FindByDateRange(c.UserContext(), c.Query("start"), c.Query("end"), c.Query("type"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.TransactionListResponse{Items: trade.ToResponses(views)})
}

// GetByID godoc
// @Summary      Obtener transacción por ID
// @Tags         transactions
// @Produce      json
// @Param        id   path  string  true  "ID de la transacción"
// @Success      200  {object}  dto.TransactionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transactions/{id} [get]
func (h *TransactionHandler) GetByID(c *fiber.Ctx) error {
	view, err := h.queries.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(trade.ToResponse(*view))
}

// Receipt godoc
// @Summary      Descargar comprobante PDF
// @Tags         transactions
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la transacción"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transactions/{id}/receipt [get]
func (h *TransactionHandler) Receipt(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.receipts.DownloadReceipt(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

// Update godoc
// @Summary      Actualizar transacción (revierte y reaplica stock)
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID de la transacción"
// @Param        body  body  dto.TransactionRequest  true  "Nuevo contenido completo"
// @Success      200   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "Stock revertido sin reaplicar"
// @Router       /api/transactions/{id} [put]
func (h *TransactionHandler) Update(c *fiber.Ctx) error {
	var in dto.TransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	tx, err := h.engine.UpdateFromRequest(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	view, err := h.queries.GetByID(c.UserContext(), tx.ID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(trade.ToResponse(*view))
}

// Delete godoc
// @Summary      Eliminar transacción (revierte su efecto en el stock)
// @Tags         transactions
// @Param        id   path  string  true  "ID de la transacción"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transactions/{id} [delete]
func (h *TransactionHandler) Delete(c *fiber.Ctx) error {
	if err := h.engine.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
