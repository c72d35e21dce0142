package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/trade-ledger-api/internal/application/usecase"
)

// MovementHandler expone el historial de movimientos de stock.
type MovementHandler struct {
	uc *usecase.StockMovementUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *usecase.StockMovementUseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

// ByGood godoc
// @Summary      Movimientos de stock de un bien (más recientes primero)
// @Tags         goods
// @Produce      json
// @Param        id      path   int  true   "ID del bien"
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.StockMovementListResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/goods/{id}/movements [get]
func (h *MovementHandler) ByGood(c *fiber.Ctx) error {
	id, err := goodID(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ListByGood(c.UserContext(), id, pageFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ByTransaction godoc
// @Summary      Movimientos de stock generados por una transacción
// @Tags         transactions
// @Produce      json
// @Param        id   path  string  true  "ID de la transacción"
// @Success      200  {object}  dto.StockMovementListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transactions/{id}/movements [get]
func (h *MovementHandler) ByTransaction(c *fiber.Ctx) error {
	out, err := h.uc.ListByTransaction(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
