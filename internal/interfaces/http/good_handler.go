package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/trade-ledger-api/internal/application/dto"
	"github.com/jhoicas/trade-ledger-api/internal/application/usecase"
	"github.com/jhoicas/trade-ledger-api/internal/domain"
)

// GoodHandler maneja el catálogo de bienes.
type GoodHandler struct {
	uc *usecase.GoodUseCase
}

// NewGoodHandler construye el handler.
func NewGoodHandler(uc *usecase.GoodUseCase) *GoodHandler {
	return &GoodHandler{uc: uc}
}

// Create godoc
// @Summary      Crear bien
// @Tags         goods
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateGoodRequest  true  "Datos del bien (stock inicial incluido)"
// @Success      201   {object}  dto.GoodResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/goods [post]
func (h *GoodHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateGoodRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener bien por ID
// @Tags         goods
// @Produce      json
// @Param        id   path  int  true  "ID del bien"
// @Success      200  {object}  dto.GoodResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/goods/{id} [get]
func (h *GoodHandler) GetByID(c *fiber.Ctx) error {
	id, err := goodID(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar bienes
// @Tags         goods
// @Produce      json
// @Param        name      query  string  false  "Filtro por nombre (contiene)"
// @Param        material  query  string  false  "Filtro por material"
// @Param        limit     query  int     false  "Límite"  default(20)
// @Param        offset    query  int     false  "Offset"  default(0)
// @Success      200       {object}  dto.GoodListResponse
// @Failure      400       {object}  dto.ErrorResponse
// @Router       /api/goods [get]
func (h *GoodHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.Query("name"), c.Query("material"), pageFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar bien (el stock solo lo mueve el motor de transacciones)
// @Tags         goods
// @Accept       json
// @Produce      json
// @Param        id    path  int                    true  "ID del bien"
// @Param        body  body  dto.UpdateGoodRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.GoodResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/goods/{id} [put]
func (h *GoodHandler) Update(c *fiber.Ctx) error {
	id, err := goodID(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.UpdateGoodRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar bien
// @Tags         goods
// @Param        id   path  int  true  "ID del bien"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/goods/{id} [delete]
func (h *GoodHandler) Delete(c *fiber.Ctx) error {
	id, err := goodID(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func goodID(c *fiber.Ctx) (int64, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: id de bien %q", domain.ErrInvalidInput, c.Params("id"))
	}
	return int64(id), nil
}

func pageFromQuery(c *fiber.Ctx) dto.PageRequest {
	p := dto.PageRequest{Limit: c.QueryInt("limit"), Offset: c.QueryInt("offset")}
	p.DefaultPage()
	return p
}
