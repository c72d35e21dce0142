package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/trade-ledger-api/internal/application/dto"
	"github.com/jhoicas/trade-ledger-api/internal/domain"
)

// errorStatus traduce un error de dominio a código HTTP y código de respuesta.
// El orden importa: una actualización revertida también envuelve su causa (p. ej. stock insuficiente).
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrUpdateReversed):
		return fiber.StatusConflict, "UPDATE_REVERSED"
	case errors.Is(err, domain.ErrDuplicateRequest):
		return fiber.StatusConflict, "DUPLICATE_REQUEST"
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusBadRequest, "INSUFFICIENT_STOCK"
	case errors.Is(err, domain.ErrInvalidTransactionType):
		return fiber.StatusBadRequest, "INVALID_TRANSACTION_TYPE"
	case errors.Is(err, domain.ErrMissingParameter):
		return fiber.StatusBadRequest, "MISSING_PARAMETER"
	case domain.IsClientError(err):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrClientNotFound):
		return fiber.StatusNotFound, "CLIENT_NOT_FOUND"
	case errors.Is(err, domain.ErrGoodNotFound):
		return fiber.StatusNotFound, "GOOD_NOT_FOUND"
	case errors.Is(err, domain.ErrTransactionNotFound):
		return fiber.StatusNotFound, "TRANSACTION_NOT_FOUND"
	case domain.IsNotFound(err):
		return fiber.StatusNotFound, "NOT_FOUND"
	}
	return fiber.StatusInternalServerError, "INTERNAL"
}

// writeError responde con dto.ErrorResponse. Los 500 no exponen el detalle interno.
func writeError(c *fiber.Ctx, err error) error {
	status, code := errorStatus(err)
	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		requestLogger(c).Error().Err(err).Str("path", c.Path()).Msg("error interno")
		msg = "error interno del servidor"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
