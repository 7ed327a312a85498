package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/validador-cpe/internal/application/dto"
	"github.com/jhoicas/validador-cpe/internal/application/validation"
	"github.com/jhoicas/validador-cpe/internal/domain"
)

// ValidationHandler valida comprobantes sueltos contra SUNAT.
type ValidationHandler struct {
	uc *validation.SingleUseCase
}

// NewValidationHandler construye el handler.
func NewValidationHandler(uc *validation.SingleUseCase) *ValidationHandler {
	return &ValidationHandler{uc: uc}
}

// Validate aplica las reglas locales y consulta SUNAT.
// POST /api/comprobantes/validar
//
// Un rechazo local o la falta de respuesta de SUNAT no son errores HTTP:
// se informan en "resultado" y "reintentar" con 200.
func (h *ValidationHandler) Validate(c *fiber.Ctx) error {
	var in dto.ValidateComprobanteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Validate(c.UserContext(), GetSubject(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "comprobante vacío"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
