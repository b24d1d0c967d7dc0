package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/application/preview"
)

// PricingHandler expone el motor de precios para el formulario de documentos.
type PricingHandler struct {
	uc *preview.UseCase
}

// NewPricingHandler construye el handler.
func NewPricingHandler(uc *preview.UseCase) *PricingHandler {
	return &PricingHandler{uc: uc}
}

// Preview godoc
// @Summary      Previsualizar borrador
// @Description  Aplica las acciones en orden sobre el borrador y devuelve líneas, fechas y totales. No persiste nada.
// @Tags         pricing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PricingPreviewRequest  true  "Borrador y acciones"
// @Success      200   {object}  dto.DraftResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/pricing/preview [post]
func (h *PricingHandler) Preview(c *fiber.Ctx) error {
	var in dto.PricingPreviewRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Preview(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
