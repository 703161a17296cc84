package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/core-stock/internal/application/dto"
	"github.com/jhoicas/core-stock/internal/application/labels"
)

// LabelsHandler hoja de etiquetas en PDF.
type LabelsHandler struct {
	uc *labels.LabelsUseCase
}

func NewLabelsHandler(uc *labels.LabelsUseCase) *LabelsHandler {
	return &LabelsHandler{uc: uc}
}

// Generate godoc
// @Summary      Generar etiquetas de SKU
// @Tags         labels
// @Accept       json
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        body  body  dto.LabelRequest  true  "skus y copias por SKU"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/labels [post]
func (h *LabelsHandler) Generate(c *fiber.Ctx) error {
	var in dto.LabelRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	data, err := h.uc.Generate(c.UserContext(), in.SKUs, in.Copies)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="etiquetas.pdf"`)
	return c.Send(data)
}
