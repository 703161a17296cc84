package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/core-stock/internal/application/dto"
	"github.com/jhoicas/core-stock/internal/application/inventory"
)

// StockHandler salidas de stock.
type StockHandler struct {
	uc *inventory.IssueStockUseCase
}

func NewStockHandler(uc *inventory.IssueStockUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// Issue godoc
// @Summary      Registrar salida de stock
// @Description  Resta stock y agrega la salida al historial de consumo. Todas las líneas o ninguna.
// @Tags         stock
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.IssueRequest  true  "líneas"
// @Success      201  {object}  dto.IssueResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stock/issues [post]
func (h *StockHandler) Issue(c *fiber.Ctx) error {
	var in dto.IssueRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Issue(c.UserContext(), GetUserID(c), in.Lines)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
