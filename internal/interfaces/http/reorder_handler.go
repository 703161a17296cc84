package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/core-stock/internal/application/reorder"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReorderHandler sugerencias de reposición.
type ReorderHandler struct {
	uc *reorder.ReorderUseCase
}

func NewReorderHandler(uc *reorder.ReorderUseCase) *ReorderHandler {
	return &ReorderHandler{uc: uc}
}

// List godoc
// @Summary      Sugerencias de reposición
// @Description  Una fila por SKU. Con candidates=true solo los que tienen cantidad sugerida.
// @Tags         reorder
// @Produce      json
// @Security     BearerAuth
// @Param        candidates  query  bool  false  "solo candidatos"
// @Success      200  {object}  dto.ReorderListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/reorder/suggestions [get]
func (h *ReorderHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListSuggestions(c.UserContext(), c.QueryBool("candidates", false))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// BySupplier godoc
// @Summary      Candidatos agrupados por proveedor
// @Tags         reorder
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   dto.SupplierGroupDTO
// @Router       /api/reorder/suggestions/by-supplier [get]
func (h *ReorderHandler) BySupplier(c *fiber.Ctx) error {
	out, err := h.uc.GroupedBySupplier(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar sugerencias a Excel
// @Tags         reorder
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Success      200  {file}  binary
// @Router       /api/reorder/suggestions/export [get]
func (h *ReorderHandler) Export(c *fiber.Ctx) error {
	data, err := h.uc.Export(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	name := fmt.Sprintf("sugerencias-%s.xlsx", time.Now().Format("20060102"))
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Send(data)
}
