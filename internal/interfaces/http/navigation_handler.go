package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/core-stock/internal/application/dto"
	"github.com/jhoicas/core-stock/internal/application/navigation"
	"github.com/jhoicas/core-stock/internal/domain/authz"
)

// NavigationHandler menú filtrado y acciones por tipo de registro.
type NavigationHandler struct {
	uc *navigation.NavigationUseCase
}

func NewNavigationHandler(uc *navigation.NavigationUseCase) *NavigationHandler {
	return &NavigationHandler{uc: uc}
}

// Menu godoc
// @Summary      Menú visible para el usuario
// @Description  Árbol de navegación podado según roles y permisos del token.
// @Tags         navigation
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   dto.NavigationItemDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/navigation [get]
func (h *NavigationHandler) Menu(c *fiber.Ctx) error {
	return c.JSON(h.uc.Menu(c.UserContext()))
}

// Actions godoc
// @Summary      Acciones permitidas sobre un tipo de registro
// @Tags         navigation
// @Produce      json
// @Security     BearerAuth
// @Param        kind  path  string  true  "product | purchase_order | goods_receipt"
// @Success      200  {object}  dto.AllowedActionsDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/authz/actions/{kind} [get]
func (h *NavigationHandler) Actions(c *fiber.Ctx) error {
	kind := c.Params("kind")
	if _, ok := authz.RecordActions[authz.RecordKind(kind)]; !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "tipo de registro desconocido"})
	}
	return c.JSON(h.uc.Actions(c.UserContext(), kind))
}

// Roles godoc
// @Summary      Permisos por defecto de cada rol
// @Description  Solo admin y auditor.
// @Tags         navigation
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   dto.RoleDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/authz/roles [get]
func (h *NavigationHandler) Roles(c *fiber.Ctx) error {
	return c.JSON(h.uc.Roles())
}
