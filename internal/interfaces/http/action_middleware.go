package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/core-stock/internal/application/dto"
	"github.com/jhoicas/core-stock/internal/domain/authz"
)

// RequireAction verifica que el usuario pueda ejecutar action sobre registros de tipo kind
// según authz.RecordActions. Debe usarse DESPUÉS de AuthMiddleware.
//
// Comportamiento:
//   - 403 FORBIDDEN si la acción no está permitida.
//   - Un par kind/action no registrado se niega siempre, incluso a admin.
func RequireAction(kind authz.RecordKind, action string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !authz.CanPerform(GetAuthorization(c), kind, action) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "acción '" + action + "' no permitida sobre " + string(kind),
			})
		}
		return c.Next()
	}
}
