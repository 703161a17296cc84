package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/core-stock/internal/application/dto"
	"github.com/jhoicas/core-stock/internal/domain/authz"
	"github.com/jhoicas/core-stock/pkg/jwt"
)

// Locals keys cargados por AuthMiddleware.
const (
	LocalUserID        = "user_id"
	LocalEmail         = "email"
	LocalAuthorization = "authorization"
)

// AuthMiddleware valida el Bearer Token JWT y deja en c.Locals el usuario y su
// authz.Authorization (roles + permisos). También la propaga en c.UserContext().
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		id, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}

		a := authz.NewAuthorization(id.Roles, id.Permissions)
		c.Locals(LocalUserID, id.UserID)
		c.Locals(LocalEmail, id.Email)
		c.Locals(LocalAuthorization, a)
		c.SetUserContext(authz.WithAuthorization(c.UserContext(), a))
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetEmail devuelve el email del token.
func GetEmail(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalEmail).(string)
	return s
}

// GetAuthorization roles y permisos del usuario; vacía si no pasó por AuthMiddleware.
func GetAuthorization(c *fiber.Ctx) authz.Authorization {
	if a, ok := c.Locals(LocalAuthorization).(authz.Authorization); ok {
		return a
	}
	return authz.NewAuthorization(nil, nil)
}

// GetRoles roles del token, ordenados.
func GetRoles(c *fiber.Ctx) []string {
	return GetAuthorization(c).Roles()
}

// RequireRole deja pasar si el usuario tiene alguno de los roles (admin siempre pasa).
// Token sin roles → 401 MISSING_ROLE; rol no permitido → 403 FORBIDDEN.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		a := GetAuthorization(c)
		if len(a.Roles()) == 0 {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el token no incluye roles"})
		}
		if a.IsAdmin() {
			return c.Next()
		}
		for _, r := range roles {
			if a.HasRole(r) {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin acceso a este recurso"})
	}
}

// RequirePermission deja pasar si el usuario tiene al menos uno de los permisos
// (resueltos con alias); admin siempre pasa.
func RequirePermission(perms ...authz.Permission) fiber.Handler {
	req := authz.AnyOf(perms...)
	if len(perms) == 1 {
		req = authz.Single(perms[0])
	}
	return func(c *fiber.Ctx) error {
		if req.SatisfiedBy(GetAuthorization(c)) {
			return c.Next()
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Code:    "FORBIDDEN",
			Message: "permiso requerido: " + req.String(),
		})
	}
}
