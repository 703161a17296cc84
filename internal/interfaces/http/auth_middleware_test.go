package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/core-stock/internal/domain/authz"
	apphttp "github.com/jhoicas/core-stock/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/core-stock/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "u-test"
	testEmail     = "test@corestock.local"
	testIssuer    = "core-stock-test"
	testExpMin    = 60
)

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para parsear el JWT y cargar locals
//   - los guards indicados
//   - un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(guards ...fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	handlers := append([]fiber.Handler{apphttp.AuthMiddleware(testJWTSecret)}, guards...)
	handlers = append(handlers, func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"ok":    true,
			"roles": apphttp.GetRoles(c),
		})
	})
	app.Get("/protected", handlers...)
	return app
}

// tokenFor genera un JWT con los roles y permisos indicados (sin defaults de rol).
func tokenFor(t *testing.T, roles []string, perms ...string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testIssuer, testExpMin, pkgjwt.Identity{
		UserID: testUserID, Email: testEmail, Roles: roles, Permissions: perms,
	})
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// tokenForRole genera un JWT con el rol y sus permisos por defecto.
func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	roles := []string{role}
	return tokenFor(t, roles, authz.DefaultPermissions(roles)...)
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func bodyString(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	app := buildTestApp(apphttp.RequireRole(authz.RoleAdmin))
	resp := doRequest(t, app, tokenForRole(t, authz.RoleAdmin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, []interface{}{"admin"}, body["roles"])
}

func TestRequireRole_AdminAccedeRutaDeOtroRol(t *testing.T) {
	app := buildTestApp(apphttp.RequireRole(authz.RoleBodeguero))
	resp := doRequest(t, app, tokenForRole(t, authz.RoleAdmin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode, "admin pasa cualquier RequireRole")
}

func TestRequireRole_BodegueroAccedeRutaAdminOBodeguero(t *testing.T) {
	app := buildTestApp(apphttp.RequireRole(authz.RoleAdmin, authz.RoleBodeguero))
	resp := doRequest(t, app, tokenForRole(t, authz.RoleBodeguero))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRole_VendedorBloqueadoEnRutaAdmin(t *testing.T) {
	app := buildTestApp(apphttp.RequireRole(authz.RoleAdmin))
	resp := doRequest(t, app, tokenForRole(t, authz.RoleVendedor))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "FORBIDDEN")
}

func TestRequireRole_TokenSinRol_Retorna401(t *testing.T) {
	app := buildTestApp(apphttp.RequireRole(authz.RoleAdmin))
	resp := doRequest(t, app, tokenFor(t, nil, "catalog:read"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "MISSING_ROLE")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SinAuthHeader_Retorna401(t *testing.T) {
	resp := doRequest(t, buildTestApp(), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "MISSING_TOKEN")
}

func TestAuthMiddleware_FormatoInvalido_Retorna401(t *testing.T) {
	resp := doRequest(t, buildTestApp(), "Token abc")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "INVALID_TOKEN")
}

func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	resp := doRequest(t, buildTestApp(), "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenExpirado_Retorna401(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testIssuer, -1, pkgjwt.Identity{UserID: testUserID, Roles: []string{"admin"}})
	require.NoError(t, err)

	resp := doRequest(t, buildTestApp(), "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_ExtraeIdentidad(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		fromCtx := authz.FromContext(c.UserContext())
		return c.JSON(fiber.Map{
			"user_id":  apphttp.GetUserID(c),
			"email":    apphttp.GetEmail(c),
			"ctx_read": fromCtx.Satisfies(authz.Single(authz.PermPurchasingRead)),
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", tokenForRole(t, authz.RoleComprador))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testEmail, body["email"])
	assert.Equal(t, true, body["ctx_read"], "la autorización viaja también en UserContext")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequirePermission / RequireAction
// ──────────────────────────────────────────────────────────────────────────────

func TestRequirePermission(t *testing.T) {
	cases := []struct {
		name   string
		guard  fiber.Handler
		auth   func(t *testing.T) string
		status int
	}{
		{
			name:   "llave de sistema satisface el alias",
			guard:  apphttp.RequirePermission(authz.PermPurchasingRead),
			auth:   func(t *testing.T) string { return tokenFor(t, []string{"auditor"}, "po:read") },
			status: http.StatusOK,
		},
		{
			name:   "basta uno de varios",
			guard:  apphttp.RequirePermission(authz.PermUsersManage, authz.PermReportsRead),
			auth:   func(t *testing.T) string { return tokenFor(t, []string{"auditor"}, "reports:read") },
			status: http.StatusOK,
		},
		{
			name:   "sin el permiso",
			guard:  apphttp.RequirePermission(authz.PermPurchasingWrite),
			auth:   func(t *testing.T) string { return tokenForRole(t, authz.RoleVendedor) },
			status: http.StatusForbidden,
		},
		{
			name:   "admin sin permisos pasa",
			guard:  apphttp.RequirePermission(authz.PermUsersManage),
			auth:   func(t *testing.T) string { return tokenFor(t, []string{"admin"}) },
			status: http.StatusOK,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doRequest(t, buildTestApp(tc.guard), tc.auth(t))
			defer resp.Body.Close()
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}

func TestRequireAction_CompradorCreaPeroNoRecibe(t *testing.T) {
	create := buildTestApp(apphttp.RequireAction(authz.KindPurchaseOrder, authz.ActionCreate))
	resp := doRequest(t, create, tokenForRole(t, authz.RoleComprador))
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	receive := buildTestApp(apphttp.RequireAction(authz.KindPurchaseOrder, authz.ActionReceive))
	resp = doRequest(t, receive, tokenForRole(t, authz.RoleComprador))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRequireAction_AccionDesconocidaSeNiegaAAdmin(t *testing.T) {
	app := buildTestApp(apphttp.RequireAction(authz.KindGoodsReceipt, "delete"))
	resp := doRequest(t, app, tokenForRole(t, authz.RoleAdmin))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
