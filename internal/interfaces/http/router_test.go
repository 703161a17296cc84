package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/core-stock/internal/application/analytics"
	"github.com/jhoicas/core-stock/internal/application/auth"
	"github.com/jhoicas/core-stock/internal/application/dto"
	"github.com/jhoicas/core-stock/internal/application/inventory"
	"github.com/jhoicas/core-stock/internal/application/labels"
	"github.com/jhoicas/core-stock/internal/application/navigation"
	"github.com/jhoicas/core-stock/internal/application/purchasing"
	appreorder "github.com/jhoicas/core-stock/internal/application/reorder"
	"github.com/jhoicas/core-stock/internal/domain/authz"
	"github.com/jhoicas/core-stock/internal/domain/entity"
	"github.com/jhoicas/core-stock/internal/domain/reorder"
	"github.com/jhoicas/core-stock/internal/infrastructure/excel"
	"github.com/jhoicas/core-stock/internal/infrastructure/memory"
	"github.com/jhoicas/core-stock/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/core-stock/internal/interfaces/http"
)

const testPassword = "clave123"

// ──────────────────────────────────────────────────────────────────────────────
// App completa sobre el store en memoria
// ──────────────────────────────────────────────────────────────────────────────

func newRouterApp(t *testing.T) *fiber.App {
	t.Helper()
	now := time.Now()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	st := memory.NewStore()
	st.PutSupplier(entity.Supplier{ID: "S1", Name: "Ferretería Central", LeadTimeDays: 5})
	// A: sin stock y con demanda, siempre candidato. B: sobrado.
	st.PutSnapshot(reorder.StockSnapshot{SKU: "A", Name: "Tornillo", Stock: 0, Min: 10, PackSize: 5, LeadTimeDays: 5, SupplierID: "S1", UnitCost: decimal.NewFromInt(100)})
	st.PutSnapshot(reorder.StockSnapshot{SKU: "B", Name: "Tuerca", Stock: 500, Min: 10, PackSize: 10, LeadTimeDays: 5, SupplierID: "S1", UnitCost: decimal.NewFromInt(50)})
	for d := 1; d <= 30; d++ {
		st.AddIssues(reorder.IssueRecord{SKU: "A", Date: now.AddDate(0, 0, -d), Quantity: 2})
	}
	for _, u := range []entity.User{
		{ID: "u-compras", Email: "compras@corestock.local", Roles: []string{authz.RoleComprador}, Permissions: []string{string(authz.KeyPOApprove)}},
		{ID: "u-bodega", Email: "bodega@corestock.local", Roles: []string{authz.RoleBodeguero}},
		{ID: "u-ventas", Email: "ventas@corestock.local", Roles: []string{authz.RoleVendedor}},
		{ID: "u-auditor", Email: "auditor@corestock.local", Roles: []string{authz.RoleAuditor}},
	} {
		u.PasswordHash = string(hash)
		u.Status = entity.UserStatusActive
		st.PutUser(u)
	}

	stockRepo := memory.NewStockRepository(st)
	supplierRepo := memory.NewSupplierRepository(st)
	reorderUC := appreorder.NewReorderUseCase(stockRepo, memory.NewUsageRepository(st), supplierRepo,
		excel.NewSuggestionsExporter(), reorder.DefaultParams(), nil)
	purchasingUC := purchasing.NewPurchasingUseCase(
		memory.NewPurchaseOrderRepository(st), memory.NewGoodsReceiptRepository(st),
		reorderUC, memory.NewTxRunner(st), nil,
	).WithDocuments(supplierRepo, pdf.NewPurchaseOrderGenerator())

	usageRepo := memory.NewUsageRepository(st)
	poRepo := memory.NewPurchaseOrderRepository(st)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:       auth.NewAuthUseCase(memory.NewUserRepository(st), auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 60, Issuer: testIssuer}),
		NavigationUC: navigation.NewNavigationUseCase(nil),
		ReorderUC:    reorderUC,
		PurchasingUC: purchasingUC,
		LabelsUC:     labels.NewLabelsUseCase(stockRepo, supplierRepo, pdf.NewLabelGenerator()),
		IssueUC:      inventory.NewIssueStockUseCase(memory.NewTxRunner(st), nil),
		DashboardUC:  analytics.NewDashboardUseCase(reorderUC, poRepo, usageRepo),
		JWTSecret:    testJWTSecret,
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func login(t *testing.T, app *fiber.App, email string) string {
	t.Helper()
	resp := call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: email, Password: testPassword})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return decode[dto.LoginResponse](t, resp).Token
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth y navegación
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_LoginCredencialesInvalidas(t *testing.T) {
	app := newRouterApp(t)
	resp := call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "compras@corestock.local", Password: "otra"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRouter_MeDevuelvePermisosEfectivos(t *testing.T) {
	app := newRouterApp(t)
	me := decode[dto.MeResponse](t, call(t, app, http.MethodGet, "/api/me", login(t, app, "compras@corestock.local"), nil))
	assert.Equal(t, "u-compras", me.UserID)
	assert.Contains(t, me.Permissions, "po:approve")
	assert.False(t, me.IsAdmin)
}

func TestRouter_NavegacionFiltradaPorRol(t *testing.T) {
	app := newRouterApp(t)

	labelsOf := func(items []dto.NavigationItemDTO) []string {
		out := make([]string, 0, len(items))
		for _, it := range items {
			out = append(out, it.Label)
		}
		return out
	}
	ventas := decode[[]dto.NavigationItemDTO](t, call(t, app, http.MethodGet, "/api/navigation", login(t, app, "ventas@corestock.local"), nil))
	compras := decode[[]dto.NavigationItemDTO](t, call(t, app, http.MethodGet, "/api/navigation", login(t, app, "compras@corestock.local"), nil))

	assert.NotContains(t, labelsOf(ventas), "Compras")
	assert.Contains(t, labelsOf(compras), "Compras")
}

func TestRouter_AccionesPorTipo(t *testing.T) {
	app := newRouterApp(t)
	tok := login(t, app, "bodega@corestock.local")

	out := decode[dto.AllowedActionsDTO](t, call(t, app, http.MethodGet, "/api/authz/actions/purchase_order", tok, nil))
	assert.Contains(t, out.Actions, authz.ActionReceive)
	assert.NotContains(t, out.Actions, authz.ActionApprove)

	resp := call(t, app, http.MethodGet, "/api/authz/actions/planeta", tok, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_MatrizDeRolesSoloAuditorYAdmin(t *testing.T) {
	app := newRouterApp(t)

	roles := decode[[]dto.RoleDTO](t, call(t, app, http.MethodGet, "/api/authz/roles", login(t, app, "auditor@corestock.local"), nil))
	require.Len(t, roles, 5)
	assert.Equal(t, authz.RoleAdmin, roles[0].Role)
	assert.True(t, roles[0].Override)

	resp := call(t, app, http.MethodGet, "/api/authz/roles", login(t, app, "compras@corestock.local"), nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRouter_Dashboard(t *testing.T) {
	app := newRouterApp(t)
	out := decode[dto.DashboardSummaryDTO](t, call(t, app, http.MethodGet, "/api/dashboard", login(t, app, "ventas@corestock.local"), nil))
	assert.Equal(t, 1, out.Candidates)
	require.NotEmpty(t, out.TopReorder)
	assert.Equal(t, "A", out.TopReorder[0].SKU)
}

// ──────────────────────────────────────────────────────────────────────────────
// Sugerencias
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_SugerenciasSoloCandidatos(t *testing.T) {
	app := newRouterApp(t)
	tok := login(t, app, "compras@corestock.local")

	out := decode[dto.ReorderListResponse](t, call(t, app, http.MethodGet, "/api/reorder/suggestions?candidates=true", tok, nil))
	require.Len(t, out.Suggestions, 1)
	assert.Equal(t, "A", out.Suggestions[0].SKU)
	assert.Equal(t, 2, out.Total)
	assert.Equal(t, 1, out.Candidates)
	assert.Zero(t, out.Suggestions[0].SuggestQty%5, "múltiplo del pack")
}

func TestRouter_SugerenciasProhibidasParaVendedor(t *testing.T) {
	app := newRouterApp(t)
	resp := call(t, app, http.MethodGet, "/api/reorder/suggestions", login(t, app, "ventas@corestock.local"), nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRouter_ExportarExcel(t *testing.T) {
	app := newRouterApp(t)
	resp := call(t, app, http.MethodGet, "/api/reorder/suggestions/export", login(t, app, "compras@corestock.local"), nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "application/vnd.openxmlformats"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), ".xlsx")
}

func TestRouter_SinToken_Retorna401(t *testing.T) {
	app := newRouterApp(t)
	resp := call(t, app, http.MethodGet, "/api/reorder/suggestions", "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ciclo de la orden de compra
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_CicloOrdenDeCompra(t *testing.T) {
	app := newRouterApp(t)
	compras := login(t, app, "compras@corestock.local")
	bodega := login(t, app, "bodega@corestock.local")

	resp := call(t, app, http.MethodPost, "/api/purchase-orders/drafts", compras, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	drafts := decode[[]dto.PurchaseOrderResponse](t, resp)
	require.Len(t, drafts, 1)
	po := drafts[0]
	assert.Equal(t, entity.POStatusDraft, po.Status)
	require.Len(t, po.Lines, 1)
	assert.Equal(t, "A", po.Lines[0].SKU)

	// A ya está en una orden abierta: no se duplica el borrador
	resp = call(t, app, http.MethodPost, "/api/purchase-orders/drafts", compras, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	// bodeguero no puede crear ni emitir
	resp = call(t, app, http.MethodPost, "/api/purchase-orders/"+po.ID+"/submit", bodega, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// recibir un borrador es una transición inválida
	resp = call(t, app, http.MethodPost, "/api/purchase-orders/"+po.ID+"/receive", bodega, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	ordered := decode[dto.PurchaseOrderResponse](t, call(t, app, http.MethodPost, "/api/purchase-orders/"+po.ID+"/submit", compras, nil))
	assert.Equal(t, entity.POStatusOrdered, ordered.Status)
	require.NotNil(t, ordered.SubmittedAt)

	// más de lo pendiente
	resp = call(t, app, http.MethodPost, "/api/purchase-orders/"+po.ID+"/receive", bodega,
		dto.ReceiveRequest{Lines: []dto.ReceiveLineRequest{{SKU: "A", Quantity: po.Lines[0].Quantity + 1}}})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = call(t, app, http.MethodPost, "/api/purchase-orders/"+po.ID+"/receive", bodega, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	gr := decode[dto.GoodsReceiptResponse](t, resp)
	assert.Equal(t, entity.POStatusReceived, gr.OrderStatus)
	assert.Equal(t, "u-bodega", gr.ReceivedBy)

	receipts := decode[[]dto.GoodsReceiptResponse](t, call(t, app, http.MethodGet, "/api/purchase-orders/"+po.ID+"/receipts", bodega, nil))
	require.Len(t, receipts, 1)
	assert.Equal(t, gr.ID, receipts[0].ID)
	assert.Equal(t, entity.POStatusReceived, receipts[0].OrderStatus)

	resp = call(t, app, http.MethodGet, "/api/purchase-orders/"+po.ID+"/receipts", login(t, app, "ventas@corestock.local"), nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// recibido el pedido, A deja de ser candidato
	list := decode[dto.ReorderListResponse](t, call(t, app, http.MethodGet, "/api/reorder/suggestions", compras, nil))
	for _, s := range list.Suggestions {
		if s.SKU == "A" {
			assert.Equal(t, po.Lines[0].Quantity, s.Stock)
		}
	}

	page := decode[dto.PurchaseOrderListResponse](t, call(t, app, http.MethodGet, "/api/purchase-orders?status=received", compras, nil))
	require.Len(t, page.Items, 1)
	assert.Equal(t, po.ID, page.Items[0].ID)

	resp = call(t, app, http.MethodGet, "/api/purchase-orders/"+po.ID+"/pdf", bodega, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
}

func TestRouter_OrdenInexistente_Retorna404(t *testing.T) {
	app := newRouterApp(t)
	resp := call(t, app, http.MethodGet, "/api/purchase-orders/no-existe", login(t, app, "compras@corestock.local"), nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_EstadoInvalido_Retorna400(t *testing.T) {
	app := newRouterApp(t)
	resp := call(t, app, http.MethodGet, "/api/purchase-orders?status=perdida", login(t, app, "compras@corestock.local"), nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Salidas de stock
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_SalidaDeStock(t *testing.T) {
	app := newRouterApp(t)
	bodega := login(t, app, "bodega@corestock.local")

	resp := call(t, app, http.MethodPost, "/api/stock/issues", bodega,
		dto.IssueRequest{Lines: []dto.IssueLineRequest{{SKU: "B", Quantity: 20}}})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	out := decode[dto.IssueResponse](t, resp)
	require.Len(t, out.Lines, 1)
	assert.Equal(t, 480, out.Lines[0].StockAfter)

	resp = call(t, app, http.MethodPost, "/api/stock/issues", bodega,
		dto.IssueRequest{Lines: []dto.IssueLineRequest{{SKU: "A", Quantity: 1}}})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "INSUFFICIENT_STOCK")
}

func TestRouter_SalidaProhibidaParaComprador(t *testing.T) {
	app := newRouterApp(t)
	resp := call(t, app, http.MethodPost, "/api/stock/issues", login(t, app, "compras@corestock.local"),
		dto.IssueRequest{Lines: []dto.IssueLineRequest{{SKU: "B", Quantity: 1}}})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Etiquetas
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_Etiquetas(t *testing.T) {
	app := newRouterApp(t)
	bodega := login(t, app, "bodega@corestock.local")

	resp := call(t, app, http.MethodPost, "/api/labels", bodega, dto.LabelRequest{SKUs: []string{"A", "B"}, Copies: 2})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))

	resp = call(t, app, http.MethodPost, "/api/labels", bodega, dto.LabelRequest{SKUs: []string{"ZZZ"}})
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = call(t, app, http.MethodPost, "/api/labels", login(t, app, "ventas@corestock.local"), dto.LabelRequest{SKUs: []string{"A"}})
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
