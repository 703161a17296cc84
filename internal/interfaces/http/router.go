package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/core-stock/internal/application/analytics"
	"github.com/jhoicas/core-stock/internal/application/auth"
	"github.com/jhoicas/core-stock/internal/application/inventory"
	"github.com/jhoicas/core-stock/internal/application/labels"
	"github.com/jhoicas/core-stock/internal/application/navigation"
	"github.com/jhoicas/core-stock/internal/application/purchasing"
	"github.com/jhoicas/core-stock/internal/application/reorder"
	"github.com/jhoicas/core-stock/internal/domain/authz"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	NavigationUC *navigation.NavigationUseCase
	ReorderUC    *reorder.ReorderUseCase
	PurchasingUC *purchasing.PurchasingUseCase
	LabelsUC     *labels.LabelsUseCase
	IssueUC      *inventory.IssueStockUseCase
	DashboardUC  *appanalytics.DashboardUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/me", authHandler.Me)

	navHandler := NewNavigationHandler(deps.NavigationUC)
	protected.Get("/navigation", navHandler.Menu)
	protected.Get("/authz/actions/:kind", navHandler.Actions)
	protected.Get("/authz/roles", RequireRole(authz.RoleAdmin, authz.RoleAuditor), navHandler.Roles)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", RequirePermission(authz.PermDashboardView), dashboardHandler.GetSummary)

	// Sugerencias de reposición
	reorderHandler := NewReorderHandler(deps.ReorderUC)
	suggestions := protected.Group("/reorder/suggestions",
		RequirePermission(authz.PermPurchasingRead, authz.PermReportsRead))
	suggestions.Get("/", reorderHandler.List)
	suggestions.Get("/by-supplier", reorderHandler.BySupplier)
	suggestions.Get("/export", reorderHandler.Export)

	// Órdenes de compra
	poHandler := NewPurchasingHandler(deps.PurchasingUC)
	po := protected.Group("/purchase-orders")
	po.Post("/drafts", RequireAction(authz.KindPurchaseOrder, authz.ActionCreate), poHandler.CreateDrafts)
	po.Get("/", RequireAction(authz.KindPurchaseOrder, authz.ActionView), poHandler.List)
	po.Get("/:id", RequireAction(authz.KindPurchaseOrder, authz.ActionView), poHandler.Get)
	po.Get("/:id/pdf", RequireAction(authz.KindPurchaseOrder, authz.ActionView), poHandler.PDF)
	po.Get("/:id/receipts", RequireAction(authz.KindGoodsReceipt, authz.ActionView), poHandler.Receipts)
	po.Post("/:id/submit", RequireAction(authz.KindPurchaseOrder, authz.ActionApprove), poHandler.Submit)
	po.Post("/:id/cancel", RequireAction(authz.KindPurchaseOrder, authz.ActionCancel), poHandler.Cancel)
	po.Post("/:id/receive", RequireAction(authz.KindPurchaseOrder, authz.ActionReceive), poHandler.Receive)

	// Salidas de stock
	stockHandler := NewStockHandler(deps.IssueUC)
	protected.Post("/stock/issues", RequirePermission(authz.PermInventoryWrite), stockHandler.Issue)

	// Etiquetas
	labelsHandler := NewLabelsHandler(deps.LabelsUC)
	protected.Post("/labels", RequireAction(authz.KindProduct, authz.ActionPrint), labelsHandler.Generate)
}
