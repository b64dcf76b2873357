package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/greenhollow/nursery-api/internal/application/auth"
	"github.com/greenhollow/nursery-api/internal/application/catalog"
	"github.com/greenhollow/nursery-api/internal/application/ledger"
	"github.com/greenhollow/nursery-api/internal/application/reports"
	"github.com/greenhollow/nursery-api/internal/application/wholesale"
	"github.com/greenhollow/nursery-api/internal/domain/access"
)

// RouterDeps carries the router dependencies.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	CatalogUC   *catalog.UseCase
	LedgerUC    *ledger.UseCase
	WholesaleUC *wholesale.UseCase
	ReportsUC   *reports.UseCase
	JWTSecret   string
}

// Router registers the API routes. Paths mirror the storefront
// namespace so the route-rule guard applies to API traffic exactly as
// it does to pages: the guard strips the /api mount point and checks
// the remainder against the ordered prefix rules (default deny).
// Fine-grained permissions are layered on top per group.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", OptionalAuth(deps.JWTSecret), RouteGuard("/api"))

	// Auth (public)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/register", authHandler.Register)
	api.Post("/login", authHandler.Login)

	// Catalog. The admin group is registered before the :slug route so
	// /products/admin never resolves as a slug.
	productHandler := NewProductHandler(deps.CatalogUC)
	products := api.Group("/products")
	products.Get("/", productHandler.List)
	adminProducts := products.Group("/admin", RequirePermission(access.PermManageProducts))
	adminProducts.Post("/", productHandler.Create)
	adminProducts.Put("/:id", productHandler.Update)
	adminProducts.Delete("/:id", productHandler.Deactivate)
	products.Get("/:slug", productHandler.GetBySlug)

	// Account area (customer and up).
	wholesaleHandler := NewWholesaleHandler(deps.WholesaleUC, deps.AuthUC)
	account := api.Group("/account")
	account.Get("/me", wholesaleHandler.Me)
	account.Post("/apply-wholesale", wholesaleHandler.Apply)

	staff := api.Group("/staff")

	// Inventory ledger (inventory_manager and up via route rules).
	inventoryHandler := NewInventoryHandler(deps.LedgerUC, deps.CatalogUC)
	inv := staff.Group("/inventory", RequirePermission(access.PermViewInventory))
	inv.Get("/low-stock", inventoryHandler.ListLowStock)
	inv.Post("/items", RequirePermission(access.PermManageInventory), inventoryHandler.CreateItem)
	inv.Get("/items/:id", inventoryHandler.GetItem)
	inv.Post("/items/:id/receive", RequirePermission(access.PermManageInventory), inventoryHandler.ReceiveStock)
	inv.Post("/items/:id/adjust", RequirePermission(access.PermManageInventory), inventoryHandler.AdjustStock)
	inv.Post("/items/:id/reserve", RequirePermission(access.PermManageInventory), inventoryHandler.ReserveStock)
	inv.Post("/items/:id/release", RequirePermission(access.PermManageInventory), inventoryHandler.ReleaseStock)
	inv.Post("/items/:id/mortality", RequirePermission(access.PermRecordMortality), inventoryHandler.RecordMortality)
	inv.Get("/items/:id/mortality", inventoryHandler.ListMortality)
	inv.Get("/items/:id/movements", inventoryHandler.ListMovements)

	// Reports.
	reportHandler := NewReportHandler(deps.ReportsUC)
	rep := staff.Group("/reports", RequirePermission(access.PermViewReports))
	rep.Get("/mortality", reportHandler.Mortality)
	rep.Get("/mortality/pdf", reportHandler.MortalityPDF)

	// Wholesale decisions (manager and up via route rules).
	ws := staff.Group("/wholesale", RequirePermission(access.PermManageWholesale))
	ws.Post("/accounts/:id/action", wholesaleHandler.Act)
}
