package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/storeroom-api/internal/application/analytics"
	"github.com/jhoicas/storeroom-api/internal/application/inventory"
	"github.com/jhoicas/storeroom-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CategoryUC     *usecase.CategoryUseCase
	UnitUC         *usecase.UnitUseCase
	SupplierUC     *usecase.SupplierUseCase
	EmployeeUC     *usecase.EmployeeUseCase
	ItemUC         *usecase.ItemUseCase
	RecordMovement *inventory.RecordMovementUseCase
	DashboardUC    *analytics.DashboardUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Catálogos de referencia
	categories := api.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	units := api.Group("/units")
	unitHandler := NewUnitHandler(deps.UnitUC)
	units.Post("/", unitHandler.Create)
	units.Get("/", unitHandler.List)
	units.Put("/:id", unitHandler.Update)
	units.Delete("/:id", unitHandler.Delete)

	suppliers := api.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Put("/:id", supplierHandler.Update)

	employees := api.Group("/employees")
	employeeHandler := NewEmployeeHandler(deps.EmployeeUC)
	employees.Post("/", employeeHandler.Create)
	employees.Get("/", employeeHandler.List)
	employees.Put("/:id", employeeHandler.Update)

	// Artículos
	items := api.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Post("/", itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/:id", itemHandler.GetByID)
	items.Get("/:id/quantity", itemHandler.GetQuantity)
	items.Put("/:id", itemHandler.Update)
	items.Delete("/:id", itemHandler.Delete)

	// Motor de movimientos
	invGroup := api.Group("/inventory")
	movementHandler := NewMovementHandler(deps.RecordMovement)
	invGroup.Post("/movements", movementHandler.Record)
	invGroup.Post("/adjustments", movementHandler.RecordAdjustment)

	// Tablero
	dashboard := api.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/summary", dashboardHandler.Summary)
	dashboard.Get("/activity", dashboardHandler.Activity)
	dashboard.Get("/categories", dashboardHandler.Categories)
}
