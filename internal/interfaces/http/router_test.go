package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/storeroom-api/internal/application/analytics"
	"github.com/jhoicas/storeroom-api/internal/application/dto"
	"github.com/jhoicas/storeroom-api/internal/application/inventory"
	"github.com/jhoicas/storeroom-api/internal/application/usecase"
	"github.com/jhoicas/storeroom-api/internal/domain/entity"
	"github.com/jhoicas/storeroom-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/storeroom-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Pruebas end-to-end de la capa HTTP sobre el store en memoria: rutas,
// códigos de estado y traducción de errores de dominio.
// ──────────────────────────────────────────────────────────────────────────────

// buildTestApp arma la aplicación completa con el store en memoria ya sembrado
// con un artículo (existencia 5), un empleado y un proveedor.
func buildTestApp(t *testing.T) (*fiber.App, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	require.NoError(t, store.Items().Create(&entity.Item{ID: "item-1", Name: "Tornillo M4", Quantity: 5}))
	require.NoError(t, store.Employees().Create(&entity.Employee{ID: "emp-1", Name: "Ana Gómez"}))
	require.NoError(t, store.Suppliers().Create(&entity.Supplier{ID: "sup-1", Name: "Aceros SAS"}))

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		CategoryUC:     usecase.NewCategoryUseCase(store.Categories(), nil),
		UnitUC:         usecase.NewUnitUseCase(store.Units(), nil),
		SupplierUC:     usecase.NewSupplierUseCase(store.Suppliers(), nil),
		EmployeeUC:     usecase.NewEmployeeUseCase(store.Employees(), nil),
		ItemUC:         usecase.NewItemUseCase(store.Items(), store.Categories(), store.Units(), store, nil),
		RecordMovement: inventory.NewRecordMovementUseCase(store, store.Items(), store.Employees(), store.Suppliers(), nil),
		DashboardUC:    analytics.NewDashboardUseCase(store.Reports(), 0),
	})
	return app, store
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
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

func TestRouter_Categorias(t *testing.T) {
	app, _ := buildTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/categories", dto.CreateCategoryRequest{Name: "Ferretería"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	created := decode[dto.CategoryResponse](t, resp)
	assert.Equal(t, "Ferretería", created.Name)

	t.Run("duplicado devuelve 409", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/categories", dto.CreateCategoryRequest{Name: " Ferretería "})
		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
		body := decode[dto.ErrorResponse](t, resp)
		assert.Equal(t, "DUPLICATE", body.Code)
	})

	t.Run("nombre vacío devuelve 400", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/categories", dto.CreateCategoryRequest{Name: "  "})
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("borrar inexistente devuelve 404", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodDelete, "/api/categories/no-existe", nil)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})

	t.Run("borrar con artículos devuelve 409", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/items", dto.CreateItemRequest{
			Name: "Tuerca M4", CategoryID: created.ID,
		})
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)

		resp = doJSON(t, app, http.MethodDelete, "/api/categories/"+created.ID, nil)
		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	})
}

func TestRouter_Movimientos(t *testing.T) {
	app, _ := buildTestApp(t)

	t.Run("entrada válida devuelve 201", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/inventory/movements", dto.RecordMovementRequest{
			ItemName: "Tornillo M4", Quantity: 3, Kind: entity.MovementKindRECEIVE,
			EmployeeName: "Ana Gómez", SupplierName: "Aceros SAS",
		})
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
		out := decode[dto.MovementResponse](t, resp)
		assert.Equal(t, int64(8), out.NewQuantity)
	})

	t.Run("stock insuficiente devuelve 409", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/inventory/movements", dto.RecordMovementRequest{
			ItemName: "Tornillo M4", Quantity: 100, Kind: entity.MovementKindISSUE,
			EmployeeName: "Ana Gómez",
		})
		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
		body := decode[dto.ErrorResponse](t, resp)
		assert.Equal(t, "INSUFFICIENT_STOCK", body.Code)
		assert.Contains(t, body.Message, "Tornillo M4", "el mensaje nombra el artículo con el faltante")
	})

	t.Run("artículo inexistente devuelve 404", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/inventory/movements", dto.RecordMovementRequest{
			ItemName: "No Existe", Quantity: 1, Kind: entity.MovementKindISSUE,
			EmployeeName: "Ana Gómez",
		})
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})

	t.Run("cantidad inválida devuelve 400", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/inventory/movements", dto.RecordMovementRequest{
			ItemName: "Tornillo M4", Quantity: 0, Kind: entity.MovementKindISSUE,
			EmployeeName: "Ana Gómez",
		})
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("ajuste con delta firmado", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/inventory/adjustments", dto.RecordAdjustmentRequest{
			ItemName: "Tornillo M4", Delta: -2, EmployeeName: "Ana Gómez",
		})
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
		out := decode[dto.MovementResponse](t, resp)
		assert.Equal(t, entity.MovementKindADJUSTMENT, out.Kind)
	})
}

func TestRouter_ArticulosYTablero(t *testing.T) {
	app, _ := buildTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/items/item-1/quantity", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	qty := decode[dto.ItemQuantityResponse](t, resp)
	assert.Equal(t, int64(5), qty.Quantity)

	resp = doJSON(t, app, http.MethodGet, "/api/items/no-existe", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/dashboard/summary", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	summary := decode[dto.DashboardSummaryDTO](t, resp)
	assert.Equal(t, 1, summary.TotalItems)
	assert.Equal(t, 1, summary.LowStockItems)

	resp = doJSON(t, app, http.MethodGet, "/api/dashboard/categories", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}
