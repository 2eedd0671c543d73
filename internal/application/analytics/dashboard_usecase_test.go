package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/storeroom-api/internal/application/analytics"
	"github.com/jhoicas/storeroom-api/internal/domain/entity"
	"github.com/jhoicas/storeroom-api/internal/infrastructure/memory"
)

// seedDashboard arma un almacén con dos categorías (una vacía), tres artículos
// (uno escaso con el umbral 10) y movimientos de hoy y de ayer.
func seedDashboard(t *testing.T, now time.Time) *memory.Store {
	t.Helper()
	store := memory.NewStore()

	require.NoError(t, store.Categories().Create(&entity.Category{ID: "cat-1", Name: "Ferretería"}))
	require.NoError(t, store.Categories().Create(&entity.Category{ID: "cat-2", Name: "Pinturas"}))
	require.NoError(t, store.Employees().Create(&entity.Employee{ID: "emp-1", Name: "Ana Gómez"}))
	require.NoError(t, store.Suppliers().Create(&entity.Supplier{ID: "sup-1", Name: "Aceros SAS"}))

	require.NoError(t, store.Items().Create(&entity.Item{ID: "item-1", Name: "Tornillo M4", Quantity: 3, CategoryID: "cat-1"}))
	require.NoError(t, store.Items().Create(&entity.Item{ID: "item-2", Name: "Tuerca M4", Quantity: 50, CategoryID: "cat-1"}))
	require.NoError(t, store.Items().Create(&entity.Item{ID: "item-3", Name: "Martillo", Quantity: 20}))

	yesterday := now.Add(-24 * time.Hour)
	movements := []*entity.Movement{
		{ItemID: "item-1", Quantity: 5, Kind: entity.MovementKindRECEIVE, OccurredAt: now, EmployeeID: "emp-1", SupplierID: "sup-1"},
		{ItemID: "item-1", Quantity: 2, Kind: entity.MovementKindISSUE, OccurredAt: now, EmployeeID: "emp-1"},
		{ItemID: "item-2", Quantity: 1, Kind: entity.MovementKindISSUE, OccurredAt: now, EmployeeID: "emp-1"},
		{ItemID: "item-2", Quantity: 9, Kind: entity.MovementKindRECEIVE, OccurredAt: yesterday, EmployeeID: "emp-1", SupplierID: "sup-1"},
	}
	for _, m := range movements {
		require.NoError(t, store.Movements().Create(m))
	}
	return store
}

func TestDashboard_GetSummary(t *testing.T) {
	now := time.Date(2025, 3, 14, 15, 0, 0, 0, time.UTC)
	store := seedDashboard(t, now)
	uc := analytics.NewDashboardUseCase(store.Reports(), 0) // 0 = umbral por defecto (10)

	summary, err := uc.GetSummary(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.TotalItems)
	assert.Equal(t, 1, summary.LowStockItems, "solo el Tornillo M4 (3) está bajo el umbral 10")
	assert.Equal(t, 1, summary.ReceivedToday, "el RECEIVE de ayer no cuenta para hoy")
	assert.Equal(t, 2, summary.IssuedToday)
}

func TestDashboard_UmbralConfigurable(t *testing.T) {
	now := time.Date(2025, 3, 14, 15, 0, 0, 0, time.UTC)
	store := seedDashboard(t, now)
	uc := analytics.NewDashboardUseCase(store.Reports(), 30)

	summary, err := uc.GetSummary(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.LowStockItems, "con umbral 30 también Martillo (20) cuenta")
}

func TestDashboard_RecentActivity(t *testing.T) {
	now := time.Date(2025, 3, 14, 15, 0, 0, 0, time.UTC)
	store := seedDashboard(t, now)
	uc := analytics.NewDashboardUseCase(store.Reports(), 0)

	entries, err := uc.RecentActivity(context.Background(), 0) // límite por defecto
	require.NoError(t, err)
	require.Len(t, entries, 4)

	// Los tres de hoy comparten fecha: el empate se resuelve por ID
	// descendente, es decir, orden de asiento inverso.
	assert.Greater(t, entries[0].MovementID, entries[1].MovementID)
	assert.Greater(t, entries[1].MovementID, entries[2].MovementID)
	assert.Equal(t, "Tuerca M4", entries[3].ItemName, "el de ayer va de último")

	// Nombres resueltos en la misma fila.
	assert.Equal(t, "Ana Gómez", entries[0].EmployeeName)
	for _, e := range entries {
		if e.Kind == entity.MovementKindRECEIVE {
			assert.Equal(t, "Aceros SAS", e.SupplierName)
		} else {
			assert.Empty(t, e.SupplierName)
		}
	}

	t.Run("límite aplicado", func(t *testing.T) {
		entries, err := uc.RecentActivity(context.Background(), 2)
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})
}

func TestDashboard_CategoryBreakdown(t *testing.T) {
	now := time.Date(2025, 3, 14, 15, 0, 0, 0, time.UTC)
	store := seedDashboard(t, now)
	uc := analytics.NewDashboardUseCase(store.Reports(), 0)

	rows, err := uc.CategoryBreakdown(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2, "las categorías vacías también aparecen")

	// Ordenado por nombre: Ferretería, Pinturas.
	assert.Equal(t, "Ferretería", rows[0].CategoryName)
	assert.Equal(t, 2, rows[0].ItemCount)
	assert.Equal(t, 1, rows[0].LowStock)

	assert.Equal(t, "Pinturas", rows[1].CategoryName)
	assert.Zero(t, rows[1].ItemCount, "categoría sin artículos sale con contadores en cero")
	assert.Zero(t, rows[1].LowStock)
}
