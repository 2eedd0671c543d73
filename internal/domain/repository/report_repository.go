package repository

import (
	"context"
	"time"
)

// RecentMovementRow es un asiento del libro ya unido con los nombres de
// artículo, empleado y proveedor, listo para mostrar.
type RecentMovementRow struct {
	MovementID   int64
	OccurredAt   time.Time
	Kind         string
	Quantity     int64
	ItemName     string
	EmployeeName string
	SupplierName string // vacío si el movimiento no lleva proveedor
	Notes        string
}

// CategoryStockRow es el desglose de existencias de una categoría.
// Las categorías sin artículos aparecen con contadores en cero.
type CategoryStockRow struct {
	CategoryID   string
	CategoryName string
	ItemCount    int
	LowStock     int
}

// ReportRepository consultas de solo lectura para el dashboard.
// Leen únicamente estado confirmado; ninguna muta nada.
type ReportRepository interface {
	CountItems(ctx context.Context) (int, error)
	CountLowStock(ctx context.Context, threshold int64) (int, error)
	// CountMovements cuenta asientos de un tipo con occurred_at en [from, to).
	CountMovements(ctx context.Context, kind string, from, to time.Time) (int, error)
	// RecentMovements devuelve los últimos asientos ordenados por fecha
	// descendente; a igual fecha, por ID descendente (orden de inserción).
	RecentMovements(ctx context.Context, limit int) ([]RecentMovementRow, error)
	CategoryBreakdown(ctx context.Context, threshold int64) ([]CategoryStockRow, error)
}
