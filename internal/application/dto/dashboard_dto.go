package dto

import "time"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary: las cuatro
// tarjetas del tablero.
type DashboardSummaryDTO struct {
	TotalItems    int `json:"total_items"`
	LowStockItems int `json:"low_stock_items"` // quantity < umbral configurado
	ReceivedToday int `json:"received_today"`  // asientos RECEIVE del día
	IssuedToday   int `json:"issued_today"`    // asientos ISSUE del día
}

// ActivityEntryDTO un asiento reciente del libro, con nombres resueltos.
type ActivityEntryDTO struct {
	MovementID   int64     `json:"movement_id"`
	OccurredAt   time.Time `json:"occurred_at"`
	Kind         string    `json:"kind"`
	Quantity     int64     `json:"quantity"`
	ItemName     string    `json:"item_name"`
	EmployeeName string    `json:"employee_name"`
	SupplierName string    `json:"supplier_name,omitempty"`
	Notes        string    `json:"notes,omitempty"`
}

// CategoryBreakdownDTO desglose de una categoría para la vista de distribución.
type CategoryBreakdownDTO struct {
	CategoryID   string `json:"category_id"`
	CategoryName string `json:"category_name"`
	ItemCount    int    `json:"item_count"`
	LowStock     int    `json:"low_stock"`
}
