package dto

import "time"

// RecordMovementRequest registra una entrada (RECEIVE) o salida (ISSUE).
// Artículo, empleado y proveedor van por nombre: es lo que la capa de
// captura tiene a mano; el motor resuelve los IDs.
type RecordMovementRequest struct {
	ItemName     string `json:"item_name"`
	Quantity     int64  `json:"quantity"` // magnitud positiva
	Kind         string `json:"kind"`     // RECEIVE | ISSUE
	EmployeeName string `json:"employee_name"`
	SupplierName string `json:"supplier_name"` // obligatorio en RECEIVE; ignorado en ISSUE
	Notes        string `json:"notes"`
}

// RecordAdjustmentRequest corrección administrativa de existencia.
// Delta es firmado y distinto de cero; queda asentado en el libro como
// movimiento ADJUSTMENT en lugar de editar la cantidad por fuera.
type RecordAdjustmentRequest struct {
	ItemName     string `json:"item_name"`
	Delta        int64  `json:"delta"`
	EmployeeName string `json:"employee_name"`
	Notes        string `json:"notes"`
}

// MovementResponse resultado de asentar un movimiento.
type MovementResponse struct {
	MovementID  int64     `json:"movement_id"`
	ItemID      string    `json:"item_id"`
	ItemName    string    `json:"item_name"`
	Kind        string    `json:"kind"`
	Quantity    int64     `json:"quantity"`
	NewQuantity int64     `json:"new_quantity"`
	OccurredAt  time.Time `json:"occurred_at"`
}
