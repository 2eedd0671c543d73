package entity

import "time"

// Tipos de movimiento del libro de almacén.
const (
	MovementKindRECEIVE    = "RECEIVE"    // entrada: requiere proveedor
	MovementKindISSUE      = "ISSUE"      // salida: proveedor siempre nulo
	MovementKindADJUSTMENT = "ADJUSTMENT" // corrección administrativa con delta firmado
)

// Movement es un asiento inmutable del libro de almacén. Una vez creado no se
// edita ni se borra; solo desaparece en cascada al borrar su artículo.
//
// Quantity es magnitud positiva para RECEIVE/ISSUE (la dirección la da Kind)
// y delta con signo, distinto de cero, para ADJUSTMENT.
type Movement struct {
	ID         int64 // asignado por el store, creciente: orden de inserción
	ItemID     string
	Quantity   int64
	Kind       string
	OccurredAt time.Time
	EmployeeID string
	SupplierID string // vacío = NULL (solo RECEIVE lo lleva)
	Notes      string
}

// ValidKind reporta si kind es un tipo de movimiento conocido.
func ValidKind(kind string) bool {
	switch kind {
	case MovementKindRECEIVE, MovementKindISSUE, MovementKindADJUSTMENT:
		return true
	}
	return false
}

// Delta devuelve el efecto del movimiento sobre la existencia del artículo.
func (m *Movement) Delta() int64 {
	switch m.Kind {
	case MovementKindRECEIVE:
		return m.Quantity
	case MovementKindISSUE:
		return -m.Quantity
	default: // ADJUSTMENT ya viene firmado
		return m.Quantity
	}
}
