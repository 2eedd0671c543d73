package entity

import "time"

// Item es un artículo del almacén con su existencia actual.
// Quantity solo se modifica a través del motor de movimientos; la edición
// administrativa se registra como un movimiento ADJUSTMENT, nunca como un
// update directo.
type Item struct {
	ID          string
	Name        string // único (forma normalizada)
	Description string
	Quantity    int64 // nunca negativa
	CategoryID  string // vacío = sin categoría
	UnitID      string // vacío = sin unidad
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
