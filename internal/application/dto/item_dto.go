package dto

import "time"

// CreateItemRequest alta de artículo. InitialQuantity es la existencia de
// arranque (≥ 0); a partir de ahí la cantidad solo cambia vía movimientos.
type CreateItemRequest struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	InitialQuantity int64  `json:"initial_quantity"`
	CategoryID      string `json:"category_id"`
	UnitID          string `json:"unit_id"`
}

// UpdateItemRequest edición administrativa. No incluye cantidad: las
// correcciones de existencia van por POST /inventory/adjustments.
type UpdateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	CategoryID  *string `json:"category_id"`
	UnitID      *string `json:"unit_id"`
}

type ItemResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Quantity     int64     `json:"quantity"`
	CategoryID   string    `json:"category_id,omitempty"`
	CategoryName string    `json:"category_name,omitempty"`
	UnitID       string    `json:"unit_id,omitempty"`
	UnitName     string    `json:"unit_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type ItemQuantityResponse struct {
	ID       string `json:"id"`
	Quantity int64  `json:"quantity"`
}
