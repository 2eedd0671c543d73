package dto

// Requests y responses tipados para los catálogos de referencia
// (categorías, unidades, proveedores, empleados).

type CreateCategoryRequest struct {
	Name string `json:"name"`
}

type UpdateCategoryRequest struct {
	Name string `json:"name"`
}

type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CreateUnitRequest struct {
	Name string `json:"name"`
}

type UpdateUnitRequest struct {
	Name string `json:"name"`
}

type UnitResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CreateSupplierRequest struct {
	Name        string `json:"name"`
	ContactInfo string `json:"contact_info"`
}

// UpdateSupplierRequest campos opcionales: nil = no cambiar.
type UpdateSupplierRequest struct {
	Name        *string `json:"name"`
	ContactInfo *string `json:"contact_info"`
}

type SupplierResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ContactInfo string `json:"contact_info"`
}

type CreateEmployeeRequest struct {
	Name     string `json:"name"`
	Position string `json:"position"`
}

// UpdateEmployeeRequest campos opcionales: nil = no cambiar.
type UpdateEmployeeRequest struct {
	Name     *string `json:"name"`
	Position *string `json:"position"`
}

type EmployeeResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Position string `json:"position"`
}
