package entity

// Entidades de referencia: registros con nombre único que los artículos y los
// movimientos referencian por ID.

// Category agrupa artículos (reactivo, vidriería, papelería...).
type Category struct {
	ID   string
	Name string
}

// Unit es la unidad de medida de un artículo (caja, litro, pieza...).
type Unit struct {
	ID   string
	Name string
}

// Supplier es un proveedor; obligatorio en los movimientos RECEIVE.
type Supplier struct {
	ID          string
	Name        string
	ContactInfo string
}

// Employee es el empleado responsable de cada movimiento.
type Employee struct {
	ID       string
	Name     string
	Position string
}
