package repository

import "github.com/jhoicas/storeroom-api/internal/domain/entity"

// SupplierRepository define el puerto de persistencia para Supplier.
// Sin Delete: los proveedores quedan referenciados por el historial de
// movimientos y no se eliminan.
type SupplierRepository interface {
	Create(supplier *entity.Supplier) error
	GetByID(id string) (*entity.Supplier, error)
	GetByName(name string) (*entity.Supplier, error)
	Update(supplier *entity.Supplier) error
	List() ([]*entity.Supplier, error)
}
