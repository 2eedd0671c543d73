package repository

import "github.com/jhoicas/storeroom-api/internal/domain/entity"

// ItemRepository define el puerto de persistencia para Item.
// UpdateQuantity y GetForUpdate existen para el motor de movimientos y solo
// tienen sentido dentro de una transacción del TxRunner.
type ItemRepository interface {
	Create(item *entity.Item) error
	GetByID(id string) (*entity.Item, error)
	GetByName(name string) (*entity.Item, error)
	// Update reemplaza nombre/descripción/categoría/unidad. Nunca toca Quantity.
	Update(item *entity.Item) error
	List() ([]*entity.Item, error)
	// GetForUpdate lee el artículo bloqueando la fila (SELECT FOR UPDATE).
	GetForUpdate(id string) (*entity.Item, error)
	// UpdateQuantity escribe la existencia ya validada por el motor.
	UpdateQuantity(id string, quantity int64) error
	Delete(id string) error
}
