package repository

import "github.com/jhoicas/storeroom-api/internal/domain/entity"

// MovementRepository define el puerto de persistencia para los asientos del
// libro de almacén. Sin Update: los movimientos son inmutables. DeleteByItem
// existe únicamente para la cascada al borrar un artículo.
type MovementRepository interface {
	// Create persiste el asiento y asigna movement.ID (secuencia del store).
	Create(movement *entity.Movement) error
	GetByID(id int64) (*entity.Movement, error)
	ListByItem(itemID string) ([]*entity.Movement, error)
	DeleteByItem(itemID string) error
}
