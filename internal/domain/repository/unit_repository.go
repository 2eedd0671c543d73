package repository

import "github.com/jhoicas/storeroom-api/internal/domain/entity"

// UnitRepository define el puerto de persistencia para Unit.
type UnitRepository interface {
	Create(unit *entity.Unit) error
	GetByID(id string) (*entity.Unit, error)
	GetByName(name string) (*entity.Unit, error)
	Update(unit *entity.Unit) error
	List() ([]*entity.Unit, error)
	// Delete falla con domain.ErrConflict si algún artículo referencia la unidad.
	Delete(id string) error
}
