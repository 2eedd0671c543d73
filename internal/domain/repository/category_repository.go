package repository

import "github.com/jhoicas/storeroom-api/internal/domain/entity"

// CategoryRepository define el puerto de persistencia para Category.
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	GetByName(name string) (*entity.Category, error)
	Update(category *entity.Category) error
	List() ([]*entity.Category, error)
	// Delete falla con domain.ErrConflict si algún artículo referencia la categoría.
	Delete(id string) error
}
