package usecase

import (
	"github.com/google/uuid"
	"github.com/jhoicas/storeroom-api/internal/application/dto"
	"github.com/jhoicas/storeroom-api/internal/domain"
	"github.com/jhoicas/storeroom-api/internal/domain/entity"
	"github.com/jhoicas/storeroom-api/internal/domain/repository"
	"github.com/jhoicas/storeroom-api/pkg/events"
)

// CategoryUseCase CRUD de categorías. Escrituras de una sola fila; la única
// regla transversal es el nombre único y el bloqueo de borrado con artículos
// asociados (domain.ErrConflict), que resuelve el repositorio.
type CategoryUseCase struct {
	repo repository.CategoryRepository
	bus  *events.Bus
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository, bus *events.Bus) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, bus: bus}
}

// Create crea una categoría. ErrDuplicate si el nombre ya existe.
func (uc *CategoryUseCase) Create(in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	name := domain.NormalizeName(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	category := &entity.Category{ID: uuid.New().String(), Name: name}
	if err := uc.repo.Create(category); err != nil {
		return nil, err
	}
	uc.bus.Publish(events.Event{Entity: "category", Action: events.ActionCreated, ID: category.ID})
	return toCategoryResponse(category), nil
}

// Update renombra una categoría. ErrNotFound / ErrDuplicate.
func (uc *CategoryUseCase) Update(id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	name := domain.NormalizeName(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	category, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	category.Name = name
	if err := uc.repo.Update(category); err != nil {
		return nil, err
	}
	uc.bus.Publish(events.Event{Entity: "category", Action: events.ActionUpdated, ID: category.ID})
	return toCategoryResponse(category), nil
}

// Delete elimina una categoría. ErrConflict si todavía hay artículos en ella.
func (uc *CategoryUseCase) Delete(id string) error {
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	uc.bus.Publish(events.Event{Entity: "category", Action: events.ActionDeleted, ID: id})
	return nil
}

// List devuelve las categorías ordenadas por nombre.
func (uc *CategoryUseCase) List() ([]dto.CategoryResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCategoryResponse(c))
	}
	return items, nil
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{ID: c.ID, Name: c.Name}
}
