package usecase

import (
	"github.com/google/uuid"
	"github.com/jhoicas/storeroom-api/internal/application/dto"
	"github.com/jhoicas/storeroom-api/internal/domain"
	"github.com/jhoicas/storeroom-api/internal/domain/entity"
	"github.com/jhoicas/storeroom-api/internal/domain/repository"
	"github.com/jhoicas/storeroom-api/pkg/events"
)

// UnitUseCase CRUD de unidades de medida. Mismas reglas que las categorías.
type UnitUseCase struct {
	repo repository.UnitRepository
	bus  *events.Bus
}

// NewUnitUseCase construye el caso de uso.
func NewUnitUseCase(repo repository.UnitRepository, bus *events.Bus) *UnitUseCase {
	return &UnitUseCase{repo: repo, bus: bus}
}

// Create crea una unidad. ErrDuplicate si el nombre ya existe.
func (uc *UnitUseCase) Create(in dto.CreateUnitRequest) (*dto.UnitResponse, error) {
	name := domain.NormalizeName(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	unit := &entity.Unit{ID: uuid.New().String(), Name: name}
	if err := uc.repo.Create(unit); err != nil {
		return nil, err
	}
	uc.bus.Publish(events.Event{Entity: "unit", Action: events.ActionCreated, ID: unit.ID})
	return toUnitResponse(unit), nil
}

// Update renombra una unidad. ErrNotFound / ErrDuplicate.
func (uc *UnitUseCase) Update(id string, in dto.UpdateUnitRequest) (*dto.UnitResponse, error) {
	name := domain.NormalizeName(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	unit, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, domain.ErrNotFound
	}
	unit.Name = name
	if err := uc.repo.Update(unit); err != nil {
		return nil, err
	}
	uc.bus.Publish(events.Event{Entity: "unit", Action: events.ActionUpdated, ID: unit.ID})
	return toUnitResponse(unit), nil
}

// Delete elimina una unidad. ErrConflict si algún artículo la usa.
func (uc *UnitUseCase) Delete(id string) error {
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	uc.bus.Publish(events.Event{Entity: "unit", Action: events.ActionDeleted, ID: id})
	return nil
}

// List devuelve las unidades ordenadas por nombre.
func (uc *UnitUseCase) List() ([]dto.UnitResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.UnitResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *toUnitResponse(u))
	}
	return items, nil
}

func toUnitResponse(u *entity.Unit) *dto.UnitResponse {
	return &dto.UnitResponse{ID: u.ID, Name: u.Name}
}
