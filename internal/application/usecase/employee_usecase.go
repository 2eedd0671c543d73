package usecase

import (
	"github.com/google/uuid"
	"github.com/jhoicas/storeroom-api/internal/application/dto"
	"github.com/jhoicas/storeroom-api/internal/domain"
	"github.com/jhoicas/storeroom-api/internal/domain/entity"
	"github.com/jhoicas/storeroom-api/internal/domain/repository"
	"github.com/jhoicas/storeroom-api/pkg/events"
)

// EmployeeUseCase altas y ediciones de empleados. Sin borrado, igual que los
// proveedores.
type EmployeeUseCase struct {
	repo repository.EmployeeRepository
	bus  *events.Bus
}

// NewEmployeeUseCase construye el caso de uso.
func NewEmployeeUseCase(repo repository.EmployeeRepository, bus *events.Bus) *EmployeeUseCase {
	return &EmployeeUseCase{repo: repo, bus: bus}
}

// Create crea un empleado. ErrDuplicate si el nombre ya existe.
func (uc *EmployeeUseCase) Create(in dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	name := domain.NormalizeName(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	employee := &entity.Employee{ID: uuid.New().String(), Name: name, Position: in.Position}
	if err := uc.repo.Create(employee); err != nil {
		return nil, err
	}
	uc.bus.Publish(events.Event{Entity: "employee", Action: events.ActionCreated, ID: employee.ID})
	return toEmployeeResponse(employee), nil
}

// Update edita nombre y/o puesto. ErrNotFound / ErrDuplicate.
func (uc *EmployeeUseCase) Update(id string, in dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error) {
	employee, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		name := domain.NormalizeName(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		employee.Name = name
	}
	if in.Position != nil {
		employee.Position = *in.Position
	}
	if err := uc.repo.Update(employee); err != nil {
		return nil, err
	}
	uc.bus.Publish(events.Event{Entity: "employee", Action: events.ActionUpdated, ID: employee.ID})
	return toEmployeeResponse(employee), nil
}

// List devuelve los empleados ordenados por nombre.
func (uc *EmployeeUseCase) List() ([]dto.EmployeeResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.EmployeeResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *toEmployeeResponse(e))
	}
	return items, nil
}

func toEmployeeResponse(e *entity.Employee) *dto.EmployeeResponse {
	return &dto.EmployeeResponse{ID: e.ID, Name: e.Name, Position: e.Position}
}
