package usecase

import (
	"github.com/google/uuid"
	"github.com/jhoicas/storeroom-api/internal/application/dto"
	"github.com/jhoicas/storeroom-api/internal/domain"
	"github.com/jhoicas/storeroom-api/internal/domain/entity"
	"github.com/jhoicas/storeroom-api/internal/domain/repository"
	"github.com/jhoicas/storeroom-api/pkg/events"
)

// SupplierUseCase altas y ediciones de proveedores. Sin borrado: el historial
// del libro los referencia para siempre.
type SupplierUseCase struct {
	repo repository.SupplierRepository
	bus  *events.Bus
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository, bus *events.Bus) *SupplierUseCase {
	return &SupplierUseCase{repo: repo, bus: bus}
}

// Create crea un proveedor. ErrDuplicate si el nombre ya existe.
func (uc *SupplierUseCase) Create(in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	name := domain.NormalizeName(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	supplier := &entity.Supplier{ID: uuid.New().String(), Name: name, ContactInfo: in.ContactInfo}
	if err := uc.repo.Create(supplier); err != nil {
		return nil, err
	}
	uc.bus.Publish(events.Event{Entity: "supplier", Action: events.ActionCreated, ID: supplier.ID})
	return toSupplierResponse(supplier), nil
}

// Update edita nombre y/o contacto. ErrNotFound / ErrDuplicate.
func (uc *SupplierUseCase) Update(id string, in dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	supplier, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		name := domain.NormalizeName(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		supplier.Name = name
	}
	if in.ContactInfo != nil {
		supplier.ContactInfo = *in.ContactInfo
	}
	if err := uc.repo.Update(supplier); err != nil {
		return nil, err
	}
	uc.bus.Publish(events.Event{Entity: "supplier", Action: events.ActionUpdated, ID: supplier.ID})
	return toSupplierResponse(supplier), nil
}

// List devuelve los proveedores ordenados por nombre.
func (uc *SupplierUseCase) List() ([]dto.SupplierResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSupplierResponse(s))
	}
	return items, nil
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{ID: s.ID, Name: s.Name, ContactInfo: s.ContactInfo}
}
