package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/storeroom-api/internal/application/dto"
	"github.com/jhoicas/storeroom-api/internal/application/inventory"
	"github.com/jhoicas/storeroom-api/internal/domain"
	"github.com/jhoicas/storeroom-api/internal/domain/entity"
	"github.com/jhoicas/storeroom-api/internal/domain/repository"
	"github.com/jhoicas/storeroom-api/pkg/events"
)

// ItemUseCase CRUD de artículos. La cantidad es propiedad del motor de
// movimientos: aquí solo se fija la existencia inicial en el alta y se borra
// en cascada (los asientos del libro primero, después el artículo, en una
// sola transacción).
type ItemUseCase struct {
	repo         repository.ItemRepository
	categoryRepo repository.CategoryRepository
	unitRepo     repository.UnitRepository
	txRunner     inventory.TxRunner
	bus          *events.Bus
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(
	repo repository.ItemRepository,
	categoryRepo repository.CategoryRepository,
	unitRepo repository.UnitRepository,
	txRunner inventory.TxRunner,
	bus *events.Bus,
) *ItemUseCase {
	return &ItemUseCase{
		repo:         repo,
		categoryRepo: categoryRepo,
		unitRepo:     unitRepo,
		txRunner:     txRunner,
		bus:          bus,
	}
}

// Create da de alta un artículo con su existencia inicial (≥ 0).
// Categoría y unidad son opcionales pero, si vienen, deben existir.
func (uc *ItemUseCase) Create(in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	name := domain.NormalizeName(in.Name)
	if name == "" || in.InitialQuantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkReferences(in.CategoryID, in.UnitID); err != nil {
		return nil, err
	}
	now := time.Now()
	item := &entity.Item{
		ID:          uuid.New().String(),
		Name:        name,
		Description: in.Description,
		Quantity:    in.InitialQuantity,
		CategoryID:  in.CategoryID,
		UnitID:      in.UnitID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(item); err != nil {
		return nil, err
	}
	uc.bus.Publish(events.Event{Entity: "item", Action: events.ActionCreated, ID: item.ID})
	return uc.toResponse(item)
}

// GetByID obtiene un artículo con los nombres de categoría y unidad resueltos.
func (uc *ItemUseCase) GetByID(id string) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return uc.toResponse(item)
}

// GetQuantity devuelve la existencia actual.
func (uc *ItemUseCase) GetQuantity(id string) (*dto.ItemQuantityResponse, error) {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return &dto.ItemQuantityResponse{ID: item.ID, Quantity: item.Quantity}, nil
}

// Update edita nombre/descripción/categoría/unidad. La cantidad no es
// editable aquí: las correcciones van como movimiento ADJUSTMENT.
func (uc *ItemUseCase) Update(id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		name := domain.NormalizeName(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		item.Name = name
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.CategoryID != nil {
		item.CategoryID = *in.CategoryID
	}
	if in.UnitID != nil {
		item.UnitID = *in.UnitID
	}
	if err := uc.checkReferences(item.CategoryID, item.UnitID); err != nil {
		return nil, err
	}
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(item); err != nil {
		return nil, err
	}
	uc.bus.Publish(events.Event{Entity: "item", Action: events.ActionUpdated, ID: item.ID})
	return uc.toResponse(item)
}

// Delete borra el artículo en cascada: primero todos sus asientos del libro,
// después el artículo, dentro de una transacción. El artículo es dueño de su
// historial, así que nunca hay conflicto referencial.
func (uc *ItemUseCase) Delete(ctx context.Context, id string) error {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	err = uc.txRunner.Run(ctx, func(
		items repository.ItemRepository,
		movements repository.MovementRepository,
	) error {
		if err := movements.DeleteByItem(id); err != nil {
			return err
		}
		return items.Delete(id)
	})
	if err != nil {
		return err
	}
	uc.bus.Publish(events.Event{Entity: "item", Action: events.ActionDeleted, ID: id})
	return nil
}

// List devuelve los artículos ordenados por nombre, con nombres de categoría
// y unidad resueltos en memoria (dos lecturas, no N+1).
func (uc *ItemUseCase) List() ([]dto.ItemResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	categories, units, err := uc.referenceNames()
	if err != nil {
		return nil, err
	}
	items := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, dto.ItemResponse{
			ID:           it.ID,
			Name:         it.Name,
			Description:  it.Description,
			Quantity:     it.Quantity,
			CategoryID:   it.CategoryID,
			CategoryName: categories[it.CategoryID],
			UnitID:       it.UnitID,
			UnitName:     units[it.UnitID],
			CreatedAt:    it.CreatedAt,
			UpdatedAt:    it.UpdatedAt,
		})
	}
	return items, nil
}

func (uc *ItemUseCase) checkReferences(categoryID, unitID string) error {
	if categoryID != "" {
		category, err := uc.categoryRepo.GetByID(categoryID)
		if err != nil {
			return err
		}
		if category == nil {
			return domain.ErrNotFound
		}
	}
	if unitID != "" {
		unit, err := uc.unitRepo.GetByID(unitID)
		if err != nil {
			return err
		}
		if unit == nil {
			return domain.ErrNotFound
		}
	}
	return nil
}

func (uc *ItemUseCase) referenceNames() (map[string]string, map[string]string, error) {
	categoryList, err := uc.categoryRepo.List()
	if err != nil {
		return nil, nil, err
	}
	unitList, err := uc.unitRepo.List()
	if err != nil {
		return nil, nil, err
	}
	categories := make(map[string]string, len(categoryList))
	for _, c := range categoryList {
		categories[c.ID] = c.Name
	}
	units := make(map[string]string, len(unitList))
	for _, u := range unitList {
		units[u.ID] = u.Name
	}
	return categories, units, nil
}

func (uc *ItemUseCase) toResponse(item *entity.Item) (*dto.ItemResponse, error) {
	resp := &dto.ItemResponse{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Quantity:    item.Quantity,
		CategoryID:  item.CategoryID,
		UnitID:      item.UnitID,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
	if item.CategoryID != "" {
		category, err := uc.categoryRepo.GetByID(item.CategoryID)
		if err != nil {
			return nil, err
		}
		if category != nil {
			resp.CategoryName = category.Name
		}
	}
	if item.UnitID != "" {
		unit, err := uc.unitRepo.GetByID(item.UnitID)
		if err != nil {
			return nil, err
		}
		if unit != nil {
			resp.UnitName = unit.Name
		}
	}
	return resp, nil
}
