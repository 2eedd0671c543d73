package inventory

import (
	"context"
	"strconv"
	"time"

	"github.com/jhoicas/storeroom-api/internal/application/dto"
	"github.com/jhoicas/storeroom-api/internal/domain"
	"github.com/jhoicas/storeroom-api/internal/domain/entity"
	"github.com/jhoicas/storeroom-api/internal/domain/repository"
	"github.com/jhoicas/storeroom-api/pkg/events"
)

// RecordMovementUseCase asienta movimientos de almacén (RECEIVE, ISSUE,
// ADJUSTMENT) de forma transaccional: bloqueo de la fila del artículo,
// verificación de existencia suficiente y asiento del libro en un solo
// Commit. Si cualquier paso falla no queda ni asiento ni cambio de cantidad.
type RecordMovementUseCase struct {
	txRunner     TxRunner
	itemRepo     repository.ItemRepository
	employeeRepo repository.EmployeeRepository
	supplierRepo repository.SupplierRepository
	bus          *events.Bus // opcional: nil = sin notificaciones
}

// NewRecordMovementUseCase construye el caso de uso.
func NewRecordMovementUseCase(
	txRunner TxRunner,
	itemRepo repository.ItemRepository,
	employeeRepo repository.EmployeeRepository,
	supplierRepo repository.SupplierRepository,
	bus *events.Bus,
) *RecordMovementUseCase {
	return &RecordMovementUseCase{
		txRunner:     txRunner,
		itemRepo:     itemRepo,
		employeeRepo: employeeRepo,
		supplierRepo: supplierRepo,
		bus:          bus,
	}
}

// RecordMovement valida y asienta una entrada o salida.
//
// Orden de validación: cantidad positiva y tipo conocido; artículo y empleado
// resueltos por nombre; proveedor obligatorio y resuelto solo en RECEIVE.
// En ISSUE el proveedor se asienta NULL aunque venga informado.
func (uc *RecordMovementUseCase) RecordMovement(ctx context.Context, in dto.RecordMovementRequest) (*dto.MovementResponse, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Kind != entity.MovementKindRECEIVE && in.Kind != entity.MovementKindISSUE {
		return nil, domain.ErrInvalidInput
	}

	item, err := uc.resolveItem(in.ItemName)
	if err != nil {
		return nil, err
	}
	employee, err := uc.resolveEmployee(in.EmployeeName)
	if err != nil {
		return nil, err
	}

	supplierID := ""
	if in.Kind == entity.MovementKindRECEIVE {
		if domain.NormalizeName(in.SupplierName) == "" {
			return nil, domain.ErrInvalidInput
		}
		supplier, err := uc.supplierRepo.GetByName(domain.NormalizeName(in.SupplierName))
		if err != nil {
			return nil, err
		}
		if supplier == nil {
			return nil, domain.ErrNotFound
		}
		supplierID = supplier.ID
	}

	delta := in.Quantity
	if in.Kind == entity.MovementKindISSUE {
		delta = -in.Quantity
	}

	mov := &entity.Movement{
		ItemID:     item.ID,
		Quantity:   in.Quantity,
		Kind:       in.Kind,
		EmployeeID: employee.ID,
		SupplierID: supplierID,
		Notes:      in.Notes,
	}
	return uc.apply(ctx, mov, delta, in.Quantity)
}

// RecordAdjustment asienta una corrección administrativa de existencia como
// movimiento ADJUSTMENT con delta firmado, en lugar de permitir editar la
// cantidad por fuera del libro.
func (uc *RecordMovementUseCase) RecordAdjustment(ctx context.Context, in dto.RecordAdjustmentRequest) (*dto.MovementResponse, error) {
	if in.Delta == 0 {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.resolveItem(in.ItemName)
	if err != nil {
		return nil, err
	}
	employee, err := uc.resolveEmployee(in.EmployeeName)
	if err != nil {
		return nil, err
	}

	requested := in.Delta
	if requested < 0 {
		requested = -requested
	}
	mov := &entity.Movement{
		ItemID:     item.ID,
		Quantity:   in.Delta, // firmado para ADJUSTMENT
		Kind:       entity.MovementKindADJUSTMENT,
		EmployeeID: employee.ID,
		Notes:      in.Notes,
	}
	return uc.apply(ctx, mov, in.Delta, requested)
}

// apply ejecuta la parte transaccional: releer el artículo con bloqueo de
// fila, aplicar el delta con guarda de no-negatividad, escribir la nueva
// existencia y asentar el movimiento. Todo o nada.
func (uc *RecordMovementUseCase) apply(ctx context.Context, mov *entity.Movement, delta, requested int64) (*dto.MovementResponse, error) {
	now := time.Now()
	mov.OccurredAt = now

	var resp *dto.MovementResponse
	err := uc.txRunner.Run(ctx, func(
		items repository.ItemRepository,
		movements repository.MovementRepository,
	) error {
		current, err := items.GetForUpdate(mov.ItemID)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		newQty := current.Quantity + delta
		if newQty < 0 {
			return &domain.InsufficientStockError{
				ItemName:  current.Name,
				Available: current.Quantity,
				Requested: requested,
			}
		}
		if err := items.UpdateQuantity(current.ID, newQty); err != nil {
			return err
		}
		if err := movements.Create(mov); err != nil {
			return err
		}
		resp = &dto.MovementResponse{
			MovementID:  mov.ID,
			ItemID:      current.ID,
			ItemName:    current.Name,
			Kind:        mov.Kind,
			Quantity:    mov.Quantity,
			NewQuantity: newQty,
			OccurredAt:  now,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.bus.Publish(events.Event{Entity: "movement", Action: events.ActionRecorded, ID: strconv.FormatInt(resp.MovementID, 10), At: now})
	uc.bus.Publish(events.Event{Entity: "item", Action: events.ActionUpdated, ID: resp.ItemID, At: now})
	return resp, nil
}

func (uc *RecordMovementUseCase) resolveItem(name string) (*entity.Item, error) {
	item, err := uc.itemRepo.GetByName(domain.NormalizeName(name))
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

func (uc *RecordMovementUseCase) resolveEmployee(name string) (*entity.Employee, error) {
	employee, err := uc.employeeRepo.GetByName(domain.NormalizeName(name))
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, domain.ErrNotFound
	}
	return employee, nil
}
