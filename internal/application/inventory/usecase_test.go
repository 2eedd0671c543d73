package inventory_test

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/storeroom-api/internal/application/dto"
	"github.com/jhoicas/storeroom-api/internal/application/inventory"
	"github.com/jhoicas/storeroom-api/internal/domain"
	"github.com/jhoicas/storeroom-api/internal/domain/entity"
	"github.com/jhoicas/storeroom-api/internal/infrastructure/memory"
	"github.com/jhoicas/storeroom-api/pkg/events"
)

// ──────────────────────────────────────────────────────────────────────────────
// Pruebas del motor de movimientos sobre el store en memoria. El store en
// memoria implementa los mismos puertos que PostgreSQL/SQLite, con rollback
// real en Run, así que el comportamiento transaccional se prueba de verdad.
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	store *memory.Store
	uc    *inventory.RecordMovementUseCase
}

// newFixture arma un store con un artículo ("Tornillo M4", existencia 5),
// un empleado ("Ana Gómez") y un proveedor ("Aceros SAS").
func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	require.NoError(t, store.Items().Create(&entity.Item{
		ID: "item-1", Name: "Tornillo M4", Quantity: 5,
	}))
	require.NoError(t, store.Employees().Create(&entity.Employee{
		ID: "emp-1", Name: "Ana Gómez", Position: "Almacenista",
	}))
	require.NoError(t, store.Suppliers().Create(&entity.Supplier{
		ID: "sup-1", Name: "Aceros SAS",
	}))
	uc := inventory.NewRecordMovementUseCase(
		store, store.Items(), store.Employees(), store.Suppliers(), nil)
	return &fixture{store: store, uc: uc}
}

func TestRecordMovement_Receive(t *testing.T) {
	f := newFixture(t)

	out, err := f.uc.RecordMovement(context.Background(), dto.RecordMovementRequest{
		ItemName:     "Tornillo M4",
		Quantity:     3,
		Kind:         entity.MovementKindRECEIVE,
		EmployeeName: "Ana Gómez",
		SupplierName: "Aceros SAS",
		Notes:        "reposición semanal",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(8), out.NewQuantity, "RECEIVE debe sumar a la existencia")
	assert.Equal(t, "Tornillo M4", out.ItemName)
	assert.NotZero(t, out.MovementID, "el store debe asignar el ID del asiento")

	mov, err := f.store.Movements().GetByID(out.MovementID)
	require.NoError(t, err)
	require.NotNil(t, mov)
	assert.Equal(t, "sup-1", mov.SupplierID, "RECEIVE asienta el proveedor")

	item, err := f.store.Items().GetByID("item-1")
	require.NoError(t, err)
	assert.Equal(t, int64(8), item.Quantity)
}

func TestRecordMovement_Issue(t *testing.T) {
	f := newFixture(t)

	out, err := f.uc.RecordMovement(context.Background(), dto.RecordMovementRequest{
		ItemName:     "Tornillo M4",
		Quantity:     2,
		Kind:         entity.MovementKindISSUE,
		EmployeeName: "Ana Gómez",
		SupplierName: "Aceros SAS", // informado, pero ISSUE lo ignora
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), out.NewQuantity, "ISSUE debe restar de la existencia")

	mov, err := f.store.Movements().GetByID(out.MovementID)
	require.NoError(t, err)
	require.NotNil(t, mov)
	assert.Empty(t, mov.SupplierID, "ISSUE nunca lleva proveedor aunque venga informado")
}

func TestRecordMovement_StockInsuficiente(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.RecordMovement(context.Background(), dto.RecordMovementRequest{
		ItemName:     "Tornillo M4",
		Quantity:     6, // hay 5
		Kind:         entity.MovementKindISSUE,
		EmployeeName: "Ana Gómez",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var detail *domain.InsufficientStockError
	require.ErrorAs(t, err, &detail)
	assert.Equal(t, "Tornillo M4", detail.ItemName)
	assert.Equal(t, int64(5), detail.Available)
	assert.Equal(t, int64(6), detail.Requested)

	// La transacción revirtió: ni cambio de existencia ni asiento en el libro.
	item, err := f.store.Items().GetByID("item-1")
	require.NoError(t, err)
	assert.Equal(t, int64(5), item.Quantity, "la existencia no debe cambiar en un rechazo")
	movs, err := f.store.Movements().ListByItem("item-1")
	require.NoError(t, err)
	assert.Empty(t, movs, "un movimiento rechazado no deja asiento")
}

func TestRecordMovement_Validaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	base := dto.RecordMovementRequest{
		ItemName:     "Tornillo M4",
		Quantity:     1,
		Kind:         entity.MovementKindRECEIVE,
		EmployeeName: "Ana Gómez",
		SupplierName: "Aceros SAS",
	}

	t.Run("cantidad no positiva", func(t *testing.T) {
		for _, q := range []int64{0, -3} {
			in := base
			in.Quantity = q
			_, err := f.uc.RecordMovement(ctx, in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		}
	})

	t.Run("tipo desconocido", func(t *testing.T) {
		in := base
		in.Kind = "TRANSFER"
		_, err := f.uc.RecordMovement(ctx, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("ADJUSTMENT no entra por RecordMovement", func(t *testing.T) {
		in := base
		in.Kind = entity.MovementKindADJUSTMENT
		_, err := f.uc.RecordMovement(ctx, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("artículo inexistente", func(t *testing.T) {
		in := base
		in.ItemName = "Tuerca M4"
		_, err := f.uc.RecordMovement(ctx, in)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("empleado inexistente", func(t *testing.T) {
		in := base
		in.EmployeeName = "Pedro Pérez"
		_, err := f.uc.RecordMovement(ctx, in)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("RECEIVE sin proveedor", func(t *testing.T) {
		in := base
		in.SupplierName = "   "
		_, err := f.uc.RecordMovement(ctx, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("RECEIVE con proveedor inexistente", func(t *testing.T) {
		in := base
		in.SupplierName = "Hierros del Norte"
		_, err := f.uc.RecordMovement(ctx, in)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestRecordMovement_NombresNormalizados(t *testing.T) {
	f := newFixture(t)

	// Espacios de sobra en la captura no deben impedir resolver el artículo.
	out, err := f.uc.RecordMovement(context.Background(), dto.RecordMovementRequest{
		ItemName:     "  Tornillo   M4 ",
		Quantity:     1,
		Kind:         entity.MovementKindISSUE,
		EmployeeName: " Ana  Gómez ",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), out.NewQuantity)
}

func TestRecordAdjustment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("delta positivo", func(t *testing.T) {
		out, err := f.uc.RecordAdjustment(ctx, dto.RecordAdjustmentRequest{
			ItemName: "Tornillo M4", Delta: 4, EmployeeName: "Ana Gómez",
			Notes: "conteo físico",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(9), out.NewQuantity)
		assert.Equal(t, entity.MovementKindADJUSTMENT, out.Kind)
	})

	t.Run("delta negativo", func(t *testing.T) {
		out, err := f.uc.RecordAdjustment(ctx, dto.RecordAdjustmentRequest{
			ItemName: "Tornillo M4", Delta: -9, EmployeeName: "Ana Gómez",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(0), out.NewQuantity, "un ajuste puede dejar la existencia en cero")
	})

	t.Run("delta cero", func(t *testing.T) {
		_, err := f.uc.RecordAdjustment(ctx, dto.RecordAdjustmentRequest{
			ItemName: "Tornillo M4", Delta: 0, EmployeeName: "Ana Gómez",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("delta que dejaría negativo", func(t *testing.T) {
		_, err := f.uc.RecordAdjustment(ctx, dto.RecordAdjustmentRequest{
			ItemName: "Tornillo M4", Delta: -1, EmployeeName: "Ana Gómez",
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInsufficientStock)

		var detail *domain.InsufficientStockError
		require.ErrorAs(t, err, &detail)
		assert.Equal(t, int64(1), detail.Requested, "el faltante se reporta en magnitud")
	})
}

// TestRecordMovement_LibroConsistente verifica la invariante contable: la
// existencia final es la inicial más la suma de los deltas del libro.
func TestRecordMovement_LibroConsistente(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	steps := []dto.RecordMovementRequest{
		{ItemName: "Tornillo M4", Quantity: 10, Kind: entity.MovementKindRECEIVE, EmployeeName: "Ana Gómez", SupplierName: "Aceros SAS"},
		{ItemName: "Tornillo M4", Quantity: 7, Kind: entity.MovementKindISSUE, EmployeeName: "Ana Gómez"},
		{ItemName: "Tornillo M4", Quantity: 2, Kind: entity.MovementKindRECEIVE, EmployeeName: "Ana Gómez", SupplierName: "Aceros SAS"},
	}
	for _, in := range steps {
		_, err := f.uc.RecordMovement(ctx, in)
		require.NoError(t, err)
	}
	_, err := f.uc.RecordAdjustment(ctx, dto.RecordAdjustmentRequest{
		ItemName: "Tornillo M4", Delta: -3, EmployeeName: "Ana Gómez",
	})
	require.NoError(t, err)

	movs, err := f.store.Movements().ListByItem("item-1")
	require.NoError(t, err)
	require.Len(t, movs, 4)

	var sum int64
	for _, m := range movs {
		sum += m.Delta()
	}
	item, err := f.store.Items().GetByID("item-1")
	require.NoError(t, err)
	assert.Equal(t, int64(5)+sum, item.Quantity, "existencia = inicial + suma de deltas del libro")
}

// TestRecordMovement_Concurrencia lanza dos salidas de 4 contra una existencia
// de 5: exactamente una debe confirmar y la otra rechazarse sin asiento.
func TestRecordMovement_Concurrencia(t *testing.T) {
	f := newFixture(t)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.uc.RecordMovement(context.Background(), dto.RecordMovementRequest{
				ItemName:     "Tornillo M4",
				Quantity:     4,
				Kind:         entity.MovementKindISSUE,
				EmployeeName: "Ana Gómez",
			})
		}(i)
	}
	wg.Wait()

	okCount := 0
	for _, err := range errs {
		if err == nil {
			okCount++
		} else {
			assert.True(t, errors.Is(err, domain.ErrInsufficientStock),
				"el rechazo concurrente debe ser por stock insuficiente, fue: %v", err)
		}
	}
	assert.Equal(t, 1, okCount, "solo una de las dos salidas concurrentes puede confirmar")

	item, err := f.store.Items().GetByID("item-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), item.Quantity)

	movs, err := f.store.Movements().ListByItem("item-1")
	require.NoError(t, err)
	assert.Len(t, movs, 1, "solo el movimiento confirmado deja asiento")
}

func TestRecordMovement_PublicaEventos(t *testing.T) {
	store := memory.NewStore()
	require.NoError(t, store.Items().Create(&entity.Item{
		ID: "item-1", Name: "Tornillo M4", Quantity: 5,
	}))
	require.NoError(t, store.Employees().Create(&entity.Employee{
		ID: "emp-1", Name: "Ana Gómez",
	}))

	bus := events.New()
	var received []events.Event
	bus.Subscribe(func(e events.Event) { received = append(received, e) })

	uc := inventory.NewRecordMovementUseCase(
		store, store.Items(), store.Employees(), store.Suppliers(), bus)

	out, err := uc.RecordMovement(context.Background(), dto.RecordMovementRequest{
		ItemName:     "Tornillo M4",
		Quantity:     2,
		Kind:         entity.MovementKindISSUE,
		EmployeeName: "Ana Gómez",
	})
	require.NoError(t, err)

	// Una salida confirmada publica el asiento y la actualización del artículo.
	require.Len(t, received, 2)
	assert.Equal(t, "movement", received[0].Entity)
	assert.Equal(t, events.ActionRecorded, received[0].Action)
	assert.Equal(t, strconv.FormatInt(out.MovementID, 10), received[0].ID)
	assert.Equal(t, "item", received[1].Entity)
	assert.Equal(t, events.ActionUpdated, received[1].Action)
	assert.Equal(t, "item-1", received[1].ID)

	// Un movimiento rechazado no publica nada.
	_, err = uc.RecordMovement(context.Background(), dto.RecordMovementRequest{
		ItemName:     "Tornillo M4",
		Quantity:     100,
		Kind:         entity.MovementKindISSUE,
		EmployeeName: "Ana Gómez",
	})
	require.Error(t, err)
	assert.Len(t, received, 2, "el rollback no debe dejar eventos publicados")
}
