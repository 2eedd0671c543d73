package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/storeroom-api/internal/domain"
	"github.com/jhoicas/storeroom-api/internal/domain/entity"
	"github.com/jhoicas/storeroom-api/internal/domain/repository"
	"github.com/jhoicas/storeroom-api/internal/infrastructure/sqlite"
)

// Pruebas de integración del backend embebido contra un archivo temporal.

func openStore(t *testing.T) *testStore {
	t.Helper()
	db, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return &testStore{
		categories: sqlite.NewCategoryRepository(db),
		items:      sqlite.NewItemRepository(db),
		movements:  sqlite.NewMovementRepository(db),
		employees:  sqlite.NewEmployeeRepository(db),
		txRunner:   sqlite.NewTxRunner(db),
	}
}

type testStore struct {
	categories *sqlite.CategoryRepo
	items      *sqlite.ItemRepo
	movements  *sqlite.MovementRepo
	employees  *sqlite.EmployeeRepo
	txRunner   *sqlite.TxRunner
}

func TestSQLite_CategoriaCicloCompleto(t *testing.T) {
	s := openStore(t)

	require.NoError(t, s.categories.Create(&entity.Category{ID: "cat-1", Name: "Ferretería"}))

	got, err := s.categories.GetByName("Ferretería")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "cat-1", got.ID)

	t.Run("duplicado", func(t *testing.T) {
		err := s.categories.Create(&entity.Category{ID: "cat-2", Name: "Ferretería"})
		assert.ErrorIs(t, err, domain.ErrDuplicate)
	})

	t.Run("inexistente es nil nil", func(t *testing.T) {
		got, err := s.categories.GetByID("no-existe")
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestSQLite_BorradoBloqueadoPorFK(t *testing.T) {
	s := openStore(t)

	now := time.Now().UTC()
	require.NoError(t, s.categories.Create(&entity.Category{ID: "cat-1", Name: "Ferretería"}))
	require.NoError(t, s.items.Create(&entity.Item{
		ID: "item-1", Name: "Tornillo M4", Quantity: 5, CategoryID: "cat-1",
		CreatedAt: now, UpdatedAt: now,
	}))

	err := s.categories.Delete("cat-1")
	assert.ErrorIs(t, err, domain.ErrConflict, "la FK debe impedir borrar una categoría en uso")
}

func TestSQLite_TransaccionRevierte(t *testing.T) {
	s := openStore(t)

	now := time.Now().UTC()
	require.NoError(t, s.items.Create(&entity.Item{
		ID: "item-1", Name: "Tornillo M4", Quantity: 5, CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, s.employees.Create(&entity.Employee{ID: "emp-1", Name: "Ana Gómez"}))

	boom := errors.New("boom")
	err := s.txRunner.Run(context.Background(), func(
		items repository.ItemRepository,
		movements repository.MovementRepository,
	) error {
		if err := items.UpdateQuantity("item-1", 99); err != nil {
			return err
		}
		if err := movements.Create(&entity.Movement{
			ItemID: "item-1", Quantity: 94, Kind: entity.MovementKindRECEIVE,
			OccurredAt: now, EmployeeID: "emp-1", SupplierID: "",
		}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	item, err := s.items.GetByID("item-1")
	require.NoError(t, err)
	assert.Equal(t, int64(5), item.Quantity, "el rollback debe deshacer la cantidad")

	movs, err := s.movements.ListByItem("item-1")
	require.NoError(t, err)
	assert.Empty(t, movs, "el rollback debe deshacer el asiento")
}

func TestSQLite_MovimientoAsignaIDCreciente(t *testing.T) {
	s := openStore(t)

	now := time.Now().UTC()
	require.NoError(t, s.items.Create(&entity.Item{
		ID: "item-1", Name: "Tornillo M4", Quantity: 5, CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, s.employees.Create(&entity.Employee{ID: "emp-1", Name: "Ana Gómez"}))

	first := &entity.Movement{ItemID: "item-1", Quantity: 1, Kind: entity.MovementKindRECEIVE, OccurredAt: now, EmployeeID: "emp-1"}
	second := &entity.Movement{ItemID: "item-1", Quantity: 1, Kind: entity.MovementKindISSUE, OccurredAt: now, EmployeeID: "emp-1"}
	require.NoError(t, s.movements.Create(first))
	require.NoError(t, s.movements.Create(second))
	assert.Greater(t, second.ID, first.ID, "los IDs siguen el orden de asiento")

	// Empate de fecha: el más nuevo (ID mayor) sale primero.
	movs, err := s.movements.ListByItem("item-1")
	require.NoError(t, err)
	require.Len(t, movs, 2)
	assert.Equal(t, second.ID, movs[0].ID)
}
