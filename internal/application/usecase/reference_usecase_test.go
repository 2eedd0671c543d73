package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/storeroom-api/internal/application/dto"
	"github.com/jhoicas/storeroom-api/internal/application/usecase"
	"github.com/jhoicas/storeroom-api/internal/domain"
	"github.com/jhoicas/storeroom-api/internal/domain/entity"
	"github.com/jhoicas/storeroom-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Casos de uso de los catálogos de referencia sobre el store en memoria.
// ──────────────────────────────────────────────────────────────────────────────

func TestCategoryUseCase_CicloCompleto(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewCategoryUseCase(store.Categories(), nil)

	created, err := uc.Create(dto.CreateCategoryRequest{Name: "  Ferretería  "})
	require.NoError(t, err)
	assert.Equal(t, "Ferretería", created.Name, "el nombre se guarda normalizado")
	assert.NotEmpty(t, created.ID)

	// Duplicado sobre la forma normalizada
	_, err = uc.Create(dto.CreateCategoryRequest{Name: "Ferretería "})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// Nombre vacío tras normalizar
	_, err = uc.Create(dto.CreateCategoryRequest{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	renamed, err := uc.Update(created.ID, dto.UpdateCategoryRequest{Name: "Tornillería"})
	require.NoError(t, err)
	assert.Equal(t, "Tornillería", renamed.Name)

	_, err = uc.Update("no-existe", dto.UpdateCategoryRequest{Name: "Otra"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, uc.Delete(created.ID))
	list, err := uc.List()
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCategoryUseCase_RenombrarADuplicado(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewCategoryUseCase(store.Categories(), nil)

	a, err := uc.Create(dto.CreateCategoryRequest{Name: "Eléctricos"})
	require.NoError(t, err)
	_, err = uc.Create(dto.CreateCategoryRequest{Name: "Pinturas"})
	require.NoError(t, err)

	_, err = uc.Update(a.ID, dto.UpdateCategoryRequest{Name: "Pinturas"})
	assert.ErrorIs(t, err, domain.ErrDuplicate, "renombrar a un nombre ocupado debe fallar")
}

func TestCategoryUseCase_BorrarConArticulos(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewCategoryUseCase(store.Categories(), nil)

	category, err := uc.Create(dto.CreateCategoryRequest{Name: "Ferretería"})
	require.NoError(t, err)
	require.NoError(t, store.Items().Create(&entity.Item{
		ID: "item-1", Name: "Tornillo M4", CategoryID: category.ID,
	}))

	err = uc.Delete(category.ID)
	assert.ErrorIs(t, err, domain.ErrConflict, "una categoría con artículos no se puede borrar")
}

func TestUnitUseCase_Duplicados(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewUnitUseCase(store.Units(), nil)

	_, err := uc.Create(dto.CreateUnitRequest{Name: "caja"})
	require.NoError(t, err)
	_, err = uc.Create(dto.CreateUnitRequest{Name: " caja "})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestSupplierUseCase_ActualizacionParcial(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewSupplierUseCase(store.Suppliers(), nil)

	created, err := uc.Create(dto.CreateSupplierRequest{Name: "Aceros SAS", ContactInfo: "ventas@aceros.co"})
	require.NoError(t, err)

	// Solo contacto: el nombre no cambia.
	contact := "compras@aceros.co"
	updated, err := uc.Update(created.ID, dto.UpdateSupplierRequest{ContactInfo: &contact})
	require.NoError(t, err)
	assert.Equal(t, "Aceros SAS", updated.Name)
	assert.Equal(t, contact, updated.ContactInfo)

	// Nombre vacío tras normalizar se rechaza.
	blank := "  "
	_, err = uc.Update(created.ID, dto.UpdateSupplierRequest{Name: &blank})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestEmployeeUseCase_ActualizacionParcial(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewEmployeeUseCase(store.Employees(), nil)

	created, err := uc.Create(dto.CreateEmployeeRequest{Name: "Ana Gómez", Position: "Almacenista"})
	require.NoError(t, err)

	position := "Jefa de bodega"
	updated, err := uc.Update(created.ID, dto.UpdateEmployeeRequest{Position: &position})
	require.NoError(t, err)
	assert.Equal(t, "Ana Gómez", updated.Name)
	assert.Equal(t, position, updated.Position)

	_, err = uc.Update("no-existe", dto.UpdateEmployeeRequest{Position: &position})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReferenceList_OrdenadoPorNombre(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewUnitUseCase(store.Units(), nil)

	for _, name := range []string{"metro", "caja", "unidad"} {
		_, err := uc.Create(dto.CreateUnitRequest{Name: name})
		require.NoError(t, err)
	}
	list, err := uc.List()
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "caja", list[0].Name)
	assert.Equal(t, "metro", list[1].Name)
	assert.Equal(t, "unidad", list[2].Name)
}
