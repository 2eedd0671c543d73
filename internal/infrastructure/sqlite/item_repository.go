package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/storeroom-api/internal/domain"
	"github.com/jhoicas/storeroom-api/internal/domain/entity"
	"github.com/jhoicas/storeroom-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación del puerto ItemRepository sobre SQLite.
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador.
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemColumns = `id, name, description, quantity, category_id, unit_id, created_at, updated_at`

// Create persiste un artículo. domain.ErrDuplicate si el nombre ya existe,
// domain.ErrConflict si la categoría o unidad no existen.
func (r *ItemRepo) Create(item *entity.Item) error {
	_, err := r.q.ExecContext(context.Background(),
		`INSERT INTO items (id, name, description, quantity, category_id, unit_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.Name, nullable(item.Description), item.Quantity,
		nullable(item.CategoryID), nullable(item.UnitID), item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo por ID. (nil, nil) si no existe.
func (r *ItemRepo) GetByID(id string) (*entity.Item, error) {
	return r.get(`SELECT `+itemColumns+` FROM items WHERE id = ?`, id)
}

// GetByName obtiene un artículo por nombre normalizado. (nil, nil) si no existe.
func (r *ItemRepo) GetByName(name string) (*entity.Item, error) {
	return r.get(`SELECT `+itemColumns+` FROM items WHERE name = ?`, name)
}

// GetForUpdate lee el artículo dentro de la transacción. SQLite no tiene
// FOR UPDATE; la conexión única del store ya serializa las transacciones.
func (r *ItemRepo) GetForUpdate(id string) (*entity.Item, error) {
	return r.GetByID(id)
}

func (r *ItemRepo) get(query string, arg any) (*entity.Item, error) {
	var it entity.Item
	var description, categoryID, unitID *string
	err := r.q.QueryRowContext(context.Background(), query, arg).Scan(
		&it.ID, &it.Name, &description, &it.Quantity, &categoryID, &unitID,
		&it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	it.Description = fromNullable(description)
	it.CategoryID = fromNullable(categoryID)
	it.UnitID = fromNullable(unitID)
	return &it, nil
}

// Update reemplaza los campos descriptivos. Nunca toca quantity.
func (r *ItemRepo) Update(item *entity.Item) error {
	res, err := r.q.ExecContext(context.Background(),
		`UPDATE items SET name = ?, description = ?, category_id = ?, unit_id = ?, updated_at = ?
		 WHERE id = ?`,
		item.Name, nullable(item.Description),
		nullable(item.CategoryID), nullable(item.UnitID), item.UpdatedAt, item.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("update item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateQuantity escribe la existencia ya validada por el motor.
func (r *ItemRepo) UpdateQuantity(id string, quantity int64) error {
	res, err := r.q.ExecContext(context.Background(),
		`UPDATE items SET quantity = ?, updated_at = ? WHERE id = ?`,
		quantity, time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("update item quantity: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve todos los artículos ordenados por nombre.
func (r *ItemRepo) List() ([]*entity.Item, error) {
	rows, err := r.q.QueryContext(context.Background(),
		`SELECT `+itemColumns+` FROM items ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		var it entity.Item
		var description, categoryID, unitID *string
		if err := rows.Scan(&it.ID, &it.Name, &description, &it.Quantity,
			&categoryID, &unitID, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		it.Description = fromNullable(description)
		it.CategoryID = fromNullable(categoryID)
		it.UnitID = fromNullable(unitID)
		list = append(list, &it)
	}
	return list, rows.Err()
}

// Delete borra el artículo. domain.ErrNotFound si no existe, domain.ErrConflict
// si aún quedan movimientos que lo referencian.
func (r *ItemRepo) Delete(id string) error {
	res, err := r.q.ExecContext(context.Background(),
		`DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
