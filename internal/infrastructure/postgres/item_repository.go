package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/storeroom-api/internal/domain"
	"github.com/jhoicas/storeroom-api/internal/domain/entity"
	"github.com/jhoicas/storeroom-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL.
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemColumns = `id, name, description, quantity, category_id, unit_id, created_at, updated_at`

// Create persiste un artículo. domain.ErrDuplicate si el nombre ya existe,
// domain.ErrConflict si la categoría o unidad no existen.
func (r *ItemRepo) Create(item *entity.Item) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO items (id, name, description, quantity, category_id, unit_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
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
	return r.get(`SELECT `+itemColumns+` FROM items WHERE id = $1`, id)
}

// GetByName obtiene un artículo por nombre normalizado. (nil, nil) si no existe.
func (r *ItemRepo) GetByName(name string) (*entity.Item, error) {
	return r.get(`SELECT `+itemColumns+` FROM items WHERE name = $1`, name)
}

// GetForUpdate lee el artículo bloqueando la fila hasta el fin de la
// transacción. Serializa los movimientos concurrentes sobre el mismo artículo.
func (r *ItemRepo) GetForUpdate(id string) (*entity.Item, error) {
	return r.get(`SELECT `+itemColumns+` FROM items WHERE id = $1 FOR UPDATE`, id)
}

func (r *ItemRepo) get(query string, arg any) (*entity.Item, error) {
	var it entity.Item
	var description, categoryID, unitID *string
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&it.ID, &it.Name, &description, &it.Quantity, &categoryID, &unitID,
		&it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	it.Description = fromNullable(description)
	it.CategoryID = fromNullable(categoryID)
	it.UnitID = fromNullable(unitID)
	return &it, nil
}

// Update reemplaza los campos descriptivos. Nunca toca quantity: la existencia
// solo cambia a través del motor de movimientos.
func (r *ItemRepo) Update(item *entity.Item) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE items SET name = $2, description = $3, category_id = $4, unit_id = $5, updated_at = $6
		 WHERE id = $1`,
		item.ID, item.Name, nullable(item.Description),
		nullable(item.CategoryID), nullable(item.UnitID), item.UpdatedAt,
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
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateQuantity escribe la existencia ya validada por el motor. Solo tiene
// sentido tras GetForUpdate dentro de la misma transacción.
func (r *ItemRepo) UpdateQuantity(id string, quantity int64) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE items SET quantity = $2, updated_at = now() WHERE id = $1`,
		id, quantity,
	)
	if err != nil {
		return fmt.Errorf("update item quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve todos los artículos ordenados por nombre.
func (r *ItemRepo) List() ([]*entity.Item, error) {
	rows, err := r.q.Query(context.Background(),
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
// si aún quedan movimientos que lo referencian (la cascada debe ir primero).
func (r *ItemRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
