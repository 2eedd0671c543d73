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

var _ repository.UnitRepository = (*UnitRepo)(nil)

// UnitRepo implementación del puerto UnitRepository sobre PostgreSQL.
type UnitRepo struct {
	q Querier
}

// NewUnitRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUnitRepository(q Querier) *UnitRepo {
	return &UnitRepo{q: q}
}

// Create persiste una unidad. domain.ErrDuplicate si el nombre ya existe.
func (r *UnitRepo) Create(unit *entity.Unit) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO units (id, name) VALUES ($1, $2)`,
		unit.ID, unit.Name,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert unit: %w", err)
	}
	return nil
}

// GetByID obtiene una unidad por ID. (nil, nil) si no existe.
func (r *UnitRepo) GetByID(id string) (*entity.Unit, error) {
	return r.get(`SELECT id, name FROM units WHERE id = $1`, id)
}

// GetByName obtiene una unidad por nombre normalizado. (nil, nil) si no existe.
func (r *UnitRepo) GetByName(name string) (*entity.Unit, error) {
	return r.get(`SELECT id, name FROM units WHERE name = $1`, name)
}

func (r *UnitRepo) get(query string, arg any) (*entity.Unit, error) {
	var u entity.Unit
	err := r.q.QueryRow(context.Background(), query, arg).Scan(&u.ID, &u.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get unit: %w", err)
	}
	return &u, nil
}

// Update renombra la unidad. domain.ErrDuplicate en colisión de nombre.
func (r *UnitRepo) Update(unit *entity.Unit) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE units SET name = $2 WHERE id = $1`,
		unit.ID, unit.Name,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update unit: %w", err)
	}
	return nil
}

// List devuelve todas las unidades ordenadas por nombre.
func (r *UnitRepo) List() ([]*entity.Unit, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, name FROM units ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	defer rows.Close()
	var list []*entity.Unit
	for rows.Next() {
		var u entity.Unit
		if err := rows.Scan(&u.ID, &u.Name); err != nil {
			return nil, fmt.Errorf("scan unit: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

// Delete elimina una unidad. domain.ErrConflict si algún artículo la usa,
// domain.ErrNotFound si no existe.
func (r *UnitRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(),
		`DELETE FROM units WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete unit: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
