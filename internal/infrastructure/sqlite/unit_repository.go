package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jhoicas/storeroom-api/internal/domain"
	"github.com/jhoicas/storeroom-api/internal/domain/entity"
	"github.com/jhoicas/storeroom-api/internal/domain/repository"
)

var _ repository.UnitRepository = (*UnitRepo)(nil)

// UnitRepo implementación del puerto UnitRepository sobre SQLite.
type UnitRepo struct {
	q Querier
}

// NewUnitRepository construye el adaptador.
func NewUnitRepository(q Querier) *UnitRepo {
	return &UnitRepo{q: q}
}

// Create persiste una unidad de medida. domain.ErrDuplicate si ya existe.
func (r *UnitRepo) Create(unit *entity.Unit) error {
	_, err := r.q.ExecContext(context.Background(),
		`INSERT INTO units (id, name) VALUES (?, ?)`,
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
	return r.get(`SELECT id, name FROM units WHERE id = ?`, id)
}

// GetByName obtiene una unidad por nombre normalizado. (nil, nil) si no existe.
func (r *UnitRepo) GetByName(name string) (*entity.Unit, error) {
	return r.get(`SELECT id, name FROM units WHERE name = ?`, name)
}

func (r *UnitRepo) get(query string, arg any) (*entity.Unit, error) {
	var u entity.Unit
	err := r.q.QueryRowContext(context.Background(), query, arg).Scan(&u.ID, &u.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get unit: %w", err)
	}
	return &u, nil
}

// Update renombra la unidad. domain.ErrDuplicate en colisión de nombre.
func (r *UnitRepo) Update(unit *entity.Unit) error {
	_, err := r.q.ExecContext(context.Background(),
		`UPDATE units SET name = ? WHERE id = ?`,
		unit.Name, unit.ID,
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
	rows, err := r.q.QueryContext(context.Background(),
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

// Delete borra la unidad. domain.ErrConflict si algún artículo la usa.
func (r *UnitRepo) Delete(id string) error {
	res, err := r.q.ExecContext(context.Background(),
		`DELETE FROM units WHERE id = ?`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete unit: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
