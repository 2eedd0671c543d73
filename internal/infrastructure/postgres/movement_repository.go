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

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del puerto MovementRepository sobre PostgreSQL.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `id, item_id, quantity, kind, occurred_at, employee_id, supplier_id, notes`

// Create persiste el asiento y asigna movement.ID desde la secuencia.
// domain.ErrConflict si artículo, empleado o proveedor no existen.
func (r *MovementRepo) Create(movement *entity.Movement) error {
	err := r.q.QueryRow(context.Background(),
		`INSERT INTO movements (item_id, quantity, kind, occurred_at, employee_id, supplier_id, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		movement.ItemID, movement.Quantity, movement.Kind, movement.OccurredAt,
		movement.EmployeeID, nullable(movement.SupplierID), nullable(movement.Notes),
	).Scan(&movement.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// GetByID obtiene un asiento por ID. (nil, nil) si no existe.
func (r *MovementRepo) GetByID(id int64) (*entity.Movement, error) {
	var m entity.Movement
	var supplierID, notes *string
	err := r.q.QueryRow(context.Background(),
		`SELECT `+movementColumns+` FROM movements WHERE id = $1`, id,
	).Scan(&m.ID, &m.ItemID, &m.Quantity, &m.Kind, &m.OccurredAt,
		&m.EmployeeID, &supplierID, &notes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	m.SupplierID = fromNullable(supplierID)
	m.Notes = fromNullable(notes)
	return &m, nil
}

// ListByItem devuelve los asientos de un artículo, más recientes primero
// (empates resueltos por id descendente: orden de inserción).
func (r *MovementRepo) ListByItem(itemID string) ([]*entity.Movement, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+movementColumns+` FROM movements
		 WHERE item_id = $1
		 ORDER BY occurred_at DESC, id DESC`, itemID)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		var supplierID, notes *string
		if err := rows.Scan(&m.ID, &m.ItemID, &m.Quantity, &m.Kind, &m.OccurredAt,
			&m.EmployeeID, &supplierID, &notes); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		m.SupplierID = fromNullable(supplierID)
		m.Notes = fromNullable(notes)
		list = append(list, &m)
	}
	return list, rows.Err()
}

// DeleteByItem borra los asientos de un artículo. Solo para la cascada al
// borrar el artículo; los movimientos no se borran individualmente.
func (r *MovementRepo) DeleteByItem(itemID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM movements WHERE item_id = $1`, itemID)
	if err != nil {
		return fmt.Errorf("delete movements: %w", err)
	}
	return nil
}
