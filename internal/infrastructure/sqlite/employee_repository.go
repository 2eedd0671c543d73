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

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

// EmployeeRepo implementación del puerto EmployeeRepository sobre SQLite.
type EmployeeRepo struct {
	q Querier
}

// NewEmployeeRepository construye el adaptador.
func NewEmployeeRepository(q Querier) *EmployeeRepo {
	return &EmployeeRepo{q: q}
}

// Create persiste un empleado. domain.ErrDuplicate si el nombre ya existe.
func (r *EmployeeRepo) Create(employee *entity.Employee) error {
	_, err := r.q.ExecContext(context.Background(),
		`INSERT INTO employees (id, name, position) VALUES (?, ?, ?)`,
		employee.ID, employee.Name, nullable(employee.Position),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert employee: %w", err)
	}
	return nil
}

// GetByID obtiene un empleado por ID. (nil, nil) si no existe.
func (r *EmployeeRepo) GetByID(id string) (*entity.Employee, error) {
	return r.get(`SELECT id, name, position FROM employees WHERE id = ?`, id)
}

// GetByName obtiene un empleado por nombre normalizado. (nil, nil) si no existe.
func (r *EmployeeRepo) GetByName(name string) (*entity.Employee, error) {
	return r.get(`SELECT id, name, position FROM employees WHERE name = ?`, name)
}

func (r *EmployeeRepo) get(query string, arg any) (*entity.Employee, error) {
	var e entity.Employee
	var position *string
	err := r.q.QueryRowContext(context.Background(), query, arg).Scan(&e.ID, &e.Name, &position)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get employee: %w", err)
	}
	e.Position = fromNullable(position)
	return &e, nil
}

// Update edita nombre y puesto. domain.ErrDuplicate en colisión de nombre.
func (r *EmployeeRepo) Update(employee *entity.Employee) error {
	_, err := r.q.ExecContext(context.Background(),
		`UPDATE employees SET name = ?, position = ? WHERE id = ?`,
		employee.Name, nullable(employee.Position), employee.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update employee: %w", err)
	}
	return nil
}

// List devuelve todos los empleados ordenados por nombre.
func (r *EmployeeRepo) List() ([]*entity.Employee, error) {
	rows, err := r.q.QueryContext(context.Background(),
		`SELECT id, name, position FROM employees ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()
	var list []*entity.Employee
	for rows.Next() {
		var e entity.Employee
		var position *string
		if err := rows.Scan(&e.ID, &e.Name, &position); err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		e.Position = fromNullable(position)
		list = append(list, &e)
	}
	return list, rows.Err()
}
