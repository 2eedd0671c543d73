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

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo implementación del puerto SupplierRepository sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

// Create persiste un proveedor. domain.ErrDuplicate si el nombre ya existe.
func (r *SupplierRepo) Create(supplier *entity.Supplier) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO suppliers (id, name, contact_info) VALUES ($1, $2, $3)`,
		supplier.ID, supplier.Name, nullable(supplier.ContactInfo),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor por ID. (nil, nil) si no existe.
func (r *SupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	return r.get(`SELECT id, name, contact_info FROM suppliers WHERE id = $1`, id)
}

// GetByName obtiene un proveedor por nombre normalizado. (nil, nil) si no existe.
func (r *SupplierRepo) GetByName(name string) (*entity.Supplier, error) {
	return r.get(`SELECT id, name, contact_info FROM suppliers WHERE name = $1`, name)
}

func (r *SupplierRepo) get(query string, arg any) (*entity.Supplier, error) {
	var s entity.Supplier
	var contact *string
	err := r.q.QueryRow(context.Background(), query, arg).Scan(&s.ID, &s.Name, &contact)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	s.ContactInfo = fromNullable(contact)
	return &s, nil
}

// Update edita nombre y contacto. domain.ErrDuplicate en colisión de nombre.
func (r *SupplierRepo) Update(supplier *entity.Supplier) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE suppliers SET name = $2, contact_info = $3 WHERE id = $1`,
		supplier.ID, supplier.Name, nullable(supplier.ContactInfo),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update supplier: %w", err)
	}
	return nil
}

// List devuelve todos los proveedores ordenados por nombre.
func (r *SupplierRepo) List() ([]*entity.Supplier, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, name, contact_info FROM suppliers ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Supplier
	for rows.Next() {
		var s entity.Supplier
		var contact *string
		if err := rows.Scan(&s.ID, &s.Name, &contact); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		s.ContactInfo = fromNullable(contact)
		list = append(list, &s)
	}
	return list, rows.Err()
}
