// Package memory implementa todos los puertos de persistencia sobre mapas en
// memoria protegidos por un mutex. Lo usan las pruebas unitarias y sirve de
// modelo de referencia del comportamiento de los stores SQL.
package memory

import (
	"sync"

	"github.com/jhoicas/storeroom-api/internal/domain"
	"github.com/jhoicas/storeroom-api/internal/domain/entity"
	"github.com/jhoicas/storeroom-api/internal/domain/repository"
)

// Store guarda todo el estado. El mutex serializa cada operación y cada
// transacción completa, la garantía más fuerte que admite el motor.
type Store struct {
	mu sync.Mutex

	categories map[string]*entity.Category
	units      map[string]*entity.Unit
	suppliers  map[string]*entity.Supplier
	employees  map[string]*entity.Employee
	items      map[string]*entity.Item
	movements  []*entity.Movement

	nextMovementID int64
}

// NewStore construye un store vacío.
func NewStore() *Store {
	return &Store{
		categories: make(map[string]*entity.Category),
		units:      make(map[string]*entity.Unit),
		suppliers:  make(map[string]*entity.Supplier),
		employees:  make(map[string]*entity.Employee),
		items:      make(map[string]*entity.Item),
	}
}

// Categories devuelve el repositorio de categorías.
func (s *Store) Categories() repository.CategoryRepository { return &categoryRepo{s} }

// Units devuelve el repositorio de unidades de medida.
func (s *Store) Units() repository.UnitRepository { return &unitRepo{s} }

// Suppliers devuelve el repositorio de proveedores.
func (s *Store) Suppliers() repository.SupplierRepository { return &supplierRepo{s} }

// Employees devuelve el repositorio de empleados.
func (s *Store) Employees() repository.EmployeeRepository { return &employeeRepo{s} }

// Items devuelve el repositorio de artículos.
func (s *Store) Items() repository.ItemRepository { return &itemRepo{s} }

// Movements devuelve el repositorio del libro de almacén.
func (s *Store) Movements() repository.MovementRepository { return &movementRepo{s} }

// Reports devuelve las consultas de solo lectura del dashboard.
func (s *Store) Reports() repository.ReportRepository { return &reportRepo{s} }

// ── categorías ──────────────────────────────────────────────────────────────

type categoryRepo struct{ s *Store }

var _ repository.CategoryRepository = (*categoryRepo)(nil)

func (r *categoryRepo) Create(c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.categories {
		if existing.Name == c.Name {
			return domain.ErrDuplicate
		}
	}
	cp := *c
	r.s.categories[c.ID] = &cp
	return nil
}

func (r *categoryRepo) GetByID(id string) (*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.categories[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *categoryRepo) GetByName(name string) (*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.categories {
		if c.Name == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *categoryRepo) Update(c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[c.ID]; !ok {
		return domain.ErrNotFound
	}
	for id, existing := range r.s.categories {
		if id != c.ID && existing.Name == c.Name {
			return domain.ErrDuplicate
		}
	}
	cp := *c
	r.s.categories[c.ID] = &cp
	return nil
}

func (r *categoryRepo) List() ([]*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	list := make([]*entity.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		cp := *c
		list = append(list, &cp)
	}
	sortByName(list, func(c *entity.Category) string { return c.Name })
	return list, nil
}

func (r *categoryRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[id]; !ok {
		return domain.ErrNotFound
	}
	for _, it := range r.s.items {
		if it.CategoryID == id {
			return domain.ErrConflict
		}
	}
	delete(r.s.categories, id)
	return nil
}

// ── unidades ────────────────────────────────────────────────────────────────

type unitRepo struct{ s *Store }

var _ repository.UnitRepository = (*unitRepo)(nil)

func (r *unitRepo) Create(u *entity.Unit) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.units {
		if existing.Name == u.Name {
			return domain.ErrDuplicate
		}
	}
	cp := *u
	r.s.units[u.ID] = &cp
	return nil
}

func (r *unitRepo) GetByID(id string) (*entity.Unit, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.units[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *unitRepo) GetByName(name string) (*entity.Unit, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.units {
		if u.Name == name {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *unitRepo) Update(u *entity.Unit) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.units[u.ID]; !ok {
		return domain.ErrNotFound
	}
	for id, existing := range r.s.units {
		if id != u.ID && existing.Name == u.Name {
			return domain.ErrDuplicate
		}
	}
	cp := *u
	r.s.units[u.ID] = &cp
	return nil
}

func (r *unitRepo) List() ([]*entity.Unit, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	list := make([]*entity.Unit, 0, len(r.s.units))
	for _, u := range r.s.units {
		cp := *u
		list = append(list, &cp)
	}
	sortByName(list, func(u *entity.Unit) string { return u.Name })
	return list, nil
}

func (r *unitRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.units[id]; !ok {
		return domain.ErrNotFound
	}
	for _, it := range r.s.items {
		if it.UnitID == id {
			return domain.ErrConflict
		}
	}
	delete(r.s.units, id)
	return nil
}

// ── proveedores ─────────────────────────────────────────────────────────────

type supplierRepo struct{ s *Store }

var _ repository.SupplierRepository = (*supplierRepo)(nil)

func (r *supplierRepo) Create(sp *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.suppliers {
		if existing.Name == sp.Name {
			return domain.ErrDuplicate
		}
	}
	cp := *sp
	r.s.suppliers[sp.ID] = &cp
	return nil
}

func (r *supplierRepo) GetByID(id string) (*entity.Supplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sp, ok := r.s.suppliers[id]
	if !ok {
		return nil, nil
	}
	cp := *sp
	return &cp, nil
}

func (r *supplierRepo) GetByName(name string) (*entity.Supplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, sp := range r.s.suppliers {
		if sp.Name == name {
			cp := *sp
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *supplierRepo) Update(sp *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.suppliers[sp.ID]; !ok {
		return domain.ErrNotFound
	}
	for id, existing := range r.s.suppliers {
		if id != sp.ID && existing.Name == sp.Name {
			return domain.ErrDuplicate
		}
	}
	cp := *sp
	r.s.suppliers[sp.ID] = &cp
	return nil
}

func (r *supplierRepo) List() ([]*entity.Supplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	list := make([]*entity.Supplier, 0, len(r.s.suppliers))
	for _, sp := range r.s.suppliers {
		cp := *sp
		list = append(list, &cp)
	}
	sortByName(list, func(sp *entity.Supplier) string { return sp.Name })
	return list, nil
}

// ── empleados ───────────────────────────────────────────────────────────────

type employeeRepo struct{ s *Store }

var _ repository.EmployeeRepository = (*employeeRepo)(nil)

func (r *employeeRepo) Create(e *entity.Employee) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.employees {
		if existing.Name == e.Name {
			return domain.ErrDuplicate
		}
	}
	cp := *e
	r.s.employees[e.ID] = &cp
	return nil
}

func (r *employeeRepo) GetByID(id string) (*entity.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.employees[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (r *employeeRepo) GetByName(name string) (*entity.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.employees {
		if e.Name == name {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *employeeRepo) Update(e *entity.Employee) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.employees[e.ID]; !ok {
		return domain.ErrNotFound
	}
	for id, existing := range r.s.employees {
		if id != e.ID && existing.Name == e.Name {
			return domain.ErrDuplicate
		}
	}
	cp := *e
	r.s.employees[e.ID] = &cp
	return nil
}

func (r *employeeRepo) List() ([]*entity.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	list := make([]*entity.Employee, 0, len(r.s.employees))
	for _, e := range r.s.employees {
		cp := *e
		list = append(list, &cp)
	}
	sortByName(list, func(e *entity.Employee) string { return e.Name })
	return list, nil
}
