package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/storeroom-api/internal/application/inventory"
	"github.com/jhoicas/storeroom-api/internal/domain"
	"github.com/jhoicas/storeroom-api/internal/domain/entity"
	"github.com/jhoicas/storeroom-api/internal/domain/repository"
)

func sortByName[T any](list []T, name func(T) string) {
	sort.Slice(list, func(i, j int) bool { return name(list[i]) < name(list[j]) })
}

// ── lógica sin bloqueo (el caller ya sostiene s.mu) ─────────────────────────

func (s *Store) createItem(it *entity.Item) error {
	for _, existing := range s.items {
		if existing.Name == it.Name {
			return domain.ErrDuplicate
		}
	}
	if it.CategoryID != "" {
		if _, ok := s.categories[it.CategoryID]; !ok {
			return domain.ErrConflict
		}
	}
	if it.UnitID != "" {
		if _, ok := s.units[it.UnitID]; !ok {
			return domain.ErrConflict
		}
	}
	cp := *it
	s.items[it.ID] = &cp
	return nil
}

func (s *Store) getItem(id string) (*entity.Item, error) {
	it, ok := s.items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (s *Store) getItemByName(name string) (*entity.Item, error) {
	for _, it := range s.items {
		if it.Name == name {
			cp := *it
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *Store) updateItem(it *entity.Item) error {
	current, ok := s.items[it.ID]
	if !ok {
		return domain.ErrNotFound
	}
	for id, existing := range s.items {
		if id != it.ID && existing.Name == it.Name {
			return domain.ErrDuplicate
		}
	}
	if it.CategoryID != "" {
		if _, ok := s.categories[it.CategoryID]; !ok {
			return domain.ErrConflict
		}
	}
	if it.UnitID != "" {
		if _, ok := s.units[it.UnitID]; !ok {
			return domain.ErrConflict
		}
	}
	cp := *it
	cp.Quantity = current.Quantity // Update nunca toca la existencia
	s.items[it.ID] = &cp
	return nil
}

func (s *Store) updateItemQuantity(id string, quantity int64) error {
	it, ok := s.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	it.Quantity = quantity
	return nil
}

func (s *Store) listItems() ([]*entity.Item, error) {
	list := make([]*entity.Item, 0, len(s.items))
	for _, it := range s.items {
		cp := *it
		list = append(list, &cp)
	}
	sortByName(list, func(it *entity.Item) string { return it.Name })
	return list, nil
}

func (s *Store) deleteItem(id string) error {
	if _, ok := s.items[id]; !ok {
		return domain.ErrNotFound
	}
	for _, m := range s.movements {
		if m.ItemID == id {
			return domain.ErrConflict
		}
	}
	delete(s.items, id)
	return nil
}

func (s *Store) createMovement(m *entity.Movement) error {
	if _, ok := s.items[m.ItemID]; !ok {
		return domain.ErrConflict
	}
	if _, ok := s.employees[m.EmployeeID]; !ok {
		return domain.ErrConflict
	}
	if m.SupplierID != "" {
		if _, ok := s.suppliers[m.SupplierID]; !ok {
			return domain.ErrConflict
		}
	}
	s.nextMovementID++
	m.ID = s.nextMovementID
	cp := *m
	s.movements = append(s.movements, &cp)
	return nil
}

func (s *Store) getMovement(id int64) (*entity.Movement, error) {
	for _, m := range s.movements {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *Store) listMovementsByItem(itemID string) ([]*entity.Movement, error) {
	var list []*entity.Movement
	for _, m := range s.movements {
		if m.ItemID == itemID {
			cp := *m
			list = append(list, &cp)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].OccurredAt.Equal(list[j].OccurredAt) {
			return list[i].OccurredAt.After(list[j].OccurredAt)
		}
		return list[i].ID > list[j].ID
	})
	return list, nil
}

func (s *Store) deleteMovementsByItem(itemID string) error {
	kept := s.movements[:0]
	for _, m := range s.movements {
		if m.ItemID != itemID {
			kept = append(kept, m)
		}
	}
	s.movements = kept
	return nil
}

// ── repositorios con bloqueo ────────────────────────────────────────────────

type itemRepo struct{ s *Store }

var _ repository.ItemRepository = (*itemRepo)(nil)

func (r *itemRepo) Create(it *entity.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.createItem(it)
}

func (r *itemRepo) GetByID(id string) (*entity.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.getItem(id)
}

func (r *itemRepo) GetByName(name string) (*entity.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.getItemByName(name)
}

func (r *itemRepo) GetForUpdate(id string) (*entity.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.getItem(id)
}

func (r *itemRepo) Update(it *entity.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.updateItem(it)
}

func (r *itemRepo) UpdateQuantity(id string, quantity int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.updateItemQuantity(id, quantity)
}

func (r *itemRepo) List() ([]*entity.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.listItems()
}

func (r *itemRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.deleteItem(id)
}

type movementRepo struct{ s *Store }

var _ repository.MovementRepository = (*movementRepo)(nil)

func (r *movementRepo) Create(m *entity.Movement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.createMovement(m)
}

func (r *movementRepo) GetByID(id int64) (*entity.Movement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.getMovement(id)
}

func (r *movementRepo) ListByItem(itemID string) ([]*entity.Movement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.listMovementsByItem(itemID)
}

func (r *movementRepo) DeleteByItem(itemID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.deleteMovementsByItem(itemID)
}

// ── transacciones ───────────────────────────────────────────────────────────

// Repositorios sin bloqueo para dentro de Run: el mutex ya está tomado.
type txItemRepo struct{ s *Store }

var _ repository.ItemRepository = (*txItemRepo)(nil)

func (r *txItemRepo) Create(it *entity.Item) error                { return r.s.createItem(it) }
func (r *txItemRepo) GetByID(id string) (*entity.Item, error)     { return r.s.getItem(id) }
func (r *txItemRepo) GetByName(name string) (*entity.Item, error) { return r.s.getItemByName(name) }
func (r *txItemRepo) GetForUpdate(id string) (*entity.Item, error) {
	return r.s.getItem(id)
}
func (r *txItemRepo) Update(it *entity.Item) error { return r.s.updateItem(it) }
func (r *txItemRepo) UpdateQuantity(id string, quantity int64) error {
	return r.s.updateItemQuantity(id, quantity)
}
func (r *txItemRepo) List() ([]*entity.Item, error) { return r.s.listItems() }
func (r *txItemRepo) Delete(id string) error        { return r.s.deleteItem(id) }

type txMovementRepo struct{ s *Store }

var _ repository.MovementRepository = (*txMovementRepo)(nil)

func (r *txMovementRepo) Create(m *entity.Movement) error { return r.s.createMovement(m) }
func (r *txMovementRepo) GetByID(id int64) (*entity.Movement, error) {
	return r.s.getMovement(id)
}
func (r *txMovementRepo) ListByItem(itemID string) ([]*entity.Movement, error) {
	return r.s.listMovementsByItem(itemID)
}
func (r *txMovementRepo) DeleteByItem(itemID string) error {
	return r.s.deleteMovementsByItem(itemID)
}

var _ inventory.TxRunner = (*Store)(nil)

// Run ejecuta fn sosteniendo el mutex de principio a fin. Si fn falla se
// restaura la instantánea previa de artículos y movimientos, igual que un
// rollback SQL.
func (s *Store) Run(_ context.Context, fn func(
	items repository.ItemRepository,
	movements repository.MovementRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapItems := make(map[string]*entity.Item, len(s.items))
	for id, it := range s.items {
		cp := *it
		snapItems[id] = &cp
	}
	snapMovements := append([]*entity.Movement(nil), s.movements...)
	snapNextID := s.nextMovementID

	if err := fn(&txItemRepo{s}, &txMovementRepo{s}); err != nil {
		s.items = snapItems
		s.movements = snapMovements
		s.nextMovementID = snapNextID
		return err
	}
	return nil
}
