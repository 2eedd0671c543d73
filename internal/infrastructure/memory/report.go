package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/storeroom-api/internal/domain/repository"
)

type reportRepo struct{ s *Store }

var _ repository.ReportRepository = (*reportRepo)(nil)

func (r *reportRepo) CountItems(_ context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.items), nil
}

func (r *reportRepo) CountLowStock(_ context.Context, threshold int64) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, it := range r.s.items {
		if it.Quantity < threshold {
			n++
		}
	}
	return n, nil
}

func (r *reportRepo) CountMovements(_ context.Context, kind string, from, to time.Time) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, m := range r.s.movements {
		if m.Kind != kind {
			continue
		}
		if m.OccurredAt.Before(from) || !m.OccurredAt.Before(to) {
			continue
		}
		n++
	}
	return n, nil
}

func (r *reportRepo) RecentMovements(_ context.Context, limit int) ([]repository.RecentMovementRow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rows := make([]repository.RecentMovementRow, 0, len(r.s.movements))
	for _, m := range r.s.movements {
		row := repository.RecentMovementRow{
			MovementID: m.ID,
			OccurredAt: m.OccurredAt,
			Kind:       m.Kind,
			Quantity:   m.Quantity,
			Notes:      m.Notes,
		}
		if it, ok := r.s.items[m.ItemID]; ok {
			row.ItemName = it.Name
		}
		if e, ok := r.s.employees[m.EmployeeID]; ok {
			row.EmployeeName = e.Name
		}
		if m.SupplierID != "" {
			if sp, ok := r.s.suppliers[m.SupplierID]; ok {
				row.SupplierName = sp.Name
			}
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].OccurredAt.Equal(rows[j].OccurredAt) {
			return rows[i].OccurredAt.After(rows[j].OccurredAt)
		}
		return rows[i].MovementID > rows[j].MovementID
	})
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (r *reportRepo) CategoryBreakdown(_ context.Context, threshold int64) ([]repository.CategoryStockRow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rows := make([]repository.CategoryStockRow, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		row := repository.CategoryStockRow{CategoryID: c.ID, CategoryName: c.Name}
		for _, it := range r.s.items {
			if it.CategoryID != c.ID {
				continue
			}
			row.ItemCount++
			if it.Quantity < threshold {
				row.LowStock++
			}
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].CategoryName < rows[j].CategoryName })
	return rows, nil
}
