package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/storeroom-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para el dashboard sobre SQLite.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de informes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// CountItems cuenta los artículos del catálogo.
func (r *ReportRepo) CountItems(ctx context.Context) (int, error) {
	var n int
	err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM items`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return n, nil
}

// CountLowStock cuenta los artículos con existencia bajo el umbral.
func (r *ReportRepo) CountLowStock(ctx context.Context, threshold int64) (int, error) {
	var n int
	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM items WHERE quantity < ?`, threshold).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count low stock: %w", err)
	}
	return n, nil
}

// CountMovements cuenta asientos de un tipo con occurred_at en [from, to).
func (r *ReportRepo) CountMovements(ctx context.Context, kind string, from, to time.Time) (int, error) {
	var n int
	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM movements
		 WHERE kind = ? AND occurred_at >= ? AND occurred_at < ?`,
		kind, from, to).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count movements: %w", err)
	}
	return n, nil
}

// RecentMovements devuelve los últimos asientos con nombres ya resueltos,
// más recientes primero; a igual fecha, por id descendente.
func (r *ReportRepo) RecentMovements(ctx context.Context, limit int) ([]repository.RecentMovementRow, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT m.id, m.occurred_at, m.kind, m.quantity,
		        i.name, e.name, COALESCE(s.name, ''), COALESCE(m.notes, '')
		 FROM movements m
		 JOIN items i ON i.id = m.item_id
		 JOIN employees e ON e.id = m.employee_id
		 LEFT JOIN suppliers s ON s.id = m.supplier_id
		 ORDER BY m.occurred_at DESC, m.id DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent movements: %w", err)
	}
	defer rows.Close()
	var list []repository.RecentMovementRow
	for rows.Next() {
		var row repository.RecentMovementRow
		if err := rows.Scan(&row.MovementID, &row.OccurredAt, &row.Kind, &row.Quantity,
			&row.ItemName, &row.EmployeeName, &row.SupplierName, &row.Notes); err != nil {
			return nil, fmt.Errorf("scan recent movement: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// CategoryBreakdown devuelve el desglose por categoría, incluidas las vacías.
// SQLite no soporta COUNT(...) FILTER; SUM(CASE ...) es equivalente.
func (r *ReportRepo) CategoryBreakdown(ctx context.Context, threshold int64) ([]repository.CategoryStockRow, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT c.id, c.name,
		        COUNT(i.id),
		        COALESCE(SUM(CASE WHEN i.quantity < ? THEN 1 ELSE 0 END), 0)
		 FROM categories c
		 LEFT JOIN items i ON i.category_id = c.id
		 GROUP BY c.id, c.name
		 ORDER BY c.name`, threshold)
	if err != nil {
		return nil, fmt.Errorf("category breakdown: %w", err)
	}
	defer rows.Close()
	var list []repository.CategoryStockRow
	for rows.Next() {
		var row repository.CategoryStockRow
		if err := rows.Scan(&row.CategoryID, &row.CategoryName, &row.ItemCount, &row.LowStock); err != nil {
			return nil, fmt.Errorf("scan category row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}
