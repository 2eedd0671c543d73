// Package analytics contiene el caso de uso de reporting del almacén: las
// tarjetas del tablero, la actividad reciente y la distribución por categoría.
// Solo lecturas sobre estado confirmado; las invariantes viven en el motor.
package analytics

import (
	"context"
	"time"

	"github.com/jhoicas/storeroom-api/internal/application/dto"
	"github.com/jhoicas/storeroom-api/internal/domain/entity"
	"github.com/jhoicas/storeroom-api/internal/domain/repository"
)

const (
	// DefaultLowStockThreshold umbral de "existencia baja" si la
	// configuración no indica otro.
	DefaultLowStockThreshold = 10

	defaultActivityLimit = 20
	maxActivityLimit     = 100
)

// DashboardUseCase responde las consultas agregadas del tablero.
type DashboardUseCase struct {
	reportRepo repository.ReportRepository
	threshold  int64
}

// NewDashboardUseCase construye el caso de uso. threshold ≤ 0 aplica el
// umbral por defecto.
func NewDashboardUseCase(reportRepo repository.ReportRepository, threshold int64) *DashboardUseCase {
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}
	return &DashboardUseCase{reportRepo: reportRepo, threshold: threshold}
}

// GetSummary arma las cuatro tarjetas del tablero para el día calendario de
// now (el "hoy" lo decide el caller). Las cuatro consultas van en paralelo.
func (uc *DashboardUseCase) GetSummary(ctx context.Context, now time.Time) (*dto.DashboardSummaryDTO, error) {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	type countResult struct {
		n   int
		err error
	}
	totalCh := make(chan countResult, 1)
	lowCh := make(chan countResult, 1)
	receivedCh := make(chan countResult, 1)
	issuedCh := make(chan countResult, 1)

	go func() {
		n, err := uc.reportRepo.CountItems(ctx)
		totalCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.reportRepo.CountLowStock(ctx, uc.threshold)
		lowCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.reportRepo.CountMovements(ctx, entity.MovementKindRECEIVE, dayStart, dayEnd)
		receivedCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.reportRepo.CountMovements(ctx, entity.MovementKindISSUE, dayStart, dayEnd)
		issuedCh <- countResult{n, err}
	}()

	total := <-totalCh
	low := <-lowCh
	received := <-receivedCh
	issued := <-issuedCh
	for _, r := range []countResult{total, low, received, issued} {
		if r.err != nil {
			return nil, r.err
		}
	}

	return &dto.DashboardSummaryDTO{
		TotalItems:    total.n,
		LowStockItems: low.n,
		ReceivedToday: received.n,
		IssuedToday:   issued.n,
	}, nil
}

// RecentActivity devuelve los últimos movimientos con nombres resueltos,
// más reciente primero; empates de fecha por ID descendente.
func (uc *DashboardUseCase) RecentActivity(ctx context.Context, limit int) ([]dto.ActivityEntryDTO, error) {
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	if limit > maxActivityLimit {
		limit = maxActivityLimit
	}
	rows, err := uc.reportRepo.RecentMovements(ctx, limit)
	if err != nil {
		return nil, err
	}
	entries := make([]dto.ActivityEntryDTO, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, dto.ActivityEntryDTO{
			MovementID:   r.MovementID,
			OccurredAt:   r.OccurredAt,
			Kind:         r.Kind,
			Quantity:     r.Quantity,
			ItemName:     r.ItemName,
			EmployeeName: r.EmployeeName,
			SupplierName: r.SupplierName,
			Notes:        r.Notes,
		})
	}
	return entries, nil
}

// CategoryBreakdown devuelve el desglose por categoría para la vista de
// distribución. Las categorías sin artículos salen con contadores en cero,
// no se omiten.
func (uc *DashboardUseCase) CategoryBreakdown(ctx context.Context) ([]dto.CategoryBreakdownDTO, error) {
	rows, err := uc.reportRepo.CategoryBreakdown(ctx, uc.threshold)
	if err != nil {
		return nil, err
	}
	result := make([]dto.CategoryBreakdownDTO, 0, len(rows))
	for _, r := range rows {
		result = append(result, dto.CategoryBreakdownDTO{
			CategoryID:   r.CategoryID,
			CategoryName: r.CategoryName,
			ItemCount:    r.ItemCount,
			LowStock:     r.LowStock,
		})
	}
	return result, nil
}
