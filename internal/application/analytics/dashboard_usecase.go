// Package analytics contiene los casos de uso del dashboard comercial:
// clientes, embudo de cotizaciones y cartera de facturas.
package analytics

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

var quotationStatuses = []entity.QuotationStatus{
	entity.QuotationDraft,
	entity.QuotationSent,
	entity.QuotationAccepted,
	entity.QuotationRejected,
}

// DashboardUseCase genera el resumen del dashboard.
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	now           func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.now = now
	return uc
}

// GetSummary construye el DashboardSummaryDTO.
//
// Tres consultas en paralelo; la primera que falla cancela las demás:
//  1. CountCustomers
//  2. CountQuotationsByStatus
//  3. GetInvoiceTotals
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	var (
		customers int
		byStatus  map[entity.QuotationStatus]int
		totals    repository.InvoiceTotals
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := uc.analyticsRepo.CountCustomers(gctx)
		if err != nil {
			return fmt.Errorf("dashboard: clientes: %w", err)
		}
		customers = n
		return nil
	})
	g.Go(func() error {
		m, err := uc.analyticsRepo.CountQuotationsByStatus(gctx)
		if err != nil {
			return fmt.Errorf("dashboard: cotizaciones: %w", err)
		}
		byStatus = m
		return nil
	})
	g.Go(func() error {
		t, err := uc.analyticsRepo.GetInvoiceTotals(gctx)
		if err != nil {
			return fmt.Errorf("dashboard: facturas: %w", err)
		}
		totals = t
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Todos los estados aparecen, aunque tengan cero cotizaciones.
	quotations := make(map[string]int, len(quotationStatuses))
	for _, s := range quotationStatuses {
		quotations[s.String()] = byStatus[s]
	}

	return &dto.DashboardSummaryDTO{
		TotalCustomers:     customers,
		QuotationsByStatus: quotations,
		Revenue:            totals.Revenue.Round(2),
		Outstanding:        totals.Outstanding.Round(2),
		OverdueInvoices:    totals.OverdueCount,
		GeneratedAt:        uc.now(),
	}, nil
}
