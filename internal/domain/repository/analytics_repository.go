package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/crm-api/internal/domain/entity"
)

// InvoiceTotals agregados de facturación para el dashboard.
type InvoiceTotals struct {
	Revenue      decimal.Decimal // suma de grand_total de facturas paid
	Outstanding  decimal.Decimal // suma de grand_total de facturas unpaid y overdue
	OverdueCount int
}

// AnalyticsRepository define las consultas de lectura del dashboard.
// Las implementaciones son read-only (no modifican datos).
type AnalyticsRepository interface {
	CountCustomers(ctx context.Context) (int, error)
	CountQuotationsByStatus(ctx context.Context) (map[entity.QuotationStatus]int, error)
	GetInvoiceTotals(ctx context.Context) (InvoiceTotals, error)
}
