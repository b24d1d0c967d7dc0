package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// CountCustomers total de clientes registrados.
func (r *AnalyticsRepo) CountCustomers(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM customers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("analytics.CountCustomers: %w", err)
	}
	return n, nil
}

// CountQuotationsByStatus cotizaciones agrupadas por estado. Los estados sin filas no aparecen.
func (r *AnalyticsRepo) CountQuotationsByStatus(ctx context.Context) (map[entity.QuotationStatus]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT status, COUNT(*) FROM quotations GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("analytics.CountQuotationsByStatus: %w", err)
	}
	defer rows.Close()

	out := make(map[entity.QuotationStatus]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("analytics.CountQuotationsByStatus scan: %w", err)
		}
		s, err := entity.ParseQuotationStatus(status)
		if err != nil {
			return nil, err
		}
		out[s] = n
	}
	return out, rows.Err()
}

// GetInvoiceTotals ingresos cobrados, saldo pendiente y facturas vencidas.
//
//	revenue     = Σ total_amount de facturas paid
//	outstanding = Σ total_amount de facturas unpaid + overdue
func (r *AnalyticsRepo) GetInvoiceTotals(ctx context.Context) (repository.InvoiceTotals, error) {
	const query = `
	SELECT
	    COALESCE(SUM(total_amount) FILTER (WHERE status = 'paid'), 0)                   AS revenue,
	    COALESCE(SUM(total_amount) FILTER (WHERE status IN ('unpaid', 'overdue')), 0)   AS outstanding,
	    COUNT(*) FILTER (WHERE status = 'overdue')                                       AS overdue_count
	FROM invoices`

	var t repository.InvoiceTotals
	if err := r.pool.QueryRow(ctx, query).Scan(&t.Revenue, &t.Outstanding, &t.OverdueCount); err != nil {
		return repository.InvoiceTotals{}, fmt.Errorf("analytics.GetInvoiceTotals: %w", err)
	}
	return t, nil
}
