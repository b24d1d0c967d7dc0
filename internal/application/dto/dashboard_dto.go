package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	TotalCustomers     int             `json:"total_customers"`
	QuotationsByStatus map[string]int  `json:"quotations_by_status"` // draft, sent, accepted, rejected
	Revenue            decimal.Decimal `json:"revenue"`              // facturas paid
	Outstanding        decimal.Decimal `json:"outstanding"`          // facturas unpaid + overdue
	OverdueInvoices    int             `json:"overdue_invoices"`
	GeneratedAt        time.Time       `json:"generated_at"`
}
