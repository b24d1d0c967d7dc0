package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/application/validation"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/pricing"
)

// CatalogLookup consulta de productos del catálogo (normalmente con caché).
type CatalogLookup interface {
	Lookup(ctx context.Context, productID string) (*entity.Product, error)
}

// itemsFromRequest convierte las líneas del formulario en líneas del motor de precios.
func itemsFromRequest(reqs []dto.LineItemRequest) pricing.Items {
	out := make(pricing.Items, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, pricing.LineItem{
			Name:           r.Name,
			Quantity:       r.Quantity,
			UnitPrice:      r.UnitPrice,
			TaxRatePercent: r.GSTPercentage,
			ProductRef:     r.ProductID,
		})
	}
	return out
}

// checkProductRefs verifica que los productos referenciados por las líneas existan.
func checkProductRefs(ctx context.Context, catalog CatalogLookup, items pricing.Items) error {
	if catalog == nil {
		return nil
	}
	for i, it := range items {
		if it.ProductRef == "" {
			continue
		}
		p, err := catalog.Lookup(ctx, it.ProductRef)
		if err != nil {
			return fmt.Errorf("consultar producto %s: %w", it.ProductRef, err)
		}
		if p == nil {
			return validation.FieldError(fmt.Sprintf("items[%d].product_id", i), "producto no encontrado")
		}
	}
	return nil
}

// documentDates resuelve emisión y vencimiento: emisión vacía = hoy, vencimiento vacío = emisión + 30 días.
func documentDates(today time.Time, issue, due, dueField string) (time.Time, time.Time, error) {
	var actions []pricing.Action
	if issue != "" {
		d, err := pricing.ParseDate(issue)
		if err != nil {
			return time.Time{}, time.Time{}, validation.FieldError("issue_date", "debe tener formato YYYY-MM-DD")
		}
		actions = append(actions, pricing.SetIssueDateAction{Date: d})
	}
	if due != "" {
		d, err := pricing.ParseDate(due)
		if err != nil {
			return time.Time{}, time.Time{}, validation.FieldError(dueField, "debe tener formato YYYY-MM-DD")
		}
		actions = append(actions, pricing.SetExpiryDateAction{Date: d})
	}
	draft := pricing.Reduce(pricing.NewDraft(today), actions...)
	if draft.ExpiryDate.Before(draft.IssueDate) {
		return time.Time{}, time.Time{}, validation.FieldError(dueField, "no puede ser anterior a issue_date")
	}
	return draft.IssueDate, draft.ExpiryDate, nil
}

// keepDates completa las fechas omitidas en una actualización con las guardadas.
// Si llega solo issue, el vencimiento se recalcula desde ella.
func keepDates(storedIssue, storedDue time.Time, issue, due string) (string, string) {
	if issue != "" {
		return issue, due
	}
	if due == "" {
		due = pricing.FormatDate(storedDue)
	}
	return pricing.FormatDate(storedIssue), due
}

func lineItemResponses(items []entity.DocumentItem) []dto.LineItemResponse {
	out := make([]dto.LineItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.LineItemResponse{
			ProductID:     it.ProductID,
			Name:          it.Name,
			Quantity:      it.Quantity,
			UnitPrice:     it.UnitPrice,
			GSTPercentage: it.TaxRatePercent,
			LineTotal:     it.LineTotal,
		})
	}
	return out
}

// SummaryResponse totales redondeados a 2 decimales.
func SummaryResponse(s pricing.Summary) dto.SummaryResponse {
	r := s.Rounded()
	return dto.SummaryResponse{
		Subtotal:   r.Subtotal,
		TaxAmount:  r.TaxAmount,
		GrandTotal: r.GrandTotal,
	}
}

func toQuotationResponse(q *entity.Quotation) *dto.QuotationResponse {
	return &dto.QuotationResponse{
		ID:           q.ID,
		Number:       q.Number,
		CustomerID:   q.CustomerID,
		CustomerName: q.CustomerName,
		IssueDate:    pricing.FormatDate(q.IssueDate),
		ValidUntil:   pricing.FormatDate(q.ValidUntil),
		Status:       q.Status.String(),
		Notes:        q.Notes,
		Terms:        q.Terms,
		Items:        lineItemResponses(q.Items),
		Summary:      SummaryResponse(q.Totals),
		CreatedBy:    q.CreatedBy,
		CreatedAt:    q.CreatedAt,
		UpdatedAt:    q.UpdatedAt,
	}
}

func toInvoiceResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	return &dto.InvoiceResponse{
		ID:            inv.ID,
		Number:        inv.Number,
		CustomerID:    inv.CustomerID,
		CustomerName:  inv.CustomerName,
		QuotationID:   inv.QuotationID,
		IssueDate:     pricing.FormatDate(inv.IssueDate),
		DueDate:       pricing.FormatDate(inv.DueDate),
		PaymentMethod: inv.PaymentMethod.String(),
		Frequency:     inv.Frequency.String(),
		Status:        inv.Status.String(),
		Notes:         inv.Notes,
		Items:         lineItemResponses(inv.Items),
		Summary:       SummaryResponse(inv.Totals),
		CreatedBy:     inv.CreatedBy,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Company:   c.Company,
		Industry:  c.Industry,
		Country:   c.Country,
		Location:  c.Location,
		Address:   c.Address,
		GSTIN:     c.GSTIN,
		PAN:       c.PAN,
		Status:    c.Status.String(),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
