// Package preview recalcula el formulario de cotización/factura en el servidor:
// aplica las acciones del usuario sobre el borrador y devuelve líneas y totales.
package preview

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/application/validation"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/pricing"
	"github.com/jhoicas/crm-api/pkg/money"
)

// CatalogLookup consulta de productos del catálogo.
type CatalogLookup interface {
	Lookup(ctx context.Context, productID string) (*entity.Product, error)
}

// UseCase aplica acciones de formulario sobre un borrador con el motor de precios.
type UseCase struct {
	catalog   CatalogLookup
	validate  *validation.Validator
	formatter *money.Formatter
	now       func() time.Time
}

// NewUseCase construye el caso de uso. formatter nil usa money.Default().
func NewUseCase(catalog CatalogLookup, validate *validation.Validator, formatter *money.Formatter) *UseCase {
	if formatter == nil {
		formatter = money.Default()
	}
	return &UseCase{catalog: catalog, validate: validate, formatter: formatter, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// Preview reconstruye el borrador desde la solicitud, aplica las acciones en orden y devuelve el resultado.
// Un índice fuera de la lista vigente al momento de la acción es ErrInvalidInput.
func (uc *UseCase) Preview(ctx context.Context, in dto.PricingPreviewRequest) (*dto.DraftResponse, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	draft, err := uc.restore(in)
	if err != nil {
		return nil, err
	}
	for i, a := range in.Actions {
		action, err := uc.translate(ctx, draft, i, a)
		if err != nil {
			return nil, err
		}
		draft = pricing.Reduce(draft, action)
	}
	return uc.response(draft), nil
}

func (uc *UseCase) restore(in dto.PricingPreviewRequest) (pricing.Draft, error) {
	draft := pricing.NewDraft(uc.now())
	if in.IssueDate != "" {
		d, err := pricing.ParseDate(in.IssueDate)
		if err != nil {
			return draft, validation.FieldError("issue_date", "debe tener formato YYYY-MM-DD")
		}
		draft.IssueDate = d
		draft.ExpiryDate = pricing.SyncExpiryDate(d)
	}
	if in.ExpiryDate != "" {
		d, err := pricing.ParseDate(in.ExpiryDate)
		if err != nil {
			return draft, validation.FieldError("expiry_date", "debe tener formato YYYY-MM-DD")
		}
		draft.ExpiryDate = d
	}
	if len(in.Items) > 0 {
		items := make(pricing.Items, 0, len(in.Items))
		for _, it := range in.Items {
			items = append(items, pricing.LineItem{
				Name:           it.Name,
				Quantity:       it.Quantity,
				UnitPrice:      it.UnitPrice,
				TaxRatePercent: it.GSTPercentage,
				ProductRef:     it.ProductID,
			})
		}
		draft.Items = items
	}
	return draft, nil
}

func (uc *UseCase) translate(ctx context.Context, draft pricing.Draft, i int, a dto.PricingActionRequest) (pricing.Action, error) {
	field := func(name string) string { return fmt.Sprintf("actions[%d].%s", i, name) }
	needsIndex := a.Type == "remove_item" || a.Type == "update_item" || a.Type == "select_product"
	if needsIndex && !draft.Items.Has(a.Index) {
		return nil, validation.FieldError(field("index"), fmt.Sprintf("no existe la línea %d", a.Index))
	}

	switch a.Type {
	case "add_item":
		return pricing.AddItemAction{}, nil
	case "remove_item":
		return pricing.RemoveItemAction{Index: a.Index}, nil
	case "update_item":
		f, ok := pricing.ParseField(a.Field)
		if !ok {
			return nil, validation.FieldError(field("field"), "es obligatorio")
		}
		return pricing.UpdateItemAction{Index: a.Index, Field: f, Value: a.Value}, nil
	case "select_product":
		if a.ProductID == "" {
			return nil, validation.FieldError(field("product_id"), "es obligatorio")
		}
		p, err := uc.catalog.Lookup(ctx, a.ProductID)
		if err != nil {
			return nil, fmt.Errorf("consultar producto: %w", err)
		}
		if p == nil || !p.Active {
			return nil, validation.FieldError(field("product_id"), "producto no encontrado")
		}
		return pricing.SelectProductAction{Index: a.Index, Record: p.CatalogRecord()}, nil
	case "set_issue_date", "set_expiry_date":
		d, err := pricing.ParseDate(a.Date)
		if err != nil {
			return nil, validation.FieldError(field("date"), "debe tener formato YYYY-MM-DD")
		}
		if a.Type == "set_issue_date" {
			return pricing.SetIssueDateAction{Date: d}, nil
		}
		return pricing.SetExpiryDateAction{Date: d}, nil
	}
	return nil, validation.FieldError(field("type"), "valor no permitido")
}

func (uc *UseCase) response(d pricing.Draft) *dto.DraftResponse {
	summary := d.Summary()
	r := summary.Rounded()
	out := &dto.DraftResponse{
		IssueDate:  pricing.FormatDate(d.IssueDate),
		ExpiryDate: pricing.FormatDate(d.ExpiryDate),
		Items:      make([]dto.LineItemResponse, 0, len(d.Items)),
		Summary: dto.SummaryResponse{
			Subtotal:   r.Subtotal,
			TaxAmount:  r.TaxAmount,
			GrandTotal: r.GrandTotal,
		},
		Display: dto.DisplaySummary{
			Subtotal:   uc.formatter.Format(summary.Subtotal),
			TaxAmount:  uc.formatter.Format(summary.TaxAmount),
			GrandTotal: uc.formatter.Format(summary.GrandTotal),
		},
		CanRemove: len(d.Items) > 1,
	}
	for _, it := range d.Items {
		out.Items = append(out.Items, dto.LineItemResponse{
			ProductID:     it.ProductRef,
			Name:          it.Name,
			Quantity:      it.Quantity,
			UnitPrice:     it.UnitPrice,
			GSTPercentage: it.TaxRatePercent,
			LineTotal:     it.LineTotal(),
		})
	}
	return out
}
