package preview_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/application/preview"
	"github.com/jhoicas/crm-api/internal/application/validation"
	"github.com/jhoicas/crm-api/internal/domain/entity"
)

type catalog map[string]*entity.Product

func (c catalog) Lookup(_ context.Context, id string) (*entity.Product, error) {
	return c[id], nil
}

var (
	activeID   = uuid.NewString()
	inactiveID = uuid.NewString()
	products   = catalog{
		activeID:   {ID: activeID, Name: "Hosting anual", UnitPrice: decimal.NewFromInt(1200), TaxRatePercent: decimal.NewFromInt(18), Active: true},
		inactiveID: {ID: inactiveID, Name: "Plan antiguo", UnitPrice: decimal.NewFromInt(10), TaxRatePercent: decimal.NewFromInt(5)},
	}
)

func newUseCase() *preview.UseCase {
	return preview.NewUseCase(products, validation.New(), nil).
		WithClock(func() time.Time { return time.Date(2024, 1, 15, 18, 45, 0, 0, time.UTC) })
}

func workedDraft() []dto.DraftItemRequest {
	return []dto.DraftItemRequest{
		{Name: "A", Quantity: 2, UnitPrice: decimal.NewFromInt(100), GSTPercentage: decimal.NewFromInt(18)},
		{Name: "B", Quantity: 1, UnitPrice: decimal.NewFromInt(50), GSTPercentage: decimal.NewFromInt(5)},
	}
}

func TestPreview_BorradorNuevo(t *testing.T) {
	resp, err := newUseCase().Preview(context.Background(), dto.PricingPreviewRequest{})
	require.NoError(t, err)

	assert.Equal(t, "2024-01-15", resp.IssueDate)
	assert.Equal(t, "2024-02-14", resp.ExpiryDate)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, int64(1), resp.Items[0].Quantity)
	assert.True(t, resp.Items[0].GSTPercentage.Equal(decimal.NewFromInt(18)))
	assert.False(t, resp.CanRemove)
	assert.Equal(t, "0.00", resp.Display.GrandTotal)
}

func TestPreview_EjemploDeReferencia(t *testing.T) {
	resp, err := newUseCase().Preview(context.Background(), dto.PricingPreviewRequest{Items: workedDraft()})
	require.NoError(t, err)

	assert.Equal(t, "250.00", resp.Summary.Subtotal.StringFixed(2))
	assert.Equal(t, "38.50", resp.Summary.TaxAmount.StringFixed(2))
	assert.Equal(t, "288.50", resp.Summary.GrandTotal.StringFixed(2))
	assert.Equal(t, "288.50", resp.Display.GrandTotal)
	assert.Equal(t, "236.00", resp.Items[0].LineTotal.StringFixed(2))
	assert.Equal(t, "52.50", resp.Items[1].LineTotal.StringFixed(2))
	assert.True(t, resp.CanRemove)
}

func TestPreview_NoEliminaLaUltimaLinea(t *testing.T) {
	resp, err := newUseCase().Preview(context.Background(), dto.PricingPreviewRequest{
		Actions: []dto.PricingActionRequest{{Type: "remove_item", Index: 0}},
	})
	require.NoError(t, err)
	assert.Len(t, resp.Items, 1)
}

func TestPreview_AgregarYEditarEnSecuencia(t *testing.T) {
	resp, err := newUseCase().Preview(context.Background(), dto.PricingPreviewRequest{
		Items: workedDraft(),
		Actions: []dto.PricingActionRequest{
			{Type: "add_item"},
			{Type: "update_item", Index: 2, Field: "name", Value: "Soporte"},
			{Type: "update_item", Index: 2, Field: "quantity", Value: "3.9"},
			{Type: "update_item", Index: 2, Field: "unit_price", Value: "10"},
			{Type: "update_item", Index: 2, Field: "tax_rate", Value: "abc"},
			{Type: "remove_item", Index: 0},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "B", resp.Items[0].Name)
	assert.Equal(t, "Soporte", resp.Items[1].Name)
	assert.Equal(t, int64(3), resp.Items[1].Quantity)
	assert.True(t, resp.Items[1].GSTPercentage.IsZero())
	assert.Equal(t, "82.50", resp.Summary.GrandTotal.StringFixed(2))
}

func TestPreview_SeleccionarProductoCopiaValores(t *testing.T) {
	resp, err := newUseCase().Preview(context.Background(), dto.PricingPreviewRequest{
		Actions: []dto.PricingActionRequest{{Type: "select_product", Index: 0, ProductID: activeID}},
	})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, activeID, resp.Items[0].ProductID)
	assert.Equal(t, "Hosting anual", resp.Items[0].Name)
	assert.Equal(t, "1,416.00", resp.Display.GrandTotal)
}

func TestPreview_FechaDeEmisionSobrescribeVencimiento(t *testing.T) {
	resp, err := newUseCase().Preview(context.Background(), dto.PricingPreviewRequest{
		Actions: []dto.PricingActionRequest{
			{Type: "set_expiry_date", Date: "2024-06-30"},
			{Type: "set_issue_date", Date: "2024-01-31"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-01-31", resp.IssueDate)
	assert.Equal(t, "2024-03-01", resp.ExpiryDate)

	resp, err = newUseCase().Preview(context.Background(), dto.PricingPreviewRequest{
		IssueDate:  "2024-01-01",
		ExpiryDate: "2024-01-20",
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-01-20", resp.ExpiryDate)
}

func TestPreview_Errores(t *testing.T) {
	tests := []struct {
		name  string
		req   dto.PricingPreviewRequest
		field string
	}{
		{
			name:  "índice fuera de la lista",
			req:   dto.PricingPreviewRequest{Actions: []dto.PricingActionRequest{{Type: "update_item", Index: 1, Field: "name", Value: "x"}}},
			field: "actions[0].index",
		},
		{
			name: "índice que deja de existir tras eliminar",
			req: dto.PricingPreviewRequest{Items: workedDraft(), Actions: []dto.PricingActionRequest{
				{Type: "remove_item", Index: 1},
				{Type: "remove_item", Index: 1},
			}},
			field: "actions[1].index",
		},
		{
			name:  "update sin campo",
			req:   dto.PricingPreviewRequest{Actions: []dto.PricingActionRequest{{Type: "update_item", Index: 0}}},
			field: "actions[0].field",
		},
		{
			name:  "producto inactivo",
			req:   dto.PricingPreviewRequest{Actions: []dto.PricingActionRequest{{Type: "select_product", Index: 0, ProductID: inactiveID}}},
			field: "actions[0].product_id",
		},
		{
			name:  "producto sin id",
			req:   dto.PricingPreviewRequest{Actions: []dto.PricingActionRequest{{Type: "select_product", Index: 0}}},
			field: "actions[0].product_id",
		},
		{
			name:  "tipo desconocido",
			req:   dto.PricingPreviewRequest{Actions: []dto.PricingActionRequest{{Type: "duplicate_item"}}},
			field: "actions[0].type",
		},
		{
			name:  "fecha inválida",
			req:   dto.PricingPreviewRequest{IssueDate: "15/01/2024"},
			field: "issue_date",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newUseCase().Preview(context.Background(), tt.req)
			var verr *validation.Error
			require.True(t, errors.As(err, &verr), "se esperaba *validation.Error, se obtuvo %v", err)
			assert.Contains(t, verr.Fields, tt.field)
		})
	}
}
