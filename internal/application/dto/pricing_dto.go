package dto

import "github.com/shopspring/decimal"

// PricingActionRequest acción del formulario de documento.
// Type: add_item | remove_item | update_item | select_product | set_issue_date | set_expiry_date.
type PricingActionRequest struct {
	Type      string `json:"type" validate:"required,oneof=add_item remove_item update_item select_product set_issue_date set_expiry_date"`
	Index     int    `json:"index" validate:"gte=0"`
	Field     string `json:"field,omitempty" validate:"omitempty,oneof=name quantity unit_price tax_rate"`
	Value     string `json:"value,omitempty" validate:"omitempty,max=200"`
	ProductID string `json:"product_id,omitempty" validate:"omitempty,uuid"`
	Date      string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// PricingPreviewRequest estado actual del formulario más las acciones a aplicar.
// Sin Items se parte de un borrador nuevo (una línea por defecto, emisión hoy).
type PricingPreviewRequest struct {
	IssueDate  string                 `json:"issue_date" validate:"omitempty,datetime=2006-01-02"`
	ExpiryDate string                 `json:"expiry_date" validate:"omitempty,datetime=2006-01-02"`
	Items      []DraftItemRequest     `json:"items" validate:"omitempty,max=200,dive"`
	Actions    []PricingActionRequest `json:"actions" validate:"omitempty,max=100,dive"`
}

// DraftItemRequest línea de un formulario en edición. No exige nombre ni rangos:
// el borrador puede estar incompleto mientras se edita.
type DraftItemRequest struct {
	ProductID     string          `json:"product_id,omitempty" validate:"omitempty,uuid"`
	Name          string          `json:"name" validate:"max=200"`
	Quantity      int64           `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	GSTPercentage decimal.Decimal `json:"gst_percentage"`
}

// DraftResponse borrador resultante con totales listos para mostrar.
type DraftResponse struct {
	IssueDate  string             `json:"issue_date"`
	ExpiryDate string             `json:"expiry_date"`
	Items      []LineItemResponse `json:"items"`
	Summary    SummaryResponse    `json:"summary"`
	Display    DisplaySummary     `json:"display"`
	CanRemove  bool               `json:"can_remove"` // false cuando solo queda una línea
}

// DisplaySummary totales formateados ("1,234.50").
type DisplaySummary struct {
	Subtotal   string `json:"subtotal"`
	TaxAmount  string `json:"tax_amount"`
	GrandTotal string `json:"grand_total"`
}
