package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItemRequest línea de una cotización o factura tal como la envía el formulario.
type LineItemRequest struct {
	ProductID     string          `json:"product_id,omitempty" validate:"omitempty,uuid"`
	Name          string          `json:"name" validate:"required,max=200"`
	Quantity      int64           `json:"quantity" validate:"gte=1"`
	UnitPrice     decimal.Decimal `json:"unit_price" validate:"gte=0"`
	GSTPercentage decimal.Decimal `json:"gst_percentage" validate:"gte=0,lte=100"`
}

// LineItemResponse línea con su total redondeado.
type LineItemResponse struct {
	ProductID     string          `json:"product_id,omitempty"`
	Name          string          `json:"name"`
	Quantity      int64           `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	GSTPercentage decimal.Decimal `json:"gst_percentage"`
	LineTotal     decimal.Decimal `json:"line_total"`
}

// SummaryResponse totales redondeados a 2 decimales.
type SummaryResponse struct {
	Subtotal   decimal.Decimal `json:"subtotal"`
	TaxAmount  decimal.Decimal `json:"tax_amount"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

// CreateCustomerRequest body para POST /api/customers.
type CreateCustomerRequest struct {
	Name     string `json:"name" validate:"required,max=200"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone" validate:"omitempty,max=30"`
	Company  string `json:"company" validate:"omitempty,max=200"`
	Industry string `json:"industry" validate:"omitempty,max=100"`
	Country  string `json:"country" validate:"omitempty,max=100"`
	Location string `json:"location" validate:"omitempty,max=200"`
	Address  string `json:"address" validate:"omitempty,max=500"`
	GSTIN    string `json:"gstin" validate:"omitempty,gstin"`
	PAN      string `json:"pan" validate:"omitempty,pan"`
	Status   string `json:"status" validate:"omitempty,enum=customer_status"`
}

// UpdateCustomerRequest body para PUT /api/customers/:id (reemplazo completo).
type UpdateCustomerRequest = CreateCustomerRequest

// CustomerListRequest filtros de GET /api/customers.
type CustomerListRequest struct {
	PageRequest
	Status string `query:"status" validate:"omitempty,enum=customer_status"`
	Search string `query:"search" validate:"omitempty,max=100"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Company   string    `json:"company,omitempty"`
	Industry  string    `json:"industry,omitempty"`
	Country   string    `json:"country,omitempty"`
	Location  string    `json:"location,omitempty"`
	Address   string    `json:"address,omitempty"`
	GSTIN     string    `json:"gstin,omitempty"`
	PAN       string    `json:"pan,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CustomerListResponse lista paginada de clientes.
type CustomerListResponse struct {
	Items []CustomerResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// QuotationRequest body para POST /api/quotations y PUT /api/quotations/:id.
// IssueDate vacío = hoy; ValidUntil vacío = IssueDate + 30 días.
// En PUT los campos vacíos conservan el valor guardado.
type QuotationRequest struct {
	CustomerID string            `json:"customer_id" validate:"required,uuid"`
	IssueDate  string            `json:"issue_date" validate:"omitempty,datetime=2006-01-02"`
	ValidUntil string            `json:"valid_until" validate:"omitempty,datetime=2006-01-02"`
	Status     string            `json:"status" validate:"omitempty,enum=quotation_status"`
	Notes      string            `json:"notes" validate:"omitempty,max=2000"`
	Terms      string            `json:"terms" validate:"omitempty,max=2000"`
	Items      []LineItemRequest `json:"items" validate:"required,min=1,dive"`
}

// QuotationResponse cotización con líneas y totales.
type QuotationResponse struct {
	ID           string             `json:"id"`
	Number       string             `json:"number"`
	CustomerID   string             `json:"customer_id"`
	CustomerName string             `json:"customer_name,omitempty"`
	IssueDate    string             `json:"issue_date"`
	ValidUntil   string             `json:"valid_until"`
	Status       string             `json:"status"`
	Notes        string             `json:"notes,omitempty"`
	Terms        string             `json:"terms,omitempty"`
	Items        []LineItemResponse `json:"items,omitempty"`
	Summary      SummaryResponse    `json:"summary"`
	CreatedBy    string             `json:"created_by"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// QuotationListRequest filtros de GET /api/quotations.
type QuotationListRequest struct {
	PageRequest
	Status     string `query:"status" validate:"omitempty,enum=quotation_status"`
	CustomerID string `query:"customer_id" validate:"omitempty,uuid"`
	Search     string `query:"search" validate:"omitempty,max=100"`
}

// QuotationListResponse lista paginada de cotizaciones (sin líneas).
type QuotationListResponse struct {
	Items []QuotationResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// InvoiceRequest body para POST /api/invoices y PUT /api/invoices/:id.
// DueDate vacío = IssueDate + 30 días.
// En PUT los campos vacíos (status, quotation_id, payment_method, frequency, fechas) conservan el valor guardado.
type InvoiceRequest struct {
	CustomerID    string            `json:"customer_id" validate:"required,uuid"`
	QuotationID   string            `json:"quotation_id" validate:"omitempty,uuid"`
	IssueDate     string            `json:"issue_date" validate:"omitempty,datetime=2006-01-02"`
	DueDate       string            `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	PaymentMethod string            `json:"payment_method" validate:"omitempty,enum=payment_method"`
	Frequency     string            `json:"frequency" validate:"omitempty,enum=frequency"`
	Status        string            `json:"status" validate:"omitempty,enum=invoice_status"`
	Notes         string            `json:"notes" validate:"omitempty,max=2000"`
	Items         []LineItemRequest `json:"items" validate:"required,min=1,dive"`
}

// InvoiceResponse factura con líneas y totales.
type InvoiceResponse struct {
	ID            string             `json:"id"`
	Number        string             `json:"number"`
	CustomerID    string             `json:"customer_id"`
	CustomerName  string             `json:"customer_name,omitempty"`
	QuotationID   string             `json:"quotation_id,omitempty"`
	IssueDate     string             `json:"issue_date"`
	DueDate       string             `json:"due_date"`
	PaymentMethod string             `json:"payment_method"`
	Frequency     string             `json:"frequency"`
	Status        string             `json:"status"`
	Notes         string             `json:"notes,omitempty"`
	Items         []LineItemResponse `json:"items,omitempty"`
	Summary       SummaryResponse    `json:"summary"`
	CreatedBy     string             `json:"created_by"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// InvoiceListRequest filtros de GET /api/invoices.
type InvoiceListRequest struct {
	PageRequest
	Status     string `query:"status" validate:"omitempty,enum=invoice_status"`
	CustomerID string `query:"customer_id" validate:"omitempty,uuid"`
	Search     string `query:"search" validate:"omitempty,max=100"`
}

// InvoiceListResponse lista paginada de facturas (sin líneas).
type InvoiceListResponse struct {
	Items []InvoiceResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// MarkOverdueResponse resultado de POST /api/invoices/mark-overdue.
type MarkOverdueResponse struct {
	Updated int64 `json:"updated"`
}
