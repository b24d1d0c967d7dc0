package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto del catálogo.
type CreateProductRequest struct {
	Name          string          `json:"name" validate:"required,min=1,max=200"`
	Description   string          `json:"description" validate:"omitempty,max=2000"`
	Category      string          `json:"category" validate:"omitempty,max=100"`
	UnitPrice     decimal.Decimal `json:"unit_price" validate:"gte=0"`
	GSTPercentage decimal.Decimal `json:"gst_percentage" validate:"gte=0,lte=100"`
	Active        *bool           `json:"active"`
}

// UpdateProductRequest entrada para actualizar un producto (campos opcionales).
type UpdateProductRequest struct {
	Name          *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description   *string          `json:"description" validate:"omitempty,max=2000"`
	Category      *string          `json:"category" validate:"omitempty,max=100"`
	UnitPrice     *decimal.Decimal `json:"unit_price" validate:"omitempty,gte=0"`
	GSTPercentage *decimal.Decimal `json:"gst_percentage" validate:"omitempty,gte=0,lte=100"`
	Active        *bool            `json:"active"`
}

// ProductListRequest filtros de GET /api/products.
type ProductListRequest struct {
	PageRequest
	Search     string `query:"search" validate:"omitempty,max=100"`
	Category   string `query:"category" validate:"omitempty,max=100"`
	ActiveOnly bool   `query:"active_only"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	GSTPercentage decimal.Decimal `json:"gst_percentage"`
	Active        bool            `json:"active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
