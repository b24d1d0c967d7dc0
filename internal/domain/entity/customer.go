package entity

import "time"

// Customer representa un cliente del CRM al que se emiten cotizaciones y facturas.
type Customer struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Company   string
	Industry  string
	Country   string
	Location  string
	Address   string
	GSTIN     string // identificación tributaria; única cuando no está vacía
	PAN       string
	Status    CustomerStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
