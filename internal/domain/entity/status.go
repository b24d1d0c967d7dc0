package entity

import (
	"fmt"
	"strings"

	"github.com/jhoicas/crm-api/internal/domain"
)

// Enumeraciones cerradas del dominio. El valor cero de cada tipo es su valor por defecto.
// Solo los repositorios y la capa HTTP convierten desde/hacia texto.

func enumString(names []string, v uint8) string {
	if int(v) >= len(names) {
		return "unknown"
	}
	return names[v]
}

func parseEnum[T ~uint8](kind string, names []string, s string) (T, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range names {
		if n == s {
			return T(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %s inválido %q", domain.ErrInvalidInput, kind, s)
}

// QuotationStatus estado de una cotización.
type QuotationStatus uint8

const (
	QuotationDraft QuotationStatus = iota
	QuotationSent
	QuotationAccepted
	QuotationRejected
)

var quotationStatusNames = []string{"draft", "sent", "accepted", "rejected"}

func (s QuotationStatus) String() string { return enumString(quotationStatusNames, uint8(s)) }

// ParseQuotationStatus convierte el texto persistido o recibido por la API.
func ParseQuotationStatus(s string) (QuotationStatus, error) {
	return parseEnum[QuotationStatus]("estado de cotización", quotationStatusNames, s)
}

func (s QuotationStatus) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *QuotationStatus) UnmarshalText(b []byte) error {
	v, err := ParseQuotationStatus(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// InvoiceStatus estado de pago de una factura.
type InvoiceStatus uint8

const (
	InvoiceUnpaid InvoiceStatus = iota
	InvoicePaid
	InvoiceOverdue
)

var invoiceStatusNames = []string{"unpaid", "paid", "overdue"}

func (s InvoiceStatus) String() string { return enumString(invoiceStatusNames, uint8(s)) }

func ParseInvoiceStatus(s string) (InvoiceStatus, error) {
	return parseEnum[InvoiceStatus]("estado de factura", invoiceStatusNames, s)
}

func (s InvoiceStatus) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *InvoiceStatus) UnmarshalText(b []byte) error {
	v, err := ParseInvoiceStatus(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Frequency periodicidad de cobro de una factura.
type Frequency uint8

const (
	FrequencyOneTime Frequency = iota
	FrequencyMonthly
	FrequencyQuarterly
	FrequencyHalfYearly
	FrequencyAnnually
	FrequencyCustom
)

var frequencyNames = []string{"one-time", "monthly", "quarterly", "half-yearly", "annually", "custom"}

func (f Frequency) String() string { return enumString(frequencyNames, uint8(f)) }

func ParseFrequency(s string) (Frequency, error) {
	return parseEnum[Frequency]("frecuencia", frequencyNames, s)
}

func (f Frequency) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

func (f *Frequency) UnmarshalText(b []byte) error {
	v, err := ParseFrequency(string(b))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// PaymentMethod medio de pago de una factura.
type PaymentMethod uint8

const (
	PaymentBankTransfer PaymentMethod = iota
	PaymentCash
	PaymentUPI
	PaymentStripe
	PaymentRazorpay
)

var paymentMethodNames = []string{"bank-transfer", "cash", "upi", "stripe", "razorpay"}

func (p PaymentMethod) String() string { return enumString(paymentMethodNames, uint8(p)) }

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	return parseEnum[PaymentMethod]("medio de pago", paymentMethodNames, s)
}

func (p PaymentMethod) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *PaymentMethod) UnmarshalText(b []byte) error {
	v, err := ParsePaymentMethod(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Role rol de un usuario del CRM.
type Role uint8

const (
	RoleUser Role = iota
	RoleManager
	RoleAdmin
)

var roleNames = []string{"user", "manager", "admin"}

func (r Role) String() string { return enumString(roleNames, uint8(r)) }

func ParseRole(s string) (Role, error) {
	return parseEnum[Role]("rol", roleNames, s)
}

func (r Role) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

func (r *Role) UnmarshalText(b []byte) error {
	v, err := ParseRole(string(b))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// UserStatus estado de una cuenta de usuario.
type UserStatus uint8

const (
	UserActive UserStatus = iota
	UserInactive
	UserSuspended
)

var userStatusNames = []string{"active", "inactive", "suspended"}

func (s UserStatus) String() string { return enumString(userStatusNames, uint8(s)) }

func ParseUserStatus(s string) (UserStatus, error) {
	return parseEnum[UserStatus]("estado de usuario", userStatusNames, s)
}

func (s UserStatus) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *UserStatus) UnmarshalText(b []byte) error {
	v, err := ParseUserStatus(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// CustomerStatus estado de un cliente.
type CustomerStatus uint8

const (
	CustomerActive CustomerStatus = iota
	CustomerInactive
)

var customerStatusNames = []string{"active", "inactive"}

func (s CustomerStatus) String() string { return enumString(customerStatusNames, uint8(s)) }

func ParseCustomerStatus(s string) (CustomerStatus, error) {
	return parseEnum[CustomerStatus]("estado de cliente", customerStatusNames, s)
}

func (s CustomerStatus) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *CustomerStatus) UnmarshalText(b []byte) error {
	v, err := ParseCustomerStatus(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// InvitationStatus estado de una invitación de equipo.
// InvitationExpired no se persiste: se deriva de ExpiresAt en lecturas y filtros.
type InvitationStatus uint8

const (
	InvitationPending InvitationStatus = iota
	InvitationAccepted
	InvitationCancelled
	InvitationExpired
)

var invitationStatusNames = []string{"pending", "accepted", "cancelled", "expired"}

func (s InvitationStatus) String() string { return enumString(invitationStatusNames, uint8(s)) }

func ParseInvitationStatus(s string) (InvitationStatus, error) {
	return parseEnum[InvitationStatus]("estado de invitación", invitationStatusNames, s)
}

func (s InvitationStatus) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *InvitationStatus) UnmarshalText(b []byte) error {
	v, err := ParseInvitationStatus(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
