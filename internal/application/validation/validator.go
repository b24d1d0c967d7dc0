// Package validation valida los DTOs de entrada con go-playground/validator y traduce
// los errores a un mapa campo → mensaje.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/pkg/taxid"
)

// Error errores de validación por campo (ruta JSON → mensaje). Unwrap devuelve domain.ErrInvalidInput.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validación fallida: " + strings.Join(parts, "; ")
}

func (e *Error) Unwrap() error { return domain.ErrInvalidInput }

// FieldError construye un Error de un solo campo.
func FieldError(field, msg string) *Error {
	return &Error{Fields: map[string]string{field: msg}}
}

var enumParsers = map[string]func(string) error{
	"quotation_status":  func(s string) error { _, err := entity.ParseQuotationStatus(s); return err },
	"invoice_status":    func(s string) error { _, err := entity.ParseInvoiceStatus(s); return err },
	"frequency":         func(s string) error { _, err := entity.ParseFrequency(s); return err },
	"payment_method":    func(s string) error { _, err := entity.ParsePaymentMethod(s); return err },
	"role":              func(s string) error { _, err := entity.ParseRole(s); return err },
	"user_status":       func(s string) error { _, err := entity.ParseUserStatus(s); return err },
	"customer_status":   func(s string) error { _, err := entity.ParseCustomerStatus(s); return err },
	"invitation_status": func(s string) error { _, err := entity.ParseInvitationStatus(s); return err },
}

// Validator envoltorio de validator.Validate con las reglas del CRM registradas.
type Validator struct {
	v *validator.Validate
}

// New construye el validador: nombres de campo desde el tag json, decimal comparable
// con gte/lte, la regla enum=<tipo> y las reglas gstin y pan.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return f.Name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	_ = v.RegisterValidation("enum", func(fl validator.FieldLevel) bool {
		parse, ok := enumParsers[fl.Param()]
		if !ok {
			return false
		}
		return parse(fl.Field().String()) == nil
	})
	_ = v.RegisterValidation("gstin", func(fl validator.FieldLevel) bool {
		return taxid.ValidateGSTIN(fl.Field().String()) == nil
	})
	_ = v.RegisterValidation("pan", func(fl validator.FieldLevel) bool {
		return taxid.ValidatePAN(fl.Field().String()) == nil
	})
	return &Validator{v: v}
}

// Struct valida s y devuelve *Error con un mensaje por campo inválido.
func (val *Validator) Struct(s interface{}) error {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	out := &Error{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		out.Fields[fieldPath(fe)] = message(fe)
	}
	return out
}

// fieldPath quita el nombre del struct raíz: "QuotationRequest.items[0].quantity" → "items[0].quantity".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "es obligatorio"
	case "email":
		return "debe ser un email válido"
	case "uuid":
		return "debe ser un UUID"
	case "datetime":
		return "debe tener formato YYYY-MM-DD"
	case "gte":
		return "debe ser mayor o igual a " + fe.Param()
	case "lte":
		return "debe ser menor o igual a " + fe.Param()
	case "min":
		switch fe.Kind() {
		case reflect.Slice:
			return "debe tener al menos " + fe.Param() + " elemento(s)"
		case reflect.String:
			return "debe tener al menos " + fe.Param() + " caracteres"
		}
		return "debe ser mayor o igual a " + fe.Param()
	case "max":
		switch fe.Kind() {
		case reflect.Slice:
			return "admite como máximo " + fe.Param() + " elemento(s)"
		case reflect.String:
			return "admite como máximo " + fe.Param() + " caracteres"
		}
		return "debe ser menor o igual a " + fe.Param()
	case "oneof":
		return "debe ser uno de: " + fe.Param()
	case "enum":
		return "valor no permitido"
	case "gstin":
		return "debe ser un GSTIN válido"
	case "pan":
		return "debe ser un PAN válido (AAAAA9999A)"
	default:
		return "valor inválido (" + fe.Tag() + ")"
	}
}
