package pricing

import "time"

// Draft estado de un formulario de cotización/factura abierto: fechas y líneas.
// Se transforma solo con Reduce; cancelar el formulario es descartar el Draft.
type Draft struct {
	IssueDate  time.Time
	ExpiryDate time.Time
	Items      Items
}

// NewDraft borrador nuevo: emisión hoy, vencimiento a 30 días y una línea por defecto.
func NewDraft(today time.Time) Draft {
	issue := DateOf(today)
	return Draft{
		IssueDate:  issue,
		ExpiryDate: SyncExpiryDate(issue),
		Items:      NewItems(),
	}
}

// Summary totales actuales del borrador.
func (d Draft) Summary() Summary {
	return ComputeSummary(d.Items)
}

// Action cambio aplicable a un Draft. Las implementaciones están en este paquete.
type Action interface {
	apply(Draft) Draft
}

// AddItemAction agrega una línea por defecto.
type AddItemAction struct{}

// RemoveItemAction quita una línea (nunca la última).
type RemoveItemAction struct {
	Index int
}

// UpdateItemAction cambia un campo de una línea con el texto del input.
type UpdateItemAction struct {
	Index int
	Field Field
	Value string
}

// SelectProductAction copia un producto del catálogo en una línea.
type SelectProductAction struct {
	Index  int
	Record CatalogRecord
}

// SetIssueDateAction cambia la fecha de emisión y recalcula siempre el vencimiento,
// aunque este se haya editado a mano antes.
type SetIssueDateAction struct {
	Date time.Time
}

// SetExpiryDateAction edita el vencimiento a mano.
type SetExpiryDateAction struct {
	Date time.Time
}

func (AddItemAction) apply(d Draft) Draft {
	d.Items = AddItem(d.Items)
	return d
}

func (a RemoveItemAction) apply(d Draft) Draft {
	d.Items = RemoveItem(d.Items, a.Index)
	return d
}

func (a UpdateItemAction) apply(d Draft) Draft {
	d.Items = UpdateItem(d.Items, a.Index, a.Field, a.Value)
	return d
}

func (a SelectProductAction) apply(d Draft) Draft {
	d.Items = ApplyProductSelection(d.Items, a.Index, a.Record)
	return d
}

func (a SetIssueDateAction) apply(d Draft) Draft {
	d.IssueDate = DateOf(a.Date)
	d.ExpiryDate = SyncExpiryDate(d.IssueDate)
	return d
}

func (a SetExpiryDateAction) apply(d Draft) Draft {
	d.ExpiryDate = DateOf(a.Date)
	return d
}

// Reduce aplica las acciones en orden y devuelve el borrador resultante.
// El Draft recibido no se modifica.
func Reduce(d Draft, actions ...Action) Draft {
	d.Items = d.Items.clone()
	for _, a := range actions {
		if a == nil {
			continue
		}
		d = a.apply(d)
	}
	return d
}
