package pricing

// Items lista ordenada de líneas de un documento. Un documento siempre tiene al menos una.
type Items []LineItem

// NewItems lista inicial de un formulario: una línea por defecto.
func NewItems() Items {
	return Items{NewLineItem()}
}

// Has indica si index apunta a una línea de la lista.
func (l Items) Has(index int) bool {
	return index >= 0 && index < len(l)
}

func (l Items) clone() Items {
	out := make(Items, len(l), len(l)+1)
	copy(out, l)
	return out
}

// AddItem agrega una línea por defecto al final.
func AddItem(list Items) Items {
	return append(list.clone(), NewLineItem())
}

// RemoveItem quita la línea en index. Si solo queda una línea no hace nada:
// un documento no puede quedar sin líneas. Un index fuera de rango también deja la lista igual.
func RemoveItem(list Items, index int) Items {
	if len(list) <= 1 || !list.Has(index) {
		return list.clone()
	}
	out := make(Items, 0, len(list)-1)
	out = append(out, list[:index]...)
	return append(out, list[index+1:]...)
}

// UpdateItem reemplaza un campo de la línea en index con el texto recibido del formulario.
// Los campos numéricos se convierten; texto no numérico queda en 0. No valida rangos.
func UpdateItem(list Items, index int, field Field, value string) Items {
	out := list.clone()
	if !out.Has(index) {
		return out
	}
	item := out[index]
	switch field {
	case FieldName:
		item.Name = value
	case FieldQuantity:
		item.Quantity = parseQuantity(value)
	case FieldUnitPrice:
		item.UnitPrice = parseDecimal(value)
	case FieldTaxRate:
		item.TaxRatePercent = parseDecimal(value)
	default:
		return out
	}
	out[index] = item
	return out
}

// ApplyProductSelection copia nombre, precio y GST del producto a la línea en index.
// Es una copia por valor: cambios posteriores del catálogo no afectan la línea.
func ApplyProductSelection(list Items, index int, record CatalogRecord) Items {
	out := list.clone()
	if !out.Has(index) {
		return out
	}
	item := out[index]
	item.Name = record.Name
	item.UnitPrice = record.UnitPrice
	item.TaxRatePercent = record.TaxRatePercent
	item.ProductRef = record.ID
	out[index] = item
	return out
}
