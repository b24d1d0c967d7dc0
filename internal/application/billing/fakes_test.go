package billing_test

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/crm-api/internal/application/billing"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

type memCustomers struct {
	byID map[string]*entity.Customer
}

func newMemCustomers(cs ...*entity.Customer) *memCustomers {
	m := &memCustomers{byID: map[string]*entity.Customer{}}
	for _, c := range cs {
		m.byID[c.ID] = c
	}
	return m
}

func (m *memCustomers) Create(_ context.Context, c *entity.Customer) error {
	cp := *c
	m.byID[c.ID] = &cp
	return nil
}

func (m *memCustomers) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	c, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (m *memCustomers) GetByGSTIN(_ context.Context, gstin string) (*entity.Customer, error) {
	for _, c := range m.byID {
		if c.GSTIN == gstin {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memCustomers) List(_ context.Context, f repository.CustomerFilter) ([]*entity.Customer, int, error) {
	var out []*entity.Customer
	for _, c := range m.byID {
		if f.Status != nil && c.Status != *f.Status {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(f.Search)) {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, len(out), nil
}

func (m *memCustomers) Update(_ context.Context, c *entity.Customer) error {
	cp := *c
	m.byID[c.ID] = &cp
	return nil
}

func (m *memCustomers) Delete(_ context.Context, id string) error {
	delete(m.byID, id)
	return nil
}

type memQuotations struct {
	seq   int
	byID  map[string]*entity.Quotation
	items map[string][]entity.DocumentItem
	order []string
}

func newMemQuotations() *memQuotations {
	return &memQuotations{byID: map[string]*entity.Quotation{}, items: map[string][]entity.DocumentItem{}}
}

func (m *memQuotations) NextNumber(context.Context) (string, error) {
	m.seq++
	return fmt.Sprintf("%s-%05d", entity.QuotationNumberPrefix, m.seq), nil
}

func (m *memQuotations) Create(_ context.Context, q *entity.Quotation) error {
	cp := *q
	cp.Items = nil
	m.byID[q.ID] = &cp
	m.order = append(m.order, q.ID)
	return nil
}

func (m *memQuotations) Update(_ context.Context, q *entity.Quotation) error {
	cp := *q
	cp.Items = nil
	m.byID[q.ID] = &cp
	return nil
}

func (m *memQuotations) UpdateStatus(_ context.Context, id string, s entity.QuotationStatus) error {
	m.byID[id].Status = s
	return nil
}

func (m *memQuotations) GetByID(_ context.Context, id string) (*entity.Quotation, error) {
	q, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *q
	return &cp, nil
}

func (m *memQuotations) List(_ context.Context, f repository.QuotationFilter) ([]*entity.Quotation, int, error) {
	var all []*entity.Quotation
	for _, id := range m.order {
		q, ok := m.byID[id]
		if !ok || (f.Status != nil && q.Status != *f.Status) {
			continue
		}
		all = append(all, q)
	}
	return page(all, f.Limit, f.Offset), len(all), nil
}

func (m *memQuotations) Delete(_ context.Context, id string) error {
	delete(m.byID, id)
	delete(m.items, id)
	return nil
}

func (m *memQuotations) ReplaceItems(_ context.Context, id string, items []entity.DocumentItem) error {
	m.items[id] = append([]entity.DocumentItem(nil), items...)
	return nil
}

func (m *memQuotations) GetItems(_ context.Context, id string) ([]entity.DocumentItem, error) {
	return append([]entity.DocumentItem(nil), m.items[id]...), nil
}

type memInvoices struct {
	seq          int
	byID         map[string]*entity.Invoice
	items        map[string][]entity.DocumentItem
	order        []string
	overdueSince time.Time
}

func newMemInvoices() *memInvoices {
	return &memInvoices{byID: map[string]*entity.Invoice{}, items: map[string][]entity.DocumentItem{}}
}

func (m *memInvoices) NextNumber(context.Context) (string, error) {
	m.seq++
	return fmt.Sprintf("%s-%05d", entity.InvoiceNumberPrefix, m.seq), nil
}

func (m *memInvoices) Create(_ context.Context, inv *entity.Invoice) error {
	cp := *inv
	cp.Items = nil
	m.byID[inv.ID] = &cp
	m.order = append(m.order, inv.ID)
	return nil
}

func (m *memInvoices) Update(_ context.Context, inv *entity.Invoice) error {
	cp := *inv
	cp.Items = nil
	m.byID[inv.ID] = &cp
	return nil
}

func (m *memInvoices) UpdateStatus(_ context.Context, id string, s entity.InvoiceStatus) error {
	m.byID[id].Status = s
	return nil
}

func (m *memInvoices) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	inv, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (m *memInvoices) GetByQuotationID(_ context.Context, quotationID string) (*entity.Invoice, error) {
	for _, inv := range m.byID {
		if inv.QuotationID == quotationID {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memInvoices) List(_ context.Context, f repository.InvoiceFilter) ([]*entity.Invoice, int, error) {
	var all []*entity.Invoice
	for _, id := range m.order {
		inv, ok := m.byID[id]
		if !ok || (f.Status != nil && inv.Status != *f.Status) {
			continue
		}
		all = append(all, inv)
	}
	return page(all, f.Limit, f.Offset), len(all), nil
}

func (m *memInvoices) Delete(_ context.Context, id string) error {
	delete(m.byID, id)
	delete(m.items, id)
	return nil
}

func (m *memInvoices) ReplaceItems(_ context.Context, id string, items []entity.DocumentItem) error {
	m.items[id] = append([]entity.DocumentItem(nil), items...)
	return nil
}

func (m *memInvoices) GetItems(_ context.Context, id string) ([]entity.DocumentItem, error) {
	return append([]entity.DocumentItem(nil), m.items[id]...), nil
}

func (m *memInvoices) MarkOverdue(_ context.Context, today time.Time) (int64, error) {
	m.overdueSince = today
	var n int64
	for _, inv := range m.byID {
		if inv.IsOverdue(today) {
			inv.Status = entity.InvoiceOverdue
			n++
		}
	}
	return n, nil
}

func page[T any](all []T, limit, offset int) []T {
	if offset >= len(all) {
		return nil
	}
	end := len(all)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return all[offset:end]
}

// memTx ejecuta fn directamente sobre los repos en memoria.
type memTx struct {
	quotations *memQuotations
	invoices   *memInvoices
}

func (t memTx) RunDocuments(_ context.Context, fn func(repository.QuotationRepository, repository.InvoiceRepository) error) error {
	return fn(t.quotations, t.invoices)
}

type memCatalog map[string]*entity.Product

func (c memCatalog) Lookup(_ context.Context, id string) (*entity.Product, error) {
	return c[id], nil
}

type fakePDF struct {
	last *billing.PrintableDocument
}

func (f *fakePDF) GenerateDocumentPDF(_ context.Context, doc *billing.PrintableDocument) ([]byte, error) {
	f.last = doc
	return []byte("%PDF-fake"), nil
}

type fakeXML struct{}

func (fakeXML) WriteDocumentXML(w io.Writer, doc *billing.PrintableDocument) error {
	_, err := fmt.Fprintf(w, "<%s number=%q total=%q/>", doc.Kind, doc.Number, doc.Summary.GrandTotal.StringFixed(2))
	return err
}

// lineTable escribe una fila por línea separada por "|".
type lineTable struct{}

func (lineTable) WriteTable(w io.Writer, t *billing.Table) error {
	if _, err := fmt.Fprintln(w, strings.Join(t.Headers, "|")); err != nil {
		return err
	}
	for _, r := range t.Rows {
		if _, err := fmt.Fprintln(w, strings.Join(r, "|")); err != nil {
			return err
		}
	}
	return nil
}

func (lineTable) ContentType() string { return "text/plain" }
func (lineTable) Extension() string   { return "txt" }
