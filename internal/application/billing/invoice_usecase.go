package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/application/validation"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/pricing"
	"github.com/jhoicas/crm-api/internal/domain/repository"
	"github.com/jhoicas/crm-api/internal/domain/session"
	"github.com/jhoicas/crm-api/pkg/logger"
)

// InvoiceUseCase casos de uso de facturas.
type InvoiceUseCase struct {
	txRunner      DocumentTxRunner
	invoiceRepo   repository.InvoiceRepository
	quotationRepo repository.QuotationRepository
	customerRepo  repository.CustomerRepository
	catalog       CatalogLookup
	validate      *validation.Validator
	log           *logger.Logger
	now           func() time.Time
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(
	txRunner DocumentTxRunner,
	invoiceRepo repository.InvoiceRepository,
	quotationRepo repository.QuotationRepository,
	customerRepo repository.CustomerRepository,
	catalog CatalogLookup,
	validate *validation.Validator,
	log *logger.Logger,
) *InvoiceUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &InvoiceUseCase{
		txRunner:      txRunner,
		invoiceRepo:   invoiceRepo,
		quotationRepo: quotationRepo,
		customerRepo:  customerRepo,
		catalog:       catalog,
		validate:      validate,
		log:           log.Named("invoices"),
		now:           time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *InvoiceUseCase) WithClock(now func() time.Time) *InvoiceUseCase {
	uc.now = now
	return uc
}

// Create valida, calcula totales y guarda la factura con sus líneas en una transacción.
func (uc *InvoiceUseCase) Create(ctx context.Context, sess session.Session, in dto.InvoiceRequest) (*dto.InvoiceResponse, error) {
	inv, err := uc.build(ctx, in)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	inv.ID = uuid.New().String()
	inv.CreatedBy = sess.UserID
	inv.CreatedAt = now
	inv.UpdatedAt = now
	inv.Items = entity.NewDocumentItems(inv.ID, entity.PricingItems(inv.Items))

	err = uc.txRunner.RunDocuments(ctx, func(_ repository.QuotationRepository, invoices repository.InvoiceRepository) error {
		number, err := invoices.NextNumber(ctx)
		if err != nil {
			return err
		}
		inv.Number = number
		if err := invoices.Create(ctx, inv); err != nil {
			return err
		}
		return invoices.ReplaceItems(ctx, inv.ID, inv.Items)
	})
	if err != nil {
		return nil, fmt.Errorf("crear factura: %w", err)
	}

	uc.log.Info().
		Str("invoice_id", inv.ID).
		Str("number", inv.Number).
		Str("user_id", sess.UserID).
		Str("grand_total", inv.Totals.GrandTotal.StringFixed(2)).
		Msg("factura creada")
	return toInvoiceResponse(inv), nil
}

// Update reemplaza cabecera y líneas (borrar y reinsertar líneas en la misma transacción).
func (uc *InvoiceUseCase) Update(ctx context.Context, sess session.Session, id string, in dto.InvoiceRequest) (*dto.InvoiceResponse, error) {
	existing, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}
	if in.Status == "" {
		in.Status = existing.Status.String()
	}
	if in.QuotationID == "" {
		in.QuotationID = existing.QuotationID
	}
	if in.PaymentMethod == "" {
		in.PaymentMethod = existing.PaymentMethod.String()
	}
	if in.Frequency == "" {
		in.Frequency = existing.Frequency.String()
	}
	in.IssueDate, in.DueDate = keepDates(existing.IssueDate, existing.DueDate, in.IssueDate, in.DueDate)
	inv, err := uc.build(ctx, in)
	if err != nil {
		return nil, err
	}
	inv.ID = existing.ID
	inv.Number = existing.Number
	inv.CreatedBy = existing.CreatedBy
	inv.CreatedAt = existing.CreatedAt
	inv.UpdatedAt = uc.now()
	inv.Items = entity.NewDocumentItems(inv.ID, entity.PricingItems(inv.Items))

	err = uc.txRunner.RunDocuments(ctx, func(_ repository.QuotationRepository, invoices repository.InvoiceRepository) error {
		if err := invoices.Update(ctx, inv); err != nil {
			return err
		}
		return invoices.ReplaceItems(ctx, inv.ID, inv.Items)
	})
	if err != nil {
		return nil, fmt.Errorf("actualizar factura: %w", err)
	}

	uc.log.Info().Str("invoice_id", inv.ID).Str("user_id", sess.UserID).Int("items", len(inv.Items)).Msg("factura actualizada")
	return toInvoiceResponse(inv), nil
}

func (uc *InvoiceUseCase) build(ctx context.Context, in dto.InvoiceRequest) (*entity.Invoice, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	inv := &entity.Invoice{
		Notes:       in.Notes,
		QuotationID: in.QuotationID,
	}
	var err error
	if in.Status != "" {
		if inv.Status, err = entity.ParseInvoiceStatus(in.Status); err != nil {
			return nil, err
		}
	}
	if in.PaymentMethod != "" {
		if inv.PaymentMethod, err = entity.ParsePaymentMethod(in.PaymentMethod); err != nil {
			return nil, err
		}
	}
	if in.Frequency != "" {
		if inv.Frequency, err = entity.ParseFrequency(in.Frequency); err != nil {
			return nil, err
		}
	}
	if inv.IssueDate, inv.DueDate, err = documentDates(uc.now(), in.IssueDate, in.DueDate, "due_date"); err != nil {
		return nil, err
	}

	customer, err := uc.customerRepo.GetByID(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, validation.FieldError("customer_id", "cliente no encontrado")
	}
	inv.CustomerID = customer.ID
	inv.CustomerName = customer.Name

	if in.QuotationID != "" {
		q, err := uc.quotationRepo.GetByID(ctx, in.QuotationID)
		if err != nil {
			return nil, err
		}
		if q == nil {
			return nil, validation.FieldError("quotation_id", "cotización no encontrada")
		}
	}

	items := itemsFromRequest(in.Items)
	if err := checkProductRefs(ctx, uc.catalog, items); err != nil {
		return nil, err
	}
	inv.Totals = pricing.ComputeSummary(items).Rounded()
	inv.Items = entity.NewDocumentItems("", items)
	return inv, nil
}

// Get devuelve la factura con sus líneas.
func (uc *InvoiceUseCase) Get(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv), nil
}

func (uc *InvoiceUseCase) load(ctx context.Context, id string) (*entity.Invoice, error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.invoiceRepo.GetItems(ctx, id)
	if err != nil {
		return nil, err
	}
	inv.Items = items
	return inv, nil
}

// List lista facturas (sin líneas) con filtros y paginación.
func (uc *InvoiceUseCase) List(ctx context.Context, in dto.InvoiceListRequest) (*dto.InvoiceListResponse, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	in.DefaultPage()
	filter := repository.InvoiceFilter{
		CustomerID: in.CustomerID,
		Search:     in.Search,
		Limit:      in.Limit,
		Offset:     in.Offset,
	}
	if in.Status != "" {
		s, err := entity.ParseInvoiceStatus(in.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = &s
	}
	list, total, err := uc.invoiceRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := &dto.InvoiceListResponse{
		Items: make([]dto.InvoiceResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}
	for _, inv := range list {
		out.Items = append(out.Items, *toInvoiceResponse(inv))
	}
	return out, nil
}

// UpdateStatus cambia el estado de pago de la factura.
func (uc *InvoiceUseCase) UpdateStatus(ctx context.Context, sess session.Session, id, status string) (*dto.InvoiceResponse, error) {
	s, err := entity.ParseInvoiceStatus(status)
	if err != nil {
		return nil, validation.FieldError("status", "valor no permitido")
	}
	inv, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.invoiceRepo.UpdateStatus(ctx, id, s); err != nil {
		return nil, fmt.Errorf("actualizar estado de factura: %w", err)
	}
	inv.Status = s
	inv.UpdatedAt = uc.now()
	uc.log.Info().Str("invoice_id", id).Str("status", s.String()).Str("user_id", sess.UserID).Msg("estado de factura actualizado")
	return toInvoiceResponse(inv), nil
}

// Delete elimina la factura y sus líneas. Solo admin.
func (uc *InvoiceUseCase) Delete(ctx context.Context, sess session.Session, id string) error {
	if !sess.IsAdmin() {
		return domain.ErrForbidden
	}
	inv, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if inv == nil {
		return domain.ErrNotFound
	}
	if err := uc.invoiceRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("eliminar factura: %w", err)
	}
	uc.log.Info().Str("invoice_id", id).Str("user_id", sess.UserID).Msg("factura eliminada")
	return nil
}

// MarkOverdue pasa a overdue las facturas unpaid cuyo vencimiento ya pasó. Devuelve cuántas cambiaron.
func (uc *InvoiceUseCase) MarkOverdue(ctx context.Context, sess session.Session) (*dto.MarkOverdueResponse, error) {
	if !sess.CanManage() {
		return nil, domain.ErrForbidden
	}
	n, err := uc.invoiceRepo.MarkOverdue(ctx, pricing.DateOf(uc.now()))
	if err != nil {
		return nil, fmt.Errorf("marcar facturas vencidas: %w", err)
	}
	uc.log.Info().Int64("updated", n).Msg("facturas marcadas como vencidas")
	return &dto.MarkOverdueResponse{Updated: n}, nil
}
