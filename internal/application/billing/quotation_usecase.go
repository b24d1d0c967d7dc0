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

// QuotationUseCase casos de uso de cotizaciones.
// Los totales se calculan siempre en el servidor con el motor de precios; los del cliente se ignoran.
type QuotationUseCase struct {
	txRunner      DocumentTxRunner
	quotationRepo repository.QuotationRepository
	customerRepo  repository.CustomerRepository
	catalog       CatalogLookup
	validate      *validation.Validator
	log           *logger.Logger
	now           func() time.Time
}

// NewQuotationUseCase construye el caso de uso.
func NewQuotationUseCase(
	txRunner DocumentTxRunner,
	quotationRepo repository.QuotationRepository,
	customerRepo repository.CustomerRepository,
	catalog CatalogLookup,
	validate *validation.Validator,
	log *logger.Logger,
) *QuotationUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &QuotationUseCase{
		txRunner:      txRunner,
		quotationRepo: quotationRepo,
		customerRepo:  customerRepo,
		catalog:       catalog,
		validate:      validate,
		log:           log.Named("quotations"),
		now:           time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *QuotationUseCase) WithClock(now func() time.Time) *QuotationUseCase {
	uc.now = now
	return uc
}

// Create valida la solicitud, calcula totales y guarda cabecera + líneas en una transacción.
func (uc *QuotationUseCase) Create(ctx context.Context, sess session.Session, in dto.QuotationRequest) (*dto.QuotationResponse, error) {
	q, err := uc.build(ctx, in)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	q.ID = uuid.New().String()
	q.CreatedBy = sess.UserID
	q.CreatedAt = now
	q.UpdatedAt = now
	q.Items = entity.NewDocumentItems(q.ID, entity.PricingItems(q.Items))

	err = uc.txRunner.RunDocuments(ctx, func(quotations repository.QuotationRepository, _ repository.InvoiceRepository) error {
		number, err := quotations.NextNumber(ctx)
		if err != nil {
			return err
		}
		q.Number = number
		if err := quotations.Create(ctx, q); err != nil {
			return err
		}
		return quotations.ReplaceItems(ctx, q.ID, q.Items)
	})
	if err != nil {
		return nil, fmt.Errorf("crear cotización: %w", err)
	}

	uc.log.Info().
		Str("quotation_id", q.ID).
		Str("number", q.Number).
		Str("user_id", sess.UserID).
		Str("grand_total", q.Totals.GrandTotal.StringFixed(2)).
		Msg("cotización creada")
	return toQuotationResponse(q), nil
}

// Update reemplaza cabecera y líneas. Las líneas se borran y se vuelven a insertar en la misma transacción.
func (uc *QuotationUseCase) Update(ctx context.Context, sess session.Session, id string, in dto.QuotationRequest) (*dto.QuotationResponse, error) {
	existing, err := uc.quotationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}
	if in.Status == "" {
		in.Status = existing.Status.String()
	}
	in.IssueDate, in.ValidUntil = keepDates(existing.IssueDate, existing.ValidUntil, in.IssueDate, in.ValidUntil)
	q, err := uc.build(ctx, in)
	if err != nil {
		return nil, err
	}
	q.ID = existing.ID
	q.Number = existing.Number
	q.CreatedBy = existing.CreatedBy
	q.CreatedAt = existing.CreatedAt
	q.UpdatedAt = uc.now()
	q.Items = entity.NewDocumentItems(q.ID, entity.PricingItems(q.Items))

	err = uc.txRunner.RunDocuments(ctx, func(quotations repository.QuotationRepository, _ repository.InvoiceRepository) error {
		if err := quotations.Update(ctx, q); err != nil {
			return err
		}
		return quotations.ReplaceItems(ctx, q.ID, q.Items)
	})
	if err != nil {
		return nil, fmt.Errorf("actualizar cotización: %w", err)
	}

	uc.log.Info().Str("quotation_id", q.ID).Str("user_id", sess.UserID).Int("items", len(q.Items)).Msg("cotización actualizada")
	return toQuotationResponse(q), nil
}

// build valida la solicitud y arma la cotización (sin ID ni número) con totales calculados.
func (uc *QuotationUseCase) build(ctx context.Context, in dto.QuotationRequest) (*entity.Quotation, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	status := entity.QuotationDraft
	if in.Status != "" {
		s, err := entity.ParseQuotationStatus(in.Status)
		if err != nil {
			return nil, err
		}
		status = s
	}
	issue, validUntil, err := documentDates(uc.now(), in.IssueDate, in.ValidUntil, "valid_until")
	if err != nil {
		return nil, err
	}
	customer, err := uc.customerRepo.GetByID(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, validation.FieldError("customer_id", "cliente no encontrado")
	}
	items := itemsFromRequest(in.Items)
	if err := checkProductRefs(ctx, uc.catalog, items); err != nil {
		return nil, err
	}
	return &entity.Quotation{
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
		IssueDate:    issue,
		ValidUntil:   validUntil,
		Status:       status,
		Notes:        in.Notes,
		Terms:        in.Terms,
		Totals:       pricing.ComputeSummary(items).Rounded(),
		Items:        entity.NewDocumentItems("", items),
	}, nil
}

// Get devuelve la cotización con sus líneas.
func (uc *QuotationUseCase) Get(ctx context.Context, id string) (*dto.QuotationResponse, error) {
	q, err := uc.load(ctx, uc.quotationRepo, id)
	if err != nil {
		return nil, err
	}
	return toQuotationResponse(q), nil
}

func (uc *QuotationUseCase) load(ctx context.Context, repo repository.QuotationRepository, id string) (*entity.Quotation, error) {
	q, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, domain.ErrNotFound
	}
	items, err := repo.GetItems(ctx, id)
	if err != nil {
		return nil, err
	}
	q.Items = items
	return q, nil
}

// List lista cotizaciones (sin líneas) con filtros y paginación.
func (uc *QuotationUseCase) List(ctx context.Context, in dto.QuotationListRequest) (*dto.QuotationListResponse, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	in.DefaultPage()
	filter := repository.QuotationFilter{
		CustomerID: in.CustomerID,
		Search:     in.Search,
		Limit:      in.Limit,
		Offset:     in.Offset,
	}
	if in.Status != "" {
		s, err := entity.ParseQuotationStatus(in.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = &s
	}
	list, total, err := uc.quotationRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := &dto.QuotationListResponse{
		Items: make([]dto.QuotationResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}
	for _, q := range list {
		out.Items = append(out.Items, *toQuotationResponse(q))
	}
	return out, nil
}

// UpdateStatus cambia el estado de la cotización.
func (uc *QuotationUseCase) UpdateStatus(ctx context.Context, sess session.Session, id, status string) (*dto.QuotationResponse, error) {
	s, err := entity.ParseQuotationStatus(status)
	if err != nil {
		return nil, validation.FieldError("status", "valor no permitido")
	}
	q, err := uc.load(ctx, uc.quotationRepo, id)
	if err != nil {
		return nil, err
	}
	if err := uc.quotationRepo.UpdateStatus(ctx, id, s); err != nil {
		return nil, fmt.Errorf("actualizar estado de cotización: %w", err)
	}
	q.Status = s
	q.UpdatedAt = uc.now()
	uc.log.Info().Str("quotation_id", id).Str("status", s.String()).Str("user_id", sess.UserID).Msg("estado de cotización actualizado")
	return toQuotationResponse(q), nil
}

// Delete elimina la cotización y sus líneas. Solo admin.
func (uc *QuotationUseCase) Delete(ctx context.Context, sess session.Session, id string) error {
	if !sess.IsAdmin() {
		return domain.ErrForbidden
	}
	q, err := uc.quotationRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if q == nil {
		return domain.ErrNotFound
	}
	if err := uc.quotationRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("eliminar cotización: %w", err)
	}
	uc.log.Info().Str("quotation_id", id).Str("user_id", sess.UserID).Msg("cotización eliminada")
	return nil
}

// ConvertToInvoice crea una factura unpaid desde una cotización aceptada, copiando líneas y totales.
// Una cotización solo se puede convertir una vez.
func (uc *QuotationUseCase) ConvertToInvoice(ctx context.Context, sess session.Session, id string) (*dto.InvoiceResponse, error) {
	var inv *entity.Invoice
	err := uc.txRunner.RunDocuments(ctx, func(quotations repository.QuotationRepository, invoices repository.InvoiceRepository) error {
		q, err := uc.load(ctx, quotations, id)
		if err != nil {
			return err
		}
		if !q.CanConvert() {
			return fmt.Errorf("%w: solo se convierten cotizaciones aceptadas (estado actual %s)", domain.ErrConflict, q.Status)
		}
		prev, err := invoices.GetByQuotationID(ctx, q.ID)
		if err != nil {
			return err
		}
		if prev != nil {
			return fmt.Errorf("%w: la cotización ya fue facturada en %s", domain.ErrConflict, prev.Number)
		}

		now := uc.now()
		today := pricing.DateOf(now)
		items := entity.PricingItems(q.Items)
		inv = &entity.Invoice{
			ID:            uuid.New().String(),
			CustomerID:    q.CustomerID,
			CustomerName:  q.CustomerName,
			QuotationID:   q.ID,
			IssueDate:     today,
			DueDate:       pricing.SyncExpiryDate(today),
			PaymentMethod: entity.PaymentBankTransfer,
			Frequency:     entity.FrequencyOneTime,
			Status:        entity.InvoiceUnpaid,
			Notes:         q.Notes,
			Totals:        pricing.ComputeSummary(items).Rounded(),
			CreatedBy:     sess.UserID,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		inv.Items = entity.NewDocumentItems(inv.ID, items)

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
		return nil, err
	}
	uc.log.Info().Str("quotation_id", id).Str("invoice_id", inv.ID).Str("number", inv.Number).Msg("cotización convertida en factura")
	return toInvoiceResponse(inv), nil
}
