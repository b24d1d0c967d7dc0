package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/crm-api/internal/application/billing"
	"github.com/jhoicas/crm-api/internal/application/dto"
)

// InvoiceHandler maneja las peticiones HTTP de facturación (protegido).
type InvoiceHandler struct {
	uc     *billing.InvoiceUseCase
	export *billing.ExportUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *billing.InvoiceUseCase, export *billing.ExportUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc, export: export}
}

// Create godoc
// @Summary      Crear factura
// @Description  Los totales se calculan en el servidor a partir de las líneas.
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.InvoiceRequest  true  "Cabecera y líneas"
// @Success      201   {object}  dto.InvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/invoices [post]
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.InvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), SessionFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener factura con sus líneas
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar facturas
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        limit        query  int     false  "Límite"  default(20)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Param        status       query  string  false  "unpaid | paid | overdue"
// @Param        customer_id  query  string  false  "ID del cliente"
// @Param        search       query  string  false  "Número o cliente"
// @Success      200          {object}  dto.InvoiceListResponse
// @Router       /api/invoices [get]
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	var in dto.InvoiceListRequest
	if err := c.QueryParser(&in); err != nil {
		return invalidQuery(c)
	}
	out, err := h.uc.List(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar factura
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "ID de la factura"
// @Param        body  body  dto.InvoiceRequest  true  "Cabecera y líneas"
// @Success      200   {object}  dto.InvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [put]
func (h *InvoiceHandler) Update(c *fiber.Ctx) error {
	var in dto.InvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), SessionFrom(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado de pago
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "ID de la factura"
// @Param        body  body  dto.StatusRequest  true  "unpaid | paid | overdue"
// @Success      200   {object}  dto.InvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/status [patch]
func (h *InvoiceHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.StatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateStatus(c.UserContext(), SessionFrom(c), c.Params("id"), in.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar factura
// @Description  Solo admin.
// @Tags         invoices
// @Security     Bearer
// @Param        id   path  string  true  "ID de la factura"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), SessionFrom(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// MarkOverdue godoc
// @Summary      Marcar facturas vencidas
// @Description  Pasa a overdue las facturas unpaid con vencimiento anterior a hoy. Requiere manager o admin.
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MarkOverdueResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/invoices/mark-overdue [post]
func (h *InvoiceHandler) MarkOverdue(c *fiber.Ctx) error {
	out, err := h.uc.MarkOverdue(c.UserContext(), SessionFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      Descargar factura en PDF
// @Tags         invoices
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/pdf [get]
func (h *InvoiceHandler) PDF(c *fiber.Ctx) error {
	file, err := h.export.InvoicePDF(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, file)
}

// XML godoc
// @Summary      Descargar factura en XML
// @Tags         invoices
// @Security     Bearer
// @Produce      application/xml
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/xml [get]
func (h *InvoiceHandler) XML(c *fiber.Ctx) error {
	file, err := h.export.InvoiceXML(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, file)
}

// Export godoc
// @Summary      Exportar listado de facturas
// @Tags         invoices
// @Security     Bearer
// @Produce      octet-stream
// @Param        format       query  string  false  "csv | xlsx"  default(csv)
// @Param        status       query  string  false  "Estado"
// @Param        customer_id  query  string  false  "ID del cliente"
// @Success      200          {file}  binary
// @Failure      400          {object}  dto.ErrorResponse
// @Router       /api/invoices/export [get]
func (h *InvoiceHandler) Export(c *fiber.Ctx) error {
	var in dto.InvoiceListRequest
	if err := c.QueryParser(&in); err != nil {
		return invalidQuery(c)
	}
	file, err := h.export.ExportInvoices(c.UserContext(), in, c.Query("format", "csv"))
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, file)
}
