package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/crm-api/internal/application/billing"
	"github.com/jhoicas/crm-api/internal/application/dto"
)

// QuotationHandler maneja cotizaciones: CRUD, estado, conversión a factura y descargas.
type QuotationHandler struct {
	uc     *billing.QuotationUseCase
	export *billing.ExportUseCase
}

// NewQuotationHandler construye el handler.
func NewQuotationHandler(uc *billing.QuotationUseCase, export *billing.ExportUseCase) *QuotationHandler {
	return &QuotationHandler{uc: uc, export: export}
}

// Create godoc
// @Summary      Crear cotización
// @Description  Los totales se calculan en el servidor a partir de las líneas.
// @Tags         quotations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.QuotationRequest  true  "Cabecera y líneas"
// @Success      201   {object}  dto.QuotationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/quotations [post]
func (h *QuotationHandler) Create(c *fiber.Ctx) error {
	var in dto.QuotationRequest
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
// @Summary      Obtener cotización con sus líneas
// @Tags         quotations
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la cotización"
// @Success      200  {object}  dto.QuotationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/quotations/{id} [get]
func (h *QuotationHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar cotizaciones
// @Tags         quotations
// @Security     Bearer
// @Produce      json
// @Param        limit        query  int     false  "Límite"  default(20)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Param        status       query  string  false  "draft | sent | accepted | rejected"
// @Param        customer_id  query  string  false  "ID del cliente"
// @Param        search       query  string  false  "Número o cliente"
// @Success      200          {object}  dto.QuotationListResponse
// @Router       /api/quotations [get]
func (h *QuotationHandler) List(c *fiber.Ctx) error {
	var in dto.QuotationListRequest
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
// @Summary      Actualizar cotización
// @Description  Reemplaza cabecera y líneas; los totales se recalculan.
// @Tags         quotations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "ID de la cotización"
// @Param        body  body  dto.QuotationRequest  true  "Cabecera y líneas"
// @Success      200   {object}  dto.QuotationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/quotations/{id} [put]
func (h *QuotationHandler) Update(c *fiber.Ctx) error {
	var in dto.QuotationRequest
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
// @Summary      Cambiar estado de la cotización
// @Tags         quotations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "ID de la cotización"
// @Param        body  body  dto.StatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.QuotationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/quotations/{id}/status [patch]
func (h *QuotationHandler) UpdateStatus(c *fiber.Ctx) error {
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
// @Summary      Eliminar cotización
// @Description  Solo admin.
// @Tags         quotations
// @Security     Bearer
// @Param        id   path  string  true  "ID de la cotización"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/quotations/{id} [delete]
func (h *QuotationHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), SessionFrom(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Convert godoc
// @Summary      Convertir cotización en factura
// @Description  Solo cotizaciones aceptadas y una sola vez. La factura nace unpaid con las mismas líneas.
// @Tags         quotations
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la cotización"
// @Success      201  {object}  dto.InvoiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/quotations/{id}/convert [post]
func (h *QuotationHandler) Convert(c *fiber.Ctx) error {
	out, err := h.uc.ConvertToInvoice(c.UserContext(), SessionFrom(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// PDF godoc
// @Summary      Descargar cotización en PDF
// @Tags         quotations
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la cotización"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/quotations/{id}/pdf [get]
func (h *QuotationHandler) PDF(c *fiber.Ctx) error {
	file, err := h.export.QuotationPDF(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, file)
}

// XML godoc
// @Summary      Descargar cotización en XML
// @Tags         quotations
// @Security     Bearer
// @Produce      application/xml
// @Param        id   path  string  true  "ID de la cotización"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/quotations/{id}/xml [get]
func (h *QuotationHandler) XML(c *fiber.Ctx) error {
	file, err := h.export.QuotationXML(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, file)
}

// Export godoc
// @Summary      Exportar listado de cotizaciones
// @Tags         quotations
// @Security     Bearer
// @Produce      octet-stream
// @Param        format       query  string  false  "csv | xlsx"  default(csv)
// @Param        status       query  string  false  "Estado"
// @Param        customer_id  query  string  false  "ID del cliente"
// @Param        search       query  string  false  "Número o cliente"
// @Success      200          {file}  binary
// @Failure      400          {object}  dto.ErrorResponse
// @Router       /api/quotations/export [get]
func (h *QuotationHandler) Export(c *fiber.Ctx) error {
	var in dto.QuotationListRequest
	if err := c.QueryParser(&in); err != nil {
		return invalidQuery(c)
	}
	file, err := h.export.ExportQuotations(c.UserContext(), in, c.Query("format", "csv"))
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, file)
}

// sendFile responde el archivo como adjunto.
func sendFile(c *fiber.Ctx, file *billing.ExportFile) error {
	c.Attachment(file.Name)
	c.Set(fiber.HeaderContentType, file.ContentType)
	return c.Send(file.Data)
}
