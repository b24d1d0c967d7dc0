package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/crm-api/internal/application/analytics"
	"github.com/jhoicas/crm-api/internal/application/auth"
	"github.com/jhoicas/crm-api/internal/application/billing"
	"github.com/jhoicas/crm-api/internal/application/preview"
	"github.com/jhoicas/crm-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	PreviewUC    *preview.UseCase
	CustomerUC   *billing.CustomerUseCase
	ProductUC    *usecase.ProductUseCase
	QuotationUC  *billing.QuotationUseCase
	InvoiceUC    *billing.InvoiceUseCase
	ExportUC     *billing.ExportUseCase
	UserUC       *usecase.UserUseCase
	InvitationUC *usecase.InvitationUseCase
	DashboardUC  *appanalytics.DashboardUseCase
	JWTSecret    string

	// Users si no es nil, cada request protegido recarga rol y estado del usuario.
	Users UserLookup
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/accept-invitation", authHandler.AcceptInvitation)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	if deps.Users != nil {
		protected.Use(CurrentUser(deps.Users))
	}

	// Motor de precios
	pricingHandler := NewPricingHandler(deps.PreviewUC)
	protected.Post("/pricing/preview", pricingHandler.Preview)

	// Customers
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Quotations (export antes de /:id)
	quotations := protected.Group("/quotations")
	quotationHandler := NewQuotationHandler(deps.QuotationUC, deps.ExportUC)
	quotations.Get("/export", quotationHandler.Export)
	quotations.Post("/", quotationHandler.Create)
	quotations.Get("/", quotationHandler.List)
	quotations.Get("/:id", quotationHandler.GetByID)
	quotations.Put("/:id", quotationHandler.Update)
	quotations.Patch("/:id/status", quotationHandler.UpdateStatus)
	quotations.Post("/:id/convert", quotationHandler.Convert)
	quotations.Get("/:id/pdf", quotationHandler.PDF)
	quotations.Get("/:id/xml", quotationHandler.XML)
	quotations.Delete("/:id", RequireRole("admin"), quotationHandler.Delete)

	// Invoices
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.ExportUC)
	invoices.Get("/export", invoiceHandler.Export)
	invoices.Post("/mark-overdue", RequireRole("admin", "manager"), invoiceHandler.MarkOverdue)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Put("/:id", invoiceHandler.Update)
	invoices.Patch("/:id/status", invoiceHandler.UpdateStatus)
	invoices.Get("/:id/pdf", invoiceHandler.PDF)
	invoices.Get("/:id/xml", invoiceHandler.XML)
	invoices.Delete("/:id", RequireRole("admin"), invoiceHandler.Delete)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/summary", dashboardHandler.GetSummary)

	// Team: /me y el propio perfil para cualquier usuario; listados para manager o admin; el resto solo admin
	team := protected.Group("/team")
	teamHandler := NewTeamHandler(deps.UserUC, deps.InvitationUC)
	managers := RequireRole("admin", "manager")
	admins := RequireRole("admin")
	team.Get("/me", teamHandler.Me)
	team.Put("/users/:id", teamHandler.UpdateProfile)
	team.Get("/users", managers, teamHandler.ListUsers)
	team.Get("/users/:id", managers, teamHandler.GetUser)
	team.Patch("/users/:id/role", admins, teamHandler.UpdateRole)
	team.Patch("/users/:id/status", admins, teamHandler.UpdateStatus)
	team.Delete("/users/:id", admins, teamHandler.DeleteUser)
	team.Get("/invitations", managers, teamHandler.ListInvitations)
	team.Post("/invitations", admins, teamHandler.Invite)
	team.Post("/invitations/:id/resend", admins, teamHandler.ResendInvitation)
	team.Delete("/invitations/:id", admins, teamHandler.CancelInvitation)
}
