package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	_ "github.com/jhoicas/crm-api/docs"
	appanalytics "github.com/jhoicas/crm-api/internal/application/analytics"
	"github.com/jhoicas/crm-api/internal/application/auth"
	"github.com/jhoicas/crm-api/internal/application/billing"
	"github.com/jhoicas/crm-api/internal/application/preview"
	"github.com/jhoicas/crm-api/internal/application/usecase"
	"github.com/jhoicas/crm-api/internal/application/validation"
	"github.com/jhoicas/crm-api/internal/infrastructure/cache"
	"github.com/jhoicas/crm-api/internal/infrastructure/export"
	infrapdf "github.com/jhoicas/crm-api/internal/infrastructure/pdf"
	"github.com/jhoicas/crm-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/crm-api/internal/interfaces/http"
	"github.com/jhoicas/crm-api/migrations"
	"github.com/jhoicas/crm-api/pkg/config"
	"github.com/jhoicas/crm-api/pkg/logger"
	"github.com/jhoicas/crm-api/pkg/money"
)

// @title                       CRM API
// @version                     1.0
// @description                 Clientes, catálogo, cotizaciones y facturas con cálculo de totales en el servidor.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.DB.AutoMigrate {
		if err := migrations.Up(cfg.DB.MigrateURL()); err != nil {
			log.Fatal().Err(err).Msg("aplicar migraciones")
		}
		log.Info().Msg("migraciones aplicadas")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	invitationRepo := postgres.NewInvitationRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	quotationRepo := postgres.NewQuotationRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	validate := validation.New()
	formatter := money.Default()
	catalog := cache.NewCatalogCache(productRepo, cfg.Cache.CatalogTTL)

	authUC := auth.NewAuthUseCase(userRepo, invitationRepo, validate, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)
	userUC := usecase.NewUserUseCase(userRepo, validate)
	invitationUC := usecase.NewInvitationUseCase(invitationRepo, userRepo, validate, cfg.Team.InvitationTTL, log)
	productUC := usecase.NewProductUseCase(productRepo, catalog, validate)
	customerUC := billing.NewCustomerUseCase(customerRepo, validate)
	quotationUC := billing.NewQuotationUseCase(txRunner, quotationRepo, customerRepo, catalog, validate, log)
	invoiceUC := billing.NewInvoiceUseCase(txRunner, invoiceRepo, quotationRepo, customerRepo, catalog, validate, log)
	previewUC := preview.NewUseCase(catalog, validate, formatter)
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo)

	// PDF y XML por documento; CSV y XLSX para listados
	exportUC := billing.NewExportUseCase(
		quotationRepo, invoiceRepo, customerRepo,
		infrapdf.NewMarotoPDFGenerator(cfg.App.Name, formatter),
		export.NewXMLWriter(),
		map[string]billing.TableWriter{
			"csv":  export.NewCSVWriter(),
			"xlsx": export.NewXLSXWriter(),
		},
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "CRM API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "db_unavailable", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		PreviewUC:    previewUC,
		CustomerUC:   customerUC,
		ProductUC:    productUC,
		QuotationUC:  quotationUC,
		InvoiceUC:    invoiceUC,
		ExportUC:     exportUC,
		UserUC:       userUC,
		InvitationUC: invitationUC,
		DashboardUC:  dashboardUC,
		JWTSecret:    cfg.JWT.Secret,
		Users:        userRepo,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
