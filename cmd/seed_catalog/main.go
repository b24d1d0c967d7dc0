// seed_catalog carga el catálogo de productos desde un CSV
// (name, description, category, unit_price, gst_percentage, active).
//
// Uso: go run ./cmd/seed_catalog [ruta/productos.csv] [utf-8|latin1]
// Por defecto busca productos.csv en el directorio actual.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jhoicas/crm-api/internal/application/usecase"
	"github.com/jhoicas/crm-api/internal/application/validation"
	"github.com/jhoicas/crm-api/internal/infrastructure/postgres"
	"github.com/jhoicas/crm-api/pkg/config"
	"github.com/jhoicas/crm-api/pkg/logger"
)

func main() {
	csvPath := "productos.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	charset := ""
	if len(os.Args) > 2 {
		charset = os.Args[2]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level}).Named("seed_catalog")

	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	products, err := readCatalog(f, charset)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	uc := usecase.NewProductUseCase(postgres.NewProductRepository(pool), nil, validation.New())
	created, failed := 0, 0
	for i, p := range products {
		if _, err := uc.Create(ctx, p); err != nil {
			failed++
			log.Warn().Err(err).Int("row", i+2).Str("name", p.Name).Msg("producto omitido")
			continue
		}
		created++
	}

	fmt.Printf("Catálogo %s: %d productos creados, %d omitidos\n", csvPath, created, failed)
	if failed > 0 {
		os.Exit(2)
	}
}
