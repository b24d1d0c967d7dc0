// migrate aplica o revierte el esquema embebido en la base configurada.
//
// Uso: go run ./cmd/migrate [up|down|version]
package main

import (
	"fmt"
	"os"

	"github.com/jhoicas/crm-api/migrations"
	"github.com/jhoicas/crm-api/pkg/config"
	"github.com/jhoicas/crm-api/pkg/logger"
)

func main() {
	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level}).Named("migrate")
	url := cfg.DB.MigrateURL()

	switch cmd {
	case "up":
		err = migrations.Up(url)
	case "down":
		err = migrations.Down(url)
	case "version":
		v, dirty, verr := migrations.Version(url)
		if verr == nil {
			log.Info().Uint("version", v).Bool("dirty", dirty).Msg("versión del esquema")
		}
		err = verr
	default:
		fmt.Fprintf(os.Stderr, "comando desconocido %q (up, down, version)\n", cmd)
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Str("cmd", cmd).Msg("migración fallida")
	}
	log.Info().Str("cmd", cmd).Msg("migración completada")
}
