// Package docs registra la especificación OpenAPI de la API en swag.
// swagger.json se regenera con: swag init -g cmd/api/main.go -o docs
package docs

import (
	_ "embed"

	"github.com/swaggo/swag"
)

//go:embed swagger.json
var docTemplate string

// SwaggerInfo información de la API expuesta en /docs.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "CRM API",
	Description:      "Clientes, catálogo, cotizaciones y facturas con cálculo de totales en el servidor.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
