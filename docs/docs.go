// Package docs registra la especificación OpenAPI de Core Stock en swag.
// swagger.json se regenera con `swag init -g cmd/api/main.go` a partir de las anotaciones godoc.
package docs

import (
	_ "embed"

	"github.com/swaggo/swag"
)

//go:embed swagger.json
var docTemplate string

// SwaggerInfo metadatos expuestos en /docs.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Core Stock API",
	Description:      "Sugerencias de reposición, órdenes de compra y permisos por rol.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
