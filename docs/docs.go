// Package docs содержит OpenAPI-описание HTTP API, которое отдаётся Swagger UI.
package docs

import _ "embed"

//go:embed swagger.json
var SwaggerJSON []byte
