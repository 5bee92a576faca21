// Package docs holds the OpenAPI description served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/dashboard": {
            "get": {
                "description": "Filter the dataset to the purchase-date range and compute every panel",
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Compute the dashboard",
                "parameters": [
                    {"type": "string", "description": "Range start (YYYY-MM-DD)", "name": "start", "in": "query"},
                    {"type": "string", "description": "Range end (YYYY-MM-DD)", "name": "end", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Dashboard report", "schema": {"$ref": "#/definitions/model.Report"}},
                    "400": {"description": "Invalid date range", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/dashboard/range": {
            "get": {
                "description": "Return the full purchase-date span of the loaded dataset",
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Get the default date range",
                "responses": {
                    "200": {"description": "Dataset range", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/panels": {
            "get": {
                "description": "List the registered dashboard panels in display order",
                "produces": ["application/json"],
                "tags": ["panels"],
                "summary": "List panels",
                "responses": {
                    "200": {"description": "Registered panels", "schema": {"type": "array", "items": {"type": "object", "additionalProperties": true}}}
                }
            }
        },
        "/panels/{name}": {
            "get": {
                "description": "Compute a single panel over the purchase-date range",
                "produces": ["application/json"],
                "tags": ["panels"],
                "summary": "Get panel",
                "parameters": [
                    {"type": "string", "description": "Panel name", "name": "name", "in": "path", "required": true},
                    {"type": "string", "description": "Range start (YYYY-MM-DD)", "name": "start", "in": "query"},
                    {"type": "string", "description": "Range end (YYYY-MM-DD)", "name": "end", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Panel", "schema": {"$ref": "#/definitions/model.Panel"}},
                    "400": {"description": "Invalid date range", "schema": {"type": "object", "additionalProperties": true}},
                    "404": {"description": "Unknown panel", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/charts/{name}.png": {
            "get": {
                "description": "Render a panel as a PNG chart",
                "produces": ["image/png"],
                "tags": ["panels"],
                "summary": "Get panel chart",
                "parameters": [
                    {"type": "string", "description": "Panel name", "name": "name", "in": "path", "required": true},
                    {"type": "string", "description": "Range start (YYYY-MM-DD)", "name": "start", "in": "query"},
                    {"type": "string", "description": "Range end (YYYY-MM-DD)", "name": "end", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "PNG image"},
                    "204": {"description": "No data in range"},
                    "404": {"description": "Unknown panel or metric tile"}
                }
            }
        }
    },
    "definitions": {
        "model.DateRange": {
            "type": "object",
            "properties": {
                "start": {"type": "string"},
                "end": {"type": "string"}
            }
        },
        "model.Panel": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "title": {"type": "string"},
                "kind": {"type": "string", "enum": ["metric", "line", "pie", "bar", "histogram"]},
                "available": {"type": "boolean"},
                "data": {},
                "error": {"type": "string"}
            }
        },
        "model.Report": {
            "type": "object",
            "properties": {
                "pass_id": {"type": "string"},
                "range": {"$ref": "#/definitions/model.DateRange"},
                "rows": {"type": "integer"},
                "empty": {"type": "boolean"},
                "panels": {"type": "array", "items": {"$ref": "#/definitions/model.Panel"}},
                "computed_at": {"type": "string"},
                "duration": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http"},
	Title:            "E-commerce Dashboard API",
	Description:      "Order analytics over a static e-commerce dataset, filtered by purchase date.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
