// Package docs holds the API descriptions served by the HTTP surface: the
// swagger 2.0 document registered with swag for the Swagger UI, and the
// OpenAPI 3 document served at /openapi.yaml.
package docs

import (
	_ "embed"

	"github.com/swaggo/swag"
)

// OpenAPI is the OpenAPI 3 description of the API.
//
//go:embed openapi.yaml
var OpenAPI []byte

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
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Database readiness check",
                "responses": {
                    "200": {"description": "Database reachable"},
                    "503": {"description": "Database unreachable"}
                }
            }
        },
        "/healthz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Process liveness",
                "responses": {
                    "200": {"description": "Process alive"}
                }
            }
        },
        "/metrics": {
            "get": {
                "produces": ["text/plain"],
                "tags": ["health"],
                "summary": "Prometheus metrics",
                "responses": {
                    "200": {"description": "Metrics in the text exposition format"}
                }
            }
        },
        "/api/query": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["query"],
                "summary": "Classify free text and dispatch it to one or both backends",
                "parameters": [
                    {
                        "description": "Free-text request",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/QueryRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "Envelope, success may be false when a backend failed", "schema": {"$ref": "#/definitions/QueryResponse"}},
                    "400": {"description": "Missing or blank query", "schema": {"$ref": "#/definitions/QueryResponse"}},
                    "500": {"description": "Unexpected internal failure", "schema": {"$ref": "#/definitions/QueryResponse"}}
                }
            }
        },
        "/api/analyze": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["query"],
                "summary": "Classify free text without contacting any backend",
                "parameters": [
                    {
                        "description": "Free-text request",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/QueryRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "Classification result"},
                    "400": {"description": "Missing or blank query"}
                }
            }
        },
        "/api/command": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["command"],
                "summary": "Run an operator command",
                "parameters": [
                    {
                        "description": "Command name and arguments",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/CommandRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "Command result"},
                    "400": {"description": "Empty or unknown command"},
                    "500": {"description": "Backup flow failed"}
                }
            }
        },
        "/api/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Status of every backend adapter",
                "responses": {
                    "200": {"description": "Healthy or degraded"},
                    "503": {"description": "At least one backend unhealthy"}
                }
            }
        },
        "/api/tools": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Backend capability listing",
                "responses": {
                    "200": {"description": "Tools per backend"}
                }
            }
        },
        "/api/examples": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Example phrases grouped by category",
                "responses": {
                    "200": {"description": "Example phrases"}
                }
            }
        },
        "/api/backups": {
            "get": {
                "produces": ["application/json"],
                "tags": ["backups"],
                "summary": "List recorded backups",
                "parameters": [
                    {"type": "integer", "description": "Page size", "name": "limit", "in": "query"},
                    {"type": "integer", "description": "Page offset", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Backup page"}
                }
            }
        },
        "/api/backups/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["backups"],
                "summary": "Backup detail with a presigned manifest URL",
                "parameters": [
                    {"type": "string", "description": "Backup ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Backup detail"},
                    "404": {"description": "Backup not found"}
                }
            },
            "delete": {
                "tags": ["backups"],
                "summary": "Delete the manifest object and the backup record",
                "parameters": [
                    {"type": "string", "description": "Backup ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "Deleted"},
                    "404": {"description": "Backup not found"}
                }
            }
        },
        "/api/backups/{id}/manifest": {
            "get": {
                "produces": ["application/json"],
                "tags": ["backups"],
                "summary": "Stream the stored backup manifest",
                "parameters": [
                    {"type": "string", "description": "Backup ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Manifest JSON"},
                    "404": {"description": "Backup not found"}
                }
            }
        }
    },
    "definitions": {
        "QueryRequest": {
            "type": "object",
            "required": ["query"],
            "properties": {
                "query": {"type": "string", "example": "show me the schema of customer table"}
            }
        },
        "CommandRequest": {
            "type": "object",
            "required": ["command"],
            "properties": {
                "command": {"type": "string", "example": "backup postgres to mongodb"}
            }
        },
        "QueryResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "data": {"type": "object"},
                "timestamp": {"type": "integer", "format": "int64"},
                "query": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "querybridge API",
	Description:      "Routes natural-language requests to a PostgreSQL and a MongoDB backend and returns a uniform result envelope.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
