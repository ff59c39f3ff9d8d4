// Package docs holds the OpenAPI document served under /swagger.
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
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/pool": {
            "get": {
                "description": "Last state decoded from the panel, with any transition in progress in message.",
                "produces": ["application/json"],
                "tags": ["pool"],
                "summary": "Get pool status",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.PoolStatus"}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            },
            "post": {
                "description": "Presses the panel button for the attribute until it reaches the requested state.\nTwo presses of the same button are separated by a settle delay.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["pool"],
                "summary": "Change pool state",
                "parameters": [
                    {"description": "Command", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.CommandRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.CommandResponse"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "409": {"description": "Conflict", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "502": {"description": "Bad Gateway", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/pool/keys/{raw}": {
            "get": {
                "description": "Decodes a raw LED segment as captured from the status page and lists the known key names.",
                "produces": ["application/json"],
                "tags": ["pool"],
                "summary": "Decode an LED string",
                "parameters": [
                    {"type": "string", "example": "TECD4C333333", "description": "Raw LED characters", "name": "raw", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.KeyReport"}}
                }
            }
        },
        "/api/v1/logs": {
            "get": {
                "description": "Filter logs by date (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD'). If 'to' is date-only, it is treated as end-of-day inclusive (23:59:59.999999999Z).",
                "produces": ["application/json"],
                "tags": ["logs"],
                "summary": "List logs",
                "parameters": [
                    {"type": "string", "example": "2025-08-01", "description": "Start of range", "name": "from", "in": "query"},
                    {"type": "string", "example": "2025-08-31", "description": "End of range. Date-only treated as end of day.", "name": "to", "in": "query"},
                    {"enum": ["COMMAND", "COMMAND_FAILED", "MODE_CHANGE", "FILTER_CHANGE", "LOCKED", "UNLOCKED", "CONNECTION_LOST", "CONNECTION_RESTORED"], "type": "string", "description": "Event type", "name": "type", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "count, events", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "handlers.CommandRequest": {
            "type": "object",
            "required": ["attribute", "state"],
            "properties": {
                "attribute": {"description": "lights | poolmode | filtermode | heater-auto", "type": "string", "example": "poolmode"},
                "state": {"description": "on/off, pool/spa/spillover or off/low/high", "type": "string", "example": "spa"}
            }
        },
        "handlers.CommandResponse": {
            "type": "object",
            "properties": {
                "result": {"$ref": "#/definitions/service.CommandResult"},
                "state": {"$ref": "#/definitions/handlers.PoolStatus"},
                "status": {"type": "string", "example": "ok"}
            }
        },
        "handlers.PoolStatus": {
            "type": "object",
            "properties": {
                "air_temperature": {"type": "number", "example": 71},
                "display_line_one": {"type": "string", "example": "Pool Temp 84°F"},
                "display_line_two": {"type": "string"},
                "filter_mode": {"type": "string", "example": "high"},
                "heater": {"type": "string", "example": "on"},
                "heater_auto": {"type": "string", "example": "auto"},
                "is_disabled": {"type": "boolean"},
                "keys": {"type": "object"},
                "lights": {"type": "string", "example": "off"},
                "message": {"type": "string"},
                "pool_mode": {"type": "string", "example": "pool"},
                "pool_temperature": {"type": "number", "example": 84},
                "pool_temperature_as_of": {"type": "string"},
                "spa_temperature": {"type": "number", "example": 101},
                "spa_temperature_as_of": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "service.CommandResult": {
            "type": "object",
            "properties": {
                "disabled": {"type": "boolean"},
                "plan": {"$ref": "#/definitions/service.PressPlan"},
                "presses_sent": {"type": "integer"}
            }
        },
        "service.PressPlan": {
            "type": "object",
            "properties": {
                "attribute": {"type": "string"},
                "key": {"type": "string"},
                "message": {"type": "string"},
                "presses": {"type": "integer"}
            }
        },
        "service.KeyReport": {
            "type": "object",
            "properties": {
                "keys": {"type": "object", "additionalProperties": {"type": "string"}},
                "results": {"type": "object", "additionalProperties": {"type": "string"}}
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
	Title:            "Pool Automation API",
	Description:      "Monitors and controls an AquaConnect pool panel through its WebStr status page.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
