// Package swagger registers the OpenAPI document served at /swagger/*.
// Regenerate with: swag init -g cmd/api/main.go -o docs/swagger
package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support",
            "email": "support@gym-finder.dev"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["System"],
                "summary": "Health check",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/radius/validate": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Radius"],
                "summary": "Validate radius text",
                "parameters": [
                    {"type": "string", "description": "Radius text in meters", "name": "text", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}}}
            }
        },
        "/api/v1/screens": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Screens"],
                "summary": "Open a map screen",
                "description": "Mounts a screen and starts the initial search with the default 5000 m radius",
                "parameters": [
                    {"description": "Initial location report", "name": "request", "in": "body", "schema": {"$ref": "#/definitions/dto.OpenScreenRequest"}},
                    {"type": "boolean", "description": "Wait for the initial search to settle", "name": "wait", "in": "query"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/v1/screens/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Screens"],
                "summary": "Get screen state",
                "parameters": [{"type": "string", "description": "Screen ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["Screens"],
                "summary": "Close a map screen",
                "parameters": [{"type": "string", "description": "Screen ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/v1/screens/{id}/location": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Screens"],
                "summary": "Report device location",
                "parameters": [
                    {"type": "string", "description": "Screen ID", "name": "id", "in": "path", "required": true},
                    {"description": "Location report", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.LocationReportRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/v1/screens/{id}/radius": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Screens"],
                "summary": "Update radius text",
                "parameters": [
                    {"type": "string", "description": "Screen ID", "name": "id", "in": "path", "required": true},
                    {"description": "Radius text", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.RadiusInputRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/v1/screens/{id}/search": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Screens"],
                "summary": "Search with the current radius",
                "parameters": [
                    {"type": "string", "description": "Screen ID", "name": "id", "in": "path", "required": true},
                    {"type": "boolean", "description": "Wait for the search to settle", "name": "wait", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "410": {"description": "Gone", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/v1/screens/{id}/retry": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Screens"],
                "summary": "Retry the last search",
                "parameters": [
                    {"type": "string", "description": "Screen ID", "name": "id", "in": "path", "required": true},
                    {"type": "boolean", "description": "Wait for the search to settle", "name": "wait", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "410": {"description": "Gone", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/v1/screens/{id}/selection": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Screens"],
                "summary": "Select a place",
                "parameters": [
                    {"type": "string", "description": "Screen ID", "name": "id", "in": "path", "required": true},
                    {"description": "Selection", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.SelectPlaceRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["Screens"],
                "summary": "Clear the selection",
                "parameters": [{"type": "string", "description": "Screen ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/v1/screens/{id}/list/toggle": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Screens"],
                "summary": "Show or hide the result list",
                "parameters": [{"type": "string", "description": "Screen ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/v1/screens/{id}/places/{placeId}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Screens"],
                "summary": "Place detail view",
                "parameters": [
                    {"type": "string", "description": "Screen ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "Place ID", "name": "placeId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dto.LocationReportRequest": {
            "type": "object",
            "required": ["permission"],
            "properties": {
                "permission": {"type": "string", "enum": ["granted", "denied"]},
                "latitude": {"type": "number", "maximum": 90, "minimum": -90},
                "longitude": {"type": "number", "maximum": 180, "minimum": -180}
            }
        },
        "dto.OpenScreenRequest": {
            "type": "object",
            "properties": {
                "location": {"$ref": "#/definitions/dto.LocationReportRequest"}
            }
        },
        "dto.RadiusInputRequest": {
            "type": "object",
            "properties": {
                "text": {"type": "string", "maxLength": 16}
            }
        },
        "dto.SelectPlaceRequest": {
            "type": "object",
            "required": ["place_id"],
            "properties": {
                "place_id": {"type": "string"},
                "source": {"type": "string", "enum": ["map", "list"]}
            }
        },
        "errors.AppError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "details": {"type": "object", "additionalProperties": true}
            }
        },
        "utils.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/errors.AppError"}
            }
        },
        "utils.Meta": {
            "type": "object",
            "properties": {
                "seq": {"type": "integer"},
                "settled": {"type": "boolean"},
                "time_ms": {"type": "number"}
            }
        },
        "utils.SuccessResponse": {
            "type": "object",
            "properties": {
                "data": {},
                "meta": {"$ref": "#/definitions/utils.Meta"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Gym Finder API",
	Description:      "Discovers gyms near the user's location.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
