// Package docs registers the OpenAPI document served under /swagger.
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
    "securityDefinitions": {
        "Bearer": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "security": [{"Bearer": []}],
    "paths": {
        "/user/register/": {
            "post": {
                "tags": ["user"], "summary": "Register a user", "security": [],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/Credentials"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/User"}}, "400": {"description": "Validation error"}}
            }
        },
        "/user/token/": {
            "post": {
                "tags": ["user"], "summary": "Obtain an access/refresh token pair", "security": [],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/Credentials"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/TokenPair"}}, "401": {"description": "Bad credentials"}}
            }
        },
        "/user/token/refresh/": {
            "post": {"tags": ["user"], "summary": "Exchange a refresh token for an access token", "security": [], "responses": {"200": {"description": "OK"}, "401": {"description": "Invalid token"}}}
        },
        "/user/token/verify/": {
            "post": {"tags": ["user"], "summary": "Verify a token", "security": [], "responses": {"200": {"description": "OK"}, "401": {"description": "Invalid token"}}}
        },
        "/user/me/": {
            "get": {"tags": ["user"], "summary": "Current user", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/User"}}}},
            "put": {"tags": ["user"], "summary": "Replace profile", "responses": {"200": {"description": "OK"}}},
            "patch": {"tags": ["user"], "summary": "Update profile", "responses": {"200": {"description": "OK"}}}
        },
        "/crew/": {
            "get": {"tags": ["crew"], "summary": "List crew", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["crew"], "summary": "Create crew member (staff)", "responses": {"201": {"description": "Created"}, "403": {"description": "Forbidden"}}}
        },
        "/airports/": {
            "get": {"tags": ["airports"], "summary": "List airports", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["airports"], "summary": "Create airport (staff)", "responses": {"201": {"description": "Created"}, "403": {"description": "Forbidden"}}}
        },
        "/airports/{id}/": {
            "get": {"tags": ["airports"], "summary": "Airport with departing routes", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}}
        },
        "/routs/": {
            "get": {"tags": ["routes"], "summary": "List routes", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["routes"], "summary": "Create route (staff)", "responses": {"201": {"description": "Created"}}}
        },
        "/airplane_types/": {
            "get": {"tags": ["airplanes"], "summary": "List airplane types", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["airplanes"], "summary": "Create airplane type (staff)", "responses": {"201": {"description": "Created"}}}
        },
        "/airplanes/": {
            "get": {"tags": ["airplanes"], "summary": "List airplanes", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["airplanes"], "summary": "Create airplane (staff)", "responses": {"201": {"description": "Created"}}}
        },
        "/airplanes/{id}/upload-image/": {
            "post": {
                "tags": ["airplanes"], "summary": "Upload airplane image (staff)", "consumes": ["multipart/form-data"],
                "parameters": [{"$ref": "#/parameters/id"}, {"in": "formData", "name": "image", "type": "file", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Not an image"}}
            }
        },
        "/flights/": {
            "get": {
                "tags": ["flights"], "summary": "List flights with availability",
                "parameters": [
                    {"in": "query", "name": "route", "type": "string", "description": "Source-Destination, e.g. Paris-Kyiv"},
                    {"in": "query", "name": "airport", "type": "string", "description": "Source city"},
                    {"in": "query", "name": "date", "type": "string", "format": "date", "description": "Departure date YYYY-MM-DD"},
                    {"in": "query", "name": "page", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Malformed filter"}}
            },
            "post": {"tags": ["flights"], "summary": "Create flight (staff)", "responses": {"201": {"description": "Created"}}}
        },
        "/flights/{id}/": {
            "get": {"tags": ["flights"], "summary": "Flight with crew and taken places", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}}
        },
        "/orders/": {
            "get": {"tags": ["orders"], "summary": "List own orders", "parameters": [{"in": "query", "name": "page", "type": "integer"}], "responses": {"200": {"description": "OK"}}},
            "post": {
                "tags": ["orders"], "summary": "Create an order",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/OrderRequest"}}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Invalid or taken seat"}}
            }
        },
        "/orders/{id}/": {
            "get": {"tags": ["orders"], "summary": "Own order with flights", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}},
            "delete": {"tags": ["orders"], "summary": "Delete own order", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"204": {"description": "Deleted"}}}
        },
        "/orders/{id}/eticket/": {
            "get": {"tags": ["orders"], "summary": "E-ticket PDF", "produces": ["application/pdf"], "parameters": [{"$ref": "#/parameters/id"}], "responses": {"200": {"description": "PDF"}}}
        }
    },
    "parameters": {
        "id": {"in": "path", "name": "id", "type": "integer", "required": true}
    },
    "definitions": {
        "Credentials": {"type": "object", "properties": {"email": {"type": "string"}, "password": {"type": "string"}}},
        "TokenPair": {"type": "object", "properties": {"access": {"type": "string"}, "refresh": {"type": "string"}}},
        "User": {"type": "object", "properties": {"id": {"type": "integer"}, "email": {"type": "string"}, "is_staff": {"type": "boolean"}}},
        "Ticket": {"type": "object", "properties": {"row": {"type": "integer"}, "seat": {"type": "integer"}, "flight": {"type": "integer"}}},
        "OrderRequest": {"type": "object", "properties": {"tickets": {"type": "array", "items": {"$ref": "#/definitions/Ticket"}}}}
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Skybook API",
	Description:      "Flight booking service: catalog, flights, orders.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
