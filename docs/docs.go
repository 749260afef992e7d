// Package docs registers the swagger document served at /v1/swagger.
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
        "/authentication/token": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["authentication"],
                "summary": "Creates an operator session token",
                "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/main.CreateTokenPayload"}}],
                "responses": {
                    "201": {"description": "Token"},
                    "400": {"description": "Bad request", "schema": {"$ref": "#/definitions/main.ErrorResponse"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/main.ErrorResponse"}}
                }
            }
        },
        "/authentication/logout": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["authentication"],
                "summary": "Ends the operator session",
                "responses": {"204": {"description": "Logged out"}}
            }
        },
        "/catalog": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Catalog load state",
                "responses": {
                    "200": {"description": "Catalog state"},
                    "503": {"description": "Catalog could not be fetched", "schema": {"$ref": "#/definitions/main.ErrorResponse"}}
                }
            }
        },
        "/catalog/refetch": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Reloads the whole catalog from the remote API",
                "responses": {
                    "200": {"description": "Catalog state"},
                    "503": {"description": "Catalog could not be fetched", "schema": {"$ref": "#/definitions/main.ErrorResponse"}}
                }
            }
        },
        "/products": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Filtered and paginated product list",
                "parameters": [
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"},
                    {"type": "string", "name": "q", "in": "query"}
                ],
                "responses": {"200": {"description": "Products"}}
            }
        },
        "/products/{productID}": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Latest copy of one product",
                "parameters": [{"type": "integer", "name": "productID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Product"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/main.ErrorResponse"}}
                }
            },
            "patch": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Updates visibility or weight unit of a product",
                "parameters": [
                    {"type": "integer", "name": "productID", "in": "path", "required": true},
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/main.UpdateProductPayload"}}
                ],
                "responses": {
                    "200": {"description": "Product"},
                    "400": {"description": "Bad request", "schema": {"$ref": "#/definitions/main.ErrorResponse"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/main.ErrorResponse"}},
                    "502": {"description": "Remote API rejected the update", "schema": {"$ref": "#/definitions/main.ErrorResponse"}}
                }
            }
        },
        "/products/{productID}/variants/{variantID}": {
            "patch": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["variants"],
                "summary": "Updates visibility or packaging of a variant",
                "parameters": [
                    {"type": "integer", "name": "productID", "in": "path", "required": true},
                    {"type": "integer", "name": "variantID", "in": "path", "required": true},
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/main.UpdateVariantPayload"}}
                ],
                "responses": {
                    "200": {"description": "Product"},
                    "400": {"description": "Bad request", "schema": {"$ref": "#/definitions/main.ErrorResponse"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/main.ErrorResponse"}},
                    "502": {"description": "Remote API rejected the update", "schema": {"$ref": "#/definitions/main.ErrorResponse"}}
                }
            }
        },
        "/view": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["view"],
                "summary": "Current list or detail view of the session",
                "responses": {"200": {"description": "View"}}
            }
        },
        "/uploads": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["uploads"],
                "summary": "Upload dialog status",
                "responses": {"200": {"description": "Upload status"}}
            },
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["uploads"],
                "summary": "Uploads the selected image to the open target",
                "parameters": [{"type": "file", "name": "image", "in": "formData", "required": true}],
                "responses": {
                    "200": {"description": "Upload status"},
                    "400": {"description": "Not an image", "schema": {"$ref": "#/definitions/main.ErrorResponse"}},
                    "409": {"description": "Dialog closed or busy", "schema": {"$ref": "#/definitions/main.ErrorResponse"}},
                    "413": {"description": "File too large", "schema": {"$ref": "#/definitions/main.ErrorResponse"}},
                    "502": {"description": "Remote API rejected the upload", "schema": {"$ref": "#/definitions/main.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["uploads"],
                "summary": "Closes the upload dialog",
                "responses": {"200": {"description": "Upload status"}}
            }
        },
        "/notifications": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["notifications"],
                "summary": "Drains pending notifications of the session",
                "responses": {"200": {"description": "Notifications"}}
            }
        }
    },
    "definitions": {
        "main.CreateTokenPayload": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "main.UpdateProductPayload": {
            "type": "object",
            "properties": {
                "is_hidden": {"type": "boolean"},
                "weight_unit": {"type": "string", "maxLength": 32}
            }
        },
        "main.UpdateVariantPayload": {
            "type": "object",
            "properties": {
                "is_hidden": {"type": "boolean"},
                "packaging": {"type": "string", "maxLength": 64}
            }
        },
        "main.ErrorResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean", "example": false},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "",
	Host:             "",
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "Catalog Admin API",
	Description:      "Backend for the product catalog administration UI.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
