// Package docs registers the OpenAPI document served at /swagger.
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
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/health/ready": {
            "get": {
                "tags": ["health"],
                "summary": "Readiness probe (MongoDB and Redis)",
                "responses": {
                    "200": {"description": "OK"},
                    "503": {"description": "Service Unavailable"}
                }
            }
        },
        "/auth/login": {
            "get": {
                "tags": ["auth"],
                "summary": "Redirect to the OAuth provider",
                "responses": {"302": {"description": "Found"}}
            }
        },
        "/auth/callback": {
            "get": {
                "tags": ["auth"],
                "summary": "Complete the OAuth flow and issue a session token",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "code", "in": "query", "required": true},
                    {"type": "string", "name": "state", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"},
                    "403": {"description": "Forbidden"}
                }
            }
        },
        "/v1/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["auth"],
                "summary": "Current session profile",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/v1/me/orders": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["orders"],
                "summary": "Current user's order history",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/v1/catalog/minecraft": {
            "get": {
                "tags": ["catalog"],
                "summary": "List Minecraft hosting plans",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/v1/catalog/vps": {
            "get": {
                "tags": ["catalog"],
                "summary": "List VPS plans",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/v1/catalog/tlds": {
            "get": {
                "tags": ["catalog"],
                "summary": "List domain extensions with pricing",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/v1/catalog/domain-features": {
            "get": {
                "tags": ["catalog"],
                "summary": "List domain landing-page features",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/v1/coupons/validate": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["coupons"],
                "summary": "Check a coupon before checkout",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"},
                    "422": {"description": "Unprocessable Entity"}
                }
            }
        },
        "/v1/orders": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["orders"],
                "summary": "Place an order",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request"},
                    "422": {"description": "Unprocessable Entity"}
                }
            }
        },
        "/v1/admin/orders": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin-orders"],
                "summary": "List orders with filters and pagination",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/v1/admin/orders/{id}/confirm": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin-orders"],
                "summary": "Confirm a pending order",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "422": {"description": "Unprocessable Entity"}
                }
            }
        },
        "/v1/admin/orders/{id}/cancel": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin-orders"],
                "summary": "Cancel a pending order",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "422": {"description": "Unprocessable Entity"}
                }
            }
        },
        "/v1/admin/orders/{id}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin-orders"],
                "summary": "Delete an order in any state",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/v1/admin/coupons": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin-coupons"],
                "summary": "List all coupons",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin-coupons"],
                "summary": "Create a coupon",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Conflict"}
                }
            }
        },
        "/v1/admin/coupons/{id}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin-coupons"],
                "summary": "Delete a coupon",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/v1/admin/coupons/{id}/active": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin-coupons"],
                "summary": "Activate or deactivate a coupon",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/v1/admin/coupons/{id}/redemptions": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin-coupons"],
                "summary": "List redemptions for a coupon with the redeeming users",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/v1/admin/users": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin-users"],
                "summary": "List users with filters and pagination",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/v1/admin/users/{id}/role": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin-users"],
                "summary": "Change a user's role",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "403": {"description": "Forbidden"}
                }
            }
        },
        "/v1/admin/users/{id}/ban": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin-users"],
                "summary": "Ban a user",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "403": {"description": "Forbidden"}
                }
            }
        },
        "/v1/admin/users/{id}/unban": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin-users"],
                "summary": "Unban a user",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "403": {"description": "Forbidden"}
                }
            }
        },
        "/v1/admin/users/{id}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin-users"],
                "summary": "Delete a user",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "403": {"description": "Forbidden"}
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "HostCraft Platform API",
	Description:      "Backend for the HostCraft hosting website: OAuth login, plan catalog, coupon redemption, and order management.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
