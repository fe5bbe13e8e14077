// Package wayfarer registers the OpenAPI document for the Wayfarer API with
// the swag runtime so http-swagger can serve it under /swagger/.
//
// Regenerate with:
//
//	swag init -g internal/wayfarer/http/router.go -o api/wayfarer
package wayfarer

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "Wayfarer Team",
            "url": "https://github.com/wayfarerhq/wayfarer"
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
        "/.well-known/jwks.json": {
            "get": {
                "produces": ["application/json"],
                "tags": ["well-known"],
                "summary": "Get JWKS",
                "responses": {
                    "200": {"description": "The JSON Web Key Set"}
                }
            }
        },
        "/livez": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Liveness Endpoint",
                "responses": {
                    "200": {"description": "status, version, uptime"}
                }
            }
        },
        "/readyz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Readiness Endpoint",
                "responses": {
                    "200": {"description": "status, version, checks"},
                    "503": {"description": "service not ready"}
                }
            }
        },
        "/v1/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Login Endpoint",
                "responses": {
                    "200": {"description": "access_token, token_type, expires_in, user"},
                    "401": {"description": "error, message"}
                }
            }
        },
        "/v1/bootstrap": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Bootstrap"],
                "summary": "Bootstrap Endpoint",
                "responses": {
                    "201": {"description": "user"},
                    "403": {"description": "error, message"},
                    "409": {"description": "error, message"}
                }
            }
        },
        "/v1/trips": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Trips"],
                "summary": "List Trips Endpoint",
                "responses": {
                    "200": {"description": "trips"}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Trips"],
                "summary": "Create Trip Endpoint",
                "responses": {
                    "201": {"description": "trip"}
                }
            }
        },
        "/v1/trips/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Trips"],
                "summary": "Get Trip Endpoint",
                "responses": {
                    "200": {"description": "trip"},
                    "403": {"description": "error, message"}
                }
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Trips"],
                "summary": "Update Trip Endpoint",
                "responses": {
                    "200": {"description": "trip"},
                    "403": {"description": "error, message"}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["Trips"],
                "summary": "Delete Trip Endpoint",
                "responses": {
                    "204": {"description": "no content"},
                    "403": {"description": "error, message"}
                }
            }
        },
        "/v1/trips/{id}/members": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Grants"],
                "summary": "List Trip Members Endpoint",
                "responses": {
                    "200": {"description": "members"}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Grants"],
                "summary": "Grant Access Endpoint",
                "responses": {
                    "201": {"description": "grant"},
                    "409": {"description": "error, message"}
                }
            }
        },
        "/v1/grants/{id}": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Grants"],
                "summary": "Update Grant Role Endpoint",
                "responses": {
                    "200": {"description": "grant"},
                    "404": {"description": "error, message"}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["Grants"],
                "summary": "Revoke Grant Endpoint",
                "responses": {
                    "204": {"description": "no content"},
                    "404": {"description": "error, message"}
                }
            }
        },
        "/v1/invitations": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Invitations"],
                "summary": "List Invitations Endpoint",
                "responses": {
                    "200": {"description": "invitations"}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Invitations"],
                "summary": "Create Invitation Endpoint",
                "responses": {
                    "201": {"description": "code, invitation"}
                }
            }
        },
        "/v1/invitations/{id}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["Invitations"],
                "summary": "Revoke Invitation Endpoint",
                "responses": {
                    "204": {"description": "no content"},
                    "404": {"description": "error, message"},
                    "409": {"description": "error, message"}
                }
            }
        },
        "/v1/invitations/validate": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Invitations"],
                "summary": "Validate Invitation Endpoint",
                "responses": {
                    "200": {"description": "valid, reason, role, trip_ids"}
                }
            }
        },
        "/v1/invitations/redeem": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Invitations"],
                "summary": "Redeem Invitation Endpoint",
                "responses": {
                    "200": {"description": "user, grants"},
                    "404": {"description": "error, message"},
                    "409": {"description": "error, message"},
                    "410": {"description": "error, message"}
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
	Version:          "0.1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Wayfarer API",
	Description:      "Trip sharing service with invitation-based onboarding.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
