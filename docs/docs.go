// Package docs holds the Swagger document served under /swagger/. It is kept
// in step with the handler annotations by hand.
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
                "tags": ["System"],
                "summary": "Health check",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/login": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Login form",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Login",
                "description": "Authenticates by email and password. Pending accounts are refused.",
                "parameters": [
                    {"description": "Credentials", "name": "request", "in": "body", "required": true,
                     "schema": {"$ref": "#/definitions/handlers.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/services.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/services.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/services.ErrorResponse"}}
                }
            }
        },
        "/register": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Registration form",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Register",
                "parameters": [
                    {"description": "New account", "name": "request", "in": "body", "required": true,
                     "schema": {"$ref": "#/definitions/handlers.RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/services.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/services.ErrorResponse"}}
                }
            }
        },
        "/logout": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Auth"],
                "summary": "Logout",
                "responses": {"303": {"description": "See Other"}}
            }
        },
        "/dashboard": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Dashboard"],
                "summary": "Dashboard",
                "parameters": [
                    {"type": "string", "description": "Plate number substring", "name": "search", "in": "query"},
                    {"type": "string", "description": "RFID type, All for any", "name": "rfid", "in": "query"},
                    {"type": "string", "description": "Vehicle type, All for any", "name": "vehicle_filter", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/services.AdminDashboard"}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["Dashboard"],
                "summary": "Submit trip",
                "parameters": [
                    {"description": "Trip", "name": "request", "in": "body", "required": true,
                     "schema": {"$ref": "#/definitions/handlers.TripRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/services.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/services.ErrorResponse"}}
                }
            }
        },
        "/trips/{id}/receipt": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Dashboard"],
                "summary": "Trip receipt",
                "parameters": [{"type": "integer", "description": "Trip ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/services.Receipt"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/services.ErrorResponse"}}
                }
            }
        },
        "/edit/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "Get trip",
                "parameters": [{"type": "integer", "description": "Trip ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.TripRecord"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/services.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "Edit trip",
                "parameters": [
                    {"type": "integer", "description": "Trip ID", "name": "id", "in": "path", "required": true},
                    {"description": "Trip", "name": "request", "in": "body", "required": true,
                     "schema": {"$ref": "#/definitions/handlers.TripRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/services.ErrorResponse"}}
                }
            }
        },
        "/approve/{id}": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "Approve account",
                "parameters": [{"type": "integer", "description": "Account ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/services.ErrorResponse"}}
                }
            }
        },
        "/reject/{id}": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "Reject account",
                "parameters": [{"type": "integer", "description": "Account ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/services.ErrorResponse"}}
                }
            }
        },
        "/reload/{id}": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "Reload balance",
                "parameters": [
                    {"type": "integer", "description": "Account ID", "name": "id", "in": "path", "required": true},
                    {"description": "Amount", "name": "request", "in": "body", "required": true,
                     "schema": {"$ref": "#/definitions/handlers.ReloadRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/services.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/services.ErrorResponse"}}
                }
            }
        },
        "/delete/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "Delete trip",
                "parameters": [{"type": "integer", "description": "Trip ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/services.ErrorResponse"}}
                }
            }
        },
        "/scan/{tag_id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Scans"],
                "summary": "Record RFID scan",
                "parameters": [{"type": "string", "description": "RFID tag id", "name": "tag_id", "in": "path", "required": true}],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/services.ErrorResponse"}}
                }
            }
        },
        "/api/scans": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Scans"],
                "summary": "List scans",
                "parameters": [{"type": "integer", "description": "Max scans (default 100)", "name": "limit", "in": "query"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Scan"}}}
                }
            }
        },
        "/auto_simulate": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Scans"],
                "summary": "Simulate scan",
                "responses": {
                    "201": {"description": "Created"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/services.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handlers.LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string", "example": "driver@campus.edu"},
                "password": {"type": "string", "example": "secret"}
            }
        },
        "handlers.RegisterRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string", "example": "driver@campus.edu"},
                "password": {"type": "string", "maxLength": 128, "minLength": 1, "example": "secret"}
            }
        },
        "handlers.ReloadRequest": {
            "type": "object",
            "required": ["amount"],
            "properties": {
                "amount": {"type": "string", "example": "500"}
            }
        },
        "handlers.TripRequest": {
            "type": "object",
            "required": ["amount"],
            "properties": {
                "amount": {"type": "string", "example": "150.00"},
                "department": {"type": "string"},
                "driver": {"type": "string"},
                "from_location": {"type": "string"},
                "plate_number": {"type": "string", "example": "AB1-2345"},
                "rfid_location": {"type": "string"},
                "rfid_type": {"type": "string", "example": "Entry"},
                "to_location": {"type": "string"},
                "travel_date": {"type": "string", "example": "2024-05-01"},
                "vehicle_type": {"type": "string", "example": "Bus"}
            }
        },
        "models.Account": {
            "type": "object",
            "properties": {
                "approved": {"type": "boolean"},
                "balance": {"type": "string", "example": "2000"},
                "created_at": {"type": "string"},
                "email": {"type": "string", "example": "driver@campus.edu"},
                "id": {"type": "integer", "example": 1},
                "role": {"type": "string", "example": "user"},
                "updated_at": {"type": "string"}
            }
        },
        "models.Scan": {
            "type": "object",
            "properties": {
                "grade": {"type": "string"},
                "id": {"type": "integer"},
                "scan_time": {"type": "string"},
                "student_name": {"type": "string"},
                "tag_id": {"type": "string"}
            }
        },
        "models.TripRecord": {
            "type": "object",
            "properties": {
                "account_id": {"type": "integer"},
                "amount": {"type": "string", "example": "150.00"},
                "created_at": {"type": "string"},
                "department": {"type": "string"},
                "driver": {"type": "string"},
                "from_location": {"type": "string"},
                "id": {"type": "integer"},
                "plate_number": {"type": "string", "example": "AB1-2345"},
                "remaining_balance": {"type": "string", "example": "1850.00"},
                "rfid_location": {"type": "string"},
                "rfid_type": {"type": "string", "example": "Entry"},
                "to_location": {"type": "string"},
                "travel_date": {"type": "string", "example": "2024-05-01"},
                "vehicle_type": {"type": "string", "example": "Bus"}
            }
        },
        "services.AdminDashboard": {
            "type": "object",
            "properties": {
                "pending_accounts": {"type": "array", "items": {"$ref": "#/definitions/models.Account"}},
                "total": {"type": "string"},
                "trips": {"type": "array", "items": {"$ref": "#/definitions/models.TripRecord"}},
                "users": {"type": "array", "items": {"$ref": "#/definitions/models.Account"}}
            }
        },
        "services.ErrorResponse": {
            "type": "object",
            "properties": {
                "details": {"type": "object", "additionalProperties": {"type": "string"}},
                "error": {"type": "string"},
                "redirect": {"type": "string"}
            }
        },
        "services.Receipt": {
            "type": "object",
            "properties": {
                "payload": {"type": "string", "example": "12|AB1-2345|150|1850"},
                "qr_image": {"type": "string"},
                "trip": {"$ref": "#/definitions/models.TripRecord"}
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

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Campus RFID Vehicle Ledger API",
	Description:      "Trip logging, prepaid balances and approval workflow for campus vehicles.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
