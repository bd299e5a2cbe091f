// Package docs is regenerated by `swag init -g cmd/api/main.go`; edits are overwritten.
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
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Exchange credentials for a bearer token",
                "parameters": [
                    {"description": "Credentials", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.LoginResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.Error"}}
                }
            }
        },
        "/admin/tenants": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "List every tenant",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.TenantResponse"}}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/dto.Error"}}
                }
            }
        },
        "/admin/tenants/provision": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Provision a tenant with its first admin",
                "parameters": [
                    {"description": "Tenant and admin drafts", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.ProvisionTenantRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.ProvisionTenantResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.Error"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/dto.Error"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/dto.Error"}}
                }
            }
        },
        "/admin/tenants/{id}": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Update a tenant",
                "parameters": [
                    {"type": "string", "description": "Tenant ID", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateTenantRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.TenantResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.Error"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin"],
                "summary": "Deactivate a tenant",
                "parameters": [
                    {"type": "string", "description": "Tenant ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.Error"}}
                }
            }
        },
        "/admin/logs": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Recent server log entries",
                "parameters": [
                    {"type": "integer", "description": "Maximum entries (default 100)", "name": "limit", "in": "query"},
                    {"type": "string", "description": "Only entries after this time (RFC3339)", "name": "since", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.LogEntryResponse"}}}
                }
            }
        },
        "/tenant": {
            "get": {
                "produces": ["application/json"],
                "tags": ["tenant"],
                "summary": "Public information about the tenant of the request host",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.PublicTenantResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.Error"}}
                }
            }
        },
        "/tenant/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["tenant"],
                "summary": "The caller's role in the current tenant",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.MeResponse"}}
                }
            }
        },
        "/tenant/members": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["tenant"],
                "summary": "List members of the current tenant",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.MembershipResponse"}}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["tenant"],
                "summary": "Add a member to the current tenant",
                "parameters": [
                    {"description": "Member", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.AddMemberRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.MembershipResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/dto.Error"}}
                }
            }
        },
        "/tenant/members/{principal_id}": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["tenant"],
                "summary": "Change a member's role or status",
                "parameters": [
                    {"type": "string", "description": "Principal ID", "name": "principal_id", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateMemberRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.MembershipResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/dto.Error"}}
                }
            }
        }
    },
    "definitions": {
        "dto.Error": {"type": "object", "properties": {"error": {"type": "string"}}},
        "dto.LoginRequest": {"type": "object", "required": ["email", "password"], "properties": {"email": {"type": "string"}, "password": {"type": "string"}}},
        "dto.LoginResponse": {"type": "object", "properties": {"token": {"type": "string"}}},
        "dto.TenantDraftRequest": {"type": "object", "required": ["name", "subdomain"], "properties": {"name": {"type": "string"}, "subdomain": {"type": "string"}, "plan_type": {"type": "string"}, "settings": {"type": "string"}}},
        "dto.AdminDraftRequest": {"type": "object", "required": ["email", "password", "name"], "properties": {"email": {"type": "string"}, "password": {"type": "string"}, "name": {"type": "string"}}},
        "dto.ProvisionTenantRequest": {"type": "object", "required": ["tenant", "admin"], "properties": {"tenant": {"$ref": "#/definitions/dto.TenantDraftRequest"}, "admin": {"$ref": "#/definitions/dto.AdminDraftRequest"}}},
        "dto.UpdateTenantRequest": {"type": "object", "properties": {"name": {"type": "string"}, "subdomain": {"type": "string"}, "status": {"type": "string"}, "plan_type": {"type": "string"}, "settings": {"type": "string"}}},
        "dto.TenantResponse": {"type": "object", "properties": {"id": {"type": "string"}, "name": {"type": "string"}, "subdomain": {"type": "string"}, "status": {"type": "string"}, "plan_type": {"type": "string"}, "settings": {"type": "object"}, "created_at": {"type": "string"}, "updated_at": {"type": "string"}}},
        "dto.PublicTenantResponse": {"type": "object", "properties": {"id": {"type": "string"}, "name": {"type": "string"}, "subdomain": {"type": "string"}}},
        "dto.AdminResponse": {"type": "object", "properties": {"id": {"type": "string"}, "email": {"type": "string"}, "name": {"type": "string"}}},
        "dto.ProvisionTenantResponse": {"type": "object", "properties": {"tenant": {"$ref": "#/definitions/dto.TenantResponse"}, "admin": {"$ref": "#/definitions/dto.AdminResponse"}}},
        "dto.MeResponse": {"type": "object", "properties": {"principal_id": {"type": "string"}, "tenant_id": {"type": "string"}, "role": {"type": "string"}, "global_owner": {"type": "boolean"}}},
        "dto.AddMemberRequest": {"type": "object", "required": ["principal_id", "role"], "properties": {"principal_id": {"type": "string"}, "role": {"type": "string"}}},
        "dto.UpdateMemberRequest": {"type": "object", "properties": {"role": {"type": "string"}, "status": {"type": "string"}}},
        "dto.MembershipResponse": {"type": "object", "properties": {"id": {"type": "string"}, "principal_id": {"type": "string"}, "role": {"type": "string"}, "status": {"type": "string"}, "created_at": {"type": "string"}, "updated_at": {"type": "string"}}},
        "dto.LogEntryResponse": {"type": "object", "properties": {"time": {"type": "string"}, "level": {"type": "string"}, "logger": {"type": "string"}, "message": {"type": "string"}, "fields": {"type": "object"}}}
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:10000",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Tenancy API",
	Description:      "Tenant resolution, access control and tenant provisioning.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
