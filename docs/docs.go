// Package docs registers the OpenAPI document served at /swagger/*.
// Regenerate with `swag init -g cmd/server/main.go` after changing handler
// annotations.
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
        "/auth/signup": {
            "post": {
                "tags": ["auth"],
                "summary": "Sign up",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handler.signUpRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.signUpResponse"}},
                    "202": {"description": "Pending email confirmation", "schema": {"$ref": "#/definitions/handler.signUpResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Sign in",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handler.signInRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.sessionResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/auth/confirm": {
            "post": {
                "tags": ["auth"],
                "summary": "Confirm email address",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handler.confirmRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.sessionResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/auth/logout": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "Sign out", "responses": {"204": {"description": "No Content"}}}
        },
        "/auth/refresh": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "Refresh access token", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.sessionResponse"}}}}
        },
        "/auth/me": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "Current session", "responses": {"200": {"description": "OK"}}}
        },
        "/v1/profile": {
            "patch": {"security": [{"BearerAuth": []}], "tags": ["profile"], "summary": "Update the caller's profile", "responses": {"200": {"description": "OK"}, "422": {"description": "Unprocessable Entity"}}}
        },
        "/v1/profile/refresh": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["profile"], "summary": "Re-resolve the caller's profile", "responses": {"200": {"description": "OK"}}}
        },
        "/v1/company": {
            "put": {"security": [{"BearerAuth": []}], "tags": ["profile"], "summary": "Create or update the caller's company", "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "422": {"description": "Unprocessable Entity"}}}
        },
        "/v1/vendor": {
            "put": {"security": [{"BearerAuth": []}], "tags": ["profile"], "summary": "Create or update the caller's vendor", "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "422": {"description": "Unprocessable Entity"}}}
        },
        "/v1/job-seeker": {
            "put": {"security": [{"BearerAuth": []}], "tags": ["profile"], "summary": "Create or update the caller's candidate record", "responses": {"200": {"description": "OK"}, "422": {"description": "Unprocessable Entity"}}}
        },
        "/v1/jobs": {
            "get": {
                "security": [{"BearerAuth": []}], "tags": ["jobs"], "summary": "List the caller's company jobs",
                "parameters": [
                    {"type": "boolean", "description": "Only active postings", "name": "active", "in": "query"},
                    {"type": "integer", "description": "Max rows (default 50, max 100)", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}
            },
            "post": {
                "security": [{"BearerAuth": []}], "tags": ["jobs"], "summary": "Post a job",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handler.createJobRequest"}}],
                "responses": {"201": {"description": "Created"}, "403": {"description": "Forbidden"}, "422": {"description": "Unprocessable Entity"}}
            }
        },
        "/v1/jobs/{id}": {
            "patch": {
                "security": [{"BearerAuth": []}], "tags": ["jobs"], "summary": "Update a job",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}, "422": {"description": "Unprocessable Entity"}}
            },
            "delete": {
                "security": [{"BearerAuth": []}], "tags": ["jobs"], "summary": "Delete a job",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/v1/uploads/{bucket}": {
            "post": {
                "security": [{"BearerAuth": []}], "tags": ["uploads"], "summary": "Upload a file",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"type": "string", "name": "bucket", "in": "path", "required": true},
                    {"type": "file", "name": "file", "in": "formData", "required": true},
                    {"type": "string", "name": "path", "in": "formData"}
                ],
                "responses": {"201": {"description": "Created"}, "422": {"description": "Unprocessable Entity"}, "502": {"description": "Bad Gateway"}}
            }
        },
        "/storage/{bucket}/{path}": {
            "get": {
                "tags": ["uploads"], "summary": "Download a stored file",
                "parameters": [
                    {"type": "string", "name": "bucket", "in": "path", "required": true},
                    {"type": "string", "name": "path", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/v1/dashboard/company": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["dashboard"], "summary": "Company dashboard", "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}
        },
        "/v1/dashboard/job-seeker": {
            "get": {
                "security": [{"BearerAuth": []}], "tags": ["dashboard"], "summary": "Job seeker dashboard",
                "parameters": [{"type": "integer", "name": "limit", "in": "query"}],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}
            }
        },
        "/v1/vendors": {
            "get": {
                "security": [{"BearerAuth": []}], "tags": ["dashboard"], "summary": "Vendor directory",
                "parameters": [
                    {"type": "string", "name": "service_type", "in": "query"},
                    {"type": "string", "name": "q", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "definitions": {
        "api.errorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "code": {"type": "string"},
                "field": {"type": "string"}
            }
        },
        "handler.signUpRequest": {
            "type": "object",
            "required": ["email", "password", "full_name"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string", "minLength": 6},
                "full_name": {"type": "string"},
                "role": {"type": "string", "enum": ["job_seeker", "company", "vendor"]},
                "phone": {"type": "string"},
                "company_name": {"type": "string"},
                "service_type": {"type": "string"}
            }
        },
        "handler.signInRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "handler.confirmRequest": {
            "type": "object",
            "required": ["token"],
            "properties": {"token": {"type": "string"}}
        },
        "handler.sessionResponse": {
            "type": "object",
            "properties": {
                "access_token": {"type": "string"},
                "token_type": {"type": "string"},
                "expires_at": {"type": "string"},
                "user": {"type": "object"},
                "profile": {"type": "object"}
            }
        },
        "handler.signUpResponse": {
            "type": "object",
            "properties": {
                "pending_confirmation": {"type": "boolean"},
                "message": {"type": "string"},
                "session": {"$ref": "#/definitions/handler.sessionResponse"}
            }
        },
        "handler.createJobRequest": {
            "type": "object",
            "required": ["title", "description", "location", "skills_required"],
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "location": {"type": "string"},
                "job_type": {"type": "string", "enum": ["full_time", "part_time", "contract", "freelance", "internship"]},
                "salary_min": {"type": "integer"},
                "salary_max": {"type": "integer"},
                "currency": {"type": "string"},
                "experience_level": {"type": "string", "enum": ["entry", "mid", "senior", "executive"]},
                "skills_required": {"type": "array", "items": {"type": "string"}},
                "benefits": {"type": "array", "items": {"type": "string"}},
                "remote_work_available": {"type": "boolean"},
                "application_deadline": {"type": "string"}
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
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Job Portal API",
	Description:      "Sessions, profiles, companies, vendors, job seekers, jobs and uploads for the job portal.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
