// Package docs holds the OpenAPI description served at /swagger.
// Regenerate with: swag init -g cmd/api/main.go
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
                "tags": ["auth"],
                "summary": "Sign in",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"description": "Credentials", "name": "login", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.LoginRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.LoginResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpError"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/httpError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpError"}}
                }
            }
        },
        "/users": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "List users",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.User"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/httpError"}}
                }
            },
            "post": {
                "tags": ["users"],
                "summary": "Register",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"description": "New user", "name": "user", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.CreateUserRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.User"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/validationError"}}
                }
            }
        },
        "/users/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Current user",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.User"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/httpError"}}
                }
            }
        },
        "/users/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Get user",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.User"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpError"}}
                }
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Update user",
                "description": "Partial update; only the fields present are validated and changed.\nBesides name, email and password this admin route also accepts role, status and isEmailActivated.",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"name": "user", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.UpdateUserRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.User"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/validationError"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Delete user",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.User"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpError"}}
                }
            }
        },
        "/otp/verify": {
            "get": {
                "tags": ["otp"],
                "summary": "Verify OTP",
                "parameters": [
                    {"type": "integer", "name": "userId", "in": "query", "required": true},
                    {"type": "string", "name": "otpCode", "in": "query", "required": true},
                    {"enum": ["AccountActivation"], "type": "string", "name": "otpUseCase", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.User"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpError"}}
                }
            }
        },
        "/otp/resend": {
            "post": {
                "tags": ["otp"],
                "summary": "Resend OTP",
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.ResendOtpRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpError"}}
                }
            }
        },
        "/todo-task": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["todo-task"],
                "summary": "Create task",
                "parameters": [{"name": "task", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.CreateTodoTaskRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.TodoTask"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/validationError"}}
                }
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["todo-task"],
                "summary": "Update task",
                "parameters": [{"name": "task", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.UpdateTodoTaskRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.TodoTask"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpError"}}
                }
            }
        },
        "/todo-task/all": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["todo-task"],
                "summary": "List my tasks",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.TodoTask"}}}}
            }
        },
        "/todo-task/all/{status}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["todo-task"],
                "summary": "List my tasks with a status",
                "parameters": [{"enum": ["Pending", "Completed"], "type": "string", "name": "status", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.TodoTask"}}}}
            }
        },
        "/todo-task/export": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["todo-task"],
                "summary": "Export my tasks as PDF",
                "produces": ["application/pdf"],
                "responses": {"200": {"description": "OK", "schema": {"type": "file"}}}
            }
        },
        "/todo-task/{id}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["todo-task"],
                "summary": "Delete task",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.TodoTask"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpError"}}
                }
            }
        },
        "/file/upload": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["file"],
                "summary": "Upload a file",
                "consumes": ["multipart/form-data"],
                "parameters": [{"type": "file", "name": "file", "in": "formData", "required": true}],
                "responses": {"201": {"description": "Created", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}}
            }
        },
        "/file/{filePath}": {
            "get": {
                "tags": ["file"],
                "summary": "Download an uploaded file",
                "parameters": [{"type": "string", "name": "filePath", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpError"}}
                }
            }
        }
    },
    "definitions": {
        "httpError": {
            "type": "object",
            "properties": {"message": {"type": "string"}, "statusCode": {"type": "integer"}}
        },
        "validationError": {
            "type": "object",
            "properties": {
                "message": {"type": "array", "items": {"type": "string"}},
                "error": {"type": "string"},
                "statusCode": {"type": "integer"}
            }
        },
        "models.LoginRequest": {
            "type": "object",
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "models.LoginResponse": {
            "type": "object",
            "properties": {"accessToken": {"type": "string"}}
        },
        "models.CreateUserRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"},
                "passwordConfirm": {"type": "string"}
            }
        },
        "models.UpdateUserRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"},
                "role": {"type": "string", "enum": ["Common", "Root"]},
                "status": {"type": "string", "enum": ["Active", "Pending", "Blocked"]},
                "isEmailActivated": {"type": "boolean"}
            }
        },
        "models.User": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "email": {"type": "string"},
                "name": {"type": "string"},
                "role": {"type": "string", "enum": ["Common", "Root"]},
                "status": {"type": "string", "enum": ["Active", "Pending", "Blocked"]},
                "isEmailActivated": {"type": "boolean"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "models.ResendOtpRequest": {
            "type": "object",
            "properties": {"userEmail": {"type": "string"}, "otpUseCase": {"type": "string", "enum": ["AccountActivation"]}}
        },
        "models.CreateTodoTaskRequest": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "description": {"type": "string"}}
        },
        "models.UpdateTodoTaskRequest": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "description": {"type": "string"},
                "status": {"type": "string", "enum": ["Pending", "Completed"]}
            }
        },
        "models.TodoTask": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "userId": {"type": "integer"},
                "name": {"type": "string"},
                "description": {"type": "string"},
                "status": {"type": "string", "enum": ["Pending", "Completed"]},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "TodoList API",
	Description:      "To-do list REST API with e-mail account activation.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
