// Package docs 注册Swagger文档（swag init 生成的格式）
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
        "/api/v1/books": {
            "get": {
                "produces": ["application/json"],
                "tags": ["图书"],
                "summary": "图书列表/按标题搜索",
                "parameters": [
                    {"type": "string", "description": "标题关键字（不区分大小写）", "name": "keyword", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/api/v1/books/{isbn}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["图书"],
                "summary": "按ISBN查询图书",
                "parameters": [
                    {"type": "string", "description": "ISBN", "name": "isbn", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/api/v1/members/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["会员"],
                "summary": "查询会员",
                "parameters": [
                    {"type": "string", "description": "会员ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/api/v1/loans": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["借阅"],
                "summary": "借书",
                "parameters": [
                    {"description": "借书请求", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.IssueBookRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/api/v1/loans/return": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["借阅"],
                "summary": "还书并计算罚金",
                "parameters": [
                    {"description": "还书请求", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.ReturnBookRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/api/v1/admin/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["管理员"],
                "summary": "管理员登录",
                "parameters": [
                    {"description": "管理员口令", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.AdminLoginRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/api/v1/admin/books": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["管理员"],
                "summary": "上架图书",
                "parameters": [
                    {"description": "图书信息", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.AddBookRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        }
    },
    "definitions": {
        "response.Response": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "message": {"type": "string"},
                "data": {}
            }
        },
        "dto.AddBookRequest": {
            "type": "object",
            "required": ["isbn", "title"],
            "properties": {
                "title": {"type": "string", "example": "Clean Code"},
                "author": {"type": "string", "example": "Robert C. Martin"},
                "isbn": {"type": "string", "example": "9780132350884"}
            }
        },
        "dto.AdminLoginRequest": {
            "type": "object",
            "required": ["password"],
            "properties": {
                "password": {"type": "string", "example": "admin123"}
            }
        },
        "dto.IssueBookRequest": {
            "type": "object",
            "required": ["isbn", "member_id"],
            "properties": {
                "member_id": {"type": "string", "example": "M001"},
                "isbn": {"type": "string", "example": "9780132350884"}
            }
        },
        "dto.ReturnBookRequest": {
            "type": "object",
            "required": ["isbn", "member_id"],
            "properties": {
                "member_id": {"type": "string", "example": "M001"},
                "isbn": {"type": "string", "example": "9780132350884"},
                "days_kept": {"type": "integer", "example": 20}
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
	Title:            "Library Lending API",
	Description:      "图书馆借阅服务：馆藏查询、借书还书、管理员维护馆藏",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
