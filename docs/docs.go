// Package docs registers the OpenAPI description served at /swagger.
// Regenerate with: swag init -g cmd/server/main.go -o docs
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
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/auth/register": {"post": {"tags": ["auth"], "summary": "Register a new user", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}}},
        "/auth/login": {"post": {"tags": ["auth"], "summary": "Login", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}, "403": {"description": "Forbidden"}}}},
        "/auth/me": {"get": {"tags": ["auth"], "summary": "Current user", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/questions": {
            "get": {"tags": ["questions"], "summary": "List questions", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["questions"], "summary": "Ask a question", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}}}
        },
        "/questions/tags/popular": {"get": {"tags": ["questions"], "summary": "Most used tags", "responses": {"200": {"description": "OK"}}}},
        "/questions/{id}": {
            "get": {"tags": ["questions"], "summary": "Get a question with its answers", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"tags": ["questions"], "summary": "Edit a question", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["questions"], "summary": "Delete a question", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/questions/{id}/vote": {"post": {"tags": ["questions"], "summary": "Vote on a question", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/questions/{id}/answers": {"get": {"tags": ["questions"], "summary": "List the answers of a question", "responses": {"200": {"description": "OK"}}}},
        "/answers": {"post": {"tags": ["answers"], "summary": "Answer a question", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}}},
        "/answers/{id}": {
            "put": {"tags": ["answers"], "summary": "Edit an answer", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["answers"], "summary": "Delete an answer", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/answers/{id}/vote": {"post": {"tags": ["answers"], "summary": "Vote on an answer", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/answers/{id}/accept": {"post": {"tags": ["answers"], "summary": "Accept an answer", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/answers/{id}/comments": {"post": {"tags": ["answers"], "summary": "Comment on an answer", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}}}},
        "/notifications": {"get": {"tags": ["notifications"], "summary": "List my notifications", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/notifications/unread-count": {"get": {"tags": ["notifications"], "summary": "Count my unread notifications", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/notifications/read-all": {"put": {"tags": ["notifications"], "summary": "Mark all my notifications as read", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/notifications/read-multiple": {"put": {"tags": ["notifications"], "summary": "Mark several notifications as read", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/notifications/{id}/read": {"put": {"tags": ["notifications"], "summary": "Mark a notification as read", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/notifications/clear-all": {"delete": {"tags": ["notifications"], "summary": "Delete all my notifications", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/notifications/{id}": {"delete": {"tags": ["notifications"], "summary": "Delete a notification", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/users/search": {"get": {"tags": ["users"], "summary": "Search users by username or email", "responses": {"200": {"description": "OK"}}}},
        "/users/leaderboard": {"get": {"tags": ["users"], "summary": "Top users", "responses": {"200": {"description": "OK"}}}},
        "/users/{id}": {"get": {"tags": ["users"], "summary": "Public profile", "responses": {"200": {"description": "OK"}}}},
        "/users/{id}/questions": {"get": {"tags": ["users"], "summary": "Questions asked by a user", "responses": {"200": {"description": "OK"}}}},
        "/users/{id}/answers": {"get": {"tags": ["users"], "summary": "Answers written by a user", "responses": {"200": {"description": "OK"}}}},
        "/users/{id}/activity": {"get": {"tags": ["users"], "summary": "Activity overview of a user", "responses": {"200": {"description": "OK"}}}},
        "/admin/dashboard": {"get": {"tags": ["admin"], "summary": "Moderation dashboard", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/admin/users": {"get": {"tags": ["admin"], "summary": "List users", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/admin/users/{id}/ban": {"put": {"tags": ["admin"], "summary": "Ban or unban a user", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/admin/users/{id}/role": {"put": {"tags": ["admin"], "summary": "Change a user's role", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/admin/users/{id}": {"delete": {"tags": ["admin"], "summary": "Delete a user", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/admin/questions": {"get": {"tags": ["admin"], "summary": "List questions for moderation", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/admin/questions/{id}/restore": {"put": {"tags": ["admin"], "summary": "Restore a deleted question", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/admin/notifications/broadcast": {"post": {"tags": ["admin"], "summary": "Broadcast a notice to all active users", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/admin/reports": {"get": {"tags": ["admin"], "summary": "On-demand report", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Q&A Platform API",
	Description:      "Questions, answers, voting, acceptance, notifications and moderation.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
