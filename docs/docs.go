// Package docs registers the OpenAPI description served under /swagger/.
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
        "/subjects": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Subjects"],
                "summary": "List subjects",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/api.SubjectResponse"}}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Subjects"],
                "summary": "Create a subject",
                "parameters": [
                    {"description": "Subject to create", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.SubjectRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/api.SubjectResponse"}},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/subjects/{subjectID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Subjects"],
                "summary": "Get a subject",
                "parameters": [
                    {"type": "string", "description": "Subject ID", "name": "subjectID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.SubjectResponse"}},
                    "404": {"description": "Not Found"}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Subjects"],
                "summary": "Update a subject",
                "parameters": [
                    {"type": "string", "description": "Subject ID", "name": "subjectID", "in": "path", "required": true},
                    {"description": "New configuration", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.SubjectRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.SubjectResponse"}},
                    "404": {"description": "Not Found"}
                }
            },
            "delete": {
                "tags": ["Subjects"],
                "summary": "Delete a subject",
                "parameters": [
                    {"type": "string", "description": "Subject ID", "name": "subjectID", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/answers": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Answers"],
                "summary": "Record an answer",
                "parameters": [
                    {"description": "Answer", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.RecordAnswerRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/questions": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Questions"],
                "summary": "Add a question to the catalogue",
                "parameters": [
                    {"description": "Question tags", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.AddQuestionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/users/{userID}/stats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Statistics"],
                "summary": "All subject statistics",
                "parameters": [
                    {"type": "string", "description": "User ID", "name": "userID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/api.StatsResponse"}}}
                }
            }
        },
        "/users/{userID}/subjects/{subjectID}/stats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Statistics"],
                "summary": "Subject statistics",
                "parameters": [
                    {"type": "string", "description": "User ID", "name": "userID", "in": "path", "required": true},
                    {"type": "string", "description": "Subject ID", "name": "subjectID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.StatsResponse"}},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/filters/normalize": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Filters"],
                "summary": "Normalize a filter value",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        }
    },
    "definitions": {
        "api.SubjectRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "example": "Português"},
                "discipline_filter": {"type": "array", "items": {"type": "string"}},
                "board_filter": {"type": "array", "items": {"type": "string"}},
                "subject_tag_filter": {"type": "array", "items": {"type": "string"}},
                "topics": {"type": "array", "items": {"$ref": "#/definitions/api.TopicRequest"}}
            }
        },
        "api.TopicRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "example": "Gramática"},
                "filter": {"type": "array", "items": {"type": "string"}}
            }
        },
        "api.SubjectResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "example": "a1b2c3d4e5f6g7h8"},
                "name": {"type": "string", "example": "Português"},
                "discipline_filter": {"type": "array", "items": {"type": "string"}},
                "board_filter": {"type": "array", "items": {"type": "string"}},
                "subject_tag_filter": {"type": "array", "items": {"type": "string"}},
                "topics": {"type": "array", "items": {"$ref": "#/definitions/api.TopicRequest"}}
            }
        },
        "api.RecordAnswerRequest": {
            "type": "object",
            "properties": {
                "user_id": {"type": "string", "example": "u1"},
                "question_id": {"type": "string", "example": "q123"},
                "discipline": {"type": "string", "example": "Português"},
                "board": {"type": "string", "example": "FGV"},
                "topic_tags": {"type": "array", "items": {"type": "string"}},
                "subject_tags": {"type": "array", "items": {"type": "string"}},
                "is_correct": {"type": "boolean"}
            }
        },
        "api.AddQuestionRequest": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "example": "q123"},
                "discipline": {"type": "string", "example": "Português"},
                "board": {"type": "string", "example": "FGV"},
                "topic_tags": {"type": "array", "items": {"type": "string"}},
                "subject_tags": {"type": "array", "items": {"type": "string"}}
            }
        },
        "stats.Result": {
            "type": "object",
            "properties": {
                "total_attempts": {"type": "integer", "example": 3},
                "correct_answers": {"type": "integer", "example": 2},
                "wrong_answers": {"type": "integer", "example": 1},
                "success_rate": {"type": "integer", "example": 67}
            }
        },
        "api.StatsResponse": {
            "type": "object",
            "properties": {
                "subject_id": {"type": "string"},
                "user_id": {"type": "string"},
                "overall": {"$ref": "#/definitions/stats.Result"},
                "per_topic": {"type": "array", "items": {"$ref": "#/definitions/stats.Result"}},
                "partial": {"type": "boolean"},
                "failures": {"type": "array", "items": {"type": "string"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Exam statistics API",
	Description:      "Subject configurations, answer log and per-user answer statistics.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
