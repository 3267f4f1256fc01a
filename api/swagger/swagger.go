package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Lesson Board API",
        "description": "Back office for one-on-one lesson scheduling: weekly slot grid, teacher availability and greedy auto-assignment.",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Authentication", "description": "Login and current user"},
        {"name": "Schedule Settings", "description": "Weekday lesson windows and the derived slot grid"},
        {"name": "Teacher Availability", "description": "Date-specific availability windows and weekly blocks"},
        {"name": "Lesson Schedules", "description": "Auto-assignment, confirmation and the lesson board"},
        {"name": "Roster", "description": "Teachers, students and their links"},
        {"name": "Daily Records", "description": "Lesson days and per-student progress notes"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate user",
                "parameters": [
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "Token issued", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Current user",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/schedule-settings": {
            "get": {
                "tags": ["Schedule Settings"],
                "summary": "Read the schedule setting",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "put": {
                "tags": ["Schedule Settings"],
                "summary": "Replace the schedule setting",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/ScheduleSetting"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid windows", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedule-settings/slots": {
            "get": {
                "tags": ["Schedule Settings"],
                "summary": "Derived slot grid with a teacher's weekly blocks",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "query", "name": "teacherId", "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/teacher-weekly-availability": {
            "get": {
                "tags": ["Teacher Availability"],
                "summary": "List availability windows in a date range",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "query", "name": "teacherId", "type": "string"},
                    {"in": "query", "name": "start", "type": "string", "required": true},
                    {"in": "query", "name": "end", "type": "string", "required": true}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Teacher Availability"],
                "summary": "Upsert or clear one window",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/AvailabilityWindow"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "put": {
                "tags": ["Teacher Availability"],
                "summary": "Replace every window of a teacher inside a range",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/teacher-unavailable": {
            "get": {
                "tags": ["Teacher Availability"],
                "summary": "List weekly unavailable blocks",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Teacher Availability"],
                "summary": "Create a weekly unavailable block",
                "security": [{"BearerAuth": []}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/teacher-unavailable/{id}": {
            "delete": {
                "tags": ["Teacher Availability"],
                "summary": "Delete a weekly unavailable block",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {"204": {"description": "Deleted"}}
            }
        },
        "/lesson-schedules": {
            "get": {
                "tags": ["Lesson Schedules"],
                "summary": "Lesson board for a date range",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "query", "name": "start", "type": "string", "required": true},
                    {"in": "query", "name": "end", "type": "string", "required": true}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/lesson-schedules/export": {
            "get": {
                "tags": ["Lesson Schedules"],
                "summary": "Download the lesson board as CSV or PDF",
                "security": [{"BearerAuth": []}],
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"in": "query", "name": "start", "type": "string", "required": true},
                    {"in": "query", "name": "end", "type": "string", "required": true},
                    {"in": "query", "name": "format", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {"200": {"description": "File"}}
            }
        },
        "/lesson-schedules/auto-schedule": {
            "post": {
                "tags": ["Lesson Schedules"],
                "summary": "Regenerate DRAFT lessons for a week",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/WeekRange"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/WeekActionResponse"}},
                    "412": {"description": "Schedule setting missing", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/lesson-schedules/confirm": {
            "post": {
                "tags": ["Lesson Schedules"],
                "summary": "Confirm every DRAFT lesson of a week",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/WeekRange"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/WeekActionResponse"}}}
            }
        },
        "/lesson-schedules/{id}": {
            "put": {
                "tags": ["Lesson Schedules"],
                "summary": "Edit a DRAFT lesson",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Confirmed or conflicting", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Lesson Schedules"],
                "summary": "Delete a DRAFT lesson",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {"204": {"description": "Deleted"}, "409": {"description": "Confirmed"}}
            }
        },
        "/teachers": {
            "get": {
                "tags": ["Roster"],
                "summary": "List teachers",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Roster"],
                "summary": "Create teacher",
                "security": [{"BearerAuth": []}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/teachers/{id}": {
            "get": {"tags": ["Roster"], "summary": "Get teacher", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["Roster"], "summary": "Update teacher", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["Roster"], "summary": "Deactivate teacher", "security": [{"BearerAuth": []}], "responses": {"204": {"description": "Deactivated"}}}
        },
        "/students": {
            "get": {
                "tags": ["Roster"],
                "summary": "List students",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "query", "name": "grade", "type": "string", "description": "number, elementary, middle or high"},
                    {"in": "query", "name": "active", "type": "boolean"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Roster"],
                "summary": "Create student",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/CreateStudentRequest"}}],
                "responses": {"201": {"description": "Created"}, "404": {"description": "Teacher not found"}}
            }
        },
        "/students/{id}": {
            "get": {
                "tags": ["Roster"],
                "summary": "Get student with linked teachers and record timeline",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/StudentDetail"}}, "400": {"description": "Malformed id"}}
            },
            "patch": {"tags": ["Roster"], "summary": "Update student", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/teacher-students": {
            "post": {"tags": ["Roster"], "summary": "Link a teacher and a student", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["Roster"], "summary": "Unlink a teacher and a student", "security": [{"BearerAuth": []}], "responses": {"204": {"description": "Unlinked"}}}
        },
        "/lesson-days": {
            "get": {"tags": ["Daily Records"], "summary": "List lesson days", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Daily Records"], "summary": "Create the Sunday lesson days of a month", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/daily-records": {
            "get": {"tags": ["Daily Records"], "summary": "List daily records", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Daily Records"], "summary": "Upsert a daily record", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/dashboard": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Home dashboard for the caller's students",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "query", "name": "year", "type": "integer"},
                    {"in": "query", "name": "month", "type": "integer", "minimum": 1, "maximum": 12}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Invalid query"}}
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "ScheduleSetting": {
            "type": "object",
            "properties": {
                "weekdays": {"type": "array", "items": {"type": "integer"}},
                "startTimeMinutes": {"type": "integer"},
                "endTimeMinutes": {"type": "integer"},
                "lessonDurationMinutes": {"type": "integer"},
                "breakDurationMinutes": {"type": "integer"},
                "timezone": {"type": "string"}
            }
        },
        "AvailabilityWindow": {
            "type": "object",
            "properties": {
                "teacherId": {"type": "string"},
                "date": {"type": "string"},
                "startMinutes": {"type": "integer"},
                "endMinutes": {"type": "integer"},
                "isAvailable": {"type": "boolean"},
                "memo": {"type": "string"}
            }
        },
        "WeekRange": {
            "type": "object",
            "required": ["weekStart", "weekEnd"],
            "properties": {
                "weekStart": {"type": "string"},
                "weekEnd": {"type": "string"}
            }
        },
        "WeekActionResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "count": {"type": "integer"}
            }
        },
        "CreateStudentRequest": {
            "type": "object",
            "required": ["name", "gradeNumber"],
            "properties": {
                "name": {"type": "string"},
                "gradeNumber": {"type": "integer", "minimum": 1, "maximum": 12},
                "school": {"type": "string"},
                "isOnline": {"type": "boolean"},
                "teacherId": {"type": "string", "format": "uuid"}
            }
        },
        "StudentDetail": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "grade_number": {"type": "integer"},
                "grade_label": {"type": "string"},
                "teachers": {
                    "type": "array",
                    "items": {"type": "object", "properties": {"id": {"type": "string"}, "email": {"type": "string"}, "name": {"type": "string"}}}
                },
                "records": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "id": {"type": "string"},
                            "lesson_date": {"type": "string"},
                            "week_label": {"type": "string"},
                            "attendance_status": {"type": "string"},
                            "homework_status": {"type": "string"},
                            "teacher_name": {"type": "string"}
                        }
                    }
                }
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
