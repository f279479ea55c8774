package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "StaffCal API",
        "description": "Staff scheduling calendar service: recurrence expansion, overlap layout, business-hours bands and drag repositioning.",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Calendar", "description": "Computed calendar windows"},
        {"name": "Availability", "description": "Person availability rules"},
        {"name": "BusinessHours", "description": "Role-level business service hours"},
        {"name": "Reference", "description": "People and role reference lists"},
        {"name": "Exports", "description": "Week schedule exports"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/api/v1/calendar/window": {
            "get": {
                "tags": ["Calendar"],
                "summary": "Computed calendar window",
                "description": "Expands rules into positioned events and merged backdrop bands for each day of the window.",
                "parameters": [
                    {"name": "start_date", "in": "query", "required": true, "type": "string"},
                    {"name": "end_date", "in": "query", "required": true, "type": "string"},
                    {"name": "role_id", "in": "query", "type": "string"},
                    {"name": "person_id", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/people": {
            "get": {
                "tags": ["Reference"],
                "summary": "List staff members",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/roles": {
            "get": {
                "tags": ["Reference"],
                "summary": "List roles",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/availability-hours": {
            "get": {
                "tags": ["Availability"],
                "summary": "List availability rules",
                "parameters": [
                    {"name": "role_id", "in": "query", "type": "string"},
                    {"name": "person_id", "in": "query", "type": "string"},
                    {"name": "start_date", "in": "query", "type": "string"},
                    {"name": "end_date", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/people/{id}/availability-hours": {
            "post": {
                "tags": ["Availability"],
                "summary": "Create an availability rule for a person",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/HoursRuleCreate"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/availability-hours/{id}": {
            "put": {
                "tags": ["Availability"],
                "summary": "Replace the recurrence fields of an availability rule",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/HoursRuleUpdate"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Availability"],
                "summary": "Delete an availability rule",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/api/v1/availability-hours/move": {
            "post": {
                "tags": ["Availability"],
                "summary": "Reposition one availability occurrence by drag and drop",
                "description": "Snaps the drop to the half-hour grid, keeps the event duration and pins the rule to the drop date.",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/MoveEventRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Move already in progress for this rule"}
                }
            }
        },
        "/api/v1/business-service-hours": {
            "get": {
                "tags": ["BusinessHours"],
                "summary": "List business service hours",
                "parameters": [
                    {"name": "role_id", "in": "query", "type": "string"},
                    {"name": "start_date", "in": "query", "type": "string"},
                    {"name": "end_date", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["BusinessHours"],
                "summary": "Create a business-hours rule",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/HoursRuleCreate"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/business-service-hours/bulk": {
            "post": {
                "tags": ["BusinessHours"],
                "summary": "Create weekly rules from a weekday-set shorthand",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BulkHoursCreate"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/business-service-hours/{id}": {
            "put": {
                "tags": ["BusinessHours"],
                "summary": "Replace the recurrence fields of a business-hours rule",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/HoursRuleUpdate"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["BusinessHours"],
                "summary": "Delete a business-hours rule",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/api/v1/business-service-hours/move": {
            "post": {
                "tags": ["BusinessHours"],
                "summary": "Reposition one business-hours occurrence by drag and drop",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/MoveBandRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Move already in progress for this rule"}
                }
            }
        },
        "/api/v1/exports/week": {
            "post": {
                "tags": ["Exports"],
                "summary": "Queue a week schedule export",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ExportWeekRequest"}}
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/exports/{id}": {
            "get": {
                "tags": ["Exports"],
                "summary": "Poll an export job",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/export/{token}": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download a finished export by signed token",
                "parameters": [
                    {"name": "token", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File stream"}
                }
            }
        }
    },
    "definitions": {
        "HoursRule": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "person_id": {"type": "string"},
                "role_id": {"type": "string"},
                "day_of_week": {"type": "integer", "description": "0=Monday .. 6=Sunday"},
                "start_time": {"type": "string"},
                "end_time": {"type": "string"},
                "start_date": {"type": "string"},
                "end_date": {"type": "string"},
                "is_recurring": {"type": "boolean"},
                "specific_date": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "HoursRuleCreate": {
            "type": "object",
            "properties": {
                "role_id": {"type": "string"},
                "day_of_week": {"type": "integer"},
                "start_time": {"type": "string"},
                "end_time": {"type": "string"},
                "start_date": {"type": "string"},
                "end_date": {"type": "string"},
                "is_recurring": {"type": "boolean"},
                "specific_date": {"type": "string"}
            },
            "required": ["role_id", "start_time", "end_time"]
        },
        "HoursRuleUpdate": {
            "type": "object",
            "properties": {
                "day_of_week": {"type": "integer"},
                "start_time": {"type": "string"},
                "end_time": {"type": "string"},
                "start_date": {"type": "string"},
                "end_date": {"type": "string"},
                "is_recurring": {"type": "boolean"},
                "specific_date": {"type": "string"}
            }
        },
        "BulkHoursCreate": {
            "type": "object",
            "properties": {
                "role_id": {"type": "string"},
                "start_time": {"type": "string"},
                "end_time": {"type": "string"},
                "days": {"type": "string", "enum": ["mon-fri", "mon-sat", "all"]},
                "start_date": {"type": "string"},
                "end_date": {"type": "string"}
            },
            "required": ["role_id", "start_time", "end_time", "days"]
        },
        "MoveEventRequest": {
            "type": "object",
            "properties": {
                "event_id": {"type": "string"},
                "person_id": {"type": "string"},
                "drop_date": {"type": "string"},
                "drop_hour": {"type": "integer"},
                "drop_minute": {"type": "integer"}
            },
            "required": ["event_id", "person_id", "drop_date"]
        },
        "MoveBandRequest": {
            "type": "object",
            "properties": {
                "event_id": {"type": "string"},
                "role_id": {"type": "string"},
                "drop_date": {"type": "string"},
                "drop_hour": {"type": "integer"},
                "drop_minute": {"type": "integer"}
            },
            "required": ["event_id", "role_id", "drop_date"]
        },
        "ExportWeekRequest": {
            "type": "object",
            "properties": {
                "week_of": {"type": "string"},
                "role_id": {"type": "string"},
                "person_id": {"type": "string"},
                "format": {"type": "string", "enum": ["csv", "pdf"]}
            },
            "required": ["week_of", "format"]
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
