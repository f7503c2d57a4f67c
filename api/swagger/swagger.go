package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "E-Diary Schedule API",
        "description": "Class schedule and lesson time-slot resolution service",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Time Slots", "description": "Default lesson grid and per-class overrides"},
        {"name": "Schedule", "description": "Resolved, viewer-filtered schedules"}
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
                    "200": {"description": "Ready"},
                    "503": {"description": "Database unavailable"}
                }
            }
        },
        "/api/v1/slots/defaults": {
            "get": {
                "tags": ["Time Slots"],
                "summary": "List school-wide default slots",
                "responses": {
                    "200": {"description": "Default slot grid"}
                }
            }
        },
        "/api/v1/classes/{id}/slots": {
            "get": {
                "tags": ["Time Slots"],
                "summary": "List effective slots for a class",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Effective slots, orphan overrides in meta"}
                }
            },
            "delete": {
                "tags": ["Time Slots"],
                "summary": "Remove every time override of a class",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Overrides removed"}
                }
            }
        },
        "/api/v1/classes/{id}/slots/{slotNumber}": {
            "put": {
                "tags": ["Time Slots"],
                "summary": "Create or replace a class time override",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "slotNumber", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "Stored override"},
                    "400": {"description": "Malformed times"},
                    "422": {"description": "Slot number has no default"}
                }
            },
            "delete": {
                "tags": ["Time Slots"],
                "summary": "Delete a class time override",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "slotNumber", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "204": {"description": "Override removed (idempotent)"}
                }
            }
        },
        "/api/v1/classes/{id}/schedule": {
            "get": {
                "tags": ["Schedule"],
                "summary": "Resolved schedule for a class and date range",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "from", "in": "query", "required": true, "type": "string"},
                    {"name": "to", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Display-ready entries"},
                    "503": {"description": "Schedule unavailable"}
                }
            }
        },
        "/api/v1/classes/{id}/schedule/export": {
            "get": {
                "tags": ["Schedule"],
                "summary": "Download the resolved schedule as CSV or PDF",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "from", "in": "query", "required": true, "type": "string"},
                    {"name": "to", "in": "query", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "required": false, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Timetable document"}
                }
            }
        }
    },
    "definitions": {
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
