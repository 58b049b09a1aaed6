package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Shift Scheduler API",
        "description": "Schedule OCR, shift extraction, payroll, and calendar export",
        "version": "0.1.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "OCR", "description": "Schedule image recognition"},
        {"name": "Shifts", "description": "Shift extraction from recognized text"},
        {"name": "Earnings", "description": "Payroll banding and payslip export"},
        {"name": "Calendar", "description": "Calendar file generation"}
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
        "/api/v1/ocr": {
            "post": {
                "tags": ["OCR"],
                "summary": "Recognize schedule text from an uploaded image",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "schedule", "in": "formData", "required": true, "type": "file"},
                    {"name": "language", "in": "formData", "type": "string", "enum": ["hebrew", "english", "both"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Missing upload"},
                    "413": {"description": "Upload too large"},
                    "502": {"description": "Recognition failed"}
                }
            }
        },
        "/api/v1/shifts/parse": {
            "post": {
                "tags": ["Shifts"],
                "summary": "Extract shift records from recognized schedule text",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ParseShiftsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error"}
                }
            }
        },
        "/api/v1/earnings": {
            "post": {
                "tags": ["Earnings"],
                "summary": "Compute banded earnings for a set of shifts",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/EarningsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error"}
                }
            }
        },
        "/api/v1/earnings/export": {
            "post": {
                "tags": ["Earnings"],
                "summary": "Export a payslip for a set of shifts",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ExportEarningsRequest"}}
                ],
                "responses": {
                    "200": {"description": "Payslip file"},
                    "400": {"description": "Validation error"}
                }
            }
        },
        "/api/v1/calendar": {
            "post": {
                "tags": ["Calendar"],
                "summary": "Generate a downloadable calendar file from shifts",
                "produces": ["text/calendar"],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GenerateCalendarRequest"}}
                ],
                "responses": {
                    "200": {"description": "Calendar file"},
                    "400": {"description": "Validation error"}
                }
            }
        }
    },
    "definitions": {
        "ShiftRecord": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "startTime": {"type": "string"},
                "endTime": {"type": "string"},
                "type": {"type": "string", "enum": ["day", "morning", "evening", "night", "weekend"]},
                "holiday": {"type": "boolean"}
            }
        },
        "PayRateConfig": {
            "type": "object",
            "properties": {
                "day": {"type": "number"},
                "nightDifferential": {"type": "number"}
            }
        },
        "ReminderFlags": {
            "type": "object",
            "properties": {
                "reminder1Hour": {"type": "boolean"},
                "reminder1Day": {"type": "boolean"},
                "customReminderEnabled": {"type": "boolean"},
                "customReminderValue": {"type": "integer"},
                "customReminderUnit": {"type": "string", "enum": ["minutes", "hours", "days"]}
            }
        },
        "CalendarOptions": {
            "type": "object",
            "properties": {
                "calendarName": {"type": "string"},
                "eventDescription": {"type": "string"},
                "location": {"type": "string"},
                "reminders": {"$ref": "#/definitions/ReminderFlags"}
            }
        },
        "ParseShiftsRequest": {
            "type": "object",
            "properties": {
                "text": {"type": "string"},
                "employeeName": {"type": "string"}
            },
            "required": ["text", "employeeName"]
        },
        "EarningsRequest": {
            "type": "object",
            "properties": {
                "shifts": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/ShiftRecord"}
                },
                "payRates": {"$ref": "#/definitions/PayRateConfig"}
            },
            "required": ["shifts"]
        },
        "ExportEarningsRequest": {
            "type": "object",
            "properties": {
                "shifts": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/ShiftRecord"}
                },
                "payRates": {"$ref": "#/definitions/PayRateConfig"},
                "format": {"type": "string", "enum": ["csv", "pdf"]}
            },
            "required": ["shifts"]
        },
        "GenerateCalendarRequest": {
            "type": "object",
            "properties": {
                "shifts": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/ShiftRecord"}
                },
                "options": {"$ref": "#/definitions/CalendarOptions"}
            },
            "required": ["shifts"]
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
