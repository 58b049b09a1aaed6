package dto

import "github.com/eladr7/shift-scheduler-api/internal/models"

// ParseShiftsRequest carries recognized text and the employee to extract for.
type ParseShiftsRequest struct {
	Text         string `json:"text" validate:"required"`
	EmployeeName string `json:"employeeName" validate:"required"`
}

// ParseShiftsResponse returns the extracted shifts, the strategy that
// produced them, and the per-line trace.
type ParseShiftsResponse struct {
	Shifts   []models.ShiftRecord `json:"shifts"`
	Strategy string               `json:"strategy"`
	Trace    []models.LineOutcome `json:"trace,omitempty"`
}

// OCRResponse returns the recognized text for an uploaded schedule image.
type OCRResponse struct {
	Text string `json:"text"`
}
