package dto

import "github.com/eladr7/shift-scheduler-api/internal/models"

// GenerateCalendarRequest carries the shifts to publish and display options.
type GenerateCalendarRequest struct {
	Shifts  []models.ShiftRecord   `json:"shifts" validate:"required"`
	Options models.CalendarOptions `json:"options"`
}
