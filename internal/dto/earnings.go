package dto

import "github.com/eladr7/shift-scheduler-api/internal/models"

// EarningsRequest carries the shifts to price and optional rate overrides.
type EarningsRequest struct {
	Shifts   []models.ShiftRecord `json:"shifts" validate:"required"`
	PayRates models.PayRateConfig `json:"payRates"`
}

// ExportEarningsRequest additionally names the payslip format.
type ExportEarningsRequest struct {
	Shifts   []models.ShiftRecord `json:"shifts" validate:"required"`
	PayRates models.PayRateConfig `json:"payRates"`
	Format   string               `json:"format" validate:"omitempty,oneof=csv pdf"`
}
