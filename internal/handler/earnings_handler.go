package handler

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eladr7/shift-scheduler-api/internal/dto"
	"github.com/eladr7/shift-scheduler-api/internal/models"
	appErrors "github.com/eladr7/shift-scheduler-api/pkg/errors"
	"github.com/eladr7/shift-scheduler-api/pkg/export"
	"github.com/eladr7/shift-scheduler-api/pkg/response"
)

type payrollService interface {
	ComputeEarnings(shifts []models.ShiftRecord, rates models.PayRateConfig) *models.EarningsSummary
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// EarningsHandler exposes payroll computation and payslip export.
type EarningsHandler struct {
	service payrollService
	csv     csvRenderer
	pdf     pdfRenderer
}

// NewEarningsHandler constructs the handler.
func NewEarningsHandler(svc payrollService, csv csvRenderer, pdf pdfRenderer) *EarningsHandler {
	return &EarningsHandler{service: svc, csv: csv, pdf: pdf}
}

// Compute godoc
// @Summary Compute banded earnings for a set of shifts
// @Tags Earnings
// @Accept json
// @Produce json
// @Param request body dto.EarningsRequest true "Shifts and optional rate overrides"
// @Success 200 {object} response.Envelope
// @Router /earnings [post]
func (h *EarningsHandler) Compute(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}

	var req dto.EarningsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	if len(req.Shifts) == 0 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "shifts are required"))
		return
	}

	summary := h.service.ComputeEarnings(req.Shifts, req.PayRates)
	response.OK(c, summary)
}

// Export godoc
// @Summary Export a payslip for a set of shifts
// @Tags Earnings
// @Accept json
// @Produce octet-stream
// @Param request body dto.ExportEarningsRequest true "Shifts, rate overrides, and payslip format"
// @Success 200 {file} binary
// @Router /earnings/export [post]
func (h *EarningsHandler) Export(c *gin.Context) {
	if h.service == nil || h.csv == nil || h.pdf == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}

	var req dto.ExportEarningsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	if len(req.Shifts) == 0 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "shifts are required"))
		return
	}

	summary := h.service.ComputeEarnings(req.Shifts, req.PayRates)
	dataset := buildPayslipDataset(summary)
	stamp := time.Now().Format("2006-01-02")

	switch req.Format {
	case "pdf":
		payload, err := h.pdf.Render(dataset, "Payslip")
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrExportFailed.Code, appErrors.ErrExportFailed.Status, appErrors.ErrExportFailed.Message))
			return
		}
		response.Attachment(c, "payslip-"+stamp+".pdf", "application/pdf", payload)
	default:
		payload, err := h.csv.Render(dataset)
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrExportFailed.Code, appErrors.ErrExportFailed.Status, appErrors.ErrExportFailed.Message))
			return
		}
		response.Attachment(c, "payslip-"+stamp+".csv", "text/csv", payload)
	}
}

// buildPayslipDataset flattens the breakdown into one row per non-zero
// pay band, followed by a totals row.
func buildPayslipDataset(summary *models.EarningsSummary) export.Dataset {
	headers := []string{"Component", "Amount"}
	bands := []struct {
		label  string
		amount float64
	}{
		{"Regular", summary.Breakdown.Regular},
		{"Night", summary.Breakdown.Night},
		{"Overtime 125%", summary.Breakdown.Overtime125},
		{"Overtime 150%", summary.Breakdown.Overtime150},
		{"Weekend 150%", summary.Breakdown.Weekend150},
		{"Weekend 175%", summary.Breakdown.Weekend187},
		{"Weekend 200%", summary.Breakdown.Weekend225},
		{"Holiday 150%", summary.Breakdown.Holiday150},
		{"Holiday 175%", summary.Breakdown.Holiday187},
		{"Holiday 200%", summary.Breakdown.Holiday225},
	}

	rows := make([]map[string]string, 0, len(bands)+2)
	for _, band := range bands {
		if band.amount == 0 {
			continue
		}
		rows = append(rows, map[string]string{
			"Component": band.label,
			"Amount":    fmt.Sprintf("%.2f", band.amount),
		})
	}
	rows = append(rows,
		map[string]string{"Component": "Total Hours", "Amount": fmt.Sprintf("%.2f", summary.TotalHours)},
		map[string]string{"Component": "Total Earnings", "Amount": fmt.Sprintf("%.2f", summary.TotalEarnings)},
	)

	return export.Dataset{Headers: headers, Rows: rows}
}
