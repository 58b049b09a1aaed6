package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eladr7/shift-scheduler-api/internal/dto"
	"github.com/eladr7/shift-scheduler-api/internal/service"
	appErrors "github.com/eladr7/shift-scheduler-api/pkg/errors"
	"github.com/eladr7/shift-scheduler-api/pkg/response"
)

type extractService interface {
	Extract(req service.ExtractRequest) (*service.ExtractResult, error)
}

// ShiftHandler exposes text-to-shift extraction.
type ShiftHandler struct {
	service extractService
	metrics *service.MetricsService
}

// NewShiftHandler constructs the handler.
func NewShiftHandler(svc extractService, metrics *service.MetricsService) *ShiftHandler {
	return &ShiftHandler{service: svc, metrics: metrics}
}

// Parse godoc
// @Summary Extract shift records from recognized schedule text
// @Tags Shifts
// @Accept json
// @Produce json
// @Param request body dto.ParseShiftsRequest true "Recognized text and employee name"
// @Success 200 {object} response.Envelope
// @Router /shifts/parse [post]
func (h *ShiftHandler) Parse(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}

	var req dto.ParseShiftsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}

	result, err := h.service.Extract(service.ExtractRequest{
		Text:         req.Text,
		EmployeeName: req.EmployeeName,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	if h.metrics != nil {
		h.metrics.ObserveExtraction(result.Strategy, len(result.Shifts))
	}

	response.JSON(c, http.StatusOK, dto.ParseShiftsResponse{
		Shifts:   result.Shifts,
		Strategy: result.Strategy,
		Trace:    result.Trace,
	})
}
