package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/eladr7/shift-scheduler-api/internal/dto"
	"github.com/eladr7/shift-scheduler-api/internal/models"
	"github.com/eladr7/shift-scheduler-api/internal/service"
	appErrors "github.com/eladr7/shift-scheduler-api/pkg/errors"
	"github.com/eladr7/shift-scheduler-api/pkg/response"
)

type calendarService interface {
	GenerateCalendar(shifts []models.ShiftRecord, opts models.CalendarOptions) (*service.GeneratedCalendar, error)
}

// CalendarHandler exposes calendar file generation.
type CalendarHandler struct {
	service calendarService
	metrics *service.MetricsService
}

// NewCalendarHandler constructs the handler.
func NewCalendarHandler(svc calendarService, metrics *service.MetricsService) *CalendarHandler {
	return &CalendarHandler{service: svc, metrics: metrics}
}

// Generate godoc
// @Summary Generate a downloadable calendar file from shifts
// @Tags Calendar
// @Accept json
// @Produce octet-stream
// @Param request body dto.GenerateCalendarRequest true "Shifts and calendar options"
// @Success 200 {file} binary
// @Router /calendar [post]
func (h *CalendarHandler) Generate(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}

	var req dto.GenerateCalendarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	if len(req.Shifts) == 0 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "shifts are required"))
		return
	}

	generated, err := h.service.GenerateCalendar(req.Shifts, req.Options)
	if err != nil {
		response.Error(c, err)
		return
	}
	if h.metrics != nil {
		h.metrics.ObserveCalendarEvents(generated.Events)
	}

	response.Attachment(c, generated.Filename, "text/calendar; charset=utf-8", []byte(generated.Payload))
}
