package handler

import (
	"context"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eladr7/shift-scheduler-api/internal/dto"
	"github.com/eladr7/shift-scheduler-api/internal/service"
	appErrors "github.com/eladr7/shift-scheduler-api/pkg/errors"
	"github.com/eladr7/shift-scheduler-api/pkg/response"
	"github.com/eladr7/shift-scheduler-api/pkg/storage"
)

type ocrService interface {
	Recognize(ctx context.Context, filename, language string) (string, bool, error)
}

// OCRHandler accepts schedule image uploads and returns recognized text.
type OCRHandler struct {
	service     ocrService
	store       *storage.UploadStore
	metrics     *service.MetricsService
	maxFileSize int64
	logger      *zap.Logger
}

// NewOCRHandler constructs the handler.
func NewOCRHandler(svc ocrService, store *storage.UploadStore, metrics *service.MetricsService, maxFileSize int64, logger *zap.Logger) *OCRHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OCRHandler{service: svc, store: store, metrics: metrics, maxFileSize: maxFileSize, logger: logger}
}

// Recognize godoc
// @Summary Recognize schedule text from an uploaded image
// @Tags OCR
// @Accept mpfd
// @Produce json
// @Param schedule formData file true "Schedule image"
// @Param language formData string false "Language preference (hebrew, english, both)"
// @Success 200 {object} response.Envelope
// @Router /ocr [post]
func (h *OCRHandler) Recognize(c *gin.Context) {
	if h.service == nil || h.store == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}

	file, err := c.FormFile("schedule")
	if err != nil {
		response.Error(c, appErrors.ErrMissingUpload)
		return
	}
	if h.maxFileSize > 0 && file.Size > h.maxFileSize {
		response.Error(c, appErrors.ErrUploadTooLarge)
		return
	}

	language := c.PostForm("language")
	if language == "" {
		language = service.LanguageBoth
	}

	src, err := file.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "open upload"))
		return
	}
	defer src.Close() //nolint:errcheck

	filename := uuid.NewString() + filepath.Ext(file.Filename)
	if _, err := h.store.SaveStream(filename, src); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "store upload"))
		return
	}
	// The upload is transient; remove it on every exit path.
	defer func() {
		if err := h.store.Delete(filename); err != nil {
			h.logger.Warn("upload cleanup failed", zap.String("file", filename), zap.Error(err))
		}
	}()

	text, cacheHit, err := h.service.Recognize(c.Request.Context(), filename, language)
	if err != nil {
		response.Error(c, err)
		return
	}
	if h.metrics != nil {
		h.metrics.ObserveOCR(language, cacheHit)
	}

	response.JSON(c, http.StatusOK, dto.OCRResponse{Text: text}, map[string]interface{}{"cache_hit": cacheHit})
}
