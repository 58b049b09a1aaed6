package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/eladr7/shift-scheduler-api/api/swagger"
	"github.com/eladr7/shift-scheduler-api/internal/handler"
	"github.com/eladr7/shift-scheduler-api/internal/middleware"
	"github.com/eladr7/shift-scheduler-api/internal/models"
	"github.com/eladr7/shift-scheduler-api/internal/service"
	"github.com/eladr7/shift-scheduler-api/pkg/cache"
	"github.com/eladr7/shift-scheduler-api/pkg/config"
	"github.com/eladr7/shift-scheduler-api/pkg/export"
	"github.com/eladr7/shift-scheduler-api/pkg/logger"
	corsmiddleware "github.com/eladr7/shift-scheduler-api/pkg/middleware/cors"
	reqidmiddleware "github.com/eladr7/shift-scheduler-api/pkg/middleware/requestid"
	"github.com/eladr7/shift-scheduler-api/pkg/storage"
)

// @title Shift Scheduler API
// @version 0.1.0
// @description Schedule OCR, shift extraction, payroll, and calendar export
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	store, err := storage.NewUploadStore(cfg.Uploads.Dir)
	if err != nil {
		logr.Sugar().Fatalw("uploads directory unavailable", "error", err)
	}
	go cleanupUploads(store, cfg.Uploads, logr)

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		client, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, recognition cache disabled", "error", err)
		} else {
			redisClient = client
		}
	}

	validate := validator.New()
	metrics := service.NewMetricsService()
	classifier := service.NewClassifier(cfg.Payroll.WeekendDays)

	extractSvc := service.NewExtractService(models.DefaultLexicon(), nil, classifier, validate, logr)
	payrollSvc := service.NewPayrollService(classifier, cfg.Payroll.DefaultDayRate, cfg.Payroll.DefaultNightDifferential, logr)
	calendarSvc := service.NewCalendarService(nil, cfg.Calendar, logr)
	ocrSvc := service.NewOCRService(nil, store, redisClient, cfg.OCR, logr)

	ocrHandler := handler.NewOCRHandler(ocrSvc, store, metrics, cfg.Uploads.MaxFileSize, logr)
	shiftHandler := handler.NewShiftHandler(extractSvc, metrics)
	earningsHandler := handler.NewEarningsHandler(payrollSvc, export.NewCSVExporter(), export.NewPDFExporter())
	calendarHandler := handler.NewCalendarHandler(calendarSvc, metrics)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group(cfg.APIPrefix)
	{
		api.POST("/ocr", ocrHandler.Recognize)
		api.POST("/shifts/parse", shiftHandler.Parse)
		api.POST("/earnings", earningsHandler.Compute)
		api.POST("/earnings/export", earningsHandler.Export)
		api.POST("/calendar", calendarHandler.Generate)
	}

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

// cleanupUploads periodically removes uploads that outlived their TTL.
func cleanupUploads(store *storage.UploadStore, cfg config.UploadsConfig, logr *zap.Logger) {
	interval := cfg.CleanupInterval
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		deleted, err := store.CleanupOlderThan(cfg.TTL)
		if err != nil {
			logr.Warn("upload cleanup sweep failed", zap.Error(err))
			continue
		}
		if len(deleted) > 0 {
			logr.Info("upload cleanup sweep", zap.Int("deleted", len(deleted)))
		}
	}
}
