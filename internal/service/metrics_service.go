package service

import (
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the API and
// the extraction pipeline.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	ocrRequests     *prometheus.CounterVec
	shiftsExtracted *prometheus.CounterVec
	calendarEvents  prometheus.Counter
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	ocrRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ocr_requests_total",
		Help: "Recognition requests by language and cache result",
	}, []string{"language", "cache"})

	shiftsExtracted := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "shifts_extracted_total",
		Help: "Shift records produced, by extraction strategy",
	}, []string{"strategy"})

	calendarEvents := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "calendar_events_total",
		Help: "Calendar events rendered into generated files",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, ocrRequests, shiftsExtracted, calendarEvents, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		ocrRequests:     ocrRequests,
		shiftsExtracted: shiftsExtracted,
		calendarEvents:  calendarEvents,
	}
}

// Handler serves the Prometheus scrape endpoint.
func (s *MetricsService) Handler() http.Handler {
	return s.handler
}

// ObserveHTTPRequest records one completed HTTP request.
func (s *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	labels := prometheus.Labels{
		"method": method,
		"path":   path,
		"status": strconv.Itoa(status),
	}
	s.requestDuration.With(labels).Observe(duration.Seconds())
	s.requestTotal.With(labels).Inc()
}

// ObserveOCR records one recognition request.
func (s *MetricsService) ObserveOCR(language string, cacheHit bool) {
	cache := "miss"
	if cacheHit {
		cache = "hit"
	}
	s.ocrRequests.WithLabelValues(language, cache).Inc()
}

// ObserveExtraction records how many shifts a strategy produced.
func (s *MetricsService) ObserveExtraction(strategy string, count int) {
	s.shiftsExtracted.WithLabelValues(strategy).Add(float64(count))
}

// ObserveCalendarEvents counts events rendered into calendar files.
func (s *MetricsService) ObserveCalendarEvents(count int) {
	s.calendarEvents.Add(float64(count))
}
