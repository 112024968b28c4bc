package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "metroparking",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "metroparking",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"method", "path"})

	// Upstream geodata metrics
	UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "metroparking",
		Subsystem: "overpass",
		Name:      "requests_total",
		Help:      "Total queries sent to geodata mirrors",
	}, []string{"mirror", "status"})

	UpstreamRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "metroparking",
		Subsystem: "overpass",
		Name:      "request_duration_seconds",
		Help:      "Duration of geodata queries per mirror",
		Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30},
	}, []string{"mirror"})

	// Geometry pipeline metrics
	PolygonsProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "metroparking",
		Subsystem: "geometry",
		Name:      "polygons_processed_total",
		Help:      "Total parking geometries run through the pipeline",
	})

	PolygonsSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "metroparking",
		Subsystem: "geometry",
		Name:      "polygons_skipped_total",
		Help:      "Total geometries skipped as degenerate or invalid",
	}, []string{"reason"})

	// Cache metrics
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "metroparking",
		Subsystem: "cache",
		Name:      "hits_total",
		Help:      "Total cache hits",
	}, []string{"operation"})

	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "metroparking",
		Subsystem: "cache",
		Name:      "misses_total",
		Help:      "Total cache misses",
	}, []string{"operation"})
)

// Middleware records request metrics.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())
		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		method := c.Method()

		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(duration)

		return err
	}
}

// Handler returns a Fiber handler serving the Prometheus /metrics endpoint.
func Handler() fiber.Handler {
	handler := promhttp.Handler()
	return func(c *fiber.Ctx) error {
		fasthttpadaptor.NewFastHTTPHandler(handler)(c.Context())
		return nil
	}
}
