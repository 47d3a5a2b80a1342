package api

import (
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	requestsTotal *prometheus.CounterVec
	queryDuration *prometheus.HistogramVec
	metricsOnce   sync.Once
)

// initMetrics registers the HTTP metrics with the default registry.
// Safe to call from every server constructor.
func initMetrics() {
	metricsOnce.Do(func() {
		requestsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "techne_http_requests_total",
				Help: "Total HTTP requests by route and status code",
			},
			[]string{"route", "status"},
		)
		queryDuration = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "techne_query_duration_seconds",
				Help:    "Request handling duration by route",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		)
		prometheus.MustRegister(requestsTotal, queryDuration)
	})
}

// metricsMiddleware records a counter and duration observation per request.
func metricsMiddleware(c fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	status := c.Response().StatusCode()
	if err != nil {
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		} else {
			status = fiber.StatusInternalServerError
		}
	}

	route := c.Route().Path
	requestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
	queryDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())

	return err
}
