package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "path", "status"},
	)

	// PaymentsTotal counts terminal payment results by provider.
	PaymentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transfer_payments_total",
			Help: "Total number of payment results by method and result",
		},
		[]string{"method", "result"},
	)

	EmailChecksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_email_checks_total",
			Help: "Total number of email existence checks",
		},
		[]string{"exists"},
	)
)

func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
		).Observe(time.Since(start).Seconds())
	}
}
