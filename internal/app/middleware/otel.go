package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/Minimal-Programmer/Task-Manager/internal/app/observability/metrics"
)

// OTELGinMiddleware returns the OpenTelemetry middleware for Gin
func OTELGinMiddleware(serviceName string) gin.HandlerFunc {
	return otelgin.Middleware(serviceName)
}

// MetricsMiddleware records request counters and latency for every route.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		if !metrics.Ready() {
			return
		}

		duration := time.Since(start).Seconds()
		statusCode := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		m := metrics.Get()
		ctx := c.Request.Context()

		m.HTTPRequestsTotal.Add(ctx, 1, metric.WithAttributes(
			attribute.String("method", c.Request.Method),
			attribute.String("path", path),
			attribute.String("status", strconv.Itoa(statusCode)),
		))
		m.HTTPRequestDuration.Record(ctx, duration, metric.WithAttributes(
			attribute.String("method", c.Request.Method),
			attribute.String("path", path),
		))

		if c.Request.Method == "POST" && (path == "/login" || path == "/register") {
			m.AuthRequestsTotal.Add(ctx, 1, metric.WithAttributes(
				attribute.String("endpoint", path),
				attribute.String("status", strconv.Itoa(statusCode)),
			))
		}
	}
}
