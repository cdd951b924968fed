package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/inkwell/inkwell/pkg/logging"
	"github.com/inkwell/inkwell/pkg/telemetry"
)

// tracing wraps each request in a span named after its matched route
// and logs the outcome with the trace identity attached.
func tracing() gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Request.Method + " " + c.FullPath()
		if c.FullPath() == "" {
			// Unmatched route; fall back to the raw path
			name = c.Request.Method + " " + c.Request.URL.Path
		}

		ctx, span := telemetry.StartSpan(c.Request.Context(), name)
		defer span.End()
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
		}
		if sc := span.SpanContext(); sc.HasTraceID() {
			fields = append(fields, zap.String("trace_id", sc.TraceID().String()))
		}
		logging.WithContext(fields...).Debug("Request handled")
	}
}
