package middleware

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/xiebiao/library/pkg/tracing"
)

// Tracing 为每个请求创建服务端Span，并从请求头继承上游的trace上下文
func Tracing() gin.HandlerFunc {
	propagator := propagation.TraceContext{}
	return func(c *gin.Context) {
		ctx := propagator.Extract(c.Request.Context(), propagation.HeaderCarrier(c.Request.Header))

		spanName := c.FullPath()
		if spanName == "" {
			spanName = c.Request.URL.Path
		}
		ctx, span := otel.Tracer("http").Start(ctx, c.Request.Method+" "+spanName,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", c.Request.Method),
				attribute.String("http.route", spanName),
			),
		)
		defer span.End()

		c.Request = c.Request.WithContext(ctx)
		if traceID := tracing.ExtractTraceID(ctx); traceID != "" {
			c.Header("X-Trace-ID", traceID)
		}

		c.Next()
		span.SetAttributes(attribute.Int("http.status_code", c.Writer.Status()))
	}
}
