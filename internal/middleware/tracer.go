package middleware

import (
	"context"

	"github.com/learncss/Annotum/pkg/app"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
)

// DefaultTraceIDHeader 默认的 Trace ID 请求头名称
const DefaultTraceIDHeader = "X-Trace-ID"

type traceIDCtxKey struct{}

// TraceConfig 追踪中间件配置
type TraceConfig struct {
	Enabled bool
	Header  string
}

// TraceMiddleware 创建请求追踪中间件
// 从请求头获取或生成 Trace ID，写入 gin.Context、request.Context 与响应头
func TraceMiddleware(cfg TraceConfig) gin.HandlerFunc {
	header := cfg.Header
	if header == "" {
		header = DefaultTraceIDHeader
	}
	return func(c *gin.Context) {
		if !cfg.Enabled {
			c.Next()
			return
		}

		traceID := c.GetHeader(header)
		if traceID == "" {
			traceID = uuid.NewString()
		}

		c.Set(app.TraceIDKey, traceID)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), traceIDCtxKey{}, traceID))
		c.Header(header, traceID)

		c.Next()
	}
}

// GetTraceID 从 context.Context 获取 Trace ID
func GetTraceID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(traceIDCtxKey{}).(string); ok {
		return id
	}
	return ""
}

// Tracing starts an opentracing span per request, continuing the caller's
// span when the request carries one. The span rides the request context so
// gorm queries issued from handlers become its children.
func Tracing(tracer opentracing.Tracer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var span opentracing.Span
		carrier := opentracing.HTTPHeadersCarrier(c.Request.Header)
		if parent, err := tracer.Extract(opentracing.HTTPHeaders, carrier); err == nil {
			span = tracer.StartSpan(c.Request.URL.Path, opentracing.ChildOf(parent))
		} else {
			span = tracer.StartSpan(c.Request.URL.Path)
		}
		defer span.Finish()

		ext.HTTPMethod.Set(span, c.Request.Method)
		ext.HTTPUrl.Set(span, c.Request.URL.String())
		if id := app.GetTraceID(c); id != "" {
			span.SetTag("trace_id", id)
		}

		c.Request = c.Request.WithContext(opentracing.ContextWithSpan(c.Request.Context(), span))
		c.Next()

		ext.HTTPStatusCode.Set(span, uint16(c.Writer.Status()))
	}
}
