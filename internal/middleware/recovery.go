package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/learncss/Annotum/pkg/app"
	"github.com/learncss/Annotum/pkg/code"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RecoveryWithLogger 创建带日志器的 Recovery 中间件
func RecoveryWithLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			var errorMsg string
			switch v := rec.(type) {
			case string:
				errorMsg = v
			case error:
				errorMsg = v.Error()
			default:
				errorMsg = fmt.Sprintf("%v", v)
			}

			logger.Error("Recovered from panic",
				zap.String("router", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
				zap.String("query", c.Request.URL.RawQuery),
				zap.String("ip", c.ClientIP()),
				zap.String("traceId", app.GetTraceID(c)),
				zap.String("panic_value", errorMsg),
				zap.String("stack", string(debug.Stack())),
			)

			app.NewResponse(c).ToResponse(code.ErrorServerInternal.WithDetails(errorMsg))
			c.Abort()
		}()

		c.Next()
	}
}
